package query

import (
	"math/rand"

	"github.com/peizhen/bookfair/internal/catalog"
)

// RandomPick returns up to n randomly chosen books for the recommendation
// panel. Entries missing a cover, name, or author are skipped, matching the
// storefront's display requirements.
//
// The caller supplies the rand source so tests stay deterministic. The
// input slice is never mutated.
func RandomPick(books []catalog.Book, n int, rng *rand.Rand) []catalog.Book {
	if n <= 0 {
		return nil
	}
	valid := make([]catalog.Book, 0, len(books))
	for _, b := range books {
		if b.Cover != "" && b.Name != "" && b.Author != "" {
			valid = append(valid, b)
		}
	}
	rng.Shuffle(len(valid), func(i, j int) {
		valid[i], valid[j] = valid[j], valid[i]
	})
	if n > len(valid) {
		n = len(valid)
	}
	return valid[:n]
}
