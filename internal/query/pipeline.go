package query

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"

	"github.com/peizhen/bookfair/internal/catalog"
)

// Run applies the filter to the catalog and returns the ordered result.
//
// Stage order is fixed: keyword filter, stock filter, sort. The input slice
// is never mutated; ties in sort keys keep their relative catalog order.
// Concurrent Runs are independent: the case folder is per call because a
// cases.Caser may be stateful and must not be shared between goroutines.
//
// An empty result after filtering is a valid outcome, distinct from "no
// filter applied": callers distinguish the two by whether Keyword was set.
func Run(books []catalog.Book, f Filter) []catalog.Book {
	out := make([]catalog.Book, 0, len(books))

	// Unicode folding (not ToLower) so keywords match correctly across
	// scripts.
	folder := cases.Fold()
	keyword := folder.String(strings.TrimSpace(f.Keyword))
	for _, b := range books {
		if keyword != "" && !matches(folder, b, keyword) {
			continue
		}
		if f.InStockOnly && !b.InStock {
			continue
		}
		out = append(out, b)
	}

	switch f.Sort {
	case SortPriceAsc:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Price.LessThan(out[j].Price)
		})
	case SortPriceDesc:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Price.GreaterThan(out[j].Price)
		})
	case SortRatingDesc:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Score.GreaterThan(out[j].Score)
		})
	}
	return out
}

// matches reports whether the folded keyword occurs in the book's
// searchable text: name, author, category, and intro.
func matches(folder cases.Caser, b catalog.Book, foldedKeyword string) bool {
	text := folder.String(b.Name + " " + b.Author + " " + b.Category + " " + b.Intro)
	return strings.Contains(text, foldedKeyword)
}
