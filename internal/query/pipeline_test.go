package query

import (
	"math/rand"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peizhen/bookfair/internal/catalog"
)

func book(id, name string, price, score string, inStock bool) catalog.Book {
	return catalog.Book{
		ID:       id,
		Name:     name,
		Author:   "author-" + id,
		Category: "category",
		Intro:    "intro",
		Cover:    "cover.jpg",
		Price:    decimal.RequireFromString(price),
		Score:    decimal.RequireFromString(score),
		InStock:  inStock,
	}
}

func names(books []catalog.Book) []string {
	out := make([]string, len(books))
	for i, b := range books {
		out[i] = b.Name
	}
	return out
}

// TestRun_IdentityFilter verifies the empty filter returns the catalog
// unchanged in order and content.
func TestRun_IdentityFilter(t *testing.T) {
	in := []catalog.Book{
		book("1", "A", "88", "9.4", true),
		book("2", "B", "45", "8.8", true),
		book("3", "C", "59", "7.9", false),
	}

	out := Run(in, Filter{Keyword: "", Sort: SortDefault, InStockOnly: false})

	assert.Equal(t, in, out)
}

// TestRun_StockAndPriceAsc is the canonical scenario: A(88/9.4), B(45/8.8),
// C(59/7.9, out of stock) with stockOnly+priceAsc yields [B, A].
func TestRun_StockAndPriceAsc(t *testing.T) {
	in := []catalog.Book{
		book("a", "A", "88", "9.4", true),
		book("b", "B", "45", "8.8", true),
		book("c", "C", "59", "7.9", false),
	}

	out := Run(in, Filter{Sort: SortPriceAsc, InStockOnly: true})

	assert.Equal(t, []string{"B", "A"}, names(out))
}

// TestRun_SortStability verifies entries with equal sort keys retain their
// relative load order for every mode.
func TestRun_SortStability(t *testing.T) {
	in := []catalog.Book{
		book("1", "first", "50", "9.0", true),
		book("2", "second", "50", "9.0", true),
		book("3", "third", "50", "9.0", true),
	}
	for _, mode := range []SortMode{SortDefault, SortPriceAsc, SortPriceDesc, SortRatingDesc} {
		t.Run(string(mode), func(t *testing.T) {
			out := Run(in, Filter{Sort: mode})
			assert.Equal(t, []string{"first", "second", "third"}, names(out))
		})
	}
}

func TestRun_PriceDesc(t *testing.T) {
	in := []catalog.Book{
		book("1", "cheap", "10", "5", true),
		book("2", "dear", "90", "5", true),
		book("3", "mid", "50", "5", true),
	}
	out := Run(in, Filter{Sort: SortPriceDesc})
	assert.Equal(t, []string{"dear", "mid", "cheap"}, names(out))
}

func TestRun_RatingDesc(t *testing.T) {
	in := []catalog.Book{
		book("1", "ok", "10", "7.9", true),
		book("2", "best", "10", "9.8", true),
		book("3", "good", "10", "8.8", true),
	}
	out := Run(in, Filter{Sort: SortRatingDesc})
	assert.Equal(t, []string{"best", "good", "ok"}, names(out))
}

// TestRun_KeywordMatchesAllFields verifies the keyword searches name,
// author, category, and intro.
func TestRun_KeywordMatchesAllFields(t *testing.T) {
	a := book("1", "长安的荔枝", "45", "8.8", true)
	a.Author = "马伯庸"
	a.Category = "历史文学"
	a.Intro = "晚唐历史细节"
	b := book("2", "三体", "88", "9.4", true)
	b.Author = "刘慈欣"
	b.Category = "科幻小说"
	b.Intro = "地球人类文明"
	in := []catalog.Book{a, b}

	cases := []struct {
		keyword string
		want    []string
	}{
		{"荔枝", []string{"长安的荔枝"}},   // name
		{"刘慈欣", []string{"三体"}},       // author
		{"科幻", []string{"三体"}},         // category
		{"晚唐", []string{"长安的荔枝"}},   // intro
		{"文", []string{"长安的荔枝", "三体"}},
		{"nothing", nil},
	}
	for _, tc := range cases {
		out := Run(in, Filter{Keyword: tc.keyword})
		assert.Equal(t, tc.want, sliceOrNil(names(out)), "keyword %q", tc.keyword)
	}
}

func sliceOrNil(s []string) []string {
	if len(s) == 0 {
		return nil
	}
	return s
}

// TestRun_KeywordFolding verifies trimming and caseless matching.
func TestRun_KeywordFolding(t *testing.T) {
	b := book("1", "The Little Prince", "42", "9.1", true)
	in := []catalog.Book{b}

	assert.Len(t, Run(in, Filter{Keyword: "  little  "}), 1)
	assert.Len(t, Run(in, Filter{Keyword: "PRINCE"}), 1)
	assert.Len(t, Run(in, Filter{Keyword: "prince"}), 1)
	assert.Len(t, Run(in, Filter{Keyword: "queen"}), 0)
}

// TestRun_EmptyResultIsValid verifies a filtered-to-empty result is a
// distinct outcome, not an error.
func TestRun_EmptyResultIsValid(t *testing.T) {
	in := []catalog.Book{book("1", "A", "10", "5", false)}

	out := Run(in, Filter{InStockOnly: true})

	require.NotNil(t, out)
	assert.Empty(t, out)
}

// TestRun_DoesNotMutateInput verifies the pipeline leaves the catalog
// slice untouched even when sorting.
func TestRun_DoesNotMutateInput(t *testing.T) {
	in := []catalog.Book{
		book("1", "z", "90", "1", true),
		book("2", "a", "10", "9", true),
	}
	want := []catalog.Book{in[0], in[1]}

	_ = Run(in, Filter{Sort: SortPriceAsc})

	assert.Equal(t, want, in)
}

// TestRun_Deterministic verifies repeated calls with identical inputs give
// identical output.
func TestRun_Deterministic(t *testing.T) {
	in := []catalog.Book{
		book("1", "x", "50", "5", true),
		book("2", "y", "50", "6", false),
		book("3", "z", "40", "5", true),
	}
	f := Filter{Keyword: "author", Sort: SortPriceAsc, InStockOnly: true}

	first := Run(in, f)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Run(in, f))
	}
}

// TestRun_ConcurrentCallsAreIndependent verifies overlapping Runs do not
// interfere, as when a debounced render fires while another evaluation is
// in flight. Run under the race detector this also proves no shared
// folding state.
func TestRun_ConcurrentCallsAreIndependent(t *testing.T) {
	in := []catalog.Book{
		book("1", "长安的荔枝", "45", "8.8", true),
		book("2", "三体", "88", "9.4", true),
		book("3", "历史的遗憾", "59", "7.9", false),
	}
	f := Filter{Keyword: "荔枝", Sort: SortPriceAsc, InStockOnly: true}
	want := Run(in, f)

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				assert.Equal(t, want, Run(in, f))
			}
		}()
	}
	wg.Wait()
}

func TestParseSortMode(t *testing.T) {
	for in, want := range map[string]SortMode{
		"":          SortDefault,
		"default":   SortDefault,
		"priceAsc":  SortPriceAsc,
		"priceDesc": SortPriceDesc,
		"rating":    SortRatingDesc,
	} {
		got, err := ParseSortMode(in)
		require.NoError(t, err, "input %q", in)
		assert.Equal(t, want, got)
	}
}

// TestParseSortMode_UnknownFallsBack verifies malformed input degrades to
// the default with a ValidationError, never a failed query.
func TestParseSortMode_UnknownFallsBack(t *testing.T) {
	got, err := ParseSortMode("bogus")

	assert.Equal(t, SortDefault, got)
	require.Error(t, err)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "sort", ve.Field)
	assert.Equal(t, "bogus", ve.Value)
}

func TestRandomPick(t *testing.T) {
	in := []catalog.Book{
		book("1", "a", "10", "5", true),
		book("2", "b", "10", "5", true),
		book("3", "c", "10", "5", true),
	}
	noCover := book("4", "d", "10", "5", true)
	noCover.Cover = ""
	in = append(in, noCover)

	rng := rand.New(rand.NewSource(1))
	picked := RandomPick(in, 5, rng)

	// Only the three display-complete books qualify.
	require.Len(t, picked, 3)
	for _, b := range picked {
		assert.NotEqual(t, "d", b.Name)
	}

	// Same seed, same picks.
	again := RandomPick(in, 5, rand.New(rand.NewSource(1)))
	assert.Equal(t, picked, again)

	// Input order untouched.
	assert.Equal(t, "a", in[0].Name)
}

// TestRandomPick_NonPositiveN verifies zero and negative counts return nil
// rather than panicking.
func TestRandomPick_NonPositiveN(t *testing.T) {
	in := []catalog.Book{book("1", "a", "10", "5", true)}
	rng := rand.New(rand.NewSource(1))

	assert.Nil(t, RandomPick(in, 0, rng))
	assert.Nil(t, RandomPick(in, -3, rng))
}
