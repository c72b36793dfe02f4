package query

import (
	"fmt"
	"strings"
)

// SortMode selects the ordering applied as the pipeline's final stage.
type SortMode string

const (
	// SortDefault preserves catalog load order.
	SortDefault SortMode = "default"
	// SortPriceAsc orders by full price, cheapest first.
	SortPriceAsc SortMode = "priceAsc"
	// SortPriceDesc orders by full price, most expensive first.
	SortPriceDesc SortMode = "priceDesc"
	// SortRatingDesc orders by score, highest first.
	SortRatingDesc SortMode = "rating"
)

// Filter is the user-selected query state. It is ephemeral: filters are
// never persisted.
type Filter struct {
	// Keyword is matched as a case-folded substring over a book's
	// name, author, category, and intro. Empty means no keyword stage.
	Keyword string

	// Sort selects the final ordering stage.
	Sort SortMode

	// InStockOnly drops out-of-stock entries when set.
	InStockOnly bool
}

// ValidationError reports malformed filter input. The caller recovers
// locally by falling back to the field's default; it never aborts a query.
type ValidationError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
}

// ParseSortMode maps user input to a SortMode. Unknown input degrades to
// SortDefault and reports a ValidationError so the caller can surface it
// without failing the query. Empty input is SortDefault with no error.
func ParseSortMode(s string) (SortMode, error) {
	switch SortMode(strings.TrimSpace(s)) {
	case "", SortDefault:
		return SortDefault, nil
	case SortPriceAsc:
		return SortPriceAsc, nil
	case SortPriceDesc:
		return SortPriceDesc, nil
	case SortRatingDesc:
		return SortRatingDesc, nil
	default:
		return SortDefault, &ValidationError{
			Field:  "sort",
			Value:  s,
			Reason: "must be one of default, priceAsc, priceDesc, rating",
		}
	}
}
