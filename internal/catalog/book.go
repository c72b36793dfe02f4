package catalog

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Book is one sellable catalog entry.
//
// Books are value types: the store hands out copies, and the session layer
// snapshots display fields rather than holding references, so nothing
// downstream can observe a catalog mutation.
type Book struct {
	// ID is opaque, unique within a load, and immutable.
	ID string

	Name     string
	Author   string
	Press    string
	Category string
	Intro    string
	Cover    string

	// Price is the full price. Must be positive.
	Price decimal.Decimal

	// Score is the rating in [0, 10].
	Score decimal.Decimal

	// InStock defaults to true.
	InStock bool
}

// two is the fixed discount divisor: everything in the fair sells at half price.
var two = decimal.NewFromInt(2)

// DiscountPrice returns the sale price: half the full price, rounded to
// 2 decimal places. It is a pure function of Price, never stored.
func (b Book) DiscountPrice() decimal.Decimal {
	return b.Price.Div(two).Round(2)
}

// Validate checks the invariants a book must satisfy before entering the
// catalog. The loader calls this for every seed entry.
func (b Book) Validate() error {
	if b.Name == "" {
		return fmt.Errorf("book %q: name is required", b.ID)
	}
	if b.Author == "" {
		return fmt.Errorf("book %q (%s): author is required", b.ID, b.Name)
	}
	if !b.Price.IsPositive() {
		return fmt.Errorf("book %q (%s): price must be positive, got %s", b.ID, b.Name, b.Price)
	}
	if b.Score.IsNegative() || b.Score.GreaterThan(decimal.NewFromInt(10)) {
		return fmt.Errorf("book %q (%s): score must be in [0, 10], got %s", b.ID, b.Name, b.Score)
	}
	return nil
}

// NewBook is the single construction path into the catalog: it assigns an
// ID when the seed entry lacks one and enforces the entry invariants.
// Store.Load routes every entry through it, whatever the seed source.
func NewBook(gen IDGenerator, seed Book) (Book, error) {
	if seed.ID == "" {
		if gen == nil {
			gen = UUIDv7Generator{}
		}
		seed.ID = gen.Generate()
	}
	if err := seed.Validate(); err != nil {
		return Book{}, err
	}
	return seed, nil
}
