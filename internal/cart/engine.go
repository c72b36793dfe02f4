package cart

import (
	"github.com/shopspring/decimal"

	"github.com/peizhen/bookfair/internal/catalog"
	"github.com/peizhen/bookfair/internal/session"
)

// Engine performs cart and favorite mutations. Construct with New; the
// zero value is not usable.
type Engine struct {
	saver *session.Saver
	clock session.Clock
}

// New creates an engine. nil clock defaults to the system clock.
func New(saver *session.Saver, clock session.Clock) *Engine {
	if clock == nil {
		clock = session.SystemClock{}
	}
	return &Engine{saver: saver, clock: clock}
}

// AddToCart upserts a line for the book: an existing line's quantity grows
// by one, otherwise a new line is created with quantity 1, snapshotting the
// display fields and discount price at add time. Returns the distinct line
// count after the operation.
//
// Adding an out-of-stock book is a caller contract violation and is
// rejected with a ValidationError; the session is unchanged.
func (e *Engine) AddToCart(s *session.Session, b catalog.Book) (int, error) {
	if !b.InStock {
		return s.LineCount(), &ValidationError{Op: "add to cart", BookID: b.ID, Reason: "book is out of stock"}
	}
	if item, ok := s.Cart[b.ID]; ok {
		item.Quantity++
	} else {
		s.Cart[b.ID] = &session.CartItem{
			BookID:            b.ID,
			Name:              b.Name,
			Author:            b.Author,
			Cover:             b.Cover,
			UnitDiscountPrice: b.DiscountPrice(),
			Quantity:          1,
			AddedAt:           e.clock.Now(),
		}
	}
	e.saver.Save(s)
	return s.LineCount(), nil
}

// RemoveFromCart deletes the line for bookID if present. Absent is a no-op,
// not an error. Returns the distinct line count after the operation.
func (e *Engine) RemoveFromCart(s *session.Session, bookID string) int {
	if _, ok := s.Cart[bookID]; !ok {
		return s.LineCount()
	}
	delete(s.Cart, bookID)
	e.saver.Save(s)
	return s.LineCount()
}

// IncrementQuantity raises a line's quantity by one. No-op if absent.
func (e *Engine) IncrementQuantity(s *session.Session, bookID string) {
	item, ok := s.Cart[bookID]
	if !ok {
		return
	}
	item.Quantity++
	e.saver.Save(s)
}

// DecrementQuantity lowers a line's quantity by one; decrementing a
// quantity-1 line removes it entirely. No-op if absent.
func (e *Engine) DecrementQuantity(s *session.Session, bookID string) {
	item, ok := s.Cart[bookID]
	if !ok {
		return
	}
	if item.Quantity <= 1 {
		delete(s.Cart, bookID)
	} else {
		item.Quantity--
	}
	e.saver.Save(s)
}

// ClearCart empties the cart. History and favorites are untouched.
func (e *Engine) ClearCart(s *session.Session) {
	if len(s.Cart) == 0 {
		return
	}
	s.Cart = make(map[string]*session.CartItem)
	e.saver.Save(s)
}

// Total sums unit discount price times quantity over all lines, rounding
// to 2 places once at the end. The per-line snapshot price is already
// rounded at add time, so the final rounding is cosmetic but applied
// consistently.
func (e *Engine) Total(s *session.Session) decimal.Decimal {
	total := decimal.Zero
	for _, item := range s.Cart {
		total = total.Add(item.UnitDiscountPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total.Round(2)
}

// AddFavorite records the book as a favorite. Idempotent: a second add of
// the same id is a no-op.
func (e *Engine) AddFavorite(s *session.Session, b catalog.Book) {
	if _, ok := s.Favorites[b.ID]; ok {
		return
	}
	s.Favorites[b.ID] = &session.Favorite{
		BookID:  b.ID,
		Name:    b.Name,
		Author:  b.Author,
		Cover:   b.Cover,
		AddedAt: e.clock.Now(),
	}
	e.saver.Save(s)
}

// Checkout returns the cart total and resets the cart. Payment is out of
// scope, so this is a no-op state reset. Returns ErrEmptyCart when there is
// nothing to check out.
func (e *Engine) Checkout(s *session.Session) (decimal.Decimal, error) {
	if len(s.Cart) == 0 {
		return decimal.Zero, ErrEmptyCart
	}
	total := e.Total(s)
	s.Cart = make(map[string]*session.CartItem)
	e.saver.Save(s)
	return total, nil
}
