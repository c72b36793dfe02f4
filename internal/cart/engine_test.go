package cart

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peizhen/bookfair/internal/catalog"
	"github.com/peizhen/bookfair/internal/session"
)

type stepClock struct {
	t time.Time
}

func (c *stepClock) Now() time.Time {
	c.t = c.t.Add(time.Second)
	return c.t
}

type countingPersister struct {
	saves int
}

func (p *countingPersister) Save(*session.Session) error {
	p.saves++
	return nil
}

func newEngine() (*Engine, *countingPersister) {
	p := &countingPersister{}
	return New(session.NewSaver(p, nil), &stepClock{}), p
}

func book(id, name, price string, inStock bool) catalog.Book {
	return catalog.Book{
		ID:      id,
		Name:    name,
		Author:  "author",
		Cover:   "cover.jpg",
		Price:   decimal.RequireFromString(price),
		Score:   decimal.RequireFromString("9.0"),
		InStock: inStock,
	}
}

// TestAddToCart_Upsert verifies adding the same book twice converges on a
// single line with quantity 2, the keyed-upsert property that makes rapid
// repeated clicks safe.
func TestAddToCart_Upsert(t *testing.T) {
	e, p := newEngine()
	s := session.New()
	a := book("book-a", "三体", "88", true)

	n, err := e.AddToCart(s, a)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = e.AddToCart(s, a)
	require.NoError(t, err)
	assert.Equal(t, 1, n, "second add must not create a second line")

	item, ok := s.Line("book-a")
	require.True(t, ok)
	assert.Equal(t, 2, item.Quantity)
	assert.Equal(t, 2, p.saves)
}

// TestAddToCart_SnapshotsAtAddTime verifies the line freezes display fields
// and the discount price when first added.
func TestAddToCart_SnapshotsAtAddTime(t *testing.T) {
	e, _ := newEngine()
	s := session.New()
	b := book("book-b", "长安的荔枝", "45", true)

	_, err := e.AddToCart(s, b)
	require.NoError(t, err)

	item := s.Cart["book-b"]
	assert.Equal(t, "长安的荔枝", item.Name)
	assert.Equal(t, "author", item.Author)
	assert.True(t, item.UnitDiscountPrice.Equal(decimal.RequireFromString("22.5")))
	assert.False(t, item.AddedAt.IsZero())

	// A later catalog price change cannot reach the frozen snapshot.
	b.Price = decimal.NewFromInt(90)
	assert.True(t, item.UnitDiscountPrice.Equal(decimal.RequireFromString("22.5")))
}

// TestAddToCart_OutOfStockRejected verifies the contract violation is
// rejected with a ValidationError and the session stays unchanged.
func TestAddToCart_OutOfStockRejected(t *testing.T) {
	e, p := newEngine()
	s := session.New()

	n, err := e.AddToCart(s, book("book-c", "历史的遗憾", "59", false))

	require.Error(t, err)
	assert.True(t, IsValidation(err))
	assert.Equal(t, 0, n)
	assert.Empty(t, s.Cart)
	assert.Zero(t, p.saves, "rejected add must not persist")
}

func TestRemoveFromCart(t *testing.T) {
	e, p := newEngine()
	s := session.New()
	_, err := e.AddToCart(s, book("book-a", "a", "10", true))
	require.NoError(t, err)

	assert.Equal(t, 0, e.RemoveFromCart(s, "book-a"))
	assert.Empty(t, s.Cart)

	// Absent id is a no-op, not an error, and does not persist.
	before := p.saves
	assert.Equal(t, 0, e.RemoveFromCart(s, "book-missing"))
	assert.Equal(t, before, p.saves)
}

func TestIncrementDecrementQuantity(t *testing.T) {
	e, _ := newEngine()
	s := session.New()
	_, err := e.AddToCart(s, book("book-a", "a", "10", true))
	require.NoError(t, err)

	e.IncrementQuantity(s, "book-a")
	e.IncrementQuantity(s, "book-a")
	assert.Equal(t, 3, s.Cart["book-a"].Quantity)

	e.DecrementQuantity(s, "book-a")
	assert.Equal(t, 2, s.Cart["book-a"].Quantity)

	// No-ops on missing lines.
	e.IncrementQuantity(s, "book-missing")
	e.DecrementQuantity(s, "book-missing")
	assert.Equal(t, 1, s.LineCount())
}

// TestDecrementQuantity_ToZeroRemoves verifies a quantity-1 line disappears
// on decrement.
func TestDecrementQuantity_ToZeroRemoves(t *testing.T) {
	e, _ := newEngine()
	s := session.New()
	_, err := e.AddToCart(s, book("book-a", "a", "10", true))
	require.NoError(t, err)

	e.DecrementQuantity(s, "book-a")

	_, ok := s.Line("book-a")
	assert.False(t, ok)
	assert.Equal(t, 0, s.LineCount())
}

// TestClearCart verifies only the cart is emptied.
func TestClearCart(t *testing.T) {
	e, _ := newEngine()
	s := session.New()
	b := book("book-a", "a", "10", true)
	_, err := e.AddToCart(s, b)
	require.NoError(t, err)
	e.AddFavorite(s, b)
	s.History = append(s.History, session.HistoryEntry{Action: session.ActionLogin})

	e.ClearCart(s)

	assert.Empty(t, s.Cart)
	assert.Len(t, s.Favorites, 1)
	assert.Len(t, s.History, 1)
}

// TestTotal verifies the canonical scenario: two adds of an 88-yuan book
// total exactly 2 x 44.00.
func TestTotal(t *testing.T) {
	e, _ := newEngine()
	s := session.New()
	a := book("book-a", "三体", "88", true)

	_, err := e.AddToCart(s, a)
	require.NoError(t, err)
	_, err = e.AddToCart(s, a)
	require.NoError(t, err)

	assert.Equal(t, "88.00", e.Total(s).StringFixed(2))
}

func TestTotal_MixedLines(t *testing.T) {
	e, _ := newEngine()
	s := session.New()
	_, err := e.AddToCart(s, book("book-a", "a", "45", true)) // 22.50
	require.NoError(t, err)
	_, err = e.AddToCart(s, book("book-b", "b", "36", true)) // 18.00
	require.NoError(t, err)
	e.IncrementQuantity(s, "book-b") // 36.00

	assert.Equal(t, "58.50", e.Total(s).StringFixed(2))
}

func TestTotal_EmptyCart(t *testing.T) {
	e, _ := newEngine()
	assert.Equal(t, "0.00", e.Total(session.New()).StringFixed(2))
}

// TestAddFavorite_Idempotent verifies a second add of the same book leaves
// exactly one favorite and does not persist again.
func TestAddFavorite_Idempotent(t *testing.T) {
	e, p := newEngine()
	s := session.New()
	b := book("book-a", "a", "10", true)

	e.AddFavorite(s, b)
	first := p.saves
	e.AddFavorite(s, b)

	assert.Len(t, s.Favorites, 1)
	assert.Equal(t, first, p.saves)
}

func TestCheckout(t *testing.T) {
	e, _ := newEngine()
	s := session.New()
	_, err := e.AddToCart(s, book("book-a", "a", "88", true))
	require.NoError(t, err)

	total, err := e.Checkout(s)
	require.NoError(t, err)
	assert.Equal(t, "44.00", total.StringFixed(2))
	assert.Empty(t, s.Cart)

	_, err = e.Checkout(s)
	assert.ErrorIs(t, err, ErrEmptyCart)
}
