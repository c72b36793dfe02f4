package session

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// HistoryAction is the kind of an auth history record.
type HistoryAction string

const (
	ActionLogin  HistoryAction = "login"
	ActionLogout HistoryAction = "logout"
)

// CartItem is a quantity of one catalog entry held by the session.
//
// Display fields and the discount price are a snapshot copied at add time,
// so the cart is resilient to later catalog changes. BookID is a weak
// reference, looked up by id, never owned.
type CartItem struct {
	BookID            string
	Name              string
	Author            string
	Cover             string
	UnitDiscountPrice decimal.Decimal
	Quantity          int // always >= 1; a line that would drop below 1 is removed
	AddedAt           time.Time
}

// Favorite is an id plus display snapshot. One per BookID; never
// auto-removed.
type Favorite struct {
	BookID  string
	Name    string
	Author  string
	Cover   string
	AddedAt time.Time
}

// HistoryEntry is one append-only login/logout record.
type HistoryEntry struct {
	At     time.Time
	Action HistoryAction
}

// Session is the single per-user state.
//
// Cart and Favorites are keyed by BookID, which is what makes the cart's
// keyed-upsert semantics safe under rapid repeated adds: two quick adds of
// the same book converge on one line with quantity 2, never two lines.
type Session struct {
	Authenticated bool
	DisplayName   string
	Cart          map[string]*CartItem
	Favorites     map[string]*Favorite
	History       []HistoryEntry
}

// New returns the default session: unauthenticated, empty cart, favorites,
// and history. Restore falls back to this on any persistence problem.
func New() *Session {
	return &Session{
		Cart:      make(map[string]*CartItem),
		Favorites: make(map[string]*Favorite),
	}
}

// LineCount returns the number of distinct cart lines.
func (s *Session) LineCount() int {
	return len(s.Cart)
}

// Line returns the cart line for a book id.
func (s *Session) Line(bookID string) (*CartItem, bool) {
	item, ok := s.Cart[bookID]
	return item, ok
}

// Lines returns cart items ordered by add time, then by id for identical
// timestamps. Map iteration order would leak into display and golden traces
// otherwise.
func (s *Session) Lines() []*CartItem {
	out := make([]*CartItem, 0, len(s.Cart))
	for _, item := range s.Cart {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].AddedAt.Equal(out[j].AddedAt) {
			return out[i].AddedAt.Before(out[j].AddedAt)
		}
		return out[i].BookID < out[j].BookID
	})
	return out
}

// FavoriteList returns favorites ordered by add time, then id.
func (s *Session) FavoriteList() []*Favorite {
	out := make([]*Favorite, 0, len(s.Favorites))
	for _, f := range s.Favorites {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].AddedAt.Equal(out[j].AddedAt) {
			return out[i].AddedAt.Before(out[j].AddedAt)
		}
		return out[i].BookID < out[j].BookID
	})
	return out
}
