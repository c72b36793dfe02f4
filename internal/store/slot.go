package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/peizhen/bookfair/internal/session"
)

// persistedSession is the wire form of the session slot. Field names are
// the storefront's persisted-state contract; decimals serialize as strings.
type persistedSession struct {
	IsAuthenticated bool               `json:"isAuthenticated"`
	DisplayName     string             `json:"displayName"`
	Cart            []persistedLine    `json:"cart"`
	Favorites       []persistedFav     `json:"favorites"`
	History         []persistedHistory `json:"history"`
}

type persistedLine struct {
	CatalogID         string          `json:"catalogId"`
	Name              string          `json:"name"`
	Author            string          `json:"author"`
	CoverRef          string          `json:"coverRef"`
	UnitDiscountPrice decimal.Decimal `json:"unitDiscountPrice"`
	Quantity          int             `json:"quantity"`
	AddedAt           time.Time       `json:"addedAt"`
}

type persistedFav struct {
	CatalogID string    `json:"catalogId"`
	Name      string    `json:"name"`
	Author    string    `json:"author"`
	CoverRef  string    `json:"coverRef"`
	AddedAt   time.Time `json:"addedAt"`
}

type persistedHistory struct {
	Timestamp time.Time `json:"timestamp"`
	Action    string    `json:"action"`
}

// Save serializes the session into the slot. Failures come back as a
// *PersistenceError; Save never panics past its boundary.
func (s *Store) Save(sess *session.Session) error {
	payload, err := json.Marshal(encodeSession(sess))
	if err != nil {
		return &PersistenceError{Op: "marshal session", Err: err}
	}
	_, err = s.db.Exec(`
		INSERT INTO session_slot (id, payload, schema_ver, updated_at)
		VALUES (1, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			payload = excluded.payload,
			schema_ver = excluded.schema_ver,
			updated_at = excluded.updated_at
	`, string(payload), payloadSchemaVersion, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return &PersistenceError{Op: "write session slot", Err: err}
	}
	return nil
}

// Restore reads the slot and rebuilds the session. On a missing slot,
// parse failure, or schema mismatch it returns a fresh default session:
// fail-open, so a corrupted slot never blocks the storefront. The returned
// error is advisory: it explains why a default was returned and is nil on
// a clean restore or an empty slot. Callers log it and use the session
// either way.
func (s *Store) Restore() (*session.Session, error) {
	var payload string
	var ver int
	err := s.db.QueryRow(`SELECT payload, schema_ver FROM session_slot WHERE id = 1`).Scan(&payload, &ver)
	if errors.Is(err, sql.ErrNoRows) {
		return session.New(), nil
	}
	if err != nil {
		return session.New(), &PersistenceError{Op: "read session slot", Err: err}
	}
	if ver != payloadSchemaVersion {
		return session.New(), &PersistenceError{
			Op:  "read session slot",
			Err: fmt.Errorf("schema version %d, want %d", ver, payloadSchemaVersion),
		}
	}

	var p persistedSession
	if err := json.Unmarshal([]byte(payload), &p); err != nil {
		return session.New(), &PersistenceError{Op: "parse session slot", Err: err}
	}
	sess, err := decodeSession(&p)
	if err != nil {
		return session.New(), &PersistenceError{Op: "decode session slot", Err: err}
	}
	return sess, nil
}

func encodeSession(sess *session.Session) *persistedSession {
	p := &persistedSession{
		IsAuthenticated: sess.Authenticated,
		DisplayName:     sess.DisplayName,
		Cart:            []persistedLine{},
		Favorites:       []persistedFav{},
		History:         []persistedHistory{},
	}
	for _, item := range sess.Lines() {
		p.Cart = append(p.Cart, persistedLine{
			CatalogID:         item.BookID,
			Name:              item.Name,
			Author:            item.Author,
			CoverRef:          item.Cover,
			UnitDiscountPrice: item.UnitDiscountPrice,
			Quantity:          item.Quantity,
			AddedAt:           item.AddedAt,
		})
	}
	for _, f := range sess.FavoriteList() {
		p.Favorites = append(p.Favorites, persistedFav{
			CatalogID: f.BookID,
			Name:      f.Name,
			Author:    f.Author,
			CoverRef:  f.Cover,
			AddedAt:   f.AddedAt,
		})
	}
	for _, h := range sess.History {
		p.History = append(p.History, persistedHistory{Timestamp: h.At, Action: string(h.Action)})
	}
	return p
}

func decodeSession(p *persistedSession) (*session.Session, error) {
	sess := session.New()
	sess.Authenticated = p.IsAuthenticated
	sess.DisplayName = p.DisplayName
	for _, line := range p.Cart {
		if line.CatalogID == "" {
			return nil, fmt.Errorf("cart line missing catalogId")
		}
		if line.Quantity < 1 {
			return nil, fmt.Errorf("cart line %q: quantity %d out of range", line.CatalogID, line.Quantity)
		}
		if _, dup := sess.Cart[line.CatalogID]; dup {
			return nil, fmt.Errorf("cart line %q duplicated", line.CatalogID)
		}
		sess.Cart[line.CatalogID] = &session.CartItem{
			BookID:            line.CatalogID,
			Name:              line.Name,
			Author:            line.Author,
			Cover:             line.CoverRef,
			UnitDiscountPrice: line.UnitDiscountPrice,
			Quantity:          line.Quantity,
			AddedAt:           line.AddedAt,
		}
	}
	for _, f := range p.Favorites {
		if f.CatalogID == "" {
			return nil, fmt.Errorf("favorite missing catalogId")
		}
		sess.Favorites[f.CatalogID] = &session.Favorite{
			BookID:  f.CatalogID,
			Name:    f.Name,
			Author:  f.Author,
			Cover:   f.CoverRef,
			AddedAt: f.AddedAt,
		}
	}
	for _, h := range p.History {
		action := session.HistoryAction(h.Action)
		if action != session.ActionLogin && action != session.ActionLogout {
			return nil, fmt.Errorf("history action %q unknown", h.Action)
		}
		sess.History = append(sess.History, session.HistoryEntry{At: h.Timestamp, Action: action})
	}
	return sess, nil
}
