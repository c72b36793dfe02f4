package catalog

import (
	"fmt"
	"sort"
)

// Store holds the catalog for the lifetime of a session.
//
// Load replaces the catalog wholesale; there are no partial updates. All
// reads return copies in load order, so callers can never mutate the
// store's view of an entry.
type Store struct {
	gen   IDGenerator
	books []Book
	byID  map[string]int // id -> index in books
}

// NewStore creates an empty store. Books whose seed data lacks an ID get
// one from gen during Load; pass nil to default to UUIDv7Generator.
func NewStore(gen IDGenerator) *Store {
	if gen == nil {
		gen = UUIDv7Generator{}
	}
	return &Store{gen: gen, byID: make(map[string]int)}
}

// Load replaces the current catalog with the given seed, preserving seed
// order. Entries without an ID are assigned one. Returns an error if any
// entry fails validation or two entries share an ID; on error the previous
// catalog is left untouched.
func (s *Store) Load(seed []Book) error {
	books := make([]Book, len(seed))
	byID := make(map[string]int, len(seed))
	for i, b := range seed {
		built, err := NewBook(s.gen, b)
		if err != nil {
			return fmt.Errorf("load catalog: %w", err)
		}
		if prev, dup := byID[built.ID]; dup {
			return fmt.Errorf("load catalog: duplicate id %q (entries %d and %d)", built.ID, prev, i)
		}
		books[i] = built
		byID[built.ID] = i
	}
	s.books = books
	s.byID = byID
	return nil
}

// All returns a copy of the catalog in load order.
func (s *Store) All() []Book {
	out := make([]Book, len(s.books))
	copy(out, s.books)
	return out
}

// Get returns the book with the given ID.
func (s *Store) Get(id string) (Book, bool) {
	i, ok := s.byID[id]
	if !ok {
		return Book{}, false
	}
	return s.books[i], true
}

// Len returns the number of catalog entries.
func (s *Store) Len() int {
	return len(s.books)
}

// CategorySummary is an aggregate over one category.
type CategorySummary struct {
	Name  string
	Count int
}

// Categories returns per-category book counts, sorted by name for stable
// display output.
func (s *Store) Categories() []CategorySummary {
	counts := make(map[string]int)
	for _, b := range s.books {
		counts[b.Category]++
	}
	out := make([]CategorySummary, 0, len(counts))
	for name, n := range counts {
		out = append(out, CategorySummary{Name: name, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
