package harness

import (
	"fmt"

	"github.com/peizhen/bookfair/internal/cart"
	"github.com/peizhen/bookfair/internal/catalog"
	"github.com/peizhen/bookfair/internal/session"
)

// Assertion validates final session state or the last query result.
type Assertion struct {
	// Type selects the assertion:
	// - "cart_count": distinct cart lines equals Count
	// - "cart_total": cart total formats to Total
	// - "favorite_count": favorites equals Count
	// - "history": history actions equal Actions in order
	// - "result_names": last query result names equal Names in order
	// - "authenticated": auth flag equals Value
	Type string `yaml:"type"`

	// Count is the expected count (cart_count, favorite_count).
	Count int `yaml:"count,omitempty"`

	// Total is the expected cart total, formatted to 2 places (cart_total).
	Total string `yaml:"total,omitempty"`

	// Actions is the expected history sequence (history).
	Actions []string `yaml:"actions,omitempty"`

	// Names is the expected ordered result names (result_names).
	Names []string `yaml:"names,omitempty"`

	// Value is the expected auth flag (authenticated).
	Value bool `yaml:"value,omitempty"`
}

// Assertion type constants.
const (
	AssertCartCount     = "cart_count"
	AssertCartTotal     = "cart_total"
	AssertFavoriteCount = "favorite_count"
	AssertHistory       = "history"
	AssertResultNames   = "result_names"
	AssertAuthenticated = "authenticated"
)

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	switch a.Type {
	case AssertCartCount, AssertFavoriteCount:
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for %s", index, a.Type)
		}
	case AssertCartTotal:
		if a.Total == "" {
			return fmt.Errorf("assertions[%d]: total is required for cart_total", index)
		}
	case AssertHistory:
		if len(a.Actions) == 0 {
			return fmt.Errorf("assertions[%d]: actions list is required for history", index)
		}
	case AssertResultNames, AssertAuthenticated:
		// empty Names and false Value are meaningful expectations
	case "":
		return fmt.Errorf("assertions[%d]: type is required", index)
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}
	return nil
}

// AssertionContext carries the state assertions evaluate against.
type AssertionContext struct {
	Session *session.Session
	Engine  *cart.Engine

	// LastResults is the output of the most recent query step, nil if the
	// scenario ran no query.
	LastResults []catalog.Book
}

// EvaluateAssertions checks every assertion and returns failure messages.
func EvaluateAssertions(assertions []Assertion, actx *AssertionContext) []string {
	var failures []string
	for i, a := range assertions {
		if msg := evaluateOne(i, &a, actx); msg != "" {
			failures = append(failures, msg)
		}
	}
	return failures
}

func evaluateOne(index int, a *Assertion, actx *AssertionContext) string {
	switch a.Type {
	case AssertCartCount:
		if got := actx.Session.LineCount(); got != a.Count {
			return fmt.Sprintf("assertions[%d]: cart_count: got %d, want %d", index, got, a.Count)
		}
	case AssertCartTotal:
		if got := actx.Engine.Total(actx.Session).StringFixed(2); got != a.Total {
			return fmt.Sprintf("assertions[%d]: cart_total: got %s, want %s", index, got, a.Total)
		}
	case AssertFavoriteCount:
		if got := len(actx.Session.Favorites); got != a.Count {
			return fmt.Sprintf("assertions[%d]: favorite_count: got %d, want %d", index, got, a.Count)
		}
	case AssertHistory:
		got := make([]string, len(actx.Session.History))
		for i, h := range actx.Session.History {
			got[i] = string(h.Action)
		}
		if !equalStrings(got, a.Actions) {
			return fmt.Sprintf("assertions[%d]: history: got %v, want %v", index, got, a.Actions)
		}
	case AssertResultNames:
		got := make([]string, len(actx.LastResults))
		for i, b := range actx.LastResults {
			got[i] = b.Name
		}
		if !equalStrings(got, a.Names) {
			return fmt.Sprintf("assertions[%d]: result_names: got %v, want %v", index, got, a.Names)
		}
	case AssertAuthenticated:
		if actx.Session.Authenticated != a.Value {
			return fmt.Sprintf("assertions[%d]: authenticated: got %v, want %v", index, actx.Session.Authenticated, a.Value)
		}
	}
	return ""
}

func equalStrings(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}
