// Package harness executes conformance scenarios against the real
// storefront engines. Each scenario runs a step sequence through the
// session manager, cart engine, and query pipeline with a deterministic
// clock and the built-in catalog, then asserts on final state. The
// resulting trace is stable run over run, so it can be compared against
// golden files.
package harness

import (
	"fmt"

	"github.com/peizhen/bookfair/internal/cart"
	"github.com/peizhen/bookfair/internal/catalog"
	"github.com/peizhen/bookfair/internal/query"
	"github.com/peizhen/bookfair/internal/session"
	"github.com/peizhen/bookfair/internal/store"
	"github.com/peizhen/bookfair/internal/testutil"
)

// Harness holds the live state for one scenario execution.
type Harness struct {
	catalog *catalog.Store
	session *session.Session
	engine  *cart.Engine
	manager *session.Manager

	lastResults []catalog.Book
}

// Run executes a scenario and returns the result.
//
// Each scenario runs against a fresh in-memory SQLite store, the built-in
// catalog, and a stepping clock, so cart timestamps and history order are
// reproducible. After the steps, the persisted slot is restored and checked
// against the live session; a divergence is a harness-detected defect even
// if every scenario assertion holds.
func Run(scenario *Scenario) (*Result, error) {
	st, err := store.Open(":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory store: %w", err)
	}
	defer st.Close()

	cat := catalog.NewStore(nil)
	if err := cat.Load(catalog.DefaultSeed()); err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	clock := testutil.NewClock()
	saver := session.NewSaver(st, nil)

	h := &Harness{
		catalog: cat,
		session: session.New(),
		engine:  cart.New(saver, clock),
		manager: session.NewManager(saver, clock),
	}

	result := NewResult()
	for i, step := range scenario.Steps {
		if err := h.executeStep(&step, result); err != nil {
			return nil, fmt.Errorf("step %d (%s): %w", i, step.Op, err)
		}
	}

	// Round-trip the persisted slot against the live session.
	restored, restoreErr := st.Restore()
	if restoreErr != nil {
		result.AddError(fmt.Sprintf("restore after steps: %v", restoreErr))
	} else if restored.LineCount() != h.session.LineCount() ||
		len(restored.Favorites) != len(h.session.Favorites) ||
		len(restored.History) != len(h.session.History) {
		result.AddError("restored session diverged from live session")
	}

	actx := &AssertionContext{
		Session:     h.session,
		Engine:      h.engine,
		LastResults: h.lastResults,
	}
	for _, msg := range EvaluateAssertions(scenario.Assertions, actx) {
		result.AddError(msg)
	}
	return result, nil
}

// executeStep runs one step and appends its trace event. Operation
// rejections are recorded as outcomes, not returned as errors: a scenario
// may deliberately drive a rejection.
func (h *Harness) executeStep(step *Step, result *Result) error {
	switch step.Op {
	case OpLogin:
		args := map[string]any{"identifier": step.Identifier}
		if err := h.manager.Login(h.session, step.Identifier); err != nil {
			result.AddEvent(step.Op, args, rejected(err), nil)
			return nil
		}
		result.AddEvent(step.Op, args, "ok", nil)

	case OpLogout:
		h.manager.Logout(h.session)
		result.AddEvent(step.Op, nil, "ok", nil)

	case OpCartAdd:
		args := map[string]any{"book": step.Book}
		b, ok := h.catalog.Get(step.Book)
		if !ok {
			result.AddEvent(step.Op, args, "rejected: no such book", nil)
			return nil
		}
		count, err := h.engine.AddToCart(h.session, b)
		if err != nil {
			result.AddEvent(step.Op, args, rejected(err), nil)
			return nil
		}
		result.AddEvent(step.Op, args, "ok", map[string]any{"cartLines": count})

	case OpCartRemove:
		count := h.engine.RemoveFromCart(h.session, step.Book)
		result.AddEvent(step.Op, map[string]any{"book": step.Book}, "ok", map[string]any{"cartLines": count})

	case OpCartInc:
		h.engine.IncrementQuantity(h.session, step.Book)
		result.AddEvent(step.Op, map[string]any{"book": step.Book}, "ok", map[string]any{"cartLines": h.session.LineCount()})

	case OpCartDec:
		h.engine.DecrementQuantity(h.session, step.Book)
		result.AddEvent(step.Op, map[string]any{"book": step.Book}, "ok", map[string]any{"cartLines": h.session.LineCount()})

	case OpCartClear:
		h.engine.ClearCart(h.session)
		result.AddEvent(step.Op, nil, "ok", nil)

	case OpCartCheckout:
		total, err := h.engine.Checkout(h.session)
		if err != nil {
			result.AddEvent(step.Op, nil, rejected(err), nil)
			return nil
		}
		result.AddEvent(step.Op, nil, "ok", map[string]any{"total": total.StringFixed(2)})

	case OpFavAdd:
		args := map[string]any{"book": step.Book}
		b, ok := h.catalog.Get(step.Book)
		if !ok {
			result.AddEvent(step.Op, args, "rejected: no such book", nil)
			return nil
		}
		h.engine.AddFavorite(h.session, b)
		result.AddEvent(step.Op, args, "ok", map[string]any{"favorites": len(h.session.Favorites)})

	case OpQuery:
		mode, verr := query.ParseSortMode(step.Sort)
		outcome := "ok"
		if verr != nil {
			outcome = rejected(verr) // pipeline still runs with the default order
		}
		h.lastResults = query.Run(h.catalog.All(), query.Filter{
			Keyword:     step.Keyword,
			Sort:        mode,
			InStockOnly: step.InStock,
		})
		names := make([]any, len(h.lastResults))
		for i, b := range h.lastResults {
			names[i] = b.Name
		}
		args := map[string]any{}
		if step.Keyword != "" {
			args["keyword"] = step.Keyword
		}
		if step.Sort != "" {
			args["sort"] = step.Sort
		}
		if step.InStock {
			args["inStock"] = true
		}
		if len(args) == 0 {
			args = nil
		}
		result.AddEvent(step.Op, args, outcome, map[string]any{"names": names})

	default:
		return fmt.Errorf("unknown op %q", step.Op)
	}
	return nil
}

func rejected(err error) string {
	return "rejected: " + err.Error()
}
