package harness

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peizhen/bookfair/internal/cart"
	"github.com/peizhen/bookfair/internal/catalog"
	"github.com/peizhen/bookfair/internal/session"
	"github.com/peizhen/bookfair/internal/testutil"
)

func testContext(t *testing.T) *AssertionContext {
	t.Helper()
	cat := catalog.NewStore(nil)
	require.NoError(t, cat.Load(catalog.DefaultSeed()))

	clock := testutil.NewClock()
	eng := cart.New(session.NewSaver(session.NopPersister{}, nil), clock)
	sess := session.New()

	b, ok := cat.Get("book-002")
	require.True(t, ok)
	_, err := eng.AddToCart(sess, b)
	require.NoError(t, err)

	sess.History = append(sess.History,
		session.HistoryEntry{At: time.Now(), Action: session.ActionLogin})
	sess.Authenticated = true

	return &AssertionContext{Session: sess, Engine: eng}
}

func TestEvaluateAssertions_AllPass(t *testing.T) {
	actx := testContext(t)

	failures := EvaluateAssertions([]Assertion{
		{Type: AssertCartCount, Count: 1},
		{Type: AssertCartTotal, Total: "44.00"},
		{Type: AssertFavoriteCount, Count: 0},
		{Type: AssertHistory, Actions: []string{"login"}},
		{Type: AssertAuthenticated, Value: true},
	}, actx)

	assert.Empty(t, failures)
}

func TestEvaluateAssertions_Failures(t *testing.T) {
	actx := testContext(t)

	failures := EvaluateAssertions([]Assertion{
		{Type: AssertCartCount, Count: 3},
		{Type: AssertCartTotal, Total: "1.00"},
		{Type: AssertHistory, Actions: []string{"login", "logout"}},
		{Type: AssertAuthenticated, Value: false},
	}, actx)

	require.Len(t, failures, 4)
	assert.Contains(t, failures[0], "cart_count")
	assert.Contains(t, failures[1], "cart_total")
	assert.Contains(t, failures[2], "history")
	assert.Contains(t, failures[3], "authenticated")
}

func TestEvaluateAssertions_ResultNames(t *testing.T) {
	actx := testContext(t)
	actx.LastResults = []catalog.Book{{Name: "三体"}, {Name: "论语"}}

	assert.Empty(t, EvaluateAssertions([]Assertion{
		{Type: AssertResultNames, Names: []string{"三体", "论语"}},
	}, actx))

	failures := EvaluateAssertions([]Assertion{
		{Type: AssertResultNames, Names: []string{"论语", "三体"}},
	}, actx)
	require.Len(t, failures, 1)
	assert.Contains(t, failures[0], "result_names")
}
