package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peizhen/bookfair/internal/sched"
)

func newTestShell(t *testing.T) (*shell, *bytes.Buffer) {
	t.Helper()
	opts := &RootOptions{Format: "text"}
	app, err := NewApp(opts)
	require.NoError(t, err)
	t.Cleanup(app.Close)

	buf := &bytes.Buffer{}
	sh := &shell{
		app:      app,
		opts:     opts,
		out:      &OutputFormatter{Format: "text", Writer: buf},
		debounce: sched.NewDebouncer(50 * time.Millisecond),
	}
	t.Cleanup(sh.teardown)
	return sh, buf
}

func TestShell_ListRendersCatalog(t *testing.T) {
	sh, buf := newTestShell(t)

	sh.dispatch("list", nil)

	assert.Contains(t, buf.String(), "三体")
	assert.Equal(t, 9, strings.Count(buf.String(), "book-0"))
}

func TestShell_SearchDebounced(t *testing.T) {
	sh, buf := newTestShell(t)

	// rapid edits coalesce into one evaluation of the final keyword
	sh.dispatch("search", []string{"历史"})
	sh.dispatch("search", []string{"科幻"})

	assert.Eventually(t, func() bool {
		return strings.Contains(buf.String(), "三体")
	}, time.Second, 5*time.Millisecond)
	assert.NotContains(t, buf.String(), "长安的荔枝")
}

func TestShell_CartRequiresLogin(t *testing.T) {
	sh, buf := newTestShell(t)

	sh.dispatch("cart", []string{"add", "三体"})
	assert.Contains(t, buf.String(), "please log in first")

	sh.dispatch("login", []string{"reader@example.com"})
	buf.Reset()
	sh.dispatch("cart", []string{"add", "三体"})
	assert.Contains(t, buf.String(), "cart: 1 line(s)")
}

func TestShell_UnknownCommand(t *testing.T) {
	sh, buf := newTestShell(t)

	sh.dispatch("frobnicate", nil)
	assert.Contains(t, buf.String(), "unknown command")
}
