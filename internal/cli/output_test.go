package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peizhen/bookfair/internal/catalog"
	"github.com/peizhen/bookfair/internal/session"
)

func TestOutputFormatter_JSONResults(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "json", Writer: buf}

	formatter.RenderResults(catalog.DefaultSeed()[:2])

	var views []bookView
	require.NoError(t, json.Unmarshal(buf.Bytes(), &views))
	require.Len(t, views, 2)
	assert.Equal(t, "长安的荔枝", views[0].Name)
	assert.Equal(t, "45.00", views[0].Price)
	assert.Equal(t, "22.50", views[0].DiscountPrice)
	assert.True(t, views[0].InStock)
}

func TestOutputFormatter_TextResults(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "text", Writer: buf}

	formatter.RenderResults(catalog.DefaultSeed())

	out := buf.String()
	assert.Contains(t, out, "三体")
	assert.Contains(t, out, "44.00")
	// the one out-of-stock seed entry is flagged
	assert.Contains(t, out, "[out of stock]")
}

func TestOutputFormatter_CartBadge(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "json", Writer: buf}

	formatter.RenderCartBadge(3)

	var badge map[string]int
	require.NoError(t, json.Unmarshal(buf.Bytes(), &badge))
	assert.Equal(t, 3, badge["cartLines"])
}

func TestOutputFormatter_Notify(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "text", Writer: buf}

	formatter.Notify("please log in first")

	assert.Equal(t, "please log in first\n", buf.String())
}

func TestOutputFormatter_Cart(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "json", Writer: buf}

	lines := []*session.CartItem{
		{
			BookID:            "book-002",
			Name:              "三体",
			Author:            "刘慈欣",
			UnitDiscountPrice: decimal.RequireFromString("44"),
			Quantity:          2,
			AddedAt:           time.Date(2025, 6, 1, 12, 0, 1, 0, time.UTC),
		},
	}
	formatter.RenderCart(lines, decimal.RequireFromString("88"))

	var view struct {
		Lines []lineView `json:"lines"`
		Total string     `json:"total"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &view))
	require.Len(t, view.Lines, 1)
	assert.Equal(t, "44.00", view.Lines[0].UnitDiscountPrice)
	assert.Equal(t, "88.00", view.Lines[0].LineTotal)
	assert.Equal(t, "88.00", view.Total)
}

func TestExitError_Codes(t *testing.T) {
	plain := NewExitError(ExitCommandError, "bad flag")
	assert.Equal(t, ExitCommandError, GetExitCode(plain))
	assert.Equal(t, "bad flag", plain.Error())

	wrapped := WrapExitError(ExitFailure, "add to cart", errors.New("no such book"))
	assert.Equal(t, ExitFailure, GetExitCode(wrapped))
	assert.Contains(t, wrapped.Error(), "no such book")
	assert.ErrorContains(t, errors.Unwrap(wrapped), "no such book")

	// non-ExitErrors map to the generic failure code
	assert.Equal(t, ExitFailure, GetExitCode(errors.New("boom")))
}
