package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"

	"github.com/peizhen/bookfair/internal/catalog"
	"github.com/peizhen/bookfair/internal/session"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // successful execution
	ExitFailure      = 1 // operation failure (rejected op, no such book, etc.)
	ExitCommandError = 2 // command error (bad flags, database cannot open, etc.)
)

// ExitError carries a specific exit code out of a command.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error { return e.Err }

// NewExitError creates an ExitError with the given code and message.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error. Non-ExitErrors map to
// ExitFailure.
func GetExitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// Renderer is the interface the core renders through. The core decides
// message content; the renderer decides presentation.
type Renderer interface {
	RenderResults(books []catalog.Book)
	RenderCartBadge(count int)
	Notify(message string)
}

// OutputFormatter handles JSON vs text output and implements Renderer.
type OutputFormatter struct {
	Format string
	Writer io.Writer
}

// bookView is the JSON projection of a catalog entry for display output.
type bookView struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Author        string `json:"author"`
	Press         string `json:"press"`
	Category      string `json:"category"`
	Price         string `json:"price"`
	DiscountPrice string `json:"discountPrice"`
	Score         string `json:"score"`
	InStock       bool   `json:"inStock"`
}

func toView(b catalog.Book) bookView {
	return bookView{
		ID:            b.ID,
		Name:          b.Name,
		Author:        b.Author,
		Press:         b.Press,
		Category:      b.Category,
		Price:         b.Price.StringFixed(2),
		DiscountPrice: b.DiscountPrice().StringFixed(2),
		Score:         b.Score.String(),
		InStock:       b.InStock,
	}
}

// RenderResults prints the ordered result list.
func (f *OutputFormatter) RenderResults(books []catalog.Book) {
	if f.Format == "json" {
		views := make([]bookView, len(books))
		for i, b := range books {
			views[i] = toView(b)
		}
		_ = json.NewEncoder(f.Writer).Encode(views)
		return
	}
	for _, b := range books {
		stock := ""
		if !b.InStock {
			stock = "  [out of stock]"
		}
		fmt.Fprintf(f.Writer, "%-10s %s — %s  ¥%s (sale ¥%s)  %s/10%s\n",
			b.ID, b.Name, b.Author, b.Price.StringFixed(2),
			b.DiscountPrice().StringFixed(2), b.Score.String(), stock)
	}
}

// RenderCartBadge prints the distinct line count after a cart mutation.
func (f *OutputFormatter) RenderCartBadge(count int) {
	if f.Format == "json" {
		_ = json.NewEncoder(f.Writer).Encode(map[string]int{"cartLines": count})
		return
	}
	fmt.Fprintf(f.Writer, "cart: %d line(s)\n", count)
}

// Notify surfaces an outcome message.
func (f *OutputFormatter) Notify(message string) {
	if f.Format == "json" {
		_ = json.NewEncoder(f.Writer).Encode(map[string]string{"notice": message})
		return
	}
	fmt.Fprintln(f.Writer, message)
}

// lineView is the JSON projection of one cart line.
type lineView struct {
	BookID            string `json:"catalogId"`
	Name              string `json:"name"`
	Author            string `json:"author"`
	UnitDiscountPrice string `json:"unitDiscountPrice"`
	Quantity          int    `json:"quantity"`
	LineTotal         string `json:"lineTotal"`
}

// RenderCart prints cart lines in add order with the cart total.
func (f *OutputFormatter) RenderCart(lines []*session.CartItem, total decimal.Decimal) {
	if f.Format == "json" {
		views := make([]lineView, len(lines))
		for i, l := range lines {
			views[i] = lineView{
				BookID:            l.BookID,
				Name:              l.Name,
				Author:            l.Author,
				UnitDiscountPrice: l.UnitDiscountPrice.StringFixed(2),
				Quantity:          l.Quantity,
				LineTotal:         l.UnitDiscountPrice.Mul(decimal.NewFromInt(int64(l.Quantity))).Round(2).StringFixed(2),
			}
		}
		_ = json.NewEncoder(f.Writer).Encode(struct {
			Lines []lineView `json:"lines"`
			Total string     `json:"total"`
		}{Lines: views, Total: total.StringFixed(2)})
		return
	}
	for _, l := range lines {
		fmt.Fprintf(f.Writer, "%-10s %s — %s  ¥%s × %d\n",
			l.BookID, l.Name, l.Author, l.UnitDiscountPrice.StringFixed(2), l.Quantity)
	}
	fmt.Fprintf(f.Writer, "total: ¥%s\n", total.StringFixed(2))
}

// RenderFavorites prints favorites in add order.
func (f *OutputFormatter) RenderFavorites(favs []*session.Favorite) {
	if f.Format == "json" {
		type favView struct {
			BookID string `json:"catalogId"`
			Name   string `json:"name"`
			Author string `json:"author"`
		}
		views := make([]favView, len(favs))
		for i, fav := range favs {
			views[i] = favView{BookID: fav.BookID, Name: fav.Name, Author: fav.Author}
		}
		_ = json.NewEncoder(f.Writer).Encode(views)
		return
	}
	for _, fav := range favs {
		fmt.Fprintf(f.Writer, "%-10s %s — %s\n", fav.BookID, fav.Name, fav.Author)
	}
}

// RenderHistory prints auth history entries in append order.
func (f *OutputFormatter) RenderHistory(entries []session.HistoryEntry) {
	if f.Format == "json" {
		type historyView struct {
			Timestamp time.Time `json:"timestamp"`
			Action    string    `json:"action"`
		}
		views := make([]historyView, len(entries))
		for i, h := range entries {
			views[i] = historyView{Timestamp: h.At, Action: string(h.Action)}
		}
		_ = json.NewEncoder(f.Writer).Encode(views)
		return
	}
	for _, h := range entries {
		fmt.Fprintf(f.Writer, "%s  %s\n", h.At.Format(time.RFC3339), h.Action)
	}
}

// RenderCategories prints per-category counts.
func (f *OutputFormatter) RenderCategories(cats []catalog.CategorySummary) {
	if f.Format == "json" {
		type catView struct {
			Name  string `json:"name"`
			Count int    `json:"count"`
		}
		views := make([]catView, len(cats))
		for i, c := range cats {
			views[i] = catView{Name: c.Name, Count: c.Count}
		}
		_ = json.NewEncoder(f.Writer).Encode(views)
		return
	}
	for _, c := range cats {
		fmt.Fprintf(f.Writer, "%-12s %d\n", c.Name, c.Count)
	}
}
