package cli

import (
	"bufio"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/peizhen/bookfair/internal/cart"
	"github.com/peizhen/bookfair/internal/query"
	"github.com/peizhen/bookfair/internal/sched"
)

// debounceDelay coalesces rapid filter edits into one query evaluation,
// matching the storefront's search-as-you-type behavior.
const debounceDelay = 300 * time.Millisecond

// watchInterval is the cart badge refresh period for "watch on".
const watchInterval = 5 * time.Second

// NewShellCommand creates the interactive shell command.
func NewShellCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Interactive storefront session",
		Long: `Run an interactive session against one live catalog and session.
Filter edits are debounced, so rapid keyword changes evaluate once;
"watch on" starts a periodic cart badge refresh.

Type "help" inside the shell for the command list.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := NewApp(rootOpts)
			if err != nil {
				return err
			}
			defer app.Close()

			sh := &shell{
				app:      app,
				opts:     rootOpts,
				out:      app.Renderer(rootOpts, cmd.OutOrStdout()),
				debounce: sched.NewDebouncer(debounceDelay),
			}
			defer sh.teardown()
			return sh.run(cmd)
		},
	}
}

// shell holds the live state of one interactive session. The mutex guards
// session and filter state against the debouncer and ticker goroutines.
type shell struct {
	app  *App
	opts *RootOptions
	out  *OutputFormatter

	mu     sync.Mutex
	filter query.Filter

	debounce *sched.Debouncer
	watch    sched.Ticker
}

func (s *shell) teardown() {
	s.debounce.Cancel()
	s.watch.Stop()
}

func (s *shell) run(cmd *cobra.Command) error {
	s.out.Notify("bookfair shell, type \"help\" for commands")
	scanner := bufio.NewScanner(cmd.InOrStdin())
	for {
		fmt.Fprint(cmd.OutOrStdout(), "> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if fields[0] == "quit" || fields[0] == "exit" {
			return nil
		}
		s.dispatch(fields[0], fields[1:])
	}
}

func (s *shell) dispatch(verb string, args []string) {
	switch verb {
	case "help":
		s.out.Notify(shellHelp)
	case "search":
		s.setFilter(func(f *query.Filter) { f.Keyword = strings.Join(args, " ") })
	case "sort":
		mode, err := query.ParseSortMode(strings.Join(args, "")) // empty args reset to default
		if err != nil {
			s.out.Notify(err.Error() + ", using default order")
		}
		s.setFilter(func(f *query.Filter) { f.Sort = mode })
	case "stock":
		on := len(args) > 0 && args[0] == "on"
		s.setFilter(func(f *query.Filter) { f.InStockOnly = on })
	case "list":
		s.debounce.Flush(s.render)
	case "login":
		if len(args) != 1 {
			s.out.Notify("usage: login <identifier>")
			return
		}
		s.withSession(func() {
			if err := s.app.Auth.Login(s.app.Session, args[0]); err != nil {
				s.out.Notify(err.Error())
				return
			}
			s.out.Notify("logged in as " + args[0])
		})
	case "logout":
		s.withSession(func() {
			s.app.Auth.Logout(s.app.Session)
			s.out.Notify("logged out")
		})
	case "history":
		s.withSession(func() { s.out.RenderHistory(s.app.Session.History) })
	case "categories":
		s.out.RenderCategories(s.app.Catalog.Categories())
	case "cart":
		s.cartVerb(args)
	case "fav":
		s.favVerb(args)
	case "watch":
		s.watchVerb(args)
	default:
		s.out.Notify("unknown command " + verb + ", type \"help\"")
	}
}

// setFilter applies an edit and schedules a debounced re-evaluation.
func (s *shell) setFilter(edit func(*query.Filter)) {
	s.mu.Lock()
	edit(&s.filter)
	s.mu.Unlock()
	s.debounce.Call(s.render)
}

func (s *shell) render() {
	s.mu.Lock()
	f := s.filter
	s.mu.Unlock()
	results := query.Run(s.app.Catalog.All(), f)
	if len(results) == 0 && f.Keyword != "" {
		s.out.Notify("no books match " + f.Keyword)
		return
	}
	s.out.RenderResults(results)
}

// withSession runs fn under the shell mutex. Session mutations share the
// lock with the watch ticker's badge reads.
func (s *shell) withSession(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn()
}

func (s *shell) cartVerb(args []string) {
	if len(args) == 0 {
		s.out.Notify("usage: cart add|remove|inc|dec|clear|show|checkout [id-or-name]")
		return
	}
	verb, rest := args[0], strings.Join(args[1:], " ")
	s.withSession(func() {
		switch verb {
		case "show":
			s.out.RenderCart(s.app.Session.Lines(), s.app.Cart.Total(s.app.Session))
			return
		case "clear":
			s.app.Cart.ClearCart(s.app.Session)
			s.out.RenderCartBadge(0)
			return
		case "checkout":
			total, err := s.app.Cart.Checkout(s.app.Session)
			if err != nil {
				if err == cart.ErrEmptyCart {
					s.out.Notify("cart is empty")
				} else {
					s.out.Notify(err.Error())
				}
				return
			}
			s.out.Notify("checked out ¥" + total.StringFixed(2))
			return
		}

		if !s.app.Session.Authenticated {
			s.out.Notify("please log in first")
			return
		}
		b, err := s.app.ResolveBook(rest)
		if err != nil {
			s.out.Notify(err.Error())
			return
		}
		switch verb {
		case "add":
			if !b.InStock {
				s.out.Notify(b.Name + " is out of stock")
				return
			}
			count, err := s.app.Cart.AddToCart(s.app.Session, b)
			if err != nil {
				s.out.Notify(err.Error())
				return
			}
			s.out.RenderCartBadge(count)
		case "remove":
			s.out.RenderCartBadge(s.app.Cart.RemoveFromCart(s.app.Session, b.ID))
		case "inc":
			s.app.Cart.IncrementQuantity(s.app.Session, b.ID)
			s.out.RenderCartBadge(s.app.Session.LineCount())
		case "dec":
			s.app.Cart.DecrementQuantity(s.app.Session, b.ID)
			s.out.RenderCartBadge(s.app.Session.LineCount())
		default:
			s.out.Notify("unknown cart verb " + verb)
		}
	})
}

func (s *shell) favVerb(args []string) {
	if len(args) == 0 {
		s.out.Notify("usage: fav add|list [id-or-name]")
		return
	}
	s.withSession(func() {
		switch args[0] {
		case "list":
			s.out.RenderFavorites(s.app.Session.FavoriteList())
		case "add":
			if !s.app.Session.Authenticated {
				s.out.Notify("please log in first")
				return
			}
			b, err := s.app.ResolveBook(strings.Join(args[1:], " "))
			if err != nil {
				s.out.Notify(err.Error())
				return
			}
			s.app.Cart.AddFavorite(s.app.Session, b)
			s.out.Notify("favorited " + b.Name)
		default:
			s.out.Notify("unknown fav verb " + args[0])
		}
	})
}

func (s *shell) watchVerb(args []string) {
	if len(args) == 0 || (args[0] != "on" && args[0] != "off") {
		s.out.Notify("usage: watch on|off")
		return
	}
	if args[0] == "off" {
		s.watch.Stop()
		return
	}
	s.watch.Start(watchInterval, func() {
		s.withSession(func() {
			s.out.RenderCartBadge(s.app.Session.LineCount())
		})
	})
}

const shellHelp = `commands:
  search <keyword>      set the keyword filter (debounced)
  sort <mode>           set sort mode (default|priceAsc|priceDesc|rating)
  stock on|off          toggle the in-stock filter
  list                  evaluate the pipeline now
  cart add|remove|inc|dec|clear|show|checkout [id-or-name]
  fav add|list [id-or-name]
  login <identifier> / logout / history
  categories
  watch on|off          periodic cart badge refresh
  quit`
