// Package catalog keeps the fetched gig list and decides which part of it is
// on screen: pagination, search and live suggestions.
package catalog

import (
	"context"
	"fmt"
	"log"
	"strings"

	"gigboard/internal/domain"
)

// Defaults used when no option overrides them
const (
	DefaultPageSize           = 15
	DefaultSuggestionLimit    = 5
	DefaultSuggestionMinChars = 2
)

// GigSource loads gigs from the marketplace
type GigSource interface {
	ListGigs(ctx context.Context, q domain.GigQuery) ([]domain.Gig, error)
}

// EmptyState is the single placeholder shown instead of cards
type EmptyState struct {
	Title   string
	Message string
}

// Output is what the gig grid currently shows
type Output struct {
	Cards    []domain.Gig
	Empty    *EmptyState
	ShowMore bool
	// CountInfo is "Showing <n> of <total> gigs", set while ShowMore is true
	CountInfo string
}

// Controller owns the gig list and the rendered window onto it.
// It is not safe for concurrent use; the UI calls it from its update loop.
type Controller struct {
	source       GigSource
	pageSize     int
	suggestLimit int
	suggestMin   int

	all       []domain.Gig
	current   []domain.Gig
	displayed int
	term      string
	query     domain.GigQuery
	loadErr   error
	out       Output
}

// Option configures a Controller
type Option func(*Controller)

// WithPageSize sets how many cards one page adds
func WithPageSize(n int) Option {
	return func(c *Controller) {
		if n > 0 {
			c.pageSize = n
		}
	}
}

// WithSuggestions sets the suggestion cap and the minimum term length
func WithSuggestions(limit, minChars int) Option {
	return func(c *Controller) {
		if limit > 0 {
			c.suggestLimit = limit
		}
		if minChars > 0 {
			c.suggestMin = minChars
		}
	}
}

// New creates a controller reading from source
func New(source GigSource, opts ...Option) *Controller {
	c := &Controller{
		source:       source,
		pageSize:     DefaultPageSize,
		suggestLimit: DefaultSuggestionLimit,
		suggestMin:   DefaultSuggestionMinChars,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch loads the gigs matching q and renders the first page.
// Failures are logged and shown as an empty state, never returned.
func (c *Controller) Fetch(ctx context.Context, q domain.GigQuery) {
	gigs, err := c.source.ListGigs(ctx, q)
	c.Apply(q, gigs, err)
}

// Apply installs the result of a fetch that ran elsewhere (a tea.Cmd) as if
// Fetch had produced it. The search term is cleared.
func (c *Controller) Apply(q domain.GigQuery, gigs []domain.Gig, err error) {
	c.query = q
	c.term = ""
	c.displayed = 0

	if err != nil {
		log.Printf("Error loading gigs: %v", err)
		c.all = nil
		c.loadErr = err
	} else {
		c.all = gigs
		c.loadErr = nil
		log.Printf("Loaded %d gigs", len(gigs))
	}

	c.Render(c.all, false)
}

// Render shows gigs. Without append the grid is cleared and starts over at
// the first page; with append the next page is added after the cursor.
func (c *Controller) Render(gigs []domain.Gig, appendPage bool) {
	if !appendPage {
		c.out = Output{}
		c.displayed = 0
	}
	c.current = gigs

	if len(gigs) == 0 {
		c.out = Output{Empty: c.emptyState()}
		c.displayed = 0
		return
	}

	start := c.displayed
	if start > len(gigs) {
		start = len(gigs)
	}
	end := min(start+c.pageSize, len(gigs))

	c.out.Cards = append(c.out.Cards, gigs[start:end]...)
	c.displayed = end

	c.out.ShowMore = c.displayed < len(gigs)
	c.out.CountInfo = ""
	if c.out.ShowMore {
		c.out.CountInfo = fmt.Sprintf("Showing %d of %d gigs", c.displayed, len(gigs))
	}
}

// ShowMore appends the next page of the current list
func (c *Controller) ShowMore() {
	c.Render(c.current, true)
}

func (c *Controller) emptyState() *EmptyState {
	switch {
	case c.loadErr != nil:
		return &EmptyState{Title: "Error Loading Gigs", Message: "Please try again later."}
	case c.term != "":
		return &EmptyState{
			Title:   "No gigs found",
			Message: fmt.Sprintf(`No results for "%s". Try different keywords.`, c.term),
		}
	default:
		return &EmptyState{Title: "No gigs found", Message: "Check back later for new services."}
	}
}

// Search filters the full list by term and renders the result from the
// first page. An empty term shows everything.
func (c *Controller) Search(term string) []domain.Gig {
	c.term = strings.TrimSpace(term)
	matches := Filter(c.all, c.term)
	c.Render(matches, false)
	return matches
}

// ClearSearch drops the term and shows the full list again
func (c *Controller) ClearSearch() {
	c.Search("")
}

// Filter returns the gigs whose title, description, category or seller name
// contains term, ignoring case. Order is preserved.
func Filter(gigs []domain.Gig, term string) []domain.Gig {
	q := strings.ToLower(strings.TrimSpace(term))
	if q == "" {
		return gigs
	}

	var out []domain.Gig
	for _, g := range gigs {
		if Matches(g, q) {
			out = append(out, g)
		}
	}
	return out
}

// Matches reports whether g contains the lowercased query q in one of its
// searchable fields
func Matches(g domain.Gig, q string) bool {
	return strings.Contains(strings.ToLower(g.Title), q) ||
		strings.Contains(strings.ToLower(g.Description), q) ||
		strings.Contains(strings.ToLower(g.Category), q) ||
		strings.Contains(strings.ToLower(g.SellerName), q)
}

// Suggestions is the dropdown shown while typing
type Suggestions struct {
	Visible bool
	Items   []domain.Gig
	// More counts matches beyond Items
	More int
	// Footer is set when More > 0
	Footer string
	// NoMatch is set when nothing matched
	NoMatch string
}

// Suggest returns at most the configured number of matches for term.
// Terms shorter than the minimum length hide the dropdown.
func (c *Controller) Suggest(term string) Suggestions {
	q := strings.ToLower(strings.TrimSpace(term))
	if len([]rune(q)) < c.suggestMin {
		return Suggestions{}
	}

	matches := Filter(c.all, q)
	if len(matches) == 0 {
		return Suggestions{Visible: true, NoMatch: fmt.Sprintf(`No gigs found for "%s"`, q)}
	}

	s := Suggestions{Visible: true}
	n := min(len(matches), c.suggestLimit)
	s.Items = matches[:n:n]
	if len(matches) > n {
		s.More = len(matches) - n
		s.Footer = fmt.Sprintf("+%d more results. Press Enter to view all.", s.More)
	}
	return s
}

// ResultsInfo describes what the grid is showing: the search match count
// while a term is active, otherwise the category or named filter.
// It is empty when there is nothing to say.
func (c *Controller) ResultsInfo() string {
	if c.term != "" {
		n := len(c.current)
		return fmt.Sprintf(`Found %d %s matching "%s"`, n, plural(n), c.term)
	}
	n := len(c.all)
	switch {
	case c.query.Category != "":
		return fmt.Sprintf(`Showing %d %s in "%s"`, n, plural(n), c.query.Category)
	case c.query.Filter == domain.FilterTopRated:
		return fmt.Sprintf("Showing %d top-rated %s", n, plural(n))
	case c.query.Filter == domain.FilterNew:
		return fmt.Sprintf("Showing %d new %s", n, plural(n))
	}
	return ""
}

func plural(n int) string {
	if n == 1 {
		return "gig"
	}
	return "gigs"
}

// Output returns what the grid currently shows
func (c *Controller) Output() Output {
	return c.out
}

// Displayed returns the number of rendered cards
func (c *Controller) Displayed() int {
	return c.displayed
}

// All returns the full fetched list
func (c *Controller) All() []domain.Gig {
	return c.all
}

// Current returns the list the grid paginates over
func (c *Controller) Current() []domain.Gig {
	return c.current
}

// Term returns the active search term
func (c *Controller) Term() string {
	return c.term
}

// Query returns the query of the last fetch
func (c *Controller) Query() domain.GigQuery {
	return c.query
}

// LoadErr returns the error of the last fetch, if any
func (c *Controller) LoadErr() error {
	return c.loadErr
}
