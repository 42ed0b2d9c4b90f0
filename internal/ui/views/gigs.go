package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"gigboard/internal/catalog"
	"gigboard/internal/domain"
	"gigboard/internal/ui/state"
)

// renderGigGrid renders the visible window of gig cards, or the single
// empty-state block
func (r *Renderer) renderGigGrid(vs ViewState) string {
	grid := vs.Grid
	if len(grid.Cards) == 0 {
		if vs.State.Loading[state.ResGigs] {
			return r.styles.Dim.Render("Loading gigs...")
		}
		if grid.Empty != nil {
			return r.renderEmpty(grid.Empty.Title, grid.Empty.Message)
		}
		return ""
	}

	start, end, above, below := r.window(len(grid.Cards), vs)
	rows := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		rows = append(rows, r.RenderGigCard(grid.Cards[i], i == vs.State.SelectedIndex, vs))
	}
	return r.joinWindow(rows, above, below)
}

// RenderGigCard renders one gig as a card of GigRowHeight lines
func (r *Renderer) RenderGigCard(g domain.Gig, selected bool, vs ViewState) string {
	width := vs.Width - 4
	if width <= 20 {
		width = 76
	}

	marker := "  "
	titleStyle := lipgloss.NewStyle().Bold(true)
	if selected {
		marker = r.styles.Highlight.Render("▸ ")
		titleStyle = titleStyle.Inherit(r.styles.SelectionBg)
	}

	price := r.styles.Price.Render(Money(g.Price, vs.Currency))
	titleWidth := width - lipgloss.Width(price) - 4
	title := titleStyle.Render(Truncate(g.Title, titleWidth))
	gap := width - 2 - lipgloss.Width(title) - lipgloss.Width(price)
	if gap < 1 {
		gap = 1
	}
	line1 := marker + title + strings.Repeat(" ", gap) + price

	meta := []string{g.Category, "by " + r.styles.Seller.Render(g.SellerName)}
	if vs.ShowRatings {
		meta = append(meta, Rating(g))
	}
	if g.DeliveryTime > 0 {
		meta = append(meta, Delivery(g.DeliveryTime))
	}
	line2 := "  " + strings.Join(meta, " · ")

	line3 := "  " + r.styles.Dim.Render(Truncate(oneLine(g.Description), width-2))

	return line1 + "\n" + line2 + "\n" + line3 + "\n"
}

// renderSuggestions renders the live search dropdown
func (r *Renderer) renderSuggestions(sug catalog.Suggestions, currency string) string {
	if !sug.Visible {
		return ""
	}
	if sug.NoMatch != "" {
		return r.styles.Suggestion.Render(r.styles.Dim.Render(sug.NoMatch))
	}
	var lines []string
	for _, g := range sug.Items {
		lines = append(lines, r.styles.Suggestion.Render(fmt.Sprintf("%s · %s · %s",
			g.Title, r.styles.Seller.Render(g.SellerName), Money(g.Price, currency))))
	}
	if sug.Footer != "" {
		lines = append(lines, r.styles.Suggestion.Render(r.styles.Dim.Render(sug.Footer)))
	}
	return strings.Join(lines, "\n")
}

// SuggestionLines returns how many lines the dropdown takes
func SuggestionLines(sug catalog.Suggestions) int {
	switch {
	case !sug.Visible:
		return 0
	case sug.NoMatch != "":
		return 1
	case sug.Footer != "":
		return len(sug.Items) + 1
	}
	return len(sug.Items)
}

// RenderDetail renders the gig detail popup
func (r *Renderer) RenderDetail(vs ViewState) string {
	d := vs.State.Detail
	if d == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(r.styles.Title.Render(d.Title))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "%s  %s\n", r.styles.Price.Render(Money(d.Price, vs.Currency)), r.styles.Dim.Render(d.Category))
	fmt.Fprintf(&b, "Seller:   %s\n", r.styles.Seller.Render(d.SellerName))
	if vs.ShowRatings {
		fmt.Fprintf(&b, "Rating:   %s\n", Rating(d.Gig))
	}
	fmt.Fprintf(&b, "Delivery: %s\n", Delivery(d.DeliveryTime))
	if host := ImageHost(d.ImageURL); host != "" {
		fmt.Fprintf(&b, "Image:    %s\n", r.styles.Dim.Render(host))
	}
	if d.CreatedAt != "" {
		fmt.Fprintf(&b, "Listed:   %s\n", ShortDate(d.CreatedAt))
	}
	b.WriteString("\n")
	b.WriteString(d.Description)
	b.WriteString("\n\n")
	b.WriteString(r.styles.Help.Render("o: order · v: open in pager · esc: close"))
	return b.String()
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
