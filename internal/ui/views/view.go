package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"gigboard/internal/catalog"
	"gigboard/internal/ui/input/types"
	"gigboard/internal/ui/state"
)

// Rows each list item takes on screen
const (
	GigRowHeight  = 4
	ListRowHeight = 2
)

// RowHeight returns the number of lines one row of the panel takes
func RowHeight(p types.Panel) int {
	if p == types.PanelGigs {
		return GigRowHeight
	}
	return ListRowHeight
}

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width  int
	Height int
	State  *state.AppState

	Grid        catalog.Output
	ResultsInfo string
	Suggestions catalog.Suggestions
	SearchTerm  string

	InputMode   types.Mode
	InputPrompt string
	InputView   string

	Username    string
	Currency    string
	ShowRatings bool
	Spinner     string
	HelpContent string
	Now         time.Time
}

// Renderer handles all view rendering
type Renderer struct {
	styles      *Styles
	popupRender *PopupRenderer
}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	styles := NewStyles()
	return &Renderer{
		styles:      styles,
		popupRender: NewPopupRenderer(styles),
	}
}

// Styles returns the renderer's styles
func (r *Renderer) Styles() *Styles {
	return r.styles
}

// Render produces the complete view
func (r *Renderer) Render(vs ViewState) string {
	s := vs.State
	content := &strings.Builder{}

	content.WriteString(r.renderTitle(vs))
	content.WriteString("\n\n")
	content.WriteString(r.renderTabs(vs))
	content.WriteString("\n\n")

	if header := r.renderPanelHeader(vs); header != "" {
		content.WriteString(header)
		content.WriteString("\n")
	}

	if input := r.renderInput(vs); input != "" {
		content.WriteString(input)
		content.WriteString("\n")
	}
	content.WriteString("\n")

	switch s.Panel {
	case types.PanelGigs:
		content.WriteString(r.renderGigGrid(vs))
	case types.PanelOrders:
		content.WriteString(r.renderOrders(vs, s.BuyerOrders, false))
	case types.PanelSales:
		content.WriteString(r.renderOrders(vs, s.SellerOrders, true))
	case types.PanelMyGigs:
		content.WriteString(r.renderMyGigs(vs))
	case types.PanelInbox:
		content.WriteString(r.renderInbox(vs))
	case types.PanelNotifications:
		content.WriteString(r.renderNotifications(vs))
	case types.PanelWallet:
		content.WriteString(r.renderWallet(vs))
	}

	footer := r.renderFooter(vs)

	// Push the footer to the bottom
	availableLines := vs.Height - 2
	if availableLines <= 0 {
		availableLines = 22
	}
	currentLines := strings.Count(content.String(), "\n") + 1
	footerLines := strings.Count(footer, "\n") + 1
	if pad := availableLines - currentLines - footerLines; pad > 0 {
		content.WriteString(strings.Repeat("\n", pad))
	}
	content.WriteString("\n")
	content.WriteString(footer)

	mainStyle := r.styles.Main
	if vs.Height > 0 {
		mainStyle = mainStyle.MaxHeight(vs.Height)
	}
	finalContent := mainStyle.Render(content.String())

	switch {
	case s.ShowHelp:
		return r.popupRender.RenderPopupOverlay(finalContent, vs.HelpContent, vs.Height, vs.Width, r.styles.InfoBox)
	case s.Thread != nil:
		return r.popupRender.RenderPopupOverlay(finalContent, r.RenderThread(vs), vs.Height, vs.Width, r.styles.ThreadBox)
	case s.Detail != nil:
		return r.popupRender.RenderPopupOverlay(finalContent, r.RenderDetail(vs), vs.Height, vs.Width, r.styles.InfoBox)
	}
	return finalContent
}

// renderTitle renders the logo with the user's counters right-aligned
func (r *Renderer) renderTitle(vs ViewState) string {
	s := vs.State
	logo := r.styles.Title.Render("gigboard")

	var right []string
	if vs.Spinner != "" {
		right = append(right, r.styles.Dim.Render(vs.Spinner+" Loading"))
	}
	if vs.Username != "" {
		right = append(right, r.styles.Seller.Render(vs.Username))
	}
	if s.Balance != nil {
		right = append(right, r.styles.Price.Render(Money(s.Balance.Balance, vs.Currency)))
	}
	right = append(right, r.counter("🔔", s.UnreadNotifications), r.counter("💬", s.UnreadMessages))
	rightContent := strings.Join(right, "  ")

	termWidth := vs.Width
	if termWidth <= 0 {
		termWidth = 80
	}
	pad := termWidth - 4 - lipgloss.Width(logo) - lipgloss.Width(rightContent)
	if pad < 2 {
		pad = 2
	}
	return logo + strings.Repeat(" ", pad) + rightContent
}

func (r *Renderer) counter(icon string, n int) string {
	if n == 0 {
		return r.styles.Dim.Render(icon + " 0")
	}
	return icon + " " + r.styles.Badge.Render(fmt.Sprint(n))
}

// renderTabs renders the panel tabs with unread badges
func (r *Renderer) renderTabs(vs ViewState) string {
	var tabs []string
	for i, p := range types.Panels {
		label := fmt.Sprintf("%d %s", i+1, p.Title())
		switch p {
		case types.PanelInbox:
			if vs.State.UnreadMessages > 0 {
				label += fmt.Sprintf(" (%d)", vs.State.UnreadMessages)
			}
		case types.PanelNotifications:
			if vs.State.UnreadNotifications > 0 {
				label += fmt.Sprintf(" (%d)", vs.State.UnreadNotifications)
			}
		}
		if p == vs.State.Panel {
			tabs = append(tabs, r.styles.ActiveTab.Render(label))
		} else {
			tabs = append(tabs, r.styles.Tab.Render(label))
		}
	}
	return strings.Join(tabs, " ")
}

// renderPanelHeader renders the line under the tabs: filter state for the
// gig grid, a key hint for the other panels
func (r *Renderer) renderPanelHeader(vs ViewState) string {
	s := vs.State
	switch s.Panel {
	case types.PanelGigs:
		category := s.Category()
		if category == "" {
			category = "All categories"
		}
		line := r.styles.Filter.Render(fmt.Sprintf("[%s] [%s]", s.Filter(), category))
		if vs.SearchTerm != "" && vs.InputMode != types.ModeSearch {
			line += " " + r.styles.Filter.Render(fmt.Sprintf("[Search: %s]", vs.SearchTerm))
		}
		if vs.ResultsInfo != "" {
			line += "  " + r.styles.Dim.Render(vs.ResultsInfo)
		}
		return line
	case types.PanelOrders:
		return r.styles.Dim.Render("enter: messages · c: mark completed · M: write")
	case types.PanelSales:
		return r.styles.Dim.Render("enter: messages · a: accept · d: deliver · x: cancel · M: write")
	case types.PanelInbox:
		return r.styles.Dim.Render("enter: open thread · M: write")
	case types.PanelNotifications:
		return r.styles.Dim.Render("enter: mark read and open · A: mark all read")
	case types.PanelWallet:
		return r.styles.Dim.Render("b: request balance · w: cash out · v: earnings report")
	}
	return ""
}

// renderInput renders the active prompt: text input, order confirmation or
// the search suggestions dropdown
func (r *Renderer) renderInput(vs ViewState) string {
	s := vs.State
	switch vs.InputMode {
	case types.ModeNormal:
		return ""
	case types.ModeOrderConfirm:
		if s.PendingGig == nil {
			return ""
		}
		line := fmt.Sprintf("Order %q for %s?", s.PendingGig.Title, Money(s.PendingGig.Price, vs.Currency))
		if s.Balance != nil {
			line += r.styles.Dim.Render(fmt.Sprintf(" (balance %s)", Money(s.Balance.Balance, vs.Currency)))
		}
		return r.styles.Confirm.Render(line) + " (y/n)"
	}

	out := r.styles.Highlight.Render(vs.InputPrompt) + vs.InputView
	if vs.InputMode == types.ModeSearch {
		if sug := r.renderSuggestions(vs.Suggestions, vs.Currency); sug != "" {
			out += "\n" + sug
		}
	}
	return out
}

// renderFooter renders the show-more line, the status line and the help hint
func (r *Renderer) renderFooter(vs ViewState) string {
	s := vs.State
	var lines []string

	if s.Panel == types.PanelGigs && vs.Grid.ShowMore {
		lines = append(lines, r.styles.Scroll.Render(vs.Grid.CountInfo+" · press m to show more"))
	}

	if s.StatusMessage != "" {
		style := r.styles.StatusSuccess
		if s.StatusIsError {
			style = r.styles.StatusError
		}
		lines = append(lines, style.Render(s.StatusMessage))
	}

	if !s.HasPopup() {
		lines = append(lines, r.styles.Help.Render("Press ? for help · tab to switch panels · q to quit"))
	}
	return strings.Join(lines, "\n")
}

// window returns the slice bounds of the visible rows and renders the scroll
// indicators around them
func (r *Renderer) window(total int, vs ViewState) (start, end int, above, below string) {
	s := vs.State
	height := s.ViewportHeight
	if height <= 0 {
		height = total
	}
	start = min(max(s.ViewportOffset, 0), total)
	end = min(start+height, total)
	if start > 0 {
		above = r.styles.Scroll.Render(fmt.Sprintf("↑ %d more above ↑", start))
	}
	if end < total {
		below = r.styles.Scroll.Render(fmt.Sprintf("↓ %d more below ↓", total-end))
	}
	return start, end, above, below
}

func (r *Renderer) joinWindow(rows []string, above, below string) string {
	var lines []string
	if above != "" {
		lines = append(lines, above)
	}
	lines = append(lines, rows...)
	if below != "" {
		lines = append(lines, below)
	}
	return strings.Join(lines, "\n")
}

// renderEmpty renders the single empty-state block of a panel
func (r *Renderer) renderEmpty(title, message string) string {
	return r.styles.EmptyTitle.Render(title) + "\n" + r.styles.Dim.Render(message)
}
