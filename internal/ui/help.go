package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// helpSection is one titled block of key bindings
type helpSection struct {
	title string
	keys  [][2]string
}

var helpSections = []helpSection{
	{"Navigation", [][2]string{
		{"↑/↓, j/k", "Navigate up/down"},
		{"PgUp/PgDn", "Page up/down"},
		{"gg/G", "Go to top/bottom"},
		{"Tab, h/l", "Previous/next panel"},
		{"1-7", "Jump to panel"},
		{"Enter", "Open gig, thread or notification"},
		{"Esc", "Close popup, clear search"},
	}},
	{"Gigs", [][2]string{
		{"/", "Search gigs"},
		{"m, Space", "Show more"},
		{"f", "Cycle filter (all, top-rated, new)"},
		{"c/C", "Next/previous category"},
		{"o", "Order the selected gig"},
	}},
	{"Orders", [][2]string{
		{"c", "Mark order completed (buyer)"},
		{"a", "Accept order (seller)"},
		{"d", "Mark delivered (seller)"},
		{"x", "Cancel order (seller)"},
		{"M", "Write a message"},
	}},
	{"Notifications & Wallet", [][2]string{
		{"A", "Mark all notifications read"},
		{"b", "Request balance top-up"},
		{"w", "Cash out earnings"},
	}},
	{"Other", [][2]string{
		{"v", "Open in pager"},
		{"r", "Refresh"},
		{"?", "Toggle this help"},
		{"q", "Quit"},
	}},
}

// HelpRenderer handles help content rendering
type HelpRenderer struct {
	title   lipgloss.Style
	section lipgloss.Style
	key     lipgloss.Style
	desc    lipgloss.Style
	scroll  lipgloss.Style
}

// NewHelpRenderer creates a new help renderer
func NewHelpRenderer() *HelpRenderer {
	return &HelpRenderer{
		title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99")).MarginBottom(1),
		section: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		key:     lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Width(12),
		desc:    lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		scroll:  lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	}
}

// RenderHelpContentPlain generates the full help text, also used for the pager
func (r *HelpRenderer) RenderHelpContentPlain() string {
	var help strings.Builder
	help.WriteString(r.title.Render("gigboard Help"))
	help.WriteString("\n")
	for i, s := range helpSections {
		if i > 0 {
			help.WriteString("\n")
		}
		help.WriteString(r.section.Render(s.title))
		help.WriteString("\n")
		for _, k := range s.keys {
			help.WriteString(fmt.Sprintf("  %s %s\n", r.key.Render(k[0]), r.desc.Render(k[1])))
		}
	}
	return strings.TrimRight(help.String(), "\n")
}

// renderHelpContent renders the help popup clipped to the terminal height
func (r *HelpRenderer) renderHelpContent(height int) string {
	lines := strings.Split(r.RenderHelpContentPlain(), "\n")

	// Account for popup border and padding
	visibleHeight := height - 6
	if visibleHeight < 5 {
		visibleHeight = 5
	}
	if len(lines) <= visibleHeight {
		return strings.Join(lines, "\n")
	}
	lines = lines[:visibleHeight]
	lines[len(lines)-1] = r.scroll.Render("↓ (more below, press v for the pager)")
	return strings.Join(lines, "\n")
}
