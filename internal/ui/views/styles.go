package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title         lipgloss.Style
	Confirm       lipgloss.Style
	Dim           lipgloss.Style
	Status        lipgloss.Style
	Filter        lipgloss.Style
	InfoBox       lipgloss.Style
	ThreadBox     lipgloss.Style
	Help          lipgloss.Style
	Main          lipgloss.Style
	Scroll        lipgloss.Style
	Highlight     lipgloss.Style
	SelectionBg   lipgloss.Style
	Tab           lipgloss.Style
	ActiveTab     lipgloss.Style
	Badge         lipgloss.Style
	Price         lipgloss.Style
	Seller        lipgloss.Style
	Suggestion    lipgloss.Style
	EmptyTitle    lipgloss.Style
	Section       lipgloss.Style
	OwnMessage    lipgloss.Style
	OtherMessage  lipgloss.Style
	StatusError   lipgloss.Style
	StatusSuccess lipgloss.Style
	StatusLoading lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")),
		Confirm: lipgloss.NewStyle().Bold(true),
		Dim:     lipgloss.NewStyle().Faint(true),
		Status: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")),
		Filter: lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // yellow
		InfoBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(1, 2).
			Width(70).
			BorderForeground(lipgloss.Color("99")),
		ThreadBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(1, 2).
			Width(76).
			BorderForeground(lipgloss.Color("39")),
		Help: lipgloss.NewStyle().Faint(true),
		Main: lipgloss.NewStyle().
			Padding(1, 2),
		Scroll:        lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		Highlight:     lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		SelectionBg:   lipgloss.NewStyle().Background(lipgloss.Color("238")),
		Tab:           lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Padding(0, 1),
		ActiveTab:     lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("99")).Bold(true).Padding(0, 1),
		Badge:         lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true),
		Price:         lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Bold(true), // gold
		Seller:        lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		Suggestion:    lipgloss.NewStyle().Foreground(lipgloss.Color("252")).PaddingLeft(2),
		EmptyTitle:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252")),
		Section:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		OwnMessage:    lipgloss.NewStyle().Foreground(lipgloss.Color("78")),
		OtherMessage:  lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		StatusError:   lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		StatusSuccess: lipgloss.NewStyle().Foreground(lipgloss.Color("78")),  // green
		StatusLoading: lipgloss.NewStyle().Foreground(lipgloss.Color("241")), // gray
	}
}

// StatusBadge renders a colored status label
func (s *Styles) StatusBadge(status string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(StatusColor(status))).Render("[" + StatusLabel(status) + "]")
}
