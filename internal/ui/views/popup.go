package views

import (
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// PopupRenderer handles popup/modal rendering
type PopupRenderer struct {
	styles *Styles
}

// NewPopupRenderer creates a new popup renderer
func NewPopupRenderer(styles *Styles) *PopupRenderer {
	return &PopupRenderer{
		styles: styles,
	}
}

// RenderPopupOverlay renders a popup centered on top of the main content,
// which is shown greyed out around it
func (pr *PopupRenderer) RenderPopupOverlay(mainContent, popupContent string, height, width int, popupStyle lipgloss.Style) string {
	if width <= 0 {
		width = 80
	}
	if height <= 0 {
		height = 24
	}
	if popupStyle.GetWidth() > width-6 {
		popupStyle = popupStyle.Width(width - 6)
	}
	styledPopup := popupStyle.Render(popupContent)
	popupLines := strings.Split(styledPopup, "\n")
	if len(popupLines) > height-2 {
		popupLines = popupLines[:height-2]
	}

	modalW := lipgloss.Width(styledPopup)
	x := max((width-modalW)/2, 0)
	y := max((height-len(popupLines))/2, 0)

	base := strings.Split(desaturateANSI(mainContent), "\n")
	for len(base) < y+len(popupLines) {
		base = append(base, "")
	}
	for i, line := range popupLines {
		base[y+i] = spliceLine(base[y+i], line, x, modalW)
	}
	return strings.Join(base, "\n")
}

// ANSI escape sequence regex to strip styles/colors
var ansiRE = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// desaturateANSI strips ANSI color/style codes and recolors text dim gray
func desaturateANSI(s string) string {
	plain := ansiRE.ReplaceAllString(s, "")
	lines := strings.Split(plain, "\n")
	gray := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	for i, l := range lines {
		lines[i] = gray.Render(l)
	}
	return strings.Join(lines, "\n")
}

// spliceLine puts overlay over base starting at column x. base may carry the
// gray styling from desaturateANSI; it is re-rendered plain around the popup.
func spliceLine(base, overlay string, x, overlayWidth int) string {
	plain := ansiRE.ReplaceAllString(base, "")
	left := runewidth.Truncate(plain, x, "")
	left += strings.Repeat(" ", x-runewidth.StringWidth(left))
	right := skipColumns(plain, x+overlayWidth)

	gray := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	return gray.Render(left) + overlay + gray.Render(right)
}

// skipColumns drops the first n display columns of s
func skipColumns(s string, n int) string {
	w := 0
	for i, r := range s {
		if w >= n {
			return s[i:]
		}
		w += runewidth.RuneWidth(r)
	}
	return ""
}
