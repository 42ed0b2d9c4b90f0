package modes

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"gigboard/internal/ui/input/types"
)

// SearchMode filters the gig grid while typing. Esc leaves the prompt but
// keeps the term; Enter does the same and hides the suggestions.
type SearchMode struct {
	TextInputMode
}

func NewSearchMode(ti *textinput.Model) *SearchMode {
	return &SearchMode{
		TextInputMode: NewTextInputMode(types.ModeSearch, "search", "Search: ", ti),
	}
}

func (m *SearchMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.String() {
	case "up", "down":
		// Let the grid scroll under the prompt
		dir := "up"
		if msg.String() == "down" {
			dir = "down"
		}
		return []types.Action{types.NavigateAction{Direction: dir}}, true
	}
	return m.TextInputMode.HandleKey(msg, ctx)
}
