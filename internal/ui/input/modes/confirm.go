package modes

import (
	tea "github.com/charmbracelet/bubbletea"

	"gigboard/internal/ui/input/types"
)

// ConfirmMode asks y/n before an order is placed
type ConfirmMode struct{}

func NewConfirmMode() *ConfirmMode {
	return &ConfirmMode{}
}

func (m *ConfirmMode) Name() string {
	return "order-confirm"
}

func (m *ConfirmMode) Enter(ctx types.Context) []types.Action {
	return nil
}

func (m *ConfirmMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func (m *ConfirmMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.String() {
	case "ctrl+c":
		return []types.Action{types.QuitAction{Force: true}}, true
	case "y", "Y", "enter":
		return []types.Action{
			types.ConfirmOrderAction{},
			types.ChangeModeAction{Mode: types.ModeNormal},
		}, true
	case "n", "N", "esc":
		return []types.Action{
			types.CancelTextAction{Mode: types.ModeOrderConfirm},
			types.ChangeModeAction{Mode: types.ModeNormal},
		}, true
	}

	return nil, true
}
