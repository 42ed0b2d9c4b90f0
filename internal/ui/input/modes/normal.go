package modes

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"gigboard/internal/domain"
	"gigboard/internal/ui/input/types"
)

type NormalMode struct {
	lastKeyWasG bool
	lastGTime   time.Time
}

func NewNormalMode() *NormalMode {
	return &NormalMode{}
}

func (m *NormalMode) Name() string {
	return "normal"
}

func (m *NormalMode) Enter(ctx types.Context) []types.Action {
	return nil
}

func (m *NormalMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func (m *NormalMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return []types.Action{types.QuitAction{Force: true}}, true

	case tea.KeyUp:
		return []types.Action{types.NavigateAction{Direction: "up"}}, true

	case tea.KeyDown:
		return []types.Action{types.NavigateAction{Direction: "down"}}, true

	case tea.KeyPgUp:
		return []types.Action{types.NavigateAction{Direction: "pageup"}}, true

	case tea.KeyPgDown:
		return []types.Action{types.NavigateAction{Direction: "pagedown"}}, true

	case tea.KeyHome:
		return []types.Action{types.NavigateAction{Direction: "home"}}, true

	case tea.KeyEnd:
		return []types.Action{types.NavigateAction{Direction: "end"}}, true

	case tea.KeyTab:
		return []types.Action{types.SwitchPanelAction{Delta: 1}}, true

	case tea.KeyShiftTab:
		return []types.Action{types.SwitchPanelAction{Delta: -1}}, true

	case tea.KeyEsc:
		// Close the popup first, then drop the search term
		if ctx.HasPopup() {
			return []types.Action{types.ClosePopupAction{}}, true
		}
		if ctx.SearchTerm() != "" {
			return []types.Action{types.ClearSearchAction{}}, true
		}
		return nil, true

	case tea.KeyEnter:
		if ctx.HasPopup() {
			return nil, true
		}
		if ctx.TotalItems() > 0 {
			return []types.Action{types.OpenAction{}}, true
		}
		return nil, false
	}

	key := msg.String()

	// Panel jumps 1-7
	if len(key) == 1 && key[0] >= '1' && key[0] < '1'+byte(len(types.Panels)) {
		return []types.Action{types.SwitchPanelAction{Panel: types.Panels[key[0]-'1']}}, true
	}

	switch key {
	case "j":
		return []types.Action{types.NavigateAction{Direction: "down"}}, true

	case "k":
		return []types.Action{types.NavigateAction{Direction: "up"}}, true

	case "l":
		return []types.Action{types.SwitchPanelAction{Delta: 1}}, true

	case "h":
		return []types.Action{types.SwitchPanelAction{Delta: -1}}, true

	case "r":
		return []types.Action{types.RefreshAction{}}, true

	case "v":
		return []types.Action{types.PagerAction{}}, true

	case "?":
		return []types.Action{types.ToggleHelpAction{}}, true

	case "q":
		return []types.Action{types.QuitAction{Force: false}}, true

	case "M":
		// Compose a message on the order under the cursor (or in the open thread)
		if ctx.CurrentOrderID() != 0 {
			return []types.Action{types.ChangeModeAction{Mode: types.ModeCompose}}, true
		}
		return nil, true

	case "g":
		if m.lastKeyWasG && time.Since(m.lastGTime) < 500*time.Millisecond {
			m.lastKeyWasG = false
			return []types.Action{types.NavigateAction{Direction: "home"}}, true
		}
		m.lastKeyWasG = true
		m.lastGTime = time.Now()
		return nil, true

	case "G":
		m.lastKeyWasG = false
		return []types.Action{types.NavigateAction{Direction: "end"}}, true
	}
	m.lastKeyWasG = false

	switch ctx.CurrentPanel() {
	case types.PanelGigs:
		return m.gigKeys(key, ctx)
	case types.PanelOrders:
		if key == "c" && ctx.CurrentOrderID() != 0 {
			return []types.Action{types.OrderStatusAction{Status: domain.OrderCompleted}}, true
		}
	case types.PanelSales:
		return m.saleKeys(key, ctx)
	case types.PanelNotifications:
		if key == "A" {
			return []types.Action{types.MarkAllReadAction{}}, true
		}
	case types.PanelWallet:
		switch key {
		case "b":
			return []types.Action{types.ChangeModeAction{Mode: types.ModeBalanceRequest}}, true
		case "w":
			return []types.Action{types.ChangeModeAction{Mode: types.ModeCashout}}, true
		}
	}

	return nil, false
}

func (m *NormalMode) gigKeys(key string, ctx types.Context) ([]types.Action, bool) {
	switch key {
	case "/":
		return []types.Action{types.ChangeModeAction{Mode: types.ModeSearch, Data: ctx.SearchTerm()}}, true

	case "m", " ":
		if ctx.CanShowMore() {
			return []types.Action{types.ShowMoreAction{}}, true
		}
		return nil, true

	case "f":
		return []types.Action{types.CycleFilterAction{}}, true

	case "c":
		return []types.Action{types.CycleCategoryAction{Delta: 1}}, true

	case "C":
		return []types.Action{types.CycleCategoryAction{Delta: -1}}, true

	case "o":
		if ctx.TotalItems() > 0 {
			return []types.Action{types.ChangeModeAction{Mode: types.ModeRequirements}}, true
		}
		return nil, true
	}
	return nil, false
}

// saleKeys maps seller status changes. Whether a transition is allowed is
// decided by the server.
func (m *NormalMode) saleKeys(key string, ctx types.Context) ([]types.Action, bool) {
	if ctx.CurrentOrderID() == 0 {
		return nil, false
	}
	switch key {
	case "a":
		return []types.Action{types.OrderStatusAction{Status: domain.OrderInProgress}}, true
	case "d":
		return []types.Action{types.OrderStatusAction{Status: domain.OrderDelivered}}, true
	case "x":
		return []types.Action{types.OrderStatusAction{Status: domain.OrderCancelled}}, true
	}
	return nil, false
}
