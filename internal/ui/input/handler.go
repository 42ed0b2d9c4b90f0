package input

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"gigboard/internal/ui/input/modes"
	"gigboard/internal/ui/input/types"
)

type Handler struct {
	currentMode types.Mode
	modes       map[types.Mode]types.ModeHandler
	textInput   *textinput.Model // Shared text input for text modes
}

func New() *Handler {
	ti := textinput.New()
	ti.CharLimit = 500

	h := &Handler{
		currentMode: types.ModeNormal,
		textInput:   &ti,
		modes:       make(map[types.Mode]types.ModeHandler),
	}

	h.modes[types.ModeNormal] = modes.NewNormalMode()
	h.modes[types.ModeSearch] = modes.NewSearchMode(h.textInput)
	h.modes[types.ModeRequirements] = modes.NewRequirementsMode(h.textInput)
	h.modes[types.ModeOrderConfirm] = modes.NewConfirmMode()
	h.modes[types.ModeCompose] = modes.NewComposeMode(h.textInput)
	h.modes[types.ModeBalanceRequest] = modes.NewBalanceRequestMode(h.textInput)
	h.modes[types.ModeCashout] = modes.NewCashoutMode(h.textInput)

	return h
}

func (h *Handler) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, tea.Cmd) {
	handler := h.modes[h.currentMode]
	if handler == nil {
		return nil, nil
	}

	actions, consumed := handler.HandleKey(msg, ctx)

	var cmd tea.Cmd
	var allActions []types.Action

	if !consumed && !h.isTextMode(h.currentMode) {
		return nil, nil
	}

	for _, action := range actions {
		if changeMode, ok := action.(types.ChangeModeAction); ok {
			allActions = append(allActions, h.switchMode(changeMode.Mode, changeMode.Data, ctx)...)
			if h.isTextMode(h.currentMode) {
				cmd = textinput.Blink
			}
		} else {
			allActions = append(allActions, action)
		}
	}

	// Keys the text mode did not handle go to the text input
	if h.isTextMode(h.currentMode) && !consumed {
		var textCmd tea.Cmd
		*h.textInput, textCmd = h.textInput.Update(msg)
		cmd = textCmd
		// Always append an update action when in text mode to keep view in sync
		allActions = append(allActions, types.UpdateTextAction{Text: h.textInput.Value()})
	}

	return allActions, cmd
}

func (h *Handler) switchMode(mode types.Mode, data string, ctx types.Context) []types.Action {
	var actions []types.Action
	if old := h.modes[h.currentMode]; old != nil {
		actions = append(actions, old.Exit(ctx)...)
	}

	h.currentMode = mode

	if next := h.modes[h.currentMode]; next != nil {
		actions = append(actions, next.Enter(ctx)...)
	}

	if h.isTextMode(mode) {
		h.textInput.SetValue(data)
		h.textInput.CursorEnd()
		h.textInput.Focus()
	} else {
		h.textInput.Reset()
		h.textInput.Blur()
	}
	return actions
}

func (h *Handler) isTextMode(mode types.Mode) bool {
	switch mode {
	case types.ModeSearch, types.ModeRequirements, types.ModeCompose, types.ModeBalanceRequest, types.ModeCashout:
		return true
	default:
		return false
	}
}

func (h *Handler) Reset() {
	h.currentMode = types.ModeNormal
	h.textInput.Reset()
	h.textInput.Blur()
}

// Update handles non-keyboard messages for text input
func (h *Handler) Update(msg tea.Msg) tea.Cmd {
	if h.isTextMode(h.currentMode) {
		var cmd tea.Cmd
		*h.textInput, cmd = h.textInput.Update(msg)
		return cmd
	}
	return nil
}

// ChangeMode switches mode outside of a key press, e.g. to walk a form
func (h *Handler) ChangeMode(mode types.Mode, data string, ctx types.Context) tea.Cmd {
	h.switchMode(mode, data, ctx)
	if h.isTextMode(mode) {
		return textinput.Blink
	}
	return nil
}

// GetMode returns the current input mode
func (h *Handler) GetMode() types.Mode {
	if h == nil {
		return types.ModeNormal
	}
	return h.currentMode
}

// ModeName returns the display name of the current mode
func (h *Handler) ModeName() string {
	if m := h.modes[h.currentMode]; m != nil {
		return m.Name()
	}
	return ""
}

// TextInput returns the shared text input while a text mode is active
func (h *Handler) TextInput() *textinput.Model {
	if h != nil && h.isTextMode(h.currentMode) {
		return h.textInput
	}
	return nil
}

// Prompt returns the label of the active text mode
func (h *Handler) Prompt() string {
	if p, ok := h.modes[h.currentMode].(interface{ Prompt() string }); ok {
		return p.Prompt()
	}
	return ""
}
