package modes

import (
	"github.com/charmbracelet/bubbles/textinput"

	"gigboard/internal/ui/input/types"
)

// NewRequirementsMode asks for optional order requirements
func NewRequirementsMode(ti *textinput.Model) *TextInputMode {
	m := NewTextInputMode(types.ModeRequirements, "requirements", "Requirements (optional): ", ti)
	return &m
}

// NewComposeMode writes a message to an order thread
func NewComposeMode(ti *textinput.Model) *TextInputMode {
	m := NewTextInputMode(types.ModeCompose, "compose", "Message: ", ti)
	return &m
}

// NewBalanceRequestMode reads one field of the balance request form.
// The model walks the fields and re-enters the mode for each.
func NewBalanceRequestMode(ti *textinput.Model) *TextInputMode {
	m := NewTextInputMode(types.ModeBalanceRequest, "balance-request", "Top up: ", ti)
	return &m
}

// NewCashoutMode reads one field of the cashout form
func NewCashoutMode(ti *textinput.Model) *TextInputMode {
	m := NewTextInputMode(types.ModeCashout, "cashout", "Cashout: ", ti)
	return &m
}
