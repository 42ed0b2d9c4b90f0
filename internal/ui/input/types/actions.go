package types

// Navigation actions
type NavigateAction struct {
	Direction string // "up", "down", "pageup", "pagedown", "home", "end"
}

func (a NavigateAction) Type() string { return "navigate" }

// SwitchPanelAction moves to another panel. With Delta set the panel is
// chosen relative to the current one.
type SwitchPanelAction struct {
	Panel Panel
	Delta int
}

func (a SwitchPanelAction) Type() string { return "switch_panel" }

// Mode transition actions
type ChangeModeAction struct {
	Mode Mode
	Data string // Optional initial text
}

func (a ChangeModeAction) Type() string { return "change_mode" }

// Text input actions
type UpdateTextAction struct {
	Text string
}

func (a UpdateTextAction) Type() string { return "update_text" }

type SubmitTextAction struct {
	Text string
	Mode Mode // Which mode submitted the text
}

func (a SubmitTextAction) Type() string { return "submit_text" }

type CancelTextAction struct {
	Mode Mode
}

func (a CancelTextAction) Type() string { return "cancel_text" }

// Gig list actions
type ShowMoreAction struct{}

func (a ShowMoreAction) Type() string { return "show_more" }

type ClearSearchAction struct{}

func (a ClearSearchAction) Type() string { return "clear_search" }

type CycleFilterAction struct{}

func (a CycleFilterAction) Type() string { return "cycle_filter" }

type CycleCategoryAction struct {
	Delta int
}

func (a CycleCategoryAction) Type() string { return "cycle_category" }

// OpenAction opens whatever is under the cursor: a gig's detail, an order's
// thread or a notification's order.
type OpenAction struct{}

func (a OpenAction) Type() string { return "open" }

type ClosePopupAction struct{}

func (a ClosePopupAction) Type() string { return "close_popup" }

// PagerAction shows the current popup or panel in the pager
type PagerAction struct{}

func (a PagerAction) Type() string { return "pager" }

// Order actions
type ConfirmOrderAction struct{}

func (a ConfirmOrderAction) Type() string { return "confirm_order" }

type OrderStatusAction struct {
	Status string
}

func (a OrderStatusAction) Type() string { return "order_status" }

// Notification actions
type MarkAllReadAction struct{}

func (a MarkAllReadAction) Type() string { return "mark_all_read" }

// Command actions
type RefreshAction struct{}

func (a RefreshAction) Type() string { return "refresh" }

type ToggleHelpAction struct{}

func (a ToggleHelpAction) Type() string { return "toggle_help" }

type QuitAction struct {
	Force bool // true for Ctrl+C, false for 'q'
}

func (a QuitAction) Type() string { return "quit" }
