package state

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"gigboard/internal/domain"
	"gigboard/internal/ui/input/types"
)

func withCategories(names ...string) *AppState {
	s := NewAppState()
	for i, n := range names {
		s.Categories = append(s.Categories, domain.Category{ID: i + 1, Name: n})
	}
	return s
}

func TestCycleCategoryWrapsThroughAll(t *testing.T) {
	s := withCategories("Design", "Writing")

	s.CycleCategory(1)
	assert.Equal(t, "Design", s.Category())
	s.CycleCategory(1)
	assert.Equal(t, "Writing", s.Category())
	s.CycleCategory(1)
	assert.Equal(t, "", s.Category())

	s.CycleCategory(-1)
	assert.Equal(t, "Writing", s.Category())
}

func TestSelectCategoryIgnoresCase(t *testing.T) {
	s := withCategories("Design", "Writing")

	assert.True(t, s.SelectCategory(" writing "))
	assert.Equal(t, "Writing", s.Query().Category)

	assert.False(t, s.SelectCategory("Cooking"))
	assert.Equal(t, "", s.Category())
}

func TestFilterSelection(t *testing.T) {
	s := NewAppState()
	assert.Equal(t, domain.FilterAll, s.Filter())

	s.CycleFilter()
	assert.Equal(t, domain.FilterTopRated, s.Filter())

	assert.False(t, s.SelectFilter("cheapest"))
	assert.Equal(t, domain.FilterAll, s.Filter())
	assert.True(t, s.SelectFilter(domain.FilterNew))
	assert.Equal(t, domain.FilterNew, s.Query().Filter)
}

func TestSetPanelRemembersCursor(t *testing.T) {
	s := NewAppState()
	s.SelectedIndex = 4
	s.ViewportOffset = 2

	s.SetPanel(types.PanelOrders)
	assert.Equal(t, 0, s.SelectedIndex)
	assert.Equal(t, 0, s.ViewportOffset)

	s.SelectedIndex = 1
	s.SetPanel(types.PanelGigs)
	assert.Equal(t, 4, s.SelectedIndex)
	s.SetPanel(types.PanelOrders)
	assert.Equal(t, 1, s.SelectedIndex)
}

func TestClosePopupClosesTopMostFirst(t *testing.T) {
	s := NewAppState()
	s.Detail = &domain.GigDetail{}
	s.Thread = &domain.Thread{}
	s.ShowHelp = true

	s.ClosePopup()
	assert.False(t, s.ShowHelp)
	assert.NotNil(t, s.Thread)

	s.ClosePopup()
	assert.Nil(t, s.Thread)
	assert.NotNil(t, s.Detail)

	s.ClosePopup()
	assert.False(t, s.HasPopup())
}

func TestFormSteps(t *testing.T) {
	f := &Form{Mode: types.ModeBalanceRequest, Fields: []string{"Amount", "Note (optional)"}}
	assert.Equal(t, "Amount", f.Prompt())
	assert.False(t, f.Done())

	f.Values = append(f.Values, "100")
	assert.Equal(t, 1, f.Step())
	assert.Equal(t, "Note (optional)", f.Prompt())

	f.Values = append(f.Values, "")
	assert.True(t, f.Done())
	assert.Equal(t, "", f.Prompt())
}

func TestOrderIDAt(t *testing.T) {
	s := NewAppState()
	seven := 7
	s.BuyerOrders = []domain.Order{{ID: 11}}
	s.Conversations = []domain.Conversation{{OrderID: 22}}
	s.Notifications = []domain.Notification{{ID: 1}, {ID: 2, OrderID: &seven}}

	s.SetPanel(types.PanelOrders)
	assert.Equal(t, 11, s.OrderIDAt(0))
	assert.Equal(t, 0, s.OrderIDAt(1))
	assert.Equal(t, 0, s.OrderIDAt(-1))

	s.SetPanel(types.PanelInbox)
	assert.Equal(t, 22, s.OrderIDAt(0))

	s.SetPanel(types.PanelNotifications)
	assert.Equal(t, 0, s.OrderIDAt(0))
	assert.Equal(t, 7, s.OrderIDAt(1))

	s.SetPanel(types.PanelWallet)
	assert.Equal(t, 0, s.OrderIDAt(0))
	assert.Equal(t, 0, s.PanelLen())
}

func TestApprovedCashouts(t *testing.T) {
	s := NewAppState()
	s.Wallet.Cashouts = []domain.CashoutRequest{
		{ID: 1, Status: domain.RequestPending},
		{ID: 2, Status: domain.RequestApproved},
		{ID: 3, Status: domain.RequestRejected},
	}
	got := s.ApprovedCashouts()
	if assert.Len(t, got, 1) {
		assert.Equal(t, 2, got[0].ID)
	}
}

func TestClampSelection(t *testing.T) {
	s := NewAppState()
	s.SelectedIndex = 9
	s.ClampSelection(3)
	assert.Equal(t, 2, s.SelectedIndex)
	s.ClampSelection(0)
	assert.Equal(t, 0, s.SelectedIndex)
}
