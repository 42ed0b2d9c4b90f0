package ui

import (
	"context"
	"fmt"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gigboard/internal/config"
	"gigboard/internal/domain"
	"gigboard/internal/eventbus"
	inputtypes "gigboard/internal/ui/input/types"
	"gigboard/internal/ui/state"
)

type recordingBus struct {
	mu     sync.Mutex
	events []eventbus.DomainEvent
}

func (b *recordingBus) Publish(e eventbus.DomainEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, e)
}

func (b *recordingBus) Subscribe(eventbus.EventType, eventbus.EventHandler) func() { return func() {} }

func (b *recordingBus) Close() {}

func (b *recordingBus) published() []eventbus.DomainEvent {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]eventbus.DomainEvent(nil), b.events...)
}

type fakeBackend struct {
	gigs []domain.Gig
}

func (f *fakeBackend) ListGigs(ctx context.Context, q domain.GigQuery) ([]domain.Gig, error) {
	return f.gigs, nil
}

func (f *fakeBackend) GetGig(ctx context.Context, id int) (*domain.GigDetail, error) {
	for _, g := range f.gigs {
		if g.ID == id {
			return &domain.GigDetail{Gig: g}, nil
		}
	}
	return nil, fmt.Errorf("gig %d not found", id)
}

func (f *fakeBackend) Categories(ctx context.Context) ([]domain.Category, error) {
	return []domain.Category{{ID: 1, Name: "Design"}, {ID: 2, Name: "Writing"}}, nil
}

func (f *fakeBackend) MyGigs(ctx context.Context) ([]domain.MyGig, error) { return nil, nil }

func (f *fakeBackend) BuyerOrders(ctx context.Context) ([]domain.Order, error) { return nil, nil }

func (f *fakeBackend) SellerOrders(ctx context.Context) ([]domain.Order, error) { return nil, nil }

func (f *fakeBackend) Messages(ctx context.Context, orderID int) (*domain.Thread, error) {
	return &domain.Thread{OrderInfo: domain.OrderInfo{ID: orderID, GigTitle: "Logo design"}}, nil
}

func (f *fakeBackend) SellerEarnings(ctx context.Context) (*domain.Earnings, error) {
	return &domain.Earnings{}, nil
}

func (f *fakeBackend) AvailableEarnings(ctx context.Context) (*domain.AvailableEarnings, error) {
	return &domain.AvailableEarnings{AvailableEarnings: 50}, nil
}

func (f *fakeBackend) BalanceRequests(ctx context.Context) ([]domain.BalanceRequest, error) {
	return nil, nil
}

func (f *fakeBackend) CashoutRequests(ctx context.Context) ([]domain.CashoutRequest, error) {
	return nil, nil
}

func makeGigs(n int) []domain.Gig {
	gigs := make([]domain.Gig, n)
	for i := range gigs {
		gigs[i] = domain.Gig{ID: i + 1, Title: fmt.Sprintf("Gig %d", i+1), Category: "Design", SellerName: "alice", Price: 100}
	}
	gigs[0].Title = "Logo design"
	return gigs
}

func newTestModel(t *testing.T, opts Options) (*Model, *recordingBus, *fakeBackend) {
	t.Helper()
	bus := &recordingBus{}
	backend := &fakeBackend{gigs: makeGigs(20)}
	m := NewModel(bus, config.DefaultConfig(), backend, opts)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return m, bus, backend
}

// loadGigs feeds the result of the initial gig fetch into the model
func loadGigs(m *Model, gigs []domain.Gig) {
	m.Update(gigsLoadedMsg{query: m.state.Query(), gigs: gigs})
}

func press(m *Model, keys ...string) {
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "tab":
			msg = tea.KeyMsg{Type: tea.KeyTab}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		m.Update(msg)
	}
}

func TestGigGridPagesWithShowMore(t *testing.T) {
	m, _, backend := newTestModel(t, Options{})
	loadGigs(m, backend.gigs)

	out := m.catalog.Output()
	assert.Len(t, out.Cards, 15)
	assert.True(t, out.ShowMore)
	assert.Equal(t, "Showing 15 of 20 gigs", out.CountInfo)

	press(m, "m")
	out = m.catalog.Output()
	assert.Len(t, out.Cards, 20)
	assert.False(t, out.ShowMore)
}

func TestSearchFiltersWhileTyping(t *testing.T) {
	m, _, backend := newTestModel(t, Options{})
	loadGigs(m, backend.gigs)

	press(m, "/")
	require.Equal(t, inputtypes.ModeSearch, m.inputHandler.GetMode())

	press(m, "l", "o", "g", "o")
	assert.Equal(t, "logo", m.catalog.Term())
	require.Len(t, m.catalog.Output().Cards, 1)
	assert.Equal(t, "Logo design", m.catalog.Output().Cards[0].Title)
	assert.True(t, m.suggestions.Visible)

	press(m, "enter")
	assert.Equal(t, inputtypes.ModeNormal, m.inputHandler.GetMode())
	assert.Equal(t, "logo", m.catalog.Term())
	assert.False(t, m.suggestions.Visible)

	press(m, "esc")
	assert.Equal(t, "", m.catalog.Term())
	assert.Len(t, m.catalog.Output().Cards, 15)
}

func TestInitialSearchAppliedAfterFirstLoad(t *testing.T) {
	m, _, backend := newTestModel(t, Options{Search: "logo"})
	loadGigs(m, backend.gigs)

	assert.Equal(t, "logo", m.catalog.Term())
	assert.Len(t, m.catalog.Output().Cards, 1)

	// A later fetch starts over without a term
	loadGigs(m, backend.gigs)
	assert.Equal(t, "", m.catalog.Term())
}

func TestInitialCategorySelectedWhenCategoriesLoad(t *testing.T) {
	m, _, backend := newTestModel(t, Options{Category: "writing"})
	cats, _ := backend.Categories(context.Background())

	cmd := m.handleNonKeyboardMsg(categoriesLoadedMsg{categories: cats})
	assert.Nil(t, cmd)
	assert.Equal(t, "Writing", m.state.Category())
}

func TestFilterKeyRefetches(t *testing.T) {
	m, _, backend := newTestModel(t, Options{})
	loadGigs(m, backend.gigs)

	press(m, "f")
	assert.Equal(t, domain.FilterTopRated, m.state.Filter())
	assert.True(t, m.state.Loading[state.ResGigs])
}

func TestOrderFlowPublishesOrderRequested(t *testing.T) {
	m, bus, backend := newTestModel(t, Options{})
	loadGigs(m, backend.gigs)

	press(m, "o")
	require.Equal(t, inputtypes.ModeRequirements, m.inputHandler.GetMode())
	require.NotNil(t, m.state.PendingGig)
	assert.Equal(t, 1, m.state.PendingGig.ID)

	press(m, "a", "s", "a", "p", "enter")
	require.Equal(t, inputtypes.ModeOrderConfirm, m.inputHandler.GetMode())
	assert.Equal(t, "asap", m.state.Requirements)

	press(m, "y")
	assert.Equal(t, inputtypes.ModeNormal, m.inputHandler.GetMode())
	assert.Nil(t, m.state.PendingGig)
	assert.Contains(t, bus.published(), eventbus.OrderRequestedEvent{GigID: 1, Requirements: "asap"})
}

func TestOrderCancelledAtConfirmation(t *testing.T) {
	m, bus, backend := newTestModel(t, Options{})
	loadGigs(m, backend.gigs)

	press(m, "o", "enter", "n")
	assert.Equal(t, inputtypes.ModeNormal, m.inputHandler.GetMode())
	assert.Nil(t, m.state.PendingGig)
	assert.Empty(t, bus.published())
}

func TestBalanceRequestForm(t *testing.T) {
	m, bus, _ := newTestModel(t, Options{})

	press(m, "7")
	require.Equal(t, inputtypes.PanelWallet, m.state.Panel)

	press(m, "b")
	require.NotNil(t, m.state.Form)
	assert.Equal(t, "Amount", m.state.Form.Prompt())

	press(m, "2", "5", "enter")
	require.Equal(t, inputtypes.ModeBalanceRequest, m.inputHandler.GetMode())
	assert.Equal(t, "Note (optional)", m.state.Form.Prompt())

	press(m, "h", "i", "enter")
	assert.Equal(t, inputtypes.ModeNormal, m.inputHandler.GetMode())
	assert.Nil(t, m.state.Form)
	assert.Contains(t, bus.published(), eventbus.BalanceRequestSubmittedEvent{Amount: 25, Note: "hi"})
}

func TestBalanceRequestRejectsBadAmount(t *testing.T) {
	m, bus, _ := newTestModel(t, Options{})

	press(m, "7", "b", "x", "enter")
	assert.Nil(t, m.state.Form)
	assert.True(t, m.state.StatusIsError)
	assert.Equal(t, "Please enter a valid amount", m.state.StatusMessage)
	assert.Empty(t, bus.published())
}

func TestCashoutOverAvailableIsRejected(t *testing.T) {
	m, bus, backend := newTestModel(t, Options{})
	avail, _ := backend.AvailableEarnings(context.Background())
	m.state.Wallet.Available = avail

	press(m, "7", "w")
	press(m, "1", "0", "0", "enter")
	press(m, "b", "k", "a", "s", "h", "enter")
	press(m, "0", "1", "7", "enter")
	press(m, "enter")

	assert.Nil(t, m.state.Form)
	assert.True(t, m.state.StatusIsError)
	assert.Contains(t, m.state.StatusMessage, "amount exceeds available earnings")
	assert.Empty(t, bus.published())
}

func TestCashoutPublishesRequest(t *testing.T) {
	m, bus, backend := newTestModel(t, Options{})
	avail, _ := backend.AvailableEarnings(context.Background())
	m.state.Wallet.Available = avail

	press(m, "7", "w")
	press(m, "4", "0", "enter")
	press(m, "b", "k", "a", "s", "h", "enter")
	press(m, "0", "1", "7", "enter")
	press(m, "enter")

	want := eventbus.CashoutRequestedEvent{Input: domain.CashoutInput{
		Amount: 40, PaymentMethod: "bkash", PaymentDetails: "017",
	}}
	assert.Contains(t, bus.published(), want)
}

func TestComposeRejectsEmptyMessage(t *testing.T) {
	m, bus, _ := newTestModel(t, Options{})
	m.state.SetPanel(inputtypes.PanelOrders)
	m.state.BuyerOrders = []domain.Order{{ID: 7, GigTitle: "Logo design"}}

	press(m, "M")
	require.Equal(t, inputtypes.ModeCompose, m.inputHandler.GetMode())
	press(m, " ", "enter")

	assert.True(t, m.state.StatusIsError)
	assert.Equal(t, "message cannot be empty", m.state.StatusMessage)
	assert.Empty(t, bus.published())

	press(m, "M", "h", "i", "enter")
	assert.Contains(t, bus.published(), eventbus.MessageSendRequestedEvent{OrderID: 7, Text: "hi"})
}

func TestSellerStatusKeys(t *testing.T) {
	m, bus, _ := newTestModel(t, Options{})
	m.state.SetPanel(inputtypes.PanelSales)
	m.state.SellerOrders = []domain.Order{{ID: 3, Status: domain.OrderPending}}

	press(m, "a")
	assert.Contains(t, bus.published(), eventbus.OrderStatusRequestedEvent{OrderID: 3, Status: domain.OrderInProgress})
}

func TestOpeningNotificationMarksItReadAndOpensThread(t *testing.T) {
	m, bus, _ := newTestModel(t, Options{})
	orderID := 9
	m.state.SetPanel(inputtypes.PanelNotifications)
	m.state.Notifications = []domain.Notification{{ID: 4, Title: "New order", OrderID: &orderID}}
	m.state.UnreadNotifications = 1

	press(m, "enter")

	assert.True(t, m.state.Notifications[0].IsRead)
	assert.Equal(t, 0, m.state.UnreadNotifications)
	assert.Contains(t, bus.published(), eventbus.NotificationReadRequestedEvent{ID: 4})
	assert.Equal(t, 9, m.wantThread)

	thread := &domain.Thread{OrderInfo: domain.OrderInfo{ID: 9}}
	m.Update(threadLoadedMsg{orderID: 9, thread: thread})
	assert.Same(t, thread, m.state.Thread)

	press(m, "esc")
	assert.Nil(t, m.state.Thread)
}

func TestMarkAllRead(t *testing.T) {
	m, bus, _ := newTestModel(t, Options{})
	m.state.SetPanel(inputtypes.PanelNotifications)
	m.state.Notifications = []domain.Notification{{ID: 1}, {ID: 2}}
	m.state.UnreadNotifications = 2

	press(m, "A")
	assert.Equal(t, 0, m.state.UnreadNotifications)
	assert.True(t, m.state.Notifications[1].IsRead)
	assert.Contains(t, bus.published(), eventbus.NotificationReadRequestedEvent{ID: 0})
}

func TestLateThreadIsDropped(t *testing.T) {
	m, _, _ := newTestModel(t, Options{})
	m.Update(threadLoadedMsg{orderID: 5, thread: &domain.Thread{}})
	assert.Nil(t, m.state.Thread)
}

func TestEventsUpdateStatusLine(t *testing.T) {
	m, _, _ := newTestModel(t, Options{})
	m.state.Balance = &domain.Balance{Balance: 500}

	_, cmd := m.Update(EventMsg{Event: eventbus.OrderPlacedEvent{GigID: 1, Result: domain.OrderResult{OrderID: 2, NewBalance: 400}}})
	assert.NotNil(t, cmd)
	assert.Equal(t, 400.0, m.state.Balance.Balance)
	assert.Contains(t, m.state.StatusMessage, "Order placed successfully!")

	seq := m.statusSeq
	m.Update(clearStatusMsg{seq: seq - 1})
	assert.NotEmpty(t, m.state.StatusMessage, "an older timer leaves a newer message alone")
	m.Update(clearStatusMsg{seq: seq})
	assert.Empty(t, m.state.StatusMessage)
}

func TestQuitClosesPopupFirst(t *testing.T) {
	m, _, _ := newTestModel(t, Options{})

	press(m, "?")
	require.True(t, m.state.ShowHelp)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	assert.False(t, m.state.ShowHelp)
	if cmd != nil {
		assert.NotEqual(t, tea.QuitMsg{}, cmd())
	}

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}

func TestPanelSwitchKeepsCursorPerPanel(t *testing.T) {
	m, _, backend := newTestModel(t, Options{})
	loadGigs(m, backend.gigs)

	press(m, "down", "down")
	assert.Equal(t, 2, m.state.SelectedIndex)

	press(m, "tab")
	assert.Equal(t, inputtypes.PanelOrders, m.state.Panel)
	assert.Equal(t, 0, m.state.SelectedIndex)

	press(m, "1")
	assert.Equal(t, inputtypes.PanelGigs, m.state.Panel)
	assert.Equal(t, 2, m.state.SelectedIndex)
}

func TestViewRendersGrid(t *testing.T) {
	m, _, backend := newTestModel(t, Options{})
	loadGigs(m, backend.gigs)

	out := m.View()
	assert.Contains(t, out, "gigboard")
	assert.Contains(t, out, "Logo design")
	assert.Contains(t, out, "press m to show more")
}
