package ui

import (
	"context"
	"fmt"
	"log"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"gigboard/internal/catalog"
	"gigboard/internal/config"
	"gigboard/internal/domain"
	"gigboard/internal/eventbus"
	"gigboard/internal/market"
	"gigboard/internal/ui/handlers"
	"gigboard/internal/ui/input"
	inputtypes "gigboard/internal/ui/input/types"
	"gigboard/internal/ui/logic"
	"gigboard/internal/ui/state"
	"gigboard/internal/ui/views"
)

// Lines taken by everything around the panel body
const chromeLines = 14

// statusTTL is how long a status message stays on screen
const statusTTL = 6 * time.Second

// Backend is the read side of the marketplace API the UI loads panels from
type Backend interface {
	catalog.GigSource
	GetGig(ctx context.Context, id int) (*domain.GigDetail, error)
	Categories(ctx context.Context) ([]domain.Category, error)
	MyGigs(ctx context.Context) ([]domain.MyGig, error)
	BuyerOrders(ctx context.Context) ([]domain.Order, error)
	SellerOrders(ctx context.Context) ([]domain.Order, error)
	Messages(ctx context.Context, orderID int) (*domain.Thread, error)
	SellerEarnings(ctx context.Context) (*domain.Earnings, error)
	AvailableEarnings(ctx context.Context) (*domain.AvailableEarnings, error)
	BalanceRequests(ctx context.Context) ([]domain.BalanceRequest, error)
	CashoutRequests(ctx context.Context) ([]domain.CashoutRequest, error)
}

// Options are the startup choices taken from the command line
type Options struct {
	Username string
	Category string
	Filter   string
	Search   string
}

// Model represents the UI state
type Model struct {
	bus     eventbus.EventBus
	config  *config.Config
	state   *state.AppState // centralized state
	backend Backend

	// UI-specific state not in AppState
	width       int
	height      int
	spinner     spinner.Model
	username    string
	now         time.Time
	inPagerMode bool // tracks if we're currently in pager mode

	// Startup selections applied once the first data arrives
	pendingCategory string
	pendingSearch   string

	// What the user asked to open; late responses for anything else are dropped
	wantDetail int
	wantThread int

	composeOrderID int
	suggestions    catalog.Suggestions
	statusSeq      int

	// Handlers
	catalog      *catalog.Controller
	navigator    *logic.Navigator
	renderer     *views.Renderer
	eventHandler *handlers.EventHandler
	inputHandler *input.Handler
	helpRenderer *HelpRenderer
	pager        *PagerOps

	// Program reference for terminal management
	program *tea.Program
}

// NewModel creates a new UI model
func NewModel(bus eventbus.EventBus, cfg *config.Config, backend Backend, opts Options) *Model {
	appState := state.NewAppState()
	if opts.Filter != "" && !appState.SelectFilter(opts.Filter) {
		log.Printf("Unknown filter %q, showing all gigs", opts.Filter)
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return &Model{
		bus:             bus,
		config:          cfg,
		state:           appState,
		backend:         backend,
		spinner:         sp,
		username:        opts.Username,
		now:             time.Now(),
		pendingCategory: strings.TrimSpace(opts.Category),
		pendingSearch:   strings.TrimSpace(opts.Search),
		catalog: catalog.New(backend,
			catalog.WithPageSize(cfg.UI.PageSize),
			catalog.WithSuggestions(cfg.UI.SuggestionLimit, cfg.UI.SuggestionMinChars)),
		navigator:    logic.NewNavigator(),
		renderer:     views.NewRenderer(),
		eventHandler: handlers.NewEventHandler(appState, cfg.UI.Currency),
		inputHandler: input.New(),
		helpRenderer: NewHelpRenderer(),
		pager:        NewPagerOps(),
	}
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
	m.pager.SetProgram(p)
}

// Init loads every panel once and starts the timers
func (m *Model) Init() tea.Cmd {
	q := m.state.Query()
	q.Category = m.pendingCategory
	return tea.Batch(
		m.loadGigs(q),
		m.loadCategories(),
		m.loadOrders(false),
		m.loadOrders(true),
		m.loadMyGigs(),
		m.loadWallet(),
		m.spinner.Tick,
		tick(),
	)
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	before := m.state.StatusMessage
	cmd := m.update(msg)

	// Every new status message clears itself after a while
	if s := m.state.StatusMessage; s != "" && s != before {
		m.statusSeq++
		seq := m.statusSeq
		cmd = tea.Batch(cmd, tea.Tick(statusTTL, func(time.Time) tea.Msg { return clearStatusMsg{seq: seq} }))
	}
	return m, cmd
}

func (m *Model) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateViewportHeight()
		return nil

	case tea.KeyMsg:
		if m.inPagerMode {
			return nil
		}
		return m.handleKey(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return cmd
	}

	// Handle non-keyboard messages
	if cmd := m.inputHandler.Update(msg); cmd != nil {
		return cmd
	}
	return m.handleNonKeyboardMsg(msg)
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	ctx := m.inputContext()
	modeBefore := m.inputHandler.GetMode()

	actions, cmd := m.inputHandler.HandleKey(msg, ctx)
	cmds := []tea.Cmd{cmd}

	if mode := m.inputHandler.GetMode(); mode != modeBefore {
		m.enterMode(mode, ctx)
	}

	for _, action := range actions {
		cmds = append(cmds, m.processAction(action))
	}
	return tea.Batch(cmds...)
}

// inputContext describes the model to the input handler
func (m *Model) inputContext() *input.ModelContext {
	out := m.catalog.Output()
	return &input.ModelContext{
		State:    m.state,
		GigCount: len(out.Cards),
		ShowMore: out.ShowMore,
		Term:     m.catalog.Term(),
	}
}

// enterMode prepares the state a mode works on when it is entered by a key
func (m *Model) enterMode(mode inputtypes.Mode, ctx *input.ModelContext) {
	switch mode {
	case inputtypes.ModeRequirements:
		m.state.PendingGig = m.selectedGig()
		m.state.Requirements = ""
		if m.state.PendingGig == nil {
			m.inputHandler.Reset()
		}
	case inputtypes.ModeCompose:
		m.composeOrderID = ctx.CurrentOrderID()
	case inputtypes.ModeBalanceRequest:
		m.state.Form = &state.Form{Mode: mode, Fields: []string{"Amount", "Note (optional)"}}
	case inputtypes.ModeCashout:
		m.state.Form = &state.Form{Mode: mode, Fields: []string{
			"Amount", "Payment method (bkash, nagad, rocket, bank)", "Payment details", "Note (optional)",
		}}
	case inputtypes.ModeSearch:
		m.suggestions = m.catalog.Suggest(m.catalog.Term())
	}
}

// selectedGig returns the gig in the detail popup, or the highlighted card
func (m *Model) selectedGig() *domain.Gig {
	if d := m.state.Detail; d != nil {
		g := d.Gig
		return &g
	}
	cards := m.catalog.Output().Cards
	if i := m.state.SelectedIndex; i >= 0 && i < len(cards) {
		g := cards[i]
		return &g
	}
	return nil
}

// processAction processes an action from the input handler
func (m *Model) processAction(action inputtypes.Action) tea.Cmd {
	switch a := action.(type) {
	case inputtypes.NavigateAction:
		m.navigate(a.Direction)

	case inputtypes.SwitchPanelAction:
		return m.switchPanel(a)

	case inputtypes.UpdateTextAction:
		if m.inputHandler.GetMode() == inputtypes.ModeSearch {
			m.catalog.Search(a.Text)
			m.suggestions = m.catalog.Suggest(a.Text)
			m.resetSelection()
		}

	case inputtypes.SubmitTextAction:
		return m.submitText(a)

	case inputtypes.CancelTextAction:
		m.cancelText(a.Mode)

	case inputtypes.ShowMoreAction:
		m.catalog.ShowMore()

	case inputtypes.ClearSearchAction:
		m.catalog.ClearSearch()
		m.resetSelection()

	case inputtypes.CycleFilterAction:
		m.state.CycleFilter()
		return m.loadGigs(m.state.Query())

	case inputtypes.CycleCategoryAction:
		m.state.CycleCategory(a.Delta)
		return m.loadGigs(m.state.Query())

	case inputtypes.OpenAction:
		return m.open()

	case inputtypes.ClosePopupAction:
		m.closePopup()

	case inputtypes.PagerAction:
		return m.openPager()

	case inputtypes.ConfirmOrderAction:
		if g := m.state.PendingGig; g != nil {
			log.Printf("Ordering gig %d", g.ID)
			m.bus.Publish(eventbus.OrderRequestedEvent{GigID: g.ID, Requirements: m.state.Requirements})
			m.state.SetStatus("Placing order...", false)
		}
		m.state.PendingGig = nil
		m.state.Requirements = ""

	case inputtypes.OrderStatusAction:
		if id := m.inputContext().CurrentOrderID(); id != 0 {
			m.bus.Publish(eventbus.OrderStatusRequestedEvent{OrderID: id, Status: a.Status})
		}

	case inputtypes.MarkAllReadAction:
		for i := range m.state.Notifications {
			m.state.Notifications[i].IsRead = true
		}
		m.state.UnreadNotifications = 0
		m.bus.Publish(eventbus.NotificationReadRequestedEvent{})

	case inputtypes.RefreshAction:
		m.bus.Publish(eventbus.RefreshRequestedEvent{})
		return m.reload(panelResources(m.state.Panel))

	case inputtypes.ToggleHelpAction:
		m.state.ShowHelp = !m.state.ShowHelp

	case inputtypes.QuitAction:
		if !a.Force && m.state.HasPopup() {
			m.closePopup()
			return nil
		}
		return tea.Quit
	}
	return nil
}

func (m *Model) navigate(direction string) {
	total := m.inputContext().TotalItems()
	m.navigator.UpdateState(m.state.SelectedIndex, m.state.ViewportOffset, m.state.ViewportHeight, total)

	var idx, off int
	switch direction {
	case "up":
		idx, off = m.navigator.Move(-1)
	case "down":
		idx, off = m.navigator.Move(1)
	case "pageup":
		idx, off = m.navigator.PageUp()
	case "pagedown":
		idx, off = m.navigator.PageDown()
	case "home":
		idx, off = m.navigator.Home()
	case "end":
		idx, off = m.navigator.End()
	default:
		return
	}
	m.state.SelectedIndex, m.state.ViewportOffset = idx, off
}

// ensureSelectedVisible keeps the selection inside the list after it changed
func (m *Model) ensureSelectedVisible() {
	total := m.inputContext().TotalItems()
	m.navigator.UpdateState(m.state.SelectedIndex, m.state.ViewportOffset, m.state.ViewportHeight, total)
	m.state.SelectedIndex, m.state.ViewportOffset = m.navigator.SetSelectedIndex(m.state.SelectedIndex)
}

func (m *Model) resetSelection() {
	m.state.SelectedIndex = 0
	m.state.ViewportOffset = 0
}

func (m *Model) switchPanel(a inputtypes.SwitchPanelAction) tea.Cmd {
	target := a.Panel
	if a.Delta != 0 {
		n := len(inputtypes.Panels)
		target = inputtypes.Panels[((int(m.state.Panel)+a.Delta)%n+n)%n]
	}
	if target == m.state.Panel {
		return nil
	}

	m.state.Detail = nil
	m.state.Thread = nil
	m.wantDetail, m.wantThread = 0, 0
	m.state.SetPanel(target)
	m.updateViewportHeight()
	m.ensureSelectedVisible()

	// Dashboard panels show fresh data whenever they are opened; the gig
	// grid keeps its search
	if target == inputtypes.PanelGigs {
		return nil
	}
	return m.reload(panelResources(target))
}

// panelResources lists what a panel shows besides the polled counters
func panelResources(p inputtypes.Panel) []state.Resource {
	switch p {
	case inputtypes.PanelGigs:
		return []state.Resource{state.ResGigs}
	case inputtypes.PanelOrders:
		return []state.Resource{state.ResBuyerOrders}
	case inputtypes.PanelSales:
		return []state.Resource{state.ResSellerOrders}
	case inputtypes.PanelMyGigs:
		return []state.Resource{state.ResMyGigs}
	case inputtypes.PanelWallet:
		return []state.Resource{state.ResWallet}
	}
	return nil
}

func (m *Model) submitText(a inputtypes.SubmitTextAction) tea.Cmd {
	ctx := m.inputContext()
	switch a.Mode {
	case inputtypes.ModeSearch:
		m.catalog.Search(a.Text)
		m.suggestions = catalog.Suggestions{}
		m.resetSelection()

	case inputtypes.ModeRequirements:
		if m.state.PendingGig == nil {
			return nil
		}
		m.state.Requirements = strings.TrimSpace(a.Text)
		return m.inputHandler.ChangeMode(inputtypes.ModeOrderConfirm, "", ctx)

	case inputtypes.ModeCompose:
		text, err := market.ValidateMessage(a.Text)
		if err != nil {
			m.state.SetStatus(err.Error(), true)
			return nil
		}
		if m.composeOrderID != 0 {
			m.bus.Publish(eventbus.MessageSendRequestedEvent{OrderID: m.composeOrderID, Text: text})
		}
		m.composeOrderID = 0

	case inputtypes.ModeBalanceRequest, inputtypes.ModeCashout:
		return m.submitFormField(a.Mode, a.Text, ctx)
	}
	return nil
}

// submitFormField stores one answer and either asks for the next field or
// submits the whole form
func (m *Model) submitFormField(mode inputtypes.Mode, text string, ctx *input.ModelContext) tea.Cmd {
	form := m.state.Form
	if form == nil || form.Mode != mode {
		return nil
	}
	text = strings.TrimSpace(text)

	if form.Step() == 0 {
		amount, err := strconv.ParseFloat(text, 64)
		if err == nil {
			err = market.ValidateAmount(amount)
		}
		if err != nil {
			m.state.SetStatus("Please enter a valid amount", true)
			m.state.Form = nil
			return nil
		}
	}

	form.Values = append(form.Values, text)
	if !form.Done() {
		return m.inputHandler.ChangeMode(mode, "", ctx)
	}

	m.state.Form = nil
	amount, _ := strconv.ParseFloat(form.Values[0], 64)

	if mode == inputtypes.ModeBalanceRequest {
		m.bus.Publish(eventbus.BalanceRequestSubmittedEvent{Amount: amount, Note: form.Values[1]})
		return nil
	}

	in := domain.CashoutInput{
		Amount:         amount,
		PaymentMethod:  form.Values[1],
		PaymentDetails: form.Values[2],
		Note:           form.Values[3],
	}
	// Without a wallet reading the server checks the amount
	available := math.Inf(1)
	if a := m.state.Wallet.Available; a != nil {
		available = a.AvailableEarnings
	}
	if err := market.ValidateCashout(in, available); err != nil {
		m.state.SetStatus(err.Error(), true)
		return nil
	}
	m.bus.Publish(eventbus.CashoutRequestedEvent{Input: in})
	return nil
}

func (m *Model) cancelText(mode inputtypes.Mode) {
	switch mode {
	case inputtypes.ModeSearch:
		m.suggestions = catalog.Suggestions{}
	case inputtypes.ModeRequirements, inputtypes.ModeOrderConfirm:
		m.state.PendingGig = nil
		m.state.Requirements = ""
	case inputtypes.ModeCompose:
		m.composeOrderID = 0
	case inputtypes.ModeBalanceRequest, inputtypes.ModeCashout:
		m.state.Form = nil
	}
}

// open acts on the highlighted row of the current panel
func (m *Model) open() tea.Cmd {
	s := m.state
	i := s.SelectedIndex
	switch s.Panel {
	case inputtypes.PanelGigs:
		if g := m.selectedGig(); g != nil {
			return m.loadDetail(g.ID)
		}
	case inputtypes.PanelMyGigs:
		if i < len(s.MyGigs) {
			return m.loadDetail(s.MyGigs[i].ID)
		}
	case inputtypes.PanelNotifications:
		if i >= len(s.Notifications) {
			return nil
		}
		n := &s.Notifications[i]
		if !n.IsRead {
			n.IsRead = true
			if s.UnreadNotifications > 0 {
				s.UnreadNotifications--
			}
			m.bus.Publish(eventbus.NotificationReadRequestedEvent{ID: n.ID})
		}
		if n.OrderID != nil {
			return m.loadThread(*n.OrderID)
		}
	default:
		if id := s.OrderIDAt(i); id != 0 {
			return m.loadThread(id)
		}
	}
	return nil
}

func (m *Model) closePopup() {
	m.state.ClosePopup()
	if m.state.Thread == nil {
		m.wantThread = 0
	}
	if m.state.Detail == nil {
		m.wantDetail = 0
	}
}

// openPager shows the top-most popup, or the wallet report, in the pager
func (m *Model) openPager() tea.Cmd {
	s := m.state
	currency := m.config.UI.Currency
	var content string
	switch {
	case s.ShowHelp:
		content = m.helpRenderer.RenderHelpContentPlain()
	case s.Thread != nil:
		content = views.ThreadReport(s.Thread, currency, m.now)
	case s.Detail != nil:
		content = views.DetailReport(s.Detail, currency)
	case s.Panel == inputtypes.PanelWallet:
		content = views.EarningsReport(s.Wallet, currency)
	default:
		m.state.SetStatus("Open a gig or a thread first", false)
		return nil
	}
	if m.program == nil {
		return nil
	}
	return m.showPager(content)
}

// showPager returns a command that runs the pager, pausing and resuming rendering
func (m *Model) showPager(content string) tea.Cmd {
	return func() tea.Msg {
		// Send pause message to stop rendering
		m.program.Send(pauseRenderingMsg{})

		err := m.pager.ShowInPager(content)

		// Send resume message to restart rendering
		m.program.Send(resumeRenderingMsg{})

		return pagerMsg{err: err}
	}
}

// handleNonKeyboardMsg handles non-keyboard messages
func (m *Model) handleNonKeyboardMsg(msg tea.Msg) tea.Cmd {
	s := m.state
	switch msg := msg.(type) {
	case EventMsg:
		cmd := m.reload(m.eventHandler.HandleEvent(msg.Event))
		m.ensureSelectedVisible()
		return cmd

	case tickMsg:
		m.now = time.Time(msg)
		// Don't continue tick loop if we're in pager mode
		if m.inPagerMode {
			return nil
		}
		return tick()

	case gigsLoadedMsg:
		s.Loading[state.ResGigs] = false
		s.Errors[state.ResGigs] = msg.err
		m.catalog.Apply(msg.query, msg.gigs, msg.err)
		if m.pendingSearch != "" && msg.err == nil {
			m.catalog.Search(m.pendingSearch)
			m.pendingSearch = ""
		}
		if s.Panel == inputtypes.PanelGigs {
			m.resetSelection()
		}

	case categoriesLoadedMsg:
		s.Loading[state.ResCategories] = false
		if msg.err != nil {
			log.Printf("Error loading categories: %v", msg.err)
			return nil
		}
		s.Categories = msg.categories
		if name := m.pendingCategory; name != "" {
			m.pendingCategory = ""
			if !s.SelectCategory(name) {
				log.Printf("Unknown category %q, showing all gigs", name)
				return m.loadGigs(s.Query())
			}
		}

	case detailLoadedMsg:
		s.Loading[state.ResDetail] = false
		if msg.err != nil {
			s.SetStatus("Could not load gig: "+handlers.ErrorText(msg.err), true)
			return nil
		}
		if msg.detail != nil && msg.detail.ID == m.wantDetail {
			s.Detail = msg.detail
		}

	case ordersLoadedMsg:
		res := state.ResBuyerOrders
		if msg.selling {
			res = state.ResSellerOrders
		}
		s.Loading[res] = false
		s.Errors[res] = msg.err
		if msg.err != nil {
			log.Printf("Error loading orders: %v", msg.err)
			return nil
		}
		if msg.selling {
			s.SellerOrders = msg.orders
		} else {
			s.BuyerOrders = msg.orders
		}
		m.ensureSelectedVisible()

	case myGigsLoadedMsg:
		s.Loading[state.ResMyGigs] = false
		s.Errors[state.ResMyGigs] = msg.err
		if msg.err != nil {
			log.Printf("Error loading my gigs: %v", msg.err)
			return nil
		}
		s.MyGigs = msg.gigs
		m.ensureSelectedVisible()

	case threadLoadedMsg:
		s.Loading[state.ResThread] = false
		if msg.orderID != m.wantThread {
			return nil
		}
		if msg.err != nil {
			m.wantThread = 0
			s.SetStatus("Could not load messages: "+handlers.ErrorText(msg.err), true)
			return nil
		}
		s.Thread = msg.thread
		// Opening a thread marks it read on the server
		m.bus.Publish(eventbus.RefreshRequestedEvent{})

	case walletLoadedMsg:
		s.Loading[state.ResWallet] = false
		s.Errors[state.ResWallet] = msg.err
		if msg.err != nil {
			log.Printf("Error loading wallet: %v", msg.err)
		}
		s.Wallet = msg.wallet

	case pagerMsg:
		if msg.err != nil {
			log.Printf("Pager failed: %v", msg.err)
			s.SetStatus("Pager failed: "+msg.err.Error(), true)
		}

	case pauseRenderingMsg:
		m.inPagerMode = true

	case resumeRenderingMsg:
		m.inPagerMode = false
		return tick()

	case clearStatusMsg:
		if msg.seq == m.statusSeq {
			s.SetStatus("", false)
		}
	}
	return nil
}

// View renders the UI
func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	mode := m.inputHandler.GetMode()
	vs := views.ViewState{
		Width:       m.width,
		Height:      m.height,
		State:       m.state,
		Grid:        m.catalog.Output(),
		ResultsInfo: m.catalog.ResultsInfo(),
		SearchTerm:  m.catalog.Term(),
		InputMode:   mode,
		InputPrompt: m.inputHandler.Prompt(),
		Username:    m.username,
		Currency:    m.config.UI.Currency,
		ShowRatings: m.config.UI.ShowRatings,
		Now:         m.now,
	}
	if mode == inputtypes.ModeSearch {
		vs.Suggestions = m.suggestions
	}
	if f := m.state.Form; f != nil && f.Mode == mode {
		vs.InputPrompt = f.Prompt() + ": "
	}
	if ti := m.inputHandler.TextInput(); ti != nil {
		vs.InputView = ti.View()
	}
	if m.loading() {
		vs.Spinner = m.spinner.View()
	}
	if m.state.ShowHelp {
		vs.HelpContent = m.helpRenderer.renderHelpContent(m.height)
	}
	return m.renderer.Render(vs)
}

func (m *Model) loading() bool {
	for _, busy := range m.state.Loading {
		if busy {
			return true
		}
	}
	return false
}

// updateViewportHeight calculates how many rows of the current panel fit
func (m *Model) updateViewportHeight() {
	if m.height == 0 {
		return
	}
	rows := (m.height - chromeLines) / views.RowHeight(m.state.Panel)
	if rows < 1 {
		rows = 1
	}
	m.state.ViewportHeight = rows
	m.ensureSelectedVisible()
}

// tick returns a command that sends a tick message after a delay
func tick() tea.Cmd {
	return tea.Tick(30*time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Loaders. Each runs in its own tea.Cmd goroutine with the configured timeout
// and reports back as a message.

func (m *Model) fetch(res state.Resource, fn func(ctx context.Context) tea.Msg) tea.Cmd {
	m.state.Loading[res] = true
	timeout := m.config.Server.Timeout.Duration
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return fn(ctx)
	}
}

func (m *Model) loadGigs(q domain.GigQuery) tea.Cmd {
	return m.fetch(state.ResGigs, func(ctx context.Context) tea.Msg {
		gigs, err := m.backend.ListGigs(ctx, q)
		return gigsLoadedMsg{query: q, gigs: gigs, err: err}
	})
}

func (m *Model) loadCategories() tea.Cmd {
	return m.fetch(state.ResCategories, func(ctx context.Context) tea.Msg {
		cats, err := m.backend.Categories(ctx)
		return categoriesLoadedMsg{categories: cats, err: err}
	})
}

func (m *Model) loadDetail(id int) tea.Cmd {
	m.wantDetail = id
	return m.fetch(state.ResDetail, func(ctx context.Context) tea.Msg {
		d, err := m.backend.GetGig(ctx, id)
		return detailLoadedMsg{detail: d, err: err}
	})
}

func (m *Model) loadOrders(selling bool) tea.Cmd {
	res := state.ResBuyerOrders
	if selling {
		res = state.ResSellerOrders
	}
	return m.fetch(res, func(ctx context.Context) tea.Msg {
		var orders []domain.Order
		var err error
		if selling {
			orders, err = m.backend.SellerOrders(ctx)
		} else {
			orders, err = m.backend.BuyerOrders(ctx)
		}
		return ordersLoadedMsg{selling: selling, orders: orders, err: err}
	})
}

func (m *Model) loadMyGigs() tea.Cmd {
	return m.fetch(state.ResMyGigs, func(ctx context.Context) tea.Msg {
		gigs, err := m.backend.MyGigs(ctx)
		return myGigsLoadedMsg{gigs: gigs, err: err}
	})
}

func (m *Model) loadThread(orderID int) tea.Cmd {
	m.wantThread = orderID
	return m.fetch(state.ResThread, func(ctx context.Context) tea.Msg {
		t, err := m.backend.Messages(ctx, orderID)
		return threadLoadedMsg{orderID: orderID, thread: t, err: err}
	})
}

// loadWallet gathers the four wallet sections; what loaded is kept even when
// another section failed
func (m *Model) loadWallet() tea.Cmd {
	return m.fetch(state.ResWallet, func(ctx context.Context) tea.Msg {
		var w state.Wallet
		var errs []string

		earnings, err := m.backend.SellerEarnings(ctx)
		if err != nil {
			errs = append(errs, err.Error())
		}
		w.Earnings = earnings

		available, err := m.backend.AvailableEarnings(ctx)
		if err != nil {
			errs = append(errs, err.Error())
		}
		w.Available = available

		if w.BalanceRequests, err = m.backend.BalanceRequests(ctx); err != nil {
			errs = append(errs, err.Error())
		}
		if w.Cashouts, err = m.backend.CashoutRequests(ctx); err != nil {
			errs = append(errs, err.Error())
		}

		msg := walletLoadedMsg{wallet: w}
		if len(errs) > 0 {
			msg.err = fmt.Errorf("failed to load wallet: %s", strings.Join(errs, "; "))
		}
		return msg
	})
}

// reload loads the given resources again
func (m *Model) reload(resources []state.Resource) tea.Cmd {
	var cmds []tea.Cmd
	for _, res := range resources {
		switch res {
		case state.ResGigs:
			cmds = append(cmds, m.loadGigs(m.state.Query()))
		case state.ResCategories:
			cmds = append(cmds, m.loadCategories())
		case state.ResBuyerOrders:
			cmds = append(cmds, m.loadOrders(false))
		case state.ResSellerOrders:
			cmds = append(cmds, m.loadOrders(true))
		case state.ResMyGigs:
			cmds = append(cmds, m.loadMyGigs())
		case state.ResWallet:
			cmds = append(cmds, m.loadWallet())
		case state.ResThread:
			if t := m.state.Thread; t != nil {
				cmds = append(cmds, m.loadThread(t.OrderInfo.ID))
			}
		}
	}
	return tea.Batch(cmds...)
}
