package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"gigboard/internal/domain"
	"gigboard/internal/ui/input/types"
	"gigboard/internal/ui/state"
)

// rowMarker returns the cursor marker and the title style of a list row
func (r *Renderer) rowMarker(selected bool) (string, lipgloss.Style) {
	title := lipgloss.NewStyle().Bold(true)
	if selected {
		return r.styles.Highlight.Render("▸ "), title.Inherit(r.styles.SelectionBg)
	}
	return "  ", title
}

// loadingOrEmpty returns the placeholder of a list panel without rows
func (r *Renderer) loadingOrEmpty(vs ViewState, res state.Resource, what, title, message string) string {
	s := vs.State
	if s.Loading[res] {
		return r.styles.Dim.Render(fmt.Sprintf("Loading %s...", what))
	}
	if s.Errors[res] != nil {
		return r.renderEmpty(fmt.Sprintf("Error loading %s", what), "Please try again later.")
	}
	return r.renderEmpty(title, message)
}

func (r *Renderer) renderOrders(vs ViewState, orders []domain.Order, selling bool) string {
	if len(orders) == 0 {
		if selling {
			return r.loadingOrEmpty(vs, state.ResSellerOrders, "sales", "No Sales Yet", "Create gigs to start selling!")
		}
		return r.loadingOrEmpty(vs, state.ResBuyerOrders, "orders", "No Orders Yet", "Browse gigs and place your first order!")
	}

	start, end, above, below := r.window(len(orders), vs)
	rows := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		o := orders[i]
		marker, title := r.rowMarker(i == vs.State.SelectedIndex)
		line1 := fmt.Sprintf("%s%s %s  %s  %s", marker, r.styles.Dim.Render(fmt.Sprintf("#%d", o.ID)),
			title.Render(o.GigTitle), r.styles.StatusBadge(o.Status), r.styles.Price.Render(Money(o.Price, vs.Currency)))

		var meta []string
		if selling {
			meta = append(meta, "Buyer: "+r.styles.Seller.Render(o.BuyerName))
			req := o.Requirements
			if req == "" {
				req = "None"
			}
			meta = append(meta, "Requirements: "+Truncate(oneLine(req), 40))
		} else {
			meta = append(meta, "Seller: "+r.styles.Seller.Render(o.SellerName))
			if o.DeliveryTime > 0 {
				meta = append(meta, "Delivery: "+Delivery(o.DeliveryTime))
			}
		}
		meta = append(meta, "Ordered: "+ShortDate(o.CreatedAt))
		rows = append(rows, line1+"\n    "+r.styles.Dim.Render(strings.Join(meta, " · ")))
	}
	return r.joinWindow(rows, above, below)
}

func (r *Renderer) renderMyGigs(vs ViewState) string {
	gigs := vs.State.MyGigs
	if len(gigs) == 0 {
		return r.loadingOrEmpty(vs, state.ResMyGigs, "gigs", "No gigs yet", "Create your first gig to start selling.")
	}

	start, end, above, below := r.window(len(gigs), vs)
	rows := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		g := gigs[i]
		marker, title := r.rowMarker(i == vs.State.SelectedIndex)
		line1 := fmt.Sprintf("%s%s  %s  %s", marker, title.Render(g.Title),
			r.styles.Price.Render(Money(g.Price, vs.Currency)), r.styles.Dim.Render("["+g.Status+"]"))
		meta := []string{g.Category, Delivery(g.DeliveryTime), "Created " + ShortDate(g.CreatedAt)}
		rows = append(rows, line1+"\n    "+r.styles.Dim.Render(strings.Join(meta, " · ")))
	}
	return r.joinWindow(rows, above, below)
}

func (r *Renderer) renderInbox(vs ViewState) string {
	convs := vs.State.Conversations
	if len(convs) == 0 {
		return r.renderEmpty("No messages yet", "Start a conversation by placing an order")
	}

	start, end, above, below := r.window(len(convs), vs)
	rows := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		c := convs[i]
		marker, title := r.rowMarker(i == vs.State.SelectedIndex)
		line1 := fmt.Sprintf("%s%s with %s  %s", marker, title.Render(c.GigTitle),
			r.styles.Seller.Render(c.OtherUser), r.styles.StatusBadge(c.Status))
		if c.UnreadCount > 0 {
			line1 += "  " + r.styles.Badge.Render(fmt.Sprintf("%d new", c.UnreadCount))
		}
		last := c.LastMessage
		if last == "" {
			last = "No messages yet"
		}
		line2 := r.styles.Dim.Render(fmt.Sprintf("%s · %s", last, TimeAgoString(c.LastMessageTime, vs.Now)))
		rows = append(rows, line1+"\n    "+line2)
	}
	return r.joinWindow(rows, above, below)
}

func (r *Renderer) renderNotifications(vs ViewState) string {
	notes := vs.State.Notifications
	if len(notes) == 0 {
		return r.renderEmpty("No notifications yet", "We'll notify you when something happens")
	}

	start, end, above, below := r.window(len(notes), vs)
	rows := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		n := notes[i]
		marker, title := r.rowMarker(i == vs.State.SelectedIndex)
		if n.IsRead {
			title = title.Bold(false).Faint(true)
		}
		line1 := fmt.Sprintf("%s%s %s", marker, NotificationIcon(n.Type), title.Render(n.Title))
		if !n.IsRead {
			line1 += " " + r.styles.Badge.Render("●")
		}
		line2 := r.styles.Dim.Render(fmt.Sprintf("%s · %s", n.Message, TimeAgoString(n.CreatedAt, vs.Now)))
		rows = append(rows, line1+"\n    "+line2)
	}
	return r.joinWindow(rows, above, below)
}

func (r *Renderer) renderWallet(vs ViewState) string {
	s := vs.State
	w := s.Wallet
	if s.Loading[state.ResWallet] && w.Earnings == nil && w.Available == nil {
		return r.styles.Dim.Render("Loading wallet...")
	}

	var b strings.Builder
	balance := 0.0
	if s.Balance != nil {
		balance = s.Balance.Balance
	}
	fmt.Fprintf(&b, "%s %s\n", r.styles.Section.Render("Balance"), r.styles.Price.Render(Money(balance, vs.Currency)))

	if w.Earnings != nil {
		fmt.Fprintf(&b, "%s %s from %d completed orders\n", r.styles.Section.Render("Earnings"),
			r.styles.Price.Render(Money(w.Earnings.TotalEarnings, vs.Currency)), w.Earnings.TotalOrders)
	}
	if w.Available != nil {
		fmt.Fprintf(&b, "%s %s %s\n", r.styles.Section.Render("Available"),
			r.styles.Price.Render(Money(w.Available.AvailableEarnings, vs.Currency)),
			r.styles.Dim.Render(fmt.Sprintf("(cashed out %s)", Money(w.Available.TotalCashedOut, vs.Currency))))
	}

	b.WriteString("\n")
	b.WriteString(r.styles.Section.Render("Balance requests"))
	b.WriteString("\n")
	if len(w.BalanceRequests) == 0 {
		b.WriteString(r.styles.Dim.Render("  No balance requests yet"))
		b.WriteString("\n")
	}
	for _, req := range w.BalanceRequests {
		fmt.Fprintf(&b, "  %s  %s  %s", Money(req.Amount, vs.Currency), r.styles.StatusBadge(req.Status), r.styles.Dim.Render(ShortDate(req.CreatedAt)))
		if req.AdminNote != "" {
			b.WriteString(r.styles.Dim.Render("  Admin: " + req.AdminNote))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(r.styles.Section.Render("Cashout requests"))
	b.WriteString("\n")
	if len(w.Cashouts) == 0 {
		b.WriteString(r.styles.Dim.Render("  No cashout requests yet"))
		b.WriteString("\n")
	}
	for _, req := range w.Cashouts {
		fmt.Fprintf(&b, "  %s via %s  %s  %s\n", Money(req.Amount, vs.Currency), req.PaymentMethod,
			r.styles.StatusBadge(req.Status), r.styles.Dim.Render(ShortDate(req.CreatedAt)))
	}

	b.WriteString("\n")
	b.WriteString(r.styles.Section.Render("Cashout history"))
	b.WriteString("\n")
	history := s.ApprovedCashouts()
	if len(history) == 0 {
		b.WriteString(r.styles.Dim.Render("  No cashout history yet"))
	}
	for i, req := range history {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "  %s  %s  %s", r.styles.StatusSuccess.Render(Money(req.Amount, vs.Currency)),
			req.PaymentMethod, r.styles.Dim.Render(ShortDate(req.UpdatedAt)))
	}
	return b.String()
}

// RenderThread renders the message thread popup
func (r *Renderer) RenderThread(vs ViewState) string {
	t := vs.State.Thread
	if t == nil {
		return ""
	}
	info := t.OrderInfo

	var b strings.Builder
	b.WriteString(r.styles.Title.Render(info.GigTitle))
	b.WriteString("\n")
	fmt.Fprintf(&b, "With: %s · Price: %s · %s\n\n", r.styles.Seller.Render(info.OtherUser),
		Money(info.Price, vs.Currency), r.styles.StatusBadge(info.Status))

	msgs := t.Messages
	if len(msgs) == 0 {
		b.WriteString(r.styles.Dim.Render("No messages yet. Start the conversation!"))
		b.WriteString("\n")
	}
	// Newest messages at the bottom; older ones scroll off the top
	limit := max(vs.Height-16, 4)
	if len(msgs) > limit {
		b.WriteString(r.styles.Scroll.Render(fmt.Sprintf("↑ %d earlier messages (v to read all) ↑", len(msgs)-limit)))
		b.WriteString("\n")
		msgs = msgs[len(msgs)-limit:]
	}
	for _, m := range msgs {
		who, style := m.Sender, r.styles.OtherMessage
		if m.IsOwn {
			who, style = "You", r.styles.OwnMessage
		}
		fmt.Fprintf(&b, "%s %s\n", style.Bold(true).Render(who+":"), style.Render(m.Message))
		b.WriteString(r.styles.Dim.Render("  " + TimeAgoString(m.CreatedAt, vs.Now)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if vs.InputMode == types.ModeCompose {
		b.WriteString(r.styles.Highlight.Render(vs.InputPrompt) + vs.InputView)
	} else {
		b.WriteString(r.styles.Help.Render("M: reply · v: open in pager · esc: close"))
	}
	return b.String()
}
