package views

import (
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"gigboard/internal/domain"
	"gigboard/internal/ui/state"
)

// Long-form documents opened in the pager. They are plain text so the pager
// can search them.

// DetailReport renders the full gig detail
func DetailReport(d *domain.GigDetail, currency string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n%s\n\n", d.Title, strings.Repeat("=", len([]rune(d.Title))))
	w := tabwriter.NewWriter(&b, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "Price\t%s\n", Money(d.Price, currency))
	fmt.Fprintf(w, "Category\t%s\n", d.Category)
	fmt.Fprintf(w, "Seller\t%s\n", d.SellerName)
	fmt.Fprintf(w, "Rating\t%s\n", Rating(d.Gig))
	fmt.Fprintf(w, "Delivery\t%s\n", Delivery(d.DeliveryTime))
	if d.ImageURL != "" {
		fmt.Fprintf(w, "Image\t%s\n", d.ImageURL)
	}
	if d.CreatedAt != "" {
		fmt.Fprintf(w, "Listed\t%s\n", ShortDate(d.CreatedAt))
	}
	w.Flush()
	fmt.Fprintf(&b, "\n%s\n", d.Description)
	return b.String()
}

// ThreadReport renders every message of an order thread
func ThreadReport(t *domain.Thread, currency string, now time.Time) string {
	info := t.OrderInfo
	var b strings.Builder
	fmt.Fprintf(&b, "Order #%d: %s\n", info.ID, info.GigTitle)
	fmt.Fprintf(&b, "With %s · %s · %s\n\n", info.OtherUser, Money(info.Price, currency), StatusLabel(info.Status))
	if len(t.Messages) == 0 {
		b.WriteString("No messages yet. Start the conversation!\n")
	}
	for _, m := range t.Messages {
		who := m.Sender
		if m.IsOwn {
			who = "You"
		}
		fmt.Fprintf(&b, "[%s] %s:\n  %s\n\n", TimeAgoString(m.CreatedAt, now), who,
			strings.ReplaceAll(m.Message, "\n", "\n  "))
	}
	return b.String()
}

// EarningsReport renders the seller earnings breakdown and the request history
func EarningsReport(w state.Wallet, currency string) string {
	var b strings.Builder
	b.WriteString("Earnings\n========\n\n")
	if w.Earnings == nil {
		b.WriteString("No earnings yet\n")
	} else {
		fmt.Fprintf(&b, "Total: %s from %d completed orders\n", Money(w.Earnings.TotalEarnings, currency), w.Earnings.TotalOrders)
		if w.Available != nil {
			fmt.Fprintf(&b, "Available: %s (cashed out %s)\n", Money(w.Available.AvailableEarnings, currency), Money(w.Available.TotalCashedOut, currency))
		}

		b.WriteString("\nBy gig\n------\n")
		if len(w.Earnings.EarningsByGig) == 0 {
			b.WriteString("No earnings yet\n")
		}
		tw := tabwriter.NewWriter(&b, 0, 4, 2, ' ', 0)
		for _, g := range w.Earnings.EarningsByGig {
			fmt.Fprintf(tw, "%s\t%d orders\t%s\n", g.GigTitle, g.OrdersCount, Money(g.TotalEarned, currency))
		}
		tw.Flush()

		b.WriteString("\nRecent\n------\n")
		tw = tabwriter.NewWriter(&b, 0, 4, 2, ' ', 0)
		for _, e := range w.Earnings.RecentEarnings {
			fmt.Fprintf(tw, "#%d\t%s\t%s\t%s\t%s\n", e.OrderID, e.GigTitle, e.Buyer, Money(e.Amount, currency), e.CompletedAt)
		}
		tw.Flush()
	}

	b.WriteString("\nBalance requests\n----------------\n")
	tw := tabwriter.NewWriter(&b, 0, 4, 2, ' ', 0)
	for _, r := range w.BalanceRequests {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", ShortDate(r.CreatedAt), Money(r.Amount, currency), StatusLabel(r.Status), r.Note)
	}
	tw.Flush()

	b.WriteString("\nCashout requests\n----------------\n")
	tw = tabwriter.NewWriter(&b, 0, 4, 2, ' ', 0)
	for _, r := range w.Cashouts {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", ShortDate(r.CreatedAt), Money(r.Amount, currency), r.PaymentMethod, r.PaymentDetails, StatusLabel(r.Status))
	}
	tw.Flush()
	return b.String()
}
