package views

import (
	"fmt"
	"math"
	"net/url"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"gigboard/internal/domain"
)

// Money formats an amount with two decimals and thousands separators
func Money(amount float64, currency string) string {
	s := humanize.FormatFloat("#,###.##", amount)
	if currency == "" {
		return s
	}
	return s + " " + currency
}

// relMagnitudes mirrors the dashboard: minutes, hours, days, then a date
var relMagnitudes = []humanize.RelTimeMagnitude{
	{D: time.Minute, Format: "Just now", DivBy: time.Second},
	{D: time.Hour, Format: "%dm %s", DivBy: time.Minute},
	{D: humanize.Day, Format: "%dh %s", DivBy: time.Hour},
	{D: humanize.Week, Format: "%dd %s", DivBy: humanize.Day},
}

// TimeAgo renders t relative to now. A week or older shows "Jan 2".
func TimeAgo(t, now time.Time) string {
	if t.After(now) {
		return "Just now"
	}
	if now.Sub(t) >= humanize.Week {
		return t.Local().Format("Jan 2")
	}
	return humanize.CustomRelTime(t, now, "ago", "from now", relMagnitudes)
}

// TimeAgoString parses an RFC 3339 timestamp and renders it with TimeAgo.
// Unparseable input is returned unchanged.
func TimeAgoString(ts string, now time.Time) string {
	t, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		return ts
	}
	return TimeAgo(t, now)
}

// ShortDate renders an RFC 3339 timestamp as "Jan 2, 2006"
func ShortDate(ts string) string {
	t, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		return ts
	}
	return t.Local().Format("Jan 2, 2006")
}

// Stars renders a 0-5 rating as filled and empty stars
func Stars(rating float64) string {
	if math.IsNaN(rating) || rating < 0 {
		rating = 0
	}
	full := int(math.Round(rating))
	if full > 5 {
		full = 5
	}
	return strings.Repeat("★", full) + strings.Repeat("☆", 5-full)
}

// Rating renders "★★★★☆ 4.2 (12)", or "New" for unrated gigs
func Rating(g domain.Gig) string {
	if g.TotalReviews == 0 {
		return "New"
	}
	return fmt.Sprintf("%s %.1f (%s)", Stars(g.Rating), g.Rating, humanize.Comma(int64(g.TotalReviews)))
}

// Delivery renders a delivery time in days
func Delivery(days int) string {
	if days == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", days)
}

// ImageHost returns the host of an image URL, the only part of the image a
// terminal can show
func ImageHost(raw string) string {
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return raw
	}
	return u.Host
}

// NotificationIcon returns the icon for a notification type
func NotificationIcon(kind string) string {
	switch kind {
	case domain.NotificationOrderPlaced:
		return "📦"
	case domain.NotificationOrderAccepted:
		return "✅"
	case domain.NotificationOrderDelivered:
		return "🚚"
	case domain.NotificationOrderCompleted:
		return "🎉"
	case domain.NotificationOrderCancelled:
		return "❌"
	case domain.NotificationMessageReceived:
		return "💬"
	case domain.NotificationReviewReceived:
		return "⭐"
	}
	return "📢"
}

// StatusLabel returns the display label of an order or request status
func StatusLabel(status string) string {
	switch status {
	case domain.OrderPending:
		return "Pending"
	case domain.OrderInProgress:
		return "In Progress"
	case domain.OrderDelivered:
		return "Delivered"
	case domain.OrderCompleted:
		return "Completed"
	case domain.OrderCancelled:
		return "Cancelled"
	case domain.RequestApproved:
		return "Approved"
	case domain.RequestRejected:
		return "Rejected"
	}
	return status
}

// StatusColor returns the lipgloss color for a status badge
func StatusColor(status string) string {
	switch status {
	case domain.OrderPending:
		return "214" // yellow
	case domain.OrderInProgress:
		return "33" // blue
	case domain.OrderDelivered:
		return "51" // cyan
	case domain.OrderCompleted, domain.RequestApproved:
		return "78" // green
	case domain.OrderCancelled, domain.RequestRejected:
		return "203" // red
	}
	return "241"
}

// Truncate shortens s to n runes, adding "..." when cut
func Truncate(s string, n int) string {
	r := []rune(s)
	if n <= 3 || len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
