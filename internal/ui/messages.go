package ui

import (
	"time"

	"gigboard/internal/domain"
	"gigboard/internal/eventbus"
	"gigboard/internal/ui/state"
)

// EventMsg wraps a domain event for the UI
type EventMsg struct {
	Event eventbus.DomainEvent
}

// tickMsg is sent on a timer to refresh relative times
type tickMsg time.Time

// gigsLoadedMsg contains the result of a gig list fetch
type gigsLoadedMsg struct {
	query domain.GigQuery
	gigs  []domain.Gig
	err   error
}

type categoriesLoadedMsg struct {
	categories []domain.Category
	err        error
}

type detailLoadedMsg struct {
	detail *domain.GigDetail
	err    error
}

// ordersLoadedMsg carries buyer orders, or seller orders when selling is set
type ordersLoadedMsg struct {
	selling bool
	orders  []domain.Order
	err     error
}

type myGigsLoadedMsg struct {
	gigs []domain.MyGig
	err  error
}

type threadLoadedMsg struct {
	orderID int
	thread  *domain.Thread
	err     error
}

type walletLoadedMsg struct {
	wallet state.Wallet
	err    error
}

// pagerMsg contains the result of a pager session
type pagerMsg struct {
	err error
}

// clearStatusMsg clears the status line
type clearStatusMsg struct {
	seq int
}

// pauseRenderingMsg signals to pause Bubble Tea rendering
type pauseRenderingMsg struct{}

// resumeRenderingMsg signals to resume Bubble Tea rendering
type resumeRenderingMsg struct{}
