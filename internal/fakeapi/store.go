package fakeapi

import (
	"sort"
	"strings"
	"sync"
	"time"

	"gigboard/internal/domain"
)

type user struct {
	ID       int
	Name     string
	Password string
	Balance  float64
}

type gigRecord struct {
	domain.GigDetail
	created time.Time
}

type order struct {
	ID           int
	Gig          *gigRecord
	BuyerID      int
	SellerID     int
	Price        float64
	Status       string
	Requirements string
	Created      time.Time
	Updated      time.Time
}

type message struct {
	ID       int
	OrderID  int
	SenderID int
	Text     string
	Created  time.Time
	Read     bool
}

type notification struct {
	ID      int
	UserID  int
	Type    string
	Title   string
	Message string
	Read    bool
	Created time.Time
	OrderID *int
}

type balanceRequest struct {
	domain.BalanceRequest
	UserID int
}

type cashoutRequest struct {
	domain.CashoutRequest
	UserID int
}

// store is the in-memory marketplace state. All access goes through mu.
type store struct {
	mu sync.Mutex

	now    func() time.Time
	nextID int

	users         []*user
	categories    []domain.Category
	gigs          []*gigRecord
	orders        []*order
	messages      []*message
	notifications []*notification
	balanceReqs   []*balanceRequest
	cashouts      []*cashoutRequest
}

func (s *store) id() int {
	s.nextID++
	return s.nextID
}

func (s *store) userByName(name string) *user {
	for _, u := range s.users {
		if u.Name == name {
			return u
		}
	}
	return nil
}

func (s *store) userByID(id int) *user {
	for _, u := range s.users {
		if u.ID == id {
			return u
		}
	}
	return nil
}

func (s *store) gig(id int) *gigRecord {
	for _, g := range s.gigs {
		if g.ID == id {
			return g
		}
	}
	return nil
}

func (s *store) order(id int) *order {
	for _, o := range s.orders {
		if o.ID == id {
			return o
		}
	}
	return nil
}

// listGigs applies the category and named filter the way the marketplace does:
// top-rated keeps gigs rated 4.5 or better, best first; new is newest first.
func (s *store) listGigs(category, filter string) []domain.Gig {
	var out []*gigRecord
	for _, g := range s.gigs {
		if category != "" && !strings.EqualFold(g.Category, category) {
			continue
		}
		if filter == domain.FilterTopRated && g.Rating < 4.5 {
			continue
		}
		out = append(out, g)
	}

	switch filter {
	case domain.FilterTopRated:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Rating > out[j].Rating })
	case domain.FilterNew:
		sort.SliceStable(out, func(i, j int) bool { return out[i].created.After(out[j].created) })
	}

	gigs := make([]domain.Gig, 0, len(out))
	for _, g := range out {
		gig := g.Gig
		gig.Description = truncate(gig.Description, 100)
		gigs = append(gigs, gig)
	}
	return gigs
}

func (s *store) notify(userID int, kind, title, text string, orderID int) {
	id := orderID
	s.notifications = append(s.notifications, &notification{
		ID:      s.id(),
		UserID:  userID,
		Type:    kind,
		Title:   title,
		Message: text,
		Created: s.now(),
		OrderID: &id,
	})
}

func (s *store) otherParty(o *order, userID int) *user {
	if o.BuyerID == userID {
		return s.userByID(o.SellerID)
	}
	return s.userByID(o.BuyerID)
}

func truncate(s string, n int) string {
	if len(s) > n {
		return s[:n] + "..."
	}
	return s
}

func stamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
