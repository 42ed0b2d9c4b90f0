package fakeapi

import (
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/gin-gonic/gin"

	"gigboard/internal/domain"
)

func (s *Server) listGigs(c *gin.Context) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	c.JSON(http.StatusOK, gin.H{"gigs": s.store.listGigs(c.Query("category"), c.Query("filter"))})
}

func (s *Server) gigDetail(c *gin.Context) {
	id, err := paramID(c)
	if err != nil {
		fail(c, http.StatusNotFound, "Gig not found")
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	g := s.store.gig(id)
	if g == nil {
		fail(c, http.StatusNotFound, "Gig not found")
		return
	}
	c.JSON(http.StatusOK, g.GigDetail)
}

func (s *Server) listCategories(c *gin.Context) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	c.JSON(http.StatusOK, gin.H{"categories": s.store.categories})
}

func (s *Server) myGigs(c *gin.Context) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	uid := currentUser(c)
	gigs := []domain.MyGig{}
	for _, g := range s.store.gigs {
		if g.SellerID != uid {
			continue
		}
		gigs = append(gigs, domain.MyGig{
			ID:           g.ID,
			Title:        g.Title,
			Price:        g.Price,
			ImageURL:     g.ImageURL,
			Category:     g.Category,
			DeliveryTime: g.DeliveryTime,
			Status:       "active",
			CreatedAt:    g.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, gin.H{"gigs": gigs})
}

func (s *Server) createOrder(c *gin.Context) {
	var req struct {
		GigID        int    `json:"gig_id"`
		Requirements string `json:"requirements"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid JSON data")
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	g := s.store.gig(req.GigID)
	if g == nil {
		fail(c, http.StatusNotFound, "Gig not found")
		return
	}
	buyer := s.store.userByID(currentUser(c))
	if buyer.Balance < g.Price {
		fail(c, http.StatusBadRequest, "Insufficient Taka")
		return
	}
	if g.SellerID == buyer.ID {
		fail(c, http.StatusBadRequest, "You cannot order your own gig")
		return
	}

	seller := s.store.userByID(g.SellerID)
	buyer.Balance -= g.Price
	seller.Balance += g.Price

	now := s.store.now()
	o := &order{
		ID:           s.store.id(),
		Gig:          g,
		BuyerID:      buyer.ID,
		SellerID:     seller.ID,
		Price:        g.Price,
		Status:       domain.OrderPending,
		Requirements: req.Requirements,
		Created:      now,
		Updated:      now,
	}
	s.store.orders = append(s.store.orders, o)
	s.store.notify(seller.ID, domain.NotificationOrderPlaced, "New Order Received",
		buyer.Name+" placed an order for "+g.Title, o.ID)

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"order_id":    o.ID,
		"new_balance": buyer.Balance,
		"message":     "Order placed successfully!",
	})
}

func (s *Server) buyerOrders(c *gin.Context) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	uid := currentUser(c)
	orders := []domain.Order{}
	for _, o := range s.store.orders {
		if o.BuyerID != uid {
			continue
		}
		orders = append(orders, domain.Order{
			ID:           o.ID,
			GigTitle:     o.Gig.Title,
			SellerName:   s.store.userByID(o.SellerID).Name,
			Price:        o.Price,
			Status:       o.Status,
			CreatedAt:    stamp(o.Created),
			DeliveryTime: o.Gig.DeliveryTime,
		})
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

func (s *Server) sellerOrders(c *gin.Context) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	uid := currentUser(c)
	orders := []domain.Order{}
	for _, o := range s.store.orders {
		if o.SellerID != uid {
			continue
		}
		orders = append(orders, domain.Order{
			ID:           o.ID,
			GigTitle:     o.Gig.Title,
			BuyerName:    s.store.userByID(o.BuyerID).Name,
			Price:        o.Price,
			Status:       o.Status,
			CreatedAt:    stamp(o.Created),
			Requirements: o.Requirements,
		})
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

var statusNotifications = map[string]struct{ kind, text string }{
	domain.OrderInProgress: {domain.NotificationOrderAccepted, "Your order for %s has been accepted and is now in progress"},
	domain.OrderDelivered:  {domain.NotificationOrderDelivered, "Your order for %s has been delivered. Please review and complete."},
	domain.OrderCompleted:  {domain.NotificationOrderCompleted, "Your order for %s has been completed. Thank you!"},
	domain.OrderCancelled:  {domain.NotificationOrderCancelled, "Your order for %s has been cancelled"},
}

var statusLabels = map[string]string{
	domain.OrderPending:    "Pending",
	domain.OrderInProgress: "In Progress",
	domain.OrderDelivered:  "Delivered",
	domain.OrderCompleted:  "Completed",
	domain.OrderCancelled:  "Cancelled",
}

func (s *Server) updateOrderStatus(c *gin.Context) {
	id, err := paramID(c)
	if err != nil {
		fail(c, http.StatusNotFound, "Order not found")
		return
	}
	var req struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid JSON data")
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	o := s.store.order(id)
	if o == nil {
		fail(c, http.StatusNotFound, "Order not found")
		return
	}
	uid := currentUser(c)
	if uid != o.BuyerID && uid != o.SellerID {
		fail(c, http.StatusForbidden, "You do not have permission to update this order")
		return
	}

	switch req.Status {
	case domain.OrderCompleted:
		if uid != o.BuyerID {
			fail(c, http.StatusForbidden, "Only the buyer can mark the order as completed")
			return
		}
		if o.Status != domain.OrderDelivered {
			fail(c, http.StatusBadRequest, "Order must be delivered before completion")
			return
		}
	case domain.OrderInProgress, domain.OrderDelivered, domain.OrderCancelled:
		if uid != o.SellerID {
			fail(c, http.StatusForbidden, "Only the seller can update this status")
			return
		}
	default:
		fail(c, http.StatusBadRequest, "Invalid status")
		return
	}

	o.Status = req.Status
	o.Updated = s.store.now()

	n := statusNotifications[req.Status]
	recipient := o.BuyerID
	if req.Status == domain.OrderCompleted {
		recipient = o.SellerID
	}
	s.store.notify(recipient, n.kind, "Order "+statusLabels[req.Status],
		fmt.Sprintf(n.text, o.Gig.Title), o.ID)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"status":  o.Status,
		"message": "Order status updated to " + statusLabels[o.Status],
	})
}

func (s *Server) orderMessages(c *gin.Context) {
	id, err := paramID(c)
	if err != nil {
		fail(c, http.StatusNotFound, "Order not found")
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	o := s.store.order(id)
	if o == nil {
		fail(c, http.StatusNotFound, "Order not found")
		return
	}
	uid := currentUser(c)
	if uid != o.BuyerID && uid != o.SellerID {
		fail(c, http.StatusForbidden, "You do not have permission to view these messages")
		return
	}

	msgs := []domain.Message{}
	for _, m := range s.store.messages {
		if m.OrderID != o.ID {
			continue
		}
		if m.SenderID != uid {
			m.Read = true
		}
		msgs = append(msgs, domain.Message{
			ID:        m.ID,
			Sender:    s.store.userByID(m.SenderID).Name,
			Message:   m.Text,
			CreatedAt: stamp(m.Created),
			IsOwn:     m.SenderID == uid,
		})
	}

	c.JSON(http.StatusOK, domain.Thread{
		Messages: msgs,
		OrderInfo: domain.OrderInfo{
			ID:        o.ID,
			GigTitle:  o.Gig.Title,
			OtherUser: s.store.otherParty(o, uid).Name,
			Status:    o.Status,
			Price:     o.Price,
		},
	})
}

func (s *Server) sendMessage(c *gin.Context) {
	id, err := paramID(c)
	if err != nil {
		fail(c, http.StatusNotFound, "Order not found")
		return
	}
	var req struct {
		Message string `json:"message"`
	}
	_ = c.ShouldBindJSON(&req)
	text := strings.TrimSpace(req.Message)
	if text == "" {
		fail(c, http.StatusBadRequest, "Message cannot be empty")
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	o := s.store.order(id)
	if o == nil {
		fail(c, http.StatusNotFound, "Order not found")
		return
	}
	uid := currentUser(c)
	if uid != o.BuyerID && uid != o.SellerID {
		fail(c, http.StatusForbidden, "You do not have permission to message this order")
		return
	}

	m := &message{ID: s.store.id(), OrderID: o.ID, SenderID: uid, Text: text, Created: s.store.now()}
	s.store.messages = append(s.store.messages, m)
	sender := s.store.userByID(uid)
	s.store.notify(s.store.otherParty(o, uid).ID, domain.NotificationMessageReceived, "New Message",
		sender.Name+" sent you a message about "+o.Gig.Title, o.ID)

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"message_id": m.ID,
		"sender":     sender.Name,
		"message":    m.Text,
		"created_at": stamp(m.Created),
	})
}

func (s *Server) conversations(c *gin.Context) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	uid := currentUser(c)
	convs := []domain.Conversation{}
	total := 0
	last := map[int]*message{}
	for _, o := range s.store.orders {
		if o.BuyerID != uid && o.SellerID != uid {
			continue
		}
		var lastMsg *message
		unread := 0
		for _, m := range s.store.messages {
			if m.OrderID != o.ID {
				continue
			}
			lastMsg = m
			if !m.Read && m.SenderID != uid {
				unread++
			}
		}
		if lastMsg == nil {
			continue
		}
		last[o.ID] = lastMsg
		total += unread
		convs = append(convs, domain.Conversation{
			OrderID:         o.ID,
			GigTitle:        o.Gig.Title,
			OtherUser:       s.store.otherParty(o, uid).Name,
			LastMessage:     truncate(lastMsg.Text, 50),
			LastMessageTime: stamp(lastMsg.Created),
			UnreadCount:     unread,
			Status:          o.Status,
		})
	}
	sort.SliceStable(convs, func(i, j int) bool {
		return last[convs[i].OrderID].Created.After(last[convs[j].OrderID].Created)
	})

	c.JSON(http.StatusOK, gin.H{"conversations": convs, "total_unread": total})
}

func (s *Server) notifications(c *gin.Context) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	uid := currentUser(c)
	var mine []*notification
	unread := 0
	for _, n := range s.store.notifications {
		if n.UserID != uid {
			continue
		}
		mine = append(mine, n)
		if !n.Read {
			unread++
		}
	}
	sort.SliceStable(mine, func(i, j int) bool { return mine[i].Created.After(mine[j].Created) })
	if len(mine) > 20 {
		mine = mine[:20]
	}

	out := make([]domain.Notification, 0, len(mine))
	for _, n := range mine {
		out = append(out, domain.Notification{
			ID:        n.ID,
			Type:      n.Type,
			Title:     n.Title,
			Message:   n.Message,
			IsRead:    n.Read,
			CreatedAt: stamp(n.Created),
			OrderID:   n.OrderID,
		})
	}
	c.JSON(http.StatusOK, gin.H{"notifications": out, "unread_count": unread})
}

func (s *Server) markRead(c *gin.Context) {
	id, err := paramID(c)
	if err != nil {
		fail(c, http.StatusNotFound, "Notification not found")
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	uid := currentUser(c)
	for _, n := range s.store.notifications {
		if n.ID == id && n.UserID == uid {
			n.Read = true
			c.JSON(http.StatusOK, gin.H{"success": true})
			return
		}
	}
	fail(c, http.StatusNotFound, "Notification not found")
}

func (s *Server) markAllRead(c *gin.Context) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	uid := currentUser(c)
	for _, n := range s.store.notifications {
		if n.UserID == uid {
			n.Read = true
		}
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (s *Server) balance(c *gin.Context) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	u := s.store.userByID(currentUser(c))
	c.JSON(http.StatusOK, domain.Balance{Balance: u.Balance, Username: u.Name})
}

func (s *Server) completedSales(uid int) []*order {
	var out []*order
	for _, o := range s.store.orders {
		if o.SellerID == uid && o.Status == domain.OrderCompleted {
			out = append(out, o)
		}
	}
	return out
}

func (s *Server) sellerEarnings(c *gin.Context) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	sales := s.completedSales(currentUser(c))
	res := domain.Earnings{
		EarningsByGig:  []domain.GigEarnings{},
		RecentEarnings: []domain.RecentEarning{},
	}
	index := map[string]int{}
	for _, o := range sales {
		res.TotalEarnings += o.Price
		i, ok := index[o.Gig.Title]
		if !ok {
			i = len(res.EarningsByGig)
			index[o.Gig.Title] = i
			res.EarningsByGig = append(res.EarningsByGig, domain.GigEarnings{GigTitle: o.Gig.Title})
		}
		res.EarningsByGig[i].OrdersCount++
		res.EarningsByGig[i].TotalEarned += o.Price
		res.RecentEarnings = append(res.RecentEarnings, domain.RecentEarning{
			OrderID:     o.ID,
			GigTitle:    o.Gig.Title,
			Amount:      o.Price,
			Buyer:       s.store.userByID(o.BuyerID).Name,
			CompletedAt: o.Updated.Format("Jan 02, 2006"),
		})
	}
	res.TotalOrders = len(sales)
	sort.SliceStable(res.RecentEarnings, func(i, j int) bool {
		return res.RecentEarnings[i].OrderID > res.RecentEarnings[j].OrderID
	})
	if len(res.RecentEarnings) > 10 {
		res.RecentEarnings = res.RecentEarnings[:10]
	}
	c.JSON(http.StatusOK, res)
}

func (s *Server) createBalanceRequest(c *gin.Context) {
	var req struct {
		Amount float64 `json:"amount"`
		Note   string  `json:"note"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid JSON data")
		return
	}
	if req.Amount <= 0 {
		fail(c, http.StatusBadRequest, "Amount must be greater than 0")
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	s.store.balanceReqs = append(s.store.balanceReqs, &balanceRequest{
		UserID: currentUser(c),
		BalanceRequest: domain.BalanceRequest{
			ID:        s.store.id(),
			Amount:    req.Amount,
			Note:      req.Note,
			Status:    domain.RequestPending,
			CreatedAt: stamp(s.store.now()),
		},
	})
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Balance request submitted"})
}

func (s *Server) listBalanceRequests(c *gin.Context) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	uid := currentUser(c)
	out := []domain.BalanceRequest{}
	for i := len(s.store.balanceReqs) - 1; i >= 0; i-- {
		if r := s.store.balanceReqs[i]; r.UserID == uid {
			out = append(out, r.BalanceRequest)
		}
	}
	c.JSON(http.StatusOK, gin.H{"requests": out})
}

func (s *Server) available(uid int) domain.AvailableEarnings {
	var res domain.AvailableEarnings
	for _, o := range s.completedSales(uid) {
		res.TotalEarnings += o.Price
	}
	for _, r := range s.store.cashouts {
		if r.UserID == uid && r.Status != domain.RequestRejected {
			res.TotalCashedOut += r.Amount
		}
	}
	res.AvailableEarnings = res.TotalEarnings - res.TotalCashedOut
	return res
}

func (s *Server) availableEarnings(c *gin.Context) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	c.JSON(http.StatusOK, s.available(currentUser(c)))
}

func (s *Server) createCashout(c *gin.Context) {
	var req domain.CashoutInput
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid JSON data")
		return
	}
	if req.Amount <= 0 {
		fail(c, http.StatusBadRequest, "Amount must be greater than 0")
		return
	}
	if req.PaymentMethod == "" || req.PaymentDetails == "" {
		fail(c, http.StatusBadRequest, "Payment method and details are required")
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	uid := currentUser(c)
	if req.Amount > s.available(uid).AvailableEarnings {
		fail(c, http.StatusBadRequest, "Amount exceeds available earnings")
		return
	}

	now := stamp(s.store.now())
	s.store.cashouts = append(s.store.cashouts, &cashoutRequest{
		UserID: uid,
		CashoutRequest: domain.CashoutRequest{
			ID:             s.store.id(),
			Amount:         req.Amount,
			PaymentMethod:  req.PaymentMethod,
			PaymentDetails: req.PaymentDetails,
			Note:           req.Note,
			Status:         domain.RequestPending,
			CreatedAt:      now,
			UpdatedAt:      now,
		},
	})
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Cashout request submitted"})
}

func (s *Server) listCashouts(c *gin.Context) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	uid := currentUser(c)
	out := []domain.CashoutRequest{}
	for i := len(s.store.cashouts) - 1; i >= 0; i-- {
		if r := s.store.cashouts[i]; r.UserID == uid {
			out = append(out, r.CashoutRequest)
		}
	}
	c.JSON(http.StatusOK, gin.H{"requests": out})
}
