package fakeapi

import (
	"time"

	"gigboard/internal/domain"
)

// Demo accounts. Every account uses DemoPassword.
const (
	DemoBuyer    = "rahim"
	DemoSeller   = "karim"
	DemoPassword = "password"
)

type gigSeed struct {
	title    string
	category string
	seller   string
	price    float64
	rating   float64
	reviews  int
	days     int
	desc     string
}

var gigSeeds = []gigSeed{
	{"Minimal logo for your startup", "Graphics & Design", "karim", 1500, 4.9, 128, 3, "A clean, memorable logo with three concepts, unlimited revisions and source files in every format you need for web and print."},
	{"Responsive landing page in React", "Programming & Tech", "nadia", 6000, 4.8, 64, 7, "Single page React site with a contact form, analytics and a lighthouse score above ninety."},
	{"SEO blog article, 1000 words", "Writing & Translation", "karim", 800, 4.2, 41, 2, "Researched long-form article with keyword placement, meta description and two rounds of edits."},
	{"Bangla to English translation", "Writing & Translation", "nadia", 500, 4.7, 88, 1, "Accurate human translation of documents up to two thousand words."},
	{"Facebook ad campaign setup", "Digital Marketing", "karim", 2500, 4.4, 19, 4, "Audience research, creative copy and a week of monitored ad spend."},
	{"Explainer video, 60 seconds", "Video & Animation", "nadia", 9000, 4.9, 23, 10, "2D animated explainer with voice over, music and subtitles."},
	{"Business card design", "Graphics & Design", "nadia", 600, 3.9, 12, 2, "Double sided print-ready business card."},
	{"Fix bugs in your Django app", "Programming & Tech", "karim", 3000, 4.6, 57, 3, "Debugging, tests and a short report of what was wrong."},
	{"Instagram content calendar", "Digital Marketing", "nadia", 1800, 4.1, 9, 5, "Thirty days of post ideas, captions and hashtags for your brand."},
	{"Product photo retouching", "Graphics & Design", "karim", 400, 4.5, 73, 1, "Background removal and colour correction for up to ten product photos."},
	{"REST API in Go", "Programming & Tech", "nadia", 7500, 5.0, 15, 8, "A documented JSON API with tests, Docker setup and CI."},
	{"YouTube intro animation", "Video & Animation", "karim", 1200, 4.3, 31, 2, "Short logo reveal intro for your channel."},
	{"Resume and cover letter", "Writing & Translation", "nadia", 700, 4.6, 102, 2, "ATS friendly resume rewrite with a tailored cover letter."},
	{"Email newsletter template", "Digital Marketing", "karim", 1100, 3.8, 6, 3, "Responsive newsletter template for Mailchimp."},
	{"WordPress site speed-up", "Programming & Tech", "karim", 2200, 4.0, 27, 2, "Caching, image compression and plugin cleanup."},
	{"Wedding video edit", "Video & Animation", "nadia", 5000, 4.8, 18, 7, "Cinematic highlight reel from your raw footage."},
	{"Illustrated book cover", "Graphics & Design", "nadia", 3500, 4.7, 22, 6, "Hand drawn cover illustration with typography."},
	{"Product description copy", "Writing & Translation", "karim", 300, 4.0, 14, 1, "Persuasive descriptions for five products."},
	{"Google Ads audit", "Digital Marketing", "nadia", 2000, 4.5, 11, 3, "Account audit with a prioritized list of fixes."},
	{"Python data cleaning script", "Programming & Tech", "rahim", 1000, 4.2, 5, 2, "Pandas script that cleans and merges your spreadsheets."},
}

// seed fills s with the demo marketplace
func seed(s *store) {
	s.users = []*user{
		{ID: s.id(), Name: DemoBuyer, Password: DemoPassword, Balance: 5000},
		{ID: s.id(), Name: DemoSeller, Password: DemoPassword, Balance: 1200},
		{ID: s.id(), Name: "nadia", Password: DemoPassword, Balance: 800},
	}

	s.categories = []domain.Category{
		{ID: s.id(), Name: "Graphics & Design", Icon: "🎨"},
		{ID: s.id(), Name: "Programming & Tech", Icon: "💻"},
		{ID: s.id(), Name: "Writing & Translation", Icon: "✍️"},
		{ID: s.id(), Name: "Digital Marketing", Icon: "📈"},
		{ID: s.id(), Name: "Video & Animation", Icon: "🎬"},
	}

	base := s.now().Add(-30 * 24 * time.Hour)
	for i, sd := range gigSeeds {
		seller := s.userByName(sd.seller)
		created := base.Add(time.Duration(i) * 36 * time.Hour)
		s.gigs = append(s.gigs, &gigRecord{
			GigDetail: domain.GigDetail{
				Gig: domain.Gig{
					ID:           s.id(),
					Title:        sd.title,
					Description:  sd.desc,
					Category:     sd.category,
					SellerName:   seller.Name,
					Price:        sd.price,
					ImageURL:     "/static/images/default-gig.jpg",
					Rating:       sd.rating,
					TotalReviews: sd.reviews,
					DeliveryTime: sd.days,
				},
				SellerID:  seller.ID,
				CreatedAt: stamp(created),
			},
			created: created,
		})
	}

	buyer := s.userByName(DemoBuyer)
	seller := s.userByName(DemoSeller)
	now := s.now()

	delivered := &order{
		ID: s.id(), Gig: s.gigs[0], BuyerID: buyer.ID, SellerID: seller.ID,
		Price: s.gigs[0].Price, Status: domain.OrderDelivered,
		Requirements: "Company name is Nodi Tech, blue and white please.",
		Created:      now.Add(-72 * time.Hour), Updated: now.Add(-2 * time.Hour),
	}
	completed := &order{
		ID: s.id(), Gig: s.gigs[2], BuyerID: buyer.ID, SellerID: seller.ID,
		Price: s.gigs[2].Price, Status: domain.OrderCompleted,
		Requirements: "Topic: remote work in Dhaka.",
		Created:      now.Add(-10 * 24 * time.Hour), Updated: now.Add(-8 * 24 * time.Hour),
	}
	pending := &order{
		ID: s.id(), Gig: s.gigs[7], BuyerID: buyer.ID, SellerID: seller.ID,
		Price: s.gigs[7].Price, Status: domain.OrderPending,
		Requirements: "Login page throws a 500 after upgrade.",
		Created:      now.Add(-30 * time.Minute), Updated: now.Add(-30 * time.Minute),
	}
	s.orders = append(s.orders, delivered, completed, pending)

	s.messages = append(s.messages,
		&message{ID: s.id(), OrderID: delivered.ID, SenderID: buyer.ID, Text: "Hi! Looking forward to the logo.", Created: now.Add(-70 * time.Hour), Read: true},
		&message{ID: s.id(), OrderID: delivered.ID, SenderID: seller.ID, Text: "Thanks, first concepts are attached to the delivery.", Created: now.Add(-2 * time.Hour)},
	)

	s.notify(seller.ID, domain.NotificationOrderPlaced, "New Order Received",
		buyer.Name+" placed an order for "+pending.Gig.Title, pending.ID)
	s.notify(buyer.ID, domain.NotificationOrderDelivered, "Order Delivered",
		"Your order for "+delivered.Gig.Title+" has been delivered. Please review and complete.", delivered.ID)
	s.notifications[0].Created = now.Add(-30 * time.Minute)
	s.notifications[1].Created = now.Add(-2 * time.Hour)

	s.balanceReqs = append(s.balanceReqs, &balanceRequest{
		UserID: buyer.ID,
		BalanceRequest: domain.BalanceRequest{
			ID: s.id(), Amount: 2000, Note: "bKash top-up", Status: domain.RequestApproved,
			AdminNote: "Received", CreatedAt: stamp(now.Add(-20 * 24 * time.Hour)),
		},
	})

	s.cashouts = append(s.cashouts, &cashoutRequest{
		UserID: seller.ID,
		CashoutRequest: domain.CashoutRequest{
			ID: s.id(), Amount: 500, PaymentMethod: "bkash", PaymentDetails: "01711000000",
			Status: domain.RequestApproved, AdminNote: "Paid",
			CreatedAt: stamp(now.Add(-7 * 24 * time.Hour)), UpdatedAt: stamp(now.Add(-6 * 24 * time.Hour)),
		},
	})
}
