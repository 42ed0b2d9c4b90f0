// Package fakeapi is an in-memory marketplace that speaks the same JSON
// contract as the real server. It backs the -demo mode and the client tests.
package fakeapi

import (
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	csrfCookie    = "csrftoken"
	sessionCookie = "sessionid"
	userKey       = "user"
)

// Server is the fake marketplace
type Server struct {
	store    *store
	sessions map[string]int
	engine   *gin.Engine
}

// Option configures a Server
type Option func(*Server)

// WithClock replaces time.Now for deterministic timestamps
func WithClock(now func() time.Time) Option {
	return func(s *Server) {
		s.store.now = now
	}
}

// New creates a fake marketplace seeded with demo data
func New(opts ...Option) *Server {
	gin.SetMode(gin.ReleaseMode)

	s := &Server{
		store:    &store{now: time.Now},
		sessions: make(map[string]int),
	}
	for _, opt := range opts {
		opt(s)
	}
	seed(s.store)

	s.engine = gin.New()
	s.engine.Use(gin.Recovery())
	s.routes()
	return s
}

// Handler returns the http.Handler serving the marketplace
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) routes() {
	r := s.engine

	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "gigboard demo marketplace")
	})
	r.GET("/login/", s.loginPage)
	r.POST("/login/", s.login)

	pub := r.Group("/api")
	pub.GET("/gigs/", s.listGigs)
	pub.GET("/gigs/:id/", s.gigDetail)
	pub.GET("/categories/", s.listCategories)

	api := r.Group("/api", s.requireLogin(), s.requireCSRF())
	api.GET("/my-gigs/", s.myGigs)
	api.POST("/orders/create/", s.createOrder)
	api.GET("/orders/buyer/", s.buyerOrders)
	api.GET("/orders/seller/", s.sellerOrders)
	api.POST("/orders/:id/status/", s.updateOrderStatus)
	api.GET("/orders/:id/messages/", s.orderMessages)
	api.POST("/orders/:id/send-message/", s.sendMessage)
	api.GET("/conversations/", s.conversations)
	api.GET("/notifications/", s.notifications)
	api.POST("/notifications/:id/read/", s.markRead)
	api.POST("/notifications/mark-all-read/", s.markAllRead)
	api.GET("/user/balance/", s.balance)
	api.GET("/seller/earnings/", s.sellerEarnings)
	api.POST("/balance-request/", s.createBalanceRequest)
	api.GET("/balance-requests/", s.listBalanceRequests)
	api.GET("/available-earnings/", s.availableEarnings)
	api.POST("/cashout-request/", s.createCashout)
	api.GET("/cashout-requests/", s.listCashouts)
}

var loginTemplate = template.Must(template.New("login").Parse(`<!doctype html>
<html><body>
{{if .Error}}<p class="error">{{.Error}}</p>{{end}}
<form method="post" action="/login/">
<input type="hidden" name="csrfmiddlewaretoken" value="{{.Token}}">
<input type="text" name="username">
<input type="password" name="password">
<button type="submit">Log in</button>
</form>
</body></html>`))

func (s *Server) csrfToken(c *gin.Context) string {
	if token, err := c.Cookie(csrfCookie); err == nil && token != "" {
		return token
	}
	token := strings.ReplaceAll(uuid.NewString(), "-", "")
	c.SetCookie(csrfCookie, token, 0, "/", "", false, false)
	return token
}

func (s *Server) renderLogin(c *gin.Context, status int, msg string) {
	c.Status(status)
	c.Header("Content-Type", "text/html; charset=utf-8")
	_ = loginTemplate.Execute(c.Writer, struct{ Token, Error string }{s.csrfToken(c), msg})
}

func (s *Server) loginPage(c *gin.Context) {
	s.renderLogin(c, http.StatusOK, "")
}

func (s *Server) login(c *gin.Context) {
	cookie, _ := c.Cookie(csrfCookie)
	if cookie == "" || c.PostForm("csrfmiddlewaretoken") != cookie {
		c.String(http.StatusForbidden, "CSRF verification failed")
		return
	}

	s.store.mu.Lock()
	u := s.store.userByName(c.PostForm("username"))
	ok := u != nil && u.Password == c.PostForm("password")
	if ok {
		sid := uuid.NewString()
		s.sessions[sid] = u.ID
		c.SetCookie(sessionCookie, sid, 0, "/", "", false, true)
	}
	s.store.mu.Unlock()

	if !ok {
		s.renderLogin(c, http.StatusOK, "Invalid username or password")
		return
	}
	c.Redirect(http.StatusFound, "/")
}

// requireLogin redirects anonymous requests to the login page
func (s *Server) requireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		sid, _ := c.Cookie(sessionCookie)

		s.store.mu.Lock()
		uid, ok := s.sessions[sid]
		s.store.mu.Unlock()

		if !ok {
			c.Redirect(http.StatusFound, "/login/?next="+url.QueryEscape(c.Request.URL.Path))
			c.Abort()
			return
		}
		c.Set(userKey, uid)
		c.Next()
	}
}

// requireCSRF rejects unsafe requests whose X-CSRFToken does not match the cookie
func (s *Server) requireCSRF() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodGet {
			c.Next()
			return
		}
		cookie, _ := c.Cookie(csrfCookie)
		if cookie == "" || c.GetHeader("X-CSRFToken") != cookie {
			fail(c, http.StatusForbidden, "CSRF verification failed")
			c.Abort()
			return
		}
		c.Next()
	}
}

func fail(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"success": false, "error": msg})
}

func currentUser(c *gin.Context) int {
	return c.GetInt(userKey)
}

func paramID(c *gin.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", c.Param("id"))
	}
	return id, nil
}
