package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

var (
	// ErrUnauthorized is returned when the session is missing or was rejected
	ErrUnauthorized = errors.New("not logged in")
	// ErrNotFound is returned for 404 responses
	ErrNotFound = errors.New("not found")
)

// APIError carries the server's error message for a failed request
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server returned %d", e.Status)
	}
	return fmt.Sprintf("server returned %d: %s", e.Status, e.Message)
}

// Is lets errors.Is match the sentinel errors by status code
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden
	case ErrNotFound:
		return e.Status == http.StatusNotFound
	}
	return false
}

const (
	loginPath      = "/login/"
	csrfCookieName = "csrftoken"
	sessionCookie  = "sessionid"
)

// Client talks to the marketplace JSON API with a cookie session
type Client struct {
	baseURL *url.URL
	http    *http.Client
}

// New creates a client for baseURL. timeout <= 0 means 30s.
func New(baseURL string, timeout time.Duration) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("failed to parse base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("base url must be absolute: %q", baseURL)
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		baseURL: u,
		http: &http.Client{
			Jar:     jar,
			Timeout: timeout,
		},
	}, nil
}

// BaseURL returns the marketplace root
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

func (c *Client) endpoint(path string, query url.Values) string {
	u := *c.baseURL
	u.Path = strings.TrimRight(u.Path, "/") + path
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

// cookie returns the named cookie value for the base url
func (c *Client) cookie(name string) string {
	for _, ck := range c.http.Jar.Cookies(c.baseURL) {
		if ck.Name == name {
			return ck.Value
		}
	}
	return ""
}

// Login fetches the login form, scrapes its CSRF token and posts the
// credentials. The session cookie is kept in the client's jar.
func (c *Client) Login(ctx context.Context, username, password string) error {
	loginURL := c.endpoint(loginPath, nil)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, loginURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to load login page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &APIError{Status: resp.StatusCode, Message: "login page unavailable"}
	}

	token, err := csrfFromForm(resp.Body)
	if err != nil {
		return err
	}

	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)
	form.Set("csrfmiddlewaretoken", token)

	post, err := http.NewRequestWithContext(ctx, http.MethodPost, loginURL, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	post.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	post.Header.Set("Referer", loginURL)

	presp, err := c.http.Do(post)
	if err != nil {
		return fmt.Errorf("failed to submit login form: %w", err)
	}
	defer presp.Body.Close()
	io.Copy(io.Discard, presp.Body)

	if presp.StatusCode >= 400 {
		return &APIError{Status: presp.StatusCode, Message: "login rejected"}
	}
	if c.cookie(sessionCookie) == "" {
		return fmt.Errorf("invalid username or password: %w", ErrUnauthorized)
	}
	return nil
}

// csrfFromForm extracts the csrfmiddlewaretoken hidden input from an HTML page
func csrfFromForm(r io.Reader) (string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return "", fmt.Errorf("failed to parse login page: %w", err)
	}
	token, ok := doc.Find(`input[name="csrfmiddlewaretoken"]`).First().Attr("value")
	if !ok || token == "" {
		return "", errors.New("login page has no csrf token")
	}
	return token, nil
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint(path, query), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	return c.do(req, out)
}

func (c *Client) postJSON(ctx context.Context, path string, body any, out any) error {
	var payload io.Reader = http.NoBody
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		payload = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(path, nil), payload)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token := c.cookie(csrfCookieName); token != "" {
		req.Header.Set("X-CSRFToken", token)
	}
	return c.do(req, out)
}

// errorBody is the {success:false, error:"..."} envelope
type errorBody struct {
	Success *bool  `json:"success"`
	Error   string `json:"error"`
}

func (c *Client) do(req *http.Request, out any) error {
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call %s: %w", req.URL.Path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	// Unauthenticated API calls are redirected to the login page
	if resp.Request != nil && strings.HasPrefix(resp.Request.URL.Path, loginPath) && req.URL.Path != loginPath {
		return ErrUnauthorized
	}

	if resp.StatusCode >= 400 {
		var eb errorBody
		_ = json.Unmarshal(data, &eb)
		return &APIError{Status: resp.StatusCode, Message: eb.Error}
	}

	var eb errorBody
	if err := json.Unmarshal(data, &eb); err == nil && eb.Success != nil && !*eb.Success {
		return &APIError{Status: resp.StatusCode, Message: eb.Error}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode %s: %w", req.URL.Path, err)
	}
	return nil
}
