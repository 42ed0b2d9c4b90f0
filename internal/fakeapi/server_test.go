package fakeapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gigboard/internal/domain"
)

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestListGigsFilters(t *testing.T) {
	h := New().Handler()

	var all struct{ Gigs []domain.Gig }
	rec := get(t, h, "/api/gigs/")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &all))
	assert.Len(t, all.Gigs, len(gigSeeds))

	var top struct{ Gigs []domain.Gig }
	require.NoError(t, json.Unmarshal(get(t, h, "/api/gigs/?filter=top-rated").Body.Bytes(), &top))
	require.NotEmpty(t, top.Gigs)
	for i, g := range top.Gigs {
		assert.GreaterOrEqual(t, g.Rating, 4.5)
		if i > 0 {
			assert.LessOrEqual(t, g.Rating, top.Gigs[i-1].Rating)
		}
	}

	var cat struct{ Gigs []domain.Gig }
	require.NoError(t, json.Unmarshal(get(t, h, "/api/gigs/?category=Video+%26+Animation").Body.Bytes(), &cat))
	require.Len(t, cat.Gigs, 3)
	for _, g := range cat.Gigs {
		assert.Equal(t, "Video & Animation", g.Category)
	}
}

func TestListGigsTruncatesDescription(t *testing.T) {
	var out struct{ Gigs []domain.Gig }
	require.NoError(t, json.Unmarshal(get(t, New().Handler(), "/api/gigs/").Body.Bytes(), &out))
	assert.True(t, strings.HasSuffix(out.Gigs[0].Description, "..."))
	assert.Len(t, out.Gigs[0].Description, 103)
}

func TestProtectedEndpointRedirectsToLogin(t *testing.T) {
	rec := get(t, New().Handler(), "/api/user/balance/")
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Header().Get("Location"), "/login/"))
}

func TestLoginPageCarriesCSRFToken(t *testing.T) {
	rec := get(t, New().Handler(), "/login/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `name="csrfmiddlewaretoken"`)
	assert.Contains(t, rec.Header().Get("Set-Cookie"), csrfCookie+"=")
}

func TestLoginRejectsMissingToken(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/login/", strings.NewReader("username=rahim&password=password"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	New().Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
