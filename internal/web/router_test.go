package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erinpaul2002/careops-console/internal/api"
	"github.com/erinpaul2002/careops-console/internal/config"
	"github.com/erinpaul2002/careops-console/internal/domain"
	"github.com/erinpaul2002/careops-console/internal/session"
)

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Host:         "127.0.0.1",
			Port:         3000,
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
	}
}

// newTestRouter builds the route tree over a stub backend that answers
// every API call with an empty success payload.
func newTestRouter(t *testing.T, state session.State) (http.Handler, *session.Store) {
	t.Helper()
	return newTestRouterWithBackend(t, state, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{})
	}))
}

func newTestRouterWithBackend(t *testing.T, state session.State, backend http.Handler) (http.Handler, *session.Store) {
	t.Helper()
	server := httptest.NewServer(backend)
	t.Cleanup(server.Close)

	storage := session.NewMemoryStorage()
	sess := session.NewStore(storage)
	if state != (session.State{}) {
		sess.Set(state)
	}
	prefs := session.NewPrefs(storage)
	client := api.New(server.URL, sess)
	handlers := NewHandlers(client, sess, prefs, "UTC")
	return NewRouter(testConfig(), handlers), sess
}

func doRequest(t *testing.T, router http.Handler, method, target string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestUnauthenticatedConsoleRoutesRedirectToLogin(t *testing.T) {
	router, _ := newTestRouter(t, session.State{})

	for _, target := range []string{"/", "/owner/dashboard", "/staff/inbox", "/onboarding"} {
		rec := doRequest(t, router, http.MethodGet, target, nil)
		assert.Equal(t, http.StatusSeeOther, rec.Code, target)
		assert.Equal(t, "/login", rec.Header().Get("Location"), target)
	}
}

func TestLoginPageRenders(t *testing.T) {
	router, _ := newTestRouter(t, session.State{})

	rec := doRequest(t, router, http.MethodGet, "/login", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Sign in")
	assert.Contains(t, body, `action="/login"`)
	assert.Contains(t, body, "Create an owner account")
}

func TestLoginSubmitWithoutEmailRerenders(t *testing.T) {
	router, _ := newTestRouter(t, session.State{})

	rec := doRequest(t, router, http.MethodPost, "/login", url.Values{
		"mode":     {"owner"},
		"password": {"secret"},
	})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Email is required for owner login.")
}

func TestHomeRedirectsToRoleDashboard(t *testing.T) {
	router, _ := newTestRouter(t, session.State{Token: "tok", WorkspaceID: "ws-1", Role: domain.RoleStaff})

	rec := doRequest(t, router, http.MethodGet, "/", nil)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/staff/dashboard", rec.Header().Get("Location"))
}

func TestRoleMismatchRedirectsToOwnDashboard(t *testing.T) {
	router, _ := newTestRouter(t, session.State{Token: "tok", WorkspaceID: "ws-1", Role: domain.RoleStaff})

	rec := doRequest(t, router, http.MethodGet, "/owner/staff", nil)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/staff/dashboard", rec.Header().Get("Location"))
}

func TestSignOutClearsSession(t *testing.T) {
	router, sess := newTestRouter(t, session.State{Token: "tok", WorkspaceID: "ws-1", Role: domain.RoleOwner})

	rec := doRequest(t, router, http.MethodPost, "/signout", nil)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
	assert.False(t, sess.Snapshot().Authenticated())
}

func TestBackendRevokedSessionRedirectsToLogin(t *testing.T) {
	router, sess := newTestRouterWithBackend(t,
		session.State{Token: "tok", WorkspaceID: "ws-1", Role: domain.RoleStaff},
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"error": "token revoked"})
		}))

	rec := doRequest(t, router, http.MethodGet, "/staff/inbox", nil)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
	assert.False(t, sess.Snapshot().Authenticated())
}

func TestFormsPageLinksSubmittedFiles(t *testing.T) {
	router, _ := newTestRouterWithBackend(t,
		session.State{Token: "tok", WorkspaceID: "ws-1", Role: domain.RoleStaff},
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/api/v1/form-requests" {
				json.NewEncoder(w).Encode(map[string]any{"data": []map[string]any{{
					"id":     "fr-1",
					"status": "completed",
					"dueAt":  "2026-09-02T10:00:00Z",
					"submission": map[string]any{
						"consent": map[string]any{
							"key":         "uploads/ws-1/consent.pdf",
							"fileName":    "consent.pdf",
							"contentType": "application/pdf",
							"size":        2048,
						},
					},
				}}})
				return
			}
			json.NewEncoder(w).Encode(map[string]any{})
		}))

	rec := doRequest(t, router, http.MethodGet, "/staff/forms", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "/staff/forms/download?formRequestId=fr-1")
	assert.Contains(t, body, ">consent.pdf</a>")
}

func TestFormsDownloadRedirectsToSignedURL(t *testing.T) {
	var ticketPath string
	router, _ := newTestRouterWithBackend(t,
		session.State{Token: "tok", WorkspaceID: "ws-1", Role: domain.RoleStaff},
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ticketPath = r.URL.RequestURI()
			json.NewEncoder(w).Encode(domain.FileDownloadTicket{
				Key:         r.URL.Query().Get("key"),
				DownloadURL: "https://files.example.com/signed",
			})
		}))

	rec := doRequest(t, router, http.MethodGet,
		"/staff/forms/download?formRequestId=fr-1&fileKey=uploads%2Fws-1%2Fconsent.pdf", nil)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "https://files.example.com/signed", rec.Header().Get("Location"))
	assert.Equal(t,
		"/api/v1/form-requests/fr-1/files/download-url?key=uploads%2Fws-1%2Fconsent.pdf",
		ticketPath)
}

func TestPublicBookingPageRendersWithoutSession(t *testing.T) {
	router, _ := newTestRouter(t, session.State{})

	rec := doRequest(t, router, http.MethodGet, "/b/ws-1", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<form")
}

func TestPublicContactPageRendersWithoutSession(t *testing.T) {
	router, _ := newTestRouter(t, session.State{})

	rec := doRequest(t, router, http.MethodGet, "/f/ws-1/contact", nil)

	require.Equal(t, http.StatusOK, rec.Code)
}

func TestLegacySettingsRedirectsUnauthenticated(t *testing.T) {
	router, _ := newTestRouter(t, session.State{})

	rec := doRequest(t, router, http.MethodGet, "/settings?status=connected", nil)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login?status=connected", rec.Header().Get("Location"))
}
