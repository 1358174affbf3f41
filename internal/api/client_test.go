package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erinpaul2002/careops-console/internal/domain"
	"github.com/erinpaul2002/careops-console/internal/session"
)

func newTestClient(t *testing.T, handler http.Handler, opts ...Option) (*Client, *session.Store) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	sess := session.NewStore(session.NewMemoryStorage())
	return New(server.URL, sess, opts...), sess
}

func TestClientAppendsAPIPrefix(t *testing.T) {
	sess := session.NewStore(session.NewMemoryStorage())

	assert.Equal(t, "http://localhost:8000/api/v1", New("http://localhost:8000", sess).BaseURL())
	assert.Equal(t, "http://localhost:8000/api/v1", New("http://localhost:8000/", sess).BaseURL())
	assert.Equal(t, "http://localhost:8000/api/v1", New("http://localhost:8000/api/v1", sess).BaseURL())
}

func TestClientSendsAuthAndWorkspaceHeaders(t *testing.T) {
	var got http.Header
	client, sess := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		assert.Equal(t, "/api/v1/workspace-readiness", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{"readiness": map[string]any{"canActivate": true}})
	}))
	sess.Set(session.State{Token: "tok-123", WorkspaceID: "ws-1", Role: domain.RoleOwner})

	readiness, err := client.WorkspaceReadiness(context.Background())
	require.NoError(t, err)
	assert.True(t, readiness.CanActivate)
	assert.Equal(t, "Bearer tok-123", got.Get("Authorization"))
	assert.Equal(t, "ws-1", got.Get("x-workspace-id"))
	assert.Equal(t, "application/json", got.Get("Content-Type"))
}

func TestClientOmitsAuthHeadersOnPublicCalls(t *testing.T) {
	var got http.Header
	client, sess := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		json.NewEncoder(w).Encode(map[string]any{"data": []any{}})
	}))
	sess.Set(session.State{Token: "tok-123", WorkspaceID: "ws-1"})

	_, err := client.PublicServices(context.Background(), "ws-1")
	require.NoError(t, err)
	assert.Empty(t, got.Get("Authorization"))
	assert.Empty(t, got.Get("x-workspace-id"))
}

func TestClientSendsIdempotencyKeyOnPublicBooking(t *testing.T) {
	keys := map[string]int{}
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Header.Get("Idempotency-Key")
		require.NotEmpty(t, key)
		keys[key]++
		json.NewEncoder(w).Encode(domain.PublicBookingResult{Booking: domain.Booking{ID: "b-1"}})
	}))

	req := domain.PublicBookingRequest{ServiceID: "svc-1", StartsAt: "2026-09-01T10:00:00Z"}
	_, err := client.CreatePublicBooking(context.Background(), "ws-1", req)
	require.NoError(t, err)
	_, err = client.CreatePublicBooking(context.Background(), "ws-1", req)
	require.NoError(t, err)

	// Each submission carries its own fresh key.
	assert.Len(t, keys, 2)
	for _, count := range keys {
		assert.Equal(t, 1, count)
	}
}

func TestClientUnwrapsErrorEnvelope(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]string{"error": "slot already taken"})
	}))

	_, err := client.CreatePublicBooking(context.Background(), "ws-1", domain.PublicBookingRequest{})
	require.Error(t, err)
	assert.EqualError(t, err, "slot already taken")
	assert.True(t, IsStatus(err, http.StatusConflict))
}

func TestClientFallsBackToStatusMessage(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<html>bad gateway</html>"))
	}))

	_, err := client.Me(context.Background())
	require.Error(t, err)
	assert.EqualError(t, err, "request failed: 502")
}

func TestClientUnauthorizedClearsSessionAndFiresHook(t *testing.T) {
	hookFired := false
	client, sess := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"error": "token expired"})
	}), WithUnauthorizedHook(func() { hookFired = true }))
	sess.Set(session.State{Token: "stale", WorkspaceID: "ws-1", Role: domain.RoleStaff})

	_, err := client.Me(context.Background())
	require.Error(t, err)
	assert.True(t, IsStatus(err, http.StatusUnauthorized))
	assert.True(t, hookFired)
	assert.Equal(t, session.State{}, sess.Snapshot())
}

func TestClientUnauthorizedOnPublicCallKeepsSession(t *testing.T) {
	client, sess := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	sess.Set(session.State{Token: "tok", WorkspaceID: "ws-1"})

	_, err := client.PublicFlowConfig(context.Background(), "ws-1")
	require.Error(t, err)
	assert.Equal(t, "tok", sess.Snapshot().Token)
}

func TestClientDecodesWrappedPayloads(t *testing.T) {
	client, sess := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/auth/me", r.URL.Path)
		json.NewEncoder(w).Encode(domain.Me{
			User: domain.User{ID: "u-1", Name: "Dana"},
			Workspaces: []domain.Workspace{
				{ID: "ws-1", Name: "Clinic", OnboardingStatus: domain.OnboardingActive, Role: domain.RoleOwner},
			},
		})
	}))
	sess.Set(session.State{Token: "tok"})

	me, err := client.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Dana", me.User.Name)
	require.Len(t, me.Workspaces, 1)
	assert.Equal(t, domain.OnboardingActive, me.Workspaces[0].OnboardingStatus)
}

func TestPublicSlotsDefaultsTimezone(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "svc-1", r.URL.Query().Get("serviceId"))
		assert.Equal(t, "2026-09-01", r.URL.Query().Get("date"))
		json.NewEncoder(w).Encode(domain.PublicSlots{Slots: []domain.Slot{{StartsAt: "2026-09-01T10:00:00Z"}}})
	}))

	slots, err := client.PublicSlots(context.Background(), "ws-1", "svc-1", "2026-09-01")
	require.NoError(t, err)
	assert.Equal(t, "UTC", slots.Timezone)
	assert.Len(t, slots.Slots, 1)
}

func TestUploadToSignedURLRejectsFailureStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "text/plain", r.Header.Get("Content-Type"))
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()
	sess := session.NewStore(session.NewMemoryStorage())
	client := New(server.URL, sess)

	err := client.UploadToSignedURL(context.Background(), server.URL+"/bucket/key", "text/plain", nil)
	require.Error(t, err)
	assert.True(t, IsStatus(err, http.StatusForbidden))
}

func TestNewIdempotencyKeyIsUnique(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 32; i++ {
		key := NewIdempotencyKey()
		require.NotEmpty(t, key)
		require.False(t, seen[key])
		seen[key] = true
	}
}
