package console

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erinpaul2002/careops-console/internal/api"
	"github.com/erinpaul2002/careops-console/internal/domain"
	"github.com/erinpaul2002/careops-console/internal/session"
)

// bookingBackend serves the unauthenticated booking endpoints for one
// workspace and records submissions.
type bookingBackend struct {
	mu sync.Mutex

	services    []domain.Service
	config      domain.PublicFlowConfig
	slots       []domain.Slot
	timezone    string
	submissions []domain.PublicBookingRequest
	formToken   string
	rejectWith  string
}

func (b *bookingBackend) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/public/ws-1/services", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		json.NewEncoder(w).Encode(map[string]any{"data": b.services})
	})
	mux.HandleFunc("/api/v1/public/ws-1/public-flow-config", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		json.NewEncoder(w).Encode(map[string]any{"publicFlowConfig": b.config})
	})
	mux.HandleFunc("/api/v1/public/ws-1/slots", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		json.NewEncoder(w).Encode(domain.PublicSlots{Slots: b.slots, Timezone: b.timezone})
	})
	mux.HandleFunc("/api/v1/public/ws-1/bookings", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		if b.rejectWith != "" {
			w.WriteHeader(http.StatusConflict)
			json.NewEncoder(w).Encode(map[string]string{"error": b.rejectWith})
			return
		}
		var req domain.PublicBookingRequest
		json.NewDecoder(r.Body).Decode(&req)
		b.submissions = append(b.submissions, req)
		result := domain.PublicBookingResult{Booking: domain.Booking{ID: "b-1", StartsAt: req.StartsAt}}
		if b.formToken != "" {
			result.FormRequest = &domain.FormRequestRef{ID: "fr-1", PublicToken: b.formToken, Status: "pending"}
		}
		json.NewEncoder(w).Encode(result)
	})
	return mux
}

func bookingFieldConfig() domain.PublicFlowConfig {
	return domain.PublicFlowConfig{
		Booking: domain.PublicFieldList{Fields: []domain.PublicFieldConfig{
			{Key: "name", Label: "Name", Type: "text", Required: true},
			{Key: "email", Label: "Email", Type: "email", Required: true},
			{Key: "notes", Label: "Notes", Type: "textarea"},
		}},
	}
}

func newTestPublicBooking(t *testing.T, backend *bookingBackend) *PublicBooking {
	t.Helper()
	server := httptest.NewServer(backend.handler())
	t.Cleanup(server.Close)
	client := api.New(server.URL, session.NewStore(session.NewMemoryStorage()))
	return NewPublicBooking(client, "ws-1")
}

func TestPublicBookingLoadSelectsFirstServiceAndSlot(t *testing.T) {
	backend := &bookingBackend{
		services: []domain.Service{
			{ID: "svc-1", Name: "Checkup", DurationMin: 30, IsActive: true},
			{ID: "svc-2", Name: "Cleaning", DurationMin: 45, IsActive: true},
		},
		config: bookingFieldConfig(),
		slots: []domain.Slot{
			{StartsAt: "2026-09-01T10:00:00Z", EndsAt: "2026-09-01T10:30:00Z"},
			{StartsAt: "2026-09-01T11:00:00Z", EndsAt: "2026-09-01T11:30:00Z"},
		},
		timezone: "America/New_York",
	}
	page := newTestPublicBooking(t, backend)

	page.Load(context.Background())

	state := page.State()
	assert.Empty(t, state.ErrorMessage)
	assert.Equal(t, "svc-1", state.SelectedService)
	assert.Equal(t, "2026-09-01T10:00:00Z", state.SelectedStartsAt)
	assert.Equal(t, "America/New_York", state.SlotTimezone)
	assert.Len(t, state.Slots, 2)
	assert.Len(t, state.FlowConfig.Booking.Fields, 3)
}

func TestPublicBookingLoadFailureShowsBanner(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(server.Close)
	client := api.New(server.URL, session.NewStore(session.NewMemoryStorage()))
	page := NewPublicBooking(client, "ws-1")

	page.Load(context.Background())

	state := page.State()
	assert.Equal(t, msgBookingOptionsFailed, state.ErrorMessage)
	assert.Empty(t, state.Services)
	assert.Empty(t, state.SelectedService)
}

func TestPublicBookingSubmitRequiresSelection(t *testing.T) {
	backend := &bookingBackend{config: bookingFieldConfig()}
	page := newTestPublicBooking(t, backend)

	page.Submit(context.Background())

	assert.Equal(t, msgSlotSelectionMissing, page.State().ErrorMessage)
	backend.mu.Lock()
	defer backend.mu.Unlock()
	assert.Empty(t, backend.submissions)
}

func TestPublicBookingSubmitBlocksOnMissingRequiredField(t *testing.T) {
	backend := &bookingBackend{
		services: []domain.Service{{ID: "svc-1", Name: "Checkup", DurationMin: 30, IsActive: true}},
		config:   bookingFieldConfig(),
		slots:    []domain.Slot{{StartsAt: "2026-09-01T10:00:00Z"}},
	}
	page := newTestPublicBooking(t, backend)
	page.Load(context.Background())
	page.SetFieldValue("name", "Dana Reyes")
	page.SetFieldValue("email", "   ")

	page.Submit(context.Background())

	assert.Equal(t, "Email is required.", page.State().ErrorMessage)
	backend.mu.Lock()
	defer backend.mu.Unlock()
	assert.Empty(t, backend.submissions)
}

func TestPublicBookingSubmitHappyPathWithFormToken(t *testing.T) {
	backend := &bookingBackend{
		services:  []domain.Service{{ID: "svc-1", Name: "Checkup", DurationMin: 30, IsActive: true}},
		config:    bookingFieldConfig(),
		slots:     []domain.Slot{{StartsAt: "2026-09-01T10:00:00Z"}},
		formToken: "tok-abc",
	}
	page := newTestPublicBooking(t, backend)
	page.Load(context.Background())
	page.SetFieldValue("name", "Dana Reyes")
	page.SetFieldValue("email", "dana@example.com")
	page.SetFieldValue("notes", "first visit")
	page.SetFieldValue("unconfigured", "dropped")

	page.Submit(context.Background())

	state := page.State()
	assert.Equal(t, "Booking submitted successfully. Form token: tok-abc", state.SuccessMessage)
	assert.Empty(t, state.ErrorMessage)
	assert.Empty(t, state.FieldValues)

	backend.mu.Lock()
	defer backend.mu.Unlock()
	require.Len(t, backend.submissions, 1)
	sent := backend.submissions[0]
	assert.Equal(t, "svc-1", sent.ServiceID)
	assert.Equal(t, "2026-09-01T10:00:00Z", sent.StartsAt)
	assert.Equal(t, "Dana Reyes", sent.Fields["name"])
	assert.NotContains(t, sent.Fields, "unconfigured")
}

func TestPublicBookingSubmitFailureKeepsAnswers(t *testing.T) {
	backend := &bookingBackend{
		services:   []domain.Service{{ID: "svc-1", Name: "Checkup", DurationMin: 30, IsActive: true}},
		config:     bookingFieldConfig(),
		slots:      []domain.Slot{{StartsAt: "2026-09-01T10:00:00Z"}},
		rejectWith: "slot already taken",
	}
	page := newTestPublicBooking(t, backend)
	page.Load(context.Background())
	page.SetFieldValue("name", "Dana Reyes")
	page.SetFieldValue("email", "dana@example.com")

	page.Submit(context.Background())

	state := page.State()
	assert.Equal(t, msgBookingSubmitFailed, state.ErrorMessage)
	assert.Equal(t, "Dana Reyes", state.FieldValues["name"])
}

func TestMissingRequiredFieldChecks(t *testing.T) {
	fields := []domain.PublicFieldConfig{
		{Key: "name", Label: "Name", Required: true},
		{Key: "consent", Label: "Consent", Type: "checkbox", Required: true},
	}

	missing := missingRequiredField(fields, map[string]any{})
	require.NotNil(t, missing)
	assert.Equal(t, "name", missing.Key)

	missing = missingRequiredField(fields, map[string]any{"name": "Dana", "consent": false})
	require.NotNil(t, missing)
	assert.Equal(t, "consent", missing.Key)

	assert.Nil(t, missingRequiredField(fields, map[string]any{"name": "Dana", "consent": true}))
}
