package onboarding

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

// fakeBackend serves the identity, readiness, checklist-sync, and
// activation endpoints the engine touches.
type fakeBackend struct {
	mu sync.Mutex

	workspace  domain.Workspace
	readiness  domain.WorkspaceReadiness
	syncCalls  int
	lastSynced map[string]bool
	activated  bool
	failSync   bool
	failAll    bool
}

func (b *fakeBackend) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/auth/me", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		if b.failAll {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode(domain.Me{
			User:       domain.User{ID: "u-1", Name: "Dana"},
			Workspaces: []domain.Workspace{b.workspace},
		})
	})
	mux.HandleFunc("/api/v1/workspace-readiness", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		if b.failAll {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{"readiness": b.readiness})
	})
	mux.HandleFunc("/api/v1/workspaces/ws-1/onboarding", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		b.syncCalls++
		if b.failSync {
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(map[string]string{"error": "sync unavailable"})
			return
		}
		var payload struct {
			OnboardingSteps map[string]bool `json:"onboardingSteps"`
		}
		json.NewDecoder(r.Body).Decode(&payload)
		b.lastSynced = payload.OnboardingSteps
		b.workspace.OnboardingSteps = payload.OnboardingSteps
		json.NewEncoder(w).Encode(map[string]any{"workspace": b.workspace})
	})
	mux.HandleFunc("/api/v1/workspaces/ws-1/activate", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		b.activated = true
		b.workspace.OnboardingStatus = domain.OnboardingActive
		json.NewEncoder(w).Encode(map[string]any{"workspace": b.workspace})
	})
	return mux
}

func allStepsComplete() map[string]bool {
	completion := map[string]bool{}
	for _, step := range stepDefinitions() {
		completion[string(step.Key)] = true
	}
	return completion
}

func newTestEngine(t *testing.T, backend *fakeBackend) (*Engine, *session.Prefs) {
	t.Helper()
	server := httptest.NewServer(backend.handler())
	t.Cleanup(server.Close)

	storage := session.NewMemoryStorage()
	sess := session.NewStore(storage)
	sess.Set(session.State{Token: "tok", WorkspaceID: "ws-1", Role: domain.RoleOwner})
	prefs := session.NewPrefs(storage)
	client := api.New(server.URL, sess)
	return NewEngine(client, sess, prefs), prefs
}

func TestRefreshMapsReadinessOntoSteps(t *testing.T) {
	backend := &fakeBackend{
		workspace: domain.Workspace{
			ID:               "ws-1",
			OnboardingStatus: domain.OnboardingDraft,
			OnboardingSteps:  map[string]bool{"workspace": true, "channels": true},
		},
		readiness: domain.WorkspaceReadiness{
			OnboardingStatus: domain.OnboardingDraft,
			Completion:       map[string]bool{"workspace": true, "channels": true},
			Warnings:         []string{"No staff invited yet"},
		},
	}
	engine, _ := newTestEngine(t, backend)

	engine.Refresh(context.Background())

	state := engine.Snapshot()
	assert.False(t, state.Loading)
	assert.Empty(t, state.ErrorMessage)
	require.Len(t, state.Steps, 8)
	assert.True(t, state.Steps[0].Completed)
	assert.True(t, state.Steps[1].Completed)
	assert.False(t, state.Steps[2].Completed)
	assert.Equal(t, 2, state.ActiveStepIndex)
	assert.Equal(t, []string{"No staff invited yet"}, state.Warnings)
	assert.Equal(t, 25, state.CompletionPercent())
}

func TestRefreshSyncsDriftedChecklist(t *testing.T) {
	backend := &fakeBackend{
		workspace: domain.Workspace{
			ID:              "ws-1",
			OnboardingSteps: map[string]bool{"workspace": true},
		},
		readiness: domain.WorkspaceReadiness{
			Completion: map[string]bool{"workspace": true, "bookings": true},
		},
	}
	engine, _ := newTestEngine(t, backend)

	engine.Refresh(context.Background())

	backend.mu.Lock()
	defer backend.mu.Unlock()
	assert.Equal(t, 1, backend.syncCalls)
	assert.True(t, backend.lastSynced["bookings"])
	assert.False(t, backend.lastSynced["staff"])
}

func TestRefreshSkipsSyncWhenChecklistMatches(t *testing.T) {
	completion := map[string]bool{"workspace": true}
	for _, step := range stepDefinitions()[1:] {
		completion[string(step.Key)] = false
	}
	backend := &fakeBackend{
		workspace: domain.Workspace{ID: "ws-1", OnboardingSteps: completion},
		readiness: domain.WorkspaceReadiness{Completion: completion},
	}
	engine, _ := newTestEngine(t, backend)

	engine.Refresh(context.Background())

	backend.mu.Lock()
	defer backend.mu.Unlock()
	assert.Zero(t, backend.syncCalls)
}

func TestRefreshSurfacesSyncFailureAsWarningBanner(t *testing.T) {
	backend := &fakeBackend{
		workspace: domain.Workspace{ID: "ws-1"},
		readiness: domain.WorkspaceReadiness{Completion: map[string]bool{"workspace": true}},
		failSync:  true,
	}
	engine, _ := newTestEngine(t, backend)

	engine.Refresh(context.Background())

	state := engine.Snapshot()
	assert.Equal(t, msgSyncFailed, state.ErrorMessage)
	assert.True(t, state.Steps[0].Completed)
}

func TestRefreshBackendFailureKeepsSteps(t *testing.T) {
	backend := &fakeBackend{workspace: domain.Workspace{ID: "ws-1"}, failAll: true}
	engine, _ := newTestEngine(t, backend)

	result := engine.Refresh(context.Background())

	assert.Nil(t, result)
	state := engine.Snapshot()
	assert.Equal(t, msgLoadFailed, state.ErrorMessage)
	assert.Len(t, state.Steps, 8)
}

func TestContactFormStaysIncompleteUntilAcknowledged(t *testing.T) {
	backend := &fakeBackend{
		workspace: domain.Workspace{ID: "ws-1", OnboardingStatus: domain.OnboardingDraft},
		readiness: domain.WorkspaceReadiness{
			Completion: map[string]bool{"workspace": true, "channels": true, "contact_form": true},
		},
	}
	engine, prefs := newTestEngine(t, backend)

	engine.Refresh(context.Background())
	state := engine.Snapshot()
	assert.False(t, state.Steps[2].Completed)

	prefs.AcknowledgeContactForm("ws-1")
	engine.Refresh(context.Background())
	state = engine.Snapshot()
	assert.True(t, state.Steps[2].Completed)
}

func TestContactFormFollowsReadinessOnceActive(t *testing.T) {
	backend := &fakeBackend{
		workspace: domain.Workspace{ID: "ws-1", OnboardingStatus: domain.OnboardingActive},
		readiness: domain.WorkspaceReadiness{
			OnboardingStatus: domain.OnboardingActive,
			Completion:       map[string]bool{"contact_form": true},
		},
	}
	engine, _ := newTestEngine(t, backend)

	// No local acknowledgement exists, but the workspace is already
	// active, so the step stays completed.
	engine.Refresh(context.Background())
	assert.True(t, engine.Snapshot().Steps[2].Completed)
}

func TestNextStepBlocksOnIncompleteChannels(t *testing.T) {
	backend := &fakeBackend{
		workspace: domain.Workspace{ID: "ws-1"},
		readiness: domain.WorkspaceReadiness{Completion: map[string]bool{"workspace": true}},
	}
	engine, _ := newTestEngine(t, backend)
	engine.Refresh(context.Background())
	engine.SelectStep(1)

	engine.NextStep(context.Background())

	state := engine.Snapshot()
	assert.Equal(t, msgChannelsBlocked, state.ErrorMessage)
	assert.Equal(t, 1, state.ActiveStepIndex)
}

func TestNextStepFromContactFormRecordsAcknowledgement(t *testing.T) {
	backend := &fakeBackend{
		workspace: domain.Workspace{ID: "ws-1"},
		readiness: domain.WorkspaceReadiness{
			Completion: map[string]bool{"workspace": true, "channels": true},
		},
	}
	engine, prefs := newTestEngine(t, backend)
	engine.Refresh(context.Background())
	engine.SelectStep(2)

	engine.NextStep(context.Background())

	assert.True(t, prefs.ContactFormAcknowledged("ws-1"))
	state := engine.Snapshot()
	assert.Equal(t, 3, state.ActiveStepIndex)
	assert.True(t, state.Steps[2].Completed)
	assert.Empty(t, state.ErrorMessage)
}

func TestActivateRejectsIncompleteChecklist(t *testing.T) {
	backend := &fakeBackend{
		workspace: domain.Workspace{ID: "ws-1"},
		readiness: domain.WorkspaceReadiness{
			Completion: map[string]bool{"workspace": true, "channels": true},
		},
	}
	engine, _ := newTestEngine(t, backend)
	engine.Refresh(context.Background())

	engine.Activate(context.Background())

	state := engine.Snapshot()
	assert.Equal(t, msgIncompleteSteps, state.ErrorMessage)
	assert.Equal(t, 2, state.ActiveStepIndex)
	backend.mu.Lock()
	defer backend.mu.Unlock()
	assert.False(t, backend.activated)
}

func TestActivateCompletedChecklist(t *testing.T) {
	completion := allStepsComplete()
	backend := &fakeBackend{
		workspace: domain.Workspace{ID: "ws-1", OnboardingSteps: completion},
		readiness: domain.WorkspaceReadiness{Completion: completion, CanActivate: true},
	}
	engine, prefs := newTestEngine(t, backend)
	prefs.AcknowledgeContactForm("ws-1")
	engine.Refresh(context.Background())

	engine.Activate(context.Background())

	state := engine.Snapshot()
	assert.Equal(t, msgActivated, state.ActivationMessage)
	assert.Equal(t, domain.OnboardingActive, state.WorkspaceStatus)
	assert.False(t, state.Activating)
	assert.Equal(t, 100, state.CompletionPercent())
	backend.mu.Lock()
	defer backend.mu.Unlock()
	assert.True(t, backend.activated)
}

func TestCompletionPercentRoundsHalfUp(t *testing.T) {
	state := State{Steps: buildSteps(stepDefinitions(), map[StepKey]bool{
		StepWorkspace:   true,
		StepChannels:    true,
		StepContactForm: true,
	})}
	// 3 of 8 is 37.5, rounded to 38.
	assert.Equal(t, 38, state.CompletionPercent())
}

func TestMissingWorkspaceBlocksChecklist(t *testing.T) {
	backend := &fakeBackend{}
	server := httptest.NewServer(backend.handler())
	t.Cleanup(server.Close)

	sess := session.NewStore(session.NewMemoryStorage())
	sess.Set(session.State{Token: "tok"})
	engine := NewEngine(api.New(server.URL, sess), sess, session.NewPrefs(session.NewMemoryStorage()))

	engine.Refresh(context.Background())

	state := engine.Snapshot()
	assert.Equal(t, []string{msgNoWorkspace}, state.Blockers)
	assert.False(t, state.CanActivate)
}
