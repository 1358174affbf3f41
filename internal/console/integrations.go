package console

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/erinpaul2002/careops-console/internal/api"
	"github.com/erinpaul2002/careops-console/internal/domain"
)

// IntegrationsState is the settings view model for provider
// connections and AI assistance.
type IntegrationsState struct {
	Loading          bool
	ErrorMessage     string
	Connections      []domain.IntegrationConnection
	MutatingProvider string
	AIConfig         domain.AIConfig
	GroqConfigured   bool
	SavingAIConfig   bool
}

// Integrations manages Gmail and Google Calendar connections plus the
// workspace AI toggles.
type Integrations struct {
	client *api.Client

	mu    sync.Mutex
	state IntegrationsState
}

func NewIntegrations(client *api.Client) *Integrations {
	return &Integrations{client: client, state: IntegrationsState{Loading: true}}
}

func (g *Integrations) State() IntegrationsState {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := g.state
	out.Connections = append([]domain.IntegrationConnection(nil), g.state.Connections...)
	return out
}

// Refresh loads connections and the AI config together. A failed load
// falls back to a static preview of connected providers.
func (g *Integrations) Refresh(ctx context.Context) {
	g.mu.Lock()
	g.state.Loading = true
	g.state.ErrorMessage = ""
	g.mu.Unlock()

	var (
		wg          sync.WaitGroup
		connections []domain.IntegrationConnection
		aiStatus    *domain.AIConfigStatus
		errs        [2]error
	)
	wg.Add(2)
	go func() { defer wg.Done(); connections, errs[0] = g.client.Integrations(ctx) }()
	go func() { defer wg.Done(); aiStatus, errs[1] = g.client.WorkspaceAIConfig(ctx) }()
	wg.Wait()

	g.mu.Lock()
	defer g.mu.Unlock()
	g.state.Loading = false
	if errs[0] != nil || errs[1] != nil {
		g.state.Connections = fallbackConnections()
		g.state.ErrorMessage = "Showing fallback integration preview."
		return
	}
	g.state.Connections = connections
	g.state.AIConfig = aiStatus.AIConfig
	g.state.GroqConfigured = aiStatus.GroqConfigured
}

// HandleOAuthReturn applies the redirect query a provider callback
// lands with: success triggers a refresh, errors surface the message.
func (g *Integrations) HandleOAuthReturn(ctx context.Context, status, message string) {
	switch status {
	case "success":
		g.Refresh(ctx)
	case "error":
		if message == "" {
			message = "Google integration failed."
		}
		g.mu.Lock()
		g.state.ErrorMessage = message
		g.mu.Unlock()
	}
}

// Connect starts the OAuth flow for a provider and returns the URL the
// operator must visit to authorize it.
func (g *Integrations) Connect(ctx context.Context, provider string) (string, error) {
	g.mu.Lock()
	g.state.MutatingProvider = provider
	g.mu.Unlock()

	result, err := g.client.ConnectIntegration(ctx, provider)

	g.mu.Lock()
	defer g.mu.Unlock()
	g.state.MutatingProvider = ""
	if err != nil {
		g.state.ErrorMessage = fmt.Sprintf("Could not connect %s.", provider)
		return "", err
	}
	return result.AuthURL, nil
}

// Sync refreshes one provider connection, then reloads.
func (g *Integrations) Sync(ctx context.Context, provider string) {
	g.mu.Lock()
	g.state.MutatingProvider = provider
	g.mu.Unlock()

	_, _ = g.client.SyncIntegration(ctx, provider)

	g.mu.Lock()
	g.state.MutatingProvider = ""
	g.mu.Unlock()
	g.Refresh(ctx)
}

// Disconnect removes one provider connection, then reloads.
func (g *Integrations) Disconnect(ctx context.Context, provider string) {
	g.mu.Lock()
	g.state.MutatingProvider = provider
	g.mu.Unlock()

	_, _ = g.client.DisconnectIntegration(ctx, provider)

	g.mu.Lock()
	g.state.MutatingProvider = ""
	g.mu.Unlock()
	g.Refresh(ctx)
}

// UpdateAIConfig patches the AI toggles and applies the server copy.
func (g *Integrations) UpdateAIConfig(ctx context.Context, patch domain.AIConfigPatch) {
	g.mu.Lock()
	g.state.SavingAIConfig = true
	g.state.ErrorMessage = ""
	g.mu.Unlock()

	response, err := g.client.PatchWorkspaceAIConfig(ctx, patch)

	g.mu.Lock()
	defer g.mu.Unlock()
	g.state.SavingAIConfig = false
	if err != nil {
		g.state.ErrorMessage = "Could not update AI settings."
		return
	}
	g.state.AIConfig = response.AIConfig
	g.state.GroqConfigured = response.GroqConfigured
}

func fallbackConnections() []domain.IntegrationConnection {
	lastSync := time.Now().Add(-55 * time.Minute).UTC().Format(time.RFC3339)
	return []domain.IntegrationConnection{
		{
			ID:         "integration-1",
			Provider:   domain.ProviderGmail,
			Status:     domain.IntegrationConnected,
			Scopes:     []string{"gmail.send", "gmail.readonly"},
			LastSyncAt: lastSync,
		},
		{
			ID:         "integration-2",
			Provider:   domain.ProviderGoogleCalendar,
			Status:     domain.IntegrationConnected,
			Scopes:     []string{"calendar.events"},
			LastSyncAt: lastSync,
		},
	}
}
