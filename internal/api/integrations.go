package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/erinpaul2002/careops-console/internal/domain"
)

// Integrations lists provider connections for the active workspace.
func (c *Client) Integrations(ctx context.Context) ([]domain.IntegrationConnection, error) {
	var out struct {
		Data []domain.IntegrationConnection `json:"data"`
	}
	err := c.do(ctx, requestOptions{
		path:            "/integrations",
		auth:            true,
		workspaceScoped: true,
		out:             &out,
	})
	if err != nil {
		return nil, err
	}
	return out.Data, nil
}

// ConnectIntegration starts an OAuth connect flow for a provider and
// returns the authorization URL the operator must visit.
func (c *Client) ConnectIntegration(ctx context.Context, provider string) (*domain.IntegrationConnectResponse, error) {
	var out domain.IntegrationConnectResponse
	err := c.do(ctx, requestOptions{
		method:          http.MethodPost,
		path:            "/integrations/" + url.PathEscape(provider) + "/connect",
		auth:            true,
		workspaceScoped: true,
		out:             &out,
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// SyncIntegration asks the backend to refresh a provider connection.
func (c *Client) SyncIntegration(ctx context.Context, provider string) (*domain.IntegrationConnection, error) {
	var out struct {
		Connection domain.IntegrationConnection `json:"connection"`
	}
	err := c.do(ctx, requestOptions{
		method:          http.MethodPost,
		path:            "/integrations/" + url.PathEscape(provider) + "/sync",
		auth:            true,
		workspaceScoped: true,
		out:             &out,
	})
	if err != nil {
		return nil, err
	}
	return &out.Connection, nil
}

// DisconnectIntegration removes a provider connection and returns its
// final state.
func (c *Client) DisconnectIntegration(ctx context.Context, provider string) (*domain.IntegrationConnection, error) {
	var out struct {
		Connection domain.IntegrationConnection `json:"connection"`
	}
	err := c.do(ctx, requestOptions{
		method:          http.MethodDelete,
		path:            "/integrations/" + url.PathEscape(provider),
		auth:            true,
		workspaceScoped: true,
		out:             &out,
	})
	if err != nil {
		return nil, err
	}
	return &out.Connection, nil
}
