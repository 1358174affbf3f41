package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/erinpaul2002/careops-console/internal/domain"
)

// PatchOnboardingStep marks a single checklist step complete or incomplete.
func (c *Client) PatchOnboardingStep(ctx context.Context, workspaceID, step string, completed bool) (*domain.Workspace, error) {
	var out struct {
		Workspace domain.Workspace `json:"workspace"`
	}
	err := c.do(ctx, requestOptions{
		method: http.MethodPatch,
		path:   "/workspaces/" + url.PathEscape(workspaceID) + "/onboarding",
		auth:   true,
		body: map[string]any{
			"step":      step,
			"completed": completed,
		},
		out: &out,
	})
	if err != nil {
		return nil, err
	}
	return &out.Workspace, nil
}

// PatchOnboardingSteps replaces the whole checklist map in one call.
func (c *Client) PatchOnboardingSteps(ctx context.Context, workspaceID string, steps map[string]bool) (*domain.Workspace, error) {
	var out struct {
		Workspace domain.Workspace `json:"workspace"`
	}
	err := c.do(ctx, requestOptions{
		method: http.MethodPatch,
		path:   "/workspaces/" + url.PathEscape(workspaceID) + "/onboarding",
		auth:   true,
		body: map[string]any{
			"onboardingSteps": steps,
		},
		out: &out,
	})
	if err != nil {
		return nil, err
	}
	return &out.Workspace, nil
}

// ActivateWorkspace flips the workspace from draft to active.
func (c *Client) ActivateWorkspace(ctx context.Context, workspaceID string) (*domain.Workspace, error) {
	var out struct {
		Workspace domain.Workspace `json:"workspace"`
	}
	err := c.do(ctx, requestOptions{
		method: http.MethodPost,
		path:   "/workspaces/" + url.PathEscape(workspaceID) + "/activate",
		auth:   true,
		out:    &out,
	})
	if err != nil {
		return nil, err
	}
	return &out.Workspace, nil
}

// DeactivateWorkspace returns the workspace to draft.
func (c *Client) DeactivateWorkspace(ctx context.Context, workspaceID string) (*domain.Workspace, error) {
	var out struct {
		Workspace domain.Workspace `json:"workspace"`
	}
	err := c.do(ctx, requestOptions{
		method: http.MethodPost,
		path:   "/workspaces/" + url.PathEscape(workspaceID) + "/deactivate",
		auth:   true,
		out:    &out,
	})
	if err != nil {
		return nil, err
	}
	return &out.Workspace, nil
}

// WorkspaceMembers lists the members of a workspace.
func (c *Client) WorkspaceMembers(ctx context.Context, workspaceID string) ([]domain.WorkspaceMember, error) {
	var out struct {
		Data []domain.WorkspaceMember `json:"data"`
	}
	err := c.do(ctx, requestOptions{
		path: "/workspaces/" + url.PathEscape(workspaceID) + "/members",
		auth: true,
		out:  &out,
	})
	if err != nil {
		return nil, err
	}
	return out.Data, nil
}

// CreateWorkspaceMember invites a staff or owner account.
func (c *Client) CreateWorkspaceMember(ctx context.Context, workspaceID string, input domain.MemberCreate) (*domain.WorkspaceMember, error) {
	var out struct {
		Member domain.WorkspaceMember `json:"member"`
	}
	err := c.do(ctx, requestOptions{
		method: http.MethodPost,
		path:   "/workspaces/" + url.PathEscape(workspaceID) + "/members",
		auth:   true,
		body:   input,
		out:    &out,
	})
	if err != nil {
		return nil, err
	}
	return &out.Member, nil
}

// RemoveWorkspaceMember deletes a member account.
func (c *Client) RemoveWorkspaceMember(ctx context.Context, workspaceID, userID string) error {
	return c.do(ctx, requestOptions{
		method: http.MethodDelete,
		path:   "/workspaces/" + url.PathEscape(workspaceID) + "/members/" + url.PathEscape(userID),
		auth:   true,
	})
}

// UpdateWorkspaceMemberRole switches a member between owner and staff.
func (c *Client) UpdateWorkspaceMemberRole(ctx context.Context, workspaceID, userID string, role domain.Role) (*domain.WorkspaceMember, error) {
	var out struct {
		Member domain.WorkspaceMember `json:"member"`
	}
	err := c.do(ctx, requestOptions{
		method: http.MethodPatch,
		path:   "/workspaces/" + url.PathEscape(workspaceID) + "/members/" + url.PathEscape(userID) + "/role",
		auth:   true,
		body:   map[string]any{"role": role},
		out:    &out,
	})
	if err != nil {
		return nil, err
	}
	return &out.Member, nil
}

// WorkspacePublicFlowConfig fetches the public booking/contact configuration
// for the active workspace.
func (c *Client) WorkspacePublicFlowConfig(ctx context.Context) (*domain.PublicFlowConfig, error) {
	var out struct {
		PublicFlowConfig domain.PublicFlowConfig `json:"publicFlowConfig"`
	}
	err := c.do(ctx, requestOptions{
		path:            "/public-flow-config",
		auth:            true,
		workspaceScoped: true,
		out:             &out,
	})
	if err != nil {
		return nil, err
	}
	return &out.PublicFlowConfig, nil
}

// PatchWorkspacePublicFlowConfig writes the full public flow configuration.
func (c *Client) PatchWorkspacePublicFlowConfig(ctx context.Context, config domain.PublicFlowConfig) (*domain.PublicFlowConfig, error) {
	var out struct {
		PublicFlowConfig domain.PublicFlowConfig `json:"publicFlowConfig"`
	}
	err := c.do(ctx, requestOptions{
		method:          http.MethodPatch,
		path:            "/public-flow-config",
		auth:            true,
		workspaceScoped: true,
		body:            config,
		out:             &out,
	})
	if err != nil {
		return nil, err
	}
	return &out.PublicFlowConfig, nil
}

// WorkspaceReadiness reports activation readiness for the active workspace.
func (c *Client) WorkspaceReadiness(ctx context.Context) (*domain.WorkspaceReadiness, error) {
	var out struct {
		Readiness domain.WorkspaceReadiness `json:"readiness"`
	}
	err := c.do(ctx, requestOptions{
		path:            "/workspace-readiness",
		auth:            true,
		workspaceScoped: true,
		out:             &out,
	})
	if err != nil {
		return nil, err
	}
	return &out.Readiness, nil
}

// WorkspaceAIConfig fetches assistant settings for the active workspace.
func (c *Client) WorkspaceAIConfig(ctx context.Context) (*domain.AIConfigStatus, error) {
	var out domain.AIConfigStatus
	err := c.do(ctx, requestOptions{
		path:            "/ai-config",
		auth:            true,
		workspaceScoped: true,
		out:             &out,
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// PatchWorkspaceAIConfig updates a subset of assistant settings.
func (c *Client) PatchWorkspaceAIConfig(ctx context.Context, patch domain.AIConfigPatch) (*domain.AIConfigStatus, error) {
	var out domain.AIConfigStatus
	err := c.do(ctx, requestOptions{
		method:          http.MethodPatch,
		path:            "/ai-config",
		auth:            true,
		workspaceScoped: true,
		body:            patch,
		out:             &out,
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}
