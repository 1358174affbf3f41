package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/erinpaul2002/careops-console/internal/domain"
)

// FormTemplates lists intake templates.
func (c *Client) FormTemplates(ctx context.Context, includeInactive bool) ([]domain.FormTemplate, error) {
	path := "/form-templates"
	if includeInactive {
		path += "?includeInactive=true"
	}
	var out struct {
		Data []domain.FormTemplate `json:"data"`
	}
	err := c.do(ctx, requestOptions{
		path:            path,
		auth:            true,
		workspaceScoped: true,
		out:             &out,
	})
	if err != nil {
		return nil, err
	}
	return out.Data, nil
}

// CreateFormTemplate adds a template.
func (c *Client) CreateFormTemplate(ctx context.Context, input domain.FormTemplateCreate) (*domain.FormTemplate, error) {
	var out struct {
		Template domain.FormTemplate `json:"template"`
	}
	err := c.do(ctx, requestOptions{
		method:          http.MethodPost,
		path:            "/form-templates",
		auth:            true,
		workspaceScoped: true,
		body:            input,
		out:             &out,
	})
	if err != nil {
		return nil, err
	}
	return &out.Template, nil
}

// PatchFormTemplate updates a subset of template fields.
func (c *Client) PatchFormTemplate(ctx context.Context, templateID string, patch domain.FormTemplatePatch) (*domain.FormTemplate, error) {
	var out struct {
		Template domain.FormTemplate `json:"template"`
	}
	err := c.do(ctx, requestOptions{
		method:          http.MethodPatch,
		path:            "/form-templates/" + url.PathEscape(templateID),
		auth:            true,
		workspaceScoped: true,
		body:            patch,
		out:             &out,
	})
	if err != nil {
		return nil, err
	}
	return &out.Template, nil
}

// DeleteFormTemplate removes a template.
func (c *Client) DeleteFormTemplate(ctx context.Context, templateID string) error {
	return c.do(ctx, requestOptions{
		method:          http.MethodDelete,
		path:            "/form-templates/" + url.PathEscape(templateID),
		auth:            true,
		workspaceScoped: true,
	})
}
