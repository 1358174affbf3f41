package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/erinpaul2002/careops-console/internal/domain"
)

// Services lists workspace services; includeInactive widens the list to
// paused ones.
func (c *Client) Services(ctx context.Context, includeInactive bool) ([]domain.Service, error) {
	path := "/services"
	if includeInactive {
		path += "?includeInactive=true"
	}
	var out struct {
		Data []domain.Service `json:"data"`
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

// CreateService adds a bookable service.
func (c *Client) CreateService(ctx context.Context, input domain.ServiceCreate) (*domain.Service, error) {
	var out struct {
		Service domain.Service `json:"service"`
	}
	err := c.do(ctx, requestOptions{
		method:          http.MethodPost,
		path:            "/services",
		auth:            true,
		workspaceScoped: true,
		body:            input,
		out:             &out,
	})
	if err != nil {
		return nil, err
	}
	return &out.Service, nil
}

// PatchService updates a subset of service fields.
func (c *Client) PatchService(ctx context.Context, serviceID string, patch domain.ServicePatch) (*domain.Service, error) {
	var out struct {
		Service domain.Service `json:"service"`
	}
	err := c.do(ctx, requestOptions{
		method:          http.MethodPatch,
		path:            "/services/" + url.PathEscape(serviceID),
		auth:            true,
		workspaceScoped: true,
		body:            patch,
		out:             &out,
	})
	if err != nil {
		return nil, err
	}
	return &out.Service, nil
}

// DeleteService removes a service.
func (c *Client) DeleteService(ctx context.Context, serviceID string) error {
	return c.do(ctx, requestOptions{
		method:          http.MethodDelete,
		path:            "/services/" + url.PathEscape(serviceID),
		auth:            true,
		workspaceScoped: true,
	})
}

// AvailabilityRules lists rules, optionally scoped to one service.
func (c *Client) AvailabilityRules(ctx context.Context, serviceID string) ([]domain.AvailabilityRule, error) {
	path := "/availability-rules"
	if serviceID != "" {
		path += "?serviceId=" + url.QueryEscape(serviceID)
	}
	var out struct {
		Data []domain.AvailabilityRule `json:"data"`
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

// CreateAvailabilityRule adds a weekly, date-override, or date-block rule.
func (c *Client) CreateAvailabilityRule(ctx context.Context, input domain.AvailabilityRuleCreate) (*domain.AvailabilityRule, error) {
	var out struct {
		Rule domain.AvailabilityRule `json:"rule"`
	}
	err := c.do(ctx, requestOptions{
		method:          http.MethodPost,
		path:            "/availability-rules",
		auth:            true,
		workspaceScoped: true,
		body:            input,
		out:             &out,
	})
	if err != nil {
		return nil, err
	}
	return &out.Rule, nil
}

// PatchAvailabilityRule updates a subset of rule fields.
func (c *Client) PatchAvailabilityRule(ctx context.Context, ruleID string, patch domain.AvailabilityRulePatch) (*domain.AvailabilityRule, error) {
	var out struct {
		Rule domain.AvailabilityRule `json:"rule"`
	}
	err := c.do(ctx, requestOptions{
		method:          http.MethodPatch,
		path:            "/availability-rules/" + url.PathEscape(ruleID),
		auth:            true,
		workspaceScoped: true,
		body:            patch,
		out:             &out,
	})
	if err != nil {
		return nil, err
	}
	return &out.Rule, nil
}

// DeleteAvailabilityRule removes a rule.
func (c *Client) DeleteAvailabilityRule(ctx context.Context, ruleID string) error {
	return c.do(ctx, requestOptions{
		method:          http.MethodDelete,
		path:            "/availability-rules/" + url.PathEscape(ruleID),
		auth:            true,
		workspaceScoped: true,
	})
}
