package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/erinpaul2002/careops-console/internal/domain"
)

// PublicFlowConfig fetches a workspace's public page configuration
// without authentication.
func (c *Client) PublicFlowConfig(ctx context.Context, workspaceID string) (*domain.PublicFlowConfig, error) {
	var out struct {
		PublicFlowConfig domain.PublicFlowConfig `json:"publicFlowConfig"`
	}
	err := c.do(ctx, requestOptions{
		path: "/public/" + url.PathEscape(workspaceID) + "/public-flow-config",
		out:  &out,
	})
	if err != nil {
		return nil, err
	}
	return &out.PublicFlowConfig, nil
}

// PublicServices lists bookable services for a public workspace page.
func (c *Client) PublicServices(ctx context.Context, workspaceID string) ([]domain.Service, error) {
	var out struct {
		Data []domain.Service `json:"data"`
	}
	err := c.do(ctx, requestOptions{
		path: "/public/" + url.PathEscape(workspaceID) + "/services",
		out:  &out,
	})
	if err != nil {
		return nil, err
	}
	return out.Data, nil
}

// PublicSlots lists open slots for a service on a given day. A missing
// timezone defaults to UTC.
func (c *Client) PublicSlots(ctx context.Context, workspaceID, serviceID, date string) (*domain.PublicSlots, error) {
	query := url.Values{}
	query.Set("serviceId", serviceID)
	query.Set("date", date)
	var out domain.PublicSlots
	err := c.do(ctx, requestOptions{
		path: "/public/" + url.PathEscape(workspaceID) + "/slots?" + query.Encode(),
		out:  &out,
	})
	if err != nil {
		return nil, err
	}
	if out.Timezone == "" {
		out.Timezone = "UTC"
	}
	return &out, nil
}

// CreatePublicBooking submits an unauthenticated booking. A fresh
// idempotency key protects against duplicate submissions on retry.
func (c *Client) CreatePublicBooking(ctx context.Context, workspaceID string, req domain.PublicBookingRequest) (*domain.PublicBookingResult, error) {
	var out domain.PublicBookingResult
	err := c.do(ctx, requestOptions{
		method:         http.MethodPost,
		path:           "/public/" + url.PathEscape(workspaceID) + "/bookings",
		body:           req,
		idempotencyKey: NewIdempotencyKey(),
		out:            &out,
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// SubmitPublicContact posts a contact request and returns the created
// conversation id.
func (c *Client) SubmitPublicContact(ctx context.Context, workspaceID string, req domain.PublicContactRequest) (string, error) {
	var out struct {
		ConversationID string `json:"conversationId"`
	}
	err := c.do(ctx, requestOptions{
		method: http.MethodPost,
		path:   "/public/" + url.PathEscape(workspaceID) + "/contact",
		body:   req,
		out:    &out,
	})
	if err != nil {
		return "", err
	}
	return out.ConversationID, nil
}

// PublicForm resolves a tokenized form request and its template.
func (c *Client) PublicForm(ctx context.Context, token string) (*domain.PublicForm, error) {
	var out domain.PublicForm
	err := c.do(ctx, requestOptions{
		path: "/public/forms/" + url.PathEscape(token),
		out:  &out,
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// SubmitPublicForm posts form answers under an idempotency key.
func (c *Client) SubmitPublicForm(ctx context.Context, token string, answers map[string]any) (*domain.PublicFormSubmission, error) {
	var out domain.PublicFormSubmission
	err := c.do(ctx, requestOptions{
		method:         http.MethodPost,
		path:           "/public/forms/" + url.PathEscape(token) + "/submit",
		body:           answers,
		idempotencyKey: NewIdempotencyKey(),
		out:            &out,
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// CreatePublicFormFileUpload asks for a presigned upload slot for a form
// attachment field.
func (c *Client) CreatePublicFormFileUpload(ctx context.Context, token string, req domain.FileUploadRequest) (*domain.FileUploadTicket, error) {
	var out domain.FileUploadTicket
	err := c.do(ctx, requestOptions{
		method: http.MethodPost,
		path:   "/public/forms/" + url.PathEscape(token) + "/files/presign-upload",
		body:   req,
		out:    &out,
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}
