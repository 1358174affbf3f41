package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/erinpaul2002/careops-console/internal/domain"
)

// Bookings lists workspace bookings with optional status/date filters.
func (c *Client) Bookings(ctx context.Context, filters domain.BookingFilters) ([]domain.Booking, error) {
	params := url.Values{}
	if filters.Status != "" {
		params.Set("status", string(filters.Status))
	}
	if filters.DateFrom != "" {
		params.Set("dateFrom", filters.DateFrom)
	}
	if filters.DateTo != "" {
		params.Set("dateTo", filters.DateTo)
	}
	path := "/bookings"
	if query := params.Encode(); query != "" {
		path += "?" + query
	}

	var out struct {
		Data []domain.Booking `json:"data"`
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

// UpdateBookingStatus requests a status transition and returns the updated
// booking.
func (c *Client) UpdateBookingStatus(ctx context.Context, bookingID string, status domain.BookingStatus) (*domain.Booking, error) {
	var out struct {
		Booking domain.Booking `json:"booking"`
	}
	err := c.do(ctx, requestOptions{
		method:          http.MethodPatch,
		path:            "/bookings/" + url.PathEscape(bookingID) + "/status",
		auth:            true,
		workspaceScoped: true,
		body:            map[string]string{"status": string(status)},
		out:             &out,
	})
	if err != nil {
		return nil, err
	}
	return &out.Booking, nil
}

// FormRequests lists intake form requests, optionally filtered by status.
func (c *Client) FormRequests(ctx context.Context, status domain.FormRequestStatus) ([]domain.FormRequest, error) {
	path := "/form-requests"
	if status != "" {
		path += "?status=" + url.QueryEscape(string(status))
	}
	var out struct {
		Data []domain.FormRequest `json:"data"`
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

// FormFileDownloadURL issues a presigned download link for a submitted
// attachment.
func (c *Client) FormFileDownloadURL(ctx context.Context, formRequestID, key string) (*domain.FileDownloadTicket, error) {
	var out domain.FileDownloadTicket
	err := c.do(ctx, requestOptions{
		path: "/form-requests/" + url.PathEscape(formRequestID) +
			"/files/download-url?key=" + url.QueryEscape(key),
		auth:            true,
		workspaceScoped: true,
		out:             &out,
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}
