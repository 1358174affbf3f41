package api

import (
	"context"
	"net/url"

	"github.com/erinpaul2002/careops-console/internal/domain"
)

// DashboardSummary fetches the day panel; date is optional (YYYY-MM-DD).
func (c *Client) DashboardSummary(ctx context.Context, date string) (*domain.DashboardSummary, error) {
	path := "/dashboard/summary"
	if date != "" {
		path += "?date=" + url.QueryEscape(date)
	}
	var out domain.DashboardSummary
	err := c.do(ctx, requestOptions{
		path:            path,
		auth:            true,
		workspaceScoped: true,
		out:             &out,
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// DashboardMetrics fetches the rolling metrics panel for a period like "30d".
func (c *Client) DashboardMetrics(ctx context.Context, period string) (*domain.DashboardMetrics, error) {
	if period == "" {
		period = "30d"
	}
	var out domain.DashboardMetrics
	err := c.do(ctx, requestOptions{
		path:            "/dashboard/metrics?period=" + url.QueryEscape(period),
		auth:            true,
		workspaceScoped: true,
		out:             &out,
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}
