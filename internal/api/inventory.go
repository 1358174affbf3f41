package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/erinpaul2002/careops-console/internal/domain"
)

// InventoryItems lists inventory, optionally including archived items.
func (c *Client) InventoryItems(ctx context.Context, includeArchived bool) ([]domain.InventoryItem, error) {
	path := "/inventory"
	if includeArchived {
		path += "?includeArchived=true"
	}
	var out struct {
		Data []domain.InventoryItem `json:"data"`
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

// CreateInventoryItem adds a stock item.
func (c *Client) CreateInventoryItem(ctx context.Context, input domain.InventoryItemCreate) (*domain.InventoryItem, error) {
	var out struct {
		Item domain.InventoryItem `json:"item"`
	}
	err := c.do(ctx, requestOptions{
		method:          http.MethodPost,
		path:            "/inventory",
		auth:            true,
		workspaceScoped: true,
		body:            input,
		out:             &out,
	})
	if err != nil {
		return nil, err
	}
	return &out.Item, nil
}

// PatchInventoryItem updates item metadata or thresholds.
func (c *Client) PatchInventoryItem(ctx context.Context, itemID string, patch domain.InventoryItemPatch) (*domain.InventoryItem, error) {
	var out struct {
		Item domain.InventoryItem `json:"item"`
	}
	err := c.do(ctx, requestOptions{
		method:          http.MethodPatch,
		path:            "/inventory/" + url.PathEscape(itemID),
		auth:            true,
		workspaceScoped: true,
		body:            patch,
		out:             &out,
	})
	if err != nil {
		return nil, err
	}
	return &out.Item, nil
}

// AdjustInventoryItem applies a signed stock delta with an optional reason.
func (c *Client) AdjustInventoryItem(ctx context.Context, itemID string, delta int, reason string) (*domain.InventoryItem, error) {
	body := map[string]any{"delta": delta}
	if reason != "" {
		body["reason"] = reason
	}
	var out struct {
		Item domain.InventoryItem `json:"item"`
	}
	err := c.do(ctx, requestOptions{
		method:          http.MethodPost,
		path:            "/inventory/" + url.PathEscape(itemID) + "/adjust",
		auth:            true,
		workspaceScoped: true,
		body:            body,
		out:             &out,
	})
	if err != nil {
		return nil, err
	}
	return &out.Item, nil
}

// ArchiveInventoryItem soft-deletes an item; the server returns its final state.
func (c *Client) ArchiveInventoryItem(ctx context.Context, itemID string) (*domain.InventoryItem, error) {
	var out struct {
		Item domain.InventoryItem `json:"item"`
	}
	err := c.do(ctx, requestOptions{
		method:          http.MethodDelete,
		path:            "/inventory/" + url.PathEscape(itemID),
		auth:            true,
		workspaceScoped: true,
		out:             &out,
	})
	if err != nil {
		return nil, err
	}
	return &out.Item, nil
}
