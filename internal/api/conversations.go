package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/erinpaul2002/careops-console/internal/domain"
)

// Conversations lists inbox threads, optionally filtered by status.
func (c *Client) Conversations(ctx context.Context, status domain.ConversationStatus) ([]domain.Conversation, error) {
	path := "/conversations"
	if status != "" {
		path += "?status=" + url.QueryEscape(string(status))
	}
	var out struct {
		Data []domain.Conversation `json:"data"`
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

// ConversationMessages returns a thread and its full message history.
func (c *Client) ConversationMessages(ctx context.Context, conversationID string) (*domain.ConversationMessages, error) {
	var out domain.ConversationMessages
	err := c.do(ctx, requestOptions{
		path:            "/conversations/" + url.PathEscape(conversationID) + "/messages",
		auth:            true,
		workspaceScoped: true,
		out:             &out,
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// SendConversationMessage posts an outbound reply on a thread.
func (c *Client) SendConversationMessage(ctx context.Context, conversationID, body string) error {
	return c.do(ctx, requestOptions{
		method:          http.MethodPost,
		path:            "/conversations/" + url.PathEscape(conversationID) + "/messages",
		auth:            true,
		workspaceScoped: true,
		body:            map[string]string{"body": body},
	})
}

// ConversationAIDraft asks the backend to draft a reply; instruction is
// optional operator steering.
func (c *Client) ConversationAIDraft(ctx context.Context, conversationID, instruction string) (string, error) {
	body := map[string]string{}
	if instruction != "" {
		body["instruction"] = instruction
	}
	var out struct {
		Draft string `json:"draft"`
	}
	err := c.do(ctx, requestOptions{
		method:          http.MethodPost,
		path:            "/conversations/" + url.PathEscape(conversationID) + "/ai-draft",
		auth:            true,
		workspaceScoped: true,
		body:            body,
		out:             &out,
	})
	if err != nil {
		return "", err
	}
	return out.Draft, nil
}
