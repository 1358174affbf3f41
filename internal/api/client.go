package api

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/erinpaul2002/careops-console/internal/session"
)

const apiPrefix = "/api/v1"

// Error is the typed failure for any non-2xx backend response.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// IsStatus reports whether err is an API error with the given HTTP status.
func IsStatus(err error, status int) bool {
	apiErr, ok := err.(*Error)
	return ok && apiErr.Status == status
}

// Client is the typed CareOps backend client. Every exported method is a
// thin 1:1 mapping to one REST endpoint; there is no batching, retry, or
// caching layer.
type Client struct {
	baseURL string
	http    *http.Client
	session *session.Store

	// onUnauthorized fires after a 401 on an authenticated call has
	// force-cleared the session, so the shell can navigate to login.
	onUnauthorized func()
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient swaps the underlying transport (tests use this).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithUnauthorizedHook registers the post-401 navigation hook.
func WithUnauthorizedHook(fn func()) Option {
	return func(c *Client) { c.onUnauthorized = fn }
}

// New builds a client against the given base URL. The URL may or may not
// already carry the /api/v1 prefix.
func New(baseURL string, sess *session.Store, opts ...Option) *Client {
	base := strings.TrimRight(baseURL, "/")
	if !strings.HasSuffix(base, apiPrefix) {
		base += apiPrefix
	}
	c := &Client{
		baseURL: base,
		http:    &http.Client{Timeout: 30 * time.Second},
		session: sess,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the normalized API base.
func (c *Client) BaseURL() string {
	return c.baseURL
}

type requestOptions struct {
	method          string
	path            string
	body            any
	auth            bool
	workspaceScoped bool
	idempotencyKey  string
	out             any
}

func (c *Client) do(ctx context.Context, opts requestOptions) error {
	method := opts.method
	if method == "" {
		method = http.MethodGet
	}

	var reader io.Reader
	if opts.body != nil {
		raw, err := json.Marshal(opts.body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+opts.path, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	state := c.session.Snapshot()
	if opts.auth && state.Token != "" {
		req.Header.Set("Authorization", "Bearer "+state.Token)
	}
	if opts.workspaceScoped && state.WorkspaceID != "" {
		req.Header.Set("x-workspace-id", state.WorkspaceID)
	}
	if opts.idempotencyKey != "" {
		req.Header.Set("Idempotency-Key", opts.idempotencyKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if opts.auth && resp.StatusCode == http.StatusUnauthorized {
			c.session.Clear()
			if c.onUnauthorized != nil {
				c.onUnauthorized()
			}
		}
		return &Error{Status: resp.StatusCode, Message: errorMessage(raw, resp.StatusCode)}
	}

	if opts.out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, opts.out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func errorMessage(raw []byte, status int) string {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(raw, &payload); err == nil && payload.Error != "" {
		return payload.Error
	}
	return fmt.Sprintf("request failed: %d", status)
}

// NewIdempotencyKey returns a random key for double-submit protection on
// the two mutating public endpoints. The server deduplicates; this key is
// defensive, not correctness-critical.
func NewIdempotencyKey() string {
	if id, err := uuid.NewRandom(); err == nil {
		return id.String()
	}
	buf := make([]byte, 8)
	_, _ = rand.Read(buf)
	return fmt.Sprintf("%d-%s", time.Now().UnixMilli(), hex.EncodeToString(buf))
}

// UploadToSignedURL PUTs file content to a presigned storage URL. This is
// the only client call that bypasses the API base.
func (c *Client) UploadToSignedURL(ctx context.Context, uploadURL, contentType string, content io.Reader) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, uploadURL, content)
	if err != nil {
		return fmt.Errorf("create upload request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("upload failed: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &Error{Status: resp.StatusCode, Message: fmt.Sprintf("upload failed with status %d", resp.StatusCode)}
	}
	return nil
}
