package console

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erinpaul2002/careops-console/internal/api"
	"github.com/erinpaul2002/careops-console/internal/domain"
	"github.com/erinpaul2002/careops-console/internal/session"
)

// formsBackend serves the form-request endpoints and records ticket
// requests so tests can verify the URLs hitting the wire.
type formsBackend struct {
	mu sync.Mutex

	requests    []domain.FormRequest
	ticketPaths []string
}

func (b *formsBackend) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/form-requests", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		filtered := b.requests
		if status := r.URL.Query().Get("status"); status != "" {
			filtered = nil
			for _, req := range b.requests {
				if string(req.Status) == status {
					filtered = append(filtered, req)
				}
			}
		}
		json.NewEncoder(w).Encode(map[string]any{"data": filtered})
	})
	mux.HandleFunc("/api/v1/form-requests/", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		b.ticketPaths = append(b.ticketPaths, r.URL.RequestURI())
		json.NewEncoder(w).Encode(domain.FileDownloadTicket{
			Key:         r.URL.Query().Get("key"),
			DownloadURL: "https://files.example.com/signed",
		})
	})
	return mux
}

func newTestForms(t *testing.T, backend *formsBackend) *Forms {
	t.Helper()
	server := httptest.NewServer(backend.handler())
	t.Cleanup(server.Close)

	sess := session.NewStore(session.NewMemoryStorage())
	sess.Set(session.State{Token: "tok", WorkspaceID: "ws-1", Role: domain.RoleStaff})
	return NewForms(api.New(server.URL, sess))
}

func TestFormsLoadAppliesStatusFilter(t *testing.T) {
	backend := &formsBackend{requests: []domain.FormRequest{
		{ID: "fr-1", Status: domain.FormRequestPending, DueAt: "2026-09-02T10:00:00Z"},
		{ID: "fr-2", Status: domain.FormRequestCompleted, DueAt: "2026-08-30T10:00:00Z"},
	}}
	forms := newTestForms(t, backend)

	forms.Load(context.Background(), domain.FormRequestCompleted, true)

	state := forms.State()
	assert.False(t, state.Loading)
	require.Len(t, state.Requests, 1)
	assert.Equal(t, "fr-2", state.Requests[0].ID)
	assert.Equal(t, domain.FormRequestCompleted, state.StatusFilter)
}

func TestFileDownloadURLScopesTicketToFormRequest(t *testing.T) {
	backend := &formsBackend{}
	forms := newTestForms(t, backend)

	url, err := forms.FileDownloadURL(context.Background(), "fr-1", "uploads/ws-1/consent.pdf")

	require.NoError(t, err)
	assert.Equal(t, "https://files.example.com/signed", url)
	require.Len(t, backend.ticketPaths, 1)
	assert.Equal(t,
		"/api/v1/form-requests/fr-1/files/download-url?key=uploads%2Fws-1%2Fconsent.pdf",
		backend.ticketPaths[0])
}

func TestSubmittedFilesExtractsAttachments(t *testing.T) {
	payload := []byte(`{
		"id": "fr-1",
		"status": "completed",
		"dueAt": "2026-09-02T10:00:00Z",
		"submission": {
			"notes": "all good",
			"consent": {"key": "uploads/ws-1/consent.pdf", "fileName": "consent.pdf", "contentType": "application/pdf", "size": 2048},
			"photo": {"key": "uploads/ws-1/photo.jpg", "fileName": "photo.jpg", "contentType": "image/jpeg", "size": 1024},
			"partial": {"key": "uploads/ws-1/orphan"}
		}
	}`)
	var request domain.FormRequest
	require.NoError(t, json.Unmarshal(payload, &request))

	files := request.SubmittedFiles()

	require.Len(t, files, 2)
	assert.Equal(t, "consent", files[0].FieldKey)
	assert.Equal(t, "consent.pdf", files[0].FileName)
	assert.Equal(t, int64(2048), files[0].Size)
	assert.Equal(t, "photo", files[1].FieldKey)
	assert.Equal(t, "uploads/ws-1/photo.jpg", files[1].Key)
}
