package console

import (
	"context"
	"sync"

	"github.com/erinpaul2002/careops-console/internal/api"
	"github.com/erinpaul2002/careops-console/internal/domain"
)

// FormsState is the form-requests view model. An empty StatusFilter
// means all statuses.
type FormsState struct {
	Loading      bool
	ErrorMessage string
	StatusFilter domain.FormRequestStatus
	Requests     []domain.FormRequest
}

// Forms tracks issued intake forms across bookings.
type Forms struct {
	client *api.Client

	mu    sync.Mutex
	state FormsState
}

func NewForms(client *api.Client) *Forms {
	return &Forms{client: client, state: FormsState{Loading: true}}
}

func (f *Forms) State() FormsState {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := f.state
	out.Requests = append([]domain.FormRequest(nil), f.state.Requests...)
	return out
}

// Load fetches form requests under the given status filter.
func (f *Forms) Load(ctx context.Context, filter domain.FormRequestStatus, showLoading bool) {
	if showLoading {
		f.mu.Lock()
		f.state.Loading = true
		f.state.ErrorMessage = ""
		f.state.StatusFilter = filter
		f.mu.Unlock()
	} else {
		f.mu.Lock()
		f.state.StatusFilter = filter
		f.mu.Unlock()
	}

	requests, err := f.client.FormRequests(ctx, filter)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.state.Loading = false
	if err != nil {
		f.state.Requests = nil
		f.state.ErrorMessage = "Unable to load form requests."
		return
	}
	f.state.Requests = requests
	f.state.ErrorMessage = ""
}

// Refresh reloads under the current filter.
func (f *Forms) Refresh(ctx context.Context) {
	f.mu.Lock()
	filter := f.state.StatusFilter
	f.mu.Unlock()
	f.Load(ctx, filter, true)
}

// FileDownloadURL issues a short-lived download link for an attachment
// submitted on the given form request.
func (f *Forms) FileDownloadURL(ctx context.Context, formRequestID, fileKey string) (string, error) {
	ticket, err := f.client.FormFileDownloadURL(ctx, formRequestID, fileKey)
	if err != nil {
		return "", err
	}
	return ticket.DownloadURL, nil
}
