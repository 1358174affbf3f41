package console

import (
	"context"
	"sync"

	"github.com/erinpaul2002/careops-console/internal/api"
	"github.com/erinpaul2002/careops-console/internal/domain"
)

// BookingsState is the bookings list view model. An empty StatusFilter
// means all statuses.
type BookingsState struct {
	Loading           bool
	ErrorMessage      string
	Bookings          []domain.Booking
	StatusFilter      domain.BookingStatus
	MutatingBookingID string
}

// Bookings lists appointments and requests status transitions. The
// transition itself is server-side; the list is refetched afterwards.
type Bookings struct {
	client *api.Client

	mu    sync.Mutex
	state BookingsState
}

func NewBookings(client *api.Client) *Bookings {
	return &Bookings{client: client, state: BookingsState{Loading: true}}
}

func (b *Bookings) State() BookingsState {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := b.state
	out.Bookings = append([]domain.Booking(nil), b.state.Bookings...)
	return out
}

// Load fetches bookings under the given status filter.
func (b *Bookings) Load(ctx context.Context, filter domain.BookingStatus) {
	b.mu.Lock()
	b.state.Loading = true
	b.state.ErrorMessage = ""
	b.state.StatusFilter = filter
	b.mu.Unlock()

	bookings, err := b.client.Bookings(ctx, domain.BookingFilters{Status: filter})

	b.mu.Lock()
	defer b.mu.Unlock()
	b.state.Loading = false
	if err != nil {
		b.state.Bookings = nil
		b.state.ErrorMessage = "Unable to load bookings."
		return
	}
	b.state.Bookings = bookings
}

// Refresh reloads under the current filter.
func (b *Bookings) Refresh(ctx context.Context) {
	b.mu.Lock()
	filter := b.state.StatusFilter
	b.mu.Unlock()
	b.Load(ctx, filter)
}

// UpdateStatus requests a transition and refetches the list.
func (b *Bookings) UpdateStatus(ctx context.Context, bookingID string, status domain.BookingStatus) {
	b.mu.Lock()
	b.state.MutatingBookingID = bookingID
	filter := b.state.StatusFilter
	b.mu.Unlock()

	_, err := b.client.UpdateBookingStatus(ctx, bookingID, status)
	if err == nil {
		b.Load(ctx, filter)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.state.MutatingBookingID = ""
	if err != nil {
		b.state.ErrorMessage = "Unable to update booking status."
	}
}
