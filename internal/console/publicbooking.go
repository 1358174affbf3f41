package console

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/erinpaul2002/careops-console/internal/api"
	"github.com/erinpaul2002/careops-console/internal/domain"
)

const (
	msgBookingOptionsFailed = "Unable to load booking options."
	msgSlotsFailed          = "Unable to load available slots."
	msgSlotSelectionMissing = "Select a service and slot before submitting."
	msgBookingSubmitFailed  = "Could not submit booking right now."
)

// PublicBookingState is the visitor-facing booking page snapshot.
type PublicBookingState struct {
	Services         []domain.Service
	SelectedService  string
	Date             string
	SlotTimezone     string
	Slots            []domain.Slot
	SelectedStartsAt string
	FieldValues      map[string]any
	FlowConfig       domain.PublicFlowConfig
	Loading          bool
	SlotLoading      bool
	ErrorMessage     string
	SuccessMessage   string
}

// PublicBooking drives the unauthenticated booking page for one
// workspace. Slot lists refresh whenever the service or date changes.
type PublicBooking struct {
	client      *api.Client
	workspaceID string

	mu    sync.Mutex
	state PublicBookingState
}

func NewPublicBooking(client *api.Client, workspaceID string) *PublicBooking {
	return &PublicBooking{
		client:      client,
		workspaceID: workspaceID,
		state: PublicBookingState{
			Date:         localDateKey(time.Now()),
			SlotTimezone: "UTC",
			FieldValues:  map[string]any{},
		},
	}
}

func localDateKey(now time.Time) string {
	return now.Format("2006-01-02")
}

// State returns a deep-copied snapshot.
func (p *PublicBooking) State() PublicBookingState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.copyStateLocked()
}

func (p *PublicBooking) copyStateLocked() PublicBookingState {
	out := p.state
	out.Services = append([]domain.Service(nil), p.state.Services...)
	out.Slots = append([]domain.Slot(nil), p.state.Slots...)
	out.FieldValues = make(map[string]any, len(p.state.FieldValues))
	for k, v := range p.state.FieldValues {
		out.FieldValues[k] = v
	}
	out.FlowConfig.Booking.Fields = append([]domain.PublicFieldConfig(nil), p.state.FlowConfig.Booking.Fields...)
	out.FlowConfig.Contact.Fields = append([]domain.PublicFieldConfig(nil), p.state.FlowConfig.Contact.Fields...)
	return out
}

// Load fetches services and the public flow config together, selects the
// first service, and loads its slots for today.
func (p *PublicBooking) Load(ctx context.Context) {
	var (
		wg       sync.WaitGroup
		services []domain.Service
		config   *domain.PublicFlowConfig
		errs     [2]error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		services, errs[0] = p.client.PublicServices(ctx, p.workspaceID)
	}()
	go func() {
		defer wg.Done()
		config, errs[1] = p.client.PublicFlowConfig(ctx, p.workspaceID)
	}()
	wg.Wait()

	if errs[0] != nil || errs[1] != nil {
		p.mu.Lock()
		p.state.Services = nil
		p.state.SelectedService = ""
		p.state.Slots = nil
		p.state.SelectedStartsAt = ""
		p.state.ErrorMessage = msgBookingOptionsFailed
		p.mu.Unlock()
		return
	}

	date := localDateKey(time.Now())
	p.mu.Lock()
	p.state.Services = services
	p.state.FlowConfig = *config
	p.state.Date = date
	p.state.ErrorMessage = ""
	if len(services) > 0 {
		p.state.SelectedService = services[0].ID
	} else {
		p.state.SelectedService = ""
	}
	selected := p.state.SelectedService
	p.mu.Unlock()

	if selected != "" {
		p.loadSlots(ctx, selected, date)
	}
}

func (p *PublicBooking) loadSlots(ctx context.Context, serviceID, date string) {
	if serviceID == "" || date == "" {
		return
	}
	p.mu.Lock()
	p.state.SlotLoading = true
	p.mu.Unlock()

	payload, err := p.client.PublicSlots(ctx, p.workspaceID, serviceID, date)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.state.SlotLoading = false
	if err != nil {
		p.state.Slots = nil
		p.state.SelectedStartsAt = ""
		p.state.ErrorMessage = msgSlotsFailed
		return
	}
	if payload.Timezone != "" {
		p.state.SlotTimezone = payload.Timezone
	}
	p.state.Slots = payload.Slots
	p.state.SelectedStartsAt = ""
	if len(payload.Slots) > 0 {
		p.state.SelectedStartsAt = payload.Slots[0].StartsAt
	}
	p.state.ErrorMessage = ""
}

// SelectService switches the active service and reloads its slots.
func (p *PublicBooking) SelectService(ctx context.Context, serviceID string) {
	p.mu.Lock()
	p.state.SelectedService = serviceID
	p.state.ErrorMessage = ""
	p.state.SuccessMessage = ""
	date := p.state.Date
	p.mu.Unlock()
	p.loadSlots(ctx, serviceID, date)
}

// SelectDate switches the date and reloads slots for the active service.
func (p *PublicBooking) SelectDate(ctx context.Context, date string) {
	p.mu.Lock()
	p.state.Date = date
	p.state.ErrorMessage = ""
	p.state.SuccessMessage = ""
	serviceID := p.state.SelectedService
	p.mu.Unlock()
	p.loadSlots(ctx, serviceID, date)
}

// SelectSlot picks a start time from the loaded slot list.
func (p *PublicBooking) SelectSlot(startsAt string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state.SelectedStartsAt = startsAt
	p.state.ErrorMessage = ""
	p.state.SuccessMessage = ""
}

// SetFieldValue records one configured field's answer.
func (p *PublicBooking) SetFieldValue(key string, value any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state.FieldValues[key] = value
	p.state.ErrorMessage = ""
	p.state.SuccessMessage = ""
}

// missingRequiredField returns the first required configured field whose
// collected value is absent, blank, or false.
func missingRequiredField(fields []domain.PublicFieldConfig, values map[string]any) *domain.PublicFieldConfig {
	for i, field := range fields {
		if !field.Required {
			continue
		}
		value, ok := values[field.Key]
		if !ok || value == nil {
			return &fields[i]
		}
		switch v := value.(type) {
		case bool:
			if !v {
				return &fields[i]
			}
		case string:
			if strings.TrimSpace(v) == "" {
				return &fields[i]
			}
		}
	}
	return nil
}

// collectConfiguredValues keeps only answers whose key is configured.
func collectConfiguredValues(fields []domain.PublicFieldConfig, values map[string]any) map[string]any {
	out := map[string]any{}
	for _, field := range fields {
		if value, ok := values[field.Key]; ok {
			out[field.Key] = value
		}
	}
	return out
}

// Submit validates locally, then creates the booking under an idempotency
// key. Success clears the collected answers and surfaces the optional
// follow-up form token.
func (p *PublicBooking) Submit(ctx context.Context) {
	p.mu.Lock()
	if p.state.SelectedService == "" || p.state.SelectedStartsAt == "" {
		p.state.ErrorMessage = msgSlotSelectionMissing
		p.mu.Unlock()
		return
	}
	submission := collectConfiguredValues(p.state.FlowConfig.Booking.Fields, p.state.FieldValues)
	if missing := missingRequiredField(p.state.FlowConfig.Booking.Fields, submission); missing != nil {
		p.state.ErrorMessage = missing.Label + " is required."
		p.mu.Unlock()
		return
	}
	req := domain.PublicBookingRequest{
		ServiceID: p.state.SelectedService,
		StartsAt:  p.state.SelectedStartsAt,
		Fields:    submission,
	}
	p.state.Loading = true
	p.state.ErrorMessage = ""
	p.state.SuccessMessage = ""
	p.mu.Unlock()

	result, err := p.client.CreatePublicBooking(ctx, p.workspaceID, req)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.state.Loading = false
	if err != nil {
		p.state.ErrorMessage = msgBookingSubmitFailed
		return
	}
	tokenHint := ""
	if result.FormRequest != nil && result.FormRequest.PublicToken != "" {
		tokenHint = " Form token: " + result.FormRequest.PublicToken
	}
	p.state.FieldValues = map[string]any{}
	p.state.SuccessMessage = "Booking submitted successfully." + tokenHint
}
