package console

import (
	"context"
	"sync"

	"github.com/erinpaul2002/careops-console/internal/api"
	"github.com/erinpaul2002/careops-console/internal/domain"
)

const (
	msgContactConfigFailed = "Unable to load contact form settings."
	msgContactSubmitFailed = "Could not submit contact request right now."
	msgContactSubmitted    = "Thanks. Your message was sent successfully."
)

// PublicContactState is the visitor contact page snapshot.
type PublicContactState struct {
	FieldValues    map[string]any
	FlowConfig     domain.PublicFlowConfig
	Loading        bool
	ErrorMessage   string
	SuccessMessage string
}

// PublicContact drives the unauthenticated contact form for one workspace.
type PublicContact struct {
	client      *api.Client
	workspaceID string

	mu    sync.Mutex
	state PublicContactState
}

func NewPublicContact(client *api.Client, workspaceID string) *PublicContact {
	return &PublicContact{
		client:      client,
		workspaceID: workspaceID,
		state:       PublicContactState{FieldValues: map[string]any{}},
	}
}

func (p *PublicContact) State() PublicContactState {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := p.state
	out.FieldValues = make(map[string]any, len(p.state.FieldValues))
	for k, v := range p.state.FieldValues {
		out.FieldValues[k] = v
	}
	out.FlowConfig.Booking.Fields = append([]domain.PublicFieldConfig(nil), p.state.FlowConfig.Booking.Fields...)
	out.FlowConfig.Contact.Fields = append([]domain.PublicFieldConfig(nil), p.state.FlowConfig.Contact.Fields...)
	return out
}

// Load fetches the public flow config that defines the contact fields.
func (p *PublicContact) Load(ctx context.Context) {
	config, err := p.client.PublicFlowConfig(ctx, p.workspaceID)

	p.mu.Lock()
	defer p.mu.Unlock()
	if err != nil {
		p.state.ErrorMessage = msgContactConfigFailed
		return
	}
	p.state.FlowConfig = *config
}

// SetFieldValue records one configured field's answer.
func (p *PublicContact) SetFieldValue(key string, value any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state.FieldValues[key] = value
	p.state.ErrorMessage = ""
	p.state.SuccessMessage = ""
}

// Submit validates the configured required fields locally, then posts the
// contact request. Success clears the collected answers.
func (p *PublicContact) Submit(ctx context.Context) {
	p.mu.Lock()
	submission := collectConfiguredValues(p.state.FlowConfig.Contact.Fields, p.state.FieldValues)
	if missing := missingRequiredField(p.state.FlowConfig.Contact.Fields, submission); missing != nil {
		p.state.ErrorMessage = missing.Label + " is required."
		p.mu.Unlock()
		return
	}
	p.state.Loading = true
	p.state.ErrorMessage = ""
	p.state.SuccessMessage = ""
	p.mu.Unlock()

	_, err := p.client.SubmitPublicContact(ctx, p.workspaceID, domain.PublicContactRequest{
		Fields: submission,
	})

	p.mu.Lock()
	defer p.mu.Unlock()
	p.state.Loading = false
	if err != nil {
		p.state.ErrorMessage = msgContactSubmitFailed
		return
	}
	p.state.FieldValues = map[string]any{}
	p.state.SuccessMessage = msgContactSubmitted
}
