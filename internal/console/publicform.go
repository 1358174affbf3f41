package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"sync"

	"github.com/erinpaul2002/careops-console/internal/api"
	"github.com/erinpaul2002/careops-console/internal/domain"
)

const (
	msgFormLoadFailed      = "Unable to load form request."
	msgFileTypeUnsupported = "Selected file type is not supported."
	msgFileUploadFailed    = "Could not upload file right now."
	msgUploadInFlight      = "Please wait for file upload to finish before submitting."
	msgFormRequiredMissing = "Fill all required fields before submitting."
	msgFormSubmitFailed    = "Could not submit form right now."
	msgFormSubmitted       = "Form submitted successfully."
)

// PublicFormState is the tokenized public form page snapshot.
type PublicFormState struct {
	Loading           bool
	Submitting        bool
	UploadingFieldKey string
	ErrorMessage      string
	SuccessMessage    string
	Payload           *domain.PublicForm
	Values            map[string]any
}

// PublicForm drives one tokenized form request: load, field answers,
// presigned attachment uploads, and the final submission.
type PublicForm struct {
	client *api.Client
	token  string

	mu    sync.Mutex
	state PublicFormState
}

func NewPublicForm(client *api.Client, token string) *PublicForm {
	return &PublicForm{
		client: client,
		token:  token,
		state: PublicFormState{
			Loading: true,
			Values:  map[string]any{},
		},
	}
}

func (p *PublicForm) State() PublicFormState {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := p.state
	if p.state.Payload != nil {
		payload := *p.state.Payload
		payload.Template.Fields = append([]domain.FormTemplateField(nil), p.state.Payload.Template.Fields...)
		out.Payload = &payload
	}
	out.Values = make(map[string]any, len(p.state.Values))
	for k, v := range p.state.Values {
		out.Values[k] = v
	}
	return out
}

// Load resolves the form request and its template from the token.
func (p *PublicForm) Load(ctx context.Context) {
	payload, err := p.client.PublicForm(ctx, p.token)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.state.Loading = false
	if err != nil {
		p.state.Payload = nil
		p.state.ErrorMessage = msgFormLoadFailed
		return
	}
	p.state.Payload = payload
	p.state.ErrorMessage = ""
}

// SetValue records one field answer.
func (p *PublicForm) SetValue(key string, value any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state.Values[key] = value
	p.state.ErrorMessage = ""
	p.state.SuccessMessage = ""
}

// ClearFile removes a previously uploaded attachment answer.
func (p *PublicForm) ClearFile(key string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.state.Values, key)
	p.state.ErrorMessage = ""
	p.state.SuccessMessage = ""
}

// UploadFile presigns, validates, and uploads one attachment, then stores
// the uploaded-file record as the field value. Only one upload runs at a
// time per form; Submit refuses while one is in flight.
func (p *PublicForm) UploadFile(ctx context.Context, key, fileName, contentType string, size int64, content io.Reader) {
	contentType = strings.ToLower(strings.TrimSpace(contentType))
	if contentType == "" {
		p.mu.Lock()
		p.state.ErrorMessage = msgFileTypeUnsupported
		p.state.SuccessMessage = ""
		p.mu.Unlock()
		return
	}

	p.mu.Lock()
	p.state.UploadingFieldKey = key
	p.state.ErrorMessage = ""
	p.state.SuccessMessage = ""
	p.mu.Unlock()

	uploaded, err := p.performUpload(ctx, key, fileName, contentType, size, content)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.state.UploadingFieldKey = ""
	if err != nil {
		p.state.ErrorMessage = msgFileUploadFailed
		return
	}
	p.state.Values[key] = *uploaded
}

func (p *PublicForm) performUpload(ctx context.Context, key, fileName, contentType string, size int64, content io.Reader) (*domain.UploadedFormFile, error) {
	ticket, err := p.client.CreatePublicFormFileUpload(ctx, p.token, domain.FileUploadRequest{
		FieldKey:    key,
		FileName:    fileName,
		ContentType: contentType,
		Size:        size,
	})
	if err != nil {
		return nil, err
	}
	if size > ticket.MaxSizeBytes {
		return nil, fmt.Errorf("file exceeds maximum upload size of %d bytes", ticket.MaxSizeBytes)
	}
	if len(ticket.AllowedContentTypes) > 0 && !slices.Contains(ticket.AllowedContentTypes, contentType) {
		return nil, errors.New("file content type not allowed")
	}
	if err := p.client.UploadToSignedURL(ctx, ticket.UploadURL, contentType, content); err != nil {
		return nil, err
	}
	return &domain.UploadedFormFile{
		Key:         ticket.Key,
		FileName:    fileName,
		ContentType: contentType,
		Size:        size,
	}, nil
}

// TemplateFieldKey resolves a template field's submission key, falling
// back from key to name to a snake_cased label. The view layer uses the
// same resolution when naming inputs.
func TemplateFieldKey(field domain.FormTemplateField) string {
	if field.Key != "" {
		return field.Key
	}
	if field.Name != "" {
		return field.Name
	}
	if field.Label != "" {
		return strings.Join(strings.Fields(strings.ToLower(field.Label)), "_")
	}
	return "field"
}

func isUploadedFile(value any) bool {
	switch value.(type) {
	case domain.UploadedFormFile, *domain.UploadedFormFile:
		return true
	}
	return false
}

// Submit validates required template fields locally and posts the answers
// under an idempotency key.
func (p *PublicForm) Submit(ctx context.Context) {
	p.mu.Lock()
	if p.state.Payload == nil {
		p.mu.Unlock()
		return
	}
	if p.state.UploadingFieldKey != "" {
		p.state.ErrorMessage = msgUploadInFlight
		p.mu.Unlock()
		return
	}

	fields := p.state.Payload.Template.Fields
	submission := map[string]any{}
	for _, field := range fields {
		key := TemplateFieldKey(field)
		value, ok := p.state.Values[key]
		if !ok {
			continue
		}
		switch value.(type) {
		case string, bool, domain.UploadedFormFile, *domain.UploadedFormFile:
			submission[key] = value
		}
	}

	for _, field := range fields {
		if !field.Required {
			continue
		}
		value := submission[TemplateFieldKey(field)]
		fieldType := strings.ToLower(field.Type)
		if fieldType == "" {
			fieldType = "text"
		}
		missing := false
		switch {
		case fieldType == "file":
			missing = !isUploadedFile(value)
		default:
			switch v := value.(type) {
			case bool:
				missing = !v
			case string:
				missing = strings.TrimSpace(v) == ""
			default:
				missing = true
			}
		}
		if missing {
			p.state.ErrorMessage = msgFormRequiredMissing
			p.mu.Unlock()
			return
		}
	}

	p.state.Submitting = true
	p.state.ErrorMessage = ""
	p.state.SuccessMessage = ""
	p.mu.Unlock()

	_, err := p.client.SubmitPublicForm(ctx, p.token, submission)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.state.Submitting = false
	if err != nil {
		p.state.ErrorMessage = msgFormSubmitFailed
		return
	}
	p.state.SuccessMessage = msgFormSubmitted
}
