package domain

import "sort"

// FormRequestStatus of a post-booking intake form.
type FormRequestStatus string

const (
	FormRequestPending   FormRequestStatus = "pending"
	FormRequestCompleted FormRequestStatus = "completed"
	FormRequestOverdue   FormRequestStatus = "overdue"
)

// FormTemplateField is one field definition inside a template. Older
// templates used name instead of key/label, so both survive on the wire.
type FormTemplateField struct {
	Key         string `json:"key,omitempty"`
	Name        string `json:"name,omitempty"`
	Label       string `json:"label,omitempty"`
	Type        string `json:"type,omitempty"`
	Required    bool   `json:"required,omitempty"`
	Placeholder string `json:"placeholder,omitempty"`
}

// FormTemplate is a reusable intake form definition.
type FormTemplate struct {
	ID       string              `json:"id"`
	Name     string              `json:"name"`
	Fields   []FormTemplateField `json:"fields"`
	Trigger  string              `json:"trigger,omitempty"`
	IsActive bool                `json:"isActive,omitempty"`
}

// FormTemplateCreate is the new-template payload.
type FormTemplateCreate struct {
	Name     string              `json:"name" validate:"required"`
	Fields   []FormTemplateField `json:"fields" validate:"required,min=1"`
	IsActive *bool               `json:"isActive,omitempty"`
}

// FormTemplatePatch updates a subset of template fields.
type FormTemplatePatch struct {
	Name     *string              `json:"name,omitempty"`
	Fields   *[]FormTemplateField `json:"fields,omitempty"`
	IsActive *bool                `json:"isActive,omitempty"`
}

// FormRequest tracks one issued form and its submission state.
type FormRequest struct {
	ID          string            `json:"id"`
	WorkspaceID string            `json:"workspaceId,omitempty"`
	BookingID   string            `json:"bookingId,omitempty"`
	ContactID   string            `json:"contactId,omitempty"`
	TemplateID  string            `json:"templateId,omitempty"`
	PublicToken string            `json:"publicToken,omitempty"`
	Status      FormRequestStatus `json:"status"`
	DueAt       string            `json:"dueAt"`
	CompletedAt string            `json:"completedAt,omitempty"`
	Submission  map[string]any    `json:"submission,omitempty"`
	CreatedAt   string            `json:"createdAt,omitempty"`
	UpdatedAt   string            `json:"updatedAt,omitempty"`
	Contact     *Contact          `json:"contact,omitempty"`
	Booking     *Booking          `json:"booking,omitempty"`
	Template    *FormTemplate     `json:"template,omitempty"`
}

// SubmittedFile is an attachment pulled out of a submission payload,
// tagged with the field it answered.
type SubmittedFile struct {
	FieldKey string
	UploadedFormFile
}

// SubmittedFiles extracts uploaded attachments from the submission
// answers. File answers arrive as JSON objects carrying the storage
// key and the original file name; everything else is skipped.
func (r FormRequest) SubmittedFiles() []SubmittedFile {
	var files []SubmittedFile
	for field, value := range r.Submission {
		obj, ok := value.(map[string]any)
		if !ok {
			continue
		}
		key, _ := obj["key"].(string)
		name, _ := obj["fileName"].(string)
		if key == "" || name == "" {
			continue
		}
		file := SubmittedFile{FieldKey: field}
		file.Key = key
		file.FileName = name
		file.ContentType, _ = obj["contentType"].(string)
		if size, ok := obj["size"].(float64); ok {
			file.Size = int64(size)
		}
		files = append(files, file)
	}
	sort.Slice(files, func(i, j int) bool { return files[i].FieldKey < files[j].FieldKey })
	return files
}

// PublicForm is the tokenized public view of a pending form request.
type PublicForm struct {
	FormRequest struct {
		ID     string            `json:"id"`
		Status FormRequestStatus `json:"status"`
		DueAt  string            `json:"dueAt"`
	} `json:"formRequest"`
	Template FormTemplate `json:"template"`
}

// PublicFormSubmission is the acknowledgement for a submitted form.
type PublicFormSubmission struct {
	FormRequestID string `json:"formRequestId"`
	Status        string `json:"status"`
	CompletedAt   string `json:"completedAt"`
}

// UploadedFormFile is the client-side record of a completed attachment
// upload, stored as the field value.
type UploadedFormFile struct {
	Key         string `json:"key"`
	FileName    string `json:"fileName"`
	ContentType string `json:"contentType"`
	Size        int64  `json:"size"`
}

// FileUploadTicket is a presigned upload slot for a form attachment.
type FileUploadTicket struct {
	Key                 string   `json:"key"`
	UploadURL           string   `json:"uploadUrl"`
	ExpiresInSeconds    int      `json:"expiresInSeconds"`
	MaxSizeBytes        int64    `json:"maxSizeBytes"`
	AllowedContentTypes []string `json:"allowedContentTypes"`
}

// FileUploadRequest asks the backend for a presigned upload slot.
type FileUploadRequest struct {
	FieldKey    string `json:"fieldKey" validate:"required"`
	FileName    string `json:"fileName" validate:"required"`
	ContentType string `json:"contentType" validate:"required"`
	Size        int64  `json:"size" validate:"gt=0"`
}

// FileDownloadTicket is a presigned download link for a stored attachment.
type FileDownloadTicket struct {
	Key              string `json:"key"`
	DownloadURL      string `json:"downloadUrl"`
	ExpiresInSeconds int    `json:"expiresInSeconds"`
}
