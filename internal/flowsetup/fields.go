package flowsetup

import (
	"fmt"
	"regexp"
	"strings"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/erinpaul2002/careops-console/internal/domain"
)

// FieldDraft is one editable field row. Values stay as entered; they are
// normalized only when mapped back to a wire payload.
type FieldDraft struct {
	ID          string
	Label       string
	Key         string
	Type        string
	Required    bool
	Placeholder string
}

var (
	nonAlnum       = regexp.MustCompile(`[^a-z0-9]+`)
	fieldIDCounter atomic.Int64
)

func newFieldID() string {
	id, err := uuid.NewRandom()
	if err != nil {
		return fmt.Sprintf("field-%d", fieldIDCounter.Add(1))
	}
	return id.String()
}

func toFieldKey(label string) string {
	normalized := normalizeFieldKey(label)
	if normalized == "" {
		return "field"
	}
	return normalized
}

func normalizeFieldKey(value string) string {
	lowered := strings.ToLower(strings.TrimSpace(value))
	return strings.Trim(nonAlnum.ReplaceAllString(lowered, "_"), "_")
}

func newEmptyFieldDraft() FieldDraft {
	return FieldDraft{
		ID:   newFieldID(),
		Type: "text",
	}
}

type coreField struct {
	key   string
	label string
	typ   string
}

// requiredCoreFields are the two inputs every public or intake form must
// carry so leads stay reachable.
var requiredCoreFields = []coreField{
	{key: "name", label: "Name", typ: "text"},
	{key: "email", label: "Email", typ: "email"},
}

// enforceRequiredCoreFields appends any missing core field and pins the
// existing ones to required with their canonical key and type.
func enforceRequiredCoreFields(drafts []FieldDraft) []FieldDraft {
	normalized := append([]FieldDraft(nil), drafts...)
	byKey := make(map[string]int, len(normalized))
	for i, field := range normalized {
		if key := normalizeFieldKey(field.Key); key != "" {
			byKey[key] = i
		}
	}

	for _, core := range requiredCoreFields {
		index, ok := byKey[core.key]
		if !ok {
			normalized = append(normalized, FieldDraft{
				ID:       newFieldID(),
				Key:      core.key,
				Label:    core.label,
				Type:     core.typ,
				Required: true,
			})
			continue
		}
		current := normalized[index]
		current.Key = core.key
		if strings.TrimSpace(current.Label) == "" {
			current.Label = core.label
		} else {
			current.Label = strings.TrimSpace(current.Label)
		}
		if core.key == "email" {
			current.Type = "email"
		} else if current.Type == "" {
			current.Type = core.typ
		}
		current.Required = true
		normalized[index] = current
	}

	return normalized
}

func isRequiredCoreField(field FieldDraft) bool {
	key := normalizeFieldKey(field.Key)
	return key == "name" || key == "email"
}

// FieldAttr names the editable attributes of a field draft.
type FieldAttr string

const (
	FieldLabel       FieldAttr = "label"
	FieldKey         FieldAttr = "key"
	FieldType        FieldAttr = "type"
	FieldRequired    FieldAttr = "required"
	FieldPlaceholder FieldAttr = "placeholder"
)

// applyFieldChange edits one draft in place. Core fields refuse key,
// type, and required edits; a label edit re-derives the key while the
// key still tracks the label.
func applyFieldChange(fields []FieldDraft, fieldID string, attr FieldAttr, value string, flag bool) []FieldDraft {
	out := append([]FieldDraft(nil), fields...)
	for i, item := range out {
		if item.ID != fieldID {
			continue
		}
		if isRequiredCoreField(item) && (attr == FieldKey || attr == FieldType || attr == FieldRequired) {
			item.Required = true
			if normalizeFieldKey(item.Key) == "email" {
				item.Type = "email"
			}
			out[i] = item
			return out
		}
		switch attr {
		case FieldLabel:
			canAutoKey := item.Key == "" || item.Key == toFieldKey(item.Label)
			item.Label = value
			if canAutoKey {
				item.Key = toFieldKey(value)
			}
		case FieldKey:
			item.Key = value
		case FieldType:
			item.Type = value
		case FieldRequired:
			item.Required = flag
		case FieldPlaceholder:
			item.Placeholder = value
		}
		out[i] = item
		return out
	}
	return out
}

func publicFlowFieldsToDrafts(fields []domain.PublicFieldConfig) []FieldDraft {
	drafts := make([]FieldDraft, 0, len(fields))
	for _, field := range fields {
		fieldType := field.Type
		if fieldType == "" {
			fieldType = "text"
		}
		drafts = append(drafts, FieldDraft{
			ID:          newFieldID(),
			Label:       field.Label,
			Key:         field.Key,
			Type:        fieldType,
			Required:    field.Required,
			Placeholder: field.Placeholder,
		})
	}
	return enforceRequiredCoreFields(drafts)
}

// draftsToPublicFlowFields maps drafts back to config fields, dropping
// unlabeled rows and duplicate keys.
func draftsToPublicFlowFields(drafts []FieldDraft) []domain.PublicFieldConfig {
	source := enforceRequiredCoreFields(drafts)
	seen := make(map[string]bool, len(source))
	mapped := make([]domain.PublicFieldConfig, 0, len(source))

	for i, draft := range source {
		label := strings.TrimSpace(draft.Label)
		key := strings.TrimSpace(draft.Key)
		if key == "" {
			key = toFieldKey(label)
		}
		if key == "" {
			key = fmt.Sprintf("field_%d", i+1)
		}
		if label == "" || seen[key] {
			continue
		}
		seen[key] = true
		fieldType := strings.TrimSpace(draft.Type)
		if fieldType == "" {
			fieldType = "text"
		}
		mapped = append(mapped, domain.PublicFieldConfig{
			Key:         key,
			Label:       label,
			Type:        fieldType,
			Required:    draft.Required,
			Placeholder: strings.TrimSpace(draft.Placeholder),
		})
	}
	return mapped
}

func templateFieldsToDrafts(fields []domain.FormTemplateField) []FieldDraft {
	drafts := make([]FieldDraft, 0, len(fields))
	for i, field := range fields {
		label := strings.TrimSpace(field.Label)
		if label == "" {
			label = strings.TrimSpace(field.Name)
		}
		if label == "" {
			label = fmt.Sprintf("Field %d", i+1)
		}
		key := strings.TrimSpace(field.Key)
		if key == "" {
			key = toFieldKey(label)
		}
		fieldType := strings.TrimSpace(field.Type)
		if fieldType == "" {
			fieldType = "text"
		}
		drafts = append(drafts, FieldDraft{
			ID:          newFieldID(),
			Label:       label,
			Key:         key,
			Type:        fieldType,
			Required:    field.Required,
			Placeholder: field.Placeholder,
		})
	}
	return enforceRequiredCoreFields(drafts)
}

// draftsToTemplateFields maps drafts to template fields, synthesizing
// labels for blank rows and dropping duplicate keys.
func draftsToTemplateFields(drafts []FieldDraft) []domain.FormTemplateField {
	source := enforceRequiredCoreFields(drafts)
	seen := make(map[string]bool, len(source))
	mapped := make([]domain.FormTemplateField, 0, len(source))

	for i, draft := range source {
		label := strings.TrimSpace(draft.Label)
		if label == "" {
			label = fmt.Sprintf("Field %d", i+1)
		}
		key := strings.TrimSpace(draft.Key)
		if key == "" {
			key = toFieldKey(label)
		}
		if key == "" {
			key = fmt.Sprintf("field_%d", i+1)
		}
		if seen[key] {
			continue
		}
		seen[key] = true
		fieldType := strings.TrimSpace(draft.Type)
		if fieldType == "" {
			fieldType = "text"
		}
		mapped = append(mapped, domain.FormTemplateField{
			Key:         key,
			Label:       label,
			Type:        fieldType,
			Required:    draft.Required,
			Placeholder: strings.TrimSpace(draft.Placeholder),
		})
	}
	return mapped
}
