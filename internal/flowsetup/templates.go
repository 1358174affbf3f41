package flowsetup

import (
	"context"
	"strings"

	"github.com/erinpaul2002/careops-console/internal/domain"
)

func templateEditsFromTemplates(templates []domain.FormTemplate) map[string]TemplateEdit {
	edits := make(map[string]TemplateEdit, len(templates))
	for _, template := range templates {
		edits[template.ID] = TemplateEdit{
			Name:   template.Name,
			Fields: templateFieldsToDrafts(template.Fields),
		}
	}
	return edits
}

func (e *Editor) resolveTemplateEditLocked(templateID string) TemplateEdit {
	if edit, ok := e.state.TemplateEdits[templateID]; ok {
		return edit
	}
	for _, template := range e.state.Templates {
		if template.ID == templateID {
			return TemplateEdit{
				Name:   template.Name,
				Fields: templateFieldsToDrafts(template.Fields),
			}
		}
	}
	return TemplateEdit{
		Fields: enforceRequiredCoreFields([]FieldDraft{newEmptyFieldDraft()}),
	}
}

// SetTemplateDraftName updates the new-template name input.
func (e *Editor) SetTemplateDraftName(name string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.state.TemplateDraft.Name = name
}

// ChangeTemplateDraftField edits one field row of the new-template form.
func (e *Editor) ChangeTemplateDraftField(fieldID string, attr FieldAttr, value string, flag bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.state.TemplateDraft.Fields = applyFieldChange(e.state.TemplateDraft.Fields, fieldID, attr, value, flag)
}

// AddTemplateDraftField appends an empty row to the new-template form.
func (e *Editor) AddTemplateDraftField() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.state.TemplateDraft.Fields = enforceRequiredCoreFields(
		append(e.state.TemplateDraft.Fields, newEmptyFieldDraft()),
	)
}

// RemoveTemplateDraftField drops a row from the new-template form. The
// core name and email rows cannot be removed.
func (e *Editor) RemoveTemplateDraftField(fieldID string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.state.TemplateDraft.Fields = removeFieldDraft(e.state.TemplateDraft.Fields, fieldID, true)
}

func removeFieldDraft(fields []FieldDraft, fieldID string, padEmpty bool) []FieldDraft {
	for _, field := range fields {
		if field.ID == fieldID && isRequiredCoreField(field) {
			return fields
		}
	}
	remaining := fields[:0:0]
	for _, field := range fields {
		if field.ID != fieldID {
			remaining = append(remaining, field)
		}
	}
	if padEmpty && len(remaining) == 0 {
		remaining = []FieldDraft{newEmptyFieldDraft()}
	}
	return enforceRequiredCoreFields(remaining)
}

// CreateTemplate validates and posts the new-template form.
func (e *Editor) CreateTemplate(ctx context.Context) {
	e.mu.Lock()
	name := strings.TrimSpace(e.state.TemplateDraft.Name)
	fields := draftsToTemplateFields(e.state.TemplateDraft.Fields)
	e.mu.Unlock()

	if name == "" || len(fields) == 0 {
		e.setError(msgTemplateInvalid)
		return
	}

	e.mu.Lock()
	e.state.CreatingTemplate = true
	e.state.ErrorMessage = ""
	e.state.Notice = ""
	e.mu.Unlock()

	created, err := e.client.CreateFormTemplate(ctx, domain.FormTemplateCreate{
		Name:   name,
		Fields: fields,
	})

	e.mu.Lock()
	defer e.mu.Unlock()
	e.state.CreatingTemplate = false
	if err != nil {
		e.state.ErrorMessage = errorMessage(err, "Could not create template.")
		return
	}
	e.state.Templates = append(e.state.Templates, *created)
	e.state.TemplateEdits = templateEditsFromTemplates(e.state.Templates)
	e.state.TemplateDraft = newTemplateDraft()
	e.state.Notice = msgTemplateCreated
}

// SetTemplateEditName updates the inline name edit for a template.
func (e *Editor) SetTemplateEditName(templateID, name string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	edit := e.resolveTemplateEditLocked(templateID)
	edit.Name = name
	e.state.TemplateEdits[templateID] = edit
}

// ChangeTemplateEditField edits one field row of a template's inline
// edit state.
func (e *Editor) ChangeTemplateEditField(templateID, fieldID string, attr FieldAttr, value string, flag bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	edit := e.resolveTemplateEditLocked(templateID)
	edit.Fields = applyFieldChange(edit.Fields, fieldID, attr, value, flag)
	e.state.TemplateEdits[templateID] = edit
}

// AddTemplateEditField appends an empty row to a template's inline edit
// state.
func (e *Editor) AddTemplateEditField(templateID string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	edit := e.resolveTemplateEditLocked(templateID)
	edit.Fields = enforceRequiredCoreFields(append(edit.Fields, newEmptyFieldDraft()))
	e.state.TemplateEdits[templateID] = edit
}

// RemoveTemplateEditField drops a row from a template's inline edit
// state. Core rows cannot be removed.
func (e *Editor) RemoveTemplateEditField(templateID, fieldID string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	edit := e.resolveTemplateEditLocked(templateID)
	edit.Fields = removeFieldDraft(edit.Fields, fieldID, true)
	e.state.TemplateEdits[templateID] = edit
}

// SaveTemplate validates and patches a template's inline edit state.
func (e *Editor) SaveTemplate(ctx context.Context, templateID string) {
	e.mu.Lock()
	edit := e.resolveTemplateEditLocked(templateID)
	e.mu.Unlock()

	name := strings.TrimSpace(edit.Name)
	fields := draftsToTemplateFields(edit.Fields)
	if name == "" || len(fields) == 0 {
		e.setError(msgTemplateInvalid)
		return
	}

	e.mu.Lock()
	e.state.MutatingTemplateID = templateID
	e.state.ErrorMessage = ""
	e.state.Notice = ""
	e.mu.Unlock()

	updated, err := e.client.PatchFormTemplate(ctx, templateID, domain.FormTemplatePatch{
		Name:   &name,
		Fields: &fields,
	})

	e.mu.Lock()
	defer e.mu.Unlock()
	e.state.MutatingTemplateID = ""
	if err != nil {
		e.state.ErrorMessage = errorMessage(err, "Could not update template.")
		return
	}
	for i := range e.state.Templates {
		if e.state.Templates[i].ID == templateID {
			e.state.Templates[i] = *updated
		}
	}
	e.state.TemplateEdits = templateEditsFromTemplates(e.state.Templates)
	e.state.Notice = msgTemplateUpdated
}

// DeleteTemplate removes a template and clears any service trigger that
// pointed at it, mirroring the cascade the backend applies.
func (e *Editor) DeleteTemplate(ctx context.Context, templateID string) {
	e.mu.Lock()
	e.state.MutatingTemplateID = templateID
	e.state.ErrorMessage = ""
	e.state.Notice = ""
	e.mu.Unlock()

	err := e.client.DeleteFormTemplate(ctx, templateID)

	e.mu.Lock()
	defer e.mu.Unlock()
	e.state.MutatingTemplateID = ""
	if err != nil {
		e.state.ErrorMessage = errorMessage(err, "Could not delete template.")
		return
	}
	templates := e.state.Templates[:0:0]
	for _, template := range e.state.Templates {
		if template.ID != templateID {
			templates = append(templates, template)
		}
	}
	for i := range e.state.Services {
		if e.state.Services[i].BookingFormTemplateID == templateID {
			e.state.Services[i].BookingFormTemplateID = ""
		}
	}
	e.state.Templates = templates
	e.state.ServiceEdits = serviceEditsFromServices(e.state.Services)
	e.state.TemplateEdits = templateEditsFromTemplates(templates)
	e.state.Notice = msgTemplateDeleted
}
