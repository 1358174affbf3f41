package flowsetup

import (
	"context"
	"reflect"

	"github.com/erinpaul2002/careops-console/internal/domain"
)

// FlowCategory selects which public field list an edit targets.
type FlowCategory string

const (
	FlowBooking FlowCategory = "booking"
	FlowContact FlowCategory = "contact"
)

func (e *Editor) publicFlowFieldsLocked(category FlowCategory) []FieldDraft {
	if category == FlowContact {
		return e.state.PublicFlowFieldDrafts.Contact
	}
	return e.state.PublicFlowFieldDrafts.Booking
}

func (e *Editor) setPublicFlowFieldsLocked(category FlowCategory, fields []FieldDraft) {
	if category == FlowContact {
		e.state.PublicFlowFieldDrafts.Contact = fields
		return
	}
	e.state.PublicFlowFieldDrafts.Booking = fields
}

// ChangePublicFlowField edits one field row of a public flow draft.
func (e *Editor) ChangePublicFlowField(category FlowCategory, fieldID string, attr FieldAttr, value string, flag bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	fields := applyFieldChange(e.publicFlowFieldsLocked(category), fieldID, attr, value, flag)
	e.setPublicFlowFieldsLocked(category, fields)
}

// AddPublicFlowField appends an empty row to a public flow draft.
func (e *Editor) AddPublicFlowField(category FlowCategory) {
	e.mu.Lock()
	defer e.mu.Unlock()
	fields := append(e.publicFlowFieldsLocked(category), newEmptyFieldDraft())
	e.setPublicFlowFieldsLocked(category, fields)
}

// RemovePublicFlowField drops a row from a public flow draft. Core rows
// cannot be removed.
func (e *Editor) RemovePublicFlowField(category FlowCategory, fieldID string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	fields := removeFieldDraft(e.publicFlowFieldsLocked(category), fieldID, false)
	e.setPublicFlowFieldsLocked(category, fields)
}

// PublicFlowDirty reports whether the drafts would produce a different
// configuration than the one last saved.
func (e *Editor) PublicFlowDirty() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	next := domain.PublicFlowConfig{
		Booking: domain.PublicFieldList{Fields: draftsToPublicFlowFields(e.state.PublicFlowFieldDrafts.Booking)},
		Contact: domain.PublicFieldList{Fields: draftsToPublicFlowFields(e.state.PublicFlowFieldDrafts.Contact)},
	}
	return !reflect.DeepEqual(next, e.state.PublicFlowConfig)
}

// SavePublicFlowConfig maps both draft lists to wire fields and writes
// the full configuration, then rebuilds the drafts from the response.
func (e *Editor) SavePublicFlowConfig(ctx context.Context) {
	e.mu.Lock()
	next := domain.PublicFlowConfig{
		Booking: domain.PublicFieldList{Fields: draftsToPublicFlowFields(e.state.PublicFlowFieldDrafts.Booking)},
		Contact: domain.PublicFieldList{Fields: draftsToPublicFlowFields(e.state.PublicFlowFieldDrafts.Contact)},
	}
	e.state.SavingPublicFlowConfig = true
	e.state.ErrorMessage = ""
	e.state.Notice = ""
	e.mu.Unlock()

	updated, err := e.client.PatchWorkspacePublicFlowConfig(ctx, next)

	e.mu.Lock()
	defer e.mu.Unlock()
	e.state.SavingPublicFlowConfig = false
	if err != nil {
		e.state.ErrorMessage = errorMessage(err, "Could not save public field configuration.")
		return
	}
	e.state.PublicFlowConfig = *updated
	e.state.PublicFlowFieldDrafts = PublicFlowDrafts{
		Booking: publicFlowFieldsToDrafts(updated.Booking.Fields),
		Contact: publicFlowFieldsToDrafts(updated.Contact.Fields),
	}
	e.state.Notice = msgPublicConfigSaved
}
