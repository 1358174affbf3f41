package flowsetup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erinpaul2002/careops-console/internal/domain"
)

func TestToFieldKey(t *testing.T) {
	assert.Equal(t, "preferred_contact_time", toFieldKey("Preferred Contact Time"))
	assert.Equal(t, "phone_2", toFieldKey("  Phone #2 "))
	assert.Equal(t, "e_mail", toFieldKey("E-MAIL"))
	assert.Equal(t, "field", toFieldKey(""))
	assert.Equal(t, "field", toFieldKey("!!!"))
}

func TestEnforceRequiredCoreFieldsAppendsMissing(t *testing.T) {
	fields := enforceRequiredCoreFields([]FieldDraft{
		{ID: "f-1", Label: "Notes", Key: "notes", Type: "textarea"},
	})

	require.Len(t, fields, 3)
	assert.Equal(t, "name", fields[1].Key)
	assert.True(t, fields[1].Required)
	assert.Equal(t, "email", fields[2].Key)
	assert.Equal(t, "email", fields[2].Type)
	assert.True(t, fields[2].Required)
}

func TestEnforceRequiredCoreFieldsPinsExisting(t *testing.T) {
	fields := enforceRequiredCoreFields([]FieldDraft{
		{ID: "f-1", Label: "Your Email", Key: "Email", Type: "text", Required: false},
		{ID: "f-2", Label: "", Key: "name", Type: "", Required: false},
	})

	require.Len(t, fields, 2)
	assert.Equal(t, "email", fields[0].Key)
	assert.Equal(t, "email", fields[0].Type)
	assert.Equal(t, "Your Email", fields[0].Label)
	assert.True(t, fields[0].Required)
	assert.Equal(t, "Name", fields[1].Label)
	assert.Equal(t, "text", fields[1].Type)
	assert.True(t, fields[1].Required)
}

func TestApplyFieldChangeLabelTracksKey(t *testing.T) {
	fields := []FieldDraft{{ID: "f-1", Label: "Phone", Key: "phone", Type: "text"}}

	fields = applyFieldChange(fields, "f-1", FieldLabel, "Mobile Phone", false)
	assert.Equal(t, "mobile_phone", fields[0].Key)

	// A manual key stops tracking the label.
	fields = applyFieldChange(fields, "f-1", FieldKey, "cell", false)
	fields = applyFieldChange(fields, "f-1", FieldLabel, "Cell Phone", false)
	assert.Equal(t, "cell", fields[0].Key)
	assert.Equal(t, "Cell Phone", fields[0].Label)
}

func TestApplyFieldChangeProtectsCoreFields(t *testing.T) {
	fields := []FieldDraft{{ID: "f-1", Label: "Email", Key: "email", Type: "email", Required: true}}

	fields = applyFieldChange(fields, "f-1", FieldRequired, "", false)
	assert.True(t, fields[0].Required)

	fields = applyFieldChange(fields, "f-1", FieldType, "text", false)
	assert.Equal(t, "email", fields[0].Type)

	fields = applyFieldChange(fields, "f-1", FieldKey, "contact_email", false)
	assert.Equal(t, "email", fields[0].Key)

	// Label edits stay allowed on core fields.
	fields = applyFieldChange(fields, "f-1", FieldLabel, "Work Email", false)
	assert.Equal(t, "Work Email", fields[0].Label)
}

func TestApplyFieldChangeUnknownIDIsNoop(t *testing.T) {
	fields := []FieldDraft{{ID: "f-1", Label: "Notes", Key: "notes"}}
	out := applyFieldChange(fields, "missing", FieldLabel, "Other", false)
	assert.Equal(t, fields, out)
}

func TestDraftsToPublicFlowFieldsDropsBlanksAndDuplicates(t *testing.T) {
	mapped := draftsToPublicFlowFields([]FieldDraft{
		{ID: "f-1", Label: "Name", Key: "name", Type: "text", Required: true},
		{ID: "f-2", Label: "Email", Key: "email", Type: "email", Required: true},
		{ID: "f-3", Label: "Phone", Key: "phone", Type: "text"},
		{ID: "f-4", Label: "Phone Again", Key: "phone", Type: "text"},
		{ID: "f-5", Label: "", Key: "orphan"},
	})

	require.Len(t, mapped, 3)
	assert.Equal(t, "name", mapped[0].Key)
	assert.Equal(t, "email", mapped[1].Key)
	assert.Equal(t, "phone", mapped[2].Key)
	assert.Equal(t, "Phone", mapped[2].Label)
}

func TestDraftsToTemplateFieldsSynthesizesLabels(t *testing.T) {
	mapped := draftsToTemplateFields([]FieldDraft{
		{ID: "f-1", Label: "Name", Key: "name", Type: "text", Required: true},
		{ID: "f-2", Label: "Email", Key: "email", Type: "email", Required: true},
		{ID: "f-3", Label: "", Key: "insurance_card", Type: "file"},
	})

	require.Len(t, mapped, 3)
	assert.Equal(t, "insurance_card", mapped[2].Key)
	assert.Equal(t, "Field 3", mapped[2].Label)
	assert.Equal(t, "file", mapped[2].Type)
}

func TestPublicFlowFieldsToDraftsRoundTrip(t *testing.T) {
	source := []domain.PublicFieldConfig{
		{Key: "name", Label: "Name", Type: "text", Required: true},
		{Key: "email", Label: "Email", Type: "email", Required: true},
		{Key: "reason", Label: "Reason for visit", Type: "textarea"},
	}

	drafts := publicFlowFieldsToDrafts(source)
	require.Len(t, drafts, 3)
	for _, draft := range drafts {
		assert.NotEmpty(t, draft.ID)
	}

	assert.Equal(t, source, draftsToPublicFlowFields(drafts))
}
