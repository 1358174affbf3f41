package web

import (
	"net/http"
	"strconv"

	"github.com/erinpaul2002/careops-console/internal/domain"
	"github.com/erinpaul2002/careops-console/internal/flowsetup"
)

func (h *Handlers) setupPage(w http.ResponseWriter, r *http.Request) {
	h.setup.Load(r.Context(), true)
	h.renderAuthed(w, r, "setup", h.viewFor(h.sessionRole(), h.rolePath(""), h.setup.Snapshot()))
}

func (h *Handlers) setupServiceCreate(w http.ResponseWriter, r *http.Request) {
	h.setup.SetServiceDraft(flowsetup.ServiceDraft{
		Name:         r.PostFormValue("name"),
		DurationMin:  r.PostFormValue("durationMin"),
		LocationType: domain.LocationType(r.PostFormValue("locationType")),
	})
	h.setup.CreateService(r.Context())
	redirectBack(w, r, h.rolePath("/setup"))
}

func (h *Handlers) setupServiceToggle(w http.ResponseWriter, r *http.Request) {
	active := r.PostFormValue("active") == "true"
	h.setup.ToggleService(r.Context(), r.PostFormValue("serviceId"), active)
	redirectBack(w, r, h.rolePath("/setup"))
}

func (h *Handlers) setupServiceDelete(w http.ResponseWriter, r *http.Request) {
	h.setup.DeleteService(r.Context(), r.PostFormValue("serviceId"))
	redirectBack(w, r, h.rolePath("/setup"))
}

func (h *Handlers) setupServiceTemplate(w http.ResponseWriter, r *http.Request) {
	h.setup.SetServiceTemplate(r.Context(), r.PostFormValue("serviceId"), r.PostFormValue("templateId"))
	redirectBack(w, r, h.rolePath("/setup"))
}

func (h *Handlers) setupWeeklySave(w http.ResponseWriter, r *http.Request) {
	serviceID := r.PostFormValue("serviceId")
	for day := 0; day < 7; day++ {
		suffix := strconv.Itoa(day)
		h.setup.SetWeeklyDayDraft(serviceID, day, flowsetup.WeeklyDayDraft{
			Enabled:         r.PostFormValue("enabled_"+suffix) != "",
			StartTime:       r.PostFormValue("start_" + suffix),
			EndTime:         r.PostFormValue("end_" + suffix),
			BufferMin:       r.PostFormValue("buffer_" + suffix),
			SlotIntervalMin: r.PostFormValue("interval_" + suffix),
		})
	}
	h.setup.SaveWeeklySchedule(r.Context(), serviceID)
	redirectBack(w, r, h.rolePath("/setup"))
}

func (h *Handlers) setupExceptionCreate(w http.ResponseWriter, r *http.Request) {
	serviceID := r.PostFormValue("serviceId")
	h.setup.SetExceptionDraft(serviceID, flowsetup.ExceptionDraft{
		Date:            r.PostFormValue("date"),
		Mode:            flowsetup.ExceptionMode(r.PostFormValue("mode")),
		StartTime:       r.PostFormValue("startTime"),
		EndTime:         r.PostFormValue("endTime"),
		BufferMin:       r.PostFormValue("bufferMin"),
		SlotIntervalMin: r.PostFormValue("slotIntervalMin"),
	})
	h.setup.CreateException(r.Context(), serviceID)
	redirectBack(w, r, h.rolePath("/setup"))
}

func (h *Handlers) setupTemplateCreate(w http.ResponseWriter, r *http.Request) {
	h.setup.SetTemplateDraftName(r.PostFormValue("name"))
	h.setup.CreateTemplate(r.Context())
	redirectBack(w, r, h.rolePath("/setup"))
}

func (h *Handlers) setupTemplateDelete(w http.ResponseWriter, r *http.Request) {
	h.setup.DeleteTemplate(r.Context(), r.PostFormValue("templateId"))
	redirectBack(w, r, h.rolePath("/setup"))
}

func (h *Handlers) setupPublicFlowSave(w http.ResponseWriter, r *http.Request) {
	state := h.setup.Snapshot()
	applyPublicFlowForm(h.setup, flowsetup.FlowBooking, "booking", state.PublicFlowFieldDrafts.Booking, r)
	applyPublicFlowForm(h.setup, flowsetup.FlowContact, "contact", state.PublicFlowFieldDrafts.Contact, r)
	h.setup.SavePublicFlowConfig(r.Context())
	redirectBack(w, r, h.rolePath("/setup"))
}

// applyPublicFlowForm writes the posted per-field inputs back onto the
// editor's drafts by position.
func applyPublicFlowForm(editor *flowsetup.Editor, category flowsetup.FlowCategory, prefix string, drafts []flowsetup.FieldDraft, r *http.Request) {
	for i, draft := range drafts {
		suffix := strconv.Itoa(i)
		editor.ChangePublicFlowField(category, draft.ID, flowsetup.FieldLabel, r.PostFormValue(prefix+"_label_"+suffix), false)
		editor.ChangePublicFlowField(category, draft.ID, flowsetup.FieldKey, r.PostFormValue(prefix+"_key_"+suffix), false)
		editor.ChangePublicFlowField(category, draft.ID, flowsetup.FieldType, r.PostFormValue(prefix+"_type_"+suffix), false)
		editor.ChangePublicFlowField(category, draft.ID, flowsetup.FieldRequired, "", r.PostFormValue(prefix+"_required_"+suffix) != "")
	}
}
