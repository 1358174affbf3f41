package flowsetup

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"sync"

	"github.com/erinpaul2002/careops-console/internal/api"
	"github.com/erinpaul2002/careops-console/internal/domain"
)

const (
	msgLoadFallback       = "Showing fallback setup preview. API access is unavailable."
	msgServiceInvalid     = "Service name and a valid duration are required."
	msgServiceCreated     = "Service created."
	msgServiceUpdated     = "Service updated."
	msgServiceDeleted     = "Service deleted."
	msgTemplateInvalid    = "Template name and at least one field are required."
	msgTemplateCreated    = "Template created."
	msgTemplateUpdated    = "Template updated."
	msgTemplateDeleted    = "Template deleted."
	msgTriggerLinked      = "Service trigger form linked."
	msgTriggerCleared     = "Service trigger form cleared."
	msgPublicConfigSaved  = "Public field configuration saved."
	msgWeeklySaved        = "Weekly schedule saved."
	msgExceptionAdded     = "Exception added."
	msgRuleAdded          = "Availability rule added."
	msgRuleUpdated        = "Availability rule updated."
	msgRuleDeleted        = "Availability rule deleted."
	msgRuleInvalid        = "Availability rule needs weekday (0-6), HH:mm start/end time, buffer >= 0, and optional positive integer slot interval."
	msgExceptionBadDate   = "Exception date must use YYYY-MM-DD format."
	msgExceptionBadTimes  = "Exception start/end time must use HH:mm and start must be before end."
	msgExceptionBadCustom = "Custom-hours exception needs buffer >= 0 and optional positive integer interval."
)

// Editor drives the public flow setup surface: services, availability,
// intake templates, and the public field configuration. All mutations
// go straight to the backend; drafts only hold unsaved form input.
type Editor struct {
	client *api.Client

	mu    sync.Mutex
	state State
}

func NewEditor(client *api.Client) *Editor {
	return &Editor{client: client, state: newState()}
}

// Snapshot returns a copy of the editor state. Nested collections are
// copied so callers cannot race the editor.
func (e *Editor) Snapshot() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.copyStateLocked()
}

func (e *Editor) copyStateLocked() State {
	out := e.state
	out.Services = append([]domain.Service(nil), e.state.Services...)
	out.AvailabilityRules = append([]domain.AvailabilityRule(nil), e.state.AvailabilityRules...)
	out.Templates = append([]domain.FormTemplate(nil), e.state.Templates...)
	out.OnboardingWarnings = append([]string(nil), e.state.OnboardingWarnings...)

	out.ServiceEdits = make(map[string]ServiceEdit, len(e.state.ServiceEdits))
	for id, edit := range e.state.ServiceEdits {
		out.ServiceEdits[id] = edit
	}
	out.WeeklySchedules = make(map[string]map[int]WeeklyDayDraft, len(e.state.WeeklySchedules))
	for id, days := range e.state.WeeklySchedules {
		copied := make(map[int]WeeklyDayDraft, len(days))
		for weekday, day := range days {
			copied[weekday] = day
		}
		out.WeeklySchedules[id] = copied
	}
	out.ExceptionDrafts = make(map[string]ExceptionDraft, len(e.state.ExceptionDrafts))
	for id, draft := range e.state.ExceptionDrafts {
		out.ExceptionDrafts[id] = draft
	}
	out.RuleDrafts = make(map[string]RuleDraft, len(e.state.RuleDrafts))
	for id, draft := range e.state.RuleDrafts {
		out.RuleDrafts[id] = draft
	}
	out.RuleEdits = make(map[string]RuleDraft, len(e.state.RuleEdits))
	for id, draft := range e.state.RuleEdits {
		out.RuleEdits[id] = draft
	}
	out.TemplateEdits = make(map[string]TemplateEdit, len(e.state.TemplateEdits))
	for id, edit := range e.state.TemplateEdits {
		edit.Fields = append([]FieldDraft(nil), edit.Fields...)
		out.TemplateEdits[id] = edit
	}
	out.TemplateDraft.Fields = append([]FieldDraft(nil), e.state.TemplateDraft.Fields...)
	out.PublicFlowFieldDrafts = PublicFlowDrafts{
		Booking: append([]FieldDraft(nil), e.state.PublicFlowFieldDrafts.Booking...),
		Contact: append([]FieldDraft(nil), e.state.PublicFlowFieldDrafts.Contact...),
	}
	return out
}

// Load pulls the five collections the editor works over in one round
// and rebuilds every derived draft. A failed load falls back to a
// static preview so the surface stays usable.
func (e *Editor) Load(ctx context.Context, showLoading bool) {
	if showLoading {
		e.mu.Lock()
		e.state.Loading = true
		e.state.ErrorMessage = ""
		e.state.Notice = ""
		e.mu.Unlock()
	}

	var (
		wg        sync.WaitGroup
		services  []domain.Service
		rules     []domain.AvailabilityRule
		templates []domain.FormTemplate
		config    *domain.PublicFlowConfig
		readiness *domain.WorkspaceReadiness
		errs      [5]error
	)
	wg.Add(5)
	go func() { defer wg.Done(); services, errs[0] = e.client.Services(ctx, true) }()
	go func() { defer wg.Done(); rules, errs[1] = e.client.AvailabilityRules(ctx, "") }()
	go func() { defer wg.Done(); templates, errs[2] = e.client.FormTemplates(ctx, true) }()
	go func() { defer wg.Done(); config, errs[3] = e.client.WorkspacePublicFlowConfig(ctx) }()
	go func() { defer wg.Done(); readiness, errs[4] = e.client.WorkspaceReadiness(ctx) }()
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			e.loadFallback()
			return
		}
	}

	normalized := make([]domain.AvailabilityRule, len(rules))
	for i, rule := range rules {
		normalized[i] = normalizeRule(rule)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.state.Loading = false
	e.state.ErrorMessage = ""
	e.state.Services = services
	e.state.AvailabilityRules = normalized
	e.state.Templates = templates
	e.state.PublicFlowConfig = *config
	e.state.WeeklySchedules = weeklySchedulesFromRules(services, normalized)
	e.state.ExceptionDrafts = exceptionDraftsForServices(services)
	e.state.RuleEdits = ruleEditsFromRules(normalized)
	e.state.RuleDrafts = ruleDraftsForServices(services)
	e.state.ServiceEdits = serviceEditsFromServices(services)
	e.state.TemplateEdits = templateEditsFromTemplates(templates)
	e.state.PublicFlowFieldDrafts = PublicFlowDrafts{
		Booking: publicFlowFieldsToDrafts(config.Booking.Fields),
		Contact: publicFlowFieldsToDrafts(config.Contact.Fields),
	}
	e.state.OnboardingWarnings = readiness.Warnings
}

// Refresh reloads everything with the loading flag raised.
func (e *Editor) Refresh(ctx context.Context) {
	e.Load(ctx, true)
}

func serviceEditsFromServices(services []domain.Service) map[string]ServiceEdit {
	edits := make(map[string]ServiceEdit, len(services))
	for _, service := range services {
		edits[service.ID] = ServiceEdit{
			Name:         service.Name,
			DurationMin:  strconv.Itoa(service.DurationMin),
			LocationType: service.LocationType,
		}
	}
	return edits
}

// SetServiceDraft replaces the new-service form input.
func (e *Editor) SetServiceDraft(draft ServiceDraft) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.state.ServiceDraft = draft
}

// SetServiceEdit replaces the inline edit row for a service.
func (e *Editor) SetServiceEdit(serviceID string, edit ServiceEdit) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.state.ServiceEdits[serviceID] = edit
}

func parsePositiveInt(raw string) (int, bool) {
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || value <= 0 {
		return 0, false
	}
	return value, true
}

// CreateService validates the draft and posts it. Success resets the
// name and duration while keeping the chosen location type.
func (e *Editor) CreateService(ctx context.Context) {
	e.mu.Lock()
	draft := e.state.ServiceDraft
	e.mu.Unlock()

	name := strings.TrimSpace(draft.Name)
	durationMin, ok := parsePositiveInt(draft.DurationMin)
	if name == "" || !ok {
		e.setError(msgServiceInvalid)
		return
	}

	e.mu.Lock()
	e.state.CreatingService = true
	e.state.ErrorMessage = ""
	e.state.Notice = ""
	e.mu.Unlock()

	created, err := e.client.CreateService(ctx, domain.ServiceCreate{
		Name:           name,
		DurationMin:    durationMin,
		LocationType:   draft.LocationType,
		InventoryRules: []domain.InventoryRule{},
	})

	e.mu.Lock()
	defer e.mu.Unlock()
	e.state.CreatingService = false
	if err != nil {
		e.state.ErrorMessage = errorMessage(err, "Could not create service.")
		return
	}
	e.state.Services = append(e.state.Services, *created)
	e.state.WeeklySchedules = weeklySchedulesFromRules(e.state.Services, e.state.AvailabilityRules)
	e.state.ExceptionDrafts = exceptionDraftsForServices(e.state.Services)
	e.state.RuleDrafts[created.ID] = newRuleDraft()
	e.state.ServiceEdits = serviceEditsFromServices(e.state.Services)
	e.state.ServiceDraft = newServiceDraft(draft.LocationType)
	e.state.Notice = msgServiceCreated
}

// SaveService validates and patches a service's inline edit row.
func (e *Editor) SaveService(ctx context.Context, serviceID string) {
	e.mu.Lock()
	edit, ok := e.state.ServiceEdits[serviceID]
	e.mu.Unlock()
	if !ok {
		return
	}

	name := strings.TrimSpace(edit.Name)
	durationMin, valid := parsePositiveInt(edit.DurationMin)
	if name == "" || !valid {
		e.setError(msgServiceInvalid)
		return
	}

	e.beginServiceMutation(serviceID)
	locationType := edit.LocationType
	updated, err := e.client.PatchService(ctx, serviceID, domain.ServicePatch{
		Name:         &name,
		DurationMin:  &durationMin,
		LocationType: &locationType,
	})
	e.finishServiceMutation(updated, err, msgServiceUpdated, "Could not update service.")
}

// ToggleService activates or pauses a service.
func (e *Editor) ToggleService(ctx context.Context, serviceID string, isActive bool) {
	e.beginServiceMutation(serviceID)
	updated, err := e.client.PatchService(ctx, serviceID, domain.ServicePatch{IsActive: &isActive})
	notice := "Service paused."
	if isActive {
		notice = "Service activated."
	}
	e.finishServiceMutation(updated, err, notice, "Could not update service status.")
}

func (e *Editor) beginServiceMutation(serviceID string) {
	e.mu.Lock()
	e.state.MutatingServiceID = serviceID
	e.state.ErrorMessage = ""
	e.state.Notice = ""
	e.mu.Unlock()
}

func (e *Editor) finishServiceMutation(updated *domain.Service, err error, notice, fallback string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.state.MutatingServiceID = ""
	if err != nil {
		e.state.ErrorMessage = errorMessage(err, fallback)
		return
	}
	for i := range e.state.Services {
		if e.state.Services[i].ID == updated.ID {
			e.state.Services[i] = *updated
		}
	}
	e.state.ServiceEdits = serviceEditsFromServices(e.state.Services)
	e.state.Notice = notice
}

// DeleteService removes a service and drops every draft and rule tied
// to it.
func (e *Editor) DeleteService(ctx context.Context, serviceID string) {
	e.beginServiceMutation(serviceID)
	err := e.client.DeleteService(ctx, serviceID)

	e.mu.Lock()
	defer e.mu.Unlock()
	e.state.MutatingServiceID = ""
	if err != nil {
		e.state.ErrorMessage = errorMessage(err, "Could not delete service.")
		return
	}

	services := e.state.Services[:0:0]
	for _, service := range e.state.Services {
		if service.ID != serviceID {
			services = append(services, service)
		}
	}
	rules := e.state.AvailabilityRules[:0:0]
	for _, rule := range e.state.AvailabilityRules {
		if rule.ServiceID == serviceID {
			delete(e.state.RuleEdits, rule.ID)
			continue
		}
		rules = append(rules, rule)
	}
	delete(e.state.RuleDrafts, serviceID)

	e.state.Services = services
	e.state.AvailabilityRules = rules
	e.state.WeeklySchedules = weeklySchedulesFromRules(services, rules)
	e.state.ExceptionDrafts = exceptionDraftsForServices(services)
	e.state.ServiceEdits = serviceEditsFromServices(services)
	e.state.Notice = msgServiceDeleted
}

// SetServiceTemplate links or clears the post-booking trigger form on a
// service. Passing an empty template id clears the link.
func (e *Editor) SetServiceTemplate(ctx context.Context, serviceID, templateID string) {
	e.mu.Lock()
	current := ""
	for _, service := range e.state.Services {
		if service.ID == serviceID {
			current = service.BookingFormTemplateID
			break
		}
	}
	e.mu.Unlock()
	if current == templateID {
		return
	}

	e.mu.Lock()
	e.state.MutatingTriggerServiceID = serviceID
	e.state.ErrorMessage = ""
	e.state.Notice = ""
	e.mu.Unlock()

	var link *string
	if templateID != "" {
		link = &templateID
	}
	updated, err := e.client.PatchService(ctx, serviceID, domain.ServicePatch{
		BookingFormTemplateID: &link,
	})

	e.mu.Lock()
	defer e.mu.Unlock()
	e.state.MutatingTriggerServiceID = ""
	if err != nil {
		e.state.ErrorMessage = errorMessage(err, "Could not update trigger configuration.")
		return
	}
	for i := range e.state.Services {
		if e.state.Services[i].ID == serviceID {
			e.state.Services[i] = *updated
		}
	}
	e.state.ServiceEdits = serviceEditsFromServices(e.state.Services)
	if templateID != "" {
		e.state.Notice = msgTriggerLinked
	} else {
		e.state.Notice = msgTriggerCleared
	}
}

func (e *Editor) setError(message string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.state.ErrorMessage = message
	e.state.Notice = ""
}

func errorMessage(err error, fallback string) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) && strings.TrimSpace(apiErr.Message) != "" {
		return apiErr.Message
	}
	return fallback
}
