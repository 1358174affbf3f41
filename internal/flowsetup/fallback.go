package flowsetup

import "github.com/erinpaul2002/careops-console/internal/domain"

// fallbackServices and fallbackTemplates back the static preview shown
// when the backend cannot be reached.
func fallbackServices() []domain.Service {
	return []domain.Service{
		{
			ID:                    "service-1",
			Name:                  "Initial Consultation",
			DurationMin:           30,
			LocationType:          domain.LocationVirtual,
			BookingFormTemplateID: "template-1",
			IsActive:              true,
		},
		{
			ID:                    "service-2",
			Name:                  "Follow-up Session",
			DurationMin:           60,
			LocationType:          domain.LocationInPerson,
			BookingFormTemplateID: "template-2",
			IsActive:              true,
		},
		{
			ID:           "service-3",
			Name:         "Home Visit Assessment",
			DurationMin:  45,
			LocationType: domain.LocationInPerson,
		},
	}
}

func fallbackTemplates() []domain.FormTemplate {
	return []domain.FormTemplate{
		{
			ID:       "template-1",
			Name:     "Client Intake",
			Trigger:  "post_booking",
			IsActive: true,
			Fields: []domain.FormTemplateField{
				{Key: "primary_goal", Label: "Primary Goal", Type: "text", Required: true},
				{Key: "health_notes", Label: "Health Notes", Type: "textarea"},
			},
		},
		{
			ID:      "template-2",
			Name:    "Consent Confirmation",
			Trigger: "post_booking",
			Fields: []domain.FormTemplateField{
				{Key: "consent", Label: "I agree to treatment terms", Type: "checkbox", Required: true},
			},
		},
	}
}

func (e *Editor) loadFallback() {
	services := fallbackServices()
	templates := fallbackTemplates()

	e.mu.Lock()
	defer e.mu.Unlock()
	e.state.Loading = false
	e.state.ErrorMessage = msgLoadFallback
	e.state.Services = services
	e.state.AvailabilityRules = nil
	e.state.Templates = templates
	e.state.PublicFlowConfig = domain.PublicFlowConfig{
		Booking: domain.PublicFieldList{Fields: []domain.PublicFieldConfig{}},
		Contact: domain.PublicFieldList{Fields: []domain.PublicFieldConfig{}},
	}
	e.state.WeeklySchedules = weeklySchedulesFromRules(services, nil)
	e.state.ExceptionDrafts = exceptionDraftsForServices(services)
	e.state.RuleEdits = map[string]RuleDraft{}
	e.state.RuleDrafts = ruleDraftsForServices(services)
	e.state.ServiceEdits = serviceEditsFromServices(services)
	e.state.TemplateEdits = templateEditsFromTemplates(templates)
	e.state.PublicFlowFieldDrafts = PublicFlowDrafts{}
	e.state.OnboardingWarnings = []string{
		"Live workspace diagnostics unavailable while using fallback preview data.",
	}
}
