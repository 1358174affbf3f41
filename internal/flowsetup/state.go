package flowsetup

import "github.com/erinpaul2002/careops-console/internal/domain"

// ServiceDraft is the new-service form with raw string inputs.
type ServiceDraft struct {
	Name         string
	DurationMin  string
	LocationType domain.LocationType
}

// ServiceEdit is the inline edit row for an existing service.
type ServiceEdit struct {
	Name         string
	DurationMin  string
	LocationType domain.LocationType
}

// RuleDraft is the manual availability-rule form for one service.
type RuleDraft struct {
	Weekday         string
	StartTime       string
	EndTime         string
	BufferMin       string
	SlotIntervalMin string
}

// WeeklyDayDraft is one weekday row of the weekly schedule grid.
type WeeklyDayDraft struct {
	Enabled         bool
	StartTime       string
	EndTime         string
	BufferMin       string
	SlotIntervalMin string
}

// ExceptionMode selects how a calendar exception is interpreted.
type ExceptionMode string

const (
	ExceptionClosedAllDay ExceptionMode = "closed_all_day"
	ExceptionBlockedTime  ExceptionMode = "blocked_time"
	ExceptionCustomHours  ExceptionMode = "custom_hours"
)

// ExceptionDraft is the add-exception form for one service.
type ExceptionDraft struct {
	Date            string
	Mode            ExceptionMode
	StartTime       string
	EndTime         string
	BufferMin       string
	SlotIntervalMin string
}

// TemplateDraft is the new-template form.
type TemplateDraft struct {
	Name   string
	Fields []FieldDraft
}

// TemplateEdit is the inline edit state for an existing template.
type TemplateEdit struct {
	Name   string
	Fields []FieldDraft
}

// PublicFlowDrafts holds the editable copies of both public flow field
// lists.
type PublicFlowDrafts struct {
	Booking []FieldDraft
	Contact []FieldDraft
}

// State is the full editor view model. ErrorMessage and Notice are
// operator-facing banner texts, empty when nothing should show.
type State struct {
	Loading      bool
	ErrorMessage string
	Notice       string

	Services          []domain.Service
	AvailabilityRules []domain.AvailabilityRule
	Templates         []domain.FormTemplate
	PublicFlowConfig  domain.PublicFlowConfig

	ServiceDraft ServiceDraft
	ServiceEdits map[string]ServiceEdit

	WeeklySchedules map[string]map[int]WeeklyDayDraft
	ExceptionDrafts map[string]ExceptionDraft
	RuleDrafts      map[string]RuleDraft
	RuleEdits       map[string]RuleDraft

	TemplateDraft TemplateDraft
	TemplateEdits map[string]TemplateEdit

	PublicFlowFieldDrafts PublicFlowDrafts

	MutatingServiceID          string
	MutatingRuleID             string
	CreatingRuleForServiceID   string
	SavingWeeklyServiceID      string
	CreatingExceptionServiceID string
	MutatingTemplateID         string
	MutatingTriggerServiceID   string
	CreatingService            bool
	CreatingTemplate           bool
	SavingPublicFlowConfig     bool
	OnboardingWarnings         []string
}

func newServiceDraft(locationType domain.LocationType) ServiceDraft {
	if locationType == "" {
		locationType = domain.LocationInPerson
	}
	return ServiceDraft{
		DurationMin:  "30",
		LocationType: locationType,
	}
}

func newRuleDraft() RuleDraft {
	return RuleDraft{
		Weekday:   "1",
		StartTime: "09:00",
		EndTime:   "17:00",
		BufferMin: "0",
	}
}

func newWeeklyDayDraft() WeeklyDayDraft {
	return WeeklyDayDraft{
		StartTime: "09:00",
		EndTime:   "17:00",
		BufferMin: "0",
	}
}

func newExceptionDraft() ExceptionDraft {
	return ExceptionDraft{
		Mode:      ExceptionClosedAllDay,
		StartTime: "09:00",
		EndTime:   "17:00",
		BufferMin: "0",
	}
}

func newTemplateDraft() TemplateDraft {
	return TemplateDraft{
		Fields: enforceRequiredCoreFields([]FieldDraft{newEmptyFieldDraft()}),
	}
}

func newState() State {
	return State{
		Loading:         true,
		ServiceDraft:    newServiceDraft(domain.LocationInPerson),
		ServiceEdits:    map[string]ServiceEdit{},
		WeeklySchedules: map[string]map[int]WeeklyDayDraft{},
		ExceptionDrafts: map[string]ExceptionDraft{},
		RuleDrafts:      map[string]RuleDraft{},
		RuleEdits:       map[string]RuleDraft{},
		TemplateDraft:   newTemplateDraft(),
		TemplateEdits:   map[string]TemplateEdit{},
		PublicFlowConfig: domain.PublicFlowConfig{
			Booking: domain.PublicFieldList{Fields: []domain.PublicFieldConfig{}},
			Contact: domain.PublicFieldList{Fields: []domain.PublicFieldConfig{}},
		},
	}
}
