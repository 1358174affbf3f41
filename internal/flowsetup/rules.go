package flowsetup

import (
	"context"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/erinpaul2002/careops-console/internal/domain"
)

var (
	timePattern = regexp.MustCompile(`^\d{2}:\d{2}$`)
	datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

func isValidTime(value string) bool {
	return timePattern.MatchString(value)
}

// normalizeRule coerces unknown rule types to weekly, defaults the
// buffer to zero, and clears the closed-all-day flag on anything that
// is not a date block.
func normalizeRule(rule domain.AvailabilityRule) domain.AvailabilityRule {
	switch rule.RuleType {
	case domain.RuleWeekly, domain.RuleDateOverride, domain.RuleDateBlock:
	default:
		rule.RuleType = domain.RuleWeekly
	}
	if rule.BufferMin == nil {
		zero := 0
		rule.BufferMin = &zero
	}
	if rule.RuleType != domain.RuleDateBlock {
		rule.IsClosedAllDay = false
	}
	return rule
}

func ruleEditsFromRules(rules []domain.AvailabilityRule) map[string]RuleDraft {
	edits := make(map[string]RuleDraft, len(rules))
	for _, raw := range rules {
		rule := normalizeRule(raw)
		weekday := 1
		if rule.Weekday != nil {
			weekday = *rule.Weekday
		}
		startTime := rule.StartTime
		if startTime == "" {
			startTime = "09:00"
		}
		endTime := rule.EndTime
		if endTime == "" {
			endTime = "17:00"
		}
		slotInterval := ""
		if rule.SlotIntervalMin != nil {
			slotInterval = strconv.Itoa(*rule.SlotIntervalMin)
		}
		edits[rule.ID] = RuleDraft{
			Weekday:         strconv.Itoa(weekday),
			StartTime:       startTime,
			EndTime:         endTime,
			BufferMin:       strconv.Itoa(*rule.BufferMin),
			SlotIntervalMin: slotInterval,
		}
	}
	return edits
}

func ruleDraftsForServices(services []domain.Service) map[string]RuleDraft {
	drafts := make(map[string]RuleDraft, len(services))
	for _, service := range services {
		drafts[service.ID] = newRuleDraft()
	}
	return drafts
}

func parseWeekday(value string) (int, bool) {
	weekday, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || weekday < 0 || weekday > 6 {
		return 0, false
	}
	return weekday, true
}

// parsedRule is a validated manual rule form.
type parsedRule struct {
	weekday         int
	startTime       string
	endTime         string
	bufferMin       int
	slotIntervalMin *int
}

func parseRuleDraft(draft RuleDraft) (parsedRule, bool) {
	weekday, ok := parseWeekday(draft.Weekday)
	if !ok {
		return parsedRule{}, false
	}
	startTime := strings.TrimSpace(draft.StartTime)
	endTime := strings.TrimSpace(draft.EndTime)
	if !isValidTime(startTime) || !isValidTime(endTime) || startTime >= endTime {
		return parsedRule{}, false
	}
	bufferMin, err := strconv.Atoi(strings.TrimSpace(draft.BufferMin))
	if err != nil || bufferMin < 0 {
		return parsedRule{}, false
	}
	parsed := parsedRule{
		weekday:   weekday,
		startTime: startTime,
		endTime:   endTime,
		bufferMin: bufferMin,
	}
	if raw := strings.TrimSpace(draft.SlotIntervalMin); raw != "" {
		slotInterval, err := strconv.Atoi(raw)
		if err != nil || slotInterval <= 0 {
			return parsedRule{}, false
		}
		parsed.slotIntervalMin = &slotInterval
	}
	return parsed, true
}

// SetRuleDraft replaces the manual rule form for a service.
func (e *Editor) SetRuleDraft(serviceID string, draft RuleDraft) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.state.RuleDrafts[serviceID] = draft
}

// SetRuleEdit replaces the inline edit row for an existing rule.
func (e *Editor) SetRuleEdit(ruleID string, draft RuleDraft) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.state.RuleEdits[ruleID] = draft
}

// CreateAvailabilityRule validates and posts the manual rule form for a
// service, then resets the form.
func (e *Editor) CreateAvailabilityRule(ctx context.Context, serviceID string) {
	e.mu.Lock()
	draft, ok := e.state.RuleDrafts[serviceID]
	e.mu.Unlock()
	if !ok {
		draft = newRuleDraft()
	}

	parsed, valid := parseRuleDraft(draft)
	if !valid {
		e.setError(msgRuleInvalid)
		return
	}

	e.mu.Lock()
	e.state.CreatingRuleForServiceID = serviceID
	e.state.ErrorMessage = ""
	e.state.Notice = ""
	e.mu.Unlock()

	created, err := e.client.CreateAvailabilityRule(ctx, domain.AvailabilityRuleCreate{
		ServiceID:       serviceID,
		Weekday:         &parsed.weekday,
		StartTime:       parsed.startTime,
		EndTime:         parsed.endTime,
		BufferMin:       &parsed.bufferMin,
		SlotIntervalMin: parsed.slotIntervalMin,
	})

	e.mu.Lock()
	defer e.mu.Unlock()
	e.state.CreatingRuleForServiceID = ""
	if err != nil {
		e.state.ErrorMessage = errorMessage(err, "Could not create availability rule.")
		return
	}
	e.state.AvailabilityRules = append(e.state.AvailabilityRules, normalizeRule(*created))
	e.state.WeeklySchedules = weeklySchedulesFromRules(e.state.Services, e.state.AvailabilityRules)
	e.state.RuleEdits = ruleEditsFromRules(e.state.AvailabilityRules)
	e.state.RuleDrafts[serviceID] = newRuleDraft()
	e.state.Notice = msgRuleAdded
}

// SaveAvailabilityRule validates and patches an existing rule's inline
// edit row. An empty slot interval clears the stored interval.
func (e *Editor) SaveAvailabilityRule(ctx context.Context, ruleID string) {
	e.mu.Lock()
	draft, ok := e.state.RuleEdits[ruleID]
	e.mu.Unlock()
	if !ok {
		return
	}

	parsed, valid := parseRuleDraft(draft)
	if !valid {
		e.setError(msgRuleInvalid)
		return
	}

	e.mu.Lock()
	e.state.MutatingRuleID = ruleID
	e.state.ErrorMessage = ""
	e.state.Notice = ""
	e.mu.Unlock()

	updated, err := e.client.PatchAvailabilityRule(ctx, ruleID, domain.AvailabilityRulePatch{
		Weekday:         &parsed.weekday,
		StartTime:       &parsed.startTime,
		EndTime:         &parsed.endTime,
		BufferMin:       &parsed.bufferMin,
		SlotIntervalMin: &parsed.slotIntervalMin,
	})

	e.mu.Lock()
	defer e.mu.Unlock()
	e.state.MutatingRuleID = ""
	if err != nil {
		e.state.ErrorMessage = errorMessage(err, "Could not update availability rule.")
		return
	}
	normalized := normalizeRule(*updated)
	for i := range e.state.AvailabilityRules {
		if e.state.AvailabilityRules[i].ID == ruleID {
			e.state.AvailabilityRules[i] = normalized
		}
	}
	e.state.WeeklySchedules = weeklySchedulesFromRules(e.state.Services, e.state.AvailabilityRules)
	e.state.RuleEdits = ruleEditsFromRules(e.state.AvailabilityRules)
	e.state.Notice = msgRuleUpdated
}

// DeleteAvailabilityRule removes a rule and its edit row.
func (e *Editor) DeleteAvailabilityRule(ctx context.Context, ruleID string) {
	e.mu.Lock()
	e.state.MutatingRuleID = ruleID
	e.state.ErrorMessage = ""
	e.state.Notice = ""
	e.mu.Unlock()

	err := e.client.DeleteAvailabilityRule(ctx, ruleID)

	e.mu.Lock()
	defer e.mu.Unlock()
	e.state.MutatingRuleID = ""
	if err != nil {
		e.state.ErrorMessage = errorMessage(err, "Could not delete availability rule.")
		return
	}
	rules := e.state.AvailabilityRules[:0:0]
	for _, rule := range e.state.AvailabilityRules {
		if rule.ID != ruleID {
			rules = append(rules, rule)
		}
	}
	delete(e.state.RuleEdits, ruleID)
	e.state.AvailabilityRules = rules
	e.state.WeeklySchedules = weeklySchedulesFromRules(e.state.Services, rules)
	e.state.Notice = msgRuleDeleted
}

// weeklySchedulesFromRules folds weekly rules into one row per weekday
// per service. When a weekday carries several rules, the one with the
// earliest start time wins the row.
func weeklySchedulesFromRules(services []domain.Service, rules []domain.AvailabilityRule) map[string]map[int]WeeklyDayDraft {
	mapped := make(map[string]map[int]WeeklyDayDraft, len(services))

	for _, service := range services {
		days := make(map[int]WeeklyDayDraft, 7)
		for weekday := 0; weekday < 7; weekday++ {
			days[weekday] = newWeeklyDayDraft()
		}

		weekly := make([]domain.AvailabilityRule, 0)
		for _, rule := range rules {
			if rule.ServiceID == service.ID && rule.RuleType == domain.RuleWeekly {
				weekly = append(weekly, rule)
			}
		}
		sort.SliceStable(weekly, func(i, j int) bool {
			return weekly[i].StartTime < weekly[j].StartTime
		})

		for _, rule := range weekly {
			if rule.Weekday == nil {
				continue
			}
			weekday := *rule.Weekday
			current, ok := days[weekday]
			if !ok || current.Enabled {
				continue
			}
			startTime := rule.StartTime
			if startTime == "" {
				startTime = "09:00"
			}
			endTime := rule.EndTime
			if endTime == "" {
				endTime = "17:00"
			}
			bufferMin := 0
			if rule.BufferMin != nil {
				bufferMin = *rule.BufferMin
			}
			slotInterval := ""
			if rule.SlotIntervalMin != nil {
				slotInterval = strconv.Itoa(*rule.SlotIntervalMin)
			}
			days[weekday] = WeeklyDayDraft{
				Enabled:         true,
				StartTime:       startTime,
				EndTime:         endTime,
				BufferMin:       strconv.Itoa(bufferMin),
				SlotIntervalMin: slotInterval,
			}
		}

		mapped[service.ID] = days
	}

	return mapped
}
