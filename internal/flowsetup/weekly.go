package flowsetup

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/erinpaul2002/careops-console/internal/domain"
)

var weekdayNames = [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// SetWeeklyDayDraft replaces one weekday row of a service's weekly grid.
func (e *Editor) SetWeeklyDayDraft(serviceID string, weekday int, draft WeeklyDayDraft) {
	if weekday < 0 || weekday > 6 {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	days, ok := e.state.WeeklySchedules[serviceID]
	if !ok {
		days = make(map[int]WeeklyDayDraft, 7)
		e.state.WeeklySchedules[serviceID] = days
	}
	days[weekday] = draft
}

type parsedWeeklyDay struct {
	startTime       string
	endTime         string
	bufferMin       int
	slotIntervalMin *int
}

func parseWeeklyDayDraft(draft WeeklyDayDraft) (parsedWeeklyDay, bool) {
	startTime := strings.TrimSpace(draft.StartTime)
	endTime := strings.TrimSpace(draft.EndTime)
	if !isValidTime(startTime) || !isValidTime(endTime) || startTime >= endTime {
		return parsedWeeklyDay{}, false
	}
	bufferMin, err := strconv.Atoi(strings.TrimSpace(draft.BufferMin))
	if err != nil || bufferMin < 0 {
		return parsedWeeklyDay{}, false
	}
	parsed := parsedWeeklyDay{startTime: startTime, endTime: endTime, bufferMin: bufferMin}
	if raw := strings.TrimSpace(draft.SlotIntervalMin); raw != "" {
		slotInterval, err := strconv.Atoi(raw)
		if err != nil || slotInterval <= 0 {
			return parsedWeeklyDay{}, false
		}
		parsed.slotIntervalMin = &slotInterval
	}
	return parsed, true
}

// SaveWeeklySchedule reconciles the weekly grid against the stored
// weekly rules, weekday by weekday: disabled days delete their rules,
// enabled days create or patch the primary rule and delete duplicates.
// There is no rollback; a failure mid-way leaves earlier days applied.
func (e *Editor) SaveWeeklySchedule(ctx context.Context, serviceID string) {
	e.mu.Lock()
	schedule, ok := e.state.WeeklySchedules[serviceID]
	if ok {
		copied := make(map[int]WeeklyDayDraft, len(schedule))
		for weekday, day := range schedule {
			copied[weekday] = day
		}
		schedule = copied
	}
	rules := append([]domain.AvailabilityRule(nil), e.state.AvailabilityRules...)
	e.mu.Unlock()
	if !ok {
		return
	}

	parsedDays := make(map[int]parsedWeeklyDay, 7)
	for weekday := 0; weekday < 7; weekday++ {
		day, ok := schedule[weekday]
		if !ok {
			day = newWeeklyDayDraft()
		}
		if !day.Enabled {
			continue
		}
		parsed, valid := parseWeeklyDayDraft(day)
		if !valid {
			e.setError(fmt.Sprintf("Invalid schedule for %s.", weekdayNames[weekday]))
			return
		}
		parsedDays[weekday] = parsed
	}

	e.mu.Lock()
	e.state.SavingWeeklyServiceID = serviceID
	e.state.ErrorMessage = ""
	e.state.Notice = ""
	e.mu.Unlock()

	next, err := e.reconcileWeekly(ctx, serviceID, rules, schedule, parsedDays)

	e.mu.Lock()
	defer e.mu.Unlock()
	e.state.SavingWeeklyServiceID = ""
	if err != nil {
		e.state.ErrorMessage = errorMessage(err, "Could not save weekly schedule.")
		return
	}
	e.state.AvailabilityRules = next
	e.state.WeeklySchedules = weeklySchedulesFromRules(e.state.Services, next)
	e.state.RuleEdits = ruleEditsFromRules(next)
	e.state.Notice = msgWeeklySaved
}

func (e *Editor) reconcileWeekly(
	ctx context.Context,
	serviceID string,
	rules []domain.AvailabilityRule,
	schedule map[int]WeeklyDayDraft,
	parsedDays map[int]parsedWeeklyDay,
) ([]domain.AvailabilityRule, error) {
	next := rules

	for weekday := 0; weekday < 7; weekday++ {
		existing := make([]domain.AvailabilityRule, 0)
		for _, rule := range next {
			if rule.ServiceID == serviceID &&
				(rule.RuleType == domain.RuleWeekly || rule.RuleType == "") &&
				rule.Weekday != nil && *rule.Weekday == weekday {
				existing = append(existing, rule)
			}
		}

		day := schedule[weekday]
		if !day.Enabled {
			for _, rule := range existing {
				if err := e.client.DeleteAvailabilityRule(ctx, rule.ID); err != nil {
					return nil, err
				}
			}
			next = withoutRules(next, existing)
			continue
		}

		parsed := parsedDays[weekday]
		wd := weekday
		if len(existing) == 0 {
			created, err := e.client.CreateAvailabilityRule(ctx, domain.AvailabilityRuleCreate{
				ServiceID:       serviceID,
				RuleType:        domain.RuleWeekly,
				Weekday:         &wd,
				StartTime:       parsed.startTime,
				EndTime:         parsed.endTime,
				BufferMin:       &parsed.bufferMin,
				SlotIntervalMin: parsed.slotIntervalMin,
			})
			if err != nil {
				return nil, err
			}
			next = append(next, normalizeRule(*created))
			continue
		}

		primary, duplicates := existing[0], existing[1:]
		ruleType := domain.RuleWeekly
		updated, err := e.client.PatchAvailabilityRule(ctx, primary.ID, domain.AvailabilityRulePatch{
			RuleType:        &ruleType,
			Weekday:         &wd,
			StartTime:       &parsed.startTime,
			EndTime:         &parsed.endTime,
			BufferMin:       &parsed.bufferMin,
			SlotIntervalMin: &parsed.slotIntervalMin,
		})
		if err != nil {
			return nil, err
		}
		normalized := normalizeRule(*updated)
		for i := range next {
			if next[i].ID == primary.ID {
				next[i] = normalized
			}
		}

		for _, duplicate := range duplicates {
			if err := e.client.DeleteAvailabilityRule(ctx, duplicate.ID); err != nil {
				return nil, err
			}
		}
		next = withoutRules(next, duplicates)
	}

	return next, nil
}

func withoutRules(rules, drop []domain.AvailabilityRule) []domain.AvailabilityRule {
	if len(drop) == 0 {
		return rules
	}
	dropped := make(map[string]bool, len(drop))
	for _, rule := range drop {
		dropped[rule.ID] = true
	}
	kept := rules[:0:0]
	for _, rule := range rules {
		if !dropped[rule.ID] {
			kept = append(kept, rule)
		}
	}
	return kept
}
