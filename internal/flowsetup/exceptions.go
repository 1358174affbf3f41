package flowsetup

import (
	"context"
	"strconv"
	"strings"

	"github.com/erinpaul2002/careops-console/internal/domain"
)

func exceptionDraftsForServices(services []domain.Service) map[string]ExceptionDraft {
	drafts := make(map[string]ExceptionDraft, len(services))
	for _, service := range services {
		drafts[service.ID] = newExceptionDraft()
	}
	return drafts
}

// SetExceptionDraft replaces the add-exception form for a service.
func (e *Editor) SetExceptionDraft(serviceID string, draft ExceptionDraft) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.state.ExceptionDrafts[serviceID] = draft
}

// CreateException validates the exception form and creates the matching
// rule: closed_all_day and blocked_time become date blocks, custom_hours
// becomes a date override.
func (e *Editor) CreateException(ctx context.Context, serviceID string) {
	e.mu.Lock()
	draft, ok := e.state.ExceptionDrafts[serviceID]
	e.mu.Unlock()
	if !ok {
		draft = newExceptionDraft()
	}

	date := strings.TrimSpace(draft.Date)
	if !datePattern.MatchString(date) {
		e.setError(msgExceptionBadDate)
		return
	}

	startTime := strings.TrimSpace(draft.StartTime)
	endTime := strings.TrimSpace(draft.EndTime)
	if draft.Mode == ExceptionBlockedTime || draft.Mode == ExceptionCustomHours {
		if !isValidTime(startTime) || !isValidTime(endTime) || startTime >= endTime {
			e.setError(msgExceptionBadTimes)
			return
		}
	}

	var bufferMin int
	var slotIntervalMin *int
	if draft.Mode == ExceptionCustomHours {
		parsed, err := strconv.Atoi(strings.TrimSpace(draft.BufferMin))
		if err != nil || parsed < 0 {
			e.setError(msgExceptionBadCustom)
			return
		}
		bufferMin = parsed
		if raw := strings.TrimSpace(draft.SlotIntervalMin); raw != "" {
			slotInterval, err := strconv.Atoi(raw)
			if err != nil || slotInterval <= 0 {
				e.setError(msgExceptionBadCustom)
				return
			}
			slotIntervalMin = &slotInterval
		}
	}

	e.mu.Lock()
	e.state.CreatingExceptionServiceID = serviceID
	e.state.ErrorMessage = ""
	e.state.Notice = ""
	e.mu.Unlock()

	var payload domain.AvailabilityRuleCreate
	closed := true
	open := false
	switch draft.Mode {
	case ExceptionClosedAllDay:
		payload = domain.AvailabilityRuleCreate{
			ServiceID:      serviceID,
			RuleType:       domain.RuleDateBlock,
			Date:           date,
			IsClosedAllDay: &closed,
		}
	case ExceptionBlockedTime:
		payload = domain.AvailabilityRuleCreate{
			ServiceID:      serviceID,
			RuleType:       domain.RuleDateBlock,
			Date:           date,
			StartTime:      startTime,
			EndTime:        endTime,
			IsClosedAllDay: &open,
		}
	default:
		payload = domain.AvailabilityRuleCreate{
			ServiceID:       serviceID,
			RuleType:        domain.RuleDateOverride,
			Date:            date,
			StartTime:       startTime,
			EndTime:         endTime,
			BufferMin:       &bufferMin,
			SlotIntervalMin: slotIntervalMin,
		}
	}

	created, err := e.client.CreateAvailabilityRule(ctx, payload)

	e.mu.Lock()
	defer e.mu.Unlock()
	e.state.CreatingExceptionServiceID = ""
	if err != nil {
		e.state.ErrorMessage = errorMessage(err, "Could not create exception.")
		return
	}
	e.state.AvailabilityRules = append(e.state.AvailabilityRules, normalizeRule(*created))
	e.state.WeeklySchedules = weeklySchedulesFromRules(e.state.Services, e.state.AvailabilityRules)
	e.state.RuleEdits = ruleEditsFromRules(e.state.AvailabilityRules)
	reset := newExceptionDraft()
	reset.Date = date
	e.state.ExceptionDrafts[serviceID] = reset
	e.state.Notice = msgExceptionAdded
}
