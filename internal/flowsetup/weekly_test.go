package flowsetup

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erinpaul2002/careops-console/internal/api"
	"github.com/erinpaul2002/careops-console/internal/domain"
	"github.com/erinpaul2002/careops-console/internal/session"
)

// ruleBackend serves the availability-rule endpoints and records every
// mutation it sees.
type ruleBackend struct {
	mu sync.Mutex

	nextID  int
	creates []domain.AvailabilityRuleCreate
	patches []string
	deletes []string
}

func (b *ruleBackend) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/availability-rules", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		var input domain.AvailabilityRuleCreate
		json.NewDecoder(r.Body).Decode(&input)
		b.creates = append(b.creates, input)
		b.nextID++
		rule := domain.AvailabilityRule{
			ID:              fmt.Sprintf("rule-%d", b.nextID),
			ServiceID:       input.ServiceID,
			RuleType:        input.RuleType,
			Weekday:         input.Weekday,
			Date:            input.Date,
			StartTime:       input.StartTime,
			EndTime:         input.EndTime,
			BufferMin:       input.BufferMin,
			SlotIntervalMin: input.SlotIntervalMin,
		}
		if input.IsClosedAllDay != nil {
			rule.IsClosedAllDay = *input.IsClosedAllDay
		}
		json.NewEncoder(w).Encode(map[string]any{"rule": rule})
	})
	mux.HandleFunc("/api/v1/availability-rules/", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		ruleID := strings.TrimPrefix(r.URL.Path, "/api/v1/availability-rules/")
		switch r.Method {
		case http.MethodDelete:
			b.deletes = append(b.deletes, ruleID)
			w.WriteHeader(http.StatusNoContent)
		case http.MethodPatch:
			b.patches = append(b.patches, ruleID)
			var patch domain.AvailabilityRulePatch
			json.NewDecoder(r.Body).Decode(&patch)
			rule := domain.AvailabilityRule{ID: ruleID, ServiceID: "svc-1", RuleType: domain.RuleWeekly}
			if patch.Weekday != nil {
				rule.Weekday = patch.Weekday
			}
			if patch.StartTime != nil {
				rule.StartTime = *patch.StartTime
			}
			if patch.EndTime != nil {
				rule.EndTime = *patch.EndTime
			}
			if patch.BufferMin != nil {
				rule.BufferMin = patch.BufferMin
			}
			if patch.SlotIntervalMin != nil {
				rule.SlotIntervalMin = *patch.SlotIntervalMin
			}
			json.NewEncoder(w).Encode(map[string]any{"rule": rule})
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})
	return mux
}

func newRuleTestEditor(t *testing.T, backend *ruleBackend) *Editor {
	t.Helper()
	server := httptest.NewServer(backend.handler())
	t.Cleanup(server.Close)

	sess := session.NewStore(session.NewMemoryStorage())
	sess.Set(session.State{Token: "tok", WorkspaceID: "ws-1", Role: domain.RoleOwner})
	editor := NewEditor(api.New(server.URL, sess))
	editor.state.Loading = false
	editor.state.Services = []domain.Service{{ID: "svc-1", Name: "Checkup", DurationMin: 30, IsActive: true}}
	editor.state.WeeklySchedules = weeklySchedulesFromRules(editor.state.Services, nil)
	editor.state.ExceptionDrafts = exceptionDraftsForServices(editor.state.Services)
	return editor
}

func enabledDay(start, end string) WeeklyDayDraft {
	return WeeklyDayDraft{Enabled: true, StartTime: start, EndTime: end, BufferMin: "0"}
}

func TestSaveWeeklyScheduleCreatesRulesForEnabledDays(t *testing.T) {
	backend := &ruleBackend{}
	editor := newRuleTestEditor(t, backend)
	editor.SetWeeklyDayDraft("svc-1", 1, enabledDay("09:00", "17:00"))
	editor.SetWeeklyDayDraft("svc-1", 3, enabledDay("10:00", "14:00"))

	editor.SaveWeeklySchedule(context.Background(), "svc-1")

	state := editor.Snapshot()
	assert.Equal(t, msgWeeklySaved, state.Notice)
	assert.Empty(t, state.ErrorMessage)
	require.Len(t, state.AvailabilityRules, 2)

	backend.mu.Lock()
	defer backend.mu.Unlock()
	require.Len(t, backend.creates, 2)
	assert.Equal(t, 1, *backend.creates[0].Weekday)
	assert.Equal(t, "09:00", backend.creates[0].StartTime)
	assert.Equal(t, 3, *backend.creates[1].Weekday)
	assert.Empty(t, backend.patches)
	assert.Empty(t, backend.deletes)
}

func TestSaveWeeklySchedulePatchesExistingAndDeletesDuplicates(t *testing.T) {
	backend := &ruleBackend{}
	editor := newRuleTestEditor(t, backend)
	monday := 1
	editor.state.AvailabilityRules = []domain.AvailabilityRule{
		{ID: "rule-a", ServiceID: "svc-1", RuleType: domain.RuleWeekly, Weekday: &monday, StartTime: "08:00", EndTime: "12:00"},
		{ID: "rule-b", ServiceID: "svc-1", RuleType: domain.RuleWeekly, Weekday: &monday, StartTime: "13:00", EndTime: "17:00"},
	}
	editor.state.WeeklySchedules = weeklySchedulesFromRules(editor.state.Services, editor.state.AvailabilityRules)
	editor.SetWeeklyDayDraft("svc-1", 1, enabledDay("09:00", "18:00"))

	editor.SaveWeeklySchedule(context.Background(), "svc-1")

	state := editor.Snapshot()
	assert.Equal(t, msgWeeklySaved, state.Notice)
	require.Len(t, state.AvailabilityRules, 1)
	assert.Equal(t, "rule-a", state.AvailabilityRules[0].ID)
	assert.Equal(t, "09:00", state.AvailabilityRules[0].StartTime)

	backend.mu.Lock()
	defer backend.mu.Unlock()
	assert.Empty(t, backend.creates)
	assert.Equal(t, []string{"rule-a"}, backend.patches)
	assert.Equal(t, []string{"rule-b"}, backend.deletes)
}

func TestSaveWeeklyScheduleDeletesRulesForDisabledDays(t *testing.T) {
	backend := &ruleBackend{}
	editor := newRuleTestEditor(t, backend)
	tuesday := 2
	editor.state.AvailabilityRules = []domain.AvailabilityRule{
		{ID: "rule-a", ServiceID: "svc-1", RuleType: domain.RuleWeekly, Weekday: &tuesday, StartTime: "09:00", EndTime: "17:00"},
	}
	editor.state.WeeklySchedules = weeklySchedulesFromRules(editor.state.Services, editor.state.AvailabilityRules)
	editor.SetWeeklyDayDraft("svc-1", 2, WeeklyDayDraft{Enabled: false, StartTime: "09:00", EndTime: "17:00", BufferMin: "0"})

	editor.SaveWeeklySchedule(context.Background(), "svc-1")

	state := editor.Snapshot()
	assert.Empty(t, state.AvailabilityRules)

	backend.mu.Lock()
	defer backend.mu.Unlock()
	assert.Equal(t, []string{"rule-a"}, backend.deletes)
}

func TestSaveWeeklyScheduleRejectsInvalidDayBeforeAnyNetworkCall(t *testing.T) {
	backend := &ruleBackend{}
	editor := newRuleTestEditor(t, backend)
	editor.SetWeeklyDayDraft("svc-1", 5, enabledDay("17:00", "09:00"))

	editor.SaveWeeklySchedule(context.Background(), "svc-1")

	state := editor.Snapshot()
	assert.Equal(t, "Invalid schedule for Fri.", state.ErrorMessage)

	backend.mu.Lock()
	defer backend.mu.Unlock()
	assert.Empty(t, backend.creates)
	assert.Empty(t, backend.patches)
	assert.Empty(t, backend.deletes)
}

func TestSaveWeeklyScheduleIsIdempotent(t *testing.T) {
	backend := &ruleBackend{}
	editor := newRuleTestEditor(t, backend)
	editor.SetWeeklyDayDraft("svc-1", 4, enabledDay("09:00", "17:00"))

	editor.SaveWeeklySchedule(context.Background(), "svc-1")
	editor.SaveWeeklySchedule(context.Background(), "svc-1")

	state := editor.Snapshot()
	require.Len(t, state.AvailabilityRules, 1)

	backend.mu.Lock()
	defer backend.mu.Unlock()
	// The second save patches the existing rule instead of creating a twin.
	assert.Len(t, backend.creates, 1)
	assert.Len(t, backend.patches, 1)
	assert.Empty(t, backend.deletes)
}

func TestCreateExceptionValidatesDateAndTimes(t *testing.T) {
	backend := &ruleBackend{}
	editor := newRuleTestEditor(t, backend)

	editor.SetExceptionDraft("svc-1", ExceptionDraft{Date: "twelfth of never", Mode: ExceptionClosedAllDay})
	editor.CreateException(context.Background(), "svc-1")
	assert.Equal(t, msgExceptionBadDate, editor.Snapshot().ErrorMessage)

	editor.SetExceptionDraft("svc-1", ExceptionDraft{
		Date: "2026-12-24", Mode: ExceptionBlockedTime, StartTime: "15:00", EndTime: "12:00",
	})
	editor.CreateException(context.Background(), "svc-1")
	assert.Equal(t, msgExceptionBadTimes, editor.Snapshot().ErrorMessage)

	backend.mu.Lock()
	defer backend.mu.Unlock()
	assert.Empty(t, backend.creates)
}

func TestCreateExceptionClosedAllDay(t *testing.T) {
	backend := &ruleBackend{}
	editor := newRuleTestEditor(t, backend)
	editor.SetExceptionDraft("svc-1", ExceptionDraft{Date: "2026-12-25", Mode: ExceptionClosedAllDay})

	editor.CreateException(context.Background(), "svc-1")

	state := editor.Snapshot()
	assert.Equal(t, msgExceptionAdded, state.Notice)
	require.Len(t, state.AvailabilityRules, 1)
	assert.Equal(t, domain.RuleDateBlock, state.AvailabilityRules[0].RuleType)
	assert.True(t, state.AvailabilityRules[0].IsClosedAllDay)
	// The reset draft keeps the date for quick successive entries.
	assert.Equal(t, "2026-12-25", state.ExceptionDrafts["svc-1"].Date)

	backend.mu.Lock()
	defer backend.mu.Unlock()
	require.Len(t, backend.creates, 1)
	require.NotNil(t, backend.creates[0].IsClosedAllDay)
	assert.True(t, *backend.creates[0].IsClosedAllDay)
}

func TestCreateExceptionCustomHours(t *testing.T) {
	backend := &ruleBackend{}
	editor := newRuleTestEditor(t, backend)
	editor.SetExceptionDraft("svc-1", ExceptionDraft{
		Date: "2026-12-26", Mode: ExceptionCustomHours,
		StartTime: "10:00", EndTime: "13:00", BufferMin: "5", SlotIntervalMin: "15",
	})

	editor.CreateException(context.Background(), "svc-1")

	state := editor.Snapshot()
	assert.Equal(t, msgExceptionAdded, state.Notice)
	require.Len(t, state.AvailabilityRules, 1)
	assert.Equal(t, domain.RuleDateOverride, state.AvailabilityRules[0].RuleType)

	backend.mu.Lock()
	defer backend.mu.Unlock()
	require.Len(t, backend.creates, 1)
	require.NotNil(t, backend.creates[0].BufferMin)
	assert.Equal(t, 5, *backend.creates[0].BufferMin)
	require.NotNil(t, backend.creates[0].SlotIntervalMin)
	assert.Equal(t, 15, *backend.creates[0].SlotIntervalMin)
}
