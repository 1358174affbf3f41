package console

import (
	"context"
	"sync"
	"time"

	"github.com/erinpaul2002/careops-console/internal/api"
	"github.com/erinpaul2002/careops-console/internal/domain"
	"github.com/erinpaul2002/careops-console/internal/session"
)

const dashboardRefreshInterval = 45 * time.Second

// DashboardState is the landing view model.
type DashboardState struct {
	Loading      bool
	ErrorMessage string
	Summary      domain.DashboardSummary
	Metrics      domain.DashboardMetrics

	HasDismissedAlerts bool
}

// Dashboard serves the daily summary and the 30-day metrics block.
// Alert dismissals are a local preference, never sent to the backend.
type Dashboard struct {
	client *api.Client
	sess   *session.Store
	prefs  *session.Prefs

	mu    sync.Mutex
	state DashboardState
}

func NewDashboard(client *api.Client, sess *session.Store, prefs *session.Prefs) *Dashboard {
	return &Dashboard{
		client: client,
		sess:   sess,
		prefs:  prefs,
		state: DashboardState{
			Loading: true,
			Metrics: domain.DashboardMetrics{Period: "30d"},
		},
	}
}

// State returns a copy of the dashboard view model.
func (d *Dashboard) State() DashboardState {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := d.state
	out.Summary.Alerts = append([]domain.Alert(nil), d.state.Summary.Alerts...)
	return out
}

func (d *Dashboard) dismissKey() string {
	workspaceID := d.sess.Snapshot().WorkspaceID
	if workspaceID == "" {
		return "default"
	}
	return workspaceID
}

// Refresh fetches the summary and metrics together and filters out
// locally dismissed alerts.
func (d *Dashboard) Refresh(ctx context.Context, showLoading bool) {
	if showLoading {
		d.mu.Lock()
		d.state.Loading = true
		d.state.ErrorMessage = ""
		d.mu.Unlock()
	}

	var (
		wg      sync.WaitGroup
		summary *domain.DashboardSummary
		metrics *domain.DashboardMetrics
		errs    [2]error
	)
	wg.Add(2)
	go func() { defer wg.Done(); summary, errs[0] = d.client.DashboardSummary(ctx, "") }()
	go func() { defer wg.Done(); metrics, errs[1] = d.client.DashboardMetrics(ctx, "30d") }()
	wg.Wait()

	d.mu.Lock()
	defer d.mu.Unlock()
	d.state.Loading = false
	if errs[0] != nil || errs[1] != nil {
		d.state.ErrorMessage = "Unable to load dashboard data."
		d.state.Summary = domain.DashboardSummary{Alerts: []domain.Alert{}}
		d.state.Metrics = domain.DashboardMetrics{Period: "30d"}
		return
	}

	dismissed := d.prefs.DismissedAlertIDs(d.dismissKey())
	if len(dismissed) > 0 {
		dismissedSet := make(map[string]bool, len(dismissed))
		for _, id := range dismissed {
			dismissedSet[id] = true
		}
		filtered := summary.Alerts[:0:0]
		for _, alert := range summary.Alerts {
			if !dismissedSet[alert.ID] {
				filtered = append(filtered, alert)
			}
		}
		summary.Alerts = filtered
	}

	d.state.ErrorMessage = ""
	d.state.Summary = *summary
	d.state.Metrics = *metrics
	d.state.HasDismissedAlerts = len(dismissed) > 0
}

// Run refreshes on an interval until the context ends.
func (d *Dashboard) Run(ctx context.Context) {
	d.Refresh(ctx, false)
	ticker := time.NewTicker(dashboardRefreshInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			d.Refresh(ctx, true)
		}
	}
}

// ClearAlerts dismisses every visible alert locally.
func (d *Dashboard) ClearAlerts() {
	d.mu.Lock()
	visible := make([]string, 0, len(d.state.Summary.Alerts))
	for _, alert := range d.state.Summary.Alerts {
		visible = append(visible, alert.ID)
	}
	d.mu.Unlock()
	if len(visible) == 0 {
		return
	}

	key := d.dismissKey()
	dismissed := d.prefs.DismissedAlertIDs(key)
	seen := make(map[string]bool, len(dismissed))
	for _, id := range dismissed {
		seen[id] = true
	}
	for _, id := range visible {
		if !seen[id] {
			dismissed = append(dismissed, id)
			seen[id] = true
		}
	}
	d.prefs.SetDismissedAlertIDs(key, dismissed)

	d.mu.Lock()
	defer d.mu.Unlock()
	d.state.Summary.Alerts = []domain.Alert{}
	d.state.HasDismissedAlerts = true
}

// RestoreAlerts forgets all dismissals and refetches.
func (d *Dashboard) RestoreAlerts(ctx context.Context) {
	d.prefs.SetDismissedAlertIDs(d.dismissKey(), nil)
	d.mu.Lock()
	d.state.HasDismissedAlerts = false
	d.mu.Unlock()
	d.Refresh(ctx, false)
}
