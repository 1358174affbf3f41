package domain

// AlertSeverity on a dashboard alert.
type AlertSeverity string

const (
	SeverityInfo     AlertSeverity = "info"
	SeverityWarning  AlertSeverity = "warning"
	SeverityCritical AlertSeverity = "critical"
)

// Alert is a backend-generated attention item on the dashboard.
type Alert struct {
	ID        string        `json:"id"`
	Type      string        `json:"type"`
	Severity  AlertSeverity `json:"severity"`
	Message   string        `json:"message"`
	CreatedAt string        `json:"createdAt"`
}

// DashboardSummary is the day-at-a-glance panel.
type DashboardSummary struct {
	Date                    string  `json:"date"`
	BookingsToday           int     `json:"bookingsToday"`
	NewLeadsToday           int     `json:"newLeadsToday"`
	UnansweredConversations int     `json:"unansweredConversations"`
	PendingForms            int     `json:"pendingForms"`
	LowStockItems           int     `json:"lowStockItems"`
	Alerts                  []Alert `json:"alerts"`
}

// DashboardMetrics is the rolling conversion/completion panel.
type DashboardMetrics struct {
	Period      string `json:"period"`
	GeneratedAt string `json:"generatedAt"`
	Metrics     struct {
		Leads                    int     `json:"leads"`
		Bookings                 int     `json:"bookings"`
		ConfirmedBookings        int     `json:"confirmedBookings"`
		CompletedBookings        int     `json:"completedBookings"`
		CancelledBookings        int     `json:"cancelledBookings"`
		NoShowBookings           int     `json:"noShowBookings"`
		BookingConversionRatePct float64 `json:"bookingConversionRatePct"`
		CompletionRatePct        float64 `json:"completionRatePct"`
	} `json:"metrics"`
}
