package domain

// IntegrationProvider identifiers used by the connect endpoint.
const (
	ProviderGmail          = "gmail"
	ProviderGoogleCalendar = "google-calendar"
)

// IntegrationStatus of a channel connection.
type IntegrationStatus string

const (
	IntegrationConnected    IntegrationStatus = "connected"
	IntegrationError        IntegrationStatus = "error"
	IntegrationDisconnected IntegrationStatus = "disconnected"
)

// IntegrationConnection is one linked external channel (Gmail, Calendar,
// Twilio).
type IntegrationConnection struct {
	ID           string            `json:"id"`
	Provider     string            `json:"provider"`
	Status       IntegrationStatus `json:"status"`
	Scopes       []string          `json:"scopes"`
	ErrorMessage string            `json:"errorMessage,omitempty"`
	LastSyncAt   string            `json:"lastSyncAt,omitempty"`
}

// IntegrationConnectResponse carries the OAuth consent URL to open.
type IntegrationConnectResponse struct {
	Provider string `json:"provider"`
	AuthURL  string `json:"authUrl"`
}
