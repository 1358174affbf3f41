package session

// Storage is the persistent key-value backing for session state and
// per-workspace preferences. Implementations are best-effort: a broken
// backend must surface errors here and nowhere else, so the store can
// degrade to an empty in-memory session.
type Storage interface {
	// Load returns every stored key.
	Load() (map[string]string, error)
	// Store writes the given keys. An empty value deletes the key.
	Store(values map[string]string) error
	// Watch invokes onChange whenever another process mutates the
	// storage. The returned stop function detaches the watcher.
	Watch(onChange func()) (stop func(), err error)
}

// Persisted session keys. Preference keys are derived per workspace.
const (
	keyToken       = "careops.token"
	keyWorkspaceID = "careops.workspaceId"
	keyUserName    = "careops.userName"
	keyRole        = "careops.role"

	dismissedAlertsPrefix = "careops.dashboard.dismissedAlerts."
	contactFormAckKey     = "careops:onboarding:contact-form-ack"
)

var sessionKeys = []string{keyToken, keyWorkspaceID, keyUserName, keyRole}
