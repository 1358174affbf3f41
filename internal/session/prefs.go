package session

import "encoding/json"

// Prefs holds the two per-workspace console preferences that live outside
// the session proper: dismissed dashboard alert ids and the contact-form
// onboarding acknowledgement. Both are best-effort; failures degrade to the
// zero value and are never surfaced to callers.
type Prefs struct {
	storage Storage
}

func NewPrefs(storage Storage) *Prefs {
	return &Prefs{storage: storage}
}

// DismissedAlertIDs returns the hidden alert ids for the workspace.
func (p *Prefs) DismissedAlertIDs(workspaceID string) []string {
	values, err := p.storage.Load()
	if err != nil {
		return nil
	}
	raw := values[dismissedAlertsKey(workspaceID)]
	if raw == "" {
		return nil
	}
	var ids []string
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		return nil
	}
	return ids
}

// SetDismissedAlertIDs replaces the hidden alert list; an empty list
// removes the key.
func (p *Prefs) SetDismissedAlertIDs(workspaceID string, ids []string) {
	key := dismissedAlertsKey(workspaceID)
	if len(ids) == 0 {
		_ = p.storage.Store(map[string]string{key: ""})
		return
	}
	raw, err := json.Marshal(ids)
	if err != nil {
		return
	}
	_ = p.storage.Store(map[string]string{key: string(raw)})
}

// ContactFormAcknowledged reports whether the owner has accepted the
// default contact form for this workspace during onboarding.
func (p *Prefs) ContactFormAcknowledged(workspaceID string) bool {
	if workspaceID == "" {
		return false
	}
	values, err := p.storage.Load()
	if err != nil {
		return false
	}
	raw := values[contactFormAckKey]
	if raw == "" {
		return false
	}
	acks := map[string]bool{}
	if err := json.Unmarshal([]byte(raw), &acks); err != nil {
		return false
	}
	return acks[workspaceID]
}

// AcknowledgeContactForm records the acknowledgement for the workspace.
func (p *Prefs) AcknowledgeContactForm(workspaceID string) {
	if workspaceID == "" {
		return
	}
	values, err := p.storage.Load()
	acks := map[string]bool{}
	if err == nil {
		if raw := values[contactFormAckKey]; raw != "" {
			_ = json.Unmarshal([]byte(raw), &acks)
		}
	}
	acks[workspaceID] = true
	raw, err := json.Marshal(acks)
	if err != nil {
		return
	}
	_ = p.storage.Store(map[string]string{contactFormAckKey: string(raw)})
}

func dismissedAlertsKey(workspaceID string) string {
	if workspaceID == "" {
		workspaceID = "default"
	}
	return dismissedAlertsPrefix + workspaceID
}
