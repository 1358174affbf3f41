package domain

// PublicFieldConfig is one configurable input on the public booking or
// contact form.
type PublicFieldConfig struct {
	Key         string `json:"key"`
	Label       string `json:"label"`
	Type        string `json:"type"`
	Required    bool   `json:"required"`
	Placeholder string `json:"placeholder,omitempty"`
}

// PublicFieldList wraps a field slice for both flow categories.
type PublicFieldList struct {
	Fields []PublicFieldConfig `json:"fields"`
}

// PublicFlowConfig is the public-facing field schema for the booking and
// contact surfaces.
type PublicFlowConfig struct {
	Booking PublicFieldList `json:"booking"`
	Contact PublicFieldList `json:"contact"`
}

// PublicContactRequest is the unauthenticated contact submission.
type PublicContactRequest struct {
	Fields map[string]any `json:"fields"`
}
