package domain

// BookingStatus lifecycle values. Transitions happen server-side; the
// console only requests them.
type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCompleted BookingStatus = "completed"
	BookingCancelled BookingStatus = "cancelled"
	BookingNoShow    BookingStatus = "no_show"
)

// Contact is the lead or customer attached to conversations and bookings.
type Contact struct {
	ID           string         `json:"id"`
	FirstName    string         `json:"firstName"`
	LastName     string         `json:"lastName"`
	Email        string         `json:"email,omitempty"`
	Phone        string         `json:"phone,omitempty"`
	CustomFields map[string]any `json:"customFields,omitempty"`
}

// Booking is a scheduled appointment projection.
type Booking struct {
	ID              string         `json:"id"`
	WorkspaceID     string         `json:"workspaceId,omitempty"`
	ContactID       string         `json:"contactId,omitempty"`
	ServiceID       string         `json:"serviceId,omitempty"`
	StartsAt        string         `json:"startsAt"`
	EndsAt          string         `json:"endsAt"`
	Status          BookingStatus  `json:"status"`
	CalendarEventID string         `json:"calendarEventId,omitempty"`
	Notes           string         `json:"notes,omitempty"`
	CustomFields    map[string]any `json:"customFields,omitempty"`
	CreatedAt       string         `json:"createdAt,omitempty"`
	UpdatedAt       string         `json:"updatedAt,omitempty"`
	Contact         *Contact       `json:"contact,omitempty"`
	Service         *Service       `json:"service,omitempty"`
}

// BookingFilters narrows the owner/staff bookings list.
type BookingFilters struct {
	Status   BookingStatus
	DateFrom string
	DateTo   string
}

// Slot is one bookable window on the public booking page.
type Slot struct {
	StartsAt string `json:"startsAt"`
	EndsAt   string `json:"endsAt"`
}

// PublicSlots is the slot list with the workspace display timezone.
type PublicSlots struct {
	Slots    []Slot `json:"slots"`
	Timezone string `json:"timezone"`
}

// PublicBookingRequest is the unauthenticated booking submission.
type PublicBookingRequest struct {
	ServiceID string         `json:"serviceId" validate:"required"`
	StartsAt  string         `json:"startsAt" validate:"required"`
	Fields    map[string]any `json:"fields"`
}

// FormRequestRef is the optional follow-up form attached to a confirmed
// public booking.
type FormRequestRef struct {
	ID          string `json:"id"`
	PublicToken string `json:"publicToken"`
	Status      string `json:"status"`
}

// PublicBookingResult is the confirmation returned to the public page.
type PublicBookingResult struct {
	Booking     Booking         `json:"booking"`
	FormRequest *FormRequestRef `json:"formRequest,omitempty"`
}
