package domain

// LocationType of a bookable service.
type LocationType string

const (
	LocationInPerson LocationType = "in_person"
	LocationVirtual  LocationType = "virtual"
)

// InventoryRule reserves stock when a booking of the service is confirmed.
type InventoryRule struct {
	ItemID   string `json:"itemId"`
	Quantity int    `json:"quantity"`
}

// Service is a bookable offering of the workspace.
type Service struct {
	ID                    string          `json:"id"`
	Name                  string          `json:"name"`
	DurationMin           int             `json:"durationMin"`
	LocationType          LocationType    `json:"locationType"`
	InventoryRules        []InventoryRule `json:"inventoryRules,omitempty"`
	BookingFormTemplateID string          `json:"bookingFormTemplateId,omitempty"`
	IsActive              bool            `json:"isActive"`
}

// ServiceCreate is the new-service payload.
type ServiceCreate struct {
	Name                  string          `json:"name" validate:"required"`
	DurationMin           int             `json:"durationMin" validate:"required,gt=0"`
	LocationType          LocationType    `json:"locationType" validate:"required,oneof=in_person virtual"`
	InventoryRules        []InventoryRule `json:"inventoryRules,omitempty"`
	BookingFormTemplateID string          `json:"bookingFormTemplateId,omitempty"`
}

// ServicePatch updates a subset of service fields. BookingFormTemplateID uses
// a double pointer so that "clear the link" (explicit null) and "leave it
// alone" (absent) stay distinguishable on the wire.
type ServicePatch struct {
	Name                  *string          `json:"name,omitempty"`
	DurationMin           *int             `json:"durationMin,omitempty"`
	LocationType          *LocationType    `json:"locationType,omitempty"`
	IsActive              *bool            `json:"isActive,omitempty"`
	InventoryRules        *[]InventoryRule `json:"inventoryRules,omitempty"`
	BookingFormTemplateID **string         `json:"bookingFormTemplateId,omitempty"`
}

// RuleType distinguishes the three availability rule shapes.
type RuleType string

const (
	RuleWeekly       RuleType = "weekly"
	RuleDateOverride RuleType = "date_override"
	RuleDateBlock    RuleType = "date_block"
)

// AvailabilityRule is either a weekly recurring window, a custom-hours date
// override, or a full/partial date block. The three types use mutually
// exclusive field subsets.
type AvailabilityRule struct {
	ID              string   `json:"id"`
	ServiceID       string   `json:"serviceId"`
	RuleType        RuleType `json:"ruleType,omitempty"`
	Weekday         *int     `json:"weekday,omitempty"`
	Date            string   `json:"date,omitempty"`
	StartTime       string   `json:"startTime,omitempty"`
	EndTime         string   `json:"endTime,omitempty"`
	BufferMin       *int     `json:"bufferMin,omitempty"`
	SlotIntervalMin *int     `json:"slotIntervalMin,omitempty"`
	IsClosedAllDay  bool     `json:"isClosedAllDay,omitempty"`
	CreatedAt       string   `json:"createdAt,omitempty"`
	UpdatedAt       string   `json:"updatedAt,omitempty"`
}

// AvailabilityRuleCreate carries the create payload for any rule type.
type AvailabilityRuleCreate struct {
	ServiceID       string   `json:"serviceId" validate:"required"`
	RuleType        RuleType `json:"ruleType,omitempty"`
	Weekday         *int     `json:"weekday,omitempty"`
	Date            string   `json:"date,omitempty"`
	StartTime       string   `json:"startTime,omitempty"`
	EndTime         string   `json:"endTime,omitempty"`
	BufferMin       *int     `json:"bufferMin,omitempty"`
	SlotIntervalMin *int     `json:"slotIntervalMin,omitempty"`
	IsClosedAllDay  *bool    `json:"isClosedAllDay,omitempty"`
}

// AvailabilityRulePatch updates a subset of rule fields. SlotIntervalMin is
// double-pointered for explicit null (remove the interval).
type AvailabilityRulePatch struct {
	RuleType        *RuleType `json:"ruleType,omitempty"`
	Weekday         *int      `json:"weekday,omitempty"`
	Date            *string   `json:"date,omitempty"`
	StartTime       *string   `json:"startTime,omitempty"`
	EndTime         *string   `json:"endTime,omitempty"`
	BufferMin       *int      `json:"bufferMin,omitempty"`
	SlotIntervalMin **int     `json:"slotIntervalMin,omitempty"`
	IsClosedAllDay  *bool     `json:"isClosedAllDay,omitempty"`
}
