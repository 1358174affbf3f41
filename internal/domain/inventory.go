package domain

// InventoryItem is a tracked stock line.
type InventoryItem struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	Unit              string `json:"unit"`
	QuantityOnHand    int    `json:"quantityOnHand"`
	LowStockThreshold int    `json:"lowStockThreshold"`
	IsActive          bool   `json:"isActive"`
}

// InventoryItemCreate is the new-item payload.
type InventoryItemCreate struct {
	Name              string `json:"name" validate:"required"`
	Unit              string `json:"unit" validate:"required"`
	QuantityOnHand    int    `json:"quantityOnHand" validate:"gte=0"`
	LowStockThreshold int    `json:"lowStockThreshold" validate:"gte=0"`
}

// InventoryItemPatch updates a subset of item fields (quantity moves only
// through Adjust).
type InventoryItemPatch struct {
	Name              *string `json:"name,omitempty"`
	Unit              *string `json:"unit,omitempty"`
	LowStockThreshold *int    `json:"lowStockThreshold,omitempty"`
	IsActive          *bool   `json:"isActive,omitempty"`
}
