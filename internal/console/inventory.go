package console

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/erinpaul2002/careops-console/internal/api"
	"github.com/erinpaul2002/careops-console/internal/domain"
	"github.com/erinpaul2002/careops-console/internal/session"
)

// StockFilter narrows the inventory list by stock health.
type StockFilter string

const (
	StockAll     StockFilter = "all"
	StockLow     StockFilter = "low"
	StockHealthy StockFilter = "healthy"
)

// InventoryCreateDraft is the new-item form with raw string inputs.
type InventoryCreateDraft struct {
	Name              string
	Unit              string
	QuantityOnHand    string
	LowStockThreshold string
}

// InventoryEditDraft is the inline edit row for an item.
type InventoryEditDraft struct {
	Name              string
	Unit              string
	LowStockThreshold string
}

// InventorySummary aggregates the full item list, ignoring filters.
type InventorySummary struct {
	TotalItems          int
	LowStockItems       int
	TotalQuantityOnHand int
}

// InventoryState is the inventory view model.
type InventoryState struct {
	Loading          bool
	ErrorMessage     string
	Notice           string
	Items            []domain.InventoryItem
	Query            string
	StockFilter      StockFilter
	CreateDraft      InventoryCreateDraft
	EditDrafts       map[string]InventoryEditDraft
	AdjustmentDrafts map[string]string
	MutatingItemID   string
	CreatingItem     bool
}

// FilteredItems applies the query and stock filters.
func (s InventoryState) FilteredItems() []domain.InventoryItem {
	query := strings.ToLower(strings.TrimSpace(s.Query))
	filtered := make([]domain.InventoryItem, 0, len(s.Items))
	for _, item := range s.Items {
		if query != "" {
			target := strings.ToLower(item.Name + " " + item.Unit)
			if !strings.Contains(target, query) {
				continue
			}
		}
		lowStock := item.QuantityOnHand <= item.LowStockThreshold
		if s.StockFilter == StockLow && !lowStock {
			continue
		}
		if s.StockFilter == StockHealthy && lowStock {
			continue
		}
		filtered = append(filtered, item)
	}
	return filtered
}

// Summary aggregates over the unfiltered list.
func (s InventoryState) Summary() InventorySummary {
	summary := InventorySummary{TotalItems: len(s.Items)}
	for _, item := range s.Items {
		if item.QuantityOnHand <= item.LowStockThreshold {
			summary.LowStockItems++
		}
		summary.TotalQuantityOnHand += item.QuantityOnHand
	}
	return summary
}

// Inventory drives stock management. Quantity only ever changes through
// adjustments; the displayed quantity always comes from the server
// response, never from local arithmetic.
type Inventory struct {
	client   *api.Client
	sess     *session.Store
	validate *validator.Validate

	mu    sync.Mutex
	state InventoryState
}

func NewInventory(client *api.Client, sess *session.Store) *Inventory {
	return &Inventory{
		client:   client,
		sess:     sess,
		validate: validator.New(),
		state: InventoryState{
			Loading:          true,
			StockFilter:      StockAll,
			CreateDraft:      newInventoryCreateDraft(),
			EditDrafts:       map[string]InventoryEditDraft{},
			AdjustmentDrafts: map[string]string{},
		},
	}
}

func newInventoryCreateDraft() InventoryCreateDraft {
	return InventoryCreateDraft{QuantityOnHand: "0", LowStockThreshold: "0"}
}

func (inv *Inventory) State() InventoryState {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	out := inv.state
	out.Items = append([]domain.InventoryItem(nil), inv.state.Items...)
	out.EditDrafts = make(map[string]InventoryEditDraft, len(inv.state.EditDrafts))
	for id, draft := range inv.state.EditDrafts {
		out.EditDrafts[id] = draft
	}
	out.AdjustmentDrafts = make(map[string]string, len(inv.state.AdjustmentDrafts))
	for id, draft := range inv.state.AdjustmentDrafts {
		out.AdjustmentDrafts[id] = draft
	}
	return out
}

// CanManage reports whether the session role may mutate inventory.
func (inv *Inventory) CanManage() bool {
	role := inv.sess.Snapshot().Role
	return role == domain.RoleOwner || role == domain.RoleStaff || role == ""
}

func editDraftsFromItems(items []domain.InventoryItem) map[string]InventoryEditDraft {
	drafts := make(map[string]InventoryEditDraft, len(items))
	for _, item := range items {
		drafts[item.ID] = InventoryEditDraft{
			Name:              item.Name,
			Unit:              item.Unit,
			LowStockThreshold: strconv.Itoa(item.LowStockThreshold),
		}
	}
	return drafts
}

// Load fetches the active item list and rebuilds the edit drafts.
func (inv *Inventory) Load(ctx context.Context) {
	inv.mu.Lock()
	inv.state.Loading = true
	inv.state.ErrorMessage = ""
	inv.state.Notice = ""
	inv.mu.Unlock()

	items, err := inv.client.InventoryItems(ctx, false)

	inv.mu.Lock()
	defer inv.mu.Unlock()
	inv.state.Loading = false
	if err != nil {
		inv.state.ErrorMessage = "Unable to load inventory. Check API access and try again."
		return
	}
	inv.state.Items = items
	inv.state.EditDrafts = editDraftsFromItems(items)
}

// SetQuery updates the text filter.
func (inv *Inventory) SetQuery(query string) {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	inv.state.Query = query
}

// SetStockFilter updates the stock-health filter.
func (inv *Inventory) SetStockFilter(filter StockFilter) {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	inv.state.StockFilter = filter
}

// SetCreateDraft replaces the new-item form.
func (inv *Inventory) SetCreateDraft(draft InventoryCreateDraft) {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	inv.state.CreateDraft = draft
}

// SetEditDraft replaces an item's inline edit row.
func (inv *Inventory) SetEditDraft(itemID string, draft InventoryEditDraft) {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	inv.state.EditDrafts[itemID] = draft
}

// SetAdjustmentDraft replaces an item's custom adjustment input.
func (inv *Inventory) SetAdjustmentDraft(itemID, value string) {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	inv.state.AdjustmentDrafts[itemID] = value
}

func parseNonNegative(raw string) (int, bool) {
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || value < 0 {
		return 0, false
	}
	return value, true
}

// CreateItem validates the draft and posts it.
func (inv *Inventory) CreateItem(ctx context.Context) {
	if !inv.CanManage() {
		inv.setError("Your role does not have permission to create inventory items.")
		return
	}

	inv.mu.Lock()
	draft := inv.state.CreateDraft
	inv.mu.Unlock()

	quantity, quantityOK := parseNonNegative(draft.QuantityOnHand)
	threshold, thresholdOK := parseNonNegative(draft.LowStockThreshold)
	input := domain.InventoryItemCreate{
		Name:              strings.TrimSpace(draft.Name),
		Unit:              strings.TrimSpace(draft.Unit),
		QuantityOnHand:    quantity,
		LowStockThreshold: threshold,
	}
	if !quantityOK || !thresholdOK || inv.validate.Struct(input) != nil {
		inv.setError("Name, unit, quantity, and low-stock threshold are required.")
		return
	}

	inv.mu.Lock()
	inv.state.CreatingItem = true
	inv.state.ErrorMessage = ""
	inv.state.Notice = ""
	inv.mu.Unlock()

	created, err := inv.client.CreateInventoryItem(ctx, input)

	inv.mu.Lock()
	defer inv.mu.Unlock()
	inv.state.CreatingItem = false
	if err != nil {
		inv.state.ErrorMessage = apiMessage(err, "Could not create inventory item.")
		return
	}
	inv.state.Items = append(inv.state.Items, *created)
	inv.state.EditDrafts = editDraftsFromItems(inv.state.Items)
	inv.state.CreateDraft = newInventoryCreateDraft()
	inv.state.Notice = fmt.Sprintf("%s added to inventory.", created.Name)
}

// SaveItem validates and patches an item's metadata.
func (inv *Inventory) SaveItem(ctx context.Context, itemID string) {
	if !inv.CanManage() {
		inv.setError("Your role does not have permission to update inventory items.")
		return
	}

	inv.mu.Lock()
	draft, ok := inv.state.EditDrafts[itemID]
	inv.mu.Unlock()
	if !ok {
		return
	}

	name := strings.TrimSpace(draft.Name)
	unit := strings.TrimSpace(draft.Unit)
	threshold, thresholdOK := parseNonNegative(draft.LowStockThreshold)
	if name == "" || unit == "" || !thresholdOK {
		inv.setError("Name, unit, and low-stock threshold must be valid.")
		return
	}

	inv.mu.Lock()
	inv.state.MutatingItemID = itemID
	inv.state.ErrorMessage = ""
	inv.state.Notice = ""
	inv.mu.Unlock()

	updated, err := inv.client.PatchInventoryItem(ctx, itemID, domain.InventoryItemPatch{
		Name:              &name,
		Unit:              &unit,
		LowStockThreshold: &threshold,
	})

	inv.mu.Lock()
	defer inv.mu.Unlock()
	inv.state.MutatingItemID = ""
	if err != nil {
		inv.state.ErrorMessage = apiMessage(err, "Could not update inventory item.")
		return
	}
	for i := range inv.state.Items {
		if inv.state.Items[i].ID == itemID {
			inv.state.Items[i] = *updated
		}
	}
	inv.state.EditDrafts = editDraftsFromItems(inv.state.Items)
	inv.state.Notice = fmt.Sprintf("%s updated.", updated.Name)
}

// applyAdjust validates the delta, posts the adjustment, and replaces
// the item with the server's version.
func (inv *Inventory) applyAdjust(ctx context.Context, itemID string, delta int) bool {
	if !inv.CanManage() {
		inv.setError("Your role does not have permission to adjust inventory quantity.")
		return false
	}
	if delta == 0 {
		inv.setError("Adjustment must be a non-zero number.")
		return false
	}

	inv.mu.Lock()
	inv.state.MutatingItemID = itemID
	inv.state.ErrorMessage = ""
	inv.state.Notice = ""
	inv.mu.Unlock()

	updated, err := inv.client.AdjustInventoryItem(ctx, itemID, delta, "")

	inv.mu.Lock()
	defer inv.mu.Unlock()
	inv.state.MutatingItemID = ""
	if err != nil {
		inv.state.ErrorMessage = apiMessage(err, "Could not adjust inventory quantity.")
		return false
	}
	for i := range inv.state.Items {
		if inv.state.Items[i].ID == itemID {
			inv.state.Items[i] = *updated
		}
	}
	inv.state.Notice = fmt.Sprintf("Adjusted %s by %d.", updated.Name, delta)
	return true
}

// QuickAdjust applies a preset delta.
func (inv *Inventory) QuickAdjust(ctx context.Context, itemID string, delta int) {
	inv.applyAdjust(ctx, itemID, delta)
}

// ApplyCustomAdjust parses the item's adjustment input and applies it.
// A non-numeric or zero value is rejected before any network call.
func (inv *Inventory) ApplyCustomAdjust(ctx context.Context, itemID string) {
	inv.mu.Lock()
	raw := strings.TrimSpace(inv.state.AdjustmentDrafts[itemID])
	inv.mu.Unlock()

	delta, err := strconv.Atoi(raw)
	if raw == "" || err != nil || delta == 0 {
		inv.setError("Enter a valid non-zero number for custom adjustment.")
		return
	}

	if inv.applyAdjust(ctx, itemID, delta) {
		inv.mu.Lock()
		inv.state.AdjustmentDrafts[itemID] = ""
		inv.mu.Unlock()
	}
}

// ArchiveItem soft-deletes an item and drops its drafts.
func (inv *Inventory) ArchiveItem(ctx context.Context, itemID string) {
	if !inv.CanManage() {
		inv.setError("Your role does not have permission to archive inventory items.")
		return
	}

	inv.mu.Lock()
	inv.state.MutatingItemID = itemID
	inv.state.ErrorMessage = ""
	inv.state.Notice = ""
	inv.mu.Unlock()

	archived, err := inv.client.ArchiveInventoryItem(ctx, itemID)

	inv.mu.Lock()
	defer inv.mu.Unlock()
	inv.state.MutatingItemID = ""
	if err != nil {
		inv.state.ErrorMessage = apiMessage(err, "Could not archive inventory item.")
		return
	}
	items := inv.state.Items[:0:0]
	for _, item := range inv.state.Items {
		if item.ID != itemID {
			items = append(items, item)
		}
	}
	inv.state.Items = items
	delete(inv.state.EditDrafts, itemID)
	delete(inv.state.AdjustmentDrafts, itemID)
	inv.state.Notice = fmt.Sprintf("%s archived.", archived.Name)
}

func (inv *Inventory) setError(message string) {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	inv.state.ErrorMessage = message
	inv.state.Notice = ""
}
