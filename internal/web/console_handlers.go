package web

import (
	"net/http"
	"strconv"

	"github.com/erinpaul2002/careops-console/internal/console"
	"github.com/erinpaul2002/careops-console/internal/domain"
)

func formInt(r *http.Request, name string) int {
	value, _ := strconv.Atoi(r.PostFormValue(name))
	return value
}

// redirectBack returns to the page the form was posted from.
func redirectBack(w http.ResponseWriter, r *http.Request, fallback string) {
	target := r.Referer()
	if target == "" {
		target = fallback
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// Dashboard

type dashboardView struct {
	console.DashboardState
}

func (h *Handlers) dashboardPage(basePath string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		role := h.sessionRole()
		if target := h.shell.OnboardingGate(r.Context(), role, r.URL.Path, basePath); target != "" {
			http.Redirect(w, r, target, http.StatusSeeOther)
			return
		}
		h.dashboard.Refresh(r.Context(), true)
		h.renderAuthed(w, r, "dashboard", h.viewFor(role, basePath, dashboardView{h.dashboard.State()}))
	}
}

func (h *Handlers) dashboardClearAlerts(w http.ResponseWriter, r *http.Request) {
	h.dashboard.ClearAlerts()
	redirectBack(w, r, h.rolePath("/dashboard"))
}

func (h *Handlers) dashboardRestoreAlerts(w http.ResponseWriter, r *http.Request) {
	h.dashboard.RestoreAlerts(r.Context())
	redirectBack(w, r, h.rolePath("/dashboard"))
}

// Bookings

func (h *Handlers) bookingsPage(w http.ResponseWriter, r *http.Request) {
	filter := domain.BookingStatus(r.URL.Query().Get("status"))
	h.bookings.Load(r.Context(), filter)
	h.renderAuthed(w, r, "bookings", h.viewFor(h.sessionRole(), "/staff", h.bookings.State()))
}

func (h *Handlers) bookingsStatus(w http.ResponseWriter, r *http.Request) {
	h.bookings.UpdateStatus(r.Context(), r.PostFormValue("bookingId"), domain.BookingStatus(r.PostFormValue("status")))
	redirectBack(w, r, "/staff/bookings")
}

// Inbox

func (h *Handlers) inboxPage(w http.ResponseWriter, r *http.Request) {
	h.inbox.Refresh(r.Context(), true)
	h.renderAuthed(w, r, "inbox", h.viewFor(h.sessionRole(), "/staff", h.inbox.State()))
}

func (h *Handlers) inboxSelect(w http.ResponseWriter, r *http.Request) {
	h.inbox.SelectConversation(r.Context(), r.PostFormValue("conversationId"))
	redirectBack(w, r, "/staff/inbox")
}

func (h *Handlers) inboxSend(w http.ResponseWriter, r *http.Request) {
	h.inbox.SetDraft(r.PostFormValue("draft"))
	h.inbox.Send(r.Context())
	redirectBack(w, r, "/staff/inbox")
}

func (h *Handlers) inboxAIDraft(w http.ResponseWriter, r *http.Request) {
	h.inbox.GenerateAIDraft(r.Context())
	redirectBack(w, r, "/staff/inbox")
}

// Inventory

type inventoryView struct {
	State     console.InventoryState
	Items     []domain.InventoryItem
	Summary   console.InventorySummary
	CanManage bool
}

func (h *Handlers) inventoryPage(w http.ResponseWriter, r *http.Request) {
	h.inventory.SetQuery(r.URL.Query().Get("q"))
	if stock := r.URL.Query().Get("stock"); stock != "" {
		h.inventory.SetStockFilter(console.StockFilter(stock))
	}
	h.inventory.Load(r.Context())

	state := h.inventory.State()
	h.renderAuthed(w, r, "inventory", h.viewFor(h.sessionRole(), h.rolePath(""), inventoryView{
		State:     state,
		Items:     state.FilteredItems(),
		Summary:   state.Summary(),
		CanManage: h.inventory.CanManage(),
	}))
}

func (h *Handlers) inventoryCreate(w http.ResponseWriter, r *http.Request) {
	h.inventory.SetCreateDraft(console.InventoryCreateDraft{
		Name:              r.PostFormValue("name"),
		Unit:              r.PostFormValue("unit"),
		QuantityOnHand:    r.PostFormValue("quantityOnHand"),
		LowStockThreshold: r.PostFormValue("lowStockThreshold"),
	})
	h.inventory.CreateItem(r.Context())
	redirectBack(w, r, h.rolePath("/inventory"))
}

func (h *Handlers) inventoryAdjust(w http.ResponseWriter, r *http.Request) {
	h.inventory.QuickAdjust(r.Context(), r.PostFormValue("itemId"), formInt(r, "delta"))
	redirectBack(w, r, h.rolePath("/inventory"))
}

func (h *Handlers) inventoryAdjustCustom(w http.ResponseWriter, r *http.Request) {
	itemID := r.PostFormValue("itemId")
	h.inventory.SetAdjustmentDraft(itemID, r.PostFormValue("amount"))
	h.inventory.ApplyCustomAdjust(r.Context(), itemID)
	redirectBack(w, r, h.rolePath("/inventory"))
}

func (h *Handlers) inventoryArchive(w http.ResponseWriter, r *http.Request) {
	h.inventory.ArchiveItem(r.Context(), r.PostFormValue("itemId"))
	redirectBack(w, r, h.rolePath("/inventory"))
}

// Staff management

func (h *Handlers) staffPage(w http.ResponseWriter, r *http.Request) {
	h.staff.Refresh(r.Context())
	h.renderAuthed(w, r, "staff", h.viewFor(domain.RoleOwner, "/owner", h.staff.State()))
}

func (h *Handlers) staffCreate(w http.ResponseWriter, r *http.Request) {
	h.staff.SetDraft(console.StaffDraft{
		Name:     r.PostFormValue("name"),
		Email:    r.PostFormValue("email"),
		Password: r.PostFormValue("password"),
	})
	h.staff.CreateStaff(r.Context())
	redirectBack(w, r, "/owner/staff")
}

func (h *Handlers) staffMemberByID(memberID string) (domain.WorkspaceMember, bool) {
	for _, member := range h.staff.State().Members {
		if member.ID == memberID {
			return member, true
		}
	}
	return domain.WorkspaceMember{}, false
}

func (h *Handlers) staffToggleRole(w http.ResponseWriter, r *http.Request) {
	if member, ok := h.staffMemberByID(r.PostFormValue("memberId")); ok {
		h.staff.ToggleRole(r.Context(), member)
	}
	redirectBack(w, r, "/owner/staff")
}

func (h *Handlers) staffRemove(w http.ResponseWriter, r *http.Request) {
	if member, ok := h.staffMemberByID(r.PostFormValue("memberId")); ok {
		h.staff.RemoveMember(r.Context(), member)
	}
	redirectBack(w, r, "/owner/staff")
}

// Forms workspace

func (h *Handlers) formsPage(w http.ResponseWriter, r *http.Request) {
	filter := domain.FormRequestStatus(r.URL.Query().Get("status"))
	h.forms.Load(r.Context(), filter, true)
	h.renderAuthed(w, r, "forms", h.viewFor(domain.RoleStaff, "/staff", h.forms.State()))
}

func (h *Handlers) formsDownload(w http.ResponseWriter, r *http.Request) {
	formRequestID := r.URL.Query().Get("formRequestId")
	fileKey := r.URL.Query().Get("fileKey")
	url, err := h.forms.FileDownloadURL(r.Context(), formRequestID, fileKey)
	if err != nil || url == "" {
		http.Error(w, "file unavailable", http.StatusNotFound)
		return
	}
	http.Redirect(w, r, url, http.StatusSeeOther)
}

// Integrations

func (h *Handlers) integrationsPage(w http.ResponseWriter, r *http.Request) {
	if status := r.URL.Query().Get("status"); status != "" {
		h.integrations.HandleOAuthReturn(r.Context(), status, r.URL.Query().Get("message"))
	} else {
		h.integrations.Refresh(r.Context())
	}
	h.renderAuthed(w, r, "integrations", h.viewFor(domain.RoleOwner, "/owner", h.integrations.State()))
}

func (h *Handlers) integrationsConnect(w http.ResponseWriter, r *http.Request) {
	authURL, err := h.integrations.Connect(r.Context(), r.PostFormValue("provider"))
	if err != nil || authURL == "" {
		redirectBack(w, r, "/owner/settings")
		return
	}
	http.Redirect(w, r, authURL, http.StatusSeeOther)
}

func (h *Handlers) integrationsSync(w http.ResponseWriter, r *http.Request) {
	h.integrations.Sync(r.Context(), r.PostFormValue("provider"))
	redirectBack(w, r, "/owner/settings")
}

func (h *Handlers) integrationsDisconnect(w http.ResponseWriter, r *http.Request) {
	h.integrations.Disconnect(r.Context(), r.PostFormValue("provider"))
	redirectBack(w, r, "/owner/settings")
}

func (h *Handlers) integrationsAIConfig(w http.ResponseWriter, r *http.Request) {
	contactAutoReply := r.PostFormValue("contactAutoReply") != ""
	inboxReplyAssist := r.PostFormValue("inboxReplyAssist") != ""
	h.integrations.UpdateAIConfig(r.Context(), domain.AIConfigPatch{
		ContactAutoReplyEnabled: &contactAutoReply,
		InboxReplyAssistEnabled: &inboxReplyAssist,
	})
	redirectBack(w, r, "/owner/settings")
}
