package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/erinpaul2002/careops-console/internal/api"
	"github.com/erinpaul2002/careops-console/internal/config"
	"github.com/erinpaul2002/careops-console/internal/console"
	"github.com/erinpaul2002/careops-console/internal/domain"
	"github.com/erinpaul2002/careops-console/internal/flowsetup"
	"github.com/erinpaul2002/careops-console/internal/onboarding"
	"github.com/erinpaul2002/careops-console/internal/session"
)

// Handlers bundles the controllers behind the route tree. Console
// controllers are long-lived; public page controllers are built per
// request from the path parameters.
type Handlers struct {
	client *api.Client
	sess   *session.Store

	shell        *console.Shell
	login        *console.AuthLogin
	signup       *console.AuthSignup
	dashboard    *console.Dashboard
	bookings     *console.Bookings
	inbox        *console.Inbox
	inventory    *console.Inventory
	staff        *console.Staff
	forms        *console.Forms
	integrations *console.Integrations
	onboarding   *onboarding.Engine
	setup        *flowsetup.Editor
}

// NewHandlers wires every controller over one API client and session
// store.
func NewHandlers(client *api.Client, sess *session.Store, prefs *session.Prefs, timezone string) *Handlers {
	return &Handlers{
		client:       client,
		sess:         sess,
		shell:        console.NewShell(client, sess),
		login:        console.NewAuthLogin(client, sess),
		signup:       console.NewAuthSignup(client, sess, timezone),
		dashboard:    console.NewDashboard(client, sess, prefs),
		bookings:     console.NewBookings(client),
		inbox:        console.NewInbox(client),
		inventory:    console.NewInventory(client, sess),
		staff:        console.NewStaff(client, sess),
		forms:        console.NewForms(client),
		integrations: console.NewIntegrations(client),
		onboarding:   onboarding.NewEngine(client, sess, prefs),
		setup:        flowsetup.NewEditor(client),
	}
}

// NewRouter creates and configures the HTTP router
func NewRouter(cfg *config.Config, h *Handlers) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(cfg.Server.WriteTimeout))

	// CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/", h.home)

	r.Get("/login", h.loginPage)
	r.Post("/login", h.loginSubmit)
	r.Get("/signup", h.signupPage)
	r.Post("/signup", h.signupSubmit)
	r.Post("/signout", h.signOut)

	r.Get("/settings", h.legacySettings)

	r.Route("/onboarding", func(r chi.Router) {
		r.Use(h.requireSession)
		r.Get("/", h.onboardingPage)
		r.Post("/select", h.onboardingSelect)
		r.Post("/next", h.onboardingNext)
		r.Post("/previous", h.onboardingPrevious)
		r.Post("/activate", h.onboardingActivate)
	})

	r.Route("/owner", func(r chi.Router) {
		r.Use(h.requireRole(domain.RoleOwner))
		h.mountDashboard(r, "/owner")
		h.mountSetup(r)
		h.mountInventory(r)

		r.Get("/staff", h.staffPage)
		r.Post("/staff/create", h.staffCreate)
		r.Post("/staff/role", h.staffToggleRole)
		r.Post("/staff/remove", h.staffRemove)

		r.Get("/settings", h.integrationsPage)
		r.Post("/settings/connect", h.integrationsConnect)
		r.Post("/settings/sync", h.integrationsSync)
		r.Post("/settings/disconnect", h.integrationsDisconnect)
		r.Post("/settings/ai-config", h.integrationsAIConfig)
	})

	r.Route("/staff", func(r chi.Router) {
		r.Use(h.requireRole(domain.RoleStaff))
		h.mountDashboard(r, "/staff")
		h.mountSetup(r)
		h.mountInventory(r)

		r.Get("/inbox", h.inboxPage)
		r.Post("/inbox/select", h.inboxSelect)
		r.Post("/inbox/send", h.inboxSend)
		r.Post("/inbox/ai-draft", h.inboxAIDraft)

		r.Get("/bookings", h.bookingsPage)
		r.Post("/bookings/status", h.bookingsStatus)

		r.Get("/forms", h.formsPage)
		r.Get("/forms/download", h.formsDownload)
	})

	// Public, unauthenticated surfaces
	r.Get("/b/{workspaceSlug}", h.publicBookingPage)
	r.Post("/b/{workspaceSlug}", h.publicBookingSubmit)
	r.Get("/f/{workspaceSlug}/contact", h.publicContactPage)
	r.Post("/f/{workspaceSlug}/contact", h.publicContactSubmit)
	r.Get("/forms/{token}", h.publicFormPage)
	r.Post("/forms/{token}", h.publicFormSubmit)

	return r
}

func (h *Handlers) mountDashboard(r chi.Router, basePath string) {
	r.Get("/dashboard", h.dashboardPage(basePath))
	r.Post("/dashboard/alerts/clear", h.dashboardClearAlerts)
	r.Post("/dashboard/alerts/restore", h.dashboardRestoreAlerts)
}

func (h *Handlers) mountSetup(r chi.Router) {
	r.Get("/setup", h.setupPage)
	r.Post("/setup/service/create", h.setupServiceCreate)
	r.Post("/setup/service/toggle", h.setupServiceToggle)
	r.Post("/setup/service/delete", h.setupServiceDelete)
	r.Post("/setup/service/template", h.setupServiceTemplate)
	r.Post("/setup/weekly/save", h.setupWeeklySave)
	r.Post("/setup/exception/create", h.setupExceptionCreate)
	r.Post("/setup/template/create", h.setupTemplateCreate)
	r.Post("/setup/template/delete", h.setupTemplateDelete)
	r.Post("/setup/public-flow/save", h.setupPublicFlowSave)
}

func (h *Handlers) mountInventory(r chi.Router) {
	r.Get("/inventory", h.inventoryPage)
	r.Post("/inventory/create", h.inventoryCreate)
	r.Post("/inventory/adjust", h.inventoryAdjust)
	r.Post("/inventory/adjust-custom", h.inventoryAdjustCustom)
	r.Post("/inventory/archive", h.inventoryArchive)
}

// requireSession bounces unauthenticated visitors to the login page.
func (h *Handlers) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !h.sess.Snapshot().Authenticated() {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// requireRole keeps each role surface on its own routes.
func (h *Handlers) requireRole(role domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if target := h.shell.GuardRedirect(role); target != "" {
				http.Redirect(w, r, target, http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// home sends visitors to their role's dashboard, or to login.
func (h *Handlers) home(w http.ResponseWriter, r *http.Request) {
	snap := h.sess.Snapshot()
	if !snap.Authenticated() {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	role := snap.Role
	if role == "" {
		role = domain.RoleOwner
	}
	http.Redirect(w, r, "/"+string(role)+"/dashboard", http.StatusSeeOther)
}

func (h *Handlers) legacySettings(w http.ResponseWriter, r *http.Request) {
	target := h.shell.ResolveLegacySettings(r.Context(), r.URL.RawQuery)
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func (h *Handlers) signOut(w http.ResponseWriter, r *http.Request) {
	h.shell.SignOut()
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// viewFor builds the page envelope with role-appropriate chrome.
func (h *Handlers) viewFor(role domain.Role, basePath string, data any) viewData {
	return viewData{
		Title:          h.shell.Title(role),
		WorkspaceLabel: h.shell.WorkspaceLabel(),
		Nav:            h.shell.NavItems(role, basePath),
		Data:           data,
	}
}

// sessionRole reads the visitor's role, defaulting to owner.
func (h *Handlers) sessionRole() domain.Role {
	if role := h.sess.Snapshot().Role; role != "" {
		return role
	}
	return domain.RoleOwner
}

// rolePath prefixes a console path with the visitor's role segment.
func (h *Handlers) rolePath(suffix string) string {
	return "/" + string(h.sessionRole()) + suffix
}
