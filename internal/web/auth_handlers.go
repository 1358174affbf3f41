package web

import (
	"net/http"

	"github.com/erinpaul2002/careops-console/internal/console"
	"github.com/erinpaul2002/careops-console/internal/domain"
)

func (h *Handlers) loginPage(w http.ResponseWriter, r *http.Request) {
	render(w, "login", viewData{Title: "CareOps Sign in", Data: h.login.State()})
}

func (h *Handlers) loginSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	mode := console.LoginOwner
	if r.PostFormValue("mode") == string(console.LoginStaff) {
		mode = console.LoginStaff
	}
	h.login.SetMode(mode)
	h.login.SetEmail(r.PostFormValue("email"))
	h.login.SetPassword(r.PostFormValue("password"))

	if target := h.login.Submit(r.Context()); target != "" {
		http.Redirect(w, r, target, http.StatusSeeOther)
		return
	}
	render(w, "login", viewData{Title: "CareOps Sign in", Data: h.login.State()})
}

func (h *Handlers) signupPage(w http.ResponseWriter, r *http.Request) {
	render(w, "signup", viewData{Title: "CareOps Sign up", Data: h.signup.State()})
}

func (h *Handlers) signupSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	h.signup.SetName(r.PostFormValue("name"))
	h.signup.SetEmail(r.PostFormValue("email"))
	h.signup.SetPassword(r.PostFormValue("password"))
	h.signup.SetWorkspaceName(r.PostFormValue("workspaceName"))
	if timezone := r.PostFormValue("timezone"); timezone != "" {
		h.signup.SetTimezone(timezone)
	}

	if target := h.signup.Submit(r.Context()); target != "" {
		http.Redirect(w, r, target, http.StatusSeeOther)
		return
	}
	render(w, "signup", viewData{Title: "CareOps Sign up", Data: h.signup.State()})
}

func (h *Handlers) onboardingPage(w http.ResponseWriter, r *http.Request) {
	h.onboarding.Refresh(r.Context())
	h.renderAuthed(w, r, "onboarding", h.viewFor(domain.RoleOwner, "/owner", h.onboarding.Snapshot()))
}

func (h *Handlers) onboardingSelect(w http.ResponseWriter, r *http.Request) {
	h.onboarding.SelectStep(formInt(r, "index"))
	http.Redirect(w, r, "/onboarding", http.StatusSeeOther)
}

func (h *Handlers) onboardingNext(w http.ResponseWriter, r *http.Request) {
	h.onboarding.NextStep(r.Context())
	http.Redirect(w, r, "/onboarding", http.StatusSeeOther)
}

func (h *Handlers) onboardingPrevious(w http.ResponseWriter, r *http.Request) {
	h.onboarding.PreviousStep()
	http.Redirect(w, r, "/onboarding", http.StatusSeeOther)
}

func (h *Handlers) onboardingActivate(w http.ResponseWriter, r *http.Request) {
	h.onboarding.Activate(r.Context())
	state := h.onboarding.Snapshot()
	if state.WorkspaceStatus == domain.OnboardingActive {
		http.Redirect(w, r, "/owner/dashboard", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/onboarding", http.StatusSeeOther)
}
