package web

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/erinpaul2002/careops-console/internal/console"
)

//go:embed templates/*.html
var templateFS embed.FS

// viewData is the envelope every page template receives.
type viewData struct {
	Title          string
	WorkspaceLabel string
	Nav            []console.NavItem
	Data           any
}

var weekdayNames = [7]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

var templateFuncs = template.FuncMap{
	"weekday": func(day int) string {
		if day < 0 || day > 6 {
			return ""
		}
		return weekdayNames[day]
	},
	"fieldkey": console.TemplateFieldKey,
}

var pageTemplates = map[string]*template.Template{}

func init() {
	pages := []string{
		"login", "signup", "onboarding", "dashboard", "bookings", "inbox",
		"inventory", "staff", "forms", "setup", "integrations",
		"public_booking", "public_contact", "public_form", "redirect",
	}
	for _, page := range pages {
		pageTemplates[page] = template.Must(template.New(page).Funcs(templateFuncs).ParseFS(
			templateFS,
			"templates/layout.html",
			"templates/"+page+".html",
		))
	}
}

func render(w http.ResponseWriter, page string, data viewData) {
	tmpl, ok := pageTemplates[page]
	if !ok {
		http.Error(w, "unknown page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.ExecuteTemplate(w, "layout", data); err != nil {
		log.Error().Err(err).Str("page", page).Msg("template render failed")
	}
}

// renderAuthed writes a signed-in page, unless the backend revoked the
// session while the page data was being fetched. A revoked session means
// the client already wiped its state, so the visitor goes straight back
// to the login screen instead of receiving an errored page.
func (h *Handlers) renderAuthed(w http.ResponseWriter, r *http.Request, page string, data viewData) {
	if !h.sess.Snapshot().Authenticated() {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	render(w, page, data)
}
