package web

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/erinpaul2002/careops-console/internal/console"
	"github.com/erinpaul2002/careops-console/internal/domain"
)

// maxUploadBytes bounds in-memory multipart parsing for form attachments.
const maxUploadBytes = 32 << 20

type publicBookingView struct {
	State      console.PublicBookingState
	ActionPath string
}

func (h *Handlers) publicBookingPage(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "workspaceSlug")
	page := console.NewPublicBooking(h.client, slug)
	page.Load(r.Context())

	if serviceID := r.URL.Query().Get("serviceId"); serviceID != "" {
		page.SelectService(r.Context(), serviceID)
	}
	if date := r.URL.Query().Get("date"); date != "" {
		page.SelectDate(r.Context(), date)
	}

	render(w, "public_booking", viewData{
		Title: "Book an appointment",
		Data:  publicBookingView{State: page.State(), ActionPath: "/b/" + slug},
	})
}

func (h *Handlers) publicBookingSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	slug := chi.URLParam(r, "workspaceSlug")
	page := console.NewPublicBooking(h.client, slug)
	page.Load(r.Context())

	if serviceID := r.PostFormValue("serviceId"); serviceID != "" {
		page.SelectService(r.Context(), serviceID)
	}
	if date := r.PostFormValue("date"); date != "" {
		page.SelectDate(r.Context(), date)
	}
	if startsAt := r.PostFormValue("startsAt"); startsAt != "" {
		page.SelectSlot(startsAt)
	}
	applyFieldValues(r, page.State().FlowConfig.Booking.Fields, page.SetFieldValue)

	page.Submit(r.Context())
	render(w, "public_booking", viewData{
		Title: "Book an appointment",
		Data:  publicBookingView{State: page.State(), ActionPath: "/b/" + slug},
	})
}

type publicContactView struct {
	State      console.PublicContactState
	ActionPath string
}

func (h *Handlers) publicContactPage(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "workspaceSlug")
	page := console.NewPublicContact(h.client, slug)
	page.Load(r.Context())
	render(w, "public_contact", viewData{
		Title: "Contact us",
		Data:  publicContactView{State: page.State(), ActionPath: "/f/" + slug + "/contact"},
	})
}

func (h *Handlers) publicContactSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	slug := chi.URLParam(r, "workspaceSlug")
	page := console.NewPublicContact(h.client, slug)
	page.Load(r.Context())
	applyFieldValues(r, page.State().FlowConfig.Contact.Fields, page.SetFieldValue)

	page.Submit(r.Context())
	render(w, "public_contact", viewData{
		Title: "Contact us",
		Data:  publicContactView{State: page.State(), ActionPath: "/f/" + slug + "/contact"},
	})
}

type publicFormView struct {
	State      console.PublicFormState
	ActionPath string
}

func (h *Handlers) publicFormPage(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")
	page := console.NewPublicForm(h.client, token)
	page.Load(r.Context())
	render(w, "public_form", viewData{
		Title: "Complete your form",
		Data:  publicFormView{State: page.State(), ActionPath: "/forms/" + token},
	})
}

func (h *Handlers) publicFormSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	token := chi.URLParam(r, "token")
	page := console.NewPublicForm(h.client, token)
	page.Load(r.Context())

	state := page.State()
	if state.Payload != nil {
		for _, field := range state.Payload.Template.Fields {
			key := console.TemplateFieldKey(field)
			name := "field_" + key
			if strings.EqualFold(field.Type, "file") {
				file, header, err := r.FormFile(name)
				if err != nil {
					continue
				}
				page.UploadFile(r.Context(), key, header.Filename, header.Header.Get("Content-Type"), header.Size, file)
				file.Close()
				continue
			}
			if value, ok := r.PostForm[name]; ok {
				if strings.EqualFold(field.Type, "checkbox") {
					page.SetValue(key, len(value) > 0 && value[0] == "true")
					continue
				}
				page.SetValue(key, value[0])
			} else if strings.EqualFold(field.Type, "checkbox") {
				page.SetValue(key, false)
			}
		}
	}

	page.Submit(r.Context())
	render(w, "public_form", viewData{
		Title: "Complete your form",
		Data:  publicFormView{State: page.State(), ActionPath: "/forms/" + token},
	})
}

// applyFieldValues copies posted field_<key> inputs into the controller,
// translating checkboxes to booleans.
func applyFieldValues(r *http.Request, fields []domain.PublicFieldConfig, set func(key string, value any)) {
	for _, field := range fields {
		name := "field_" + field.Key
		if strings.EqualFold(field.Type, "checkbox") {
			set(field.Key, r.PostFormValue(name) == "true")
			continue
		}
		if value, ok := r.PostForm[name]; ok {
			set(field.Key, value[0])
		}
	}
}
