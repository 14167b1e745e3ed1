package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"

	"soap-storefront/internal/models"
	"soap-storefront/internal/services"
	"soap-storefront/web/templates/components"
	"soap-storefront/web/templates/pages"
)

func (h *AdminHandler) Announcements(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := models.AdminAnnouncementFilter{
		Search: strings.TrimSpace(q.Get("search")),
		Type:   q.Get("type"),
		Status: q.Get("status"),
		Page:   pageParam(q),
		Limit:  adminPageSize,
	}
	ticket := h.listTicket(r, "announcements")

	view := pages.AdminAnnouncementsView{Filter: filter}
	page, err := h.announcements.List(r.Context(), token(r.Context()), filter)
	if err != nil {
		if h.endIfUnauthorized(w, r, err) {
			return
		}
		logError(r, err, "list announcements")
		view.Error = services.UserMessage(err, "Failed to load announcements")
	}
	view.Page = page

	h.serveList(w, r, ticket, "Announcements", pages.AdminAnnouncementsList(view), func(meta components.PageMeta) templ.Component {
		return pages.AdminAnnouncementsPage(meta, view)
	})
}

func (h *AdminHandler) NewAnnouncement(w http.ResponseWriter, r *http.Request) {
	view := pages.AnnouncementFormView{
		Form:   models.AnnouncementForm{Type: models.AnnouncementInfo, IsActive: true},
		Errors: models.ValidationErrors{},
	}
	render(w, r, http.StatusOK, pages.AnnouncementFormPage(h.adminMeta(w, r, "New announcement"), view))
}

func (h *AdminHandler) EditAnnouncement(w http.ResponseWriter, r *http.Request) {
	a, err := h.announcements.Get(r.Context(), token(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		h.lookupFailed(w, r, "announcements", err, "announcement")
		return
	}
	view := pages.AnnouncementFormView{
		ID:     a.ID,
		Form:   models.AnnouncementFormFrom(a),
		Errors: models.ValidationErrors{},
	}
	render(w, r, http.StatusOK, pages.AnnouncementFormPage(h.adminMeta(w, r, "Edit announcement"), view))
}

func (h *AdminHandler) CreateAnnouncement(w http.ResponseWriter, r *http.Request) {
	h.saveAnnouncement(w, r, "")
}

func (h *AdminHandler) UpdateAnnouncement(w http.ResponseWriter, r *http.Request) {
	h.saveAnnouncement(w, r, chi.URLParam(r, "id"))
}

func (h *AdminHandler) saveAnnouncement(w http.ResponseWriter, r *http.Request, id string) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	view := pages.AnnouncementFormView{
		ID: id,
		Form: models.AnnouncementForm{
			Title:    strings.TrimSpace(r.FormValue("title")),
			Message:  strings.TrimSpace(r.FormValue("message")),
			Type:     models.AnnouncementType(r.FormValue("type")),
			Link:     strings.TrimSpace(r.FormValue("link")),
			LinkText: strings.TrimSpace(r.FormValue("linkText")),
			IsActive: formBool(r, "isActive"),
		},
	}

	dateErrs := models.ValidationErrors{}
	view.Form.StartDate = parseDateField(r, "startDate", dateErrs)
	view.Form.EndDate = parseDateField(r, "endDate", dateErrs)
	priority, err := strconv.Atoi(strings.TrimSpace(r.FormValue("priority")))
	if err != nil && strings.TrimSpace(r.FormValue("priority")) != "" {
		dateErrs.Add("priority", "Priority must be a whole number")
	}
	view.Form.Priority = priority

	view.Errors = view.Form.Validate()
	for field, msgs := range dateErrs {
		for _, m := range msgs {
			view.Errors.Add(field, m)
		}
	}

	title := "New announcement"
	if id != "" {
		title = "Edit announcement"
	}
	page := func(meta components.PageMeta) templ.Component { return pages.AnnouncementFormPage(meta, view) }
	if view.Errors.HasErrors() {
		render(w, r, http.StatusUnprocessableEntity, page(h.adminMeta(w, r, title)))
		return
	}

	if id == "" {
		_, err = h.announcements.Create(r.Context(), token(r.Context()), view.Form)
	} else {
		_, err = h.announcements.Update(r.Context(), token(r.Context()), id, view.Form)
	}
	if err != nil {
		h.formFailed(w, r, "announcements", err, "Failed to save announcement", title, page)
		return
	}

	h.mutated(w, r, "announcements", "Announcement saved")
}

// parseDateField reads an optional date input; blank means no bound
func parseDateField(r *http.Request, name string, errs models.ValidationErrors) *time.Time {
	raw := strings.TrimSpace(r.FormValue(name))
	if raw == "" {
		return nil
	}
	t, err := time.Parse(pages.DateInputLayout, raw)
	if err != nil {
		errs.Add(name, "Please enter a valid date")
		return nil
	}
	return &t
}

func (h *AdminHandler) ConfirmDeleteAnnouncement(w http.ResponseWriter, r *http.Request) {
	a, err := h.announcements.Get(r.Context(), token(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		h.lookupFailed(w, r, "announcements", err, "announcement")
		return
	}
	h.confirmDelete(w, r, "announcement", "announcements", adminPath("announcements", a.ID, "/delete"), []pages.SnapshotRow{
		{Label: "Title", Value: a.Title},
		{Label: "Message", Value: a.Message},
		{Label: "Type", Value: string(a.Type)},
	})
}

func (h *AdminHandler) DeleteAnnouncement(w http.ResponseWriter, r *http.Request) {
	if err := h.announcements.Delete(r.Context(), token(r.Context()), chi.URLParam(r, "id")); err != nil {
		h.mutationFailed(w, r, "announcements", err, "Failed to delete announcement")
		return
	}
	h.mutated(w, r, "announcements", "Announcement deleted")
}
