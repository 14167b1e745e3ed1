package handlers

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/a-h/templ"

	"soap-storefront/internal/middleware"
	"soap-storefront/internal/services"
	"soap-storefront/web/templates/components"
	"soap-storefront/web/templates/pages"
)

const adminPageSize = 20

// AdminHandler serves the /admin CRUD views. Every route is mounted behind
// RequireRole(admin), so handlers can rely on a signed-in admin session.
type AdminHandler struct {
	*Base
	products      services.ProductServiceInterface
	orders        services.OrderServiceInterface
	users         services.UserServiceInterface
	announcements services.AnnouncementServiceInterface
	reviews       services.ReviewServiceInterface
	dashboard     services.DashboardServiceInterface
	images        *services.ImagePreparer
	generations   *services.Generations
}

// AdminServices groups the backends the admin views talk to
type AdminServices struct {
	Products      services.ProductServiceInterface
	Orders        services.OrderServiceInterface
	Users         services.UserServiceInterface
	Announcements services.AnnouncementServiceInterface
	Reviews       services.ReviewServiceInterface
	Dashboard     services.DashboardServiceInterface
}

func NewAdminHandler(base *Base, svc AdminServices, images *services.ImagePreparer, generations *services.Generations) *AdminHandler {
	return &AdminHandler{
		Base:          base,
		products:      svc.Products,
		orders:        svc.Orders,
		users:         svc.Users,
		announcements: svc.Announcements,
		reviews:       svc.Reviews,
		dashboard:     svc.Dashboard,
		images:        images,
		generations:   generations,
	}
}

// pageParam reads ?page=, never below 1
func pageParam(q url.Values) int {
	if p := atoiOr(q.Get("page"), 1); p > 1 {
		return p
	}
	return 1
}

// serveList answers a filter bar change with the list partial, dropping it
// when a newer change for the same list is already under way. Plain
// navigation gets the full page.
func (h *AdminHandler) serveList(w http.ResponseWriter, r *http.Request, ticket services.Ticket, title string, partial templ.Component, page func(components.PageMeta) templ.Component) {
	if middleware.IsHTMXRequest(r) {
		if !h.generations.Current(ticket) {
			dropStale(w)
			return
		}
		render(w, r, http.StatusOK, partial)
		return
	}
	render(w, r, http.StatusOK, page(h.adminMeta(w, r, title)))
}

// listTicket starts a generation for one admin list of this browser
func (h *AdminHandler) listTicket(r *http.Request, list string) services.Ticket {
	return h.generations.Begin(sessionKey(r) + ":admin:" + list)
}

// mutated flashes success and sends the admin back to the full list
func (h *AdminHandler) mutated(w http.ResponseWriter, r *http.Request, list, message string) {
	h.flash(w, r, components.FlashSuccess, message)
	redirect(w, r, "/admin/"+list)
}

// mutationFailed flashes the backend error and returns to the list, unless
// the backend rejected the session
func (h *AdminHandler) mutationFailed(w http.ResponseWriter, r *http.Request, list string, err error, fallback string) {
	if h.endIfUnauthorized(w, r, err) {
		return
	}
	logError(r, err, "admin "+list)
	h.flash(w, r, components.FlashError, services.UserMessage(err, fallback))
	redirect(w, r, "/admin/"+list)
}

// formFailed re-renders a form with the backend error as a toast and the
// submitted values intact
func (h *AdminHandler) formFailed(w http.ResponseWriter, r *http.Request, list string, err error, fallback, title string, page func(components.PageMeta) templ.Component) {
	if h.endIfUnauthorized(w, r, err) {
		return
	}
	logError(r, err, "admin "+list)
	h.flash(w, r, components.FlashError, services.UserMessage(err, fallback))
	render(w, r, http.StatusOK, page(h.adminMeta(w, r, title)))
}

// confirmDelete renders the confirmation with its snapshot
func (h *AdminHandler) confirmDelete(w http.ResponseWriter, r *http.Request, resource, list, action string, rows []pages.SnapshotRow) {
	view := pages.ConfirmView{
		Resource: resource,
		Rows:     rows,
		Action:   action,
		Cancel:   "/admin/" + list,
	}
	render(w, r, http.StatusOK, pages.ConfirmDeletePage(h.adminMeta(w, r, "Delete "+resource), view))
}

// lookupFailed handles a missing or unreadable entity on an edit or delete page
func (h *AdminHandler) lookupFailed(w http.ResponseWriter, r *http.Request, list string, err error, what string) {
	if h.endIfUnauthorized(w, r, err) {
		return
	}
	if isNotFound(err, nil) {
		h.flash(w, r, components.FlashError, strings.ToUpper(what[:1])+what[1:]+" not found")
	} else {
		logError(r, err, "load "+what)
		h.flash(w, r, components.FlashError, services.UserMessage(err, "Failed to load "+what))
	}
	redirect(w, r, "/admin/"+list)
}

// adminPath builds /admin/<list>/<id><suffix>
func adminPath(list, id, suffix string) string {
	return "/admin/" + list + "/" + url.PathEscape(id) + suffix
}

// formBool reads an admin checkbox
func formBool(r *http.Request, name string) bool {
	v := r.FormValue(name)
	return v == "1" || v == "on" || v == "true"
}
