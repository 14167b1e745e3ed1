package handlers

import (
	"net/http"
	"strings"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"

	"soap-storefront/internal/models"
	"soap-storefront/internal/services"
	"soap-storefront/web/templates/components"
	"soap-storefront/web/templates/pages"
)

func (h *AdminHandler) Users(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := models.AdminUserFilter{
		Search: strings.TrimSpace(q.Get("search")),
		Role:   q.Get("role"),
		Page:   pageParam(q),
		Limit:  adminPageSize,
	}
	ticket := h.listTicket(r, "users")

	view := pages.AdminUsersView{Filter: filter}
	page, err := h.users.List(r.Context(), token(r.Context()), filter)
	if err != nil {
		if h.endIfUnauthorized(w, r, err) {
			return
		}
		logError(r, err, "list users")
		view.Error = services.UserMessage(err, "Failed to load users")
	}
	view.Page = page

	h.serveList(w, r, ticket, "Users", pages.AdminUsersList(view), func(meta components.PageMeta) templ.Component {
		return pages.AdminUsersPage(meta, view)
	})
}

func (h *AdminHandler) NewUser(w http.ResponseWriter, r *http.Request) {
	view := pages.UserFormView{
		Form:   models.UserForm{Role: models.UserRoleCustomer, IsActive: true},
		Errors: models.ValidationErrors{},
	}
	render(w, r, http.StatusOK, pages.UserFormPage(h.adminMeta(w, r, "New user"), view))
}

func (h *AdminHandler) EditUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.Get(r.Context(), token(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		h.lookupFailed(w, r, "users", err, "user")
		return
	}
	view := pages.UserFormView{
		ID: user.ID,
		Form: models.UserForm{
			Name:     user.Name,
			Email:    user.Email,
			Phone:    user.Phone,
			Role:     user.Role,
			IsActive: user.IsActive,
		},
		Errors: models.ValidationErrors{},
	}
	render(w, r, http.StatusOK, pages.UserFormPage(h.adminMeta(w, r, "Edit user"), view))
}

func (h *AdminHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	h.saveUser(w, r, "")
}

// UpdateUser saves an existing user; a blank password keeps the current one
func (h *AdminHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	h.saveUser(w, r, chi.URLParam(r, "id"))
}

func (h *AdminHandler) saveUser(w http.ResponseWriter, r *http.Request, id string) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	view := pages.UserFormView{
		ID: id,
		Form: models.UserForm{
			Name:            strings.TrimSpace(r.FormValue("name")),
			Email:           strings.TrimSpace(r.FormValue("email")),
			Phone:           strings.TrimSpace(r.FormValue("phone")),
			Role:            models.UserRole(r.FormValue("role")),
			IsActive:        formBool(r, "isActive"),
			Password:        r.FormValue("password"),
			ConfirmPassword: r.FormValue("confirm_password"),
		},
	}
	view.Errors = view.Form.Validate(id == "")

	title := "New user"
	if id != "" {
		title = "Edit user"
	}
	page := func(meta components.PageMeta) templ.Component {
		// passwords are never echoed back into the form
		v := view
		v.Form.Password, v.Form.ConfirmPassword = "", ""
		return pages.UserFormPage(meta, v)
	}
	if view.Errors.HasErrors() {
		render(w, r, http.StatusUnprocessableEntity, page(h.adminMeta(w, r, title)))
		return
	}

	var err error
	if id == "" {
		_, err = h.users.Create(r.Context(), token(r.Context()), view.Form)
	} else {
		_, err = h.users.Update(r.Context(), token(r.Context()), id, view.Form)
	}
	if err != nil {
		h.formFailed(w, r, "users", err, "Failed to save user", title, page)
		return
	}

	h.mutated(w, r, "users", "User saved")
}

func (h *AdminHandler) ConfirmDeleteUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.Get(r.Context(), token(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		h.lookupFailed(w, r, "users", err, "user")
		return
	}
	h.confirmDelete(w, r, "user", "users", adminPath("users", user.ID, "/delete"), []pages.SnapshotRow{
		{Label: "Name", Value: user.Name},
		{Label: "Email", Value: user.Email},
		{Label: "Role", Value: string(user.Role)},
	})
}

func (h *AdminHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	if err := h.users.Delete(r.Context(), token(r.Context()), chi.URLParam(r, "id")); err != nil {
		h.mutationFailed(w, r, "users", err, "Failed to delete user")
		return
	}
	h.mutated(w, r, "users", "User deleted")
}
