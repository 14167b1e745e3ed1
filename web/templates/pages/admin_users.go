package pages

import (
	"github.com/a-h/templ"

	"soap-storefront/internal/models"
	"soap-storefront/web/templates/components"
)

var roleOptions = []Option{
	{string(models.UserRoleCustomer), "Customer"},
	{string(models.UserRoleAdmin), "Admin"},
}

type AdminUsersView struct {
	Page   *models.Page[models.User]
	Filter models.AdminUserFilter
	Error  string
}

func AdminUsersPage(meta components.PageMeta, view AdminUsersView) templ.Component {
	return components.AdminLayout(meta, components.Component(func(h *components.HTML) {
		adminHeader(h, "Users", "/admin/users/new", "New user")
		adminFilterBar(h, "/admin/users", []FilterField{
			{Name: "search", Label: "Name or email", Value: view.Filter.Search},
			{Name: "role", Label: "Any role", Value: view.Filter.Role, Options: roleOptions},
		})
		h.Render(AdminUsersList(view))
	}))
}

func AdminUsersList(view AdminUsersView) templ.Component {
	return components.Component(func(h *components.HTML) {
		defer h.Raw(`</div>`)
		if !listShell(h, view.Error, view.Page == nil || len(view.Page.Data) == 0, "No users found.") {
			return
		}
		tableHead(h, "Name", "Email", "Phone", "Role", "Status", "Joined", "")
		for _, u := range view.Page.Data {
			h.F(`<tr><td class="px-4 py-2">%s</td><td class="px-4 py-2">%s</td><td class="px-4 py-2">%s</td><td class="px-4 py-2">%s</td><td class="px-4 py-2">`,
				u.Name, u.Email, u.Phone, string(u.Role))
			h.Render(activeBadge(u.IsActive))
			h.F(`</td><td class="px-4 py-2">%s</td>`, u.CreatedAt.Format("2 Jan 2006"))
			rowActions(h, itemPath("users", u.ID, "/edit"), itemPath("users", u.ID, "/delete"))
			h.Raw(`</tr>`)
		}
		h.Raw(`</tbody></table>`)
		q := map[string][]string{}
		setIf(q, "search", view.Filter.Search)
		setIf(q, "role", view.Filter.Role)
		h.Render(components.Pager(view.Page.Pagination, "/admin/users", q))
	})
}

type UserFormView struct {
	ID     string
	Form   models.UserForm
	Errors models.ValidationErrors
}

func UserFormPage(meta components.PageMeta, view UserFormView) templ.Component {
	return components.AdminLayout(meta, components.Component(func(h *components.HTML) {
		f := view.Form
		errs := view.Errors
		title, action := "New user", "/admin/users"
		passwordLabel := "Password"
		if view.ID != "" {
			title, action = "Edit user", itemPath("users", view.ID, "")
			passwordLabel = "New password (leave blank to keep)"
		}
		formShell(h, title, action, meta.CSRFToken, false)
		h.Render(components.FieldError(errs, "general"))
		h.Render(components.TextInput(components.Input{Name: "name", Label: "Name", Value: f.Name, Required: true}, errs))
		h.Render(components.TextInput(components.Input{Name: "email", Label: "Email", Type: "email", Value: f.Email, Required: true}, errs))
		h.Render(components.TextInput(components.Input{Name: "phone", Label: "Phone", Type: "tel", Value: f.Phone}, errs))
		selectField(h, "role", "Role", string(f.Role), roleOptions, errs)
		checkbox(h, "isActive", "Active", f.IsActive)
		h.Render(components.TextInput(components.Input{Name: "password", Label: passwordLabel, Type: "password", Required: view.ID == ""}, errs))
		h.Render(components.TextInput(components.Input{Name: "confirm_password", Label: "Confirm password", Type: "password", Required: view.ID == ""}, errs))
		formButtons(h, "/admin/users")
	}))
}
