package pages

import (
	"strconv"
	"time"

	"github.com/a-h/templ"

	"soap-storefront/internal/models"
	"soap-storefront/web/templates/components"
)

var announcementTypeOptions = []Option{
	{string(models.AnnouncementInfo), "Info"},
	{string(models.AnnouncementPromo), "Promo"},
	{string(models.AnnouncementWarning), "Warning"},
}

// DateInputLayout is the value format of <input type="date">
const DateInputLayout = "2006-01-02"

type AdminAnnouncementsView struct {
	Page   *models.Page[models.Announcement]
	Filter models.AdminAnnouncementFilter
	Error  string
}

func AdminAnnouncementsPage(meta components.PageMeta, view AdminAnnouncementsView) templ.Component {
	return components.AdminLayout(meta, components.Component(func(h *components.HTML) {
		adminHeader(h, "Announcements", "/admin/announcements/new", "New announcement")
		adminFilterBar(h, "/admin/announcements", []FilterField{
			{Name: "search", Label: "Search title or message", Value: view.Filter.Search},
			{Name: "type", Label: "Any type", Value: view.Filter.Type, Options: announcementTypeOptions},
			{Name: "status", Label: "Any status", Value: view.Filter.Status, Options: []Option{{"active", "Active"}, {"inactive", "Inactive"}}},
		})
		h.Render(AdminAnnouncementsList(view))
	}))
}

func AdminAnnouncementsList(view AdminAnnouncementsView) templ.Component {
	return components.Component(func(h *components.HTML) {
		defer h.Raw(`</div>`)
		if !listShell(h, view.Error, view.Page == nil || len(view.Page.Data) == 0, "No announcements found.") {
			return
		}
		tableHead(h, "Title", "Type", "Window", "Priority", "Status", "")
		for _, a := range view.Page.Data {
			h.F(`<tr><td class="px-4 py-2">%s<br><span class="text-xs text-gray-500">%s</span></td><td class="px-4 py-2">%s</td>`, a.Title, a.Message, string(a.Type))
			h.F(`<td class="px-4 py-2">%s to %s</td><td class="px-4 py-2">%d</td><td class="px-4 py-2">`, dateOr(a.StartDate, "now"), dateOr(a.EndDate, "open"), a.Priority)
			h.Render(activeBadge(a.IsActive))
			h.Raw(`</td>`)
			rowActions(h, itemPath("announcements", a.ID, "/edit"), itemPath("announcements", a.ID, "/delete"))
			h.Raw(`</tr>`)
		}
		h.Raw(`</tbody></table>`)
		q := map[string][]string{}
		setIf(q, "search", view.Filter.Search)
		setIf(q, "type", view.Filter.Type)
		setIf(q, "status", view.Filter.Status)
		h.Render(components.Pager(view.Page.Pagination, "/admin/announcements", q))
	})
}

func dateOr(t *time.Time, fallback string) string {
	if t == nil {
		return fallback
	}
	return t.Format("2 Jan 2006")
}

func dateInput(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(DateInputLayout)
}

type AnnouncementFormView struct {
	ID     string
	Form   models.AnnouncementForm
	Errors models.ValidationErrors
}

func AnnouncementFormPage(meta components.PageMeta, view AnnouncementFormView) templ.Component {
	return components.AdminLayout(meta, components.Component(func(h *components.HTML) {
		f := view.Form
		errs := view.Errors
		title, action := "New announcement", "/admin/announcements"
		if view.ID != "" {
			title, action = "Edit announcement", itemPath("announcements", view.ID, "")
		}
		formShell(h, title, action, meta.CSRFToken, false)
		h.Render(components.FieldError(errs, "general"))
		h.Render(components.TextInput(components.Input{Name: "title", Label: "Title", Value: f.Title, Required: true}, errs))
		h.Render(components.TextArea("message", "Message", f.Message, 3, errs))
		selectField(h, "type", "Type", string(f.Type), announcementTypeOptions, errs)
		h.Raw(`<div class="grid grid-cols-2 gap-3">`)
		h.Render(components.TextInput(components.Input{Name: "link", Label: "Link", Value: f.Link, Placeholder: "/shop"}, errs))
		h.Render(components.TextInput(components.Input{Name: "linkText", Label: "Link text", Value: f.LinkText}, errs))
		h.Render(components.TextInput(components.Input{Name: "startDate", Label: "Starts", Type: "date", Value: dateInput(f.StartDate)}, errs))
		h.Render(components.TextInput(components.Input{Name: "endDate", Label: "Ends", Type: "date", Value: dateInput(f.EndDate)}, errs))
		h.Render(components.TextInput(components.Input{Name: "priority", Label: "Priority", Type: "number", Value: strconv.Itoa(f.Priority)}, errs))
		h.Raw(`</div>`)
		checkbox(h, "isActive", "Active", f.IsActive)
		formButtons(h, "/admin/announcements")
	}))
}
