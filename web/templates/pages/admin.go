package pages

import (
	"net/url"

	"github.com/a-h/templ"

	"soap-storefront/internal/models"
	"soap-storefront/web/templates/components"
)

// Option is one choice of an admin filter select
type Option struct {
	Value string
	Label string
}

// FilterField is one control of an admin filter bar. A field without
// options is rendered as a search box.
type FilterField struct {
	Name    string
	Label   string
	Value   string
	Options []Option
}

func adminHeader(h *components.HTML, title, newPath, newLabel string) {
	h.F(`<div class="flex items-center justify-between mb-6"><h1 class="text-2xl font-semibold">%s</h1>`, title)
	if newPath != "" {
		h.F(`<a href="%s" class="rounded-md bg-emerald-700 text-white px-4 py-2 text-sm">%s</a>`, templ.URL(newPath), newLabel)
	}
	h.Raw(`</div>`)
}

func adminFilterBar(h *components.HTML, path string, fields []FilterField) {
	h.F(`<form method="get" action="%s" class="flex flex-wrap gap-3 mb-4" hx-get="%s" hx-target="#admin-list" hx-swap="outerHTML" hx-push-url="true" `+
		`hx-trigger="input changed delay:300ms from:input[type=search], change">`, templ.URL(path), path)
	for _, f := range fields {
		if len(f.Options) == 0 {
			h.F(`<input type="search" name="%s" value="%s" placeholder="%s" class="rounded-md border-gray-300 text-sm">`, f.Name, f.Value, f.Label)
			continue
		}
		h.F(`<select name="%s" class="rounded-md border-gray-300 text-sm"><option value="">%s</option>`, f.Name, f.Label)
		for _, o := range f.Options {
			h.F(`<option value="%s"%s>%s</option>`, o.Value, components.Selected(o.Value, f.Value), o.Label)
		}
		h.Raw(`</select>`)
	}
	h.Raw(`<noscript><button type="submit">Filter</button></noscript></form>`)
}

// listShell opens the swappable list container and renders the load error, if any.
// It reports whether the caller should render rows.
func listShell(h *components.HTML, loadErr string, empty bool, emptyText string) bool {
	h.Raw(`<div id="admin-list">`)
	if loadErr != "" {
		h.F(`<div class="rounded-lg bg-red-50 border border-red-200 p-4 text-red-800">%s</div>`, loadErr)
		return false
	}
	if empty {
		h.F(`<p class="text-gray-600 py-8 text-center">%s</p>`, emptyText)
		return false
	}
	return true
}

func tableHead(h *components.HTML, cols ...string) {
	h.Raw(`<table class="w-full text-sm bg-white rounded-lg shadow-sm"><thead class="bg-gray-50 text-left"><tr>`)
	for _, c := range cols {
		h.F(`<th class="px-4 py-2 font-medium">%s</th>`, c)
	}
	h.Raw(`</tr></thead><tbody class="divide-y">`)
}

func rowActions(h *components.HTML, editPath, deletePath string) {
	h.Raw(`<td class="px-4 py-2 text-right whitespace-nowrap">`)
	if editPath != "" {
		h.F(`<a href="%s" class="underline mr-3">Edit</a>`, templ.URL(editPath))
	}
	h.F(`<a href="%s" class="underline text-red-600">Delete</a></td>`, templ.URL(deletePath))
}

func activeBadge(active bool) templ.Component {
	if active {
		return components.StatusBadge(models.StatusStyle{Label: "Active", Color: "green"})
	}
	return components.StatusBadge(models.StatusStyle{Label: "Inactive", Color: "gray"})
}

// SnapshotRow is one labelled value on a delete confirmation
type SnapshotRow struct {
	Label string
	Value string
}

// ConfirmView describes a delete confirmation
type ConfirmView struct {
	Resource string
	Rows     []SnapshotRow
	Action   string
	Cancel   string
}

// ConfirmDeletePage shows what is about to be deleted and posts the delete
func ConfirmDeletePage(meta components.PageMeta, view ConfirmView) templ.Component {
	return components.AdminLayout(meta, components.Component(func(h *components.HTML) {
		h.F(`<div class="max-w-lg bg-white rounded-lg shadow-sm p-6"><h1 class="text-xl font-semibold mb-4">Delete %s?</h1>`, view.Resource)
		h.Raw(`<dl class="text-sm space-y-2 mb-6">`)
		for _, row := range view.Rows {
			h.F(`<div class="flex gap-4"><dt class="w-32 text-gray-500">%s</dt><dd class="flex-1">%s</dd></div>`, row.Label, row.Value)
		}
		h.Raw(`</dl><p class="text-sm text-red-700 mb-4">This cannot be undone.</p>`)
		h.F(`<form method="post" action="%s" class="flex gap-3" hx-disabled-elt="find button">`, templ.URL(view.Action))
		h.Render(components.CSRFField(meta.CSRFToken))
		h.Raw(`<button type="submit" class="rounded-md bg-red-600 text-white px-4 py-2 text-sm">Delete</button>`)
		h.F(`<a href="%s" class="px-4 py-2 text-sm underline">Cancel</a></form></div>`, templ.URL(view.Cancel))
	}))
}

// formShell opens an admin form with its title and CSRF token
func formShell(h *components.HTML, title, action, csrf string, multipart bool) {
	h.F(`<h1 class="text-2xl font-semibold mb-6">%s</h1>`, title)
	h.F(`<form method="post" action="%s" class="max-w-2xl space-y-4 bg-white rounded-lg shadow-sm p-6" hx-disabled-elt="find button[type=submit]"`, templ.URL(action))
	h.If(multipart, ` enctype="multipart/form-data"`)
	h.Raw(`>`)
	h.Render(components.CSRFField(csrf))
}

func formButtons(h *components.HTML, cancel string) {
	h.F(`<div class="flex gap-3"><button type="submit" class="rounded-md bg-emerald-700 text-white px-4 py-2 text-sm">Save</button>`+
		`<a href="%s" class="px-4 py-2 text-sm underline">Cancel</a></div></form>`, templ.URL(cancel))
}

func selectField(h *components.HTML, name, label, value string, options []Option, errs models.ValidationErrors) {
	h.F(`<div><label for="%s" class="block text-sm font-medium text-gray-700">%s</label><select id="%s" name="%s" class="mt-1 w-full rounded-md border-gray-300">`,
		name, label, name, name)
	for _, o := range options {
		h.F(`<option value="%s"%s>%s</option>`, o.Value, components.Selected(o.Value, value), o.Label)
	}
	h.Raw(`</select>`)
	h.Render(components.FieldError(errs, name))
	h.Raw(`</div>`)
}

func checkbox(h *components.HTML, name, label string, checked bool) {
	h.F(`<label class="flex items-center gap-2 text-sm"><input type="checkbox" name="%s" value="1"%s> %s</label>`, name, components.Checked(checked), label)
}

// itemPath builds /admin/<resource>/<id><suffix>
func itemPath(resource, id, suffix string) string {
	return "/admin/" + resource + "/" + url.PathEscape(id) + suffix
}
