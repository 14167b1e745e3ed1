package pages

import (
	"github.com/a-h/templ"

	"soap-storefront/internal/models"
	"soap-storefront/web/templates/components"
)

type ContactView struct {
	Form   models.ContactForm
	Errors models.ValidationErrors
}

func ContactPage(meta components.PageMeta, view ContactView) templ.Component {
	return components.Layout(meta, components.Component(func(h *components.HTML) {
		f := view.Form
		h.Raw(`<div class="max-w-xl mx-auto"><h1 class="text-3xl font-semibold mb-2">Contact us</h1>`)
		h.Raw(`<p class="text-gray-600 mb-6">Questions about an order or a product? We usually reply within a day.</p>`)
		h.Raw(`<form method="post" action="/contact" class="space-y-4 bg-white rounded-lg shadow-sm p-6" hx-disabled-elt="find button">`)
		h.Render(components.CSRFField(meta.CSRFToken))
		h.Render(components.TextInput(components.Input{Name: "name", Label: "Name", Value: f.Name, Required: true}, view.Errors))
		h.Render(components.TextInput(components.Input{Name: "email", Label: "Email", Type: "email", Value: f.Email, Required: true}, view.Errors))
		h.Render(components.TextInput(components.Input{Name: "phone", Label: "Phone", Type: "tel", Value: f.Phone}, view.Errors))
		h.Render(components.TextInput(components.Input{Name: "subject", Label: "Subject", Value: f.Subject}, view.Errors))
		h.Render(components.TextArea("message", "Message", f.Message, 5, view.Errors))
		h.Raw(`<button type="submit" class="rounded-md bg-emerald-700 text-white px-6 py-2">Send</button></form></div>`)
	}))
}
