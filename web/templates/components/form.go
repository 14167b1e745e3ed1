package components

import (
	"github.com/a-h/templ"

	"soap-storefront/internal/models"
)

// CSRFField is the hidden token input every POST form carries
func CSRFField(token string) templ.Component {
	return Component(func(h *HTML) {
		h.F(`<input type="hidden" name="csrf_token" value="%s">`, token)
	})
}

// FieldError renders the first validation message for field, if any
func FieldError(errs models.ValidationErrors, field string) templ.Component {
	return Component(func(h *HTML) {
		if msg := errs.First(field); msg != "" {
			h.F(`<p class="mt-1 text-sm text-red-600">%s</p>`, msg)
		}
	})
}

// Input is a labelled text-like input
type Input struct {
	Name        string
	Label       string
	Type        string
	Value       string
	Placeholder string
	Required    bool
}

// TextInput renders an Input with its validation message
func TextInput(in Input, errs models.ValidationErrors) templ.Component {
	return Component(func(h *HTML) {
		typ := in.Type
		if typ == "" {
			typ = "text"
		}
		h.F(`<div><label for="%s" class="block text-sm font-medium text-gray-700">%s</label>`, in.Name, in.Label)
		h.F(`<input id="%s" name="%s" type="%s" value="%s" placeholder="%s" class="mt-1 w-full rounded-md border-gray-300 shadow-sm"`,
			in.Name, in.Name, typ, in.Value, in.Placeholder)
		h.If(in.Required, ` required`)
		h.Raw(`>`)
		h.Render(FieldError(errs, in.Name))
		h.Raw(`</div>`)
	})
}

// TextArea renders a labelled textarea with its validation message
func TextArea(name, label, value string, rows int, errs models.ValidationErrors) templ.Component {
	return Component(func(h *HTML) {
		h.F(`<div><label for="%s" class="block text-sm font-medium text-gray-700">%s</label>`, name, label)
		h.F(`<textarea id="%s" name="%s" rows="%d" class="mt-1 w-full rounded-md border-gray-300 shadow-sm">%s</textarea>`, name, name, rows, value)
		h.Render(FieldError(errs, name))
		h.Raw(`</div>`)
	})
}
