package pages

import (
	"github.com/a-h/templ"

	"soap-storefront/internal/models"
	"soap-storefront/web/templates/components"
)

// LoginView is the sign-in form state
type LoginView struct {
	Form     models.LoginForm
	Redirect string
	Errors   models.ValidationErrors
}

// LoginPage is shared by customers and admins
func LoginPage(meta components.PageMeta, view LoginView) templ.Component {
	return components.Layout(meta, components.Component(func(h *components.HTML) {
		h.Raw(`<div class="max-w-md mx-auto bg-white rounded-lg shadow-sm p-8"><h1 class="text-2xl font-semibold mb-6">Sign in</h1>`)
		h.Raw(`<form method="post" action="/login" class="space-y-4" hx-disabled-elt="find button">`)
		h.Render(components.CSRFField(meta.CSRFToken))
		h.F(`<input type="hidden" name="redirect" value="%s">`, view.Redirect)
		h.Render(components.FieldError(view.Errors, "general"))
		h.Render(components.TextInput(components.Input{Name: "email", Label: "Email", Type: "email", Value: view.Form.Email, Required: true}, view.Errors))
		h.Render(components.TextInput(components.Input{Name: "password", Label: "Password", Type: "password", Required: true}, view.Errors))
		h.Raw(`<button type="submit" class="w-full rounded-md bg-emerald-700 text-white py-2">Sign in</button></form>`)
		h.Raw(`<p class="mt-4 text-sm text-center">New here? <a href="/signup" class="underline">Create an account</a></p></div>`)
	}))
}

// SignupView is the registration form state
type SignupView struct {
	Form   models.SignupForm
	Errors models.ValidationErrors
}

func SignupPage(meta components.PageMeta, view SignupView) templ.Component {
	return components.Layout(meta, components.Component(func(h *components.HTML) {
		f := view.Form
		h.Raw(`<div class="max-w-md mx-auto bg-white rounded-lg shadow-sm p-8"><h1 class="text-2xl font-semibold mb-6">Create an account</h1>`)
		h.Raw(`<form method="post" action="/signup" class="space-y-4" hx-disabled-elt="find button">`)
		h.Render(components.CSRFField(meta.CSRFToken))
		h.Render(components.FieldError(view.Errors, "general"))
		h.Render(components.TextInput(components.Input{Name: "name", Label: "Name", Value: f.Name, Required: true}, view.Errors))
		h.Render(components.TextInput(components.Input{Name: "email", Label: "Email", Type: "email", Value: f.Email, Required: true}, view.Errors))
		h.Render(components.TextInput(components.Input{Name: "phone", Label: "Phone", Type: "tel", Value: f.Phone}, view.Errors))
		h.Render(components.TextInput(components.Input{Name: "password", Label: "Password", Type: "password", Required: true}, view.Errors))
		h.Render(components.TextInput(components.Input{Name: "confirm_password", Label: "Confirm password", Type: "password", Required: true}, view.Errors))
		h.Raw(`<button type="submit" class="w-full rounded-md bg-emerald-700 text-white py-2">Sign up</button></form>`)
		h.Raw(`<p class="mt-4 text-sm text-center">Already have an account? <a href="/login" class="underline">Sign in</a></p></div>`)
	}))
}
