package pages

import (
	"github.com/a-h/templ"

	"soap-storefront/internal/models"
	"soap-storefront/web/templates/components"
)

// PaymentMethods are the options offered at checkout
var PaymentMethods = []struct{ Value, Label string }{
	{"cod", "Cash on delivery"},
	{"upi", "UPI on delivery"},
}

// CheckoutView is the checkout form state
type CheckoutView struct {
	Cart          *models.Cart
	Customer      models.CustomerInfo
	PaymentMethod string
	Notes         string
	Errors        models.ValidationErrors
}

// CheckoutPage renders the order summary and the customer form
func CheckoutPage(meta components.PageMeta, view CheckoutView) templ.Component {
	return components.Layout(meta, components.Component(func(h *components.HTML) {
		c := view.Customer
		errs := view.Errors
		h.Raw(`<h1 class="text-3xl font-semibold mb-6">Checkout</h1><div class="grid md:grid-cols-3 gap-8">`)
		h.Raw(`<form method="post" action="/checkout" class="md:col-span-2 space-y-4 bg-white rounded-lg shadow-sm p-6" hx-disabled-elt="find button[type=submit]">`)
		h.Render(components.CSRFField(meta.CSRFToken))
		h.Render(components.FieldError(errs, "general"))
		h.Render(components.TextInput(components.Input{Name: "name", Label: "Full name", Value: c.Name, Required: true}, errs))
		h.Render(components.TextInput(components.Input{Name: "email", Label: "Email", Type: "email", Value: c.Email, Required: true}, errs))
		h.Render(components.TextInput(components.Input{Name: "phone", Label: "Phone", Type: "tel", Value: c.Phone, Required: true}, errs))
		h.Render(components.TextInput(components.Input{Name: "street", Label: "Street address", Value: c.Address.Street, Required: true}, errs))
		h.Raw(`<div class="grid grid-cols-3 gap-3">`)
		h.Render(components.TextInput(components.Input{Name: "city", Label: "City", Value: c.Address.City, Required: true}, errs))
		h.Render(components.TextInput(components.Input{Name: "state", Label: "State", Value: c.Address.State}, errs))
		h.Render(components.TextInput(components.Input{Name: "pincode", Label: "Pincode", Value: c.Address.Pincode, Required: true}, errs))
		h.Raw(`</div><fieldset><legend class="text-sm font-medium text-gray-700">Payment</legend>`)
		for _, m := range PaymentMethods {
			h.F(`<label class="block text-sm"><input type="radio" name="payment_method" value="%s"%s> %s</label>`,
				m.Value, components.Checked(view.PaymentMethod == m.Value), m.Label)
		}
		h.Render(components.FieldError(errs, "payment_method"))
		h.Raw(`</fieldset>`)
		h.Render(components.TextArea("notes", "Order notes", view.Notes, 2, errs))
		h.Raw(`<button type="submit" class="w-full rounded-md bg-emerald-700 text-white py-3">Place order</button></form>`)

		h.Raw(`<aside class="bg-white rounded-lg shadow-sm p-6 h-fit"><h2 class="font-semibold mb-3">Order summary</h2><ul class="space-y-2 text-sm">`)
		for _, line := range view.Cart.Lines {
			h.F(`<li class="flex justify-between"><span>%s × %d</span><span>%s</span></li>`, line.Name, line.Quantity, components.Price(line.LineTotal()))
		}
		h.F(`</ul><p class="mt-4 pt-4 border-t flex justify-between font-semibold"><span>Total</span><span>%s</span></p></aside>`,
			components.Price(view.Cart.GetCartTotal()))
		h.Raw(`</div>`)
	}))
}
