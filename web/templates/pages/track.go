package pages

import (
	"github.com/a-h/templ"

	"soap-storefront/internal/models"
	"soap-storefront/web/templates/components"
)

// TrackView is the order lookup state. Exactly one of Order and Error is set
// after a lookup; both are empty before one.
type TrackView struct {
	OrderNumber string
	Order       *models.Order
	Error       string
}

// TrackPage renders the lookup form and, when present, the result
func TrackPage(meta components.PageMeta, view TrackView) templ.Component {
	return components.Layout(meta, components.Component(func(h *components.HTML) {
		h.Raw(`<h1 class="text-3xl font-semibold mb-6">Track your order</h1>`)
		h.Raw(`<form method="get" action="/track" class="flex gap-3 mb-8" hx-get="/track" hx-target="#track-result" hx-select="#track-result" hx-swap="outerHTML" hx-push-url="true">`)
		h.F(`<input name="order" value="%s" placeholder="Order number, e.g. ORD-1001" class="flex-1 rounded-md border-gray-300">`, view.OrderNumber)
		h.Raw(`<button type="submit" class="rounded-md bg-emerald-700 text-white px-6">Track</button></form>`)
		h.Render(TrackResult(view))
	}))
}

// TrackResult is the swappable lookup result
func TrackResult(view TrackView) templ.Component {
	return components.Component(func(h *components.HTML) {
		h.Raw(`<div id="track-result">`)
		defer h.Raw(`</div>`)

		if view.Error != "" {
			h.F(`<div class="rounded-lg bg-red-50 border border-red-200 p-4 text-red-800">%s</div>`, view.Error)
			return
		}
		o := view.Order
		if o == nil {
			return
		}

		h.Raw(`<div class="bg-white rounded-lg shadow-sm p-6 space-y-6"><div class="flex items-center justify-between">`)
		h.F(`<div><p class="text-sm text-gray-500">Order</p><p class="text-xl font-semibold">%s</p></div><div class="flex gap-2">`, o.OrderNumber)
		h.Render(components.StatusBadge(models.StatusDisplay(o.OrderStatus)))
		h.Render(components.StatusBadge(models.PaymentDisplay(o.PaymentStatus)))
		h.Raw(`</div></div>`)
		h.Render(components.ProgressTimeline(o.OrderStatus))

		h.Raw(`<table class="w-full text-sm"><tbody>`)
		for _, item := range o.Items {
			h.F(`<tr class="border-b"><td class="py-2">%s</td><td class="text-right">× %d</td><td class="text-right">%s</td></tr>`,
				item.Name, item.Quantity, components.Price(item.Price*item.Quantity))
		}
		h.F(`</tbody><tfoot><tr><td class="pt-3 font-semibold">Total</td><td></td><td class="pt-3 text-right font-semibold">%s</td></tr></tfoot></table>`,
			components.Price(o.TotalAmount))

		h.F(`<p class="text-sm text-gray-600">Shipping to %s, %s</p>`, o.CustomerInfo.Name, o.CustomerInfo.Address.String())

		if len(o.StatusHistory) > 0 {
			h.Raw(`<div><h3 class="font-medium mb-2">History</h3><ul class="text-sm space-y-1">`)
			for _, entry := range o.StatusHistory {
				h.F(`<li><span class="text-gray-500">%s</span> %s`, entry.Timestamp.Format("2 Jan 2006 15:04"), models.StatusDisplay(entry.Status).Label)
				if entry.Note != "" {
					h.F(` · %s`, entry.Note)
				}
				h.Raw(`</li>`)
			}
			h.Raw(`</ul></div>`)
		}
		h.Raw(`</div>`)
	})
}
