package pages

import (
	"github.com/a-h/templ"

	"soap-storefront/internal/models"
	"soap-storefront/web/templates/components"
)

// AdminOrdersView is the admin order list state
type AdminOrdersView struct {
	Page   *models.Page[models.Order]
	Filter models.AdminOrderFilter
	Error  string
}

func statusOptions() []Option {
	opts := make([]Option, 0, 6)
	for _, s := range models.AdminStatusOptions() {
		opts = append(opts, Option{Value: string(s), Label: models.StatusDisplay(s).Label})
	}
	return opts
}

func paymentOptions() []Option {
	statuses := []models.PaymentStatus{models.PaymentPending, models.PaymentPaid, models.PaymentFailed, models.PaymentRefunded}
	opts := make([]Option, 0, len(statuses))
	for _, s := range statuses {
		opts = append(opts, Option{Value: string(s), Label: models.PaymentDisplay(s).Label})
	}
	return opts
}

func AdminOrdersPage(meta components.PageMeta, view AdminOrdersView) templ.Component {
	return components.AdminLayout(meta, components.Component(func(h *components.HTML) {
		adminHeader(h, "Orders", "", "")
		adminFilterBar(h, "/admin/orders", []FilterField{
			{Name: "search", Label: "Order number, name or email", Value: view.Filter.Search},
			{Name: "status", Label: "Any status", Value: view.Filter.Status, Options: statusOptions()},
			{Name: "paymentStatus", Label: "Any payment", Value: view.Filter.PaymentStatus, Options: paymentOptions()},
		})
		h.Render(AdminOrdersList(view))
	}))
}

func AdminOrdersList(view AdminOrdersView) templ.Component {
	return components.Component(func(h *components.HTML) {
		defer h.Raw(`</div>`)
		if !listShell(h, view.Error, view.Page == nil || len(view.Page.Data) == 0, "No orders found.") {
			return
		}
		tableHead(h, "Order", "Customer", "Items", "Total", "Status", "Payment", "Placed", "")
		for _, o := range view.Page.Data {
			h.F(`<tr><td class="px-4 py-2"><a href="%s" class="underline">%s</a></td><td class="px-4 py-2">%s<br><span class="text-xs text-gray-500">%s</span></td>`,
				templ.URL(itemPath("orders", o.OrderNumber, "")), o.OrderNumber, o.CustomerInfo.Name, o.CustomerInfo.Email)
			h.F(`<td class="px-4 py-2">%d</td><td class="px-4 py-2">%s</td><td class="px-4 py-2">`, o.ItemCount(), components.Price(o.TotalAmount))
			h.Render(components.StatusBadge(models.StatusDisplay(o.OrderStatus)))
			h.Raw(`</td><td class="px-4 py-2">`)
			h.Render(components.StatusBadge(models.PaymentDisplay(o.PaymentStatus)))
			h.F(`</td><td class="px-4 py-2">%s</td>`, o.CreatedAt.Format("2 Jan 2006"))
			rowActions(h, itemPath("orders", o.OrderNumber, ""), itemPath("orders", o.OrderNumber, "/delete"))
			h.Raw(`</tr>`)
		}
		h.Raw(`</tbody></table>`)
		q := map[string][]string{}
		setIf(q, "search", view.Filter.Search)
		setIf(q, "status", view.Filter.Status)
		setIf(q, "paymentStatus", view.Filter.PaymentStatus)
		h.Render(components.Pager(view.Page.Pagination, "/admin/orders", q))
	})
}

// OrderDetailView is the admin order view with its status form
type OrderDetailView struct {
	Order  *models.Order
	Update models.StatusUpdateRequest
	Errors models.ValidationErrors
}

func OrderDetailPage(meta components.PageMeta, view OrderDetailView) templ.Component {
	return components.AdminLayout(meta, components.Component(func(h *components.HTML) {
		o := view.Order
		update := view.Update
		if update.OrderStatus == "" {
			update.OrderStatus = o.OrderStatus
			update.PaymentStatus = o.PaymentStatus
		}

		h.F(`<a href="/admin/orders" class="text-sm underline">Back to orders</a><h1 class="text-2xl font-semibold my-4">Order %s</h1>`, o.OrderNumber)
		h.Raw(`<div class="grid md:grid-cols-3 gap-8"><div class="md:col-span-2 space-y-6">`)
		h.Render(TrackResult(TrackView{Order: o}))
		h.F(`<div class="bg-white rounded-lg shadow-sm p-6 text-sm"><h2 class="font-semibold mb-2">Customer</h2><p>%s</p><p>%s</p><p>%s</p><p>%s</p>`,
			o.CustomerInfo.Name, o.CustomerInfo.Email, o.CustomerInfo.Phone, o.CustomerInfo.Address.String())
		if o.Notes != "" {
			h.F(`<p class="mt-2 text-gray-600">Notes: %s</p>`, o.Notes)
		}
		h.Raw(`</div></div>`)

		h.F(`<form method="post" action="%s" class="bg-white rounded-lg shadow-sm p-6 space-y-4 h-fit" hx-disabled-elt="find button">`, templ.URL(itemPath("orders", o.OrderNumber, "/status")))
		h.Raw(`<h2 class="font-semibold">Update status</h2>`)
		h.Render(components.CSRFField(meta.CSRFToken))
		selectField(h, "orderStatus", "Order status", string(update.OrderStatus), statusOptions(), view.Errors)
		selectField(h, "paymentStatus", "Payment status", string(update.PaymentStatus), paymentOptions(), view.Errors)
		h.Render(components.TextArea("note", "Note", update.Note, 2, view.Errors))
		h.Raw(`<button type="submit" class="w-full rounded-md bg-emerald-700 text-white py-2 text-sm">Update</button></form></div>`)
	}))
}
