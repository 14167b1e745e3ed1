package pages

import (
	"fmt"

	"github.com/a-h/templ"

	"soap-storefront/internal/models"
	"soap-storefront/web/templates/components"
)

// DashboardView is the admin landing page
type DashboardView struct {
	Stats  *models.DashboardStats
	Period int
	Error  string
}

func DashboardPage(meta components.PageMeta, view DashboardView) templ.Component {
	return components.AdminLayout(meta, components.Component(func(h *components.HTML) {
		h.Raw(`<div class="flex items-center justify-between mb-6"><h1 class="text-2xl font-semibold">Dashboard</h1><div class="flex gap-2 text-sm">`)
		for _, p := range models.DashboardPeriods {
			class := "px-3 py-1 rounded border"
			if p == view.Period {
				class += " bg-emerald-700 text-white"
			}
			h.F(`<a href="/admin?period=%d" class="%s">%d days</a>`, p, class, p)
		}
		h.Raw(`</div></div>`)

		if view.Error != "" {
			h.F(`<div class="rounded-lg bg-red-50 border border-red-200 p-4 text-red-800">%s</div>`, view.Error)
			return
		}
		s := view.Stats
		if s == nil {
			return
		}

		h.Raw(`<div class="grid grid-cols-2 md:grid-cols-5 gap-4 mb-8">`)
		statCard(h, "Revenue", components.Price(s.TotalRevenue))
		statCard(h, "Orders", fmt.Sprint(s.TotalOrders))
		statCard(h, "Pending", fmt.Sprint(s.PendingOrders))
		statCard(h, "Products", fmt.Sprint(s.TotalProducts))
		statCard(h, "Customers", fmt.Sprint(s.TotalUsers))
		h.Raw(`</div>`)

		if len(s.RevenueByDay) > 0 {
			max := s.MaxRevenue()
			h.Raw(`<div class="bg-white rounded-lg shadow-sm p-6 mb-8"><h2 class="font-semibold mb-4">Revenue</h2><div class="flex items-end gap-1 h-40">`)
			for _, point := range s.RevenueByDay {
				height := 0
				if max > 0 {
					height = point.Revenue * 100 / max
				}
				h.F(`<div class="flex-1 bg-emerald-500 rounded-t" style="height: %d%%" title="%s: %s (%d orders)"></div>`,
					height, point.Date, components.Price(point.Revenue), point.Orders)
			}
			h.Raw(`</div></div>`)
		}

		h.Raw(`<div class="grid md:grid-cols-2 gap-8">`)
		h.Raw(`<div class="bg-white rounded-lg shadow-sm p-6"><h2 class="font-semibold mb-4">Recent orders</h2><ul class="divide-y text-sm">`)
		for _, o := range s.RecentOrders {
			h.F(`<li class="py-2 flex items-center justify-between"><a href="%s" class="underline">%s</a><span>%s</span>`,
				templ.URL(itemPath("orders", o.OrderNumber, "")), o.OrderNumber, components.Price(o.TotalAmount))
			h.Render(components.StatusBadge(models.StatusDisplay(o.OrderStatus)))
			h.Raw(`</li>`)
		}
		h.Raw(`</ul></div>`)

		h.Raw(`<div class="bg-white rounded-lg shadow-sm p-6"><h2 class="font-semibold mb-4">Top products</h2><ul class="divide-y text-sm">`)
		for _, p := range s.TopProducts {
			h.F(`<li class="py-2 flex justify-between"><span>%s</span><span>%d sold · %s</span></li>`, p.Name, p.Sold, components.Price(p.Revenue))
		}
		h.Raw(`</ul>`)
		if len(s.LowStock) > 0 {
			h.Raw(`<h3 class="font-semibold mt-6 mb-2 text-amber-700">Low stock</h3><ul class="text-sm">`)
			for _, p := range s.LowStock {
				h.F(`<li><a href="%s" class="underline">%s</a> · %d left</li>`, templ.URL(itemPath("products", p.ID, "/edit")), p.Name, p.Stock)
			}
			h.Raw(`</ul>`)
		}
		h.Raw(`</div></div>`)
	}))
}

func statCard(h *components.HTML, label, value string) {
	h.F(`<div class="bg-white rounded-lg shadow-sm p-4"><p class="text-xs text-gray-500">%s</p><p class="text-xl font-semibold">%s</p></div>`, label, value)
}
