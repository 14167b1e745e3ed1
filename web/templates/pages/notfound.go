package pages

import (
	"github.com/a-h/templ"

	"soap-storefront/web/templates/components"
)

// NotFoundPage is the full-page fallback for unknown routes and missing products
func NotFoundPage(meta components.PageMeta, message string) templ.Component {
	if message == "" {
		message = "The page you're looking for doesn't exist."
	}
	return components.Layout(meta, components.Component(func(h *components.HTML) {
		h.Raw(`<div class="text-center py-16"><h1 class="text-6xl font-bold text-gray-900 mb-4">404</h1>`)
		h.F(`<p class="text-gray-600 mb-8">%s</p>`, message)
		h.Raw(`<a href="/shop" class="rounded-md bg-emerald-700 text-white px-6 py-3">Back to the shop</a></div>`)
	}))
}
