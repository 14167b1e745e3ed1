package pages

import (
	"net/url"

	"github.com/a-h/templ"

	"soap-storefront/internal/models"
	"soap-storefront/web/templates/components"
)

// CartPage renders the cart
func CartPage(meta components.PageMeta, cart *models.Cart) templ.Component {
	return components.Layout(meta, components.Component(func(h *components.HTML) {
		h.Raw(`<h1 class="text-3xl font-semibold mb-6">Your cart</h1>`)
		h.Render(CartContents(cart))
	}))
}

// CartContents is the swappable cart body; HTMX cart actions return it
func CartContents(cart *models.Cart) templ.Component {
	return components.Component(func(h *components.HTML) {
		h.Raw(`<div id="cart-contents">`)
		if cart.IsEmpty() {
			h.Raw(`<div class="text-center py-16"><p class="text-gray-600 mb-4">Your cart is empty.</p>`)
			h.Raw(`<a href="/shop" class="rounded-md bg-emerald-700 text-white px-6 py-2">Continue shopping</a></div></div>`)
			return
		}

		h.Raw(`<div class="bg-white rounded-lg shadow-sm divide-y">`)
		for _, line := range cart.Lines {
			id := url.PathEscape(line.ProductID)
			h.Raw(`<div class="flex items-center gap-4 p-4">`)
			if line.ImageURL != "" {
				h.F(`<img src="%s" alt="%s" class="h-16 w-16 rounded object-cover">`, templ.URL(line.ImageURL), line.Name)
			}
			h.F(`<div class="flex-1"><a href="/products/%s" class="font-medium">%s</a>`, id, line.Name)
			h.F(`<p class="text-sm text-gray-500">%s each</p></div>`, components.Price(line.UnitPrice))
			h.Raw(`<div class="flex items-center border rounded-md">`)
			h.F(`<button class="px-3 py-1" hx-post="/cart/%s/decrement" hx-target="#cart-contents" hx-swap="outerHTML"%s>-</button>`, id, disabledIf(line.Quantity <= 1))
			h.F(`<input type="number" name="quantity" min="0" value="%d" class="w-14 text-center border-0" hx-post="/cart/%s/quantity" hx-trigger="change" hx-target="#cart-contents" hx-swap="outerHTML">`, line.Quantity, id)
			h.F(`<button class="px-3 py-1" hx-post="/cart/%s/increment" hx-target="#cart-contents" hx-swap="outerHTML">+</button>`, id)
			h.Raw(`</div>`)
			h.F(`<p class="w-24 text-right font-medium">%s</p>`, components.Price(line.LineTotal()))
			h.F(`<button class="text-sm text-red-600 underline" hx-post="/cart/%s/remove" hx-target="#cart-contents" hx-swap="outerHTML">Remove</button>`, id)
			h.Raw(`</div>`)
		}
		h.Raw(`</div>`)

		h.Raw(`<div class="mt-6 flex items-center justify-between">`)
		h.Raw(`<button class="text-sm underline" hx-post="/cart/clear" hx-target="#cart-contents" hx-swap="outerHTML" hx-confirm="Remove all items from your cart?">Clear cart</button>`)
		h.F(`<div class="text-right"><p class="text-sm text-gray-500">%d items</p>`, cart.GetCartItemsCount())
		h.F(`<p class="text-xl font-semibold">Subtotal %s</p>`, components.Price(cart.GetCartTotal()))
		h.Raw(`<a href="/checkout" class="inline-block mt-3 rounded-md bg-emerald-700 text-white px-6 py-2">Checkout</a></div></div>`)
		h.Raw(`</div>`)
	})
}

// CartUpdate is the HTMX response to a cart action: the new body plus
// out-of-band badge and toasts.
func CartUpdate(cart *models.Cart, flashes []components.Flash) templ.Component {
	return components.Component(func(h *components.HTML) {
		h.Render(CartContents(cart))
		h.Render(components.CartBadge(cart.GetCartItemsCount(), true))
		if len(flashes) > 0 {
			h.Render(components.Toasts(flashes, true))
		}
	})
}

// AddedToCart is the out-of-band only response to an add from a product card
func AddedToCart(count int, flashes []components.Flash) templ.Component {
	return components.Component(func(h *components.HTML) {
		h.Render(components.CartBadge(count, true))
		h.Render(components.Toasts(flashes, true))
	})
}
