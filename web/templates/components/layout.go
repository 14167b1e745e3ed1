package components

import (
	"github.com/a-h/templ"

	"soap-storefront/internal/models"
)

// PageMeta is what every full page needs besides its body
type PageMeta struct {
	Title         string
	Path          string
	Session       *models.Session
	CSRFToken     string
	CartCount     int
	Flashes       []Flash
	Announcements []models.Announcement
}

var bannerClasses = map[models.AnnouncementType]string{
	models.AnnouncementInfo:    "bg-blue-600",
	models.AnnouncementPromo:   "bg-emerald-600",
	models.AnnouncementWarning: "bg-amber-600",
}

// AnnouncementBanner renders the undismissed banners
func AnnouncementBanner(announcements []models.Announcement) templ.Component {
	return Component(func(h *HTML) {
		for _, a := range announcements {
			class, ok := bannerClasses[a.Type]
			if !ok {
				class = bannerClasses[models.AnnouncementInfo]
			}
			h.F(`<div id="announcement-%s" class="%s text-white text-sm">`, a.ID, class)
			h.Raw(`<div class="max-w-6xl mx-auto px-4 py-2 flex items-center gap-3">`)
			h.F(`<strong>%s</strong><span class="flex-1">%s</span>`, a.Title, a.Message)
			if a.Link != "" {
				text := a.LinkText
				if text == "" {
					text = "Learn more"
				}
				h.F(`<a href="%s" class="underline">%s</a>`, templ.URL(a.Link), text)
			}
			h.F(`<button hx-post="/announcements/%s/dismiss" hx-target="#announcement-%s" hx-swap="outerHTML" aria-label="Dismiss">&times;</button>`, a.ID, a.ID)
			h.Raw(`</div></div>`)
		}
	})
}

// CartBadge is the navbar item count, swapped out-of-band after cart changes
func CartBadge(count int, oob bool) templ.Component {
	return Component(func(h *HTML) {
		h.Raw(`<span id="cart-count" class="ml-1 rounded-full bg-emerald-700 text-white text-xs px-2"`)
		h.If(oob, ` hx-swap-oob="true"`)
		h.F(`>%d</span>`, count)
	})
}

func head(h *HTML, meta PageMeta) {
	h.Raw(`<!DOCTYPE html><html lang="en"><head><meta charset="UTF-8">`)
	h.Raw(`<meta name="viewport" content="width=device-width, initial-scale=1.0">`)
	h.F(`<title>%s | Soap Store</title>`, meta.Title)
	h.Raw(`<script src="https://cdn.tailwindcss.com"></script>`)
	h.Raw(`<script src="https://unpkg.com/htmx.org@1.9.12"></script>`)
	h.Raw(`</head>`)
	h.F(`<body class="bg-stone-50 text-gray-900" hx-headers='{"X-CSRF-Token": "%s"}'>`, meta.CSRFToken)
}

func navbar(h *HTML, meta PageMeta) {
	h.Raw(`<header class="bg-white border-b"><nav class="max-w-6xl mx-auto px-4 h-16 flex items-center gap-6">`)
	h.Raw(`<a href="/" class="text-xl font-semibold text-emerald-800">Soap Store</a>`)
	h.Raw(`<a href="/shop" class="text-sm">Shop</a><a href="/track" class="text-sm">Track order</a><a href="/contact" class="text-sm">Contact</a>`)
	h.Raw(`<div class="ml-auto flex items-center gap-4 text-sm">`)
	h.Raw(`<a href="/cart" class="flex items-center">Cart`)
	h.Render(CartBadge(meta.CartCount, false))
	h.Raw(`</a>`)
	if meta.Session != nil {
		if meta.Session.IsAdmin() {
			h.Raw(`<a href="/admin">Admin</a>`)
		}
		h.F(`<span>Hi, %s</span>`, meta.Session.FirstName())
		h.Raw(`<form method="post" action="/logout">`)
		h.Render(CSRFField(meta.CSRFToken))
		h.Raw(`<button type="submit" class="underline">Sign out</button></form>`)
	} else {
		h.Raw(`<a href="/login">Sign in</a>`)
	}
	h.Raw(`</div></nav></header>`)
}

// Layout is the storefront shell
func Layout(meta PageMeta, body templ.Component) templ.Component {
	return Component(func(h *HTML) {
		head(h, meta)
		h.Render(AnnouncementBanner(meta.Announcements))
		navbar(h, meta)
		h.Render(Toasts(meta.Flashes, false))
		h.Raw(`<main class="max-w-6xl mx-auto px-4 py-8">`)
		h.Render(body)
		h.Raw(`</main>`)
		h.Raw(`<footer class="border-t mt-12 py-6 text-center text-sm text-gray-500">Handmade soaps, small batches.</footer>`)
		h.Raw(`</body></html>`)
	})
}

var adminNav = []struct{ Path, Label string }{
	{"/admin", "Dashboard"},
	{"/admin/products", "Products"},
	{"/admin/orders", "Orders"},
	{"/admin/users", "Users"},
	{"/admin/announcements", "Announcements"},
	{"/admin/reviews", "Reviews"},
}

// AdminLayout is the back-office shell with the side navigation
func AdminLayout(meta PageMeta, body templ.Component) templ.Component {
	return Component(func(h *HTML) {
		head(h, meta)
		navbar(h, meta)
		h.Render(Toasts(meta.Flashes, false))
		h.Raw(`<div class="max-w-7xl mx-auto px-4 py-8 flex gap-8"><aside class="w-48 shrink-0"><ul class="space-y-1 text-sm">`)
		for _, item := range adminNav {
			class := "block px-3 py-2 rounded hover:bg-gray-100"
			if meta.Path == item.Path {
				class += " bg-emerald-50 text-emerald-800 font-medium"
			}
			h.F(`<li><a href="%s" class="%s">%s</a></li>`, templ.URL(item.Path), class, item.Label)
		}
		h.Raw(`</ul></aside><main class="flex-1 min-w-0">`)
		h.Render(body)
		h.Raw(`</main></div></body></html>`)
	})
}
