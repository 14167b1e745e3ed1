package pages

import (
	"net/url"
	"strconv"

	"github.com/a-h/templ"

	"soap-storefront/internal/models"
	"soap-storefront/web/templates/components"
)

// ShopView is the catalog page state
type ShopView struct {
	Products   []models.Product
	Categories []string
	Filter     models.CatalogFilter
	Total      int
	LoadError  string
}

var catalogSorts = []struct {
	Value models.CatalogSort
	Label string
}{
	{models.CatalogFeatured, "Featured"},
	{models.CatalogPriceAsc, "Price: low to high"},
	{models.CatalogPriceDesc, "Price: high to low"},
	{models.CatalogName, "Name"},
	{models.CatalogNewest, "Newest"},
}

// HomePage shows the featured products
func HomePage(meta components.PageMeta, featured []models.Product) templ.Component {
	return components.Layout(meta, components.Component(func(h *components.HTML) {
		h.Raw(`<section class="text-center py-12"><h1 class="text-4xl font-semibold text-emerald-900">Handmade soaps for everyday care</h1>`)
		h.Raw(`<p class="mt-3 text-gray-600">Cold-processed in small batches with natural oils.</p>`)
		h.Raw(`<a href="/shop" class="inline-block mt-6 px-6 py-3 rounded-lg bg-emerald-700 text-white">Shop all</a></section>`)
		if len(featured) > 0 {
			h.Raw(`<h2 class="text-2xl font-semibold mb-4">Featured</h2><div class="grid grid-cols-2 md:grid-cols-4 gap-6">`)
			for i := range featured {
				h.Render(productCard(&featured[i], meta.CSRFToken))
			}
			h.Raw(`</div>`)
		}
	}))
}

// ShopPage is the full catalog with its filter bar
func ShopPage(meta components.PageMeta, view ShopView) templ.Component {
	return components.Layout(meta, components.Component(func(h *components.HTML) {
		f := view.Filter
		h.Raw(`<h1 class="text-3xl font-semibold mb-6">Shop</h1>`)
		h.Raw(`<form id="catalog-filters" class="grid grid-cols-2 md:grid-cols-6 gap-3 mb-6" action="/shop" method="get" `)
		h.Raw(`hx-get="/shop" hx-target="#product-grid" hx-swap="outerHTML" hx-push-url="true" hx-trigger="input changed delay:300ms from:input[type=search], change">`)
		h.F(`<input type="search" name="q" value="%s" placeholder="Search soaps" class="col-span-2 rounded-md border-gray-300">`, f.Query)
		h.Raw(`<select name="category" class="rounded-md border-gray-300"><option value="">All categories</option>`)
		for _, c := range view.Categories {
			h.F(`<option value="%s"%s>%s</option>`, c, components.Selected(c, f.Category), c)
		}
		h.Raw(`</select>`)
		h.F(`<input type="number" name="min" min="0" value="%s" placeholder="Min ₹" class="rounded-md border-gray-300">`, intValue(f.MinPrice))
		h.F(`<input type="number" name="max" min="0" value="%s" placeholder="Max ₹" class="rounded-md border-gray-300">`, intValue(f.MaxPrice))
		h.Raw(`<select name="sort" class="rounded-md border-gray-300">`)
		for _, s := range catalogSorts {
			h.F(`<option value="%s"%s>%s</option>`, string(s.Value), components.Selected(string(s.Value), string(f.Sort)), s.Label)
		}
		h.Raw(`</select>`)
		h.F(`<label class="flex items-center gap-2 text-sm"><input type="checkbox" name="in_stock" value="1"%s> In stock</label>`, components.Checked(f.InStockOnly))
		h.Raw(`<noscript><button type="submit">Filter</button></noscript></form>`)
		h.Render(ProductGrid(view, meta.CSRFToken))
	}))
}

// ProductGrid is the swappable result list
func ProductGrid(view ShopView, csrfToken string) templ.Component {
	return components.Component(func(h *components.HTML) {
		h.Raw(`<div id="product-grid">`)
		switch {
		case view.LoadError != "":
			h.F(`<div class="rounded-lg bg-red-50 border border-red-200 p-4 text-red-800">%s</div>`, view.LoadError)
		case len(view.Products) == 0:
			h.Raw(`<p class="text-gray-600 py-12 text-center">No products match your filters.</p>`)
		default:
			h.F(`<p class="text-sm text-gray-500 mb-3">Showing %d of %d products</p>`, len(view.Products), view.Total)
			h.Raw(`<div class="grid grid-cols-2 md:grid-cols-4 gap-6">`)
			for i := range view.Products {
				h.Render(productCard(&view.Products[i], csrfToken))
			}
			h.Raw(`</div>`)
		}
		h.Raw(`</div>`)
	})
}

func productCard(p *models.Product, csrfToken string) templ.Component {
	return components.Component(func(h *components.HTML) {
		h.Raw(`<div class="bg-white rounded-lg shadow-sm overflow-hidden flex flex-col">`)
		h.F(`<a href="/products/%s">`, p.ID)
		if img := p.PrimaryImage(); img != "" {
			h.F(`<img src="%s" alt="%s" class="h-48 w-full object-cover">`, templ.URL(img), p.Name)
		} else {
			h.Raw(`<div class="h-48 bg-stone-200"></div>`)
		}
		h.F(`</a><div class="p-4 flex-1 flex flex-col"><a href="/products/%s" class="font-medium">%s</a>`, p.ID, p.Name)
		h.F(`<p class="text-xs text-gray-500">%s</p><div class="mt-2">`, p.Category)
		h.F(`<span class="font-semibold">%s</span>`, components.Price(p.Price))
		if p.HasDiscount() {
			h.F(` <span class="text-sm text-gray-400 line-through">%s</span>`, components.Price(p.OriginalPrice))
		}
		h.Raw(`</div>`)
		if p.InStock() {
			h.Raw(`<form class="mt-auto pt-3" method="post" action="/cart/add" hx-post="/cart/add" hx-swap="none">`)
			h.Render(components.CSRFField(csrfToken))
			h.F(`<input type="hidden" name="product_id" value="%s"><input type="hidden" name="quantity" value="1">`, p.ID)
			h.Raw(`<button type="submit" class="w-full rounded-md bg-emerald-700 text-white py-2 text-sm">Add to cart</button></form>`)
		} else {
			h.Raw(`<p class="mt-auto pt-3 text-sm text-red-600">Out of stock</p>`)
		}
		h.Raw(`</div></div>`)
	})
}

func intValue(n int) string {
	if n <= 0 {
		return ""
	}
	return strconv.Itoa(n)
}

// ShopQuery turns a filter back into query parameters
func ShopQuery(f models.CatalogFilter) url.Values {
	q := url.Values{}
	if f.Query != "" {
		q.Set("q", f.Query)
	}
	if f.Category != "" {
		q.Set("category", f.Category)
	}
	if f.MinPrice > 0 {
		q.Set("min", strconv.Itoa(f.MinPrice))
	}
	if f.MaxPrice > 0 {
		q.Set("max", strconv.Itoa(f.MaxPrice))
	}
	if f.InStockOnly {
		q.Set("in_stock", "1")
	}
	if f.Sort != "" && f.Sort != models.CatalogFeatured {
		q.Set("sort", string(f.Sort))
	}
	return q
}
