package components

import (
	"net/url"
	"strconv"

	"github.com/a-h/templ"

	"soap-storefront/internal/models"
)

// Pager renders prev/next links that keep the current filters
func Pager(p models.Pagination, path string, query url.Values) templ.Component {
	link := func(page int) string {
		q := url.Values{}
		for k, v := range query {
			q[k] = v
		}
		q.Set("page", strconv.Itoa(page))
		return path + "?" + q.Encode()
	}

	return Component(func(h *HTML) {
		if p.TotalPages <= 1 {
			return
		}
		h.Raw(`<nav class="flex items-center justify-between mt-4 text-sm">`)
		if p.HasPrev() {
			h.F(`<a href="%s" class="px-3 py-1 border rounded">Previous</a>`, templ.URL(link(p.Page-1)))
		} else {
			h.Raw(`<span></span>`)
		}
		h.F(`<span class="text-gray-600">Page %d of %d (%d total)</span>`, p.Page, p.TotalPages, p.Total)
		if p.HasNext() {
			h.F(`<a href="%s" class="px-3 py-1 border rounded">Next</a>`, templ.URL(link(p.Page+1)))
		} else {
			h.Raw(`<span></span>`)
		}
		h.Raw(`</nav>`)
	})
}
