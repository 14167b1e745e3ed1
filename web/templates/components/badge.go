package components

import (
	"github.com/a-h/templ"

	"soap-storefront/internal/models"
)

// StatusBadge renders a status pill in the style's color family
func StatusBadge(style models.StatusStyle) templ.Component {
	return Component(func(h *HTML) {
		h.F(`<span class="inline-flex items-center px-2.5 py-0.5 rounded-full text-xs font-medium bg-%s-100 text-%s-800" data-icon="%s">%s</span>`,
			style.Color, style.Color, style.Icon, style.Label)
	})
}

// Stars renders a five star rating
func Stars(rating float64) templ.Component {
	return Component(func(h *HTML) {
		h.F(`<span class="text-yellow-500" aria-label="%.1f out of 5">`, rating)
		for i := 1; i <= 5; i++ {
			if float64(i) <= rating+0.5 {
				h.Raw(`★`)
			} else {
				h.Raw(`<span class="text-gray-300">★</span>`)
			}
		}
		h.Raw(`</span>`)
	})
}

// RatingBars renders the review histogram, 5 stars at the top
func RatingBars(stats models.ReviewStats) templ.Component {
	return Component(func(h *HTML) {
		h.Raw(`<div class="space-y-1">`)
		for _, bar := range stats.Bars() {
			h.F(`<div class="flex items-center gap-2 text-sm"><span class="w-8">%d★</span>`+
				`<div class="flex-1 h-2 bg-gray-200 rounded"><div class="h-2 bg-yellow-400 rounded" style="width: %.0f%%"></div></div>`+
				`<span class="w-8 text-right text-gray-500">%d</span></div>`, bar.Star, bar.Percent, bar.Count)
		}
		h.Raw(`</div>`)
	})
}

// ProgressTimeline renders the five-step order timeline
func ProgressTimeline(status models.OrderStatus) templ.Component {
	return Component(func(h *HTML) {
		p := models.Progress(status)
		if p.Cancelled {
			h.Raw(`<div class="rounded-lg bg-red-50 border border-red-200 p-4 text-red-800">This order was cancelled.</div>`)
			h.Raw(`<div class="mt-3 h-2 rounded bg-red-500" style="width: 100%"></div>`)
			return
		}
		if !p.Known {
			h.F(`<p class="text-sm text-gray-600">Current status: %s</p>`, string(status))
		}
		h.F(`<div class="h-2 bg-gray-200 rounded"><div class="h-2 bg-emerald-600 rounded" style="width: %d%%"></div></div>`, p.Percent)
		h.Raw(`<ol class="mt-4 grid grid-cols-5 gap-2 text-center text-xs">`)
		for _, step := range p.Steps {
			class := "text-gray-400"
			if step.Completed {
				class = "text-emerald-700 font-medium"
			}
			if step.Current {
				class += " underline"
			}
			h.F(`<li class="%s" data-icon="%s">%s</li>`, class, step.Style.Icon, step.Style.Label)
		}
		h.Raw(`</ol>`)
	})
}
