package pages

import (
	"net/url"
	"strconv"

	"github.com/a-h/templ"

	"soap-storefront/internal/models"
	"soap-storefront/web/templates/components"
)

type AdminReviewsView struct {
	Page   *models.Page[models.Review]
	Filter models.AdminReviewFilter
	Error  string
}

func AdminReviewsPage(meta components.PageMeta, view AdminReviewsView) templ.Component {
	return components.AdminLayout(meta, components.Component(func(h *components.HTML) {
		adminHeader(h, "Reviews", "", "")
		ratings := make([]Option, 0, 5)
		for star := 5; star >= 1; star-- {
			ratings = append(ratings, Option{Value: strconv.Itoa(star), Label: strconv.Itoa(star) + " stars"})
		}
		rating := ""
		if view.Filter.Rating > 0 {
			rating = strconv.Itoa(view.Filter.Rating)
		}
		adminFilterBar(h, "/admin/reviews", []FilterField{
			{Name: "search", Label: "Search reviews", Value: view.Filter.Search},
			{Name: "status", Label: "Any status", Value: view.Filter.Status, Options: []Option{{"approved", "Approved"}, {"pending", "Pending"}}},
			{Name: "rating", Label: "Any rating", Value: rating, Options: ratings},
		})
		h.Render(AdminReviewsList(view, meta.CSRFToken))
	}))
}

// ReviewDeletePath carries the snapshot the confirmation page shows
func ReviewDeletePath(r *models.Review) string {
	q := url.Values{}
	q.Set("author", r.AuthorName())
	q.Set("rating", strconv.Itoa(r.Rating))
	q.Set("title", r.Title)
	q.Set("comment", r.Comment)
	return itemPath("reviews", r.ID, "/delete") + "?" + q.Encode()
}

func AdminReviewsList(view AdminReviewsView, csrfToken string) templ.Component {
	return components.Component(func(h *components.HTML) {
		defer h.Raw(`</div>`)
		if !listShell(h, view.Error, view.Page == nil || len(view.Page.Data) == 0, "No reviews found.") {
			return
		}
		tableHead(h, "Review", "Author", "Rating", "Status", "")
		for i := range view.Page.Data {
			r := &view.Page.Data[i]
			h.F(`<tr><td class="px-4 py-2"><p class="font-medium">%s</p><p class="text-xs text-gray-500">%s</p></td><td class="px-4 py-2">%s<br><span class="text-xs text-gray-500">%s</span></td><td class="px-4 py-2">`,
				r.Title, r.Comment, r.AuthorName(), r.UserEmail)
			h.Render(components.Stars(float64(r.Rating)))
			h.Raw(`</td><td class="px-4 py-2">`)
			if r.IsApproved {
				h.Render(components.StatusBadge(models.StatusStyle{Label: "Approved", Color: "green"}))
			} else {
				h.Render(components.StatusBadge(models.StatusStyle{Label: "Pending", Color: "yellow"}))
			}
			h.Raw(`</td><td class="px-4 py-2 text-right whitespace-nowrap">`)
			h.F(`<form method="post" action="%s" class="inline">`, templ.URL(itemPath("reviews", r.ID, "/approve")))
			h.Render(components.CSRFField(csrfToken))
			if r.IsApproved {
				h.Raw(`<input type="hidden" name="approved" value="false"><button type="submit" class="underline mr-3">Unapprove</button></form>`)
			} else {
				h.Raw(`<input type="hidden" name="approved" value="true"><button type="submit" class="underline mr-3">Approve</button></form>`)
			}
			h.F(`<a href="%s" class="underline text-red-600">Delete</a></td></tr>`, templ.URL(ReviewDeletePath(r)))
		}
		h.Raw(`</tbody></table>`)
		q := map[string][]string{}
		setIf(q, "search", view.Filter.Search)
		setIf(q, "status", view.Filter.Status)
		if view.Filter.Rating > 0 {
			q["rating"] = []string{strconv.Itoa(view.Filter.Rating)}
		}
		h.Render(components.Pager(view.Page.Pagination, "/admin/reviews", q))
	})
}
