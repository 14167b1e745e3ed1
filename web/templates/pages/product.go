package pages

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/a-h/templ"

	"soap-storefront/internal/models"
	"soap-storefront/web/templates/components"
)

// ProductView is the product detail page state
type ProductView struct {
	Product  *models.Product
	Quantity int
	Reviews  ReviewsView
}

// ReviewsView is the review aggregate section
type ReviewsView struct {
	ProductID  string
	Reviews    []models.Review
	Stats      models.ReviewStats
	Sort       models.ReviewSort
	Disclosure models.Disclosure
	Session    *models.Session
	Voted      map[string]bool
	EditingID  string
	Form       models.ReviewForm
	Errors     models.ValidationErrors
	LoadError  string
	CSRFToken  string
}

// ReviewsURL is the section's own address for a sort mode and visible count
func ReviewsURL(productID string, sort models.ReviewSort, show int, extra url.Values) string {
	q := url.Values{}
	for k, v := range extra {
		q[k] = v
	}
	q.Set("sort", string(sort))
	q.Set("show", strconv.Itoa(show))
	return "/products/" + url.PathEscape(productID) + "/reviews?" + q.Encode()
}

// ProductPage renders a product with its stepper and reviews
func ProductPage(meta components.PageMeta, view ProductView) templ.Component {
	p := view.Product
	return components.Layout(meta, components.Component(func(h *components.HTML) {
		h.Raw(`<div class="grid md:grid-cols-2 gap-10">`)
		h.Raw(`<div class="space-y-3">`)
		if len(p.Images) == 0 && p.Image != "" {
			h.F(`<img src="%s" alt="%s" class="w-full rounded-lg">`, templ.URL(p.Image), p.Name)
		}
		for _, img := range p.Images {
			h.F(`<img src="%s" alt="%s" class="w-full rounded-lg">`, templ.URL(img), p.Name)
		}
		h.Raw(`</div><div>`)
		h.F(`<p class="text-sm text-gray-500">%s</p><h1 class="text-3xl font-semibold">%s</h1>`, p.Category, p.Name)
		if p.NumReviews > 0 {
			h.Raw(`<div class="mt-1 text-sm">`)
			h.Render(components.Stars(p.AverageRating))
			h.F(` <span class="text-gray-500">(%d reviews)</span></div>`, p.NumReviews)
		}
		h.F(`<p class="mt-4 text-2xl font-semibold">%s`, components.Price(p.Price))
		if p.HasDiscount() {
			h.F(` <span class="text-base text-gray-400 line-through">%s</span>`, components.Price(p.OriginalPrice))
		}
		h.Raw(`</p>`)
		h.F(`<p class="mt-4 text-gray-700">%s</p>`, p.Description)
		if p.Weight != "" {
			h.F(`<p class="mt-2 text-sm text-gray-500">Weight: %s</p>`, p.Weight)
		}
		detailList(h, "Ingredients", p.Ingredients)
		detailList(h, "Benefits", p.Benefits)

		if p.InStock() {
			h.Raw(`<form class="mt-6 flex items-end gap-4" method="post" action="/cart/add" hx-post="/cart/add" hx-swap="none">`)
			h.Render(components.CSRFField(meta.CSRFToken))
			h.F(`<input type="hidden" name="product_id" value="%s">`, p.ID)
			h.Render(QuantityStepper(p, view.Quantity))
			h.Raw(`<button type="submit" class="rounded-md bg-emerald-700 text-white px-6 py-2">Add to cart</button></form>`)
			h.F(`<p class="mt-2 text-xs text-gray-500">%d in stock</p>`, p.Stock)
		} else {
			h.Raw(`<p class="mt-6 text-red-600 font-medium">Out of stock</p>`)
		}
		h.Raw(`</div></div>`)

		h.Raw(`<section class="mt-12">`)
		h.Render(ReviewsSection(view.Reviews))
		h.Raw(`</section>`)
	}))
}

func detailList(h *components.HTML, title string, items []string) {
	if len(items) == 0 {
		return
	}
	h.F(`<h3 class="mt-4 font-medium">%s</h3><ul class="list-disc ml-5 text-sm text-gray-700">`, title)
	for _, item := range items {
		h.F(`<li>%s</li>`, item)
	}
	h.Raw(`</ul>`)
}

// QuantityStepper is bounded by the product's stock
func QuantityStepper(p *models.Product, quantity int) templ.Component {
	quantity = p.ClampQuantity(quantity)
	return components.Component(func(h *components.HTML) {
		base := "/products/" + url.PathEscape(p.ID) + "/quantity?q="
		h.Raw(`<div id="qty-stepper" class="flex items-center border rounded-md">`)
		h.F(`<button type="button" class="px-3 py-2" hx-get="%s%d" hx-target="#qty-stepper" hx-swap="outerHTML"%s>-</button>`,
			base, quantity-1, disabledIf(quantity <= 1))
		h.F(`<input type="number" name="quantity" value="%d" min="1" max="%d" class="w-16 text-center border-0" readonly>`, quantity, p.Stock)
		h.F(`<button type="button" class="px-3 py-2" hx-get="%s%d" hx-target="#qty-stepper" hx-swap="outerHTML"%s>+</button>`,
			base, quantity+1, disabledIf(quantity >= p.Stock))
		h.Raw(`</div>`)
	})
}

func disabledIf(b bool) string {
	if b {
		return " disabled"
	}
	return ""
}

var reviewSorts = []struct {
	Value models.ReviewSort
	Label string
}{
	{models.SortNewest, "Newest"},
	{models.SortOldest, "Oldest"},
	{models.SortHighest, "Highest rated"},
	{models.SortLowest, "Lowest rated"},
}

// ReviewsSection is the swappable review aggregate
func ReviewsSection(view ReviewsView) templ.Component {
	return components.Component(func(h *components.HTML) {
		h.Raw(`<div id="reviews">`)
		h.Raw(`<h2 class="text-2xl font-semibold mb-4">Customer reviews</h2>`)
		if view.LoadError != "" {
			h.F(`<div class="rounded-lg bg-red-50 border border-red-200 p-4 text-red-800">%s</div>`, view.LoadError)
			h.Raw(`</div>`)
			return
		}

		h.Raw(`<div class="grid md:grid-cols-3 gap-8"><div>`)
		h.F(`<p class="text-4xl font-semibold">%.1f</p>`, view.Stats.AverageRating)
		h.Render(components.Stars(view.Stats.AverageRating))
		h.F(`<p class="text-sm text-gray-500 mb-3">%d reviews</p>`, view.Stats.TotalReviews)
		h.Render(components.RatingBars(view.Stats))
		h.Raw(`</div><div class="md:col-span-2">`)

		h.F(`<select name="sort" class="rounded-md border-gray-300 mb-4" hx-get="%s" hx-target="#reviews" hx-swap="outerHTML">`,
			"/products/"+url.PathEscape(view.ProductID)+"/reviews")
		for _, s := range reviewSorts {
			h.F(`<option value="%s"%s>%s</option>`, string(s.Value), components.Selected(string(s.Value), string(view.Sort)), s.Label)
		}
		h.Raw(`</select>`)

		if len(view.Reviews) == 0 {
			h.Raw(`<p class="text-gray-600">No reviews yet. Be the first to share your thoughts.</p>`)
		}
		for i := 0; i < view.Disclosure.Visible && i < len(view.Reviews); i++ {
			r := view.Reviews[i]
			if view.EditingID == r.ID && models.CanManageReview(&r, view.Session) {
				h.Render(reviewForm(view, &r))
				continue
			}
			h.Render(reviewCard(view, &r))
		}

		h.Raw(`<div class="flex gap-4 mt-4 text-sm">`)
		if view.Disclosure.HasMore() {
			more := view.Disclosure.ShowMore()
			h.F(`<button hx-get="%s" hx-target="#reviews" hx-swap="outerHTML" class="underline">Show more reviews</button>`,
				ReviewsURL(view.ProductID, view.Sort, more.Visible, nil))
		}
		if view.Disclosure.CanCollapse() {
			less := view.Disclosure.ShowLess()
			h.F(`<button hx-get="%s" hx-target="#reviews" hx-swap="outerHTML" class="underline">Show less</button>`,
				ReviewsURL(view.ProductID, view.Sort, less.Visible, nil))
		}
		h.Raw(`</div>`)

		if view.EditingID == "" {
			h.Render(reviewForm(view, nil))
		}
		h.Raw(`</div></div></div>`)
	})
}

func reviewCard(view ReviewsView, r *models.Review) templ.Component {
	return components.Component(func(h *components.HTML) {
		h.F(`<article class="border-b py-4" id="review-%s"><div class="flex items-center gap-2">`, r.ID)
		h.Render(components.Stars(float64(r.Rating)))
		h.F(`<span class="font-medium">%s</span>`, r.Title)
		h.Raw(`</div>`)
		h.F(`<p class="text-xs text-gray-500">%s on %s`, r.AuthorName(), r.CreatedAt.Format("2 Jan 2006"))
		h.If(r.IsVerifiedPurchase, ` · <span class="text-emerald-700">Verified purchase</span>`)
		h.Raw(`</p>`)
		h.F(`<p class="mt-2 text-gray-700">%s</p>`, r.Comment)
		h.Raw(`<div class="mt-2 flex gap-4 text-sm items-center">`)
		h.Render(HelpfulButton(r.ID, r.HelpfulCount, view.Voted[r.ID]))
		if models.CanManageReview(r, view.Session) {
			h.F(`<button hx-get="%s" hx-target="#reviews" hx-swap="outerHTML" class="underline">Edit</button>`,
				ReviewsURL(view.ProductID, view.Sort, view.Disclosure.Visible, url.Values{"edit": {r.ID}}))
			h.F(`<button hx-post="/products/%s/reviews/%s/delete" hx-vals='{"sort": "%s", "show": "%d"}' hx-target="#reviews" hx-swap="outerHTML" hx-confirm="Delete this review?" class="underline text-red-600">Delete</button>`,
				view.ProductID, r.ID, string(view.Sort), view.Disclosure.Visible)
		}
		h.Raw(`</div></article>`)
	})
}

// HelpfulButton is replaced in place after a vote
func HelpfulButton(reviewID string, count int, voted bool) templ.Component {
	return components.Component(func(h *components.HTML) {
		if voted {
			h.F(`<span id="helpful-%s" class="text-gray-500">Thanks for your feedback · Helpful (%d)</span>`, reviewID, count)
			return
		}
		h.F(`<button id="helpful-%s" hx-post="/reviews/%s/helpful" hx-vals='{"count": "%d"}' hx-swap="outerHTML" class="underline">Helpful (%d)</button>`,
			reviewID, reviewID, count, count)
	})
}

// reviewForm is the create form when existing is nil, else the inline edit form
func reviewForm(view ReviewsView, existing *models.Review) templ.Component {
	return components.Component(func(h *components.HTML) {
		form := view.Form
		action := fmt.Sprintf("/products/%s/reviews", url.PathEscape(view.ProductID))
		title := "Write a review"
		if existing != nil {
			action += "/" + url.PathEscape(existing.ID)
			title = "Edit your review"
			if form.Rating == 0 && form.Comment == "" {
				form = models.ReviewForm{Rating: existing.Rating, Title: existing.Title, Comment: existing.Comment}
			}
		}

		h.F(`<form class="mt-6 space-y-3 bg-white rounded-lg p-4 shadow-sm" hx-post="%s" hx-target="#reviews" hx-swap="outerHTML" hx-disabled-elt="find button">`, action)
		h.F(`<h3 class="font-medium">%s</h3>`, title)
		h.Render(components.CSRFField(view.CSRFToken))
		h.F(`<input type="hidden" name="sort" value="%s"><input type="hidden" name="show" value="%d">`, string(view.Sort), view.Disclosure.Visible)
		h.Raw(`<div class="flex gap-3">`)
		for star := 1; star <= 5; star++ {
			h.F(`<label class="text-sm"><input type="radio" name="rating" value="%d"%s> %d★</label>`, star, components.Checked(form.Rating == star), star)
		}
		h.Raw(`</div>`)
		h.Render(components.FieldError(view.Errors, "rating"))
		h.Render(components.TextInput(components.Input{Name: "title", Label: "Title", Value: form.Title}, view.Errors))
		h.Render(components.TextArea("comment", "Review", form.Comment, 4, view.Errors))
		if existing == nil && view.Session == nil {
			h.Render(components.TextInput(components.Input{Name: "userName", Label: "Your name", Value: form.UserName}, view.Errors))
			h.Render(components.TextInput(components.Input{Name: "userEmail", Label: "Email", Type: "email", Value: form.UserEmail}, view.Errors))
		}
		h.Render(components.FieldError(view.Errors, "general"))
		h.Raw(`<div class="flex gap-3"><button type="submit" class="rounded-md bg-emerald-700 text-white px-4 py-2 text-sm">Submit</button>`)
		if existing != nil {
			h.F(`<button type="button" hx-get="%s" hx-target="#reviews" hx-swap="outerHTML" class="text-sm underline">Cancel</button>`,
				ReviewsURL(view.ProductID, view.Sort, view.Disclosure.Visible, nil))
		}
		h.Raw(`</div></form>`)
	})
}
