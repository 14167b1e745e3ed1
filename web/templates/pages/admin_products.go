package pages

import (
	"strconv"
	"strings"

	"github.com/a-h/templ"

	"soap-storefront/internal/models"
	"soap-storefront/web/templates/components"
)

// AdminProductsView is the admin product list state
type AdminProductsView struct {
	Page       *models.Page[models.Product]
	Filter     models.AdminProductFilter
	Categories []string
	Error      string
}

func productFilterFields(view AdminProductsView) []FilterField {
	cats := make([]Option, 0, len(view.Categories))
	for _, c := range view.Categories {
		cats = append(cats, Option{Value: c, Label: c})
	}
	return []FilterField{
		{Name: "search", Label: "Search products", Value: view.Filter.Search},
		{Name: "category", Label: "All categories", Value: view.Filter.Category, Options: cats},
		{Name: "status", Label: "Any status", Value: view.Filter.Status, Options: []Option{{"active", "Active"}, {"inactive", "Inactive"}}},
	}
}

func AdminProductsPage(meta components.PageMeta, view AdminProductsView) templ.Component {
	return components.AdminLayout(meta, components.Component(func(h *components.HTML) {
		adminHeader(h, "Products", "/admin/products/new", "New product")
		adminFilterBar(h, "/admin/products", productFilterFields(view))
		h.Render(AdminProductsList(view))
	}))
}

// AdminProductsList is the swappable table
func AdminProductsList(view AdminProductsView) templ.Component {
	return components.Component(func(h *components.HTML) {
		defer h.Raw(`</div>`)
		if !listShell(h, view.Error, view.Page == nil || len(view.Page.Data) == 0, "No products found.") {
			return
		}
		tableHead(h, "Product", "Category", "Price", "Stock", "Status", "")
		for _, p := range view.Page.Data {
			h.Raw(`<tr><td class="px-4 py-2 flex items-center gap-3">`)
			if img := p.PrimaryImage(); img != "" {
				h.F(`<img src="%s" alt="" class="h-10 w-10 rounded object-cover">`, templ.URL(img))
			}
			h.F(`%s</td><td class="px-4 py-2">%s</td><td class="px-4 py-2">%s</td><td class="px-4 py-2">%d</td><td class="px-4 py-2">`,
				p.Name, p.Category, components.Price(p.Price), p.Stock)
			h.Render(activeBadge(p.IsActive))
			h.Raw(`</td>`)
			rowActions(h, itemPath("products", p.ID, "/edit"), itemPath("products", p.ID, "/delete"))
			h.Raw(`</tr>`)
		}
		h.Raw(`</tbody></table>`)
		h.Render(components.Pager(view.Page.Pagination, "/admin/products", adminProductQuery(view.Filter)))
	})
}

// ProductFormView is the create/edit product form state
type ProductFormView struct {
	ID     string
	Form   models.ProductForm
	Images []string
	Errors models.ValidationErrors
}

func ProductFormPage(meta components.PageMeta, view ProductFormView) templ.Component {
	return components.AdminLayout(meta, components.Component(func(h *components.HTML) {
		f := view.Form
		errs := view.Errors
		title, action := "New product", "/admin/products"
		if view.ID != "" {
			title, action = "Edit product", itemPath("products", view.ID, "")
		}
		formShell(h, title, action, meta.CSRFToken, true)
		h.Render(components.FieldError(errs, "general"))
		h.Render(components.TextInput(components.Input{Name: "name", Label: "Name", Value: f.Name, Required: true}, errs))
		h.Render(components.TextArea("description", "Description", f.Description, 4, errs))
		h.Raw(`<div class="grid grid-cols-3 gap-3">`)
		h.Render(components.TextInput(components.Input{Name: "price", Label: "Price (₹)", Type: "number", Value: numberValue(f.Price), Required: true}, errs))
		h.Render(components.TextInput(components.Input{Name: "originalPrice", Label: "Original price (₹)", Type: "number", Value: numberValue(f.OriginalPrice)}, errs))
		h.Render(components.TextInput(components.Input{Name: "stock", Label: "Stock", Type: "number", Value: strconv.Itoa(f.Stock)}, errs))
		h.Raw(`</div><div class="grid grid-cols-2 gap-3">`)
		h.Render(components.TextInput(components.Input{Name: "category", Label: "Category", Value: f.Category, Required: true}, errs))
		h.Render(components.TextInput(components.Input{Name: "weight", Label: "Weight", Value: f.Weight, Placeholder: "100g"}, errs))
		h.Raw(`</div>`)
		h.Render(components.TextArea("ingredients", "Ingredients (comma or line separated)", strings.Join(f.Ingredients, ", "), 2, errs))
		h.Render(components.TextArea("benefits", "Benefits (comma or line separated)", strings.Join(f.Benefits, ", "), 2, errs))
		checkbox(h, "featured", "Featured", f.Featured)
		checkbox(h, "isActive", "Active", f.IsActive)
		if len(view.Images) > 0 {
			h.Raw(`<div class="flex gap-2">`)
			for _, img := range view.Images {
				h.F(`<img src="%s" alt="" class="h-16 w-16 rounded object-cover">`, templ.URL(img))
			}
			h.Raw(`</div>`)
		}
		h.Raw(`<div><label class="block text-sm font-medium text-gray-700">Image</label><input type="file" name="image" accept="image/jpeg,image/png,image/gif,image/webp" class="mt-1 text-sm">`)
		h.Render(components.FieldError(errs, "image"))
		h.Raw(`</div>`)
		formButtons(h, "/admin/products")
	}))
}

func numberValue(n int) string {
	if n == 0 {
		return ""
	}
	return strconv.Itoa(n)
}

func adminProductQuery(f models.AdminProductFilter) map[string][]string {
	q := map[string][]string{}
	setIf(q, "search", f.Search)
	setIf(q, "category", f.Category)
	setIf(q, "status", f.Status)
	return q
}

func setIf(q map[string][]string, key, value string) {
	if value != "" {
		q[key] = []string{value}
	}
}
