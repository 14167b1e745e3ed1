package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"

	"soap-storefront/internal/models"
	"soap-storefront/internal/services"
	"soap-storefront/web/templates/components"
	"soap-storefront/web/templates/pages"
)

const maxProductForm = 32 << 20

// Products lists products with search, category and status filters
func (h *AdminHandler) Products(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := models.AdminProductFilter{
		Search:   strings.TrimSpace(q.Get("search")),
		Category: q.Get("category"),
		Status:   q.Get("status"),
		Page:     pageParam(q),
		Limit:    adminPageSize,
	}
	ticket := h.listTicket(r, "products")

	view := pages.AdminProductsView{Filter: filter}
	page, err := h.products.AdminList(r.Context(), token(r.Context()), filter)
	if err != nil {
		if h.endIfUnauthorized(w, r, err) {
			return
		}
		logError(r, err, "list admin products")
		view.Error = services.UserMessage(err, "Failed to load products")
	}
	view.Page = page

	// categories come from the public catalog; the filter still works without them
	if all, err := h.products.List(r.Context()); err == nil {
		view.Categories = models.Categories(all)
	}

	h.serveList(w, r, ticket, "Products", pages.AdminProductsList(view), func(meta components.PageMeta) templ.Component {
		return pages.AdminProductsPage(meta, view)
	})
}

// NewProduct renders an empty product form
func (h *AdminHandler) NewProduct(w http.ResponseWriter, r *http.Request) {
	view := pages.ProductFormView{Form: models.ProductForm{IsActive: true}, Errors: models.ValidationErrors{}}
	render(w, r, http.StatusOK, pages.ProductFormPage(h.adminMeta(w, r, "New product"), view))
}

// EditProduct renders the form pre-filled from the backend
func (h *AdminHandler) EditProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.products.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.lookupFailed(w, r, "products", err, "product")
		return
	}
	view := pages.ProductFormView{
		ID:     product.ID,
		Form:   models.FormFromProduct(product),
		Images: productImages(product),
		Errors: models.ValidationErrors{},
	}
	render(w, r, http.StatusOK, pages.ProductFormPage(h.adminMeta(w, r, "Edit product"), view))
}

// CreateProduct posts a new product with its optional image
func (h *AdminHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	h.saveProduct(w, r, "")
}

// UpdateProduct saves an existing product; a new image replaces the old one
func (h *AdminHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	h.saveProduct(w, r, chi.URLParam(r, "id"))
}

func (h *AdminHandler) saveProduct(w http.ResponseWriter, r *http.Request, id string) {
	if err := r.ParseMultipartForm(maxProductForm); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	title := "New product"
	if id != "" {
		title = "Edit product"
	}
	view := pages.ProductFormView{ID: id, Form: productFormFrom(r)}
	view.Errors = view.Form.Validate()

	image, err := h.uploadedImage(r)
	if err != nil {
		view.Errors.Add("image", imageErrorMessage(err))
	}

	page := func(meta components.PageMeta) templ.Component { return pages.ProductFormPage(meta, view) }
	if view.Errors.HasErrors() {
		render(w, r, http.StatusUnprocessableEntity, page(h.adminMeta(w, r, title)))
		return
	}

	if id == "" {
		_, err = h.products.Create(r.Context(), token(r.Context()), view.Form, image)
	} else {
		_, err = h.products.Update(r.Context(), token(r.Context()), id, view.Form, image)
	}
	if err != nil {
		h.formFailed(w, r, "products", err, "Failed to save product", title, page)
		return
	}

	h.mutated(w, r, "products", "Product saved")
}

// uploadedImage prepares the optional "image" file; nil when none was sent
func (h *AdminHandler) uploadedImage(r *http.Request) (*services.ImageUpload, error) {
	file, header, err := r.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer file.Close()

	if header.Size == 0 {
		return nil, nil
	}
	return h.images.Prepare(file, header.Filename)
}

func imageErrorMessage(err error) string {
	switch {
	case errors.Is(err, services.ErrImageTooLarge):
		return "Image is too large"
	case errors.Is(err, services.ErrUnsupportedFormat):
		return "Image must be a JPEG, PNG, GIF or WebP file"
	default:
		return "Image could not be read"
	}
}

func productFormFrom(r *http.Request) models.ProductForm {
	return models.ProductForm{
		Name:          strings.TrimSpace(r.FormValue("name")),
		Description:   strings.TrimSpace(r.FormValue("description")),
		Price:         atoiOr(r.FormValue("price"), 0),
		OriginalPrice: atoiOr(r.FormValue("originalPrice"), 0),
		Category:      strings.TrimSpace(r.FormValue("category")),
		Stock:         atoiOr(r.FormValue("stock"), 0),
		Ingredients:   models.SplitList(r.FormValue("ingredients")),
		Benefits:      models.SplitList(r.FormValue("benefits")),
		Weight:        strings.TrimSpace(r.FormValue("weight")),
		Featured:      formBool(r, "featured"),
		IsActive:      formBool(r, "isActive"),
	}
}

func productImages(p *models.Product) []string {
	if len(p.Images) > 0 {
		return p.Images
	}
	if p.Image != "" {
		return []string{p.Image}
	}
	return nil
}

// ConfirmDeleteProduct shows the product about to be removed
func (h *AdminHandler) ConfirmDeleteProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.products.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.lookupFailed(w, r, "products", err, "product")
		return
	}
	h.confirmDelete(w, r, "product", "products", adminPath("products", product.ID, "/delete"), []pages.SnapshotRow{
		{Label: "Name", Value: product.Name},
		{Label: "Category", Value: product.Category},
		{Label: "Price", Value: components.Price(product.Price)},
		{Label: "Stock", Value: strconv.Itoa(product.Stock)},
	})
}

func (h *AdminHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := h.products.Delete(r.Context(), token(r.Context()), chi.URLParam(r, "id")); err != nil {
		h.mutationFailed(w, r, "products", err, "Failed to delete product")
		return
	}
	h.mutated(w, r, "products", "Product deleted")
}
