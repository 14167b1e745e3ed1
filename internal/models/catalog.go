package models

import (
	"sort"
	"strings"
)

// CatalogSort is a product list ordering
type CatalogSort string

const (
	CatalogFeatured  CatalogSort = "featured"
	CatalogPriceAsc  CatalogSort = "price-asc"
	CatalogPriceDesc CatalogSort = "price-desc"
	CatalogName      CatalogSort = "name"
	CatalogNewest    CatalogSort = "newest"
)

// CatalogFilter is the shop page filter bar. The server returns the full list;
// filtering and sorting happen here.
type CatalogFilter struct {
	Query       string
	Category    string
	MinPrice    int
	MaxPrice    int
	InStockOnly bool
	Sort        CatalogSort
}

func (f CatalogFilter) matches(p *Product) bool {
	if f.Category != "" && !strings.EqualFold(p.Category, f.Category) {
		return false
	}
	if f.MinPrice > 0 && p.Price < f.MinPrice {
		return false
	}
	if f.MaxPrice > 0 && p.Price > f.MaxPrice {
		return false
	}
	if f.InStockOnly && !p.InStock() {
		return false
	}
	if q := strings.ToLower(strings.TrimSpace(f.Query)); q != "" {
		haystack := strings.ToLower(p.Name + " " + p.Description + " " + p.Category)
		if !strings.Contains(haystack, q) {
			return false
		}
	}
	return true
}

// FilterProducts returns a new slice; the input is not reordered.
func FilterProducts(products []Product, f CatalogFilter) []Product {
	out := make([]Product, 0, len(products))
	for i := range products {
		if f.matches(&products[i]) {
			out = append(out, products[i])
		}
	}

	switch f.Sort {
	case CatalogPriceAsc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	case CatalogPriceDesc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price > out[j].Price })
	case CatalogName:
		sort.SliceStable(out, func(i, j int) bool {
			return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
		})
	case CatalogNewest:
		sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	default:
		// featured first, otherwise server order
		sort.SliceStable(out, func(i, j int) bool { return out[i].Featured && !out[j].Featured })
	}

	return out
}

// Categories returns the distinct categories in first-seen order
func Categories(products []Product) []string {
	seen := make(map[string]bool)
	var cats []string
	for _, p := range products {
		key := strings.ToLower(p.Category)
		if p.Category == "" || seen[key] {
			continue
		}
		seen[key] = true
		cats = append(cats, p.Category)
	}
	return cats
}

// ProductForm is the admin create/edit product form
type ProductForm struct {
	Name          string
	Description   string
	Price         int
	OriginalPrice int
	Category      string
	Stock         int
	Ingredients   []string
	Benefits      []string
	Weight        string
	Featured      bool
	IsActive      bool
}

func (f *ProductForm) Validate() ValidationErrors {
	errs := ValidationErrors{}
	if strings.TrimSpace(f.Name) == "" {
		errs.Add("name", "Name is required")
	}
	if strings.TrimSpace(f.Description) == "" {
		errs.Add("description", "Description is required")
	}
	if f.Price <= 0 {
		errs.Add("price", "Price must be greater than 0")
	}
	if strings.TrimSpace(f.Category) == "" {
		errs.Add("category", "Category is required")
	}
	if f.Stock < 0 {
		errs.Add("stock", "Stock cannot be negative")
	}
	return errs
}

// FormFromProduct pre-fills the edit form
func FormFromProduct(p *Product) ProductForm {
	return ProductForm{
		Name:          p.Name,
		Description:   p.Description,
		Price:         p.Price,
		OriginalPrice: p.OriginalPrice,
		Category:      p.Category,
		Stock:         p.Stock,
		Ingredients:   p.Ingredients,
		Benefits:      p.Benefits,
		Weight:        p.Weight,
		Featured:      p.Featured,
		IsActive:      p.IsActive,
	}
}

// SplitList turns a comma or newline separated textarea into trimmed entries
func SplitList(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == '\n' })
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// AdminProductFilter drives the admin products list
type AdminProductFilter struct {
	Search   string
	Category string
	Status   string // active | inactive | ""
	Page     int
	Limit    int
}
