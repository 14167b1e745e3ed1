package models

import (
	"testing"
	"time"
)

func catalogFixture() []Product {
	now := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	return []Product{
		{ID: "1", Name: "Turmeric Glow", Category: "Face", Price: 350, Stock: 5, CreatedAt: now.Add(-72 * time.Hour)},
		{ID: "2", Name: "Activated Charcoal", Category: "Body", Price: 280, Stock: 0, Featured: true, CreatedAt: now.Add(-24 * time.Hour)},
		{ID: "3", Name: "Neem Tulsi", Category: "body", Price: 220, Stock: 12, CreatedAt: now},
		{ID: "4", Name: "Goat Milk", Category: "Face", Price: 420, Stock: 3, Featured: true, CreatedAt: now.Add(-48 * time.Hour)},
	}
}

func ids(products []Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.ID
	}
	return out
}

func equalIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestFilterProducts(t *testing.T) {
	tests := []struct {
		name   string
		filter CatalogFilter
		want   []string
	}{
		{name: "default featured first", filter: CatalogFilter{}, want: []string{"2", "4", "1", "3"}},
		{name: "price ascending", filter: CatalogFilter{Sort: CatalogPriceAsc}, want: []string{"3", "2", "1", "4"}},
		{name: "price descending", filter: CatalogFilter{Sort: CatalogPriceDesc}, want: []string{"4", "1", "2", "3"}},
		{name: "by name", filter: CatalogFilter{Sort: CatalogName}, want: []string{"2", "4", "3", "1"}},
		{name: "newest", filter: CatalogFilter{Sort: CatalogNewest}, want: []string{"3", "2", "4", "1"}},
		{name: "category is case-insensitive", filter: CatalogFilter{Category: "BODY", Sort: CatalogName}, want: []string{"2", "3"}},
		{name: "in stock only", filter: CatalogFilter{InStockOnly: true, Sort: CatalogPriceAsc}, want: []string{"3", "1", "4"}},
		{name: "price window", filter: CatalogFilter{MinPrice: 250, MaxPrice: 400, Sort: CatalogPriceAsc}, want: []string{"2", "1"}},
		{name: "search", filter: CatalogFilter{Query: "neem"}, want: []string{"3"}},
		{name: "no match", filter: CatalogFilter{Query: "lavender"}, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			products := catalogFixture()
			got := ids(FilterProducts(products, tt.filter))
			if !equalIDs(got, tt.want) {
				t.Errorf("FilterProducts() = %v, want %v", got, tt.want)
			}
			if !equalIDs(ids(products), []string{"1", "2", "3", "4"}) {
				t.Errorf("FilterProducts() reordered its input: %v", ids(products))
			}
		})
	}
}

func TestCategories(t *testing.T) {
	got := Categories(catalogFixture())
	want := []string{"Face", "Body"}
	if !equalIDs(got, want) {
		t.Errorf("Categories() = %v, want %v", got, want)
	}
}

func TestSplitList(t *testing.T) {
	got := SplitList("neem, tulsi\n\n coconut oil ,")
	want := []string{"neem", "tulsi", "coconut oil"}
	if !equalIDs(got, want) {
		t.Errorf("SplitList() = %v, want %v", got, want)
	}
}

func TestProductForm_Validate(t *testing.T) {
	tests := []struct {
		name      string
		form      ProductForm
		wantField string
	}{
		{name: "valid", form: ProductForm{Name: "Neem", Description: "d", Price: 100, Category: "Face"}},
		{name: "missing name", form: ProductForm{Description: "d", Price: 100, Category: "Face"}, wantField: "name"},
		{name: "zero price", form: ProductForm{Name: "Neem", Description: "d", Category: "Face"}, wantField: "price"},
		{name: "negative stock", form: ProductForm{Name: "Neem", Description: "d", Price: 1, Category: "Face", Stock: -1}, wantField: "stock"},
		{name: "missing category", form: ProductForm{Name: "Neem", Description: "d", Price: 1}, wantField: "category"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := tt.form.Validate()
			if tt.wantField == "" && errs.HasErrors() {
				t.Errorf("Validate() unexpected errors: %v", errs)
			}
			if tt.wantField != "" && errs.First(tt.wantField) == "" {
				t.Errorf("Validate() expected error on %q, got %v", tt.wantField, errs)
			}
		})
	}
}
