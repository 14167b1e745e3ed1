package models

import "time"

// Product is the catalog entry as served by the products API.
// Prices are whole rupees.
type Product struct {
	ID            string    `json:"_id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Price         int       `json:"price"`
	OriginalPrice int       `json:"originalPrice,omitempty"`
	Category      string    `json:"category"`
	Stock         int       `json:"stock"`
	Images        []string  `json:"images,omitempty"`
	Image         string    `json:"image,omitempty"`
	Ingredients   []string  `json:"ingredients,omitempty"`
	Benefits      []string  `json:"benefits,omitempty"`
	Weight        string    `json:"weight,omitempty"`
	Featured      bool      `json:"featured"`
	IsActive      bool      `json:"isActive"`
	AverageRating float64   `json:"averageRating,omitempty"`
	NumReviews    int       `json:"numReviews,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// PrimaryImage returns the first image the product carries, or "".
func (p *Product) PrimaryImage() string {
	if len(p.Images) > 0 && p.Images[0] != "" {
		return p.Images[0]
	}
	return p.Image
}

func (p *Product) InStock() bool {
	return p.Stock > 0
}

// HasDiscount reports whether a strike-through original price should be shown
func (p *Product) HasDiscount() bool {
	return p.OriginalPrice > p.Price
}

// ClampQuantity bounds a product-detail stepper value to [1, min(Stock, MaxLineQuantity)].
// This is the only stock check in the storefront; the cart itself does not enforce stock.
// An out-of-stock product clamps to 1 so the stepper still renders; adding it is refused upstream.
func (p *Product) ClampQuantity(quantity int) int {
	if quantity < 1 {
		return 1
	}
	if p.Stock > 0 && quantity > p.Stock {
		quantity = p.Stock
	}
	if p.Stock <= 0 {
		return 1
	}
	return ClampLineQuantity(quantity)
}

// Snapshot captures the display fields a cart line keeps from add-time.
func (p *Product) Snapshot() ProductSnapshot {
	return ProductSnapshot{
		ProductID:   p.ID,
		Name:        p.Name,
		UnitPrice:   p.Price,
		ImageURL:    p.PrimaryImage(),
		Description: p.Description,
	}
}
