package models

// ProductSnapshot is the product display data captured when a line is created.
// It is never re-fetched while the line lives in the cart.
type ProductSnapshot struct {
	ProductID   string `json:"productId"`
	Name        string `json:"name"`
	UnitPrice   int    `json:"unitPrice"`
	ImageURL    string `json:"imageUrl"`
	Description string `json:"description"`
}

// MaxLineQuantity is the most units one cart line can hold
const MaxLineQuantity = 99

// ClampLineQuantity caps a requested line quantity at MaxLineQuantity.
// Values below 1 pass through so callers can treat them as removal.
func ClampLineQuantity(quantity int) int {
	if quantity > MaxLineQuantity {
		return MaxLineQuantity
	}
	return quantity
}

// CartLine represents one product and the quantity requested
type CartLine struct {
	ProductID   string `json:"productId"`
	Name        string `json:"name"`
	UnitPrice   int    `json:"unitPrice"` // whole rupees
	ImageURL    string `json:"imageUrl"`
	Description string `json:"description"`
	Quantity    int    `json:"quantity"`
}

// LineTotal returns unitPrice * quantity
func (l CartLine) LineTotal() int {
	return l.UnitPrice * l.Quantity
}

// Cart is the in-progress order. Lines keep insertion order and
// there is at most one line per product id.
type Cart struct {
	Lines []CartLine `json:"items"`
}

// NewCart returns an empty cart
func NewCart() *Cart {
	return &Cart{Lines: []CartLine{}}
}

func (c *Cart) indexOf(productID string) int {
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			return i
		}
	}
	return -1
}

// AddToCart increments the matching line by one or appends a new line with quantity 1.
// No stock limit is applied here; a line stops growing at MaxLineQuantity.
func (c *Cart) AddToCart(p ProductSnapshot) {
	if i := c.indexOf(p.ProductID); i >= 0 {
		if c.Lines[i].Quantity < MaxLineQuantity {
			c.Lines[i].Quantity++
		}
		return
	}

	c.Lines = append(c.Lines, CartLine{
		ProductID:   p.ProductID,
		Name:        p.Name,
		UnitPrice:   p.UnitPrice,
		ImageURL:    p.ImageURL,
		Description: p.Description,
		Quantity:    1,
	})
}

// RemoveFromCart deletes the matching line regardless of quantity.
func (c *Cart) RemoveFromCart(productID string) {
	i := c.indexOf(productID)
	if i < 0 {
		return
	}
	c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
}

// UpdateQuantity sets the line quantity; anything below 1 removes the line.
func (c *Cart) UpdateQuantity(productID string, quantity int) {
	i := c.indexOf(productID)
	if i < 0 {
		return
	}
	if quantity < 1 {
		c.RemoveFromCart(productID)
		return
	}
	c.Lines[i].Quantity = ClampLineQuantity(quantity)
}

// Decrement is the cart page "-" button: it stops at 1 instead of removing.
func (c *Cart) Decrement(productID string) {
	i := c.indexOf(productID)
	if i < 0 || c.Lines[i].Quantity <= 1 {
		return
	}
	c.Lines[i].Quantity--
}

// Increment is the cart page "+" button
func (c *Cart) Increment(productID string) {
	if i := c.indexOf(productID); i >= 0 && c.Lines[i].Quantity < MaxLineQuantity {
		c.Lines[i].Quantity++
	}
}

// ClearCart empties the cart
func (c *Cart) ClearCart() {
	c.Lines = []CartLine{}
}

// GetCartTotal returns the subtotal: sum of unitPrice * quantity
func (c *Cart) GetCartTotal() int {
	total := 0
	for _, line := range c.Lines {
		total += line.LineTotal()
	}
	return total
}

// GetCartItemsCount returns the sum of all quantities
func (c *Cart) GetCartItemsCount() int {
	count := 0
	for _, line := range c.Lines {
		count += line.Quantity
	}
	return count
}

// Line returns the line for a product, if present
func (c *Cart) Line(productID string) (CartLine, bool) {
	if i := c.indexOf(productID); i >= 0 {
		return c.Lines[i], true
	}
	return CartLine{}, false
}

func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// Normalize repairs a cart decoded from storage: duplicate product ids are merged,
// lines with quantity below 1 are dropped and quantities are capped at MaxLineQuantity.
func (c *Cart) Normalize() {
	merged := make([]CartLine, 0, len(c.Lines))
	seen := make(map[string]int, len(c.Lines))
	for _, line := range c.Lines {
		if line.ProductID == "" || line.Quantity < 1 {
			continue
		}
		line.Quantity = ClampLineQuantity(line.Quantity)
		if i, ok := seen[line.ProductID]; ok {
			merged[i].Quantity = ClampLineQuantity(merged[i].Quantity + line.Quantity)
			continue
		}
		seen[line.ProductID] = len(merged)
		merged = append(merged, line)
	}
	c.Lines = merged
}
