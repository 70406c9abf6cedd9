package models

import "time"

// CartItem represents a single line in a shopping cart. Product holds a
// snapshot of the product taken when the line was added, used for display.
type CartItem struct {
	ID           string  `json:"id"`
	ProductID    string  `json:"productId"`
	CartID       string  `json:"cartId"`
	Quantity     int     `json:"quantity"`
	SellingPrice float64 `json:"sellingPrice"` // negotiated price, within the product's band
	Product      Product `json:"product"`
}

// Subtotal returns the line total (price * quantity).
func (i CartItem) Subtotal() float64 {
	return i.SellingPrice * float64(i.Quantity)
}

// Cart represents a shopping cart. Items are embedded in the cart row as a
// JSON document; there is at most one line per product.
type Cart struct {
	ID        string     `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Items     []CartItem `json:"items" gorm:"serializer:json"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// NewCart creates an empty cart with the given id.
func NewCart(id string) *Cart {
	now := time.Now()
	return &Cart{
		ID:        id,
		Items:     []CartItem{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// AddItem adds a product to the cart. If the product is already in the cart
// the quantities are summed on the existing line instead of appending a
// duplicate.
func (c *Cart) AddItem(product *Product, quantity int, sellingPrice float64) *CartItem {
	for i := range c.Items {
		if c.Items[i].ProductID == product.ID {
			c.Items[i].Quantity += quantity
			c.UpdatedAt = time.Now()
			return &c.Items[i]
		}
	}

	item := CartItem{
		ProductID:    product.ID,
		CartID:       c.ID,
		Quantity:     quantity,
		SellingPrice: sellingPrice,
		Product:      *product,
	}
	c.Items = append(c.Items, item)
	c.UpdatedAt = time.Now()
	return &c.Items[len(c.Items)-1]
}

// Item returns the line for the given product, or nil if it is not in the cart.
func (c *Cart) Item(productID string) *CartItem {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			return &c.Items[i]
		}
	}
	return nil
}

// UpdateItemQuantity sets the quantity on an existing line. It reports
// whether the product was in the cart.
func (c *Cart) UpdateItemQuantity(productID string, quantity int) bool {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items[i].Quantity = quantity
			c.UpdatedAt = time.Now()
			return true
		}
	}
	return false
}

// RemoveItem removes the line for the given product. It reports whether a
// line was removed.
func (c *Cart) RemoveItem(productID string) bool {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			c.UpdatedAt = time.Now()
			return true
		}
	}
	return false
}

// Clear removes all lines from the cart.
func (c *Cart) Clear() {
	c.Items = []CartItem{}
	c.UpdatedAt = time.Now()
}

// Total returns the sum of all line subtotals.
func (c *Cart) Total() float64 {
	var total float64
	for _, item := range c.Items {
		total += item.Subtotal()
	}
	return total
}

// TotalItems returns the total number of units across all lines.
func (c *Cart) TotalItems() int {
	var n int
	for _, item := range c.Items {
		n += item.Quantity
	}
	return n
}
