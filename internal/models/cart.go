package models

// Cart represents a shopping cart
type Cart struct {
	Items       []CartItem `json:"items"`
	TotalAmount int        `json:"total_amount"` // in cents
	Open        bool       `json:"open"`         // cart dropdown visibility flag
}

// CartItem represents an item in the shopping cart.
//
// BasePriceCents is the undiscounted catalog price. UnitPriceCents is the
// tier-discounted per-unit price for the current quantity and is always
// recomputed from the base price, never trusted as independent state.
type CartItem struct {
	ProductID      int    `json:"product_id"`
	Name           string `json:"name"`
	Image          string `json:"image"`
	BasePriceCents int    `json:"base_price_cents"`
	UnitPriceCents int    `json:"unit_price_cents"`
	Quantity       int    `json:"quantity"`
	Subtotal       int    `json:"subtotal"` // in cents
}

// Find returns the line item for the given product id, or nil
func (c *Cart) Find(productID int) *CartItem {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			return &c.Items[i]
		}
	}
	return nil
}

// Recalculate refreshes every line subtotal and the cart total
func (c *Cart) Recalculate() {
	c.TotalAmount = 0
	for i := range c.Items {
		c.Items[i].Subtotal = c.Items[i].UnitPriceCents * c.Items[i].Quantity
		c.TotalAmount += c.Items[i].Subtotal
	}
}

// IsEmpty reports whether the cart has no line items
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}
