package services

import (
	"aurora-market/internal/models"
)

// CartService owns the shopping cart's mutation rules. The cart itself
// lives in the caller's session; every operation takes the cart explicitly
// and leaves it internally consistent (subtotals and total recalculated).
type CartService struct{}

// NewCartService creates a new cart service
func NewCartService() *CartService {
	return &CartService{}
}

// AddItem adds quantity units of a product to the cart, applying the
// add-time bulk discount schedule. Lines are merged by product id: the
// per-unit price is always recomputed from the catalog base price and the
// combined quantity, so a second add can never strand a stale tier price.
// Adding also flips the cart's Open display flag.
func (s *CartService) AddItem(cart *models.Cart, product *models.Product, quantity int) error {
	if product == nil {
		return models.ErrProductNotFound
	}
	if quantity <= 0 {
		return models.ErrInvalidQuantity
	}
	if product.PriceCents < 0 {
		return models.ErrInvalidPrice
	}

	if item := cart.Find(product.ID); item != nil {
		item.Quantity += quantity
		item.UnitPriceCents = UnitPriceCents(item.BasePriceCents, item.Quantity)
	} else {
		cart.Items = append(cart.Items, models.CartItem{
			ProductID:      product.ID,
			Name:           product.Name,
			Image:          product.Image,
			BasePriceCents: product.PriceCents,
			UnitPriceCents: UnitPriceCents(product.PriceCents, quantity),
			Quantity:       quantity,
		})
	}

	cart.Recalculate()
	cart.Open = true
	return nil
}

// ChangeQuantity nudges a line's quantity by delta, clamping the result to a
// minimum of 1 (removal is a separate explicit operation). When the new
// quantity lands in a different discount tier the unit price is recomputed
// from the tier factor schedule; otherwise it is left unchanged.
func (s *CartService) ChangeQuantity(cart *models.Cart, productID, delta int) error {
	item := cart.Find(productID)
	if item == nil {
		return models.ErrLineItemNotFound
	}

	newQty := item.Quantity + delta
	if newQty < 1 {
		newQty = 1
	}

	if TierFactor(newQty) != TierFactor(item.Quantity) {
		item.UnitPriceCents = NudgedUnitPriceCents(item.BasePriceCents, newQty)
	}
	item.Quantity = newQty

	cart.Recalculate()
	return nil
}

// RemoveItem deletes a line item. Removing an absent line is a no-op.
func (s *CartService) RemoveItem(cart *models.Cart, productID int) {
	for i := range cart.Items {
		if cart.Items[i].ProductID == productID {
			cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)
			break
		}
	}
	cart.Recalculate()
}

// Total returns the cart total in euro cents
func (s *CartService) Total(cart *models.Cart) int {
	total := 0
	for _, item := range cart.Items {
		total += item.UnitPriceCents * item.Quantity
	}
	return total
}
