package services

import "math"

// Quantity presets offered by the quantity picker
var QuantityPresets = []int{1, 5, 10, 25, 50, 100}

// DiscountFraction returns the bulk discount fraction applied when a
// quantity is selected in the quantity picker (add-to-cart surface).
func DiscountFraction(quantity int) float64 {
	switch {
	case quantity >= 100:
		return 0.40
	case quantity >= 50:
		return 0.30
	case quantity >= 25:
		return 0.20
	case quantity >= 10:
		return 0.10
	case quantity >= 5:
		return 0.05
	default:
		return 0
	}
}

// TierFactor returns the multiplicative price factor used when a cart line's
// quantity is nudged up or down (cart dropdown surface). Numerically the
// complement of DiscountFraction, kept separate because each is observable
// on a different UI surface.
func TierFactor(quantity int) float64 {
	switch {
	case quantity >= 100:
		return 0.6
	case quantity >= 50:
		return 0.7
	case quantity >= 25:
		return 0.8
	case quantity >= 10:
		return 0.9
	case quantity >= 5:
		return 0.95
	default:
		return 1
	}
}

// UnitPriceCents computes the discounted per-unit price in cents for the
// given base price and quantity, rounded to the nearest cent.
func UnitPriceCents(basePriceCents, quantity int) int {
	return int(math.Round(float64(basePriceCents) * (1 - DiscountFraction(quantity))))
}

// NudgedUnitPriceCents is the cart-dropdown variant of UnitPriceCents
func NudgedUnitPriceCents(basePriceCents, quantity int) int {
	return int(math.Round(float64(basePriceCents) * TierFactor(quantity)))
}
