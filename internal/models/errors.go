package models

import "errors"

// Common errors used throughout the application
var (
	ErrProductNotFound  = errors.New("product not found")
	ErrLineItemNotFound = errors.New("cart line item not found")
	ErrInvalidQuantity  = errors.New("quantity must be a positive integer")
	ErrInvalidPrice     = errors.New("price must be a non-negative amount")
	ErrEmptyCart        = errors.New("cart is empty")
	ErrRateUnavailable  = errors.New("exchange rate unavailable")
)
