package models

import "fmt"

// Product represents a catalog product
type Product struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	PriceCents  int     `json:"price_cents"` // in euro cents
	Price       string  `json:"price"`       // formatted, e.g. "€10.00"
	Image       string  `json:"image"`
	Description string  `json:"description"`
	Rating      float64 `json:"rating,omitempty"`
	Reviews     int     `json:"reviews,omitempty"`
}

// FormatEUR formats an amount of euro cents as a display string
func FormatEUR(cents int) string {
	return fmt.Sprintf("€%d.%02d", cents/100, cents%100)
}
