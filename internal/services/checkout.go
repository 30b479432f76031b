package services

import (
	"fmt"
	"math/rand"

	"aurora-market/internal/models"

	"github.com/google/uuid"
)

// CheckoutQuote is the payment summary shown on the checkout page
type CheckoutQuote struct {
	Items         []models.CartItem `json:"items"`
	TotalEURCents int               `json:"total_eur_cents"`
	TotalEUR      string            `json:"total_eur"` // 2 decimals
	TotalXMR      string            `json:"total_xmr"` // 6 decimals
	Rate          models.RateQuote  `json:"rate"`
}

// OrderConfirmation carries the payment instructions for a confirmed order.
// There is no order pipeline behind it: payment and fulfillment happen
// out-of-band, this is display data only.
type OrderConfirmation struct {
	Reference string `json:"reference"`
	Address   string `json:"address"`
	TotalEUR  string `json:"total_eur"`
	TotalXMR  string `json:"total_xmr"`
}

// CheckoutService derives the settlement-currency total from the cart and
// the current exchange rate
type CheckoutService struct {
	rates     *RateService
	cart      *CartService
	addresses []string
}

// NewCheckoutService creates a checkout service with the given payment
// address pool
func NewCheckoutService(rates *RateService, cart *CartService, addresses []string) *CheckoutService {
	return &CheckoutService{
		rates:     rates,
		cart:      cart,
		addresses: addresses,
	}
}

// Quote computes the EUR and XMR totals for the cart
func (s *CheckoutService) Quote(cart *models.Cart) (*CheckoutQuote, error) {
	if cart.IsEmpty() {
		return nil, models.ErrEmptyCart
	}

	rate := s.rates.Quote()
	totalCents := s.cart.Total(cart)
	totalEUR := float64(totalCents) / 100

	return &CheckoutQuote{
		Items:         cart.Items,
		TotalEURCents: totalCents,
		TotalEUR:      fmt.Sprintf("%.2f", totalEUR),
		TotalXMR:      fmt.Sprintf("%.6f", totalEUR/rate.EURPerXMR),
		Rate:          rate,
	}, nil
}

// Confirm produces payment instructions for the order. A payment address is
// picked uniformly at random from the pool on every confirmation; this is a
// cosmetic anti-correlation measure, not a security boundary.
func (s *CheckoutService) Confirm(cart *models.Cart) (*OrderConfirmation, error) {
	quote, err := s.Quote(cart)
	if err != nil {
		return nil, err
	}

	return &OrderConfirmation{
		Reference: uuid.New().String(),
		Address:   s.addresses[rand.Intn(len(s.addresses))],
		TotalEUR:  quote.TotalEUR,
		TotalXMR:  quote.TotalXMR,
	}, nil
}
