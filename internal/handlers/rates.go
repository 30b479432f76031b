package handlers

import (
	"net/http"

	"aurora-market/internal/services"
)

// RatesHandler exposes the current XMR/EUR exchange rate quote
type RatesHandler struct {
	rateService *services.RateService
}

// NewRatesHandler creates a new rates handler
func NewRatesHandler(rateService *services.RateService) *RatesHandler {
	return &RatesHandler{rateService: rateService}
}

// GetXMRRate returns the rate the checkout page displays in its tracker
func (h *RatesHandler) GetXMRRate(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.rateService.Quote())
}
