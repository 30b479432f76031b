package handlers

import (
	"net/http"

	"aurora-market/internal/services"

	"github.com/gorilla/sessions"
)

// CheckoutHandler handles checkout quote and order confirmation requests
type CheckoutHandler struct {
	checkoutService *services.CheckoutService
	store           sessions.Store
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(checkoutService *services.CheckoutService, store sessions.Store) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutService: checkoutService,
		store:           store,
	}
}

// Checkout returns the payment quote for the session cart. An empty cart
// cannot reach checkout: the request is redirected home with a flash
// notification, mirroring the storefront's route guard.
func (h *CheckoutHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	session, err := h.store.Get(r, sessionName)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Session error")
		return
	}

	cart := getCartFromSession(session)
	if cart.IsEmpty() {
		session.AddFlash("You cannot access checkout with an empty cart.")
		if err := session.Save(r, w); err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to save session")
			return
		}
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	quote, err := h.checkoutService.Quote(cart)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to compute checkout quote")
		return
	}

	writeJSON(w, http.StatusOK, quote)
}

// ConfirmOrder picks a payment address and returns payment instructions
func (h *CheckoutHandler) ConfirmOrder(w http.ResponseWriter, r *http.Request) {
	session, err := h.store.Get(r, sessionName)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Session error")
		return
	}

	cart := getCartFromSession(session)
	if cart.IsEmpty() {
		writeError(w, http.StatusBadRequest, "Cart is empty")
		return
	}

	confirmation, err := h.checkoutService.Confirm(cart)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to confirm order")
		return
	}

	writeJSON(w, http.StatusOK, confirmation)
}

// Notifications returns and clears any pending flash messages
func (h *CheckoutHandler) Notifications(w http.ResponseWriter, r *http.Request) {
	session, err := h.store.Get(r, sessionName)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Session error")
		return
	}

	flashes := session.Flashes()
	messages := make([]string, 0, len(flashes))
	for _, f := range flashes {
		if msg, ok := f.(string); ok {
			messages = append(messages, msg)
		}
	}

	if err := session.Save(r, w); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save session")
		return
	}

	writeJSON(w, http.StatusOK, map[string][]string{"notifications": messages})
}
