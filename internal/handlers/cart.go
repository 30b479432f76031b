package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"aurora-market/internal/models"
	"aurora-market/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"
)

// CartHandler handles shopping cart requests
type CartHandler struct {
	catalogService *services.CatalogService
	cartService    *services.CartService
	store          sessions.Store
}

// NewCartHandler creates a new cart handler
func NewCartHandler(
	catalogService *services.CatalogService,
	cartService *services.CartService,
	store sessions.Store,
) *CartHandler {
	return &CartHandler{
		catalogService: catalogService,
		cartService:    cartService,
		store:          store,
	}
}

// ViewCart returns the session cart contents
func (h *CartHandler) ViewCart(w http.ResponseWriter, r *http.Request) {
	session, err := h.store.Get(r, sessionName)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Session error")
		return
	}

	cart := getCartFromSession(session)
	writeJSON(w, http.StatusOK, cart)
}

// AddToCart adds a product to the shopping cart, applying the bulk discount
// for the requested quantity
func (h *CartHandler) AddToCart(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid form data")
		return
	}

	productID, err := strconv.Atoi(r.FormValue("product_id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	quantity, err := strconv.Atoi(r.FormValue("quantity"))
	if err != nil || quantity <= 0 {
		writeError(w, http.StatusBadRequest, "Invalid quantity")
		return
	}

	product, err := h.catalogService.ProductByID(productID)
	if err != nil {
		writeError(w, http.StatusNotFound, "Product not found")
		return
	}

	session, err := h.store.Get(r, sessionName)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Session error")
		return
	}

	cart := getCartFromSession(session)
	if err := h.cartService.AddItem(cart, product, quantity); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	saveCartToSession(session, cart)
	if err := session.Save(r, w); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save session")
		return
	}

	writeJSON(w, http.StatusOK, cart)
}

// ChangeQuantity nudges a cart line's quantity by a signed delta. The
// resulting quantity never drops below 1; crossing a discount tier updates
// the line's unit price.
func (h *CartHandler) ChangeQuantity(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid form data")
		return
	}

	delta, err := strconv.Atoi(r.FormValue("delta"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid delta")
		return
	}

	session, err := h.store.Get(r, sessionName)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Session error")
		return
	}

	cart := getCartFromSession(session)
	if err := h.cartService.ChangeQuantity(cart, productID, delta); err != nil {
		if errors.Is(err, models.ErrLineItemNotFound) {
			writeError(w, http.StatusNotFound, "Cart line item not found")
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	saveCartToSession(session, cart)
	if err := session.Save(r, w); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save session")
		return
	}

	writeJSON(w, http.StatusOK, cart)
}

// RemoveFromCart deletes a line item. Removing an item that is not in the
// cart succeeds silently.
func (h *CartHandler) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	session, err := h.store.Get(r, sessionName)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Session error")
		return
	}

	cart := getCartFromSession(session)
	h.cartService.RemoveItem(cart, productID)

	saveCartToSession(session, cart)
	if err := session.Save(r, w); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save session")
		return
	}

	writeJSON(w, http.StatusOK, cart)
}
