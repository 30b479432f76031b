package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"aurora-market/internal/models"

	"github.com/gorilla/sessions"
)

const sessionName = "session"

// writeJSON writes v as a JSON response with the given status code
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

// errorResponse is the standard error payload
type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// getCartFromSession returns the session cart, or a fresh empty cart
func getCartFromSession(session *sessions.Session) *models.Cart {
	if raw, ok := session.Values["cart"]; ok {
		if cart, ok := raw.(*models.Cart); ok {
			return cart
		}
	}
	return &models.Cart{}
}

// saveCartToSession stores the cart back into the session values
func saveCartToSession(session *sessions.Session, cart *models.Cart) {
	session.Values["cart"] = cart
}
