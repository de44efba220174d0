package utils

import (
	"net/http"

	json "github.com/goccy/go-json"

	"abarrotes-backend/internal/domain"
)

// WriteJSON serializes payload as-is. Handlers pass a domain.Response envelope
// (or a bare map for small ad-hoc payloads like upload URLs).
func WriteJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func WriteError(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, domain.Response{Success: false, Message: message})
}
