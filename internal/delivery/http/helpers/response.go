package helpers

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse is the body of every failed request.
// swagger:model ErrorResponse
type ErrorResponse struct {
	Reason string `json:"reason"`
}

// WriteJSON sets Content-Type to application/json, writes statusCode and encodes data.
func WriteJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

// WriteJSONError writes {"reason": reason} with the given status.
func WriteJSONError(w http.ResponseWriter, statusCode int, reason string) {
	WriteJSON(w, statusCode, ErrorResponse{Reason: reason})
}
