package http

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse is the body sent for every failed request.
type ErrorResponse struct {
	Error ErrorResponseBody `json:"error"`
}

type ErrorResponseBody struct {
	Code    string        `json:"code"`
	Message string        `json:"message"`
	Details []ErrorDetail `json:"details,omitempty"`
}

// ErrorDetail names the offending field of a validation failure.
type ErrorDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// WriteJSON renders v as the response body. Successful responses carry
// the entity (or sequence) directly, matching the wire contract.
func WriteJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(v)
}

// JSONError renders a structured error body with an HTTP status.
func JSONError(w http.ResponseWriter, statusCode int, code string, message string, details []ErrorDetail) {
	WriteJSON(w, statusCode, ErrorResponse{
		Error: ErrorResponseBody{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}
