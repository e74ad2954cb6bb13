package helpers

import (
	"encoding/json"
	"net/http"
)

// Detail strings returned in error bodies. Clients match on the substrings
// "not found", "already signed up" and "not registered".
const (
	DetailActivityNotFound = "Activity not found"
	DetailAlreadySignedUp  = "Student is already signed up for this activity"
	DetailNotRegistered    = "Student is not registered for this activity"
	DetailEmailRequired    = "email query parameter is required"
	DetailInternalError    = "Internal server error"
)

// MessageResponse is the body of a successful roster change.
// swagger:model MessageResponse
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the body of every error response.
// swagger:model ErrorResponse
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// WriteJSON sets Content-Type to application/json, writes statusCode and encodes v.
func WriteJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteMessage writes {"message": message}.
func WriteMessage(w http.ResponseWriter, statusCode int, message string) {
	WriteJSON(w, statusCode, MessageResponse{Message: message})
}

// WriteDetail writes {"detail": detail}.
func WriteDetail(w http.ResponseWriter, statusCode int, detail string) {
	WriteJSON(w, statusCode, ErrorResponse{Detail: detail})
}
