package response

import (
	"encoding/json"
	"net/http"
)

// Envelope is the uniform body of every API response
type Envelope struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Data       any    `json:"data,omitempty"`
}

// JSON sends a JSON response
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// Send writes an envelope carrying message and an optional payload
func Send(w http.ResponseWriter, status int, message string, data any) {
	JSON(w, status, Envelope{
		StatusCode: status,
		Message:    message,
		Data:       data,
	})
}

// Error writes an envelope without payload
func Error(w http.ResponseWriter, status int, message string) {
	Send(w, status, message, nil)
}
