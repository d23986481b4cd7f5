package httpx

import (
	"encoding/json"
	"net/http"
)

// Envelope is the JSON shape every endpoint responds with.
type Envelope struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// WriteJSON writes a JSON response with the given status code.
// It automatically sets the Content-Type and Cache-Control headers.
func WriteJSON(w http.ResponseWriter, code int, v any) {
	NoCache(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteSuccess writes a success envelope.
func WriteSuccess(w http.ResponseWriter, code int, message string, data any) {
	WriteJSON(w, code, Envelope{Status: "success", Message: message, Data: data})
}

// WriteErrorMessage writes an error envelope with the given status code.
func WriteErrorMessage(w http.ResponseWriter, code int, message string) {
	WriteJSON(w, code, Envelope{Status: "error", Message: message})
}

// NoCache sets the Cache-Control and Pragma headers to prevent caching.
// Required for sensitive responses like tokens.
func NoCache(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Pragma", "no-cache")
}
