// Package httputil provides shared HTTP utilities for consistent response handling.
//
// Every handler in this codebase performs exactly one response write. These
// helpers are the single exit point: a handler computes its response value,
// calls one writer, and returns.
package httputil

import (
	"encoding/json"
	"net/http"
)

// WriteJSON writes a JSON response with the given status code.
// It sets the Content-Type header to application/json.
func WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// WriteOK writes a 200 OK response with data.
func WriteOK(w http.ResponseWriter, data any) {
	WriteJSON(w, http.StatusOK, data)
}

// WriteText writes a plain-text response with the given status code.
func WriteText(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

// WriteError writes a JSON error response with the given status code.
// The body is {"error": <details>}, matching the error envelope clients
// of this API expect for malformed input.
func WriteError(w http.ResponseWriter, status int, details any) {
	WriteJSON(w, status, map[string]any{"error": details})
}

// WriteBadRequest writes a 400 Bad Request error response.
func WriteBadRequest(w http.ResponseWriter, details any) {
	WriteError(w, http.StatusBadRequest, details)
}

// WriteBadGateway writes a 502 Bad Gateway error response.
// Used when an outbound fetch to a caller-supplied URI fails.
func WriteBadGateway(w http.ResponseWriter, details any) {
	WriteError(w, http.StatusBadGateway, details)
}

// WriteStatus writes a response with the given status code and no body.
func WriteStatus(w http.ResponseWriter, status int) {
	w.WriteHeader(status)
}
