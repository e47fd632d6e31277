// Package respond writes the JSON envelope the frontend consumes:
// {"success": true, "data": ...} on success and
// {"success": false, "error": "..."} on failure.
package respond

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(envelope{Success: true, Data: data}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// Raw writes a success envelope merged with extra top-level fields, for the
// report endpoints whose contract carries data and a summary side by side.
func Raw(w http.ResponseWriter, status int, body map[string]any) {
	payload := make(map[string]any, len(body)+1)
	payload["success"] = true

	for k, v := range body {
		payload[k] = v
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// Error writes the failure envelope. The message is for humans; internals
// are logged at the call site, never leaked here.
func Error(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(envelope{Success: false, Error: msg}); err != nil {
		slog.Error("failed to encode error response", "error", err)
	}
}
