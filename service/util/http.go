package util

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

func LogAndError(w http.ResponseWriter, logger *slog.Logger, message string, code int, err error, attrs ...any) {
	allAttrs := attrs
	if err != nil {
		allAttrs = append([]any{"error", err}, attrs...)
	}
	logger.Error(message, allAttrs...)
	http.Error(w, message, code)
}

func WriteJSON(w http.ResponseWriter, logger *slog.Logger, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("Failed to encode response", "error", err)
	}
}
