package utils

import (
	"encoding/json"
	"net/http"

	"snow-tracker/internal/logger"
)

// SendJSONResponse writes data as JSON with the given status. Once the header is
// out the status cannot change, so an encode failure is only logged.
func SendJSONResponse(log *logger.Logger, w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Error("HTTP", "Failed to encode JSON response: "+err.Error())
	}
}

// ErrorResponse is the body of every JSON error answer.
func ErrorResponse(message string) map[string]string {
	return map[string]string{"error": message}
}
