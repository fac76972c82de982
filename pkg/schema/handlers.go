package schema

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// DescribeConfigurationObjectHandler handles GET /api/v1/schema/configuration-object
// A missing object definition responds with a JSON null body; callers treat
// that as empty rather than as an error.
func DescribeConfigurationObjectHandler(registry *Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		describe, err := registry.DescribeConfigurationObject()
		if err != nil {
			writeError(w, http.StatusInternalServerError, fmt.Sprintf("failed to describe configuration object: %v", err))
			return
		}
		writeJSON(w, http.StatusOK, describe)
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
