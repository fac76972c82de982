package endpoint

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// option is the {label, value} pair consumed by picker UIs.
type option struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// ListEndpointsHandler handles GET /api/v1/endpoints
// Test-only endpoints are only listed when the server runs in dev mode.
func ListEndpointsHandler(store *Store, includeTestOnly bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		endpoints, err := store.List(includeTestOnly)
		if err != nil {
			writeError(w, http.StatusInternalServerError, fmt.Sprintf("failed to list endpoints: %v", err))
			return
		}

		options := make([]option, len(endpoints))
		for i, ep := range endpoints {
			options[i] = option{Label: ep.Label, Value: ep.Name}
		}
		writeJSON(w, http.StatusOK, options)
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
