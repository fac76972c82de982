package massaction

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// saveRequest is the envelope for a save call: the configuration payload
// and the mapping payload travel as raw JSON documents assembled by the
// picker UI.
type saveRequest struct {
	Configuration json.RawMessage `json:"configuration"`
	FieldMappings json.RawMessage `json:"fieldMappings"`
}

// SaveConfigurationHandler handles POST /api/v1/configurations
func SaveConfigurationHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()

		var req saveRequest
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("decode request: %v", err))
			return
		}
		if len(bytes.TrimSpace(req.Configuration)) == 0 {
			writeError(w, http.StatusBadRequest, "missing configuration payload")
			return
		}
		if len(bytes.TrimSpace(req.FieldMappings)) == 0 {
			req.FieldMappings = json.RawMessage("{}")
		}

		result, err := store.SaveConfiguration(req.Configuration, req.FieldMappings)
		if err != nil {
			if errors.Is(err, ErrInvalidPayload) {
				writeError(w, http.StatusBadRequest, err.Error())
				return
			}
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, result)
	}
}

// GetConfigurationHandler handles GET /api/v1/configurations/{configurationId}
// A missing configuration responds with a JSON null body; pickers treat
// that as empty rather than as an error.
func GetConfigurationHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "configurationId")
		if id == "" {
			writeError(w, http.StatusBadRequest, "missing configuration ID")
			return
		}

		detail, err := store.LoadConfiguration(id)
		if err != nil {
			writeError(w, http.StatusInternalServerError, fmt.Sprintf("failed to load configuration: %v", err))
			return
		}
		writeJSON(w, http.StatusOK, detail)
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
