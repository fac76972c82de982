package discovery

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// ListCapableObjectsHandler handles GET /api/v1/discovery/{category}/objects
// Query params: endpoint
func ListCapableObjectsHandler(client *Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		category, endpointName, ok := discoveryParams(w, r)
		if !ok {
			return
		}

		objects, err := client.ListCapableObjects(r.Context(), endpointName, category)
		if err != nil {
			writeError(w, http.StatusBadGateway, fmt.Sprintf("failed to list capable objects: %v", err))
			return
		}
		writeJSON(w, http.StatusOK, objects)
	}
}

// ListOperationsHandler handles GET /api/v1/discovery/{category}/objects/{objectName}/operations
// Query params: endpoint
func ListOperationsHandler(client *Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		category, endpointName, ok := discoveryParams(w, r)
		if !ok {
			return
		}
		objectName := chi.URLParam(r, "objectName")

		operations, err := client.ListOperations(r.Context(), endpointName, category, objectName)
		if err != nil {
			writeError(w, http.StatusBadGateway, fmt.Sprintf("failed to list operations: %v", err))
			return
		}
		writeJSON(w, http.StatusOK, operations)
	}
}

// ListOperationInputsHandler handles GET /api/v1/discovery/{category}/operations/{operationName}/inputs
// Query params: endpoint, objectName
func ListOperationInputsHandler(client *Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		category, endpointName, ok := discoveryParams(w, r)
		if !ok {
			return
		}
		operationName := chi.URLParam(r, "operationName")
		objectName := r.URL.Query().Get("objectName")

		inputs, err := client.ListOperationInputs(r.Context(), endpointName, category, operationName, objectName)
		if err != nil {
			writeError(w, http.StatusBadGateway, fmt.Sprintf("failed to describe operation inputs: %v", err))
			return
		}
		writeJSON(w, http.StatusOK, inputs)
	}
}

// discoveryParams extracts and validates the category path param and the
// endpoint query param shared by all discovery routes.
func discoveryParams(w http.ResponseWriter, r *http.Request) (Category, string, bool) {
	category, err := ParseCategory(chi.URLParam(r, "category"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return "", "", false
	}

	endpointName := r.URL.Query().Get("endpoint")
	if endpointName == "" {
		writeError(w, http.StatusBadRequest, "missing endpoint parameter")
		return "", "", false
	}
	return category, endpointName, true
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
