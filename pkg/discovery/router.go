package discovery

import (
	"github.com/go-chi/chi/v5"
)

// Router creates a chi.Router for the capability discovery API.
func Router(client *Client) chi.Router {
	r := chi.NewRouter()
	r.Get("/{category}/objects", ListCapableObjectsHandler(client))
	r.Get("/{category}/objects/{objectName}/operations", ListOperationsHandler(client))
	r.Get("/{category}/operations/{operationName}/inputs", ListOperationInputsHandler(client))
	return r
}
