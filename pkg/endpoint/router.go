package endpoint

import (
	"github.com/go-chi/chi/v5"
)

// Router creates a chi.Router for the endpoint listing API.
func Router(store *Store, includeTestOnly bool) chi.Router {
	r := chi.NewRouter()
	r.Get("/", ListEndpointsHandler(store, includeTestOnly))
	return r
}
