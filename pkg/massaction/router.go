package massaction

import (
	"github.com/go-chi/chi/v5"
)

// Router creates a chi.Router for the configuration persistence API.
func Router(store *Store) chi.Router {
	r := chi.NewRouter()
	r.Post("/", SaveConfigurationHandler(store))
	r.Get("/{configurationId}", GetConfigurationHandler(store))
	return r
}
