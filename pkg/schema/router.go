package schema

import (
	"github.com/go-chi/chi/v5"
)

// Router creates a chi.Router for the schema describe API.
func Router(registry *Registry) chi.Router {
	r := chi.NewRouter()
	r.Get("/configuration-object", DescribeConfigurationObjectHandler(registry))
	return r
}
