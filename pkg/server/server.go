// Package server assembles the HTTP surface of the mass-action
// configuration service: capability discovery, data source browsing,
// schema describes and configuration persistence under one router.
package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/massaction/configserver/pkg/datasource"
	"github.com/massaction/configserver/pkg/discovery"
	"github.com/massaction/configserver/pkg/endpoint"
	"github.com/massaction/configserver/pkg/massaction"
	"github.com/massaction/configserver/pkg/schema"
)

// Services bundles the per-concern components mounted on the router.
type Services struct {
	Discovery *discovery.Client
	Browser   *datasource.Browser
	Schema    *schema.Registry
	Endpoints *endpoint.Store
	Configs   *massaction.Store
	Logger    *slog.Logger

	// DevMode exposes test-only endpoints in the endpoint picker.
	DevMode bool
}

// MountRoutes creates the HTTP router with all API routes mounted.
func MountRoutes(s Services) chi.Router {
	logger := s.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Route("/api/v1", func(r chi.Router) {
		r.Mount("/discovery", discovery.Router(s.Discovery))
		r.Mount("/datasources", datasource.Router(s.Browser))
		r.Mount("/endpoints", endpoint.Router(s.Endpoints, s.DevMode))
		r.Mount("/schema", schema.Router(s.Schema))
		r.Mount("/configurations", massaction.Router(s.Configs))
	})

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	logger.Info("mounted API routes", "basePath", "/api/v1", "devMode", s.DevMode)

	return r
}
