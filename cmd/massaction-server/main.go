// Package main provides the mass-action configuration server entry point.
// It hosts capability discovery, data source browsing, schema describes and
// configuration persistence behind one HTTP API.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/golang/glog"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/massaction/configserver/pkg/datasource"
	"github.com/massaction/configserver/pkg/discovery"
	"github.com/massaction/configserver/pkg/endpoint"
	"github.com/massaction/configserver/pkg/massaction"
	"github.com/massaction/configserver/pkg/schema"
	"github.com/massaction/configserver/pkg/server"
)

func main() {
	var (
		listenAddr   string
		databaseType string
		databaseDSN  string
		seedPath     string
		devMode      bool
	)

	flag.StringVar(&listenAddr, "listen", ":8080", "Address to listen on")
	flag.StringVar(&databaseType, "db-type", "postgres", "Database type (postgres, mysql or sqlite)")
	flag.StringVar(&databaseDSN, "db-dsn", "", "Database connection string")
	flag.StringVar(&seedPath, "seed", "", "Path to metadata seed file (optional)")
	flag.BoolVar(&devMode, "dev", false, "Dev mode: expose test-only endpoints in pickers")
	flag.Parse()

	_ = flag.Set("logtostderr", "true")

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if !devMode {
		devMode = envBool("MASSACTION_DEV_MODE")
	}
	if seedPath == "" {
		seedPath = os.Getenv("MASSACTION_SEED_PATH")
	}

	logger.Info("starting mass-action configuration server",
		"listen", listenAddr,
		"dbType", databaseType,
		"devMode", devMode,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	db, err := setupDatabase(databaseType, databaseDSN)
	if err != nil {
		glog.Fatalf("Failed to connect to database: %v", err)
	}

	registry := schema.NewRegistry(db)
	endpoints := endpoint.NewStore(db)
	client := discovery.NewClient(endpoints, registry, logger)
	browser := datasource.NewBrowser(db, client, logger)
	configs := massaction.NewStore(db, logger)

	if err := migrateAll(registry, endpoints, browser, configs); err != nil {
		glog.Fatalf("Failed to migrate database: %v", err)
	}

	if seedPath != "" {
		seed, err := server.LoadSeed(seedPath)
		if err != nil {
			glog.Fatalf("Failed to load seed file: %v", err)
		}
		if err := seed.Apply(db); err != nil {
			glog.Fatalf("Failed to apply seed file: %v", err)
		}
		logger.Info("applied metadata seed",
			"path", seedPath,
			"objects", len(seed.Objects),
			"endpoints", len(seed.Endpoints),
		)
	}

	router := server.MountRoutes(server.Services{
		Discovery: client,
		Browser:   browser,
		Schema:    registry,
		Endpoints: endpoints,
		Configs:   configs,
		Logger:    logger,
		DevMode:   devMode,
	})

	httpServer := &http.Server{
		Addr:    listenAddr,
		Handler: router,
	}

	go func() {
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			glog.Fatalf("HTTP server error: %v", err)
		}
	}()

	logger.Info("mass-action configuration server ready", "listen", listenAddr)

	<-ctx.Done()

	logger.Info("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}

	logger.Info("mass-action configuration server stopped")
}

func setupDatabase(dbType, dsn string) (*gorm.DB, error) {
	if dsn == "" {
		dsn = os.Getenv("DATABASE_DSN")
	}
	if dbType == "" {
		dbType = os.Getenv("DATABASE_TYPE")
		if dbType == "" {
			dbType = "postgres"
		}
	}

	switch dbType {
	case "postgres":
		if dsn == "" {
			return nil, fmt.Errorf("database DSN is required (use -db-dsn flag or DATABASE_DSN environment variable)")
		}
		return gorm.Open(postgres.Open(dsn), &gorm.Config{})
	case "mysql":
		if dsn == "" {
			return nil, fmt.Errorf("database DSN is required (use -db-dsn flag or DATABASE_DSN environment variable)")
		}
		return gorm.Open(mysql.Open(dsn), &gorm.Config{})
	case "sqlite":
		if dsn == "" {
			dsn = "massaction.db"
		}
		return gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	default:
		return nil, fmt.Errorf("unsupported database type %q (expected postgres, mysql or sqlite)", dbType)
	}
}

func migrateAll(registry *schema.Registry, endpoints *endpoint.Store, browser *datasource.Browser, configs *massaction.Store) error {
	if err := registry.AutoMigrate(); err != nil {
		return fmt.Errorf("migrate schema tables: %w", err)
	}
	if err := endpoints.AutoMigrate(); err != nil {
		return fmt.Errorf("migrate endpoint table: %w", err)
	}
	if err := browser.AutoMigrate(); err != nil {
		return fmt.Errorf("migrate data source tables: %w", err)
	}
	if err := configs.AutoMigrate(); err != nil {
		return fmt.Errorf("migrate configuration tables: %w", err)
	}
	return nil
}

func envBool(key string) bool {
	return os.Getenv(key) == "true"
}
