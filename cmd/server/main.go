package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"

	"github.com/CalleFreme/ai-methods-explorer/internal/api"
	"github.com/CalleFreme/ai-methods-explorer/internal/catalog"
	"github.com/CalleFreme/ai-methods-explorer/internal/config"
	"github.com/CalleFreme/ai-methods-explorer/internal/history"
	"github.com/CalleFreme/ai-methods-explorer/internal/inference"
	"github.com/CalleFreme/ai-methods-explorer/internal/logging"
	"github.com/CalleFreme/ai-methods-explorer/internal/mcp"
	"github.com/CalleFreme/ai-methods-explorer/internal/service"
	"github.com/CalleFreme/ai-methods-explorer/internal/tlscert"
)

func main() {
	ctx := context.Background()

	// Initialize logging
	logger := logging.NewLogger()

	// Parse command line flags
	configFile := flag.String("config", "", "Path to config file")
	flag.Parse()

	// Load configuration
	cfg, err := config.LoadConfig(*configFile)
	if err != nil {
		logger.Error("Failed to load configuration: %v", err)
		log.Fatalf("Configuration loading failed: %v", err)
	}
	logger.Info("Configuration loaded: addr=%s history=%s catalog=%q",
		cfg.Server.Addr, cfg.History.Driver, cfg.Catalog.File)

	if cfg.HF.APIKey == "" {
		logger.Warn("HF_API_KEY is not set; inference requests will be sent unauthenticated")
	}

	logger.Info("Starting AI Methods Explorer")

	// Load the method catalog
	methodCatalog, err := catalog.Load(cfg.Catalog.File)
	if err != nil {
		logger.Error("Failed to load method catalog: %v", err)
		log.Fatalf("Catalog loading failed: %v", err)
	}
	logger.Info("Method catalog loaded with %d methods", methodCatalog.Len())

	// Open the history store
	store, err := openHistoryStore(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to open history store: %v", err)
		log.Fatalf("History store initialization failed: %v", err)
	}
	defer store.Close()

	logger.Info("History store ready (driver=%s)", cfg.History.Driver)

	// Initialize service layer
	client := inference.NewClient(cfg.HF.BaseURL, cfg.HF.APIKey)
	analysisService := service.NewAnalysisService(methodCatalog, client, store, logger)

	logger.Info("Service layer initialized")

	// Create Echo server
	e := echo.New()

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.Server.AllowedOrigins,
	}))
	e.Use(middleware.BodyLimit(cfg.Server.BodyLimit))
	e.Use(otelecho.Middleware(api.ServiceName))

	// Mount REST API and page handlers
	apiServer := api.NewServer(analysisService, logger)
	e.HTTPErrorHandler = apiServer.ErrorHandler
	api.RegisterHandlers(e, apiServer)

	logger.Info("REST API handlers mounted")

	// Mount MCP protocol handlers
	mcpServer := mcp.NewServer(analysisService)
	mcpHandlers := http.NewServeMux()
	mcp.MountHTTPHandlers(mcpHandlers, mcpServer.GetMCPServer())
	e.Any("/mcp", echo.WrapHandler(mcpHandlers))
	e.Any("/mcp/*", echo.WrapHandler(mcpHandlers))

	logger.Info("MCP protocol handlers mounted")

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      e,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown handling
	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("Server starting on %s (tls=%v)", cfg.Server.Addr, cfg.TLS.Enable)
		if cfg.TLS.Enable {
			if cfg.TLS.CertFile == "" || cfg.TLS.KeyFile == "" {
				logger.Error("TLS enabled but cert/key file not provided")
				serverErrors <- server.ListenAndServe()
				return
			}
			created, err := tlscert.Ensure(cfg.TLS.CertFile, cfg.TLS.KeyFile, cfg.TLS.Hostnames)
			if err != nil {
				logger.Error("Failed to prepare TLS certificate: %v", err)
			} else if created {
				logger.Info("Generated self-signed certificate at %s", cfg.TLS.CertFile)
			}
			serverErrors <- server.ListenAndServeTLS(cfg.TLS.CertFile, cfg.TLS.KeyFile)
		} else {
			serverErrors <- server.ListenAndServe()
		}
	}()

	// Wait for shutdown signal
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != http.ErrServerClosed {
			logger.Error("Server error: %v", err)
			log.Fatalf("Server error: %v", err)
		}
	case sig := <-shutdown:
		logger.Info("Shutdown signal received: %v", sig)

		// Create shutdown context with timeout
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			logger.Error("Server shutdown error: %v", err)
			if err := server.Close(); err != nil {
				logger.Error("Server close error: %v", err)
			}
		}

		logger.Info("Server stopped gracefully")
	}
}

// openHistoryStore picks the history backend from configuration: SQLite for
// zero-setup local runs, Postgres for shared deployments.
func openHistoryStore(ctx context.Context, cfg *config.Config, logger *logging.Logger) (history.Store, error) {
	switch cfg.History.Driver {
	case "postgres":
		pool, err := initDatabase(ctx, cfg, logger)
		if err != nil {
			return nil, err
		}
		store := history.NewPostgresStore(pool)
		if err := store.EnsureSchema(ctx); err != nil {
			store.Close()
			return nil, fmt.Errorf("failed to ensure history schema: %w", err)
		}
		return store, nil
	case "sqlite", "":
		return history.NewSQLiteStore(cfg.History.Path)
	default:
		return nil, fmt.Errorf("unknown history driver %q", cfg.History.Driver)
	}
}

func initDatabase(ctx context.Context, cfg *config.Config, logger *logging.Logger) (*pgxpool.Pool, error) {
	logger.Debug("Initializing database connection")

	poolConfig, err := pgxpool.ParseConfig(cfg.HistoryConnString())
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	// Test connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return pool, nil
}
