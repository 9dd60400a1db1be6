package commands

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/cors"
	"github.com/rs/zerolog"

	httpmiddleware "github.com/appointly/booking-mcp/internal/http"
	"github.com/appointly/booking-mcp/internal/logger"
	"github.com/appointly/booking-mcp/internal/mcp"
	"github.com/appointly/booking-mcp/internal/store"
	memorystore "github.com/appointly/booking-mcp/internal/store/memory"
	postgresstore "github.com/appointly/booking-mcp/internal/store/postgres"
	"github.com/appointly/booking-mcp/internal/telemetry"
	"github.com/appointly/booking-mcp/internal/tools"
)

type ServerCmd struct {
	// Server configuration
	Listen string `help:"HTTP server listen address" default:"0.0.0.0:8080" env:"BOOKING_LISTEN"`
	Path   string `help:"HTTP path for the MCP endpoint" default:"/mcp" env:"BOOKING_MCP_PATH"`

	// CORS configuration
	CORSOrigins []string `help:"allowed CORS origins for MCP requests" default:"*" env:"BOOKING_CORS_ORIGINS"`

	// Behavior
	NoSynthesis bool `help:"disable staff contact synthesis; email becomes required on creation" default:"false" env:"BOOKING_NO_SYNTHESIS"`
	NoAuth      bool `help:"skip offering authorization checks (memory store, development only)" default:"false" env:"BOOKING_NO_AUTH"`
	Tracing     bool `help:"enable tracing" default:"false" env:"BOOKING_TRACING"`

	// Store configuration
	StoreType     string             `help:"store type (memory or postgres)" default:"memory" env:"BOOKING_STORE_TYPE" enum:"memory,postgres"`
	PostgresStore PostgresStoreFlags `embed:"" prefix:"postgres-"`
}

type PostgresStoreFlags struct {
	// Connection Configuration
	ConnString string `help:"PostgreSQL connection string" env:"POSTGRES_CONNECTION_STRING"`

	// Connection Pool Configuration
	MaxConns        int32 `help:"maximum number of connections in pool" default:"10"`
	MinConns        int32 `help:"minimum number of connections in pool" default:"2"`
	MaxConnLifetime int32 `help:"maximum connection lifetime in seconds" default:"3600"`
	MaxConnIdleTime int32 `help:"maximum connection idle time in seconds" default:"1800"`

	// Migration Configuration
	AutoMigrate bool `help:"run database migrations on startup" default:"false" env:"BOOKING_POSTGRES_AUTO_MIGRATE"`
}

func (s *PostgresStoreFlags) PoolConfig() *postgresstore.PoolConfig {
	return &postgresstore.PoolConfig{
		ConnString:      s.ConnString,
		MaxConns:        s.MaxConns,
		MinConns:        s.MinConns,
		MaxConnLifetime: s.MaxConnLifetime,
		MaxConnIdleTime: s.MaxConnIdleTime,
	}
}

func (c *ServerCmd) Run(globals *Globals) error {
	log := logger.Setup(globals.Debug)
	ctx := context.Background()

	log.Info().Str("version", globals.Version).Bool("debug", globals.Debug).Msg("Starting server")

	if c.Tracing {
		log.Info().Msg("Tracing is enabled")
		shutdown, err := telemetry.InitTelemetry(ctx, "booking-mcp", globals.Version)
		if err != nil {
			log.Warn().Err(err).Msg("Failed to initialize telemetry, continuing without metrics")
			shutdown = func(ctx context.Context) error { return nil }
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdown(shutdownCtx); err != nil {
				log.Error().Err(err).Msg("Failed to shutdown telemetry")
			}
		}()
	}

	stores, err := c.buildStores(ctx, log)
	if err != nil {
		return err
	}

	var defaults tools.ContactDefaults = tools.SynthesizedContacts{}
	if c.NoSynthesis {
		log.Info().Msg("Staff contact synthesis is disabled; email is required on creation")
		defaults = nil
	}

	registry := tools.NewRegistry(stores, defaults)
	sessions := mcp.NewMemorySessionStore()
	server := mcp.NewServer(registry, sessions, "booking-mcp", globals.Version)

	mux := http.NewServeMux()
	mux.Handle(c.Path, server)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	handler := httpmiddleware.RequestLogger(log)(withCORS(c.CORSOrigins, mux))

	log.Info().Str("addr", c.Listen).Str("path", c.Path).Msg("Starting HTTP server")
	return configureHTTPServer(c.Listen, handler).ListenAndServe()
}

// buildStores creates the store bundle for the configured backend. The
// PostgreSQL pool pings on creation, so an unreachable database is
// fatal to startup.
func (c *ServerCmd) buildStores(ctx context.Context, log zerolog.Logger) (store.Stores, error) {
	switch c.StoreType {
	case "postgres":
		pool, err := postgresstore.NewPool(ctx, c.PostgresStore.PoolConfig())
		if err != nil {
			return store.Stores{}, fmt.Errorf("failed to create connection pool: %w", err)
		}

		if c.PostgresStore.AutoMigrate {
			if err := postgresstore.RunMigrations(ctx, pool); err != nil {
				pool.Close()
				return store.Stores{}, fmt.Errorf("failed to run migrations: %w", err)
			}
		}

		log.Info().Msg("Using PostgreSQL stores with shared connection pool")
		return store.Stores{
			Companies: postgresstore.NewCompanyStore(pool),
			Employees: postgresstore.NewEmployeeStore(pool),
			Services:  postgresstore.NewServiceStore(pool),
			Auth:      postgresstore.NewAuthorizationStore(pool),
		}, nil

	default:
		companies := memorystore.NewCompanyStore()
		auth := memorystore.NewAuthorizationStore(companies)
		if c.NoAuth {
			log.Warn().Msg("Authorization is disabled (--no-auth). This should only be used in development!")
			auth.AllowAll()
		}

		log.Info().Msg("Using in-memory stores")
		return store.Stores{
			Companies: companies,
			Employees: memorystore.NewEmployeeStore(companies),
			Services:  memorystore.NewServiceStore(companies),
			Auth:      auth,
		}, nil
	}
}

// withCORS adds CORS support to the MCP HTTP handler.
func withCORS(allowedOrigins []string, h http.Handler) http.Handler {
	middleware := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization", "Mcp-Session-Id"},
		ExposedHeaders: []string{"Mcp-Session-Id"},
	})
	return middleware.Handler(h)
}
