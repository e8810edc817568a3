// Command sentinelrefactor starts the HTTP server: wires the rule and
// refactor engines, the default catalog, a persistence store, and the
// coordinator that ties them together, then serves the route table until
// told to shut down.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"sentinel-refactor/catalog"
	"sentinel-refactor/config"
	"sentinel-refactor/coordinator"
	"sentinel-refactor/database"
	pkgconfig "sentinel-refactor/pkg/config"
	"sentinel-refactor/httpapi"
	"sentinel-refactor/pkg"
	"sentinel-refactor/pkg/metrics"
	"sentinel-refactor/refactor"
	"sentinel-refactor/rules"
	"sentinel-refactor/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	pkgconfig.ValidateProductionConfig(&pkgconfig.ProductionConfig{
		CORSOrigin:  firstOrStar(cfg.Security.CORSAllowedOrigins),
		DatabaseURL: cfg.GetDSN(),
	})

	logger := pkg.NewJSONLogger(pkg.JSONLoggerConfig{
		ServiceName: cfg.Logging.ServiceName,
		Environment: cfg.Logging.Environment,
		Level:       pkg.LogLevel(strings.ToUpper(cfg.Logging.Level)),
	})
	ctx := context.Background()

	ruleRegistry := rules.NewRegistry()
	providerRegistry := refactor.NewRegistry()
	catalog.RegisterAll(ruleRegistry, providerRegistry)

	if cfg.Engine.RulesConfigFile != "" {
		if err := rules.LoadConfigFile(ruleRegistry, cfg.Engine.RulesConfigFile); err != nil {
			log.Fatalf("load rules config file: %v", err)
		}
	}

	collector := metrics.NewCollector("")
	go metrics.StartSystemMetricsCollection(collector)

	ruleEngine := rules.NewEngine(ruleRegistry, cfg.Engine.RuleTimeout, collector)
	refactorEngine := refactor.NewEngine(providerRegistry, cfg.Engine.MaxSuggestionsPerViolation, cfg.Engine.EnableAutoFix, cfg.Engine.MinConfidenceForAutoFix, collector)

	persistence, cleanup := newStore(ctx, cfg, logger)
	defer cleanup()

	coord := coordinator.New(ruleEngine, refactorEngine, persistence)
	handler := httpapi.NewHandler(coord, persistence, ruleRegistry, providerRegistry, cfg.Server.Development)
	router := httpapi.NewRouter(handler, collector, cfg.Security.CORSAllowedOrigins, cfg.Security.RateLimitMax, cfg.Security.RateLimitBurst)

	server := &http.Server{
		Addr:         cfg.GetServerAddr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		logger.Info(ctx, "server starting", map[string]interface{}{"addr": server.Addr})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error(ctx, "server failed", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	pkg.GracefulShutdown(server, func(ctx context.Context) {
		if closer, ok := persistence.(interface{ Close() error }); ok {
			_ = closer.Close()
		}
	})
}

// newStore builds the configured backend (Postgres or in-memory) and
// returns a cleanup function to run at shutdown.
func newStore(ctx context.Context, cfg *config.Config, logger *pkg.JSONLogger) (store.Store, func()) {
	if !cfg.Database.Enabled {
		return store.NewMemoryStore(), func() {}
	}

	db, err := database.Init(cfg.GetDSN(), database.PoolConfig{
		MaxOpenConns: cfg.Database.MaxOpenConns,
		MaxIdleConns: cfg.Database.MaxIdleConns,
		MaxLifetime:  cfg.Database.MaxLifetime,
	})
	if err != nil {
		log.Fatalf("init database: %v", err)
	}

	migrateCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := store.Migrate(migrateCtx, db); err != nil {
		log.Fatalf("migrate store: %v", err)
	}

	logger.Info(ctx, "connected to postgres store", nil)
	return store.NewPostgresStore(db), func() { _ = db.Close() }
}

func firstOrStar(origins []string) string {
	if len(origins) == 0 {
		return "*"
	}
	return origins[0]
}
