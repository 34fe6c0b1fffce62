package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joefazee/sportsbook/app"
	"github.com/joefazee/sportsbook/app/admin"
	"github.com/joefazee/sportsbook/app/api"
	"github.com/joefazee/sportsbook/app/betting"
	"github.com/joefazee/sportsbook/app/catalog"
	"github.com/joefazee/sportsbook/app/database"
	"github.com/joefazee/sportsbook/app/settlement"
	"github.com/joefazee/sportsbook/app/stats"
	"github.com/joefazee/sportsbook/app/wallet"
	"github.com/joefazee/sportsbook/internal/deps"
	"github.com/joefazee/sportsbook/internal/events"
	"github.com/joefazee/sportsbook/internal/logger"
	"github.com/joefazee/sportsbook/internal/metrics"
	"github.com/joefazee/sportsbook/internal/nexus"
	"github.com/joefazee/sportsbook/internal/router"
	"github.com/joefazee/sportsbook/internal/sanitizer"
	"github.com/joefazee/sportsbook/internal/security"
)

const readHeaderTimeout = 10 * time.Second

// @title Sportsbook API
// @version 1.0
// @description Games, single and parlay bets, wallets and settlement.

// @BasePath /api/v1
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and a PASETO token.
func main() {
	var opts []nexus.LoaderOption
	if f := os.Getenv("CONFIG_FILE"); f != "" {
		opts = append(opts, nexus.WithFileName(f))
	}

	cfg, err := app.LoadConfig(opts...)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load configuration:", err)
		os.Exit(1)
	}

	log := logger.NewZeroLogger(os.Stdout, logger.ParseLevel(cfg.LogLevel), logger.Fields{
		"service": "sportsbook",
		"env":     cfg.Env,
	})

	if err := run(cfg, log); err != nil {
		log.Fatal(err, nil)
	}
}

func run(cfg *app.Config, log logger.Logger) error {
	if cfg.DB.AutoMigrate {
		if err := database.Migrate(cfg.DB.MigrationsPath, cfg.DB.URL()); err != nil {
			return err
		}
		log.Info("migrations applied", logger.Fields{"path": cfg.DB.MigrationsPath})
	}

	db, err := database.New(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	tokenMaker, err := security.NewPasetoMaker(cfg.Security.SymmetricKey)
	if err != nil {
		return fmt.Errorf("cannot create token maker: %w", err)
	}

	publisher := events.NewPublisher(cfg.Events)
	defer func() {
		if err := publisher.Close(); err != nil {
			log.Error(err, logger.Fields{"component": "events"})
		}
	}()

	options := []deps.Option{
		deps.WithEvents(publisher),
		deps.WithCacheConfig(cfg.Cache),
	}
	var m *metrics.Metrics
	if cfg.MetricsEnabled {
		m = metrics.New("sportsbook")
		options = append(options, deps.WithMetrics(m))
	}

	container := deps.NewContainer(db, tokenMaker, sanitizer.NewHTMLStripper(), log, options...)
	initModules(container, cfg)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery(), api.CorsMiddleware())
	if m != nil {
		engine.GET("/metrics", m.Handler())
	}
	mountRoutes(engine, container)

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%s", cfg.AppHost, cfg.AppPort),
		Handler:           engine,
		ReadHeaderTimeout: readHeaderTimeout,
	}
	return serve(srv, cfg, log)
}

// initModules registers services in dependency order: the ledger and the
// stats cache before the modules that write to them.
func initModules(container *deps.Container, cfg *app.Config) {
	wallet.InitRepositories(container)
	stats.InitRepositories(container, &cfg.Stats)

	invalidator := stats.ServiceFrom(container)
	betting.InitRepositories(container, betting.Dependencies{Config: &cfg.Betting, Stats: invalidator})
	settlement.InitRepositories(container, settlement.Dependencies{Config: &cfg.Settlement, Stats: invalidator})

	catalog.InitRepositories(container)
	admin.InitRepositories(container)
}

func mountRoutes(engine *gin.Engine, container *deps.Container) {
	mounter := router.NewMounter(container)

	public := mounter.Public(engine)
	public.RouterGroup().GET("/healthz", api.HealthCheck)
	public.Mount(catalog.MountPublic)

	mounter.Authenticated(engine).Mount(
		wallet.MountAuthenticated,
		betting.MountAuthenticated,
		stats.MountAuthenticated,
	)

	mounter.Staff(engine).Mount(
		catalog.MountAdmin,
		settlement.MountAdmin,
		stats.MountAdmin,
		admin.MountAdmin,
	)
}

func serve(srv *http.Server, cfg *app.Config, log logger.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		log.Info("starting sportsbook api", logger.Fields{"addr": srv.Addr})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down", logger.Fields{"timeout": cfg.ShutdownTimeout.String()})
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
