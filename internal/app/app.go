package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/zeitdreher-backend/internal/adapter/postgres"
	"github.com/heartmarshall/zeitdreher-backend/internal/adapter/postgres/audit"
	categoryrepo "github.com/heartmarshall/zeitdreher-backend/internal/adapter/postgres/category"
	entryrepo "github.com/heartmarshall/zeitdreher-backend/internal/adapter/postgres/timeentry"
	"github.com/heartmarshall/zeitdreher-backend/internal/auth"
	"github.com/heartmarshall/zeitdreher-backend/internal/config"
	"github.com/heartmarshall/zeitdreher-backend/internal/metrics"
	"github.com/heartmarshall/zeitdreher-backend/internal/service/category"
	"github.com/heartmarshall/zeitdreher-backend/internal/service/resolver"
	"github.com/heartmarshall/zeitdreher-backend/internal/service/timeentry"
	"github.com/heartmarshall/zeitdreher-backend/internal/transport/dataloader"
	"github.com/heartmarshall/zeitdreher-backend/internal/transport/middleware"
	"github.com/heartmarshall/zeitdreher-backend/internal/transport/rest"
)

// Run is the application entry point. It loads configuration, connects to
// PostgreSQL, wires services and serves HTTP until ctx is cancelled, then
// shuts down within the configured timeout.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer pool.Close()

	st := buildStack(cfg, logger, pool)
	defer st.limiter.Stop()

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      st.handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		st.resolver.Sessions().Run(gctx, cfg.Resolver.SessionTTL/2)
		return nil
	})

	g.Go(func() error {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down", slog.Duration("timeout", cfg.Server.ShutdownTimeout))

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("stopped")
	return nil
}

// stack is the wired HTTP handler plus the pieces Run manages alongside it.
type stack struct {
	handler  http.Handler
	resolver *resolver.Service
	limiter  *middleware.RateLimiter
}

// buildStack wires repositories, services and transport over pool.
func buildStack(cfg *config.Config, logger *slog.Logger, pool *pgxpool.Pool) *stack {
	rec := metrics.New()

	categories := categoryrepo.New(pool)
	entries := entryrepo.New(pool)
	auditRepo := audit.New(pool)
	tx := postgres.NewTxManager(pool)

	categorySvc := category.NewService(logger, categories, auditRepo, tx, cfg.Category)
	entrySvc := timeentry.NewService(logger, entries, categories, auditRepo, tx)
	resolverSvc := resolver.NewService(logger, categories, categorySvc, cfg.Resolver, rec)

	handlers := rest.Handlers{
		Health:      rest.NewHealthHandler(pool, resolverSvc.Sessions(), BuildVersion()),
		Categories:  rest.NewCategoryHandler(categorySvc, logger),
		Resolver:    rest.NewResolverHandler(resolverSvc, entrySvc, logger),
		Entries:     rest.NewEntryHandler(entrySvc, logger),
		Admin:       rest.NewAdminHandler(resolverSvc.Sessions(), logger),
		Dataloaders: dataloader.Middleware(&dataloader.Repos{Paths: categories}),
	}
	if cfg.Metrics.Enabled {
		handlers.Metrics = rec.Handler()
		handlers.MetricsPath = cfg.Metrics.Path
	}

	limiter := middleware.NewRateLimiter(cfg.RateLimit)

	handler := middleware.Chain(
		middleware.RequestID,
		middleware.Logger(logger),
		middleware.Recovery(logger),
		middleware.CORS(cfg.CORS),
		limiter.Limit(),
		middleware.Auth(auth.NewVerifier(cfg.Auth)),
		middleware.When(cfg.Metrics.Enabled, middleware.Metrics(rec)),
	)(rest.NewRouter(handlers))

	return &stack{handler: handler, resolver: resolverSvc, limiter: limiter}
}
