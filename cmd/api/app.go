package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	_ "address-api/docs"
	"address-api/internal/config"
	"address-api/internal/handler"
	"address-api/internal/logger"
	"address-api/internal/metrics"
	"address-api/internal/middleware"
	"address-api/internal/repository"
	"address-api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// application is the process-wide state built at start-up and torn down on exit.
type application struct {
	cfg    config.Config
	pool   *pgxpool.Pool
	server *http.Server
}

func newApplication(ctx context.Context, cfg config.Config) (*application, error) {
	// Database connection
	pool, err := pgxpool.New(ctx, cfg.DBSource)
	if err != nil {
		return nil, fmt.Errorf("cannot connect to db: %w", err)
	}

	repo := repository.NewRepository(pool)
	if err := repo.EnsureSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	appMetrics := metrics.NewMetrics(reg)

	// Initialize layers
	addressService := service.NewAddressService(repo, appMetrics)
	proximityService := service.NewProximityService(repo, appMetrics)
	addressHandler := handler.NewAddressHandler(addressService, proximityService)

	if cfg.Environment != logger.EnvLocal {
		gin.SetMode(gin.ReleaseMode)
	}
	router := newRouter(addressHandler, repo, appMetrics, reg)

	return &application{
		cfg:  cfg,
		pool: pool,
		server: &http.Server{
			Addr:         cfg.ServerAddress,
			Handler:      router,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		},
	}, nil
}

// newRouter wires middleware and routes onto a fresh gin engine.
func newRouter(
	addresses *handler.AddressHandler,
	db handler.Pinger,
	appMetrics *metrics.Metrics,
	reg *prometheus.Registry,
) *gin.Engine {
	r := gin.New()
	// Recovery sits innermost so a panic still reaches the logger and metrics as a 500.
	r.Use(middleware.Logger(log.Logger), middleware.Metrics(appMetrics), gin.Recovery())

	r.GET("/health", handler.Health(db))
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	addresses.Register(r)

	return r
}

// Run serves HTTP until ctx is canceled, then drains in-flight requests.
func (a *application) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", a.server.Addr).Msg("Starting HTTP server")
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("Shutdown signal received. Stopping server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()

	if err := a.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	return <-errCh
}

// Close releases the database pool.
func (a *application) Close() {
	a.pool.Close()
}
