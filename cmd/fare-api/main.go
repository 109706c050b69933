// README: Entry point; loads config, builds the route table, wires services and serves HTTP.
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

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"

	"ridefare/internal/config"
	httptransport "ridefare/internal/http"
	"ridefare/internal/infra"
	"ridefare/internal/modules/booking"
	"ridefare/internal/modules/distance"
	"ridefare/internal/modules/pricing"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	log := infra.NewLogger(cfg.Log.Format, cfg.Log.Level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	table, err := loadRouteTable(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Str("source", cfg.Routes.Source).Msg("load route table")
	}
	log.Info().Str("source", cfg.Routes.Source).Int("routes", table.Len()).Msg("route table loaded")

	resolver := distance.NewResolver(table)
	pricingSvc, err := pricing.NewService(resolver, pricing.DefaultRates())
	if err != nil {
		log.Fatal().Err(err).Msg("pricing init")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	bookingSvc := booking.NewService(pricingSvc, resolver, booking.NewMetrics(cfg.Metrics.Namespace, reg), log)

	handler := httptransport.NewServer(httptransport.ServerDeps{
		Booking:          bookingSvc,
		Distance:         resolver,
		Logger:           log,
		Registry:         reg,
		MetricsNamespace: cfg.Metrics.Namespace,
	})

	server := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           handler.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("http shutdown")
		}
	}()

	log.Info().Str("addr", cfg.HTTP.Addr).Msg("fare api listening")
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("http server")
	}
}

func loadRouteTable(ctx context.Context, cfg config.Config, log zerolog.Logger) (*distance.Table, error) {
	switch cfg.Routes.Source {
	case config.RoutesPostgres:
		db, err := infra.NewDB(ctx, cfg.DB.DSN)
		if err != nil {
			return nil, err
		}
		// The table is immutable once built, so the pool is only needed here.
		defer db.Close()
		return distance.LoadTable(ctx, distance.NewPostgresStore(db))
	case config.RoutesRedis:
		client, err := infra.NewRedis(ctx, cfg.Redis.Addr)
		if err != nil {
			return nil, err
		}
		defer func() { _ = client.Close() }()
		table, err := distance.LoadTable(ctx, distance.NewRedisStore(client, cfg.Redis.RoutesKey))
		if err != nil {
			return nil, err
		}
		if table.Len() == 0 {
			log.Warn().Str("key", cfg.Redis.RoutesKey).Msg("redis route hash is empty, every route uses the default distance")
		}
		return table, nil
	default:
		return distance.LoadTable(ctx, distance.NewStaticStore(distance.DefaultRoutes()))
	}
}
