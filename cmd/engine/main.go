package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/DreamyTwilight/transport-catalogue/pkg/catalogue"
	"github.com/DreamyTwilight/transport-catalogue/pkg/config"
	"github.com/DreamyTwilight/transport-catalogue/pkg/gtfsimport"
	"github.com/DreamyTwilight/transport-catalogue/pkg/logging"
	"github.com/DreamyTwilight/transport-catalogue/pkg/requests"
	"github.com/DreamyTwilight/transport-catalogue/pkg/router"
	"github.com/DreamyTwilight/transport-catalogue/pkg/server/rest"
	"github.com/DreamyTwilight/transport-catalogue/pkg/server/rest/service"
	"github.com/DreamyTwilight/transport-catalogue/pkg/spatial"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

var (
	configFile = flag.String("config", "", "yaml config file")
	envFile    = flag.String("env", ".env", "dotenv file, skipped when missing")
	listenAddr = flag.String("listenaddr", "", "server listen address, overrides the config")
	source     = flag.String("f", "", "network source, a json request document or a gtfs zip. overrides the config")
	format     = flag.String("format", "", "network source format, json or gtfs. overrides the config")
	profiler   = flag.Bool("pprof", false, "mount the pprof profiler under /debug")
)

func main() {
	flag.Parse()

	if err := config.LoadEnvFile(*envFile); err != nil {
		slog.Error("failed to load env file", "error", err)
		os.Exit(1)
	}
	cfg, err := config.Load(*configFile)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	applyFlags(cfg)

	logger := logging.NewLogger(os.Stdout, logging.ParseLevel(cfg.Log.Level), cfg.Log.Format)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logging.WithLogger(ctx, logger)

	if err := run(ctx, cfg); err != nil {
		logging.LogError(logger, "server stopped with error", err)
		os.Exit(1)
	}
}

func applyFlags(cfg *config.AppConfig) {
	if *listenAddr != "" {
		cfg.Server.ListenAddr = *listenAddr
	}
	if *source != "" {
		cfg.Network.Source = *source
	}
	if *format != "" {
		cfg.Network.Format = *format
	}
}

func run(ctx context.Context, cfg *config.AppConfig) error {
	logger := logging.FromContext(ctx)

	cat, rt, err := loadNetwork(ctx, cfg)
	if err != nil {
		return err
	}
	index := spatial.NewStopIndex(cat.AllStops())

	stats := rt.NetworkStats()
	logging.LogOperation(logger, "network_ready",
		slog.String("snapshot_id", stats.SnapshotID.String()),
		slog.Int("stops", stats.Stops),
		slog.Int("buses", cat.BusCount()),
		slog.Int("edges", stats.Edges),
		slog.Int("scc", stats.SCCCount),
		slog.Int("indexed_stops", index.Size()))

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := rest.NewMetrics(reg)

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(rest.NewRequestLoggingMiddleware(logger))
	r.Use(rest.PromeHttpMiddleware(m))
	r.Use(rest.GzipMiddleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.Server.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	if *profiler {
		r.Mount("/debug", middleware.Profiler())
	}

	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	svc := service.NewTransitService(cat, rt, index)
	rest.TransitRouter(r, svc, m)

	srv := &http.Server{
		Addr:              cfg.Server.ListenAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logging.LogOperation(logger, "server_started", slog.String("addr", cfg.Server.ListenAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	logging.LogOperation(logger, "server_stopped")
	return nil
}

// loadNetwork fills a catalogue from the configured source and compiles it.
func loadNetwork(ctx context.Context, cfg *config.AppConfig) (*catalogue.TransportCatalogue, *router.TransitRouter, error) {
	if cfg.Network.Source == "" {
		return nil, nil, errors.New("no network source configured")
	}

	switch cfg.Network.Format {
	case config.FormatGTFS:
		cat := catalogue.NewTransportCatalogue()
		if _, err := gtfsimport.ImportFile(ctx, cfg.Network.Source, cat); err != nil {
			return nil, nil, err
		}
		rt, err := router.Compile(cat, cfg.Routing)
		if err != nil {
			return nil, nil, fmt.Errorf("compile router: %w", err)
		}
		return cat, rt, nil
	default:
		f, err := os.Open(cfg.Network.Source)
		if err != nil {
			return nil, nil, err
		}
		defer logging.SafeCloseWithLogging(f, logging.FromContext(ctx), "close network source")

		res, err := requests.LoadNetwork(ctx, f, cfg.Routing)
		if err != nil {
			return nil, nil, err
		}
		return res.Catalogue, res.Router, nil
	}
}
