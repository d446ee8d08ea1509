package main

import (
	"context"
	"flag"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/DreamyTwilight/transport-catalogue/pkg/config"
	"github.com/DreamyTwilight/transport-catalogue/pkg/logging"
	"github.com/DreamyTwilight/transport-catalogue/pkg/requests"
)

var (
	configFile = flag.String("config", "", "yaml config file")
	envFile    = flag.String("env", ".env", "dotenv file, skipped when missing")
	inputFile  = flag.String("in", "", "request document, stdin when empty")
	outputFile = flag.String("out", "", "answers file, stdout when empty")
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

	logger := logging.NewLogger(os.Stderr, logging.ParseLevel(cfg.Log.Level), cfg.Log.Format)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logging.WithLogger(ctx, logger)

	if err := run(ctx, cfg); err != nil {
		logging.LogError(logger, "failed to process requests", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.AppConfig) error {
	logger := logging.FromContext(ctx)

	var in io.Reader = os.Stdin
	if *inputFile != "" {
		f, err := os.Open(*inputFile)
		if err != nil {
			return err
		}
		defer logging.SafeCloseWithLogging(f, logger, "close input")
		in = f
	}

	start := time.Now()
	res, err := requests.Process(ctx, in, cfg.Routing, cfg.Network.Workers)
	if err != nil {
		return err
	}

	logging.LogOperation(logger, "requests_processed",
		slog.Int("stops", res.Load.Stops),
		slog.Int("distances", res.Load.Distances),
		slog.Int("buses", res.Load.Buses),
		slog.Int("answers", len(res.Answers)),
		slog.Duration("duration", time.Since(start)))

	if *outputFile == "" {
		return requests.WriteAnswers(os.Stdout, res.Answers)
	}
	out, err := os.Create(*outputFile)
	if err != nil {
		return err
	}
	if err := requests.WriteAnswers(out, res.Answers); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
