package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"

	"github.com/google/uuid"
	"github.com/jessevdk/go-flags"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spacemeshos/solflood/client"
	"github.com/spacemeshos/solflood/config"
	"github.com/spacemeshos/solflood/epoch"
	"github.com/spacemeshos/solflood/logging"
	"github.com/spacemeshos/solflood/orchestrator"
	"github.com/spacemeshos/solflood/puzzle"
)

// solflood binary version.
// It should be passed during the build with '-ldflags "-X main.version="'.
var version = "unknown"

// solfloodMain is the true entry point for solflood. This function is required
// since defers created in the top-level scope of a main method aren't executed
// if os.Exit() is called.
func solfloodMain() error {
	var err error
	// Start with a default Config with sane settings
	cfg := config.DefaultConfig()
	// Pre-parse the command line to check for an alternative Config file
	cfg, err = config.ParseFlags(cfg)
	if err != nil {
		return err
	}
	// Load configuration file overwriting defaults with any specified options
	cfg, err = config.ReadConfigFile(cfg)
	if err != nil {
		return err
	}
	// Finally, parse the remaining command line options again to ensure
	// they take precedence.
	cfg, err = config.ParseFlags(cfg)
	if err != nil {
		return err
	}
	cfg, err = config.SetupConfig(cfg)
	if err != nil {
		return err
	}

	logLevel := zap.InfoLevel
	if cfg.DebugLog {
		logLevel = zap.DebugLevel
	}
	logger := logging.New(logLevel, cfg.LogFile(), cfg.JSONLog).With(zap.String("run", uuid.NewString()))
	defer logger.Sync()
	ctx := logging.NewContext(context.Background(), logger)

	logger.Info("starting solflood",
		zap.String("version", version),
		zap.String("node", cfg.NodeURL),
		zap.Uint32("blocks-per-epoch", cfg.BlocksPerEpoch),
		zap.Stringer("recipient", cfg.Recipient),
	)

	cl, err := client.New(cfg.NodeURL, client.WithTimeout(cfg.RequestTimeout), client.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("creating node client: %w", err)
	}
	resolver, err := epoch.NewResolver(cfg.BlocksPerEpoch)
	if err != nil {
		return err
	}
	producer := puzzle.NewProducer(puzzle.NewHashProver(cfg.SearchBound), cfg.Recipient)
	orch := orchestrator.New(cl, resolver, producer, orchestrator.WithConfig(cfg.Orchestrator))

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()
	eg, ctx := errgroup.WithContext(ctx)

	if cfg.MetricsPort != nil {
		server := &http.Server{
			Addr:    net.JoinHostPort("", strconv.Itoa(int(*cfg.MetricsPort))),
			Handler: promhttp.Handler(),
		}
		logger.Info("serving metrics", zap.String("addr", server.Addr))
		eg.Go(func() error {
			if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("serving metrics: %w", err)
			}
			return nil
		})
		eg.Go(func() error {
			<-ctx.Done()
			return server.Shutdown(context.Background())
		})
	}

	eg.Go(func() error {
		return orch.Run(ctx)
	})

	err = eg.Wait()
	if errors.Is(err, context.Canceled) {
		logger.Info("interrupted, exiting")
		return nil
	}
	return err
}

func main() {
	if err := solfloodMain(); err != nil {
		// If it's the flag utility error don't print it,
		// because it was already printed.
		if e, ok := err.(*flags.Error); ok && e.Type == flags.ErrHelp {
		} else {
			_, _ = fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
