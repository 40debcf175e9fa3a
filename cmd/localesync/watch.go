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

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/loopcontext/localesync"
	"github.com/loopcontext/localesync/i18nhost"
	"github.com/loopcontext/localesync/internal/config"
	"github.com/loopcontext/localesync/internal/fswatch"
	"github.com/loopcontext/localesync/internal/logging"
	"github.com/loopcontext/localesync/metrics"
)

type watchConfig struct {
	configPath string
}

func parseWatchFlags(args []string) (*watchConfig, error) {
	fs := flag.NewFlagSet("watch", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `usage: localesync watch [-config FILE]

Runs a go-i18n engine over the locales root: missing keys are written to the active
language's files and edits to those files are reloaded. Settings come from the YAML file
and LOCALESYNC_* environment variables.

Flags:
`)
		fs.PrintDefaults()
	}
	var cfg watchConfig
	fs.StringVar(&cfg.configPath, "config", "localesync.yaml", "Configuration file.")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func runWatch(cfg *watchConfig) error {
	fileCfg, err := config.Load(cfg.configPath)
	if err != nil {
		return err
	}
	logger := logging.New(logging.Options{Level: fileCfg.Logging.Level, Format: fileCfg.Logging.Format})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var observer localesync.Observer
	if fileCfg.MetricsAddr != "" {
		registry := prometheus.NewRegistry()
		promObserver, err := metrics.NewPrometheusObserver(registry)
		if err != nil {
			return fmt.Errorf("register metrics: %w", err)
		}
		observer = promObserver
		server := serveMetrics(fileCfg.MetricsAddr, registry, logger)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = server.Shutdown(shutdownCtx)
		}()
	}

	store := localesync.NewResourceFileStore(fileCfg.LocalesRoot)
	engine, err := i18nhost.New(store, fileCfg.FallbackLanguage, logger)
	if engine == nil {
		return err
	}
	if err != nil {
		logger.Warn("fallback resources loaded with errors", slog.Any("error", err))
	}

	syncer, err := localesync.NewSyncer(fileCfg.SyncConfig(logger, observer), engine, fswatch.New(logger))
	if err != nil {
		return err
	}
	defer syncer.Close()

	if err := syncer.Start(ctx); err != nil {
		return err
	}
	if fileCfg.Language != engine.Language() {
		if err := engine.ChangeLanguage(ctx, fileCfg.Language); err != nil {
			logger.Warn("language resources loaded with errors", slog.String("lang", fileCfg.Language), slog.Any("error", err))
		}
	}

	logger.Info("watching locales", slog.String("root", fileCfg.LocalesRoot), slog.String("lang", engine.Language()))
	<-ctx.Done()
	logger.Info("shutting down")
	return nil
}

func serveMetrics(addr string, registry *prometheus.Registry, logger *slog.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	server := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server stopped", slog.Any("error", err))
		}
	}()
	return server
}
