package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	configloader "github.com/nicksboson/CeriNote/external/config"
	"github.com/nicksboson/CeriNote/external/groq"
	"github.com/nicksboson/CeriNote/external/httpapi"
	mediaimpl "github.com/nicksboson/CeriNote/external/media"
	storeimpl "github.com/nicksboson/CeriNote/external/store"
	transcriberimpl "github.com/nicksboson/CeriNote/external/transcriber"
	"github.com/nicksboson/CeriNote/internal/config"
	"github.com/nicksboson/CeriNote/internal/retention"
	"github.com/samber/do/v2"
)

func main() {
	slog.Info("startup: loading configuration")
	cfg := mustLoadConfig()
	initLogger(cfg)
	slog.Info("startup: configuration loaded", "env", cfg.Env, "retention_days", cfg.RetentionDays)

	slog.Info("startup: building dependency graph")
	injector := setupDI(cfg)

	slog.Info("startup: launching http server")
	runServer(injector)
}

func mustLoadConfig() *config.Config {
	cfg, err := configloader.Load()
	if err != nil {
		slog.Error("config validation failed", "error", err)
		os.Exit(1)
	}
	return cfg
}

func initLogger(cfg *config.Config) {
	logLevel := slog.LevelInfo
	if cfg.IsDevelopment() {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})))
}

func setupDI(cfg *config.Config) do.Injector {
	injector := do.New()

	do.ProvideValue(injector, cfg)
	storeimpl.RegisterDI(injector)
	mediaimpl.RegisterDI(injector)
	groq.RegisterDI(injector)
	transcriberimpl.RegisterDI(injector)
	httpapi.RegisterDI(injector)

	return injector
}

func runServer(injector do.Injector) {
	server, err := do.Invoke[*httpapi.Server](injector)
	if err != nil {
		slog.Error("failed to resolve http server", "error", err)
		os.Exit(1)
	}
	policy, err := do.Invoke[*retention.Policy](injector)
	if err != nil {
		slog.Error("failed to resolve retention policy", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	scheduler, err := retention.StartScheduler(ctx, policy)
	if err != nil {
		slog.Error("failed to start retention scheduler", "error", err)
		os.Exit(1)
	}
	defer scheduler.Stop()
	slog.Info("startup: retention scheduler running", "zero_retention", policy.ZeroRetention())

	done := make(chan struct{})
	go func() {
		if err := server.Run(ctx); err != nil {
			slog.Error("http server failed", "error", err)
		}
		close(done)
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sigCh:
		slog.Info("shutting down")
		cancel()
		<-done
	case <-done:
	}
}
