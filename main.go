package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"hermannm.dev/coviddash/api"
	"hermannm.dev/coviddash/config"
	"hermannm.dev/coviddash/dataset"
	"hermannm.dev/devlog"
	"hermannm.dev/devlog/log"
)

func main() {
	config, err := config.ReadFromEnv()
	if err != nil {
		log.ErrorCause(err, "failed to read config from env")
		os.Exit(1)
	}

	setUpLogger(config)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	datasets := dataset.NewCache(dataset.NewHTTPLoader(nil, config.Dataset.FetchTimeout))

	// The dashboard has nothing to show without the dataset, so a failed fetch stops the process.
	if _, err := datasets.Get(ctx, config.Dataset.URL); err != nil {
		log.ErrorCause(err, "failed to load dataset")
		os.Exit(1)
	}

	dashboardAPI := api.NewDashboardAPI(datasets, config.Dataset.URL, api.Config{
		Port: config.API.Port,
	})

	log.Infof("Listening on port %s...", config.API.Port)
	if err := dashboardAPI.ListenAndServe(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.ErrorCause(err, "server stopped")
		os.Exit(1)
	}
}

func setUpLogger(config config.Config) {
	level := slog.LevelInfo
	if config.DebugLogging {
		level = slog.LevelDebug
	}

	var handler slog.Handler
	if config.IsProduction {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	} else {
		handler = devlog.NewHandler(os.Stdout, &devlog.Options{Level: level})
	}

	slog.SetDefault(slog.New(handler))
}
