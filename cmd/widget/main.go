package main

import (
	"context"
	"errors"
	"go-gitissues/internal/application/host"
	"go-gitissues/internal/application/widget"
	"go-gitissues/internal/application/widget/api"
	"go-gitissues/lib/e"
	"go-gitissues/pkg"
	"go-gitissues/pkg/config"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

func main() {
	pkg.SetNewStdoutLogger(os.Getenv("WIDGET_LOG_LEVEL"))

	cfg, err := config.LoadConfig(".env")
	if err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}

	pkg.SetNewStdoutLogger(cfg.LogLevel)

	fetcher, err := api.NewGithubFetcher(&http.Client{}, cfg.GithubAPIURL)
	if err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}

	w := widget.NewWidget(cfg, fetcher)
	h := host.NewHost(w, cfg.Location, cfg.RefreshCron)

	if err := h.Start(); err != nil {
		os.Exit(1)
	}

	srv := h.Server(cfg.Addr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error(
				e.ErrServerFailed.Error(),
				slog.String("error", err.Error()),
			)
		}
	}()

	slog.Info("Widget is running",
		slog.String("repo", cfg.Repo),
		slog.String("addr", cfg.Addr),
		slog.Duration("refresh", cfg.RefreshFrequency))

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c

	slog.Info("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error(
			e.ErrServerFailed.Error(),
			slog.String("error", err.Error()),
		)
	}

	h.Stop()
}
