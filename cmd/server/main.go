package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"uclaverify/backend/internal/config"
	"uclaverify/backend/internal/httpapi"
	"uclaverify/backend/internal/mailer"
)

var (
	loadConfig     = config.Load
	listenAndServe = func(srv *http.Server) error { return srv.ListenAndServe() }
	shutdownServer = func(srv *http.Server, ctx context.Context) error { return srv.Shutdown(ctx) }
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, logger); err != nil {
		slog.Error("server exited", slog.Any("err", err))
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	api := httpapi.New(newMailer(cfg, logger), buildSettings(cfg), logger)
	srv := buildServer(fmt.Sprintf(":%d", cfg.Port), api.Handler())

	sweepCtx, stopSweep := context.WithCancel(ctx)
	defer stopSweep()
	go api.SweepLimits(sweepCtx, time.Minute)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("backend listening", slog.String("addr", srv.Addr))
		if err := listenAndServe(srv); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := shutdownServer(srv, shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return <-errCh
}

func newMailer(cfg config.Config, logger *slog.Logger) mailer.Mailer {
	if cfg.SMTPUser == "" {
		logger.Warn("SMTP_USER not set, verification codes will only be logged")
		return &mailer.LogMailer{}
	}
	return mailer.NewSMTP(mailer.SMTPConfig{
		Host:    cfg.SMTPHost,
		Port:    cfg.SMTPPort,
		Timeout: cfg.SMTPTimeout(),
	}, logger)
}

func buildSettings(cfg config.Config) httpapi.Settings {
	return httpapi.Settings{
		CodeLength: cfg.CodeLength,
		Sender: mailer.Credentials{
			Address: cfg.SenderAddress(),
			Secret:  cfg.SMTPPass,
		},
		APIKey:          cfg.APIKey,
		SendIPLimit:     cfg.SendIPLimit,
		SendIPWindow:    time.Duration(cfg.SendIPWindowMinutes) * time.Minute,
		SendEmailLimit:  cfg.SendEmailLimit,
		SendEmailWindow: time.Duration(cfg.SendEmailWindowMinutes) * time.Minute,
	}
}

func buildServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}
