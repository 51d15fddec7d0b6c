package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"uclaverify/backend/internal/config"
	"uclaverify/backend/internal/mailer"
	"uclaverify/backend/internal/verification"

	"github.com/spf13/pflag"
)

const (
	exitOK = iota
	exitFailure
	exitUsage
)

var (
	loadConfig = config.Load
	newSender  = func(cfg config.Config, logger *slog.Logger) mailer.Mailer {
		return mailer.NewSMTP(mailer.SMTPConfig{
			Host:    cfg.SMTPHost,
			Port:    cfg.SMTPPort,
			Timeout: cfg.SMTPTimeout(),
		}, logger)
	}
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, logger)
	stop()
	os.Exit(code)
}

// run sends one code and prints it to stdout for the operator to record.
func run(ctx context.Context, args []string, stdout io.Writer, logger *slog.Logger) int {
	fs := pflag.NewFlagSet("sendcode", pflag.ContinueOnError)
	to := fs.String("to", "", "recipient @ucla.edu address")
	length := fs.Int("length", verification.DefaultCodeLength, "number of digits to generate")
	code := fs.String("code", "", "send this code instead of generating one")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	if *to == "" {
		logger.Error("--to is required")
		return exitUsage
	}

	cfg, err := loadConfig()
	if err != nil {
		logger.Error("failed to load config", slog.Any("err", err))
		return exitFailure
	}
	if cfg.SMTPUser == "" {
		logger.Error("SMTP_USER and SMTP_PASS are required")
		return exitFailure
	}

	if *code == "" {
		*code, err = verification.GenerateCode(*length)
		if err != nil {
			logger.Error("failed to generate code", slog.Any("err", err))
			return exitFailure
		}
	}

	creds := mailer.Credentials{Address: cfg.SenderAddress(), Secret: cfg.SMTPPass}
	if err := newSender(cfg, logger).SendVerificationEmail(ctx, *to, *code, creds); err != nil {
		logger.Error("failed to send verification code",
			slog.String("kind", mailer.KindOf(err)),
			slog.Any("err", err),
		)
		if errors.Is(err, mailer.ErrInvalidRecipient) {
			return exitUsage
		}
		return exitFailure
	}

	fmt.Fprintln(stdout, *code)
	return exitOK
}
