package mailer

import (
	"context"
	"log/slog"

	"uclaverify/backend/internal/verification"
)

// LogMailer writes the code to the log instead of sending it. Development only.
type LogMailer struct{}

func (m *LogMailer) SendVerificationEmail(ctx context.Context, recipient, code string, creds Credentials) error {
	if !verification.IsValidInstitutionalEmail(recipient) {
		return ErrInvalidRecipient
	}
	slog.Info("verification code issued",
		slog.String("email", recipient),
		slog.String("code", code),
		slog.String("from", creds.Address),
		slog.String("dispatch_id", DispatchID(ctx)),
	)
	return nil
}
