package mailer

import "context"

const Subject = "Your UCLA Email Verification Code"

// Credentials are the sender's mailbox login for a single send.
type Credentials struct {
	Address string
	Secret  string
}

type Mailer interface {
	SendVerificationEmail(ctx context.Context, recipient, code string, creds Credentials) error
}

func Body(code string) string {
	return "Your verification code is: " + code
}

type contextKey string

const contextKeyDispatchID contextKey = "dispatchID"

// WithDispatchID tags ctx so the send confirmation can be correlated with
// the caller's request.
func WithDispatchID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, contextKeyDispatchID, id)
}

// DispatchID returns the id set by WithDispatchID, or "".
func DispatchID(ctx context.Context) string {
	id, _ := ctx.Value(contextKeyDispatchID).(string)
	return id
}
