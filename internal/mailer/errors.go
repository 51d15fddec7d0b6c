package mailer

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/textproto"
	"strings"

	"github.com/wneessen/go-mail"
)

var (
	ErrInvalidRecipient = errors.New("email must be a valid @ucla.edu address")
	ErrAuthentication   = errors.New("smtp authentication failed")
	ErrTransport        = errors.New("smtp transport failure")
	ErrDeliveryRejected = errors.New("message rejected by relay")
)

const (
	KindInvalidRecipient = "invalid_recipient"
	KindAuthentication   = "authentication"
	KindTransport        = "transport"
	KindDeliveryRejected = "delivery_rejected"
	KindUnknown          = "unknown"
)

// KindOf names the failure class of an error returned by a Mailer.
func KindOf(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidRecipient):
		return KindInvalidRecipient
	case errors.Is(err, ErrAuthentication):
		return KindAuthentication
	case errors.Is(err, ErrTransport):
		return KindTransport
	case errors.Is(err, ErrDeliveryRejected):
		return KindDeliveryRejected
	default:
		return KindUnknown
	}
}

// classifyDial sorts failures from connecting, the TLS handshake and the
// AUTH exchange.
func classifyDial(err error) error {
	if isAuthFailure(err) {
		return fmt.Errorf("%w: %w", ErrAuthentication, err)
	}
	return fmt.Errorf("%w: %w", ErrTransport, err)
}

// classifySend sorts failures once a session is established. Anything that
// is not a broken connection counts as the relay refusing the message.
func classifySend(err error) error {
	if isNetworkFailure(err) {
		return fmt.Errorf("%w: %w", ErrTransport, err)
	}
	var sendErr *mail.SendError
	if errors.As(err, &sendErr) && sendErr.Reason == mail.ErrConnCheck {
		return fmt.Errorf("%w: %w", ErrTransport, err)
	}
	return fmt.Errorf("%w: %w", ErrDeliveryRejected, err)
}

func isAuthFailure(err error) bool {
	var protoErr *textproto.Error
	if errors.As(err, &protoErr) {
		switch protoErr.Code {
		case 530, 534, 535, 538:
			return true
		}
	}
	// go-mail prefixes errors raised during the AUTH exchange.
	return strings.Contains(err.Error(), "SMTP AUTH")
}

func isNetworkFailure(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}
