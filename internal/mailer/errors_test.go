package mailer

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/textproto"
	"testing"

	"github.com/wneessen/go-mail"
)

func TestClassifyDial(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want error
	}{
		{"auth reply code", fmt.Errorf("SMTP AUTH failed: %w", &textproto.Error{Code: 535, Msg: "bad credentials"}), ErrAuthentication},
		{"auth required", &textproto.Error{Code: 530, Msg: "authentication required"}, ErrAuthentication},
		{"auth message", errors.New("SMTP AUTH failed: unsupported mechanism"), ErrAuthentication},
		{"refused", &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")}, ErrTransport},
		{"tls", errors.New("tls: failed to verify certificate"), ErrTransport},
		{"timeout", context.DeadlineExceeded, ErrTransport},
	}
	for _, tc := range cases {
		if got := classifyDial(tc.err); !errors.Is(got, tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, got)
		}
	}
}

func TestClassifySend(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want error
	}{
		{"rcpt", &mail.SendError{Reason: mail.ErrSMTPRcptTo}, ErrDeliveryRejected},
		{"data", errors.New("554 message rejected"), ErrDeliveryRejected},
		{"conn check", &mail.SendError{Reason: mail.ErrConnCheck}, ErrTransport},
		{"reset", &net.OpError{Op: "write", Net: "tcp", Err: errors.New("broken pipe")}, ErrTransport},
		{"canceled", fmt.Errorf("send: %w", context.Canceled), ErrTransport},
	}
	for _, tc := range cases {
		if got := classifySend(tc.err); !errors.Is(got, tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, got)
		}
	}
}

func TestClassifyKeepsCause(t *testing.T) {
	cause := &textproto.Error{Code: 535, Msg: "bad credentials"}
	err := classifyDial(cause)

	var protoErr *textproto.Error
	if !errors.As(err, &protoErr) || protoErr.Code != 535 {
		t.Fatalf("expected wrapped textproto error, got %v", err)
	}
}

func TestKindOf(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{ErrInvalidRecipient, KindInvalidRecipient},
		{fmt.Errorf("%w: bad password", ErrAuthentication), KindAuthentication},
		{fmt.Errorf("%w: refused", ErrTransport), KindTransport},
		{fmt.Errorf("%w: 554", ErrDeliveryRejected), KindDeliveryRejected},
		{errors.New("other"), KindUnknown},
	}
	for _, tc := range cases {
		if got := KindOf(tc.err); got != tc.want {
			t.Fatalf("KindOf(%v): expected %q, got %q", tc.err, tc.want, got)
		}
	}
}
