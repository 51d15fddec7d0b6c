package httpapi

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"uclaverify/backend/internal/mailer"
	"uclaverify/backend/internal/verification"
)

func TestHandlerHealth(t *testing.T) {
	api := New(&mailer.LogMailer{}, Settings{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()

	api.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if body := rec.Body.String(); body != "ok" {
		t.Fatalf("unexpected body: %q", body)
	}
}

func TestHandlerMetrics(t *testing.T) {
	api := New(&mailer.LogMailer{}, Settings{}, nil)
	api.metrics.observe(nil)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()

	api.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `verification_emails_total{outcome="sent"} 1`) {
		t.Fatalf("expected dispatch counter in output:\n%s", rec.Body.String())
	}
}

func TestSettingsDefaults(t *testing.T) {
	s := Settings{}.withDefaults()
	if s.CodeLength != verification.DefaultCodeLength {
		t.Fatalf("expected default code length, got %d", s.CodeLength)
	}
	if s.SendIPLimit != 10 || s.SendIPWindow != time.Minute {
		t.Fatalf("unexpected ip limit defaults: %d/%v", s.SendIPLimit, s.SendIPWindow)
	}
	if s.SendEmailLimit != 3 || s.SendEmailWindow != 15*time.Minute {
		t.Fatalf("unexpected email limit defaults: %d/%v", s.SendEmailLimit, s.SendEmailWindow)
	}

	custom := Settings{CodeLength: 8, SendEmailLimit: 1}.withDefaults()
	if custom.CodeLength != 8 || custom.SendEmailLimit != 1 {
		t.Fatal("expected explicit settings to be kept")
	}
}
