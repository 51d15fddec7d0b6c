package httpapi

import (
	"log/slog"
	"net/http"
	"time"

	"uclaverify/backend/internal/mailer"
	"uclaverify/backend/internal/verification"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/google/uuid"
)

type Settings struct {
	CodeLength      int
	Sender          mailer.Credentials
	APIKey          string
	SendIPLimit     int
	SendIPWindow    time.Duration
	SendEmailLimit  int
	SendEmailWindow time.Duration
}

func (s Settings) withDefaults() Settings {
	if s.CodeLength <= 0 {
		s.CodeLength = verification.DefaultCodeLength
	}
	if s.SendIPLimit <= 0 {
		s.SendIPLimit = 10
	}
	if s.SendIPWindow <= 0 {
		s.SendIPWindow = time.Minute
	}
	if s.SendEmailLimit <= 0 {
		s.SendEmailLimit = 3
	}
	if s.SendEmailWindow <= 0 {
		s.SendEmailWindow = 15 * time.Minute
	}
	return s
}

type API struct {
	mailer     mailer.Mailer
	logger     *slog.Logger
	settings   Settings
	clock      func() time.Time
	newID      func() string
	emailLimit *attemptTracker
	metrics    *dispatchMetrics
}

func New(m mailer.Mailer, settings Settings, logger *slog.Logger) *API {
	if logger == nil {
		logger = slog.Default()
	}
	return &API{
		mailer:     m,
		logger:     logger,
		settings:   settings.withDefaults(),
		clock:      time.Now,
		newID:      uuid.NewString,
		emailLimit: newAttemptTracker(),
		metrics:    newDispatchMetrics(),
	}
}

func (a *API) Handler() http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(30 * time.Second))

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	router.Handle("/metrics", a.metrics.handler())

	router.Route("/verification", func(r chi.Router) {
		r.Use(requireAPIKey(a.settings.APIKey))

		r.With(httprate.Limit(a.settings.SendIPLimit, a.settings.SendIPWindow, httprate.WithKeyFuncs(httprate.KeyByIP))).
			Post("/send", a.handleSendCode)

		r.Post("/check", a.handleCheckEmail)
	})

	return router
}
