package httpapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"uclaverify/backend/internal/mailer"
	"uclaverify/backend/internal/verification"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

type sendCodeRequest struct {
	Email string `json:"email" validate:"required"`
	Code  string `json:"code"`
}

type sendCodeResponse struct {
	DispatchID string `json:"dispatch_id"`
	Email      string `json:"email"`
	Code       string `json:"code"`
}

type checkEmailRequest struct {
	Email string `json:"email" validate:"required"`
}

type checkEmailResponse struct {
	Email string `json:"email"`
	Valid bool   `json:"valid"`
}

// handleSendCode mails a code and hands it back; storing it is up to the caller.
func (a *API) handleSendCode(w http.ResponseWriter, r *http.Request) {
	var req sendCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "email is required")
		return
	}

	email, ok := verification.NormalizeEmail(req.Email)
	if !ok || !strings.HasSuffix(email, verification.InstitutionalSuffix) {
		writeSendError(w, mailer.ErrInvalidRecipient)
		return
	}

	code := req.Code
	if code != "" && !verification.IsNumericCode(code, a.settings.CodeLength) {
		writeError(w, http.StatusUnprocessableEntity, "code must be "+strconv.Itoa(a.settings.CodeLength)+" digits")
		return
	}

	now := a.clock()
	limitKey := strings.ToLower(email)
	if !a.emailLimit.Allow(limitKey, a.settings.SendEmailLimit, a.settings.SendEmailWindow, now) {
		writeError(w, http.StatusTooManyRequests, "too many requests")
		return
	}

	if code == "" {
		generated, err := verification.GenerateCode(a.settings.CodeLength)
		if err != nil {
			a.emailLimit.Release(limitKey)
			writeError(w, http.StatusInternalServerError, "failed to generate code")
			return
		}
		code = generated
	}

	id := a.newID()
	ctx := mailer.WithDispatchID(r.Context(), id)
	err := a.mailer.SendVerificationEmail(ctx, req.Email, code, a.settings.Sender)
	a.metrics.observe(err)
	if err != nil {
		if errors.Is(err, mailer.ErrTransport) {
			a.emailLimit.Release(limitKey)
		}
		a.logger.Warn("verification send failed",
			slog.String("dispatch_id", id),
			slog.String("kind", mailer.KindOf(err)),
			slog.Any("err", err),
		)
		writeSendError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, sendCodeResponse{
		DispatchID: id,
		Email:      email,
		Code:       code,
	})
}

func (a *API) handleCheckEmail(w http.ResponseWriter, r *http.Request) {
	var req checkEmailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "email is required")
		return
	}

	writeJSON(w, http.StatusOK, checkEmailResponse{
		Email: req.Email,
		Valid: verification.IsValidInstitutionalEmail(req.Email),
	})
}
