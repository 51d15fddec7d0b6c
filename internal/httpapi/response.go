package httpapi

import (
	"encoding/json"
	"net/http"

	"uclaverify/backend/internal/mailer"
)

type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// writeSendError maps a mailer failure to a status the caller can act on:
// 422 means ask for another address, 5xx means try again later.
func writeSendError(w http.ResponseWriter, err error) {
	kind := mailer.KindOf(err)
	switch kind {
	case mailer.KindInvalidRecipient:
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: mailer.ErrInvalidRecipient.Error(), Kind: kind})
	case mailer.KindAuthentication:
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: "mail relay rejected sender credentials", Kind: kind})
	case mailer.KindDeliveryRejected:
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: "mail relay rejected the message", Kind: kind})
	case mailer.KindTransport:
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "mail relay unavailable", Kind: kind})
	default:
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to send verification code", Kind: mailer.KindUnknown})
	}
}
