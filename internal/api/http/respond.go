package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"rentaldesk-backend/internal/domain"
	"rentaldesk-backend/internal/logger"
	"rentaldesk-backend/internal/service"
)

type errorResponse struct {
	Error     string           `json:"error"`
	Kind      string           `json:"kind"`
	From      string           `json:"from,omitempty"`
	To        string           `json:"to,omitempty"`
	Conflicts []domain.Booking `json:"conflicts,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			logger.Error("failed to encode response", "error", err)
		}
	}
}

// writeError maps the domain error kinds onto HTTP status codes. Services
// know nothing about HTTP; this is the only place the mapping lives.
func writeError(w http.ResponseWriter, err error) {
	var (
		ve *domain.ValidationError
		nf *domain.NotFoundError
		it *domain.InvalidTransitionError
		ce *domain.ConflictError
		fe *domain.ForbiddenError
		de *domain.DependencyError
	)

	switch {
	case errors.As(err, &ve):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: ve.Error(), Kind: "validation"})
	case errors.As(err, &nf):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: nf.Error(), Kind: "not_found"})
	case errors.As(err, &it):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
			Error: it.Error(), Kind: "invalid_transition",
			From: string(it.From), To: string(it.To),
		})
	case errors.As(err, &ce):
		writeJSON(w, http.StatusConflict, errorResponse{
			Error: ce.Error(), Kind: "conflict", Conflicts: ce.Conflicts,
		})
	case errors.As(err, &fe):
		writeJSON(w, http.StatusForbidden, errorResponse{Error: fe.Error(), Kind: "forbidden"})
	case errors.Is(err, service.ErrInvalidCredentials):
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: err.Error(), Kind: "unauthorized"})
	case errors.As(err, &de):
		logger.Error("dependency failure", "error", err)
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: "a backing service failed", Kind: "dependency"})
	default:
		logger.Error("unhandled error", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error", Kind: "internal"})
	}
}
