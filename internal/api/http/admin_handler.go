package http

import (
	"encoding/json"
	"net/http"

	"rentaldesk-backend/internal/domain"
	"rentaldesk-backend/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
)

// AdminHandler serves the authenticated review endpoints.
type AdminHandler struct {
	requestSvc service.RentRequestService
	statsSvc   service.StatisticsService
	authSvc    service.AuthService
	validate   *validator.Validate
}

func NewAdminHandler(requestSvc service.RentRequestService, statsSvc service.StatisticsService, authSvc service.AuthService) *AdminHandler {
	return &AdminHandler{
		requestSvc: requestSvc,
		statsSvc:   statsSvc,
		authSvc:    authSvc,
		validate:   validator.New(),
	}
}

type loginPayload struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token string        `json:"token"`
	Admin *domain.Admin `json:"admin"`
}

func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var payload loginPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, &domain.ValidationError{Reason: "malformed request body"})
		return
	}
	if err := h.validate.Struct(payload); err != nil {
		writeError(w, &domain.ValidationError{Reason: err.Error()})
		return
	}

	token, admin, err := h.authSvc.Login(r.Context(), payload.Email, payload.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, loginResponse{Token: token, Admin: admin})
}

type listResponse struct {
	Requests []domain.RentRequest `json:"requests"`
	Total    int32                `json:"total"`
}

func (h *AdminHandler) ListRequests(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := domain.RequestFilter{
		Status:      domain.RequestStatus(q.Get("status")),
		ClientEmail: q.Get("client_email"),
		SortField:   q.Get("sort_by"),
		SortOrder:   q.Get("sort_order"),
	}

	if v := q.Get("vehicle_id"); v != "" {
		id, err := parseID(v)
		if err != nil {
			writeError(w, &domain.ValidationError{Field: "vehicle_id", Reason: "must be an integer"})
			return
		}
		filter.VehicleID = id
	}
	if v := q.Get("start_after"); v != "" {
		t, err := parseDate("start_after", v)
		if err != nil {
			writeError(w, err)
			return
		}
		filter.StartAfter = &t
	}
	if v := q.Get("end_before"); v != "" {
		t, err := parseDate("end_before", v)
		if err != nil {
			writeError(w, err)
			return
		}
		filter.EndBefore = &t
	}
	if v := q.Get("limit"); v != "" {
		n, err := parseID(v)
		if err != nil {
			writeError(w, &domain.ValidationError{Field: "limit", Reason: "must be an integer"})
			return
		}
		filter.Limit = n
	}
	if v := q.Get("offset"); v != "" {
		n, err := parseID(v)
		if err != nil {
			writeError(w, &domain.ValidationError{Field: "offset", Reason: "must be an integer"})
			return
		}
		filter.Offset = n
	}

	requests, total, err := h.requestSvc.List(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse{Requests: requests, Total: total})
}

type requestDetailResponse struct {
	Request *domain.RentRequest         `json:"request"`
	History []domain.StatusHistoryEntry `json:"history"`
}

func (h *AdminHandler) GetRequest(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, &domain.ValidationError{Field: "id", Reason: "must be an integer"})
		return
	}

	req, history, err := h.requestSvc.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, requestDetailResponse{Request: req, History: history})
}

type updateRequestPayload struct {
	Status     *string `json:"status"`
	AdminNotes *string `json:"admin_notes"`
	Notes      string  `json:"notes"`
}

func (h *AdminHandler) UpdateRequest(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, &domain.ValidationError{Field: "id", Reason: "must be an integer"})
		return
	}

	var payload updateRequestPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, &domain.ValidationError{Reason: "malformed request body"})
		return
	}

	input := service.UpdateRequestInput{
		AdminNotes: payload.AdminNotes,
		Notes:      payload.Notes,
	}
	if payload.Status != nil {
		status := domain.RequestStatus(*payload.Status)
		input.Status = &status
	}

	req, err := h.requestSvc.Update(r.Context(), id, input, adminIDFrom(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, req)
}

func (h *AdminHandler) DeleteRequest(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, &domain.ValidationError{Field: "id", Reason: "must be an integer"})
		return
	}

	if err := h.requestSvc.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AdminHandler) GetStatistics(w http.ResponseWriter, r *http.Request) {
	stats, err := h.statsSvc.Get(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
