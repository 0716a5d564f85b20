package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"rentaldesk-backend/internal/domain"
	"rentaldesk-backend/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
)

const dateParamLayout = "2006-01-02"

// RentRequestHandler serves the public booking endpoints.
type RentRequestHandler struct {
	requestSvc      service.RentRequestService
	availabilitySvc service.AvailabilityService
	validate        *validator.Validate
}

func NewRentRequestHandler(requestSvc service.RentRequestService, availabilitySvc service.AvailabilityService) *RentRequestHandler {
	return &RentRequestHandler{
		requestSvc:      requestSvc,
		availabilitySvc: availabilitySvc,
		validate:        validator.New(),
	}
}

type createRequestPayload struct {
	ClientName  string `json:"client_name" validate:"required,min=2,max=120"`
	ClientEmail string `json:"client_email" validate:"required,email"`
	ClientPhone string `json:"client_phone" validate:"required,min=5,max=32"`
	VehicleID   int32  `json:"vehicle_id" validate:"required,gt=0"`
	StartDate   string `json:"start_date" validate:"required"`
	EndDate     string `json:"end_date" validate:"required"`
	Message     string `json:"message" validate:"max=2000"`
}

func parseID(value string) (int32, error) {
	v, err := strconv.ParseInt(value, 10, 32)
	return int32(v), err
}

func parseDate(field, value string) (time.Time, error) {
	t, err := time.Parse(dateParamLayout, value)
	if err != nil {
		return time.Time{}, &domain.ValidationError{Field: field, Reason: "expected YYYY-MM-DD"}
	}
	return t, nil
}

func (h *RentRequestHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload createRequestPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, &domain.ValidationError{Reason: "malformed request body"})
		return
	}
	if err := h.validate.Struct(payload); err != nil {
		writeError(w, &domain.ValidationError{Reason: err.Error()})
		return
	}

	start, err := parseDate("start_date", payload.StartDate)
	if err != nil {
		writeError(w, err)
		return
	}
	end, err := parseDate("end_date", payload.EndDate)
	if err != nil {
		writeError(w, err)
		return
	}

	req, err := h.requestSvc.Create(r.Context(), service.CreateRequestInput{
		ClientName:  payload.ClientName,
		ClientEmail: payload.ClientEmail,
		ClientPhone: payload.ClientPhone,
		VehicleID:   payload.VehicleID,
		StartDate:   start,
		EndDate:     end,
		Message:     payload.Message,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, req)
}

func (h *RentRequestHandler) GetByCode(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]
	email := r.URL.Query().Get("email")
	if email == "" {
		writeError(w, &domain.ValidationError{Field: "email", Reason: "email query parameter is required"})
		return
	}

	req, err := h.requestSvc.GetByCode(r.Context(), code, email)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, req)
}

func (h *RentRequestHandler) CheckAvailability(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	vehicleID, err := parseID(q.Get("vehicle_id"))
	if err != nil || vehicleID <= 0 {
		writeError(w, &domain.ValidationError{Field: "vehicle_id", Reason: "a positive vehicle_id is required"})
		return
	}
	start, err := parseDate("start_date", q.Get("start_date"))
	if err != nil {
		writeError(w, err)
		return
	}
	end, err := parseDate("end_date", q.Get("end_date"))
	if err != nil {
		writeError(w, err)
		return
	}

	result, err := h.availabilitySvc.Check(r.Context(), vehicleID, start, end, 0)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
