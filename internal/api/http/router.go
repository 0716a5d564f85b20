package http

import (
	"net/http"

	"rentaldesk-backend/internal/repository"
	"rentaldesk-backend/internal/security"

	"github.com/gorilla/mux"
)

// VehicleHandler serves the public fleet catalogue used by the booking form.
type VehicleHandler struct {
	vehicleRepo repository.VehicleRepository
}

func NewVehicleHandler(vehicleRepo repository.VehicleRepository) *VehicleHandler {
	return &VehicleHandler{vehicleRepo: vehicleRepo}
}

func (h *VehicleHandler) List(w http.ResponseWriter, r *http.Request) {
	vehicles, err := h.vehicleRepo.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, vehicles)
}

// NewRouter wires all endpoints. Public routes take unauthenticated booking
// traffic; everything under /api/admin requires a valid admin token.
func NewRouter(
	requestHandler *RentRequestHandler,
	adminHandler *AdminHandler,
	vehicleHandler *VehicleHandler,
	tokens security.TokenManager,
) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	// Public endpoints
	r.HandleFunc("/api/requests", requestHandler.Create).Methods(http.MethodPost)
	r.HandleFunc("/api/requests/{code}", requestHandler.GetByCode).Methods(http.MethodGet)
	r.HandleFunc("/api/availability", requestHandler.CheckAvailability).Methods(http.MethodGet)
	r.HandleFunc("/api/vehicles", vehicleHandler.List).Methods(http.MethodGet)
	r.HandleFunc("/api/admin/login", adminHandler.Login).Methods(http.MethodPost)

	// Admin endpoints (protected)
	admin := r.PathPrefix("/api/admin").Subrouter()
	admin.Use(AdminAuthMiddleware(tokens))
	admin.HandleFunc("/requests", adminHandler.ListRequests).Methods(http.MethodGet)
	admin.HandleFunc("/requests/{id:[0-9]+}", adminHandler.GetRequest).Methods(http.MethodGet)
	admin.HandleFunc("/requests/{id:[0-9]+}", adminHandler.UpdateRequest).Methods(http.MethodPatch)
	admin.HandleFunc("/requests/{id:[0-9]+}", adminHandler.DeleteRequest).Methods(http.MethodDelete)
	admin.HandleFunc("/statistics", adminHandler.GetStatistics).Methods(http.MethodGet)

	return r
}
