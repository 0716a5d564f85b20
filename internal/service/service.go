package service

import (
	"context"
	"time"

	"rentaldesk-backend/internal/domain"
)

// Policy carries the booking policy knobs enforced by the request lifecycle.
// Values come from configuration, not from literals in the algorithms.
type Policy struct {
	MinLeadTime         time.Duration
	MaxRentalSpan       time.Duration
	DuplicateWindow     time.Duration
	TopVehiclesLimit    int32
	RecentRequestsLimit int32
}

// CreateRequestInput is a public rent request submission.
type CreateRequestInput struct {
	ClientName  string
	ClientEmail string
	ClientPhone string
	VehicleID   int32
	StartDate   time.Time
	EndDate     time.Time
	Message     string
}

// UpdateRequestInput is an admin review action. Nil fields are left
// untouched; Notes is recorded on the history entry when a status change is
// applied.
type UpdateRequestInput struct {
	Status     *domain.RequestStatus
	AdminNotes *string
	Notes      string
}

type AvailabilityService interface {
	// Check scans the full occupying set (every non-rejected request plus
	// non-cancelled contracts) for [start, end). Informational: this is what
	// the public availability endpoint and the approvable flag report.
	// excludeRequestID, when non-zero, removes that request's own row from
	// the scan so an update does not conflict with itself.
	Check(ctx context.Context, vehicleID int32, start, end time.Time, excludeRequestID int32) (*domain.AvailabilityResult, error)
	// CheckBlocking scans only committed occupancy (contracts plus requests
	// already APPROVED or CONFIRMED). This is the set that vetoes an
	// approval; overlapping open requests do not block each other.
	CheckBlocking(ctx context.Context, vehicleID int32, start, end time.Time, excludeRequestID int32) (*domain.AvailabilityResult, error)
}

type RentRequestService interface {
	Create(ctx context.Context, in CreateRequestInput) (*domain.RentRequest, error)
	Get(ctx context.Context, id int32) (*domain.RentRequest, []domain.StatusHistoryEntry, error)
	// GetByCode is the client-facing lookup; the email address must match
	// the one the request was submitted with.
	GetByCode(ctx context.Context, code, clientEmail string) (*domain.RentRequest, error)
	List(ctx context.Context, f domain.RequestFilter) ([]domain.RentRequest, int32, error)
	Update(ctx context.Context, id int32, in UpdateRequestInput, actor int32) (*domain.RentRequest, error)
	Delete(ctx context.Context, id int32) error
}

type StatisticsService interface {
	Get(ctx context.Context) (*domain.RentRequestStatistics, error)
}

type AuthService interface {
	// Login returns a signed access token for valid admin credentials.
	Login(ctx context.Context, email, password string) (string, *domain.Admin, error)
}

// EmailService delivers client and admin notifications. Callers treat every
// method as best-effort: failures are logged and never fail the operation
// that triggered them.
type EmailService interface {
	SendClientConfirmation(ctx context.Context, req *domain.RentRequest, vehicle *domain.Vehicle) error
	SendAdminNotification(ctx context.Context, adminEmail string, req *domain.RentRequest, vehicle *domain.Vehicle) error
	SendStatusUpdate(ctx context.Context, req *domain.RentRequest, vehicle *domain.Vehicle) error
	// SendPendingSummary delivers one digest of all open requests to a single
	// admin. vehicles is keyed by vehicle id for display names.
	SendPendingSummary(ctx context.Context, adminEmail string, pending []domain.RentRequest, vehicles map[int32]domain.Vehicle) error
}
