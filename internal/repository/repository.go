package repository

import (
	"context"
	"time"

	"rentaldesk-backend/internal/domain"
)

// TransitionParams carries one validated status change. The repository
// applies status, reviewed_at, reviewed_by, admin notes and the history row
// atomically, and when EnforceAvailability is set it re-counts overlapping
// blocking bookings inside the same transaction under a per-vehicle lock.
// AdminNotes, when non-nil, replaces the stored notes in the same statement
// as the status so a review action can never half-apply.
type TransitionParams struct {
	RequestID           int32
	FromStatus          domain.RequestStatus
	ToStatus            domain.RequestStatus
	Actor               *int32
	Notes               string
	AdminNotes          *string
	EnforceAvailability bool
}

type RentRequestRepository interface {
	// Create inserts the request and its initial PENDING history entry in one
	// transaction and fills in ID and timestamps on the passed struct.
	Create(ctx context.Context, req *domain.RentRequest) error
	GetByID(ctx context.Context, id int32) (*domain.RentRequest, error)
	GetByCode(ctx context.Context, code string) (*domain.RentRequest, error)
	// UpdateFields patches non-status fields (admin notes, message, approvable flag).
	UpdateFields(ctx context.Context, req *domain.RentRequest) error
	// Transition applies a status change per TransitionParams. Returns
	// domain.ConflictError when EnforceAvailability is set and an overlapping
	// occupying booking exists at commit time.
	Transition(ctx context.Context, p TransitionParams) (*domain.RentRequest, error)
	Delete(ctx context.Context, id int32) error
	List(ctx context.Context, f domain.RequestFilter) ([]domain.RentRequest, int32, error)
	ListHistory(ctx context.Context, requestID int32) ([]domain.StatusHistoryEntry, error)
	// FindOpenDuplicate looks for an un-rejected request from the same client
	// email for the same vehicle with an overlapping range, created after
	// since. Returns nil when none exists.
	FindOpenDuplicate(ctx context.Context, email string, vehicleID int32, start, end time.Time, since time.Time) (*domain.RentRequest, error)
	// ListStale returns open requests (PENDING or REVIEWED) whose start date
	// is on or before cutoff.
	ListStale(ctx context.Context, cutoff time.Time) ([]domain.RentRequest, error)
}

type BookingRepository interface {
	// ListOccupying returns every booking occupying the vehicle's calendar in
	// [start, end): contracts in any non-cancelled status and rent requests
	// in any status other than REJECTED. excludeRequestID, when non-zero,
	// drops that rent request from the scan. Ordered by start date, then by
	// kind and id for determinism.
	ListOccupying(ctx context.Context, vehicleID int32, start, end time.Time, excludeRequestID int32) ([]domain.Booking, error)
	// ListBlocking returns only committed occupancy in [start, end):
	// non-cancelled contracts and requests already APPROVED or CONFIRMED.
	// This is the set that vetoes an approval; open requests overlapping the
	// range do not appear here.
	ListBlocking(ctx context.Context, vehicleID int32, start, end time.Time, excludeRequestID int32) ([]domain.Booking, error)
}

type VehicleRepository interface {
	GetByID(ctx context.Context, id int32) (*domain.Vehicle, error)
	List(ctx context.Context) ([]domain.Vehicle, error)
}

type AdminRepository interface {
	GetByID(ctx context.Context, id int32) (*domain.Admin, error)
	GetByEmail(ctx context.Context, email string) (*domain.Admin, error)
	ListEmails(ctx context.Context) ([]string, error)
}

type StatisticsRepository interface {
	CountByStatus(ctx context.Context) (map[domain.RequestStatus]int64, error)
	CountByMonth(ctx context.Context) ([]domain.MonthlyCount, error)
	TopVehicles(ctx context.Context, limit int32) ([]domain.VehicleRequestCount, error)
	RecentRequests(ctx context.Context, limit int32) ([]domain.RentRequest, error)
}
