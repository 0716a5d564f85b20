package service

import (
	"context"
	"time"

	"rentaldesk-backend/internal/domain"
	"rentaldesk-backend/internal/repository"
)

type availabilityService struct {
	vehicleRepo repository.VehicleRepository
	bookingRepo repository.BookingRepository
}

func NewAvailabilityService(vehicleRepo repository.VehicleRepository, bookingRepo repository.BookingRepository) AvailabilityService {
	return &availabilityService{
		vehicleRepo: vehicleRepo,
		bookingRepo: bookingRepo,
	}
}

type bookingScan func(ctx context.Context, vehicleID int32, start, end time.Time, excludeRequestID int32) ([]domain.Booking, error)

// Check scans every booking occupying the vehicle's calendar in [start, end)
// and reports all conflicts, not just the first, so an admin can see why a
// request is not approvable. Read-only.
func (s *availabilityService) Check(ctx context.Context, vehicleID int32, start, end time.Time, excludeRequestID int32) (*domain.AvailabilityResult, error) {
	return s.check(ctx, s.bookingRepo.ListOccupying, vehicleID, start, end, excludeRequestID)
}

// CheckBlocking scans committed occupancy only. Used on the approval and
// confirmation paths, where overlapping open requests must not veto each
// other.
func (s *availabilityService) CheckBlocking(ctx context.Context, vehicleID int32, start, end time.Time, excludeRequestID int32) (*domain.AvailabilityResult, error) {
	return s.check(ctx, s.bookingRepo.ListBlocking, vehicleID, start, end, excludeRequestID)
}

func (s *availabilityService) check(ctx context.Context, scan bookingScan, vehicleID int32, start, end time.Time, excludeRequestID int32) (*domain.AvailabilityResult, error) {
	if !start.Before(end) {
		return nil, &domain.ValidationError{Field: "start_date", Reason: "start date must be before end date"}
	}

	if _, err := s.vehicleRepo.GetByID(ctx, vehicleID); err != nil {
		return nil, domain.Dependency("availability: load vehicle", err)
	}

	conflicts, err := scan(ctx, vehicleID, start, end, excludeRequestID)
	if err != nil {
		return nil, domain.Dependency("availability: scan bookings", err)
	}

	return &domain.AvailabilityResult{
		VehicleID:   vehicleID,
		StartDate:   start,
		EndDate:     end,
		IsAvailable: len(conflicts) == 0,
		Conflicts:   conflicts,
	}, nil
}
