package service_test

import (
	"context"
	"testing"
	"time"

	"rentaldesk-backend/internal/domain"
	"rentaldesk-backend/internal/service"

	"github.com/stretchr/testify/assert"
)

func TestAvailabilityService_Check(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2026, time.October, 1, 0, 0, 0, 0, time.UTC)
	end := start.Add(7 * 24 * time.Hour)
	vehicle := &domain.Vehicle{ID: 7, Make: "Toyota", Model: "Hilux"}

	t.Run("Available", func(t *testing.T) {
		vehicleRepo := new(MockVehicleRepo)
		bookingRepo := new(MockBookingRepo)
		svc := service.NewAvailabilityService(vehicleRepo, bookingRepo)

		vehicleRepo.On("GetByID", ctx, int32(7)).Return(vehicle, nil).Once()
		bookingRepo.On("ListOccupying", ctx, int32(7), start, end, int32(0)).
			Return([]domain.Booking{}, nil).Once()

		result, err := svc.Check(ctx, 7, start, end, 0)
		assert.NoError(t, err)
		assert.True(t, result.IsAvailable)
		assert.Empty(t, result.Conflicts)
		bookingRepo.AssertExpectations(t)
	})

	t.Run("ReportsAllConflicts", func(t *testing.T) {
		vehicleRepo := new(MockVehicleRepo)
		bookingRepo := new(MockBookingRepo)
		svc := service.NewAvailabilityService(vehicleRepo, bookingRepo)

		conflicts := []domain.Booking{
			{Kind: domain.BookingKindContract, ID: 1, Reference: "CT-100", VehicleID: 7},
			{Kind: domain.BookingKindRentRequest, ID: 4, Reference: "RB-XYZ", VehicleID: 7},
		}
		vehicleRepo.On("GetByID", ctx, int32(7)).Return(vehicle, nil).Once()
		bookingRepo.On("ListOccupying", ctx, int32(7), start, end, int32(0)).
			Return(conflicts, nil).Once()

		result, err := svc.Check(ctx, 7, start, end, 0)
		assert.NoError(t, err)
		assert.False(t, result.IsAvailable)
		assert.Len(t, result.Conflicts, 2)
	})

	t.Run("ExcludesOwnRequest", func(t *testing.T) {
		vehicleRepo := new(MockVehicleRepo)
		bookingRepo := new(MockBookingRepo)
		svc := service.NewAvailabilityService(vehicleRepo, bookingRepo)

		vehicleRepo.On("GetByID", ctx, int32(7)).Return(vehicle, nil).Once()
		bookingRepo.On("ListOccupying", ctx, int32(7), start, end, int32(42)).
			Return([]domain.Booking{}, nil).Once()

		result, err := svc.Check(ctx, 7, start, end, 42)
		assert.NoError(t, err)
		assert.True(t, result.IsAvailable)
		bookingRepo.AssertExpectations(t)
	})

	t.Run("BlockingIgnoresOpenRequests", func(t *testing.T) {
		vehicleRepo := new(MockVehicleRepo)
		bookingRepo := new(MockBookingRepo)
		svc := service.NewAvailabilityService(vehicleRepo, bookingRepo)

		vehicleRepo.On("GetByID", ctx, int32(7)).Return(vehicle, nil).Once()
		bookingRepo.On("ListBlocking", ctx, int32(7), start, end, int32(1)).
			Return([]domain.Booking{}, nil).Once()

		result, err := svc.CheckBlocking(ctx, 7, start, end, 1)
		assert.NoError(t, err)
		assert.True(t, result.IsAvailable)
		bookingRepo.AssertNotCalled(t, "ListOccupying", ctx, int32(7), start, end, int32(1))
		bookingRepo.AssertExpectations(t)
	})

	t.Run("BlockingReportsCommittedConflicts", func(t *testing.T) {
		vehicleRepo := new(MockVehicleRepo)
		bookingRepo := new(MockBookingRepo)
		svc := service.NewAvailabilityService(vehicleRepo, bookingRepo)

		committed := []domain.Booking{
			{Kind: domain.BookingKindContract, ID: 1, Reference: "CT-100", VehicleID: 7},
		}
		vehicleRepo.On("GetByID", ctx, int32(7)).Return(vehicle, nil).Once()
		bookingRepo.On("ListBlocking", ctx, int32(7), start, end, int32(0)).
			Return(committed, nil).Once()

		result, err := svc.CheckBlocking(ctx, 7, start, end, 0)
		assert.NoError(t, err)
		assert.False(t, result.IsAvailable)
		assert.Len(t, result.Conflicts, 1)
	})

	t.Run("InvalidRange", func(t *testing.T) {
		svc := service.NewAvailabilityService(new(MockVehicleRepo), new(MockBookingRepo))

		_, err := svc.Check(ctx, 7, end, start, 0)
		var ve *domain.ValidationError
		assert.ErrorAs(t, err, &ve)
	})

	t.Run("UnknownVehicle", func(t *testing.T) {
		vehicleRepo := new(MockVehicleRepo)
		bookingRepo := new(MockBookingRepo)
		svc := service.NewAvailabilityService(vehicleRepo, bookingRepo)

		vehicleRepo.On("GetByID", ctx, int32(99)).
			Return(nil, &domain.NotFoundError{Resource: "vehicle", ID: "99"}).Once()

		_, err := svc.Check(ctx, 99, start, end, 0)
		var nf *domain.NotFoundError
		assert.ErrorAs(t, err, &nf)
		bookingRepo.AssertNotCalled(t, "ListOccupying")
	})
}
