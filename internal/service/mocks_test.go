package service_test

import (
	"context"
	"time"

	"rentaldesk-backend/internal/domain"
	"rentaldesk-backend/internal/repository"

	"github.com/stretchr/testify/mock"
)

// MockRentRequestRepo
type MockRentRequestRepo struct {
	mock.Mock
}

func (m *MockRentRequestRepo) Create(ctx context.Context, req *domain.RentRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}
func (m *MockRentRequestRepo) GetByID(ctx context.Context, id int32) (*domain.RentRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RentRequest), args.Error(1)
}
func (m *MockRentRequestRepo) GetByCode(ctx context.Context, code string) (*domain.RentRequest, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RentRequest), args.Error(1)
}
func (m *MockRentRequestRepo) UpdateFields(ctx context.Context, req *domain.RentRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}
func (m *MockRentRequestRepo) Transition(ctx context.Context, p repository.TransitionParams) (*domain.RentRequest, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RentRequest), args.Error(1)
}
func (m *MockRentRequestRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockRentRequestRepo) List(ctx context.Context, f domain.RequestFilter) ([]domain.RentRequest, int32, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int32), args.Error(2)
	}
	return args.Get(0).([]domain.RentRequest), args.Get(1).(int32), args.Error(2)
}
func (m *MockRentRequestRepo) ListHistory(ctx context.Context, requestID int32) ([]domain.StatusHistoryEntry, error) {
	args := m.Called(ctx, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StatusHistoryEntry), args.Error(1)
}
func (m *MockRentRequestRepo) FindOpenDuplicate(ctx context.Context, email string, vehicleID int32, start, end time.Time, since time.Time) (*domain.RentRequest, error) {
	args := m.Called(ctx, email, vehicleID, start, end, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RentRequest), args.Error(1)
}
func (m *MockRentRequestRepo) ListStale(ctx context.Context, cutoff time.Time) ([]domain.RentRequest, error) {
	args := m.Called(ctx, cutoff)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RentRequest), args.Error(1)
}

// MockBookingRepo
type MockBookingRepo struct {
	mock.Mock
}

func (m *MockBookingRepo) ListOccupying(ctx context.Context, vehicleID int32, start, end time.Time, excludeRequestID int32) ([]domain.Booking, error) {
	args := m.Called(ctx, vehicleID, start, end, excludeRequestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}
func (m *MockBookingRepo) ListBlocking(ctx context.Context, vehicleID int32, start, end time.Time, excludeRequestID int32) ([]domain.Booking, error) {
	args := m.Called(ctx, vehicleID, start, end, excludeRequestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

// MockVehicleRepo
type MockVehicleRepo struct {
	mock.Mock
}

func (m *MockVehicleRepo) GetByID(ctx context.Context, id int32) (*domain.Vehicle, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vehicle), args.Error(1)
}
func (m *MockVehicleRepo) List(ctx context.Context) ([]domain.Vehicle, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Vehicle), args.Error(1)
}

// MockAdminRepo
type MockAdminRepo struct {
	mock.Mock
}

func (m *MockAdminRepo) GetByID(ctx context.Context, id int32) (*domain.Admin, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Admin), args.Error(1)
}
func (m *MockAdminRepo) GetByEmail(ctx context.Context, email string) (*domain.Admin, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Admin), args.Error(1)
}
func (m *MockAdminRepo) ListEmails(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// MockStatisticsRepo
type MockStatisticsRepo struct {
	mock.Mock
}

func (m *MockStatisticsRepo) CountByStatus(ctx context.Context) (map[domain.RequestStatus]int64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[domain.RequestStatus]int64), args.Error(1)
}
func (m *MockStatisticsRepo) CountByMonth(ctx context.Context) ([]domain.MonthlyCount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MonthlyCount), args.Error(1)
}
func (m *MockStatisticsRepo) TopVehicles(ctx context.Context, limit int32) ([]domain.VehicleRequestCount, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.VehicleRequestCount), args.Error(1)
}
func (m *MockStatisticsRepo) RecentRequests(ctx context.Context, limit int32) ([]domain.RentRequest, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RentRequest), args.Error(1)
}

// MockAvailability
type MockAvailability struct {
	mock.Mock
}

func (m *MockAvailability) Check(ctx context.Context, vehicleID int32, start, end time.Time, excludeRequestID int32) (*domain.AvailabilityResult, error) {
	args := m.Called(ctx, vehicleID, start, end, excludeRequestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AvailabilityResult), args.Error(1)
}
func (m *MockAvailability) CheckBlocking(ctx context.Context, vehicleID int32, start, end time.Time, excludeRequestID int32) (*domain.AvailabilityResult, error) {
	args := m.Called(ctx, vehicleID, start, end, excludeRequestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AvailabilityResult), args.Error(1)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendClientConfirmation(ctx context.Context, req *domain.RentRequest, vehicle *domain.Vehicle) error {
	args := m.Called(ctx, req, vehicle)
	return args.Error(0)
}
func (m *MockEmailService) SendAdminNotification(ctx context.Context, adminEmail string, req *domain.RentRequest, vehicle *domain.Vehicle) error {
	args := m.Called(ctx, adminEmail, req, vehicle)
	return args.Error(0)
}
func (m *MockEmailService) SendStatusUpdate(ctx context.Context, req *domain.RentRequest, vehicle *domain.Vehicle) error {
	args := m.Called(ctx, req, vehicle)
	return args.Error(0)
}
func (m *MockEmailService) SendPendingSummary(ctx context.Context, adminEmail string, pending []domain.RentRequest, vehicles map[int32]domain.Vehicle) error {
	args := m.Called(ctx, adminEmail, pending, vehicles)
	return args.Error(0)
}
