package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"rentaldesk-backend/internal/domain"
	"rentaldesk-backend/internal/security"
	"rentaldesk-backend/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockRequestService struct {
	mock.Mock
}

func (m *MockRequestService) Create(ctx context.Context, in service.CreateRequestInput) (*domain.RentRequest, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RentRequest), args.Error(1)
}
func (m *MockRequestService) Get(ctx context.Context, id int32) (*domain.RentRequest, []domain.StatusHistoryEntry, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.RentRequest), args.Get(1).([]domain.StatusHistoryEntry), args.Error(2)
}
func (m *MockRequestService) GetByCode(ctx context.Context, code, clientEmail string) (*domain.RentRequest, error) {
	args := m.Called(ctx, code, clientEmail)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RentRequest), args.Error(1)
}
func (m *MockRequestService) List(ctx context.Context, f domain.RequestFilter) ([]domain.RentRequest, int32, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int32), args.Error(2)
	}
	return args.Get(0).([]domain.RentRequest), args.Get(1).(int32), args.Error(2)
}
func (m *MockRequestService) Update(ctx context.Context, id int32, in service.UpdateRequestInput, actor int32) (*domain.RentRequest, error) {
	args := m.Called(ctx, id, in, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RentRequest), args.Error(1)
}
func (m *MockRequestService) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockAvailabilityService struct {
	mock.Mock
}

func (m *MockAvailabilityService) Check(ctx context.Context, vehicleID int32, start, end time.Time, excludeRequestID int32) (*domain.AvailabilityResult, error) {
	args := m.Called(ctx, vehicleID, start, end, excludeRequestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AvailabilityResult), args.Error(1)
}
func (m *MockAvailabilityService) CheckBlocking(ctx context.Context, vehicleID int32, start, end time.Time, excludeRequestID int32) (*domain.AvailabilityResult, error) {
	args := m.Called(ctx, vehicleID, start, end, excludeRequestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AvailabilityResult), args.Error(1)
}

type MockStatisticsService struct {
	mock.Mock
}

func (m *MockStatisticsService) Get(ctx context.Context) (*domain.RentRequestStatistics, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RentRequestStatistics), args.Error(1)
}

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (string, *domain.Admin, error) {
	args := m.Called(ctx, email, password)
	if args.Get(1) == nil {
		return args.String(0), nil, args.Error(2)
	}
	return args.String(0), args.Get(1).(*domain.Admin), args.Error(2)
}

type MockVehicleReader struct {
	mock.Mock
}

func (m *MockVehicleReader) GetByID(ctx context.Context, id int32) (*domain.Vehicle, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vehicle), args.Error(1)
}
func (m *MockVehicleReader) List(ctx context.Context) ([]domain.Vehicle, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Vehicle), args.Error(1)
}

type routerFixture struct {
	requestSvc *MockRequestService
	availSvc   *MockAvailabilityService
	statsSvc   *MockStatisticsService
	authSvc    *MockAuthService
	vehicles   *MockVehicleReader
	tokens     security.TokenManager
	router     http.Handler
}

func newRouterFixture() *routerFixture {
	f := &routerFixture{
		requestSvc: new(MockRequestService),
		availSvc:   new(MockAvailabilityService),
		statsSvc:   new(MockStatisticsService),
		authSvc:    new(MockAuthService),
		vehicles:   new(MockVehicleReader),
		tokens:     security.NewTokenManager("test-secret-test-secret-test-secret", 60),
	}
	requestHandler := NewRentRequestHandler(f.requestSvc, f.availSvc)
	adminHandler := NewAdminHandler(f.requestSvc, f.statsSvc, f.authSvc)
	vehicleHandler := NewVehicleHandler(f.vehicles)
	f.router = NewRouter(requestHandler, adminHandler, vehicleHandler, f.tokens)
	return f
}

func (f *routerFixture) do(t *testing.T, method, target string, body interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, target, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func (f *routerFixture) adminToken(t *testing.T) string {
	t.Helper()
	token, err := f.tokens.GenerateAccessToken(3, "admin@test.com")
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	return token
}

func TestRouter_Healthz(t *testing.T) {
	f := newRouterFixture()
	rec := f.do(t, http.MethodGet, "/healthz", nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCreateRequestEndpoint(t *testing.T) {
	payload := map[string]interface{}{
		"client_name":  "Maria Lopez",
		"client_email": "maria@test.com",
		"client_phone": "+54911555000",
		"vehicle_id":   7,
		"start_date":   "2026-10-01",
		"end_date":     "2026-10-06",
		"message":      "weekend trip",
	}

	t.Run("Created", func(t *testing.T) {
		f := newRouterFixture()
		f.requestSvc.On("Create", mock.Anything, mock.MatchedBy(func(in service.CreateRequestInput) bool {
			return in.VehicleID == 7 &&
				in.StartDate.Equal(time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)) &&
				in.EndDate.Equal(time.Date(2026, 10, 6, 0, 0, 0, 0, time.UTC))
		})).Return(&domain.RentRequest{ID: 1, Code: "RB-ABC12345", Status: domain.RequestStatusPending}, nil).Once()

		rec := f.do(t, http.MethodPost, "/api/requests", payload, "")
		assert.Equal(t, http.StatusCreated, rec.Code)

		var got domain.RentRequest
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, "RB-ABC12345", got.Code)
		f.requestSvc.AssertExpectations(t)
	})

	t.Run("MalformedBody", func(t *testing.T) {
		f := newRouterFixture()
		req := httptest.NewRequest(http.MethodPost, "/api/requests", bytes.NewBufferString("{not json"))
		rec := httptest.NewRecorder()
		f.router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("MissingFields", func(t *testing.T) {
		f := newRouterFixture()
		rec := f.do(t, http.MethodPost, "/api/requests", map[string]interface{}{"client_name": "x"}, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		f.requestSvc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("BadDateFormat", func(t *testing.T) {
		f := newRouterFixture()
		bad := map[string]interface{}{}
		for k, v := range payload {
			bad[k] = v
		}
		bad["start_date"] = "01/10/2026"
		rec := f.do(t, http.MethodPost, "/api/requests", bad, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestGetRequestByCodeEndpoint(t *testing.T) {
	t.Run("RequiresEmail", func(t *testing.T) {
		f := newRouterFixture()
		rec := f.do(t, http.MethodGet, "/api/requests/RB-ABC12345", nil, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("NotFoundOnMismatch", func(t *testing.T) {
		f := newRouterFixture()
		f.requestSvc.On("GetByCode", mock.Anything, "RB-ABC12345", "other@test.com").
			Return(nil, &domain.NotFoundError{Resource: "rent request", ID: "RB-ABC12345"}).Once()

		rec := f.do(t, http.MethodGet, "/api/requests/RB-ABC12345?email=other@test.com", nil, "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("Found", func(t *testing.T) {
		f := newRouterFixture()
		f.requestSvc.On("GetByCode", mock.Anything, "RB-ABC12345", "maria@test.com").
			Return(&domain.RentRequest{ID: 1, Code: "RB-ABC12345"}, nil).Once()

		rec := f.do(t, http.MethodGet, "/api/requests/RB-ABC12345?email=maria@test.com", nil, "")
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestAvailabilityEndpoint(t *testing.T) {
	f := newRouterFixture()
	start := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 10, 6, 0, 0, 0, 0, time.UTC)

	f.availSvc.On("Check", mock.Anything, int32(7), start, end, int32(0)).
		Return(&domain.AvailabilityResult{VehicleID: 7, IsAvailable: true}, nil).Once()

	rec := f.do(t, http.MethodGet, "/api/availability?vehicle_id=7&start_date=2026-10-01&end_date=2026-10-06", nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)

	var result domain.AvailabilityResult
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.True(t, result.IsAvailable)
	f.availSvc.AssertExpectations(t)
}

func TestAdminEndpointsRequireToken(t *testing.T) {
	f := newRouterFixture()

	for _, target := range []string{"/api/admin/requests", "/api/admin/statistics"} {
		rec := f.do(t, http.MethodGet, target, nil, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code, target)
	}

	rec := f.do(t, http.MethodGet, "/api/admin/requests", nil, "garbage-token")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUpdateRequestEndpoint(t *testing.T) {
	statusOf := func(s string) map[string]interface{} {
		return map[string]interface{}{"status": s, "notes": "reviewed by phone"}
	}

	t.Run("ActorComesFromToken", func(t *testing.T) {
		f := newRouterFixture()
		approved := &domain.RentRequest{ID: 1, Status: domain.RequestStatusApproved}
		f.requestSvc.On("Update", mock.Anything, int32(1), mock.MatchedBy(func(in service.UpdateRequestInput) bool {
			return in.Status != nil && *in.Status == domain.RequestStatusApproved && in.Notes == "reviewed by phone"
		}), int32(3)).Return(approved, nil).Once()

		rec := f.do(t, http.MethodPatch, "/api/admin/requests/1", statusOf("APPROVED"), f.adminToken(t))
		assert.Equal(t, http.StatusOK, rec.Code)
		f.requestSvc.AssertExpectations(t)
	})

	t.Run("InvalidTransitionIs422", func(t *testing.T) {
		f := newRouterFixture()
		f.requestSvc.On("Update", mock.Anything, int32(1), mock.Anything, int32(3)).
			Return(nil, &domain.InvalidTransitionError{From: domain.RequestStatusConfirmed, To: domain.RequestStatusPending}).Once()

		rec := f.do(t, http.MethodPatch, "/api/admin/requests/1", statusOf("PENDING"), f.adminToken(t))
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

		var resp map[string]interface{}
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "CONFIRMED", resp["from"])
		assert.Equal(t, "PENDING", resp["to"])
	})

	t.Run("ConflictIs409WithBookings", func(t *testing.T) {
		f := newRouterFixture()
		conflict := domain.Booking{Kind: domain.BookingKindContract, ID: 5, Reference: "CT-100", VehicleID: 7}
		f.requestSvc.On("Update", mock.Anything, int32(1), mock.Anything, int32(3)).
			Return(nil, &domain.ConflictError{VehicleID: 7, Conflicts: []domain.Booking{conflict}}).Once()

		rec := f.do(t, http.MethodPatch, "/api/admin/requests/1", statusOf("APPROVED"), f.adminToken(t))
		assert.Equal(t, http.StatusConflict, rec.Code)

		var resp errorResponse
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Len(t, resp.Conflicts, 1)
		assert.Equal(t, "CT-100", resp.Conflicts[0].Reference)
	})

	t.Run("ForbiddenIs403", func(t *testing.T) {
		f := newRouterFixture()
		f.requestSvc.On("Update", mock.Anything, int32(1), mock.Anything, int32(3)).
			Return(nil, &domain.ForbiddenError{Reason: "a confirmed request cannot be modified"}).Once()

		rec := f.do(t, http.MethodPatch, "/api/admin/requests/1", map[string]interface{}{"admin_notes": "x"}, f.adminToken(t))
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}

func TestDeleteRequestEndpoint(t *testing.T) {
	f := newRouterFixture()
	f.requestSvc.On("Delete", mock.Anything, int32(4)).Return(nil).Once()

	rec := f.do(t, http.MethodDelete, "/api/admin/requests/4", nil, f.adminToken(t))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	f.requestSvc.AssertExpectations(t)
}

func TestListRequestsEndpoint(t *testing.T) {
	f := newRouterFixture()
	f.requestSvc.On("List", mock.Anything, mock.MatchedBy(func(filter domain.RequestFilter) bool {
		return filter.Status == domain.RequestStatusPending && filter.Limit == 20 && filter.SortField == "start_date"
	})).Return([]domain.RentRequest{{ID: 1}, {ID: 2}}, int32(2), nil).Once()

	target := fmt.Sprintf("/api/admin/requests?status=%s&limit=20&sort_by=start_date", domain.RequestStatusPending)
	rec := f.do(t, http.MethodGet, target, nil, f.adminToken(t))
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp listResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int32(2), resp.Total)
	assert.Len(t, resp.Requests, 2)
}

func TestStatisticsEndpoint(t *testing.T) {
	f := newRouterFixture()
	f.statsSvc.On("Get", mock.Anything).Return(&domain.RentRequestStatistics{
		Total:    3,
		ByStatus: map[domain.RequestStatus]int64{domain.RequestStatusPending: 3},
	}, nil).Once()

	rec := f.do(t, http.MethodGet, "/api/admin/statistics", nil, f.adminToken(t))
	assert.Equal(t, http.StatusOK, rec.Code)

	var stats domain.RentRequestStatistics
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, int64(3), stats.Total)
}
