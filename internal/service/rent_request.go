package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"rentaldesk-backend/internal/domain"
	"rentaldesk-backend/internal/logger"
	"rentaldesk-backend/internal/repository"

	"github.com/google/uuid"
)

type rentRequestService struct {
	requestRepo  repository.RentRequestRepository
	vehicleRepo  repository.VehicleRepository
	adminRepo    repository.AdminRepository
	availability AvailabilityService
	emailSvc     EmailService
	policy       Policy
}

func NewRentRequestService(
	requestRepo repository.RentRequestRepository,
	vehicleRepo repository.VehicleRepository,
	adminRepo repository.AdminRepository,
	availability AvailabilityService,
	emailSvc EmailService,
	policy Policy,
) RentRequestService {
	return &rentRequestService{
		requestRepo:  requestRepo,
		vehicleRepo:  vehicleRepo,
		adminRepo:    adminRepo,
		availability: availability,
		emailSvc:     emailSvc,
		policy:       policy,
	}
}

// newRequestCode builds the human-facing request code handed to clients.
// Stable for the life of the request.
func newRequestCode() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return "RB-" + suffix
}

func (s *rentRequestService) Create(ctx context.Context, in CreateRequestInput) (*domain.RentRequest, error) {
	now := time.Now().UTC()

	if !in.StartDate.Before(in.EndDate) {
		return nil, &domain.ValidationError{Field: "start_date", Reason: "start date must be before end date"}
	}
	if in.StartDate.Before(now.Add(s.policy.MinLeadTime)) {
		return nil, &domain.ValidationError{
			Field:  "start_date",
			Reason: fmt.Sprintf("start date must be at least %s in the future", s.policy.MinLeadTime),
		}
	}
	if in.EndDate.Sub(in.StartDate) > s.policy.MaxRentalSpan {
		return nil, &domain.ValidationError{
			Field:  "end_date",
			Reason: fmt.Sprintf("rental may not exceed %d days", int(s.policy.MaxRentalSpan.Hours()/24)),
		}
	}

	vehicle, err := s.vehicleRepo.GetByID(ctx, in.VehicleID)
	if err != nil {
		return nil, domain.Dependency("create request: load vehicle", err)
	}

	// Double-submission guard: the same client re-posting the same vehicle
	// and overlapping dates within the trailing window is a client retry,
	// not a new inquiry.
	dup, err := s.requestRepo.FindOpenDuplicate(ctx, in.ClientEmail, in.VehicleID, in.StartDate, in.EndDate, now.Add(-s.policy.DuplicateWindow))
	if err != nil {
		return nil, domain.Dependency("create request: duplicate check", err)
	}
	if dup != nil {
		return nil, &domain.ValidationError{
			Field:  "client_email",
			Reason: fmt.Sprintf("a request for these dates was already submitted (code %s)", dup.Code),
		}
	}

	// Conflicts do not block creation; admins resolve overlapping pending
	// requests during review. The approvable flag just surfaces the current
	// calendar state to the UI.
	result, err := s.availability.Check(ctx, in.VehicleID, in.StartDate, in.EndDate, 0)
	if err != nil {
		return nil, err
	}

	req := &domain.RentRequest{
		Code:         newRequestCode(),
		ClientName:   in.ClientName,
		ClientEmail:  in.ClientEmail,
		ClientPhone:  in.ClientPhone,
		VehicleID:    in.VehicleID,
		StartDate:    in.StartDate,
		EndDate:      in.EndDate,
		Message:      in.Message,
		Status:       domain.RequestStatusPending,
		IsApprovable: result.IsAvailable,
	}
	if err := s.requestRepo.Create(ctx, req); err != nil {
		return nil, domain.Dependency("create request: insert", err)
	}

	s.notifyCreated(req, vehicle)

	return req, nil
}

func (s *rentRequestService) Get(ctx context.Context, id int32) (*domain.RentRequest, []domain.StatusHistoryEntry, error) {
	req, err := s.requestRepo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, domain.Dependency("get request", err)
	}
	history, err := s.requestRepo.ListHistory(ctx, id)
	if err != nil {
		return nil, nil, domain.Dependency("get request: history", err)
	}
	return req, history, nil
}

func (s *rentRequestService) GetByCode(ctx context.Context, code, clientEmail string) (*domain.RentRequest, error) {
	req, err := s.requestRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, domain.Dependency("get request by code", err)
	}
	// Treat an email mismatch as not-found so the code alone cannot be used
	// to probe other clients' requests.
	if !strings.EqualFold(req.ClientEmail, clientEmail) {
		return nil, &domain.NotFoundError{Resource: "rent request", ID: code}
	}
	return req, nil
}

func (s *rentRequestService) List(ctx context.Context, f domain.RequestFilter) ([]domain.RentRequest, int32, error) {
	if f.Status != "" && !f.Status.Valid() {
		return nil, 0, &domain.ValidationError{Field: "status", Reason: fmt.Sprintf("unknown status %q", f.Status)}
	}
	if f.SortField != "" && !domain.SortableRequestFields[f.SortField] {
		return nil, 0, &domain.ValidationError{Field: "sort_by", Reason: fmt.Sprintf("cannot sort by %q", f.SortField)}
	}
	requests, total, err := s.requestRepo.List(ctx, f)
	if err != nil {
		return nil, 0, domain.Dependency("list requests", err)
	}
	return requests, total, nil
}

func (s *rentRequestService) Update(ctx context.Context, id int32, in UpdateRequestInput, actor int32) (*domain.RentRequest, error) {
	req, err := s.requestRepo.GetByID(ctx, id)
	if err != nil {
		return nil, domain.Dependency("update request: load", err)
	}

	statusChange := in.Status != nil && *in.Status != req.Status

	if statusChange {
		// The notes patch rides the transition so both land in one
		// transaction or neither does.
		return s.applyTransition(ctx, req, *in.Status, actor, in)
	}

	if req.Status.Terminal() {
		// Confirmed requests are immutable, including their notes.
		return nil, &domain.ForbiddenError{Reason: "a confirmed request cannot be modified"}
	}

	if in.AdminNotes != nil && *in.AdminNotes != req.AdminNotes {
		req.AdminNotes = *in.AdminNotes
		if err := s.requestRepo.UpdateFields(ctx, req); err != nil {
			return nil, domain.Dependency("update request: notes", err)
		}
	}

	return req, nil
}

func (s *rentRequestService) applyTransition(ctx context.Context, req *domain.RentRequest, target domain.RequestStatus, actor int32, in UpdateRequestInput) (*domain.RentRequest, error) {
	if !target.Valid() {
		return nil, &domain.ValidationError{Field: "status", Reason: fmt.Sprintf("unknown status %q", target)}
	}
	if !req.Status.CanTransitionTo(target) {
		return nil, &domain.InvalidTransitionError{From: req.Status, To: target}
	}

	enforce := target == domain.RequestStatusApproved || target == domain.RequestStatusConfirmed
	if enforce {
		// Approving or confirming a double-booked vehicle is the one thing
		// this system must never do. Only committed occupancy counts here:
		// overlapping open requests compete for the dates, and whichever is
		// approved first wins. Check here for a rich conflict report; the
		// repository re-checks under the vehicle lock at commit time.
		result, err := s.availability.CheckBlocking(ctx, req.VehicleID, req.StartDate, req.EndDate, req.ID)
		if err != nil {
			return nil, err
		}
		if !result.IsAvailable {
			return nil, &domain.ConflictError{VehicleID: req.VehicleID, Conflicts: result.Conflicts}
		}
	}

	updated, err := s.requestRepo.Transition(ctx, repository.TransitionParams{
		RequestID:           req.ID,
		FromStatus:          req.Status,
		ToStatus:            target,
		Actor:               &actor,
		Notes:               in.Notes,
		AdminNotes:          in.AdminNotes,
		EnforceAvailability: enforce,
	})
	if err != nil {
		return nil, domain.Dependency("update request: transition", err)
	}

	switch target {
	case domain.RequestStatusApproved, domain.RequestStatusRejected, domain.RequestStatusContacted:
		s.notifyStatusChange(updated)
	}

	return updated, nil
}

func (s *rentRequestService) Delete(ctx context.Context, id int32) error {
	req, err := s.requestRepo.GetByID(ctx, id)
	if err != nil {
		return domain.Dependency("delete request: load", err)
	}
	if req.Status != domain.RequestStatusPending {
		return &domain.ForbiddenError{Reason: "only pending requests may be deleted"}
	}
	if err := s.requestRepo.Delete(ctx, id); err != nil {
		return domain.Dependency("delete request", err)
	}
	return nil
}

// notifyCreated sends the client confirmation and admin notifications after
// the request is durably created. Failures are logged, never surfaced: a
// stuck mail server must not roll back a stored request.
func (s *rentRequestService) notifyCreated(req *domain.RentRequest, vehicle *domain.Vehicle) {
	go func() {
		ctx := context.Background()
		if err := s.emailSvc.SendClientConfirmation(ctx, req, vehicle); err != nil {
			logger.Warn("client confirmation email failed", "code", req.Code, "error", err)
		}
		adminEmails, err := s.adminRepo.ListEmails(ctx)
		if err != nil {
			logger.Warn("could not load admin emails for notification", "code", req.Code, "error", err)
			return
		}
		for _, email := range adminEmails {
			if err := s.emailSvc.SendAdminNotification(ctx, email, req, vehicle); err != nil {
				logger.Warn("admin notification email failed", "code", req.Code, "admin", email, "error", err)
			}
		}
	}()
}

func (s *rentRequestService) notifyStatusChange(req *domain.RentRequest) {
	go func() {
		ctx := context.Background()
		vehicle, err := s.vehicleRepo.GetByID(ctx, req.VehicleID)
		if err != nil {
			logger.Warn("could not load vehicle for status email", "code", req.Code, "error", err)
			return
		}
		if err := s.emailSvc.SendStatusUpdate(ctx, req, vehicle); err != nil {
			logger.Warn("status update email failed", "code", req.Code, "error", err)
		}
	}()
}
