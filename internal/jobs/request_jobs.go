package jobs

import (
	"context"
	"time"

	"rentaldesk-backend/internal/domain"
	"rentaldesk-backend/internal/logger"
	"rentaldesk-backend/internal/repository"
)

// ExpireStaleRequests rejects open requests whose start date has already
// passed without a decision. The transition goes through the same machinery
// as an admin rejection, with a nil actor marking the change as
// system-triggered.
func (jr *JobRunner) ExpireStaleRequests() {
	jr.runWithRecovery("ExpireStaleRequests", func() {
		ctx := context.Background()
		cutoff := time.Now().UTC()

		stale, err := jr.store.ListStale(ctx, cutoff)
		if err != nil {
			logger.Error("Failed to list stale requests", "error", err)
			return
		}

		count := 0
		for _, req := range stale {
			if !req.Status.CanTransitionTo(domain.RequestStatusRejected) {
				continue
			}
			_, err := jr.store.Transition(ctx, repository.TransitionParams{
				RequestID:  req.ID,
				FromStatus: req.Status,
				ToStatus:   domain.RequestStatusRejected,
				Actor:      nil,
				Notes:      "expired: start date passed without a decision",
			})
			if err != nil {
				logger.Error("Failed to expire request", "request_id", req.ID, "code", req.Code, "error", err)
				continue
			}
			count++
			logger.Debug("Expired stale request", "request_id", req.ID, "code", req.Code, "start_date", req.StartDate.Format("2006-01-02"))
		}

		logger.Info("Expired stale requests", "count", count)
	})
}

// SendPendingSummary emails every admin a digest of requests still waiting
// for review.
func (jr *JobRunner) SendPendingSummary() {
	jr.runWithRecovery("SendPendingSummary", func() {
		ctx := context.Background()

		pending, total, err := jr.store.RentRequestRepository.List(ctx, domain.RequestFilter{
			Status:    domain.RequestStatusPending,
			SortField: "created_on",
			SortOrder: "asc",
			Limit:     100,
		})
		if err != nil {
			logger.Error("Failed to list pending requests", "error", err)
			return
		}
		if total == 0 {
			logger.Info("No pending requests, skipping summary")
			return
		}

		adminEmails, err := jr.store.ListEmails(ctx)
		if err != nil {
			logger.Error("Failed to list admin emails", "error", err)
			return
		}

		vehicles := make(map[int32]domain.Vehicle)
		for _, req := range pending {
			if _, ok := vehicles[req.VehicleID]; ok {
				continue
			}
			vehicle, err := jr.store.VehicleRepository.GetByID(ctx, req.VehicleID)
			if err != nil {
				logger.Error("Failed to load vehicle for summary", "vehicle_id", req.VehicleID, "error", err)
				continue
			}
			vehicles[req.VehicleID] = *vehicle
		}

		for _, email := range adminEmails {
			if err := jr.services.Email.SendPendingSummary(ctx, email, pending, vehicles); err != nil {
				logger.Error("Failed to send pending summary", "admin", email, "error", err)
			}
		}

		logger.Info("Sent pending summary", "pending", total, "admins", len(adminEmails))
	})
}
