package service

import (
	"context"

	"rentaldesk-backend/internal/domain"
	"rentaldesk-backend/internal/repository"
)

type statisticsService struct {
	statsRepo repository.StatisticsRepository
	policy    Policy
}

func NewStatisticsService(statsRepo repository.StatisticsRepository, policy Policy) StatisticsService {
	return &statisticsService{
		statsRepo: statsRepo,
		policy:    policy,
	}
}

// Get assembles the dashboard aggregate. Pure read; the total is derived
// from the per-status counters so the two always reconcile.
func (s *statisticsService) Get(ctx context.Context) (*domain.RentRequestStatistics, error) {
	byStatus, err := s.statsRepo.CountByStatus(ctx)
	if err != nil {
		return nil, domain.Dependency("statistics: count by status", err)
	}

	counts := make(map[domain.RequestStatus]int64, len(domain.AllRequestStatuses))
	var total int64
	for _, status := range domain.AllRequestStatuses {
		counts[status] = byStatus[status]
		total += byStatus[status]
	}

	monthly, err := s.statsRepo.CountByMonth(ctx)
	if err != nil {
		return nil, domain.Dependency("statistics: monthly series", err)
	}

	topVehicles, err := s.statsRepo.TopVehicles(ctx, s.policy.TopVehiclesLimit)
	if err != nil {
		return nil, domain.Dependency("statistics: top vehicles", err)
	}

	recent, err := s.statsRepo.RecentRequests(ctx, s.policy.RecentRequestsLimit)
	if err != nil {
		return nil, domain.Dependency("statistics: recent requests", err)
	}

	return &domain.RentRequestStatistics{
		Total:       total,
		ByStatus:    counts,
		Monthly:     monthly,
		TopVehicles: topVehicles,
		Recent:      recent,
	}, nil
}
