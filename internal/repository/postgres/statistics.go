package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"rentaldesk-backend/internal/domain"
	"rentaldesk-backend/internal/repository"
)

type statisticsRepository struct {
	db *sql.DB
}

func NewStatisticsRepository(db *sql.DB) repository.StatisticsRepository {
	return &statisticsRepository{db: db}
}

func (r *statisticsRepository) CountByStatus(ctx context.Context) (map[domain.RequestStatus]int64, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT status, count(*) FROM rent_requests GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[domain.RequestStatus]int64)
	for rows.Next() {
		var status domain.RequestStatus
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}
	return counts, rows.Err()
}

func (r *statisticsRepository) CountByMonth(ctx context.Context) ([]domain.MonthlyCount, error) {
	query := `SELECT EXTRACT(YEAR FROM created_on)::int, EXTRACT(MONTH FROM created_on)::int, count(*)
	          FROM rent_requests
	          GROUP BY 1, 2
	          ORDER BY 1, 2`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var series []domain.MonthlyCount
	for rows.Next() {
		var m domain.MonthlyCount
		if err := rows.Scan(&m.Year, &m.Month, &m.Count); err != nil {
			return nil, err
		}
		series = append(series, m)
	}
	return series, rows.Err()
}

func (r *statisticsRepository) TopVehicles(ctx context.Context, limit int32) ([]domain.VehicleRequestCount, error) {
	query := `SELECT v.id, v.make, v.model, v.plate_number, count(r.id)
	          FROM vehicles v
	          JOIN rent_requests r ON r.vehicle_id = v.id
	          GROUP BY v.id, v.make, v.model, v.plate_number
	          ORDER BY count(r.id) DESC, v.id ASC
	          LIMIT $1`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var top []domain.VehicleRequestCount
	for rows.Next() {
		var vc domain.VehicleRequestCount
		if err := rows.Scan(&vc.VehicleID, &vc.Make, &vc.Model, &vc.PlateNumber, &vc.Count); err != nil {
			return nil, err
		}
		top = append(top, vc)
	}
	return top, rows.Err()
}

func (r *statisticsRepository) RecentRequests(ctx context.Context, limit int32) ([]domain.RentRequest, error) {
	query := fmt.Sprintf(`SELECT %s FROM rent_requests ORDER BY created_on DESC, id DESC LIMIT $1`, rentRequestColumns)
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []domain.RentRequest
	for rows.Next() {
		req, err := scanRentRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, *req)
	}
	return requests, rows.Err()
}
