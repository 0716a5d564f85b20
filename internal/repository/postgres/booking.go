package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"rentaldesk-backend/internal/domain"
	"rentaldesk-backend/internal/repository"
)

type bookingRepository struct {
	db *sql.DB
}

func NewBookingRepository(db *sql.DB) repository.BookingRepository {
	return &bookingRepository{db: db}
}

// bookingScanQuery unions contracts and rent requests into the common booking
// shape; the request status predicate is the only thing that differs between
// the two scans. Overlap is half-open: start_date < range end AND end_date >
// range start, so back-to-back bookings sharing a boundary day do not collide.
const bookingScanQuery = `
	SELECT 'CONTRACT' AS kind, c.id, c.code, c.vehicle_id, c.start_date, c.end_date, c.status, c.client_name
	FROM contracts c
	WHERE c.vehicle_id = $1 AND c.status <> 'CANCELLED'
	  AND c.start_date < $3 AND c.end_date > $2
	UNION ALL
	SELECT 'RENT_REQUEST' AS kind, r.id, r.code, r.vehicle_id, r.start_date, r.end_date, r.status, r.client_name
	FROM rent_requests r
	WHERE r.vehicle_id = $1 AND %s
	  AND r.start_date < $3 AND r.end_date > $2
	  AND ($4 = 0 OR r.id <> $4)
	ORDER BY start_date, kind, id`

var (
	// occupyingQuery is the informational scan: every request still on the
	// table occupies the calendar, so admins see all overlapping inquiries.
	occupyingQuery = fmt.Sprintf(bookingScanQuery, `r.status <> 'REJECTED'`)
	// blockingQuery is the enforcement scan: only committed occupancy blocks
	// an approval. Open requests (PENDING/REVIEWED/CONTACTED) may overlap one
	// another; whichever is approved first wins the dates.
	blockingQuery = fmt.Sprintf(bookingScanQuery, `r.status IN ('APPROVED', 'CONFIRMED')`)
)

type querier interface {
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
}

func scanBookings(ctx context.Context, q querier, query string, vehicleID int32, start, end time.Time, excludeRequestID int32) ([]domain.Booking, error) {
	rows, err := q.QueryContext(ctx, query, vehicleID, start, end, excludeRequestID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []domain.Booking
	for rows.Next() {
		var b domain.Booking
		if err := rows.Scan(&b.Kind, &b.ID, &b.Reference, &b.VehicleID, &b.StartDate, &b.EndDate, &b.Status, &b.ClientName); err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

// listBlockingTx runs the enforcement scan inside an open transaction, used by
// the transition path to re-check availability under the vehicle lock.
func listBlockingTx(ctx context.Context, tx *sql.Tx, vehicleID int32, start, end time.Time, excludeRequestID int32) ([]domain.Booking, error) {
	return scanBookings(ctx, tx, blockingQuery, vehicleID, start, end, excludeRequestID)
}

func (r *bookingRepository) ListOccupying(ctx context.Context, vehicleID int32, start, end time.Time, excludeRequestID int32) ([]domain.Booking, error) {
	return scanBookings(ctx, r.db, occupyingQuery, vehicleID, start, end, excludeRequestID)
}

func (r *bookingRepository) ListBlocking(ctx context.Context, vehicleID int32, start, end time.Time, excludeRequestID int32) ([]domain.Booking, error) {
	return scanBookings(ctx, r.db, blockingQuery, vehicleID, start, end, excludeRequestID)
}
