package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"rentaldesk-backend/internal/domain"
	"rentaldesk-backend/internal/repository"
)

// Advisory lock class for vehicle calendars. Paired with the vehicle id in
// pg_advisory_xact_lock so approval transitions for the same vehicle
// serialize at the database.
const vehicleCalendarLockClass = 4101

const rentRequestColumns = `id, code, client_name, client_email, client_phone, vehicle_id, start_date, end_date, message, status, is_approvable, admin_notes, reviewed_by, reviewed_at, created_on, updated_on`

type rentRequestRepository struct {
	db *sql.DB
}

func NewRentRequestRepository(db *sql.DB) repository.RentRequestRepository {
	return &rentRequestRepository{db: db}
}

func scanRentRequest(row interface {
	Scan(dest ...interface{}) error
}) (*domain.RentRequest, error) {
	req := &domain.RentRequest{}
	err := row.Scan(&req.ID, &req.Code, &req.ClientName, &req.ClientEmail, &req.ClientPhone,
		&req.VehicleID, &req.StartDate, &req.EndDate, &req.Message, &req.Status,
		&req.IsApprovable, &req.AdminNotes, &req.ReviewedBy, &req.ReviewedAt,
		&req.CreatedOn, &req.UpdatedOn)
	if err != nil {
		return nil, err
	}
	return req, nil
}

func (r *rentRequestRepository) Create(ctx context.Context, req *domain.RentRequest) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	query := `INSERT INTO rent_requests (code, client_name, client_email, client_phone, vehicle_id, start_date, end_date, message, status, is_approvable, admin_notes, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, '', $11, $12) RETURNING id`
	err = tx.QueryRowContext(ctx, query,
		req.Code, req.ClientName, req.ClientEmail, req.ClientPhone, req.VehicleID,
		req.StartDate, req.EndDate, req.Message, req.Status, req.IsApprovable, now, now,
	).Scan(&req.ID)
	if err != nil {
		return err
	}

	history := `INSERT INTO request_status_history (request_id, from_status, to_status, changed_by, notes, created_on)
	            VALUES ($1, NULL, $2, NULL, $3, $4)`
	if _, err := tx.ExecContext(ctx, history, req.ID, req.Status, "request submitted", now); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	req.CreatedOn = now
	req.UpdatedOn = now
	return nil
}

func (r *rentRequestRepository) GetByID(ctx context.Context, id int32) (*domain.RentRequest, error) {
	query := fmt.Sprintf(`SELECT %s FROM rent_requests WHERE id = $1`, rentRequestColumns)
	req, err := scanRentRequest(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &domain.NotFoundError{Resource: "rent request", ID: fmt.Sprint(id)}
	}
	return req, err
}

func (r *rentRequestRepository) GetByCode(ctx context.Context, code string) (*domain.RentRequest, error) {
	query := fmt.Sprintf(`SELECT %s FROM rent_requests WHERE code = $1`, rentRequestColumns)
	req, err := scanRentRequest(r.db.QueryRowContext(ctx, query, code))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &domain.NotFoundError{Resource: "rent request", ID: code}
	}
	return req, err
}

func (r *rentRequestRepository) UpdateFields(ctx context.Context, req *domain.RentRequest) error {
	query := `UPDATE rent_requests SET client_name=$1, client_email=$2, client_phone=$3, message=$4, admin_notes=$5, is_approvable=$6, updated_on=$7 WHERE id=$8`
	res, err := r.db.ExecContext(ctx, query,
		req.ClientName, req.ClientEmail, req.ClientPhone, req.Message,
		req.AdminNotes, req.IsApprovable, time.Now().UTC(), req.ID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return &domain.NotFoundError{Resource: "rent request", ID: fmt.Sprint(req.ID)}
	}
	return nil
}

// Transition applies a validated status change inside one transaction. The
// current row is re-read under FOR UPDATE so a concurrent transition is
// detected, and when EnforceAvailability is set a per-vehicle advisory lock
// plus an overlap re-scan make the check-then-act atomic.
func (r *rentRequestRepository) Transition(ctx context.Context, p repository.TransitionParams) (*domain.RentRequest, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	query := fmt.Sprintf(`SELECT %s FROM rent_requests WHERE id = $1 FOR UPDATE`, rentRequestColumns)
	req, err := scanRentRequest(tx.QueryRowContext(ctx, query, p.RequestID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &domain.NotFoundError{Resource: "rent request", ID: fmt.Sprint(p.RequestID)}
	}
	if err != nil {
		return nil, err
	}

	// The caller validated the transition against the status it loaded. If a
	// concurrent writer moved the request since, that validation is stale.
	if req.Status != p.FromStatus {
		return nil, &domain.InvalidTransitionError{From: req.Status, To: p.ToStatus}
	}

	if p.EnforceAvailability {
		if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1, $2)`, vehicleCalendarLockClass, req.VehicleID); err != nil {
			return nil, err
		}
		conflicts, err := listBlockingTx(ctx, tx, req.VehicleID, req.StartDate, req.EndDate, req.ID)
		if err != nil {
			return nil, err
		}
		if len(conflicts) > 0 {
			return nil, &domain.ConflictError{VehicleID: req.VehicleID, Conflicts: conflicts}
		}
	}

	now := time.Now().UTC()
	update := `UPDATE rent_requests SET status=$1, reviewed_by=$2, reviewed_at=$3, updated_on=$3, admin_notes=COALESCE($4, admin_notes) WHERE id=$5`
	if _, err := tx.ExecContext(ctx, update, p.ToStatus, p.Actor, now, p.AdminNotes, req.ID); err != nil {
		return nil, err
	}

	history := `INSERT INTO request_status_history (request_id, from_status, to_status, changed_by, notes, created_on)
	            VALUES ($1, $2, $3, $4, $5, $6)`
	if _, err := tx.ExecContext(ctx, history, req.ID, req.Status, p.ToStatus, p.Actor, p.Notes, now); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	req.Status = p.ToStatus
	req.ReviewedBy = p.Actor
	req.ReviewedAt = &now
	req.UpdatedOn = now
	if p.AdminNotes != nil {
		req.AdminNotes = *p.AdminNotes
	}
	return req, nil
}

func (r *rentRequestRepository) Delete(ctx context.Context, id int32) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM rent_requests WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return &domain.NotFoundError{Resource: "rent request", ID: fmt.Sprint(id)}
	}
	return nil
}

func (r *rentRequestRepository) List(ctx context.Context, f domain.RequestFilter) ([]domain.RentRequest, int32, error) {
	query := fmt.Sprintf(`SELECT %s FROM rent_requests WHERE 1=1`, rentRequestColumns)
	args := []interface{}{}
	argIdx := 1

	if f.Status != "" {
		query += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, f.Status)
		argIdx++
	}
	if f.ClientEmail != "" {
		query += fmt.Sprintf(" AND client_email = $%d", argIdx)
		args = append(args, f.ClientEmail)
		argIdx++
	}
	if f.VehicleID != 0 {
		query += fmt.Sprintf(" AND vehicle_id = $%d", argIdx)
		args = append(args, f.VehicleID)
		argIdx++
	}
	if f.StartAfter != nil {
		query += fmt.Sprintf(" AND start_date >= $%d", argIdx)
		args = append(args, *f.StartAfter)
		argIdx++
	}
	if f.EndBefore != nil {
		query += fmt.Sprintf(" AND end_date <= $%d", argIdx)
		args = append(args, *f.EndBefore)
		argIdx++
	}

	var count int32
	countQuery := "SELECT count(*) FROM (" + query + ") AS sub"
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	sortField := f.SortField
	if !domain.SortableRequestFields[sortField] {
		sortField = "created_on"
	}
	sortOrder := "DESC"
	if f.SortOrder == "asc" {
		sortOrder = "ASC"
	}
	limit := f.Limit
	if limit <= 0 {
		limit = 50
	}
	query += fmt.Sprintf(" ORDER BY %s %s LIMIT $%d OFFSET $%d", sortField, sortOrder, argIdx, argIdx+1)
	args = append(args, limit, f.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var requests []domain.RentRequest
	for rows.Next() {
		req, err := scanRentRequest(rows)
		if err != nil {
			return nil, 0, err
		}
		requests = append(requests, *req)
	}
	return requests, count, rows.Err()
}

func (r *rentRequestRepository) ListHistory(ctx context.Context, requestID int32) ([]domain.StatusHistoryEntry, error) {
	query := `SELECT id, request_id, from_status, to_status, changed_by, notes, created_on
	          FROM request_status_history WHERE request_id = $1 ORDER BY created_on, id`
	rows, err := r.db.QueryContext(ctx, query, requestID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.StatusHistoryEntry
	for rows.Next() {
		var e domain.StatusHistoryEntry
		if err := rows.Scan(&e.ID, &e.RequestID, &e.FromStatus, &e.ToStatus, &e.ChangedBy, &e.Notes, &e.CreatedOn); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *rentRequestRepository) FindOpenDuplicate(ctx context.Context, email string, vehicleID int32, start, end time.Time, since time.Time) (*domain.RentRequest, error) {
	query := fmt.Sprintf(`SELECT %s FROM rent_requests
	          WHERE client_email = $1 AND vehicle_id = $2
	            AND status <> 'REJECTED'
	            AND start_date < $4 AND end_date > $3
	            AND created_on >= $5
	          ORDER BY created_on DESC LIMIT 1`, rentRequestColumns)
	req, err := scanRentRequest(r.db.QueryRowContext(ctx, query, email, vehicleID, start, end, since))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return req, err
}

func (r *rentRequestRepository) ListStale(ctx context.Context, cutoff time.Time) ([]domain.RentRequest, error) {
	query := fmt.Sprintf(`SELECT %s FROM rent_requests
	          WHERE status IN ('PENDING', 'REVIEWED') AND start_date <= $1
	          ORDER BY start_date, id`, rentRequestColumns)
	rows, err := r.db.QueryContext(ctx, query, cutoff)
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
