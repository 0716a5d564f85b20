package domain

import "time"

type RequestStatus string

const (
	RequestStatusPending   RequestStatus = "PENDING"
	RequestStatusReviewed  RequestStatus = "REVIEWED"
	RequestStatusApproved  RequestStatus = "APPROVED"
	RequestStatusRejected  RequestStatus = "REJECTED"
	RequestStatusContacted RequestStatus = "CONTACTED"
	RequestStatusConfirmed RequestStatus = "CONFIRMED"
)

// AllRequestStatuses lists every status in display order. Statistics and
// filter validation iterate over this instead of hardcoding the set.
var AllRequestStatuses = []RequestStatus{
	RequestStatusPending,
	RequestStatusReviewed,
	RequestStatusApproved,
	RequestStatusRejected,
	RequestStatusContacted,
	RequestStatusConfirmed,
}

// Valid reports whether s is one of the defined statuses.
func (s RequestStatus) Valid() bool {
	switch s {
	case RequestStatusPending, RequestStatusReviewed, RequestStatusApproved,
		RequestStatusRejected, RequestStatusContacted, RequestStatusConfirmed:
		return true
	}
	return false
}

// allowedTransitions returns the statuses reachable from s. CONFIRMED is
// terminal and returns nil. The switch is exhaustive over the status set so
// adding a status without deciding its outbound edges shows up here.
func (s RequestStatus) allowedTransitions() []RequestStatus {
	switch s {
	case RequestStatusPending:
		return []RequestStatus{RequestStatusReviewed, RequestStatusApproved, RequestStatusRejected, RequestStatusContacted}
	case RequestStatusReviewed:
		return []RequestStatus{RequestStatusPending, RequestStatusApproved, RequestStatusRejected, RequestStatusContacted}
	case RequestStatusApproved:
		return []RequestStatus{RequestStatusConfirmed, RequestStatusContacted, RequestStatusRejected}
	case RequestStatusRejected:
		return []RequestStatus{RequestStatusPending, RequestStatusReviewed}
	case RequestStatusContacted:
		return []RequestStatus{RequestStatusConfirmed, RequestStatusApproved, RequestStatusRejected}
	case RequestStatusConfirmed:
		return nil
	}
	return nil
}

// CanTransitionTo reports whether the state machine permits moving from s to
// target. Re-entrant transitions are not permitted.
func (s RequestStatus) CanTransitionTo(target RequestStatus) bool {
	for _, allowed := range s.allowedTransitions() {
		if allowed == target {
			return true
		}
	}
	return false
}

// Terminal reports whether no transition leaves s.
func (s RequestStatus) Terminal() bool {
	return len(s.allowedTransitions()) == 0
}

// RentRequest is a client-submitted inquiry to book a vehicle for a date
// range. Dates carry date-only semantics; the range is half-open
// [StartDate, EndDate).
type RentRequest struct {
	ID          int32         `json:"id"`
	Code        string        `json:"code"`
	ClientName  string        `json:"client_name"`
	ClientEmail string        `json:"client_email"`
	ClientPhone string        `json:"client_phone"`
	VehicleID   int32         `json:"vehicle_id"`
	StartDate   time.Time     `json:"start_date"`
	EndDate     time.Time     `json:"end_date"`
	Message     string        `json:"message,omitempty"`
	Status      RequestStatus `json:"status"`
	// IsApprovable reflects the availability outcome computed the last time
	// the request was written. Informational only; approval re-checks.
	IsApprovable bool       `json:"is_approvable"`
	AdminNotes   string     `json:"admin_notes,omitempty"`
	ReviewedBy   *int32     `json:"reviewed_by,omitempty"`
	ReviewedAt   *time.Time `json:"reviewed_at,omitempty"`
	CreatedOn    time.Time  `json:"created_on"`
	UpdatedOn    time.Time  `json:"updated_on"`
}

// StatusHistoryEntry is an append-only audit record of one status change.
// FromStatus is nil for the entry written at creation; ChangedBy is nil for
// system-triggered changes.
type StatusHistoryEntry struct {
	ID         int32          `json:"id"`
	RequestID  int32          `json:"request_id"`
	FromStatus *RequestStatus `json:"from_status,omitempty"`
	ToStatus   RequestStatus  `json:"to_status"`
	ChangedBy  *int32         `json:"changed_by,omitempty"`
	Notes      string         `json:"notes,omitempty"`
	CreatedOn  time.Time      `json:"created_on"`
}

// RequestFilter narrows and orders a request listing.
type RequestFilter struct {
	Status      RequestStatus
	ClientEmail string
	VehicleID   int32
	StartAfter  *time.Time
	EndBefore   *time.Time
	Limit       int32
	Offset      int32
	SortField   string // created_on, updated_on, start_date, end_date
	SortOrder   string // asc or desc
}

// SortableRequestFields whitelists the columns a listing may be ordered by.
var SortableRequestFields = map[string]bool{
	"created_on": true,
	"updated_on": true,
	"start_date": true,
	"end_date":   true,
}
