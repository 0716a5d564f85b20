package domain

import "time"

// BookingKind tags the origin of a calendar entry scanned by the conflict
// detector.
type BookingKind string

const (
	BookingKindContract    BookingKind = "CONTRACT"
	BookingKindRentRequest BookingKind = "RENT_REQUEST"
)

// Booking is the common shape of anything that occupies a vehicle's calendar:
// confirmed contracts and in-flight rent requests. The conflict detector
// treats both uniformly.
type Booking struct {
	Kind       BookingKind `json:"kind"`
	ID         int32       `json:"id"`
	Reference  string      `json:"reference"`
	VehicleID  int32       `json:"vehicle_id"`
	StartDate  time.Time   `json:"start_date"`
	EndDate    time.Time   `json:"end_date"`
	Status     string      `json:"status"`
	ClientName string      `json:"client_name"`
}

// Overlaps reports whether [s1,e1) and [s2,e2) intersect. Half-open
// semantics: a range ending exactly when another starts does not overlap.
func Overlaps(s1, e1, s2, e2 time.Time) bool {
	return s1.Before(e2) && s2.Before(e1)
}

// OverlapsRange reports whether the booking's range intersects [start, end).
func (b Booking) OverlapsRange(start, end time.Time) bool {
	return Overlaps(b.StartDate, b.EndDate, start, end)
}

// AvailabilityResult is the computed outcome of a conflict check. When the
// vehicle is unavailable, Conflicts holds every overlapping booking so an
// admin can resolve the clash by hand.
type AvailabilityResult struct {
	VehicleID   int32     `json:"vehicle_id"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	IsAvailable bool      `json:"is_available"`
	Conflicts   []Booking `json:"conflicts,omitempty"`
}
