package domain

import "time"

type VehicleStatus string

const (
	VehicleStatusActive  VehicleStatus = "ACTIVE"
	VehicleStatusRetired VehicleStatus = "RETIRED"
)

// Vehicle is a rentable unit of the fleet. Rent requests reference vehicles
// by id only.
type Vehicle struct {
	ID               int32         `json:"id"`
	Make             string        `json:"make"`
	Model            string        `json:"model"`
	PlateNumber      string        `json:"plate_number"`
	PricePerDayCents int32         `json:"price_per_day_cents"`
	Status           VehicleStatus `json:"status"`
	CreatedOn        time.Time     `json:"created_on"`
}

// DisplayName is the label used in client-facing emails and conflict reports.
func (v Vehicle) DisplayName() string {
	return v.Make + " " + v.Model
}

type ContractStatus string

const (
	ContractStatusActive    ContractStatus = "ACTIVE"
	ContractStatusCompleted ContractStatus = "COMPLETED"
	ContractStatusCancelled ContractStatus = "CANCELLED"
)

// Contract is a signed rental agreement. Contracts are written by a separate
// back-office flow; this system only reads them when scanning a vehicle's
// calendar.
type Contract struct {
	ID         int32          `json:"id"`
	Code       string         `json:"code"`
	VehicleID  int32          `json:"vehicle_id"`
	ClientName string         `json:"client_name"`
	StartDate  time.Time      `json:"start_date"`
	EndDate    time.Time      `json:"end_date"`
	Status     ContractStatus `json:"status"`
	CreatedOn  time.Time      `json:"created_on"`
}
