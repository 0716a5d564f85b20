package domain

// MonthlyCount is one point of the requests-per-month time series.
type MonthlyCount struct {
	Year  int   `json:"year"`
	Month int   `json:"month"`
	Count int64 `json:"count"`
}

// VehicleRequestCount ranks a vehicle by how many requests reference it.
type VehicleRequestCount struct {
	VehicleID   int32  `json:"vehicle_id"`
	Make        string `json:"make"`
	Model       string `json:"model"`
	PlateNumber string `json:"plate_number"`
	Count       int64  `json:"count"`
}

// RentRequestStatistics is the dashboard aggregate derived from request
// history. Per-status counters always sum to Total.
type RentRequestStatistics struct {
	Total       int64                   `json:"total"`
	ByStatus    map[RequestStatus]int64 `json:"by_status"`
	Monthly     []MonthlyCount          `json:"monthly"`
	TopVehicles []VehicleRequestCount   `json:"top_vehicles"`
	Recent      []RentRequest           `json:"recent"`
}
