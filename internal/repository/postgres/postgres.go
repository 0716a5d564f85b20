package postgres

import (
	"database/sql"

	"rentaldesk-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.RentRequestRepository
	repository.BookingRepository
	repository.VehicleRepository
	repository.AdminRepository
	repository.StatisticsRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                    db,
		RentRequestRepository: NewRentRequestRepository(db),
		BookingRepository:     NewBookingRepository(db),
		VehicleRepository:     NewVehicleRepository(db),
		AdminRepository:       NewAdminRepository(db),
		StatisticsRepository:  NewStatisticsRepository(db),
	}
}
