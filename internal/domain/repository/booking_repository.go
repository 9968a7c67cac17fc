package repository

import (
	"homecare-booking-api/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BookingRepository interface {
	Create(db *gorm.DB, booking *entity.Booking) error
	CreateServices(db *gorm.DB, services []entity.BookingService) error
	CreateRecurrence(db *gorm.DB, recurrence *entity.Recurrence) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Booking, error)
	FindByClient(db *gorm.DB, clientUUID uuid.UUID) ([]entity.Booking, error)
	FindByWorker(db *gorm.DB, workerUUID uuid.UUID) ([]entity.Booking, error)
	FindAll(db *gorm.DB, status *entity.BookingStatus) ([]entity.Booking, error)
	FindPendingByClient(db *gorm.DB, clientUUID uuid.UUID) (*entity.Booking, error)
	FindProcessingByWorker(db *gorm.DB, workerUUID uuid.UUID, excludeID uuid.UUID) (*entity.Booking, error)
	Update(db *gorm.DB, booking *entity.Booking) error
	DeleteServices(db *gorm.DB, bookingID uuid.UUID) error
	DeleteRecurrence(db *gorm.DB, bookingID uuid.UUID) error
	Delete(db *gorm.DB, booking *entity.Booking) error
}
