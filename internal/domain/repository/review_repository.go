package repository

import (
	"homecare-booking-api/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReviewRepository interface {
	Create(db *gorm.DB, review *entity.Review) error
	FindByBookingID(db *gorm.DB, bookingID uuid.UUID) (*entity.Review, error)
	FindByWorker(db *gorm.DB, workerUUID uuid.UUID) ([]entity.Review, error)
}
