package repository

import (
	"homecare-booking-api/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NotificationRepository interface {
	Create(db *gorm.DB, notification *entity.Notification) error
	FindByUser(db *gorm.DB, userUUID uuid.UUID) ([]entity.Notification, error)
	MarkRead(db *gorm.DB, id int64, userUUID uuid.UUID) (int64, error)
}
