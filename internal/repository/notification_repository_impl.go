package repository

import (
	"homecare-booking-api/internal/domain/entity"
	domainRepo "homecare-booking-api/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type notificationRepository struct{}

func NewNotificationRepository() domainRepo.NotificationRepository {
	return &notificationRepository{}
}

func (r *notificationRepository) Create(db *gorm.DB, notification *entity.Notification) error {
	return db.Create(notification).Error
}

func (r *notificationRepository) FindByUser(db *gorm.DB, userUUID uuid.UUID) ([]entity.Notification, error) {
	var notifications []entity.Notification
	err := db.Where("user_uuid = ?", userUUID).
		Order("created_at DESC").
		Find(&notifications).Error
	if err != nil {
		return nil, err
	}
	return notifications, nil
}

// MarkRead flips is_read for the user's own notification only.
// Returns affected rows: 0 means not found or not owned.
func (r *notificationRepository) MarkRead(db *gorm.DB, id int64, userUUID uuid.UUID) (int64, error) {
	result := db.Model(&entity.Notification{}).
		Where("id = ? AND user_uuid = ?", id, userUUID).
		Update("is_read", true)
	return result.RowsAffected, result.Error
}
