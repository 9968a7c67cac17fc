package service

import (
	"context"

	"homecare-booking-api/internal/domain/entity"
	"homecare-booking-api/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// NotificationService writes in-app notification rows. Delivery is
// fire-and-forget: it runs outside the booking transaction and a failure
// never affects the committed transition.
type NotificationService interface {
	Create(ctx context.Context, userUUID uuid.UUID, notifType entity.NotificationType, title, message string, data entity.JSON) error
}

type notificationService struct {
	db               *gorm.DB
	log              *logrus.Logger
	notificationRepo repository.NotificationRepository
}

func NewNotificationService(db *gorm.DB, log *logrus.Logger, notificationRepo repository.NotificationRepository) NotificationService {
	return &notificationService{
		db:               db,
		log:              log,
		notificationRepo: notificationRepo,
	}
}

func (s *notificationService) Create(ctx context.Context, userUUID uuid.UUID, notifType entity.NotificationType, title, message string, data entity.JSON) error {
	notification := &entity.Notification{
		UserUUID: userUUID,
		Type:     notifType,
		Title:    title,
		Message:  message,
		Data:     data,
	}

	if err := s.notificationRepo.Create(s.db.WithContext(ctx), notification); err != nil {
		s.log.Warnf("Failed to create %s notification for user %s: %+v", notifType, userUUID, err)
		return err
	}

	return nil
}
