package usecase

import (
	"context"

	"homecare-booking-api/internal/converter"
	"homecare-booking-api/internal/delivery/dto"
	"homecare-booking-api/internal/domain/entity"
	"homecare-booking-api/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// NotificationUsecase exposes the in-app notification rows the engine writes
type NotificationUsecase interface {
	GetMyNotifications(ctx context.Context, actor entity.Actor) (*dto.NotificationListResponse, error)
	MarkRead(ctx context.Context, actor entity.Actor, notificationID int64) error
}

type notificationUsecase struct {
	db               *gorm.DB
	log              *logrus.Logger
	notificationRepo repository.NotificationRepository
}

func NewNotificationUsecase(db *gorm.DB, log *logrus.Logger, notificationRepo repository.NotificationRepository) NotificationUsecase {
	return &notificationUsecase{
		db:               db,
		log:              log,
		notificationRepo: notificationRepo,
	}
}

func (u *notificationUsecase) GetMyNotifications(ctx context.Context, actor entity.Actor) (*dto.NotificationListResponse, error) {
	notifications, err := u.notificationRepo.FindByUser(u.db.WithContext(ctx), actor.UUID)
	if err != nil {
		u.log.Warnf("Failed to find notifications for user %s: %+v", actor.UUID, err)
		return nil, err
	}

	unread := 0
	for _, n := range notifications {
		if !n.IsRead {
			unread++
		}
	}

	return &dto.NotificationListResponse{
		Notifications: converter.NotificationsToResponses(notifications),
		Unread:        unread,
		Total:         len(notifications),
	}, nil
}

func (u *notificationUsecase) MarkRead(ctx context.Context, actor entity.Actor, notificationID int64) error {
	affected, err := u.notificationRepo.MarkRead(u.db.WithContext(ctx), notificationID, actor.UUID)
	if err != nil {
		u.log.Warnf("Failed to mark notification %d read for user %s: %+v", notificationID, actor.UUID, err)
		return err
	}
	if affected == 0 {
		return ErrNotificationNotFound
	}
	return nil
}
