package service

import (
	"homecare-booking-api/internal/domain/entity"
	"homecare-booking-api/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type AuditService interface {
	LogTransition(tx *gorm.DB, actor entity.Actor, action string, booking *entity.Booking, extra entity.JSON) error
	LogDelete(tx *gorm.DB, actor entity.Actor, booking *entity.Booking) error
}

type auditService struct {
	log       *logrus.Logger
	auditRepo repository.AuditLogRepository
}

func NewAuditService(log *logrus.Logger, auditRepo repository.AuditLogRepository) AuditService {
	return &auditService{
		log:       log,
		auditRepo: auditRepo,
	}
}

// LogTransition records a booking status change in the same transaction as
// the change itself.
func (s *auditService) LogTransition(tx *gorm.DB, actor entity.Actor, action string, booking *entity.Booking, extra entity.JSON) error {
	metadata := entity.JSON{
		"booking_id": booking.ID.String(),
		"reference":  booking.Reference,
		"status":     string(booking.Status),
	}
	for key, value := range extra {
		metadata[key] = value
	}

	actorID := actor.UUID
	auditLog := &entity.AuditLog{
		UserID:   &actorID,
		Action:   action,
		Metadata: metadata,
	}

	if err := s.auditRepo.Create(tx, auditLog); err != nil {
		s.log.Warnf("Failed to create audit log for booking %s: %+v", booking.Reference, err)
		return err
	}

	return nil
}

// LogDelete records the removal of a booking and its line items
func (s *auditService) LogDelete(tx *gorm.DB, actor entity.Actor, booking *entity.Booking) error {
	actorID := actor.UUID
	auditLog := &entity.AuditLog{
		UserID: &actorID,
		Action: entity.AuditActionBookingDelete,
		Metadata: entity.JSON{
			"booking_id": booking.ID.String(),
			"reference":  booking.Reference,
			"status":     string(booking.Status),
		},
	}

	if err := s.auditRepo.Create(tx, auditLog); err != nil {
		s.log.Warnf("Failed to create audit log for booking %s: %+v", booking.Reference, err)
		return err
	}

	return nil
}
