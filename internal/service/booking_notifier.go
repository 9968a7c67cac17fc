package service

import (
	"context"
	"fmt"

	"homecare-booking-api/config"
	"homecare-booking-api/internal/domain/entity"
	"homecare-booking-api/internal/domain/repository"
	"homecare-booking-api/internal/infrastructure/mail"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// BookingNotifier fans out the side effects of a booking transition: in-app
// notification rows and emails per recipient. It is invoked only after the
// status write commits; every failure is logged per recipient and none of
// them propagates to the caller.
type BookingNotifier interface {
	BookingCreated(ctx context.Context, booking *entity.Booking)
	WorkerAssigned(ctx context.Context, booking *entity.Booking, previousWorker *entity.User)
	BookingConfirmed(ctx context.Context, booking *entity.Booking)
	BookingStarted(ctx context.Context, booking *entity.Booking)
	BookingCompleted(ctx context.Context, booking *entity.Booking, rating int)
	BookingCancelled(ctx context.Context, booking *entity.Booking, reason string)
}

type bookingNotifier struct {
	db            *gorm.DB
	log           *logrus.Logger
	mailer        mail.Mailer
	notifications NotificationService
	userRepo      repository.UserRepository
	mailCfg       config.MailConfig
}

func NewBookingNotifier(
	db *gorm.DB,
	log *logrus.Logger,
	mailer mail.Mailer,
	notifications NotificationService,
	userRepo repository.UserRepository,
	mailCfg config.MailConfig,
) BookingNotifier {
	return &bookingNotifier{
		db:            db,
		log:           log,
		mailer:        mailer,
		notifications: notifications,
		userRepo:      userRepo,
		mailCfg:       mailCfg,
	}
}

func (s *bookingNotifier) BookingCreated(ctx context.Context, booking *entity.Booking) {
	data := s.templateData(booking)

	s.sendMail(ctx, mail.TemplateBookingReceived, booking.Client.Email, booking, data)

	s.notifyAdmins(ctx, booking, entity.NotifBookingCreated,
		"New care request",
		fmt.Sprintf("%s requested in-home care (%s)", booking.Client.FullName, booking.Reference))
}

func (s *bookingNotifier) WorkerAssigned(ctx context.Context, booking *entity.Booking, previousWorker *entity.User) {
	data := s.templateData(booking)

	clientTemplate := mail.TemplateAssignedClient
	clientNotifType := entity.NotifBookingAssigned
	clientMessage := fmt.Sprintf("%s has been assigned to your booking %s", workerName(booking), booking.Reference)
	if previousWorker != nil {
		clientTemplate = mail.TemplateReassignedClient
		clientNotifType = entity.NotifBookingReassigned
		clientMessage = fmt.Sprintf("%s now replaces %s on your booking %s", workerName(booking), previousWorker.FullName, booking.Reference)
		data["previous_worker_name"] = previousWorker.FullName
	}

	s.notify(ctx, booking, booking.UserUUID, clientNotifType, "Health worker assigned", clientMessage)
	s.sendMail(ctx, clientTemplate, booking.Client.Email, booking, data)

	if booking.HealthWorker != nil {
		s.notify(ctx, booking, booking.HealthWorker.ID, entity.NotifBookingAssigned,
			"New care assignment",
			fmt.Sprintf("You have been assigned booking %s for %s", booking.Reference, booking.Client.FullName))
		s.sendMail(ctx, mail.TemplateAssignedWorker, booking.HealthWorker.Email, booking, data)
	}

	s.notifyAdmins(ctx, booking, entity.NotifBookingAssigned,
		"Booking awaiting confirmation",
		fmt.Sprintf("Booking %s is awaiting confirmation from %s", booking.Reference, workerName(booking)))
	s.sendMail(ctx, mail.TemplateAssignedAdmin, s.mailCfg.AdminEmail, booking, data)
}

func (s *bookingNotifier) BookingConfirmed(ctx context.Context, booking *entity.Booking) {
	data := s.templateData(booking)

	if booking.HealthWorker != nil {
		s.sendMail(ctx, mail.TemplateConfirmedWorker, booking.HealthWorker.Email, booking, data)
	}
	s.sendMail(ctx, mail.TemplateConfirmedAdmin, s.mailCfg.AdminEmail, booking, data)

	s.notifyAdmins(ctx, booking, entity.NotifBookingConfirmed,
		"Booking confirmed",
		fmt.Sprintf("%s confirmed booking %s", workerName(booking), booking.Reference))
}

func (s *bookingNotifier) BookingStarted(ctx context.Context, booking *entity.Booking) {
	data := s.templateData(booking)

	if booking.HealthWorker != nil {
		s.sendMail(ctx, mail.TemplateStartedWorker, booking.HealthWorker.Email, booking, data)
	}
	s.sendMail(ctx, mail.TemplateStartedAdmin, s.mailCfg.AdminEmail, booking, data)

	s.notifyAdmins(ctx, booking, entity.NotifBookingStarted,
		"Care started",
		fmt.Sprintf("%s started care for booking %s", workerName(booking), booking.Reference))
}

func (s *bookingNotifier) BookingCompleted(ctx context.Context, booking *entity.Booking, rating int) {
	data := s.templateData(booking)
	data["rating"] = fmt.Sprintf("%d", rating)

	s.notify(ctx, booking, booking.UserUUID, entity.NotifBookingCompleted,
		"Booking completed",
		fmt.Sprintf("Your care booking %s has been completed", booking.Reference))

	s.sendMail(ctx, mail.TemplateCompletedClient, booking.Client.Email, booking, data)
	if booking.HealthWorker != nil {
		s.sendMail(ctx, mail.TemplateCompletedWorker, booking.HealthWorker.Email, booking, data)
	}
	s.sendMail(ctx, mail.TemplateCompletedAdmin, s.mailCfg.AdminEmail, booking, data)
}

func (s *bookingNotifier) BookingCancelled(ctx context.Context, booking *entity.Booking, reason string) {
	data := s.templateData(booking)
	data["reason"] = reason

	s.notify(ctx, booking, booking.UserUUID, entity.NotifBookingCancelled,
		"Booking cancelled",
		fmt.Sprintf("Your booking %s was cancelled: %s", booking.Reference, reason))

	s.sendMail(ctx, mail.TemplateCancelledClient, booking.Client.Email, booking, data)
	s.sendMail(ctx, mail.TemplateCancelledAdmin, s.mailCfg.AdminEmail, booking, data)
}

func (s *bookingNotifier) templateData(booking *entity.Booking) map[string]string {
	data := map[string]string{
		"reference":   booking.Reference,
		"client_name": booking.Client.FullName,
		"start_date":  booking.StartDate.Format("2006-01-02"),
		"end_date":    booking.EndDate.Format("2006-01-02"),
	}
	if booking.HealthWorker != nil {
		data["worker_name"] = booking.HealthWorker.FullName
	}
	return data
}

func (s *bookingNotifier) notify(ctx context.Context, booking *entity.Booking, userUUID uuid.UUID, notifType entity.NotificationType, title, message string) {
	if err := s.notifications.Create(ctx, userUUID, notifType, title, message, entity.JSON{
		"booking_id": booking.ID.String(),
		"reference":  booking.Reference,
	}); err != nil {
		s.log.Warnf("Failed to notify user %s for booking %s: %+v", userUUID, booking.Reference, err)
	}
}

func (s *bookingNotifier) notifyAdmins(ctx context.Context, booking *entity.Booking, notifType entity.NotificationType, title, message string) {
	admins, err := s.userRepo.FindByRole(s.db.WithContext(ctx), entity.RoleIDAdmin)
	if err != nil {
		s.log.Warnf("Failed to resolve admin recipients for booking %s: %+v", booking.Reference, err)
		return
	}
	for _, admin := range admins {
		if err := s.notifications.Create(ctx, admin.ID, notifType, title, message, entity.JSON{
			"booking_id": booking.ID.String(),
			"reference":  booking.Reference,
		}); err != nil {
			s.log.Warnf("Failed to notify admin %s for booking %s: %+v", admin.ID, booking.Reference, err)
		}
	}
}

func (s *bookingNotifier) sendMail(ctx context.Context, templateID, recipient string, booking *entity.Booking, data map[string]string) {
	if recipient == "" {
		return
	}
	if err := s.mailer.Send(ctx, templateID, recipient, data); err != nil {
		s.log.Warnf("Failed to email %s for booking %s: %+v", recipient, booking.Reference, err)
	}
}

func workerName(booking *entity.Booking) string {
	if booking.HealthWorker == nil {
		return "a health worker"
	}
	return booking.HealthWorker.FullName
}
