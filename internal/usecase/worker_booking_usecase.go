package usecase

import (
	"context"
	"time"

	"homecare-booking-api/internal/converter"
	"homecare-booking-api/internal/delivery/dto"
	"homecare-booking-api/internal/domain/entity"
	"homecare-booking-api/internal/domain/repository"
	"homecare-booking-api/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// WorkerBookingUsecase covers the health-worker lifecycle operations
type WorkerBookingUsecase interface {
	Accept(ctx context.Context, actor entity.Actor, bookingID uuid.UUID) (*dto.BookingResponse, error)
	Start(ctx context.Context, actor entity.Actor, bookingID uuid.UUID) (*dto.BookingResponse, error)
	GetMyAssignments(ctx context.Context, actor entity.Actor) (*dto.BookingListResponse, error)
}

type workerBookingUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	bookingRepo  repository.BookingRepository
	auditService service.AuditService
	notifier     service.BookingNotifier
}

func NewWorkerBookingUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	bookingRepo repository.BookingRepository,
	auditService service.AuditService,
	notifier service.BookingNotifier,
) WorkerBookingUsecase {
	return &workerBookingUsecase{
		db:           db,
		log:          log,
		bookingRepo:  bookingRepo,
		auditService: auditService,
		notifier:     notifier,
	}
}

// Accept confirms a Processing booking. Only the assigned worker may accept.
func (u *workerBookingUsecase) Accept(ctx context.Context, actor entity.Actor, bookingID uuid.UUID) (*dto.BookingResponse, error) {
	if !actor.IsHealthWorker() {
		return nil, ErrForbidden
	}

	booking, err := u.bookingRepo.FindByID(u.db.WithContext(ctx), bookingID)
	if err != nil {
		u.log.Warnf("Failed to find booking %s: %+v", bookingID, err)
		return nil, err
	}
	if booking == nil {
		return nil, ErrBookingNotFound
	}

	if booking.Status != entity.BookingStatusProcessing {
		return nil, ErrInvalidTransition
	}
	if !booking.AssignedTo(actor.UUID) {
		return nil, ErrNotAssignedWorker
	}

	now := time.Now().UTC()
	actorUUID := actor.UUID
	booking.Status = entity.BookingStatusConfirmed
	booking.ConfirmedAt = &now
	booking.ConfirmedByUUID = &actorUUID
	booking.UpdatedByUUID = &actorUUID

	err = u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := u.bookingRepo.Update(tx, booking); err != nil {
			return err
		}
		return u.auditService.LogTransition(tx, actor, entity.AuditActionBookingConfirm, booking, nil)
	})
	if err != nil {
		u.log.Warnf("Failed to confirm booking %s: %+v", booking.Reference, err)
		return nil, err
	}

	full := u.reload(ctx, booking)
	u.notifier.BookingConfirmed(ctx, full)

	u.log.Infof("Booking %s confirmed by worker %s", booking.Reference, actor.UUID)
	return converter.BookingToResponse(full), nil
}

// Start marks a Confirmed booking as Ongoing. Only the assigned worker may
// start it.
func (u *workerBookingUsecase) Start(ctx context.Context, actor entity.Actor, bookingID uuid.UUID) (*dto.BookingResponse, error) {
	if !actor.IsHealthWorker() {
		return nil, ErrForbidden
	}

	booking, err := u.bookingRepo.FindByID(u.db.WithContext(ctx), bookingID)
	if err != nil {
		u.log.Warnf("Failed to find booking %s: %+v", bookingID, err)
		return nil, err
	}
	if booking == nil {
		return nil, ErrBookingNotFound
	}

	if booking.Status != entity.BookingStatusConfirmed {
		return nil, ErrInvalidTransition
	}
	if !booking.AssignedTo(actor.UUID) {
		return nil, ErrNotAssignedWorker
	}

	now := time.Now().UTC()
	actorUUID := actor.UUID
	booking.Status = entity.BookingStatusOngoing
	booking.StartedAt = &now
	booking.UpdatedByUUID = &actorUUID

	err = u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := u.bookingRepo.Update(tx, booking); err != nil {
			return err
		}
		return u.auditService.LogTransition(tx, actor, entity.AuditActionBookingStart, booking, nil)
	})
	if err != nil {
		u.log.Warnf("Failed to start booking %s: %+v", booking.Reference, err)
		return nil, err
	}

	full := u.reload(ctx, booking)
	u.notifier.BookingStarted(ctx, full)

	u.log.Infof("Booking %s started by worker %s", booking.Reference, actor.UUID)
	return converter.BookingToResponse(full), nil
}

// GetMyAssignments returns all bookings assigned to the worker
func (u *workerBookingUsecase) GetMyAssignments(ctx context.Context, actor entity.Actor) (*dto.BookingListResponse, error) {
	if !actor.IsHealthWorker() {
		return nil, ErrForbidden
	}

	bookings, err := u.bookingRepo.FindByWorker(u.db.WithContext(ctx), actor.UUID)
	if err != nil {
		u.log.Warnf("Failed to find assignments for worker %s: %+v", actor.UUID, err)
		return nil, err
	}

	return &dto.BookingListResponse{
		Bookings: converter.BookingsToResponses(bookings),
		Total:    len(bookings),
	}, nil
}

func (u *workerBookingUsecase) reload(ctx context.Context, booking *entity.Booking) *entity.Booking {
	full, err := u.bookingRepo.FindByID(u.db.WithContext(ctx), booking.ID)
	if err != nil || full == nil {
		u.log.Warnf("Failed to reload booking %s: %+v", booking.ID, err)
		return booking
	}
	return full
}
