package usecase

import (
	"context"

	"homecare-booking-api/internal/converter"
	"homecare-booking-api/internal/delivery/dto"
	"homecare-booking-api/internal/domain/entity"
	"homecare-booking-api/internal/domain/repository"
	"homecare-booking-api/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// AdminBookingUsecase covers the admin-side lifecycle operations: triage,
// completion, cancellation and deletion.
type AdminBookingUsecase interface {
	SetProcessing(ctx context.Context, actor entity.Actor, bookingID uuid.UUID, req *dto.AssignWorkerRequest) (*dto.BookingResponse, error)
	Complete(ctx context.Context, actor entity.Actor, bookingID uuid.UUID, req *dto.CompleteBookingRequest) (*dto.BookingResponse, error)
	Cancel(ctx context.Context, actor entity.Actor, bookingID uuid.UUID, req *dto.CancelBookingRequest) (*dto.BookingResponse, error)
	Delete(ctx context.Context, actor entity.Actor, bookingID uuid.UUID) error
	ListBookings(ctx context.Context, actor entity.Actor, statusFilter string) (*dto.BookingListResponse, error)
}

type adminBookingUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	bookingRepo  repository.BookingRepository
	reviewRepo   repository.ReviewRepository
	userRepo     repository.UserRepository
	auditService service.AuditService
	notifier     service.BookingNotifier
}

func NewAdminBookingUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	bookingRepo repository.BookingRepository,
	reviewRepo repository.ReviewRepository,
	userRepo repository.UserRepository,
	auditService service.AuditService,
	notifier service.BookingNotifier,
) AdminBookingUsecase {
	return &adminBookingUsecase{
		db:           db,
		log:          log,
		bookingRepo:  bookingRepo,
		reviewRepo:   reviewRepo,
		userRepo:     userRepo,
		auditService: auditService,
		notifier:     notifier,
	}
}

// SetProcessing moves a booking into Processing, optionally attaching or
// replacing the assigned health worker. The transition is re-entrant so an
// admin can reassign while a previous assignment is still unconfirmed.
//
// Flow:
// 1. Resolve booking; allow only Pending/Processing/Confirmed as the source
// 2. Resolve the supplied worker and reject if they already hold another
//    Processing booking
// 3. Detect reassignment (different worker already attached)
// 4. Write status + assignment + audit row in one transaction
// 5. Dispatch assignment side effects after commit
func (u *adminBookingUsecase) SetProcessing(ctx context.Context, actor entity.Actor, bookingID uuid.UUID, req *dto.AssignWorkerRequest) (*dto.BookingResponse, error) {
	if !actor.IsAdmin() {
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

	switch booking.Status {
	case entity.BookingStatusPending, entity.BookingStatusProcessing, entity.BookingStatusConfirmed:
	default:
		return nil, ErrInvalidTransition
	}

	var previousWorker *entity.User
	action := entity.AuditActionBookingAssign

	if req.HealthWorkerUUID != "" {
		workerUUID, err := uuid.Parse(req.HealthWorkerUUID)
		if err != nil {
			return nil, ErrWorkerNotFound
		}

		worker, err := u.userRepo.FindByID(u.db.WithContext(ctx), workerUUID)
		if err != nil {
			u.log.Warnf("Failed to find health worker %s: %+v", workerUUID, err)
			return nil, err
		}
		if worker == nil || worker.RoleID != entity.RoleIDHealthWorker {
			return nil, ErrWorkerNotFound
		}

		// A worker can await confirmation on only one booking at a time.
		blocking, err := u.bookingRepo.FindProcessingByWorker(u.db.WithContext(ctx), workerUUID, booking.ID)
		if err != nil {
			u.log.Warnf("Failed to check processing conflict for worker %s: %+v", workerUUID, err)
			return nil, err
		}
		if blocking != nil {
			return nil, &WorkerBusyError{Reference: blocking.Reference}
		}

		if booking.HealthWorkerUUID != nil && *booking.HealthWorkerUUID != workerUUID {
			previousWorker = booking.HealthWorker
			action = entity.AuditActionBookingReassign
		}

		booking.HealthWorkerUUID = &workerUUID
		booking.HealthWorker = worker
	}

	actorUUID := actor.UUID
	booking.Status = entity.BookingStatusProcessing
	booking.UpdatedByUUID = &actorUUID

	err = u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := u.bookingRepo.Update(tx, booking); err != nil {
			return err
		}

		extra := entity.JSON{}
		if booking.HealthWorkerUUID != nil {
			extra["health_worker_uuid"] = booking.HealthWorkerUUID.String()
		}
		if previousWorker != nil {
			extra["previous_worker_uuid"] = previousWorker.ID.String()
		}
		return u.auditService.LogTransition(tx, actor, action, booking, extra)
	})
	if err != nil {
		u.log.Warnf("Failed to move booking %s to processing: %+v", booking.Reference, err)
		return nil, err
	}

	full := u.reload(ctx, booking)
	u.notifier.WorkerAssigned(ctx, full, previousWorker)

	u.log.Infof("Booking %s moved to processing by admin %s", booking.Reference, actor.UUID)
	return converter.BookingToResponse(full), nil
}

// Complete flips an Ongoing booking to Done and records the client review.
// The status write and the review insert share one transaction: neither can
// exist without the other.
func (u *adminBookingUsecase) Complete(ctx context.Context, actor entity.Actor, bookingID uuid.UUID, req *dto.CompleteBookingRequest) (*dto.BookingResponse, error) {
	if !actor.IsAdmin() {
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

	if booking.Status != entity.BookingStatusOngoing {
		return nil, ErrInvalidTransition
	}
	if booking.HealthWorkerUUID == nil || booking.UserUUID == uuid.Nil {
		return nil, ErrIncompleteBooking
	}

	actorUUID := actor.UUID
	booking.Status = entity.BookingStatusDone
	booking.UpdatedByUUID = &actorUUID

	review := &entity.Review{
		BookingID:        booking.ID,
		UserUUID:         booking.UserUUID,
		HealthWorkerUUID: *booking.HealthWorkerUUID,
		Rating:           req.Rating,
	}
	if req.Review != "" {
		text := req.Review
		review.Review = &text
	}

	err = u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := u.bookingRepo.Update(tx, booking); err != nil {
			return err
		}
		if err := u.reviewRepo.Create(tx, review); err != nil {
			return err
		}
		return u.auditService.LogTransition(tx, actor, entity.AuditActionBookingComplete, booking, entity.JSON{
			"rating": req.Rating,
		})
	})
	if err != nil {
		u.log.Warnf("Failed to complete booking %s: %+v", booking.Reference, err)
		return nil, err
	}

	full := u.reload(ctx, booking)
	u.notifier.BookingCompleted(ctx, full, req.Rating)

	u.log.Infof("Booking %s completed with rating %d", booking.Reference, req.Rating)
	return converter.BookingToResponse(full), nil
}

// Cancel aborts a Pending booking with a mandatory reason
func (u *adminBookingUsecase) Cancel(ctx context.Context, actor entity.Actor, bookingID uuid.UUID, req *dto.CancelBookingRequest) (*dto.BookingResponse, error) {
	if !actor.IsAdmin() {
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

	if booking.Status != entity.BookingStatusPending {
		return nil, ErrInvalidTransition
	}

	actorUUID := actor.UUID
	reason := req.Reason
	booking.Status = entity.BookingStatusCancelled
	booking.CancellationReason = &reason
	booking.CancelledByUUID = &actorUUID
	booking.UpdatedByUUID = &actorUUID

	err = u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := u.bookingRepo.Update(tx, booking); err != nil {
			return err
		}
		return u.auditService.LogTransition(tx, actor, entity.AuditActionBookingCancel, booking, entity.JSON{
			"reason": reason,
		})
	})
	if err != nil {
		u.log.Warnf("Failed to cancel booking %s: %+v", booking.Reference, err)
		return nil, err
	}

	full := u.reload(ctx, booking)
	u.notifier.BookingCancelled(ctx, full, reason)

	u.log.Infof("Booking %s cancelled by admin %s", booking.Reference, actor.UUID)
	return converter.BookingToResponse(full), nil
}

// Delete physically removes a booking and its line items. Only bookings that
// never left Pending, or were cancelled from it, can be deleted.
func (u *adminBookingUsecase) Delete(ctx context.Context, actor entity.Actor, bookingID uuid.UUID) error {
	if !actor.IsAdmin() {
		return ErrForbidden
	}

	booking, err := u.bookingRepo.FindByID(u.db.WithContext(ctx), bookingID)
	if err != nil {
		u.log.Warnf("Failed to find booking %s: %+v", bookingID, err)
		return err
	}
	if booking == nil {
		return ErrBookingNotFound
	}

	if !booking.Deletable() {
		return ErrBookingNotDeletable
	}

	err = u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := u.bookingRepo.DeleteServices(tx, booking.ID); err != nil {
			return err
		}
		if err := u.bookingRepo.DeleteRecurrence(tx, booking.ID); err != nil {
			return err
		}
		if err := u.bookingRepo.Delete(tx, booking); err != nil {
			return err
		}
		return u.auditService.LogDelete(tx, actor, booking)
	})
	if err != nil {
		u.log.Warnf("Failed to delete booking %s: %+v", booking.Reference, err)
		return err
	}

	u.log.Infof("Booking %s deleted by admin %s", booking.Reference, actor.UUID)
	return nil
}

// ListBookings returns all bookings, optionally filtered by status
func (u *adminBookingUsecase) ListBookings(ctx context.Context, actor entity.Actor, statusFilter string) (*dto.BookingListResponse, error) {
	if !actor.IsAdmin() {
		return nil, ErrForbidden
	}

	var status *entity.BookingStatus
	if statusFilter != "" {
		parsed, ok := parseStatus(statusFilter)
		if !ok {
			return nil, ErrInvalidStatusFilter
		}
		status = &parsed
	}

	bookings, err := u.bookingRepo.FindAll(u.db.WithContext(ctx), status)
	if err != nil {
		u.log.Warnf("Failed to list bookings: %+v", err)
		return nil, err
	}

	return &dto.BookingListResponse{
		Bookings: converter.BookingsToResponses(bookings),
		Total:    len(bookings),
	}, nil
}

func (u *adminBookingUsecase) reload(ctx context.Context, booking *entity.Booking) *entity.Booking {
	full, err := u.bookingRepo.FindByID(u.db.WithContext(ctx), booking.ID)
	if err != nil || full == nil {
		u.log.Warnf("Failed to reload booking %s: %+v", booking.ID, err)
		return booking
	}
	return full
}

func parseStatus(value string) (entity.BookingStatus, bool) {
	switch entity.BookingStatus(value) {
	case entity.BookingStatusPending, entity.BookingStatusProcessing, entity.BookingStatusConfirmed,
		entity.BookingStatusOngoing, entity.BookingStatusDone, entity.BookingStatusCancelled:
		return entity.BookingStatus(value), true
	}
	return "", false
}
