package usecase

import (
	"context"
	"crypto/rand"
	"fmt"
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

// BookingUsecase covers the client-facing lifecycle operations
type BookingUsecase interface {
	Create(ctx context.Context, actor entity.Actor, req *dto.CreateBookingRequest) (*dto.BookingResponse, error)
	GetMyBookings(ctx context.Context, actor entity.Actor) (*dto.BookingListResponse, error)
	GetBooking(ctx context.Context, actor entity.Actor, bookingID uuid.UUID) (*dto.BookingResponse, error)
}

type bookingUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	bookingRepo  repository.BookingRepository
	auditService service.AuditService
	notifier     service.BookingNotifier
}

func NewBookingUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	bookingRepo repository.BookingRepository,
	auditService service.AuditService,
	notifier service.BookingNotifier,
) BookingUsecase {
	return &bookingUsecase{
		db:           db,
		log:          log,
		bookingRepo:  bookingRepo,
		auditService: auditService,
		notifier:     notifier,
	}
}

// Create opens a new Pending booking for the client.
//
// Flow:
// 1. Cross-field schedule validation (date order, clock order)
// 2. Reject if the client already holds a Pending booking
// 3. Insert booking + service line items + recurrence in one transaction
// 4. Reload and dispatch side effects after commit
func (u *bookingUsecase) Create(ctx context.Context, actor entity.Actor, req *dto.CreateBookingRequest) (*dto.BookingResponse, error) {
	if !actor.IsClient() {
		return nil, ErrForbidden
	}

	startDate, endDate, err := parseDateRange(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}
	if err := validateClockOrder(req.StartTime, req.StartPeriod, req.EndTime, req.EndPeriod); err != nil {
		return nil, err
	}

	// Fast-path pre-check; the partial unique index is the authoritative guard
	// under concurrent writers.
	existing, err := u.bookingRepo.FindPendingByClient(u.db.WithContext(ctx), actor.UUID)
	if err != nil {
		u.log.Warnf("Failed to check pending booking for client %s: %+v", actor.UUID, err)
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicatePending
	}

	booking := &entity.Booking{
		Reference:         generateReference(startDate),
		UserUUID:          actor.UUID,
		RequestingFor:     entity.RequestingFor(req.RequestingFor),
		SomeoneName:       req.SomeoneName,
		SomeonePhone:      req.SomeonePhone,
		SomeoneEmail:      req.SomeoneEmail,
		StartDate:         startDate,
		EndDate:           endDate,
		StartTime:         req.StartTime,
		StartPeriod:       entity.DayPeriod(req.StartPeriod),
		EndTime:           req.EndTime,
		EndPeriod:         entity.DayPeriod(req.EndPeriod),
		CareDuration:      entity.CareDuration(req.CareDuration),
		CareDurationValue: req.CareDurationValue,
		CareType:          entity.CareType(req.CareType),
		Accommodation:     req.Accommodation,
		Meal:              req.Meal,
		MealCount:         req.MealCount,
		SpecialNotes:      req.SpecialNotes,
		Status:            entity.BookingStatusPending,
	}

	err = u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := u.bookingRepo.Create(tx, booking); err != nil {
			return err
		}

		services := buildServices(booking.ID, req.MedicalServices, req.OtherExtraService)
		if err := u.bookingRepo.CreateServices(tx, services); err != nil {
			return err
		}

		if req.Recurrence != nil {
			recurrence, err := buildRecurrence(booking.ID, req.Recurrence)
			if err != nil {
				return err
			}
			if err := u.bookingRepo.CreateRecurrence(tx, recurrence); err != nil {
				return err
			}
		}

		return u.auditService.LogTransition(tx, actor, entity.AuditActionBookingCreate, booking, nil)
	})
	if err != nil {
		u.log.Warnf("Failed to create booking for client %s: %+v", actor.UUID, err)
		return nil, err
	}

	full, err := u.bookingRepo.FindByID(u.db.WithContext(ctx), booking.ID)
	if err != nil || full == nil {
		u.log.Warnf("Failed to reload booking %s: %+v", booking.ID, err)
		return converter.BookingToResponse(booking), nil
	}

	u.notifier.BookingCreated(ctx, full)

	u.log.Infof("Booking created: reference=%s, client=%s", booking.Reference, actor.UUID)
	return converter.BookingToResponse(full), nil
}

// GetMyBookings returns all bookings owned by the client
func (u *bookingUsecase) GetMyBookings(ctx context.Context, actor entity.Actor) (*dto.BookingListResponse, error) {
	bookings, err := u.bookingRepo.FindByClient(u.db.WithContext(ctx), actor.UUID)
	if err != nil {
		u.log.Warnf("Failed to find bookings for client %s: %+v", actor.UUID, err)
		return nil, err
	}

	return &dto.BookingListResponse{
		Bookings: converter.BookingsToResponses(bookings),
		Total:    len(bookings),
	}, nil
}

// GetBooking returns one booking visible to the actor: admins see all,
// clients and workers only their own.
func (u *bookingUsecase) GetBooking(ctx context.Context, actor entity.Actor, bookingID uuid.UUID) (*dto.BookingResponse, error) {
	booking, err := u.bookingRepo.FindByID(u.db.WithContext(ctx), bookingID)
	if err != nil {
		u.log.Warnf("Failed to find booking %s: %+v", bookingID, err)
		return nil, err
	}
	if booking == nil {
		return nil, ErrBookingNotFound
	}

	if !actor.IsAdmin() && booking.UserUUID != actor.UUID && !booking.AssignedTo(actor.UUID) {
		return nil, ErrForbidden
	}

	return converter.BookingToResponse(booking), nil
}

func buildServices(bookingID uuid.UUID, medical, extra []string) []entity.BookingService {
	services := make([]entity.BookingService, 0, len(medical)+len(extra))
	for _, name := range medical {
		services = append(services, entity.BookingService{
			BookingID: bookingID,
			Kind:      entity.ServiceKindMedical,
			Name:      name,
		})
	}
	for _, name := range extra {
		services = append(services, entity.BookingService{
			BookingID: bookingID,
			Kind:      entity.ServiceKindExtra,
			Name:      name,
		})
	}
	return services
}

func buildRecurrence(bookingID uuid.UUID, req *dto.RecurrenceRequest) (*entity.Recurrence, error) {
	recurrence := &entity.Recurrence{
		BookingID: bookingID,
		Type:      entity.RecurrenceType(req.Type),
		Weekdays:  req.Weekdays,
		EndType:   entity.RecurrenceEnd(req.EndType),
	}
	switch recurrence.EndType {
	case entity.RecurrenceEndByDate:
		endDate, err := time.Parse("2006-01-02", req.EndDate)
		if err != nil {
			return nil, fmt.Errorf("invalid recurrence end date: %w", err)
		}
		recurrence.EndDate = &endDate
	case entity.RecurrenceEndByCount:
		count := req.EndCount
		recurrence.EndCount = &count
	}
	return recurrence, nil
}

func parseDateRange(start, end string) (time.Time, time.Time, error) {
	startDate, err := time.Parse("2006-01-02", start)
	if err != nil {
		return time.Time{}, time.Time{}, ErrInvalidDateRange
	}
	endDate, err := time.Parse("2006-01-02", end)
	if err != nil {
		return time.Time{}, time.Time{}, ErrInvalidDateRange
	}
	if endDate.Before(startDate) {
		return time.Time{}, time.Time{}, ErrInvalidDateRange
	}
	return startDate, endDate, nil
}

// validateClockOrder compares time-of-day only, not the full start/end
// date-time combination.
func validateClockOrder(startTime, startPeriod, endTime, endPeriod string) error {
	start, err := time.Parse("03:04 PM", startTime+" "+startPeriod)
	if err != nil {
		return ErrInvalidTimeRange
	}
	end, err := time.Parse("03:04 PM", endTime+" "+endPeriod)
	if err != nil {
		return ErrInvalidTimeRange
	}
	if end.Hour()*60+end.Minute() <= start.Hour()*60+start.Minute() {
		return ErrInvalidTimeRange
	}
	return nil
}

// generateReference builds a unique booking reference: HC-YYYYMMDD-XXXXXX
func generateReference(startDate time.Time) string {
	dateStr := startDate.Format("20060102")
	randomBytes := make([]byte, 3)
	rand.Read(randomBytes)
	randomStr := fmt.Sprintf("%06X", randomBytes)
	return fmt.Sprintf("HC-%s-%s", dateStr, randomStr)
}
