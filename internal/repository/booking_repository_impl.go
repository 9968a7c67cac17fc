package repository

import (
	"errors"

	"homecare-booking-api/internal/domain/entity"
	domainRepo "homecare-booking-api/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type bookingRepository struct{}

func NewBookingRepository() domainRepo.BookingRepository {
	return &bookingRepository{}
}

func (r *bookingRepository) Create(db *gorm.DB, booking *entity.Booking) error {
	return db.Create(booking).Error
}

func (r *bookingRepository) CreateServices(db *gorm.DB, services []entity.BookingService) error {
	if len(services) == 0 {
		return nil
	}
	return db.Create(&services).Error
}

func (r *bookingRepository) CreateRecurrence(db *gorm.DB, recurrence *entity.Recurrence) error {
	return db.Create(recurrence).Error
}

func (r *bookingRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Booking, error) {
	var booking entity.Booking
	err := db.Preload("Client").Preload("HealthWorker").Preload("Services").
		Preload("Recurrence").Preload("Review").
		Where("id = ?", id).First(&booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) FindByClient(db *gorm.DB, clientUUID uuid.UUID) ([]entity.Booking, error) {
	var bookings []entity.Booking
	err := db.Preload("HealthWorker").Preload("Services").
		Where("user_uuid = ?", clientUUID).
		Order("created_at DESC").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *bookingRepository) FindByWorker(db *gorm.DB, workerUUID uuid.UUID) ([]entity.Booking, error) {
	var bookings []entity.Booking
	err := db.Preload("Client").Preload("Services").
		Where("health_worker_uuid = ?", workerUUID).
		Order("created_at DESC").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *bookingRepository) FindAll(db *gorm.DB, status *entity.BookingStatus) ([]entity.Booking, error) {
	var bookings []entity.Booking
	query := db.Preload("Client").Preload("HealthWorker")
	if status != nil {
		query = query.Where("status = ?", *status)
	}
	err := query.Order("created_at DESC").Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

// FindPendingByClient returns the client's open Pending booking, if any.
// A client may hold at most one at a time.
func (r *bookingRepository) FindPendingByClient(db *gorm.DB, clientUUID uuid.UUID) (*entity.Booking, error) {
	var booking entity.Booking
	err := db.Where("user_uuid = ? AND status = ?", clientUUID, entity.BookingStatusPending).
		First(&booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &booking, nil
}

// FindProcessingByWorker returns another booking holding the worker in
// Processing status. excludeID skips the booking being transitioned so a
// re-entrant assignment of the same worker is not a conflict with itself.
func (r *bookingRepository) FindProcessingByWorker(db *gorm.DB, workerUUID uuid.UUID, excludeID uuid.UUID) (*entity.Booking, error) {
	var booking entity.Booking
	err := db.Where("health_worker_uuid = ? AND status = ? AND id != ?",
		workerUUID, entity.BookingStatusProcessing, excludeID).
		First(&booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &booking, nil
}

// Update persists the booking row only; preloaded associations are never
// written back.
func (r *bookingRepository) Update(db *gorm.DB, booking *entity.Booking) error {
	return db.Omit(clause.Associations).Save(booking).Error
}

func (r *bookingRepository) DeleteServices(db *gorm.DB, bookingID uuid.UUID) error {
	return db.Where("booking_id = ?", bookingID).Delete(&entity.BookingService{}).Error
}

func (r *bookingRepository) DeleteRecurrence(db *gorm.DB, bookingID uuid.UUID) error {
	return db.Where("booking_id = ?", bookingID).Delete(&entity.Recurrence{}).Error
}

func (r *bookingRepository) Delete(db *gorm.DB, booking *entity.Booking) error {
	return db.Delete(booking).Error
}
