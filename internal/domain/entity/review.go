package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Review is the client review recorded when a booking completes.
// A review row exists only for bookings in Done status; it is written in the
// same transaction as the Done flip.
type Review struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	BookingID        uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex" json:"booking_id"`
	UserUUID         uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_uuid"`
	HealthWorkerUUID uuid.UUID  `gorm:"type:uuid;not null;index" json:"health_worker_uuid"`
	Rating           int        `gorm:"not null" json:"rating"`
	Review           *string    `gorm:"type:text" json:"review,omitempty"`
	CreatedAt        time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Review) TableName() string {
	return "reviews"
}

func (r *Review) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
