package entity

import "github.com/google/uuid"

// ServiceKind distinguishes the two line-item lists on a booking
type ServiceKind string

const (
	ServiceKindMedical ServiceKind = "medical"
	ServiceKindExtra   ServiceKind = "extra"
)

// BookingService is one requested service line item of a booking
type BookingService struct {
	ID        int64       `gorm:"primaryKey;autoIncrement" json:"id"`
	BookingID uuid.UUID   `gorm:"type:uuid;not null;index" json:"booking_id"`
	Kind      ServiceKind `gorm:"type:varchar(20);not null" json:"kind"`
	Name      string      `gorm:"type:varchar(255);not null" json:"name"`
}

func (BookingService) TableName() string {
	return "booking_services"
}
