package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BookingStatus represents the lifecycle status of a care booking
type BookingStatus string

const (
	BookingStatusPending    BookingStatus = "Pending"
	BookingStatusProcessing BookingStatus = "Processing"
	BookingStatusConfirmed  BookingStatus = "Confirmed"
	BookingStatusOngoing    BookingStatus = "Ongoing"
	BookingStatusDone       BookingStatus = "Done"
	BookingStatusCancelled  BookingStatus = "Cancelled"
)

// CareType distinguishes whether the health worker lives with the client
type CareType string

const (
	CareTypeLiveIn  CareType = "Live-in"
	CareTypeLiveOut CareType = "Live-out"
)

// CareDuration is the billing mode of the booking
type CareDuration string

const (
	CareDurationHourly CareDuration = "Hourly"
	CareDurationShift  CareDuration = "Shift"
)

// DayPeriod is the AM/PM marker attached to a time-of-day value
type DayPeriod string

const (
	PeriodAM DayPeriod = "AM"
	PeriodPM DayPeriod = "PM"
)

// RequestingFor indicates who the care is requested for
type RequestingFor string

const (
	RequestingForSelf    RequestingFor = "Self"
	RequestingForSomeone RequestingFor = "Someone"
)

// Booking represents a client's request for in-home care service
type Booking struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Reference string    `gorm:"type:varchar(50);uniqueIndex;not null" json:"reference"`

	UserUUID         uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_uuid"`
	HealthWorkerUUID *uuid.UUID `gorm:"type:uuid;index" json:"health_worker_uuid,omitempty"`

	RequestingFor RequestingFor `gorm:"type:varchar(20);not null" json:"requesting_for"`
	SomeoneName   string        `gorm:"type:varchar(255)" json:"someone_name,omitempty"`
	SomeonePhone  string        `gorm:"type:varchar(50)" json:"someone_phone,omitempty"`
	SomeoneEmail  string        `gorm:"type:varchar(255)" json:"someone_email,omitempty"`

	StartDate   time.Time `gorm:"type:date;not null" json:"start_date"`
	EndDate     time.Time `gorm:"type:date;not null" json:"end_date"`
	StartTime   string    `gorm:"type:varchar(10);not null" json:"start_time"`
	StartPeriod DayPeriod `gorm:"type:varchar(2);not null" json:"start_period"`
	EndTime     string    `gorm:"type:varchar(10);not null" json:"end_time"`
	EndPeriod   DayPeriod `gorm:"type:varchar(2);not null" json:"end_period"`

	CareDuration      CareDuration `gorm:"type:varchar(20);not null" json:"care_duration"`
	CareDurationValue int          `gorm:"not null" json:"care_duration_value"`
	CareType          CareType     `gorm:"type:varchar(20);not null" json:"care_type"`
	Accommodation     bool         `gorm:"not null;default:false" json:"accommodation"`
	Meal              bool         `gorm:"not null;default:false" json:"meal"`
	MealCount         int          `gorm:"not null;default:0" json:"meal_count"`
	SpecialNotes      string       `gorm:"type:text;not null" json:"special_notes"`

	Status BookingStatus `gorm:"type:varchar(20);not null;default:'Pending';index" json:"status"`

	CancellationReason *string    `gorm:"type:text" json:"cancellation_reason,omitempty"`
	CancelledByUUID    *uuid.UUID `gorm:"type:uuid" json:"cancelled_by_uuid,omitempty"`

	ConfirmedAt     *time.Time `json:"confirmed_at,omitempty"`
	ConfirmedByUUID *uuid.UUID `gorm:"type:uuid" json:"confirmed_by_uuid,omitempty"`
	StartedAt       *time.Time `json:"started_at,omitempty"`
	UpdatedByUUID   *uuid.UUID `gorm:"type:uuid" json:"updated_by_uuid,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Client       User             `gorm:"foreignKey:UserUUID" json:"client,omitempty"`
	HealthWorker *User            `gorm:"foreignKey:HealthWorkerUUID" json:"health_worker,omitempty"`
	Services     []BookingService `gorm:"foreignKey:BookingID" json:"services,omitempty"`
	Recurrence   *Recurrence      `gorm:"foreignKey:BookingID" json:"recurrence,omitempty"`
	Review       *Review          `gorm:"foreignKey:BookingID" json:"review,omitempty"`
}

func (Booking) TableName() string {
	return "bookings"
}

// BeforeCreate assigns the primary key so the entity also works on stores
// without a native uuid generator.
func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// IsPending checks if the booking is still awaiting triage
func (b *Booking) IsPending() bool {
	return b.Status == BookingStatusPending
}

// IsProcessing checks if a worker assignment is awaiting confirmation
func (b *Booking) IsProcessing() bool {
	return b.Status == BookingStatusProcessing
}

// IsTerminal checks if the booking reached a final status
func (b *Booking) IsTerminal() bool {
	return b.Status == BookingStatusDone || b.Status == BookingStatusCancelled
}

// Deletable reports whether an admin may physically delete the booking.
// Anything that reached Processing is kept forever.
func (b *Booking) Deletable() bool {
	return b.Status == BookingStatusPending || b.Status == BookingStatusCancelled
}

// AssignedTo checks whether the booking is assigned to the given worker
func (b *Booking) AssignedTo(workerUUID uuid.UUID) bool {
	return b.HealthWorkerUUID != nil && *b.HealthWorkerUUID == workerUUID
}
