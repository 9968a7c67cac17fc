package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// RecurrenceType is the repetition cadence of a recurring booking
type RecurrenceType string

const (
	RecurrenceDaily   RecurrenceType = "Daily"
	RecurrenceWeekly  RecurrenceType = "Weekly"
	RecurrenceMonthly RecurrenceType = "Monthly"
)

// RecurrenceEnd is the condition that terminates the repetition
type RecurrenceEnd string

const (
	RecurrenceEndByDate  RecurrenceEnd = "date"
	RecurrenceEndByCount RecurrenceEnd = "count"
)

// Recurrence is descriptive repeat metadata attached to a booking at creation.
// It is never expanded into concrete future bookings by this service.
type Recurrence struct {
	ID        int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	BookingID uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex" json:"booking_id"`
	Type      RecurrenceType `gorm:"type:varchar(20);not null" json:"type"`
	Weekdays  StringList     `gorm:"type:text" json:"weekdays,omitempty"`
	EndType   RecurrenceEnd  `gorm:"type:varchar(10);not null" json:"end_type"`
	EndDate   *time.Time     `gorm:"type:date" json:"end_date,omitempty"`
	EndCount  *int           `json:"end_count,omitempty"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
}

func (Recurrence) TableName() string {
	return "booking_recurrences"
}

// StringList stores a list of strings as a JSON column
type StringList []string

// Value returns the JSON encoding, implements driver.Valuer
func (l StringList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return nil, nil
	}
	return json.Marshal(l)
}

// Scan decodes a JSON column value, implements sql.Scanner
func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New(fmt.Sprint("Failed to unmarshal string list value:", value))
	}
	return json.Unmarshal(bytes, l)
}
