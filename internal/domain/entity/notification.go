package entity

import (
	"time"

	"github.com/google/uuid"
)

// NotificationType labels the booking event an in-app notification refers to
type NotificationType string

const (
	NotifBookingCreated    NotificationType = "booking_created"
	NotifBookingAssigned   NotificationType = "booking_assigned"
	NotifBookingReassigned NotificationType = "booking_reassigned"
	NotifBookingConfirmed  NotificationType = "booking_confirmed"
	NotifBookingStarted    NotificationType = "booking_started"
	NotifBookingCompleted  NotificationType = "booking_completed"
	NotifBookingCancelled  NotificationType = "booking_cancelled"
)

// Notification is one in-app notification row for a user
type Notification struct {
	ID        int64            `gorm:"primaryKey;autoIncrement" json:"id"`
	UserUUID  uuid.UUID        `gorm:"type:uuid;not null;index" json:"user_uuid"`
	Type      NotificationType `gorm:"type:varchar(50);not null" json:"type"`
	Title     string           `gorm:"type:varchar(255);not null" json:"title"`
	Message   string           `gorm:"type:text" json:"message,omitempty"`
	Data      JSON             `gorm:"type:jsonb" json:"data,omitempty"`
	IsRead    bool             `gorm:"not null;default:false;index" json:"is_read"`
	CreatedAt time.Time        `gorm:"autoCreateTime;index" json:"created_at"`
}

func (Notification) TableName() string {
	return "notifications"
}
