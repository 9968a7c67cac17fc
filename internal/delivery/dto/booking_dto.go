package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateBookingRequest struct {
	RequestingFor     string             `json:"requesting_for" validate:"required,oneof=Self Someone"`
	SomeoneName       string             `json:"someone_name" validate:"omitempty,max=255"`
	SomeonePhone      string             `json:"someone_phone" validate:"omitempty,max=50"`
	SomeoneEmail      string             `json:"someone_email" validate:"omitempty,email"`
	StartDate         string             `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate           string             `json:"end_date" validate:"required,datetime=2006-01-02"`
	StartTime         string             `json:"start_time" validate:"required,datetime=03:04"`
	StartPeriod       string             `json:"start_period" validate:"required,oneof=AM PM"`
	EndTime           string             `json:"end_time" validate:"required,datetime=03:04"`
	EndPeriod         string             `json:"end_period" validate:"required,oneof=AM PM"`
	CareDuration      string             `json:"care_duration" validate:"required,oneof=Hourly Shift"`
	CareDurationValue int                `json:"care_duration_value" validate:"required,gte=1"`
	CareType          string             `json:"care_type" validate:"required,oneof=Live-in Live-out"`
	Accommodation     bool               `json:"accommodation"`
	Meal              bool               `json:"meal"`
	MealCount         int                `json:"meal_count" validate:"omitempty,gte=0"`
	SpecialNotes      string             `json:"special_notes" validate:"required,min=20,max=1000"`
	MedicalServices   []string           `json:"medical_services" validate:"required,min=1,dive,required"`
	OtherExtraService []string           `json:"other_extra_service" validate:"omitempty,dive,required"`
	Recurrence        *RecurrenceRequest `json:"recurrence" validate:"omitempty"`
}

type RecurrenceRequest struct {
	Type     string   `json:"type" validate:"required,oneof=Daily Weekly Monthly"`
	Weekdays []string `json:"weekdays" validate:"omitempty,dive,oneof=Mon Tue Wed Thu Fri Sat Sun"`
	EndType  string   `json:"end_type" validate:"required,oneof=date count"`
	EndDate  string   `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
	EndCount int      `json:"end_count" validate:"omitempty,gte=1"`
}

type AssignWorkerRequest struct {
	HealthWorkerUUID string `json:"health_worker_uuid" validate:"omitempty,uuid4"`
}

type CompleteBookingRequest struct {
	Rating int    `json:"rating" validate:"required,gte=1,lte=5"`
	Review string `json:"review" validate:"omitempty,max=1000"`
}

type CancelBookingRequest struct {
	Reason string `json:"reason" validate:"required,min=10"`
}

// Response DTOs

type BookingResponse struct {
	ID                 uuid.UUID           `json:"id"`
	Reference          string              `json:"reference"`
	Status             string              `json:"status"`
	UserUUID           uuid.UUID           `json:"user_uuid"`
	HealthWorkerUUID   *uuid.UUID          `json:"health_worker_uuid,omitempty"`
	Client             *UserResponse       `json:"client,omitempty"`
	HealthWorker       *UserResponse       `json:"health_worker,omitempty"`
	RequestingFor      string              `json:"requesting_for"`
	SomeoneName        string              `json:"someone_name,omitempty"`
	SomeonePhone       string              `json:"someone_phone,omitempty"`
	SomeoneEmail       string              `json:"someone_email,omitempty"`
	StartDate          string              `json:"start_date"`
	EndDate            string              `json:"end_date"`
	StartTime          string              `json:"start_time"`
	StartPeriod        string              `json:"start_period"`
	EndTime            string              `json:"end_time"`
	EndPeriod          string              `json:"end_period"`
	CareDuration       string              `json:"care_duration"`
	CareDurationValue  int                 `json:"care_duration_value"`
	CareType           string              `json:"care_type"`
	Accommodation      bool                `json:"accommodation"`
	Meal               bool                `json:"meal"`
	MealCount          int                 `json:"meal_count"`
	SpecialNotes       string              `json:"special_notes"`
	MedicalServices    []string            `json:"medical_services"`
	OtherExtraService  []string            `json:"other_extra_service"`
	Recurrence         *RecurrenceResponse `json:"recurrence,omitempty"`
	Review             *ReviewResponse     `json:"review,omitempty"`
	CancellationReason *string             `json:"cancellation_reason,omitempty"`
	ConfirmedAt        *time.Time          `json:"confirmed_at,omitempty"`
	ConfirmedByUUID    *uuid.UUID          `json:"confirmed_by_uuid,omitempty"`
	StartedAt          *time.Time          `json:"started_at,omitempty"`
	CreatedAt          time.Time           `json:"created_at"`
	UpdatedAt          time.Time           `json:"updated_at"`
}

type RecurrenceResponse struct {
	Type     string     `json:"type"`
	Weekdays []string   `json:"weekdays,omitempty"`
	EndType  string     `json:"end_type"`
	EndDate  *time.Time `json:"end_date,omitempty"`
	EndCount *int       `json:"end_count,omitempty"`
}

type ReviewResponse struct {
	ID        uuid.UUID `json:"id"`
	Rating    int       `json:"rating"`
	Review    *string   `json:"review,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type UserResponse struct {
	ID       uuid.UUID `json:"id"`
	FullName string    `json:"full_name"`
	Email    string    `json:"email"`
	Phone    string    `json:"phone,omitempty"`
}

type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
	Total    int               `json:"total"`
}
