package converter

import (
	"homecare-booking-api/internal/delivery/dto"
	"homecare-booking-api/internal/domain/entity"

	"github.com/google/uuid"
)

// BookingToResponse converts a Booking entity to BookingResponse DTO
func BookingToResponse(booking *entity.Booking) *dto.BookingResponse {
	if booking == nil {
		return nil
	}

	response := &dto.BookingResponse{
		ID:                 booking.ID,
		Reference:          booking.Reference,
		Status:             string(booking.Status),
		UserUUID:           booking.UserUUID,
		HealthWorkerUUID:   booking.HealthWorkerUUID,
		RequestingFor:      string(booking.RequestingFor),
		SomeoneName:        booking.SomeoneName,
		SomeonePhone:       booking.SomeonePhone,
		SomeoneEmail:       booking.SomeoneEmail,
		StartDate:          booking.StartDate.Format("2006-01-02"),
		EndDate:            booking.EndDate.Format("2006-01-02"),
		StartTime:          booking.StartTime,
		StartPeriod:        string(booking.StartPeriod),
		EndTime:            booking.EndTime,
		EndPeriod:          string(booking.EndPeriod),
		CareDuration:       string(booking.CareDuration),
		CareDurationValue:  booking.CareDurationValue,
		CareType:           string(booking.CareType),
		Accommodation:      booking.Accommodation,
		Meal:               booking.Meal,
		MealCount:          booking.MealCount,
		SpecialNotes:       booking.SpecialNotes,
		MedicalServices:    servicesByKind(booking.Services, entity.ServiceKindMedical),
		OtherExtraService:  servicesByKind(booking.Services, entity.ServiceKindExtra),
		CancellationReason: booking.CancellationReason,
		ConfirmedAt:        booking.ConfirmedAt,
		ConfirmedByUUID:    booking.ConfirmedByUUID,
		StartedAt:          booking.StartedAt,
		CreatedAt:          booking.CreatedAt,
		UpdatedAt:          booking.UpdatedAt,
	}

	if booking.Client.ID != uuid.Nil {
		response.Client = UserToResponse(&booking.Client)
	}
	if booking.HealthWorker != nil {
		response.HealthWorker = UserToResponse(booking.HealthWorker)
	}
	if booking.Recurrence != nil {
		response.Recurrence = &dto.RecurrenceResponse{
			Type:     string(booking.Recurrence.Type),
			Weekdays: booking.Recurrence.Weekdays,
			EndType:  string(booking.Recurrence.EndType),
			EndDate:  booking.Recurrence.EndDate,
			EndCount: booking.Recurrence.EndCount,
		}
	}
	if booking.Review != nil {
		response.Review = &dto.ReviewResponse{
			ID:        booking.Review.ID,
			Rating:    booking.Review.Rating,
			Review:    booking.Review.Review,
			CreatedAt: booking.Review.CreatedAt,
		}
	}

	return response
}

// BookingsToResponses converts a slice of Booking entities to slice of BookingResponse DTOs
func BookingsToResponses(bookings []entity.Booking) []dto.BookingResponse {
	responses := make([]dto.BookingResponse, len(bookings))
	for i, booking := range bookings {
		resp := BookingToResponse(&booking)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}

// UserToResponse converts a User entity to its public DTO
func UserToResponse(user *entity.User) *dto.UserResponse {
	if user == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:       user.ID,
		FullName: user.FullName,
		Email:    user.Email,
		Phone:    user.Phone,
	}
}

func servicesByKind(services []entity.BookingService, kind entity.ServiceKind) []string {
	names := make([]string, 0, len(services))
	for _, svc := range services {
		if svc.Kind == kind {
			names = append(names, svc.Name)
		}
	}
	return names
}
