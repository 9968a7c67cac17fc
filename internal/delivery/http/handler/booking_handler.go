package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"homecare-booking-api/internal/delivery/dto"
	"homecare-booking-api/internal/delivery/http/middleware"
	"homecare-booking-api/internal/usecase"
	"homecare-booking-api/pkg/response"
	"homecare-booking-api/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// BookingHandler serves the client-facing booking endpoints
type BookingHandler struct {
	bookingUsecase usecase.BookingUsecase
	validator      *validator.CustomValidator
	isProduction   bool
}

func NewBookingHandler(bookingUsecase usecase.BookingUsecase, validator *validator.CustomValidator, isProduction bool) *BookingHandler {
	return &BookingHandler{
		bookingUsecase: bookingUsecase,
		validator:      validator,
		isProduction:   isProduction,
	}
}

func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	var req dto.CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	booking, err := h.bookingUsecase.Create(r.Context(), actor, &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrDuplicatePending):
			response.Conflict(w, "You already have a pending booking")
		case errors.Is(err, usecase.ErrInvalidDateRange):
			response.ValidationError(w, map[string]string{"end_date": err.Error()})
		case errors.Is(err, usecase.ErrInvalidTimeRange):
			response.ValidationError(w, map[string]string{"end_time": err.Error()})
		case errors.Is(err, usecase.ErrForbidden):
			response.Forbidden(w, "Only clients can create bookings")
		default:
			response.InternalServerError(w, h.isProduction, err)
		}
		return
	}

	response.Success(w, http.StatusOK, "Booking created successfully", booking)
}

func (h *BookingHandler) GetMyBookings(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	bookings, err := h.bookingUsecase.GetMyBookings(r.Context(), actor)
	if err != nil {
		response.InternalServerError(w, h.isProduction, err)
		return
	}

	response.Success(w, http.StatusOK, "Bookings retrieved successfully", bookings)
}

func (h *BookingHandler) GetBooking(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	vars := mux.Vars(r)
	bookingID, err := uuid.Parse(vars["uuid"])
	if err != nil {
		response.BadRequest(w, "Invalid booking ID")
		return
	}

	booking, err := h.bookingUsecase.GetBooking(r.Context(), actor, bookingID)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrBookingNotFound):
			response.NotFound(w, "Booking not found")
		case errors.Is(err, usecase.ErrForbidden):
			response.Forbidden(w, "Booking does not belong to you")
		default:
			response.InternalServerError(w, h.isProduction, err)
		}
		return
	}

	response.Success(w, http.StatusOK, "Booking retrieved successfully", booking)
}
