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

// AdminBookingHandler serves the admin triage endpoints
type AdminBookingHandler struct {
	adminUsecase usecase.AdminBookingUsecase
	validator    *validator.CustomValidator
	isProduction bool
}

func NewAdminBookingHandler(adminUsecase usecase.AdminBookingUsecase, validator *validator.CustomValidator, isProduction bool) *AdminBookingHandler {
	return &AdminBookingHandler{
		adminUsecase: adminUsecase,
		validator:    validator,
		isProduction: isProduction,
	}
}

func (h *AdminBookingHandler) SetProcessing(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	bookingID, err := uuid.Parse(mux.Vars(r)["uuid"])
	if err != nil {
		response.BadRequest(w, "Invalid booking ID")
		return
	}

	var req dto.AssignWorkerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	booking, err := h.adminUsecase.SetProcessing(r.Context(), actor, bookingID, &req)
	if err != nil {
		var workerBusy *usecase.WorkerBusyError
		switch {
		case errors.Is(err, usecase.ErrBookingNotFound):
			response.NotFound(w, "Booking not found")
		case errors.As(err, &workerBusy):
			response.Error(w, http.StatusUnprocessableEntity, workerBusy.Error(), nil)
		case errors.Is(err, usecase.ErrWorkerNotFound):
			response.Error(w, http.StatusUnprocessableEntity, "Health worker not found", nil)
		case errors.Is(err, usecase.ErrInvalidTransition):
			response.Error(w, http.StatusUnprocessableEntity, "Booking can no longer be moved to processing", nil)
		case errors.Is(err, usecase.ErrForbidden):
			response.Forbidden(w, "")
		default:
			response.InternalServerError(w, h.isProduction, err)
		}
		return
	}

	response.Success(w, http.StatusOK, "Booking moved to processing", booking)
}

func (h *AdminBookingHandler) CompleteBooking(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	bookingID, err := uuid.Parse(mux.Vars(r)["uuid"])
	if err != nil {
		response.BadRequest(w, "Invalid booking ID")
		return
	}

	var req dto.CompleteBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	booking, err := h.adminUsecase.Complete(r.Context(), actor, bookingID, &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrBookingNotFound):
			response.NotFound(w, "Booking not found")
		case errors.Is(err, usecase.ErrInvalidTransition):
			response.Conflict(w, "Only an ongoing booking can be completed")
		case errors.Is(err, usecase.ErrIncompleteBooking):
			response.Error(w, http.StatusUnprocessableEntity, "Booking has no assigned health worker or client", nil)
		case errors.Is(err, usecase.ErrForbidden):
			response.Forbidden(w, "")
		default:
			response.InternalServerError(w, h.isProduction, err)
		}
		return
	}

	response.Success(w, http.StatusOK, "Booking completed successfully", booking)
}

func (h *AdminBookingHandler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	bookingID, err := uuid.Parse(mux.Vars(r)["uuid"])
	if err != nil {
		response.BadRequest(w, "Invalid booking ID")
		return
	}

	var req dto.CancelBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	booking, err := h.adminUsecase.Cancel(r.Context(), actor, bookingID, &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrBookingNotFound):
			response.NotFound(w, "Booking not found")
		case errors.Is(err, usecase.ErrInvalidTransition):
			response.Conflict(w, "Only a pending booking can be cancelled")
		case errors.Is(err, usecase.ErrForbidden):
			response.Forbidden(w, "")
		default:
			response.InternalServerError(w, h.isProduction, err)
		}
		return
	}

	response.Success(w, http.StatusOK, "Booking cancelled successfully", booking)
}

func (h *AdminBookingHandler) DeleteBooking(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	bookingID, err := uuid.Parse(mux.Vars(r)["uuid"])
	if err != nil {
		response.BadRequest(w, "Invalid booking ID")
		return
	}

	err = h.adminUsecase.Delete(r.Context(), actor, bookingID)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrBookingNotFound):
			response.NotFound(w, "Booking not found")
		case errors.Is(err, usecase.ErrBookingNotDeletable):
			response.Error(w, http.StatusUnprocessableEntity, "Only pending or cancelled bookings can be deleted", nil)
		case errors.Is(err, usecase.ErrForbidden):
			response.Forbidden(w, "")
		default:
			response.InternalServerError(w, h.isProduction, err)
		}
		return
	}

	response.Success(w, http.StatusOK, "Booking deleted successfully", nil)
}

func (h *AdminBookingHandler) ListBookings(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	bookings, err := h.adminUsecase.ListBookings(r.Context(), actor, r.URL.Query().Get("status"))
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidStatusFilter):
			response.ValidationError(w, map[string]string{"status": "status must be a known booking status"})
		case errors.Is(err, usecase.ErrForbidden):
			response.Forbidden(w, "")
		default:
			response.InternalServerError(w, h.isProduction, err)
		}
		return
	}

	response.Success(w, http.StatusOK, "Bookings retrieved successfully", bookings)
}
