package handler

import (
	"errors"
	"net/http"

	"homecare-booking-api/internal/delivery/http/middleware"
	"homecare-booking-api/internal/usecase"
	"homecare-booking-api/pkg/response"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// WorkerBookingHandler serves the health-worker endpoints
type WorkerBookingHandler struct {
	workerUsecase usecase.WorkerBookingUsecase
	isProduction  bool
}

func NewWorkerBookingHandler(workerUsecase usecase.WorkerBookingUsecase, isProduction bool) *WorkerBookingHandler {
	return &WorkerBookingHandler{
		workerUsecase: workerUsecase,
		isProduction:  isProduction,
	}
}

func (h *WorkerBookingHandler) AcceptBooking(w http.ResponseWriter, r *http.Request) {
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

	booking, err := h.workerUsecase.Accept(r.Context(), actor, bookingID)
	if err != nil {
		h.handleTransitionError(w, err, "Only a processing booking can be accepted")
		return
	}

	response.Success(w, http.StatusOK, "Booking confirmed successfully", booking)
}

func (h *WorkerBookingHandler) StartBooking(w http.ResponseWriter, r *http.Request) {
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

	booking, err := h.workerUsecase.Start(r.Context(), actor, bookingID)
	if err != nil {
		h.handleTransitionError(w, err, "Only a confirmed booking can be started")
		return
	}

	response.Success(w, http.StatusOK, "Booking started successfully", booking)
}

func (h *WorkerBookingHandler) GetMyAssignments(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	bookings, err := h.workerUsecase.GetMyAssignments(r.Context(), actor)
	if err != nil {
		if errors.Is(err, usecase.ErrForbidden) {
			response.Forbidden(w, "")
			return
		}
		response.InternalServerError(w, h.isProduction, err)
		return
	}

	response.Success(w, http.StatusOK, "Assignments retrieved successfully", bookings)
}

func (h *WorkerBookingHandler) handleTransitionError(w http.ResponseWriter, err error, invalidStateMessage string) {
	switch {
	case errors.Is(err, usecase.ErrBookingNotFound):
		response.NotFound(w, "Booking not found")
	case errors.Is(err, usecase.ErrInvalidTransition):
		response.BadRequest(w, invalidStateMessage)
	case errors.Is(err, usecase.ErrNotAssignedWorker):
		response.Forbidden(w, "Booking is not assigned to you")
	case errors.Is(err, usecase.ErrForbidden):
		response.Forbidden(w, "")
	default:
		response.InternalServerError(w, h.isProduction, err)
	}
}
