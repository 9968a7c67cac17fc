package handler

import (
	"errors"
	"net/http"
	"strconv"

	"homecare-booking-api/internal/delivery/http/middleware"
	"homecare-booking-api/internal/usecase"
	"homecare-booking-api/pkg/response"

	"github.com/gorilla/mux"
)

// NotificationHandler serves the in-app notification rows
type NotificationHandler struct {
	notificationUsecase usecase.NotificationUsecase
	isProduction        bool
}

func NewNotificationHandler(notificationUsecase usecase.NotificationUsecase, isProduction bool) *NotificationHandler {
	return &NotificationHandler{
		notificationUsecase: notificationUsecase,
		isProduction:        isProduction,
	}
}

func (h *NotificationHandler) GetMyNotifications(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	notifications, err := h.notificationUsecase.GetMyNotifications(r.Context(), actor)
	if err != nil {
		response.InternalServerError(w, h.isProduction, err)
		return
	}

	response.Success(w, http.StatusOK, "Notifications retrieved successfully", notifications)
}

func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	notificationID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid notification ID")
		return
	}

	if err := h.notificationUsecase.MarkRead(r.Context(), actor, notificationID); err != nil {
		if errors.Is(err, usecase.ErrNotificationNotFound) {
			response.NotFound(w, "Notification not found")
			return
		}
		response.InternalServerError(w, h.isProduction, err)
		return
	}

	response.Success(w, http.StatusOK, "Notification marked as read", nil)
}
