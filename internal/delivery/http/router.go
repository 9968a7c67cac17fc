package http

import (
	"net/http"

	"homecare-booking-api/internal/delivery/http/handler"
	"homecare-booking-api/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router              *mux.Router
	bookingHandler      *handler.BookingHandler
	adminHandler        *handler.AdminBookingHandler
	workerHandler       *handler.WorkerBookingHandler
	notificationHandler *handler.NotificationHandler
	authMiddleware      *middleware.AuthMiddleware
	corsMiddleware      *middleware.CORSMiddleware
}

func NewRouter(
	bookingHandler *handler.BookingHandler,
	adminHandler *handler.AdminBookingHandler,
	workerHandler *handler.WorkerBookingHandler,
	notificationHandler *handler.NotificationHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:              mux.NewRouter(),
		bookingHandler:      bookingHandler,
		adminHandler:        adminHandler,
		workerHandler:       workerHandler,
		notificationHandler: notificationHandler,
		authMiddleware:      authMiddleware,
		corsMiddleware:      corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Client routes
	client := api.PathPrefix("/bookings").Subrouter()
	client.Use(r.authMiddleware.Authenticate)
	client.Handle("", middleware.RequireClient(http.HandlerFunc(r.bookingHandler.CreateBooking))).Methods(http.MethodPost)
	client.Handle("", middleware.RequireClient(http.HandlerFunc(r.bookingHandler.GetMyBookings))).Methods(http.MethodGet)
	client.HandleFunc("/{uuid}", r.bookingHandler.GetBooking).Methods(http.MethodGet)

	// Admin routes
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(r.authMiddleware.Authenticate)
	admin.Use(middleware.RequireAdmin)
	admin.HandleFunc("/bookings", r.adminHandler.ListBookings).Methods(http.MethodGet)
	admin.HandleFunc("/bookings/{uuid}/processing", r.adminHandler.SetProcessing).Methods(http.MethodPatch)
	admin.HandleFunc("/bookings/{uuid}/done", r.adminHandler.CompleteBooking).Methods(http.MethodPatch)
	admin.HandleFunc("/bookings/{uuid}/cancel", r.adminHandler.CancelBooking).Methods(http.MethodPatch)
	admin.HandleFunc("/bookings/{uuid}", r.adminHandler.DeleteBooking).Methods(http.MethodDelete)

	// Health-worker routes
	worker := api.PathPrefix("/worker").Subrouter()
	worker.Use(r.authMiddleware.Authenticate)
	worker.Use(middleware.RequireHealthWorker)
	worker.HandleFunc("/bookings", r.workerHandler.GetMyAssignments).Methods(http.MethodGet)
	worker.HandleFunc("/bookings/{uuid}/accept", r.workerHandler.AcceptBooking).Methods(http.MethodPatch)
	worker.HandleFunc("/bookings/{uuid}/start", r.workerHandler.StartBooking).Methods(http.MethodPatch)

	// Notification routes
	notifications := api.PathPrefix("/notifications").Subrouter()
	notifications.Use(r.authMiddleware.Authenticate)
	notifications.HandleFunc("", r.notificationHandler.GetMyNotifications).Methods(http.MethodGet)
	notifications.HandleFunc("/{id:[0-9]+}/read", r.notificationHandler.MarkRead).Methods(http.MethodPatch)

	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
