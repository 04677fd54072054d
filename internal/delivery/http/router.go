package http

import (
	"net/http"

	"clinic-booking-api/internal/delivery/http/handler"
	"clinic-booking-api/internal/delivery/http/middleware"
	"clinic-booking-api/internal/delivery/websocket"

	"github.com/gorilla/mux"
)

type Router struct {
	router             *mux.Router
	authHandler        *handler.AuthHandler
	doctorHandler      *handler.DoctorHandler
	clinicHandler      *handler.ClinicHandler
	assistantHandler   *handler.AssistantHandler
	appointmentHandler *handler.AppointmentHandler
	bookingHandler     *handler.BookingHandler
	dashboardHandler   *handler.DashboardHandler
	auditLogHandler    *handler.AuditLogHandler
	hub                *websocket.Hub
	authMiddleware     *middleware.AuthMiddleware
	corsMiddleware     *middleware.CORSMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	doctorHandler *handler.DoctorHandler,
	clinicHandler *handler.ClinicHandler,
	assistantHandler *handler.AssistantHandler,
	appointmentHandler *handler.AppointmentHandler,
	bookingHandler *handler.BookingHandler,
	dashboardHandler *handler.DashboardHandler,
	auditLogHandler *handler.AuditLogHandler,
	hub *websocket.Hub,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:             mux.NewRouter(),
		authHandler:        authHandler,
		doctorHandler:      doctorHandler,
		clinicHandler:      clinicHandler,
		assistantHandler:   assistantHandler,
		appointmentHandler: appointmentHandler,
		bookingHandler:     bookingHandler,
		dashboardHandler:   dashboardHandler,
		auditLogHandler:    auditLogHandler,
		hub:                hub,
		authMiddleware:     authMiddleware,
		corsMiddleware:     corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Auth routes (public)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/register", r.authHandler.Register).Methods(http.MethodPost)
	auth.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)
	auth.HandleFunc("/refresh-token", r.authHandler.RefreshToken).Methods(http.MethodPost)

	// Auth routes (protected)
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(r.authMiddleware.Authenticate)
	authProtected.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodPost)
	authProtected.HandleFunc("/me", r.authHandler.Me).Methods(http.MethodGet)

	// Public browse-and-book routes
	api.HandleFunc("/doctors", r.doctorHandler.GetPublicDirectory).Methods(http.MethodGet)
	api.HandleFunc("/doctors/{id}", r.doctorHandler.GetByID).Methods(http.MethodGet)
	api.HandleFunc("/doctors/{doctorId}/slots", r.appointmentHandler.GetAvailableByDoctor).Methods(http.MethodGet)
	api.HandleFunc("/clinics", r.clinicHandler.GetAllActive).Methods(http.MethodGet)
	api.HandleFunc("/clinics/{id}", r.clinicHandler.GetByID).Methods(http.MethodGet)

	// Live patient board (waiting room displays)
	r.router.HandleFunc("/ws/live-board", websocket.ServeWS(r.hub))

	// Patient routes
	patient := api.PathPrefix("/patient").Subrouter()
	patient.Use(r.authMiddleware.Authenticate)
	patient.Use(middleware.RequirePatient)
	patient.HandleFunc("/bookings", r.bookingHandler.PatientBook).Methods(http.MethodPost)
	patient.HandleFunc("/bookings", r.bookingHandler.GetMyBookings).Methods(http.MethodGet)
	patient.HandleFunc("/bookings/{id}", r.bookingHandler.GetByID).Methods(http.MethodGet)
	patient.HandleFunc("/bookings/{id}/cancel", r.bookingHandler.Cancel).Methods(http.MethodPost)

	// Assistant routes
	assistant := api.PathPrefix("/assistant").Subrouter()
	assistant.Use(r.authMiddleware.Authenticate)
	assistant.Use(middleware.RequireAssistant)
	assistant.HandleFunc("/bookings", r.bookingHandler.AssistantBook).Methods(http.MethodPost)
	assistant.HandleFunc("/bookings", r.bookingHandler.List).Methods(http.MethodGet)
	assistant.HandleFunc("/bookings/{id}", r.bookingHandler.GetByID).Methods(http.MethodGet)
	assistant.HandleFunc("/bookings/{id}/status", r.bookingHandler.UpdateStatus).Methods(http.MethodPatch)
	assistant.HandleFunc("/bookings/{id}/cancel", r.bookingHandler.Cancel).Methods(http.MethodPost)
	assistant.HandleFunc("/bookings/token/{token}", r.bookingHandler.GetByTokenNumber).Methods(http.MethodGet)

	// Doctor routes
	doctor := api.PathPrefix("/doctor").Subrouter()
	doctor.Use(r.authMiddleware.Authenticate)
	doctor.Use(middleware.RequireDoctor)
	doctor.HandleFunc("/dashboard/stats", r.dashboardHandler.GetStats).Methods(http.MethodGet)
	doctor.HandleFunc("/dashboard/today", r.dashboardHandler.GetTodayBookings).Methods(http.MethodGet)
	doctor.HandleFunc("/dashboard/upcoming", r.dashboardHandler.GetUpcomingBookings).Methods(http.MethodGet)
	doctor.HandleFunc("/schedules", r.dashboardHandler.CreateSchedule).Methods(http.MethodPost)
	doctor.HandleFunc("/slots", r.appointmentHandler.Create).Methods(http.MethodPost)
	doctor.HandleFunc("/slots/{id}/status", r.appointmentHandler.UpdateStatus).Methods(http.MethodPatch)
	doctor.HandleFunc("/slots/{id}", r.appointmentHandler.Delete).Methods(http.MethodDelete)
	doctor.HandleFunc("/bookings", r.bookingHandler.DoctorBook).Methods(http.MethodPost)
	doctor.HandleFunc("/bookings", r.bookingHandler.List).Methods(http.MethodGet)
	doctor.HandleFunc("/bookings/{id}", r.bookingHandler.GetByID).Methods(http.MethodGet)
	doctor.HandleFunc("/bookings/{id}/status", r.bookingHandler.UpdateStatus).Methods(http.MethodPatch)
	doctor.HandleFunc("/bookings/{id}/cancel", r.bookingHandler.Cancel).Methods(http.MethodPost)
	doctor.HandleFunc("/bookings/token/{token}", r.bookingHandler.GetByTokenNumber).Methods(http.MethodGet)

	// Admin routes
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(r.authMiddleware.Authenticate)
	admin.Use(middleware.RequireAdmin)
	admin.HandleFunc("/doctors", r.doctorHandler.Create).Methods(http.MethodPost)
	admin.HandleFunc("/doctors", r.doctorHandler.GetAll).Methods(http.MethodGet)
	admin.HandleFunc("/doctors/{id}", r.doctorHandler.GetByID).Methods(http.MethodGet)
	admin.HandleFunc("/doctors/{id}", r.doctorHandler.Update).Methods(http.MethodPut)
	admin.HandleFunc("/doctors/{id}", r.doctorHandler.Delete).Methods(http.MethodDelete)
	admin.HandleFunc("/doctors/{doctorId}/assistants", r.assistantHandler.GetByDoctor).Methods(http.MethodGet)
	admin.HandleFunc("/clinics", r.clinicHandler.Create).Methods(http.MethodPost)
	admin.HandleFunc("/clinics", r.clinicHandler.GetAll).Methods(http.MethodGet)
	admin.HandleFunc("/clinics/{id}", r.clinicHandler.Update).Methods(http.MethodPut)
	admin.HandleFunc("/clinics/{id}", r.clinicHandler.Delete).Methods(http.MethodDelete)
	admin.HandleFunc("/assistants", r.assistantHandler.Create).Methods(http.MethodPost)
	admin.HandleFunc("/assistants/{id}", r.assistantHandler.GetByID).Methods(http.MethodGet)
	admin.HandleFunc("/assistants/{id}", r.assistantHandler.Update).Methods(http.MethodPut)
	admin.HandleFunc("/assistants/{id}", r.assistantHandler.Delete).Methods(http.MethodDelete)
	admin.HandleFunc("/slots", r.appointmentHandler.Create).Methods(http.MethodPost)
	admin.HandleFunc("/slots", r.appointmentHandler.GetAll).Methods(http.MethodGet)
	admin.HandleFunc("/slots/{id}", r.appointmentHandler.GetByID).Methods(http.MethodGet)
	admin.HandleFunc("/slots/{id}/status", r.appointmentHandler.UpdateStatus).Methods(http.MethodPatch)
	admin.HandleFunc("/slots/{id}", r.appointmentHandler.Delete).Methods(http.MethodDelete)
	admin.HandleFunc("/doctors/{doctorId}/slots", r.appointmentHandler.GetByDoctor).Methods(http.MethodGet)
	admin.HandleFunc("/bookings", r.bookingHandler.List).Methods(http.MethodGet)
	admin.HandleFunc("/bookings/{id}", r.bookingHandler.GetByID).Methods(http.MethodGet)
	admin.HandleFunc("/bookings/{id}/status", r.bookingHandler.UpdateStatus).Methods(http.MethodPatch)
	admin.HandleFunc("/bookings/{id}/cancel", r.bookingHandler.Cancel).Methods(http.MethodPost)
	admin.HandleFunc("/audit-logs", r.auditLogHandler.GetAll).Methods(http.MethodGet)
	admin.HandleFunc("/audit-logs/{id}", r.auditLogHandler.GetByID).Methods(http.MethodGet)

	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
