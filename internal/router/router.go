package router

import (
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"device-checkin-web/internal/config"
	"device-checkin-web/internal/handler"
	"device-checkin-web/internal/middleware"
	"device-checkin-web/internal/session"
)

// NewRouter creates the page router and wires the middleware chain.
func NewRouter(h *handler.Handler, sessions *session.Manager, cfg *config.Config, logger *log.Logger) *mux.Router {
	if logger == nil {
		logger = log.Default()
	}

	r := mux.NewRouter()

	securityMW := middleware.NewSecurityMiddleware(&cfg.Security)
	loggingMW := middleware.NewLoggingMiddleware(logger)
	authMW := middleware.NewAuthMiddleware(sessions)

	// Apply global middleware in order
	r.Use(securityMW.SecurityHeaders)
	r.Use(securityMW.TrustedProxy)
	r.Use(securityMW.RateLimit)
	r.Use(securityMW.RequestTimeout)
	r.Use(loggingMW.LogRequests)

	// Auth pages, reachable without a session
	r.HandleFunc("/login", h.ShowLogin).Methods("GET")
	r.HandleFunc("/login", h.Login).Methods("POST")
	r.HandleFunc("/register", h.ShowRegister).Methods("GET")
	r.HandleFunc("/register", h.Register).Methods("POST")
	r.HandleFunc("/forgot-password", h.ShowForgotPassword).Methods("GET")
	r.HandleFunc("/forgot-password", h.ForgotPassword).Methods("POST")
	r.HandleFunc("/logout", h.Logout).Methods("POST")

	r.HandleFunc("/health", h.Health).Methods("GET")

	// Everything else sits behind the login gate
	app := r.NewRoute().Subrouter()
	app.Use(authMW.RequireLogin)

	app.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/devices", http.StatusSeeOther)
	}).Methods("GET")

	// Entered devices
	app.HandleFunc("/devices", h.ListDevices).Methods("GET")
	app.HandleFunc("/devices/{id}", h.ShowDevice).Methods("GET")
	app.HandleFunc("/devices/{id}/checkout", h.CheckoutDevice).Methods("POST")
	app.HandleFunc("/devices/{id}/frequent", h.MarkFrequent).Methods("POST")
	app.HandleFunc("/devices/{id}/edit", h.ShowEdit).Methods("GET")
	app.HandleFunc("/devices/{id}/edit", h.UpdateDevice).Methods("POST")
	app.HandleFunc("/devices/{id}/delete", h.DeleteDevice).Methods("POST")

	// Check-in forms
	app.HandleFunc("/checkin", h.ShowCheckin).Methods("GET")
	app.HandleFunc("/checkin/computer", h.ShowComputerCheckin).Methods("GET")
	app.HandleFunc("/checkin/computer", h.CheckinComputer).Methods("POST")
	app.HandleFunc("/checkin/medical", h.ShowMedicalCheckin).Methods("GET")
	app.HandleFunc("/checkin/medical", h.CheckinMedical).Methods("POST")

	// Frequent computers and their QR deep links
	app.HandleFunc("/frequent", h.ListFrequent).Methods("GET")
	app.HandleFunc("/frequent/qr/{action}/{id}", h.FrequentQR).Methods("GET")
	app.HandleFunc("/qr.png", h.QRImage).Methods("GET")

	// External companies
	app.HandleFunc("/companies", h.ListCompanies).Methods("GET")
	app.HandleFunc("/companies", h.CreateCompany).Methods("POST")
	app.HandleFunc("/companies/{id}/edit", h.UpdateCompany).Methods("POST")

	// Support tickets
	app.HandleFunc("/tickets", h.ListTickets).Methods("GET")
	app.HandleFunc("/tickets", h.CreateTicket).Methods("POST")
	app.HandleFunc("/tickets/{id}/status", h.UpdateTicketStatus).Methods("POST")
	app.HandleFunc("/tickets/{id}/delete", h.DeleteTicket).Methods("POST")

	// Audit views
	app.HandleFunc("/audit", h.ListAudit).Methods("GET")
	app.HandleFunc("/audit/me", h.MyAudit).Methods("GET")
	app.HandleFunc("/audit/deleted-users", h.DeletedUsers).Methods("GET")
	app.HandleFunc("/audit/equipment/{id}", h.EquipmentAudit).Methods("GET")

	// Stored device photos, proxied from the backend
	app.PathPrefix("/uploads/").HandlerFunc(h.Photo).Methods("GET")

	r.NotFoundHandler = http.HandlerFunc(h.NotFound)

	return r
}
