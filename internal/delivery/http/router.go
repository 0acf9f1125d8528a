package http

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"volunteerhub/internal/delivery/http/controllers"
	"volunteerhub/internal/delivery/http/middleware"
	"volunteerhub/internal/domain"
)

// NewRouter initializes the HTTP router with all application routes.
func NewRouter(
	verifier domain.TokenVerifier,
	authController *controllers.AuthController,
	userController *controllers.UserController,
	eventController *controllers.EventController,
	registrationController *controllers.RegistrationController,
) *http.ServeMux {
	mux := http.NewServeMux()

	auth := middleware.RequireAuth(verifier)
	organizerOnly := middleware.RequireRole(domain.RoleOrganizer, domain.RoleAdmin)
	adminOnly := middleware.RequireRole(domain.RoleAdmin)

	// Auth
	mux.HandleFunc("POST /auth/signup", authController.SignUp)
	mux.HandleFunc("POST /auth/login", authController.Login)

	// Users
	mux.HandleFunc("GET /users/me", auth(userController.GetMe))

	// Events
	mux.HandleFunc("POST /events", auth(organizerOnly(eventController.CreateEvent)))
	mux.HandleFunc("GET /events", eventController.ListEvents)
	mux.HandleFunc("GET /events/{eventID}", eventController.GetEvent)
	mux.HandleFunc("POST /events/{eventID}/cancel", auth(organizerOnly(eventController.CancelEvent)))
	mux.HandleFunc("DELETE /events/{eventID}", auth(adminOnly(eventController.DeleteEvent)))

	// Registrations
	mux.HandleFunc("POST /events/{eventID}/registrations", auth(registrationController.Register))
	mux.HandleFunc("DELETE /events/{eventID}/registrations", auth(registrationController.CancelRegistration))
	mux.HandleFunc("GET /events/{eventID}/registrations", auth(organizerOnly(registrationController.ListEventRegistrations)))
	mux.HandleFunc("GET /me/registrations", auth(registrationController.ListMyRegistrations))

	// Observability and docs
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
