package http

import (
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"devevent/internal/delivery/http/controllers"
	"devevent/internal/delivery/http/middleware"
	"devevent/internal/domain"
)

// NewRouter initializes the HTTP router with all application routes.
// Event mutations require a bearer token; reads and booking creation are public.
func NewRouter(
	logger *slog.Logger,
	verifier domain.TokenVerifier,
	eventController *controllers.EventController,
	bookingController *controllers.BookingController,
	authController *controllers.AuthController,
) *http.ServeMux {
	mux := http.NewServeMux()
	requireAuth := middleware.RequireAuth(verifier, logger)

	// Events
	mux.HandleFunc("GET /events", eventController.List)
	mux.HandleFunc("GET /events/{slug}", eventController.GetBySlug)
	mux.HandleFunc("POST /events", requireAuth(eventController.Create))
	mux.HandleFunc("PUT /events/{slug}", requireAuth(eventController.Update))
	mux.HandleFunc("DELETE /events/{slug}", requireAuth(eventController.Delete))

	// Bookings
	mux.HandleFunc("POST /bookings", bookingController.Create)
	mux.HandleFunc("GET /bookings", requireAuth(bookingController.ListByEmail))

	// Auth
	mux.HandleFunc("POST /auth/login", authController.Login)

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
