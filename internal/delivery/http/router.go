package http

import (
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"meetupscheduler/internal/delivery/http/controllers"
	"meetupscheduler/internal/delivery/http/middleware"
	"meetupscheduler/internal/domain"
)

// NewRouter initializes the HTTP router with all application routes.
func NewRouter(
	logger *slog.Logger,
	verifier domain.TokenVerifier,
	authController *controllers.AuthController,
	meetupController *controllers.MeetupController,
	subscriptionController *controllers.SubscriptionController,
	userController *controllers.UserController,
) *http.ServeMux {
	mux := http.NewServeMux()
	requireAuth := middleware.RequireAuth(verifier, logger)

	// Auth
	mux.HandleFunc("POST /auth/signup", authController.SignUp)
	mux.HandleFunc("POST /auth/login", authController.Login)

	// Meetups
	mux.HandleFunc("GET /meetups", requireAuth(meetupController.List))
	mux.HandleFunc("POST /meetups", requireAuth(meetupController.Create))
	mux.HandleFunc("GET /meetups/{meetupID}", requireAuth(meetupController.Get))
	mux.HandleFunc("PUT /meetups/{meetupID}", requireAuth(meetupController.Update))
	mux.HandleFunc("DELETE /meetups/{meetupID}", requireAuth(meetupController.Delete))

	// Subscriptions
	mux.HandleFunc("POST /meetups/{meetupID}/subscriptions", requireAuth(subscriptionController.Subscribe))
	mux.HandleFunc("GET /subscriptions", requireAuth(subscriptionController.ListUpcoming))

	// Users
	mux.HandleFunc("GET /users/me", requireAuth(userController.GetMe))
	mux.HandleFunc("PUT /users/me", requireAuth(userController.UpdateMe))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
