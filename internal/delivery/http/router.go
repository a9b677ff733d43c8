package http

import (
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"eventcrm/internal/delivery/http/controllers"
	"eventcrm/internal/delivery/http/middleware"
	"eventcrm/internal/domain"
)

// Controllers groups the handlers mounted by NewRouter.
type Controllers struct {
	Users         *controllers.UserController
	Events        *controllers.EventController
	Notifications *controllers.NotificationController
	Analytics     *controllers.AnalyticsController
}

// NewRouter initializes the HTTP router with all application routes.
// When verifier is non-nil the notification routes require a Bearer token.
func NewRouter(c Controllers, verifier domain.TokenVerifier, logger *slog.Logger) *http.ServeMux {
	mux := http.NewServeMux()

	guard := func(next http.HandlerFunc) http.HandlerFunc { return next }
	if verifier != nil {
		guard = middleware.RequireAuth(verifier, logger)
	}

	// Users
	mux.HandleFunc("POST /users", c.Users.CreateUser)
	mux.HandleFunc("GET /users", c.Users.FilterUsers)
	mux.HandleFunc("GET /users/all", c.Users.ListUsers)
	mux.HandleFunc("GET /users/{userID}", c.Users.GetUser)
	mux.HandleFunc("PUT /users/{userID}", c.Users.UpdateUser)
	mux.HandleFunc("DELETE /users/{userID}", c.Users.DeleteUser)
	mux.HandleFunc("POST /users/{userID}/events/{eventID}/register", c.Events.RegisterForEvent)

	// Events
	mux.HandleFunc("POST /events", c.Events.CreateEvent)
	mux.HandleFunc("GET /events", c.Events.ListEvents)
	mux.HandleFunc("GET /events/all", c.Events.ListEvents)
	mux.HandleFunc("GET /events/{eventID}", c.Events.GetEvent)
	mux.HandleFunc("PUT /events/{eventID}", c.Events.UpdateEvent)
	mux.HandleFunc("DELETE /events/{eventID}", c.Events.DeleteEvent)

	// Notifications
	mux.HandleFunc("POST /send-emails", guard(c.Notifications.SendEmails))
	mux.HandleFunc("GET /email-logs", guard(c.Notifications.ListEmailLogs))

	// Analytics
	mux.HandleFunc("GET /analytics/user-engagement", c.Analytics.UserEngagement)

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
