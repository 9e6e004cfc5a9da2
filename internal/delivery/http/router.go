package http

import (
	"log/slog"
	"net/http"

	"eventdiscovery/internal/delivery/http/controllers"
	"eventdiscovery/internal/delivery/http/middleware"
	"eventdiscovery/internal/domain"

	_ "eventdiscovery/docs"

	httpSwagger "github.com/swaggo/http-swagger"
)

// Controllers groups the HTTP controllers mounted by NewRouter.
type Controllers struct {
	Auth   *controllers.AuthController
	Event  *controllers.EventController
	Filter *controllers.FilterController
	Health *controllers.HealthController
}

// NewRouter initializes the HTTP router with all application routes.
// Protected routes run the auth interceptor with verifier first.
func NewRouter(c Controllers, verifier domain.TokenVerifier, logger *slog.Logger) *http.ServeMux {
	mux := http.NewServeMux()
	auth := middleware.RequireAuth(verifier, logger)
	canPublish := middleware.RequireUserType(domain.UserTypeUser, domain.UserTypeAdmin)

	// Auth
	mux.HandleFunc("POST /v1/auth", c.Auth.Login)
	mux.HandleFunc("POST /v1/auth/refresh", c.Auth.Refresh)
	mux.HandleFunc("POST /v1/auth/create", c.Auth.Register)
	mux.HandleFunc("GET /v1/auth/account/info", middleware.Chain(c.Auth.AccountInfo, auth))
	mux.HandleFunc("POST /v1/auth/password", middleware.Chain(c.Auth.ChangePassword, auth))

	// Events
	mux.HandleFunc("POST /v1/events/create", middleware.Chain(c.Event.SaveEvent, auth, canPublish))
	mux.HandleFunc("GET /v1/events", middleware.Chain(c.Event.ListEvents, auth))

	// Filters
	mux.HandleFunc("POST /v1/events/filters/save", middleware.Chain(c.Filter.SaveFilter, auth))
	mux.HandleFunc("GET /v1/events/filters", middleware.Chain(c.Filter.ListFilters, auth))

	mux.HandleFunc("GET /healthz", c.Health.Health)

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
