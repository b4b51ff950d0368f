package httpserver

import (
	"net/http"

	"github.com/gorilla/mux"

	"evrental/internal/http/handlers"
)

// RouterDeps collects handler dependencies.
type RouterDeps struct {
	Auth          *handlers.AuthHandlers
	Stations      *handlers.StationsHandlers
	Catalog       *handlers.CatalogHandlers
	Bookings      *handlers.BookingsHandlers
	Profile       *handlers.ProfileHandlers
	Admin         *handlers.AdminHandlers
	SessionEvents *handlers.SessionEventsHandler
	HealthHandler http.HandlerFunc
}

// NewRouter wires HTTP routes with middleware.
func NewRouter(deps RouterDeps, authMiddleware func(http.Handler) http.Handler) http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/healthz", deps.HealthHandler).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()

	authed := func(handler http.HandlerFunc) http.Handler {
		return authMiddleware(handler)
	}

	// Public surface: browsing and account recovery need no session.
	api.HandleFunc("/auth/login", deps.Auth.Login).Methods(http.MethodPost)
	api.HandleFunc("/auth/register", deps.Auth.Register).Methods(http.MethodPost)
	api.HandleFunc("/auth/forgot-password", deps.Auth.ForgotPassword).Methods(http.MethodPost)
	api.HandleFunc("/auth/reset-password", deps.Auth.ResetPassword).Methods(http.MethodPost)
	api.HandleFunc("/stations", deps.Stations.List).Methods(http.MethodGet)
	api.HandleFunc("/stations/{id}", deps.Stations.Get).Methods(http.MethodGet)
	api.HandleFunc("/stations/{id}/ratings", deps.Stations.Ratings).Methods(http.MethodGet)
	api.HandleFunc("/stations/{id}/models", deps.Catalog.Models).Methods(http.MethodGet)

	// The websocket handshake validates its session itself.
	api.HandleFunc("/session/events", deps.SessionEvents.Events).Methods(http.MethodGet)

	api.Handle("/auth/logout", authed(deps.Auth.Logout)).Methods(http.MethodPost)
	api.Handle("/session", authed(deps.Auth.Session)).Methods(http.MethodGet)
	api.Handle("/stations/{id}/ratings", authed(deps.Stations.Rate)).Methods(http.MethodPost)

	api.Handle("/profile/me", authed(deps.Profile.Me)).Methods(http.MethodGet)
	api.Handle("/profile", authed(deps.Profile.Update)).Methods(http.MethodPut)
	api.Handle("/profile/verification", authed(deps.Profile.UploadVerification)).Methods(http.MethodPost)

	api.Handle("/bookings/quote", authed(deps.Bookings.Quote)).Methods(http.MethodPost)
	api.Handle("/bookings", authed(deps.Bookings.Create)).Methods(http.MethodPost)
	api.Handle("/bookings/{id}", authed(deps.Bookings.Get)).Methods(http.MethodGet)
	api.Handle("/bookings/{id}/pay-deposit", authed(deps.Bookings.PayDeposit)).Methods(http.MethodPost)
	api.Handle("/bookings/{id}/cancel", authed(deps.Bookings.Cancel)).Methods(http.MethodPost)

	api.Handle("/admin/station/users", authed(deps.Admin.Users)).Methods(http.MethodGet)
	api.Handle("/admin/station/users/{id}", authed(deps.Admin.User)).Methods(http.MethodGet)
	api.Handle("/admin/station/users/{id}/role", authed(deps.Admin.UpdateRole)).Methods(http.MethodPut)
	api.Handle("/admin/station/users/{id}/status", authed(deps.Admin.UpdateStatus)).Methods(http.MethodPatch)

	return r
}
