package http

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"bloodbank-backend/internal/config"
	"bloodbank-backend/internal/service"
)

// Services bundles what the handlers call. Health may be nil.
type Services struct {
	Auth          service.AuthService
	Inventory     service.InventoryService
	Requests      service.RequestService
	Donations     service.DonationService
	Users         service.UserService
	Notifications service.NotificationService
	Dashboard     service.DashboardService
	Health        func(ctx context.Context) error
}

type handler struct {
	svc Services
}

// NewRouter registers the JSON API under /api/v1 and a /healthz probe.
func NewRouter(svc Services, auth config.AuthConfig) *mux.Router {
	h := &handler{svc: svc}
	limiter := newLoginLimiter(auth.LoginRatePerMinute, auth.LoginBurst)

	r := mux.NewRouter()
	r.HandleFunc("/healthz", h.health).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(loggingMiddleware)
	api.Use((&authMiddleware{auth: svc.Auth}).Handler)

	api.HandleFunc("/auth/login", limiter.Wrap(h.login)).Methods(http.MethodPost)
	api.HandleFunc("/auth/register", h.register).Methods(http.MethodPost)

	api.HandleFunc("/dashboard", h.dashboard).Methods(http.MethodGet)

	api.HandleFunc("/inventory", h.inventoryOverview).Methods(http.MethodGet)
	api.HandleFunc("/inventory/summary", h.inventorySummary).Methods(http.MethodGet)
	api.HandleFunc("/inventory/search", h.inventorySearch).Methods(http.MethodGet)

	api.HandleFunc("/requests", h.listRequests).Methods(http.MethodGet)
	api.HandleFunc("/requests", h.createRequest).Methods(http.MethodPost)
	api.HandleFunc("/requests/{id}/{action}", h.reviewRequest).Methods(http.MethodPost)

	api.HandleFunc("/donations", h.listDonations).Methods(http.MethodGet)
	api.HandleFunc("/donations", h.scheduleDonation).Methods(http.MethodPost)
	api.HandleFunc("/donations/eligibility", h.eligibility).Methods(http.MethodGet)
	api.HandleFunc("/donations/{id}/complete", h.completeDonation).Methods(http.MethodPost)
	api.HandleFunc("/donations/{id}/cancel", h.cancelDonation).Methods(http.MethodPost)

	api.HandleFunc("/users", h.listUsers).Methods(http.MethodGet)

	api.HandleFunc("/notifications", h.listNotifications).Methods(http.MethodGet)
	api.HandleFunc("/notifications/{id}/read", h.markNotificationRead).Methods(http.MethodPost)

	return r
}

func (h *handler) health(w http.ResponseWriter, r *http.Request) {
	if h.svc.Health != nil {
		if err := h.svc.Health(r.Context()); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable", "error": err.Error()})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
