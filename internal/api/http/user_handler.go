package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"bloodbank-backend/internal/domain"
)

func (h *handler) listUsers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	users, err := h.svc.Users.List(r.Context(), domain.UserRole(q.Get("role")), q.Get("q"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, orEmpty(users))
}

type notificationsResponse struct {
	Notifications []domain.Notification `json:"notifications"`
	Unread        int                   `json:"unread"`
}

func (h *handler) listNotifications(w http.ResponseWriter, r *http.Request) {
	session, ok := mustSession(w, r)
	if !ok {
		return
	}
	notes, err := h.svc.Notifications.List(r.Context(), session.UserID())
	if err != nil {
		writeError(w, r, err)
		return
	}
	unread, err := h.svc.Notifications.UnreadCount(r.Context(), session.UserID())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, notificationsResponse{Notifications: orEmpty(notes), Unread: unread})
}

func (h *handler) markNotificationRead(w http.ResponseWriter, r *http.Request) {
	session, ok := mustSession(w, r)
	if !ok {
		return
	}
	if err := h.svc.Notifications.MarkAsRead(r.Context(), session.UserID(), mux.Vars(r)["id"]); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
