package http

import (
	"net/http"

	"bloodbank-backend/internal/domain"
)

type loginBody struct {
	Email string `json:"email"`
}

type registerBody struct {
	Email       string           `json:"email"`
	Name        string           `json:"name"`
	Role        domain.UserRole  `json:"role"`
	Phone       string           `json:"phone"`
	Address     string           `json:"address"`
	BloodType   domain.BloodType `json:"blood_type"`
	DateOfBirth string           `json:"date_of_birth"` // yyyy-mm-dd, optional
}

type authResponse struct {
	User  *domain.User `json:"user"`
	Token string       `json:"token"`
}

func (h *handler) login(w http.ResponseWriter, r *http.Request) {
	var body loginBody
	if err := readJSON(r, &body); err != nil {
		writeError(w, r, err)
		return
	}
	user, token, err := h.svc.Auth.Login(r.Context(), body.Email)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, authResponse{User: user, Token: token})
}

func (h *handler) register(w http.ResponseWriter, r *http.Request) {
	var body registerBody
	if err := readJSON(r, &body); err != nil {
		writeError(w, r, err)
		return
	}
	dob, err := parseOptionalDate("date_of_birth", body.DateOfBirth)
	if err != nil {
		writeError(w, r, err)
		return
	}

	user, token, err := h.svc.Auth.Register(r.Context(), &domain.User{
		Email:       body.Email,
		Name:        body.Name,
		Role:        body.Role,
		Phone:       body.Phone,
		Address:     body.Address,
		BloodType:   body.BloodType,
		DateOfBirth: dob,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, authResponse{User: user, Token: token})
}

func (h *handler) dashboard(w http.ResponseWriter, r *http.Request) {
	session, ok := mustSession(w, r)
	if !ok {
		return
	}
	d, err := h.svc.Dashboard.Build(r.Context(), session)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}
