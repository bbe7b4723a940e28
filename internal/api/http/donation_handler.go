package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"bloodbank-backend/internal/domain"
)

type scheduleDonationBody struct {
	BloodType      domain.BloodType `json:"blood_type"` // defaults to the donor's own
	DonationDate   string           `json:"donation_date"`
	Location       string           `json:"location"`
	UnitsCollected int              `json:"units_collected"`
	Notes          string           `json:"notes"`
}

func (h *handler) listDonations(w http.ResponseWriter, r *http.Request) {
	session, ok := mustSession(w, r)
	if !ok {
		return
	}
	status := domain.DonationStatus(r.URL.Query().Get("status"))
	out, err := h.svc.Donations.ListFor(r.Context(), session, status)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, orEmpty(out))
}

func (h *handler) scheduleDonation(w http.ResponseWriter, r *http.Request) {
	session, ok := mustSession(w, r)
	if !ok {
		return
	}
	var body scheduleDonationBody
	if err := readJSON(r, &body); err != nil {
		writeError(w, r, err)
		return
	}
	date, err := parseDate("donation_date", body.DonationDate)
	if err != nil {
		writeError(w, r, err)
		return
	}

	d, err := h.svc.Donations.Schedule(r.Context(), session, &domain.DonationRecord{
		BloodType:      body.BloodType,
		DonationDate:   date,
		Location:       body.Location,
		UnitsCollected: body.UnitsCollected,
		Notes:          body.Notes,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, d)
}

func (h *handler) eligibility(w http.ResponseWriter, r *http.Request) {
	session, ok := mustSession(w, r)
	if !ok {
		return
	}
	e, err := h.svc.Donations.Eligibility(r.Context(), session.UserID())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

func (h *handler) completeDonation(w http.ResponseWriter, r *http.Request) {
	d, err := h.svc.Donations.Complete(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (h *handler) cancelDonation(w http.ResponseWriter, r *http.Request) {
	session, ok := mustSession(w, r)
	if !ok {
		return
	}
	d, err := h.svc.Donations.Cancel(r.Context(), session, mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}
