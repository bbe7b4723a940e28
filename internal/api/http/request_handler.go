package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"bloodbank-backend/internal/domain"
)

type createRequestBody struct {
	BloodType       domain.BloodType      `json:"blood_type"`
	UnitsNeeded     int                   `json:"units_needed"`
	Urgency         domain.RequestUrgency `json:"urgency"`
	HospitalName    string                `json:"hospital_name"`
	HospitalAddress string                `json:"hospital_address"`
	ContactNumber   string                `json:"contact_number"`
	MedicalReason   string                `json:"medical_reason"`
	RequiredBy      string                `json:"required_by"` // yyyy-mm-dd
	Notes           string                `json:"notes"`
}

func (h *handler) listRequests(w http.ResponseWriter, r *http.Request) {
	session, ok := mustSession(w, r)
	if !ok {
		return
	}
	status := domain.RequestStatus(r.URL.Query().Get("status"))
	reqs, err := h.svc.Requests.ListFor(r.Context(), session, status)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, orEmpty(reqs))
}

func (h *handler) createRequest(w http.ResponseWriter, r *http.Request) {
	session, ok := mustSession(w, r)
	if !ok {
		return
	}
	var body createRequestBody
	if err := readJSON(r, &body); err != nil {
		writeError(w, r, err)
		return
	}
	requiredBy, err := parseDate("required_by", body.RequiredBy)
	if err != nil {
		writeError(w, r, err)
		return
	}

	created, err := h.svc.Requests.Create(r.Context(), session, &domain.BloodRequest{
		BloodType:       body.BloodType,
		UnitsNeeded:     body.UnitsNeeded,
		Urgency:         body.Urgency,
		HospitalName:    body.HospitalName,
		HospitalAddress: body.HospitalAddress,
		ContactNumber:   body.ContactNumber,
		MedicalReason:   body.MedicalReason,
		RequiredBy:      requiredBy,
		Notes:           body.Notes,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *handler) reviewRequest(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	var (
		updated *domain.BloodRequest
		err     error
	)
	switch vars["action"] {
	case "approve":
		updated, err = h.svc.Requests.Approve(r.Context(), vars["id"])
	case "reject":
		updated, err = h.svc.Requests.Reject(r.Context(), vars["id"])
	case "fulfill":
		updated, err = h.svc.Requests.Fulfill(r.Context(), vars["id"])
	default:
		writeJSON(w, http.StatusNotFound, errorBody{Error: "unknown action " + vars["action"]})
		return
	}
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}
