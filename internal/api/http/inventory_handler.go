package http

import (
	"net/http"
	"strconv"
	"strings"

	"bloodbank-backend/internal/domain"
)

func (h *handler) inventoryOverview(w http.ResponseWriter, r *http.Request) {
	overview, err := h.svc.Inventory.Overview(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, overview)
}

func (h *handler) inventorySummary(w http.ResponseWriter, r *http.Request) {
	sum, err := h.svc.Inventory.Summary(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sum)
}

// inventorySearch reads blood_type, location, radius (km, blank for no
// limit) and availability from the query string.
func (h *handler) inventorySearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := domain.SearchFilter{
		Location:     q.Get("location"),
		Availability: domain.Availability(q.Get("availability")),
	}
	if raw := q.Get("blood_type"); raw != "" {
		bt, err := domain.ParseBloodType(raw)
		if err != nil {
			writeError(w, r, err)
			return
		}
		filter.BloodType = bt
	}
	if raw := strings.TrimSpace(q.Get("radius")); raw != "" {
		radius, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			writeError(w, r, &domain.ValidationError{Field: "radius", Message: "must be a number"})
			return
		}
		filter.RadiusKm = radius
	}

	results, err := h.svc.Inventory.Search(r.Context(), filter)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, orEmpty(results))
}
