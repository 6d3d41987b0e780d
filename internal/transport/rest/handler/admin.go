package handler

import (
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"redlight/internal/service"
)

// AdminHandler handles the token-protected admin endpoints
type AdminHandler struct {
	analyticsSvc *service.AnalyticsService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(analyticsSvc *service.AnalyticsService) *AdminHandler {
	return &AdminHandler{analyticsSvc: analyticsSvc}
}

// InstitutionSummary handles GET /api/admin/institution/{name}/summary
func (h *AdminHandler) InstitutionSummary(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	report, err := h.analyticsSvc.InstitutionReport(r.Context(), name)
	if err != nil {
		log.Printf("institution report failed: %v", err)
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}

	writeJSON(w, http.StatusOK, report)
}

// Institutions handles GET /api/admin/institutions
func (h *AdminHandler) Institutions(w http.ResponseWriter, r *http.Request) {
	resp, err := h.analyticsSvc.PriorityList(r.Context())
	if err != nil {
		log.Printf("priority list failed: %v", err)
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}

	writeJSON(w, http.StatusOK, resp)
}
