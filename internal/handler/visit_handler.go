package handler

import (
	"net/http"
	"strings"

	"petclinic-console/internal/model"
	"petclinic-console/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// VisitHandler handles visit-related HTTP requests.
type VisitHandler struct {
	service service.VisitService
	logger  zerolog.Logger
}

// NewVisitHandler creates a new visit handler.
func NewVisitHandler(service service.VisitService, logger zerolog.Logger) *VisitHandler {
	return &VisitHandler{
		service: service,
		logger:  logger.With().Str("handler", "visit").Logger(),
	}
}

// List handles GET /visits requests.
func (h *VisitHandler) List(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, "", "")
}

// ByVet handles GET /visits/vets/{vetId} requests.
func (h *VisitHandler) ByVet(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, chi.URLParam(r, "vetId"), "")
}

// ByOwner handles GET /visits/owners/{ownerId} requests.
func (h *VisitHandler) ByOwner(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, "", chi.URLParam(r, "ownerId"))
}

func (h *VisitHandler) list(w http.ResponseWriter, r *http.Request, practitionerID, ownerID string) {
	visits, err := h.service.List(r.Context(), practitionerID, ownerID)
	if err != nil {
		writeDomainError(w, err, "failed to retrieve visits", h.logger)
		return
	}

	writeList(w, r, visits, h.logger)
}

// UpdateStatus handles PUT /visits/{visitId}/status/{status} requests.
func (h *VisitHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	visitID := chi.URLParam(r, "visitId")
	status := model.VisitStatus(strings.ToUpper(chi.URLParam(r, "status")))

	visit, err := h.service.UpdateStatus(r.Context(), visitID, status)
	if err != nil {
		writeDomainError(w, err, "failed to update visit status", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, visit)
}

// Delete handles DELETE /visits/{visitId} requests.
func (h *VisitHandler) Delete(w http.ResponseWriter, r *http.Request) {
	visitID := chi.URLParam(r, "visitId")

	if err := h.service.Delete(r.Context(), visitID); err != nil {
		writeDomainError(w, err, "failed to delete visit", h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
