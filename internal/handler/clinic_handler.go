package handler

import (
	"net/http"

	"petclinic-console/internal/model"
	"petclinic-console/internal/service"

	"github.com/rs/zerolog"
)

// ClinicHandler serves the vet list and the bill history.
type ClinicHandler struct {
	service service.ClinicService
	logger  zerolog.Logger
}

// NewClinicHandler creates a new clinic handler.
func NewClinicHandler(service service.ClinicService, logger zerolog.Logger) *ClinicHandler {
	return &ClinicHandler{
		service: service,
		logger:  logger.With().Str("handler", "clinic").Logger(),
	}
}

// Vets handles GET /vets requests.
func (h *ClinicHandler) Vets(w http.ResponseWriter, r *http.Request) {
	vets, err := h.service.ListVets(r.Context())
	if err != nil {
		writeDomainError(w, err, "failed to retrieve vets", h.logger)
		return
	}

	writeList(w, r, vets, h.logger)
}

// Bills handles GET /bills requests.
func (h *ClinicHandler) Bills(w http.ResponseWriter, r *http.Request) {
	h.bills(w, r, "")
}

// PaidBills handles GET /bills/paid requests.
func (h *ClinicHandler) PaidBills(w http.ResponseWriter, r *http.Request) {
	h.bills(w, r, model.BillPaid)
}

// UnpaidBills handles GET /bills/unpaid requests.
func (h *ClinicHandler) UnpaidBills(w http.ResponseWriter, r *http.Request) {
	h.bills(w, r, model.BillUnpaid)
}

// OverdueBills handles GET /bills/overdue requests.
func (h *ClinicHandler) OverdueBills(w http.ResponseWriter, r *http.Request) {
	h.bills(w, r, model.BillOverdue)
}

func (h *ClinicHandler) bills(w http.ResponseWriter, r *http.Request, status model.BillStatus) {
	bills, err := h.service.ListBills(r.Context(), status)
	if err != nil {
		writeDomainError(w, err, "failed to retrieve bills", h.logger)
		return
	}

	writeList(w, r, bills, h.logger)
}
