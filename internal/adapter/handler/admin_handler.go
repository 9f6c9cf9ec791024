package handler

import (
	"net/http"
	"time"

	"github.com/srgjo27/reservation_engine/internal/core/domain"
	"github.com/srgjo27/reservation_engine/internal/core/services"
)

// reconcileRequest names either an explicit window or a business day.
type reconcileRequest struct {
	WindowStart *time.Time `json:"window_start"`
	WindowEnd   *time.Time `json:"window_end"`
	BusinessDay string     `json:"business_day" validate:"omitempty,datetime=2006-01-02"`
}

type purgeRequest struct {
	Before time.Time `json:"before" validate:"required"`
}

type purgeResponse struct {
	ShareLinks int64 `json:"share_links"`
	QRCodes    int64 `json:"qr_codes"`
}

type AdminHandler struct {
	reconciler  *services.ReconciliationService
	maintenance *services.MaintenanceService
}

func NewAdminHandler(reconciler *services.ReconciliationService, maintenance *services.MaintenanceService) *AdminHandler {
	return &AdminHandler{reconciler: reconciler, maintenance: maintenance}
}

func (h *AdminHandler) Reconcile(w http.ResponseWriter, r *http.Request) {
	staff, _ := StaffFrom(r.Context())

	var req reconcileRequest
	if err := decodeJSON(w, r, &req, false); err != nil {
		writeDomainError(w, r, err)
		return
	}

	var (
		summary *services.ReconcileSummary
		err     error
	)
	if req.BusinessDay != "" {
		day, parseErr := domain.ParseBusinessDay(req.BusinessDay)
		if parseErr != nil {
			writeDomainError(w, r, parseErr)
			return
		}
		summary, err = h.reconciler.ReconcileDay(r.Context(), staff.TenantID, day)
	} else {
		if req.WindowStart == nil || req.WindowEnd == nil {
			writeDomainError(w, r, domain.Validationf("window_start and window_end or business_day are required"))
			return
		}
		summary, err = h.reconciler.Reconcile(r.Context(), staff.TenantID, *req.WindowStart, *req.WindowEnd)
	}
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, summary)
}

func (h *AdminHandler) Purge(w http.ResponseWriter, r *http.Request) {
	staff, _ := StaffFrom(r.Context())

	var req purgeRequest
	if err := decodeJSON(w, r, &req, false); err != nil {
		writeDomainError(w, r, err)
		return
	}

	result, err := h.maintenance.Purge(r.Context(), staff.TenantID, req.Before)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, purgeResponse{ShareLinks: result.ShareLinks, QRCodes: result.QRCodes})
}
