package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/srgjo27/reservation_engine/internal/core/services"
)

type createShareRequest struct {
	ReservationID string `json:"reservation_id" validate:"required,uuid"`
	Message       string `json:"message" validate:"max=500"`
}

type shareLinkResponse struct {
	ShareID    string    `json:"share_id"`
	URL        string    `json:"url"`
	ExpiryHint time.Time `json:"expiry_hint"`
}

type ShareHandler struct {
	svc *services.ShareLinkService
}

func NewShareHandler(svc *services.ShareLinkService) *ShareHandler {
	return &ShareHandler{svc: svc}
}

func (h *ShareHandler) Create(w http.ResponseWriter, r *http.Request) {
	staff, _ := StaffFrom(r.Context())

	var req createShareRequest
	if err := decodeJSON(w, r, &req, false); err != nil {
		writeDomainError(w, r, err)
		return
	}

	result, err := h.svc.Create(r.Context(), staff.TenantID, uuid.MustParse(req.ReservationID), req.Message)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, shareLinkResponse{
		ShareID:    result.Link.ShareID,
		URL:        result.URL,
		ExpiryHint: result.ExpiryHint,
	})
}

// View is public. Every request counts, so intermediaries must not cache it.
func (h *ShareHandler) View(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "no-store")

	view, err := h.svc.View(r.Context(), r.PathValue("shareId"))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, view)
}

func (h *ShareHandler) QRImage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "no-store")

	png, err := h.svc.QRImage(r.Context(), r.PathValue("shareId"))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(png)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}
