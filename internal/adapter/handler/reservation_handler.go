package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/srgjo27/reservation_engine/internal/core/domain"
	"github.com/srgjo27/reservation_engine/internal/core/services"
)

type createReservationRequest struct {
	CustomerName  string    `json:"customer_name" validate:"required,max=200"`
	CustomerPhone string    `json:"customer_phone" validate:"omitempty,max=40"`
	CustomerEmail string    `json:"customer_email" validate:"omitempty,email"`
	ReservedAt    time.Time `json:"reserved_at" validate:"required"`
	GuestCount    int       `json:"guest_count" validate:"required,gt=0"`
	Details       string    `json:"details" validate:"max=2000"`
	PromoterID    string    `json:"promoter_id"`
	Source        string    `json:"source"`
	Confirmed     bool      `json:"confirmed"`
}

type reasonRequest struct {
	Reason string `json:"reason" validate:"max=500"`
}

type rescheduleRequest struct {
	ReservedAt time.Time `json:"reserved_at" validate:"required"`
	Reason     string    `json:"reason" validate:"max=500"`
}

type correctRequest struct {
	Status string `json:"status" validate:"required"`
	Reason string `json:"reason" validate:"required,max=500"`
}

type qrResponse struct {
	Token     string     `json:"token"`
	Version   int        `json:"version"`
	ScanCount int        `json:"scan_count"`
	ExpiresAt time.Time  `json:"expires_at"`
	LastScan  *time.Time `json:"last_scanned_at,omitempty"`
}

type reservationResponse struct {
	ID            uuid.UUID   `json:"id"`
	Number        string      `json:"number"`
	CustomerName  string      `json:"customer_name"`
	CustomerPhone string      `json:"customer_phone,omitempty"`
	CustomerEmail string      `json:"customer_email,omitempty"`
	ReservedAt    time.Time   `json:"reserved_at"`
	GuestCount    int         `json:"guest_count"`
	Details       string      `json:"details,omitempty"`
	PromoterID    string      `json:"promoter_id,omitempty"`
	Source        string      `json:"source,omitempty"`
	Status        string      `json:"status"`
	CheckedInAt   *time.Time  `json:"checked_in_at,omitempty"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
	QR            *qrResponse `json:"qr,omitempty"`
}

type transitionResponse struct {
	Reservation reservationResponse `json:"reservation"`
	From        string              `json:"from"`
	To          string              `json:"to"`
	Changed     bool                `json:"changed"`
}

func toQRResponse(qr *domain.QRCode) *qrResponse {
	if qr == nil {
		return nil
	}
	return &qrResponse{
		Token:     qr.Token,
		Version:   qr.Version,
		ScanCount: qr.ScanCount,
		ExpiresAt: qr.ExpiresAt,
		LastScan:  qr.LastScannedAt,
	}
}

func toReservationResponse(res *domain.Reservation, qr *domain.QRCode) reservationResponse {
	return reservationResponse{
		ID:            res.ID,
		Number:        res.Number,
		CustomerName:  res.CustomerName,
		CustomerPhone: res.CustomerPhone,
		CustomerEmail: res.CustomerEmail,
		ReservedAt:    res.ReservedAt,
		GuestCount:    res.GuestCount,
		Details:       res.Details,
		PromoterID:    res.PromoterID,
		Source:        res.Source,
		Status:        string(res.Status),
		CheckedInAt:   res.CheckedInAt,
		CreatedAt:     res.CreatedAt,
		UpdatedAt:     res.UpdatedAt,
		QR:            toQRResponse(qr),
	}
}

func toTransitionResponse(tr services.TransitionResult) transitionResponse {
	return transitionResponse{
		Reservation: toReservationResponse(tr.Reservation, nil),
		From:        string(tr.From),
		To:          string(tr.To),
		Changed:     tr.Changed,
	}
}

func actorOf(staff domain.StaffIdentity) string {
	return "staff:" + staff.StaffID
}

type ReservationHandler struct {
	svc    *services.ReservationService
	issuer *services.QRIssuer
}

func NewReservationHandler(svc *services.ReservationService, issuer *services.QRIssuer) *ReservationHandler {
	return &ReservationHandler{svc: svc, issuer: issuer}
}

func (h *ReservationHandler) Create(w http.ResponseWriter, r *http.Request) {
	staff, _ := StaffFrom(r.Context())

	var req createReservationRequest
	if err := decodeJSON(w, r, &req, false); err != nil {
		writeDomainError(w, r, err)
		return
	}

	details, err := h.svc.Create(r.Context(), domain.CreateReservationInput{
		TenantID:      staff.TenantID,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		CustomerEmail: req.CustomerEmail,
		ReservedAt:    req.ReservedAt,
		GuestCount:    req.GuestCount,
		Details:       req.Details,
		PromoterID:    req.PromoterID,
		Source:        req.Source,
		Confirmed:     req.Confirmed,
	})
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toReservationResponse(details.Reservation, details.QR))
}

func (h *ReservationHandler) Get(w http.ResponseWriter, r *http.Request) {
	staff, _ := StaffFrom(r.Context())
	id, err := pathUUID(r, "id")
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	details, err := h.svc.Get(r.Context(), staff.TenantID, id)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toReservationResponse(details.Reservation, details.QR))
}

func (h *ReservationHandler) IssueQR(w http.ResponseWriter, r *http.Request) {
	staff, _ := StaffFrom(r.Context())
	id, err := pathUUID(r, "id")
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	qr, err := h.issuer.Issue(r.Context(), staff.TenantID, id)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toQRResponse(qr))
}

func (h *ReservationHandler) Act(w http.ResponseWriter, r *http.Request) {
	staff, _ := StaffFrom(r.Context())
	id, err := pathUUID(r, "id")
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	var req reasonRequest
	if err := decodeJSON(w, r, &req, true); err != nil {
		writeDomainError(w, r, err)
		return
	}

	tr, err := h.svc.Act(r.Context(), staff.TenantID, id, r.PathValue("action"), actorOf(staff), req.Reason)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toTransitionResponse(tr))
}

func (h *ReservationHandler) Reschedule(w http.ResponseWriter, r *http.Request) {
	staff, _ := StaffFrom(r.Context())
	id, err := pathUUID(r, "id")
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	var req rescheduleRequest
	if err := decodeJSON(w, r, &req, false); err != nil {
		writeDomainError(w, r, err)
		return
	}

	details, err := h.svc.Reschedule(r.Context(), staff.TenantID, id, req.ReservedAt, actorOf(staff), req.Reason)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toReservationResponse(details.Reservation, details.QR))
}

func (h *ReservationHandler) Correct(w http.ResponseWriter, r *http.Request) {
	staff, _ := StaffFrom(r.Context())
	id, err := pathUUID(r, "id")
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	var req correctRequest
	if err := decodeJSON(w, r, &req, false); err != nil {
		writeDomainError(w, r, err)
		return
	}

	tr, err := h.svc.Correct(r.Context(), staff.TenantID, id, req.Status, actorOf(staff), req.Reason)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toTransitionResponse(tr))
}
