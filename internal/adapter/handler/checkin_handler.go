package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/srgjo27/reservation_engine/internal/core/domain"
	"github.com/srgjo27/reservation_engine/internal/core/services"
)

type scanRequest struct {
	Token string `json:"token" validate:"max=256"`
}

type scanResponse struct {
	Outcome   string               `json:"outcome"`
	Message   string               `json:"message"`
	ScanCount int                  `json:"scan_count,omitempty"`
	Guest     *domain.GuestSummary `json:"guest,omitempty"`
}

type attendanceRequest struct {
	ReservationID string `json:"reservation_id" validate:"required,uuid"`
	ObservedCount *int   `json:"observed_count" validate:"required,gte=0"`
}

type walkInRequest struct {
	Guests int        `json:"guests" validate:"required,gt=0"`
	At     *time.Time `json:"at"`
}

type walkInResponse struct {
	BusinessDay string `json:"business_day"`
	Guests      int    `json:"guests"`
}

var scanMessages = map[domain.ScanOutcome]string{
	domain.ScanCheckedInFirst:   "welcome, check-in complete",
	domain.ScanAlreadyCheckedIn: "already checked in",
	domain.ScanExpired:          "this code has expired",
	domain.ScanInvalid:          "this code is no longer valid",
	domain.ScanRejected:         "this reservation can no longer be used",
	domain.ScanTimeout:          "please try again",
}

type CheckInHandler struct {
	scanner  *services.ScanProcessor
	recorder *services.HostAttendanceRecorder
}

func NewCheckInHandler(scanner *services.ScanProcessor, recorder *services.HostAttendanceRecorder) *CheckInHandler {
	return &CheckInHandler{scanner: scanner, recorder: recorder}
}

// Scan serves both door staff and guests scanning their own code. Without a
// staff token the unknown and expired outcomes collapse into one answer.
func (h *CheckInHandler) Scan(w http.ResponseWriter, r *http.Request) {
	var req scanRequest
	if err := decodeJSON(w, r, &req, false); err != nil {
		writeDomainError(w, r, err)
		return
	}

	var (
		result domain.ScanResult
		err    error
	)
	staff, isStaff := StaffFrom(r.Context())
	if isStaff {
		result, err = h.scanner.ScanForTenant(r.Context(), staff.TenantID, req.Token)
	} else {
		result, err = h.scanner.Scan(r.Context(), req.Token)
		result = result.Public()
	}
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	status := http.StatusOK
	if result.Outcome == domain.ScanTimeout {
		w.Header().Set("Retry-After", "1")
		status = http.StatusServiceUnavailable
	}

	writeJSON(w, status, scanResponse{
		Outcome:   string(result.Outcome),
		Message:   scanMessages[result.Outcome],
		ScanCount: result.ScanCount,
		Guest:     result.Guest,
	})
}

func (h *CheckInHandler) RecordAttendance(w http.ResponseWriter, r *http.Request) {
	staff, _ := StaffFrom(r.Context())

	var req attendanceRequest
	if err := decodeJSON(w, r, &req, false); err != nil {
		writeDomainError(w, r, err)
		return
	}

	id := uuid.MustParse(req.ReservationID)
	if err := h.recorder.RecordAttendance(r.Context(), staff.TenantID, id, *req.ObservedCount, staff.StaffID); err != nil {
		writeDomainError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *CheckInHandler) RecordWalkIn(w http.ResponseWriter, r *http.Request) {
	staff, _ := StaffFrom(r.Context())

	var req walkInRequest
	if err := decodeJSON(w, r, &req, false); err != nil {
		writeDomainError(w, r, err)
		return
	}

	var at time.Time
	if req.At != nil {
		at = *req.At
	}

	day, err := h.recorder.RecordWalkIn(r.Context(), staff.TenantID, req.Guests, at)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, walkInResponse{BusinessDay: day.String(), Guests: req.Guests})
}
