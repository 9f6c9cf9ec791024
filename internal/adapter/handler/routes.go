package handler

import "net/http"

type Handlers struct {
	Auth         *Authenticator
	Reservations *ReservationHandler
	CheckIn      *CheckInHandler
	Share        *ShareHandler
	Admin        *AdminHandler
}

func Routes(h Handlers) *http.ServeMux {
	mux := http.NewServeMux()
	staff := h.Auth.RequireStaff

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	mux.HandleFunc("POST /api/v1/reservations", staff(h.Reservations.Create))
	mux.HandleFunc("GET /api/v1/reservations/{id}", staff(h.Reservations.Get))
	mux.HandleFunc("POST /api/v1/reservations/{id}/qr", staff(h.Reservations.IssueQR))
	mux.HandleFunc("POST /api/v1/reservations/{id}/actions/{action}", staff(h.Reservations.Act))
	mux.HandleFunc("POST /api/v1/reservations/{id}/reschedule", staff(h.Reservations.Reschedule))
	mux.HandleFunc("POST /api/v1/reservations/{id}/correct", staff(h.Reservations.Correct))

	mux.HandleFunc("POST /api/v1/scan", h.Auth.OptionalStaff(h.CheckIn.Scan))
	mux.HandleFunc("POST /api/v1/attendance", staff(h.CheckIn.RecordAttendance))
	mux.HandleFunc("POST /api/v1/walk-ins", staff(h.CheckIn.RecordWalkIn))

	mux.HandleFunc("POST /api/v1/share", staff(h.Share.Create))
	mux.HandleFunc("GET /api/v1/share/{shareId}", h.Share.View)
	mux.HandleFunc("GET /api/v1/share/{shareId}/qr.png", h.Share.QRImage)

	mux.HandleFunc("POST /api/v1/admin/reconcile", staff(h.Admin.Reconcile))
	mux.HandleFunc("POST /api/v1/admin/purge", staff(h.Admin.Purge))

	return mux
}
