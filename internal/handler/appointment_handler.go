package handler

import (
	"net/http"
	"time"

	"matricare-api/internal/apperr"
	"matricare-api/internal/model"
	"matricare-api/internal/service"
	"matricare-api/internal/store"
)

// GET /appointment?id= — one appointment (user joined) or, without id, all.
func (h *Handler) appointmentGet(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id != "" {
		a, err := h.appointments.Get(r.Context(), id)
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		h.writeJSON(w, http.StatusOK, a)
		return
	}

	all, err := h.appointments.List(r.Context(), "")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, all)
}

// GET /appointment/user?userId= — a user's appointments, or all when omitted.
func (h *Handler) appointmentUserGet(w http.ResponseWriter, r *http.Request) {
	out, err := h.appointments.List(r.Context(), r.URL.Query().Get("userId"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, out)
}

type createAppointmentRequest struct {
	Email       string    `json:"email"`
	PatientName string    `json:"patientName"`
	Date        time.Time `json:"date"`
	Location    string    `json:"location"`
	Notes       string    `json:"notes"`
}

// POST /appointment
func (h *Handler) appointmentPost(w http.ResponseWriter, r *http.Request) {
	var req createAppointmentRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, r, apperr.BadRequest("invalid request body"))
		return
	}

	a, err := h.appointments.Create(r.Context(), service.CreateParams{
		Email:       req.Email,
		PatientName: req.PatientName,
		Date:        req.Date,
		Location:    req.Location,
		Notes:       req.Notes,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]any{
		"message":     "Appointment Successfully Created",
		"appointment": a,
	})
}

type updateAppointmentRequest struct {
	PatientName *string       `json:"patientName"`
	Date        *time.Time    `json:"date"`
	Status      *model.Status `json:"status"`
	Location    *string       `json:"location"`
	Notes       *string       `json:"notes"`
}

// PUT /appointment?id=&userId= — partial update; userId identifies the actor
// whose identity is stamped on transition notifications.
func (h *Handler) appointmentPut(w http.ResponseWriter, r *http.Request) {
	var req updateAppointmentRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, r, apperr.BadRequest("invalid request body"))
		return
	}

	a, err := h.appointments.Update(r.Context(),
		r.URL.Query().Get("id"),
		r.URL.Query().Get("userId"),
		store.AppointmentPatch{
			PatientName: req.PatientName,
			Date:        req.Date,
			Status:      req.Status,
			Location:    req.Location,
			Notes:       req.Notes,
		})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]any{
		"message":     "Appointment Updated Successfully",
		"appointment": a,
	})
}

// DELETE /appointment?id=
func (h *Handler) appointmentDelete(w http.ResponseWriter, r *http.Request) {
	a, err := h.appointments.Delete(r.Context(), r.URL.Query().Get("id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]any{
		"message":     "Appointment Successfully Deleted",
		"appointment": a,
	})
}

// GET /notification?userId=
func (h *Handler) notificationGet(w http.ResponseWriter, r *http.Request) {
	out, err := h.appointments.Notifications(r.Context(), r.URL.Query().Get("userId"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, out)
}
