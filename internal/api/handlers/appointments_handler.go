package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/clinicdesk/api/internal/api/types"
	"github.com/clinicdesk/api/internal/services"
)

type AppointmentsHandler struct {
	appointments services.AppointmentService
}

func NewAppointmentsHandler(appointments services.AppointmentService) *AppointmentsHandler {
	return &AppointmentsHandler{appointments: appointments}
}

func (h *AppointmentsHandler) List(w http.ResponseWriter, r *http.Request) {
	c, ok := caller(w, r)
	if !ok {
		return
	}
	page, size := pageParams(r)
	result, err := h.appointments.List(r.Context(), c, page, size)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, types.APIResponse{Success: true, Data: result.Items, Meta: pageMeta(result)})
}

func (h *AppointmentsHandler) Create(w http.ResponseWriter, r *http.Request) {
	c, ok := caller(w, r)
	if !ok {
		return
	}
	var req struct {
		PatientID   uuid.UUID `json:"patient_id" validate:"required"`
		ClinicianID uuid.UUID `json:"clinician_id" validate:"required"`
		ScheduledAt string    `json:"scheduled_at" validate:"required"`
		Kind        string    `json:"kind" validate:"required"`
		Notes       string    `json:"notes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorStr(w, http.StatusBadRequest, "invalid json")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeErrorStr(w, http.StatusBadRequest, err.Error())
		return
	}
	appt, err := h.appointments.Create(r.Context(), c, &services.CreateAppointmentInput{
		PatientID:   req.PatientID,
		ClinicianID: req.ClinicianID,
		ScheduledAt: req.ScheduledAt,
		Kind:        req.Kind,
		Notes:       req.Notes,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, types.APIResponse{Success: true, Data: appt})
}

func (h *AppointmentsHandler) Get(w http.ResponseWriter, r *http.Request) {
	c, ok := caller(w, r)
	if !ok {
		return
	}
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeErrorStr(w, http.StatusBadRequest, "invalid appointment id")
		return
	}
	appt, err := h.appointments.Get(r.Context(), c, id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, types.APIResponse{Success: true, Data: appt})
}

func (h *AppointmentsHandler) Update(w http.ResponseWriter, r *http.Request) {
	c, ok := caller(w, r)
	if !ok {
		return
	}
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeErrorStr(w, http.StatusBadRequest, "invalid appointment id")
		return
	}
	var req struct {
		PatientID   *uuid.UUID `json:"patient_id"`
		ClinicianID *uuid.UUID `json:"clinician_id"`
		ScheduledAt *string    `json:"scheduled_at"`
		Kind        *string    `json:"kind"`
		Notes       *string    `json:"notes"`
		Status      *string    `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorStr(w, http.StatusBadRequest, "invalid json")
		return
	}
	appt, err := h.appointments.Update(r.Context(), c, id, &services.UpdateAppointmentInput{
		PatientID:   req.PatientID,
		ClinicianID: req.ClinicianID,
		ScheduledAt: req.ScheduledAt,
		Kind:        req.Kind,
		Notes:       req.Notes,
		Status:      req.Status,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, types.APIResponse{Success: true, Data: appt})
}

func (h *AppointmentsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	c, ok := caller(w, r)
	if !ok {
		return
	}
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeErrorStr(w, http.StatusBadRequest, "invalid appointment id")
		return
	}
	if err := h.appointments.Delete(r.Context(), c, id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, types.APIResponse{Success: true})
}

// Search filters appointments by any combination of from, to,
// clinician_id and status. Filters combine conjunctively.
func (h *AppointmentsHandler) Search(w http.ResponseWriter, r *http.Request) {
	c, ok := caller(w, r)
	if !ok {
		return
	}
	q := r.URL.Query()
	items, err := h.appointments.Search(r.Context(), c, &services.SearchAppointmentsInput{
		From:        q.Get("from"),
		To:          q.Get("to"),
		ClinicianID: q.Get("clinician_id"),
		Status:      q.Get("status"),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, types.APIResponse{Success: true, Data: items})
}
