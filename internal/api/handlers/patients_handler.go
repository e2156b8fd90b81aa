package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/clinicdesk/api/internal/api/types"
	"github.com/clinicdesk/api/internal/services"
)

type PatientsHandler struct {
	patients services.PatientService
}

func NewPatientsHandler(patients services.PatientService) *PatientsHandler {
	return &PatientsHandler{patients: patients}
}

func (h *PatientsHandler) List(w http.ResponseWriter, r *http.Request) {
	c, ok := caller(w, r)
	if !ok {
		return
	}
	page, size := pageParams(r)
	result, err := h.patients.List(r.Context(), c, page, size)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, types.APIResponse{Success: true, Data: result.Items, Meta: pageMeta(result)})
}

func (h *PatientsHandler) Create(w http.ResponseWriter, r *http.Request) {
	c, ok := caller(w, r)
	if !ok {
		return
	}
	var req struct {
		Name      string `json:"name" validate:"required"`
		Document  string `json:"document" validate:"required"`
		BirthDate string `json:"birth_date" validate:"required"`
		Phone     string `json:"phone"`
		Email     string `json:"email" validate:"omitempty,email"`
		Address   string `json:"address"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorStr(w, http.StatusBadRequest, "invalid json")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeErrorStr(w, http.StatusBadRequest, err.Error())
		return
	}
	patient, err := h.patients.Create(r.Context(), c, &services.CreatePatientInput{
		Name:      req.Name,
		Document:  req.Document,
		BirthDate: req.BirthDate,
		Phone:     req.Phone,
		Email:     req.Email,
		Address:   req.Address,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, types.APIResponse{Success: true, Data: patient})
}

func (h *PatientsHandler) Get(w http.ResponseWriter, r *http.Request) {
	c, ok := caller(w, r)
	if !ok {
		return
	}
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeErrorStr(w, http.StatusBadRequest, "invalid patient id")
		return
	}
	patient, err := h.patients.Get(r.Context(), c, id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, types.APIResponse{Success: true, Data: patient})
}

func (h *PatientsHandler) Update(w http.ResponseWriter, r *http.Request) {
	c, ok := caller(w, r)
	if !ok {
		return
	}
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeErrorStr(w, http.StatusBadRequest, "invalid patient id")
		return
	}
	var req struct {
		Name      *string `json:"name"`
		Document  *string `json:"document"`
		BirthDate *string `json:"birth_date"`
		Phone     *string `json:"phone"`
		Email     *string `json:"email" validate:"omitempty,email"`
		Address   *string `json:"address"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorStr(w, http.StatusBadRequest, "invalid json")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeErrorStr(w, http.StatusBadRequest, err.Error())
		return
	}
	patient, err := h.patients.Update(r.Context(), c, id, &services.UpdatePatientInput{
		Name:      req.Name,
		Document:  req.Document,
		BirthDate: req.BirthDate,
		Phone:     req.Phone,
		Email:     req.Email,
		Address:   req.Address,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, types.APIResponse{Success: true, Data: patient})
}

func (h *PatientsHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	c, ok := caller(w, r)
	if !ok {
		return
	}
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeErrorStr(w, http.StatusBadRequest, "invalid patient id")
		return
	}
	if err := h.patients.Deactivate(r.Context(), c, id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, types.APIResponse{Success: true})
}

// Search matches active patients whose name or document contains the
// q parameter.
func (h *PatientsHandler) Search(w http.ResponseWriter, r *http.Request) {
	c, ok := caller(w, r)
	if !ok {
		return
	}
	items, err := h.patients.Search(r.Context(), c, r.URL.Query().Get("q"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, types.APIResponse{Success: true, Data: items})
}
