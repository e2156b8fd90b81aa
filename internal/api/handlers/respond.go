package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/clinicdesk/api/internal/api/middleware"
	"github.com/clinicdesk/api/internal/api/types"
	"github.com/clinicdesk/api/internal/authz"
	appErr "github.com/clinicdesk/api/pkg/errors"
	"github.com/clinicdesk/api/pkg/pagination"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, types.HTTPStatus(err), types.APIResponse{Success: false, Error: types.FromAppError(err)})
}

func writeErrorStr(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, types.APIResponse{Success: false, Error: &types.APIError{Code: "invalid", Message: msg}})
}

// caller pulls the verified identity installed by the auth middleware.
func caller(w http.ResponseWriter, r *http.Request) (authz.Caller, bool) {
	c, ok := middleware.GetCaller(r.Context())
	if !ok {
		writeError(w, appErr.New(appErr.CodeUnauthorized, "missing caller identity"))
	}
	return c, ok
}

func pageParams(r *http.Request) (page, pageSize int) {
	page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	pageSize, _ = strconv.Atoi(r.URL.Query().Get("page_size"))
	return page, pageSize
}

func pageMeta[T any](p pagination.Page[T]) *types.Meta {
	return &types.Meta{
		CurrentPage: p.CurrentPage,
		TotalPages:  p.TotalPages,
		TotalItems:  p.TotalItems,
		PageSize:    p.PageSize,
		HasNext:     p.HasNext,
		HasPrev:     p.HasPrev,
	}
}
