package types

import (
	"net/http"

	appErr "github.com/clinicdesk/api/pkg/errors"
)

// FromAppError converts an error into the wire-level error shape.
func FromAppError(err error) *APIError {
	if err == nil {
		return nil
	}
	if ae, ok := err.(*appErr.AppError); ok {
		return &APIError{Code: string(ae.Code), Message: ae.Message}
	}
	return &APIError{Code: string(appErr.CodeUnknown), Message: err.Error()}
}

// HTTPStatus maps an error code onto a status code. The mapping lives
// entirely in this layer; the core only produces codes.
func HTTPStatus(err error) int {
	switch appErr.CodeOf(err) {
	case appErr.CodeInvalid:
		return http.StatusBadRequest
	case appErr.CodeUnauthorized:
		return http.StatusUnauthorized
	case appErr.CodeForbidden:
		return http.StatusForbidden
	case appErr.CodeNotFound:
		return http.StatusNotFound
	case appErr.CodeAlreadyExists, appErr.CodeInvalidTransition:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
