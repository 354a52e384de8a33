package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"craftshop-admin/internal/model"
	"craftshop-admin/pkg/apierror"
)

func writeSuccess(w http.ResponseWriter, status int, data any, meta *model.Meta) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(model.APIResponse{
		Success: true,
		Data:    data,
		Meta:    meta,
	})
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	body := &model.APIError{
		Code:    "INTERNAL_ERROR",
		Message: "Unexpected server error",
	}

	var apiErr *apierror.APIError
	switch {
	case errors.As(err, &apiErr):
		status = apiErr.HTTPStatus
		body.Code = apiErr.Code
		body.Message = apiErr.Message
		body.Details = apiErr.Details
	case errors.Is(err, model.ErrInvalidClient),
		errors.Is(err, model.ErrInvalidCredential),
		errors.Is(err, model.ErrInvalidGrant):
		// Deliberately indistinguishable: the caller never learns which
		// factor failed.
		status = http.StatusUnauthorized
		body.Code = "ACCESS_DENIED"
		body.Message = "Access denied"
	case errors.Is(err, model.ErrUnsupportedGrantType):
		status = http.StatusBadRequest
		body.Code = "UNSUPPORTED_GRANT_TYPE"
		body.Message = "Unsupported grant type"
	case errors.Is(err, model.ErrInvalidScope):
		status = http.StatusBadRequest
		body.Code = "INVALID_SCOPE"
		body.Message = "Invalid scope"
	case errors.Is(err, model.ErrUnauthorized):
		status = http.StatusUnauthorized
		body.Code = "UNAUTHORIZED"
		body.Message = "Authentication required"
	case errors.Is(err, model.ErrForbidden):
		status = http.StatusForbidden
		body.Code = "FORBIDDEN"
		body.Message = "Access denied"
	case errors.Is(err, model.ErrTokenNotFound), errors.Is(err, model.ErrTokenExpired):
		status = http.StatusUnauthorized
		body.Code = "UNAUTHORIZED"
		body.Message = "Invalid or expired token"
	case errors.Is(err, model.ErrUserNotFound),
		errors.Is(err, model.ErrClientNotFound),
		errors.Is(err, model.ErrCredentialNotFound),
		errors.Is(err, model.ErrNotFound):
		status = http.StatusNotFound
		body.Code = "NOT_FOUND"
		body.Message = "Not found"
	case errors.Is(err, model.ErrAlreadyExists):
		status = http.StatusConflict
		body.Code = "ALREADY_EXISTS"
		body.Message = "Already exists"
	case errors.Is(err, model.ErrInvalidInput):
		status = http.StatusBadRequest
		body.Code = "BAD_REQUEST"
		body.Message = "Invalid input"
		body.Details = err.Error()
	default:
		// Unclassified errors are store or I/O failures; keep details out of
		// the response but visible in logs.
		slog.Error("unhandled error in writeError", "error", err.Error())
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(model.APIResponse{
		Success: false,
		Error:   body,
	})
}
