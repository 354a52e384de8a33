package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"craftshop-admin/internal/metrics"
	"craftshop-admin/internal/middleware"
	"craftshop-admin/internal/model"
	"craftshop-admin/internal/service"
	"craftshop-admin/pkg/apierror"
)

type AccountHandler struct {
	accounts *service.AccountService
	metrics  *metrics.Metrics
}

func NewAccountHandler(accounts *service.AccountService, m *metrics.Metrics) *AccountHandler {
	return &AccountHandler{accounts: accounts, metrics: m}
}

// Me returns the user bound to the presented token.
func (h *AccountHandler) Me(w http.ResponseWriter, r *http.Request) {
	token, ok := middleware.TokenFromContext(r.Context())
	if !ok {
		writeError(w, model.ErrUnauthorized)
		return
	}

	writeSuccess(w, http.StatusOK, token.User, nil)
}

func (h *AccountHandler) Update(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	token, ok := middleware.TokenFromContext(r.Context())
	if !ok {
		writeError(w, model.ErrUnauthorized)
		return
	}

	var payload model.UpdateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.BadRequest("invalid JSON body"))
		return
	}

	user, err := h.accounts.UpdateProfile(r.Context(), token.User.ID, payload.Name, payload.Email)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, user, nil)
}

func (h *AccountHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	token, ok := middleware.TokenFromContext(r.Context())
	if !ok {
		writeError(w, model.ErrUnauthorized)
		return
	}

	var payload model.ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.BadRequest("invalid JSON body"))
		return
	}

	err := h.accounts.ChangePassword(r.Context(), token.User.ID, payload.OldPassword, payload.NewPassword)
	if err != nil {
		if errors.Is(err, model.ErrForbidden) {
			writeError(w, apierror.New("FORBIDDEN", "old password does not match", "", http.StatusForbidden))
			return
		}
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ForgotPassword resets the credential and mails a temporary password. The
// response does not reveal whether the email belongs to an account.
func (h *AccountHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var payload model.ForgotPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.BadRequest("invalid JSON body"))
		return
	}

	if err := h.accounts.ForgotPassword(r.Context(), payload.Email); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *AccountHandler) SignOut(w http.ResponseWriter, r *http.Request) {
	token, ok := middleware.TokenFromContext(r.Context())
	if !ok {
		writeError(w, model.ErrUnauthorized)
		return
	}

	if err := h.accounts.SignOut(r.Context(), token); err != nil {
		writeError(w, err)
		return
	}
	h.metrics.TokensRevokedTotal.Inc()

	w.WriteHeader(http.StatusNoContent)
}
