package handler

import (
	"encoding/json"
	"net/http"

	"craftshop-admin/internal/metrics"
	"craftshop-admin/internal/model"
	"craftshop-admin/internal/service"
	"craftshop-admin/pkg/apierror"
)

type OAuthHandler struct {
	grants  *service.GrantService
	metrics *metrics.Metrics
}

func NewOAuthHandler(grants *service.GrantService, m *metrics.Metrics) *OAuthHandler {
	return &OAuthHandler{grants: grants, metrics: m}
}

// Token is the grant endpoint. Per OAuth2 it consumes form-encoded bodies
// and answers with the bare token body rather than the API envelope.
func (h *OAuthHandler) Token(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	if err := r.ParseForm(); err != nil {
		writeError(w, apierror.BadRequest("invalid form body"))
		return
	}

	req := model.TokenRequest{
		GrantType:    r.PostFormValue("grant_type"),
		ClientID:     r.PostFormValue("client_id"),
		ClientSecret: r.PostFormValue("client_secret"),
		Username:     r.PostFormValue("username"),
		Password:     r.PostFormValue("password"),
		RefreshToken: r.PostFormValue("refresh_token"),
		Scope:        r.PostFormValue("scope"),
	}

	if req.GrantType == "" || req.ClientID == "" || req.ClientSecret == "" {
		writeError(w, apierror.BadRequest("grant_type, client_id and client_secret are required"))
		return
	}

	tokens, err := h.grants.Token(r.Context(), req)
	if err != nil {
		h.metrics.GrantsTotal.WithLabelValues(req.GrantType, "denied").Inc()
		writeError(w, err)
		return
	}
	h.metrics.GrantsTotal.WithLabelValues(req.GrantType, "issued").Inc()

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(tokens)
}
