package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"craftshop-admin/internal/model"
	"craftshop-admin/internal/service"
	"craftshop-admin/pkg/apierror"
)

type ResourceHandler struct {
	resources *service.ResourceService
}

func NewResourceHandler(resources *service.ResourceService) *ResourceHandler {
	return &ResourceHandler{resources: resources}
}

// Presign registers a resource row and returns a presigned PUT URL. The
// client uploads the bytes itself; this server never proxies image data.
func (h *ResourceHandler) Presign(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var payload model.PresignResourceRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.BadRequest("invalid JSON body"))
		return
	}

	resource, upload, err := h.resources.CreateUpload(r.Context(), payload.FileName, payload.ItemID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, map[string]any{
		"resource": resource,
		"upload":   upload,
	}, nil)
}

func (h *ResourceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.resources.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
