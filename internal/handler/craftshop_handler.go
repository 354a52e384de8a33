package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"craftshop-admin/internal/model"
	"craftshop-admin/internal/service"
	"craftshop-admin/pkg/apierror"
)

type CraftShopHandler struct {
	catalog *service.CatalogService
}

func NewCraftShopHandler(catalog *service.CatalogService) *CraftShopHandler {
	return &CraftShopHandler{catalog: catalog}
}

func (h *CraftShopHandler) List(w http.ResponseWriter, r *http.Request) {
	page, limit := pagination(r)

	shops, total, err := h.catalog.ListCraftShops(r.Context(), page, limit)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, shops, pageMeta(page, limit, total))
}

func (h *CraftShopHandler) Get(w http.ResponseWriter, r *http.Request) {
	shop, err := h.catalog.CraftShop(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, shop, nil)
}

func (h *CraftShopHandler) Create(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var payload model.CreateCraftShopRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.BadRequest("invalid JSON body"))
		return
	}

	shop, err := h.catalog.CreateCraftShop(r.Context(), payload)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, shop, nil)
}

func (h *CraftShopHandler) Update(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var payload model.UpdateCraftShopRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.BadRequest("invalid JSON body"))
		return
	}

	shop, err := h.catalog.UpdateCraftShop(r.Context(), chi.URLParam(r, "id"), payload)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, shop, nil)
}

func (h *CraftShopHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.catalog.DeleteCraftShop(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
