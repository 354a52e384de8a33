package handler

import (
	"net/http"
	"strconv"

	"craftshop-admin/internal/model"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// pagination reads page/limit query parameters with sane bounds.
func pagination(r *http.Request) (page int, limit int) {
	page = 1
	limit = defaultPageLimit

	if v := r.URL.Query().Get("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			page = n
		}
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	return page, limit
}

func pageMeta(page int, limit int, total int) *model.Meta {
	return &model.Meta{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: (total + limit - 1) / limit,
	}
}
