// internal/app/features/bundles/handler.go
package bundles

import (
	"context"
	"net/http"
	"strconv"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/habitstack/habitstack/internal/app/service"
	"github.com/habitstack/habitstack/internal/app/system/httpjson"
	"github.com/habitstack/habitstack/internal/app/system/timeouts"
	"github.com/habitstack/habitstack/internal/domain/models"
)

// Handler serves the public bundle catalog.
type Handler struct {
	Svc *service.Bundles
	Log *zap.Logger
}

func NewHandler(svc *service.Bundles, logger *zap.Logger) *Handler {
	return &Handler{Svc: svc, Log: logger}
}

type listResponse struct {
	Bundles []models.Bundle `json:"bundles"`
	Total   int64           `json:"total"`
	HasMore bool            `json:"hasMore"`
}

// List handles GET /bundles with limit and offset query parameters.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	page, err := h.Svc.List(ctx, intParam(r, "limit"), int64(intParam(r, "offset")))
	if err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}
	httpjson.WriteData(w, http.StatusOK, listResponse{
		Bundles: page.Items,
		Total:   page.TotalCount,
		HasMore: page.HasMore,
	})
}

// Get handles GET /bundles/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	bundle, err := h.Svc.Get(ctx, chi.URLParam(r, "id"))
	if err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}
	httpjson.WriteData(w, http.StatusOK, bundle)
}

// Habits handles GET /bundles/{id}/habits, resolving the bundle's habit list
// in its declared order.
func (h *Handler) Habits(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	habits, err := h.Svc.Habits(ctx, chi.URLParam(r, "id"))
	if err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}
	httpjson.WriteData(w, http.StatusOK, map[string]any{"habits": habits, "count": len(habits)})
}

func intParam(r *http.Request, name string) int {
	v := query.Get(r, name)
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
