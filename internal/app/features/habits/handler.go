// internal/app/features/habits/handler.go
package habits

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

// Handler serves the public habit catalog.
type Handler struct {
	Svc *service.Habits
	Log *zap.Logger
}

func NewHandler(svc *service.Habits, logger *zap.Logger) *Handler {
	return &Handler{Svc: svc, Log: logger}
}

// listResponse is the data payload for GET /habits.
type listResponse struct {
	Habits  []models.Habit `json:"habits"`
	Total   int64          `json:"total"`
	HasMore bool           `json:"hasMore"`
}

// List handles GET /habits with category, tags, limit, and offset query
// parameters.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	filter := service.HabitFilter{
		Category: query.Get(r, "category"),
		Tags:     r.URL.Query()["tags"],
	}
	page, err := h.Svc.List(ctx, filter, intParam(r, "limit"), int64(intParam(r, "offset")))
	if err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}
	httpjson.WriteData(w, http.StatusOK, listResponse{
		Habits:  page.Items,
		Total:   page.TotalCount,
		HasMore: page.HasMore,
	})
}

// Get handles GET /habits/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	habit, err := h.Svc.Get(ctx, chi.URLParam(r, "id"))
	if err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}
	httpjson.WriteData(w, http.StatusOK, habit)
}

// Search handles GET /habits/search/{query}.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	matches, err := h.Svc.Search(ctx, chi.URLParam(r, "query"), intParam(r, "limit"))
	if err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}
	httpjson.WriteData(w, http.StatusOK, map[string]any{"habits": matches, "count": len(matches)})
}

// intParam parses an integer query parameter, returning 0 when absent or
// malformed so services fall back to their defaults.
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
