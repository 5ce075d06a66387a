// internal/app/features/completions/handler.go
package completions

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/habitstack/habitstack/internal/app/service"
	"github.com/habitstack/habitstack/internal/app/system/apperr"
	"github.com/habitstack/habitstack/internal/app/system/authn"
	"github.com/habitstack/habitstack/internal/app/system/httpjson"
	"github.com/habitstack/habitstack/internal/app/system/timeouts"
	"github.com/habitstack/habitstack/internal/domain/models"
)

// Handler serves the completion log.
type Handler struct {
	Completions *service.Completions
	Stats       *service.Stats
	Log         *zap.Logger
}

func NewHandler(completions *service.Completions, stats *service.Stats, logger *zap.Logger) *Handler {
	return &Handler{Completions: completions, Stats: stats, Log: logger}
}

type createRequest struct {
	HabitID string `json:"habitId"`
	Source  string `json:"source"`
	Note    string `json:"note"`
}

// Create handles POST /completions, logging a completion for the caller.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpjson.WriteError(w, h.Log, apperr.InvalidInput("invalid request body"))
		return
	}
	ident, _ := authn.FromContext(ctx)
	entry, err := h.Completions.Create(ctx, ident, service.CreateCompletionInput{
		HabitID: req.HabitID,
		Source:  req.Source,
		Note:    req.Note,
	})
	if err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}
	httpjson.WriteData(w, http.StatusCreated, entry)
}

type listResponse struct {
	Completions []models.CompletionLog `json:"completions"`
	Total       int64                  `json:"total"`
	HasMore     bool                   `json:"hasMore"`
}

// List handles GET /completions/{userId} with habitId, startDate, endDate,
// limit, and offset query parameters.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	filter := service.CompletionFilter{HabitID: query.Get(r, "habitId")}
	var err error
	if filter.Start, err = timeParam(r, "startDate"); err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}
	if filter.End, err = timeParam(r, "endDate"); err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}

	ident, _ := authn.FromContext(ctx)
	page, err := h.Completions.List(ctx, ident, chi.URLParam(r, "userId"), filter,
		intParam(r, "limit"), int64(intParam(r, "offset")))
	if err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}
	httpjson.WriteData(w, http.StatusOK, listResponse{
		Completions: page.Items,
		Total:       page.TotalCount,
		HasMore:     page.HasMore,
	})
}

// Stats handles GET /completions/{userId}/stats with a days window
// parameter.
func (h *Handler) StatsWindow(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	ident, _ := authn.FromContext(ctx)
	stats, err := h.Stats.Window(ctx, ident, chi.URLParam(r, "userId"), intParam(r, "days"))
	if err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}
	httpjson.WriteData(w, http.StatusOK, stats)
}

// Delete handles DELETE /completions/{userId}/{completionId}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	ident, _ := authn.FromContext(ctx)
	id := chi.URLParam(r, "completionId")
	if err := h.Completions.Delete(ctx, ident, chi.URLParam(r, "userId"), id); err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}
	httpjson.WriteMessage(w, http.StatusOK, map[string]string{"completionId": id}, "completion deleted")
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

// timeParam parses an RFC 3339 (or date-only) query parameter.
func timeParam(r *http.Request, name string) (*time.Time, error) {
	v := query.Get(r, name)
	if v == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return &t, nil
	}
	if t, err := time.Parse("2006-01-02", v); err == nil {
		return &t, nil
	}
	return nil, apperr.InvalidInput(name + " must be an ISO 8601 timestamp")
}
