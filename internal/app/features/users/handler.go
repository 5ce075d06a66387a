// internal/app/features/users/handler.go
package users

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/habitstack/habitstack/internal/app/service"
	"github.com/habitstack/habitstack/internal/app/system/apperr"
	"github.com/habitstack/habitstack/internal/app/system/authn"
	"github.com/habitstack/habitstack/internal/app/system/httpjson"
	"github.com/habitstack/habitstack/internal/app/system/timeouts"
)

// Handler serves user profiles.
type Handler struct {
	Svc *service.Users
	Log *zap.Logger
}

func NewHandler(svc *service.Users, logger *zap.Logger) *Handler {
	return &Handler{Svc: svc, Log: logger}
}

type createRequest struct {
	DisplayName string `json:"displayName"`
	Email       string `json:"email"`
	Locale      string `json:"locale"`
}

// Create handles POST /users, registering a profile for the caller.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpjson.WriteError(w, h.Log, apperr.InvalidInput("invalid request body"))
		return
	}
	ident, _ := authn.FromContext(ctx)
	u, err := h.Svc.Create(ctx, ident, service.CreateUserInput{
		DisplayName: req.DisplayName,
		Email:       req.Email,
		Locale:      req.Locale,
	})
	if err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}
	httpjson.WriteData(w, http.StatusCreated, u)
}

// Get handles GET /users/{userId}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	ident, _ := authn.FromContext(ctx)
	u, err := h.Svc.Get(ctx, ident, chi.URLParam(r, "userId"))
	if err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}
	httpjson.WriteData(w, http.StatusOK, u)
}

type updateRequest struct {
	DisplayName *string `json:"displayName"`
	Locale      *string `json:"locale"`
}

// Update handles PUT /users/{userId} with a partial body.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	var req updateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpjson.WriteError(w, h.Log, apperr.InvalidInput("invalid request body"))
		return
	}
	ident, _ := authn.FromContext(ctx)
	u, err := h.Svc.Update(ctx, ident, chi.URLParam(r, "userId"), service.UpdateUserInput{
		DisplayName: req.DisplayName,
		Locale:      req.Locale,
	})
	if err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}
	httpjson.WriteData(w, http.StatusOK, u)
}

// Delete handles DELETE /users/{userId}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	ident, _ := authn.FromContext(ctx)
	userID := chi.URLParam(r, "userId")
	if err := h.Svc.Delete(ctx, ident, userID); err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}
	httpjson.WriteMessage(w, http.StatusOK, map[string]string{"userId": userID}, "user deleted")
}
