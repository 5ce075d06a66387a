// internal/app/service/users.go
package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/habitstack/habitstack/internal/app/system/apperr"
	"github.com/habitstack/habitstack/internal/app/system/authn"
	"github.com/habitstack/habitstack/internal/app/system/authz"
	"github.com/habitstack/habitstack/internal/domain/models"
)

// Users serves profile operations. Every operation is guarded: profiles are
// visible to their owner and to the elevated role only.
type Users struct {
	store   UserStore
	guard   *authz.Guard
	remover authn.AccountRemover
	log     *zap.Logger
}

// CreateUserInput is the self-registration payload.
type CreateUserInput struct {
	DisplayName string
	Email       string
	Locale      string
}

// Create registers a profile for the calling identity. The profile ID is the
// caller's subject, so registration is idempotent-by-conflict: a repeat
// attempt reports Conflict rather than overwriting.
func (s *Users) Create(ctx context.Context, ident *authn.Identity, in CreateUserInput) (models.User, error) {
	if err := s.guard.Authorize(ident, "", authz.AuthenticatedOnly); err != nil {
		return models.User{}, err
	}
	if strings.TrimSpace(in.DisplayName) == "" || strings.TrimSpace(in.Email) == "" {
		return models.User{}, apperr.InvalidInput("displayName and email are required")
	}
	return s.store.Create(ctx, models.User{
		ID:          ident.ID,
		DisplayName: strings.TrimSpace(in.DisplayName),
		Email:       strings.TrimSpace(in.Email),
		Role:        models.RoleUser,
		Locale:      in.Locale,
	})
}

// Get returns a profile, owner or elevated role only.
func (s *Users) Get(ctx context.Context, ident *authn.Identity, userID string) (*models.User, error) {
	if err := s.guard.Authorize(ident, userID, authz.OwnerOrElevated); err != nil {
		return nil, err
	}
	return s.store.Get(ctx, userID)
}

// UpdateUserInput carries the updatable profile fields. Nil means unchanged.
type UpdateUserInput struct {
	DisplayName *string
	Locale      *string
}

// Update applies a partial profile change. A request changing nothing is
// rejected rather than treated as a no-op.
func (s *Users) Update(ctx context.Context, ident *authn.Identity, userID string, in UpdateUserInput) (*models.User, error) {
	if err := s.guard.Authorize(ident, userID, authz.OwnerOrElevated); err != nil {
		return nil, err
	}
	if in.DisplayName == nil && in.Locale == nil {
		return nil, apperr.InvalidInput("no valid fields to update")
	}
	return s.store.Apply(ctx, userID, UserUpdate{DisplayName: in.DisplayName, Locale: in.Locale})
}

// Delete removes a profile and its entire completion log atomically. When the
// owner deletes their own profile, the upstream identity account is removed
// best-effort afterwards; that failure is logged, never propagated.
func (s *Users) Delete(ctx context.Context, ident *authn.Identity, userID string) error {
	if err := s.guard.Authorize(ident, userID, authz.OwnerOrElevated); err != nil {
		return err
	}
	if err := s.store.DeleteCascade(ctx, userID); err != nil {
		return err
	}
	if ident.ID == userID {
		if err := s.remover.RemoveAccount(ctx, userID); err != nil {
			s.log.Warn("identity account removal failed",
				zap.String("user_id", userID),
				zap.Error(err))
		}
	}
	return nil
}
