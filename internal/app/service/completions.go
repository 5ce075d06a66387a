// internal/app/service/completions.go
package service

import (
	"context"
	"time"

	"github.com/habitstack/habitstack/internal/app/system/apperr"
	"github.com/habitstack/habitstack/internal/app/system/authn"
	"github.com/habitstack/habitstack/internal/app/system/authz"
	"github.com/habitstack/habitstack/internal/app/system/cursor"
	"github.com/habitstack/habitstack/internal/app/system/docquery"
	"github.com/habitstack/habitstack/internal/app/system/paging"
	"github.com/habitstack/habitstack/internal/domain/models"
)

const (
	completionDefaultLimit = 50
	completionMaxLimit     = 100
)

// Completions serves the per-user completion log. Entries are created only by
// the owner acting as themselves; reads and deletes extend to the elevated
// role.
type Completions struct {
	store  CompletionStore
	habits HabitStore
	guard  *authz.Guard
}

// CreateCompletionInput is the log-entry payload.
type CreateCompletionInput struct {
	HabitID string
	Source  string
	Note    string
}

// Create logs a completion for the calling identity. The habit must exist at
// creation time; the reference is not re-validated afterwards.
func (s *Completions) Create(ctx context.Context, ident *authn.Identity, in CreateCompletionInput) (models.CompletionLog, error) {
	if err := s.guard.Authorize(ident, "", authz.AuthenticatedOnly); err != nil {
		return models.CompletionLog{}, err
	}
	if in.HabitID == "" {
		return models.CompletionLog{}, apperr.InvalidInput("habitId is required")
	}
	if in.Source == "" {
		in.Source = models.SourceAPI
	}
	if !models.ValidSource(in.Source) {
		return models.CompletionLog{}, apperr.InvalidInput("source must be \"checklist\" or \"api\"")
	}
	if _, err := s.habits.Get(ctx, in.HabitID); err != nil {
		return models.CompletionLog{}, err
	}
	return s.store.Create(ctx, models.CompletionLog{
		UserID:  ident.ID,
		HabitID: in.HabitID,
		Source:  in.Source,
		Note:    in.Note,
	})
}

// CompletionFilter narrows log queries. Start and End both bound CompletedAt.
type CompletionFilter struct {
	HabitID string
	Start   *time.Time
	End     *time.Time
}

func (f CompletionFilter) spec(userID string) docquery.Spec {
	spec := docquery.Spec{
		Eq:   map[string]any{"user_id": userID},
		Sort: docquery.Sort{Field: "completed_at", Desc: true},
	}
	if f.HabitID != "" {
		spec.Eq["habit_id"] = f.HabitID
	}
	if f.Start != nil || f.End != nil {
		spec.Range = &docquery.Range{Field: "completed_at", Min: f.Start, Max: f.End}
	}
	return spec
}

// List returns an offset page of a user's log, newest first.
func (s *Completions) List(ctx context.Context, ident *authn.Identity, userID string, f CompletionFilter, limit int, offset int64) (Page[models.CompletionLog], error) {
	if err := s.guard.Authorize(ident, userID, authz.OwnerOrElevated); err != nil {
		return Page[models.CompletionLog]{}, err
	}
	limit = paging.ClampLimit(limit, completionDefaultLimit, completionMaxLimit)

	spec := f.spec(userID)
	spec.Limit = int64(limit)
	spec.Offset = offset

	rows, err := s.store.Page(ctx, spec)
	if err != nil {
		return Page[models.CompletionLog]{}, err
	}
	paging.Trim(&rows, limit)

	total, err := s.store.Count(ctx, spec)
	if err != nil {
		return Page[models.CompletionLog]{}, err
	}
	return Page[models.CompletionLog]{
		Items:      rows,
		TotalCount: total,
		HasMore:    offset+int64(limit) < total,
	}, nil
}

// Connection returns a cursor page of a user's log.
func (s *Completions) Connection(ctx context.Context, ident *authn.Identity, userID string, f CompletionFilter, first int, after string) (Connection[models.CompletionLog], error) {
	if err := s.guard.Authorize(ident, userID, authz.OwnerOrElevated); err != nil {
		return Connection[models.CompletionLog]{}, err
	}
	first = paging.ClampLimit(first, completionDefaultLimit, completionMaxLimit)

	spec := f.spec(userID)
	spec.Limit = int64(first)
	spec.Anchor = s.anchor(ctx, userID, after)

	rows, err := s.store.Page(ctx, spec)
	if err != nil {
		return Connection[models.CompletionLog]{}, err
	}
	hasNext := paging.Trim(&rows, first)

	total, err := s.store.Count(ctx, spec)
	if err != nil {
		return Connection[models.CompletionLog]{}, err
	}
	return Connection[models.CompletionLog]{
		Items:      rows,
		TotalCount: total,
		PageInfo:   paging.BuildInfo(rows, func(e models.CompletionLog) string { return e.ID }, hasNext, after != ""),
	}, nil
}

func (s *Completions) anchor(ctx context.Context, userID, after string) *docquery.Anchor {
	if after == "" {
		return nil
	}
	id, err := cursor.Decode(after)
	if err != nil {
		return nil
	}
	e, err := s.store.Get(ctx, userID, id)
	if err != nil {
		return nil
	}
	return &docquery.Anchor{ID: e.ID, SortValue: e.CompletedAt}
}

// Delete removes one log entry, owner or elevated role only.
func (s *Completions) Delete(ctx context.Context, ident *authn.Identity, userID, completionID string) error {
	if err := s.guard.Authorize(ident, userID, authz.OwnerOrElevated); err != nil {
		return err
	}
	return s.store.Delete(ctx, userID, completionID)
}
