// internal/app/service/habits.go
package service

import (
	"context"
	"strings"

	"github.com/habitstack/habitstack/internal/app/system/apperr"
	"github.com/habitstack/habitstack/internal/app/system/cursor"
	"github.com/habitstack/habitstack/internal/app/system/docquery"
	"github.com/habitstack/habitstack/internal/app/system/paging"
	"github.com/habitstack/habitstack/internal/domain/models"
)

const (
	habitDefaultLimit  = 50
	habitMaxLimit      = 100
	searchDefaultLimit = 20
	searchMaxLimit     = 100
)

// Habits serves the habit catalog. Habits are seeded read-only public data,
// so no operation here takes an identity.
type Habits struct {
	store HabitStore
}

// HabitFilter narrows catalog queries. Zero values mean "no filter".
type HabitFilter struct {
	Category string
	Tags     []string
}

func (f HabitFilter) validate() error {
	if f.Category != "" && !models.ValidCategory(f.Category) {
		return apperr.InvalidInput("category must be \"daily\", \"weekly\", or \"occasional\"")
	}
	return nil
}

func (f HabitFilter) spec() docquery.Spec {
	spec := docquery.Spec{
		Sort: docquery.Sort{Field: "priority", Desc: true},
	}
	if f.Category != "" {
		spec.Eq = map[string]any{"category": f.Category}
	}
	if len(f.Tags) > 0 {
		spec.AnyOf = &docquery.AnyOf{Field: "tags", Values: f.Tags}
	}
	return spec
}

// List returns a priority-ordered page of the catalog with an independent
// total count.
func (s *Habits) List(ctx context.Context, f HabitFilter, limit int, offset int64) (Page[models.Habit], error) {
	if err := f.validate(); err != nil {
		return Page[models.Habit]{}, err
	}
	limit = paging.ClampLimit(limit, habitDefaultLimit, habitMaxLimit)

	spec := f.spec()
	spec.Limit = int64(limit)
	spec.Offset = offset

	rows, err := s.store.Page(ctx, spec)
	if err != nil {
		return Page[models.Habit]{}, err
	}
	paging.Trim(&rows, limit)

	total, err := s.store.Count(ctx, spec)
	if err != nil {
		return Page[models.Habit]{}, err
	}
	return Page[models.Habit]{
		Items:      rows,
		TotalCount: total,
		HasMore:    offset+int64(limit) < total,
	}, nil
}

// Connection returns a cursor-paged slice of the catalog.
func (s *Habits) Connection(ctx context.Context, f HabitFilter, first int, after string) (Connection[models.Habit], error) {
	if err := f.validate(); err != nil {
		return Connection[models.Habit]{}, err
	}
	first = paging.ClampLimit(first, habitDefaultLimit, habitMaxLimit)

	spec := f.spec()
	spec.Limit = int64(first)
	spec.Anchor = s.anchor(ctx, after)

	rows, err := s.store.Page(ctx, spec)
	if err != nil {
		return Connection[models.Habit]{}, err
	}
	hasNext := paging.Trim(&rows, first)

	total, err := s.store.Count(ctx, spec)
	if err != nil {
		return Connection[models.Habit]{}, err
	}
	return Connection[models.Habit]{
		Items:      rows,
		TotalCount: total,
		PageInfo:   paging.BuildInfo(rows, func(h models.Habit) string { return h.ID }, hasNext, after != ""),
	}, nil
}

// anchor resolves an after cursor to a resume point. Malformed cursors and
// cursors naming a deleted document both restart from the beginning.
func (s *Habits) anchor(ctx context.Context, after string) *docquery.Anchor {
	if after == "" {
		return nil
	}
	id, err := cursor.Decode(after)
	if err != nil {
		return nil
	}
	h, err := s.store.Get(ctx, id)
	if err != nil {
		return nil
	}
	return &docquery.Anchor{ID: h.ID, SortValue: h.Priority}
}

// Get returns one habit by ID.
func (s *Habits) Get(ctx context.Context, id string) (*models.Habit, error) {
	return s.store.Get(ctx, id)
}

// Search fetches the top-priority habits and scans them for a
// case-insensitive substring match on title, benefits, and tags. Recall is
// bounded by limit and the priority fetch order.
func (s *Habits) Search(ctx context.Context, term string, limit int) ([]models.Habit, error) {
	term = strings.TrimSpace(term)
	if len(term) < 2 {
		return nil, apperr.InvalidInput("search query must be at least 2 characters")
	}
	limit = paging.ClampLimit(limit, searchDefaultLimit, searchMaxLimit)

	rows, err := s.store.TopByPriority(ctx, int64(limit))
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(term)
	matches := []models.Habit{}
	for _, h := range rows {
		if habitMatches(h, needle) {
			matches = append(matches, h)
		}
	}
	return matches, nil
}

func habitMatches(h models.Habit, needle string) bool {
	if strings.Contains(strings.ToLower(h.Title), needle) {
		return true
	}
	if strings.Contains(strings.ToLower(h.Benefits), needle) {
		return true
	}
	for _, tag := range h.Tags {
		if strings.Contains(strings.ToLower(tag), needle) {
			return true
		}
	}
	return false
}
