// internal/app/service/bundles.go
package service

import (
	"context"

	"github.com/habitstack/habitstack/internal/app/system/cursor"
	"github.com/habitstack/habitstack/internal/app/system/docquery"
	"github.com/habitstack/habitstack/internal/app/system/fanout"
	"github.com/habitstack/habitstack/internal/app/system/paging"
	"github.com/habitstack/habitstack/internal/domain/models"
)

const (
	bundleDefaultLimit = 20
	bundleMaxLimit     = 50
)

// Bundles serves curated habit collections. Like habits, bundles are public
// seeded data.
type Bundles struct {
	store  BundleStore
	habits HabitStore
}

func bundleSpec() docquery.Spec {
	return docquery.Spec{
		Sort: docquery.Sort{Field: "display_order", Desc: false},
	}
}

// List returns a display-ordered page of bundles.
func (s *Bundles) List(ctx context.Context, limit int, offset int64) (Page[models.Bundle], error) {
	limit = paging.ClampLimit(limit, bundleDefaultLimit, bundleMaxLimit)

	spec := bundleSpec()
	spec.Limit = int64(limit)
	spec.Offset = offset

	rows, err := s.store.Page(ctx, spec)
	if err != nil {
		return Page[models.Bundle]{}, err
	}
	paging.Trim(&rows, limit)

	total, err := s.store.Count(ctx, spec)
	if err != nil {
		return Page[models.Bundle]{}, err
	}
	return Page[models.Bundle]{
		Items:      rows,
		TotalCount: total,
		HasMore:    offset+int64(limit) < total,
	}, nil
}

// Connection returns a cursor-paged slice of bundles.
func (s *Bundles) Connection(ctx context.Context, first int, after string) (Connection[models.Bundle], error) {
	first = paging.ClampLimit(first, bundleDefaultLimit, bundleMaxLimit)

	spec := bundleSpec()
	spec.Limit = int64(first)
	spec.Anchor = s.anchor(ctx, after)

	rows, err := s.store.Page(ctx, spec)
	if err != nil {
		return Connection[models.Bundle]{}, err
	}
	hasNext := paging.Trim(&rows, first)

	total, err := s.store.Count(ctx, spec)
	if err != nil {
		return Connection[models.Bundle]{}, err
	}
	return Connection[models.Bundle]{
		Items:      rows,
		TotalCount: total,
		PageInfo:   paging.BuildInfo(rows, func(b models.Bundle) string { return b.ID }, hasNext, after != ""),
	}, nil
}

func (s *Bundles) anchor(ctx context.Context, after string) *docquery.Anchor {
	if after == "" {
		return nil
	}
	id, err := cursor.Decode(after)
	if err != nil {
		return nil
	}
	b, err := s.store.Get(ctx, id)
	if err != nil {
		return nil
	}
	return &docquery.Anchor{ID: b.ID, SortValue: b.DisplayOrder}
}

// Get returns one bundle by ID.
func (s *Bundles) Get(ctx context.Context, id string) (*models.Bundle, error) {
	return s.store.Get(ctx, id)
}

// Habits resolves a bundle's habit list in the bundle's declared order.
// References to habits that no longer exist are dropped.
func (s *Bundles) Habits(ctx context.Context, bundleID string) ([]models.Habit, error) {
	b, err := s.store.Get(ctx, bundleID)
	if err != nil {
		return nil, err
	}
	return fanout.Resolve(ctx, b.HabitIDs, fanout.DefaultChunkSize, s.habits.ByIDs,
		func(h models.Habit) string { return h.ID })
}
