// internal/app/store/habits/habitstore.go
package habitstore

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/habitstack/habitstack/internal/app/system/apperr"
	"github.com/habitstack/habitstack/internal/app/system/docquery"
	"github.com/habitstack/habitstack/internal/domain/models"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("habits")}
}

// Get loads a habit by ID.
func (s *Store) Get(ctx context.Context, id string) (*models.Habit, error) {
	var h models.Habit
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&h); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.NotFound("habit not found")
		}
		return nil, apperr.Internal("load habit", err)
	}
	return &h, nil
}

// Page runs spec against the habits collection and returns the matching rows
// in spec's sort order.
func (s *Store) Page(ctx context.Context, spec docquery.Spec) ([]models.Habit, error) {
	cur, err := s.c.Find(ctx, spec.Filter(), spec.FindOptions())
	if err != nil {
		return nil, apperr.Internal("query habits", err)
	}
	var rows []models.Habit
	if err := cur.All(ctx, &rows); err != nil {
		return nil, apperr.Internal("decode habits", err)
	}
	return rows, nil
}

// Count returns the total matches for spec, ignoring paging.
func (s *Store) Count(ctx context.Context, spec docquery.Spec) (int64, error) {
	n, err := s.c.CountDocuments(ctx, spec.CountFilter())
	if err != nil {
		return 0, apperr.Internal("count habits", err)
	}
	return n, nil
}

// TopByPriority returns the highest-priority habits, at most limit.
func (s *Store) TopByPriority(ctx context.Context, limit int64) ([]models.Habit, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "priority", Value: -1}, {Key: "_id", Value: 1}}).
		SetLimit(limit)
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, apperr.Internal("query habits", err)
	}
	var rows []models.Habit
	if err := cur.All(ctx, &rows); err != nil {
		return nil, apperr.Internal("decode habits", err)
	}
	return rows, nil
}

// ByIDs fetches the habits whose IDs appear in ids. Missing IDs are simply
// absent from the result; order is unspecified. Callers batching more than
// ten IDs should go through the fanout resolver.
func (s *Store) ByIDs(ctx context.Context, ids []string) ([]models.Habit, error) {
	if len(ids) == 0 {
		return []models.Habit{}, nil
	}
	cur, err := s.c.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, apperr.Internal("query habits by id", err)
	}
	var rows []models.Habit
	if err := cur.All(ctx, &rows); err != nil {
		return nil, apperr.Internal("decode habits", err)
	}
	return rows, nil
}
