// internal/app/store/bundles/bundlestore.go
package bundlestore

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/habitstack/habitstack/internal/app/system/apperr"
	"github.com/habitstack/habitstack/internal/app/system/docquery"
	"github.com/habitstack/habitstack/internal/domain/models"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("habit_bundles")}
}

// Get loads a bundle by ID.
func (s *Store) Get(ctx context.Context, id string) (*models.Bundle, error) {
	var b models.Bundle
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&b); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.NotFound("bundle not found")
		}
		return nil, apperr.Internal("load bundle", err)
	}
	return &b, nil
}

// Page runs spec against the bundles collection.
func (s *Store) Page(ctx context.Context, spec docquery.Spec) ([]models.Bundle, error) {
	cur, err := s.c.Find(ctx, spec.Filter(), spec.FindOptions())
	if err != nil {
		return nil, apperr.Internal("query bundles", err)
	}
	var rows []models.Bundle
	if err := cur.All(ctx, &rows); err != nil {
		return nil, apperr.Internal("decode bundles", err)
	}
	return rows, nil
}

// Count returns the total matches for spec, ignoring paging.
func (s *Store) Count(ctx context.Context, spec docquery.Spec) (int64, error) {
	n, err := s.c.CountDocuments(ctx, spec.CountFilter())
	if err != nil {
		return 0, apperr.Internal("count bundles", err)
	}
	return n, nil
}
