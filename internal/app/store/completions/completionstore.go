// internal/app/store/completions/completionstore.go
package completionstore

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
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
	return &Store{c: db.Collection("completion_log")}
}

// Create inserts a completion entry. A fresh UUID is assigned when the ID is
// empty; CompletedAt defaults to now.
func (s *Store) Create(ctx context.Context, entry models.CompletionLog) (models.CompletionLog, error) {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.CompletedAt.IsZero() {
		entry.CompletedAt = time.Now().UTC()
	}
	if _, err := s.c.InsertOne(ctx, entry); err != nil {
		return models.CompletionLog{}, apperr.Internal("create completion", err)
	}
	return entry, nil
}

// Get loads a completion entry by ID within a user's log.
func (s *Store) Get(ctx context.Context, userID, id string) (*models.CompletionLog, error) {
	var e models.CompletionLog
	if err := s.c.FindOne(ctx, bson.M{"_id": id, "user_id": userID}).Decode(&e); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.NotFound("completion not found")
		}
		return nil, apperr.Internal("load completion", err)
	}
	return &e, nil
}

// Delete removes a completion entry from a user's log.
func (s *Store) Delete(ctx context.Context, userID, id string) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id, "user_id": userID})
	if err != nil {
		return apperr.Internal("delete completion", err)
	}
	if res.DeletedCount == 0 {
		return apperr.NotFound("completion not found")
	}
	return nil
}

// Page runs spec against the completion log.
func (s *Store) Page(ctx context.Context, spec docquery.Spec) ([]models.CompletionLog, error) {
	cur, err := s.c.Find(ctx, spec.Filter(), spec.FindOptions())
	if err != nil {
		return nil, apperr.Internal("query completions", err)
	}
	var rows []models.CompletionLog
	if err := cur.All(ctx, &rows); err != nil {
		return nil, apperr.Internal("decode completions", err)
	}
	return rows, nil
}

// Count returns the total matches for spec, ignoring paging.
func (s *Store) Count(ctx context.Context, spec docquery.Spec) (int64, error) {
	n, err := s.c.CountDocuments(ctx, spec.CountFilter())
	if err != nil {
		return 0, apperr.Internal("count completions", err)
	}
	return n, nil
}

// Window returns every completion for a user with CompletedAt at or after
// since, newest first. Stats aggregation walks the full window.
func (s *Store) Window(ctx context.Context, userID string, since time.Time) ([]models.CompletionLog, error) {
	filter := bson.M{
		"user_id":      userID,
		"completed_at": bson.M{"$gte": since},
	}
	opts := options.Find().SetSort(bson.D{{Key: "completed_at", Value: -1}, {Key: "_id", Value: 1}})
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, apperr.Internal("query completions", err)
	}
	var rows []models.CompletionLog
	if err := cur.All(ctx, &rows); err != nil {
		return nil, apperr.Internal("decode completions", err)
	}
	return rows, nil
}

// Recent returns the newest limit completions for a user.
func (s *Store) Recent(ctx context.Context, userID string, limit int64) ([]models.CompletionLog, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "completed_at", Value: -1}, {Key: "_id", Value: 1}}).
		SetLimit(limit)
	cur, err := s.c.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, apperr.Internal("query completions", err)
	}
	var rows []models.CompletionLog
	if err := cur.All(ctx, &rows); err != nil {
		return nil, apperr.Internal("decode completions", err)
	}
	return rows, nil
}
