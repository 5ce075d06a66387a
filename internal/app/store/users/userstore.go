// internal/app/store/users/userstore.go
package userstore

import (
	"context"
	"errors"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/habitstack/habitstack/internal/app/system/apperr"
	"github.com/habitstack/habitstack/internal/domain/models"
)

type Store struct {
	db *mongo.Database
	c  *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{db: db, c: db.Collection("users")}
}

// Get loads a user by ID.
func (s *Store) Get(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, apperr.Internal("load user", err)
	}
	return &u, nil
}

// Role returns the stored role for a user, or "" when no profile exists.
// It satisfies the token middleware's role source.
func (s *Store) Role(ctx context.Context, id string) (string, error) {
	var doc struct {
		Role string `bson:"role"`
	}
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return doc.Role, nil
}

// Create inserts a new user profile. The ID is the caller's subject, so a
// second create for the same account collides on _id and reports a conflict.
func (s *Store) Create(ctx context.Context, u models.User) (models.User, error) {
	if u.Role == "" {
		u.Role = models.RoleUser
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	if _, err := s.c.InsertOne(ctx, u); err != nil {
		if wafflemongo.IsDup(err) {
			return models.User{}, apperr.Conflict("user profile already exists")
		}
		return models.User{}, apperr.Internal("create user", err)
	}
	return u, nil
}

// Update holds the profile fields a user may change. Nil pointers leave the
// stored value untouched.
type Update struct {
	DisplayName *string
	Locale      *string
}

// Apply updates the given fields on the user document and returns the
// resulting document.
func (s *Store) Apply(ctx context.Context, id string, upd Update) (*models.User, error) {
	set := bson.M{}
	if upd.DisplayName != nil {
		set["display_name"] = *upd.DisplayName
	}
	if upd.Locale != nil {
		set["locale"] = *upd.Locale
	}
	if len(set) == 0 {
		return nil, apperr.InvalidInput("no valid fields to update")
	}
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return nil, apperr.Internal("update user", err)
	}
	if res.MatchedCount == 0 {
		return nil, apperr.NotFound("user not found")
	}
	return s.Get(ctx, id)
}

// DeleteCascade removes the user document and every completion-log entry the
// user owns in a single transaction, so a failure leaves both intact.
func (s *Store) DeleteCascade(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}

	sess, err := s.db.Client().StartSession()
	if err != nil {
		return apperr.Internal("start session", err)
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (any, error) {
		if _, err := s.db.Collection("completion_log").DeleteMany(sc, bson.M{"user_id": id}); err != nil {
			return nil, err
		}
		if _, err := s.c.DeleteOne(sc, bson.M{"_id": id}); err != nil {
			return nil, err
		}
		return nil, nil
	})
	if err != nil {
		return apperr.Internal("delete user", err)
	}
	return nil
}
