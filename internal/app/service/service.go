// internal/app/service/service.go

// Package service implements the entity operations shared by the REST and
// GraphQL transports. Handlers and resolvers translate requests into these
// calls and translate results back; no business rule lives in a transport.
package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	userstore "github.com/habitstack/habitstack/internal/app/store/users"
	"github.com/habitstack/habitstack/internal/app/system/authn"
	"github.com/habitstack/habitstack/internal/app/system/authz"
	"github.com/habitstack/habitstack/internal/app/system/docquery"
	"github.com/habitstack/habitstack/internal/app/system/paging"
	"github.com/habitstack/habitstack/internal/domain/models"
)

// HabitStore is the persistence surface the habit operations need.
type HabitStore interface {
	Get(ctx context.Context, id string) (*models.Habit, error)
	Page(ctx context.Context, spec docquery.Spec) ([]models.Habit, error)
	Count(ctx context.Context, spec docquery.Spec) (int64, error)
	TopByPriority(ctx context.Context, limit int64) ([]models.Habit, error)
	ByIDs(ctx context.Context, ids []string) ([]models.Habit, error)
}

// BundleStore is the persistence surface the bundle operations need.
type BundleStore interface {
	Get(ctx context.Context, id string) (*models.Bundle, error)
	Page(ctx context.Context, spec docquery.Spec) ([]models.Bundle, error)
	Count(ctx context.Context, spec docquery.Spec) (int64, error)
}

// UserStore is the persistence surface the user operations need.
type UserStore interface {
	Get(ctx context.Context, id string) (*models.User, error)
	Create(ctx context.Context, u models.User) (models.User, error)
	Apply(ctx context.Context, id string, upd UserUpdate) (*models.User, error)
	DeleteCascade(ctx context.Context, id string) error
}

// UserUpdate is the store's partial-update shape. Nil pointers leave fields
// untouched.
type UserUpdate = userstore.Update

// CompletionStore is the persistence surface the completion operations need.
type CompletionStore interface {
	Create(ctx context.Context, entry models.CompletionLog) (models.CompletionLog, error)
	Get(ctx context.Context, userID, id string) (*models.CompletionLog, error)
	Delete(ctx context.Context, userID, id string) error
	Page(ctx context.Context, spec docquery.Spec) ([]models.CompletionLog, error)
	Count(ctx context.Context, spec docquery.Spec) (int64, error)
	Window(ctx context.Context, userID string, since time.Time) ([]models.CompletionLog, error)
	Recent(ctx context.Context, userID string, limit int64) ([]models.CompletionLog, error)
}

// Page is an offset-paged result for the REST surface.
type Page[T any] struct {
	Items      []T
	TotalCount int64
	HasMore    bool
}

// Connection is a cursor-paged result for the GraphQL surface.
type Connection[T any] struct {
	Items      []T
	TotalCount int64
	PageInfo   paging.Info
}

// Services bundles every entity service behind one constructor so bootstrap
// wires stores once.
type Services struct {
	Habits      *Habits
	Bundles     *Bundles
	Users       *Users
	Completions *Completions
	Stats       *Stats
}

// Deps carries everything New needs.
type Deps struct {
	HabitStore      HabitStore
	BundleStore     BundleStore
	UserStore       UserStore
	CompletionStore CompletionStore
	Guard           *authz.Guard
	Remover         authn.AccountRemover
	Log             *zap.Logger
}

func New(d Deps) *Services {
	habits := &Habits{store: d.HabitStore}
	return &Services{
		Habits:  habits,
		Bundles: &Bundles{store: d.BundleStore, habits: d.HabitStore},
		Users: &Users{
			store:   d.UserStore,
			guard:   d.Guard,
			remover: d.Remover,
			log:     d.Log,
		},
		Completions: &Completions{
			store:  d.CompletionStore,
			habits: d.HabitStore,
			guard:  d.Guard,
		},
		Stats: &Stats{
			completions: d.CompletionStore,
			habits:      d.HabitStore,
			guard:       d.Guard,
		},
	}
}
