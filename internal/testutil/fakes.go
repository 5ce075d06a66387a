package testutil

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/habitstack/habitstack/internal/app/service"
	"github.com/habitstack/habitstack/internal/app/system/apperr"
	"github.com/habitstack/habitstack/internal/app/system/docquery"
	"github.com/habitstack/habitstack/internal/domain/models"
)

// FakeHabitStore is an in-memory habit store for service and handler tests.
// It honors the same filter semantics as the Mongo-backed store, including
// the ten-value membership cap.
type FakeHabitStore struct {
	mu     sync.Mutex
	Habits map[string]models.Habit

	// ByIDsCalls records each membership query, for fan-out assertions.
	ByIDsCalls [][]string
}

func NewFakeHabitStore(habits ...models.Habit) *FakeHabitStore {
	s := &FakeHabitStore{Habits: map[string]models.Habit{}}
	for _, h := range habits {
		s.Habits[h.ID] = h
	}
	return s
}

func (s *FakeHabitStore) Get(ctx context.Context, id string) (*models.Habit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	h, ok := s.Habits[id]
	if !ok {
		return nil, apperr.NotFound("habit not found")
	}
	return &h, nil
}

func (s *FakeHabitStore) matches(h models.Habit, spec docquery.Spec) bool {
	if cat, ok := spec.Eq["category"]; ok && h.Category != cat {
		return false
	}
	if spec.AnyOf != nil {
		values := spec.AnyOf.Values
		if len(values) > docquery.MaxAnyOfValues {
			values = values[:docquery.MaxAnyOfValues]
		}
		found := false
		for _, v := range values {
			for _, tag := range h.Tags {
				if tag == v {
					found = true
				}
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func (s *FakeHabitStore) sorted(spec docquery.Spec) []models.Habit {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows := make([]models.Habit, 0, len(s.Habits))
	for _, h := range s.Habits {
		if s.matches(h, spec) {
			rows = append(rows, h)
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Priority != rows[j].Priority {
			if spec.Sort.Desc {
				return rows[i].Priority > rows[j].Priority
			}
			return rows[i].Priority < rows[j].Priority
		}
		return rows[i].ID < rows[j].ID
	})
	return rows
}

func (s *FakeHabitStore) Page(ctx context.Context, spec docquery.Spec) ([]models.Habit, error) {
	rows := s.sorted(spec)
	if spec.Anchor != nil {
		for i, h := range rows {
			if h.ID == spec.Anchor.ID {
				rows = rows[i+1:]
				break
			}
		}
	} else if spec.Offset > 0 {
		if spec.Offset >= int64(len(rows)) {
			rows = nil
		} else {
			rows = rows[spec.Offset:]
		}
	}
	// Mirrors the store's N+1 lookahead.
	if spec.Limit > 0 && int64(len(rows)) > spec.Limit+1 {
		rows = rows[:spec.Limit+1]
	}
	return rows, nil
}

func (s *FakeHabitStore) Count(ctx context.Context, spec docquery.Spec) (int64, error) {
	return int64(len(s.sorted(spec))), nil
}

func (s *FakeHabitStore) TopByPriority(ctx context.Context, limit int64) ([]models.Habit, error) {
	rows := s.sorted(docquery.Spec{Sort: docquery.Sort{Field: "priority", Desc: true}})
	if int64(len(rows)) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}

func (s *FakeHabitStore) ByIDs(ctx context.Context, ids []string) ([]models.Habit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ByIDsCalls = append(s.ByIDsCalls, append([]string(nil), ids...))
	rows := []models.Habit{}
	for _, id := range ids {
		if h, ok := s.Habits[id]; ok {
			rows = append(rows, h)
		}
	}
	// Store order is unspecified; shuffle deterministically so callers that
	// forget to re-sort fail loudly.
	sort.Slice(rows, func(i, j int) bool { return rows[i].ID > rows[j].ID })
	return rows, nil
}

// FakeBundleStore is an in-memory bundle store.
type FakeBundleStore struct {
	mu      sync.Mutex
	Bundles map[string]models.Bundle
}

func NewFakeBundleStore(bundles ...models.Bundle) *FakeBundleStore {
	s := &FakeBundleStore{Bundles: map[string]models.Bundle{}}
	for _, b := range bundles {
		s.Bundles[b.ID] = b
	}
	return s
}

func (s *FakeBundleStore) Get(ctx context.Context, id string) (*models.Bundle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.Bundles[id]
	if !ok {
		return nil, apperr.NotFound("bundle not found")
	}
	return &b, nil
}

func (s *FakeBundleStore) sorted() []models.Bundle {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows := make([]models.Bundle, 0, len(s.Bundles))
	for _, b := range s.Bundles {
		rows = append(rows, b)
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].DisplayOrder != rows[j].DisplayOrder {
			return rows[i].DisplayOrder < rows[j].DisplayOrder
		}
		return rows[i].ID < rows[j].ID
	})
	return rows
}

func (s *FakeBundleStore) Page(ctx context.Context, spec docquery.Spec) ([]models.Bundle, error) {
	rows := s.sorted()
	if spec.Anchor != nil {
		for i, b := range rows {
			if b.ID == spec.Anchor.ID {
				rows = rows[i+1:]
				break
			}
		}
	} else if spec.Offset > 0 {
		if spec.Offset >= int64(len(rows)) {
			rows = nil
		} else {
			rows = rows[spec.Offset:]
		}
	}
	if spec.Limit > 0 && int64(len(rows)) > spec.Limit+1 {
		rows = rows[:spec.Limit+1]
	}
	return rows, nil
}

func (s *FakeBundleStore) Count(ctx context.Context, spec docquery.Spec) (int64, error) {
	return int64(len(s.sorted())), nil
}

// FakeUserStore is an in-memory user store. When Completions is set,
// DeleteCascade clears the user's entries there too, mirroring the
// transactional cascade.
type FakeUserStore struct {
	mu          sync.Mutex
	Users       map[string]models.User
	Completions *FakeCompletionStore
}

func NewFakeUserStore(users ...models.User) *FakeUserStore {
	s := &FakeUserStore{Users: map[string]models.User{}}
	for _, u := range users {
		s.Users[u.ID] = u
	}
	return s
}

func (s *FakeUserStore) Get(ctx context.Context, id string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.Users[id]
	if !ok {
		return nil, apperr.NotFound("user not found")
	}
	return &u, nil
}

func (s *FakeUserStore) Role(ctx context.Context, id string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.Users[id]
	if !ok {
		return "", nil
	}
	return u.Role, nil
}

func (s *FakeUserStore) Create(ctx context.Context, u models.User) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.Users[u.ID]; exists {
		return models.User{}, apperr.Conflict("user profile already exists")
	}
	if u.Role == "" {
		u.Role = models.RoleUser
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	s.Users[u.ID] = u
	return u, nil
}

func (s *FakeUserStore) Apply(ctx context.Context, id string, upd service.UserUpdate) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.Users[id]
	if !ok {
		return nil, apperr.NotFound("user not found")
	}
	if upd.DisplayName == nil && upd.Locale == nil {
		return nil, apperr.InvalidInput("no valid fields to update")
	}
	if upd.DisplayName != nil {
		u.DisplayName = *upd.DisplayName
	}
	if upd.Locale != nil {
		u.Locale = *upd.Locale
	}
	s.Users[id] = u
	return &u, nil
}

func (s *FakeUserStore) DeleteCascade(ctx context.Context, id string) error {
	s.mu.Lock()
	if _, ok := s.Users[id]; !ok {
		s.mu.Unlock()
		return apperr.NotFound("user not found")
	}
	delete(s.Users, id)
	s.mu.Unlock()
	if s.Completions != nil {
		s.Completions.deleteAllFor(id)
	}
	return nil
}

// FakeCompletionStore is an in-memory completion-log store.
type FakeCompletionStore struct {
	mu      sync.Mutex
	Entries []models.CompletionLog

	// RecentCalls counts Recent queries, so tests can assert the capped
	// fetch is used rather than an in-process slice.
	RecentCalls int
}

func NewFakeCompletionStore(entries ...models.CompletionLog) *FakeCompletionStore {
	return &FakeCompletionStore{Entries: append([]models.CompletionLog(nil), entries...)}
}

func (s *FakeCompletionStore) Create(ctx context.Context, entry models.CompletionLog) (models.CompletionLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.CompletedAt.IsZero() {
		entry.CompletedAt = time.Now().UTC()
	}
	s.Entries = append(s.Entries, entry)
	return entry, nil
}

func (s *FakeCompletionStore) Get(ctx context.Context, userID, id string) (*models.CompletionLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.Entries {
		if e.ID == id && e.UserID == userID {
			return &e, nil
		}
	}
	return nil, apperr.NotFound("completion not found")
}

func (s *FakeCompletionStore) Delete(ctx context.Context, userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, e := range s.Entries {
		if e.ID == id && e.UserID == userID {
			s.Entries = append(s.Entries[:i], s.Entries[i+1:]...)
			return nil
		}
	}
	return apperr.NotFound("completion not found")
}

func (s *FakeCompletionStore) deleteAllFor(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.Entries[:0]
	for _, e := range s.Entries {
		if e.UserID != userID {
			kept = append(kept, e)
		}
	}
	s.Entries = kept
}

func (s *FakeCompletionStore) matches(e models.CompletionLog, spec docquery.Spec) bool {
	if uid, ok := spec.Eq["user_id"]; ok && e.UserID != uid {
		return false
	}
	if hid, ok := spec.Eq["habit_id"]; ok && e.HabitID != hid {
		return false
	}
	if spec.Range != nil {
		if spec.Range.Min != nil && e.CompletedAt.Before(*spec.Range.Min) {
			return false
		}
		if spec.Range.Max != nil && e.CompletedAt.After(*spec.Range.Max) {
			return false
		}
	}
	return true
}

func (s *FakeCompletionStore) sorted(spec docquery.Spec) []models.CompletionLog {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows := []models.CompletionLog{}
	for _, e := range s.Entries {
		if s.matches(e, spec) {
			rows = append(rows, e)
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].CompletedAt.Equal(rows[j].CompletedAt) {
			return rows[i].CompletedAt.After(rows[j].CompletedAt)
		}
		return rows[i].ID < rows[j].ID
	})
	return rows
}

func (s *FakeCompletionStore) Page(ctx context.Context, spec docquery.Spec) ([]models.CompletionLog, error) {
	rows := s.sorted(spec)
	if spec.Anchor != nil {
		for i, e := range rows {
			if e.ID == spec.Anchor.ID {
				rows = rows[i+1:]
				break
			}
		}
	} else if spec.Offset > 0 {
		if spec.Offset >= int64(len(rows)) {
			rows = nil
		} else {
			rows = rows[spec.Offset:]
		}
	}
	if spec.Limit > 0 && int64(len(rows)) > spec.Limit+1 {
		rows = rows[:spec.Limit+1]
	}
	return rows, nil
}

func (s *FakeCompletionStore) Count(ctx context.Context, spec docquery.Spec) (int64, error) {
	return int64(len(s.sorted(spec))), nil
}

func (s *FakeCompletionStore) Window(ctx context.Context, userID string, since time.Time) ([]models.CompletionLog, error) {
	spec := docquery.Spec{Eq: map[string]any{"user_id": userID}}
	if !since.IsZero() {
		spec.Range = &docquery.Range{Field: "completed_at", Min: &since}
	}
	return s.sorted(spec), nil
}

func (s *FakeCompletionStore) Recent(ctx context.Context, userID string, limit int64) ([]models.CompletionLog, error) {
	s.mu.Lock()
	s.RecentCalls++
	s.mu.Unlock()
	rows := s.sorted(docquery.Spec{Eq: map[string]any{"user_id": userID}})
	if int64(len(rows)) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}

// RecordingRemover captures account-removal calls.
type RecordingRemover struct {
	mu      sync.Mutex
	Removed []string
	Err     error
}

func (r *RecordingRemover) RemoveAccount(ctx context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Removed = append(r.Removed, userID)
	return r.Err
}

// ErrRemoverFailed is a canned error for RecordingRemover.Err.
var ErrRemoverFailed = errors.New("identity provider unavailable")

// Habit builds a habit fixture.
func Habit(id, title, category string, priority int, tags ...string) models.Habit {
	return models.Habit{
		ID:        id,
		Title:     title,
		Benefits:  "Benefits of " + strings.ToLower(title),
		Category:  category,
		Priority:  priority,
		Tags:      tags,
		CreatedAt: time.Now().UTC(),
	}
}

// Bundle builds a bundle fixture.
func Bundle(id, name string, displayOrder int, habitIDs ...string) models.Bundle {
	return models.Bundle{
		ID:           id,
		Name:         name,
		Description:  "Description of " + name,
		HabitIDs:     habitIDs,
		DisplayOrder: displayOrder,
		CreatedAt:    time.Now().UTC(),
	}
}

// User builds a user fixture.
func User(id, displayName, role string) models.User {
	return models.User{
		ID:          id,
		DisplayName: displayName,
		Email:       id + "@test.com",
		Role:        role,
		CreatedAt:   time.Now().UTC(),
	}
}

// Completion builds a completion fixture.
func Completion(id, userID, habitID string, completedAt time.Time) models.CompletionLog {
	return models.CompletionLog{
		ID:          id,
		UserID:      userID,
		HabitID:     habitID,
		CompletedAt: completedAt,
		Source:      models.SourceAPI,
	}
}
