// internal/app/features/habits/handler_test.go

package habits_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"go.uber.org/zap"

	"github.com/habitstack/habitstack/internal/app/features/habits"
	"github.com/habitstack/habitstack/internal/app/service"
	"github.com/habitstack/habitstack/internal/app/system/authz"
	"github.com/habitstack/habitstack/internal/testutil"
)

func newHandler(store *testutil.FakeHabitStore) *habits.Handler {
	svc := service.New(service.Deps{
		HabitStore:      store,
		BundleStore:     testutil.NewFakeBundleStore(),
		UserStore:       testutil.NewFakeUserStore(),
		CompletionStore: testutil.NewFakeCompletionStore(),
		Guard:           authz.NewGuard("coach"),
		Remover:         &testutil.RecordingRemover{},
		Log:             zap.NewNop(),
	})
	return habits.NewHandler(svc.Habits, zap.NewNop())
}

func TestListReturnsCatalog(t *testing.T) {
	h := newHandler(testutil.NewFakeHabitStore(
		testutil.Habit("h1", "Drink water", "health", 3),
		testutil.Habit("h2", "Morning run", "fitness", 9),
	))

	rec := testutil.NewRecorder()
	h.List(rec, testutil.NewRequest(http.MethodGet, "/habits"))

	rec.AssertStatus(t, http.StatusOK)
	var body struct {
		Success bool `json:"success"`
		Data    struct {
			Habits  []json.RawMessage `json:"habits"`
			Total   int64             `json:"total"`
			HasMore bool              `json:"hasMore"`
		} `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decoding: %v", err)
	}
	if !body.Success || body.Data.Total != 2 || len(body.Data.Habits) != 2 || body.Data.HasMore {
		t.Errorf("body = %+v", body)
	}
}

func TestListAppliesFilters(t *testing.T) {
	h := newHandler(testutil.NewFakeHabitStore(
		testutil.Habit("h1", "Drink water", "daily", 3),
		testutil.Habit("h2", "Morning run", "weekly", 9),
	))

	rec := testutil.NewRecorder()
	h.List(rec, testutil.NewRequest(http.MethodGet, "/habits?category=weekly"))

	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, `"total":1`)
	rec.AssertContains(t, "Morning run")
}

func TestListRejectsUnknownCategory(t *testing.T) {
	h := newHandler(testutil.NewFakeHabitStore())

	rec := testutil.NewRecorder()
	h.List(rec, testutil.NewRequest(http.MethodGet, "/habits?category=hourly"))

	rec.AssertStatus(t, http.StatusBadRequest)
	rec.AssertContains(t, `"success":false`)
}

func TestListIgnoresMalformedPagination(t *testing.T) {
	h := newHandler(testutil.NewFakeHabitStore(
		testutil.Habit("h1", "Drink water", "health", 3),
	))

	rec := testutil.NewRecorder()
	h.List(rec, testutil.NewRequest(http.MethodGet, "/habits?limit=banana&offset=-3"))

	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, `"total":1`)
}

func TestGetHabit(t *testing.T) {
	h := newHandler(testutil.NewFakeHabitStore(
		testutil.Habit("h1", "Drink water", "health", 3),
	))

	rec := testutil.NewRecorder()
	req := testutil.WithChiURLParam(testutil.NewRequest(http.MethodGet, "/habits/h1"), "id", "h1")
	h.Get(rec, req)

	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, "Drink water")
}

func TestGetHabitNotFound(t *testing.T) {
	h := newHandler(testutil.NewFakeHabitStore())

	rec := testutil.NewRecorder()
	req := testutil.WithChiURLParam(testutil.NewRequest(http.MethodGet, "/habits/ghost"), "id", "ghost")
	h.Get(rec, req)

	rec.AssertStatus(t, http.StatusNotFound)
	rec.AssertContains(t, `"success":false`)
	rec.AssertContains(t, "habit not found")
}

func TestSearch(t *testing.T) {
	h := newHandler(testutil.NewFakeHabitStore(
		testutil.Habit("h1", "Drink water", "health", 3),
		testutil.Habit("h2", "Morning run", "fitness", 9),
	))

	rec := testutil.NewRecorder()
	req := testutil.WithChiURLParam(testutil.NewRequest(http.MethodGet, "/habits/search/water"), "query", "water")
	h.Search(rec, req)

	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, `"count":1`)
	rec.AssertContains(t, "Drink water")
}

func TestSearchTooShort(t *testing.T) {
	h := newHandler(testutil.NewFakeHabitStore())

	rec := testutil.NewRecorder()
	req := testutil.WithChiURLParam(testutil.NewRequest(http.MethodGet, "/habits/search/x"), "query", "x")
	h.Search(rec, req)

	rec.AssertStatus(t, http.StatusBadRequest)
	rec.AssertContains(t, "at least 2 characters")
}
