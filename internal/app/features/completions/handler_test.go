// internal/app/features/completions/handler_test.go

package completions_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/habitstack/habitstack/internal/app/features/completions"
	"github.com/habitstack/habitstack/internal/app/service"
	"github.com/habitstack/habitstack/internal/app/system/authn"
	"github.com/habitstack/habitstack/internal/app/system/authz"
	"github.com/habitstack/habitstack/internal/testutil"
)

func newHandler(habits *testutil.FakeHabitStore, store *testutil.FakeCompletionStore) *completions.Handler {
	svc := service.New(service.Deps{
		HabitStore:      habits,
		BundleStore:     testutil.NewFakeBundleStore(),
		UserStore:       testutil.NewFakeUserStore(),
		CompletionStore: store,
		Guard:           authz.NewGuard("coach"),
		Remover:         &testutil.RecordingRemover{},
		Log:             zap.NewNop(),
	})
	return completions.NewHandler(svc.Completions, svc.Stats, zap.NewNop())
}

func postJSON(target, body string, ident *authn.Identity) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if ident != nil {
		req = testutil.WithIdentity(req, ident)
	}
	return req
}

func TestCreateCompletion(t *testing.T) {
	habits := testutil.NewFakeHabitStore(testutil.Habit("h1", "Run", "fitness", 5))
	store := testutil.NewFakeCompletionStore()
	h := newHandler(habits, store)

	rec := testutil.NewRecorder()
	h.Create(rec, postJSON("/completions", `{"habitId":"h1","source":"checklist"}`, testutil.RegularUser("u1")))

	rec.AssertStatus(t, http.StatusCreated)
	rec.AssertContains(t, `"success":true`)
	if len(store.Entries) != 1 || store.Entries[0].UserID != "u1" {
		t.Errorf("entries = %+v", store.Entries)
	}
}

func TestCreateCompletionUnauthenticated(t *testing.T) {
	h := newHandler(testutil.NewFakeHabitStore(), testutil.NewFakeCompletionStore())

	rec := testutil.NewRecorder()
	h.Create(rec, postJSON("/completions", `{"habitId":"h1"}`, nil))

	rec.AssertStatus(t, http.StatusUnauthorized)
}

func TestCreateCompletionBadBody(t *testing.T) {
	h := newHandler(testutil.NewFakeHabitStore(), testutil.NewFakeCompletionStore())

	rec := testutil.NewRecorder()
	h.Create(rec, postJSON("/completions", `{not json`, testutil.RegularUser("u1")))

	rec.AssertStatus(t, http.StatusBadRequest)
	rec.AssertContains(t, "invalid request body")
}

func TestCreateCompletionBadSource(t *testing.T) {
	habits := testutil.NewFakeHabitStore(testutil.Habit("h1", "Run", "fitness", 5))
	h := newHandler(habits, testutil.NewFakeCompletionStore())

	rec := testutil.NewRecorder()
	h.Create(rec, postJSON("/completions", `{"habitId":"h1","source":"webhook"}`, testutil.RegularUser("u1")))

	rec.AssertStatus(t, http.StatusBadRequest)
}

func TestListCompletions(t *testing.T) {
	store := testutil.NewFakeCompletionStore(
		testutil.Completion("c1", "u1", "h1", time.Now().UTC()),
		testutil.Completion("c2", "u1", "h2", time.Now().UTC().Add(-time.Hour)),
	)
	h := newHandler(testutil.NewFakeHabitStore(), store)

	rec := testutil.NewRecorder()
	req := testutil.NewAuthenticatedRequest(http.MethodGet, "/completions/u1", testutil.RegularUser("u1"))
	h.List(rec, testutil.WithChiURLParam(req, "userId", "u1"))

	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, `"total":2`)
}

func TestListCompletionsForbidden(t *testing.T) {
	h := newHandler(testutil.NewFakeHabitStore(), testutil.NewFakeCompletionStore())

	rec := testutil.NewRecorder()
	req := testutil.NewAuthenticatedRequest(http.MethodGet, "/completions/u1", testutil.RegularUser("u2"))
	h.List(rec, testutil.WithChiURLParam(req, "userId", "u1"))

	rec.AssertStatus(t, http.StatusForbidden)
	rec.AssertContains(t, "access denied")
}

func TestListCompletionsBadDate(t *testing.T) {
	h := newHandler(testutil.NewFakeHabitStore(), testutil.NewFakeCompletionStore())

	rec := testutil.NewRecorder()
	req := testutil.NewAuthenticatedRequest(http.MethodGet, "/completions/u1?startDate=yesterday", testutil.RegularUser("u1"))
	h.List(rec, testutil.WithChiURLParam(req, "userId", "u1"))

	rec.AssertStatus(t, http.StatusBadRequest)
	rec.AssertContains(t, "startDate must be an ISO 8601 timestamp")
}

func TestListCompletionsDateOnlyAccepted(t *testing.T) {
	store := testutil.NewFakeCompletionStore(
		testutil.Completion("c1", "u1", "h1", time.Date(2026, 8, 15, 10, 0, 0, 0, time.UTC)),
	)
	h := newHandler(testutil.NewFakeHabitStore(), store)

	rec := testutil.NewRecorder()
	req := testutil.NewAuthenticatedRequest(http.MethodGet, "/completions/u1?startDate=2026-08-01", testutil.RegularUser("u1"))
	h.List(rec, testutil.WithChiURLParam(req, "userId", "u1"))

	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, `"total":1`)
}

func TestStatsWindow(t *testing.T) {
	store := testutil.NewFakeCompletionStore(
		testutil.Completion("c1", "u1", "h1", time.Now().UTC().AddDate(0, 0, -1)),
	)
	h := newHandler(testutil.NewFakeHabitStore(), store)

	rec := testutil.NewRecorder()
	req := testutil.NewAuthenticatedRequest(http.MethodGet, "/completions/u1/stats?days=7", testutil.CoachUser("coach"))
	h.StatsWindow(rec, testutil.WithChiURLParam(req, "userId", "u1"))

	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, `"periodDays":7`)
	rec.AssertContains(t, `"totalCompletions":1`)
}

func TestDeleteCompletion(t *testing.T) {
	store := testutil.NewFakeCompletionStore(
		testutil.Completion("c1", "u1", "h1", time.Now().UTC()),
	)
	h := newHandler(testutil.NewFakeHabitStore(), store)

	rec := testutil.NewRecorder()
	req := testutil.NewAuthenticatedRequest(http.MethodDelete, "/completions/u1/c1", testutil.RegularUser("u1"))
	req = testutil.WithChiURLParam(req, "userId", "u1")
	req = testutil.WithChiURLParam(req, "completionId", "c1")
	h.Delete(rec, req)

	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, "completion deleted")
	if len(store.Entries) != 0 {
		t.Errorf("entry not deleted: %+v", store.Entries)
	}
}

func TestDeleteCompletionNotFound(t *testing.T) {
	h := newHandler(testutil.NewFakeHabitStore(), testutil.NewFakeCompletionStore())

	rec := testutil.NewRecorder()
	req := testutil.NewAuthenticatedRequest(http.MethodDelete, "/completions/u1/ghost", testutil.RegularUser("u1"))
	req = testutil.WithChiURLParam(req, "userId", "u1")
	req = testutil.WithChiURLParam(req, "completionId", "ghost")
	h.Delete(rec, req)

	rec.AssertStatus(t, http.StatusNotFound)
}
