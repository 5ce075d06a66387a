// internal/app/service/completions_test.go

package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/habitstack/habitstack/internal/app/service"
	"github.com/habitstack/habitstack/internal/app/system/apperr"
	"github.com/habitstack/habitstack/internal/domain/models"
	"github.com/habitstack/habitstack/internal/testutil"
)

func TestCompletionsCreate(t *testing.T) {
	habits := testutil.NewFakeHabitStore(testutil.Habit("h1", "Run", "fitness", 5))
	svc := newServices(fixtures{habits: habits})

	entry, err := svc.Completions.Create(context.Background(), testutil.RegularUser("u1"), service.CreateCompletionInput{
		HabitID: "h1",
		Source:  models.SourceChecklist,
		Note:    "5k in the rain",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if entry.ID == "" || entry.UserID != "u1" || entry.Source != models.SourceChecklist {
		t.Errorf("entry = %+v", entry)
	}
	if entry.CompletedAt.IsZero() {
		t.Error("completedAt not stamped")
	}
}

func TestCompletionsCreateDefaultsSource(t *testing.T) {
	habits := testutil.NewFakeHabitStore(testutil.Habit("h1", "Run", "fitness", 5))
	svc := newServices(fixtures{habits: habits})

	entry, err := svc.Completions.Create(context.Background(), testutil.RegularUser("u1"), service.CreateCompletionInput{
		HabitID: "h1",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if entry.Source != models.SourceAPI {
		t.Errorf("source = %q, want %q", entry.Source, models.SourceAPI)
	}
}

func TestCompletionsCreateValidation(t *testing.T) {
	habits := testutil.NewFakeHabitStore(testutil.Habit("h1", "Run", "fitness", 5))
	svc := newServices(fixtures{habits: habits})
	ctx := context.Background()
	ident := testutil.RegularUser("u1")

	_, err := svc.Completions.Create(ctx, nil, service.CreateCompletionInput{HabitID: "h1"})
	if apperr.KindOf(err) != apperr.KindUnauthenticated {
		t.Errorf("anonymous create = %v, want Unauthenticated", err)
	}

	_, err = svc.Completions.Create(ctx, ident, service.CreateCompletionInput{})
	if apperr.KindOf(err) != apperr.KindInvalidInput {
		t.Errorf("missing habitId = %v, want InvalidInput", err)
	}

	_, err = svc.Completions.Create(ctx, ident, service.CreateCompletionInput{HabitID: "h1", Source: "carrier-pigeon"})
	if apperr.KindOf(err) != apperr.KindInvalidInput {
		t.Errorf("bad source = %v, want InvalidInput", err)
	}

	_, err = svc.Completions.Create(ctx, ident, service.CreateCompletionInput{HabitID: "ghost"})
	if apperr.KindOf(err) != apperr.KindNotFound {
		t.Errorf("dangling habit = %v, want NotFound", err)
	}
}

func TestCompletionsListNewestFirst(t *testing.T) {
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	completions := testutil.NewFakeCompletionStore(
		testutil.Completion("c1", "u1", "h1", base),
		testutil.Completion("c2", "u1", "h2", base.Add(48*time.Hour)),
		testutil.Completion("c3", "u1", "h1", base.Add(24*time.Hour)),
		testutil.Completion("c4", "u2", "h1", base.Add(72*time.Hour)),
	)
	svc := newServices(fixtures{completions: completions})

	page, err := svc.Completions.List(context.Background(), testutil.RegularUser("u1"), "u1", service.CompletionFilter{}, 0, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if page.TotalCount != 3 {
		t.Fatalf("total = %d, want 3", page.TotalCount)
	}
	want := []string{"c2", "c3", "c1"}
	for i, w := range want {
		if page.Items[i].ID != w {
			t.Fatalf("order = %+v, want %v", page.Items, want)
		}
	}
}

func TestCompletionsListFilters(t *testing.T) {
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	completions := testutil.NewFakeCompletionStore(
		testutil.Completion("c1", "u1", "h1", base),
		testutil.Completion("c2", "u1", "h2", base.Add(24*time.Hour)),
		testutil.Completion("c3", "u1", "h1", base.Add(48*time.Hour)),
	)
	svc := newServices(fixtures{completions: completions})
	ctx := context.Background()
	ident := testutil.RegularUser("u1")

	page, err := svc.Completions.List(ctx, ident, "u1", service.CompletionFilter{HabitID: "h1"}, 0, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if page.TotalCount != 2 {
		t.Errorf("habit filter total = %d, want 2", page.TotalCount)
	}

	start := base.Add(12 * time.Hour)
	end := base.Add(36 * time.Hour)
	page, err = svc.Completions.List(ctx, ident, "u1", service.CompletionFilter{Start: &start, End: &end}, 0, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if page.TotalCount != 1 || page.Items[0].ID != "c2" {
		t.Errorf("date filter = %+v", page.Items)
	}
}

func TestCompletionsListAccess(t *testing.T) {
	completions := testutil.NewFakeCompletionStore(
		testutil.Completion("c1", "u1", "h1", time.Now().UTC()),
	)
	svc := newServices(fixtures{completions: completions})
	ctx := context.Background()

	if _, err := svc.Completions.List(ctx, testutil.CoachUser("coach"), "u1", service.CompletionFilter{}, 0, 0); err != nil {
		t.Errorf("coach List: %v", err)
	}
	_, err := svc.Completions.List(ctx, testutil.RegularUser("u2"), "u1", service.CompletionFilter{}, 0, 0)
	if apperr.KindOf(err) != apperr.KindForbidden {
		t.Errorf("stranger List = %v, want Forbidden", err)
	}
	_, err = svc.Completions.List(ctx, nil, "u1", service.CompletionFilter{}, 0, 0)
	if apperr.KindOf(err) != apperr.KindUnauthenticated {
		t.Errorf("anonymous List = %v, want Unauthenticated", err)
	}
}

func TestCompletionsConnectionResumesAfterCursor(t *testing.T) {
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	completions := testutil.NewFakeCompletionStore(
		testutil.Completion("c1", "u1", "h1", base),
		testutil.Completion("c2", "u1", "h1", base.Add(24*time.Hour)),
		testutil.Completion("c3", "u1", "h1", base.Add(48*time.Hour)),
	)
	svc := newServices(fixtures{completions: completions})
	ctx := context.Background()
	ident := testutil.RegularUser("u1")

	first, err := svc.Completions.Connection(ctx, ident, "u1", service.CompletionFilter{}, 2, "")
	if err != nil {
		t.Fatalf("Connection: %v", err)
	}
	if len(first.Items) != 2 || first.Items[0].ID != "c3" || !first.PageInfo.HasNextPage {
		t.Fatalf("first page = %+v, info = %+v", first.Items, first.PageInfo)
	}

	second, err := svc.Completions.Connection(ctx, ident, "u1", service.CompletionFilter{}, 2, first.PageInfo.EndCursor)
	if err != nil {
		t.Fatalf("Connection: %v", err)
	}
	if len(second.Items) != 1 || second.Items[0].ID != "c1" {
		t.Errorf("second page = %+v", second.Items)
	}
	if second.PageInfo.HasNextPage || !second.PageInfo.HasPreviousPage {
		t.Errorf("second page info = %+v", second.PageInfo)
	}
}

func TestCompletionsDelete(t *testing.T) {
	completions := testutil.NewFakeCompletionStore(
		testutil.Completion("c1", "u1", "h1", time.Now().UTC()),
	)
	svc := newServices(fixtures{completions: completions})
	ctx := context.Background()

	err := svc.Completions.Delete(ctx, testutil.RegularUser("u2"), "u1", "c1")
	if apperr.KindOf(err) != apperr.KindForbidden {
		t.Errorf("stranger Delete = %v, want Forbidden", err)
	}

	if err := svc.Completions.Delete(ctx, testutil.RegularUser("u1"), "u1", "c1"); err != nil {
		t.Fatalf("owner Delete: %v", err)
	}
	err = svc.Completions.Delete(ctx, testutil.RegularUser("u1"), "u1", "c1")
	if apperr.KindOf(err) != apperr.KindNotFound {
		t.Errorf("repeat Delete = %v, want NotFound", err)
	}
}
