// internal/app/service/users_test.go

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

func strPtr(s string) *string { return &s }

func TestUsersCreate(t *testing.T) {
	svc := newServices(fixtures{})
	ident := testutil.RegularUser("u1")

	u, err := svc.Users.Create(context.Background(), ident, service.CreateUserInput{
		DisplayName: "  Alex  ",
		Email:       "alex@test.com",
		Locale:      "en-US",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if u.ID != "u1" || u.DisplayName != "Alex" || u.Role != models.RoleUser {
		t.Errorf("created user = %+v", u)
	}
}

func TestUsersCreateRequiresAuth(t *testing.T) {
	svc := newServices(fixtures{})
	_, err := svc.Users.Create(context.Background(), nil, service.CreateUserInput{
		DisplayName: "Alex",
		Email:       "alex@test.com",
	})
	if apperr.KindOf(err) != apperr.KindUnauthenticated {
		t.Errorf("Create without identity = %v, want Unauthenticated", err)
	}
}

func TestUsersCreateValidatesFields(t *testing.T) {
	svc := newServices(fixtures{})
	ident := testutil.RegularUser("u1")
	cases := []service.CreateUserInput{
		{DisplayName: "", Email: "alex@test.com"},
		{DisplayName: "Alex", Email: ""},
		{DisplayName: "   ", Email: "   "},
	}
	for _, in := range cases {
		if _, err := svc.Users.Create(context.Background(), ident, in); apperr.KindOf(err) != apperr.KindInvalidInput {
			t.Errorf("Create(%+v) = %v, want InvalidInput", in, err)
		}
	}
}

func TestUsersCreateTwiceConflicts(t *testing.T) {
	svc := newServices(fixtures{})
	ident := testutil.RegularUser("u1")
	in := service.CreateUserInput{DisplayName: "Alex", Email: "alex@test.com"}

	if _, err := svc.Users.Create(context.Background(), ident, in); err != nil {
		t.Fatalf("first Create: %v", err)
	}
	if _, err := svc.Users.Create(context.Background(), ident, in); apperr.KindOf(err) != apperr.KindConflict {
		t.Errorf("second Create = %v, want Conflict", err)
	}
}

func TestUsersGetAccess(t *testing.T) {
	users := testutil.NewFakeUserStore(testutil.User("u1", "Alex", models.RoleUser))
	svc := newServices(fixtures{users: users})
	ctx := context.Background()

	if _, err := svc.Users.Get(ctx, testutil.RegularUser("u1"), "u1"); err != nil {
		t.Errorf("owner Get: %v", err)
	}
	if _, err := svc.Users.Get(ctx, testutil.CoachUser("c1"), "u1"); err != nil {
		t.Errorf("coach Get: %v", err)
	}
	if _, err := svc.Users.Get(ctx, testutil.RegularUser("u2"), "u1"); apperr.KindOf(err) != apperr.KindForbidden {
		t.Errorf("stranger Get want Forbidden")
	}
	if _, err := svc.Users.Get(ctx, nil, "u1"); apperr.KindOf(err) != apperr.KindUnauthenticated {
		t.Errorf("anonymous Get want Unauthenticated")
	}
}

func TestUsersUpdate(t *testing.T) {
	users := testutil.NewFakeUserStore(testutil.User("u1", "Alex", models.RoleUser))
	svc := newServices(fixtures{users: users})

	u, err := svc.Users.Update(context.Background(), testutil.RegularUser("u1"), "u1", service.UpdateUserInput{
		DisplayName: strPtr("Alexandra"),
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if u.DisplayName != "Alexandra" {
		t.Errorf("displayName = %q", u.DisplayName)
	}
	if u.Email != "u1@test.com" {
		t.Errorf("email changed: %q", u.Email)
	}
}

func TestUsersUpdateEmptyDiffRejected(t *testing.T) {
	users := testutil.NewFakeUserStore(testutil.User("u1", "Alex", models.RoleUser))
	svc := newServices(fixtures{users: users})

	_, err := svc.Users.Update(context.Background(), testutil.RegularUser("u1"), "u1", service.UpdateUserInput{})
	if apperr.KindOf(err) != apperr.KindInvalidInput {
		t.Errorf("empty update = %v, want InvalidInput", err)
	}
}

func TestUsersDeleteCascades(t *testing.T) {
	users := testutil.NewFakeUserStore(testutil.User("u1", "Alex", models.RoleUser))
	completions := testutil.NewFakeCompletionStore(
		testutil.Completion("c1", "u1", "h1", time.Now().UTC()),
		testutil.Completion("c2", "u1", "h2", time.Now().UTC()),
		testutil.Completion("c3", "u2", "h1", time.Now().UTC()),
	)
	svc := newServices(fixtures{users: users, completions: completions})

	if err := svc.Users.Delete(context.Background(), testutil.RegularUser("u1"), "u1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok := users.Users["u1"]; ok {
		t.Error("user still present after delete")
	}
	if len(completions.Entries) != 1 || completions.Entries[0].UserID != "u2" {
		t.Errorf("cascade left entries = %+v", completions.Entries)
	}
}

func TestUsersDeleteRemovesIdentityAccountOnSelfDelete(t *testing.T) {
	users := testutil.NewFakeUserStore(testutil.User("u1", "Alex", models.RoleUser))
	remover := &testutil.RecordingRemover{}
	svc := newServices(fixtures{users: users, remover: remover})

	if err := svc.Users.Delete(context.Background(), testutil.RegularUser("u1"), "u1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if len(remover.Removed) != 1 || remover.Removed[0] != "u1" {
		t.Errorf("removed = %v", remover.Removed)
	}
}

func TestUsersDeleteByCoachSkipsIdentityRemoval(t *testing.T) {
	users := testutil.NewFakeUserStore(testutil.User("u1", "Alex", models.RoleUser))
	remover := &testutil.RecordingRemover{}
	svc := newServices(fixtures{users: users, remover: remover})

	if err := svc.Users.Delete(context.Background(), testutil.CoachUser("c1"), "u1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if len(remover.Removed) != 0 {
		t.Errorf("coach delete triggered identity removal: %v", remover.Removed)
	}
}

func TestUsersDeleteSwallowsRemoverFailure(t *testing.T) {
	users := testutil.NewFakeUserStore(testutil.User("u1", "Alex", models.RoleUser))
	remover := &testutil.RecordingRemover{Err: testutil.ErrRemoverFailed}
	svc := newServices(fixtures{users: users, remover: remover})

	if err := svc.Users.Delete(context.Background(), testutil.RegularUser("u1"), "u1"); err != nil {
		t.Errorf("Delete propagated remover failure: %v", err)
	}
	if _, ok := users.Users["u1"]; ok {
		t.Error("profile not deleted despite remover failure")
	}
}

func TestUsersDeleteNotFound(t *testing.T) {
	svc := newServices(fixtures{})
	err := svc.Users.Delete(context.Background(), testutil.CoachUser("c1"), "missing")
	if apperr.KindOf(err) != apperr.KindNotFound {
		t.Errorf("Delete = %v, want NotFound", err)
	}
}
