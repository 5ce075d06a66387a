// internal/app/system/authn/remover_test.go

package authn_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/habitstack/habitstack/internal/app/system/authn"
)

func TestAccountClientRemovesAccount(t *testing.T) {
	var gotPath, gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Errorf("method = %s", r.Method)
		}
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	client := authn.NewAccountClient(srv.URL, "admin-token")
	if err := client.RemoveAccount(context.Background(), "u1"); err != nil {
		t.Fatalf("RemoveAccount: %v", err)
	}
	if gotPath != "/accounts/u1" {
		t.Errorf("path = %q", gotPath)
	}
	if gotAuth != "Bearer admin-token" {
		t.Errorf("authorization = %q", gotAuth)
	}
}

func TestAccountClientReportsProviderErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := authn.NewAccountClient(srv.URL, "admin-token")
	if err := client.RemoveAccount(context.Background(), "u1"); err == nil {
		t.Error("expected error on 502 response")
	}
}

func TestNopAccountRemover(t *testing.T) {
	if err := (authn.NopAccountRemover{}).RemoveAccount(context.Background(), "u1"); err != nil {
		t.Errorf("RemoveAccount: %v", err)
	}
}
