// internal/app/system/apperr/apperr_test.go

package apperr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/habitstack/habitstack/internal/app/system/apperr"
)

func TestKindOf(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want apperr.Kind
	}{
		{"unauthenticated", apperr.Unauthenticated("no token"), apperr.KindUnauthenticated},
		{"forbidden", apperr.Forbidden("access denied"), apperr.KindForbidden},
		{"invalid input", apperr.InvalidInput("bad field"), apperr.KindInvalidInput},
		{"not found", apperr.NotFound("habit not found"), apperr.KindNotFound},
		{"conflict", apperr.Conflict("already exists"), apperr.KindConflict},
		{"internal", apperr.Internal("query failed", errors.New("timeout")), apperr.KindInternal},
		{"plain error", errors.New("boom"), apperr.KindInternal},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := apperr.KindOf(tc.err); got != tc.want {
				t.Errorf("KindOf = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestKindOfWrapped(t *testing.T) {
	err := fmt.Errorf("listing habits: %w", apperr.NotFound("habit not found"))
	if got := apperr.KindOf(err); got != apperr.KindNotFound {
		t.Errorf("KindOf wrapped = %v, want KindNotFound", got)
	}
}

func TestMessageOf(t *testing.T) {
	if got := apperr.MessageOf(apperr.NotFound("habit not found")); got != "habit not found" {
		t.Errorf("MessageOf = %q", got)
	}
	// Internal causes never reach the caller.
	cause := errors.New("dial tcp: connection refused")
	if got := apperr.MessageOf(apperr.Internal("query failed", cause)); got != "internal server error" {
		t.Errorf("MessageOf internal = %q, want redacted", got)
	}
	if got := apperr.MessageOf(errors.New("raw driver error")); got != "internal server error" {
		t.Errorf("MessageOf plain = %q, want redacted", got)
	}
}

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{apperr.Unauthenticated("no token"), http.StatusUnauthorized},
		{apperr.Forbidden("access denied"), http.StatusForbidden},
		{apperr.InvalidInput("bad field"), http.StatusBadRequest},
		{apperr.NotFound("missing"), http.StatusNotFound},
		{apperr.Conflict("duplicate"), http.StatusConflict},
		{apperr.Internal("boom", nil), http.StatusInternalServerError},
		{errors.New("plain"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := apperr.HTTPStatus(tc.err); got != tc.want {
			t.Errorf("HTTPStatus(%v) = %d, want %d", tc.err, got, tc.want)
		}
	}
}

func TestUnwrapPreservesCause(t *testing.T) {
	cause := errors.New("timeout")
	err := apperr.Internal("query failed", cause)
	if !errors.Is(err, cause) {
		t.Error("wrapped cause not reachable via errors.Is")
	}
	if err.Error() != "query failed: timeout" {
		t.Errorf("Error() = %q", err.Error())
	}
}
