// internal/app/features/graphql/scalars_test.go

package graphql_test

import (
	"testing"
	"time"

	"github.com/habitstack/habitstack/internal/app/features/graphql"
)

func TestDateTimeUnmarshal(t *testing.T) {
	var d graphql.DateTime
	if err := d.UnmarshalGraphQL("2026-08-15T10:30:00Z"); err != nil {
		t.Fatalf("UnmarshalGraphQL: %v", err)
	}
	want := time.Date(2026, 8, 15, 10, 30, 0, 0, time.UTC)
	if !d.Time.Equal(want) {
		t.Errorf("time = %v, want %v", d.Time, want)
	}

	if err := d.UnmarshalGraphQL("next tuesday"); err == nil {
		t.Error("expected error for non-RFC 3339 input")
	}
	if err := d.UnmarshalGraphQL(42); err == nil {
		t.Error("expected error for numeric input")
	}
}

func TestDateTimeMarshalJSON(t *testing.T) {
	loc := time.FixedZone("CEST", 2*3600)
	d := graphql.DateTime{Time: time.Date(2026, 8, 15, 12, 30, 0, 0, loc)}
	out, err := d.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON: %v", err)
	}
	if string(out) != `"2026-08-15T10:30:00Z"` {
		t.Errorf("out = %s", out)
	}
}
