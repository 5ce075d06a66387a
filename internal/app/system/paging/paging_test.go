package paging_test

import (
	"testing"

	"github.com/habitstack/habitstack/internal/app/system/cursor"
	"github.com/habitstack/habitstack/internal/app/system/paging"
)

func TestClampLimit(t *testing.T) {
	cases := []struct {
		requested, def, max, want int
	}{
		{0, 50, 100, 50},
		{-5, 50, 100, 50},
		{30, 50, 100, 30},
		{100, 50, 100, 100},
		{500, 50, 100, 100},
	}
	for _, c := range cases {
		if got := paging.ClampLimit(c.requested, c.def, c.max); got != c.want {
			t.Errorf("ClampLimit(%d, %d, %d): got %d, want %d", c.requested, c.def, c.max, got, c.want)
		}
	}
}

func TestTrimDetectsLookaheadRow(t *testing.T) {
	rows := []string{"a", "b", "c"}
	hasNext := paging.Trim(&rows, 2)
	if !hasNext {
		t.Error("expected hasNext with lookahead row present")
	}
	if len(rows) != 2 || rows[1] != "b" {
		t.Errorf("trimmed rows: got %v", rows)
	}
}

func TestTrimExactPage(t *testing.T) {
	rows := []string{"a", "b"}
	if paging.Trim(&rows, 2) {
		t.Error("exact page must not report a next page")
	}
	if len(rows) != 2 {
		t.Errorf("rows shrank: got %v", rows)
	}
}

func TestBuildInfo(t *testing.T) {
	rows := []string{"x1", "x2", "x3"}
	info := paging.BuildInfo(rows, func(s string) string { return s }, true, true)

	if !info.HasNextPage || !info.HasPreviousPage {
		t.Errorf("page flags: got %+v", info)
	}
	if got, _ := cursor.Decode(info.StartCursor); got != "x1" {
		t.Errorf("start cursor decodes to %q, want x1", got)
	}
	if got, _ := cursor.Decode(info.EndCursor); got != "x3" {
		t.Errorf("end cursor decodes to %q, want x3", got)
	}
}

func TestBuildInfoEmpty(t *testing.T) {
	info := paging.BuildInfo(nil, func(s string) string { return s }, false, false)
	if info.StartCursor != "" || info.EndCursor != "" {
		t.Errorf("empty page cursors: got %+v", info)
	}
}
