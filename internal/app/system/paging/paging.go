// internal/app/system/paging/paging.go

// Package paging holds the shared pagination plumbing for both transports:
// lookahead trimming, limit clamping, and connection-style page info.
package paging

import (
	"github.com/habitstack/habitstack/internal/app/system/cursor"
)

// Request carries transport-agnostic pagination state into a list operation.
// REST supplies Offset; GraphQL supplies After. When both are present the
// cursor wins.
type Request struct {
	Limit  int
	Offset int64
	After  string
}

// Info is the page metadata returned with every list result.
//
// HasPreviousPage is derived from "was an after cursor supplied", not from a
// backward existence check. That is a documented simplification: reversing
// cursors is not supported.
type Info struct {
	HasNextPage     bool
	HasPreviousPage bool
	StartCursor     string
	EndCursor       string
}

// ClampLimit applies the default when requested is unset or invalid, and the
// per-endpoint maximum otherwise.
func ClampLimit(requested, def, max int) int {
	if requested <= 0 {
		return def
	}
	if requested > max {
		return max
	}
	return requested
}

// Trim cuts a slice fetched with the N+1 lookahead down to limit, modifying
// it in place. It reports whether the extra row existed, i.e. whether a next
// page exists.
func Trim[T any](rows *[]T, limit int) bool {
	if len(*rows) > limit {
		*rows = (*rows)[:limit]
		return true
	}
	return false
}

// BuildInfo assembles page info for an already-trimmed page. idFn extracts
// the document id an edge cursor encodes.
func BuildInfo[T any](rows []T, idFn func(T) string, hasNext, hadAfter bool) Info {
	info := Info{
		HasNextPage:     hasNext,
		HasPreviousPage: hadAfter,
	}
	if len(rows) > 0 {
		info.StartCursor = cursor.Encode(idFn(rows[0]))
		info.EndCursor = cursor.Encode(idFn(rows[len(rows)-1]))
	}
	return info
}
