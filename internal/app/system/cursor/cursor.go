// internal/app/system/cursor/cursor.go

// Package cursor encodes document ids as opaque pagination cursors.
//
// The encoding is reversible base64, not tamper-proof and not stable across
// schema changes. A cursor is only meaningful against the same collection,
// filter, and sort order that produced it.
package cursor

import (
	"encoding/base64"
	"errors"
	"unicode/utf8"
)

// ErrMalformed is returned by Decode for input that is not a cursor this
// package produced. Callers using a cursor as an `after` token treat this as
// "start from the beginning", never as a hard failure.
var ErrMalformed = errors.New("malformed cursor")

// Encode returns the opaque cursor for a document id.
func Encode(id string) string {
	return base64.StdEncoding.EncodeToString([]byte(id))
}

// Decode returns the document id a cursor was built from.
func Decode(c string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(c)
	if err != nil {
		return "", ErrMalformed
	}
	if len(raw) == 0 || !utf8.Valid(raw) {
		return "", ErrMalformed
	}
	return string(raw), nil
}
