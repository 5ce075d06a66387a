// internal/domain/models/completion.go
package models

import "time"

// Completion sources.
const (
	SourceChecklist = "checklist"
	SourceAPI       = "api"
)

// ValidSource reports whether s is one of the known completion sources.
func ValidSource(s string) bool {
	return s == SourceChecklist || s == SourceAPI
}

// CompletionLog records one completion of a habit by one user.
//
// UserID scopes the log to its owner; every store operation takes the owning
// user id, so a log is only ever reachable through its owner's collection
// path. HabitID is a weak reference: validated to exist at creation time and
// never re-checked afterward.
type CompletionLog struct {
	ID          string    `bson:"_id" json:"id"`
	UserID      string    `bson:"user_id" json:"-"`
	HabitID     string    `bson:"habit_id" json:"habitId"`
	CompletedAt time.Time `bson:"completed_at" json:"completedAt"`
	Source      string    `bson:"source" json:"source"` // checklist | api
	Note        string    `bson:"note,omitempty" json:"note,omitempty"`
}
