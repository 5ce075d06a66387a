// internal/domain/models/habit.go
package models

import "time"

// Habit categories.
const (
	CategoryDaily      = "daily"
	CategoryWeekly     = "weekly"
	CategoryOccasional = "occasional"
)

// ValidCategory reports whether s is one of the known habit categories.
func ValidCategory(s string) bool {
	switch s {
	case CategoryDaily, CategoryWeekly, CategoryOccasional:
		return true
	}
	return false
}

// TimeWindow is an optional hour-of-day window in which a habit is
// recommended. Hours are 0-23.
type TimeWindow struct {
	StartHour   int    `bson:"start_hour" json:"startHour"`
	EndHour     int    `bson:"end_hour" json:"endHour"`
	Description string `bson:"description,omitempty" json:"description,omitempty"`
}

// Habit is a curated habit document. Habits are seeded by administrators and
// are read-only through the public API; there is no update or delete surface.
type Habit struct {
	ID            string      `bson:"_id" json:"id"`
	Title         string      `bson:"title" json:"title"`
	ScriptureText string      `bson:"scripture_text" json:"scriptureText"`
	Translation   string      `bson:"translation" json:"translation"`
	Benefits      string      `bson:"benefits" json:"benefits"`
	Tags          []string    `bson:"tags" json:"tags"`
	Category      string      `bson:"category" json:"category"` // daily | weekly | occasional
	Priority      int         `bson:"priority" json:"priority"` // higher = more prominent, default sort key
	ContextTags   []string    `bson:"context_tags" json:"contextTags"`
	LifeEvent     string      `bson:"life_event,omitempty" json:"lifeEvent,omitempty"`
	TimeWindow    *TimeWindow `bson:"time_window,omitempty" json:"timeWindow,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
}
