// internal/domain/models/bundle.go
package models

import "time"

// Bundle groups habits into a curated, ordered collection.
//
// HabitIDs order is meaningful: it defines the presentation sequence and is
// preserved when the referenced habits are resolved. Ids may point at habits
// that no longer exist; resolution drops those silently.
type Bundle struct {
	ID           string   `bson:"_id" json:"id"`
	Name         string   `bson:"name" json:"name"`
	Description  string   `bson:"description" json:"description"`
	HabitIDs     []string `bson:"habit_ids" json:"habitIds"`
	ThumbnailURL string   `bson:"thumbnail_url,omitempty" json:"thumbnailUrl,omitempty"`
	DisplayOrder int      `bson:"display_order" json:"displayOrder"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
}
