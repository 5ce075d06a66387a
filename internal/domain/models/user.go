// internal/domain/models/user.go
package models

import "time"

// User roles.
const (
	RoleUser  = "user"
	RoleCoach = "coach" // elevated: cross-user read/write
)

// ValidRole reports whether s is one of the known user roles.
func ValidRole(s string) bool {
	return s == RoleUser || s == RoleCoach
}

// User is a registered account. The document id is the identity provider's
// subject id, so creation is naturally idempotent: a second create for the
// same subject collides on _id.
type User struct {
	ID          string `bson:"_id" json:"uid"`
	DisplayName string `bson:"display_name" json:"displayName"`
	Email       string `bson:"email" json:"email"`
	Role        string `bson:"role" json:"role"` // user | coach
	Locale      string `bson:"locale" json:"locale"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
}
