package models

import (
	"time"

	"github.com/google/uuid"
)

// User defines the user model based on the 'users' table
type User struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Email     string    `json:"email" db:"email"`
	Password  *string   `json:"-" db:"password"` // bcrypt hash, nil for Google-only accounts
	FullName  *string   `json:"fullName,omitempty" db:"full_name"`
	Role      *Role     `json:"role,omitempty" db:"role"` // nil until the post-signup role selection
	GoogleSub *string   `json:"-" db:"google_sub"`
	IsActive  bool      `json:"isActive" db:"is_active"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// Admin marks a user as platform admin, based on the 'admins' table
type Admin struct {
	ID        uuid.UUID   `json:"id" db:"id"`
	UserID    uuid.UUID   `json:"userId" db:"user_id"`
	CreatedBy uuid.UUID   `json:"createdBy" db:"created_by"`
	Status    AdminStatus `json:"status" db:"status"`
	CreatedAt time.Time   `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time   `json:"updatedAt" db:"updated_at"`

	User    *User `json:"user,omitempty"`    // Relation, no db tag
	Creator *User `json:"creator,omitempty"` // Relation, no db tag
}
