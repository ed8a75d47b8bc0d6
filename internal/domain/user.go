// internal/domain/user.go
package domain

import "time"

// User represents a user in the wallet system.
type User struct {
	ID           int64     `db:"id" json:"id"`                 // Primary key, BIGSERIAL in DB
	Username     string    `db:"username" json:"username"`     // Unique username
	Email        string    `db:"email" json:"email"`           // Optional contact address
	PasswordHash string    `db:"password_hash" json:"-"`       // bcrypt hash, never serialized
	CreatedAt    time.Time `db:"created_at" json:"created_at"` // Timestamp of creation
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"` // Timestamp of last update
}

// NewUser creates a new User instance.
func NewUser(username, email, passwordHash string) *User {
	now := time.Now().UTC()
	return &User{
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
