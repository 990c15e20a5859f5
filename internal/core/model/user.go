package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Password  string    `json:"-"` // bcrypt hash, never serialized
	Admin     bool      `json:"admin"`
	CreatedAt time.Time `json:"createdAt"`
}

func NewUser(name, email, hashedPassword string) *User {
	return &User{
		ID:        uuid.NewString(),
		Name:      name,
		Email:     NormalizeEmail(email),
		Password:  hashedPassword,
		Admin:     false,
		CreatedAt: time.Now(),
	}
}

// NormalizeEmail lowercases the address so the uniqueness check is
// case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
