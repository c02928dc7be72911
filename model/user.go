package model

import "time"

type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// User is a persisted account. Username is the stable identity key; the
// password field holds a bcrypt hash and is never serialized. RefreshToken
// holds the single live refresh token for the account, or empty when the
// user has never logged in.
type User struct {
	ID               int       `json:"id"`
	Username         string    `json:"username"`
	Password         string    `json:"-"`
	Name             string    `json:"name"`
	Email            string    `json:"email"`
	Role             string    `json:"role"`
	RefreshToken     string    `json:"-"`
	RemindersEnabled bool      `json:"reminders_enabled"`
	CreatedAt        time.Time `json:"created_at"`
}
