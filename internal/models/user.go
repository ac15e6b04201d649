package models

import "time"

// User captures application-facing fields for an authenticated identity.
// PasswordHash holds the salted bcrypt digest only, never the plaintext.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
