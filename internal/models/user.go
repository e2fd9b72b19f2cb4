package models

import (
	"time"
)

// User is the root of the ownership tree. Usernames and emails are unique
// across all users; the credential is stored only in hashed form.
type User struct {
	ID           string    `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}
