package models

import "time"

// User represents a registered account.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never expose this to the client
	Avatar       string    `json:"avatar,omitempty"`
	CreatedAt    time.Time `json:"date"`
}

// UserRef is the public slice of a user embedded in profiles.
type UserRef struct {
	ID     string `json:"id"`
	Name   string `json:"name,omitempty"`
	Avatar string `json:"avatar,omitempty"`
}
