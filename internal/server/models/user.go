package models

import "time"

// User is the persisted account record. Email is unique and matched
// byte-for-byte (no case folding). PasswordHash is a bcrypt hash and is
// never serialized to clients.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Avatar       string
	CreatedAt    time.Time
}

// UserPublic is the client-safe projection of a User.
type UserPublic struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Avatar string `json:"avatar,omitempty"`
}

// Public returns the client-safe projection of the user.
func (u *User) Public() *UserPublic {
	return &UserPublic{
		ID:     u.ID,
		Name:   u.Name,
		Email:  u.Email,
		Avatar: u.Avatar,
	}
}
