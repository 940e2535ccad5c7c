package models

import "time"

// Pet is a user's companion creature. Level starts at 1 and only grows.
type Pet struct {
	ID        string    `json:"id"`
	UserID    string    `json:"-"`
	Name      string    `json:"name"`
	Species   string    `json:"species"`
	Level     int       `json:"level"`
	CreatedAt time.Time `json:"created_at"`
}
