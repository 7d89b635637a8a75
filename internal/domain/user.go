package domain

import "time"

// User is the domain model for registered users.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	ImagePath    string
	PlaceIDs     []string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
