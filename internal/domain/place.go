package domain

import "time"

// Place is a user-created point of interest.
type Place struct {
	ID          string
	Title       string
	Description string
	ImagePath   string
	Address     string
	Latitude    float64
	Longitude   float64
	CreatorID   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
