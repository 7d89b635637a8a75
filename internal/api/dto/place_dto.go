package dto

import "github.com/spec-kit/places-service/internal/domain"

// CreatePlaceRequest payload, multipart alongside the image part.
// Coordinates arrive from the client; address resolution is not done here.
type CreatePlaceRequest struct {
	Title       string  `form:"title" json:"title" validate:"required"`
	Description string  `form:"description" json:"description" validate:"required,min=5"`
	Address     string  `form:"address" json:"address" validate:"required"`
	Latitude    float64 `form:"lat" json:"lat" validate:"min=-90,max=90"`
	Longitude   float64 `form:"lng" json:"lng" validate:"min=-180,max=180"`
}

// UpdatePlaceRequest payload for edits.
type UpdatePlaceRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required,min=5"`
}

// Location is a coordinate pair.
type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// PlaceResponse is the read-facing place projection.
type PlaceResponse struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Image       string   `json:"image"`
	Address     string   `json:"address"`
	Location    Location `json:"location"`
	Creator     string   `json:"creator"`
}

// NewPlaceResponse projects a domain place.
func NewPlaceResponse(place domain.Place) PlaceResponse {
	return PlaceResponse{
		ID:          place.ID,
		Title:       place.Title,
		Description: place.Description,
		Image:       place.ImagePath,
		Address:     place.Address,
		Location:    Location{Lat: place.Latitude, Lng: place.Longitude},
		Creator:     place.CreatorID,
	}
}
