package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/places-service/internal/api/dto"
	"github.com/spec-kit/places-service/internal/auth"
	"github.com/spec-kit/places-service/internal/media"
	"github.com/spec-kit/places-service/internal/service"
	"github.com/spec-kit/places-service/internal/validation"
	apperrors "github.com/spec-kit/places-service/pkg/util"
)

// PlacesHandler exposes the places resource.
type PlacesHandler struct {
	places    *service.PlaceService
	media     *media.Store
	validator *validation.Validator
}

// NewPlacesHandler constructs handler.
func NewPlacesHandler(placeService *service.PlaceService, mediaStore *media.Store, validator *validation.Validator) *PlacesHandler {
	return &PlacesHandler{places: placeService, media: mediaStore, validator: validator}
}

// Get handles GET /api/places/:pid.
func (h *PlacesHandler) Get(c *fiber.Ctx) error {
	place, err := h.places.GetPlace(c.Context(), c.Params("pid"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"place": dto.NewPlaceResponse(*place)})
}

// ListByUser handles GET /api/places/user/:uid.
func (h *PlacesHandler) ListByUser(c *fiber.Ctx) error {
	places, err := h.places.ListByCreator(c.Context(), c.Params("uid"))
	if err != nil {
		return err
	}

	projected := make([]dto.PlaceResponse, 0, len(places))
	for _, place := range places {
		projected = append(projected, dto.NewPlaceResponse(place))
	}
	return c.JSON(fiber.Map{"places": projected})
}

// Create handles POST /api/places (multipart, authenticated).
func (h *PlacesHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.CreatePlaceRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid inputs passed, please check your data", nil)
	}
	if err := h.validator.Struct(req); err != nil {
		return err
	}

	file, err := c.FormFile("image")
	if err != nil {
		return apperrors.NewValidationError("invalid inputs passed, please check your data",
			map[string]any{"image": "required"})
	}

	imagePath, err := h.media.Save(file)
	if err != nil {
		if errors.Is(err, media.ErrUnsupportedType) || errors.Is(err, media.ErrTooLarge) {
			return apperrors.NewValidationError("invalid inputs passed, please check your data",
				map[string]any{"image": err.Error()})
		}
		return apperrors.NewInternalError("creating place failed, please try again later", err)
	}

	place, err := h.places.CreatePlace(c.Context(), principal.User.ID, service.PlaceCreateInput{
		Title:       req.Title,
		Description: req.Description,
		Address:     req.Address,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		ImagePath:   imagePath,
	})
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{"place": dto.NewPlaceResponse(*place)})
}

// Update handles PATCH /api/places/:pid (authenticated).
func (h *PlacesHandler) Update(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.UpdatePlaceRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid inputs passed, please check your data", nil)
	}
	if err := h.validator.Struct(req); err != nil {
		return err
	}

	place, err := h.places.UpdatePlace(c.Context(), principal.User.ID, c.Params("pid"), service.PlaceUpdateInput{
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"place": dto.NewPlaceResponse(*place)})
}

// Delete handles DELETE /api/places/:pid (authenticated).
func (h *PlacesHandler) Delete(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	if err := h.places.DeletePlace(c.Context(), principal.User.ID, c.Params("pid")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "deleted place"})
}
