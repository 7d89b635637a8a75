package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/places-service/internal/api/dto"
	"github.com/spec-kit/places-service/internal/media"
	"github.com/spec-kit/places-service/internal/service"
	"github.com/spec-kit/places-service/internal/validation"
	apperrors "github.com/spec-kit/places-service/pkg/util"
)

// UsersHandler exposes the user listing and auth endpoints.
type UsersHandler struct {
	users     *service.UserService
	media     *media.Store
	validator *validation.Validator
}

// NewUsersHandler constructs handler.
func NewUsersHandler(userService *service.UserService, mediaStore *media.Store, validator *validation.Validator) *UsersHandler {
	return &UsersHandler{users: userService, media: mediaStore, validator: validator}
}

// List handles GET /api/users.
func (h *UsersHandler) List(c *fiber.Ctx) error {
	users, err := h.users.ListUsers(c.Context())
	if err != nil {
		return err
	}

	projected := make([]dto.PublicUser, 0, len(users))
	for _, user := range users {
		projected = append(projected, dto.NewPublicUser(user))
	}
	return c.JSON(fiber.Map{"users": projected})
}

// Signup handles POST /api/users/signup (multipart).
func (h *UsersHandler) Signup(c *fiber.Ctx) error {
	var req dto.SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid inputs passed, please check your data", nil)
	}
	if err := h.validator.Struct(req); err != nil {
		return err
	}

	// The image part is required; a missing part fails validation like any
	// other bad field.
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
		return apperrors.NewInternalError("signing up failed, please try again later", err)
	}

	user, token, _, err := h.users.RegisterUser(c.Context(), service.RegisterInput{
		Name:      req.Name,
		Email:     req.Email,
		Password:  req.Password,
		ImagePath: imagePath,
	})
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(dto.AuthResponse{
		Message: "signed up successfully",
		UserID:  user.ID,
		Email:   user.Email,
		Token:   token,
	})
}

// Login handles POST /api/users/login.
func (h *UsersHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid inputs passed, please check your data", nil)
	}
	if err := h.validator.Struct(req); err != nil {
		return err
	}

	user, token, _, err := h.users.LoginUser(c.Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(dto.AuthResponse{
		Message: "logged in successfully",
		UserID:  user.ID,
		Email:   user.Email,
		Token:   token,
	})
}
