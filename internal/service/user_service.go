package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/places-service/internal/auth"
	"github.com/spec-kit/places-service/internal/cache"
	"github.com/spec-kit/places-service/internal/config"
	"github.com/spec-kit/places-service/internal/domain"
	"github.com/spec-kit/places-service/internal/events"
	"github.com/spec-kit/places-service/internal/repository"
	apperrors "github.com/spec-kit/places-service/pkg/util"
)

const userListCacheKey = "users:all"

const (
	msgFetchUsersFailed  = "fetching users failed, please try again later"
	msgSignupFailed      = "signing up failed, please try again later"
	msgLoginFailed       = "logging in failed, please try again later"
	msgUserExists        = "user exists already, please login instead"
	msgInvalidCredential = "invalid credentials, could not log you in"
)

// UserService coordinates user listing, registration and login.
type UserService struct {
	users      repository.UserRepository
	cache      cache.Cache
	tokenMgr   *auth.TokenManager
	dispatcher events.Dispatcher
	bcryptCost int
	listTTL    time.Duration
}

// UserDependencies bundles collaborators for the user service.
type UserDependencies struct {
	UserRepo   repository.UserRepository
	Cache      cache.Cache
	Dispatcher events.Dispatcher
}

// RegisterInput describes a signup payload after upload handling.
type RegisterInput struct {
	Name      string
	Email     string
	Password  string
	ImagePath string
}

// NewUserService builds the service.
func NewUserService(cfg config.Config, deps UserDependencies) *UserService {
	return &UserService{
		users:      deps.UserRepo,
		cache:      deps.Cache,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL()),
		dispatcher: deps.Dispatcher,
		bcryptCost: cfg.Auth.BcryptCost,
		listTTL:    time.Duration(cfg.Cache.UserListTTLSeconds) * time.Second,
	}
}

// ListUsers returns all users with password hashes projected out. The result
// is cached briefly and invalidated on registration.
func (s *UserService) ListUsers(ctx context.Context) ([]domain.User, error) {
	if s.cache != nil {
		var cached []domain.User
		if err := s.cache.GetJSON(ctx, userListCacheKey, &cached); err == nil {
			return cached, nil
		}
	}

	users, err := s.users.List(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError(msgFetchUsersFailed, err)
	}
	for i := range users {
		users[i].PasswordHash = ""
	}

	if s.cache != nil {
		_ = s.cache.SetJSON(ctx, userListCacheKey, users, s.listTTL)
	}
	return users, nil
}

// RegisterUser creates a new account. Uniqueness is pre-checked explicitly so
// callers see a conflict message instead of a low-level constraint error.
func (s *UserService) RegisterUser(ctx context.Context, input RegisterInput) (*domain.User, string, time.Time, error) {
	if _, err := s.users.GetByEmail(ctx, input.Email); err == nil {
		return nil, "", time.Time{}, apperrors.NewConflict(msgUserExists, nil)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, "", time.Time{}, apperrors.NewInternalError(msgSignupFailed, err)
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, "", time.Time{}, apperrors.NewInternalError(msgSignupFailed, err)
	}

	user := &domain.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hash,
		ImagePath:    input.ImagePath,
		PlaceIDs:     []string{},
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", time.Time{}, apperrors.NewInternalError(msgSignupFailed, err)
	}

	token, exp, err := s.tokenMgr.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, "", time.Time{}, apperrors.NewInternalError(msgSignupFailed, err)
	}

	if s.cache != nil {
		_ = s.cache.Delete(ctx, userListCacheKey)
	}
	s.publish(ctx, events.EventUserRegistered, user.ID, events.UserRegisteredPayload{
		Name:  user.Name,
		Email: user.Email,
	})

	return user, token, exp, nil
}

// LoginUser authenticates a user by email and password.
func (s *UserService) LoginUser(ctx context.Context, email, password string) (*domain.User, string, time.Time, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", time.Time{}, apperrors.NewForbidden(msgInvalidCredential)
		}
		return nil, "", time.Time{}, apperrors.NewInternalError(msgLoginFailed, err)
	}

	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, "", time.Time{}, apperrors.NewUnauthorized(msgInvalidCredential)
		}
		return nil, "", time.Time{}, apperrors.NewInternalError(msgLoginFailed, err)
	}

	token, exp, err := s.tokenMgr.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, "", time.Time{}, apperrors.NewInternalError(msgLoginFailed, err)
	}

	s.publish(ctx, events.EventUserLoggedIn, user.ID, nil)
	return user, token, exp, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *UserService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func (s *UserService) publish(ctx context.Context, eventType events.EventType, userID string, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		UserID:    userID,
		Timestamp: time.Now(),
		Payload:   payload,
	})
}
