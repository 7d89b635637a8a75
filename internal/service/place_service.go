package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/places-service/internal/cache"
	"github.com/spec-kit/places-service/internal/config"
	"github.com/spec-kit/places-service/internal/domain"
	"github.com/spec-kit/places-service/internal/events"
	"github.com/spec-kit/places-service/internal/media"
	"github.com/spec-kit/places-service/internal/repository"
	apperrors "github.com/spec-kit/places-service/pkg/util"
)

const (
	msgPlaceNotFound      = "could not find a place for the provided id"
	msgUserPlacesNotFound = "could not find places for the provided user id"
	msgNotPlaceOwner      = "you are not allowed to modify this place"
)

func userPlacesCacheKey(userID string) string {
	return fmt.Sprintf("places:user:%s", userID)
}

// PlaceService coordinates place workflows.
type PlaceService struct {
	places     repository.PlaceRepository
	cache      cache.Cache
	media      *media.Store
	dispatcher events.Dispatcher
	listTTL    time.Duration
}

// PlaceDependencies bundles collaborators for the place service.
type PlaceDependencies struct {
	PlaceRepo  repository.PlaceRepository
	Cache      cache.Cache
	Media      *media.Store
	Dispatcher events.Dispatcher
}

// PlaceCreateInput describes a place creation payload.
type PlaceCreateInput struct {
	Title       string
	Description string
	Address     string
	Latitude    float64
	Longitude   float64
	ImagePath   string
}

// PlaceUpdateInput describes an edit payload.
type PlaceUpdateInput struct {
	Title       string
	Description string
}

// NewPlaceService constructs the service.
func NewPlaceService(cfg config.Config, deps PlaceDependencies) *PlaceService {
	return &PlaceService{
		places:     deps.PlaceRepo,
		cache:      deps.Cache,
		media:      deps.Media,
		dispatcher: deps.Dispatcher,
		listTTL:    time.Duration(cfg.Cache.UserPlacesTTLSeconds) * time.Second,
	}
}

// GetPlace fetches a single place by id.
func (s *PlaceService) GetPlace(ctx context.Context, id string) (*domain.Place, error) {
	place, err := s.places.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound(msgPlaceNotFound, nil)
		}
		return nil, apperrors.MapError(err)
	}
	return place, nil
}

// ListByCreator returns a user's places. An empty result reports not found,
// matching the read contract of the user-places endpoint.
func (s *PlaceService) ListByCreator(ctx context.Context, creatorID string) ([]domain.Place, error) {
	if s.cache != nil {
		var cached []domain.Place
		if err := s.cache.GetJSON(ctx, userPlacesCacheKey(creatorID), &cached); err == nil {
			return cached, nil
		}
	}

	places, err := s.places.ListByCreator(ctx, creatorID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if len(places) == 0 {
		return nil, apperrors.NewNotFound(msgUserPlacesNotFound, nil)
	}

	if s.cache != nil {
		_ = s.cache.SetJSON(ctx, userPlacesCacheKey(creatorID), places, s.listTTL)
	}
	return places, nil
}

// CreatePlace persists a new place owned by creatorID.
func (s *PlaceService) CreatePlace(ctx context.Context, creatorID string, input PlaceCreateInput) (*domain.Place, error) {
	place := &domain.Place{
		Title:       input.Title,
		Description: input.Description,
		ImagePath:   input.ImagePath,
		Address:     input.Address,
		Latitude:    input.Latitude,
		Longitude:   input.Longitude,
		CreatorID:   creatorID,
	}
	if err := s.places.Create(ctx, place); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.invalidate(ctx, creatorID)
	s.publish(ctx, events.EventPlaceCreated, creatorID, events.PlaceCreatedPayload{
		PlaceID: place.ID,
		Title:   place.Title,
		Address: place.Address,
	})
	return place, nil
}

// UpdatePlace edits title and description. Only the creator may edit.
func (s *PlaceService) UpdatePlace(ctx context.Context, callerID, placeID string, input PlaceUpdateInput) (*domain.Place, error) {
	place, err := s.GetPlace(ctx, placeID)
	if err != nil {
		return nil, err
	}
	if place.CreatorID != callerID {
		return nil, apperrors.NewUnauthorized(msgNotPlaceOwner)
	}

	place.Title = input.Title
	place.Description = input.Description
	if err := s.places.Update(ctx, place); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.invalidate(ctx, callerID)
	s.publish(ctx, events.EventPlaceUpdated, callerID, events.PlaceUpdatedPayload{
		PlaceID: place.ID,
		Title:   place.Title,
	})
	return place, nil
}

// DeletePlace removes a place and its stored image. Only the creator may delete.
func (s *PlaceService) DeletePlace(ctx context.Context, callerID, placeID string) error {
	place, err := s.GetPlace(ctx, placeID)
	if err != nil {
		return err
	}
	if place.CreatorID != callerID {
		return apperrors.NewUnauthorized(msgNotPlaceOwner)
	}

	if err := s.places.Delete(ctx, placeID); err != nil {
		return apperrors.MapError(err)
	}
	if s.media != nil {
		_ = s.media.Remove(place.ImagePath)
	}

	s.invalidate(ctx, callerID)
	s.publish(ctx, events.EventPlaceDeleted, callerID, events.PlaceDeletedPayload{PlaceID: placeID})
	return nil
}

func (s *PlaceService) invalidate(ctx context.Context, creatorID string) {
	if s.cache == nil {
		return
	}
	_ = s.cache.Delete(ctx, userPlacesCacheKey(creatorID), userListCacheKey)
}

func (s *PlaceService) publish(ctx context.Context, eventType events.EventType, userID string, payload interface{}) {
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
