package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"bokning/internal/rooms/cache"
	roomserrors "bokning/internal/rooms/errors"
	"bokning/internal/rooms/repository"
	apperrors "bokning/pkg/errors"
	"bokning/pkg/logger"
	"bokning/pkg/model"
	"bokning/pkg/sanitizer"
)

// BookingCounter reports how many bookings reference a room. Used to refuse
// deleting a room that still has bookings.
type BookingCounter interface {
	CountByRoom(ctx context.Context, roomID string) (int64, error)
}

type RoomService interface {
	Create(ctx context.Context, caller model.Identity, room *model.Room) (*model.Room, error)
	GetAll(ctx context.Context) ([]*model.Room, error)
	GetByID(ctx context.Context, id string) (*model.Room, error)
	Update(ctx context.Context, caller model.Identity, id string, update *model.RoomUpdate) (*model.Room, error)
	Delete(ctx context.Context, caller model.Identity, id string) error
}

type roomService struct {
	log      *logger.Logger
	repo     repository.RoomRepository
	bookings BookingCounter
	cache    *cache.RoomCache
	validate *validator.Validate
}

func NewRoomService(log *logger.Logger, repo repository.RoomRepository, bookings BookingCounter, roomCache *cache.RoomCache) RoomService {
	return &roomService{
		log:      log,
		repo:     repo,
		bookings: bookings,
		cache:    roomCache,
		validate: validator.New(),
	}
}

func (s *roomService) Create(ctx context.Context, caller model.Identity, room *model.Room) (*model.Room, error) {
	if !caller.IsAdmin() {
		return nil, apperrors.Forbidden("Administrator role required")
	}

	room.ID = ""
	room.Name = sanitizer.NormalizeName(room.Name)

	if err := s.validate.Struct(room); err != nil {
		return nil, apperrors.Validation("Room validation failed", fieldErrors(err))
	}

	if err := s.repo.Create(ctx, room); err != nil {
		return nil, apperrors.Internal("Failed to create room", err)
	}

	s.cache.Invalidate()
	s.log.Info("Room created", "room_id", room.ID, "name", room.Name, "kind", room.Kind)

	return room, nil
}

// GetAll serves the room listing through the cache. A store failure on a
// miss is returned to the caller; failures are never cached.
func (s *roomService) GetAll(ctx context.Context) ([]*model.Room, error) {
	if rooms, ok := s.cache.Get(); ok {
		return rooms, nil
	}

	rooms, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, apperrors.Internal("Failed to list rooms", err)
	}
	if rooms == nil {
		rooms = []*model.Room{}
	}

	s.cache.Put(rooms)
	return rooms, nil
}

func (s *roomService) GetByID(ctx context.Context, id string) (*model.Room, error) {
	room, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err, id)
	}
	return room, nil
}

func (s *roomService) Update(ctx context.Context, caller model.Identity, id string, update *model.RoomUpdate) (*model.Room, error) {
	if !caller.IsAdmin() {
		return nil, apperrors.Forbidden("Administrator role required")
	}

	if err := s.validate.Struct(update); err != nil {
		return nil, apperrors.Validation("Room update validation failed", fieldErrors(err))
	}

	room, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err, id)
	}

	if update.Name != "" {
		room.Name = sanitizer.NormalizeName(update.Name)
	}
	if update.Capacity != nil {
		room.Capacity = *update.Capacity
	}
	if update.Kind != "" {
		room.Kind = update.Kind
	}

	if err := s.validate.Struct(room); err != nil {
		return nil, apperrors.Validation("Room validation failed", fieldErrors(err))
	}

	if err := s.repo.Update(ctx, id, room); err != nil {
		return nil, mapRepoError(err, id)
	}

	s.cache.Invalidate()
	s.log.Info("Room updated", "room_id", id)

	return room, nil
}

func (s *roomService) Delete(ctx context.Context, caller model.Identity, id string) error {
	if !caller.IsAdmin() {
		return apperrors.Forbidden("Administrator role required")
	}

	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return mapRepoError(err, id)
	}

	count, err := s.bookings.CountByRoom(ctx, id)
	if err != nil {
		return apperrors.Internal("Failed to count bookings for room", err)
	}
	if count > 0 {
		return apperrors.Conflict("Room still has bookings").WithDetails(map[string]any{
			"room_id":       id,
			"booking_count": count,
		})
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return mapRepoError(err, id)
	}

	s.cache.Invalidate()
	s.log.Info("Room deleted", "room_id", id)

	return nil
}

func mapRepoError(err error, id string) error {
	switch {
	case errors.Is(err, roomserrors.ErrNotFound):
		return apperrors.NotFoundWithID("Room", id)
	case errors.Is(err, roomserrors.ErrInvalidID):
		return apperrors.InvalidInput("Invalid room ID")
	default:
		return apperrors.Internal("Room store operation failed", err)
	}
}

func fieldErrors(err error) map[string]any {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return map[string]any{"error": err.Error()}
	}

	details := make(map[string]any, len(validationErrors))
	for _, fieldErr := range validationErrors {
		details[fieldErr.Field()] = fmt.Sprintf("failed on the '%s' rule", fieldErr.Tag())
	}
	return details
}
