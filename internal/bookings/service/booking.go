package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	bookingserrors "bokning/internal/bookings/errors"
	"bokning/internal/bookings/repository"
	bookingvalidator "bokning/internal/bookings/validator"
	roomserrors "bokning/internal/rooms/errors"
	"bokning/pkg/config"
	apperrors "bokning/pkg/errors"
	"bokning/pkg/interval"
	"bokning/pkg/logger"
	"bokning/pkg/model"
)

const lockReleaseTimeout = 5 * time.Second

// RoomDirectory is the slice of the room catalog the booking engine needs.
type RoomDirectory interface {
	FindByID(ctx context.Context, id string) (*model.Room, error)
	FindByIDs(ctx context.Context, ids []string) (map[string]*model.Room, error)
}

// EventPublisher receives a change event after a booking mutation commits.
type EventPublisher interface {
	Publish(event model.ChangeEvent)
}

type BookingService interface {
	Create(ctx context.Context, caller model.Identity, booking *model.Booking) (*model.Booking, error)
	GetByID(ctx context.Context, caller model.Identity, id string) (*model.BookingWithRoom, error)
	ListOwn(ctx context.Context, caller model.Identity) ([]*model.BookingWithRoom, error)
	ListAll(ctx context.Context, caller model.Identity, limit int, offset int64) ([]*model.BookingWithRoom, int64, error)
	Update(ctx context.Context, caller model.Identity, id string, update *model.BookingUpdate) (*model.Booking, error)
	Delete(ctx context.Context, caller model.Identity, id string) error
}

type bookingService struct {
	cfg       *config.Config
	log       *logger.Logger
	repo      repository.BookingRepository
	locks     repository.RoomLockRepository
	rooms     RoomDirectory
	validator *bookingvalidator.BookingValidator
	events    EventPublisher
}

func NewBookingService(
	cfg *config.Config,
	repo repository.BookingRepository,
	locks repository.RoomLockRepository,
	rooms RoomDirectory,
	validator *bookingvalidator.BookingValidator,
	events EventPublisher,
) BookingService {
	return &bookingService{
		cfg:       cfg,
		log:       cfg.Log,
		repo:      repo,
		locks:     locks,
		rooms:     rooms,
		validator: validator,
		events:    events,
	}
}

func (s *bookingService) Create(ctx context.Context, caller model.Identity, booking *model.Booking) (*model.Booking, error) {
	booking.ID = ""
	booking.UserID = caller.ID

	if err := s.validator.ValidateCreate(booking); err != nil {
		return nil, err
	}

	if _, err := s.rooms.FindByID(ctx, booking.RoomID); err != nil {
		return nil, mapRoomError(err, booking.RoomID)
	}

	err := s.withRoomLock(ctx, booking.RoomID, func(ctx context.Context) error {
		return s.repo.ExecuteTransaction(ctx, func(txCtx context.Context) error {
			if err := s.checkConflicts(txCtx, booking.RoomID, booking.StartTime, booking.EndTime, ""); err != nil {
				return err
			}
			if err := s.repo.Create(txCtx, booking); err != nil {
				return apperrors.Internal("Failed to create booking", err)
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("Booking created",
		"booking_id", booking.ID,
		"room_id", booking.RoomID,
		"user_id", booking.UserID,
	)
	s.publish(model.EventBookingCreated, booking)

	return booking, nil
}

func (s *bookingService) GetByID(ctx context.Context, caller model.Identity, id string) (*model.BookingWithRoom, error) {
	booking, err := s.findAuthorized(ctx, caller, id)
	if err != nil {
		return nil, err
	}

	joined, err := s.joinRooms(ctx, []*model.Booking{booking})
	if err != nil {
		return nil, err
	}
	return joined[0], nil
}

func (s *bookingService) ListOwn(ctx context.Context, caller model.Identity) ([]*model.BookingWithRoom, error) {
	bookings, err := s.repo.FindByUser(ctx, caller.ID)
	if err != nil {
		return nil, apperrors.Internal("Failed to list bookings", err)
	}

	return s.joinRooms(ctx, bookings)
}

func (s *bookingService) ListAll(ctx context.Context, caller model.Identity, limit int, offset int64) ([]*model.BookingWithRoom, int64, error) {
	if !caller.IsAdmin() {
		return nil, 0, apperrors.Forbidden("Administrator role required")
	}

	limit = config.NormalizePaginationLimit(limit)
	offset = config.NormalizeOffset(offset)

	var (
		wg       sync.WaitGroup
		bookings []*model.Booking
		total    int64
		findErr  error
		countErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		bookings, findErr = s.repo.FindAll(ctx, limit, offset)
	}()
	go func() {
		defer wg.Done()
		total, countErr = s.repo.Count(ctx)
	}()
	wg.Wait()

	if findErr != nil {
		return nil, 0, apperrors.Internal("Failed to list bookings", findErr)
	}
	if countErr != nil {
		return nil, 0, apperrors.Internal("Failed to count bookings", countErr)
	}

	joined, err := s.joinRooms(ctx, bookings)
	if err != nil {
		return nil, 0, err
	}

	return joined, total, nil
}

func (s *bookingService) Update(ctx context.Context, caller model.Identity, id string, update *model.BookingUpdate) (*model.Booking, error) {
	if err := s.validator.ValidateUpdate(update); err != nil {
		return nil, err
	}

	existing, err := s.findAuthorized(ctx, caller, id)
	if err != nil {
		return nil, err
	}

	start, end := existing.StartTime, existing.EndTime
	if update.StartTime != nil {
		start = *update.StartTime
	}
	if update.EndTime != nil {
		end = *update.EndTime
	}

	if err := s.validator.ValidateInterval(start, end); err != nil {
		return nil, err
	}

	err = s.withRoomLock(ctx, existing.RoomID, func(ctx context.Context) error {
		return s.repo.ExecuteTransaction(ctx, func(txCtx context.Context) error {
			if err := s.checkConflicts(txCtx, existing.RoomID, start, end, existing.ID); err != nil {
				return err
			}
			if err := s.repo.UpdateInterval(txCtx, existing.ID, start, end); err != nil {
				if errors.Is(err, bookingserrors.ErrNotFound) {
					return apperrors.NotFoundWithID("Booking", id)
				}
				return apperrors.Internal("Failed to update booking", err)
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	existing.StartTime = start
	existing.EndTime = end

	s.log.Info("Booking updated",
		"booking_id", existing.ID,
		"room_id", existing.RoomID,
		"user_id", existing.UserID,
	)
	s.publish(model.EventBookingUpdated, existing)

	return existing, nil
}

func (s *bookingService) Delete(ctx context.Context, caller model.Identity, id string) error {
	existing, err := s.findAuthorized(ctx, caller, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, existing.ID); err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Booking", id)
		}
		return apperrors.Internal("Failed to delete booking", err)
	}

	s.log.Info("Booking deleted", "booking_id", existing.ID, "room_id", existing.RoomID)
	s.publish(model.EventBookingDeleted, existing)

	return nil
}

// findAuthorized loads a booking and enforces the owner-or-admin rule shared
// by read, update and delete.
func (s *bookingService) findAuthorized(ctx context.Context, caller model.Identity, id string) (*model.Booking, error) {
	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, bookingserrors.ErrNotFound):
			return nil, apperrors.NotFoundWithID("Booking", id)
		case errors.Is(err, bookingserrors.ErrInvalidID):
			return nil, apperrors.InvalidInput("Invalid booking ID")
		default:
			return nil, apperrors.Internal("Failed to load booking", err)
		}
	}

	if booking.UserID != caller.ID && !caller.IsAdmin() {
		return nil, apperrors.Forbidden("You can only manage your own bookings")
	}

	return booking, nil
}

// checkConflicts must run inside the transaction so the read and the
// subsequent write see a consistent snapshot. The earliest overlapping
// booking is reported in the error details.
func (s *bookingService) checkConflicts(ctx context.Context, roomID string, start, end time.Time, excludeID string) error {
	overlapping, err := s.repo.FindOverlapping(ctx, roomID, start, end, excludeID)
	if err != nil {
		return apperrors.Internal("Failed to check booking conflicts", err)
	}

	for _, other := range overlapping {
		if interval.Overlaps(start, end, other.StartTime, other.EndTime) {
			return apperrors.Conflict("Requested time overlaps an existing booking").WithDetails(map[string]any{
				"conflicting_booking": other,
			})
		}
	}

	return nil
}

// withRoomLock serializes writers on a single room. Contention is retried
// with a fixed backoff a bounded number of times.
func (s *bookingService) withRoomLock(ctx context.Context, roomID string, fn func(context.Context) error) error {
	lockID := fmt.Sprintf("room:%s", roomID)

	acquired := false
	for attempt := 0; attempt <= s.cfg.BookingLockRetries; attempt++ {
		err := s.locks.Acquire(ctx, &model.RoomLock{
			ID:        lockID,
			ExpiresAt: time.Now().Add(s.cfg.BookingLockTTL),
		})
		if err == nil {
			acquired = true
			break
		}
		if !errors.Is(err, bookingserrors.ErrLockHeld) {
			return apperrors.Internal("Failed to acquire room lock", err)
		}

		select {
		case <-ctx.Done():
			return apperrors.Timeout("Timed out waiting for the room lock")
		case <-time.After(s.cfg.BookingLockBackoff):
		}
	}
	if !acquired {
		s.log.Warn("Room lock contention exhausted retries", "lock_id", lockID)
		return apperrors.Unavailable("Room booking")
	}

	defer func() {
		// The request context may already be cancelled; release anyway.
		releaseCtx, cancel := context.WithTimeout(context.Background(), lockReleaseTimeout)
		defer cancel()
		if err := s.locks.Release(releaseCtx, lockID); err != nil {
			s.log.Warn("Failed to release room lock", "lock_id", lockID, "error", err)
		}
	}()

	return fn(ctx)
}

func (s *bookingService) joinRooms(ctx context.Context, bookings []*model.Booking) ([]*model.BookingWithRoom, error) {
	seen := make(map[string]struct{}, len(bookings))
	ids := make([]string, 0, len(bookings))
	for _, b := range bookings {
		if _, ok := seen[b.RoomID]; !ok {
			seen[b.RoomID] = struct{}{}
			ids = append(ids, b.RoomID)
		}
	}

	var roomsByID map[string]*model.Room
	if len(ids) > 0 {
		var err error
		roomsByID, err = s.rooms.FindByIDs(ctx, ids)
		if err != nil {
			// The listing is still useful without the join.
			s.log.Warn("Failed to join rooms into booking listing", "error", err)
			roomsByID = nil
		}
	}

	out := make([]*model.BookingWithRoom, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, &model.BookingWithRoom{
			Booking: *b,
			Room:    roomsByID[b.RoomID],
		})
	}
	return out, nil
}

func (s *bookingService) publish(kind model.EventKind, booking *model.Booking) {
	event := model.ChangeEvent{
		ID:        uuid.New().String(),
		Kind:      kind,
		BookingID: booking.ID,
		EmittedAt: time.Now().UTC(),
	}
	if kind != model.EventBookingDeleted {
		event.Booking = booking
	}
	s.events.Publish(event)
}

func mapRoomError(err error, roomID string) error {
	switch {
	case errors.Is(err, roomserrors.ErrNotFound):
		return apperrors.NotFoundWithID("Room", roomID)
	case errors.Is(err, roomserrors.ErrInvalidID):
		return apperrors.InvalidInput("Invalid room ID")
	default:
		return apperrors.Internal("Failed to load room", err)
	}
}
