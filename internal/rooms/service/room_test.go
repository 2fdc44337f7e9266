package service

import (
	"context"
	"testing"
	"time"

	"bokning/internal/rooms/cache"
	roomserrors "bokning/internal/rooms/errors"
	apperrors "bokning/pkg/errors"
	"bokning/pkg/logger"
	"bokning/pkg/model"
)

const testRoomID = "507f1f77bcf86cd799439011"

// Mock repository for testing
type mockRoomRepository struct {
	createFunc    func(ctx context.Context, room *model.Room) error
	findByIDFunc  func(ctx context.Context, id string) (*model.Room, error)
	findByIDsFunc func(ctx context.Context, ids []string) (map[string]*model.Room, error)
	findAllFunc   func(ctx context.Context) ([]*model.Room, error)
	updateFunc    func(ctx context.Context, id string, room *model.Room) error
	deleteFunc    func(ctx context.Context, id string) error

	findAllCalls int
}

func (m *mockRoomRepository) Create(ctx context.Context, room *model.Room) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, room)
	}
	room.ID = testRoomID
	return nil
}

func (m *mockRoomRepository) FindByID(ctx context.Context, id string) (*model.Room, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return &model.Room{ID: id, Name: "Fishbowl", Capacity: 6, Kind: model.RoomKindMeetingRoom}, nil
}

func (m *mockRoomRepository) FindByIDs(ctx context.Context, ids []string) (map[string]*model.Room, error) {
	if m.findByIDsFunc != nil {
		return m.findByIDsFunc(ctx, ids)
	}
	return map[string]*model.Room{}, nil
}

func (m *mockRoomRepository) FindAll(ctx context.Context) ([]*model.Room, error) {
	m.findAllCalls++
	if m.findAllFunc != nil {
		return m.findAllFunc(ctx)
	}
	return []*model.Room{
		{ID: testRoomID, Name: "Fishbowl", Capacity: 6, Kind: model.RoomKindMeetingRoom},
	}, nil
}

func (m *mockRoomRepository) Update(ctx context.Context, id string, room *model.Room) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, id, room)
	}
	return nil
}

func (m *mockRoomRepository) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

type mockBookingCounter struct {
	countByRoomFunc func(ctx context.Context, roomID string) (int64, error)
}

func (m *mockBookingCounter) CountByRoom(ctx context.Context, roomID string) (int64, error) {
	if m.countByRoomFunc != nil {
		return m.countByRoomFunc(ctx, roomID)
	}
	return 0, nil
}

func newTestService(repo *mockRoomRepository, counter *mockBookingCounter) (*roomService, *cache.RoomCache) {
	log := logger.New(logger.Config{Level: "error", Format: logger.JSON, Service: "test"})
	roomCache := cache.New(time.Minute)
	svc := NewRoomService(log, repo, counter, roomCache).(*roomService)
	return svc, roomCache
}

var (
	admin = model.Identity{ID: "admin-1", Role: model.RoleAdmin}
	user  = model.Identity{ID: "user-1", Role: model.RoleUser}
)

func TestGetAll_ReadThrough(t *testing.T) {
	repo := &mockRoomRepository{}
	svc, _ := newTestService(repo, &mockBookingCounter{})

	for i := 0; i < 3; i++ {
		rooms, err := svc.GetAll(context.Background())
		if err != nil {
			t.Fatalf("iteration %d: unexpected error: %v", i, err)
		}
		if len(rooms) != 1 {
			t.Fatalf("iteration %d: expected 1 room, got %d", i, len(rooms))
		}
	}

	if repo.findAllCalls != 1 {
		t.Errorf("expected a single store read, got %d", repo.findAllCalls)
	}
}

func TestGetAll_StoreFailureNotCached(t *testing.T) {
	failing := true
	repo := &mockRoomRepository{
		findAllFunc: func(ctx context.Context) ([]*model.Room, error) {
			if failing {
				return nil, context.DeadlineExceeded
			}
			return []*model.Room{{ID: testRoomID, Name: "Fishbowl", Capacity: 6, Kind: model.RoomKindMeetingRoom}}, nil
		},
	}
	svc, _ := newTestService(repo, &mockBookingCounter{})

	if _, err := svc.GetAll(context.Background()); err == nil {
		t.Fatal("expected error while the store is down")
	}

	// Once the store recovers the next read must succeed; the failure must
	// not have been cached.
	failing = false
	rooms, err := svc.GetAll(context.Background())
	if err != nil {
		t.Fatalf("unexpected error after recovery: %v", err)
	}
	if len(rooms) != 1 {
		t.Errorf("expected 1 room after recovery, got %d", len(rooms))
	}
}

func TestCreate_InvalidatesCache(t *testing.T) {
	repo := &mockRoomRepository{}
	svc, _ := newTestService(repo, &mockBookingCounter{})

	// Warm the cache.
	if _, err := svc.GetAll(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	room := &model.Room{Name: "Ny Rum", Capacity: 8, Kind: model.RoomKindMeetingRoom}
	if _, err := svc.Create(context.Background(), admin, room); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Cache was dropped, so this read goes back to the store.
	if _, err := svc.GetAll(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.findAllCalls != 2 {
		t.Errorf("expected 2 store reads around the mutation, got %d", repo.findAllCalls)
	}
}

func TestCreate_RequiresAdmin(t *testing.T) {
	svc, _ := newTestService(&mockRoomRepository{}, &mockBookingCounter{})

	room := &model.Room{Name: "Ny Rum", Capacity: 8, Kind: model.RoomKindMeetingRoom}
	_, err := svc.Create(context.Background(), user, room)
	if err == nil {
		t.Fatal("expected forbidden error")
	}
	if appErr := apperrors.AsAppError(err); appErr.Code != apperrors.CodeForbidden {
		t.Errorf("expected code %s, got %s", apperrors.CodeForbidden, appErr.Code)
	}
}

func TestCreate_NormalizesName(t *testing.T) {
	repo := &mockRoomRepository{}
	svc, _ := newTestService(repo, &mockBookingCounter{})

	room := &model.Room{Name: "  fishbowl   east  ", Capacity: 8, Kind: model.RoomKindMeetingRoom}
	created, err := svc.Create(context.Background(), admin, room)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.Name != "fishbowl east" {
		t.Errorf("expected normalized name 'fishbowl east', got %q", created.Name)
	}
}

func TestCreate_ValidationFailure(t *testing.T) {
	svc, _ := newTestService(&mockRoomRepository{}, &mockBookingCounter{})

	room := &model.Room{Name: "X", Capacity: 0, Kind: "closet"}
	_, err := svc.Create(context.Background(), admin, room)
	if err == nil {
		t.Fatal("expected validation error")
	}
	if appErr := apperrors.AsAppError(err); appErr.Code != apperrors.CodeValidation {
		t.Errorf("expected code %s, got %s", apperrors.CodeValidation, appErr.Code)
	}
}

func TestUpdate_InvalidatesCache(t *testing.T) {
	repo := &mockRoomRepository{}
	svc, _ := newTestService(repo, &mockBookingCounter{})

	if _, err := svc.GetAll(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	capacity := 10
	if _, err := svc.Update(context.Background(), admin, testRoomID, &model.RoomUpdate{Capacity: &capacity}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := svc.GetAll(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.findAllCalls != 2 {
		t.Errorf("expected cache drop after update, got %d store reads", repo.findAllCalls)
	}
}

func TestUpdate_NotFound(t *testing.T) {
	repo := &mockRoomRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Room, error) {
			return nil, roomserrors.ErrNotFound
		},
	}
	svc, _ := newTestService(repo, &mockBookingCounter{})

	capacity := 10
	_, err := svc.Update(context.Background(), admin, testRoomID, &model.RoomUpdate{Capacity: &capacity})
	if err == nil {
		t.Fatal("expected not found error")
	}
	if appErr := apperrors.AsAppError(err); appErr.Code != apperrors.CodeNotFound {
		t.Errorf("expected code %s, got %s", apperrors.CodeNotFound, appErr.Code)
	}
}

func TestDelete_RefusedWhileBookingsExist(t *testing.T) {
	counter := &mockBookingCounter{
		countByRoomFunc: func(ctx context.Context, roomID string) (int64, error) {
			return 3, nil
		},
	}
	deleted := false
	repo := &mockRoomRepository{
		deleteFunc: func(ctx context.Context, id string) error {
			deleted = true
			return nil
		},
	}
	svc, _ := newTestService(repo, counter)

	err := svc.Delete(context.Background(), admin, testRoomID)
	if err == nil {
		t.Fatal("expected conflict error")
	}
	appErr := apperrors.AsAppError(err)
	if appErr.Code != apperrors.CodeConflict {
		t.Errorf("expected code %s, got %s", apperrors.CodeConflict, appErr.Code)
	}
	if appErr.Details["booking_count"] != int64(3) {
		t.Errorf("expected booking_count 3 in details, got %v", appErr.Details["booking_count"])
	}
	if deleted {
		t.Error("room must not be deleted while bookings reference it")
	}
}

func TestDelete_InvalidatesCache(t *testing.T) {
	repo := &mockRoomRepository{}
	svc, _ := newTestService(repo, &mockBookingCounter{})

	if _, err := svc.GetAll(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := svc.Delete(context.Background(), admin, testRoomID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := svc.GetAll(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.findAllCalls != 2 {
		t.Errorf("expected cache drop after delete, got %d store reads", repo.findAllCalls)
	}
}

func TestDelete_RequiresAdmin(t *testing.T) {
	svc, _ := newTestService(&mockRoomRepository{}, &mockBookingCounter{})

	err := svc.Delete(context.Background(), user, testRoomID)
	if err == nil {
		t.Fatal("expected forbidden error")
	}
	if appErr := apperrors.AsAppError(err); appErr.Code != apperrors.CodeForbidden {
		t.Errorf("expected code %s, got %s", apperrors.CodeForbidden, appErr.Code)
	}
}
