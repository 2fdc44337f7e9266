package cache

import (
	"testing"
	"time"

	"bokning/pkg/model"
)

func sampleRooms() []*model.Room {
	return []*model.Room{
		{ID: "507f1f77bcf86cd799439011", Name: "Fishbowl", Capacity: 6, Kind: model.RoomKindMeetingRoom},
		{ID: "507f191e810c19729de860ea", Name: "Desk 12", Capacity: 1, Kind: model.RoomKindWorkstation},
	}
}

func TestRoomCache_MissThenHit(t *testing.T) {
	c := New(time.Minute)

	if _, ok := c.Get(); ok {
		t.Fatal("expected miss on empty cache")
	}

	c.Put(sampleRooms())

	rooms, ok := c.Get()
	if !ok {
		t.Fatal("expected hit after put")
	}
	if len(rooms) != 2 {
		t.Fatalf("expected 2 rooms, got %d", len(rooms))
	}
	if rooms[0].Name != "Fishbowl" {
		t.Errorf("expected first room Fishbowl, got %s", rooms[0].Name)
	}
}

func TestRoomCache_Invalidate(t *testing.T) {
	c := New(time.Minute)
	c.Put(sampleRooms())

	c.Invalidate()

	if _, ok := c.Get(); ok {
		t.Error("expected miss after invalidation")
	}
}

func TestRoomCache_TTLExpiry(t *testing.T) {
	c := New(20 * time.Millisecond)
	c.Put(sampleRooms())

	if _, ok := c.Get(); !ok {
		t.Fatal("expected hit before expiry")
	}

	time.Sleep(50 * time.Millisecond)

	if _, ok := c.Get(); ok {
		t.Error("expected miss after TTL expiry")
	}
}

func TestRoomCache_SnapshotIsIsolated(t *testing.T) {
	c := New(time.Minute)
	original := sampleRooms()
	c.Put(original)

	// Mutating the slice used for Put must not affect cached data.
	original[0].Name = "changed"

	rooms, ok := c.Get()
	if !ok {
		t.Fatal("expected hit")
	}
	if rooms[0].Name != "Fishbowl" {
		t.Errorf("cached snapshot was mutated through the caller's slice: %s", rooms[0].Name)
	}

	// Mutating a returned room must not affect later reads either.
	rooms[0].Capacity = 999
	again, _ := c.Get()
	if again[0].Capacity != 6 {
		t.Errorf("cached snapshot was mutated through a reader: %d", again[0].Capacity)
	}
}

func TestRoomCache_EmptyListingIsCacheable(t *testing.T) {
	c := New(time.Minute)
	c.Put([]*model.Room{})

	rooms, ok := c.Get()
	if !ok {
		t.Fatal("an empty listing is a valid cache entry")
	}
	if len(rooms) != 0 {
		t.Errorf("expected empty listing, got %d rooms", len(rooms))
	}
}
