package cache

import (
	"encoding/json"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"bokning/pkg/model"
)

// listingKey is the single key under which the full room listing is cached.
const listingKey = "rooms"

// RoomCache is a read-through cache for the room listing. The listing is
// stored as one serialized snapshot so readers always see a consistent list,
// and so cached entries cannot be mutated through shared pointers.
type RoomCache struct {
	lru *expirable.LRU[string, []byte]
}

func New(ttl time.Duration) *RoomCache {
	return &RoomCache{
		lru: expirable.NewLRU[string, []byte](1, nil, ttl),
	}
}

// Get returns the cached listing, or false on a miss or an expired entry.
func (c *RoomCache) Get() ([]*model.Room, bool) {
	raw, ok := c.lru.Get(listingKey)
	if !ok {
		return nil, false
	}

	var rooms []*model.Room
	if err := json.Unmarshal(raw, &rooms); err != nil {
		c.lru.Remove(listingKey)
		return nil, false
	}

	return rooms, true
}

// Put stores a fresh snapshot of the listing.
func (c *RoomCache) Put(rooms []*model.Room) {
	data, err := json.Marshal(rooms)
	if err != nil {
		return
	}
	c.lru.Add(listingKey, data)
}

// Invalidate drops the snapshot. Called on every room mutation so readers
// never serve a listing older than the last write.
func (c *RoomCache) Invalidate() {
	c.lru.Remove(listingKey)
}
