// Package cache keeps the bookings verify-mock has confirmed so a repeated
// verification of the same Razorpay order returns the original booking.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Booking is what verify-mock returns for a verified order.
type Booking struct {
	ID           string    `json:"id"`
	TicketNumber string    `json:"ticketNumber"`
	OrderID      string    `json:"orderId"`
	UserID       string    `json:"userId"`
	CreatedAt    time.Time `json:"createdAt"`
}

// BookingStore records one booking per Razorpay order id.
type BookingStore interface {
	// Get returns the booking for orderID and whether one exists.
	Get(ctx context.Context, orderID string) (Booking, bool, error)
	// SaveIfAbsent stores b unless orderID already has a booking.  It
	// returns the booking now on record and whether b was the one stored.
	SaveIfAbsent(ctx context.Context, orderID string, b Booking) (Booking, bool, error)
}

// redisClient is the subset of *redis.Client the store uses.
type redisClient interface {
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
	Get(ctx context.Context, key string) *redis.StringCmd
}

// RedisBookingStore keeps bookings as JSON strings under
// <prefix>:booking:<orderID> with a TTL.
type RedisBookingStore struct {
	rdb    redisClient
	prefix string
	ttl    time.Duration
}

// NewRedisBookingStore returns a store backed by rdb.
func NewRedisBookingStore(rdb redisClient, prefix string, ttl time.Duration) *RedisBookingStore {
	return &RedisBookingStore{rdb: rdb, prefix: prefix, ttl: ttl}
}

func (s *RedisBookingStore) key(orderID string) string {
	return s.prefix + ":booking:" + orderID
}

func (s *RedisBookingStore) Get(ctx context.Context, orderID string) (Booking, bool, error) {
	raw, err := s.rdb.Get(ctx, s.key(orderID)).Result()
	if errors.Is(err, redis.Nil) {
		return Booking{}, false, nil
	}
	if err != nil {
		return Booking{}, false, err
	}
	var b Booking
	if err := json.Unmarshal([]byte(raw), &b); err != nil {
		return Booking{}, false, err
	}
	return b, true, nil
}

func (s *RedisBookingStore) SaveIfAbsent(ctx context.Context, orderID string, b Booking) (Booking, bool, error) {
	raw, err := json.Marshal(b)
	if err != nil {
		return Booking{}, false, err
	}
	ok, err := s.rdb.SetNX(ctx, s.key(orderID), raw, s.ttl).Result()
	if err != nil {
		return Booking{}, false, err
	}
	if ok {
		return b, true, nil
	}
	existing, found, err := s.Get(ctx, orderID)
	if err != nil {
		return Booking{}, false, err
	}
	if !found {
		// expired between SETNX and GET
		return s.SaveIfAbsent(ctx, orderID, b)
	}
	return existing, false, nil
}

// MemoryBookingStore is the fallback used when Redis is unavailable.
// Entries live for the life of the process.
type MemoryBookingStore struct {
	mu       sync.Mutex
	bookings map[string]Booking
}

func NewMemoryBookingStore() *MemoryBookingStore {
	return &MemoryBookingStore{bookings: make(map[string]Booking)}
}

func (s *MemoryBookingStore) Get(_ context.Context, orderID string) (Booking, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bookings[orderID]
	return b, ok, nil
}

func (s *MemoryBookingStore) SaveIfAbsent(_ context.Context, orderID string, b Booking) (Booking, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.bookings[orderID]; ok {
		return existing, false, nil
	}
	s.bookings[orderID] = b
	return b, true, nil
}
