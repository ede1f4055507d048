package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"bookiteasy/internal/model"

	"github.com/redis/go-redis/v9"
)

// FlashStore holds the transient booking-success payload per user.
// A flash is written once on booking and consumed exactly once by the
// next dashboard load.
type FlashStore interface {
	Put(ctx context.Context, userID string, flash model.BookingSuccess) error
	// Take returns the pending flash and deletes it, or (nil, nil) when
	// there is none.
	Take(ctx context.Context, userID string) (*model.BookingSuccess, error)
	Delete(ctx context.Context, userID string) error
}

const flashTTL = time.Hour

type redisFlashStore struct {
	rdb    *redis.Client
	prefix string
}

// NewRedisFlashStore creates a Redis-backed FlashStore. Entries expire
// after an hour if never read.
func NewRedisFlashStore(rdb *redis.Client) FlashStore {
	return &redisFlashStore{rdb: rdb, prefix: "bookingSuccess:"}
}

func (s *redisFlashStore) Put(ctx context.Context, userID string, flash model.BookingSuccess) error {
	data, err := json.Marshal(flash)
	if err != nil {
		return fmt.Errorf("failed to marshal flash: %w", err)
	}
	if err := s.rdb.Set(ctx, s.prefix+userID, data, flashTTL).Err(); err != nil {
		return fmt.Errorf("failed to store flash: %w", err)
	}
	return nil
}

func (s *redisFlashStore) Take(ctx context.Context, userID string) (*model.BookingSuccess, error) {
	data, err := s.rdb.GetDel(ctx, s.prefix+userID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read flash: %w", err)
	}
	var flash model.BookingSuccess
	if err := json.Unmarshal(data, &flash); err != nil {
		// A malformed record reads as absence, same as the stores above.
		return nil, nil
	}
	return &flash, nil
}

func (s *redisFlashStore) Delete(ctx context.Context, userID string) error {
	if err := s.rdb.Del(ctx, s.prefix+userID).Err(); err != nil {
		return fmt.Errorf("failed to delete flash: %w", err)
	}
	return nil
}

type memoryFlashStore struct {
	mu      sync.Mutex
	pending map[string]model.BookingSuccess
}

// NewMemoryFlashStore creates an in-process FlashStore for deployments
// without Redis.
func NewMemoryFlashStore() FlashStore {
	return &memoryFlashStore{pending: make(map[string]model.BookingSuccess)}
}

func (s *memoryFlashStore) Put(_ context.Context, userID string, flash model.BookingSuccess) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending[userID] = flash
	return nil
}

func (s *memoryFlashStore) Take(_ context.Context, userID string) (*model.BookingSuccess, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	flash, ok := s.pending[userID]
	if !ok {
		return nil, nil
	}
	delete(s.pending, userID)
	return &flash, nil
}

func (s *memoryFlashStore) Delete(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.pending, userID)
	return nil
}
