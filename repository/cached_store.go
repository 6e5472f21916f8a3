package repository

import (
	"context"
	"errors"
	"log"

	"polls-backend/cache"
	"polls-backend/models"
)

// PollCache is the slice of the cache layer this package needs. The
// concrete implementation lives in the cache package; tests use an
// in-memory fake.
type PollCache interface {
	GetPoll(ctx context.Context, id uint) (*models.Poll, error)
	SetPoll(ctx context.Context, poll *models.Poll) error
	DeletePoll(ctx context.Context, id uint) error
}

// CachedStore decorates a Store with a read-through cache for
// poll-by-id lookups. Cache faults degrade to the database; they are
// logged and never surfaced to callers.
type CachedStore struct {
	Store
	cache PollCache
}

// NewCachedStore wraps store with the given poll cache.
func NewCachedStore(store Store, pollCache PollCache) *CachedStore {
	return &CachedStore{Store: store, cache: pollCache}
}

func (s *CachedStore) GetPoll(ctx context.Context, id uint) (*models.Poll, error) {
	poll, err := s.cache.GetPoll(ctx, id)
	if err == nil {
		return poll, nil
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		log.Printf("Poll cache read failed for poll %d: %v", id, err)
	}

	poll, err = s.Store.GetPoll(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.cache.SetPoll(ctx, poll); err != nil {
		log.Printf("Poll cache write failed for poll %d: %v", id, err)
	}
	return poll, nil
}

func (s *CachedStore) UpdatePoll(ctx context.Context, poll *models.Poll) error {
	if err := s.Store.UpdatePoll(ctx, poll); err != nil {
		return err
	}
	if err := s.cache.DeletePoll(ctx, poll.ID); err != nil {
		log.Printf("Poll cache invalidation failed for poll %d: %v", poll.ID, err)
	}
	return nil
}

func (s *CachedStore) DeletePoll(ctx context.Context, id uint) error {
	if err := s.Store.DeletePoll(ctx, id); err != nil {
		return err
	}
	if err := s.cache.DeletePoll(ctx, id); err != nil {
		log.Printf("Poll cache invalidation failed for poll %d: %v", id, err)
	}
	return nil
}
