// Package chaos wraps a docstore.Store with configurable fault injection.
// It exists so tests and resilience experiments can exercise the storage
// fault paths without a misbehaving database on hand.
package chaos

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"time"

	"growingtogether/pkg/docstore"
)

// ErrInjected is returned by operations the wrapper decided to fail.
var ErrInjected = errors.New("chaos: injected storage fault")

// Store decorates an inner docstore.Store. FailureRate is the probability
// in [0,1] that an operation fails with ErrInjected; Latency is added to
// every operation; FailCollections restricts injection to the named
// collections (empty means all).
type Store struct {
	Inner           docstore.Store
	FailureRate     float64
	Latency         time.Duration
	FailCollections []string

	mu       sync.Mutex
	rng      *rand.Rand
	injected int
}

// New wraps inner with a deterministic fault source seeded by seed.
func New(inner docstore.Store, seed int64) *Store {
	return &Store{
		Inner: inner,
		rng:   rand.New(rand.NewSource(seed)),
	}
}

// InjectedCount reports how many operations were failed so far.
func (s *Store) InjectedCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.injected
}

func (s *Store) disturb(ctx context.Context, collection string) error {
	if s.Latency > 0 {
		select {
		case <-time.After(s.Latency):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	if s.FailureRate <= 0 || !s.targets(collection) {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.rng.Float64() < s.FailureRate {
		s.injected++
		return ErrInjected
	}
	return nil
}

func (s *Store) targets(collection string) bool {
	if len(s.FailCollections) == 0 {
		return true
	}
	for _, c := range s.FailCollections {
		if c == collection {
			return true
		}
	}
	return false
}

func (s *Store) Insert(ctx context.Context, collection, id string, doc any) error {
	if err := s.disturb(ctx, collection); err != nil {
		return err
	}
	return s.Inner.Insert(ctx, collection, id, doc)
}

func (s *Store) FindOne(ctx context.Context, collection string, filter docstore.Filter, out any) error {
	if err := s.disturb(ctx, collection); err != nil {
		return err
	}
	return s.Inner.FindOne(ctx, collection, filter, out)
}

func (s *Store) Find(ctx context.Context, collection string, filter docstore.Filter, opts docstore.FindOptions, out any) error {
	if err := s.disturb(ctx, collection); err != nil {
		return err
	}
	return s.Inner.Find(ctx, collection, filter, opts, out)
}

func (s *Store) UpdateOne(ctx context.Context, collection string, filter docstore.Filter, patch docstore.Patch) (int64, error) {
	if err := s.disturb(ctx, collection); err != nil {
		return 0, err
	}
	return s.Inner.UpdateOne(ctx, collection, filter, patch)
}

func (s *Store) DeleteOne(ctx context.Context, collection string, filter docstore.Filter) (int64, error) {
	if err := s.disturb(ctx, collection); err != nil {
		return 0, err
	}
	return s.Inner.DeleteOne(ctx, collection, filter)
}

func (s *Store) Count(ctx context.Context, collection string, filter docstore.Filter) (int64, error) {
	if err := s.disturb(ctx, collection); err != nil {
		return 0, err
	}
	return s.Inner.Count(ctx, collection, filter)
}
