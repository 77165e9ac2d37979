package memory

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"radcase-engine/internal/domain"
	"golang.org/x/sync/singleflight"
)

// CaseLoader fetches case content from a backing store (e.g., document DB).
type CaseLoader interface {
	LoadCase(ctx context.Context, caseID string) (domain.Case, error)
}

// EventLoader fetches event definitions from a backing store.
type EventLoader interface {
	LoadEvent(ctx context.Context, eventID string) (domain.Event, error)
}

// CaseRepository caches cases with TTL to avoid repeated DB hits.
type CaseRepository struct {
	loader CaseLoader
	ttl    time.Duration
	clock  func() time.Time
	sf     singleflight.Group
	rnd    *rand.Rand

	mu    sync.RWMutex
	cache map[string]cachedCase
}

type cachedCase struct {
	cs        domain.Case
	expiresAt time.Time
}

func NewCaseRepository(loader CaseLoader, ttl time.Duration) *CaseRepository {
	return &CaseRepository{
		loader: loader,
		ttl:    ttl,
		clock:  time.Now,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
		cache:  make(map[string]cachedCase),
	}
}

func (r *CaseRepository) GetCase(ctx context.Context, caseID string) (domain.Case, error) {
	now := r.clock()

	r.mu.RLock()
	if entry, ok := r.cache[caseID]; ok && entry.expiresAt.After(now) {
		r.mu.RUnlock()
		return entry.cs, nil
	}
	r.mu.RUnlock()

	result, err, _ := r.sf.Do(caseID, func() (interface{}, error) {
		now := r.clock()
		r.mu.RLock()
		if entry, ok := r.cache[caseID]; ok && entry.expiresAt.After(now) {
			r.mu.RUnlock()
			return entry.cs, nil
		}
		r.mu.RUnlock()

		cs, err := r.loader.LoadCase(ctx, caseID)
		if err != nil {
			return domain.Case{}, err
		}

		r.mu.Lock()
		r.cache[caseID] = cachedCase{
			cs:        cs,
			expiresAt: now.Add(r.ttlWithJitter()),
		}
		r.mu.Unlock()
		return cs, nil
	})
	if err != nil {
		return domain.Case{}, err
	}
	return result.(domain.Case), nil
}

func (r *CaseRepository) ttlWithJitter() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	// add up to 10% jitter to spread expirations
	jitterMax := int64(r.ttl) / 10
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}

// StaticContentLoader is a loader backed by in-memory maps (useful for
// tests/demos). It serves both cases and events.
type StaticContentLoader struct {
	cases  map[string]domain.Case
	events map[string]domain.Event
}

func NewStaticContentLoader(cases map[string]domain.Case, events map[string]domain.Event) *StaticContentLoader {
	return &StaticContentLoader{cases: cases, events: events}
}

func (l *StaticContentLoader) LoadCase(_ context.Context, caseID string) (domain.Case, error) {
	if cs, ok := l.cases[caseID]; ok {
		return cs, nil
	}
	return domain.Case{}, domain.ErrCaseNotFound
}

func (l *StaticContentLoader) LoadEvent(_ context.Context, eventID string) (domain.Event, error) {
	if event, ok := l.events[eventID]; ok {
		return event, nil
	}
	return domain.Event{}, domain.ErrEventNotFound
}

// EventRepository resolves events straight from a loader; event lists are
// small and already cached by callers that need stability.
type EventRepository struct {
	loader EventLoader
}

func NewEventRepository(loader EventLoader) *EventRepository {
	return &EventRepository{loader: loader}
}

func (r *EventRepository) GetEvent(ctx context.Context, eventID string) (domain.Event, error) {
	return r.loader.LoadEvent(ctx, eventID)
}
