package redis

import (
	"context"
	"encoding/json"
	"math/rand"
	"time"

	"radcase-engine/internal/domain"
	goredis "github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

// CaseLoader fetches case content from a backing store (e.g., document DB).
type CaseLoader interface {
	LoadCase(ctx context.Context, caseID string) (domain.Case, error)
}

// CaseRepository caches case content in Redis as JSON under
// case:{caseID} and falls back to a loader on cache miss.
type CaseRepository struct {
	client *goredis.Client
	loader CaseLoader
	ttl    time.Duration
	sf     singleflight.Group
	rnd    *rand.Rand
}

func NewCaseRepository(client *goredis.Client, loader CaseLoader, ttl time.Duration) *CaseRepository {
	return &CaseRepository{
		client: client,
		loader: loader,
		ttl:    ttl,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (r *CaseRepository) GetCase(ctx context.Context, caseID string) (domain.Case, error) {
	key := r.caseKey(caseID)

	if cs, ok := r.cached(ctx, key); ok {
		return cs, nil
	}

	result, err, _ := r.sf.Do(caseID, func() (interface{}, error) {
		// Re-check cache in case another goroutine filled it.
		if cs, ok := r.cached(ctx, key); ok {
			return cs, nil
		}

		cs, err := r.loader.LoadCase(ctx, caseID)
		if err != nil {
			return domain.Case{}, err
		}

		if data, err := json.Marshal(cs); err == nil {
			// best-effort fill; a failed write just means another miss
			_ = r.client.Set(ctx, key, data, r.ttlWithJitter()).Err()
		}
		return cs, nil
	})
	if err != nil {
		return domain.Case{}, err
	}
	return result.(domain.Case), nil
}

func (r *CaseRepository) cached(ctx context.Context, key string) (domain.Case, bool) {
	raw, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		return domain.Case{}, false
	}
	var cs domain.Case
	if err := json.Unmarshal(raw, &cs); err != nil {
		return domain.Case{}, false
	}
	return cs, true
}

func (r *CaseRepository) caseKey(caseID string) string {
	return "case:" + caseID
}

func (r *CaseRepository) ttlWithJitter() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	jitterMax := int64(r.ttl) / 10
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}
