package redis

import (
	"context"
	"testing"
	"time"

	"radcase-engine/internal/domain"
	"radcase-engine/internal/infra/memory"
	miniredis "github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
)

func TestCaseRepositoryCachesInRedis(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	client := newClient(mr)

	loader := &countingLoader{
		CaseLoader: memory.NewStaticContentLoader(map[string]domain.Case{
			"case-1": sampleCase(),
		}, nil),
	}
	repo := NewCaseRepository(client, loader, time.Minute)

	cs, err := repo.GetCase(context.Background(), "case-1")
	if err != nil {
		t.Fatalf("get case: %v", err)
	}
	if cs.CorrectIndex != 0 || len(cs.AnswerOptions) != 4 {
		t.Fatalf("unexpected case payload: %+v", cs)
	}
	if loader.calls != 1 {
		t.Fatalf("expected loader called once, got %d", loader.calls)
	}
	if !mr.Exists("case:case-1") {
		t.Fatalf("expected case cached in redis")
	}

	// Second call should hit cache, loader not incremented.
	_, _ = repo.GetCase(context.Background(), "case-1")
	if loader.calls != 1 {
		t.Fatalf("expected cache hit, loader calls=%d", loader.calls)
	}
}

type countingLoader struct {
	memory.CaseLoader
	calls int
}

func (l *countingLoader) LoadCase(ctx context.Context, caseID string) (domain.Case, error) {
	l.calls++
	return l.CaseLoader.LoadCase(ctx, caseID)
}

func sampleCase() domain.Case {
	return domain.Case{
		ID:            "case-1",
		Prompt:        "Right lower lobe consolidation. Most likely diagnosis?",
		AnswerOptions: []string{"Pneumonia", "Tuberculose", "Pulmonary embolism", "Asthma"},
		CorrectIndex:  0,
		BasePoints:    10,
	}
}

func newClient(mr *miniredis.Miniredis) *goredis.Client {
	return goredis.NewClient(&goredis.Options{
		Addr: mr.Addr(),
	})
}
