package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"radcase-engine/internal/domain"
	goredis "github.com/redis/go-redis/v9"
)

// AttemptStore persists finished attempts in Redis and answers review
// lookups from the same records.
// Records are stored as: SETNX attempt:{userID}:{caseID} {json}
// SETNX keeps the first answer authoritative; review attempts never
// overwrite it.
type AttemptStore struct {
	client *goredis.Client
}

func NewAttemptStore(client *goredis.Client) *AttemptStore {
	return &AttemptStore{client: client}
}

func (s *AttemptStore) SaveAttempt(ctx context.Context, record domain.AttemptRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal attempt: %w", err)
	}
	if err := s.client.SetNX(ctx, s.key(record.UserID, record.CaseID), data, 0).Err(); err != nil {
		return fmt.Errorf("save attempt: %w", err)
	}
	return nil
}

func (s *AttemptStore) ReviewStatus(ctx context.Context, userID, caseID string) (domain.ReviewStatus, error) {
	raw, err := s.client.Get(ctx, s.key(userID, caseID)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return domain.ReviewStatus{}, nil
	}
	if err != nil {
		return domain.ReviewStatus{}, fmt.Errorf("review lookup: %w", err)
	}

	var record domain.AttemptRecord
	if err := json.Unmarshal(raw, &record); err != nil {
		return domain.ReviewStatus{}, fmt.Errorf("unmarshal attempt: %w", err)
	}
	answer := record.SelectedIndex
	correct := record.IsCorrect
	return domain.ReviewStatus{
		IsReview:        true,
		PreviousAnswer:  &answer,
		PreviousCorrect: &correct,
	}, nil
}

func (s *AttemptStore) key(userID, caseID string) string {
	return "attempt:" + userID + ":" + caseID
}
