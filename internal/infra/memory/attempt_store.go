package memory

import (
	"context"
	"sync"

	"radcase-engine/internal/domain"
)

// AttemptStore keeps finished attempts in memory. It implements both
// app.AttemptSink and app.ReviewStatusProvider: a stored record for a
// (user, case) pair marks later attempts as review.
type AttemptStore struct {
	mu      sync.RWMutex
	records map[string]domain.AttemptRecord
}

func NewAttemptStore() *AttemptStore {
	return &AttemptStore{records: make(map[string]domain.AttemptRecord)}
}

func (s *AttemptStore) SaveAttempt(_ context.Context, record domain.AttemptRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := record.UserID + "|" + record.CaseID
	// First answer wins; review attempts never overwrite it.
	if _, ok := s.records[key]; !ok {
		s.records[key] = record
	}
	return nil
}

func (s *AttemptStore) ReviewStatus(_ context.Context, userID, caseID string) (domain.ReviewStatus, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.records[userID+"|"+caseID]
	if !ok {
		return domain.ReviewStatus{}, nil
	}
	answer := record.SelectedIndex
	correct := record.IsCorrect
	return domain.ReviewStatus{
		IsReview:        true,
		PreviousAnswer:  &answer,
		PreviousCorrect: &correct,
	}, nil
}
