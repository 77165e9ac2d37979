package memory

import (
	"context"
	"testing"
	"time"

	"radcase-engine/internal/domain"
)

func TestAttemptStoreReviewStatus(t *testing.T) {
	ctx := context.Background()
	store := NewAttemptStore()

	status, err := store.ReviewStatus(ctx, "u1", "case-1")
	if err != nil || status.IsReview {
		t.Fatalf("expected first attempt, got %+v err=%v", status, err)
	}

	record := domain.AttemptRecord{
		UserID:        "u1",
		CaseID:        "case-1",
		SelectedIndex: 2,
		IsCorrect:     true,
		FinalPoints:   7,
		AnsweredAt:    time.Now(),
	}
	if err := store.SaveAttempt(ctx, record); err != nil {
		t.Fatalf("save: %v", err)
	}

	status, err = store.ReviewStatus(ctx, "u1", "case-1")
	if err != nil {
		t.Fatalf("review lookup: %v", err)
	}
	if !status.IsReview || status.PreviousAnswer == nil || *status.PreviousAnswer != 2 {
		t.Fatalf("expected review with previous answer 2, got %+v", status)
	}

	// A later save must not overwrite the first answer.
	record.SelectedIndex = 0
	record.IsCorrect = false
	_ = store.SaveAttempt(ctx, record)
	status, _ = store.ReviewStatus(ctx, "u1", "case-1")
	if *status.PreviousAnswer != 2 || !*status.PreviousCorrect {
		t.Fatalf("first answer overwritten: %+v", status)
	}
}
