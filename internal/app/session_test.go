package app_test

import (
	"math/rand"
	"testing"
	"time"

	"radcase-engine/internal/app"
	"radcase-engine/internal/domain"
)

func TestSessionClockAndState(t *testing.T) {
	base := time.Date(2026, 5, 23, 10, 0, 0, 0, time.UTC)
	current := base
	now := func() time.Time { return current }

	cs := domain.Case{
		ID:            "case-1",
		Prompt:        "prompt",
		AnswerOptions: []string{"A", "B", "C"},
		CorrectIndex:  2,
		BasePoints:    5,
	}
	session := app.NewSessionWithClock("u1", cs, domain.ReviewStatus{}, false, now, rand.New(rand.NewSource(7)))

	current = base.Add(42 * time.Second)
	result, first := session.Submit(2)
	if !first {
		t.Fatalf("first submit not marked first")
	}
	if result.TimeSpent != 42*time.Second {
		t.Fatalf("expected 42s spent, got %v", result.TimeSpent)
	}
	if !session.Answered() {
		t.Fatalf("session should be answered")
	}

	// The frozen result ignores later clock movement.
	current = base.Add(10 * time.Minute)
	repeat, first := session.Submit(0)
	if first {
		t.Fatalf("repeat submit marked first")
	}
	if repeat.TimeSpent != 42*time.Second || !repeat.IsCorrect {
		t.Fatalf("repeat submit altered result: %+v", repeat)
	}

	if view := session.View(); !view.Answered {
		t.Fatalf("view should report answered")
	}
}

func TestSessionViewCopiesOptions(t *testing.T) {
	cs := domain.Case{
		ID:            "case-1",
		AnswerOptions: []string{"A", "B"},
		CorrectIndex:  0,
	}
	session := app.NewSession("u1", cs, domain.ReviewStatus{}, false)

	view := session.View()
	view.AnswerOptions[0] = "tampered"
	if session.View().AnswerOptions[0] != "A" {
		t.Fatalf("view shares the option slice")
	}
}
