package app

import (
	"context"
	"log"

	"radcase-engine/internal/domain"
)

// SessionRepository abstracts how attempt sessions are held (in-memory,
// Redis-marked, etc).
type SessionRepository interface {
	GetOrCreate(key string, build func() *Session) (*Session, bool)
	Get(key string) (*Session, bool)
	Delete(key string)
}

// CaseRepository loads case content (from cache/backing store).
type CaseRepository interface {
	GetCase(ctx context.Context, caseID string) (domain.Case, error)
}

// EventRepository loads timed-event definitions.
type EventRepository interface {
	GetEvent(ctx context.Context, eventID string) (domain.Event, error)
}

// ReviewStatusProvider reports whether a user already answered a case.
type ReviewStatusProvider interface {
	ReviewStatus(ctx context.Context, userID, caseID string) (domain.ReviewStatus, error)
}

// AttemptSink receives finished attempts. The engine calls it once per
// attempt, after the local result is frozen, and never retries.
type AttemptSink interface {
	SaveAttempt(ctx context.Context, record domain.AttemptRecord) error
}

// AttemptService contains the attempt use cases.
type AttemptService struct {
	sessions SessionRepository
	cases    CaseRepository
	events   EventRepository
	reviews  ReviewStatusProvider
	attempts AttemptSink
}

func NewAttemptService(sessions SessionRepository, cases CaseRepository, events EventRepository, reviews ReviewStatusProvider, attempts AttemptSink) *AttemptService {
	return &AttemptService{
		sessions: sessions,
		cases:    cases,
		events:   events,
		reviews:  reviews,
		attempts: attempts,
	}
}

// Start opens (or resumes) the attempt session for (userID, caseID) and
// returns its view. A review-status lookup failure fails open to a first
// attempt, marked degraded so callers can warn the user.
func (s *AttemptService) Start(ctx context.Context, userID, caseID string) (CaseView, error) {
	cs, err := s.cases.GetCase(ctx, caseID)
	if err != nil {
		return CaseView{}, err
	}

	review, degraded := s.lookupReview(ctx, userID, caseID)

	session, _ := s.sessions.GetOrCreate(attemptKey(userID, caseID), func() *Session {
		return NewSession(userID, cs, review, degraded)
	})
	return session.View(), nil
}

// Eliminate forwards an eliminate request to the user's active session.
func (s *AttemptService) Eliminate(_ context.Context, userID, caseID string, freeInReview bool) (domain.EliminationResult, error) {
	session, ok := s.sessions.Get(attemptKey(userID, caseID))
	if !ok {
		return domain.EliminationResult{}, domain.ErrAttemptNotFound
	}
	return session.Eliminate(freeInReview), nil
}

// Skip forwards a skip request to the user's active session.
func (s *AttemptService) Skip(_ context.Context, userID, caseID string) (domain.HelpResult, error) {
	session, ok := s.sessions.Get(attemptKey(userID, caseID))
	if !ok {
		return domain.HelpResult{}, domain.ErrAttemptNotFound
	}
	return session.Skip(), nil
}

// Hint forwards a hint request to the user's active session.
func (s *AttemptService) Hint(_ context.Context, userID, caseID string) (domain.HelpResult, error) {
	session, ok := s.sessions.Get(attemptKey(userID, caseID))
	if !ok {
		return domain.HelpResult{}, domain.ErrAttemptNotFound
	}
	return session.Hint(), nil
}

// Submit finalizes the attempt and hands the record to the attempt sink.
// The local result is authoritative either way: a sink failure only
// leaves Confirmed false, it never discards or re-scores the attempt.
// Repeat submits return the frozen result and skip the sink entirely.
func (s *AttemptService) Submit(ctx context.Context, userID, caseID string, selectedIndex int) (domain.AttemptResult, error) {
	session, ok := s.sessions.Get(attemptKey(userID, caseID))
	if !ok {
		return domain.AttemptResult{}, domain.ErrAttemptNotFound
	}

	result, first := session.Submit(selectedIndex)
	if !first {
		return result, nil
	}

	if err := s.attempts.SaveAttempt(ctx, session.Record(selectedIndex)); err != nil {
		log.Printf("attempt sink rejected %s/%s: %v", userID, caseID, err)
		return result, nil
	}
	session.Confirm()
	result.Confirmed = true
	return result, nil
}

// Abandon drops the session for (userID, caseID). Navigating away is the
// caller's concern; nothing is scored or persisted here.
func (s *AttemptService) Abandon(_ context.Context, userID, caseID string) {
	s.sessions.Delete(attemptKey(userID, caseID))
}

// EventOrder returns the event's case IDs in the deterministic order
// every participant derives from the shared seed.
func (s *AttemptService) EventOrder(ctx context.Context, eventID string) ([]string, error) {
	event, err := s.events.GetEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	return domain.Shuffle(event.CaseIDs, event.OrderSeed()), nil
}

func (s *AttemptService) lookupReview(ctx context.Context, userID, caseID string) (domain.ReviewStatus, bool) {
	review, err := s.reviews.ReviewStatus(ctx, userID, caseID)
	if err != nil {
		// Fail open: treat as a first attempt but mark it degraded.
		log.Printf("review-status lookup failed for %s/%s: %v", userID, caseID, err)
		return domain.ReviewStatus{}, true
	}
	return review, false
}

func attemptKey(userID, caseID string) string {
	return userID + "|" + caseID
}
