package app

import (
	"math/rand"
	"sync"
	"time"

	"radcase-engine/internal/domain"
)

// Session is the aggregate root for one case attempt. It is owned by the
// caller that started it (one UI view per case) and carries no cross-
// session state; the mutex only guards against accidental reuse.
type Session struct {
	userID    string
	caseID    string
	startedAt time.Time
	now       func() time.Time

	cs     domain.Case
	key    domain.AnswerKey
	review domain.ReviewStatus
	// degraded marks a review-status lookup failure, defaulted to a
	// first attempt (fail-open).
	degraded bool

	mu       sync.Mutex
	ledger   *domain.Ledger
	answered bool
	result   domain.AttemptResult
}

// NewSession starts an attempt for (userID, caseID).
func NewSession(userID string, cs domain.Case, review domain.ReviewStatus, degraded bool) *Session {
	return NewSessionWithClock(userID, cs, review, degraded, time.Now, nil)
}

// NewSessionWithClock allows deterministic timestamps and elimination
// targets in tests.
func NewSessionWithClock(userID string, cs domain.Case, review domain.ReviewStatus, degraded bool, now func() time.Time, rnd *rand.Rand) *Session {
	return &Session{
		userID:    userID,
		caseID:    cs.ID,
		startedAt: now(),
		now:       now,
		cs:        cs,
		key:       cs.Key(),
		review:    review,
		degraded:  degraded,
		ledger:    domain.NewLedger(rnd),
	}
}

// Eliminate asks the ledger to remove one wrong option. freeInReview is
// the caller's policy flag for flows where elimination stays free during
// review.
func (s *Session) Eliminate(freeInReview bool) domain.EliminationResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.answered {
		return domain.EliminationResult{Index: -1, Reason: domain.AttemptAnswered}
	}
	return s.ledger.RequestEliminate(s.key, s.review.IsReview, freeInReview)
}

// Skip records a skip aid. The caller advances on success; the penalty
// stands if a best-effort answer is still submitted.
func (s *Session) Skip() domain.HelpResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.answered {
		return domain.HelpResult{Reason: domain.AttemptAnswered}
	}
	return s.ledger.RequestSkip(s.review.IsReview)
}

// Hint records a hint aid.
func (s *Session) Hint() domain.HelpResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.answered {
		return domain.HelpResult{Reason: domain.AttemptAnswered}
	}
	return s.ledger.RequestHint(s.review.IsReview)
}

// Submit evaluates the attempt and transitions Active→Answered. The first
// call computes and freezes the result; repeat calls return that frozen
// result untouched (first=false), never a re-score.
func (s *Session) Submit(selectedIndex int) (domain.AttemptResult, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.answered {
		return s.result, false
	}

	eval := domain.Evaluate(selectedIndex, s.key, s.ledger.Records(), s.review.IsReview)
	s.result = domain.AttemptResult{
		Evaluation:      eval,
		TimeSpent:       s.now().Sub(s.startedAt),
		HelpRecords:     s.ledger.Records(),
		Elimination:     s.ledger.Elimination(),
		IsReview:        s.review.IsReview,
		PreviousAnswer:  s.review.PreviousAnswer,
		PreviousCorrect: s.review.PreviousCorrect,
		ReviewDegraded:  s.degraded,
	}
	s.answered = true
	return s.result, true
}

// Confirm marks the frozen result as persisted. Only meaningful after the
// first Submit; the sink outcome never rolls back the Answered state.
func (s *Session) Confirm() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.answered {
		s.result.Confirmed = true
	}
}

// Record builds the persistence payload for the attempt sink.
func (s *Session) Record(selectedIndex int) domain.AttemptRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.AttemptRecord{
		UserID:        s.userID,
		CaseID:        s.caseID,
		SelectedIndex: selectedIndex,
		IsCorrect:     s.result.IsCorrect,
		FinalPoints:   s.result.FinalPoints,
		AnsweredAt:    s.now(),
	}
}

// View is the presentation snapshot handed to transports. The correct
// index never leaves the session.
func (s *Session) View() CaseView {
	s.mu.Lock()
	defer s.mu.Unlock()
	options := make([]string, len(s.cs.AnswerOptions))
	copy(options, s.cs.AnswerOptions)
	return CaseView{
		CaseID:         s.caseID,
		Prompt:         s.cs.Prompt,
		AnswerOptions:  options,
		BasePoints:     s.key.BasePoints,
		IsReview:       s.review.IsReview,
		ReviewDegraded: s.degraded,
		Elimination:    s.ledger.Elimination(),
		Answered:       s.answered,
	}
}

// Answered reports whether the session reached its terminal state.
func (s *Session) Answered() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.answered
}

// CaseView is what a transport may show for an active attempt.
type CaseView struct {
	CaseID         string                  `json:"caseId"`
	Prompt         string                  `json:"prompt"`
	AnswerOptions  []string                `json:"answerOptions"`
	BasePoints     int                     `json:"basePoints"`
	IsReview       bool                    `json:"isReview"`
	ReviewDegraded bool                    `json:"reviewDegraded,omitempty"`
	Elimination    domain.EliminationState `json:"elimination"`
	Answered       bool                    `json:"answered"`
}
