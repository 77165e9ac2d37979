package domain

import (
	"math/rand"
	"time"
)

// MaxEliminations bounds how many options one attempt may remove.
const MaxEliminations = 2

// EliminationResult reports the outcome of an eliminate request.
type EliminationResult struct {
	Applied bool            `json:"applied"`
	Index   int             `json:"index"`
	Reason  RejectionReason `json:"reason,omitempty"`
}

// HelpResult reports the outcome of a skip or hint request.
type HelpResult struct {
	Applied bool            `json:"applied"`
	Reason  RejectionReason `json:"reason,omitempty"`
}

// Ledger owns the help records and elimination state of one attempt.
// All mutators are gated: a rejected request never mutates state, so
// repeating a blocked action is harmless.
type Ledger struct {
	records     []HelpRecord
	elimination EliminationState
	rnd         *rand.Rand
}

// NewLedger builds a ledger. rnd picks elimination targets; pass a fixed
// seed for reproducible tests, or nil for a time-seeded source.
func NewLedger(rnd *rand.Rand) *Ledger {
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Ledger{rnd: rnd}
}

// RequestEliminate removes one wrong option chosen uniformly among those
// still standing. freeInReview is an explicit caller policy that lifts
// the review-mode block for designated flows; the ledger never infers it.
func (l *Ledger) RequestEliminate(key AnswerKey, isReview, freeInReview bool) EliminationResult {
	if isReview && !freeInReview {
		return EliminationResult{Index: -1, Reason: ReviewModeBlocked}
	}
	if l.elimination.Count >= MaxEliminations {
		return EliminationResult{Index: -1, Reason: LimitReached}
	}

	eligible := make([]int, 0, len(key.AnswerOptions))
	for idx := range key.AnswerOptions {
		if idx == key.CorrectIndex || l.elimination.IsEliminated(idx) {
			continue
		}
		eligible = append(eligible, idx)
	}
	if len(eligible) == 0 {
		return EliminationResult{Index: -1, Reason: NoEligibleOptions}
	}

	target := eligible[l.rnd.Intn(len(eligible))]
	l.elimination.EliminatedIndices = append(l.elimination.EliminatedIndices, target)
	l.elimination.Count++
	l.records = append(l.records, HelpRecord{Kind: HelpEliminate})
	return EliminationResult{Applied: true, Index: target}
}

// RequestSkip records the skip penalty and signals the caller to advance.
// Skipping never evaluates correctness; the penalty applies if the caller
// still submits a best-effort answer afterwards.
func (l *Ledger) RequestSkip(isReview bool) HelpResult {
	if isReview {
		return HelpResult{Reason: ReviewModeBlocked}
	}
	l.records = append(l.records, HelpRecord{Kind: HelpSkip})
	return HelpResult{Applied: true}
}

// RequestHint records the hint penalty.
func (l *Ledger) RequestHint(isReview bool) HelpResult {
	if isReview {
		return HelpResult{Reason: ReviewModeBlocked}
	}
	l.records = append(l.records, HelpRecord{Kind: HelpHint})
	return HelpResult{Applied: true}
}

// Records returns the help records in invocation order.
func (l *Ledger) Records() []HelpRecord {
	out := make([]HelpRecord, len(l.records))
	copy(out, l.records)
	return out
}

// Elimination returns a copy of the current elimination state.
func (l *Ledger) Elimination() EliminationState {
	indices := make([]int, len(l.elimination.EliminatedIndices))
	copy(indices, l.elimination.EliminatedIndices)
	return EliminationState{EliminatedIndices: indices, Count: l.elimination.Count}
}
