package domain

import "time"

// HelpKind identifies an optional aid a user may spend points on.
type HelpKind string

const (
	HelpEliminate HelpKind = "eliminate"
	HelpSkip      HelpKind = "skip"
	HelpHint      HelpKind = "hint"
)

// HelpRecord is one accepted help invocation. Rejected requests never
// produce a record.
type HelpRecord struct {
	Kind HelpKind `json:"kind"`
}

// AnswerKey is the immutable scoring material for one case, supplied by
// the case-content provider. The engine bounds-checks indices but trusts
// everything else as already validated.
type AnswerKey struct {
	BasePoints    int      `json:"basePoints"`
	CorrectIndex  int      `json:"correctIndex"`
	AnswerOptions []string `json:"answerOptions"`
}

// ReviewStatus describes whether the user has answered this case before.
type ReviewStatus struct {
	IsReview        bool  `json:"isReview"`
	PreviousAnswer  *int  `json:"previousAnswer,omitempty"`
	PreviousCorrect *bool `json:"previousCorrect,omitempty"`
}

// EliminationState tracks which options were removed by eliminate aids.
// The correct index can never be a member and no index appears twice.
type EliminationState struct {
	EliminatedIndices []int `json:"eliminatedIndices"`
	Count             int   `json:"count"`
}

// IsEliminated reports whether idx was already removed.
func (s EliminationState) IsEliminated(idx int) bool {
	for _, e := range s.EliminatedIndices {
		if e == idx {
			return true
		}
	}
	return false
}

// RejectionReason explains why a help request was denied.
type RejectionReason string

const (
	ReviewModeBlocked RejectionReason = "review_mode_blocked"
	LimitReached      RejectionReason = "limit_reached"
	NoEligibleOptions RejectionReason = "no_eligible_options"
	AttemptAnswered   RejectionReason = "attempt_answered"
)

// Evaluation is the pure scoring outcome for one submission.
type Evaluation struct {
	IsCorrect   bool `json:"isCorrect"`
	BasePoints  int  `json:"basePoints"`
	Penalties   int  `json:"penalties"`
	FinalPoints int  `json:"finalPoints"`
}

// AttemptResult is the full outcome returned by a session submit.
type AttemptResult struct {
	Evaluation
	TimeSpent       time.Duration    `json:"timeSpentNs"`
	HelpRecords     []HelpRecord     `json:"helpRecords"`
	Elimination     EliminationState `json:"elimination"`
	IsReview        bool             `json:"isReview"`
	PreviousAnswer  *int             `json:"previousAnswer,omitempty"`
	PreviousCorrect *bool            `json:"previousCorrect,omitempty"`
	// Confirmed is false when the attempt sink rejected the record; the
	// local score still stands and the caller decides whether to retry.
	Confirmed bool `json:"confirmed"`
	// ReviewDegraded marks results computed after a failed review-status
	// lookup, where the engine defaulted to a first attempt.
	ReviewDegraded bool `json:"reviewDegraded,omitempty"`
}

// AttemptRecord is the persistence payload handed to the attempt sink.
type AttemptRecord struct {
	UserID        string    `json:"userId"`
	CaseID        string    `json:"caseId"`
	SelectedIndex int       `json:"selectedIndex"`
	IsCorrect     bool      `json:"isCorrect"`
	FinalPoints   int       `json:"finalPoints"`
	AnsweredAt    time.Time `json:"answeredAt"`
}

// Case is the authored content for one medical case.
type Case struct {
	ID            string   `json:"id"`
	Prompt        string   `json:"prompt"`
	AnswerOptions []string `json:"answerOptions"`
	CorrectIndex  int      `json:"correctIndex"`
	BasePoints    int      `json:"basePoints"` // defaults to 1 if zero
}

// Key derives the scoring material from the authored content.
func (c Case) Key() AnswerKey {
	points := c.BasePoints
	if points == 0 {
		points = 1
	}
	return AnswerKey{
		BasePoints:    points,
		CorrectIndex:  c.CorrectIndex,
		AnswerOptions: c.AnswerOptions,
	}
}

// Event is a timed multi-participant event: an ordered case list plus the
// seed every participant shuffles it with.
type Event struct {
	ID      string   `json:"id"`
	Seed    string   `json:"seed"`
	CaseIDs []string `json:"caseIds"`
}

// OrderSeed returns the shuffle seed, falling back to the event ID so an
// event without an explicit seed still orders deterministically.
func (e Event) OrderSeed() string {
	if e.Seed != "" {
		return e.Seed
	}
	return e.ID
}
