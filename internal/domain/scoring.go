package domain

// Penalty fractions per help kind, in percent of base points. Each
// accepted record contributes independently; penalties are additive and
// uncapped per kind.
const (
	eliminatePenaltyPct = 20
	skipPenaltyPct      = 50
	hintPenaltyPct      = 10
)

// Evaluate scores one submission. It is total: out-of-range selections
// are simply incorrect, never an error.
func Evaluate(selectedIndex int, key AnswerKey, help []HelpRecord, isReview bool) Evaluation {
	eval := Evaluation{
		IsCorrect:  isCorrect(selectedIndex, key),
		BasePoints: key.BasePoints,
		Penalties:  totalPenalty(key.BasePoints, help),
	}

	switch {
	case !eval.IsCorrect:
		eval.FinalPoints = 0
	case isReview:
		// Review attempts never re-award points.
		eval.FinalPoints = 0
	default:
		if pts := key.BasePoints - eval.Penalties; pts > 0 {
			eval.FinalPoints = pts
		}
	}
	return eval
}

// isCorrect matches by index first, then by normalized option text. The
// text fallback covers options whose order was randomized upstream of
// index assignment, where index equality alone under-counts.
func isCorrect(selectedIndex int, key AnswerKey) bool {
	if selectedIndex == key.CorrectIndex {
		return true
	}
	if selectedIndex < 0 || selectedIndex >= len(key.AnswerOptions) {
		return false
	}
	if key.CorrectIndex < 0 || key.CorrectIndex >= len(key.AnswerOptions) {
		return false
	}
	selected := key.AnswerOptions[selectedIndex]
	correct := key.AnswerOptions[key.CorrectIndex]
	if selected == "" || correct == "" {
		return false
	}
	return Normalize(selected) == Normalize(correct)
}

func totalPenalty(basePoints int, help []HelpRecord) int {
	total := 0
	for _, record := range help {
		switch record.Kind {
		case HelpEliminate:
			total += basePoints * eliminatePenaltyPct / 100
		case HelpSkip:
			total += basePoints * skipPenaltyPct / 100
		case HelpHint:
			total += basePoints * hintPenaltyPct / 100
		}
	}
	return total
}
