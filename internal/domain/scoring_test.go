package domain

import "testing"

func key(points int) AnswerKey {
	return AnswerKey{
		BasePoints:    points,
		CorrectIndex:  0,
		AnswerOptions: []string{"Pneumonia", "Tuberculose", "Pulmonary embolism", "Asthma"},
	}
}

func TestEvaluateFullPoints(t *testing.T) {
	eval := Evaluate(0, key(10), nil, false)
	if !eval.IsCorrect {
		t.Fatalf("expected correct")
	}
	if eval.FinalPoints != 10 || eval.Penalties != 0 {
		t.Fatalf("expected 10 points with no penalty, got %+v", eval)
	}
}

func TestEvaluateReviewNeverAwards(t *testing.T) {
	eval := Evaluate(0, key(10), nil, true)
	if !eval.IsCorrect {
		t.Fatalf("correctness must still be reported in review")
	}
	if eval.FinalPoints != 0 {
		t.Fatalf("review attempt awarded %d points", eval.FinalPoints)
	}
}

func TestEvaluateIncorrectZero(t *testing.T) {
	eval := Evaluate(1, key(10), []HelpRecord{{Kind: HelpHint}}, false)
	if eval.IsCorrect {
		t.Fatalf("expected incorrect")
	}
	if eval.FinalPoints != 0 {
		t.Fatalf("incorrect answer awarded %d points", eval.FinalPoints)
	}
}

func TestEvaluateEliminateAndHintPenalty(t *testing.T) {
	help := []HelpRecord{{Kind: HelpEliminate}, {Kind: HelpHint}}
	eval := Evaluate(0, key(10), help, false)
	if eval.Penalties != 3 {
		t.Fatalf("expected penalty 3 (2+1), got %d", eval.Penalties)
	}
	if eval.FinalPoints != 7 {
		t.Fatalf("expected 7 points, got %d", eval.FinalPoints)
	}
}

func TestEvaluateSkipPenalty(t *testing.T) {
	help := []HelpRecord{{Kind: HelpSkip}}

	correct := Evaluate(0, key(20), help, false)
	if correct.Penalties != 10 || correct.FinalPoints != 10 {
		t.Fatalf("expected 10 penalty and 10 points, got %+v", correct)
	}

	wrong := Evaluate(3, key(20), help, false)
	if wrong.FinalPoints != 0 {
		t.Fatalf("expected 0 points for wrong answer, got %d", wrong.FinalPoints)
	}
}

func TestEvaluatePenaltiesAdditiveUncapped(t *testing.T) {
	help := []HelpRecord{
		{Kind: HelpSkip}, {Kind: HelpSkip}, {Kind: HelpEliminate},
	}
	eval := Evaluate(0, key(10), help, false)
	if eval.Penalties != 12 {
		t.Fatalf("expected penalty 12 (5+5+2), got %d", eval.Penalties)
	}
	if eval.FinalPoints != 0 {
		t.Fatalf("points floor at zero, got %d", eval.FinalPoints)
	}
}

func TestEvaluateTextFallback(t *testing.T) {
	k := AnswerKey{
		BasePoints:    10,
		CorrectIndex:  0,
		AnswerOptions: []string{"Pneumonia", "Tuberculose", "Pneumonia ", "Asma"},
	}
	eval := Evaluate(2, k, nil, false)
	if !eval.IsCorrect {
		t.Fatalf("expected text fallback to match duplicated option")
	}
}

func TestEvaluateNoFallbackForEmptyText(t *testing.T) {
	k := AnswerKey{
		BasePoints:    10,
		CorrectIndex:  0,
		AnswerOptions: []string{"", "Tuberculose", "", "Asma"},
	}
	if eval := Evaluate(2, k, nil, false); eval.IsCorrect {
		t.Fatalf("empty option texts must not match")
	}
}

func TestEvaluateOutOfBoundsSelection(t *testing.T) {
	for _, idx := range []int{-1, 4, 100} {
		if eval := Evaluate(idx, key(10), nil, false); eval.IsCorrect {
			t.Fatalf("index %d should be incorrect", idx)
		}
	}
}
