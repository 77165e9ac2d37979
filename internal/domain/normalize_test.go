package domain

import "testing"

func TestNormalize(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"lowercases", "Pneumonia", "pneumonia"},
		{"trims", "  Pneumonia ", "pneumonia"},
		{"strips diacritics", "Hérnia de disco", "hernia de disco"},
		{"strips cedilla", "Calcificação", "calcificacao"},
		{"removes punctuation", "COVID-19 (severe)", "covid19 severe"},
		{"collapses whitespace", "right   lower\tlobe", "right lower lobe"},
		{"keeps digits and underscore", "stage_2 lesion", "stage_2 lesion"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Normalize(tc.in); got != tc.want {
				t.Fatalf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestNormalizeEquivalence(t *testing.T) {
	// Options reordered upstream may differ only by stray whitespace.
	if Normalize("Pneumonia ") != Normalize("Pneumonia") {
		t.Fatalf("expected trailing-space variant to normalize equal")
	}
	if Normalize("Tuberculose") == Normalize("Pneumonia") {
		t.Fatalf("distinct answers must stay distinct")
	}
}
