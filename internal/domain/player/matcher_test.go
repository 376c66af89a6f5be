package player

import "testing"

func TestMatches(t *testing.T) {
	t.Parallel()

	cases := []struct {
		predicted string
		actual    string
		want      bool
	}{
		{"Aaron Jones", "Aaron Jones", true},
		{"aaron jones", "  Aaron Jones ", true},
		{"A.Jones", "Aaron Jones", true},
		{"Jake Ferguson", "J.Ferguson", true},
		{"Marvin Harrison Jr.", "M.Harrison", true},
		{"Penix Jr", "Michael Penix Jr", true},
		{"P.Nacua", "Puka Nacua", true},
		{"Nacua", "P.Nacua", true},
		{"Aaron Jones", "Julio Jones", false},
		{"Aaron Jones", "A.Rodgers", false},
		{"", "Aaron Jones", false},
		{"Aaron Jones", "", false},
		{"  ", "  ", false},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.predicted+"_vs_"+tc.actual, func(t *testing.T) {
			t.Parallel()
			if got := Matches(tc.predicted, tc.actual); got != tc.want {
				t.Fatalf("Matches(%q, %q) = %v, want %v", tc.predicted, tc.actual, got, tc.want)
			}
		})
	}
}

func TestMatches_BareLastNameAccepted(t *testing.T) {
	t.Parallel()

	if !Matches("Ferguson", "Jake Ferguson") {
		t.Fatal("bare last name must match a full name with the same surname")
	}
}

func TestMatches_InitialMismatchIsTerminal(t *testing.T) {
	t.Parallel()

	// Equal surnames with different first initials must not fall through
	// to the similarity rule, even at a permissive threshold.
	if MatchesWithThreshold("Aaron Jones", "Daron Jones", 0.1) {
		t.Fatal("initial mismatch on equal surnames must reject")
	}
}

func TestMatchesWithThreshold_TunableFallback(t *testing.T) {
	t.Parallel()

	// These differ in the surname, so only the fuzzy rule can decide.
	predicted, actual := "Jaylen Warren", "Jaylen Warner"
	if !MatchesWithThreshold(predicted, actual, 0.7) {
		t.Fatalf("expected %q to match %q at a loose threshold", predicted, actual)
	}
	if MatchesWithThreshold(predicted, actual, 0.99) {
		t.Fatalf("expected %q not to match %q at a strict threshold", predicted, actual)
	}
}

func TestMatches_SuffixStrippedFromBothSides(t *testing.T) {
	t.Parallel()

	if !Matches("Odell Beckham Jr", "O.Beckham") {
		t.Fatal("suffix on the predicted side must be ignored")
	}
	if !Matches("K.Walker III", "Kenneth Walker") {
		t.Fatal("suffix on the abbreviated side must be ignored")
	}
}
