package player

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// DefaultMatchThreshold is the similarity floor for the fuzzy fallback rule.
const DefaultMatchThreshold = 0.75

var honorificSuffixes = map[string]struct{}{
	"jr": {}, "sr": {}, "ii": {}, "iii": {}, "iv": {}, "v": {},
}

// Matches reports whether a predicted player name and an actual scorer name
// refer to the same player, using DefaultMatchThreshold for the fuzzy rule.
func Matches(predicted, actual string) bool {
	return MatchesWithThreshold(predicted, actual, DefaultMatchThreshold)
}

// MatchesWithThreshold applies the matching rules in order; the first rule
// that reaches a verdict wins.
//
//  1. Exact match after case-fold and trim.
//  2. Substring containment in either direction, so "Penix Jr" matches
//     "Michael Penix Jr".
//  3. Honorific suffixes (Jr/Sr/II/III/IV/V) stripped, names tokenized on
//     whitespace and periods. Equal last names reach a verdict here: with two
//     or more tokens on both sides the first initials must agree, while a
//     bare last name on either side is accepted as-is.
//  4. Sequence-similarity ratio at or above threshold.
//
// Empty input on either side never matches.
func MatchesWithThreshold(predicted, actual string, threshold float64) bool {
	normPredicted := normalizeName(predicted)
	normActual := normalizeName(actual)
	if normPredicted == "" || normActual == "" {
		return false
	}

	if normPredicted == normActual {
		return true
	}

	if strings.Contains(normPredicted, normActual) || strings.Contains(normActual, normPredicted) {
		return true
	}

	predictedTokens := nameTokens(normPredicted)
	actualTokens := nameTokens(normActual)
	if len(predictedTokens) > 0 && len(actualTokens) > 0 {
		lastPredicted := predictedTokens[len(predictedTokens)-1]
		lastActual := actualTokens[len(actualTokens)-1]
		if lastPredicted == lastActual {
			if len(predictedTokens) >= 2 && len(actualTokens) >= 2 {
				// Same surname with different first initials is a
				// different player, not a fuzzy-match candidate.
				return predictedTokens[0][0] == actualTokens[0][0]
			}
			return true
		}
	}

	return similarityRatio(normPredicted, normActual) >= threshold
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// nameTokens splits a normalized name on whitespace and periods and drops
// honorific suffixes, so "p.nacua" becomes ["p" "nacua"] and
// "marvin harrison jr." becomes ["marvin" "harrison"].
func nameTokens(norm string) []string {
	raw := strings.FieldsFunc(norm, func(r rune) bool {
		return r == ' ' || r == '\t' || r == '.'
	})

	out := make([]string, 0, len(raw))
	for _, token := range raw {
		if _, isSuffix := honorificSuffixes[token]; isSuffix {
			continue
		}
		out = append(out, token)
	}
	return out
}

func similarityRatio(a, b string) float64 {
	matcher := difflib.NewMatcher(strings.Split(a, ""), strings.Split(b, ""))
	return matcher.Ratio()
}
