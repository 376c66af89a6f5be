package team

import "strings"

// abbreviations follows the play-by-play feed's team codes. Full names and
// nicknames map to the same code so picks imported as "Green Bay Packers",
// "Packers", or "GB" all normalize identically.
var abbreviations = map[string]string{
	"arizona cardinals":    "ARI",
	"cardinals":            "ARI",
	"atlanta falcons":      "ATL",
	"falcons":              "ATL",
	"baltimore ravens":     "BAL",
	"ravens":               "BAL",
	"buffalo bills":        "BUF",
	"bills":                "BUF",
	"carolina panthers":    "CAR",
	"panthers":             "CAR",
	"chicago bears":        "CHI",
	"bears":                "CHI",
	"cincinnati bengals":   "CIN",
	"bengals":              "CIN",
	"cleveland browns":     "CLE",
	"browns":               "CLE",
	"dallas cowboys":       "DAL",
	"cowboys":              "DAL",
	"denver broncos":       "DEN",
	"broncos":              "DEN",
	"detroit lions":        "DET",
	"lions":                "DET",
	"green bay packers":    "GB",
	"packers":              "GB",
	"houston texans":       "HOU",
	"texans":               "HOU",
	"indianapolis colts":   "IND",
	"colts":                "IND",
	"jacksonville jaguars": "JAX",
	"jaguars":              "JAX",
	"kansas city chiefs":   "KC",
	"chiefs":               "KC",
	"las vegas raiders":    "LV",
	"raiders":              "LV",
	"los angeles chargers": "LAC",
	"chargers":             "LAC",
	"los angeles rams":     "LA",
	"rams":                 "LA",
	"miami dolphins":       "MIA",
	"dolphins":             "MIA",
	"minnesota vikings":    "MIN",
	"vikings":              "MIN",
	"new england patriots": "NE",
	"patriots":             "NE",
	"new orleans saints":   "NO",
	"saints":               "NO",
	"new york giants":      "NYG",
	"giants":               "NYG",
	"new york jets":        "NYJ",
	"jets":                 "NYJ",
	"philadelphia eagles":  "PHI",
	"eagles":               "PHI",
	"pittsburgh steelers":  "PIT",
	"steelers":             "PIT",
	"san francisco 49ers":  "SF",
	"49ers":                "SF",
	"seattle seahawks":     "SEA",
	"seahawks":             "SEA",
	"tampa bay buccaneers": "TB",
	"buccaneers":           "TB",
	"tennessee titans":     "TEN",
	"titans":               "TEN",
	"washington commanders": "WAS",
	"commanders":            "WAS",
}

// aliases covers legacy codes the feed has used across seasons.
var aliases = map[string]string{
	"LAR": "LA",
	"OAK": "LV",
	"SD":  "LAC",
	"WSH": "WAS",
	"JAC": "JAX",
}

var knownAbbreviations = func() map[string]struct{} {
	out := make(map[string]struct{}, 32)
	for _, abbr := range abbreviations {
		out[abbr] = struct{}{}
	}
	return out
}()

// Abbreviation normalizes a team reference (full name, nickname, or code)
// to the feed's abbreviation. The second return is false when the value is
// not a recognizable team.
func Abbreviation(name string) (string, bool) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", false
	}

	upper := strings.ToUpper(trimmed)
	if _, ok := knownAbbreviations[upper]; ok {
		return upper, true
	}
	if canonical, ok := aliases[upper]; ok {
		return canonical, true
	}
	if abbr, ok := abbreviations[strings.ToLower(trimmed)]; ok {
		return abbr, true
	}
	return "", false
}

// Same reports whether two team references normalize to the same team.
// Unrecognizable values only compare equal to themselves case-insensitively.
func Same(a, b string) bool {
	abbrA, okA := Abbreviation(a)
	abbrB, okB := Abbreviation(b)
	if okA && okB {
		return abbrA == abbrB
	}
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
