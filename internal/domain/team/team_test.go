package team

import "testing"

func TestAbbreviation(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in     string
		want   string
		wantOK bool
	}{
		{"Green Bay Packers", "GB", true},
		{"packers", "GB", true},
		{"GB", "GB", true},
		{"gb", "GB", true},
		{" Los Angeles Rams ", "LA", true},
		{"LAR", "LA", true},
		{"OAK", "LV", true},
		{"San Francisco 49ers", "SF", true},
		{"49ers", "SF", true},
		{"Washington Commanders", "WAS", true},
		{"WSH", "WAS", true},
		{"", "", false},
		{"Hartford Whalers", "", false},
	}

	for _, tc := range cases {
		got, ok := Abbreviation(tc.in)
		if ok != tc.wantOK || got != tc.want {
			t.Fatalf("Abbreviation(%q) = (%q, %v), want (%q, %v)", tc.in, got, ok, tc.want, tc.wantOK)
		}
	}
}

func TestSame(t *testing.T) {
	t.Parallel()

	if !Same("Kansas City Chiefs", "KC") {
		t.Fatal("full name and code must compare equal")
	}
	if !Same("LAR", "Los Angeles Rams") {
		t.Fatal("legacy alias must compare equal to the full name")
	}
	if Same("NYG", "NYJ") {
		t.Fatal("different teams must not compare equal")
	}
	if !Same("mystery team", "Mystery Team") {
		t.Fatal("unknown values fall back to case-insensitive equality")
	}
}
