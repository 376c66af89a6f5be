package pbp

import "testing"

func TestExtractTouchdowns_ReturnTouchdownNeverCreditsPasser(t *testing.T) {
	t.Parallel()

	events := []ScoringEvent{
		{
			GameID:          "2025_01_KC_BUF",
			PlayID:          44,
			Touchdown:       true,
			ReturnTouchdown: true,
			Offense:         "KC",
			Defense:         "BUF",
			PasserName:      "Wrong QB",
			ReturnerName:    "Correct Defender",
		},
	}

	tds := ExtractTouchdowns(events)
	if len(tds) != 1 {
		t.Fatalf("unexpected touchdown count: got=%d want=1", len(tds))
	}
	if tds[0].Scorer != "Correct Defender" {
		t.Fatalf("unexpected scorer: got=%s want=Correct Defender", tds[0].Scorer)
	}
	if tds[0].Team != "BUF" {
		t.Fatalf("return touchdown must credit the defense: got=%s want=BUF", tds[0].Team)
	}
	if !tds[0].IsReturn {
		t.Fatal("expected return flag to carry over")
	}
}

func TestExtractTouchdowns_ReturnCandidateOrder(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		event ScoringEvent
		want  string
	}{
		{
			name: "returner first",
			event: ScoringEvent{
				Touchdown: true, ReturnTouchdown: true,
				ReturnerName: "R.Turner", FumbleRecoveryName: "F.Recoverer",
			},
			want: "R.Turner",
		},
		{
			name: "fumble recoverer next",
			event: ScoringEvent{
				Touchdown: true, ReturnTouchdown: true,
				FumbleRecoveryName: "F.Recoverer", LateralReceiverName: "L.Receiver",
			},
			want: "F.Recoverer",
		},
		{
			name: "lateral receiver last",
			event: ScoringEvent{
				Touchdown: true, ReturnTouchdown: true,
				LateralReceiverName: "L.Receiver",
				PasserName:          "Never Me", RusherName: "Nor Me",
			},
			want: "L.Receiver",
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			tds := ExtractTouchdowns([]ScoringEvent{tc.event})
			if len(tds) != 1 {
				t.Fatalf("unexpected touchdown count: got=%d want=1", len(tds))
			}
			if tds[0].Scorer != tc.want {
				t.Fatalf("unexpected scorer: got=%s want=%s", tds[0].Scorer, tc.want)
			}
		})
	}
}

func TestExtractTouchdowns_OffensiveCandidateOrder(t *testing.T) {
	t.Parallel()

	event := ScoringEvent{
		Touchdown:    true,
		Offense:      "DET",
		Defense:      "GB",
		ReceiverName: "A.St. Brown",
		RusherName:   "D.Montgomery",
		PasserName:   "J.Goff",
	}

	tds := ExtractTouchdowns([]ScoringEvent{event})
	if tds[0].Scorer != "A.St. Brown" {
		t.Fatalf("receiver should win on a pass play: got=%s", tds[0].Scorer)
	}
	if tds[0].Team != "DET" {
		t.Fatalf("offensive touchdown must credit the offense: got=%s", tds[0].Team)
	}

	event.ReceiverName = ""
	tds = ExtractTouchdowns([]ScoringEvent{event})
	if tds[0].Scorer != "D.Montgomery" {
		t.Fatalf("rusher should win on a run play: got=%s", tds[0].Scorer)
	}

	event.RusherName = ""
	tds = ExtractTouchdowns([]ScoringEvent{event})
	if tds[0].Scorer != "J.Goff" {
		t.Fatalf("passer is the last offensive candidate: got=%s", tds[0].Scorer)
	}
}

func TestExtractTouchdowns_MissingNamesResolveToUnknown(t *testing.T) {
	t.Parallel()

	tds := ExtractTouchdowns([]ScoringEvent{{Touchdown: true, GameID: "g1"}})
	if len(tds) != 1 {
		t.Fatalf("event must not be dropped: got=%d touchdowns", len(tds))
	}
	if tds[0].Scorer != UnknownScorer {
		t.Fatalf("unexpected scorer: got=%s want=%s", tds[0].Scorer, UnknownScorer)
	}
}

func TestExtractTouchdowns_SkipsNonTouchdowns(t *testing.T) {
	t.Parallel()

	events := []ScoringEvent{
		{GameID: "g1", PlayID: 1, RusherName: "No Score"},
		{GameID: "g1", PlayID: 2, Touchdown: true, RusherName: "Scorer"},
	}
	tds := ExtractTouchdowns(events)
	if len(tds) != 1 || tds[0].PlayID != 2 {
		t.Fatalf("unexpected touchdowns: %+v", tds)
	}
}

func TestFirstTouchdowns_EarliestPlayPerGame(t *testing.T) {
	t.Parallel()

	tds := []Touchdown{
		{GameID: "g1", PlayID: 3, Scorer: "Player B"},
		{GameID: "g1", PlayID: 2, Scorer: "Player A"},
		{GameID: "g2", PlayID: 7, Scorer: "Player C"},
	}

	first := FirstTouchdowns(tds)
	if len(first) != 2 {
		t.Fatalf("expected one first touchdown per game: got=%d", len(first))
	}
	if first["g1"].Scorer != "Player A" || first["g1"].PlayID != 2 {
		t.Fatalf("unexpected first touchdown for g1: %+v", first["g1"])
	}
	if first["g2"].Scorer != "Player C" {
		t.Fatalf("unexpected first touchdown for g2: %+v", first["g2"])
	}
}

func TestFirstTouchdowns_TieBreaksOnSourceOrder(t *testing.T) {
	t.Parallel()

	tds := []Touchdown{
		{GameID: "g1", PlayID: 5, Scorer: "Listed First"},
		{GameID: "g1", PlayID: 5, Scorer: "Listed Second"},
	}

	first := FirstTouchdowns(tds)
	if first["g1"].Scorer != "Listed First" {
		t.Fatalf("tie must keep source order: got=%s", first["g1"].Scorer)
	}
}

func TestGroupByGame_OrdersWithinGame(t *testing.T) {
	t.Parallel()

	byGame := GroupByGame([]Touchdown{
		{GameID: "g1", PlayID: 9, Scorer: "Late"},
		{GameID: "g1", PlayID: 1, Scorer: "Early"},
		{GameID: "g2", PlayID: 4, Scorer: "Other"},
	})

	if len(byGame["g1"]) != 2 || byGame["g1"][0].Scorer != "Early" {
		t.Fatalf("unexpected g1 ordering: %+v", byGame["g1"])
	}
	if len(byGame["g2"]) != 1 {
		t.Fatalf("unexpected g2 group: %+v", byGame["g2"])
	}
}
