package euchre

import "testing"

func completedRound(callingSeat int, alone bool, callingTricks int) *Round {
	r := &Round{
		Phase: PhaseRoundComplete,
		Trump: &Trump{Suit: "spades", CalledBy: callingSeat, GoingAlone: alone},
	}
	callingTeam := callingSeat % 2
	r.TrickCounts[callingTeam] = callingTricks
	r.TrickCounts[1-callingTeam] = HandSize - callingTricks
	return r
}

func TestScoreRound(t *testing.T) {
	tests := []struct {
		name        string
		round       *Round
		points      [2]int
		march       bool
		euchred     bool
		callingTeam int
	}{
		{
			name:        "three tricks scores one point",
			round:       completedRound(0, false, 3),
			points:      [2]int{1, 0},
			callingTeam: 0,
		},
		{
			name:        "march scores two",
			round:       completedRound(0, false, 5),
			points:      [2]int{2, 0},
			march:       true,
			callingTeam: 0,
		},
		{
			name:        "lone march scores four",
			round:       completedRound(0, true, 5),
			points:      [2]int{4, 0},
			march:       true,
			callingTeam: 0,
		},
		{
			name:        "lone hand short of march scores one",
			round:       completedRound(0, true, 4),
			points:      [2]int{1, 0},
			callingTeam: 0,
		},
		{
			name:        "euchre awards defenders two",
			round:       completedRound(1, false, 2),
			points:      [2]int{2, 0},
			euchred:     true,
			callingTeam: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ScoreRound(tt.round)
			if result.Points != tt.points {
				t.Errorf("expected points %v, got %v", tt.points, result.Points)
			}
			if result.March != tt.march {
				t.Errorf("expected march=%v, got %v", tt.march, result.March)
			}
			if result.Euchred != tt.euchred {
				t.Errorf("expected euchred=%v, got %v", tt.euchred, result.Euchred)
			}
			if result.CallingTeam != tt.callingTeam {
				t.Errorf("expected calling team %d, got %d", tt.callingTeam, result.CallingTeam)
			}
		})
	}
}

func TestScoreRoundMisdeal(t *testing.T) {
	r := &Round{Phase: PhaseRoundComplete, Misdeal: true}
	result := ScoreRound(r)
	if result.Points != [2]int{} {
		t.Errorf("misdeal must score nothing, got %v", result.Points)
	}
}

func TestScoreRoundUnfinishedPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for unfinished round")
		}
	}()
	ScoreRound(&Round{Phase: PhasePlaying})
}
