package nakama

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/heroiclabs/nakama-common/runtime"

	"cardroom/internal/app"
	"cardroom/internal/bot"
	"cardroom/internal/euchre"
)

// noopLogger implements runtime.Logger for tests that only need to satisfy
// the interface.
type noopLogger struct{}

func (noopLogger) Debug(string, ...interface{}) {}
func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}
func (noopLogger) WithField(string, interface{}) runtime.Logger {
	return noopLogger{}
}
func (noopLogger) WithFields(map[string]interface{}) runtime.Logger {
	return noopLogger{}
}
func (noopLogger) Fields() map[string]interface{} {
	return nil
}

// mockDispatcher records match dispatcher calls for assertions.
type mockDispatcher struct {
	broadcastCount int
	labelUpdates   int
	lastOpCode     int64
	lastData       []byte
	lastLabel      string
}

func (md *mockDispatcher) BroadcastMessage(opCode int64, data []byte, presences []runtime.Presence, sender runtime.Presence, reliable bool) error {
	md.broadcastCount++
	md.lastOpCode = opCode
	md.lastData = append([]byte(nil), data...)
	return nil
}

func (md *mockDispatcher) BroadcastMessageDeferred(opCode int64, data []byte, presences []runtime.Presence, sender runtime.Presence, reliable bool) error {
	return nil
}

func (md *mockDispatcher) MatchKick(presences []runtime.Presence) error {
	return nil
}

func (md *mockDispatcher) MatchLabelUpdate(label string) error {
	md.labelUpdates++
	md.lastLabel = label
	return nil
}

func TestFindFirstHumanSeat(t *testing.T) {
	bot1 := bot.GetIdentity(0).UserID
	bot2 := bot.GetIdentity(1).UserID

	tests := []struct {
		name  string
		seats []string
		want  int
	}{
		{
			name:  "FirstHumanAfterBot",
			seats: []string{bot1, "user-1", "", ""},
			want:  1,
		},
		{
			name:  "AllBots",
			seats: []string{bot1, bot2, "", ""},
			want:  -1,
		},
		{
			name:  "AllEmpty",
			seats: []string{"", "", "", ""},
			want:  -1,
		},
		{
			name:  "FirstHumanIsSeatZero",
			seats: []string{"user-1", bot1, "user-2", ""},
			want:  0,
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			if got := findFirstHumanSeat(test.seats); got != test.want {
				t.Fatalf("findFirstHumanSeat() = %d, want %d", got, test.want)
			}
		})
	}
}

func TestShouldTerminateNoHumans(t *testing.T) {
	bot1 := bot.GetIdentity(0).UserID
	bot2 := bot.GetIdentity(1).UserID

	tests := []struct {
		name  string
		seats []string
		want  bool
	}{
		{
			name:  "BotsOnly",
			seats: []string{bot1, bot2},
			want:  true,
		},
		{
			name:  "BotsAndEmpty",
			seats: []string{bot1, "", bot2, ""},
			want:  true,
		},
		{
			name:  "HumansPresent",
			seats: []string{bot1, "user-1", "", ""},
			want:  false,
		},
		{
			name:  "AllEmpty",
			seats: []string{"", "", "", ""},
			want:  true,
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			if got := shouldTerminateNoHumans(test.seats); got != test.want {
				t.Fatalf("shouldTerminateNoHumans() = %t, want %t", got, test.want)
			}
		})
	}
}

func TestMatchLabelEncode(t *testing.T) {
	tests := []struct {
		name     string
		label    matchLabel
		expected string
	}{
		{
			name:     "Lobby",
			label:    matchLabel{Open: 3, Game: "president", Phase: "lobby"},
			expected: `{"open":3,"game":"president","phase":"lobby"}`,
		},
		{
			name:     "Playing",
			label:    matchLabel{Open: 0, Game: "euchre", Phase: "playing"},
			expected: `{"open":0,"game":"euchre","phase":"playing"}`,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := test.label.encode(); got != test.expected {
				t.Errorf("encode() = %s, want %s", got, test.expected)
			}
		})
	}
}

func TestEventOpCodeMapping(t *testing.T) {
	kinds := []app.EventKind{
		app.EventPlayerJoined,
		app.EventPlayerLeft,
		app.EventGameStarted,
		app.EventHandDealt,
		app.EventCardsPlayed,
		app.EventTurnPassed,
		app.EventPileCleared,
		app.EventTrumpSet,
		app.EventBidPassed,
		app.EventTrickWon,
		app.EventRoundEnded,
		app.EventGameEnded,
	}

	seen := make(map[int64]app.EventKind)
	for _, kind := range kinds {
		op, ok := eventOpCode(kind)
		if !ok {
			t.Fatalf("no op code for kind %s", kind)
		}
		if op < 100 {
			t.Fatalf("server event op code %d for %s collides with client ops", op, kind)
		}
		if prev, dup := seen[op]; dup {
			t.Fatalf("op code %d used by both %s and %s", op, prev, kind)
		}
		seen[op] = kind
	}

	if _, ok := eventOpCode(app.EventKind("nope")); ok {
		t.Fatalf("unknown kinds must not map to an op code")
	}
}

func TestProcessBotsFillsShortHandedLobby(t *testing.T) {
	handler := &presidentMatchHandler{}
	dispatcher := &mockDispatcher{}
	state := &PresidentMatchState{
		Seats:            []string{"user-1", "", "", ""},
		OwnerSeat:        0,
		Presences:        make(map[string]runtime.Presence),
		App:              app.NewService(nil),
		Bots:             make(map[string]*bot.Agent),
		BotsEnabled:      true,
		BotAutoFillDelay: 2,
		ShortHandedSince: 8,
		Tick:             10,
	}

	handler.processBots(context.Background(), state, dispatcher, noopLogger{})

	botCount := 0
	for _, seat := range state.Seats {
		if isBotUserID(seat) {
			botCount++
		}
	}
	if botCount != 3 {
		t.Fatalf("Expected 3 bots, got %d", botCount)
	}
	if openSeatCount(state.Seats) != 0 {
		t.Fatalf("Expected a full table after auto-fill, got %d open", openSeatCount(state.Seats))
	}
	if state.ShortHandedSince != 0 {
		t.Fatalf("Expected auto-fill timer reset, got %d", state.ShortHandedSince)
	}
	if dispatcher.broadcastCount == 0 || dispatcher.labelUpdates == 0 {
		t.Fatalf("Expected match state broadcast and label update after auto-fill")
	}
}

func TestFillSeatsWithBotsUniqueIdentities(t *testing.T) {
	handler := &presidentMatchHandler{}
	state := &PresidentMatchState{
		Seats: make([]string, 8),
		Bots:  make(map[string]*bot.Agent),
	}
	state.Seats[0] = "user-1"

	handler.fillSeatsWithBots(state, noopLogger{})

	seen := map[string]bool{}
	for i, seat := range state.Seats {
		if seat == "" {
			t.Fatalf("seat %d left open", i)
		}
		if seen[seat] {
			t.Fatalf("user id %s seated twice", seat)
		}
		seen[seat] = true
	}
	if len(state.Bots) != 7 {
		t.Fatalf("expected 7 bot agents, got %d", len(state.Bots))
	}
}

func TestProcessBotsWaitsOutTheDelay(t *testing.T) {
	handler := &presidentMatchHandler{}
	dispatcher := &mockDispatcher{}
	state := &PresidentMatchState{
		Seats:            []string{"user-1", "", "", ""},
		Presences:        make(map[string]runtime.Presence),
		App:              app.NewService(nil),
		Bots:             make(map[string]*bot.Agent),
		BotsEnabled:      true,
		BotAutoFillDelay: 5,
		Tick:             10,
	}

	handler.processBots(context.Background(), state, dispatcher, noopLogger{})

	if state.ShortHandedSince != 10 {
		t.Fatalf("Expected waiting timer to start at tick 10, got %d", state.ShortHandedSince)
	}
	for _, seat := range state.Seats {
		if isBotUserID(seat) {
			t.Fatalf("No bot should be seated before the delay elapses")
		}
	}
}

func TestEuchreTurnTimerForcesBidPass(t *testing.T) {
	handler := &euchreMatchHandler{}
	dispatcher := &mockDispatcher{}
	svc := app.NewService(nil)
	match, _, err := svc.StartEuchre([app.EuchreSeats]string{"user-1", "user-2", "user-3", "user-4"}, euchre.Rules{TargetScore: 10})
	if err != nil {
		t.Fatalf("start euchre: %v", err)
	}

	state := &EuchreMatchState{
		Seats:        append([]string(nil), match.UserIDs[:]...),
		Presences:    make(map[string]runtime.Presence),
		App:          svc,
		Match:        match,
		Bots:         make(map[string]*bot.Agent),
		TurnSeconds:  2,
		LastTurnSeat: -1,
	}

	round := match.Game.Round
	first := round.Current

	// The first tick arms the clock for the acting seat without acting.
	handler.processTurnTimer(context.Background(), state, dispatcher, noopLogger{})
	if state.LastTurnSeat != first || state.TurnSecondsRemaining != 2 {
		t.Fatalf("timer should arm for seat %d with 2 seconds, got seat %d with %d", first, state.LastTurnSeat, state.TurnSecondsRemaining)
	}
	if round.Current != first {
		t.Fatal("arming the timer must not force an action")
	}

	// Run the clock out.
	handler.processTurnTimer(context.Background(), state, dispatcher, noopLogger{})
	if round.Current != first {
		t.Fatal("a seat with time remaining must not be forced")
	}
	handler.processTurnTimer(context.Background(), state, dispatcher, noopLogger{})

	if round.Current == first {
		t.Fatalf("stalled seat %d should have been passed", first)
	}
	if dispatcher.broadcastCount == 0 {
		t.Fatal("a forced pass should broadcast an event")
	}

	// The clock re-arms for the next acting seat.
	handler.processTurnTimer(context.Background(), state, dispatcher, noopLogger{})
	if state.LastTurnSeat != round.Current || state.TurnSecondsRemaining != 2 {
		t.Fatalf("timer should re-arm, got seat %d with %d seconds", state.LastTurnSeat, state.TurnSecondsRemaining)
	}
}

func TestEuchreTurnTimerIgnoresBotSeats(t *testing.T) {
	handler := &euchreMatchHandler{}
	dispatcher := &mockDispatcher{}
	svc := app.NewService(nil)
	botID := bot.GetIdentity(0).UserID
	match, _, err := svc.StartEuchre([app.EuchreSeats]string{botID, botID, botID, botID}, euchre.Rules{TargetScore: 10})
	if err != nil {
		t.Fatalf("start euchre: %v", err)
	}

	round := match.Game.Round
	state := &EuchreMatchState{
		Seats:                append([]string(nil), match.UserIDs[:]...),
		Presences:            make(map[string]runtime.Presence),
		App:                  svc,
		Match:                match,
		Bots:                 make(map[string]*bot.Agent),
		TurnSeconds:          2,
		LastTurnSeat:         round.Current,
		TurnSecondsRemaining: 1,
	}

	first := round.Current
	handler.processTurnTimer(context.Background(), state, dispatcher, noopLogger{})

	if round.Current != first {
		t.Fatal("bot seats are driven by the bot scheduler, not the clock")
	}
	if state.TurnSecondsRemaining != 1 {
		t.Fatalf("clock must not run for a bot seat, got %d", state.TurnSecondsRemaining)
	}
}

func TestBroadcastMatchStateSnapshot(t *testing.T) {
	handler := &presidentMatchHandler{}
	dispatcher := &mockDispatcher{}
	botID := bot.GetIdentity(0).UserID
	state := &PresidentMatchState{
		Seats:     []string{"user-1", botID, "", ""},
		OwnerSeat: 0,
		Tick:      42,
		Presences: make(map[string]runtime.Presence),
	}

	handler.broadcastMatchState(state, dispatcher)

	if dispatcher.lastOpCode != OpPlayerJoined {
		t.Fatalf("Expected opcode %d, got %d", OpPlayerJoined, dispatcher.lastOpCode)
	}

	var snapshot MatchStateSnapshot
	if err := json.Unmarshal(dispatcher.lastData, &snapshot); err != nil {
		t.Fatalf("Failed to unmarshal snapshot: %v", err)
	}
	if len(snapshot.Players) != 2 {
		t.Fatalf("Expected 2 seated players, got %d", len(snapshot.Players))
	}
	if !snapshot.Players[0].IsOwner || snapshot.Players[0].UserID != "user-1" {
		t.Fatalf("Seat 0 should be the human owner: %+v", snapshot.Players[0])
	}
	if !snapshot.Players[1].IsBot {
		t.Fatalf("Seat 1 should be flagged as a bot: %+v", snapshot.Players[1])
	}
}
