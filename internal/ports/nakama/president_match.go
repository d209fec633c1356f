package nakama

import (
	"context"
	"database/sql"
	"encoding/json"
	"math/rand"
	"strconv"
	"time"

	"github.com/heroiclabs/nakama-common/runtime"

	"cardroom/internal/app"
	"cardroom/internal/bot"
	"cardroom/internal/config"
	"cardroom/internal/domain"
	"cardroom/internal/ports"
	"cardroom/internal/president"
)

// PresidentMatchState holds the authoritative runtime state for the
// president match handler.
type PresidentMatchState struct {
	Seats     []string `json:"seats"` // user ids, empty string means open
	OwnerSeat int      `json:"owner_seat"`
	Tick      int64    `json:"tick"`

	Presences map[string]runtime.Presence `json:"-"`
	App       *app.Service                `json:"-"`
	Game      *president.Game             `json:"-"`
	Rules     president.Rules             `json:"-"`
	Bots      map[string]*bot.Agent       `json:"-"`
	Results   ports.ResultsPort           `json:"-"`

	BotsEnabled      bool  `json:"bots_enabled"`
	BotMinDelay      int   `json:"bot_min_delay"`
	BotMaxDelay      int   `json:"bot_max_delay"`
	BotAutoFillDelay int   `json:"bot_auto_fill_delay"`
	BotWaitUntil     int64 `json:"bot_wait_until"`
	// ShortHandedSince is the tick when a lone human started waiting.
	ShortHandedSince int64 `json:"short_handed_since"`

	TurnSeconds          int   `json:"turn_seconds"`
	TurnSecondsRemaining int64 `json:"turn_seconds_remaining"`
	LastTurnSeat         int   `json:"last_turn_seat"`
}

// NewPresidentMatch is the factory function registered with Nakama.
func NewPresidentMatch(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule) (runtime.Match, error) {
	return &presidentMatchHandler{}, nil
}

type presidentMatchHandler struct{}

func (mh *presidentMatchHandler) MatchInit(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, params map[string]interface{}) (interface{}, int, string) {
	if err := bot.LoadIdentities("data/bot_identities.json"); err != nil {
		logger.Warn("MatchInit: Could not load bot identities: %v", err)
	}
	if err := config.LoadGameConfig("data/rules.json"); err != nil {
		logger.Warn("MatchInit: Could not load game config: %v", err)
	}
	cfg := config.GetGameConfig()

	size := president.MinPlayers
	if val, ok := params["size"].(float64); ok {
		size = int(val)
	}
	if size < president.MinPlayers {
		size = president.MinPlayers
	}
	if size > president.MaxPlayers {
		size = president.MaxPlayers
	}

	state := &PresidentMatchState{
		Seats:     make([]string, size),
		OwnerSeat: -1,
		Tick:      time.Now().Unix(),
		Presences: make(map[string]runtime.Presence),
		App:       app.NewService(nil),
		Bots:      make(map[string]*bot.Agent),
		Results:   NewNakamaResultsAdapter(nk),
		Rules: president.Rules{
			SuperTwos:    cfg.President.SuperTwos,
			WithJokers:   cfg.President.WithJokers,
			TargetRounds: cfg.President.TargetRounds,
		},
		BotsEnabled:      true,
		BotMinDelay:      1,
		BotMaxDelay:      3,
		BotAutoFillDelay: cfg.BotAutoFillDelaySeconds,
		TurnSeconds:      cfg.TurnDurationSeconds,
		LastTurnSeat:     -1,
	}

	env, _ := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string)
	if val, ok := env["cardroom_bots_enabled"]; ok {
		state.BotsEnabled = val == "true"
	}
	if val, ok := env["cardroom_bot_min_delay_sec"]; ok {
		if i, err := strconv.Atoi(val); err == nil {
			state.BotMinDelay = i
		}
	}
	if val, ok := env["cardroom_bot_max_delay_sec"]; ok {
		if i, err := strconv.Atoi(val); err == nil {
			state.BotMaxDelay = i
		}
	}
	if state.BotAutoFillDelay == 0 {
		state.BotAutoFillDelay = 5
	}
	if state.TurnSeconds == 0 {
		state.TurnSeconds = 30
	}

	label := matchLabel{Open: openSeatCount(state.Seats), Game: "president", Phase: "lobby"}
	tickRate := 1
	return state, tickRate, label.encode()
}

func (mh *presidentMatchHandler) MatchJoinAttempt(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presence runtime.Presence, metadata map[string]string) (interface{}, bool, string) {
	matchState, ok := state.(*PresidentMatchState)
	if !ok {
		return state, false, "state not found"
	}

	if openSeatCount(matchState.Seats) <= 0 {
		hasBot := false
		if matchState.Game == nil {
			for _, seat := range matchState.Seats {
				if isBotUserID(seat) {
					hasBot = true
					break
				}
			}
		}
		if !hasBot {
			return state, false, "Match full"
		}
	}

	return state, true, ""
}

func (mh *presidentMatchHandler) MatchJoin(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*PresidentMatchState)
	if !ok {
		logger.Error("MatchJoin: state not found")
		return state
	}

	for _, p := range presences {
		matchState.Presences[p.GetUserId()] = p

		assigned := false
		for i, seatUserID := range matchState.Seats {
			if seatUserID == "" {
				matchState.Seats[i] = p.GetUserId()
				assigned = true
				break
			}
		}

		// Humans displace lobby bots.
		if !assigned && matchState.Game == nil {
			for i, seatUserID := range matchState.Seats {
				if isBotUserID(seatUserID) {
					delete(matchState.Bots, seatUserID)
					matchState.Seats[i] = p.GetUserId()
					assigned = true
					break
				}
			}
		}

		if !assigned {
			logger.Warn("MatchJoin: User %s joined but no seat was available.", p.GetUserId())
		}
	}

	if !isHumanSeat(matchState.Seats, matchState.OwnerSeat) {
		matchState.OwnerSeat = findFirstHumanSeat(matchState.Seats)
	}

	mh.updateLabel(matchState, dispatcher, logger)
	mh.broadcastMatchState(matchState, dispatcher)

	return matchState
}

func (mh *presidentMatchHandler) MatchLeave(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*PresidentMatchState)
	if !ok {
		logger.Error("MatchLeave: state not found")
		return state
	}

	for _, p := range presences {
		delete(matchState.Presences, p.GetUserId())

		for i, seatUserID := range matchState.Seats {
			if seatUserID == p.GetUserId() {
				matchState.Seats[i] = ""
				break
			}
		}
	}

	matchState.OwnerSeat = findFirstHumanSeat(matchState.Seats)

	if shouldTerminateNoHumans(matchState.Seats) {
		logger.Info("MatchLeave: Terminating match with no humans.")
		return nil
	}

	mh.updateLabel(matchState, dispatcher, logger)
	mh.broadcastMatchState(matchState, dispatcher)

	return matchState
}

func (mh *presidentMatchHandler) MatchLoop(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, messages []runtime.MatchData) interface{} {
	matchState, ok := state.(*PresidentMatchState)
	if !ok {
		return state
	}

	matchState.Tick = tick

	for _, msg := range messages {
		switch msg.GetOpCode() {
		case OpStartGame:
			mh.handleStartGame(ctx, matchState, dispatcher, logger, msg)
		case OpPlayCards:
			mh.handlePlayCards(ctx, matchState, dispatcher, logger, msg)
		case OpPassTurn:
			mh.handlePassTurn(ctx, matchState, dispatcher, logger, msg)
		case OpExchangeCards:
			mh.handleExchange(ctx, matchState, dispatcher, logger, msg)
		case OpRequestNewGame:
			mh.handleNextRound(ctx, matchState, dispatcher, logger, msg)
		default:
			logger.Warn("MatchLoop: Unknown opcode received: %d", msg.GetOpCode())
		}
	}

	if matchState.BotsEnabled {
		mh.processBots(ctx, matchState, dispatcher, logger)
	}
	mh.processTurnTimer(ctx, matchState, dispatcher, logger)

	return matchState
}

// processTurnTimer auto-passes a human seat that ran out the clock.
func (mh *presidentMatchHandler) processTurnTimer(ctx context.Context, state *PresidentMatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	if state.Game == nil || state.Game.Phase != president.PhasePlaying {
		state.LastTurnSeat = -1
		return
	}

	current := state.Game.Current
	if current != state.LastTurnSeat {
		state.LastTurnSeat = current
		state.TurnSecondsRemaining = int64(state.TurnSeconds)
		return
	}
	if !isHumanSeat(state.Seats, current) {
		return
	}

	state.TurnSecondsRemaining--
	if state.TurnSecondsRemaining > 0 {
		return
	}

	events, err := state.App.PassPresidentTurn(state.Game, current)
	if err == president.ErrMustLead {
		// Leads cannot time out into a pass; play the lowest card.
		lead := []domain.Card{state.Game.Players[current].Hand[0]}
		events, err = state.App.PlayPresidentCards(state.Game, current, lead)
	}
	if err != nil {
		logger.Error("processTurnTimer: forced action failed for seat %d: %v", current, err)
		state.TurnSecondsRemaining = int64(state.TurnSeconds)
		return
	}
	mh.dispatchEvents(ctx, state, dispatcher, logger, events)
}

func (mh *presidentMatchHandler) processBots(ctx context.Context, state *PresidentMatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	// Fill the lobby with bots when a lone human has waited long enough.
	if state.Game == nil {
		if humanPlayerCount(state.Seats) == 1 && openSeatCount(state.Seats) > 0 {
			if state.ShortHandedSince == 0 {
				state.ShortHandedSince = state.Tick
			}
			if state.Tick-state.ShortHandedSince >= int64(state.BotAutoFillDelay) {
				mh.fillSeatsWithBots(state, logger)
				mh.updateLabel(state, dispatcher, logger)
				mh.broadcastMatchState(state, dispatcher)
				state.ShortHandedSince = 0
			}
		} else {
			state.ShortHandedSince = 0
		}
		return
	}

	switch state.Game.Phase {
	case president.PhaseExchanging:
		mh.processBotExchanges(ctx, state, dispatcher, logger)
	case president.PhasePlaying:
		mh.processBotTurn(ctx, state, dispatcher, logger)
	}
}

// processBotExchanges submits pending exchange selections for bot seats.
func (mh *presidentMatchHandler) processBotExchanges(ctx context.Context, state *PresidentMatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	for seat, count := range state.Game.Exchange.Pending {
		userID := state.Seats[seat]
		if !isBotUserID(userID) {
			continue
		}

		// Bots always surrender their lowest cards.
		give := append([]domain.Card(nil), state.Game.Players[seat].Hand[:count]...)
		events, err := state.App.SubmitPresidentExchange(state.Game, seat, give)
		if err != nil {
			logger.Error("processBotExchanges: bot %s exchange failed: %v", userID, err)
			continue
		}
		mh.dispatchEvents(ctx, state, dispatcher, logger, events)
		return
	}
}

func (mh *presidentMatchHandler) processBotTurn(ctx context.Context, state *PresidentMatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	current := state.Game.Current
	currentUserID := state.Seats[current]
	if !isBotUserID(currentUserID) {
		state.BotWaitUntil = 0
		return
	}

	if state.BotWaitUntil == 0 {
		delay := rand.Intn(state.BotMaxDelay-state.BotMinDelay+1) + state.BotMinDelay
		state.BotWaitUntil = state.Tick + int64(delay)
		return
	}
	if state.Tick < state.BotWaitUntil {
		return
	}
	state.BotWaitUntil = 0

	agent, exists := state.Bots[currentUserID]
	if !exists {
		var err error
		agent, err = bot.NewAgent(currentUserID)
		if err != nil {
			logger.Error("processBotTurn: Failed to create fallback agent: %v", err)
			return
		}
		state.Bots[currentUserID] = agent
	}

	move, err := agent.PlayPresident(state.Game, current)
	if err != nil {
		logger.Error("processBotTurn: Bot %s failed to calculate move: %v", currentUserID, err)
		return
	}

	var events []app.Event
	if move.Pass {
		events, err = state.App.PassPresidentTurn(state.Game, current)
	} else {
		events, err = state.App.PlayPresidentCards(state.Game, current, move.Cards)
	}
	if err != nil {
		logger.Error("processBotTurn: Bot %s move rejected: %v", currentUserID, err)
		return
	}
	mh.dispatchEvents(ctx, state, dispatcher, logger, events)
}

// fillSeatsWithBots seats a roster bot in every open seat.
func (mh *presidentMatchHandler) fillSeatsWithBots(state *PresidentMatchState, logger runtime.Logger) {
	for i, seat := range state.Seats {
		if seat != "" {
			continue
		}
		identity, ok := bot.AvailableIdentity(state.Seats)
		if !ok {
			logger.Warn("fillSeatsWithBots: Bot roster exhausted with seat %d still open.", i)
			return
		}
		state.Seats[i] = identity.UserID

		agent, err := bot.NewAgent(identity.UserID)
		if err != nil {
			logger.Error("fillSeatsWithBots: Failed to create bot agent for %s: %v", identity.UserID, err)
			continue
		}
		state.Bots[identity.UserID] = agent
		logger.Info("fillSeatsWithBots: Added bot %s to seat %d", identity.Username, i)
	}
}

func (mh *presidentMatchHandler) handleStartGame(ctx context.Context, state *PresidentMatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderSeat := seatOf(state.Seats, msg.GetUserId())
	if senderSeat != state.OwnerSeat {
		logger.Warn("handleStartGame: User %s is not the owner.", msg.GetUserId())
		return
	}
	if state.Game != nil {
		mh.sendError(state, dispatcher, logger, msg.GetUserId(), 409, "game already in progress")
		return
	}

	// A short table starts anyway; bots take the open seats.
	mh.fillSeatsWithBots(state, logger)

	game, events, err := state.App.StartPresident(state.Seats, state.Rules)
	if err != nil {
		logger.Error("handleStartGame: Failed to start game: %v", err)
		mh.sendError(state, dispatcher, logger, msg.GetUserId(), 400, err.Error())
		return
	}

	state.Game = game
	state.LastTurnSeat = -1
	for _, agent := range state.Bots {
		agent.NewRound()
	}

	mh.updateLabel(state, dispatcher, logger)
	mh.dispatchEvents(ctx, state, dispatcher, logger, events)
}

func (mh *presidentMatchHandler) handlePlayCards(ctx context.Context, state *PresidentMatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderSeat := seatOf(state.Seats, msg.GetUserId())
	if state.Game == nil {
		logger.Warn("handlePlayCards: Game not started.")
		return
	}

	var request PlayCardsRequest
	if err := json.Unmarshal(msg.GetData(), &request); err != nil {
		logger.Error("handlePlayCards: Failed to unmarshal request: %v", err)
		return
	}

	events, err := state.App.PlayPresidentCards(state.Game, senderSeat, request.Cards)
	if err != nil {
		logger.Warn("handlePlayCards: User %s (seat %d) rejected: %v", msg.GetUserId(), senderSeat, err)
		mh.sendError(state, dispatcher, logger, msg.GetUserId(), 400, err.Error())
		return
	}

	mh.dispatchEvents(ctx, state, dispatcher, logger, events)
}

func (mh *presidentMatchHandler) handlePassTurn(ctx context.Context, state *PresidentMatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderSeat := seatOf(state.Seats, msg.GetUserId())
	if state.Game == nil {
		logger.Warn("handlePassTurn: Game not started.")
		return
	}

	events, err := state.App.PassPresidentTurn(state.Game, senderSeat)
	if err != nil {
		logger.Warn("handlePassTurn: User %s (seat %d) rejected: %v", msg.GetUserId(), senderSeat, err)
		mh.sendError(state, dispatcher, logger, msg.GetUserId(), 400, err.Error())
		return
	}

	mh.dispatchEvents(ctx, state, dispatcher, logger, events)
}

func (mh *presidentMatchHandler) handleExchange(ctx context.Context, state *PresidentMatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderSeat := seatOf(state.Seats, msg.GetUserId())
	if state.Game == nil {
		return
	}

	var request ExchangeRequest
	if err := json.Unmarshal(msg.GetData(), &request); err != nil {
		logger.Error("handleExchange: Failed to unmarshal request: %v", err)
		return
	}

	events, err := state.App.SubmitPresidentExchange(state.Game, senderSeat, request.Cards)
	if err != nil {
		logger.Warn("handleExchange: User %s (seat %d) rejected: %v", msg.GetUserId(), senderSeat, err)
		mh.sendError(state, dispatcher, logger, msg.GetUserId(), 400, err.Error())
		return
	}

	mh.dispatchEvents(ctx, state, dispatcher, logger, events)
}

func (mh *presidentMatchHandler) handleNextRound(ctx context.Context, state *PresidentMatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderSeat := seatOf(state.Seats, msg.GetUserId())
	if senderSeat != state.OwnerSeat || state.Game == nil {
		return
	}

	events, err := state.App.StartNextPresidentRound(state.Game)
	if err != nil {
		mh.sendError(state, dispatcher, logger, msg.GetUserId(), 400, err.Error())
		return
	}

	state.LastTurnSeat = -1
	for _, agent := range state.Bots {
		agent.NewRound()
	}
	mh.dispatchEvents(ctx, state, dispatcher, logger, events)
}

// dispatchEvents converts app events to wire messages, feeds bot card
// memory and persists finished games.
func (mh *presidentMatchHandler) dispatchEvents(ctx context.Context, state *PresidentMatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, events []app.Event) {
	for _, ev := range events {
		if p, ok := ev.Payload.(app.CardsPlayedPayload); ok {
			for _, agent := range state.Bots {
				agent.ObserveCards(p.Cards)
			}
		}
		if ev.Kind == app.EventGameEnded {
			mh.saveResult(ctx, state, logger)
			state.Game = nil
			mh.updateLabel(state, dispatcher, logger)
		}
		mh.broadcastEvent(state, dispatcher, logger, ev)
	}
}

func (mh *presidentMatchHandler) saveResult(ctx context.Context, state *PresidentMatchState, logger runtime.Logger) {
	if state.Results == nil || state.Game == nil {
		return
	}
	rec := ports.ResultRecord{
		Game:       "president",
		Players:    append([]string(nil), state.Seats...),
		WinnerSeat: state.Game.Winner,
		Rounds:     state.Game.RoundsPlayed,
	}
	if err := state.Results.SaveResult(ctx, rec); err != nil {
		logger.Error("saveResult: %v", err)
	}
}

func (mh *presidentMatchHandler) broadcastMatchState(state *PresidentMatchState, dispatcher runtime.MatchDispatcher) {
	var players []PlayerState
	for i, userID := range state.Seats {
		if userID == "" {
			continue
		}

		displayName := userID
		if p, exists := state.Presences[userID]; exists {
			displayName = p.GetUsername()
		} else if identity, ok := bot.LookupIdentity(userID); ok {
			displayName = identity.DisplayName
		}

		cardsRemaining := 0
		if state.Game != nil && i < len(state.Game.Players) {
			cardsRemaining = len(state.Game.Players[i].Hand)
		}

		players = append(players, PlayerState{
			UserID:         userID,
			Seat:           i,
			IsOwner:        i == state.OwnerSeat,
			IsBot:          isBotUserID(userID),
			DisplayName:    displayName,
			CardsRemaining: cardsRemaining,
		})
	}

	snapshot := MatchStateSnapshot{
		Seats:     state.Seats,
		OwnerSeat: state.OwnerSeat,
		Tick:      state.Tick,
		Players:   players,
	}
	bytes, _ := json.Marshal(snapshot)
	dispatcher.BroadcastMessage(OpPlayerJoined, bytes, nil, nil, true)
}

func (mh *presidentMatchHandler) broadcastEvent(state *PresidentMatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, ev app.Event) {
	opCode, ok := eventOpCode(ev.Kind)
	if !ok {
		logger.Warn("broadcastEvent: Unknown event kind: %v", ev.Kind)
		return
	}

	bytes, err := json.Marshal(ev.Payload)
	if err != nil {
		logger.Error("broadcastEvent: Failed to marshal event %v: %v", ev.Kind, err)
		return
	}

	var recipients []runtime.Presence
	if len(ev.Recipients) > 0 {
		for _, uid := range ev.Recipients {
			if p, ok := state.Presences[uid]; ok {
				recipients = append(recipients, p)
			}
		}
		// Targeted events whose recipients are all offline (bots) must
		// not leak to the table.
		if len(recipients) == 0 {
			return
		}
	}

	dispatcher.BroadcastMessage(opCode, bytes, recipients, nil, true)
}

func (mh *presidentMatchHandler) sendError(state *PresidentMatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, userID string, code int, message string) {
	bytes, err := json.Marshal(GameErrorEvent{Code: code, Message: message})
	if err != nil {
		logger.Error("sendError: Failed to marshal: %v", err)
		return
	}

	presence, ok := state.Presences[userID]
	if !ok {
		return
	}
	dispatcher.BroadcastMessage(OpGameError, bytes, []runtime.Presence{presence}, nil, true)
}

func (mh *presidentMatchHandler) updateLabel(state *PresidentMatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	phase := "lobby"
	if state.Game != nil {
		phase = "playing"
	}

	label := matchLabel{Open: openSeatCount(state.Seats), Game: "president", Phase: phase}
	if err := dispatcher.MatchLabelUpdate(label.encode()); err != nil {
		logger.Error("updateLabel: Failed to update: %v", err)
	}
}

func (mh *presidentMatchHandler) MatchTerminate(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, reason int) interface{} {
	logger.Debug("MatchTerminate: Match terminated for reason %d", reason)
	return state
}

func (mh *presidentMatchHandler) MatchSignal(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, data string) (interface{}, string) {
	return state, ""
}
