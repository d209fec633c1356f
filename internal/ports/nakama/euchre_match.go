package nakama

import (
	"context"
	"database/sql"
	"encoding/json"
	"math/rand"
	"time"

	"github.com/heroiclabs/nakama-common/runtime"

	"cardroom/internal/app"
	"cardroom/internal/bot"
	"cardroom/internal/config"
	"cardroom/internal/domain"
	"cardroom/internal/euchre"
	"cardroom/internal/ports"
)

// EuchreMatchState holds the authoritative runtime state for the euchre
// match handler.
type EuchreMatchState struct {
	Seats     []string `json:"seats"`
	OwnerSeat int      `json:"owner_seat"`
	Tick      int64    `json:"tick"`

	Presences map[string]runtime.Presence `json:"-"`
	App       *app.Service                `json:"-"`
	Match     *app.EuchreMatch            `json:"-"`
	Rules     euchre.Rules                `json:"-"`
	Bots      map[string]*bot.Agent       `json:"-"`
	Results   ports.ResultsPort           `json:"-"`

	BotsEnabled      bool  `json:"bots_enabled"`
	BotMinDelay      int   `json:"bot_min_delay"`
	BotMaxDelay      int   `json:"bot_max_delay"`
	BotAutoFillDelay int   `json:"bot_auto_fill_delay"`
	BotWaitUntil     int64 `json:"bot_wait_until"`
	ShortHandedSince int64 `json:"short_handed_since"`

	TurnSeconds          int   `json:"turn_seconds"`
	TurnSecondsRemaining int64 `json:"turn_seconds_remaining"`
	LastTurnSeat         int   `json:"last_turn_seat"`
}

// NewEuchreMatch is the factory function registered with Nakama.
func NewEuchreMatch(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule) (runtime.Match, error) {
	return &euchreMatchHandler{}, nil
}

type euchreMatchHandler struct{}

func (mh *euchreMatchHandler) MatchInit(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, params map[string]interface{}) (interface{}, int, string) {
	if err := bot.LoadIdentities("data/bot_identities.json"); err != nil {
		logger.Warn("MatchInit: Could not load bot identities: %v", err)
	}
	if err := config.LoadGameConfig("data/rules.json"); err != nil {
		logger.Warn("MatchInit: Could not load game config: %v", err)
	}
	cfg := config.GetGameConfig()

	state := &EuchreMatchState{
		Seats:     make([]string, app.EuchreSeats),
		OwnerSeat: -1,
		Tick:      time.Now().Unix(),
		Presences: make(map[string]runtime.Presence),
		App:       app.NewService(nil),
		Bots:      make(map[string]*bot.Agent),
		Results:   NewNakamaResultsAdapter(nk),
		Rules: euchre.Rules{
			StickTheDealer: cfg.Euchre.StickTheDealer,
			TargetScore:    cfg.Euchre.TargetScore,
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
	if state.BotAutoFillDelay == 0 {
		state.BotAutoFillDelay = 5
	}
	if state.TurnSeconds == 0 {
		state.TurnSeconds = 30
	}

	label := matchLabel{Open: openSeatCount(state.Seats), Game: "euchre", Phase: "lobby"}
	return state, 1, label.encode()
}

func (mh *euchreMatchHandler) MatchJoinAttempt(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presence runtime.Presence, metadata map[string]string) (interface{}, bool, string) {
	matchState, ok := state.(*EuchreMatchState)
	if !ok {
		return state, false, "state not found"
	}

	if openSeatCount(matchState.Seats) <= 0 {
		hasBot := false
		if matchState.Match == nil {
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

func (mh *euchreMatchHandler) MatchJoin(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*EuchreMatchState)
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

		if !assigned && matchState.Match == nil {
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

func (mh *euchreMatchHandler) MatchLeave(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*EuchreMatchState)
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

func (mh *euchreMatchHandler) MatchLoop(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, messages []runtime.MatchData) interface{} {
	matchState, ok := state.(*EuchreMatchState)
	if !ok {
		return state
	}

	matchState.Tick = tick

	for _, msg := range messages {
		switch msg.GetOpCode() {
		case OpStartGame:
			mh.handleStartGame(ctx, matchState, dispatcher, logger, msg)
		case OpPlayCards:
			mh.handlePlayCard(ctx, matchState, dispatcher, logger, msg)
		case OpBid:
			mh.handleBid(ctx, matchState, dispatcher, logger, msg)
		case OpDealerDiscard:
			mh.handleDiscard(ctx, matchState, dispatcher, logger, msg)
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

// processTurnTimer forces an action for a human seat that ran out the clock.
// Bidding times out into a pass, a stuck dealer calls the first legal suit,
// a discard surrenders the lowest card and a trick play takes the first
// legal card.
func (mh *euchreMatchHandler) processTurnTimer(ctx context.Context, state *EuchreMatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	if state.Match == nil {
		state.LastTurnSeat = -1
		return
	}

	round := state.Match.Game.Round
	switch round.Phase {
	case euchre.PhaseBiddingRound1, euchre.PhaseBiddingRound2, euchre.PhaseDealerDiscard, euchre.PhasePlaying:
	default:
		state.LastTurnSeat = -1
		return
	}

	acting := round.Current
	if round.Phase == euchre.PhaseDealerDiscard {
		acting = round.Dealer
	}

	if acting != state.LastTurnSeat {
		state.LastTurnSeat = acting
		state.TurnSecondsRemaining = int64(state.TurnSeconds)
		return
	}
	if !isHumanSeat(state.Seats, acting) {
		return
	}

	state.TurnSecondsRemaining--
	if state.TurnSecondsRemaining > 0 {
		return
	}

	var events []app.Event
	var err error
	switch round.Phase {
	case euchre.PhaseBiddingRound1, euchre.PhaseBiddingRound2:
		events, err = state.App.PassEuchreBid(state.Match, acting)
		if err == euchre.ErrMustCallTrump {
			for _, s := range domain.AllSuits() {
				if s == round.Turned.Suit {
					continue
				}
				events, err = state.App.CallTrump(state.Match, acting, s, false)
				break
			}
		}
	case euchre.PhaseDealerDiscard:
		events, err = state.App.DiscardEuchre(state.Match, round.Hands[round.Dealer][0])
	case euchre.PhasePlaying:
		legal := euchre.LegalPlays(round.Hands[acting], round.Trick, round.Trump.Suit)
		events, err = state.App.PlayEuchreCard(state.Match, acting, legal[0])
	}

	if err != nil {
		logger.Error("processTurnTimer: forced action failed for seat %d: %v", acting, err)
		state.TurnSecondsRemaining = int64(state.TurnSeconds)
		return
	}
	mh.dispatchEvents(ctx, state, dispatcher, logger, events)
}

func (mh *euchreMatchHandler) processBots(ctx context.Context, state *EuchreMatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	if state.Match == nil {
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

	round := state.Match.Game.Round
	actingSeat := round.Current
	if round.Phase == euchre.PhaseDealerDiscard {
		actingSeat = round.Dealer
	}

	currentUserID := state.Seats[actingSeat]
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
			logger.Error("processBots: Failed to create fallback agent: %v", err)
			return
		}
		state.Bots[currentUserID] = agent
	}

	var events []app.Event
	var err error

	switch round.Phase {
	case euchre.PhaseBiddingRound1, euchre.PhaseBiddingRound2:
		var decision bot.Bid
		decision, err = agent.BidEuchre(round, actingSeat, state.Rules.StickTheDealer)
		if err != nil {
			logger.Error("processBots: Bot %s bid failed: %v", currentUserID, err)
			return
		}
		switch decision.Action {
		case bot.BidOrderUp:
			events, err = state.App.OrderUp(state.Match, actingSeat, decision.Alone)
		case bot.BidCallTrump:
			events, err = state.App.CallTrump(state.Match, actingSeat, decision.Suit, decision.Alone)
		default:
			events, err = state.App.PassEuchreBid(state.Match, actingSeat)
		}
	case euchre.PhaseDealerDiscard:
		var card = round.Hands[round.Dealer][0]
		if chosen, derr := agent.DiscardEuchre(round); derr == nil {
			card = chosen
		}
		events, err = state.App.DiscardEuchre(state.Match, card)
	case euchre.PhasePlaying:
		var card = round.Hands[actingSeat][0]
		if chosen, perr := agent.PlayEuchre(round, actingSeat); perr == nil {
			card = chosen
		}
		events, err = state.App.PlayEuchreCard(state.Match, actingSeat, card)
	default:
		return
	}

	if err != nil {
		logger.Error("processBots: Bot %s action rejected: %v", currentUserID, err)
		return
	}
	mh.dispatchEvents(ctx, state, dispatcher, logger, events)
}

func (mh *euchreMatchHandler) fillSeatsWithBots(state *EuchreMatchState, logger runtime.Logger) {
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

func (mh *euchreMatchHandler) handleStartGame(ctx context.Context, state *EuchreMatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderSeat := seatOf(state.Seats, msg.GetUserId())
	if senderSeat != state.OwnerSeat {
		logger.Warn("handleStartGame: User %s is not the owner.", msg.GetUserId())
		return
	}
	if state.Match != nil {
		mh.sendError(state, dispatcher, logger, msg.GetUserId(), 409, "game already in progress")
		return
	}

	mh.fillSeatsWithBots(state, logger)

	var userIDs [app.EuchreSeats]string
	copy(userIDs[:], state.Seats)

	match, events, err := state.App.StartEuchre(userIDs, state.Rules)
	if err != nil {
		logger.Error("handleStartGame: Failed to start game: %v", err)
		mh.sendError(state, dispatcher, logger, msg.GetUserId(), 400, err.Error())
		return
	}

	state.Match = match
	for _, agent := range state.Bots {
		agent.NewRound()
	}

	mh.updateLabel(state, dispatcher, logger)
	mh.dispatchEvents(ctx, state, dispatcher, logger, events)
}

func (mh *euchreMatchHandler) handleBid(ctx context.Context, state *EuchreMatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderSeat := seatOf(state.Seats, msg.GetUserId())
	if state.Match == nil {
		return
	}

	var request BidRequest
	if err := json.Unmarshal(msg.GetData(), &request); err != nil {
		logger.Error("handleBid: Failed to unmarshal request: %v", err)
		return
	}

	var events []app.Event
	var err error
	switch request.Action {
	case "order_up":
		events, err = state.App.OrderUp(state.Match, senderSeat, request.Alone)
	case "call":
		events, err = state.App.CallTrump(state.Match, senderSeat, request.Suit, request.Alone)
	case "pass":
		events, err = state.App.PassEuchreBid(state.Match, senderSeat)
	default:
		mh.sendError(state, dispatcher, logger, msg.GetUserId(), 400, "unknown bid action")
		return
	}

	if err != nil {
		logger.Warn("handleBid: User %s (seat %d) rejected: %v", msg.GetUserId(), senderSeat, err)
		mh.sendError(state, dispatcher, logger, msg.GetUserId(), 400, err.Error())
		return
	}
	mh.dispatchEvents(ctx, state, dispatcher, logger, events)
}

func (mh *euchreMatchHandler) handleDiscard(ctx context.Context, state *EuchreMatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderSeat := seatOf(state.Seats, msg.GetUserId())
	if state.Match == nil {
		return
	}
	if senderSeat != state.Match.Game.Round.Dealer {
		mh.sendError(state, dispatcher, logger, msg.GetUserId(), 403, "only the dealer discards")
		return
	}

	var request DiscardRequest
	if err := json.Unmarshal(msg.GetData(), &request); err != nil {
		logger.Error("handleDiscard: Failed to unmarshal request: %v", err)
		return
	}

	events, err := state.App.DiscardEuchre(state.Match, request.Card)
	if err != nil {
		mh.sendError(state, dispatcher, logger, msg.GetUserId(), 400, err.Error())
		return
	}
	mh.dispatchEvents(ctx, state, dispatcher, logger, events)
}

func (mh *euchreMatchHandler) handlePlayCard(ctx context.Context, state *EuchreMatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderSeat := seatOf(state.Seats, msg.GetUserId())
	if state.Match == nil {
		logger.Warn("handlePlayCard: Game not started.")
		return
	}

	var request PlayCardsRequest
	if err := json.Unmarshal(msg.GetData(), &request); err != nil {
		logger.Error("handlePlayCard: Failed to unmarshal request: %v", err)
		return
	}
	if len(request.Cards) != 1 {
		mh.sendError(state, dispatcher, logger, msg.GetUserId(), 400, "exactly one card per trick play")
		return
	}

	events, err := state.App.PlayEuchreCard(state.Match, senderSeat, request.Cards[0])
	if err != nil {
		logger.Warn("handlePlayCard: User %s (seat %d) rejected: %v", msg.GetUserId(), senderSeat, err)
		mh.sendError(state, dispatcher, logger, msg.GetUserId(), 400, err.Error())
		return
	}
	mh.dispatchEvents(ctx, state, dispatcher, logger, events)
}

func (mh *euchreMatchHandler) dispatchEvents(ctx context.Context, state *EuchreMatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, events []app.Event) {
	for _, ev := range events {
		switch p := ev.Payload.(type) {
		case app.CardsPlayedPayload:
			for _, agent := range state.Bots {
				agent.ObserveCards(p.Cards)
			}
		case app.EuchreRoundEndedPayload:
			for _, agent := range state.Bots {
				agent.NewRound()
			}
		}
		if ev.Kind == app.EventGameEnded {
			mh.saveResult(ctx, state, logger)
			state.Match = nil
			mh.updateLabel(state, dispatcher, logger)
		}
		mh.broadcastEvent(state, dispatcher, logger, ev)
	}
}

func (mh *euchreMatchHandler) saveResult(ctx context.Context, state *EuchreMatchState, logger runtime.Logger) {
	if state.Results == nil || state.Match == nil {
		return
	}
	game := state.Match.Game
	rec := ports.ResultRecord{
		Game:       "euchre",
		Players:    append([]string(nil), state.Seats...),
		WinnerSeat: game.Winner,
		TeamScores: game.Scores,
	}
	if err := state.Results.SaveResult(ctx, rec); err != nil {
		logger.Error("saveResult: %v", err)
	}
}

func (mh *euchreMatchHandler) broadcastMatchState(state *EuchreMatchState, dispatcher runtime.MatchDispatcher) {
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
		if state.Match != nil {
			cardsRemaining = len(state.Match.Game.Round.Hands[i])
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

func (mh *euchreMatchHandler) broadcastEvent(state *EuchreMatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, ev app.Event) {
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
		if len(recipients) == 0 {
			return
		}
	}

	dispatcher.BroadcastMessage(opCode, bytes, recipients, nil, true)
}

func (mh *euchreMatchHandler) sendError(state *EuchreMatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, userID string, code int, message string) {
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

func (mh *euchreMatchHandler) updateLabel(state *EuchreMatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	phase := "lobby"
	if state.Match != nil {
		phase = "playing"
	}

	label := matchLabel{Open: openSeatCount(state.Seats), Game: "euchre", Phase: phase}
	if err := dispatcher.MatchLabelUpdate(label.encode()); err != nil {
		logger.Error("updateLabel: Failed to update: %v", err)
	}
}

func (mh *euchreMatchHandler) MatchTerminate(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, reason int) interface{} {
	logger.Debug("MatchTerminate: Match terminated for reason %d", reason)
	return state
}

func (mh *euchreMatchHandler) MatchSignal(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, data string) (interface{}, string) {
	return state, ""
}
