package server

import (
	"context"
	"encoding/json"
	"log"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"cardroom/internal/app"
	"cardroom/internal/config"
	"cardroom/internal/euchre"
	"cardroom/internal/ports"
	"cardroom/internal/president"
	"cardroom/internal/protocol"
)

// clientMessage pairs an inbound message with the client that sent it.
type clientMessage struct {
	client  *Client
	message protocol.Message
}

const tableCodeLength = 5

// table is one lobby or running game.
type table struct {
	code    string
	game    string // "president" or "euchre"
	size    int
	clients []*Client

	president *president.Game
	euchre    *app.EuchreMatch
}

func (t *table) started() bool {
	return t.president != nil || t.euchre != nil
}

func (t *table) seatOf(clientID string) int {
	for i, c := range t.clients {
		if c.ID == clientID {
			return i
		}
	}
	return -1
}

// Hub manages active WebSocket connections, lobbies and running tables.
type Hub struct {
	clients       map[*Client]bool
	tables        map[string]*table
	clientToTable map[*Client]string

	processMessage chan clientMessage
	register       chan *Client
	unregister     chan *Client

	clientMu sync.RWMutex
	tableMu  sync.RWMutex

	svc     *app.Service
	rng     *rand.Rand
	results ports.ResultsPort
}

// NewHub creates a new Hub instance. results may be nil, in which case
// finished games are not persisted.
func NewHub(results ports.ResultsPort) *Hub {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	return &Hub{
		clients:        make(map[*Client]bool),
		tables:         make(map[string]*table),
		clientToTable:  make(map[*Client]string),
		processMessage: make(chan clientMessage),
		register:       make(chan *Client),
		unregister:     make(chan *Client),
		svc:            app.NewService(nil),
		rng:            rng,
		results:        results,
	}
}

// generateTableCode creates a unique alphanumeric table code.
func (h *Hub) generateTableCode() string {
	const letters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	for {
		var sb strings.Builder
		for i := 0; i < tableCodeLength; i++ {
			sb.WriteByte(letters[h.rng.Intn(len(letters))])
		}
		code := sb.String()

		h.tableMu.RLock()
		_, exists := h.tables[code]
		h.tableMu.RUnlock()
		if !exists {
			return code
		}
	}
}

// Run starts the Hub's main loop.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			client.ID = uuid.NewString()
			log.Printf("Client %s connected", client.ID)
			h.clientMu.Lock()
			h.clients[client] = true
			h.clientMu.Unlock()

		case client := <-h.unregister:
			h.removeClient(client)

		case clientMsg := <-h.processMessage:
			h.handleMessage(clientMsg.client, clientMsg.message)
		}
	}
}

func (h *Hub) removeClient(client *Client) {
	h.clientMu.Lock()
	code, seated := h.clientToTable[client]
	if _, exists := h.clients[client]; exists {
		delete(h.clients, client)
		delete(h.clientToTable, client)
		close(client.send)
		log.Printf("Client %s (%s) disconnected", client.ID, client.Name)
	}
	h.clientMu.Unlock()

	if !seated {
		return
	}

	h.tableMu.Lock()
	t, exists := h.tables[code]
	if !exists {
		h.tableMu.Unlock()
		return
	}

	if t.started() {
		// A running game cannot continue with a missing seat.
		log.Printf("Client %s left running table %s; closing it.", client.ID, code)
		delete(h.tables, code)
		h.tableMu.Unlock()
		h.teardownTable(t, client)
		return
	}

	remaining := make([]*Client, 0, len(t.clients))
	for _, c := range t.clients {
		if c != client {
			remaining = append(remaining, c)
		}
	}
	if len(remaining) == 0 {
		delete(h.tables, code)
		h.tableMu.Unlock()
		return
	}
	t.clients = remaining
	h.tableMu.Unlock()

	h.broadcastLobbyUpdate(t)
}

// teardownTable detaches every remaining client of a dead table.
func (h *Hub) teardownTable(t *table, gone *Client) {
	msgBytes, _ := protocol.NewMessage("player_left", protocol.ErrorPayload{Message: "a player disconnected, table closed"})

	h.clientMu.Lock()
	for _, c := range t.clients {
		if c == gone {
			continue
		}
		delete(h.clientToTable, c)
	}
	h.clientMu.Unlock()

	for _, c := range t.clients {
		if c != gone {
			h.trySend(c, msgBytes)
		}
	}
}

func (h *Hub) handleMessage(client *Client, msg protocol.Message) {
	switch msg.Type {
	case "create_table":
		h.handleCreateTable(client, msg)
	case "join_table":
		h.handleJoinTable(client, msg)
	case "play_cards":
		h.handlePlayCards(client, msg)
	case "pass_turn":
		h.handlePassTurn(client)
	case "bid":
		h.handleBid(client, msg)
	case "discard":
		h.handleDiscard(client, msg)
	case "exchange":
		h.handleExchange(client, msg)
	case "next_round":
		h.handleNextRound(client)
	case "ping":
		pongMsg, _ := protocol.NewMessage("pong", nil)
		h.trySend(client, pongMsg)
	default:
		log.Printf("Received unknown message type '%s' from client %s", msg.Type, client.ID)
		h.sendError(client, "Unknown message type.")
	}
}

func (h *Hub) handleCreateTable(client *Client, msg protocol.Message) {
	h.clientMu.RLock()
	_, seated := h.clientToTable[client]
	h.clientMu.RUnlock()
	if seated {
		h.sendError(client, "Already at a table.")
		return
	}

	var payload protocol.CreateTablePayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		h.sendError(client, "Invalid create_table message format.")
		return
	}
	if payload.Name == "" {
		h.sendError(client, "Name cannot be empty.")
		return
	}

	size := payload.Size
	switch payload.Game {
	case "euchre":
		size = app.EuchreSeats
	case "president":
		if size < president.MinPlayers {
			size = president.MinPlayers
		}
		if size > president.MaxPlayers {
			size = president.MaxPlayers
		}
	default:
		h.sendError(client, "Unknown game kind.")
		return
	}

	code := h.generateTableCode()
	client.Name = payload.Name

	t := &table{code: code, game: payload.Game, size: size, clients: []*Client{client}}

	h.tableMu.Lock()
	h.tables[code] = t
	h.tableMu.Unlock()

	h.clientMu.Lock()
	h.clientToTable[client] = code
	h.clientMu.Unlock()

	log.Printf("Client %s (%s) created %s table %s", client.ID, client.Name, payload.Game, code)

	createdMsg, _ := protocol.NewMessage("table_created", protocol.TableCreatedPayload{TableCode: code})
	h.trySend(client, createdMsg)
	h.broadcastLobbyUpdate(t)
}

func (h *Hub) handleJoinTable(client *Client, msg protocol.Message) {
	h.clientMu.RLock()
	_, seated := h.clientToTable[client]
	h.clientMu.RUnlock()
	if seated {
		h.sendJoinError(client, "Already at a table.")
		return
	}

	var payload protocol.JoinTablePayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		h.sendJoinError(client, "Invalid join_table message format.")
		return
	}
	if payload.Name == "" {
		h.sendJoinError(client, "Name cannot be empty.")
		return
	}
	code := strings.ToUpper(payload.TableCode)

	h.tableMu.Lock()
	t, exists := h.tables[code]
	if !exists {
		h.tableMu.Unlock()
		h.sendJoinError(client, "Table code not found.")
		return
	}
	if t.started() {
		h.tableMu.Unlock()
		h.sendJoinError(client, "Game already started.")
		return
	}
	if len(t.clients) >= t.size {
		h.tableMu.Unlock()
		h.sendJoinError(client, "Table is full.")
		return
	}
	for _, existing := range t.clients {
		if existing.Name == payload.Name {
			h.tableMu.Unlock()
			h.sendJoinError(client, "Name already taken at this table.")
			return
		}
	}

	client.Name = payload.Name
	t.clients = append(t.clients, client)
	full := len(t.clients) == t.size
	h.tableMu.Unlock()

	h.clientMu.Lock()
	h.clientToTable[client] = code
	h.clientMu.Unlock()

	log.Printf("Client %s (%s) joined table %s (%d/%d)", client.ID, client.Name, code, len(t.clients), t.size)
	h.broadcastLobbyUpdate(t)

	if full {
		h.startTable(t)
	}
}

// startTable deals the game once every seat is taken.
func (h *Hub) startTable(t *table) {
	cfg := config.GetGameConfig()
	userIDs := make([]string, len(t.clients))
	for i, c := range t.clients {
		userIDs[i] = c.ID
	}

	var events []app.Event
	var err error
	switch t.game {
	case "president":
		rules := president.Rules{
			SuperTwos:    cfg.President.SuperTwos,
			WithJokers:   cfg.President.WithJokers,
			TargetRounds: cfg.President.TargetRounds,
		}
		t.president, events, err = h.svc.StartPresident(userIDs, rules)
	case "euchre":
		rules := euchre.Rules{
			StickTheDealer: cfg.Euchre.StickTheDealer,
			TargetScore:    cfg.Euchre.TargetScore,
		}
		var ids [app.EuchreSeats]string
		copy(ids[:], userIDs)
		t.euchre, events, err = h.svc.StartEuchre(ids, rules)
	}
	if err != nil {
		log.Printf("startTable: failed to start %s table %s: %v", t.game, t.code, err)
		errMsg, _ := protocol.NewMessage("error", protocol.ErrorPayload{Message: "Failed to start game."})
		for _, c := range t.clients {
			h.trySend(c, errMsg)
		}
		return
	}

	log.Printf("Table %s started (%s, %d players)", t.code, t.game, len(t.clients))
	h.dispatchEvents(t, events)
}

func (h *Hub) tableFor(client *Client) (*table, int, bool) {
	h.clientMu.RLock()
	code, seated := h.clientToTable[client]
	h.clientMu.RUnlock()
	if !seated {
		return nil, -1, false
	}

	h.tableMu.RLock()
	t, exists := h.tables[code]
	h.tableMu.RUnlock()
	if !exists || !t.started() {
		return nil, -1, false
	}
	return t, t.seatOf(client.ID), true
}

func (h *Hub) handlePlayCards(client *Client, msg protocol.Message) {
	t, seat, ok := h.tableFor(client)
	if !ok {
		h.sendError(client, "You are not in an active game.")
		return
	}

	var payload protocol.PlayCardsPayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		h.sendError(client, "Invalid play_cards message format.")
		return
	}

	var events []app.Event
	var err error
	switch t.game {
	case "president":
		events, err = h.svc.PlayPresidentCards(t.president, seat, payload.Cards)
	case "euchre":
		if len(payload.Cards) != 1 {
			h.sendError(client, "Exactly one card per trick play.")
			return
		}
		events, err = h.svc.PlayEuchreCard(t.euchre, seat, payload.Cards[0])
	}
	if err != nil {
		h.sendError(client, err.Error())
		return
	}
	h.dispatchEvents(t, events)
}

func (h *Hub) handlePassTurn(client *Client) {
	t, seat, ok := h.tableFor(client)
	if !ok {
		h.sendError(client, "You are not in an active game.")
		return
	}
	if t.game != "president" {
		h.sendError(client, "Passing a turn is a president action.")
		return
	}

	events, err := h.svc.PassPresidentTurn(t.president, seat)
	if err != nil {
		h.sendError(client, err.Error())
		return
	}
	h.dispatchEvents(t, events)
}

func (h *Hub) handleBid(client *Client, msg protocol.Message) {
	t, seat, ok := h.tableFor(client)
	if !ok || t.game != "euchre" {
		h.sendError(client, "You are not in an active euchre game.")
		return
	}

	var payload protocol.BidPayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		h.sendError(client, "Invalid bid message format.")
		return
	}

	var events []app.Event
	var err error
	switch payload.Action {
	case "order_up":
		events, err = h.svc.OrderUp(t.euchre, seat, payload.Alone)
	case "call":
		events, err = h.svc.CallTrump(t.euchre, seat, payload.Suit, payload.Alone)
	case "pass":
		events, err = h.svc.PassEuchreBid(t.euchre, seat)
	default:
		h.sendError(client, "Unknown bid action.")
		return
	}
	if err != nil {
		h.sendError(client, err.Error())
		return
	}
	h.dispatchEvents(t, events)
}

func (h *Hub) handleDiscard(client *Client, msg protocol.Message) {
	t, seat, ok := h.tableFor(client)
	if !ok || t.game != "euchre" {
		h.sendError(client, "You are not in an active euchre game.")
		return
	}
	if seat != t.euchre.Game.Round.Dealer {
		h.sendError(client, "Only the dealer discards.")
		return
	}

	var payload protocol.DiscardPayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		h.sendError(client, "Invalid discard message format.")
		return
	}

	events, err := h.svc.DiscardEuchre(t.euchre, payload.Card)
	if err != nil {
		h.sendError(client, err.Error())
		return
	}
	h.dispatchEvents(t, events)
}

func (h *Hub) handleExchange(client *Client, msg protocol.Message) {
	t, seat, ok := h.tableFor(client)
	if !ok || t.game != "president" {
		h.sendError(client, "You are not in an active president game.")
		return
	}

	var payload protocol.ExchangePayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		h.sendError(client, "Invalid exchange message format.")
		return
	}

	events, err := h.svc.SubmitPresidentExchange(t.president, seat, payload.Cards)
	if err != nil {
		h.sendError(client, err.Error())
		return
	}
	h.dispatchEvents(t, events)
}

func (h *Hub) handleNextRound(client *Client) {
	t, _, ok := h.tableFor(client)
	if !ok || t.game != "president" {
		h.sendError(client, "You are not in an active president game.")
		return
	}

	events, err := h.svc.StartNextPresidentRound(t.president)
	if err != nil {
		h.sendError(client, err.Error())
		return
	}
	h.dispatchEvents(t, events)
}

// dispatchEvents fans app events out to the table, honoring targeted
// recipients, and persists finished games.
func (h *Hub) dispatchEvents(t *table, events []app.Event) {
	ended := false
	for _, ev := range events {
		if ev.Kind == app.EventGameEnded {
			h.saveResult(t)
			ended = true
		}

		msgBytes, err := protocol.NewMessage(string(ev.Kind), ev.Payload)
		if err != nil {
			log.Printf("dispatchEvents: failed to marshal %s: %v", ev.Kind, err)
			continue
		}

		if len(ev.Recipients) == 0 {
			for _, c := range t.clients {
				h.trySend(c, msgBytes)
			}
			continue
		}
		for _, uid := range ev.Recipients {
			for _, c := range t.clients {
				if c.ID == uid {
					h.trySend(c, msgBytes)
				}
			}
		}
	}

	if ended {
		h.closeTable(t)
	}
}

// closeTable removes a finished table and frees its players for a new one.
func (h *Hub) closeTable(t *table) {
	h.tableMu.Lock()
	delete(h.tables, t.code)
	h.tableMu.Unlock()

	h.clientMu.Lock()
	for _, c := range t.clients {
		delete(h.clientToTable, c)
	}
	h.clientMu.Unlock()

	log.Printf("Table %s finished and closed", t.code)
}

func (h *Hub) saveResult(t *table) {
	if h.results == nil {
		return
	}

	rec := ports.ResultRecord{Game: t.game}
	for _, c := range t.clients {
		rec.Players = append(rec.Players, c.Name)
	}
	switch t.game {
	case "president":
		rec.WinnerSeat = t.president.Winner
		rec.Rounds = t.president.RoundsPlayed
	case "euchre":
		rec.WinnerSeat = t.euchre.Game.Winner
		rec.TeamScores = t.euchre.Game.Scores
	}

	if err := h.results.SaveResult(context.Background(), rec); err != nil {
		log.Printf("saveResult: table %s: %v", t.code, err)
	}
}

func (h *Hub) broadcastLobbyUpdate(t *table) {
	playerInfos := make([]protocol.PlayerInfo, len(t.clients))
	for i, c := range t.clients {
		playerInfos[i] = protocol.PlayerInfo{ID: c.ID, Name: c.Name, Seat: i}
	}
	payload := protocol.LobbyUpdatePayload{
		TableCode: t.code,
		Game:      t.game,
		Size:      t.size,
		Players:   playerInfos,
	}
	msgBytes, err := protocol.NewMessage("lobby_update", payload)
	if err != nil {
		log.Printf("broadcastLobbyUpdate: table %s: %v", t.code, err)
		return
	}
	for _, c := range t.clients {
		h.trySend(c, msgBytes)
	}
}

// trySend performs a non-blocking send; a blocked channel unregisters the
// client.
func (h *Hub) trySend(client *Client, message []byte) {
	select {
	case client.send <- message:
	default:
		log.Printf("Failed to send message to client %s (channel full or closed)", client.ID)
		go func() {
			h.clientMu.RLock()
			_, stillConnected := h.clients[client]
			h.clientMu.RUnlock()
			if stillConnected {
				h.unregister <- client
			}
		}()
	}
}

func (h *Hub) sendError(client *Client, errorMsg string) {
	msgBytes, err := protocol.NewMessage("error", protocol.ErrorPayload{Message: errorMsg})
	if err != nil {
		return
	}
	h.trySend(client, msgBytes)
}

func (h *Hub) sendJoinError(client *Client, errorMsg string) {
	msgBytes, err := protocol.NewMessage("join_error", protocol.JoinErrorPayload{Message: errorMsg})
	if err != nil {
		return
	}
	h.trySend(client, msgBytes)
}
