package handlers

import (
	"errors"
	"strings"
	"sync"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/dividing-by-zaro/ugg-poetry/internal/config"
	"github.com/dividing-by-zaro/ugg-poetry/internal/game"
	"github.com/dividing-by-zaro/ugg-poetry/internal/models"
)

// GameServer orchestrates inbound commands against the core: it resolves the
// acting connection's session through the registry, applies the command, and
// delivers the resulting events. The mutation inside the session is the
// transaction boundary; every payload sent here is computed from state the
// session has already committed.
type GameServer struct {
	Registry *game.Registry
	Timers   *game.TimerManager

	logger *logrus.Logger
	cfg    config.Config
	clock  game.Clock

	mu    sync.Mutex
	conns map[uuid.UUID]*websocket.Conn

	// Send delivers one event to one connection. Fire-and-forget relative to
	// state transitions; replaced wholesale in tests.
	Send func(connID uuid.UUID, ev game.Event)
}

// NewGameServer wires the registry, the timer manager and the default
// websocket send path together.
func NewGameServer(logger *logrus.Logger, cfg config.Config, clock game.Clock) *GameServer {
	gs := &GameServer{
		Registry: game.NewRegistry(),
		logger:   logger,
		cfg:      cfg,
		clock:    clock,
		conns:    make(map[uuid.UUID]*websocket.Conn),
	}
	gs.Timers = game.NewTimerManager(clock, logger, gs.handleTimerTick, gs.handleTimerExpiry)
	gs.Send = gs.writeToConn
	return gs
}

// CreateRoom handles the create-room command.
func (gs *GameServer) CreateRoom(connID uuid.UUID, username string) {
	username = strings.TrimSpace(username)
	if username == "" {
		gs.sendError(connID, "Username is required")
		return
	}

	s := gs.Registry.CreateRoom(connID, username)
	gs.logger.WithFields(logrus.Fields{"room": s.RoomCode, "username": username}).Info("room created")

	gs.Send(connID, game.Event{Type: game.EventRoomCreated, Data: game.RoomCreatedData{RoomCode: s.RoomCode}})
	gs.broadcastRoomState(s)
}

// JoinRoom handles the join-room command. Rejoining with a connection already
// in the room is idempotent and produces no join notification.
func (gs *GameServer) JoinRoom(connID uuid.UUID, roomCode, username string) {
	username = strings.TrimSpace(username)
	roomCode = strings.TrimSpace(roomCode)
	if username == "" {
		gs.sendError(connID, "Username is required")
		return
	}
	if roomCode == "" {
		gs.sendError(connID, "Room code is required")
		return
	}

	s, rejoined, err := gs.Registry.JoinRoom(roomCode, connID, username)
	if err != nil {
		gs.sendCommandError(connID, err)
		return
	}

	if !rejoined {
		gs.logger.WithFields(logrus.Fields{"room": s.RoomCode, "username": username}).Info("player joined")
		ev := game.Event{Type: game.EventPlayerJoined, Data: game.PlayerJoinedData{Username: username}}
		for _, p := range s.PlayersSnapshot() {
			if p.ConnID != connID {
				gs.Send(p.ConnID, ev)
			}
		}
	}
	gs.broadcastRoomState(s)
}

// PickTeam handles the pick-team command.
func (gs *GameServer) PickTeam(connID uuid.UUID, team string) {
	t, ok := parseTeam(team)
	if !ok {
		gs.sendError(connID, "Invalid team")
		return
	}
	s, ok := gs.Registry.SessionByConn(connID)
	if !ok {
		gs.sendCommandError(connID, game.ErrNotInRoom)
		return
	}
	if err := s.PickTeam(connID, t); err != nil {
		gs.sendCommandError(connID, err)
		return
	}
	gs.broadcastRoomState(s)
}

// StartGame handles the start-game command, clamping host-supplied settings
// to the configured bounds before they reach the core.
func (gs *GameServer) StartGame(connID uuid.UUID, timerSeconds, totalRounds int) {
	s, ok := gs.Registry.SessionByConn(connID)
	if !ok {
		gs.sendCommandError(connID, game.ErrNotInRoom)
		return
	}

	err := s.Start(connID, gs.cfg.ClampTimerSeconds(timerSeconds), gs.cfg.ClampTotalRounds(totalRounds))
	if err != nil {
		gs.sendCommandError(connID, err)
		return
	}

	gs.logger.WithField("room", s.RoomCode).Info("game started")
	gs.broadcastRoomState(s)
	gs.revealCard(s)
	gs.Timers.Arm(s)
}

// ScorePartial handles the score-partial command (+1).
func (gs *GameServer) ScorePartial(connID uuid.UUID) {
	gs.applyScore(connID, func(s *game.Session) (game.ScoreResult, error) {
		return s.ScorePartial(connID)
	})
}

// ScoreFull handles the score-full command (+3).
func (gs *GameServer) ScoreFull(connID uuid.UUID) {
	gs.applyScore(connID, func(s *game.Session) (game.ScoreResult, error) {
		return s.ScoreFull(connID)
	})
}

func (gs *GameServer) applyScore(connID uuid.UUID, score func(*game.Session) (game.ScoreResult, error)) {
	s, ok := gs.Registry.SessionByConn(connID)
	if !ok {
		gs.sendCommandError(connID, game.ErrNotInRoom)
		return
	}
	res, err := score(s)
	if err != nil {
		gs.sendCommandError(connID, err)
		return
	}

	gs.broadcastToRoom(s, game.Event{Type: game.EventScoreUpdate, Data: game.ScoreUpdateData{
		Scores:           res.Scores,
		PointsJustScored: res.Points,
		By:               res.By,
	}})
	gs.revealCard(s)
	gs.broadcastRoomState(s)
}

// Pass handles the pass command: next card, no score change.
func (gs *GameServer) Pass(connID uuid.UUID) {
	s, ok := gs.Registry.SessionByConn(connID)
	if !ok {
		gs.sendCommandError(connID, game.ErrNotInRoom)
		return
	}
	if err := s.Pass(connID); err != nil {
		gs.sendCommandError(connID, err)
		return
	}
	gs.revealCard(s)
	gs.broadcastRoomState(s)
}

// Bonk handles the advisory signal from the opposing team. Broadcast only, no
// state change.
func (gs *GameServer) Bonk(connID uuid.UUID) {
	s, ok := gs.Registry.SessionByConn(connID)
	if !ok {
		gs.sendCommandError(connID, game.ErrNotInRoom)
		return
	}
	by, err := s.Bonk(connID)
	if err != nil {
		gs.sendCommandError(connID, err)
		return
	}
	gs.broadcastToRoom(s, game.Event{Type: game.EventBonkTriggered, Data: game.BonkTriggeredData{By: by}})
}

// NextTurn handles the next-turn command from the host between turns.
func (gs *GameServer) NextTurn(connID uuid.UUID) {
	s, ok := gs.Registry.SessionByConn(connID)
	if !ok {
		gs.sendCommandError(connID, game.ErrNotInRoom)
		return
	}
	if err := s.StartNextTurn(connID); err != nil {
		gs.sendCommandError(connID, err)
		return
	}
	gs.broadcastRoomState(s)
	gs.revealCard(s)
	gs.Timers.Arm(s)
}

// RequestState re-sends the caller's projection, used after reconnect or
// navigation.
func (gs *GameServer) RequestState(connID uuid.UUID) {
	s, ok := gs.Registry.SessionByConn(connID)
	if !ok {
		gs.sendCommandError(connID, game.ErrNotInRoom)
		return
	}
	gs.Send(connID, game.Event{Type: game.EventRoomState, Data: s.ClientState(connID, gs.clock.Now())})
}

// ResetGame returns the room to the lobby for another game. Host only. The
// room's countdown is cleared explicitly since this is a forced transition
// away from playing.
func (gs *GameServer) ResetGame(connID uuid.UUID) {
	s, ok := gs.Registry.SessionByConn(connID)
	if !ok {
		gs.sendCommandError(connID, game.ErrNotInRoom)
		return
	}
	if err := s.Reset(connID); err != nil {
		gs.sendCommandError(connID, err)
		return
	}
	gs.Timers.Clear(s.RoomCode)
	gs.logger.WithField("room", s.RoomCode).Info("room reset to lobby")
	gs.broadcastRoomState(s)
}

// Disconnect tears down a connection's membership. Idempotent; safe to call
// for connections that never joined a room.
func (gs *GameServer) Disconnect(connID uuid.UUID) {
	rem, ok := gs.Registry.RemovePlayer(connID)
	if !ok {
		return
	}
	if rem.RoomClosed {
		gs.Timers.Clear(rem.RoomCode)
		gs.logger.WithField("room", rem.RoomCode).Info("room closed, last player left")
		return
	}

	gs.logger.WithFields(logrus.Fields{"room": rem.RoomCode, "username": rem.Username}).Info("player left")
	gs.broadcastToRoom(rem.Session, game.Event{Type: game.EventPlayerLeft, Data: game.PlayerLeftData{Username: rem.Username}})
	gs.broadcastRoomState(rem.Session)
}

// handleTimerTick relays the once-per-second countdown to the whole room.
func (gs *GameServer) handleTimerTick(s *game.Session, secondsLeft int) {
	gs.broadcastToRoom(s, game.Event{Type: game.EventTimerTick, Data: game.TimerTickData{SecondsLeft: secondsLeft}})
}

// handleTimerExpiry drives the turn transition when a countdown reaches zero:
// end the turn, emit the transition event, then broadcast the refreshed state.
func (gs *GameServer) handleTimerExpiry(s *game.Session) {
	res := s.EndTurn()
	if !res.Ended {
		return
	}

	if res.GameOver {
		gs.logger.WithFields(logrus.Fields{"room": s.RoomCode, "winner": res.Winner}).Info("game over")
		gs.broadcastToRoom(s, game.Event{Type: game.EventGameOver, Data: game.GameOverData{
			Scores: res.Scores,
			Winner: res.Winner,
		}})
	} else {
		gs.broadcastToRoom(s, game.Event{Type: game.EventTurnEnd, Data: game.TurnEndData{
			Scores:        res.Scores,
			NextClueGiver: res.NextClueGiver,
			NextTeam:      res.NextTeam,
			RoundNumber:   res.RoundNumber,
		}})
	}
	gs.broadcastRoomState(s)
}

// broadcastRoomState sends each player their own projection; only the host
// flag differs between recipients.
func (gs *GameServer) broadcastRoomState(s *game.Session) {
	now := gs.clock.Now()
	for _, p := range s.PlayersSnapshot() {
		gs.Send(p.ConnID, game.Event{Type: game.EventRoomState, Data: s.ClientState(p.ConnID, now)})
	}
}

// revealCard pushes the card in play to the clue-giver and the opposing team.
// Active-team guessers are never targets.
func (gs *GameServer) revealCard(s *game.Session) {
	card, targets, ok := s.RevealTargets()
	if !ok {
		return
	}
	ev := game.Event{Type: game.EventCardRevealed, Data: game.CardRevealedData{Partial: card.Partial, Full: card.Full}}
	for _, connID := range targets {
		gs.Send(connID, ev)
	}
}

func (gs *GameServer) broadcastToRoom(s *game.Session, ev game.Event) {
	for _, p := range s.PlayersSnapshot() {
		gs.Send(p.ConnID, ev)
	}
}

// sendCommandError maps a core rejection to the message shown to the acting
// connection. Rejections are never broadcast.
func (gs *GameServer) sendCommandError(connID uuid.UUID, err error) {
	msg := err.Error()
	switch {
	case errors.Is(err, game.ErrRoomNotFound):
		msg = "Room not found"
	case errors.Is(err, game.ErrNameTaken):
		msg = "Username already taken"
	case errors.Is(err, game.ErrNotInRoom):
		msg = "You are not in a room"
	case errors.Is(err, game.ErrInsufficientTeams):
		msg = "Cannot start game. Need at least 1 player per team."
	}
	gs.sendError(connID, msg)
}

func (gs *GameServer) sendError(connID uuid.UUID, msg string) {
	gs.Send(connID, game.Event{Type: game.EventError, Data: game.ErrorData{Message: msg}})
}

func parseTeam(team string) (t models.Team, ok bool) {
	switch strings.ToLower(team) {
	case "red":
		return models.TeamRed, true
	case "blue":
		return models.TeamBlue, true
	}
	return models.TeamNone, false
}
