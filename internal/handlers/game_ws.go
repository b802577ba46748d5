package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/dividing-by-zaro/ugg-poetry/internal/game"
	"github.com/dividing-by-zaro/ugg-poetry/internal/middleware"
)

// clientMessage is the envelope for every inbound command. Fields beyond Type
// are optional and only read by the commands that use them.
type clientMessage struct {
	Type         string `json:"type"`
	Username     string `json:"username,omitempty"`
	RoomCode     string `json:"roomCode,omitempty"`
	Team         string `json:"team,omitempty"`
	TimerSeconds int    `json:"timerSeconds,omitempty"`
	TotalRounds  int    `json:"totalRounds,omitempty"`
}

// WSHandler upgrades the HTTP connection, assigns it a transient connection
// id, and runs the read loop until the client goes away. Disconnect teardown
// is unconditional so a drop at any moment leaves the registry and timer maps
// consistent.
func WSHandler(logger *logrus.Logger, gs *GameServer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			OriginPatterns: []string{"*"}, // Adjust for production security.
		})
		if err != nil {
			logger.Warnf("WebSocket accept error: %v", err)
			return
		}
		defer c.Close(websocket.StatusInternalError, "Internal server error during handler exit.")

		connID := uuid.New()
		middleware.LogSocketConnect(logger, connID, r.RemoteAddr)

		gs.registerConn(connID, c)
		defer func() {
			gs.unregisterConn(connID)
			gs.Disconnect(connID)
		}()

		ctx, cancel := context.WithCancel(r.Context())
		defer cancel()

		readErr := readMessages(ctx, c, gs, connID, logger)
		middleware.LogSocketDisconnect(logger, connID, readErr)
	}
}

// readMessages reads and dispatches commands until the connection closes or
// the context is cancelled. Returns the error that ended the loop, or nil for
// a normal closure.
func readMessages(ctx context.Context, c *websocket.Conn, gs *GameServer, connID uuid.UUID, logger *logrus.Logger) error {
	for {
		msgType, data, err := c.Read(ctx)
		if err != nil {
			status := websocket.CloseStatus(err)
			if status == websocket.StatusNormalClosure || status == websocket.StatusGoingAway ||
				strings.Contains(err.Error(), "context canceled") {
				return nil
			}
			return err
		}
		if msgType != websocket.MessageText {
			logger.Warnf("Ignoring non-text message from conn %s", connID)
			continue
		}

		var msg clientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			logger.Warnf("Invalid JSON from conn %s: %v", connID, err)
			gs.sendError(connID, "Invalid JSON format.")
			continue
		}

		logger.Debugf("conn %s -> %s", connID, msg.Type)

		switch msg.Type {
		case "create-room":
			gs.CreateRoom(connID, msg.Username)
		case "join-room":
			gs.JoinRoom(connID, msg.RoomCode, msg.Username)
		case "pick-team":
			gs.PickTeam(connID, msg.Team)
		case "start-game":
			gs.StartGame(connID, msg.TimerSeconds, msg.TotalRounds)
		case "score-partial":
			gs.ScorePartial(connID)
		case "score-full":
			gs.ScoreFull(connID)
		case "pass":
			gs.Pass(connID)
		case "bonk":
			gs.Bonk(connID)
		case "next-turn":
			gs.NextTurn(connID)
		case "request-state":
			gs.RequestState(connID)
		case "reset-game":
			gs.ResetGame(connID)
		default:
			logger.Warnf("Unknown command %q from conn %s", msg.Type, connID)
			gs.sendError(connID, "Unknown command: "+msg.Type)
		}

		select {
		case <-ctx.Done():
			return nil
		default:
		}
	}
}

func (gs *GameServer) registerConn(connID uuid.UUID, c *websocket.Conn) {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	gs.conns[connID] = c
}

func (gs *GameServer) unregisterConn(connID uuid.UUID) {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	delete(gs.conns, connID)
}

// writeToConn is the default Send implementation: marshal once and write
// asynchronously with a timeout so a slow client never blocks game logic.
func (gs *GameServer) writeToConn(connID uuid.UUID, ev game.Event) {
	gs.mu.Lock()
	c, ok := gs.conns[connID]
	gs.mu.Unlock()
	if !ok {
		return
	}

	data, err := json.Marshal(ev)
	if err != nil {
		gs.logger.Errorf("Failed to marshal %s event for conn %s: %v", ev.Type, connID, err)
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := c.Write(ctx, websocket.MessageText, data); err != nil {
			gs.logger.Warnf("Failed to write %s event to conn %s: %v", ev.Type, connID, err)
		}
	}()
}
