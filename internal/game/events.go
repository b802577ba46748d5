package game

import "github.com/dividing-by-zaro/ugg-poetry/internal/models"

// EventType names an outbound event on the wire.
type EventType string

const (
	EventRoomCreated   EventType = "room-created"   // creator only
	EventRoomState     EventType = "room-state"     // per player; host flag varies
	EventCardRevealed  EventType = "card-revealed"  // clue-giver + opposing team only
	EventTimerTick     EventType = "timer-tick"     // room-wide, once per second
	EventScoreUpdate   EventType = "score-update"   // room-wide
	EventBonkTriggered EventType = "bonk-triggered" // room-wide
	EventTurnEnd       EventType = "turn-end"       // room-wide
	EventGameOver      EventType = "game-over"      // room-wide
	EventPlayerJoined  EventType = "player-joined"  // room-wide, excluding joiner
	EventPlayerLeft    EventType = "player-left"    // room-wide
	EventError         EventType = "error"          // originating connection only
)

// Event is the envelope every outbound message uses.
type Event struct {
	Type EventType `json:"type"`
	Data any       `json:"data,omitempty"`
}

type RoomCreatedData struct {
	RoomCode string `json:"roomCode"`
}

type CardRevealedData struct {
	Partial string `json:"partial"`
	Full    string `json:"full"`
}

type TimerTickData struct {
	SecondsLeft int `json:"secondsLeft"`
}

type ScoreUpdateData struct {
	Scores           models.Scores `json:"scores"`
	PointsJustScored int           `json:"pointsJustScored"`
	By               string        `json:"by"`
}

type BonkTriggeredData struct {
	By string `json:"by"`
}

type TurnEndData struct {
	Scores        models.Scores `json:"scores"`
	NextClueGiver string        `json:"nextClueGiver"`
	NextTeam      models.Team   `json:"nextTeam"`
	RoundNumber   int           `json:"roundNumber"`
}

type GameOverData struct {
	Scores models.Scores `json:"scores"`
	Winner string        `json:"winner"`
}

type PlayerJoinedData struct {
	Username string `json:"username"`
}

type PlayerLeftData struct {
	Username string `json:"username"`
}

type ErrorData struct {
	Message string `json:"message"`
}
