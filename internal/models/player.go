package models

import (
	"encoding/json"

	"github.com/google/uuid"
)

// Team identifies one of the two sides. The zero value means the player has
// not picked a team yet (lobby only).
type Team string

const (
	TeamNone Team = ""
	TeamRed  Team = "red"
	TeamBlue Team = "blue"
)

// Opponent returns the other team. TeamNone has no opponent.
func (t Team) Opponent() Team {
	switch t {
	case TeamRed:
		return TeamBlue
	case TeamBlue:
		return TeamRed
	}
	return TeamNone
}

// MarshalJSON emits null for an unpicked team; clients treat the team field
// as nullable, not as an empty string.
func (t Team) MarshalJSON() ([]byte, error) {
	if t == TeamNone {
		return []byte("null"), nil
	}
	return json.Marshal(string(t))
}

// Player is one connected participant in a room. ConnID is the transient
// per-socket identifier; it is never sent to clients.
type Player struct {
	ConnID   uuid.UUID `json:"-"`
	Username string    `json:"username"`
	Team     Team      `json:"team"`
}
