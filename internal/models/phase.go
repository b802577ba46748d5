package models

// Phase is the lifecycle stage of a room.
type Phase string

const (
	PhaseLobby        Phase = "lobby"
	PhasePlaying      Phase = "playing"
	PhaseBetweenTurns Phase = "between_turns"
	PhaseGameOver     Phase = "game_over"
)

// Scores holds both teams' running totals.
type Scores struct {
	Red  int `json:"red"`
	Blue int `json:"blue"`
}

// ForTeam returns a pointer to the named team's counter, or nil for TeamNone.
func (s *Scores) ForTeam(t Team) *int {
	switch t {
	case TeamRed:
		return &s.Red
	case TeamBlue:
		return &s.Blue
	}
	return nil
}
