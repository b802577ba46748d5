package game

import (
	"time"

	"github.com/google/uuid"

	"github.com/dividing-by-zaro/ugg-poetry/internal/models"
)

// ClientView is the client-visible subset of a session's state. The deck and
// the card in play are stripped entirely; card delivery goes through the
// targeted card-revealed push instead. Only IsHost varies per recipient.
type ClientView struct {
	RoomCode         string          `json:"roomCode"`
	Phase            models.Phase    `json:"phase"`
	Players          []models.Player `json:"players"`
	Scores           models.Scores   `json:"scores"`
	ActiveTeam       models.Team     `json:"activeTeam"`
	CurrentClueGiver *string         `json:"currentClueGiver"`
	TimerSeconds     int             `json:"timerSeconds"`
	SecondsLeft      *int            `json:"secondsLeft"`
	RoundNumber      int             `json:"roundNumber"`
	TotalRounds      int             `json:"totalRounds"`
	HostUsername     string          `json:"hostUsername"`
	IsHost           bool            `json:"isHost"`
}

// ClientState projects the session for one recipient. now feeds the derived
// seconds-left value; SecondsLeft is null when no countdown is armed.
func (s *Session) ClientState(forConn uuid.UUID, now time.Time) ClientView {
	s.Mu.Lock()
	defer s.Mu.Unlock()

	view := ClientView{
		RoomCode:     s.RoomCode,
		Phase:        s.Phase,
		Players:      make([]models.Player, len(s.Players)),
		Scores:       s.Scores,
		ActiveTeam:   s.ActiveTeam,
		TimerSeconds: s.TimerSeconds,
		RoundNumber:  s.RoundNumber,
		TotalRounds:  s.TotalRounds,
		IsHost:       forConn == s.HostConnID,
	}
	for i, p := range s.Players {
		view.Players[i] = *p
	}

	if s.Phase == models.PhasePlaying || s.Phase == models.PhaseBetweenTurns {
		if giver := s.clueGiver(); giver != nil {
			name := giver.Username
			view.CurrentClueGiver = &name
		}
	}
	if host := s.player(s.HostConnID); host != nil {
		view.HostUsername = host.Username
	}
	if !s.TimerEndTime.IsZero() {
		left := remainingSeconds(s.TimerEndTime, now)
		view.SecondsLeft = &left
	}
	return view
}
