package game

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dividing-by-zaro/ugg-poetry/internal/models"
)

// Default game settings applied when the host starts without overrides.
const (
	DefaultTimerSeconds = 60
	DefaultTotalRounds  = 10
)

// Session holds the entire authoritative state for a single room in memory.
// All mutations are serialized through Mu: exported command methods lock, run
// their guard-check-then-mutate sequence, and return result snapshots so that
// broadcasting always observes fully committed state. Lowercase helpers assume
// the lock is held.
type Session struct {
	RoomCode string

	Mu sync.Mutex

	Phase   models.Phase
	Players []*models.Player
	Scores  models.Scores

	ActiveTeam     models.Team
	ClueGiverIndex map[models.Team]int
	CurrentCard    *models.Card
	Deck           []models.Card

	TimerSeconds int
	TimerEndTime time.Time

	RoundNumber int
	TotalRounds int

	HostConnID uuid.UUID
}

// NewSession builds a lobby-phase session with the creator as sole player and
// host. Called by the registry, which owns code allocation.
func NewSession(roomCode string, hostConnID uuid.UUID, username string) *Session {
	return &Session{
		RoomCode: roomCode,
		Phase:    models.PhaseLobby,
		Players: []*models.Player{
			{ConnID: hostConnID, Username: username, Team: models.TeamNone},
		},
		ClueGiverIndex: map[models.Team]int{models.TeamRed: 0, models.TeamBlue: 0},
		ActiveTeam:     models.TeamRed,
		TimerSeconds:   DefaultTimerSeconds,
		TotalRounds:    DefaultTotalRounds,
		HostConnID:     hostConnID,
	}
}

// ScoreResult is the outcome of a successful scoring action.
type ScoreResult struct {
	Scores models.Scores
	Points int
	By     string
}

// TurnResult describes the transition produced by EndTurn. Ended is false if
// the session was no longer playing when the turn expiry arrived (stale timer).
type TurnResult struct {
	Ended         bool
	GameOver      bool
	Scores        models.Scores
	NextClueGiver string
	NextTeam      models.Team
	RoundNumber   int
	Winner        string
}

// PickTeam assigns the acting player to a team. Lobby phase only.
func (s *Session) PickTeam(connID uuid.UUID, team models.Team) error {
	s.Mu.Lock()
	defer s.Mu.Unlock()

	if s.Phase != models.PhaseLobby {
		return ErrPhaseMismatch
	}
	p := s.player(connID)
	if p == nil {
		return ErrNotInRoom
	}
	p.Team = team
	return nil
}

// Start begins the game: host-only, lobby-only, both teams populated. Resets
// scores and rotation, deals a fresh deck, and draws the first card. Values
// <= 0 fall back to the defaults; clamping to suggested bounds is the
// boundary's job.
func (s *Session) Start(connID uuid.UUID, timerSeconds, totalRounds int) error {
	s.Mu.Lock()
	defer s.Mu.Unlock()

	if connID != s.HostConnID {
		return ErrNotAuthorized
	}
	if s.Phase != models.PhaseLobby {
		return ErrPhaseMismatch
	}
	if len(s.teamPlayers(models.TeamRed)) == 0 || len(s.teamPlayers(models.TeamBlue)) == 0 {
		return ErrInsufficientTeams
	}

	if timerSeconds <= 0 {
		timerSeconds = DefaultTimerSeconds
	}
	if totalRounds <= 0 {
		totalRounds = DefaultTotalRounds
	}

	s.TimerSeconds = timerSeconds
	s.TotalRounds = totalRounds
	s.Scores = models.Scores{}
	s.ActiveTeam = models.TeamRed
	s.ClueGiverIndex = map[models.Team]int{models.TeamRed: 0, models.TeamBlue: 0}
	s.RoundNumber = 1
	s.Deck = shuffledDeck()
	s.Phase = models.PhasePlaying
	s.drawCard()
	return nil
}

// ScorePartial awards 1 point to the active team and draws the next card.
// Only the current clue-giver may call it.
func (s *Session) ScorePartial(connID uuid.UUID) (ScoreResult, error) {
	return s.score(connID, 1)
}

// ScoreFull awards 3 points to the active team and draws the next card.
func (s *Session) ScoreFull(connID uuid.UUID) (ScoreResult, error) {
	return s.score(connID, 3)
}

func (s *Session) score(connID uuid.UUID, points int) (ScoreResult, error) {
	s.Mu.Lock()
	defer s.Mu.Unlock()

	if s.Phase != models.PhasePlaying {
		return ScoreResult{}, ErrPhaseMismatch
	}
	giver := s.clueGiver()
	if giver == nil || giver.ConnID != connID {
		return ScoreResult{}, ErrNotAuthorized
	}

	*s.Scores.ForTeam(s.ActiveTeam) += points
	s.drawCard()
	return ScoreResult{Scores: s.Scores, Points: points, By: giver.Username}, nil
}

// Pass skips the current card without scoring and draws the next one. Same
// guard as scoring.
func (s *Session) Pass(connID uuid.UUID) error {
	s.Mu.Lock()
	defer s.Mu.Unlock()

	if s.Phase != models.PhasePlaying {
		return ErrPhaseMismatch
	}
	giver := s.clueGiver()
	if giver == nil || giver.ConnID != connID {
		return ErrNotAuthorized
	}
	s.drawCard()
	return nil
}

// Bonk validates the advisory signal from an opposing-team player and returns
// the signaler's username. No state is mutated; delivery is the boundary's job.
func (s *Session) Bonk(connID uuid.UUID) (string, error) {
	s.Mu.Lock()
	defer s.Mu.Unlock()

	if s.Phase != models.PhasePlaying {
		return "", ErrPhaseMismatch
	}
	p := s.player(connID)
	if p == nil {
		return "", ErrNotInRoom
	}
	if p.Team == s.ActiveTeam {
		return "", ErrNotAuthorized
	}
	return p.Username, nil
}

// StartNextTurn resumes play from between_turns: host-only. Draws the next
// card; the boundary re-arms the timer afterwards.
func (s *Session) StartNextTurn(connID uuid.UUID) error {
	s.Mu.Lock()
	defer s.Mu.Unlock()

	if s.Phase != models.PhaseBetweenTurns {
		return ErrPhaseMismatch
	}
	if connID != s.HostConnID {
		return ErrNotAuthorized
	}
	s.Phase = models.PhasePlaying
	s.drawCard()
	return nil
}

// EndTurn performs the timer-driven turn transition: advances the rotation for
// the team that just played, flips the active team, counts a completed round
// when Blue hands back to Red, and either parks the session between turns or
// ends the game once the round counter passes the target.
func (s *Session) EndTurn() TurnResult {
	s.Mu.Lock()
	defer s.Mu.Unlock()

	if s.Phase != models.PhasePlaying {
		return TurnResult{}
	}

	s.ClueGiverIndex[s.ActiveTeam]++
	previous := s.ActiveTeam
	s.ActiveTeam = previous.Opponent()
	if previous == models.TeamBlue {
		s.RoundNumber++
	}

	gameOver := s.RoundNumber > s.TotalRounds
	if gameOver {
		s.Phase = models.PhaseGameOver
	} else {
		s.Phase = models.PhaseBetweenTurns
	}
	s.CurrentCard = nil
	s.TimerEndTime = time.Time{}

	// An abandoned team yields an empty next clue-giver rather than a crash;
	// the modulus is guarded so rotation state stays valid either way.
	next := s.teamPlayers(s.ActiveTeam)
	nextName := ""
	if len(next) > 0 {
		nextName = next[s.ClueGiverIndex[s.ActiveTeam]%len(next)].Username
	}

	res := TurnResult{
		Ended:         true,
		GameOver:      gameOver,
		Scores:        s.Scores,
		NextClueGiver: nextName,
		NextTeam:      s.ActiveTeam,
		RoundNumber:   s.RoundNumber,
	}
	if gameOver {
		switch {
		case s.Scores.Red > s.Scores.Blue:
			res.Winner = string(models.TeamRed)
		case s.Scores.Blue > s.Scores.Red:
			res.Winner = string(models.TeamBlue)
		default:
			res.Winner = "tie"
		}
	}
	return res
}

// Reset returns the room to the lobby so the same group can play again.
// Host-only, valid from any phase. The boundary clears any live countdown.
func (s *Session) Reset(connID uuid.UUID) error {
	s.Mu.Lock()
	defer s.Mu.Unlock()

	if connID != s.HostConnID {
		return ErrNotAuthorized
	}

	s.Phase = models.PhaseLobby
	s.Scores = models.Scores{}
	s.ActiveTeam = models.TeamRed
	s.ClueGiverIndex = map[models.Team]int{models.TeamRed: 0, models.TeamBlue: 0}
	s.CurrentCard = nil
	s.Deck = nil
	s.TimerEndTime = time.Time{}
	s.RoundNumber = 0
	return nil
}

// CurrentClueGiver returns the player currently allowed to score or pass, or
// nil when the active team has no players.
func (s *Session) CurrentClueGiver() *models.Player {
	s.Mu.Lock()
	defer s.Mu.Unlock()
	return s.clueGiver()
}

// RevealTargets exposes the card-visibility policy: the clue-giver and every
// opposing-team player receive the card in play through a targeted push; the
// active team's guessers never do. ok is false when there is no card or no
// eligible clue-giver.
func (s *Session) RevealTargets() (models.Card, []uuid.UUID, bool) {
	s.Mu.Lock()
	defer s.Mu.Unlock()

	if s.CurrentCard == nil {
		return models.Card{}, nil, false
	}
	giver := s.clueGiver()
	if giver == nil {
		return models.Card{}, nil, false
	}

	targets := []uuid.UUID{giver.ConnID}
	for _, p := range s.teamPlayers(s.ActiveTeam.Opponent()) {
		targets = append(targets, p.ConnID)
	}
	return *s.CurrentCard, targets, true
}

// PlayersSnapshot returns a copy of the roster in join order.
func (s *Session) PlayersSnapshot() []models.Player {
	s.Mu.Lock()
	defer s.Mu.Unlock()

	out := make([]models.Player, len(s.Players))
	for i, p := range s.Players {
		out[i] = *p
	}
	return out
}

// addPlayer appends a new unassigned player. Caller must hold Mu.
func (s *Session) addPlayer(connID uuid.UUID, username string) {
	s.Players = append(s.Players, &models.Player{
		ConnID:   connID,
		Username: username,
		Team:     models.TeamNone,
	})
}

// removePlayer deletes the player for connID, reassigning host privilege to
// the earliest remaining joiner if the host left. Returns the removed
// username and whether the room is now empty. Caller must hold Mu.
func (s *Session) removePlayer(connID uuid.UUID) (string, bool, bool) {
	idx := -1
	for i, p := range s.Players {
		if p.ConnID == connID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return "", false, false
	}

	username := s.Players[idx].Username
	s.Players = append(s.Players[:idx], s.Players[idx+1:]...)

	if s.HostConnID == connID && len(s.Players) > 0 {
		s.HostConnID = s.Players[0].ConnID
	}
	return username, true, len(s.Players) == 0
}

// player finds a roster entry by connection. Caller must hold Mu.
func (s *Session) player(connID uuid.UUID) *models.Player {
	for _, p := range s.Players {
		if p.ConnID == connID {
			return p
		}
	}
	return nil
}

// hasUsername reports whether a different connection already holds the
// username, case-insensitively. Caller must hold Mu.
func (s *Session) hasUsername(username string, except uuid.UUID) bool {
	for _, p := range s.Players {
		if p.ConnID != except && strings.EqualFold(p.Username, username) {
			return true
		}
	}
	return false
}

// teamPlayers returns the members of one team in join order. Caller must hold Mu.
func (s *Session) teamPlayers(team models.Team) []*models.Player {
	var out []*models.Player
	for _, p := range s.Players {
		if p.Team == team {
			out = append(out, p)
		}
	}
	return out
}

// clueGiver resolves the rotating clue-giver for the active team, or nil when
// that team is empty. Caller must hold Mu.
func (s *Session) clueGiver() *models.Player {
	team := s.teamPlayers(s.ActiveTeam)
	if len(team) == 0 {
		return nil
	}
	return team[s.ClueGiverIndex[s.ActiveTeam]%len(team)]
}
