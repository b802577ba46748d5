package game

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dividing-by-zaro/ugg-poetry/internal/models"
)

// buildSession assembles a lobby with the named players assigned to teams.
// The first red player is the creator and host. Returned map resolves a
// username to its connection id.
func buildSession(t *testing.T, redNames, blueNames []string) (*Session, map[string]uuid.UUID) {
	t.Helper()
	require.NotEmpty(t, redNames)

	ids := make(map[string]uuid.UUID)
	host := uuid.New()
	ids[redNames[0]] = host

	s := NewSession("GAME", host, redNames[0])
	require.NoError(t, s.PickTeam(host, models.TeamRed))

	add := func(names []string, team models.Team) {
		for _, name := range names {
			id := uuid.New()
			ids[name] = id
			s.Mu.Lock()
			s.addPlayer(id, name)
			s.Mu.Unlock()
			require.NoError(t, s.PickTeam(id, team))
		}
	}
	add(redNames[1:], models.TeamRed)
	add(blueNames, models.TeamBlue)
	return s, ids
}

func startGame(t *testing.T, s *Session, host uuid.UUID, timerSeconds, totalRounds int) {
	t.Helper()
	require.NoError(t, s.Start(host, timerSeconds, totalRounds))
}

// endOfTurn simulates natural timer expiry followed by the host resuming play.
func completeTurn(t *testing.T, s *Session, host uuid.UUID) TurnResult {
	t.Helper()
	res := s.EndTurn()
	require.True(t, res.Ended)
	if !res.GameOver {
		require.NoError(t, s.StartNextTurn(host))
	}
	return res
}

func TestPickTeamOnlyInLobby(t *testing.T) {
	s, ids := buildSession(t, []string{"alice"}, []string{"bob"})
	startGame(t, s, ids["alice"], 0, 0)

	err := s.PickTeam(ids["bob"], models.TeamRed)
	assert.ErrorIs(t, err, ErrPhaseMismatch)
}

func TestPickTeamUnknownConnection(t *testing.T) {
	s, _ := buildSession(t, []string{"alice"}, []string{"bob"})
	err := s.PickTeam(uuid.New(), models.TeamBlue)
	assert.ErrorIs(t, err, ErrNotInRoom)
}

func TestStartRequiresHost(t *testing.T) {
	s, ids := buildSession(t, []string{"alice"}, []string{"bob"})
	err := s.Start(ids["bob"], 60, 10)
	assert.ErrorIs(t, err, ErrNotAuthorized)
	assert.Equal(t, models.PhaseLobby, s.Phase)
}

func TestStartRequiresBothTeams(t *testing.T) {
	host := uuid.New()
	s := NewSession("GAME", host, "alice")
	require.NoError(t, s.PickTeam(host, models.TeamRed))

	err := s.Start(host, 60, 10)
	assert.ErrorIs(t, err, ErrInsufficientTeams)
	assert.Equal(t, models.PhaseLobby, s.Phase)
}

func TestStartAppliesDefaultsAndDealsFirstCard(t *testing.T) {
	s, ids := buildSession(t, []string{"alice"}, []string{"bob"})
	startGame(t, s, ids["alice"], 0, 0)

	assert.Equal(t, models.PhasePlaying, s.Phase)
	assert.Equal(t, DefaultTimerSeconds, s.TimerSeconds)
	assert.Equal(t, DefaultTotalRounds, s.TotalRounds)
	assert.Equal(t, 1, s.RoundNumber)
	assert.Equal(t, models.TeamRed, s.ActiveTeam)
	require.NotNil(t, s.CurrentCard)
	assert.Len(t, s.Deck, len(cardPool)-1)
}

func TestStartNotValidMidGame(t *testing.T) {
	s, ids := buildSession(t, []string{"alice"}, []string{"bob"})
	startGame(t, s, ids["alice"], 30, 4)

	err := s.Start(ids["alice"], 30, 4)
	assert.ErrorIs(t, err, ErrPhaseMismatch)
}

func TestScoringByClueGiver(t *testing.T) {
	s, ids := buildSession(t, []string{"alice", "carol"}, []string{"bob"})
	startGame(t, s, ids["alice"], 30, 4)

	// alice joined first on red, rotation starts at index 0.
	res, err := s.ScorePartial(ids["alice"])
	require.NoError(t, err)
	assert.Equal(t, 1, res.Scores.Red)
	assert.Equal(t, 1, res.Points)
	assert.Equal(t, "alice", res.By)

	res, err = s.ScoreFull(ids["alice"])
	require.NoError(t, err)
	assert.Equal(t, 4, res.Scores.Red)
	assert.Equal(t, 3, res.Points)
	assert.Zero(t, res.Scores.Blue)
}

func TestScoringRejectsEveryoneElse(t *testing.T) {
	s, ids := buildSession(t, []string{"alice", "carol"}, []string{"bob"})
	startGame(t, s, ids["alice"], 30, 4)

	for _, name := range []string{"carol", "bob"} {
		_, err := s.ScorePartial(ids[name])
		assert.ErrorIs(t, err, ErrNotAuthorized, "%s must not score", name)
		_, err = s.ScoreFull(ids[name])
		assert.ErrorIs(t, err, ErrNotAuthorized)
		assert.ErrorIs(t, s.Pass(ids[name]), ErrNotAuthorized)
	}
	assert.Equal(t, models.Scores{}, s.Scores)
}

func TestScoringRejectedOutsidePlaying(t *testing.T) {
	s, ids := buildSession(t, []string{"alice"}, []string{"bob"})
	_, err := s.ScorePartial(ids["alice"])
	assert.ErrorIs(t, err, ErrPhaseMismatch)
}

func TestPassDrawsWithoutScoring(t *testing.T) {
	s, ids := buildSession(t, []string{"alice"}, []string{"bob"})
	startGame(t, s, ids["alice"], 30, 4)

	first := *s.CurrentCard
	deckBefore := len(s.Deck)
	require.NoError(t, s.Pass(ids["alice"]))

	assert.Equal(t, models.Scores{}, s.Scores)
	assert.Len(t, s.Deck, deckBefore-1)
	assert.NotEqual(t, first, *s.CurrentCard)
}

func TestBonkAllowedOnlyForNonActiveTeam(t *testing.T) {
	s, ids := buildSession(t, []string{"alice", "carol"}, []string{"bob"})
	startGame(t, s, ids["alice"], 30, 4)

	by, err := s.Bonk(ids["bob"])
	require.NoError(t, err)
	assert.Equal(t, "bob", by)

	_, err = s.Bonk(ids["carol"])
	assert.ErrorIs(t, err, ErrNotAuthorized, "active-team player must not bonk")

	_, err = s.Bonk(ids["alice"])
	assert.ErrorIs(t, err, ErrNotAuthorized)
}

func TestBonkRejectedOutsidePlaying(t *testing.T) {
	s, ids := buildSession(t, []string{"alice"}, []string{"bob"})
	_, err := s.Bonk(ids["bob"])
	assert.ErrorIs(t, err, ErrPhaseMismatch)
}

func TestClueGiverRotation(t *testing.T) {
	reds := []string{"r0", "r1", "r2"}
	s, ids := buildSession(t, reds, []string{"b0", "b1"})
	startGame(t, s, ids["r0"], 30, 100)

	blues := []string{"b0", "b1"}
	for k := 0; k < 6; k++ {
		giver := s.CurrentClueGiver()
		require.NotNil(t, giver)
		assert.Equal(t, reds[k%len(reds)], giver.Username, "red turn %d", k)

		completeTurn(t, s, ids["r0"]) // red's turn ends, blue plays

		giver = s.CurrentClueGiver()
		require.NotNil(t, giver)
		assert.Equal(t, blues[k%len(blues)], giver.Username, "blue turn %d", k)

		completeTurn(t, s, ids["r0"]) // blue's turn ends, back to red
	}
}

func TestRoundCountsOncePerFullCycle(t *testing.T) {
	s, ids := buildSession(t, []string{"alice"}, []string{"bob"})
	startGame(t, s, ids["alice"], 30, 4)

	res := completeTurn(t, s, ids["alice"]) // red done
	assert.Equal(t, 1, res.RoundNumber, "half cycle must not advance the round")
	assert.Equal(t, models.TeamBlue, res.NextTeam)

	res = completeTurn(t, s, ids["alice"]) // blue done, full cycle
	assert.Equal(t, 2, res.RoundNumber)
	assert.Equal(t, models.TeamRed, res.NextTeam)
}

func TestGameOverAfterConfiguredRounds(t *testing.T) {
	s, ids := buildSession(t, []string{"alice"}, []string{"bob"})
	startGame(t, s, ids["alice"], 30, 4)

	// 4 rounds = 8 turns; the 8th turn ending finishes the game.
	for i := 0; i < 7; i++ {
		res := completeTurn(t, s, ids["alice"])
		require.False(t, res.GameOver, "turn %d must not end the game", i+1)
	}

	// 7 turns in, blue holds the final turn of round 4.
	_, err := s.ScoreFull(ids["bob"])
	require.NoError(t, err)

	res := s.EndTurn()
	require.True(t, res.Ended)
	assert.True(t, res.GameOver)
	assert.Equal(t, string(models.TeamBlue), res.Winner)
	assert.Equal(t, models.PhaseGameOver, s.Phase)
	assert.Nil(t, s.CurrentCard)
	assert.True(t, s.TimerEndTime.IsZero())

	// Terminal: no further scoring is possible.
	_, err = s.ScorePartial(ids["alice"])
	assert.ErrorIs(t, err, ErrPhaseMismatch)
	assert.False(t, s.EndTurn().Ended)
}

func TestGameOverTie(t *testing.T) {
	s, ids := buildSession(t, []string{"alice"}, []string{"bob"})
	startGame(t, s, ids["alice"], 30, 1)

	completeTurn(t, s, ids["alice"])
	res := s.EndTurn()
	require.True(t, res.GameOver)
	assert.Equal(t, "tie", res.Winner)
}

func TestStartNextTurnGuards(t *testing.T) {
	s, ids := buildSession(t, []string{"alice"}, []string{"bob"})
	startGame(t, s, ids["alice"], 30, 4)

	assert.ErrorIs(t, s.StartNextTurn(ids["alice"]), ErrPhaseMismatch, "still playing")

	res := s.EndTurn()
	require.True(t, res.Ended)
	assert.ErrorIs(t, s.StartNextTurn(ids["bob"]), ErrNotAuthorized, "host only")

	require.NoError(t, s.StartNextTurn(ids["alice"]))
	assert.Equal(t, models.PhasePlaying, s.Phase)
	assert.NotNil(t, s.CurrentCard)
}

func TestAbandonedActiveTeamYieldsNoClueGiver(t *testing.T) {
	s, ids := buildSession(t, []string{"alice", "carol"}, []string{"bob"})
	startGame(t, s, ids["alice"], 30, 4)

	// Both red players leave mid-turn.
	s.Mu.Lock()
	s.removePlayer(ids["alice"])
	s.removePlayer(ids["carol"])
	s.Mu.Unlock()

	assert.Nil(t, s.CurrentClueGiver())
	_, err := s.ScorePartial(ids["bob"])
	assert.ErrorIs(t, err, ErrNotAuthorized, "no eligible clue-giver, action rejected")

	// The turn is forfeited: expiry still rotates cleanly to blue.
	res := s.EndTurn()
	require.True(t, res.Ended)
	assert.Equal(t, models.TeamBlue, res.NextTeam)
	assert.Equal(t, "bob", res.NextClueGiver)
}

func TestHostReassignedToEarliestJoiner(t *testing.T) {
	s, ids := buildSession(t, []string{"alice", "carol"}, []string{"bob"})

	s.Mu.Lock()
	username, removed, empty := s.removePlayer(ids["alice"])
	s.Mu.Unlock()
	require.True(t, removed)
	require.False(t, empty)
	assert.Equal(t, "alice", username)
	assert.Equal(t, ids["carol"], s.HostConnID, "earliest remaining joiner becomes host")
}

func TestResetReturnsToLobby(t *testing.T) {
	s, ids := buildSession(t, []string{"alice"}, []string{"bob"})
	startGame(t, s, ids["alice"], 30, 4)
	_, err := s.ScoreFull(ids["alice"])
	require.NoError(t, err)

	assert.ErrorIs(t, s.Reset(ids["bob"]), ErrNotAuthorized)

	require.NoError(t, s.Reset(ids["alice"]))
	assert.Equal(t, models.PhaseLobby, s.Phase)
	assert.Equal(t, models.Scores{}, s.Scores)
	assert.Zero(t, s.RoundNumber)
	assert.Nil(t, s.CurrentCard)
	assert.Empty(t, s.Deck)
	assert.True(t, s.TimerEndTime.IsZero())
	// Teams survive the reset so the same group can start again.
	s.Mu.Lock()
	defer s.Mu.Unlock()
	assert.Len(t, s.teamPlayers(models.TeamRed), 1)
	assert.Len(t, s.teamPlayers(models.TeamBlue), 1)
}

func TestRevealTargetsPolicy(t *testing.T) {
	s, ids := buildSession(t, []string{"alice", "carol"}, []string{"bob", "dave"})
	startGame(t, s, ids["alice"], 30, 4)

	card, targets, ok := s.RevealTargets()
	require.True(t, ok)
	assert.Equal(t, *s.CurrentCard, card)

	assert.ElementsMatch(t, []uuid.UUID{ids["alice"], ids["bob"], ids["dave"]}, targets,
		"clue-giver and opposing team see the card; active-team guessers do not")
	assert.NotContains(t, targets, ids["carol"])
}

func TestRevealTargetsWithoutCard(t *testing.T) {
	s, _ := buildSession(t, []string{"alice"}, []string{"bob"})
	_, _, ok := s.RevealTargets()
	assert.False(t, ok)
}
