package game

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dividing-by-zaro/ugg-poetry/internal/models"
)

func TestShuffledDeckIsPermutationOfPool(t *testing.T) {
	deck := shuffledDeck()
	require.Len(t, deck, len(cardPool))

	counts := make(map[models.Card]int)
	for _, c := range cardPool {
		counts[c]++
	}
	for _, c := range deck {
		counts[c]--
	}
	for card, n := range counts {
		assert.Zero(t, n, "card %q lost or duplicated by shuffle", card.Partial)
	}
}

func TestDrawCardConsumesDeck(t *testing.T) {
	s := NewSession("TEST", uuid.New(), "host")
	s.Deck = shuffledDeck()

	before := len(s.Deck)
	card := s.drawCard()
	assert.Len(t, s.Deck, before-1)
	require.NotNil(t, s.CurrentCard)
	assert.Equal(t, card, *s.CurrentCard)
}

func TestDrawCardReshufflesWhenExhausted(t *testing.T) {
	s := NewSession("TEST", uuid.New(), "host")
	s.Deck = nil

	card := s.drawCard()
	assert.NotEmpty(t, card.Partial)
	assert.NotEmpty(t, card.Full)
	// A fresh shuffle of the full pool was dealt before the pop.
	assert.Len(t, s.Deck, len(cardPool)-1)
}

func TestDrawNeverLosesCardsAcrossOneDeck(t *testing.T) {
	s := NewSession("TEST", uuid.New(), "host")
	s.Deck = shuffledDeck()

	seen := make(map[models.Card]int)
	for i := 0; i < len(cardPool); i++ {
		seen[s.drawCard()]++
	}
	assert.Len(t, seen, len(cardPool), "one full deck should yield each pool card exactly once")
	for card, n := range seen {
		assert.Equal(t, 1, n, "card %q drawn %d times in one deck", card.Partial, n)
	}
	assert.Empty(t, s.Deck)
}
