package game

import (
	"math/rand"

	"github.com/dividing-by-zaro/ugg-poetry/internal/models"
)

// shuffledDeck returns a uniform random permutation of the full card pool.
func shuffledDeck() []models.Card {
	deck := make([]models.Card, len(cardPool))
	copy(deck, cardPool)
	rand.Shuffle(len(deck), func(i, j int) {
		deck[i], deck[j] = deck[j], deck[i]
	})
	return deck
}

// drawCard pops the next card off the session deck and makes it the card in
// play. An exhausted deck is replaced with a fresh shuffle of the full pool
// first, so drawing never fails. Caller must hold Mu.
func (s *Session) drawCard() models.Card {
	if len(s.Deck) == 0 {
		s.Deck = shuffledDeck()
	}
	card := s.Deck[len(s.Deck)-1]
	s.Deck = s.Deck[:len(s.Deck)-1]
	s.CurrentCard = &card
	return card
}
