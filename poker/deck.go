package poker

import (
	"errors"
	rand "math/rand/v2"
)

// ErrDeckExhausted is returned when more cards are requested than remain.
// With at most ten seats a hand consumes 25 of 52 cards, so hitting this
// indicates a modeling bug in the caller rather than a recoverable condition.
var ErrDeckExhausted = errors.New("not enough cards in deck")

// Deck is a standard 52-card deck. Dealt cards are consumed and never
// reappear until the next Reset.
type Deck struct {
	cards [52]Card
	next  int
	rng   *rand.Rand
}

// NewDeck creates a shuffled deck. The random source is explicit so that
// production can supply a cryptographically seeded generator while tests
// supply a fixed seed.
func NewDeck(rng *rand.Rand) *Deck {
	if rng == nil {
		panic("poker: deck requires a random source")
	}
	d := &Deck{rng: rng}
	d.Reset()
	return d
}

// Reset rebuilds the full 52-card set and reshuffles.
func (d *Deck) Reset() {
	i := 0
	for suit := Hearts; suit <= Spades; suit++ {
		for rank := Two; rank <= Ace; rank++ {
			d.cards[i] = Card{Suit: suit, Rank: rank}
			i++
		}
	}
	d.shuffle()
}

// shuffle performs a Fisher-Yates shuffle over the full deck.
func (d *Deck) shuffle() {
	d.next = 0
	for i := len(d.cards) - 1; i > 0; i-- {
		j := d.rng.IntN(i + 1)
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// Deal removes and returns the next n cards.
func (d *Deck) Deal(n int) ([]Card, error) {
	if d.next+n > len(d.cards) {
		return nil, ErrDeckExhausted
	}
	cards := make([]Card, n)
	copy(cards, d.cards[d.next:d.next+n])
	d.next += n
	return cards, nil
}

// DealOne removes and returns a single card.
func (d *Deck) DealOne() (Card, error) {
	cards, err := d.Deal(1)
	if err != nil {
		return Card{}, err
	}
	return cards[0], nil
}

// Remaining returns the number of undealt cards.
func (d *Deck) Remaining() int {
	return len(d.cards) - d.next
}
