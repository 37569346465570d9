// Package poker provides the card primitives and hand evaluation used by the
// betting engine: a 52-card deck with an injectable random source, a
// combinatorics helper, and a 7-card evaluator with total ordering over hands.
package poker

import (
	"encoding/json"
	"fmt"
)

// Suit identifies one of the four card suits.
type Suit uint8

const (
	Hearts Suit = iota
	Diamonds
	Clubs
	Spades
)

// String returns the lowercase suit name.
func (s Suit) String() string {
	switch s {
	case Hearts:
		return "hearts"
	case Diamonds:
		return "diamonds"
	case Clubs:
		return "clubs"
	case Spades:
		return "spades"
	}
	return "unknown"
}

// Symbol returns the unicode suit symbol for display.
func (s Suit) Symbol() string {
	switch s {
	case Hearts:
		return "♥"
	case Diamonds:
		return "♦"
	case Clubs:
		return "♣"
	case Spades:
		return "♠"
	}
	return "?"
}

// Rank identifies a card rank, Two through Ace.
type Rank uint8

const (
	Two Rank = iota
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

// Value returns the numeric rank value used for hand comparison (2-14, ace high).
func (r Rank) Value() int {
	return int(r) + 2
}

func (r Rank) String() string {
	const ranks = "23456789TJQKA"
	if r > Ace {
		return "?"
	}
	return string(ranks[r])
}

// Card is an immutable suit/rank pair.
type Card struct {
	Suit Suit
	Rank Rank
}

// String renders the card in the compact two-character form, e.g. "As", "Th".
func (c Card) String() string {
	const suits = "hdcs"
	if c.Rank > Ace || c.Suit > Spades {
		return "??"
	}
	return c.Rank.String() + string(suits[c.Suit])
}

// MarshalJSON encodes the card as its compact string form.
func (c Card) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

// UnmarshalJSON decodes a card from its compact string form.
func (c *Card) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	card, err := ParseCard(s)
	if err != nil {
		return err
	}
	*c = card
	return nil
}

// ParseCard parses a two-character card string like "As" or "7d".
func ParseCard(s string) (Card, error) {
	if len(s) != 2 {
		return Card{}, fmt.Errorf("invalid card string: %q", s)
	}

	var rank Rank
	switch s[0] {
	case '2':
		rank = Two
	case '3':
		rank = Three
	case '4':
		rank = Four
	case '5':
		rank = Five
	case '6':
		rank = Six
	case '7':
		rank = Seven
	case '8':
		rank = Eight
	case '9':
		rank = Nine
	case 'T', 't':
		rank = Ten
	case 'J', 'j':
		rank = Jack
	case 'Q', 'q':
		rank = Queen
	case 'K', 'k':
		rank = King
	case 'A', 'a':
		rank = Ace
	default:
		return Card{}, fmt.Errorf("invalid rank: %c", s[0])
	}

	var suit Suit
	switch s[1] {
	case 'h', 'H':
		suit = Hearts
	case 'd', 'D':
		suit = Diamonds
	case 'c', 'C':
		suit = Clubs
	case 's', 'S':
		suit = Spades
	default:
		return Card{}, fmt.Errorf("invalid suit: %c", s[1])
	}

	return Card{Suit: suit, Rank: rank}, nil
}

// MustParseCards parses a list of card strings, panicking on invalid input.
// Intended for tests and fixtures.
func MustParseCards(strs ...string) []Card {
	cards := make([]Card, len(strs))
	for i, s := range strs {
		card, err := ParseCard(s)
		if err != nil {
			panic(err)
		}
		cards[i] = card
	}
	return cards
}
