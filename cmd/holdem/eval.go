package main

import (
	"fmt"
	"strings"

	"github.com/puarinanhh/texas-hold-em/poker"
)

// EvalCmd classifies the best five-card hand from the given cards. The first
// two cards are hole cards, the rest community cards.
type EvalCmd struct {
	Cards []string `kong:"arg,help='Cards in compact form, e.g. As Ks Qs Js Ts'"`
}

func (c *EvalCmd) Run() error {
	if len(c.Cards) < 5 || len(c.Cards) > 7 {
		return fmt.Errorf("expected 5 to 7 cards, got %d", len(c.Cards))
	}

	cards := make([]poker.Card, len(c.Cards))
	for i, s := range c.Cards {
		card, err := poker.ParseCard(s)
		if err != nil {
			return err
		}
		cards[i] = card
	}

	result := poker.Evaluate(cards[:2], cards[2:])

	best := make([]string, len(result.Cards))
	for i, card := range result.Cards {
		best[i] = card.String()
	}

	fmt.Printf("%s\n", result.Category)
	fmt.Printf("best five: %s\n", strings.Join(best, " "))
	fmt.Printf("tie-break: %v\n", result.TieBreaks)
	return nil
}
