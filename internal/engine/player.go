package engine

import "github.com/puarinanhh/texas-hold-em/poker"

// Player is one seat's view of a hand. The engine owns these for the
// duration of a hand; chip balances persist across hands via the session
// layer.
type Player struct {
	ID         string       `json:"id"`
	Name       string       `json:"name"`
	Chips      int          `json:"chips"`
	Cards      []poker.Card `json:"cards"`
	CurrentBet int          `json:"currentBet"`
	TotalBet   int          `json:"totalBet"`
	Folded     bool         `json:"folded"`
	AllIn      bool         `json:"allIn"`
	Seat       int          `json:"seat"`
	Acted      bool         `json:"acted"`
}

// Active reports whether the player can still take actions this round.
func (p *Player) Active() bool {
	return !p.Folded && !p.AllIn
}

// InHand reports whether the player still contests the pot.
func (p *Player) InHand() bool {
	return !p.Folded
}

// Clone returns a deep copy, including the hole card slice, so snapshots
// never alias engine-internal state.
func (p *Player) Clone() *Player {
	clone := *p
	clone.Cards = make([]poker.Card, len(p.Cards))
	copy(clone.Cards, p.Cards)
	return &clone
}

// resetForHand clears all per-hand fields, keeping identity and chips.
func (p *Player) resetForHand() {
	p.Cards = nil
	p.CurrentBet = 0
	p.TotalBet = 0
	p.Folded = false
	p.AllIn = false
	p.Acted = false
}
