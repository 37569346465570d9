package engine

import (
	"fmt"
	"strings"

	"github.com/puarinanhh/texas-hold-em/poker"
)

// Phase is the betting stage of a hand. Phases only ever advance forward.
type Phase int

const (
	Waiting Phase = iota
	Preflop
	Flop
	Turn
	River
	Showdown
)

func (p Phase) String() string {
	return [...]string{"waiting", "preflop", "flop", "turn", "river", "showdown"}[p]
}

// MarshalJSON encodes the phase by name.
func (p Phase) MarshalJSON() ([]byte, error) {
	return []byte(`"` + p.String() + `"`), nil
}

// UnmarshalJSON decodes a phase name.
func (p *Phase) UnmarshalJSON(data []byte) error {
	name := strings.Trim(string(data), `"`)
	for phase := Waiting; phase <= Showdown; phase++ {
		if phase.String() == name {
			*p = phase
			return nil
		}
	}
	return fmt.Errorf("unknown phase: %q", name)
}

// Action is a player's betting decision.
type Action int

const (
	Fold Action = iota
	Check
	Call
	Raise
	AllIn
)

func (a Action) String() string {
	return [...]string{"fold", "check", "call", "raise", "all-in"}[a]
}

// ParseAction parses the wire form of an action.
func ParseAction(s string) (Action, error) {
	switch s {
	case "fold":
		return Fold, nil
	case "check":
		return Check, nil
	case "call":
		return Call, nil
	case "raise":
		return Raise, nil
	case "all-in", "allin":
		return AllIn, nil
	}
	return 0, fmt.Errorf("unknown action: %q", s)
}

// State is the full authoritative state of one hand. Exactly one live
// instance exists per active hand, owned exclusively by its Engine. It must
// never be exposed unredacted to anything other than the owning server
// process; use Engine.StateForPlayer for client views.
type State struct {
	Community     []poker.Card `json:"communityCards"`
	Pot           int          `json:"pot"`
	CurrentBet    int          `json:"currentBet"`
	Current       int          `json:"currentPlayerIndex"`
	Dealer        int          `json:"dealerIndex"`
	SmallBlindIdx int          `json:"smallBlindIndex"`
	BigBlindIdx   int          `json:"bigBlindIndex"`
	Phase         Phase        `json:"phase"`
	Players       []*Player    `json:"players"`
	MinRaise      int          `json:"minRaise"`
	LastRaise     int          `json:"lastRaiseAmount"`
}

// Clone returns a deep value copy of the state. External mutation of the
// copy can never corrupt the live hand.
func (s *State) Clone() State {
	clone := *s
	clone.Community = make([]poker.Card, len(s.Community))
	copy(clone.Community, s.Community)
	clone.Players = make([]*Player, len(s.Players))
	for i, p := range s.Players {
		clone.Players[i] = p.Clone()
	}
	return clone
}

// Winner describes one pot recipient at showdown.
type Winner struct {
	PlayerID   string           `json:"playerId"`
	PlayerName string           `json:"playerName"`
	HandName   string           `json:"handName"`
	Hand       poker.HandResult `json:"hand"`
	Amount     int              `json:"winAmount"`
}
