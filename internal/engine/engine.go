// Package engine implements the betting-round state machine for a single
// Texas Hold'em hand. One Engine owns one hand's state; the session layer
// creates a fresh Engine per hand and serializes all calls into it. The
// engine itself performs no locking and never blocks.
package engine

import (
	"fmt"
	rand "math/rand/v2"
	"sort"

	"github.com/puarinanhh/texas-hold-em/poker"
)

// Engine drives one hand from blinds to showdown. Operations either fully
// apply or fully reject; validation always precedes mutation so a rejected
// action leaves the state untouched.
type Engine struct {
	deck       *poker.Deck
	state      State
	smallBlind int
	bigBlind   int
}

// New constructs an engine for one hand. Seated players are deep-copied into
// engine ownership; players without chips are dropped. The dealer index is
// relative to the remaining (funded) players. The random source drives the
// shuffle and must be supplied explicitly.
func New(rng *rand.Rand, seated []*Player, dealer, smallBlind, bigBlind int) *Engine {
	players := make([]*Player, 0, len(seated))
	for _, p := range seated {
		if p.Chips > 0 {
			players = append(players, p.Clone())
		}
	}

	n := len(players)
	if n < 2 {
		panic("engine: at least 2 funded players required")
	}
	if dealer < 0 || dealer >= n {
		panic("engine: dealer index out of range")
	}

	sbIdx := (dealer + 1) % n
	bbIdx := (dealer + 2) % n

	return &Engine{
		deck:       poker.NewDeck(rng),
		smallBlind: smallBlind,
		bigBlind:   bigBlind,
		state: State{
			Pot:           0,
			CurrentBet:    bigBlind,
			Current:       (bbIdx + 1) % n,
			Dealer:        dealer,
			SmallBlindIdx: sbIdx,
			BigBlindIdx:   bbIdx,
			Phase:         Waiting,
			Players:       players,
			MinRaise:      bigBlind,
			LastRaise:     bigBlind,
		},
	}
}

// StartHand moves waiting to preflop: resets per-hand player fields, posts the
// blinds (capped at each stack, marking all-in when a blind consumes it) and
// deals two hole cards to every player.
func (e *Engine) StartHand() (State, error) {
	e.deck.Reset()
	e.state.Phase = Preflop
	e.state.Community = nil
	e.state.Pot = 0

	for _, p := range e.state.Players {
		p.resetForHand()
	}

	e.postBlinds()

	for _, p := range e.state.Players {
		cards, err := e.deck.Deal(2)
		if err != nil {
			return State{}, fmt.Errorf("dealing hole cards: %w", err)
		}
		p.Cards = cards
	}

	return e.state.Clone(), nil
}

func (e *Engine) postBlinds() {
	sb := e.state.Players[e.state.SmallBlindIdx]
	bb := e.state.Players[e.state.BigBlindIdx]
	e.placeBet(sb, min(e.smallBlind, sb.Chips))
	e.placeBet(bb, min(e.bigBlind, bb.Chips))
}

// placeBet moves chips from the player to the pot, capped at the player's
// stack, flagging all-in when the stack is exhausted.
func (e *Engine) placeBet(p *Player, amount int) {
	actual := min(amount, p.Chips)
	p.Chips -= actual
	p.CurrentBet += actual
	p.TotalBet += actual
	e.state.Pot += actual
	if p.Chips == 0 {
		p.AllIn = true
	}
}

// ApplyAction validates and applies one player action, advancing the turn
// pointer and, when the betting round completes, the phase. The returned
// state is a deep copy. On error the engine state is unchanged.
func (e *Engine) ApplyAction(playerID string, action Action, amount int) (State, error) {
	p := e.findPlayer(playerID)
	if p == nil {
		return e.state.Clone(), stateErr("player not found")
	}
	if e.state.Current < 0 || e.state.Players[e.state.Current].ID != playerID {
		return e.state.Clone(), stateErr("not your turn")
	}
	if p.Folded || p.AllIn {
		return e.state.Clone(), stateErr("cannot act")
	}

	switch action {
	case Fold:
		p.Folded = true

	case Check:
		if p.CurrentBet < e.state.CurrentBet {
			return e.state.Clone(), stateErr("cannot check")
		}

	case Call:
		e.placeBet(p, e.state.CurrentBet-p.CurrentBet)

	case Raise:
		if amount <= 0 {
			return e.state.Clone(), validationErr("raise amount required")
		}
		if err := e.applyRaise(p, amount); err != nil {
			return e.state.Clone(), err
		}

	case AllIn:
		e.applyAllIn(p)

	default:
		return e.state.Clone(), validationErr("unknown action")
	}

	p.Acted = true

	// Everyone else folded: straight to showdown, no further cards or betting.
	if e.countInHand() == 1 {
		e.state.Phase = Showdown
		e.state.Current = -1
		return e.state.Clone(), nil
	}

	e.advanceTurn()

	if e.bettingRoundComplete() {
		if err := e.advancePhase(); err != nil {
			return State{}, err
		}
	}

	return e.state.Clone(), nil
}

// applyRaise handles a raise to a new total bet for the round. A raise below
// the minimum is rejected unless it puts the player all-in.
func (e *Engine) applyRaise(p *Player, amount int) error {
	raiseSize := amount - e.state.CurrentBet
	toCall := amount - p.CurrentBet

	if raiseSize < e.state.MinRaise && p.Chips > toCall {
		return ruleErr("minimum raise is %d", e.state.MinRaise)
	}
	if toCall > p.Chips {
		return ruleErr("not enough chips")
	}

	e.placeBet(p, toCall)
	e.state.CurrentBet = amount
	e.state.LastRaise = raiseSize
	e.state.MinRaise = raiseSize
	e.resetActedExcept(p)
	return nil
}

// applyAllIn commits the player's whole stack. When the resulting total bet
// exceeds the table bet it acts as a raise; a short all-in raise re-opens the
// action for others but only moves the minimum when it is a full raise.
func (e *Engine) applyAllIn(p *Player) {
	total := p.CurrentBet + p.Chips
	if total > e.state.CurrentBet {
		raiseSize := total - e.state.CurrentBet
		e.state.CurrentBet = total
		if raiseSize >= e.state.MinRaise {
			e.state.MinRaise = raiseSize
			e.state.LastRaise = raiseSize
		}
		e.resetActedExcept(p)
	}
	e.placeBet(p, p.Chips)
}

// resetActedExcept clears the acted flag on every other player who can still
// act; they now face a new bet.
func (e *Engine) resetActedExcept(actor *Player) {
	for _, p := range e.state.Players {
		if p != actor && p.Active() {
			p.Acted = false
		}
	}
}

// advanceTurn moves the turn pointer to the next seat that can act, or -1
// when no such seat exists.
func (e *Engine) advanceTurn() {
	n := len(e.state.Players)
	for i := 1; i <= n; i++ {
		idx := (e.state.Current + i) % n
		if e.state.Players[idx].Active() {
			e.state.Current = idx
			return
		}
	}
	e.state.Current = -1
}

// firstActiveAfterDealer points the turn at the first seat past the dealer
// that can act.
func (e *Engine) firstActiveAfterDealer() {
	n := len(e.state.Players)
	for i := 1; i <= n; i++ {
		idx := (e.state.Dealer + i) % n
		if e.state.Players[idx].Active() {
			e.state.Current = idx
			return
		}
	}
	e.state.Current = -1
}

// bettingRoundComplete reports whether every player who can still act has
// matched the table bet and acted this round.
func (e *Engine) bettingRoundComplete() bool {
	for _, p := range e.state.Players {
		if !p.Active() {
			continue
		}
		if p.CurrentBet < e.state.CurrentBet || !p.Acted {
			return false
		}
	}
	return true
}

// advancePhase closes the betting round and either runs out the board (when
// no further betting is possible) or deals the next street.
func (e *Engine) advancePhase() error {
	for _, p := range e.state.Players {
		p.CurrentBet = 0
		p.Acted = false
	}
	e.state.CurrentBet = 0

	active, allIn := 0, 0
	for _, p := range e.state.Players {
		switch {
		case p.Folded:
		case p.AllIn:
			allIn++
		default:
			active++
		}
	}

	// No betting remains possible: deal everything and go to showdown.
	if (active == 0 && allIn >= 2) || (active == 1 && allIn >= 1) {
		return e.runOutBoard()
	}

	e.firstActiveAfterDealer()

	switch e.state.Phase {
	case Preflop:
		e.state.Phase = Flop
		if err := e.dealCommunity(3); err != nil {
			return err
		}
	case Flop:
		e.state.Phase = Turn
		if err := e.dealCommunity(1); err != nil {
			return err
		}
	case Turn:
		e.state.Phase = River
		if err := e.dealCommunity(1); err != nil {
			return err
		}
	case River:
		e.state.Phase = Showdown
		e.state.Current = -1
	}

	return nil
}

// runOutBoard deals all remaining community cards in one step and lands on
// showdown, skipping the intermediate betting rounds.
func (e *Engine) runOutBoard() error {
	if e.state.Phase == Preflop {
		if err := e.dealCommunity(3); err != nil {
			return err
		}
	}
	for len(e.state.Community) < 5 {
		if err := e.dealCommunity(1); err != nil {
			return err
		}
	}
	e.state.Phase = Showdown
	e.state.Current = -1
	return nil
}

func (e *Engine) dealCommunity(n int) error {
	cards, err := e.deck.Deal(n)
	if err != nil {
		return fmt.Errorf("dealing community cards: %w", err)
	}
	e.state.Community = append(e.state.Community, cards...)
	return nil
}

// DetermineWinners ranks the remaining hands and splits the pot among the
// players tied for the best one. Valid only at showdown. When a single
// player remains they take the whole pot uncontested, with no hand
// comparison performed.
func (e *Engine) DetermineWinners() ([]Winner, error) {
	if e.state.Phase != Showdown {
		return nil, stateErr("hand is not at showdown")
	}

	var contenders []*Player
	for _, p := range e.state.Players {
		if p.InHand() {
			contenders = append(contenders, p)
		}
	}

	if len(contenders) == 1 {
		sole := contenders[0]
		return []Winner{{
			PlayerID:   sole.ID,
			PlayerName: sole.Name,
			HandName:   "Winner by fold",
			Amount:     e.state.Pot,
		}}, nil
	}

	type ranked struct {
		player *Player
		hand   poker.HandResult
	}
	hands := make([]ranked, len(contenders))
	for i, p := range contenders {
		hands[i] = ranked{player: p, hand: poker.Evaluate(p.Cards, e.state.Community)}
	}

	sort.SliceStable(hands, func(i, j int) bool {
		if cmp := poker.CompareHands(hands[i].hand, hands[j].hand); cmp != 0 {
			return cmp > 0
		}
		return hands[i].player.Seat < hands[j].player.Seat
	})

	best := []ranked{hands[0]}
	for _, h := range hands[1:] {
		if poker.CompareHands(h.hand, best[0].hand) != 0 {
			break
		}
		best = append(best, h)
	}

	// Even split; any odd-chip remainder goes to the winner in the earliest
	// seat. The pot is a single undivided total: side pots for unequal
	// all-in stacks are not modeled.
	share := e.state.Pot / len(best)
	remainder := e.state.Pot % len(best)
	earliest := 0
	for i, h := range best {
		if h.player.Seat < best[earliest].player.Seat {
			earliest = i
		}
	}

	winners := make([]Winner, len(best))
	for i, h := range best {
		amount := share
		if i == earliest {
			amount += remainder
		}
		winners[i] = Winner{
			PlayerID:   h.player.ID,
			PlayerName: h.player.Name,
			HandName:   h.hand.Category.String(),
			Hand:       h.hand,
			Amount:     amount,
		}
	}
	return winners, nil
}

// DistributeWinnings credits each winner's stack and zeroes the pot. Caller
// contract: invoke exactly once per hand; the operation is not idempotent.
func (e *Engine) DistributeWinnings(winners []Winner) {
	for _, w := range winners {
		if p := e.findPlayer(w.PlayerID); p != nil {
			p.Chips += w.Amount
		}
	}
	e.state.Pot = 0
}

// State returns a deep copy of the full authoritative state. It includes
// every player's hole cards and must stay inside the server process.
func (e *Engine) State() State {
	return e.state.Clone()
}

// StateForPlayer returns a deep copy with every other player's hole cards
// redacted. The deck's undealt cards are never part of any state view.
func (e *Engine) StateForPlayer(playerID string) State {
	clone := e.state.Clone()
	for _, p := range clone.Players {
		if p.ID != playerID {
			p.Cards = nil
		}
	}
	return clone
}

// Phase returns the current phase.
func (e *Engine) Phase() Phase {
	return e.state.Phase
}

// HandComplete reports whether the hand has reached showdown.
func (e *Engine) HandComplete() bool {
	return e.state.Phase == Showdown
}

func (e *Engine) findPlayer(id string) *Player {
	for _, p := range e.state.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func (e *Engine) countInHand() int {
	n := 0
	for _, p := range e.state.Players {
		if p.InHand() {
			n++
		}
	}
	return n
}
