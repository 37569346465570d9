package session

import (
	"sync"

	"github.com/puarinanhh/texas-hold-em/internal/engine"
)

// Room is one table: a named roster of seated players and, while a hand is
// in progress, the engine that owns that hand. The room mutex serializes all
// engine access so at most one action is in flight per room; the engine
// itself does no locking.
type Room struct {
	ID         string
	Name       string
	MaxPlayers int
	SmallBlind int
	BigBlind   int

	mu      sync.Mutex
	seats   []*engine.Player
	eng     *engine.Engine
	started bool
}

// RoomInfo is the lightweight lobby view of a room.
type RoomInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	PlayerCount int    `json:"playerCount"`
	MaxPlayers  int    `json:"maxPlayers"`
	Started     bool   `json:"isGameStarted"`
	SmallBlind  int    `json:"smallBlind"`
	BigBlind    int    `json:"bigBlind"`
}

func (r *Room) info() RoomInfo {
	return RoomInfo{
		ID:          r.ID,
		Name:        r.Name,
		PlayerCount: len(r.seats),
		MaxPlayers:  r.MaxPlayers,
		Started:     r.started,
		SmallBlind:  r.SmallBlind,
		BigBlind:    r.BigBlind,
	}
}

// Info returns the lobby view of the room.
func (r *Room) Info() RoomInfo {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.info()
}

// Players returns a deep copy of the seated roster.
func (r *Room) Players() []*engine.Player {
	r.mu.Lock()
	defer r.mu.Unlock()
	players := make([]*engine.Player, len(r.seats))
	for i, p := range r.seats {
		players[i] = p.Clone()
	}
	return players
}

// lowestFreeSeat returns the smallest seat index not yet taken.
func (r *Room) lowestFreeSeat() int {
	used := make(map[int]bool, len(r.seats))
	for _, p := range r.seats {
		used[p.Seat] = true
	}
	seat := 0
	for used[seat] {
		seat++
	}
	return seat
}

// syncChips copies chip balances from the engine's players back onto the
// roster so stacks persist across hands.
func (r *Room) syncChips() {
	if r.eng == nil {
		return
	}
	state := r.eng.State()
	byID := make(map[string]*engine.Player, len(state.Players))
	for _, p := range state.Players {
		byID[p.ID] = p
	}
	for _, seat := range r.seats {
		if p, ok := byID[seat.ID]; ok {
			seat.Chips = p.Chips
		}
	}
}

// endHandLocked retires the active engine: chips are retained on the roster,
// all other per-hand fields are cleared, and the room is ready for the next
// hand. Caller holds r.mu.
func (r *Room) endHandLocked() {
	r.syncChips()
	for _, p := range r.seats {
		p.Cards = nil
		p.CurrentBet = 0
		p.TotalBet = 0
		p.Folded = false
		p.AllIn = false
		p.Acted = false
	}
	r.eng = nil
	r.started = false
}
