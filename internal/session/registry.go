// Package session orchestrates rooms and the hands played in them. The
// registry owns the room map and the player-to-room index; each room owns an
// optional active engine. Deleting an empty room deletes its engine with it.
package session

import (
	"errors"
	rand "math/rand/v2"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/puarinanhh/texas-hold-em/internal/engine"
	"github.com/puarinanhh/texas-hold-em/internal/roomid"
)

const (
	defaultMaxPlayers = 6
	defaultSmallBlind = 10
	defaultBigBlind   = 20
)

var (
	ErrRoomNotFound   = errors.New("room not found")
	ErrRoomFull       = errors.New("room is full")
	ErrAlreadyStarted = errors.New("game already started")
	ErrAlreadyInRoom  = errors.New("already in room")
	ErrNotEnough      = errors.New("need at least 2 players")
	ErrNoHand         = errors.New("game not started")
)

// Registry owns all rooms and serializes hand orchestration per room. Each
// room's engine is fully independent; no state is shared across rooms.
type Registry struct {
	logger *log.Logger
	newRNG func() *rand.Rand
	clock  quartz.Clock
	delay  time.Duration

	mu          sync.Mutex
	rooms       map[string]*Room
	playerRooms map[string]string
}

// Option configures a Registry.
type Option func(*Registry)

// WithClock injects the clock used for the pause between showdown and the
// next hand. Tests supply a quartz mock.
func WithClock(clock quartz.Clock) Option {
	return func(r *Registry) { r.clock = clock }
}

// WithNextHandDelay sets how long a finished hand stays visible before the
// room resets. Zero resets immediately.
func WithNextHandDelay(d time.Duration) Option {
	return func(r *Registry) { r.delay = d }
}

// NewRegistry creates an empty room registry. newRNG is called once per hand
// to obtain the random source for that hand's shuffle and dealer selection;
// production passes randutil.NewSecure, tests a fixed-seed constructor.
func NewRegistry(logger *log.Logger, newRNG func() *rand.Rand, opts ...Option) *Registry {
	r := &Registry{
		logger:      logger.WithPrefix("session"),
		newRNG:      newRNG,
		clock:       quartz.NewReal(),
		delay:       5 * time.Second,
		rooms:       make(map[string]*Room),
		playerRooms: make(map[string]string),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// CreateRoom registers a new empty room. Non-positive settings fall back to
// defaults.
func (r *Registry) CreateRoom(name string, maxPlayers, smallBlind, bigBlind int) RoomInfo {
	if maxPlayers <= 0 {
		maxPlayers = defaultMaxPlayers
	}
	if smallBlind <= 0 {
		smallBlind = defaultSmallBlind
	}
	if bigBlind <= 0 {
		bigBlind = defaultBigBlind
	}

	room := &Room{
		ID:         roomid.New(),
		Name:       name,
		MaxPlayers: maxPlayers,
		SmallBlind: smallBlind,
		BigBlind:   bigBlind,
	}

	r.mu.Lock()
	r.rooms[room.ID] = room
	r.mu.Unlock()

	r.logger.Info("room created", "room", room.ID, "name", name,
		"small_blind", smallBlind, "big_blind", bigBlind)
	return room.Info()
}

// JoinRoom seats a player in a room with the given buy-in, assigning the
// lowest free seat.
func (r *Registry) JoinRoom(roomID, playerID, playerName string, buyIn int) (RoomInfo, error) {
	room, err := r.room(roomID)
	if err != nil {
		return RoomInfo{}, err
	}

	room.mu.Lock()
	defer room.mu.Unlock()

	if len(room.seats) >= room.MaxPlayers {
		return RoomInfo{}, ErrRoomFull
	}
	if room.started {
		return RoomInfo{}, ErrAlreadyStarted
	}
	for _, p := range room.seats {
		if p.ID == playerID {
			return RoomInfo{}, ErrAlreadyInRoom
		}
	}

	room.seats = append(room.seats, &engine.Player{
		ID:    playerID,
		Name:  playerName,
		Chips: buyIn,
		Seat:  room.lowestFreeSeat(),
	})

	r.mu.Lock()
	r.playerRooms[playerID] = roomID
	r.mu.Unlock()

	r.logger.Info("player joined", "room", roomID, "player", playerName, "buy_in", buyIn)
	return room.info(), nil
}

// LeaveRoom removes a player from whatever room they are in. An emptied room
// is deleted together with any engine it owns. The second return is the
// remaining room info, nil when the room was deleted.
func (r *Registry) LeaveRoom(playerID string) (string, *RoomInfo, bool) {
	r.mu.Lock()
	roomID, ok := r.playerRooms[playerID]
	if !ok {
		r.mu.Unlock()
		return "", nil, false
	}
	delete(r.playerRooms, playerID)
	room := r.rooms[roomID]
	r.mu.Unlock()

	if room == nil {
		return "", nil, false
	}

	room.mu.Lock()
	for i, p := range room.seats {
		if p.ID == playerID {
			room.seats = append(room.seats[:i], room.seats[i+1:]...)
			break
		}
	}
	empty := len(room.seats) == 0
	if empty {
		room.eng = nil
	}
	info := room.info()
	room.mu.Unlock()

	if empty {
		r.mu.Lock()
		delete(r.rooms, roomID)
		r.mu.Unlock()
		r.logger.Info("room deleted", "room", roomID)
		return roomID, nil, true
	}

	r.logger.Info("player left", "room", roomID, "player", playerID)
	return roomID, &info, true
}

// Rooms lists all rooms for the lobby.
func (r *Registry) Rooms() []RoomInfo {
	r.mu.Lock()
	rooms := make([]*Room, 0, len(r.rooms))
	for _, room := range r.rooms {
		rooms = append(rooms, room)
	}
	r.mu.Unlock()

	infos := make([]RoomInfo, len(rooms))
	for i, room := range rooms {
		infos[i] = room.Info()
	}
	return infos
}

// RoomByID returns a room by its identifier.
func (r *Registry) RoomByID(roomID string) (*Room, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	room, ok := r.rooms[roomID]
	return room, ok
}

// RoomByPlayer returns the room a player is seated in.
func (r *Registry) RoomByPlayer(playerID string) (*Room, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	roomID, ok := r.playerRooms[playerID]
	if !ok {
		return nil, false
	}
	room, ok := r.rooms[roomID]
	return room, ok
}

// StartHand begins a hand in the room: it requires at least two funded
// players and no hand in progress, picks a uniformly random dealer seat and
// binds a fresh engine to the room.
func (r *Registry) StartHand(roomID string) (engine.State, error) {
	room, err := r.room(roomID)
	if err != nil {
		return engine.State{}, err
	}

	room.mu.Lock()
	defer room.mu.Unlock()

	if room.started {
		return engine.State{}, ErrAlreadyStarted
	}
	funded := 0
	for _, p := range room.seats {
		if p.Chips > 0 {
			funded++
		}
	}
	if funded < 2 {
		return engine.State{}, ErrNotEnough
	}

	rng := r.newRNG()
	dealer := rng.IntN(funded)

	room.eng = engine.New(rng, room.seats, dealer, room.SmallBlind, room.BigBlind)
	state, err := room.eng.StartHand()
	if err != nil {
		room.eng = nil
		return engine.State{}, err
	}
	room.started = true

	r.logger.Info("hand started", "room", roomID, "players", funded, "dealer", dealer)
	return state, nil
}

// ActionResult is the outcome of one applied action. Winners is non-nil
// exactly when this action ended the hand.
type ActionResult struct {
	State        engine.State
	Winners      []engine.Winner
	HandComplete bool
}

// ApplyAction forwards a player action to the room's engine. When the action
// brings the hand to showdown, winners are determined and winnings
// distributed exactly once, and the room is scheduled to reset after the
// configured delay.
func (r *Registry) ApplyAction(roomID, playerID string, action engine.Action, amount int) (*ActionResult, error) {
	room, err := r.room(roomID)
	if err != nil {
		return nil, err
	}

	room.mu.Lock()
	defer room.mu.Unlock()

	if room.eng == nil {
		return nil, ErrNoHand
	}

	state, err := room.eng.ApplyAction(playerID, action, amount)
	if err != nil {
		return nil, err
	}

	if !room.eng.HandComplete() {
		return &ActionResult{State: state}, nil
	}

	// The transition to showdown happens on exactly one action, so the
	// winners are paid exactly once.
	winners, err := room.eng.DetermineWinners()
	if err != nil {
		return nil, err
	}
	room.eng.DistributeWinnings(winners)
	room.syncChips()

	r.logger.Info("hand complete", "room", roomID, "winners", len(winners),
		"pot", state.Pot)

	finalState := room.eng.State()

	if r.delay > 0 {
		r.clock.AfterFunc(r.delay, func() { r.EndHand(roomID) })
	} else {
		room.endHandLocked()
	}

	return &ActionResult{
		State:        finalState,
		Winners:      winners,
		HandComplete: true,
	}, nil
}

// EndHand resets the room after a completed hand. Chip balances survive; the
// engine instance is discarded.
func (r *Registry) EndHand(roomID string) {
	room, err := r.room(roomID)
	if err != nil {
		return
	}
	room.mu.Lock()
	room.endHandLocked()
	room.mu.Unlock()
	r.logger.Debug("room reset for next hand", "room", roomID)
}

// StateForPlayer returns the player-scoped snapshot of the room's active
// hand: the requesting player's own hole cards only.
func (r *Registry) StateForPlayer(roomID, playerID string) (engine.State, error) {
	room, err := r.room(roomID)
	if err != nil {
		return engine.State{}, err
	}

	room.mu.Lock()
	defer room.mu.Unlock()
	if room.eng == nil {
		return engine.State{}, ErrNoHand
	}
	return room.eng.StateForPlayer(playerID), nil
}

func (r *Registry) room(roomID string) (*Room, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	room, ok := r.rooms[roomID]
	if !ok {
		return nil, ErrRoomNotFound
	}
	return room, nil
}
