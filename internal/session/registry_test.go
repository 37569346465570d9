package session

import (
	"context"
	"io"
	rand "math/rand/v2"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/puarinanhh/texas-hold-em/internal/engine"
	"github.com/puarinanhh/texas-hold-em/internal/randutil"
)

func testLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
}

func seededRNG(seed int64) func() *rand.Rand {
	return func() *rand.Rand { return randutil.New(seed) }
}

func TestCreateRoomAppliesDefaults(t *testing.T) {
	t.Parallel()
	reg := NewRegistry(testLogger(), seededRNG(1))

	info := reg.CreateRoom("main", 0, 0, 0)
	assert.NotEmpty(t, info.ID)
	assert.Equal(t, "main", info.Name)
	assert.Equal(t, defaultMaxPlayers, info.MaxPlayers)
	assert.Equal(t, defaultSmallBlind, info.SmallBlind)
	assert.Equal(t, defaultBigBlind, info.BigBlind)
	assert.False(t, info.Started)
	assert.Zero(t, info.PlayerCount)

	custom := reg.CreateRoom("high stakes", 9, 50, 100)
	assert.Equal(t, 9, custom.MaxPlayers)
	assert.Equal(t, 50, custom.SmallBlind)
	assert.Equal(t, 100, custom.BigBlind)
	assert.NotEqual(t, info.ID, custom.ID)

	assert.Len(t, reg.Rooms(), 2)
}

func TestJoinRoomSeating(t *testing.T) {
	t.Parallel()
	reg := NewRegistry(testLogger(), seededRNG(1))
	info := reg.CreateRoom("main", 2, 10, 20)

	joined, err := reg.JoinRoom(info.ID, "p1", "alice", 1000)
	require.NoError(t, err)
	assert.Equal(t, 1, joined.PlayerCount)

	_, err = reg.JoinRoom(info.ID, "p1", "alice", 1000)
	assert.ErrorIs(t, err, ErrAlreadyInRoom)

	_, err = reg.JoinRoom("no-such-room", "p2", "bob", 1000)
	assert.ErrorIs(t, err, ErrRoomNotFound)

	_, err = reg.JoinRoom(info.ID, "p2", "bob", 1000)
	require.NoError(t, err)

	_, err = reg.JoinRoom(info.ID, "p3", "carol", 1000)
	assert.ErrorIs(t, err, ErrRoomFull)

	room, ok := reg.RoomByPlayer("p1")
	require.True(t, ok)
	assert.Equal(t, info.ID, room.ID)
}

func TestJoinAssignsLowestFreeSeat(t *testing.T) {
	t.Parallel()
	reg := NewRegistry(testLogger(), seededRNG(1))
	info := reg.CreateRoom("main", 6, 10, 20)

	for _, p := range []struct{ id, name string }{
		{"p1", "alice"}, {"p2", "bob"}, {"p3", "carol"},
	} {
		_, err := reg.JoinRoom(info.ID, p.id, p.name, 1000)
		require.NoError(t, err)
	}

	// Vacating the middle seat and rejoining reuses it.
	_, _, removed := reg.LeaveRoom("p2")
	require.True(t, removed)
	_, err := reg.JoinRoom(info.ID, "p4", "dave", 1000)
	require.NoError(t, err)

	room, ok := reg.RoomByID(info.ID)
	require.True(t, ok)
	seatByID := map[string]int{}
	for _, p := range room.Players() {
		seatByID[p.ID] = p.Seat
	}
	assert.Equal(t, 0, seatByID["p1"])
	assert.Equal(t, 1, seatByID["p4"])
	assert.Equal(t, 2, seatByID["p3"])
}

func TestLeaveRoomDeletesEmptyRoom(t *testing.T) {
	t.Parallel()
	reg := NewRegistry(testLogger(), seededRNG(1))
	info := reg.CreateRoom("main", 6, 10, 20)

	_, _, removed := reg.LeaveRoom("ghost")
	assert.False(t, removed)

	_, err := reg.JoinRoom(info.ID, "p1", "alice", 1000)
	require.NoError(t, err)

	roomID, remaining, removed := reg.LeaveRoom("p1")
	require.True(t, removed)
	assert.Equal(t, info.ID, roomID)
	assert.Nil(t, remaining, "emptied room should be deleted, not reported")

	assert.Empty(t, reg.Rooms())
	_, ok := reg.RoomByID(info.ID)
	assert.False(t, ok)
}

func TestStartHandRequiresTwoFundedPlayers(t *testing.T) {
	t.Parallel()
	reg := NewRegistry(testLogger(), seededRNG(1))
	info := reg.CreateRoom("main", 6, 10, 20)

	_, err := reg.StartHand(info.ID)
	assert.ErrorIs(t, err, ErrNotEnough)

	_, err = reg.JoinRoom(info.ID, "p1", "alice", 1000)
	require.NoError(t, err)
	_, err = reg.JoinRoom(info.ID, "p2", "bob", 0)
	require.NoError(t, err)

	// A seated but broke player does not count.
	_, err = reg.StartHand(info.ID)
	assert.ErrorIs(t, err, ErrNotEnough)

	_, err = reg.JoinRoom(info.ID, "p3", "carol", 1000)
	require.NoError(t, err)

	state, err := reg.StartHand(info.ID)
	require.NoError(t, err)
	assert.Equal(t, engine.Preflop, state.Phase)
	assert.Len(t, state.Players, 2, "unfunded player excluded from the hand")

	_, err = reg.StartHand(info.ID)
	assert.ErrorIs(t, err, ErrAlreadyStarted)
}

func TestApplyActionWithoutHand(t *testing.T) {
	t.Parallel()
	reg := NewRegistry(testLogger(), seededRNG(1))
	info := reg.CreateRoom("main", 6, 10, 20)
	_, err := reg.JoinRoom(info.ID, "p1", "alice", 1000)
	require.NoError(t, err)

	_, err = reg.ApplyAction(info.ID, "p1", engine.Fold, 0)
	assert.ErrorIs(t, err, ErrNoHand)

	_, err = reg.StateForPlayer(info.ID, "p1")
	assert.ErrorIs(t, err, ErrNoHand)
}

// foldOut folds every player in turn order until one remains, returning the
// final result.
func foldOut(t *testing.T, reg *Registry, roomID string, state engine.State) *ActionResult {
	t.Helper()
	for i := 0; i < 10; i++ {
		require.GreaterOrEqual(t, state.Current, 0, "hand stuck without a current player")
		actor := state.Players[state.Current].ID
		res, err := reg.ApplyAction(roomID, actor, engine.Fold, 0)
		require.NoError(t, err)
		if res.HandComplete {
			return res
		}
		state = res.State
	}
	t.Fatal("hand did not complete")
	return nil
}

func TestHandPaysWinnersExactlyOnce(t *testing.T) {
	t.Parallel()
	reg := NewRegistry(testLogger(), seededRNG(42), WithNextHandDelay(0))
	info := reg.CreateRoom("main", 6, 10, 20)
	for _, p := range []struct{ id, name string }{
		{"p1", "alice"}, {"p2", "bob"}, {"p3", "carol"},
	} {
		_, err := reg.JoinRoom(info.ID, p.id, p.name, 1000)
		require.NoError(t, err)
	}

	state, err := reg.StartHand(info.ID)
	require.NoError(t, err)

	res := foldOut(t, reg, info.ID, state)
	require.True(t, res.HandComplete)
	require.Len(t, res.Winners, 1)
	assert.Equal(t, 30, res.Winners[0].Amount, "winner collects both blinds")
	assert.Zero(t, res.State.Pot, "pot emptied after distribution")

	// With zero delay the room resets inline and chips persist on the roster.
	room, ok := reg.RoomByID(info.ID)
	require.True(t, ok)
	assert.False(t, room.Info().Started)

	total := 0
	for _, p := range room.Players() {
		total += p.Chips
		assert.Empty(t, p.Cards, "hole cards cleared between hands")
		assert.False(t, p.Folded)
	}
	assert.Equal(t, 3000, total, "chips conserved across the hand")

	winnerChips := 0
	for _, p := range room.Players() {
		if p.ID == res.Winners[0].PlayerID {
			winnerChips = p.Chips
		}
	}
	assert.Equal(t, 1010, winnerChips)
}

func TestNextHandDelayUsesClock(t *testing.T) {
	t.Parallel()
	mockClock := quartz.NewMock(t)
	reg := NewRegistry(testLogger(), seededRNG(42),
		WithClock(mockClock), WithNextHandDelay(5*time.Second))
	info := reg.CreateRoom("main", 6, 10, 20)
	for _, p := range []struct{ id, name string }{
		{"p1", "alice"}, {"p2", "bob"},
	} {
		_, err := reg.JoinRoom(info.ID, p.id, p.name, 1000)
		require.NoError(t, err)
	}

	state, err := reg.StartHand(info.ID)
	require.NoError(t, err)
	res := foldOut(t, reg, info.ID, state)
	require.True(t, res.HandComplete)

	// Until the delay elapses the finished hand stays visible.
	room, ok := reg.RoomByID(info.ID)
	require.True(t, ok)
	assert.True(t, room.Info().Started)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	mockClock.Advance(5 * time.Second).MustWait(ctx)

	assert.False(t, room.Info().Started)
	_, err = reg.StartHand(info.ID)
	assert.NoError(t, err, "room ready for the next hand after the delay")
}

func TestChipsPersistAcrossHands(t *testing.T) {
	t.Parallel()
	reg := NewRegistry(testLogger(), seededRNG(7), WithNextHandDelay(0))
	info := reg.CreateRoom("main", 6, 10, 20)
	for _, p := range []struct{ id, name string }{
		{"p1", "alice"}, {"p2", "bob"},
	} {
		_, err := reg.JoinRoom(info.ID, p.id, p.name, 500)
		require.NoError(t, err)
	}

	for hand := 0; hand < 3; hand++ {
		state, err := reg.StartHand(info.ID)
		require.NoError(t, err)
		foldOut(t, reg, info.ID, state)
	}

	room, ok := reg.RoomByID(info.ID)
	require.True(t, ok)
	total := 0
	for _, p := range room.Players() {
		total += p.Chips
	}
	assert.Equal(t, 1000, total, "chips conserved across multiple hands")
}

func TestStateForPlayerRedacts(t *testing.T) {
	t.Parallel()
	reg := NewRegistry(testLogger(), seededRNG(3))
	info := reg.CreateRoom("main", 6, 10, 20)
	for _, p := range []struct{ id, name string }{
		{"p1", "alice"}, {"p2", "bob"},
	} {
		_, err := reg.JoinRoom(info.ID, p.id, p.name, 1000)
		require.NoError(t, err)
	}
	_, err := reg.StartHand(info.ID)
	require.NoError(t, err)

	view, err := reg.StateForPlayer(info.ID, "p1")
	require.NoError(t, err)
	for _, p := range view.Players {
		if p.ID == "p1" {
			assert.Len(t, p.Cards, 2)
		} else {
			assert.Empty(t, p.Cards)
		}
	}
}

func TestJoinAfterHandStartedRejected(t *testing.T) {
	t.Parallel()
	reg := NewRegistry(testLogger(), seededRNG(1))
	info := reg.CreateRoom("main", 6, 10, 20)
	for _, p := range []struct{ id, name string }{
		{"p1", "alice"}, {"p2", "bob"},
	} {
		_, err := reg.JoinRoom(info.ID, p.id, p.name, 1000)
		require.NoError(t, err)
	}
	_, err := reg.StartHand(info.ID)
	require.NoError(t, err)

	_, err = reg.JoinRoom(info.ID, "p3", "carol", 1000)
	assert.ErrorIs(t, err, ErrAlreadyStarted)
}
