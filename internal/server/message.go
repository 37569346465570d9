package server

import (
	"encoding/json"
	"time"

	"github.com/puarinanhh/texas-hold-em/internal/engine"
	"github.com/puarinanhh/texas-hold-em/internal/session"
)

// MessageType discriminates the JSON envelope.
type MessageType string

// Client to server message types.
const (
	MessageTypeCreateRoom   MessageType = "create_room"
	MessageTypeJoinRoom     MessageType = "join_room"
	MessageTypeLeaveRoom    MessageType = "leave_room"
	MessageTypeListRooms    MessageType = "list_rooms"
	MessageTypeStartHand    MessageType = "start_hand"
	MessageTypePlayerAction MessageType = "player_action"
)

// Server to client message types.
const (
	MessageTypeWelcome      MessageType = "welcome"
	MessageTypeRoomList     MessageType = "room_list"
	MessageTypeRoomJoined   MessageType = "room_joined"
	MessageTypePlayerJoined MessageType = "player_joined"
	MessageTypePlayerLeft   MessageType = "player_left"
	MessageTypeGameState    MessageType = "game_state"
	MessageTypeHandResult   MessageType = "hand_result"
	MessageTypeError        MessageType = "error"
)

// Message is the wire envelope for both directions.
type Message struct {
	Type      MessageType     `json:"type"`
	Data      json.RawMessage `json:"data"`
	Timestamp time.Time       `json:"timestamp"`
}

// NewMessage wraps a payload in an envelope with the current timestamp.
func NewMessage(messageType MessageType, data any) (*Message, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return &Message{
		Type:      messageType,
		Data:      dataBytes,
		Timestamp: time.Now(),
	}, nil
}

// Client to server payloads.

type CreateRoomData struct {
	Name       string `json:"name"`
	MaxPlayers int    `json:"maxPlayers,omitempty"`
	SmallBlind int    `json:"smallBlind,omitempty"`
	BigBlind   int    `json:"bigBlind,omitempty"`
	PlayerName string `json:"playerName"`
	BuyIn      int    `json:"buyIn"`
}

type JoinRoomData struct {
	RoomID     string `json:"roomId"`
	PlayerName string `json:"playerName"`
	BuyIn      int    `json:"buyIn"`
}

type PlayerActionData struct {
	Action string `json:"action"`
	Amount int    `json:"amount,omitempty"`
}

// Server to client payloads.

type WelcomeData struct {
	PlayerID string `json:"playerId"`
}

type RoomListData struct {
	Rooms []session.RoomInfo `json:"rooms"`
}

type RoomJoinedData struct {
	RoomID   string           `json:"roomId"`
	PlayerID string           `json:"playerId"`
	Room     session.RoomInfo `json:"room"`
}

type PlayerJoinedData struct {
	PlayerID   string           `json:"playerId"`
	PlayerName string           `json:"playerName"`
	Room       session.RoomInfo `json:"room"`
}

type PlayerLeftData struct {
	PlayerID string            `json:"playerId"`
	Room     *session.RoomInfo `json:"room,omitempty"`
}

// GameStateData carries the per-player redacted snapshot after every state
// change. Each player receives their own view; hole cards of others are
// never included.
type GameStateData struct {
	RoomID string       `json:"roomId"`
	State  engine.State `json:"state"`
}

type HandResultData struct {
	RoomID  string          `json:"roomId"`
	Winners []engine.Winner `json:"winners"`
	State   engine.State    `json:"state"`
}

type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
