// Package server exposes the session layer over websockets: a chi-routed
// HTTP surface with a /ws upgrade endpoint, a health check and a room
// listing. All game state leaving this package goes through the engine's
// per-player redacted snapshots.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/puarinanhh/texas-hold-em/internal/engine"
	"github.com/puarinanhh/texas-hold-em/internal/roomid"
	"github.com/puarinanhh/texas-hold-em/internal/session"
)

// Server multiplexes websocket clients onto the room registry.
type Server struct {
	registry   *session.Registry
	upgrader   websocket.Upgrader
	logger     *log.Logger
	httpServer *http.Server

	mu          sync.RWMutex
	connections map[*Connection]bool
	players     map[string]*Connection // playerID -> connection

	register   chan *Connection
	unregister chan *Connection

	ctx    context.Context
	cancel context.CancelFunc
}

// NewServer creates a server on top of an existing registry.
func NewServer(registry *session.Registry, logger *log.Logger) *Server {
	ctx, cancel := context.WithCancel(context.Background())
	return &Server{
		registry: registry,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Origin checking is the deployment proxy's concern.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		logger:      logger.WithPrefix("server"),
		connections: make(map[*Connection]bool),
		players:     make(map[string]*Connection),
		register:    make(chan *Connection),
		unregister:  make(chan *Connection),
		ctx:         ctx,
		cancel:      cancel,
	}
}

// Router returns the HTTP routes: websocket upgrade, health check and a
// read-only room listing for lobby polling.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Get("/ws", s.handleWebSocket)
	r.Get("/healthz", s.handleHealth)
	r.Get("/rooms", s.handleRooms)
	return r
}

// Start runs the connection lifecycle loop and serves HTTP on addr,
// blocking until the listener fails or Shutdown is called.
func (s *Server) Start(addr string) error {
	go s.run()

	s.httpServer = &http.Server{Addr: addr, Handler: s.Router()}
	s.logger.Info("starting server", "addr", addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown stops accepting connections and closes the existing ones.
func (s *Server) Shutdown(ctx context.Context) error {
	s.cancel()

	s.mu.Lock()
	for conn := range s.connections {
		_ = conn.Close()
	}
	s.mu.Unlock()

	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}

// run owns the connection maps.
func (s *Server) run() {
	for {
		select {
		case conn := <-s.register:
			s.mu.Lock()
			s.connections[conn] = true
			s.players[conn.PlayerID()] = conn
			total := len(s.connections)
			s.mu.Unlock()
			s.logger.Info("client connected", "player", conn.PlayerID(), "total", total)

		case conn := <-s.unregister:
			s.mu.Lock()
			_, known := s.connections[conn]
			if known {
				delete(s.connections, conn)
				delete(s.players, conn.PlayerID())
			}
			total := len(s.connections)
			s.mu.Unlock()

			if known {
				s.dropPlayer(conn.PlayerID())
				_ = conn.Close()
				s.logger.Info("client disconnected", "player", conn.PlayerID(), "total", total)
			}

		case <-s.ctx.Done():
			return
		}
	}
}

// dropPlayer removes a disconnected player from their room and notifies the
// remaining players.
func (s *Server) dropPlayer(playerID string) {
	roomID, info, ok := s.registry.LeaveRoom(playerID)
	if !ok {
		return
	}
	if info != nil {
		s.broadcastToRoom(roomID, mustMessage(MessageTypePlayerLeft, PlayerLeftData{
			PlayerID: playerID,
			Room:     info,
		}))
	}
	s.broadcastRoomList()
}

// HTTP handlers

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("failed to upgrade connection", "error", err)
		return
	}

	client := NewConnection(conn, roomid.New(), s, s.logger)
	s.register <- client
	client.Start()

	_ = client.SendMessage(mustMessage(MessageTypeWelcome, WelcomeData{PlayerID: client.PlayerID()}))
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleRooms(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(RoomListData{Rooms: s.registry.Rooms()}); err != nil {
		s.logger.Error("failed to encode room list", "error", err)
	}
}

// Websocket message handlers

func (s *Server) handleCreateRoom(c *Connection, data CreateRoomData) {
	info := s.registry.CreateRoom(data.Name, data.MaxPlayers, data.SmallBlind, data.BigBlind)

	// The creator sits down immediately.
	joined, err := s.registry.JoinRoom(info.ID, c.PlayerID(), data.PlayerName, data.BuyIn)
	if err != nil {
		c.sendError("join_failed", err.Error())
		return
	}

	_ = c.SendMessage(mustMessage(MessageTypeRoomJoined, RoomJoinedData{
		RoomID:   info.ID,
		PlayerID: c.PlayerID(),
		Room:     joined,
	}))
	s.broadcastRoomList()
}

func (s *Server) handleJoinRoom(c *Connection, data JoinRoomData) {
	info, err := s.registry.JoinRoom(data.RoomID, c.PlayerID(), data.PlayerName, data.BuyIn)
	if err != nil {
		c.sendError("join_failed", err.Error())
		return
	}

	_ = c.SendMessage(mustMessage(MessageTypeRoomJoined, RoomJoinedData{
		RoomID:   data.RoomID,
		PlayerID: c.PlayerID(),
		Room:     info,
	}))
	s.broadcastToRoom(data.RoomID, mustMessage(MessageTypePlayerJoined, PlayerJoinedData{
		PlayerID:   c.PlayerID(),
		PlayerName: data.PlayerName,
		Room:       info,
	}))
	s.broadcastRoomList()
}

func (s *Server) handleLeaveRoom(c *Connection) {
	s.dropPlayer(c.PlayerID())
}

func (s *Server) handleListRooms(c *Connection) {
	_ = c.SendMessage(mustMessage(MessageTypeRoomList, RoomListData{Rooms: s.registry.Rooms()}))
}

func (s *Server) handleStartHand(c *Connection) {
	room, ok := s.registry.RoomByPlayer(c.PlayerID())
	if !ok {
		c.sendError("not_in_room", "you are not in a room")
		return
	}

	if _, err := s.registry.StartHand(room.ID); err != nil {
		c.sendError("start_failed", err.Error())
		return
	}

	s.broadcastGameState(room.ID)
	s.broadcastRoomList()
}

func (s *Server) handlePlayerAction(c *Connection, data PlayerActionData) {
	room, ok := s.registry.RoomByPlayer(c.PlayerID())
	if !ok {
		c.sendError("not_in_room", "you are not in a room")
		return
	}

	action, err := engine.ParseAction(data.Action)
	if err != nil {
		c.sendError("invalid_action", err.Error())
		return
	}

	result, err := s.registry.ApplyAction(room.ID, c.PlayerID(), action, data.Amount)
	if err != nil {
		// Engine rejections are relayed verbatim to the offending client.
		c.sendError(actionErrorCode(err), err.Error())
		return
	}

	s.broadcastGameState(room.ID)

	if result.HandComplete {
		s.broadcastToRoom(room.ID, mustMessage(MessageTypeHandResult, HandResultData{
			RoomID:  room.ID,
			Winners: result.Winners,
			State:   redactAll(result.State),
		}))
		s.broadcastRoomList()
	}
}

// Broadcast helpers

// broadcastGameState sends each seated player their own redacted snapshot.
func (s *Server) broadcastGameState(roomID string) {
	room, err := s.roomByID(roomID)
	if err != nil {
		return
	}

	for _, p := range room.Players() {
		state, err := s.registry.StateForPlayer(roomID, p.ID)
		if err != nil {
			return
		}
		s.sendToPlayer(p.ID, mustMessage(MessageTypeGameState, GameStateData{
			RoomID: roomID,
			State:  state,
		}))
	}
}

func (s *Server) broadcastToRoom(roomID string, msg *Message) {
	room, err := s.roomByID(roomID)
	if err != nil {
		return
	}
	for _, p := range room.Players() {
		s.sendToPlayer(p.ID, msg)
	}
}

func (s *Server) broadcastRoomList() {
	msg := mustMessage(MessageTypeRoomList, RoomListData{Rooms: s.registry.Rooms()})

	s.mu.RLock()
	conns := make([]*Connection, 0, len(s.connections))
	for conn := range s.connections {
		conns = append(conns, conn)
	}
	s.mu.RUnlock()

	for _, conn := range conns {
		_ = conn.SendMessage(msg)
	}
}

func (s *Server) sendToPlayer(playerID string, msg *Message) {
	s.mu.RLock()
	conn := s.players[playerID]
	s.mu.RUnlock()
	if conn != nil {
		_ = conn.SendMessage(msg)
	}
}

func (s *Server) roomByID(roomID string) (*session.Room, error) {
	if room, ok := s.registry.RoomByID(roomID); ok {
		return room, nil
	}
	return nil, fmt.Errorf("room %s not found", roomID)
}

// redactAll strips every player's hole cards from a state snapshot. Used for
// room-wide messages where winner hands are carried separately.
func redactAll(state engine.State) engine.State {
	clone := state.Clone()
	for _, p := range clone.Players {
		p.Cards = nil
	}
	return clone
}

// actionErrorCode maps engine rejection kinds onto protocol error codes.
func actionErrorCode(err error) string {
	var engErr *engine.Error
	if errors.As(err, &engErr) {
		switch engErr.Kind {
		case engine.KindValidation:
			return "invalid_action"
		case engine.KindState:
			return "out_of_turn"
		case engine.KindRule:
			return "rule_violation"
		}
	}
	return "action_rejected"
}

// mustMessage builds an envelope for payload types that cannot fail to
// marshal.
func mustMessage(messageType MessageType, data any) *Message {
	msg, err := NewMessage(messageType, data)
	if err != nil {
		panic(err)
	}
	return msg
}
