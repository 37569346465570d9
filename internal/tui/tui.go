// Package tui implements the interactive websocket client: a bubbletea
// program with a lobby view and a table view. All game state is
// server-authoritative; the client only renders snapshots and sends
// commands.
package tui

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/gorilla/websocket"

	"github.com/puarinanhh/texas-hold-em/internal/engine"
	"github.com/puarinanhh/texas-hold-em/internal/server"
	"github.com/puarinanhh/texas-hold-em/internal/session"
)

// Run connects to the server and runs the interactive client until quit.
func Run(serverURL, playerName string, buyIn int) error {
	conn, _, err := websocket.DefaultDialer.Dial(serverURL, nil)
	if err != nil {
		return fmt.Errorf("connecting to %s: %w", serverURL, err)
	}
	defer func() { _ = conn.Close() }()

	m := newModel(conn, playerName, buyIn)
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

// serverMsg wraps one inbound envelope.
type serverMsg struct {
	msg *server.Message
}

// connClosed signals the read loop ended.
type connClosed struct {
	err error
}

type model struct {
	conn       *websocket.Conn
	playerName string
	buyIn      int

	playerID string
	roomID   string
	rooms    []session.RoomInfo
	state    *engine.State
	winners  []engine.Winner

	input    textinput.Model
	status   string
	errText  string
	quitting bool
}

func newModel(conn *websocket.Conn, playerName string, buyIn int) *model {
	ti := textinput.New()
	ti.Placeholder = "create <room> | join <room-id> | start | check | call | raise <amount> | fold | all-in"
	ti.Focus()
	ti.CharLimit = 80
	ti.Width = 70
	ti.Prompt = "> "
	ti.PromptStyle = promptStyle

	return &model{
		conn:       conn,
		playerName: playerName,
		buyIn:      buyIn,
		input:      ti,
		status:     "connecting...",
	}
}

func (m *model) Init() tea.Cmd {
	return tea.Batch(m.readNext(), m.send(server.MessageTypeListRooms, nil), textinput.Blink)
}

// readNext waits for the next server message.
func (m *model) readNext() tea.Cmd {
	return func() tea.Msg {
		var msg server.Message
		if err := m.conn.ReadJSON(&msg); err != nil {
			return connClosed{err: err}
		}
		return serverMsg{msg: &msg}
	}
}

// send marshals and queues one outbound envelope.
func (m *model) send(messageType server.MessageType, data any) tea.Cmd {
	return func() tea.Msg {
		msg, err := server.NewMessage(messageType, data)
		if err != nil {
			return connClosed{err: err}
		}
		if err := m.conn.WriteJSON(msg); err != nil {
			return connClosed{err: err}
		}
		return nil
	}
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.quitting = true
			return m, tea.Quit
		case tea.KeyEnter:
			cmd := m.handleCommand(strings.TrimSpace(m.input.Value()))
			m.input.Reset()
			return m, cmd
		}

	case serverMsg:
		m.handleServerMessage(msg.msg)
		return m, m.readNext()

	case connClosed:
		m.errText = "connection closed"
		if msg.err != nil {
			m.errText = "connection closed: " + msg.err.Error()
		}
		m.quitting = true
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleCommand parses one line of user input into a client message.
func (m *model) handleCommand(line string) tea.Cmd {
	if line == "" {
		return nil
	}
	m.errText = ""

	fields := strings.Fields(line)
	switch fields[0] {
	case "quit", "exit":
		m.quitting = true
		return tea.Quit

	case "rooms":
		return m.send(server.MessageTypeListRooms, nil)

	case "create":
		name := "table"
		if len(fields) > 1 {
			name = fields[1]
		}
		return m.send(server.MessageTypeCreateRoom, server.CreateRoomData{
			Name:       name,
			PlayerName: m.playerName,
			BuyIn:      m.buyIn,
		})

	case "join":
		if len(fields) < 2 {
			m.errText = "usage: join <room-id>"
			return nil
		}
		return m.send(server.MessageTypeJoinRoom, server.JoinRoomData{
			RoomID:     m.resolveRoomID(fields[1]),
			PlayerName: m.playerName,
			BuyIn:      m.buyIn,
		})

	case "leave":
		m.roomID = ""
		m.state = nil
		m.winners = nil
		return m.send(server.MessageTypeLeaveRoom, nil)

	case "start":
		return m.send(server.MessageTypeStartHand, nil)

	case "fold", "check", "call", "all-in", "allin":
		action := fields[0]
		if action == "allin" {
			action = "all-in"
		}
		return m.send(server.MessageTypePlayerAction, server.PlayerActionData{Action: action})

	case "raise":
		if len(fields) < 2 {
			m.errText = "usage: raise <total-bet>"
			return nil
		}
		amount, err := strconv.Atoi(fields[1])
		if err != nil {
			m.errText = "raise amount must be a number"
			return nil
		}
		return m.send(server.MessageTypePlayerAction, server.PlayerActionData{
			Action: "raise",
			Amount: amount,
		})
	}

	m.errText = "unknown command: " + fields[0]
	return nil
}

// resolveRoomID lets the user join by list index as well as by full ID.
func (m *model) resolveRoomID(arg string) string {
	if idx, err := strconv.Atoi(arg); err == nil && idx >= 1 && idx <= len(m.rooms) {
		return m.rooms[idx-1].ID
	}
	return arg
}

func (m *model) handleServerMessage(msg *server.Message) {
	switch msg.Type {
	case server.MessageTypeWelcome:
		var data server.WelcomeData
		if json.Unmarshal(msg.Data, &data) == nil {
			m.playerID = data.PlayerID
			m.status = "connected as " + m.playerName
		}

	case server.MessageTypeRoomList:
		var data server.RoomListData
		if json.Unmarshal(msg.Data, &data) == nil {
			m.rooms = data.Rooms
		}

	case server.MessageTypeRoomJoined:
		var data server.RoomJoinedData
		if json.Unmarshal(msg.Data, &data) == nil {
			m.roomID = data.RoomID
			m.state = nil
			m.winners = nil
			m.status = fmt.Sprintf("in room %s (%d/%d players)",
				data.Room.Name, data.Room.PlayerCount, data.Room.MaxPlayers)
		}

	case server.MessageTypePlayerJoined:
		var data server.PlayerJoinedData
		if json.Unmarshal(msg.Data, &data) == nil {
			m.status = fmt.Sprintf("%s joined (%d/%d players)",
				data.PlayerName, data.Room.PlayerCount, data.Room.MaxPlayers)
		}

	case server.MessageTypePlayerLeft:
		m.status = "a player left the room"

	case server.MessageTypeGameState:
		var data server.GameStateData
		if json.Unmarshal(msg.Data, &data) == nil {
			m.state = &data.State
			m.winners = nil
		}

	case server.MessageTypeHandResult:
		var data server.HandResultData
		if json.Unmarshal(msg.Data, &data) == nil {
			m.state = &data.State
			m.winners = data.Winners
		}

	case server.MessageTypeError:
		var data server.ErrorData
		if json.Unmarshal(msg.Data, &data) == nil {
			m.errText = data.Message
		}
	}
}
