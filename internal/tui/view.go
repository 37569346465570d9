package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/puarinanhh/texas-hold-em/internal/engine"
	"github.com/puarinanhh/texas-hold-em/poker"
)

var (
	titleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575")).Bold(true)
	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5F87"))
	potStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD700")).Bold(true)
	turnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#5FAFFF")).Bold(true)
	winnerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD700")).Bold(true)

	redCard   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5F5F"))
	blackCard = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))

	tableStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 2)
)

func (m *model) View() string {
	if m.quitting {
		if m.errText != "" {
			return errorStyle.Render(m.errText) + "\n"
		}
		return "bye\n"
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Texas Hold'em"))
	b.WriteString("\n\n")

	if m.state != nil {
		b.WriteString(m.tableView())
	} else {
		b.WriteString(m.lobbyView())
	}

	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(dimStyle.Render(m.status))
		b.WriteString("\n")
	}
	if m.errText != "" {
		b.WriteString(errorStyle.Render(m.errText))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	return b.String()
}

func (m *model) lobbyView() string {
	var b strings.Builder
	if m.roomID != "" {
		b.WriteString("Waiting for the hand to start. Type " + promptStyle.Render("start") + " when ready.\n")
		return b.String()
	}

	if len(m.rooms) == 0 {
		b.WriteString(dimStyle.Render("No open rooms. Type 'create <name>' to open one.") + "\n")
		return b.String()
	}

	b.WriteString("Open rooms:\n")
	for i, room := range m.rooms {
		status := "waiting"
		if room.Started {
			status = "playing"
		}
		b.WriteString(fmt.Sprintf("  %d. %-12s %d/%d players  blinds %d/%d  %s\n",
			i+1, room.Name, room.PlayerCount, room.MaxPlayers,
			room.SmallBlind, room.BigBlind, dimStyle.Render(status)))
		b.WriteString(dimStyle.Render("     "+room.ID) + "\n")
	}
	b.WriteString(dimStyle.Render("Join with 'join <number>' or 'join <room-id>'.") + "\n")
	return b.String()
}

func (m *model) tableView() string {
	st := m.state

	var b strings.Builder
	b.WriteString(fmt.Sprintf("Phase: %s    Pot: %s    To call: %d\n\n",
		st.Phase, potStyle.Render(fmt.Sprintf("%d", st.Pot)), st.CurrentBet))

	b.WriteString("Board: ")
	if len(st.Community) == 0 {
		b.WriteString(dimStyle.Render("(none)"))
	} else {
		b.WriteString(renderCards(st.Community))
	}
	b.WriteString("\n\n")

	for i, p := range st.Players {
		b.WriteString(m.playerLine(i, p))
		b.WriteString("\n")
	}

	if len(m.winners) > 0 {
		b.WriteString("\n")
		for _, w := range m.winners {
			b.WriteString(winnerStyle.Render(fmt.Sprintf("%s wins %d (%s)", w.PlayerName, w.Amount, w.HandName)))
			b.WriteString("\n")
		}
	}

	return tableStyle.Render(strings.TrimRight(b.String(), "\n"))
}

func (m *model) playerLine(idx int, p *engine.Player) string {
	marker := "  "
	switch idx {
	case m.state.Dealer:
		marker = "D "
	case m.state.SmallBlindIdx:
		marker = "sb"
	case m.state.BigBlindIdx:
		marker = "bb"
	}

	name := p.Name
	if p.ID == m.playerID {
		name += " (you)"
	}

	turn := " "
	if idx == m.state.Current {
		turn = turnStyle.Render("*")
	}

	line := fmt.Sprintf("%s %s %-20s chips %5d  bet %4d", turn, marker, name, p.Chips, p.CurrentBet)
	switch {
	case p.Folded:
		line += "  folded"
	case p.AllIn:
		line += "  all-in"
	}
	if len(p.Cards) > 0 {
		line += "  " + renderCards(p.Cards)
	}

	if p.Folded {
		return dimStyle.Render(line)
	}
	return line
}

func renderCards(cards []poker.Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		text := c.Rank.String() + c.Suit.Symbol()
		if c.Suit == poker.Hearts || c.Suit == poker.Diamonds {
			parts[i] = redCard.Render(text)
		} else {
			parts[i] = blackCard.Render(text)
		}
	}
	return strings.Join(parts, " ")
}
