package main

import (
	"github.com/puarinanhh/texas-hold-em/internal/tui"
)

// ClientCmd connects to a server and plays interactively.
type ClientCmd struct {
	Server string `kong:"default='ws://localhost:8080/ws',help='WebSocket URL of the server'"`
	Name   string `kong:"required,help='Player name'"`
	BuyIn  int    `kong:"default='1000',help='Chips to buy in with'"`
}

func (c *ClientCmd) Run() error {
	return tui.Run(c.Server, c.Name, c.BuyIn)
}
