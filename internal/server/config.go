package server

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// Config is the complete server configuration.
type Config struct {
	Server Settings     `hcl:"server,block"`
	Rooms  []RoomConfig `hcl:"room,block"`
}

// Settings contains server-level configuration.
type Settings struct {
	Address         string `hcl:"address,optional"`
	Port            int    `hcl:"port,optional"`
	LogLevel        string `hcl:"log_level,optional"`
	NextHandDelayMs int    `hcl:"next_hand_delay_ms,optional"`
}

// RoomConfig defines a room created at startup so players have somewhere to
// sit before anyone creates a room of their own.
type RoomConfig struct {
	Name       string `hcl:"name,label"`
	MaxPlayers int    `hcl:"max_players,optional"`
	SmallBlind int    `hcl:"small_blind"`
	BigBlind   int    `hcl:"big_blind"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		Server: Settings{
			Address:         "localhost",
			Port:            8080,
			LogLevel:        "info",
			NextHandDelayMs: 5000,
		},
		Rooms: []RoomConfig{
			{
				Name:       "main",
				MaxPlayers: 6,
				SmallBlind: 10,
				BigBlind:   20,
			},
		},
	}
}

// LoadConfig loads configuration from an HCL file, falling back to defaults
// when the file does not exist.
func LoadConfig(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config Config
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	if config.Server.Address == "" {
		config.Server.Address = "localhost"
	}
	if config.Server.Port == 0 {
		config.Server.Port = 8080
	}
	if config.Server.LogLevel == "" {
		config.Server.LogLevel = "info"
	}
	if config.Server.NextHandDelayMs == 0 {
		config.Server.NextHandDelayMs = 5000
	}
	for i := range config.Rooms {
		if config.Rooms[i].MaxPlayers == 0 {
			config.Rooms[i].MaxPlayers = 6
		}
	}

	return &config, nil
}
