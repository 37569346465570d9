package main

import (
	"context"
	"errors"
	"fmt"
	rand "math/rand/v2"
	"net/http"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/puarinanhh/texas-hold-em/cmd/holdem/shared"
	"github.com/puarinanhh/texas-hold-em/internal/randutil"
	"github.com/puarinanhh/texas-hold-em/internal/server"
	"github.com/puarinanhh/texas-hold-em/internal/session"
)

// ServeCmd runs the room server.
type ServeCmd struct {
	Config string `kong:"default='holdem.hcl',help='Path to HCL config file'"`
	Addr   string `kong:"help='Listen address, overrides config (e.g. :8080)'"`
	Debug  bool   `kong:"help='Enable debug logging'"`
	Seed   *int64 `kong:"help='Deterministic RNG seed (testing only; production uses crypto/rand)'"`
}

func (c *ServeCmd) Run() error {
	cfg, err := server.LoadConfig(c.Config)
	if err != nil {
		return err
	}

	level := cfg.Server.LogLevel
	if c.Debug {
		level = "debug"
	}
	logger := shared.SetupLogger(level)

	newRNG := randutil.NewSecure
	if c.Seed != nil {
		// Derive a distinct deterministic seed per hand.
		var mu sync.Mutex
		next := *c.Seed
		newRNG = func() *rand.Rand {
			mu.Lock()
			defer mu.Unlock()
			rng := randutil.New(next)
			next++
			return rng
		}
		logger.Warn("running with deterministic seed", "seed", *c.Seed)
	}

	registry := session.NewRegistry(logger, newRNG,
		session.WithNextHandDelay(time.Duration(cfg.Server.NextHandDelayMs)*time.Millisecond))

	for _, room := range cfg.Rooms {
		registry.CreateRoom(room.Name, room.MaxPlayers, room.SmallBlind, room.BigBlind)
	}

	addr := c.Addr
	if addr == "" {
		addr = fmt.Sprintf("%s:%d", cfg.Server.Address, cfg.Server.Port)
	}

	s := server.NewServer(registry, logger)

	logger.Info("starting holdem server",
		"addr", addr,
		"rooms", len(cfg.Rooms),
		"next_hand_delay_ms", cfg.Server.NextHandDelayMs)

	ctx := shared.SetupSignalHandler(logger)
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := s.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
