// Package handlers provides Telnet session handling.
package handlers

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cory-johannsen/arena/internal/frontend/console"
	"github.com/cory-johannsen/arena/internal/frontend/telnet"
	"github.com/cory-johannsen/arena/internal/game/combat"
	"github.com/cory-johannsen/arena/internal/game/roster"
	"github.com/cory-johannsen/arena/internal/skirmish"
)

var banner = telnet.Colorize(telnet.Bold+telnet.BrightCyan, "=== THE ARENA ===")

// SkirmishHandler implements telnet.SessionHandler. Every connection fights
// its own freshly built copy of the roster.
type SkirmishHandler struct {
	roster *roster.Roster
	policy combat.Policy
	logger *zap.Logger
}

// NewSkirmishHandler creates a SkirmishHandler.
//
// Precondition: r must be validated; logger must be non-nil. policy may be
// nil for the baseline automatic policy.
func NewSkirmishHandler(r *roster.Roster, policy combat.Policy, logger *zap.Logger) *SkirmishHandler {
	return &SkirmishHandler{roster: r, policy: policy, logger: logger}
}

// HandleSession asks for the player's name and runs one skirmish.
//
// Postcondition: Returns nil when the fight finished, or the error that ended
// the session early.
func (h *SkirmishHandler) HandleSession(ctx context.Context, conn *telnet.Conn) error {
	start := time.Now()
	sessionID := uuid.New().String()
	logger := h.logger.With(
		zap.String("remote_addr", conn.RemoteAddr().String()),
		zap.String("session", sessionID),
	)

	chars, err := h.roster.Build()
	if err != nil {
		return fmt.Errorf("building roster: %w", err)
	}

	term := console.New(conn)
	term.Write(banner)

	name, err := skirmish.AskName(ctx, term, chars)
	if err != nil {
		return fmt.Errorf("reading name: %w", err)
	}

	frame, err := skirmish.Run(ctx, term, chars, skirmish.Options{
		PlayerName: name,
		Policy:     h.policy,
		Logger:     logger,
		SessionID:  sessionID,
	})
	if err != nil {
		if ctx.Err() != nil {
			_ = conn.WriteLine(telnet.Colorize(telnet.Yellow, "Server shutting down. Goodbye!"))
		}
		return err
	}

	term.Write(telnet.Colorize(telnet.Cyan, "Goodbye!"))
	logger.Info("skirmish complete",
		zap.Int("rounds", frame.Round()),
		zap.Strings("survivors", frame.Survivors()),
		zap.Duration("session_duration", time.Since(start)),
	)
	return term.Err()
}
