// Package main runs the arena: one skirmish on the terminal, or one skirmish
// per Telnet connection.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/arena/internal/config"
	"github.com/cory-johannsen/arena/internal/frontend/console"
	"github.com/cory-johannsen/arena/internal/frontend/handlers"
	"github.com/cory-johannsen/arena/internal/frontend/telnet"
	"github.com/cory-johannsen/arena/internal/game/combat"
	"github.com/cory-johannsen/arena/internal/game/roster"
	"github.com/cory-johannsen/arena/internal/observability"
	"github.com/cory-johannsen/arena/internal/scripting"
	"github.com/cory-johannsen/arena/internal/server"
	"github.com/cory-johannsen/arena/internal/skirmish"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	r, err := roster.Load(cfg.Arena.Roster)
	if err != nil {
		logger.Fatal("loading roster", zap.Error(err))
	}
	logger.Info("roster loaded",
		zap.String("path", cfg.Arena.Roster),
		zap.Int("combatants", len(r.Combatants)),
	)

	var policy combat.Policy
	if cfg.Arena.ScriptDir != "" {
		luaPolicy, err := scripting.NewPolicy(cfg.Arena.ScriptDir, cfg.Arena.InstructionLimit, logger,
			scripting.WithSeed(cfg.Arena.Seed))
		if err != nil {
			logger.Fatal("loading policy scripts", zap.Error(err))
		}
		defer luaPolicy.Close()
		policy = luaPolicy
		logger.Info("scripted policy loaded",
			zap.String("dir", cfg.Arena.ScriptDir),
			zap.Uint64("seed", cfg.Arena.Seed),
		)
	}

	lifecycle := server.NewLifecycle(logger)
	switch cfg.Frontend.Mode {
	case config.ModeTelnet:
		handler := handlers.NewSkirmishHandler(r, policy, logger)
		acceptor := telnet.NewAcceptor(cfg.Telnet, handler, logger)
		lifecycle.Add("telnet", &server.FuncService{
			StartFn: acceptor.ListenAndServe,
			StopFn:  acceptor.Stop,
		})
	case config.ModeConsole:
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		lifecycle.Add("console", &server.FuncService{
			StartFn: func() error { return runConsole(ctx, cfg.Arena, r, policy, logger) },
			StopFn:  cancel,
		})
	}

	logger.Info("arena initialized",
		zap.String("mode", cfg.Frontend.Mode),
		zap.Duration("startup", time.Since(start)),
	)

	if err := lifecycle.Run(context.Background()); err != nil {
		logger.Fatal("arena error", zap.Error(err))
	}
}

// runConsole plays one skirmish on stdin/stdout.
func runConsole(ctx context.Context, cfg config.ArenaConfig, r *roster.Roster, policy combat.Policy, logger *zap.Logger) error {
	chars, err := r.Build()
	if err != nil {
		return err
	}
	term := console.New(console.NewStdio(os.Stdin, os.Stdout))

	name := cfg.PlayerName
	if name == "" {
		if name, err = skirmish.AskName(ctx, term, chars); err != nil {
			return err
		}
	}
	_, err = skirmish.Run(ctx, term, chars, skirmish.Options{
		PlayerName: name,
		Policy:     policy,
		Logger:     logger,
	})
	return err
}
