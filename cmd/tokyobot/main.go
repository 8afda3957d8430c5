package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/monodyle/tokyo-go/agent"
	"github.com/monodyle/tokyo-go/analyzer"
	"github.com/monodyle/tokyo-go/config"
	"github.com/monodyle/tokyo-go/ipc"
	"github.com/monodyle/tokyo-go/rules"
)

const banner = `
████████╗ ██████╗ ██╗  ██╗██╗   ██╗ ██████╗
╚══██╔══╝██╔═══██╗██║ ██╔╝╚██╗ ██╔╝██╔═══██╗
   ██║   ██║   ██║█████╔╝  ╚████╔╝ ██║   ██║
   ██║   ██║   ██║██╔═██╗   ╚██╔╝  ██║   ██║
   ██║   ╚██████╔╝██║  ██╗   ██║   ╚██████╔╝
   ╚═╝    ╚═════╝ ╚═╝  ╚═╝   ╚═╝    ╚═════╝

Doctrine-Driven Arena Bot`

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))
	slog.SetDefault(logger)

	fmt.Println(banner)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	engine, err := rules.NewEngine(rules.DefaultRules())
	if err != nil {
		slog.Error("failed to compile default rules", "error", err)
		os.Exit(1)
	}

	strategist := agent.NewStrategist(engine, cfg.DoctrineFile)
	if cfg.DoctrineFile != "" {
		if err := strategist.Reload(); err != nil {
			slog.Error("failed to load doctrine", "path", cfg.DoctrineFile, "error", err)
			os.Exit(1)
		}
	}

	// SIGHUP re-reads the doctrine file without dropping the connection.
	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)
	go strategist.Start(ctx, hup)

	slog.Info("starting tokyo-go",
		"server", cfg.Endpoint.Host,
		"name", cfg.Endpoint.Name,
		"doctrine", strategist.Doctrine().Name,
		"tick", cfg.TickInterval,
	)

	runBot(ctx, cfg, engine)
	slog.Info("shutting down")
}

// runBot keeps a session alive until ctx is cancelled, reconnecting after
// every drop.
func runBot(ctx context.Context, cfg config.Config, engine *rules.Engine) {
	for {
		if ctx.Err() != nil {
			return
		}
		logger := slog.With("session", uuid.NewString())
		err := botSession(ctx, cfg, engine, logger)
		if ctx.Err() != nil {
			return
		}
		logger.Warn("bot session ended, reconnecting", "err", err, "delay", cfg.ReconnectDelay)

		select {
		case <-ctx.Done():
			return
		case <-time.After(cfg.ReconnectDelay):
		}
	}
}

func botSession(ctx context.Context, cfg config.Config, engine *rules.Engine, logger *slog.Logger) error {
	conn, err := ipc.Dial(ctx, cfg.Endpoint)
	if err != nil {
		return fmt.Errorf("dial: %w", err)
	}
	defer conn.CloseNow()
	conn.SetLogger(logger)

	logger.Info("connected")

	// Each session starts with a fresh world model; the rules carry over.
	bot := agent.New(engine, analyzer.DefaultConfig())
	bot.Logger = logger
	err = bot.Run(ctx, conn, cfg.TickInterval)
	if errors.Is(err, agent.ErrConnectionClosed) {
		logger.Info("server closed the connection")
	}
	return err
}
