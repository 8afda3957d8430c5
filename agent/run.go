package agent

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/monodyle/tokyo-go/ipc"
	"github.com/monodyle/tokyo-go/model"
	"golang.org/x/sync/errgroup"
)

//go:generate go tool mockgen -destination=./mocks/transport_mock.go -package=mocks . CommandSender,Transport

// ErrConnectionClosed is returned by Run when the server ends the session.
var ErrConnectionClosed = errors.New("connection closed")

// CommandSender delivers one command to the server.
type CommandSender interface {
	Send(ctx context.Context, cmd model.GameCommand) error
}

// Transport is the connection Run drives; *ipc.Connection implements it.
type Transport interface {
	CommandSender
	RegisterHandler(msgType string, handler ipc.Handler)
	ReadLoop(ctx context.Context) error
}

// mailbox hands the newest snapshot from the read side to the decision loop.
// A snapshot not yet taken is overwritten by a newer one.
type mailbox chan model.ClientState

func newMailbox() mailbox { return make(mailbox, 1) }

// put must only be called from a single goroutine.
func (m mailbox) put(cs model.ClientState) {
	for {
		select {
		case m <- cs:
			return
		default:
		}
		select {
		case <-m:
		default:
		}
	}
}

// Run drives one session until the connection ends or ctx is cancelled.
// The read loop decodes server messages and posts snapshots; the decision
// loop ticks every interval and sends at most one command per tick.
func (a *Agent) Run(ctx context.Context, conn Transport, interval time.Duration) error {
	if interval < model.MinCommandInterval {
		interval = model.MinCommandInterval
	}
	box := newMailbox()

	// Read-side state, only touched by handlers on the read goroutine.
	var ownID uint32
	conn.RegisterHandler(ipc.TypeID, func(ctx context.Context, env ipc.Envelope) error {
		id, err := env.ID()
		if err != nil {
			return err
		}
		ownID = id
		a.Logger.Info("player id assigned", "id", id)
		return nil
	})
	conn.RegisterHandler(ipc.TypeState, func(ctx context.Context, env ipc.Envelope) error {
		gs, err := env.State()
		if err != nil {
			return err
		}
		box.put(model.ClientState{ID: ownID, GameState: gs})
		return nil
	})
	conn.RegisterHandler(ipc.TypeTeamNames, func(ctx context.Context, env ipc.Envelope) error {
		names, err := env.TeamNames()
		if err != nil {
			return err
		}
		a.Logger.Info("team names", "count", len(names), "names", names)
		return nil
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := conn.ReadLoop(gctx); err != nil {
			return err
		}
		return ErrConnectionClosed
	})
	g.Go(func() error {
		return a.decide(gctx, box, conn, interval)
	})
	return g.Wait()
}

// decide merges only snapshots that arrived since the previous tick; a tick
// without one sends nothing.
func (a *Agent) decide(ctx context.Context, box mailbox, sender CommandSender, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var fresh *model.ClientState
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case cs := <-box:
			fresh = &cs
		case now := <-ticker.C:
			if fresh == nil {
				continue
			}
			cs := *fresh
			fresh = nil

			cmd, ok := a.Tick(cs, now)
			if !ok {
				continue
			}
			if err := sender.Send(ctx, cmd); err != nil {
				return fmt.Errorf("send %s: %w", cmd, err)
			}
		}
	}
}
