package ipc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/coder/websocket"
	"github.com/monodyle/tokyo-go/model"
)

// Endpoint locates the game server and identifies the bot to it.
type Endpoint struct {
	Scheme string // "wss" unless overridden
	Host   string
	Key    string
	Name   string
}

// URL is scheme://host/socket?key=..&name=.. with both values escaped.
func (e Endpoint) URL() string {
	scheme := e.Scheme
	if scheme == "" {
		scheme = "wss"
	}
	u := url.URL{
		Scheme:   scheme,
		Host:     e.Host,
		Path:     "/socket",
		RawQuery: url.Values{"key": {e.Key}, "name": {e.Name}}.Encode(),
	}
	return u.String()
}

// Handler processes a received envelope.
type Handler func(ctx context.Context, env Envelope) error

// Connection is one websocket session with the game server.
type Connection struct {
	ws       *websocket.Conn
	handlers map[string]Handler
	logger   *slog.Logger
}

// Dial opens a session. The caller owns the returned connection and must
// Close it.
func Dial(ctx context.Context, ep Endpoint) (*Connection, error) {
	ws, _, err := websocket.Dial(ctx, ep.URL(), nil)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", ep.Host, err)
	}
	// Game states grow with the number of players and bullets.
	ws.SetReadLimit(1 << 20)
	return NewConnection(ws, nil), nil
}

func NewConnection(ws *websocket.Conn, handlers map[string]Handler) *Connection {
	if handlers == nil {
		handlers = make(map[string]Handler)
	}
	return &Connection{ws: ws, handlers: handlers, logger: slog.Default()}
}

// SetLogger routes the read loop's logs to l.
func (c *Connection) SetLogger(l *slog.Logger) { c.logger = l }

func (c *Connection) RegisterHandler(msgType string, handler Handler) {
	c.handlers[msgType] = handler
}

// Send writes one command frame. Safe to call while ReadLoop runs.
func (c *Connection) Send(ctx context.Context, cmd model.GameCommand) error {
	b, err := EncodeCommand(cmd)
	if err != nil {
		return err
	}
	if err := c.ws.Write(ctx, websocket.MessageText, b); err != nil {
		return fmt.Errorf("write %s: %w", cmd, err)
	}
	return nil
}

// ReadLoop blocks until the connection closes, errors, or ctx ends.
// Frames that fail to decode and frames nobody handles are logged and
// skipped.
func (c *Connection) ReadLoop(ctx context.Context) error {
	for {
		typ, frame, err := c.ws.Read(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if websocket.CloseStatus(err) == websocket.StatusNormalClosure {
				c.logger.Info("server closed connection")
				return nil
			}
			return fmt.Errorf("read: %w", err)
		}
		if typ != websocket.MessageText {
			c.logger.Warn("skipping non-text frame", "type", typ, "bytes", len(frame))
			continue
		}

		env, err := DecodeEnvelope(frame)
		if err != nil {
			c.logger.Warn("skipping malformed frame", "error", err, "bytes", len(frame))
			continue
		}

		handler, ok := c.handlers[env.Type]
		if !ok {
			c.logger.Warn("no handler for message type", "type", env.Type)
			continue
		}

		if err := handler(ctx, env); err != nil {
			if errors.Is(err, context.Canceled) {
				return err
			}
			c.logger.Error("handler error", "type", env.Type, "error", err)
		}
	}
}

// Close performs the closing handshake.
func (c *Connection) Close(reason string) error {
	return c.ws.Close(websocket.StatusNormalClosure, reason)
}

// CloseNow drops the connection without a handshake.
func (c *Connection) CloseNow() error {
	return c.ws.CloseNow()
}
