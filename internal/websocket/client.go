package websocket

import (
	"context"
	"time"

	ws "github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
)

const (
	sendBufferSize = 16
	pingInterval   = 30 * time.Second
	readLimit      = 512
)

// Client is one browser tab listening for change notifications.
type Client struct {
	hub  *Hub
	conn *ws.Conn
	send chan []byte
}

func NewClient(hub *Hub, conn *ws.Conn) *Client {
	return &Client{
		hub:  hub,
		conn: conn,
		send: make(chan []byte, sendBufferSize),
	}
}

// Run blocks until the connection closes, then unregisters the client.
func (c *Client) Run(ctx context.Context) {
	c.hub.Register(c)
	defer c.hub.Unregister(c)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	c.conn.SetReadLimit(readLimit)
	go c.writePump(ctx)
	c.readPump(ctx)
}

// request is the only frame a page sends: {"type":"resync"} asks for the
// newest board again, e.g. after the tab wakes from sleep.
type request struct {
	Type string `json:"type"`
}

const requestResync = "resync"

func (c *Client) readPump(ctx context.Context) {
	for {
		var req request
		if err := wsjson.Read(ctx, c.conn, &req); err != nil {
			return
		}
		switch req.Type {
		case requestResync:
			c.hub.Replay(c)
		default:
			c.hub.logger.Debug("ignoring client request", "type", req.Type)
		}
	}
}

func (c *Client) writePump(ctx context.Context) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case msg, ok := <-c.send:
			if !ok {
				return
			}
			if err := c.conn.Write(ctx, ws.MessageText, msg); err != nil {
				return
			}
		case <-ticker.C:
			if err := c.conn.Ping(ctx); err != nil {
				return
			}
		case <-ctx.Done():
			return
		}
	}
}
