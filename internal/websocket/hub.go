package websocket

import (
	"encoding/json"
	"log/slog"
	"sync"
)

// Hub fans events out to every connected page and remembers the newest board,
// which it replays to pages as they connect.
type Hub struct {
	mu           sync.Mutex
	clients      map[*Client]struct{}
	board        []byte
	boardVersion int
	logger       *slog.Logger
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		clients:      make(map[*Client]struct{}),
		boardVersion: -1,
		logger:       logger,
	}
}

func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[c] = struct{}{}
	h.replayLocked(c)
	h.logger.Debug("client connected", "clients", len(h.clients))
}

// Replay sends the newest board to a single registered client.
func (h *Hub) Replay(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; ok {
		h.replayLocked(c)
	}
}

func (h *Hub) replayLocked(c *Client) {
	if h.board == nil {
		return
	}
	select {
	case c.send <- h.board:
	default:
		h.logger.Warn("dropping board replay for slow client")
	}
}

// Unregister removes a client and closes its send channel. Safe to call twice.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
}

// Broadcast never blocks: clients with a full buffer miss the event. A board
// update older than the one already sent is dropped, so pages never step
// back to a stale ranking.
func (h *Hub) Broadcast(msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		h.logger.Error("marshal broadcast", "error", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if msg.Type == TypeBoardUpdated {
		if msg.version < h.boardVersion {
			h.logger.Debug("dropping stale board", "version", msg.version, "current", h.boardVersion)
			return
		}
		h.board = data
		h.boardVersion = msg.version
	}

	for c := range h.clients {
		select {
		case c.send <- data:
		default:
			h.logger.Warn("dropping event for slow client", "type", msg.Type)
		}
	}
}

func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// BoardVersion reports the version of the newest board sent, or -1 before
// any board was sent.
func (h *Hub) BoardVersion() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.boardVersion
}
