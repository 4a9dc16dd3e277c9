package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/dukerupert/starboard/internal/model"
	"github.com/dukerupert/starboard/internal/service"
	"github.com/dukerupert/starboard/internal/websocket"
)

// MessageHandler serves the guestbook API.
type MessageHandler struct {
	svc    *service.Service
	hub    *websocket.Hub
	logger *slog.Logger
}

func NewMessageHandler(svc *service.Service, hub *websocket.Hub, logger *slog.Logger) *MessageHandler {
	return &MessageHandler{svc: svc, hub: hub, logger: logger}
}

func (h *MessageHandler) List(w http.ResponseWriter, r *http.Request) {
	messages, err := h.svc.Messages()
	if err != nil {
		h.logger.Error("list messages", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list messages")
		return
	}
	if messages == nil {
		messages = []model.Message{}
	}
	writeJSON(w, http.StatusOK, messages)
}

func (h *MessageHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name json.RawMessage `json:"name"`
		Text string          `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	msg, err := h.svc.PostMessage(authorName(req.Name), req.Text)
	if err != nil {
		if service.IsRejected(err) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error("post message", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to post message")
		return
	}

	if h.hub != nil {
		h.hub.Broadcast(websocket.MessageCreated(*msg))
	}

	writeJSON(w, http.StatusCreated, map[string]any{"ok": true, "message": msg})
}

// authorName accepts any JSON value for the author. Anything but a string
// counts as no name.
func authorName(raw json.RawMessage) string {
	var name string
	if err := json.Unmarshal(raw, &name); err != nil {
		return ""
	}
	return name
}
