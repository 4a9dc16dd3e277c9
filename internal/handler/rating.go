package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/dukerupert/starboard/internal/board"
	"github.com/dukerupert/starboard/internal/model"
	"github.com/dukerupert/starboard/internal/service"
	"github.com/dukerupert/starboard/internal/websocket"
)

type RatingHandler struct {
	svc    *service.Service
	hub    *websocket.Hub
	logger *slog.Logger
}

func NewRatingHandler(svc *service.Service, hub *websocket.Hub, logger *slog.Logger) *RatingHandler {
	return &RatingHandler{svc: svc, hub: hub, logger: logger}
}

// broadcastRating announces a new rating and the board it produced.
func (h *RatingHandler) broadcastRating(rating *model.Rating) {
	if h.hub == nil {
		return
	}
	entries, err := h.svc.Board()
	if err != nil {
		h.logger.Error("build board after rating", "error", err)
		return
	}
	h.hub.Broadcast(websocket.RatingCreated(model.RatingView{
		Rating:     *rating,
		RaterName:  nameOf(entries, rating.RaterID),
		TargetName: nameOf(entries, rating.TargetID),
	}))
	h.hub.Broadcast(websocket.BoardUpdated(websocket.ReasonRating, rating.TargetID, entries))
}

// rateRequest keeps the numeric fields raw so missing and malformed values
// can be told apart from zero.
type rateRequest struct {
	RaterID  json.RawMessage `json:"rater_id"`
	TargetID json.RawMessage `json:"target_id"`
	Score    json.RawMessage `json:"score"`
	Comment  *string         `json:"comment"`
}

func (req rateRequest) input() service.RatingInput {
	in := service.RatingInput{
		RaterID:  service.ParseIntJSON(req.RaterID),
		TargetID: service.ParseIntJSON(req.TargetID),
		Score:    service.ParseIntJSON(req.Score),
	}
	if req.Comment != nil {
		in.Comment = *req.Comment
	}
	return in
}

func (h *RatingHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req rateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	rating, err := h.svc.SubmitRating(req.input())
	if err != nil {
		if service.IsRejected(err) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error("submit rating", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to submit rating")
		return
	}

	h.broadcastRating(rating)
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (h *RatingHandler) List(w http.ResponseWriter, r *http.Request) {
	ratings, err := h.svc.Ratings()
	if err != nil {
		h.logger.Error("list ratings", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list ratings")
		return
	}
	if ratings == nil {
		ratings = []model.RatingView{}
	}
	writeJSON(w, http.StatusOK, ratings)
}

func (h *RatingHandler) Board(w http.ResponseWriter, r *http.Request) {
	entries, err := h.svc.Board()
	if err != nil {
		h.logger.Error("build board", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to build leaderboard")
		return
	}
	if entries == nil {
		entries = []board.Entry{}
	}
	writeJSON(w, http.StatusOK, entries)
}

func nameOf(entries []board.Entry, id int64) string {
	for _, e := range entries {
		if e.ID == id {
			return e.Name
		}
	}
	return ""
}
