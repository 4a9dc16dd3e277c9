package handler

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/dukerupert/starboard/internal/model"
	"github.com/dukerupert/starboard/internal/service"
	"github.com/dukerupert/starboard/internal/websocket"
)

// MemberHandler serves the member list and the profile forms. The form
// endpoints always redirect back to the page; rejections are only logged.
type MemberHandler struct {
	svc            *service.Service
	hub            *websocket.Hub
	maxUploadBytes int64
	logger         *slog.Logger
}

func NewMemberHandler(svc *service.Service, hub *websocket.Hub, maxUploadBytes int64, logger *slog.Logger) *MemberHandler {
	return &MemberHandler{svc: svc, hub: hub, maxUploadBytes: maxUploadBytes, logger: logger}
}

// broadcastBoard pushes the rebuilt board, since avatars and signatures are
// shown on it.
func (h *MemberHandler) broadcastBoard(reason string, memberID int64) {
	if h.hub == nil {
		return
	}
	entries, err := h.svc.Board()
	if err != nil {
		h.logger.Error("build board after "+reason, "error", err)
		return
	}
	h.hub.Broadcast(websocket.BoardUpdated(reason, memberID, entries))
}

func (h *MemberHandler) List(w http.ResponseWriter, r *http.Request) {
	members, err := h.svc.Members()
	if err != nil {
		h.logger.Error("list members", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list members")
		return
	}
	if members == nil {
		members = []model.Member{}
	}
	writeJSON(w, http.StatusOK, members)
}

func backToIndex(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *MemberHandler) logOutcome(action string, memberID service.IntField, err error) {
	if service.IsRejected(err) {
		h.logger.Warn(action+" rejected", "member_id", memberID.Value, "reason", err.Error())
		return
	}
	h.logger.Error(action+" failed", "member_id", memberID.Value, "error", err)
}

func (h *MemberHandler) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	defer backToIndex(w, r)

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		h.logger.Warn("upload avatar: parse form", "error", err)
		return
	}

	memberID := service.ParseIntString(r.FormValue("member_id"))

	var file io.Reader
	var filename string
	f, header, err := r.FormFile("avatar")
	if err == nil {
		defer f.Close()
		file = f
		filename = header.Filename
	}

	ref, err := h.svc.UploadAvatar(r.Context(), memberID, file, filename)
	if err != nil {
		h.logOutcome("upload avatar", memberID, err)
		return
	}

	h.logger.Debug("avatar stored", "member_id", memberID.Value, "ref", ref)
	h.broadcastBoard(websocket.ReasonAvatar, memberID.Value)
}

func (h *MemberHandler) UpdateSignature(w http.ResponseWriter, r *http.Request) {
	defer backToIndex(w, r)

	if err := r.ParseForm(); err != nil {
		h.logger.Warn("update signature: parse form", "error", err)
		return
	}

	memberID := service.ParseIntString(r.FormValue("member_id"))
	if _, err := h.svc.UpdateSignature(memberID, r.FormValue("signature")); err != nil {
		h.logOutcome("update signature", memberID, err)
		return
	}

	h.broadcastBoard(websocket.ReasonSignature, memberID.Value)
}
