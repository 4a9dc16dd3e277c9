package server

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/dukerupert/starboard/internal/avatar"
	"github.com/dukerupert/starboard/internal/handler"
	"github.com/dukerupert/starboard/internal/middleware"
	"github.com/dukerupert/starboard/internal/service"
	"github.com/dukerupert/starboard/internal/store"
	ws "github.com/dukerupert/starboard/internal/websocket"
)

type Config struct {
	StaticDir      string
	MaxUploadBytes int64
	// RateLimit is the per-client budget for rating and guestbook posts per minute.
	RateLimit int
	// TrustProxy keys clients by forwarding headers instead of the socket address.
	TrustProxy bool
}

type Server struct {
	cfg         Config
	svc         *service.Service
	hub         *ws.Hub
	ratingH     *handler.RatingHandler
	memberH     *handler.MemberHandler
	messageH    *handler.MessageHandler
	pageH       *handler.PageHandler
	rateLimiter *middleware.RateLimiter
	logger      *slog.Logger
}

func New(db *sql.DB, avatars avatar.Storage, cfg Config, logger *slog.Logger) *Server {
	hub := ws.NewHub(logger.With("component", "websocket"))

	svc := service.New(
		store.NewMemberStore(db),
		store.NewRatingStore(db),
		store.NewMessageStore(db),
		avatars,
		logger.With("component", "service"),
	)

	return &Server{
		cfg:         cfg,
		svc:         svc,
		hub:         hub,
		ratingH:     handler.NewRatingHandler(svc, hub, logger.With("component", "rating")),
		memberH:     handler.NewMemberHandler(svc, hub, cfg.MaxUploadBytes, logger.With("component", "member")),
		messageH:    handler.NewMessageHandler(svc, hub, logger.With("component", "guestbook")),
		pageH:       handler.NewPageHandler(svc, logger.With("component", "page")),
		rateLimiter: middleware.NewRateLimiter(cfg.RateLimit, time.Minute),
		logger:      logger,
	}
}

// RateLimiter returns the rate limiter for cleanup tasks.
func (s *Server) RateLimiter() *middleware.RateLimiter {
	return s.rateLimiter
}

func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()
	limited := middleware.RateLimit(s.rateLimiter, s.cfg.TrustProxy)

	mux.HandleFunc("GET /", s.pageH.Index)
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.Dir(s.cfg.StaticDir))))
	mux.HandleFunc("GET /health", s.healthHandler)

	mux.HandleFunc("GET /api/members", s.memberH.List)
	mux.HandleFunc("GET /api/board", s.ratingH.Board)
	mux.HandleFunc("GET /api/ratings", s.ratingH.List)
	mux.Handle("POST /rate", limited(http.HandlerFunc(s.ratingH.Submit)))

	mux.HandleFunc("POST /upload-avatar", s.memberH.UploadAvatar)
	mux.HandleFunc("POST /update-signature", s.memberH.UpdateSignature)

	// Guestbook
	mux.HandleFunc("GET /api/messages", s.messageH.List)
	mux.Handle("POST /api/messages", limited(http.HandlerFunc(s.messageH.Create)))

	mux.HandleFunc("GET /ws", ws.HandleWebSocket(s.hub))

	return middleware.RequestLogger(s.logger.With("component", "http"), s.cfg.TrustProxy)(mux)
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
