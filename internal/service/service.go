package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"golang.org/x/text/unicode/norm"

	"github.com/dukerupert/starboard/internal/avatar"
	"github.com/dukerupert/starboard/internal/board"
	"github.com/dukerupert/starboard/internal/model"
	"github.com/dukerupert/starboard/internal/store"
)

const (
	MaxSignatureRunes = 80
	DefaultAuthorName = "Anonymous"
)

// Service owns the member registry, the rating ledger and the guestbook.
// Every mutation and every aggregate read runs under one lock, so a board
// never observes a half-applied rating.
type Service struct {
	mu       sync.Mutex
	members  *store.MemberStore
	ratings  *store.RatingStore
	messages *store.MessageStore
	avatars  avatar.Storage
	now      func() time.Time
	logger   *slog.Logger
}

func New(ms *store.MemberStore, rs *store.RatingStore, msgs *store.MessageStore, avatars avatar.Storage, logger *slog.Logger) *Service {
	return &Service{
		members:  ms,
		ratings:  rs,
		messages: msgs,
		avatars:  avatars,
		now:      time.Now,
		logger:   logger,
	}
}

func (s *Service) Members() ([]model.Member, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.members.List()
}

// Board returns every member ranked by average score received.
func (s *Service) Board() ([]board.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	members, err := s.members.List()
	if err != nil {
		return nil, err
	}
	stats, err := s.ratings.Stats()
	if err != nil {
		return nil, err
	}
	return board.Build(members, stats), nil
}

// Ratings returns the ledger newest first with names resolved.
func (s *Service) Ratings() ([]model.RatingView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ratings.List()
}

// lookup returns the member for f, or nil when f is invalid or unknown.
func (s *Service) lookup(f IntField) (*model.Member, error) {
	if !f.Valid || f.Value <= 0 {
		return nil, nil
	}
	return s.members.GetByID(f.Value)
}

// SubmitRating validates in and appends it to the ledger. Checks run in a
// fixed order and only the first failure is reported.
func (s *Service) SubmitRating(in RatingInput) (*model.Rating, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rater, err := s.lookup(in.RaterID)
	if err != nil {
		return nil, fmt.Errorf("lookup rater: %w", err)
	}
	if rater == nil {
		return nil, ErrUnknownRater
	}

	target, err := s.lookup(in.TargetID)
	if err != nil {
		return nil, fmt.Errorf("lookup target: %w", err)
	}
	if target == nil {
		return nil, ErrUnknownTarget
	}

	if rater.ID == target.ID {
		return nil, ErrSelfRating
	}

	if !in.Score.Valid || in.Score.Value < model.MinScore || in.Score.Value > model.MaxScore {
		return nil, ErrScoreOutOfRange
	}

	r, err := s.ratings.Append(model.Rating{
		RaterID:   rater.ID,
		TargetID:  target.ID,
		Score:     int(in.Score.Value),
		Comment:   strings.TrimSpace(in.Comment),
		CreatedAt: s.now().Truncate(time.Second),
	})
	if err != nil {
		return nil, fmt.Errorf("append rating: %w", err)
	}

	s.logger.Info("rating submitted", "rating_id", r.ID, "rater_id", r.RaterID, "target_id", r.TargetID, "score", r.Score)
	return r, nil
}

// NormalizeSignature trims, NFC-normalizes and cuts text to MaxSignatureRunes.
func NormalizeSignature(text string) string {
	text = norm.NFC.String(strings.TrimSpace(text))
	runes := []rune(text)
	if len(runes) > MaxSignatureRunes {
		runes = runes[:MaxSignatureRunes]
	}
	return string(runes)
}

// UpdateSignature stores a normalized signature for the member. Overlong
// text is truncated, never rejected.
func (s *Service) UpdateSignature(memberID IntField, text string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := s.lookup(memberID)
	if err != nil {
		return "", fmt.Errorf("lookup member: %w", err)
	}
	if m == nil {
		return "", ErrUnknownMember
	}

	sig := NormalizeSignature(text)
	if err := s.members.SetSignature(m.ID, sig); err != nil {
		return "", err
	}
	return sig, nil
}

// UploadAvatar validates and stores an avatar image, then points the member
// at it. Nothing is written when a check fails.
func (s *Service) UploadAvatar(ctx context.Context, memberID IntField, file io.Reader, filename string) (string, error) {
	s.mu.Lock()
	m, err := s.lookup(memberID)
	s.mu.Unlock()
	if err != nil {
		return "", fmt.Errorf("lookup member: %w", err)
	}
	if m == nil {
		return "", ErrUnknownMember
	}

	filename = avatar.CleanFilename(filename)
	if file == nil || filename == "" {
		return "", ErrNoFile
	}
	if !avatar.Allowed(filename) {
		return "", ErrUnsupportedType
	}

	// Members are never removed, so m stays valid while the lock is released.
	ref, err := s.avatars.Save(ctx, avatar.NewName(filename), file)
	if err != nil {
		return "", fmt.Errorf("save avatar: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.members.SetAvatar(m.ID, ref); err != nil {
		return "", err
	}

	s.logger.Info("avatar updated", "member_id", m.ID, "ref", ref)
	return ref, nil
}

// PostMessage adds a guestbook entry at the front of the list.
func (s *Service) PostMessage(name, text string) (*model.Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyMessage
	}
	if name == "" {
		name = DefaultAuthorName
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.messages.Create(name, text, s.now().Format(model.MessageTimeLayout))
}

// Messages returns guestbook entries newest first.
func (s *Service) Messages() ([]model.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.messages.List()
}
