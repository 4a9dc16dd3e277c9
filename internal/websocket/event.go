package websocket

import (
	"github.com/dukerupert/starboard/internal/board"
	"github.com/dukerupert/starboard/internal/model"
)

const (
	TypeBoardUpdated   = "board_updated"
	TypeRatingCreated  = "rating_created"
	TypeMessageCreated = "message_created"
)

// Reasons a board update was sent.
const (
	ReasonRating    = "rating"
	ReasonAvatar    = "avatar"
	ReasonSignature = "signature"
)

// Message is one event pushed to connected pages.
type Message struct {
	Type string `json:"type"`
	Data any    `json:"data"`

	// version orders board snapshots. Zero for every other type.
	version int
}

// Standing is one member's place on the board after a change.
type Standing struct {
	ID          int64   `json:"id"`
	Rank        int     `json:"rank"`
	AvgScore    float64 `json:"avg_score"`
	RatingCount int     `json:"rating_count"`
}

// BoardUpdate carries the full ranked board plus the standing of the member
// that changed. Version is the ledger length the board was built from; pages
// ignore updates older than the last one they applied.
type BoardUpdate struct {
	Reason  string        `json:"reason"`
	Version int           `json:"version"`
	Target  *Standing     `json:"target,omitempty"`
	Entries []board.Entry `json:"entries"`
}

// BoardUpdated builds a board event for entries, as returned by board.Build.
func BoardUpdated(reason string, targetID int64, entries []board.Entry) Message {
	if entries == nil {
		entries = []board.Entry{}
	}
	u := BoardUpdate{Reason: reason, Entries: entries}
	for i, e := range entries {
		u.Version += e.RatingCount
		if e.ID == targetID {
			u.Target = &Standing{ID: e.ID, Rank: i + 1, AvgScore: e.AvgScore, RatingCount: e.RatingCount}
		}
	}
	return Message{Type: TypeBoardUpdated, Data: u, version: u.Version}
}

func RatingCreated(r model.RatingView) Message {
	return Message{Type: TypeRatingCreated, Data: r}
}

func MessageCreated(m model.Message) Message {
	return Message{Type: TypeMessageCreated, Data: m}
}
