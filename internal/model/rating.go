package model

import "time"

const (
	MinScore = 1
	MaxScore = 5
)

type Rating struct {
	ID        int64     `json:"id"`
	RaterID   int64     `json:"rater_id"`
	TargetID  int64     `json:"target_id"`
	Score     int       `json:"score"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"time"`
}

// RatingView is a Rating with both member names resolved for display.
type RatingView struct {
	Rating
	RaterName  string `json:"rater_name"`
	TargetName string `json:"target_name"`
}
