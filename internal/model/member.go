package model

type Member struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Avatar    *string `json:"avatar"`
	Signature string  `json:"signature"`
}

// MemberStats is the fold of all ratings received by one member.
type MemberStats struct {
	MemberID    int64 `json:"member_id"`
	TotalScore  int   `json:"total_score"`
	RatingCount int   `json:"rating_count"`
}
