package board

import (
	"math"
	"sort"

	"github.com/dukerupert/starboard/internal/model"
)

// Entry is one leaderboard row.
type Entry struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Avatar      *string `json:"avatar"`
	Signature   string  `json:"signature"`
	AvgScore    float64 `json:"avg_score"`
	RatingCount int     `json:"rating_count"`
	TotalScore  int     `json:"total_score"`
}

// AverageScore returns total/count rounded to two decimals, or 0 when unrated.
func AverageScore(st model.MemberStats) float64 {
	if st.RatingCount <= 0 {
		return 0
	}
	return round2(float64(st.TotalScore) / float64(st.RatingCount))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Build ranks every member by average score, highest first. Members missing
// from stats appear with a zero average. Ties keep the order of members.
func Build(members []model.Member, stats map[int64]model.MemberStats) []Entry {
	entries := make([]Entry, 0, len(members))
	for _, m := range members {
		st := stats[m.ID]
		entries = append(entries, Entry{
			ID:          m.ID,
			Name:        m.Name,
			Avatar:      m.Avatar,
			Signature:   m.Signature,
			AvgScore:    AverageScore(st),
			RatingCount: st.RatingCount,
			TotalScore:  st.TotalScore,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].AvgScore > entries[j].AvgScore
	})
	return entries
}
