package board

import (
	"reflect"
	"testing"

	"github.com/dukerupert/starboard/internal/model"
)

func members(names ...string) []model.Member {
	out := make([]model.Member, len(names))
	for i, n := range names {
		out[i] = model.Member{ID: int64(i + 1), Name: n}
	}
	return out
}

func TestAverageScore(t *testing.T) {
	tests := []struct {
		name  string
		stats model.MemberStats
		want  float64
	}{
		{"unrated", model.MemberStats{}, 0},
		{"single", model.MemberStats{TotalScore: 4, RatingCount: 1}, 4},
		{"half", model.MemberStats{TotalScore: 9, RatingCount: 2}, 4.5},
		{"thirds", model.MemberStats{TotalScore: 10, RatingCount: 3}, 3.33},
		{"round up", model.MemberStats{TotalScore: 11, RatingCount: 3}, 3.67},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AverageScore(tt.stats); got != tt.want {
				t.Errorf("AverageScore(%+v) = %v, want %v", tt.stats, got, tt.want)
			}
		})
	}
}

func TestBuildIncludesUnratedMembers(t *testing.T) {
	ms := members("Alice", "Bob", "Carol")
	stats := map[int64]model.MemberStats{
		2: {MemberID: 2, TotalScore: 9, RatingCount: 2},
	}

	entries := Build(ms, stats)
	if len(entries) != 3 {
		t.Fatalf("len = %d, want 3", len(entries))
	}
	if entries[0].ID != 2 {
		t.Errorf("first id = %d, want 2", entries[0].ID)
	}
	if entries[0].AvgScore != 4.5 || entries[0].RatingCount != 2 {
		t.Errorf("entry = %+v, want avg 4.5 count 2", entries[0])
	}
	for _, e := range entries[1:] {
		if e.AvgScore != 0 || e.RatingCount != 0 {
			t.Errorf("unrated entry %d = %+v, want zero stats", e.ID, e)
		}
	}
}

func TestBuildSortedDescending(t *testing.T) {
	ms := members("A", "B", "C", "D")
	stats := map[int64]model.MemberStats{
		1: {MemberID: 1, TotalScore: 2, RatingCount: 1},
		2: {MemberID: 2, TotalScore: 5, RatingCount: 1},
		3: {MemberID: 3, TotalScore: 7, RatingCount: 2},
	}

	entries := Build(ms, stats)
	for i := 1; i < len(entries); i++ {
		if entries[i].AvgScore > entries[i-1].AvgScore {
			t.Errorf("entries[%d].AvgScore %v > entries[%d].AvgScore %v", i, entries[i].AvgScore, i-1, entries[i-1].AvgScore)
		}
	}
	gotIDs := []int64{entries[0].ID, entries[1].ID, entries[2].ID, entries[3].ID}
	wantIDs := []int64{2, 3, 1, 4}
	if !reflect.DeepEqual(gotIDs, wantIDs) {
		t.Errorf("order = %v, want %v", gotIDs, wantIDs)
	}
}

func TestBuildTiesKeepMemberOrder(t *testing.T) {
	ms := members("A", "B", "C", "D")
	stats := map[int64]model.MemberStats{
		2: {MemberID: 2, TotalScore: 4, RatingCount: 1},
		4: {MemberID: 4, TotalScore: 8, RatingCount: 2},
	}

	entries := Build(ms, stats)
	gotIDs := []int64{entries[0].ID, entries[1].ID, entries[2].ID, entries[3].ID}
	wantIDs := []int64{2, 4, 1, 3}
	if !reflect.DeepEqual(gotIDs, wantIDs) {
		t.Errorf("order = %v, want %v", gotIDs, wantIDs)
	}
}

func TestBuildIdempotent(t *testing.T) {
	ms := members("A", "B", "C", "D", "E")
	stats := map[int64]model.MemberStats{
		1: {MemberID: 1, TotalScore: 3, RatingCount: 1},
		3: {MemberID: 3, TotalScore: 3, RatingCount: 1},
		5: {MemberID: 5, TotalScore: 6, RatingCount: 2},
	}

	first := Build(ms, stats)
	second := Build(ms, stats)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("builds differ:\n%+v\n%+v", first, second)
	}
}

func TestBuildEmpty(t *testing.T) {
	entries := Build(nil, nil)
	if entries == nil || len(entries) != 0 {
		t.Errorf("entries = %v, want empty non-nil slice", entries)
	}
}
