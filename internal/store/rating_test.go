package store

import (
	"testing"
	"time"

	"github.com/dukerupert/starboard/internal/database"
	"github.com/dukerupert/starboard/internal/model"
)

func setupRatingTestDB(t *testing.T) (*RatingStore, *MemberStore) {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	ms := NewMemberStore(db)
	if err := ms.Seed([]string{"Alice", "Bob", "Carol"}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return NewRatingStore(db), ms
}

func rating(rater, target int64, score int, comment string) model.Rating {
	return model.Rating{
		RaterID:   rater,
		TargetID:  target,
		Score:     score,
		Comment:   comment,
		CreatedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.Local),
	}
}

func TestRatingAppend(t *testing.T) {
	rs, _ := setupRatingTestDB(t)

	r, err := rs.Append(rating(1, 2, 4, "nice"))
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if r.ID == 0 {
		t.Error("expected non-zero id")
	}
	if r.Score != 4 {
		t.Errorf("score = %d, want 4", r.Score)
	}

	n, err := rs.Count()
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 1 {
		t.Errorf("count = %d, want 1", n)
	}
}

func TestRatingListNewestFirst(t *testing.T) {
	rs, _ := setupRatingTestDB(t)

	rs.Append(rating(1, 2, 4, "first"))
	rs.Append(rating(3, 2, 5, "second"))
	rs.Append(rating(2, 1, 1, "third"))

	list, err := rs.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("len = %d, want 3", len(list))
	}
	for i, want := range []string{"third", "second", "first"} {
		if list[i].Comment != want {
			t.Errorf("list[%d].Comment = %q, want %q", i, list[i].Comment, want)
		}
	}
	if list[0].RaterName != "Bob" || list[0].TargetName != "Alice" {
		t.Errorf("names = %q -> %q, want Bob -> Alice", list[0].RaterName, list[0].TargetName)
	}
	want := time.Date(2026, 3, 1, 12, 0, 0, 0, time.Local)
	if !list[0].CreatedAt.Equal(want) {
		t.Errorf("created_at = %v, want %v", list[0].CreatedAt, want)
	}
}

func TestRatingStatsIncremental(t *testing.T) {
	rs, _ := setupRatingTestDB(t)

	rs.Append(rating(1, 2, 4, ""))
	rs.Append(rating(3, 2, 5, ""))
	rs.Append(rating(2, 3, 2, ""))

	stats, err := rs.Stats()
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if got := stats[2]; got.TotalScore != 9 || got.RatingCount != 2 {
		t.Errorf("member 2 stats = %+v, want total 9 count 2", got)
	}
	if got := stats[3]; got.TotalScore != 2 || got.RatingCount != 1 {
		t.Errorf("member 3 stats = %+v, want total 2 count 1", got)
	}
	if _, ok := stats[1]; ok {
		t.Error("member 1 should have no stats")
	}
}

func TestRatingStatsMatchRecompute(t *testing.T) {
	rs, _ := setupRatingTestDB(t)

	scores := []struct {
		rater, target int64
		score         int
	}{
		{1, 2, 3}, {1, 3, 5}, {2, 3, 1}, {3, 1, 4}, {2, 1, 2}, {3, 2, 5},
	}
	for _, s := range scores {
		if _, err := rs.Append(rating(s.rater, s.target, s.score, "")); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	incremental, err := rs.Stats()
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	recomputed, err := rs.RecomputeStats()
	if err != nil {
		t.Fatalf("recompute: %v", err)
	}
	if len(incremental) != len(recomputed) {
		t.Fatalf("len = %d, want %d", len(incremental), len(recomputed))
	}
	for id, want := range recomputed {
		if got := incremental[id]; got != want {
			t.Errorf("member %d: incremental %+v, recomputed %+v", id, got, want)
		}
	}
}

func TestRatingEmptyLedger(t *testing.T) {
	rs, _ := setupRatingTestDB(t)

	list, err := rs.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("len = %d, want 0", len(list))
	}
	stats, err := rs.Stats()
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if len(stats) != 0 {
		t.Errorf("stats len = %d, want 0", len(stats))
	}
}
