package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/dukerupert/starboard/internal/model"
)

// RatingStore is the append-only rating ledger. It performs no validation;
// callers are expected to have checked ids and score range.
type RatingStore struct {
	db *sql.DB
}

func NewRatingStore(db *sql.DB) *RatingStore {
	return &RatingStore{db: db}
}

// Append inserts a rating and bumps the target's aggregates in one transaction.
func (s *RatingStore) Append(r model.Rating) (*model.Rating, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.Exec(
		`INSERT INTO ratings (rater_id, target_id, score, comment, created_at) VALUES (?, ?, ?, ?, ?)`,
		r.RaterID, r.TargetID, r.Score, r.Comment, r.CreatedAt.Unix(),
	)
	if err != nil {
		return nil, fmt.Errorf("insert rating: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}

	_, err = tx.Exec(
		`INSERT INTO member_stats (member_id, total_score, rating_count) VALUES (?, ?, 1)
		 ON CONFLICT(member_id) DO UPDATE SET
		   total_score = total_score + excluded.total_score,
		   rating_count = rating_count + 1`,
		r.TargetID, r.Score,
	)
	if err != nil {
		return nil, fmt.Errorf("update member stats: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}

	r.ID = id
	r.CreatedAt = time.Unix(r.CreatedAt.Unix(), 0)
	return &r, nil
}

// List returns every rating, most recent first, with member names resolved.
func (s *RatingStore) List() ([]model.RatingView, error) {
	rows, err := s.db.Query(
		`SELECT r.id, r.rater_id, r.target_id, r.score, r.comment, r.created_at,
		        COALESCE(rm.name, ''), COALESCE(tm.name, '')
		 FROM ratings r
		 LEFT JOIN members rm ON rm.id = r.rater_id
		 LEFT JOIN members tm ON tm.id = r.target_id
		 ORDER BY r.id DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list ratings: %w", err)
	}
	defer rows.Close()

	var ratings []model.RatingView
	for rows.Next() {
		var v model.RatingView
		var createdAt int64
		if err := rows.Scan(&v.ID, &v.RaterID, &v.TargetID, &v.Score, &v.Comment, &createdAt, &v.RaterName, &v.TargetName); err != nil {
			return nil, fmt.Errorf("scan rating: %w", err)
		}
		v.CreatedAt = time.Unix(createdAt, 0)
		ratings = append(ratings, v)
	}
	return ratings, rows.Err()
}

func (s *RatingStore) Count() (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM ratings`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count ratings: %w", err)
	}
	return n, nil
}

// Stats returns the incrementally maintained aggregates keyed by member id.
// Members that have never been rated are absent.
func (s *RatingStore) Stats() (map[int64]model.MemberStats, error) {
	return s.queryStats(`SELECT member_id, total_score, rating_count FROM member_stats`)
}

// RecomputeStats folds the whole ledger by target. It must always agree with Stats.
func (s *RatingStore) RecomputeStats() (map[int64]model.MemberStats, error) {
	return s.queryStats(`SELECT target_id, SUM(score), COUNT(*) FROM ratings GROUP BY target_id`)
}

func (s *RatingStore) queryStats(query string) (map[int64]model.MemberStats, error) {
	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("query stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[int64]model.MemberStats)
	for rows.Next() {
		var st model.MemberStats
		if err := rows.Scan(&st.MemberID, &st.TotalScore, &st.RatingCount); err != nil {
			return nil, fmt.Errorf("scan stats: %w", err)
		}
		stats[st.MemberID] = st
	}
	return stats, rows.Err()
}
