package store

import (
	"database/sql"
	"fmt"

	"github.com/dukerupert/starboard/internal/model"
)

type MemberStore struct {
	db *sql.DB
}

func NewMemberStore(db *sql.DB) *MemberStore {
	return &MemberStore{db: db}
}

const memberCols = `id, name, avatar, signature`

func scanMember(scanner interface{ Scan(...any) error }) (*model.Member, error) {
	var m model.Member
	var avatar sql.NullString

	if err := scanner.Scan(&m.ID, &m.Name, &avatar, &m.Signature); err != nil {
		return nil, err
	}
	if avatar.Valid {
		m.Avatar = &avatar.String
	}
	return &m, nil
}

// Seed creates the fixed member list with ids 1..n in list order.
// It does nothing when members already exist.
func (s *MemberStore) Seed(names []string) error {
	var count int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM members").Scan(&count); err != nil {
		return fmt.Errorf("count members: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare("INSERT INTO members (id, name) VALUES (?, ?)")
	if err != nil {
		return fmt.Errorf("prepare stmt: %w", err)
	}
	defer stmt.Close()

	for i, name := range names {
		if _, err := stmt.Exec(i+1, name); err != nil {
			return fmt.Errorf("insert member %q: %w", name, err)
		}
	}

	return tx.Commit()
}

func (s *MemberStore) List() ([]model.Member, error) {
	rows, err := s.db.Query("SELECT " + memberCols + " FROM members ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("query members: %w", err)
	}
	defer rows.Close()

	var members []model.Member
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, fmt.Errorf("scan member: %w", err)
		}
		members = append(members, *m)
	}
	return members, rows.Err()
}

func (s *MemberStore) GetByID(id int64) (*model.Member, error) {
	row := s.db.QueryRow("SELECT "+memberCols+" FROM members WHERE id = ?", id)
	m, err := scanMember(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query member: %w", err)
	}
	return m, nil
}

// SetAvatar overwrites the avatar reference. The previous file is left in place.
func (s *MemberStore) SetAvatar(id int64, ref string) error {
	_, err := s.db.Exec("UPDATE members SET avatar = ? WHERE id = ?", ref, id)
	if err != nil {
		return fmt.Errorf("set avatar: %w", err)
	}
	return nil
}

// SetSignature stores text as given. Unknown ids are a no-op.
func (s *MemberStore) SetSignature(id int64, text string) error {
	_, err := s.db.Exec("UPDATE members SET signature = ? WHERE id = ?", text, id)
	if err != nil {
		return fmt.Errorf("set signature: %w", err)
	}
	return nil
}
