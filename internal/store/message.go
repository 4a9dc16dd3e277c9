package store

import (
	"database/sql"
	"fmt"

	"github.com/dukerupert/starboard/internal/model"
)

// MessageStore holds guestbook entries.
type MessageStore struct {
	db *sql.DB
}

func NewMessageStore(db *sql.DB) *MessageStore {
	return &MessageStore{db: db}
}

func (s *MessageStore) Create(name, text, at string) (*model.Message, error) {
	result, err := s.db.Exec(
		`INSERT INTO messages (name, text, created_at) VALUES (?, ?, ?)`,
		name, text, at,
	)
	if err != nil {
		return nil, fmt.Errorf("insert message: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return &model.Message{ID: id, Name: name, Text: text, Time: at}, nil
}

// List returns messages newest first.
func (s *MessageStore) List() ([]model.Message, error) {
	rows, err := s.db.Query(`SELECT id, name, text, created_at FROM messages ORDER BY id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer rows.Close()

	var messages []model.Message
	for rows.Next() {
		var m model.Message
		if err := rows.Scan(&m.ID, &m.Name, &m.Text, &m.Time); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}
