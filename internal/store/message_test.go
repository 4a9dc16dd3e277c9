package store

import (
	"testing"

	"github.com/dukerupert/starboard/internal/database"
)

func TestMessageCreateAndList(t *testing.T) {
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	s := NewMessageStore(db)

	m, err := s.Create("Alice", "hello", "2026-03-01 12:00:00")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if m.Name != "Alice" || m.Text != "hello" || m.Time != "2026-03-01 12:00:00" {
		t.Errorf("message = %+v", m)
	}
	s.Create("Bob", "second", "2026-03-01 12:00:05")

	list, err := s.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("len = %d, want 2", len(list))
	}
	if list[0].Text != "second" {
		t.Errorf("list[0].Text = %q, want %q", list[0].Text, "second")
	}
}
