package store

import (
	"testing"

	"github.com/dukerupert/starboard/internal/database"
)

func setupMemberTestDB(t *testing.T) *MemberStore {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewMemberStore(db)
}

func TestMemberSeedAndList(t *testing.T) {
	ms := setupMemberTestDB(t)

	if err := ms.Seed([]string{"Alice", "Bob", "Carol"}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	members, err := ms.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(members) != 3 {
		t.Fatalf("len = %d, want 3", len(members))
	}
	for i, want := range []string{"Alice", "Bob", "Carol"} {
		if members[i].ID != int64(i+1) {
			t.Errorf("members[%d].ID = %d, want %d", i, members[i].ID, i+1)
		}
		if members[i].Name != want {
			t.Errorf("members[%d].Name = %q, want %q", i, members[i].Name, want)
		}
		if members[i].Avatar != nil {
			t.Errorf("members[%d].Avatar = %v, want nil", i, *members[i].Avatar)
		}
		if members[i].Signature != "" {
			t.Errorf("members[%d].Signature = %q, want empty", i, members[i].Signature)
		}
	}
}

func TestMemberSeedIsOnce(t *testing.T) {
	ms := setupMemberTestDB(t)

	if err := ms.Seed([]string{"Alice", "Bob"}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := ms.Seed([]string{"Mallory"}); err != nil {
		t.Fatalf("second seed: %v", err)
	}

	members, _ := ms.List()
	if len(members) != 2 {
		t.Fatalf("len = %d, want 2", len(members))
	}
	if members[0].Name != "Alice" {
		t.Errorf("name = %q, want %q", members[0].Name, "Alice")
	}
}

func TestMemberGetByIDNotFound(t *testing.T) {
	ms := setupMemberTestDB(t)
	ms.Seed([]string{"Alice"})

	m, err := ms.GetByID(99)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if m != nil {
		t.Errorf("expected nil, got %+v", m)
	}
}

func TestMemberSetAvatarOverwrites(t *testing.T) {
	ms := setupMemberTestDB(t)
	ms.Seed([]string{"Alice"})

	if err := ms.SetAvatar(1, "/static/avatars/a.png"); err != nil {
		t.Fatalf("set avatar: %v", err)
	}
	if err := ms.SetAvatar(1, "/static/avatars/b.gif"); err != nil {
		t.Fatalf("set avatar again: %v", err)
	}

	m, err := ms.GetByID(1)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if m.Avatar == nil || *m.Avatar != "/static/avatars/b.gif" {
		t.Errorf("avatar = %v, want %q", m.Avatar, "/static/avatars/b.gif")
	}
}

func TestMemberSetSignature(t *testing.T) {
	ms := setupMemberTestDB(t)
	ms.Seed([]string{"Alice"})

	if err := ms.SetSignature(1, "hello"); err != nil {
		t.Fatalf("set signature: %v", err)
	}
	m, _ := ms.GetByID(1)
	if m.Signature != "hello" {
		t.Errorf("signature = %q, want %q", m.Signature, "hello")
	}

	// Unknown ids are a no-op, not an error.
	if err := ms.SetSignature(42, "ghost"); err != nil {
		t.Errorf("set signature on unknown id: %v", err)
	}
}
