package store_test

import (
	"testing"

	"github.com/drwadu/minifasb/pkg/nav"
	"github.com/drwadu/minifasb/pkg/store"
)

func TestCreateGetDelete(t *testing.T) {
	s := store.NewSessions()

	sess, err := s.Create("s1", "a;b. c;d :- b. e.", []string{"0"}, nav.KindAnd)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if sess.Engine() == nil {
		t.Fatal("expected a non-nil engine")
	}

	got, ok := s.Get("s1")
	if !ok {
		t.Fatal("expected session s1 to be found")
	}
	if got.ID != "s1" {
		t.Errorf("expected ID %q, got %q", "s1", got.ID)
	}

	s.Delete("s1")
	if _, ok := s.Get("s1"); ok {
		t.Error("expected session s1 to be gone after Delete")
	}
}

func TestListIsSortedById(t *testing.T) {
	s := store.NewSessions()
	for _, id := range []string{"zz", "aa", "mm"} {
		if _, err := s.Create(id, "a.", nil, nav.KindAnd); err != nil {
			t.Fatalf("Create(%s) error: %v", id, err)
		}
	}
	list := s.List()
	if len(list) != 3 {
		t.Fatalf("expected 3 sessions, got %d", len(list))
	}
	for i := 1; i < len(list); i++ {
		if list[i-1].ID > list[i].ID {
			t.Errorf("expected sorted ids, got %v", list)
		}
	}
}
