package store

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/example/amabot/internal/core"
	"github.com/example/amabot/internal/types"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	return s
}

func TestAddUser_SortsAndRejectsDuplicates(t *testing.T) {
	s := openTestStore(t)

	for _, u := range []types.User{{ID: 1, Name: "zed"}, {ID: 2, Name: "Alice"}} {
		if err := s.AddUser(u); err != nil {
			t.Fatalf("add %s failed: %v", u.Name, err)
		}
	}

	users := s.Users()
	if users[0].Name != "Alice" || users[1].Name != "zed" {
		t.Errorf("expected case-insensitive name order, got %v", users)
	}

	err := s.AddUser(types.User{ID: 1, Name: "zed again"})
	if !errors.Is(err, ErrAlreadyRegistered) {
		t.Fatalf("expected ErrAlreadyRegistered, got %v", err)
	}
	if len(s.Users()) != 2 {
		t.Errorf("duplicate register must not change users, got %d entries", len(s.Users()))
	}
}

func TestRemoveUser_DropsQueueAndIsIdempotent(t *testing.T) {
	s := openTestStore(t)
	if err := s.AddUser(types.User{ID: 1, Name: "a"}); err != nil {
		t.Fatal(err)
	}
	s.AppendQuestion(1, 2, "q")

	s.RemoveUser(1)
	if s.IsRegistered(1) {
		t.Error("user still registered after removal")
	}
	if n := len(s.QuestionsFor(1)); n != 0 {
		t.Errorf("expected empty queue after removal, got %d", n)
	}

	s.RemoveUser(1) // no-op
}

func TestAppendQuestion_IDIsQueuePosition(t *testing.T) {
	s := openTestStore(t)

	for i := 0; i < 3; i++ {
		id := s.AppendQuestion(7, 8, "q")
		if id != i {
			t.Errorf("expected question ID %d, got %d", i, id)
		}
	}
	if n := len(s.QuestionsFor(7)); n != 3 {
		t.Errorf("expected 3 questions, got %d", n)
	}
}

func TestRemoveQuestion_ShiftsLaterIDs(t *testing.T) {
	s := openTestStore(t)
	s.AppendQuestion(7, 1, "first")
	s.AppendQuestion(7, 2, "second")
	s.AppendQuestion(7, 3, "third")

	if err := s.RemoveQuestion(7, 0); err != nil {
		t.Fatalf("remove failed: %v", err)
	}

	queue := s.QuestionsFor(7)
	if len(queue) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(queue))
	}
	if queue[0].Text != "second" {
		t.Errorf("expected old ID 1 to become ID 0, got %q", queue[0].Text)
	}

	err := s.RemoveQuestion(7, 5)
	var re *core.RangeError
	if !errors.As(err, &re) {
		t.Fatalf("expected RangeError, got %v", err)
	}
}

func TestClearQuestions(t *testing.T) {
	s := openTestStore(t)
	s.AppendQuestion(7, 1, "a")
	s.AppendQuestion(7, 1, "b")

	if n := s.ClearQuestions(7); n != 2 {
		t.Errorf("expected 2 cleared, got %d", n)
	}
	if n := len(s.QuestionsFor(7)); n != 0 {
		t.Errorf("expected empty queue, got %d", n)
	}
}

func TestSnapshot_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(dir)
	if err != nil {
		t.Fatal(err)
	}

	if err := s.AddUser(types.User{ID: 100, Name: "Alice"}); err != nil {
		t.Fatal(err)
	}
	if err := s.AddUser(types.User{ID: 200, Name: "Bob"}); err != nil {
		t.Fatal(err)
	}
	s.AppendQuestion(200, 100, "favorite color?")
	s.AppendReply(types.Reply{AskerID: 100, Question: "favorite color?", ReplierID: 200, Text: "green"})
	s.MarkPatchApplied("03252020")

	if err := s.Snapshot(); err != nil {
		t.Fatalf("snapshot failed: %v", err)
	}

	reloaded, err := Open(dir)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if !reflect.DeepEqual(s.db, reloaded.db) {
		t.Errorf("round-trip mismatch:\n before %+v\n after  %+v", s.db, reloaded.db)
	}
}

func TestSnapshot_KeepsRollingBackup(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(dir)
	if err != nil {
		t.Fatal(err)
	}

	if err := s.AddUser(types.User{ID: 1, Name: "first"}); err != nil {
		t.Fatal(err)
	}
	if err := s.Snapshot(); err != nil {
		t.Fatal(err)
	}
	if err := s.AddUser(types.User{ID: 2, Name: "second"}); err != nil {
		t.Fatal(err)
	}
	if err := s.Snapshot(); err != nil {
		t.Fatal(err)
	}

	backup, err := readDatabase(filepath.Join(dir, backupFile))
	if err != nil {
		t.Fatalf("backup unreadable: %v", err)
	}
	if len(backup.Users) != 1 {
		t.Errorf("expected backup to hold previous generation (1 user), got %d", len(backup.Users))
	}

	current, err := readDatabase(filepath.Join(dir, snapshotFile))
	if err != nil {
		t.Fatalf("snapshot unreadable: %v", err)
	}
	if len(current.Users) != 2 {
		t.Errorf("expected current snapshot to hold 2 users, got %d", len(current.Users))
	}
}

func TestOpen_FallsBackToBackupOnCorruptPrimary(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(dir)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.AddUser(types.User{ID: 1, Name: "kept"}); err != nil {
		t.Fatal(err)
	}
	if err := s.Snapshot(); err != nil {
		t.Fatal(err)
	}
	if err := s.Snapshot(); err != nil {
		t.Fatal(err)
	}

	if err := os.WriteFile(filepath.Join(dir, snapshotFile), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	recovered, err := Open(dir)
	if err != nil {
		t.Fatalf("open with corrupt primary failed: %v", err)
	}
	if !recovered.IsRegistered(1) {
		t.Error("expected backup state to be recovered")
	}
}

func TestOpen_EmptyDirStartsEmpty(t *testing.T) {
	s := openTestStore(t)
	if len(s.Users()) != 0 {
		t.Errorf("expected empty users, got %d", len(s.Users()))
	}
	if s.db.Amas == nil || s.db.Patches == nil || s.db.ReplyHistory == nil {
		t.Error("expected initialized containers")
	}
}

func TestAppendFeedback(t *testing.T) {
	s := openTestStore(t)

	records := []types.Feedback{
		{ID: "a", TS: 1, UserID: 10, Name: "alice", Text: "love it"},
		{ID: "b", TS: 2, UserID: 20, Name: "bob", Text: "more features"},
	}
	for _, f := range records {
		if err := s.AppendFeedback(f); err != nil {
			t.Fatalf("append failed: %v", err)
		}
	}

	got, err := ReadFeedback(s.FeedbackPath())
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if !reflect.DeepEqual(records, got) {
		t.Errorf("expected %+v, got %+v", records, got)
	}

	// Each line is standalone JSON.
	data, err := os.ReadFile(s.FeedbackPath())
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	var f types.Feedback
	if err := json.Unmarshal([]byte(lines[0]), &f); err != nil {
		t.Errorf("first line is not valid JSON: %v", err)
	}
}
