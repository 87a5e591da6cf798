package store

import (
	"errors"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/example/amabot/internal/core"
	"github.com/example/amabot/internal/types"
)

// ErrAlreadyRegistered means the sender already owns an AMA board.
var ErrAlreadyRegistered = errors.New("already registered")

// ErrNotRegistered means the sender has no AMA board.
var ErrNotRegistered = errors.New("not registered")

const (
	snapshotFile = "ama.json"
	backupFile   = "ama.json.bak"
	feedbackFile = "feedback.jsonl"
)

// Store owns the aggregate for the process lifetime. Command handlers run
// one at a time off the update loop, but the snapshot ticker reads from its
// own goroutine, so every access goes through the mutex to keep snapshots
// point-in-time consistent.
type Store struct {
	mu  sync.Mutex
	db  *types.Database
	dir string
}

// Open loads the aggregate from the snapshot in dir, falling back to the
// rolling backup, or starts empty when neither exists.
func Open(dir string) (*Store, error) {
	db, err := loadSnapshot(dir)
	if err != nil {
		return nil, err
	}
	return &Store{db: db, dir: dir}, nil
}

// SnapshotPath returns the primary snapshot location.
func (s *Store) SnapshotPath() string { return filepath.Join(s.dir, snapshotFile) }

// FeedbackPath returns the feedback log location.
func (s *Store) FeedbackPath() string { return filepath.Join(s.dir, feedbackFile) }

// Users returns a copy of the user list in display order.
func (s *Store) Users() []types.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	users := make([]types.User, len(s.db.Users))
	copy(users, s.db.Users)
	return users
}

// IsRegistered reports whether id owns a board.
func (s *Store) IsRegistered(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return core.IndexOf(s.db.Users, id) != -1
}

// AddUser registers a board owner and re-sorts the list by name.
func (s *Store) AddUser(u types.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if core.IndexOf(s.db.Users, u.ID) != -1 {
		return ErrAlreadyRegistered
	}
	s.db.Users = append(s.db.Users, u)
	core.SortUsers(s.db.Users)
	if _, ok := s.db.Amas[u.ID]; !ok {
		s.db.Amas[u.ID] = []types.Question{}
	}
	return nil
}

// RemoveUser deregisters a user and discards their queue. Idempotent.
func (s *Store) RemoveUser(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if idx := core.IndexOf(s.db.Users, id); idx != -1 {
		s.db.Users = append(s.db.Users[:idx], s.db.Users[idx+1:]...)
	}
	delete(s.db.Amas, id)
}

// AppendQuestion adds a question to target's queue and returns its ID,
// which is the queue position of the new entry.
func (s *Store) AppendQuestion(targetID, askerID int64, text string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.db.Amas[targetID] = append(s.db.Amas[targetID], types.Question{AskerID: askerID, Text: text})
	return len(s.db.Amas[targetID]) - 1
}

// QuestionsFor returns a copy of a user's queue in ID order.
func (s *Store) QuestionsFor(id int64) []types.Question {
	s.mu.Lock()
	defer s.mu.Unlock()

	queue := make([]types.Question, len(s.db.Amas[id]))
	copy(queue, s.db.Amas[id])
	return queue
}

// QuestionAt returns the question at a queue position.
func (s *Store) QuestionAt(id int64, idx int) (types.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	queue := s.db.Amas[id]
	if idx < 0 || idx >= len(queue) {
		return types.Question{}, &core.RangeError{Value: strconv.Itoa(idx), Max: len(queue)}
	}
	return queue[idx], nil
}

// RemoveQuestion deletes one queue entry. Entries after it shift down one
// position, so their public IDs change.
func (s *Store) RemoveQuestion(id int64, idx int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	queue := s.db.Amas[id]
	if idx < 0 || idx >= len(queue) {
		return &core.RangeError{Value: strconv.Itoa(idx), Max: len(queue)}
	}
	s.db.Amas[id] = append(queue[:idx], queue[idx+1:]...)
	return nil
}

// ClearQuestions empties a user's queue and returns how many entries were
// dropped.
func (s *Store) ClearQuestions(id int64) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(s.db.Amas[id])
	s.db.Amas[id] = []types.Question{}
	return n
}

// AppendReply records an answered question.
func (s *Store) AppendReply(r types.Reply) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.db.ReplyHistory = append(s.db.ReplyHistory, r)
}

// Replies returns a copy of the reply history.
func (s *Store) Replies() []types.Reply {
	s.mu.Lock()
	defer s.mu.Unlock()

	replies := make([]types.Reply, len(s.db.ReplyHistory))
	copy(replies, s.db.ReplyHistory)
	return replies
}

// PatchApplied reports whether a patch version was already broadcast.
func (s *Store) PatchApplied(version string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, v := range s.db.Patches {
		if v == version {
			return true
		}
	}
	return false
}

// MarkPatchApplied records a broadcast patch version.
func (s *Store) MarkPatchApplied(version string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.db.Patches = append(s.db.Patches, version)
}
