package store

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/example/amabot/internal/types"
)

// AppendFeedback adds one record to the feedback log. The log is JSONL and
// append-only; it is not part of the snapshotted aggregate.
func (s *Store) AppendFeedback(f types.Feedback) error {
	data, err := json.Marshal(f)
	if err != nil {
		return err
	}
	return atomicAppend(s.FeedbackPath(), data)
}

// ReadFeedback loads the whole feedback log, oldest first. A missing log
// is an empty one.
func ReadFeedback(path string) ([]types.Feedback, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 10*1024*1024)

	var records []types.Feedback
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var f types.Feedback
		if err := json.Unmarshal([]byte(line), &f); err != nil {
			continue
		}
		records = append(records, f)
	}
	return records, scanner.Err()
}

func atomicAppend(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := syscall.Flock(int(f.Fd()), syscall.LOCK_EX); err != nil {
		return err
	}
	defer syscall.Flock(int(f.Fd()), syscall.LOCK_UN)

	if _, err := f.Write(append(data, '\n')); err != nil {
		return err
	}
	return f.Sync()
}
