package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/example/amabot/internal/types"
)

// Snapshot serializes the whole aggregate to disk. The previous snapshot is
// rotated into the rolling backup only after the new blob is durably
// written, so there is always at least one valid copy on disk.
func (s *Store) Snapshot() error {
	s.mu.Lock()
	data, err := json.MarshalIndent(s.db, "", "  ")
	s.mu.Unlock()
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return err
	}

	main := s.SnapshotPath()
	tmp := main + ".tmp"

	f, err := os.OpenFile(tmp, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	// The new blob is durable; now the old snapshot becomes the backup.
	if _, err := os.Stat(main); err == nil {
		if err := os.Rename(main, filepath.Join(s.dir, backupFile)); err != nil {
			return err
		}
	}
	return os.Rename(tmp, main)
}

// ReadSnapshot loads an aggregate straight from a snapshot file, for
// consumers (like the query index) that never mutate it.
func ReadSnapshot(path string) (*types.Database, error) {
	return readDatabase(path)
}

func loadSnapshot(dir string) (*types.Database, error) {
	db, err := readDatabase(filepath.Join(dir, snapshotFile))
	if err == nil {
		return db, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		// Primary unreadable or corrupt; the rolling backup is the last
		// known-good state.
		if backup, berr := readDatabase(filepath.Join(dir, backupFile)); berr == nil {
			return backup, nil
		}
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	if backup, berr := readDatabase(filepath.Join(dir, backupFile)); berr == nil {
		return backup, nil
	}
	return types.NewDatabase(), nil
}

func readDatabase(path string) (*types.Database, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	db := types.NewDatabase()
	if err := json.Unmarshal(data, db); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if db.Amas == nil {
		db.Amas = map[int64][]types.Question{}
	}
	return db, nil
}
