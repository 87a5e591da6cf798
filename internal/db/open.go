// Package db maintains a SQLite read model over the snapshot and feedback
// log for the offline history and stats subcommands. The index is derived
// state: the bot never writes it, and deleting it just forces a rebuild.
package db

import (
	"database/sql"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const indexFile = "index.db"

// Open opens the query index under dataDir, rebuilding it from the
// snapshot and feedback log whenever either is newer than the index.
func Open(dataDir string) (*sql.DB, error) {
	indexPath := filepath.Join(dataDir, indexFile)

	sourceMtime := newestMtime(
		filepath.Join(dataDir, "ama.json"),
		filepath.Join(dataDir, "feedback.jsonl"),
	)
	var indexMtime int64
	if info, err := os.Stat(indexPath); err == nil {
		indexMtime = info.ModTime().UnixMilli()
	}

	conn, err := sql.Open("sqlite", indexPath)
	if err != nil {
		return nil, err
	}
	if _, err := conn.Exec("PRAGMA journal_mode = WAL"); err != nil {
		_ = conn.Close()
		return nil, err
	}

	// indexMtime zero means no index yet; a fresh data dir still needs the
	// schema so the offline commands can report empty results.
	if indexMtime == 0 || sourceMtime > indexMtime {
		if err := Rebuild(conn, dataDir); err != nil {
			_ = conn.Close()
			return nil, err
		}
	}
	return conn, nil
}

func newestMtime(paths ...string) int64 {
	var newest int64
	for _, p := range paths {
		if info, err := os.Stat(p); err == nil {
			if mt := info.ModTime().UnixMilli(); mt > newest {
				newest = mt
			}
		}
	}
	return newest
}
