package db

import (
	"database/sql"
	"errors"
	"os"
	"path/filepath"

	"github.com/example/amabot/internal/store"
	"github.com/example/amabot/internal/types"
)

const schemaSQL = `
DROP TABLE IF EXISTS ama_users;
DROP TABLE IF EXISTS ama_questions;
DROP TABLE IF EXISTS ama_replies;
DROP TABLE IF EXISTS ama_feedback;

CREATE TABLE ama_users (
  position INTEGER NOT NULL,        -- index in display order
  user_id INTEGER PRIMARY KEY,
  name TEXT NOT NULL
);

CREATE TABLE ama_questions (
  owner_id INTEGER NOT NULL,        -- whose board the question sits on
  question_id INTEGER NOT NULL,     -- queue position at snapshot time
  asker_id INTEGER NOT NULL,
  text TEXT NOT NULL,
  PRIMARY KEY (owner_id, question_id)
);

CREATE TABLE ama_replies (
  seq INTEGER PRIMARY KEY,          -- append order
  asker_id INTEGER NOT NULL,
  question TEXT NOT NULL,
  replier_id INTEGER NOT NULL,
  text TEXT NOT NULL
);

CREATE TABLE ama_feedback (
  id TEXT PRIMARY KEY,
  ts INTEGER NOT NULL,
  user_id INTEGER NOT NULL,
  name TEXT NOT NULL,
  text TEXT NOT NULL
);
`

// Rebuild repopulates the index from the snapshot and feedback log.
func Rebuild(conn *sql.DB, dataDir string) error {
	agg, err := store.ReadSnapshot(filepath.Join(dataDir, "ama.json"))
	if errors.Is(err, os.ErrNotExist) {
		agg = types.NewDatabase()
	} else if err != nil {
		return err
	}
	feedback, err := store.ReadFeedback(filepath.Join(dataDir, "feedback.jsonl"))
	if err != nil {
		return err
	}

	tx, err := conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(schemaSQL); err != nil {
		return err
	}

	for i, u := range agg.Users {
		if _, err := tx.Exec(
			"INSERT INTO ama_users (position, user_id, name) VALUES (?, ?, ?)",
			i, u.ID, u.Name); err != nil {
			return err
		}
	}
	for owner, queue := range agg.Amas {
		for i, q := range queue {
			if _, err := tx.Exec(
				"INSERT INTO ama_questions (owner_id, question_id, asker_id, text) VALUES (?, ?, ?, ?)",
				owner, i, q.AskerID, q.Text); err != nil {
				return err
			}
		}
	}
	for i, r := range agg.ReplyHistory {
		if _, err := tx.Exec(
			"INSERT INTO ama_replies (seq, asker_id, question, replier_id, text) VALUES (?, ?, ?, ?, ?)",
			i, r.AskerID, r.Question, r.ReplierID, r.Text); err != nil {
			return err
		}
	}
	for _, f := range feedback {
		if _, err := tx.Exec(
			"INSERT INTO ama_feedback (id, ts, user_id, name, text) VALUES (?, ?, ?, ?, ?)",
			f.ID, f.TS, f.UserID, f.Name, f.Text); err != nil {
			return err
		}
	}

	return tx.Commit()
}
