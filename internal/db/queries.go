package db

import (
	"database/sql"

	"github.com/example/amabot/internal/types"
)

// ReplyRow is one reply history entry from the index.
type ReplyRow struct {
	Seq       int
	AskerID   int64
	Question  string
	ReplierID int64
	Text      string
}

// RecentReplies returns up to limit replies, newest first, optionally
// filtered to one replier.
func RecentReplies(conn *sql.DB, limit int, replierID int64) ([]ReplyRow, error) {
	query := "SELECT seq, asker_id, question, replier_id, text FROM ama_replies"
	var args []any
	if replierID != 0 {
		query += " WHERE replier_id = ?"
		args = append(args, replierID)
	}
	query += " ORDER BY seq DESC LIMIT ?"
	args = append(args, limit)

	rows, err := conn.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var replies []ReplyRow
	for rows.Next() {
		var r ReplyRow
		if err := rows.Scan(&r.Seq, &r.AskerID, &r.Question, &r.ReplierID, &r.Text); err != nil {
			return nil, err
		}
		replies = append(replies, r)
	}
	return replies, rows.Err()
}

// UserStat is the per-user view for the stats subcommand.
type UserStat struct {
	Position int
	User     types.User
	Pending  int
	Replied  int
}

// UserStats returns every registered user with their queue depth and how
// many replies they have sent, in display order.
func UserStats(conn *sql.DB) ([]UserStat, error) {
	rows, err := conn.Query(`
		SELECT u.position, u.user_id, u.name,
		       (SELECT COUNT(*) FROM ama_questions q WHERE q.owner_id = u.user_id),
		       (SELECT COUNT(*) FROM ama_replies r WHERE r.replier_id = u.user_id)
		FROM ama_users u
		ORDER BY u.position
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stats []UserStat
	for rows.Next() {
		var s UserStat
		if err := rows.Scan(&s.Position, &s.User.ID, &s.User.Name, &s.Pending, &s.Replied); err != nil {
			return nil, err
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

// Totals summarizes the whole index.
type Totals struct {
	Users     int
	Questions int
	Replies   int
	Feedback  int
}

// CountTotals returns aggregate counts across all tables.
func CountTotals(conn *sql.DB) (Totals, error) {
	var t Totals
	row := conn.QueryRow(`
		SELECT
		  (SELECT COUNT(*) FROM ama_users),
		  (SELECT COUNT(*) FROM ama_questions),
		  (SELECT COUNT(*) FROM ama_replies),
		  (SELECT COUNT(*) FROM ama_feedback)
	`)
	if err := row.Scan(&t.Users, &t.Questions, &t.Replies, &t.Feedback); err != nil {
		return Totals{}, err
	}
	return t, nil
}
