package types

// User is a registered AMA board owner.
type User struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Question is one entry in a user's queue. Its public ID is its position in
// the queue, so deleting an entry renumbers everything after it.
type Question struct {
	AskerID int64  `json:"asker_id"`
	Text    string `json:"text"`
}

// Reply records an answered question. Append-only.
type Reply struct {
	AskerID   int64  `json:"asker_id"`
	Question  string `json:"question"`
	ReplierID int64  `json:"replier_id"`
	Text      string `json:"text"`
}

// Database is the whole persisted aggregate. It is loaded once at startup
// and serialized wholesale by the snapshot job.
type Database struct {
	// Users is kept sorted case-insensitively by name after every insert.
	Users []User `json:"users"`
	// Amas maps a user ID to their question queue. A key exists only for
	// registered users.
	Amas map[int64][]Question `json:"amas"`
	// ReplyHistory grows without bound; retention was never specified.
	ReplyHistory []Reply `json:"reply_history"`
	// Patches lists patch versions already broadcast to all users.
	Patches []string `json:"patches"`
}

// NewDatabase returns an empty aggregate with all containers initialized.
func NewDatabase() *Database {
	return &Database{
		Users:        []User{},
		Amas:         map[int64][]Question{},
		ReplyHistory: []Reply{},
		Patches:      []string{},
	}
}

// Feedback is one record in the feedback log, which lives outside the
// aggregate as an append-only JSONL file.
type Feedback struct {
	ID     string `json:"id"`
	TS     int64  `json:"ts"`
	UserID int64  `json:"user_id"`
	Name   string `json:"name"`
	Text   string `json:"text"`
}

// PendingAsk is a transient confirmation awaiting /confirmama. It is keyed
// by sender ID, never persisted, and abandoned after an expiry window.
type PendingAsk struct {
	TargetIndex int
	Text        string
	CreatedAt   int64
}
