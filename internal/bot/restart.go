package bot

import (
	"github.com/example/amabot/internal/gateway"
)

// handleRestart snapshots synchronously, acknowledges the admin, and asks
// the run loop to exit cleanly so the supervisor relaunches the process.
// Dispatch has already enforced the allow-list.
func (b *Bot) handleRestart(in gateway.Inbound) {
	if err := b.store.Snapshot(); err != nil {
		// Never tear down without a fresh durable snapshot.
		b.log.Error("restart aborted, snapshot failed", "err", err)
		b.send(in.SenderID, "Restart aborted: the database could not be saved.")
		return
	}

	b.log.Info("restart requested", "sender", in.SenderID)
	b.send(in.SenderID, "Database saved. Restarting...")
	b.restartRequested = true
}
