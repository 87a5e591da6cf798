package bot

import (
	"context"
	"errors"
	"time"

	"github.com/example/amabot/internal/gateway"
)

// ErrRestartRequested reports a clean shutdown triggered by /restart. The
// process exits zero and the supervisor relaunches it; a fresh snapshot is
// already on disk by the time this surfaces.
var ErrRestartRequested = errors.New("restart requested")

// Run consumes inbound commands one at a time and snapshots the store on
// the configured interval. Commands, snapshots, and pending-ask expiry all
// execute on this one goroutine, which is the mutual exclusion for
// everything except the store itself.
func (b *Bot) Run(ctx context.Context, updates <-chan gateway.Inbound) error {
	ticker := time.NewTicker(time.Duration(b.cfg.SnapshotInterval))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			b.snapshot("shutdown")
			return nil
		case <-ticker.C:
			b.prunePending()
			b.snapshot("interval")
		case in, ok := <-updates:
			if !ok {
				b.snapshot("updates closed")
				return nil
			}
			b.Dispatch(in)
			if b.restartRequested {
				return ErrRestartRequested
			}
		}
	}
}

func (b *Bot) snapshot(reason string) {
	if err := b.store.Snapshot(); err != nil {
		// The previous snapshot generation is still intact on disk.
		b.log.Error("snapshot failed", "reason", reason, "err", err)
		return
	}
	b.log.Info("snapshot written", "reason", reason)
}
