package bot

import "fmt"

// BroadcastPatchIfNew sends the configured patch note to every registered
// user, at most once per version. It runs at startup before the update
// loop starts, so the broadcast order relative to commands is fixed.
func (b *Bot) BroadcastPatchIfNew() {
	version := b.cfg.PatchVersion
	if version == "" || b.store.PatchApplied(version) {
		return
	}

	text, ok := b.tmpl.Get(fmt.Sprintf("patchnotes_%s", version))
	if !ok {
		b.log.Warn("patch notes missing, skipping broadcast", "version", version)
		return
	}

	sent := 0
	for _, u := range b.store.Users() {
		if err := b.sender.Send(u.ID, text); err != nil {
			b.log.Error("patch note delivery failed", "recipient", u.ID, "err", err)
			continue
		}
		sent++
	}

	b.store.MarkPatchApplied(version)
	b.log.Info("patch notes broadcast", "version", version, "sent", sent)
}
