package bot

import (
	"fmt"
	"strings"

	"github.com/example/amabot/internal/core"
	"github.com/example/amabot/internal/gateway"
	"github.com/example/amabot/internal/types"
)

func (b *Bot) handleView(in gateway.Inbound) {
	users := b.store.Users()

	var target types.User
	if len(in.Args) == 0 {
		idx := core.IndexOf(users, in.SenderID)
		if idx == -1 {
			b.send(in.SenderID, "You haven't made an AMA by joining using /am!")
			return
		}
		target = users[idx]
	} else {
		// Viewing is read-only, so a name match needs no confirmation.
		res, err := core.ResolveTarget(users, strings.Join(in.Args, " "))
		if err != nil {
			b.sendResolveError(in.SenderID, err)
			return
		}
		target = res.User
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "<b>AMA for %s:</b>\n\n", target.Name)
	for i, q := range b.store.QuestionsFor(target.ID) {
		fmt.Fprintf(&sb, "(%d) %s\n\n", i, q.Text)
	}
	b.send(in.SenderID, sb.String())
}

func (b *Bot) handleUsers(in gateway.Inbound) {
	var sb strings.Builder
	sb.WriteString("Users:\n\n")
	for i, u := range b.store.Users() {
		fmt.Fprintf(&sb, "(%d): %s\n", i, u.Name)
	}
	b.send(in.SenderID, sb.String())
}
