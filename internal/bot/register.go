package bot

import (
	"errors"
	"strings"

	"github.com/example/amabot/internal/core"
	"github.com/example/amabot/internal/gateway"
	"github.com/example/amabot/internal/store"
	"github.com/example/amabot/internal/types"
)

func (b *Bot) handleRegister(in gateway.Inbound) {
	name := strings.Join(in.Args, " ")
	if name == "" {
		name = core.DeriveName(core.Identity{
			Username:  in.Username,
			FirstName: in.FirstName,
			LastName:  in.LastName,
		})
	}

	err := b.store.AddUser(types.User{ID: in.SenderID, Name: name})
	if errors.Is(err, store.ErrAlreadyRegistered) {
		b.send(in.SenderID, "You're already in the database!")
		return
	}
	if err != nil {
		b.log.Error("register failed", "sender", in.SenderID, "err", err)
		return
	}

	b.log.Info("user registered", "sender", in.SenderID)
	b.send(in.SenderID, "You've been added!")
}

func (b *Bot) handleDeregisterRequest(in gateway.Inbound) {
	if !b.store.IsRegistered(in.SenderID) {
		b.send(in.SenderID, "You haven't made an AMA by joining using /am!")
		return
	}
	b.send(in.SenderID, "Are you sure you want to leave? If so, use /rmc.")
}

func (b *Bot) handleDeregisterConfirm(in gateway.Inbound) {
	b.store.RemoveUser(in.SenderID)
	delete(b.pending, in.SenderID)
	b.log.Info("user deregistered", "sender", in.SenderID)
	b.send(in.SenderID, "You've been removed!")
}
