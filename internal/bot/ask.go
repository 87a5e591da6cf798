package bot

import (
	"errors"
	"fmt"
	"strings"

	"github.com/example/amabot/internal/core"
	"github.com/example/amabot/internal/gateway"
	"github.com/example/amabot/internal/types"
)

func (b *Bot) handleAsk(in gateway.Inbound) {
	selector := in.Args[0]
	text := strings.Join(in.Args[1:], " ")

	res, err := core.ResolveTarget(b.store.Users(), selector)
	if err != nil {
		b.sendResolveError(in.SenderID, err)
		return
	}
	if res.User.ID == in.SenderID {
		b.send(in.SenderID, "You can't ask yourself a question!")
		return
	}

	if res.ByName {
		// Substring matches can land on the wrong person; hold the
		// question until the sender confirms.
		b.pending[in.SenderID] = types.PendingAsk{
			TargetIndex: res.Index,
			Text:        text,
			CreatedAt:   b.now().Unix(),
		}
		b.send(in.SenderID, fmt.Sprintf(
			"Are you sure you want to ask %s this question? If so, use /confirmama.", res.User.Name))
		return
	}

	b.postQuestion(in.SenderID, res.User, text)
}

func (b *Bot) handleConfirmAsk(in gateway.Inbound) {
	pending, ok := b.pending[in.SenderID]
	if ok && b.now().Unix()-pending.CreatedAt > int64(pendingTTL.Seconds()) {
		delete(b.pending, in.SenderID)
		ok = false
	}
	if !ok {
		b.send(in.SenderID, "No pending confirmation found!")
		return
	}

	// The user list may have shrunk since the prompt.
	users := b.store.Users()
	if pending.TargetIndex < 0 || pending.TargetIndex >= len(users) {
		delete(b.pending, in.SenderID)
		b.send(in.SenderID, fmt.Sprintf(
			"That (%d) is not a valid ID in the range [0, %d)!", pending.TargetIndex, len(users)))
		return
	}

	delete(b.pending, in.SenderID)
	b.postQuestion(in.SenderID, users[pending.TargetIndex], pending.Text)
}

func (b *Bot) handleMassAsk(in gateway.Inbound) {
	text := strings.Join(in.Args, " ")

	asked := 0
	for _, u := range b.store.Users() {
		if u.ID == in.SenderID {
			continue
		}
		id := b.store.AppendQuestion(u.ID, in.SenderID, text)
		b.notifyNewQuestion(u.ID, id, text)
		asked++
	}

	b.log.Info("mass ask", "sender", in.SenderID, "targets", asked)
	b.send(in.SenderID, fmt.Sprintf("Your question has been asked to %d users!", asked))
}

func (b *Bot) postQuestion(senderID int64, target types.User, text string) {
	id := b.store.AppendQuestion(target.ID, senderID, text)
	b.send(senderID, "Your question has been asked!")
	b.notifyNewQuestion(target.ID, id, text)
}

func (b *Bot) notifyNewQuestion(targetID int64, id int, text string) {
	b.send(targetID, fmt.Sprintf("You have a new question (%d): %s", id, text))
	b.send(targetID, fmt.Sprintf("You can reply to the sender with /reply %d {text}.", id))
}

func (b *Bot) sendResolveError(senderID int64, err error) {
	var re *core.RangeError
	switch {
	case errors.As(err, &re):
		b.send(senderID, fmt.Sprintf("That (%s) is not a valid ID in the range [0, %d)!", re.Value, re.Max))
	case errors.Is(err, core.ErrNoMatch):
		b.send(senderID, "Error: Could not find a matching name!")
	default:
		b.log.Error("resolve failed", "err", err)
	}
}

// prunePending drops confirmations nobody claimed within the TTL.
func (b *Bot) prunePending() {
	cutoff := b.now().Unix() - int64(pendingTTL.Seconds())
	for sender, p := range b.pending {
		if p.CreatedAt < cutoff {
			delete(b.pending, sender)
		}
	}
}
