package bot

import (
	"strings"

	"github.com/example/amabot/internal/core"
	"github.com/example/amabot/internal/gateway"
	"github.com/example/amabot/internal/types"
	"github.com/google/uuid"
)

func (b *Bot) handleFeedback(in gateway.Inbound) {
	text := strings.TrimSpace(strings.Join(in.Args, " "))
	if text == "" {
		b.send(in.SenderID, "Feedback can't be empty!")
		return
	}

	record := types.Feedback{
		ID:     uuid.NewString(),
		TS:     b.now().Unix(),
		UserID: in.SenderID,
		Name: core.DeriveName(core.Identity{
			Username:  in.Username,
			FirstName: in.FirstName,
			LastName:  in.LastName,
		}),
		Text: text,
	}
	if err := b.store.AppendFeedback(record); err != nil {
		b.log.Error("feedback append failed", "sender", in.SenderID, "err", err)
		b.send(in.SenderID, "Sorry, your feedback could not be recorded.")
		return
	}

	b.log.Info("feedback recorded", "sender", in.SenderID, "id", record.ID)
	b.send(in.SenderID, "Thanks for the feedback!")
}
