package bot

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/example/amabot/internal/core"
	"github.com/example/amabot/internal/gateway"
	"github.com/example/amabot/internal/types"
)

func (b *Bot) handleReply(in gateway.Inbound) {
	users := b.store.Users()
	senderIdx := core.IndexOf(users, in.SenderID)
	if senderIdx == -1 {
		b.send(in.SenderID, "You haven't made an AMA by joining using /am!")
		return
	}

	questionID, err := strconv.Atoi(in.Args[0])
	if err != nil {
		b.send(in.SenderID, fmt.Sprintf("That (%s) was not a valid question ID.", in.Args[0]))
		return
	}

	question, err := b.store.QuestionAt(in.SenderID, questionID)
	if err != nil {
		queue := b.store.QuestionsFor(in.SenderID)
		b.send(in.SenderID, fmt.Sprintf(
			"That (%d) is not a valid question ID in the range [0, %d)!", questionID, len(queue)))
		return
	}

	text := strings.Join(in.Args[1:], " ")
	b.store.AppendReply(types.Reply{
		AskerID:   question.AskerID,
		Question:  question.Text,
		ReplierID: in.SenderID,
		Text:      text,
	})

	notice := fmt.Sprintf("Reply to your question (%d) on the AMA for %s:\n\nQ: %s\nA: %s",
		questionID, users[senderIdx].Name, question.Text, text)
	if in.PhotoID != "" {
		b.sendPhoto(question.AskerID, notice, in.PhotoID)
	} else {
		b.send(question.AskerID, notice)
	}
	b.send(in.SenderID, "Your reply has been sent!")
}

func (b *Bot) handleClear(in gateway.Inbound) {
	if !b.store.IsRegistered(in.SenderID) {
		b.send(in.SenderID, "You haven't made an AMA by joining using /am!")
		return
	}

	if len(in.Args) == 0 {
		n := b.store.ClearQuestions(in.SenderID)
		b.send(in.SenderID, fmt.Sprintf("Cleared all %d of your questions.", n))
		return
	}

	questionID, err := strconv.Atoi(in.Args[0])
	if err != nil {
		b.send(in.SenderID, fmt.Sprintf("That (%s) was not a valid question ID.", in.Args[0]))
		return
	}

	if err := b.store.RemoveQuestion(in.SenderID, questionID); err != nil {
		queue := b.store.QuestionsFor(in.SenderID)
		b.send(in.SenderID, fmt.Sprintf(
			"That (%d) is not a valid question ID in the range [0, %d)!", questionID, len(queue)))
		return
	}

	b.send(in.SenderID, fmt.Sprintf(
		"Cleared question %d. Note: IDs of later questions have shifted down by one.", questionID))
}
