package gateway

import (
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Telegram is the production gateway: long polling in, HTML messages out.
type Telegram struct {
	api  *tgbotapi.BotAPI
	done chan struct{}
}

// NewTelegram authenticates against the Bot API.
func NewTelegram(token string) (*Telegram, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	return &Telegram{api: api, done: make(chan struct{})}, nil
}

// Self returns the bot's own username.
func (t *Telegram) Self() string { return t.api.Self.UserName }

// Send delivers a text message.
func (t *Telegram) Send(recipient int64, text string) error {
	msg := tgbotapi.NewMessage(recipient, text)
	msg.ParseMode = tgbotapi.ModeHTML
	if _, err := t.api.Send(msg); err != nil {
		return &DeliveryError{Recipient: recipient, Err: err}
	}
	return nil
}

// SendPhoto delivers a photo by Telegram file ID with a caption.
func (t *Telegram) SendPhoto(recipient int64, caption, photoID string) error {
	photo := tgbotapi.NewPhoto(recipient, tgbotapi.FileID(photoID))
	photo.Caption = caption
	if _, err := t.api.Send(photo); err != nil {
		return &DeliveryError{Recipient: recipient, Err: err}
	}
	return nil
}

// Updates returns a channel of parsed command invocations. Non-command
// traffic is dropped here so the dispatch loop only ever sees commands.
func (t *Telegram) Updates() <-chan Inbound {
	cfg := tgbotapi.NewUpdate(0)
	cfg.Timeout = 60

	raw := t.api.GetUpdatesChan(cfg)
	out := make(chan Inbound)
	go forwardUpdates(raw, out, t.done)
	return out
}

// Stop ends long polling and releases the forwarding goroutine even when
// nobody is draining Updates anymore.
func (t *Telegram) Stop() {
	t.api.StopReceivingUpdates()
	close(t.done)
}

func forwardUpdates(raw <-chan tgbotapi.Update, out chan<- Inbound, done <-chan struct{}) {
	defer close(out)
	for {
		select {
		case <-done:
			return
		case update, ok := <-raw:
			if !ok {
				return
			}
			in, ok := parseUpdate(update)
			if !ok {
				continue
			}
			select {
			case out <- in:
			case <-done:
				return
			}
		}
	}
}

func parseUpdate(update tgbotapi.Update) (Inbound, bool) {
	msg := update.Message
	if msg == nil || msg.From == nil {
		return Inbound{}, false
	}

	var command, argText string
	switch {
	case msg.IsCommand():
		command = msg.Command()
		argText = msg.CommandArguments()
	case msg.Caption != "":
		// Photo replies carry the command in the caption.
		command, argText = splitCaptionCommand(msg.Caption)
		if command == "" {
			return Inbound{}, false
		}
	default:
		return Inbound{}, false
	}

	in := Inbound{
		Command:   strings.ToLower(command),
		Args:      strings.Fields(argText),
		SenderID:  msg.From.ID,
		Username:  msg.From.UserName,
		FirstName: msg.From.FirstName,
		LastName:  msg.From.LastName,
	}
	if len(msg.Photo) > 0 {
		// Last PhotoSize is the largest rendition.
		in.PhotoID = msg.Photo[len(msg.Photo)-1].FileID
	}
	return in, true
}

func splitCaptionCommand(caption string) (string, string) {
	caption = strings.TrimSpace(caption)
	if !strings.HasPrefix(caption, "/") {
		return "", ""
	}
	command, rest, _ := strings.Cut(caption[1:], " ")
	if at := strings.Index(command, "@"); at != -1 {
		command = command[:at]
	}
	return command, rest
}
