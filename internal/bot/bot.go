// Package bot implements the AMA command surface: registration, asking,
// viewing, replying, clearing, feedback, patch broadcast, and the
// privileged restart. Handlers validate against the store, answer the
// sender, and mutate nothing on any error path.
package bot

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/example/amabot/internal/config"
	"github.com/example/amabot/internal/gateway"
	"github.com/example/amabot/internal/store"
	"github.com/example/amabot/internal/templates"
	"github.com/example/amabot/internal/types"
)

// pendingTTL bounds how long a name-match confirmation stays claimable.
const pendingTTL = 10 * time.Minute

// Bot holds the dependencies every handler needs. All dispatch happens on
// one goroutine; the store carries its own lock for the snapshot ticker.
type Bot struct {
	store   *store.Store
	sender  gateway.Sender
	tmpl    *templates.Store
	cfg     config.Config
	log     *log.Logger
	pending map[int64]types.PendingAsk
	now     func() time.Time

	// current is the inbound event being dispatched, kept for log context.
	current          gateway.Inbound
	restartRequested bool
}

// New wires a bot. logger may not be nil; tests pass a discard logger.
func New(st *store.Store, sender gateway.Sender, tmpl *templates.Store, cfg config.Config, logger *log.Logger) *Bot {
	return &Bot{
		store:   st,
		sender:  sender,
		tmpl:    tmpl,
		cfg:     cfg,
		log:     logger,
		pending: map[int64]types.PendingAsk{},
		now:     time.Now,
	}
}

// Dispatch routes one inbound command. Unknown commands are ignored, the
// way group chats are full of other bots' traffic.
func (b *Bot) Dispatch(in gateway.Inbound) {
	cmd, ok := commandTable[in.Command]
	if !ok {
		return
	}
	b.current = in

	if len(in.Args) < cmd.minArgs || (cmd.maxArgs >= 0 && len(in.Args) > cmd.maxArgs) {
		b.send(in.SenderID, "Usage: "+cmd.usage)
		return
	}
	if cmd.privileged && !b.cfg.IsAdmin(in.SenderID) {
		b.send(in.SenderID, "You aren't allowed to do that!")
		return
	}
	cmd.run(b, in)
}

// send delivers best effort; failures are logged with the recipient and
// the inbound event that caused them, and never interrupt dispatch.
func (b *Bot) send(recipient int64, text string) {
	if err := b.sender.Send(recipient, text); err != nil {
		b.log.Error("send failed",
			"recipient", recipient,
			"command", b.current.Command,
			"from", b.current.SenderID,
			"err", err)
	}
}

func (b *Bot) sendPhoto(recipient int64, caption, photoID string) {
	if err := b.sender.SendPhoto(recipient, caption, photoID); err != nil {
		b.log.Error("send photo failed",
			"recipient", recipient,
			"command", b.current.Command,
			"from", b.current.SenderID,
			"err", err)
	}
}

// command describes one dispatch table entry. maxArgs -1 means unbounded.
type command struct {
	usage      string
	minArgs    int
	maxArgs    int
	privileged bool
	run        func(*Bot, gateway.Inbound)
}

var commandTable = map[string]command{}

func register(entry command, names ...string) {
	for _, name := range names {
		commandTable[name] = entry
	}
}

func init() {
	register(command{usage: "/start", maxArgs: -1, run: (*Bot).handleStart}, "start")
	register(command{usage: "/help", maxArgs: -1, run: (*Bot).handleHelp}, "help")

	register(command{usage: "/am {optional name}", maxArgs: -1, run: (*Bot).handleRegister},
		"addme", "setname", "am", "sn")
	register(command{usage: "/rm", maxArgs: 0, run: (*Bot).handleDeregisterRequest},
		"removeme", "rm")
	register(command{usage: "/rmc", maxArgs: 0, run: (*Bot).handleDeregisterConfirm},
		"rmc")

	register(command{usage: "/ama {ID from /users or name} {text}", minArgs: 2, maxArgs: -1, run: (*Bot).handleAsk},
		"ama", "ask")
	register(command{usage: "/confirmama", maxArgs: 0, run: (*Bot).handleConfirmAsk},
		"confirmama")
	register(command{usage: "/massask {text}", minArgs: 1, maxArgs: -1, run: (*Bot).handleMassAsk},
		"massask", "askall")

	register(command{usage: "/display {optional ID from /users or name}", maxArgs: -1, run: (*Bot).handleView},
		"display", "view", "d")
	register(command{usage: "/users", maxArgs: 0, run: (*Bot).handleUsers},
		"users", "u")

	register(command{usage: "/reply {question ID} {text}", minArgs: 2, maxArgs: -1, run: (*Bot).handleReply},
		"reply", "r")
	register(command{usage: "/clear {optional question ID}", maxArgs: 1, run: (*Bot).handleClear},
		"clear", "c")

	register(command{usage: "/feedback {text}", minArgs: 1, maxArgs: -1, run: (*Bot).handleFeedback},
		"feedback")
	register(command{usage: "/restart", maxArgs: 0, privileged: true, run: (*Bot).handleRestart},
		"restart")
}

func (b *Bot) handleStart(in gateway.Inbound) { b.sendStatic(in.SenderID, "start") }
func (b *Bot) handleHelp(in gateway.Inbound)  { b.sendStatic(in.SenderID, "help") }

func (b *Bot) sendStatic(recipient int64, name string) {
	text, ok := b.tmpl.Get(name)
	if !ok {
		b.log.Warn("static template missing", "name", name)
		text = fmt.Sprintf("No %s text is configured.", name)
	}
	b.send(recipient, text)
}
