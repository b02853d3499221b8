// Package telegram exposes the dialog controller as a Telegram bot: inline
// keyboards carry the action tokens, free text feeds the pending step.
package telegram

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	tele "gopkg.in/telebot.v3"

	"github.com/atomicstack/listbot/internal/dialog"
	"github.com/atomicstack/listbot/internal/logging"
	"github.com/atomicstack/listbot/internal/logging/events"
)

const pollTimeout = 10 * time.Second

// Bot wires one dialog controller into a long-polling Telegram session.
type Bot struct {
	bot        *tele.Bot
	controller *dialog.Controller
}

// New builds the bot and registers its handlers without starting polling.
func New(controller *dialog.Controller, token string) (*Bot, error) {
	session, err := tele.NewBot(tele.Settings{
		Token:  token,
		Poller: &tele.LongPoller{Timeout: pollTimeout},
	})
	if err != nil {
		return nil, fmt.Errorf("telegram session: %w", err)
	}
	b := &Bot{bot: session, controller: controller}
	session.Handle("/start", b.handleStart)
	session.Handle(tele.OnText, b.handleText)
	session.Handle(tele.OnCallback, b.handleCallback)
	return b, nil
}

// Run builds the bot and polls until the process exits.
func Run(controller *dialog.Controller, token string) error {
	b, err := New(controller, token)
	if err != nil {
		return err
	}
	b.bot.Start()
	return nil
}

func (b *Bot) handleStart(c tele.Context) error {
	user := userToken(c)
	events.Bot.Event(user, "start")
	return b.deliver(c, b.controller.Start(user), false)
}

func (b *Bot) handleText(c tele.Context) error {
	user := userToken(c)
	events.Bot.Event(user, "text")
	return b.deliver(c, b.controller.Text(user, c.Text()), false)
}

func (b *Bot) handleCallback(c tele.Context) error {
	callback := c.Callback()
	if callback == nil {
		return nil
	}
	user := userToken(c)
	events.Bot.Event(user, "callback")
	token := strings.TrimPrefix(strings.TrimSpace(callback.Data), "\f")
	outcome := b.controller.Action(user, token)

	if outcome.Info != "" {
		if err := c.Respond(&tele.CallbackResponse{Text: outcome.Info}); err != nil {
			logging.Error(err)
		}
	} else if err := c.Respond(&tele.CallbackResponse{}); err != nil {
		logging.Error(err)
	}
	return b.deliver(c, outcome, true)
}

// deliver renders one outcome back to the chat. Callback-triggered views
// edit the message the button lives on; when Telegram rejects the edit the
// view is sent as a fresh message instead.
func (b *Bot) deliver(c tele.Context, outcome dialog.Outcome, edit bool) error {
	switch {
	case outcome.View != nil:
		markup := keyboard(outcome.View)
		if edit {
			err := c.Edit(outcome.View.Text, markup)
			if err == nil {
				return nil
			}
			events.Bot.EditFallback(userToken(c), err)
		}
		return c.Send(outcome.View.Text, markup)
	case outcome.Prompt != "":
		return c.Send(outcome.Prompt, &tele.ReplyMarkup{ForceReply: true})
	case outcome.Fail != "":
		return c.Send(outcome.Fail)
	case outcome.Info != "":
		if edit {
			// Already answered through the callback toast.
			return nil
		}
		return c.Send(outcome.Info)
	}
	return nil
}

func keyboard(view *dialog.View) *tele.ReplyMarkup {
	rows := make([][]tele.InlineButton, 0, len(view.Rows))
	for _, row := range view.Rows {
		buttons := make([]tele.InlineButton, 0, len(row))
		for _, button := range row {
			buttons = append(buttons, tele.InlineButton{
				Text: button.Label,
				Data: button.Action,
			})
		}
		rows = append(rows, buttons)
	}
	return &tele.ReplyMarkup{InlineKeyboard: rows}
}

// userToken is the opaque token presented to the list service: the numeric
// Telegram account id.
func userToken(c tele.Context) string {
	sender := c.Sender()
	if sender == nil {
		return ""
	}
	return strconv.FormatInt(sender.ID, 10)
}
