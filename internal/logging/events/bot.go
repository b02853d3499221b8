package events

import "github.com/atomicstack/listbot/internal/logging"

type BotTracer struct{}

var Bot = BotTracer{}

func (BotTracer) Event(user, kind string) {
	logging.Trace("bot.event", map[string]interface{}{"user": user, "kind": kind})
}

func (BotTracer) EditFallback(user string, err error) {
	logging.Trace("bot.edit.fallback", map[string]interface{}{"user": user, "error": err.Error()})
}
