package events

import "github.com/atomicstack/listbot/internal/logging"

type DialogTracer struct{}

type dialogReason string

const (
	DialogReasonInvalid dialogReason = "invalid"
	DialogReasonRemote  dialogReason = "remote"
)

var Dialog = DialogTracer{}

func (DialogTracer) Start(user string) {
	logging.Trace("dialog.start", map[string]interface{}{"user": user})
}

func (DialogTracer) Prompt(user, step string) {
	logging.Trace("dialog.prompt", map[string]interface{}{"user": user, "step": step})
}

func (DialogTracer) Submit(user, step, text string) {
	logging.Trace("dialog.submit", map[string]interface{}{"user": user, "step": step, "text": text})
}

func (DialogTracer) Cancel(user, step string, reason dialogReason) {
	logging.Trace("dialog.cancel", map[string]interface{}{"user": user, "step": step, "reason": string(reason)})
}

func (DialogTracer) Action(user, token string) {
	logging.Trace("dialog.action", map[string]interface{}{"user": user, "token": token})
}

func (DialogTracer) Render(user, view string, id int) {
	logging.Trace("dialog.render", map[string]interface{}{"user": user, "view": view, "id": id})
}
