package dialog

// Button is one selectable entry in a rendered view. Action carries the
// opaque token decoded on the next event.
type Button struct {
	Label  string
	Action string
}

// Row groups buttons displayed side by side.
type Row []Button

// View is the transport-agnostic render result: message text plus ordered
// button rows.
type View struct {
	Text string
	Rows []Row
}

func (v *View) addRow(buttons ...Button) {
	if len(buttons) == 0 {
		return
	}
	v.Rows = append(v.Rows, Row(buttons))
}

func button(label string, a Action) Button {
	return Button{Label: label, Action: a.Token()}
}
