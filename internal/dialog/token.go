package dialog

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind identifies what a selected menu entry should do. The wire form is an
// opaque action token: the kind plus colon-separated numeric arguments,
// e.g. "poster:5:12".
type Kind string

const (
	KindOpenList   Kind = "list"
	KindOpenPoster Kind = "poster"
	KindAddItem    Kind = "additem"
	KindNewSublist Kind = "sublist"
	KindRename     Kind = "rename"
	KindDelete     Kind = "delete"
	KindConfirmYes Kind = "confirm-yes"
	KindConfirmNo  Kind = "confirm-no"
	KindWatched    Kind = "watched"
	KindUnlist     Kind = "unlist"
	KindBack       Kind = "back"
	KindHome       Kind = "home"
	KindHistory    Kind = "history"
	KindOpenRecord Kind = "record"
	KindUnrecord   Kind = "unrecord"
)

// Action is a decoded action token. ListID and PosterID are set according to
// the kind's arity; unused fields stay zero.
type Action struct {
	Kind     Kind
	ListID   int
	PosterID int
}

// Token encodes the action into its opaque wire form.
func (a Action) Token() string {
	switch a.Kind {
	case KindHome, KindHistory:
		return string(a.Kind)
	case KindOpenPoster, KindWatched, KindUnlist:
		return fmt.Sprintf("%s:%d:%d", a.Kind, a.ListID, a.PosterID)
	case KindOpenRecord, KindUnrecord:
		return fmt.Sprintf("%s:%d", a.Kind, a.PosterID)
	default:
		return fmt.Sprintf("%s:%d", a.Kind, a.ListID)
	}
}

// ParseAction decodes an action token. Unknown kinds and malformed arguments
// are reported as errors, never panics: tokens arrive from the outside world.
func ParseAction(token string) (Action, error) {
	parts := strings.Split(token, ":")
	kind := Kind(parts[0])
	args := parts[1:]

	arity := 1
	switch kind {
	case KindHome, KindHistory:
		arity = 0
	case KindOpenPoster, KindWatched, KindUnlist:
		arity = 2
	case KindOpenList, KindAddItem, KindNewSublist, KindRename, KindDelete,
		KindConfirmYes, KindConfirmNo, KindBack, KindOpenRecord, KindUnrecord:
	default:
		return Action{}, fmt.Errorf("unknown action kind %q", parts[0])
	}
	if len(args) != arity {
		return Action{}, fmt.Errorf("action %q wants %d argument(s), got %d", kind, arity, len(args))
	}

	ids := make([]int, len(args))
	for i, arg := range args {
		n, err := strconv.Atoi(arg)
		if err != nil {
			return Action{}, fmt.Errorf("action %q: bad argument %q", kind, arg)
		}
		ids[i] = n
	}

	action := Action{Kind: kind}
	switch kind {
	case KindOpenPoster, KindWatched, KindUnlist:
		action.ListID, action.PosterID = ids[0], ids[1]
	case KindOpenRecord, KindUnrecord:
		action.PosterID = ids[0]
	case KindHome, KindHistory:
	default:
		action.ListID = ids[0]
	}
	return action, nil
}
