package dialog

import (
	"fmt"
	"strings"

	"github.com/atomicstack/listbot/internal/api"
	"github.com/atomicstack/listbot/internal/logging/events"
)

// Outcome is what a transport shows after one user event. At most one of
// View/Prompt/Fail is set; Info may accompany a View.
type Outcome struct {
	// View replaces or appends the current menu.
	View *View
	// Prompt asks the user to type one more message.
	Prompt string
	// Info is a short transient notice alongside the view.
	Info string
	// Fail is a brief failure message; backend details stay in the log.
	Fail string
}

// Controller owns the per-user conversation state machine: it maps user
// events (start, free text, action tokens) to outcomes, consulting the
// remote service through its client.
type Controller struct {
	client Client
	steps  *Store
	render *Renderer
}

func New(client Client) *Controller {
	return &Controller{
		client: client,
		steps:  NewStore(),
		render: NewRenderer(client),
	}
}

// Start handles the opening event. Sign-up is idempotent: an
// already-registered conflict is silent success. A user without a root list
// is prompted to name one.
func (c *Controller) Start(user string) Outcome {
	events.Dialog.Start(user)
	c.steps.Clear(user)

	if err := c.client.SignUp(user); err != nil && !api.IsConflict(err) {
		return c.fail(user, "Could not reach the service, try again later.")
	}

	root, err := c.client.RootList(user)
	if err != nil {
		if api.IsNotFound(err) {
			c.steps.Set(user, Pending{Step: StepRootName})
			events.Dialog.Prompt(user, StepRootName.String())
			return Outcome{Prompt: "You have no root list yet. Send a name for it."}
		}
		return c.fail(user, "Could not load your lists, try again later.")
	}
	return c.renderList(user, root.ID, "")
}

// Text handles a free-text message according to the user's pending step.
func (c *Controller) Text(user, text string) Outcome {
	pending := c.steps.Get(user)
	events.Dialog.Submit(user, pending.Step.String(), text)

	switch pending.Step {
	case StepRootName, StepSublistName:
		name := strings.TrimSpace(text)
		if name == "" {
			events.Dialog.Prompt(user, pending.Step.String())
			return Outcome{Prompt: "The name cannot be empty. Send another one."}
		}
		parentID := 0
		if pending.Step == StepSublistName {
			parentID = pending.ParentID
		}
		created, err := c.client.CreateList(user, name, parentID)
		if err != nil {
			return c.fail(user, "Could not create the list, try again later.")
		}
		c.steps.Clear(user)
		return c.renderList(user, created.ID, fmt.Sprintf("Created %q.", name))

	case StepRename:
		name := strings.TrimSpace(text)
		if name == "" {
			events.Dialog.Prompt(user, pending.Step.String())
			return Outcome{Prompt: "The name cannot be empty. Send another one."}
		}
		if err := c.client.RenameList(user, pending.ListID, name); err != nil {
			return c.fail(user, "Could not rename the list, try again later.")
		}
		c.steps.Clear(user)
		return c.renderList(user, pending.ListID, fmt.Sprintf("Renamed to %q.", name))

	case StepDeleteConfirm:
		// Only the confirmation buttons resolve this step.
		events.Dialog.Prompt(user, pending.Step.String())
		return Outcome{Prompt: "Use the buttons to confirm or cancel the delete."}

	case StepKPID:
		kpID, err := ParseCatalogID(text)
		if err != nil {
			events.Dialog.Cancel(user, pending.Step.String(), events.DialogReasonInvalid)
			events.Dialog.Prompt(user, pending.Step.String())
			return Outcome{Prompt: "Send a numeric kinopoisk id or a film link like kinopoisk.ru/film/404900."}
		}
		poster, err := c.client.CreatePosterKP(user, kpID)
		if err != nil {
			return c.fail(user, "Could not fetch that film, try again later.")
		}
		if err := c.client.AddPosterToList(user, pending.ListID, poster.ID); err != nil {
			return c.fail(user, "Could not add the film to the list, try again later.")
		}
		c.steps.Clear(user)
		return c.renderList(user, pending.ListID, fmt.Sprintf("Added %q.", displayName(poster.Name)))
	}

	return Outcome{Info: "Pick an entry from the menu, or send /start."}
}

// Action handles a pressed button. Any pending free-text step is abandoned:
// the button wins.
func (c *Controller) Action(user, token string) Outcome {
	events.Dialog.Action(user, token)
	action, err := ParseAction(token)
	if err != nil {
		return Outcome{Info: "That button is no longer valid."}
	}
	c.steps.Clear(user)

	switch action.Kind {
	case KindOpenList:
		return c.renderList(user, action.ListID, "")

	case KindOpenPoster:
		view, err := c.render.PosterDetail(user, action.ListID, action.PosterID)
		if err != nil {
			if api.IsNotFound(err) {
				return c.renderList(user, action.ListID, "That film is gone.")
			}
			return c.fail(user, "Could not load the film, try again later.")
		}
		return Outcome{View: view}

	case KindAddItem:
		c.steps.Set(user, Pending{Step: StepKPID, ListID: action.ListID})
		events.Dialog.Prompt(user, StepKPID.String())
		return Outcome{Prompt: "Send a kinopoisk id or film link to add."}

	case KindNewSublist:
		c.steps.Set(user, Pending{Step: StepSublistName, ParentID: action.ListID})
		events.Dialog.Prompt(user, StepSublistName.String())
		return Outcome{Prompt: "Send a name for the new sublist."}

	case KindRename:
		c.steps.Set(user, Pending{Step: StepRename, ListID: action.ListID})
		events.Dialog.Prompt(user, StepRename.String())
		return Outcome{Prompt: "Send the new name."}

	case KindDelete:
		return c.confirmDelete(user, action.ListID)

	case KindConfirmYes:
		return c.deleteList(user, action.ListID)

	case KindConfirmNo:
		return c.renderList(user, action.ListID, "Kept it.")

	case KindWatched:
		if _, err := c.client.CreateRecord(user, action.PosterID); err != nil {
			return c.fail(user, "Could not record the watch, try again later.")
		}
		if err := c.client.RemovePosterFromList(user, action.ListID, action.PosterID); err != nil {
			return c.fail(user, "Could not remove the film from the list, try again later.")
		}
		return c.renderList(user, action.ListID, "Moved to watch history.")

	case KindUnlist:
		if err := c.client.RemovePosterFromList(user, action.ListID, action.PosterID); err != nil {
			return c.fail(user, "Could not remove the film, try again later.")
		}
		return c.renderList(user, action.ListID, "Removed from the list.")

	case KindBack:
		return c.back(user, action.ListID)

	case KindHome:
		return c.home(user, "")

	case KindHistory:
		view, err := c.render.History(user)
		if err != nil {
			return c.fail(user, "Could not load the watch history, try again later.")
		}
		return Outcome{View: view}

	case KindOpenRecord:
		view, err := c.render.RecordDetail(user, action.PosterID)
		if err != nil {
			return c.fail(user, "Could not load that entry, try again later.")
		}
		return Outcome{View: view}

	case KindUnrecord:
		if err := c.client.DeleteRecord(user, action.PosterID); err != nil {
			return c.fail(user, "Could not remove the entry, try again later.")
		}
		view, err := c.render.History(user)
		if err != nil {
			return c.fail(user, "Could not load the watch history, try again later.")
		}
		return Outcome{View: view, Info: "Removed from history."}
	}

	return Outcome{Info: "That button is no longer valid."}
}

func (c *Controller) confirmDelete(user string, listID int) Outcome {
	list, err := c.client.List(user, listID)
	if err != nil {
		if api.IsNotFound(err) {
			return c.home(user, "That list no longer exists.")
		}
		return c.fail(user, "Could not load the list, try again later.")
	}
	if list.ParentID == 0 {
		// The root list is never deletable.
		return c.renderList(user, listID, "The root list cannot be deleted.")
	}
	view, err := c.render.ConfirmDelete(user, listID)
	if err != nil {
		return c.fail(user, "Could not load the list, try again later.")
	}
	c.steps.Set(user, Pending{Step: StepDeleteConfirm, ListID: listID})
	return Outcome{View: view}
}

func (c *Controller) deleteList(user string, listID int) Outcome {
	list, err := c.client.List(user, listID)
	if err != nil {
		if api.IsNotFound(err) {
			return c.home(user, "That list no longer exists.")
		}
		return c.fail(user, "Could not load the list, try again later.")
	}
	if list.ParentID == 0 {
		return c.renderList(user, listID, "The root list cannot be deleted.")
	}
	if err := c.client.DeleteList(user, listID); err != nil {
		return c.fail(user, "Could not delete the list, try again later.")
	}
	return c.renderList(user, list.ParentID, fmt.Sprintf("Deleted %q.", list.Name))
}

func (c *Controller) back(user string, listID int) Outcome {
	list, err := c.client.List(user, listID)
	if err != nil {
		if api.IsNotFound(err) {
			return c.home(user, "")
		}
		return c.fail(user, "Could not load the list, try again later.")
	}
	if list.ParentID == 0 {
		return c.renderList(user, listID, "")
	}
	return c.renderList(user, list.ParentID, "")
}

func (c *Controller) home(user, info string) Outcome {
	root, err := c.client.RootList(user)
	if err != nil {
		if api.IsNotFound(err) {
			c.steps.Set(user, Pending{Step: StepRootName})
			events.Dialog.Prompt(user, StepRootName.String())
			return Outcome{Prompt: "You have no root list yet. Send a name for it."}
		}
		return c.fail(user, "Could not load your lists, try again later.")
	}
	return c.renderList(user, root.ID, info)
}

func (c *Controller) renderList(user string, listID int, info string) Outcome {
	view, err := c.render.List(user, listID)
	if err != nil {
		if api.IsNotFound(err) {
			return c.fail(user, "That list no longer exists. Send /start to go home.")
		}
		return c.fail(user, "Could not load the list, try again later.")
	}
	return Outcome{View: view, Info: info}
}

func (c *Controller) fail(user, msg string) Outcome {
	pending := c.steps.Get(user)
	if pending.Step != StepNone {
		events.Dialog.Cancel(user, pending.Step.String(), events.DialogReasonRemote)
	}
	c.steps.Clear(user)
	return Outcome{Fail: msg}
}
