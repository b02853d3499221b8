package dialog

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/atomicstack/listbot/internal/api"
	"github.com/atomicstack/listbot/internal/format/table"
	"github.com/atomicstack/listbot/internal/logging/events"
)

// unknownName stands in for a poster whose lookup failed; the view still
// completes.
const unknownName = "Unknown"

const dateLayout = "02 Jan 2006"

// Renderer rebuilds navigable views from the remote service. Nothing is
// cached: every call re-fetches.
type Renderer struct {
	client Client
}

func NewRenderer(client Client) *Renderer {
	return &Renderer{client: client}
}

type posterEntry struct {
	ID   int
	Name string
}

// List renders the menu for one list node. The list's own record is a
// required fetch; sublist and poster listings degrade to empty collections,
// and a failed poster-name lookup degrades to a placeholder entry.
func (r *Renderer) List(user string, listID int) (*View, error) {
	list, err := r.client.List(user, listID)
	if err != nil {
		return nil, err
	}

	sublists, err := r.client.Sublists(user, listID)
	if err != nil {
		sublists = nil
	}
	entries, err := r.client.ListPosters(user, listID)
	if err != nil {
		entries = nil
	}
	posters := make([]posterEntry, 0, len(entries))
	for _, entry := range entries {
		name := unknownName
		if poster, err := r.client.Poster(user, entry.PosterID); err == nil {
			name = poster.Name
		}
		posters = append(posters, posterEntry{ID: entry.PosterID, Name: name})
	}

	root := list.ParentID == 0
	view := &View{}
	if len(sublists) == 0 && len(posters) == 0 {
		view.Text = fmt.Sprintf("🎬 List %q is empty.", list.Name)
	} else {
		view.Text = fmt.Sprintf("📂 %s", list.Name)
		for _, sub := range sublists {
			view.addRow(button("📁 "+sub.Name, Action{Kind: KindOpenList, ListID: sub.ID}))
		}
		for _, poster := range posters {
			view.addRow(button("🎥 "+poster.Name, Action{Kind: KindOpenPoster, ListID: listID, PosterID: poster.ID}))
		}
	}

	view.addRow(
		button("➕ Add film", Action{Kind: KindAddItem, ListID: listID}),
		button("➕ New sublist", Action{Kind: KindNewSublist, ListID: listID}),
	)
	manage := []Button{button("✏️ Rename", Action{Kind: KindRename, ListID: listID})}
	if !root {
		manage = append(manage, button("🗑 Delete", Action{Kind: KindDelete, ListID: listID}))
	}
	view.addRow(manage...)
	view.addRow(button("🕘 History", Action{Kind: KindHistory}))
	if !root {
		view.addRow(
			button("⬅️ Back", Action{Kind: KindBack, ListID: listID}),
			button("🏠 Home", Action{Kind: KindHome}),
		)
	}
	events.Dialog.Render(user, "list", listID)
	return view, nil
}

// PosterDetail renders one poster inside the list it was opened from.
func (r *Renderer) PosterDetail(user string, listID, posterID int) (*View, error) {
	poster, err := r.client.Poster(user, posterID)
	if err != nil {
		return nil, err
	}

	lines := []string{fmt.Sprintf("🎬 %s (%s)", displayName(poster.Name), formatYear(poster.Year))}
	if poster.Chrono > 0 {
		lines = append(lines, fmt.Sprintf("Runtime: %d min", poster.Chrono))
	} else {
		lines = append(lines, "Runtime: ?")
	}
	if len(poster.Genres) > 0 {
		lines = append(lines, "Genres: "+strings.Join(poster.Genres, ", "))
	} else {
		lines = append(lines, "Genres: ?")
	}
	if !poster.CreatedAt.IsZero() {
		lines = append(lines, "Added: "+poster.CreatedAt.Format(dateLayout))
	}
	if poster.KPID != "" {
		lines = append(lines, fmt.Sprintf("https://www.kinopoisk.ru/film/%s/", poster.KPID))
	}

	view := &View{Text: strings.Join(lines, "\n")}
	view.addRow(
		button("🗑 Remove from list", Action{Kind: KindUnlist, ListID: listID, PosterID: posterID}),
		button("✅ Watched", Action{Kind: KindWatched, ListID: listID, PosterID: posterID}),
	)
	view.addRow(
		button("⬅️ Back", Action{Kind: KindOpenList, ListID: listID}),
		button("🏠 Home", Action{Kind: KindHome}),
	)
	events.Dialog.Render(user, "poster", posterID)
	return view, nil
}

// History renders the flat watch history, newest first. A 404 from the
// service means the user has no records yet.
func (r *Renderer) History(user string) (*View, error) {
	records, err := r.client.Records(user)
	if err != nil {
		if !api.IsNotFound(err) {
			return nil, err
		}
		records = nil
	}
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})

	view := &View{}
	if len(records) == 0 {
		view.Text = "🕘 Watch history is empty."
	} else {
		view.Text = "🕘 Watch history"
		rows := make([][]string, 0, len(records))
		for _, record := range records {
			name := unknownName
			if poster, err := r.client.Poster(user, record.PosterID); err == nil {
				name = poster.Name
			}
			rows = append(rows, []string{name, formatWatchedAt(record.CreatedAt)})
		}
		labels := table.Format(rows, []table.Alignment{table.AlignLeft, table.AlignRight})
		for i, record := range records {
			view.addRow(button(labels[i], Action{Kind: KindOpenRecord, PosterID: record.PosterID}))
		}
	}
	view.addRow(button("🏠 Home", Action{Kind: KindHome}))
	events.Dialog.Render(user, "history", 0)
	return view, nil
}

// RecordDetail renders one watch-history entry. Both lookups are enrichment:
// the view completes with placeholders when they fail.
func (r *Renderer) RecordDetail(user string, posterID int) (*View, error) {
	name := unknownName
	if poster, err := r.client.Poster(user, posterID); err == nil {
		name = poster.Name
	}
	watchedAt := ""
	if records, err := r.client.Records(user); err == nil {
		for _, record := range records {
			if record.PosterID == posterID {
				watchedAt = formatWatchedAt(record.CreatedAt)
				break
			}
		}
	}
	if watchedAt == "" {
		watchedAt = "?"
	}

	view := &View{Text: fmt.Sprintf("✅ %s\nWatched: %s", displayName(name), watchedAt)}
	view.addRow(button("🗑 Remove from history", Action{Kind: KindUnrecord, PosterID: posterID}))
	view.addRow(
		button("🕘 History", Action{Kind: KindHistory}),
		button("🏠 Home", Action{Kind: KindHome}),
	)
	events.Dialog.Render(user, "record", posterID)
	return view, nil
}

// ConfirmDelete renders the yes/no confirmation for deleting a list.
func (r *Renderer) ConfirmDelete(user string, listID int) (*View, error) {
	list, err := r.client.List(user, listID)
	if err != nil {
		return nil, err
	}
	view := &View{Text: fmt.Sprintf("Delete list %q and everything in it?", list.Name)}
	view.addRow(
		button("Yes, delete", Action{Kind: KindConfirmYes, ListID: listID}),
		button("No, keep it", Action{Kind: KindConfirmNo, ListID: listID}),
	)
	events.Dialog.Render(user, "confirm-delete", listID)
	return view, nil
}

func displayName(name string) string {
	if strings.TrimSpace(name) == "" {
		return unknownName
	}
	return name
}

func formatYear(year int) string {
	if year <= 0 {
		return "?"
	}
	return fmt.Sprintf("%d", year)
}

func formatWatchedAt(t time.Time) string {
	if t.IsZero() {
		return "?"
	}
	return t.Format(dateLayout)
}
