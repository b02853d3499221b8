package dialog

import (
	"strings"
	"testing"
)

const testUser = "token-1"

func findAction(t *testing.T, view *View, token string) Button {
	t.Helper()
	for _, row := range view.Rows {
		for _, b := range row {
			if b.Action == token {
				return b
			}
		}
	}
	t.Fatalf("view has no button with action %q; rows: %#v", token, view.Rows)
	return Button{}
}

func hasAction(view *View, token string) bool {
	for _, row := range view.Rows {
		for _, b := range row {
			if b.Action == token {
				return true
			}
		}
	}
	return false
}

func countButtons(view *View) int {
	n := 0
	for _, row := range view.Rows {
		n += len(row)
	}
	return n
}

func TestStartWithoutRootPromptsForName(t *testing.T) {
	svc := newFakeService()
	ctrl := New(svc)

	out := ctrl.Start(testUser)
	if out.Prompt == "" {
		t.Fatalf("expected a root-name prompt, got %#v", out)
	}
	if !svc.signedUp[testUser] {
		t.Fatalf("expected sign-up to be attempted")
	}

	out = ctrl.Text(testUser, "Movies")
	if out.View == nil {
		t.Fatalf("expected the created root to render, got %#v", out)
	}
	root, err := svc.RootList(testUser)
	if err != nil {
		t.Fatalf("root list not created: %v", err)
	}
	if root.Name != "Movies" || root.ParentID != 0 {
		t.Fatalf("unexpected root: %#v", root)
	}
	if !strings.Contains(out.View.Text, "Movies") {
		t.Fatalf("view text should name the list, got %q", out.View.Text)
	}
}

func TestStartSignUpConflictIsSilent(t *testing.T) {
	svc := newFakeService()
	svc.signedUp[testUser] = true
	root := svc.addList("Movies", 0)
	ctrl := New(svc)

	out := ctrl.Start(testUser)
	if out.Fail != "" || out.View == nil {
		t.Fatalf("conflict on sign-up should be success, got %#v", out)
	}
	if !hasAction(out.View, Action{Kind: KindAddItem, ListID: root.ID}.Token()) {
		t.Fatalf("expected the root menu, got %#v", out.View.Rows)
	}
}

func TestEmptyListMenuOffersExactlyManagementActions(t *testing.T) {
	svc := newFakeService()
	root := svc.addList("Movies", 0)
	ctrl := New(svc)

	out := ctrl.Action(testUser, Action{Kind: KindOpenList, ListID: root.ID}.Token())
	if out.View == nil {
		t.Fatalf("expected a view, got %#v", out)
	}
	if !strings.Contains(out.View.Text, "empty") {
		t.Fatalf("expected the empty-list text, got %q", out.View.Text)
	}
	// Root menu: add film, new sublist, rename, history. No delete, no
	// back/home, no item entries.
	if got := countButtons(out.View); got != 4 {
		t.Fatalf("expected 4 buttons on an empty root, got %d: %#v", got, out.View.Rows)
	}
	if hasAction(out.View, Action{Kind: KindDelete, ListID: root.ID}.Token()) {
		t.Fatalf("root list must not offer delete")
	}
}

func TestNonRootListOffersDeleteAndBack(t *testing.T) {
	svc := newFakeService()
	root := svc.addList("Movies", 0)
	sub := svc.addList("Horror", root.ID)
	ctrl := New(svc)

	out := ctrl.Action(testUser, Action{Kind: KindOpenList, ListID: sub.ID}.Token())
	findAction(t, out.View, Action{Kind: KindDelete, ListID: sub.ID}.Token())
	findAction(t, out.View, Action{Kind: KindBack, ListID: sub.ID}.Token())
	findAction(t, out.View, Action{Kind: KindHome}.Token())
}

func TestCreateSublistRoundTrip(t *testing.T) {
	svc := newFakeService()
	root := svc.addList("Movies", 0)
	ctrl := New(svc)

	out := ctrl.Action(testUser, Action{Kind: KindNewSublist, ListID: root.ID}.Token())
	if out.Prompt == "" {
		t.Fatalf("expected a name prompt, got %#v", out)
	}

	out = ctrl.Text(testUser, "  Horror  ")
	if out.View == nil {
		t.Fatalf("expected the new sublist to render, got %#v", out)
	}
	subs, err := svc.Sublists(testUser, root.ID)
	if err != nil || len(subs) != 1 {
		t.Fatalf("expected one sublist, got %v (%v)", subs, err)
	}
	if subs[0].Name != "Horror" {
		t.Fatalf("name should be trimmed, got %q", subs[0].Name)
	}

	// Parent menu now carries the sublist entry.
	out = ctrl.Action(testUser, Action{Kind: KindOpenList, ListID: root.ID}.Token())
	entry := findAction(t, out.View, Action{Kind: KindOpenList, ListID: subs[0].ID}.Token())
	if !strings.Contains(entry.Label, "Horror") {
		t.Fatalf("sublist entry should carry its name, got %q", entry.Label)
	}
}

func TestEmptyNameKeepsPrompting(t *testing.T) {
	svc := newFakeService()
	root := svc.addList("Movies", 0)
	ctrl := New(svc)

	ctrl.Action(testUser, Action{Kind: KindNewSublist, ListID: root.ID}.Token())
	out := ctrl.Text(testUser, "   ")
	if out.Prompt == "" {
		t.Fatalf("blank name should re-prompt, got %#v", out)
	}
	if got := ctrl.steps.Get(testUser).Step; got != StepSublistName {
		t.Fatalf("step should survive a blank name, got %v", got)
	}
	if subs, _ := svc.Sublists(testUser, root.ID); len(subs) != 0 {
		t.Fatalf("no list should be created, got %v", subs)
	}
}

func TestRenameList(t *testing.T) {
	svc := newFakeService()
	root := svc.addList("Movies", 0)
	ctrl := New(svc)

	out := ctrl.Action(testUser, Action{Kind: KindRename, ListID: root.ID}.Token())
	if out.Prompt == "" {
		t.Fatalf("expected a rename prompt, got %#v", out)
	}
	out = ctrl.Text(testUser, "Films")
	if out.View == nil || !strings.Contains(out.View.Text, "Films") {
		t.Fatalf("expected the renamed list to render, got %#v", out)
	}
	if list, _ := svc.List(testUser, root.ID); list.Name != "Films" {
		t.Fatalf("rename not applied: %#v", list)
	}
}

func TestAddFilmByCatalogID(t *testing.T) {
	svc := newFakeService()
	root := svc.addList("Movies", 0)
	ctrl := New(svc)

	ctrl.Action(testUser, Action{Kind: KindAddItem, ListID: root.ID}.Token())

	// Garbage input keeps the step so the user can retry.
	out := ctrl.Text(testUser, "not an id")
	if out.Prompt == "" {
		t.Fatalf("invalid catalog input should re-prompt, got %#v", out)
	}
	if got := ctrl.steps.Get(testUser); got.Step != StepKPID || got.ListID != root.ID {
		t.Fatalf("step should survive invalid input, got %#v", got)
	}

	out = ctrl.Text(testUser, "https://www.kinopoisk.ru/film/404900/")
	if out.View == nil {
		t.Fatalf("expected the list to render after adding, got %#v", out)
	}
	entries, _ := svc.ListPosters(testUser, root.ID)
	if len(entries) != 1 {
		t.Fatalf("expected one linked poster, got %v", entries)
	}
	if svc.posters[entries[0].PosterID].KPID != "404900" {
		t.Fatalf("id should be extracted from the URL, got %#v", svc.posters[entries[0].PosterID])
	}
	if got := ctrl.steps.Get(testUser).Step; got != StepNone {
		t.Fatalf("step should clear on success, got %v", got)
	}
}

func TestPosterLookupFailureRendersPlaceholder(t *testing.T) {
	svc := newFakeService()
	root := svc.addList("Movies", 0)
	svc.link(root.ID, 999) // dangling poster id
	ctrl := New(svc)

	out := ctrl.Action(testUser, Action{Kind: KindOpenList, ListID: root.ID}.Token())
	if out.View == nil {
		t.Fatalf("the list must still render, got %#v", out)
	}
	entry := findAction(t, out.View, Action{Kind: KindOpenPoster, ListID: root.ID, PosterID: 999}.Token())
	if !strings.Contains(entry.Label, unknownName) {
		t.Fatalf("dangling poster should show %q, got %q", unknownName, entry.Label)
	}
}

func TestListingFailuresRenderEmptyList(t *testing.T) {
	svc := newFakeService()
	root := svc.addList("Movies", 0)
	poster := svc.addPoster("Alien")
	svc.link(root.ID, poster.ID)
	ctrl := New(svc)

	svc.failNext("Sublists", boom())
	svc.failNext("ListPosters", boom())
	out := ctrl.Action(testUser, Action{Kind: KindOpenList, ListID: root.ID}.Token())
	if out.View == nil || out.Fail != "" {
		t.Fatalf("listing failures must not abort the view, got %#v", out)
	}
	if !strings.Contains(out.View.Text, "empty") {
		t.Fatalf("expected the empty rendering, got %q", out.View.Text)
	}
}

func TestDeleteRequiresConfirmation(t *testing.T) {
	svc := newFakeService()
	root := svc.addList("Movies", 0)
	sub := svc.addList("Horror", root.ID)
	ctrl := New(svc)

	out := ctrl.Action(testUser, Action{Kind: KindDelete, ListID: sub.ID}.Token())
	if out.View == nil || !strings.Contains(out.View.Text, "Horror") {
		t.Fatalf("expected a confirmation view, got %#v", out)
	}
	findAction(t, out.View, Action{Kind: KindConfirmYes, ListID: sub.ID}.Token())
	findAction(t, out.View, Action{Kind: KindConfirmNo, ListID: sub.ID}.Token())
	if _, err := svc.List(testUser, sub.ID); err != nil {
		t.Fatalf("nothing should be deleted yet: %v", err)
	}

	// Free text during confirmation does not resolve it.
	out = ctrl.Text(testUser, "yes")
	if out.Prompt == "" {
		t.Fatalf("free text should point at the buttons, got %#v", out)
	}
	if _, err := svc.List(testUser, sub.ID); err != nil {
		t.Fatalf("free text must not delete: %v", err)
	}

	out = ctrl.Action(testUser, Action{Kind: KindConfirmYes, ListID: sub.ID}.Token())
	if out.View == nil || !strings.Contains(out.View.Text, "Movies") {
		t.Fatalf("expected the parent to render after delete, got %#v", out)
	}
	if _, err := svc.List(testUser, sub.ID); err == nil {
		t.Fatalf("sublist should be gone")
	}
}

func TestConfirmNoChangesNothing(t *testing.T) {
	svc := newFakeService()
	root := svc.addList("Movies", 0)
	sub := svc.addList("Horror", root.ID)
	poster := svc.addPoster("Alien")
	svc.link(sub.ID, poster.ID)
	ctrl := New(svc)
	_ = root

	ctrl.Action(testUser, Action{Kind: KindDelete, ListID: sub.ID}.Token())
	out := ctrl.Action(testUser, Action{Kind: KindConfirmNo, ListID: sub.ID}.Token())
	if out.View == nil {
		t.Fatalf("expected the list to render, got %#v", out)
	}
	if _, err := svc.List(testUser, sub.ID); err != nil {
		t.Fatalf("list should survive: %v", err)
	}
	if entries, _ := svc.ListPosters(testUser, sub.ID); len(entries) != 1 {
		t.Fatalf("list contents should be untouched, got %v", entries)
	}
	if got := ctrl.steps.Get(testUser).Step; got != StepNone {
		t.Fatalf("confirmation step should clear, got %v", got)
	}
}

func TestRootListNeverDeletable(t *testing.T) {
	svc := newFakeService()
	root := svc.addList("Movies", 0)
	ctrl := New(svc)

	// Even a hand-crafted token must not delete the root.
	out := ctrl.Action(testUser, Action{Kind: KindConfirmYes, ListID: root.ID}.Token())
	if out.Info == "" {
		t.Fatalf("expected a refusal notice, got %#v", out)
	}
	if _, err := svc.List(testUser, root.ID); err != nil {
		t.Fatalf("root must survive: %v", err)
	}
	out = ctrl.Action(testUser, Action{Kind: KindDelete, ListID: root.ID}.Token())
	if out.Info == "" {
		t.Fatalf("expected a refusal notice, got %#v", out)
	}
}

func TestWatchedMovesPosterToHistory(t *testing.T) {
	svc := newFakeService()
	root := svc.addList("Movies", 0)
	poster := svc.addPoster("Alien")
	svc.link(root.ID, poster.ID)
	ctrl := New(svc)

	out := ctrl.Action(testUser, Action{Kind: KindWatched, ListID: root.ID, PosterID: poster.ID}.Token())
	if out.View == nil {
		t.Fatalf("expected the list to re-render, got %#v", out)
	}
	if entries, _ := svc.ListPosters(testUser, root.ID); len(entries) != 0 {
		t.Fatalf("poster should leave the list, got %v", entries)
	}
	records, _ := svc.Records(testUser)
	if len(records) != 1 || records[0].PosterID != poster.ID {
		t.Fatalf("expected exactly one history entry, got %v", records)
	}
}

func TestHistoryAndRecordRemoval(t *testing.T) {
	svc := newFakeService()
	root := svc.addList("Movies", 0)
	poster := svc.addPoster("Alien")
	svc.link(root.ID, poster.ID)
	ctrl := New(svc)
	ctrl.Action(testUser, Action{Kind: KindWatched, ListID: root.ID, PosterID: poster.ID}.Token())

	out := ctrl.Action(testUser, Action{Kind: KindHistory}.Token())
	entry := findAction(t, out.View, Action{Kind: KindOpenRecord, PosterID: poster.ID}.Token())
	if !strings.Contains(entry.Label, "Alien") {
		t.Fatalf("history entry should carry the film name, got %q", entry.Label)
	}

	out = ctrl.Action(testUser, Action{Kind: KindOpenRecord, PosterID: poster.ID}.Token())
	findAction(t, out.View, Action{Kind: KindUnrecord, PosterID: poster.ID}.Token())

	out = ctrl.Action(testUser, Action{Kind: KindUnrecord, PosterID: poster.ID}.Token())
	if out.View == nil || !strings.Contains(out.View.Text, "empty") {
		t.Fatalf("expected the emptied history, got %#v", out)
	}
	if records, _ := svc.Records(testUser); len(records) != 0 {
		t.Fatalf("record should be gone, got %v", records)
	}
}

func TestRequiredFetchFailureClearsStepAndFails(t *testing.T) {
	svc := newFakeService()
	root := svc.addList("Movies", 0)
	ctrl := New(svc)

	ctrl.Action(testUser, Action{Kind: KindRename, ListID: root.ID}.Token())
	svc.failNext("RenameList", boom())
	out := ctrl.Text(testUser, "Films")
	if out.Fail == "" {
		t.Fatalf("expected a failure outcome, got %#v", out)
	}
	if strings.Contains(out.Fail, "500") || strings.Contains(out.Fail, "internal error") {
		t.Fatalf("backend details must not leak: %q", out.Fail)
	}
	if got := ctrl.steps.Get(testUser).Step; got != StepNone {
		t.Fatalf("failure should clear the step, got %v", got)
	}
}

func TestMalformedTokenIsRejectedQuietly(t *testing.T) {
	svc := newFakeService()
	svc.addList("Movies", 0)
	ctrl := New(svc)

	for _, token := range []string{"", "teleport:1", "list:one", "list", "poster:1"} {
		out := ctrl.Action(testUser, token)
		if out.Info == "" || out.View != nil || out.Fail != "" {
			t.Fatalf("token %q should yield only a notice, got %#v", token, out)
		}
	}
}

func TestActionAbandonsPendingStep(t *testing.T) {
	svc := newFakeService()
	root := svc.addList("Movies", 0)
	ctrl := New(svc)

	ctrl.Action(testUser, Action{Kind: KindAddItem, ListID: root.ID}.Token())
	ctrl.Action(testUser, Action{Kind: KindHome}.Token())
	if got := ctrl.steps.Get(testUser).Step; got != StepNone {
		t.Fatalf("a button press should abandon the pending step, got %v", got)
	}
}

func TestTextWithoutStepHints(t *testing.T) {
	svc := newFakeService()
	svc.addList("Movies", 0)
	ctrl := New(svc)

	out := ctrl.Text(testUser, "hello")
	if out.Info == "" || out.View != nil || out.Prompt != "" {
		t.Fatalf("stray text should yield a hint, got %#v", out)
	}
}
