package dialog

import (
	"sort"
	"time"

	"github.com/atomicstack/listbot/internal/api"
)

// fakeService is an in-memory stand-in for the remote list/poster service.
// Individual operations can be forced to fail via the fail map, keyed by
// operation name.
type fakeService struct {
	lists       map[int]api.List
	posters     map[int]api.Poster
	listPosters []api.ListPoster
	records     []api.Record

	nextID     int
	signedUp   map[string]bool
	fail       map[string]error
	catalogHit map[string]int // kp id -> poster id minted by CreatePosterKP
}

func newFakeService() *fakeService {
	return &fakeService{
		lists:      make(map[int]api.List),
		posters:    make(map[int]api.Poster),
		nextID:     1,
		signedUp:   make(map[string]bool),
		fail:       make(map[string]error),
		catalogHit: make(map[string]int),
	}
}

func notFound() error { return &api.Error{Status: 404, Body: "not found"} }
func conflict() error { return &api.Error{Status: 409, Body: "already exists"} }
func boom() error     { return &api.Error{Status: 500, Body: "internal error"} }

func (f *fakeService) failNext(op string, err error) { f.fail[op] = err }

func (f *fakeService) check(op string) error {
	if err, ok := f.fail[op]; ok {
		delete(f.fail, op)
		return err
	}
	return nil
}

func (f *fakeService) addList(name string, parentID int) api.List {
	list := api.List{ID: f.nextID, ParentID: parentID, Name: name}
	f.nextID++
	f.lists[list.ID] = list
	return list
}

func (f *fakeService) addPoster(name string) api.Poster {
	poster := api.Poster{ID: f.nextID, Name: name, Year: 2001, CreatedAt: time.Now()}
	f.nextID++
	f.posters[poster.ID] = poster
	return poster
}

func (f *fakeService) link(listID, posterID int) {
	f.listPosters = append(f.listPosters, api.ListPoster{ListID: listID, PosterID: posterID})
}

func (f *fakeService) SignUp(token string) error {
	if err := f.check("SignUp"); err != nil {
		return err
	}
	if f.signedUp[token] {
		return conflict()
	}
	f.signedUp[token] = true
	return nil
}

func (f *fakeService) RootList(token string) (api.List, error) {
	if err := f.check("RootList"); err != nil {
		return api.List{}, err
	}
	for _, list := range f.lists {
		if list.ParentID == 0 {
			return list, nil
		}
	}
	return api.List{}, notFound()
}

func (f *fakeService) List(token string, id int) (api.List, error) {
	if err := f.check("List"); err != nil {
		return api.List{}, err
	}
	list, ok := f.lists[id]
	if !ok {
		return api.List{}, notFound()
	}
	return list, nil
}

func (f *fakeService) CreateList(token, name string, parentID int) (api.List, error) {
	if err := f.check("CreateList"); err != nil {
		return api.List{}, err
	}
	return f.addList(name, parentID), nil
}

func (f *fakeService) RenameList(token string, id int, name string) error {
	if err := f.check("RenameList"); err != nil {
		return err
	}
	list, ok := f.lists[id]
	if !ok {
		return notFound()
	}
	list.Name = name
	f.lists[id] = list
	return nil
}

func (f *fakeService) DeleteList(token string, id int) error {
	if err := f.check("DeleteList"); err != nil {
		return err
	}
	if _, ok := f.lists[id]; !ok {
		return notFound()
	}
	delete(f.lists, id)
	kept := f.listPosters[:0]
	for _, entry := range f.listPosters {
		if entry.ListID != id {
			kept = append(kept, entry)
		}
	}
	f.listPosters = kept
	return nil
}

func (f *fakeService) Sublists(token string, parentID int) ([]api.List, error) {
	if err := f.check("Sublists"); err != nil {
		return nil, err
	}
	var out []api.List
	for _, list := range f.lists {
		if list.ParentID == parentID {
			out = append(out, list)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeService) ListPosters(token string, listID int) ([]api.ListPoster, error) {
	if err := f.check("ListPosters"); err != nil {
		return nil, err
	}
	var out []api.ListPoster
	for _, entry := range f.listPosters {
		if entry.ListID == listID {
			out = append(out, entry)
		}
	}
	return out, nil
}

func (f *fakeService) Poster(token string, id int) (api.Poster, error) {
	if err := f.check("Poster"); err != nil {
		return api.Poster{}, err
	}
	poster, ok := f.posters[id]
	if !ok {
		return api.Poster{}, notFound()
	}
	return poster, nil
}

func (f *fakeService) CreatePosterKP(token, kpID string) (api.Poster, error) {
	if err := f.check("CreatePosterKP"); err != nil {
		return api.Poster{}, err
	}
	if id, ok := f.catalogHit[kpID]; ok {
		return f.posters[id], nil
	}
	poster := f.addPoster("Film " + kpID)
	poster.KPID = kpID
	f.posters[poster.ID] = poster
	f.catalogHit[kpID] = poster.ID
	return poster, nil
}

func (f *fakeService) AddPosterToList(token string, listID, posterID int) error {
	if err := f.check("AddPosterToList"); err != nil {
		return err
	}
	f.link(listID, posterID)
	return nil
}

func (f *fakeService) RemovePosterFromList(token string, listID, posterID int) error {
	if err := f.check("RemovePosterFromList"); err != nil {
		return err
	}
	kept := f.listPosters[:0]
	found := false
	for _, entry := range f.listPosters {
		if entry.ListID == listID && entry.PosterID == posterID {
			found = true
			continue
		}
		kept = append(kept, entry)
	}
	f.listPosters = kept
	if !found {
		return notFound()
	}
	return nil
}

func (f *fakeService) CreateRecord(token string, posterID int) (api.Record, error) {
	if err := f.check("CreateRecord"); err != nil {
		return api.Record{}, err
	}
	record := api.Record{ID: f.nextID, PosterID: posterID, CreatedAt: time.Now()}
	f.nextID++
	f.records = append(f.records, record)
	return record, nil
}

func (f *fakeService) Records(token string) ([]api.Record, error) {
	if err := f.check("Records"); err != nil {
		return nil, err
	}
	out := make([]api.Record, len(f.records))
	copy(out, f.records)
	return out, nil
}

func (f *fakeService) DeleteRecord(token string, posterID int) error {
	if err := f.check("DeleteRecord"); err != nil {
		return err
	}
	kept := f.records[:0]
	found := false
	for _, record := range f.records {
		if record.PosterID == posterID {
			found = true
			continue
		}
		kept = append(kept, record)
	}
	f.records = kept
	if !found {
		return notFound()
	}
	return nil
}
