package dialog

import "github.com/atomicstack/listbot/internal/api"

// Client is the slice of the remote list/poster service the dialog layer
// needs. *api.Client satisfies it; tests substitute a scripted fake.
type Client interface {
	SignUp(token string) error
	RootList(token string) (api.List, error)
	List(token string, id int) (api.List, error)
	CreateList(token, name string, parentID int) (api.List, error)
	RenameList(token string, id int, name string) error
	DeleteList(token string, id int) error
	Sublists(token string, parentID int) ([]api.List, error)
	ListPosters(token string, listID int) ([]api.ListPoster, error)
	Poster(token string, id int) (api.Poster, error)
	CreatePosterKP(token, kpID string) (api.Poster, error)
	AddPosterToList(token string, listID, posterID int) error
	RemovePosterFromList(token string, listID, posterID int) error
	CreateRecord(token string, posterID int) (api.Record, error)
	Records(token string) ([]api.Record, error)
	DeleteRecord(token string, posterID int) error
}
