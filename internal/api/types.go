package api

import "time"

// List is a named node in the user's list forest. ParentID is zero for the
// root list.
type List struct {
	ID       int    `json:"id"`
	ParentID int    `json:"parentId"`
	Name     string `json:"name"`
	UserID   int    `json:"userId"`
}

// Poster is a media-catalog entry. Chrono is the runtime in minutes, KPID the
// external catalog identifier the poster was resolved from.
type Poster struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Year      int       `json:"year"`
	Genres    []string  `json:"genres"`
	Chrono    int       `json:"chrono"`
	UserID    int       `json:"userId"`
	KPID      string    `json:"kp_id"`
	ImageURL  string    `json:"image_url"`
	CreatedAt time.Time `json:"createdat"`
}

// ListPoster links a poster to a list. A poster may appear in any number of
// lists; PosterID is stable across them.
type ListPoster struct {
	ListID   int `json:"listId"`
	PosterID int `json:"posterId"`
	Position int `json:"position"`
}

// Record is a watch-history fact: the user marked PosterID watched at
// CreatedAt.
type Record struct {
	ID        int       `json:"id"`
	PosterID  int       `json:"posterId"`
	UserID    int       `json:"userId"`
	CreatedAt time.Time `json:"createdat"`
}
