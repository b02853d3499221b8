package dialog

import (
	"errors"
	"regexp"
	"strings"
)

// ErrInvalidCatalogID marks free-text input that is neither a numeric catalog
// id nor a recognised catalog URL.
var ErrInvalidCatalogID = errors.New("invalid catalog id")

var (
	digitsOnly  = regexp.MustCompile(`^\d+$`)
	kpFilmInURL = regexp.MustCompile(`kinopoisk\.ru/film/(\d+)`)
)

// ParseCatalogID extracts a kinopoisk film id from user input: either plain
// digits ("404900") or a film URL ("https://www.kinopoisk.ru/film/404900/").
func ParseCatalogID(input string) (string, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return "", ErrInvalidCatalogID
	}
	if digitsOnly.MatchString(trimmed) {
		return trimmed, nil
	}
	if m := kpFilmInURL.FindStringSubmatch(trimmed); m != nil {
		return m[1], nil
	}
	return "", ErrInvalidCatalogID
}
