package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/valyala/fasthttp"

	"github.com/atomicstack/listbot/internal/logging"
	"github.com/atomicstack/listbot/internal/logging/events"
)

const tokenHeader = "X-User-Token"

// Error describes a non-2xx response from the remote list/poster service.
type Error struct {
	Status int
	Body   string
}

func (e *Error) Error() string {
	return fmt.Sprintf("remote service: status %d: %s", e.Status, e.Body)
}

// IsStatus reports whether err is a service error with the given status code.
func IsStatus(err error, status int) bool {
	var se *Error
	return errors.As(err, &se) && se.Status == status
}

func IsNotFound(err error) bool { return IsStatus(err, http.StatusNotFound) }
func IsConflict(err error) bool { return IsStatus(err, http.StatusConflict) }

// Client wraps the remote list/poster service. Every operation performs
// exactly one HTTP round-trip carrying the caller's token; there are no
// retries and no caching.
type Client struct {
	baseURL string
	http    *fasthttp.Client
	timeout time.Duration
}

// NewClient builds a client for the given base URL, e.g.
// "http://127.0.0.1:9000/api/v2". A zero timeout disables the per-request
// deadline.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &fasthttp.Client{},
		timeout: timeout,
	}
}

func (c *Client) do(method, path, token string, payload interface{}, out interface{}) error {
	req := fasthttp.AcquireRequest()
	rsp := fasthttp.AcquireResponse()
	defer func() {
		fasthttp.ReleaseRequest(req)
		fasthttp.ReleaseResponse(rsp)
	}()

	req.Header.SetMethod(method)
	req.SetRequestURI(c.baseURL + path)
	req.Header.Set(tokenHeader, token)
	if payload != nil {
		body, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("%s %s: marshal request: %w", method, path, err)
		}
		req.Header.SetContentType("application/json")
		req.SetBody(body)
	}

	events.Client.Request(method, path)
	var err error
	if c.timeout > 0 {
		err = c.http.DoTimeout(req, rsp, c.timeout)
	} else {
		err = c.http.Do(req, rsp)
	}
	if err != nil {
		wrapped := fmt.Errorf("%s %s: %w", method, path, err)
		logging.Error(wrapped)
		return wrapped
	}

	status := rsp.StatusCode()
	body := append([]byte(nil), rsp.Body()...)
	if status < http.StatusOK || status >= http.StatusMultipleChoices {
		events.Client.Failure(method, path, status)
		serr := &Error{Status: status, Body: string(body)}
		logging.Error(fmt.Errorf("%s %s: %w", method, path, serr))
		return serr
	}
	events.Client.Response(method, path, status)

	if out == nil || len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		// Tolerant decode: plain-text bodies are not an error when the
		// caller accepts a string.
		if s, ok := out.(*string); ok {
			*s = string(body)
			return nil
		}
		return fmt.Errorf("%s %s: decode response: %w", method, path, err)
	}
	return nil
}

// SignUp registers the user behind the token. A conflict means the user
// already exists; callers treat that as success.
func (c *Client) SignUp(token string) error {
	return c.do(http.MethodPost, "/sign-up", token, struct{}{}, nil)
}

// RootList returns the user's root list. The service answers 404 when the
// user has not created one yet.
func (c *Client) RootList(token string) (List, error) {
	var list List
	err := c.do(http.MethodGet, "/lists-root", token, nil, &list)
	return list, err
}

func (c *Client) List(token string, id int) (List, error) {
	var list List
	err := c.do(http.MethodGet, fmt.Sprintf("/lists/%d", id), token, nil, &list)
	return list, err
}

// CreateList creates a list with the given name. A zero parentID creates the
// root list.
func (c *Client) CreateList(token, name string, parentID int) (List, error) {
	payload := map[string]interface{}{"name": name}
	if parentID > 0 {
		payload["parentId"] = parentID
	}
	var list List
	err := c.do(http.MethodPost, "/lists", token, payload, &list)
	return list, err
}

func (c *Client) RenameList(token string, id int, name string) error {
	payload := map[string]interface{}{"name": name}
	return c.do(http.MethodPut, fmt.Sprintf("/lists/%d", id), token, payload, nil)
}

func (c *Client) DeleteList(token string, id int) error {
	return c.do(http.MethodDelete, fmt.Sprintf("/lists/%d", id), token, nil, nil)
}

func (c *Client) Sublists(token string, parentID int) ([]List, error) {
	var lists []List
	err := c.do(http.MethodGet, fmt.Sprintf("/sublists/%d", parentID), token, nil, &lists)
	return lists, err
}

func (c *Client) ListPosters(token string, listID int) ([]ListPoster, error) {
	var entries []ListPoster
	err := c.do(http.MethodGet, fmt.Sprintf("/lists/%d/posters", listID), token, nil, &entries)
	return entries, err
}

func (c *Client) Poster(token string, id int) (Poster, error) {
	var poster Poster
	err := c.do(http.MethodGet, fmt.Sprintf("/posters/%d", id), token, nil, &poster)
	return poster, err
}

// CreatePosterKP resolves an external catalog id into a poster record.
func (c *Client) CreatePosterKP(token, kpID string) (Poster, error) {
	payload := map[string]interface{}{"kp_id": kpID}
	var poster Poster
	err := c.do(http.MethodPost, "/posters/kp", token, payload, &poster)
	return poster, err
}

func (c *Client) AddPosterToList(token string, listID, posterID int) error {
	return c.do(http.MethodPost, fmt.Sprintf("/lists/%d/posters/%d", listID, posterID), token, nil, nil)
}

func (c *Client) RemovePosterFromList(token string, listID, posterID int) error {
	return c.do(http.MethodDelete, fmt.Sprintf("/lists/%d/posters/%d", listID, posterID), token, nil, nil)
}

func (c *Client) CreateRecord(token string, posterID int) (Record, error) {
	var record Record
	err := c.do(http.MethodPost, fmt.Sprintf("/poster-records/%d", posterID), token, nil, &record)
	return record, err
}

func (c *Client) Records(token string) ([]Record, error) {
	var records []Record
	err := c.do(http.MethodGet, "/poster-records", token, nil, &records)
	return records, err
}

// DeleteRecord removes the watch record for the poster; the service keys
// history entries by poster, not by record id.
func (c *Client) DeleteRecord(token string, posterID int) error {
	return c.do(http.MethodDelete, fmt.Sprintf("/poster-records/%d", posterID), token, nil, nil)
}
