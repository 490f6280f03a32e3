// Package remote talks to the posts service from the browser.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/IlianBuh/Blog-service/internal/domain/models"
)

const (
	postsPath  = "/api/posts"
	configPath = "/config.json"
)

// ErrCallFailed is the only kind of failure the client reports. Network,
// validation and server errors are not told apart
var ErrCallFailed = errors.New("remote call failed")

type createPostRequest struct {
	Title  string `json:"title"`
	Body   string `json:"body"`
	Author string `json:"author"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Client is a json client of the posts service http api
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates client for the service at baseURL. Empty baseURL means the
// origin the page was loaded from
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// CreatePost asks the service to create a post and returns it as stored
func (c *Client) CreatePost(ctx context.Context, title, body, author string) (models.Post, error) {
	const op = "remote.CreatePost"

	payload, err := json.Marshal(createPostRequest{Title: title, Body: body, Author: author})
	if err != nil {
		return models.Post{}, fail(op, err)
	}

	var post models.Post
	if err = c.do(ctx, http.MethodPost, postsPath, payload, http.StatusCreated, &post); err != nil {
		return models.Post{}, fail(op, err)
	}

	return post, nil
}

// GetPosts returns posts in the order the service keeps them
func (c *Client) GetPosts(ctx context.Context) ([]models.Post, error) {
	const op = "remote.GetPosts"

	var list []models.Post
	if err := c.do(ctx, http.MethodGet, postsPath, nil, http.StatusOK, &list); err != nil {
		return nil, fail(op, err)
	}

	return list, nil
}

// Config fetches the front-end configuration served next to the api
func (c *Client) Config(ctx context.Context, v any) error {
	const op = "remote.Config"

	if err := c.do(ctx, http.MethodGet, configPath, nil, http.StatusOK, v); err != nil {
		return fail(op, err)
	}

	return nil
}

func (c *Client) do(
	ctx context.Context,
	method, path string,
	payload []byte,
	wantStatus int,
	out any,
) error {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != wantStatus {
		var errResp errorResponse
		if json.NewDecoder(resp.Body).Decode(&errResp) == nil && errResp.Error != "" {
			return fmt.Errorf("status %d: %s", resp.StatusCode, errResp.Error)
		}
		return fmt.Errorf("status %d", resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

// fail wraps err into ErrCallFailed keeping the cause in the message
func fail(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrCallFailed, err)
}
