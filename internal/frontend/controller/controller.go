// Package controller runs the post workflow of the blog page: the compose
// panel, post submission and the post list.
package controller

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/IlianBuh/Blog-service/internal/domain/models"
	"github.com/IlianBuh/Blog-service/internal/frontend/dom"
	"github.com/IlianBuh/Blog-service/internal/lib/logger/sl"
)

var (
	ErrSubmitInProgress = errors.New("submit is already in progress")
	ErrSuperseded       = errors.New("load is superseded by a newer one")
	ErrMissingElement   = errors.New("element is missing")
)

const (
	createFailedText = "Could not create the post. Please try again."
	loadFailedText   = "Could not load posts."
)

type Remote interface {
	CreatePost(ctx context.Context, title, body, author string) (models.Post, error)
	GetPosts(ctx context.Context) ([]models.Post, error)
}

type Editor interface {
	Content() string
	Clear()
}

type Renderer interface {
	Posts(posts []models.Post) (string, error)
}

// IDs are the ids of the page elements the controller drives
type IDs struct {
	NewPostButton string
	CancelButton  string
	Form          string
	Panel         string
	Title         string
	Author        string
	Posts         string
	Loading       string
	// Error is optional, failures are only logged without it
	Error string
}

func DefaultIDs() IDs {
	return IDs{
		NewPostButton: "newPostBtn",
		CancelButton:  "cancelBtn",
		Form:          "postForm",
		Panel:         "newPostForm",
		Title:         "title",
		Author:        "author",
		Posts:         "posts",
		Loading:       "loading",
		Error:         "error",
	}
}

type elements struct {
	newPostBtn dom.Element
	cancelBtn  dom.Element
	form       dom.Element
	panel      dom.Element
	title      dom.Element
	author     dom.Element
	posts      dom.Element
	loading    dom.Element
	errBanner  dom.Element
}

type Controller struct {
	log      *slog.Logger
	editor   Editor
	remote   Remote
	renderer Renderer
	els      elements

	submitting atomic.Bool

	// mu guards the fields below, the loading indicator and the list render
	mu         sync.Mutex
	inFlight   int
	loadGen    uint64
	cancelLoad context.CancelFunc
}

func New(
	log *slog.Logger,
	doc dom.Document,
	editor Editor,
	remote Remote,
	renderer Renderer,
	ids IDs,
) (*Controller, error) {
	const op = "controller.New"

	els, err := lookup(doc, ids)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Controller{
		log:      log,
		editor:   editor,
		remote:   remote,
		renderer: renderer,
		els:      els,
	}, nil
}

func lookup(doc dom.Document, ids IDs) (elements, error) {
	var els elements
	required := []struct {
		id  string
		dst *dom.Element
	}{
		{ids.NewPostButton, &els.newPostBtn},
		{ids.CancelButton, &els.cancelBtn},
		{ids.Form, &els.form},
		{ids.Panel, &els.panel},
		{ids.Title, &els.title},
		{ids.Author, &els.author},
		{ids.Posts, &els.posts},
		{ids.Loading, &els.loading},
	}
	for _, r := range required {
		el := doc.ElementByID(r.id)
		if el == nil {
			return elements{}, fmt.Errorf("%w: #%s", ErrMissingElement, r.id)
		}
		*r.dst = el
	}

	if ids.Error != "" {
		els.errBanner = doc.ElementByID(ids.Error)
	}

	return els, nil
}

// Bind registers page event handlers
func (c *Controller) Bind() {
	c.els.newPostBtn.On(dom.Click, c.OpenCompose)
	c.els.cancelBtn.On(dom.Click, c.CancelCompose)
	c.els.form.On(dom.Submit, func() {
		_ = c.Submit(context.Background())
	})
}

// OpenCompose reveals the creation form
func (c *Controller) OpenCompose() {
	dom.Show(c.els.panel)
}

// CancelCompose hides the creation form and empties it
func (c *Controller) CancelCompose() {
	dom.Hide(c.els.panel)
	c.resetForm()
}

// Submit creates a post from the form content and reloads the post list.
// While a submit is running further calls return ErrSubmitInProgress without
// calling the service. On failure the form is left as it is
func (c *Controller) Submit(ctx context.Context) error {
	const op = "controller.Submit"
	log := c.log.With(slog.String("op", op))

	if !c.submitting.CompareAndSwap(false, true) {
		log.Debug("submit is skipped, previous one is still running")
		return ErrSubmitInProgress
	}
	defer c.submitting.Store(false)

	// the slot is held through the reload, so the indicator stays up until
	// the new list is shown
	c.startRequest()
	defer c.finishRequest()

	title := c.els.title.Value()
	author := c.els.author.Value()
	body := c.editor.Content()

	_, err := c.remote.CreatePost(ctx, title, body, author)
	if err != nil {
		log.Error("error creating post", sl.Err(err))
		c.showError(createFailedText)
		return fmt.Errorf("%s: %w", op, err)
	}

	log.Info("post is created", slog.String("title", title))
	c.hideError()
	dom.Hide(c.els.panel)
	c.resetForm()

	if err = c.LoadPosts(ctx); err != nil && !errors.Is(err, ErrSuperseded) {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// LoadPosts fetches all posts and replaces the rendered list. Starting a
// load cancels the one in flight, a superseded load returns ErrSuperseded
// and leaves the page alone. On failure the previous list stays rendered
func (c *Controller) LoadPosts(ctx context.Context) error {
	const op = "controller.LoadPosts"
	log := c.log.With(slog.String("op", op))

	ctx, gen := c.beginLoad(ctx)
	c.startRequest()
	defer c.finishRequest()

	list, err := c.remote.GetPosts(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.loadGen {
		log.Debug("load is superseded", slog.Uint64("generation", gen))
		return ErrSuperseded
	}
	c.cancelLoad()
	c.cancelLoad = nil

	if err != nil {
		log.Error("error loading posts", sl.Err(err))
		c.showError(loadFailedText)
		return fmt.Errorf("%s: %w", op, err)
	}

	markup, err := c.renderer.Posts(list)
	if err != nil {
		log.Error("failed to render posts", sl.Err(err))
		c.showError(loadFailedText)
		return fmt.Errorf("%s: %w", op, err)
	}

	c.els.posts.SetInnerHTML(markup)
	c.hideError()

	log.Debug("posts are rendered", slog.Int("count", len(list)))
	return nil
}

// beginLoad cancels the previous load and returns context of the new one
// together with its generation
func (c *Controller) beginLoad(ctx context.Context) (context.Context, uint64) {
	ctx, cancel := context.WithCancel(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cancelLoad != nil {
		c.cancelLoad()
	}
	c.loadGen++
	c.cancelLoad = cancel

	return ctx, c.loadGen
}

func (c *Controller) resetForm() {
	c.els.title.SetValue("")
	c.els.author.SetValue("")
	c.editor.Clear()
}

func (c *Controller) startRequest() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.inFlight++
	if c.inFlight == 1 {
		dom.Show(c.els.loading)
	}
}

func (c *Controller) finishRequest() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.inFlight--
	if c.inFlight == 0 {
		dom.Hide(c.els.loading)
	}
}

func (c *Controller) showError(text string) {
	if c.els.errBanner == nil {
		return
	}
	c.els.errBanner.SetText(text)
	dom.Show(c.els.errBanner)
}

func (c *Controller) hideError() {
	if c.els.errBanner == nil {
		return
	}
	dom.Hide(c.els.errBanner)
}
