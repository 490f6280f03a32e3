package controller

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/IlianBuh/Blog-service/internal/domain/models"
	"github.com/IlianBuh/Blog-service/internal/frontend/dom"
	"github.com/IlianBuh/Blog-service/internal/frontend/dom/memdom"
	"github.com/IlianBuh/Blog-service/internal/frontend/render"
	"github.com/IlianBuh/Blog-service/internal/frontend/render/rendertest"
	"github.com/brianvoe/gofakeit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errRemote = errors.New("remote call failed")

type editorMock struct {
	mu      sync.Mutex
	content string
}

func (e *editorMock) Content() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.content
}

func (e *editorMock) Clear() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.content = ""
}

func (e *editorMock) set(content string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.content = content
}

// remoteMock keeps posts like the service does. Calls may be held on the
// gates to observe what happens while they are in flight
type remoteMock struct {
	mu          sync.Mutex
	posts       []models.Post
	createErr   error
	getErr      error
	createCalls int
	getCalls    int
	now         int64

	createGate chan struct{}
	getGates   []chan struct{}
	started    chan string
}

func newRemoteMock() *remoteMock {
	return &remoteMock{
		now:     1700000000000000000,
		started: make(chan string, 16),
	}
}

func (r *remoteMock) CreatePost(ctx context.Context, title, body, author string) (models.Post, error) {
	r.mu.Lock()
	r.createCalls++
	gate := r.createGate
	r.mu.Unlock()

	r.started <- "create"
	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return models.Post{}, ctx.Err()
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.createErr != nil {
		return models.Post{}, r.createErr
	}
	r.now += int64(time.Hour)
	post := models.Post{Title: title, Body: body, Author: author, Timestamp: r.now}
	r.posts = append([]models.Post{post}, r.posts...)
	return post, nil
}

func (r *remoteMock) GetPosts(ctx context.Context) ([]models.Post, error) {
	r.mu.Lock()
	r.getCalls++
	var gate chan struct{}
	if len(r.getGates) > 0 {
		gate = r.getGates[0]
		r.getGates = r.getGates[1:]
	}
	r.mu.Unlock()

	r.started <- "get"
	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.getErr != nil {
		return nil, r.getErr
	}
	return append([]models.Post(nil), r.posts...), nil
}

func (r *remoteMock) calls() (create, get int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.createCalls, r.getCalls
}

// loadingRecorder counts how many times the loading indicator was hidden
type loadingRecorder struct {
	dom.Element
	mu    sync.Mutex
	hides int
}

func (l *loadingRecorder) AddClass(class string) {
	if class == dom.Hidden && !l.HasClass(dom.Hidden) {
		l.mu.Lock()
		l.hides++
		l.mu.Unlock()
	}
	l.Element.AddClass(class)
}

func (l *loadingRecorder) hidden() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.hides
}

type recordingDocument struct {
	*memdom.Document
	loading *loadingRecorder
}

func (d recordingDocument) ElementByID(id string) dom.Element {
	if id == DefaultIDs().Loading {
		return d.loading
	}
	return d.Document.ElementByID(id)
}

type page struct {
	doc    *memdom.Document
	editor *editorMock
	remote *remoteMock
	ctrl   *Controller
}

func newPage(t *testing.T) *page {
	t.Helper()

	ids := DefaultIDs()
	doc := memdom.New(
		ids.NewPostButton, ids.CancelButton, ids.Form,
		ids.Title, ids.Author, ids.Posts,
	)
	doc.Add(ids.Panel, dom.Hidden)
	doc.Add(ids.Loading, dom.Hidden)
	doc.Add(ids.Error, dom.Hidden)

	p := &page{
		doc:    doc,
		editor: &editorMock{},
		remote: newRemoteMock(),
	}

	ctrl, err := New(
		slog.New(slog.DiscardHandler),
		doc, p.editor, p.remote, render.New("", time.UTC), ids,
	)
	require.NoError(t, err)
	ctrl.Bind()
	p.ctrl = ctrl

	return p
}

func (p *page) el(id string) *memdom.Element {
	return p.doc.Get(id)
}

func (p *page) fill(title, author, body string) {
	p.el("title").SetValue(title)
	p.el("author").SetValue(author)
	p.editor.set(body)
}

func (p *page) articles(t *testing.T) []rendertest.Article {
	t.Helper()

	articles, err := rendertest.Articles(p.el("posts").InnerHTML())
	require.NoError(t, err)
	return articles
}

func waitStarted(t *testing.T, r *remoteMock, want string) {
	t.Helper()

	select {
	case got := <-r.started:
		require.Equal(t, want, got)
	case <-time.After(time.Second):
		t.Fatalf("%s call was not started", want)
	}
}

func TestNew_MissingElement(t *testing.T) {
	doc := memdom.New("newPostBtn", "cancelBtn", "postForm", "newPostForm", "title", "author", "posts")

	_, err := New(slog.New(slog.DiscardHandler), doc, &editorMock{}, newRemoteMock(), render.New("", time.UTC), DefaultIDs())
	require.ErrorIs(t, err, ErrMissingElement)
	assert.Contains(t, err.Error(), "#loading")
}

func TestNew_ErrorBannerOptional(t *testing.T) {
	ids := DefaultIDs()
	doc := memdom.New("newPostBtn", "cancelBtn", "postForm", "newPostForm", "title", "author", "posts", "loading")
	remote := newRemoteMock()
	remote.getErr = errRemote

	ctrl, err := New(slog.New(slog.DiscardHandler), doc, &editorMock{}, remote, render.New("", time.UTC), ids)
	require.NoError(t, err)

	require.ErrorIs(t, ctrl.LoadPosts(context.Background()), errRemote)
}

func TestOpenAndCancelCompose(t *testing.T) {
	p := newPage(t)

	p.el("newPostBtn").Trigger(dom.Click)
	assert.True(t, dom.IsVisible(p.el("newPostForm")))

	p.fill("draft", "me", "<p>draft</p>")
	p.el("cancelBtn").Trigger(dom.Click)

	assert.False(t, dom.IsVisible(p.el("newPostForm")))
	assert.Empty(t, p.el("title").Value())
	assert.Empty(t, p.el("author").Value())
	assert.Empty(t, p.editor.Content())

	create, get := p.remote.calls()
	assert.Zero(t, create)
	assert.Zero(t, get)
}

func TestLoadPosts_Scenario(t *testing.T) {
	p := newPage(t)
	p.remote.posts = []models.Post{
		{Title: "Hello", Author: "A", Body: "<p>Hi</p>", Timestamp: 1700000000000000000},
	}

	require.NoError(t, p.ctrl.LoadPosts(context.Background()))

	articles := p.articles(t)
	require.Len(t, articles, 1)
	assert.Equal(t, "Hello", articles[0].Title)
	assert.Equal(t, "By A", articles[0].Author)
	assert.Equal(t, "11/14/2023", articles[0].Date)
	assert.Equal(t, "<p>Hi</p>", articles[0].Content)
	assert.False(t, dom.IsVisible(p.el("loading")))
}

func TestLoadPosts_OrderAsReturned(t *testing.T) {
	p := newPage(t)
	for i := 0; i < 5; i++ {
		p.remote.posts = append(p.remote.posts, models.Post{
			Title:     gofakeit.Sentence(3),
			Author:    gofakeit.Name(),
			Body:      "<p>" + gofakeit.Sentence(8) + "</p>",
			Timestamp: int64(i) * int64(time.Hour),
		})
	}

	require.NoError(t, p.ctrl.LoadPosts(context.Background()))

	articles := p.articles(t)
	require.Len(t, articles, len(p.remote.posts))
	for i, post := range p.remote.posts {
		assert.Equal(t, post.Title, articles[i].Title)
		assert.Equal(t, "By "+post.Author, articles[i].Author)
	}
}

func TestLoadPosts_Idempotent(t *testing.T) {
	p := newPage(t)
	p.remote.posts = []models.Post{
		{Title: "one", Author: "a", Body: "<p>1</p>", Timestamp: 1},
		{Title: "two", Author: "b", Body: "<p>2</p>", Timestamp: 2},
	}

	require.NoError(t, p.ctrl.LoadPosts(context.Background()))
	first := p.el("posts").InnerHTML()

	require.NoError(t, p.ctrl.LoadPosts(context.Background()))
	assert.Equal(t, first, p.el("posts").InnerHTML())
}

func TestLoadPosts_FailureKeepsStaleList(t *testing.T) {
	p := newPage(t)
	p.remote.posts = []models.Post{{Title: "kept", Author: "a", Timestamp: 1}}
	require.NoError(t, p.ctrl.LoadPosts(context.Background()))
	before := p.el("posts").InnerHTML()

	p.remote.getErr = errRemote
	err := p.ctrl.LoadPosts(context.Background())
	require.ErrorIs(t, err, errRemote)

	assert.Equal(t, before, p.el("posts").InnerHTML())
	assert.False(t, dom.IsVisible(p.el("loading")))
	assert.True(t, dom.IsVisible(p.el("error")))
	assert.Equal(t, loadFailedText, p.el("error").InnerHTML())

	p.remote.getErr = nil
	require.NoError(t, p.ctrl.LoadPosts(context.Background()))
	assert.False(t, dom.IsVisible(p.el("error")))
}

func TestLoadPosts_NewerLoadWins(t *testing.T) {
	p := newPage(t)
	p.remote.posts = []models.Post{{Title: "fresh", Author: "a", Timestamp: 1}}
	slow := make(chan struct{})
	p.remote.getGates = []chan struct{}{slow}

	done := make(chan error, 1)
	go func() {
		done <- p.ctrl.LoadPosts(context.Background())
	}()
	waitStarted(t, p.remote, "get")
	assert.True(t, dom.IsVisible(p.el("loading")))

	require.NoError(t, p.ctrl.LoadPosts(context.Background()))
	waitStarted(t, p.remote, "get")

	select {
	case err := <-done:
		require.ErrorIs(t, err, ErrSuperseded)
	case <-time.After(time.Second):
		t.Fatal("superseded load did not finish")
	}
	close(slow)

	articles := p.articles(t)
	require.Len(t, articles, 1)
	assert.Equal(t, "fresh", articles[0].Title)
	assert.False(t, dom.IsVisible(p.el("loading")))
	assert.False(t, dom.IsVisible(p.el("error")))
}

func TestSubmit_Success(t *testing.T) {
	p := newPage(t)
	p.remote.posts = []models.Post{{Title: "old", Author: "o", Timestamp: 1}}

	p.el("newPostBtn").Trigger(dom.Click)
	p.fill("Hello", "A", "<p>Hi</p>")

	p.el("postForm").Trigger(dom.Submit)

	assert.False(t, dom.IsVisible(p.el("newPostForm")))
	assert.Empty(t, p.el("title").Value())
	assert.Empty(t, p.el("author").Value())
	assert.Empty(t, p.editor.Content())
	assert.False(t, dom.IsVisible(p.el("loading")))

	articles := p.articles(t)
	require.Len(t, articles, 2)

	found := 0
	for _, a := range articles {
		if a.Title == "Hello" {
			found++
			assert.Equal(t, "By A", a.Author)
			assert.Equal(t, "<p>Hi</p>", a.Content)
		}
	}
	assert.Equal(t, 1, found)

	create, get := p.remote.calls()
	assert.Equal(t, 1, create)
	assert.Equal(t, 1, get)
}

func TestSubmit_LoadingStaysThroughReload(t *testing.T) {
	p := newPage(t)
	rec := &loadingRecorder{Element: p.el("loading")}

	ctrl, err := New(
		slog.New(slog.DiscardHandler),
		recordingDocument{Document: p.doc, loading: rec},
		p.editor, p.remote, render.New("", time.UTC), DefaultIDs(),
	)
	require.NoError(t, err)

	p.fill("Hello", "A", "<p>Hi</p>")
	require.NoError(t, ctrl.Submit(context.Background()))

	assert.False(t, dom.IsVisible(rec))
	assert.Equal(t, 1, rec.hidden())
	require.Len(t, p.articles(t), 1)
}

func TestSubmit_Failure(t *testing.T) {
	p := newPage(t)
	p.remote.createErr = errRemote

	p.el("newPostBtn").Trigger(dom.Click)
	p.fill("Hello", "A", "<p>Hi</p>")

	err := p.ctrl.Submit(context.Background())
	require.ErrorIs(t, err, errRemote)

	assert.True(t, dom.IsVisible(p.el("newPostForm")))
	assert.Equal(t, "Hello", p.el("title").Value())
	assert.Equal(t, "A", p.el("author").Value())
	assert.Equal(t, "<p>Hi</p>", p.editor.Content())
	assert.False(t, dom.IsVisible(p.el("loading")))
	assert.True(t, dom.IsVisible(p.el("error")))

	_, get := p.remote.calls()
	assert.Zero(t, get)

	// guard is released after a failure
	p.remote.mu.Lock()
	p.remote.createErr = nil
	p.remote.mu.Unlock()
	require.NoError(t, p.ctrl.Submit(context.Background()))
	assert.False(t, dom.IsVisible(p.el("error")))
}

func TestSubmit_Guard(t *testing.T) {
	p := newPage(t)
	gate := make(chan struct{})
	p.remote.createGate = gate
	p.fill("Hello", "A", "<p>Hi</p>")

	done := make(chan error, 1)
	go func() {
		done <- p.ctrl.Submit(context.Background())
	}()
	waitStarted(t, p.remote, "create")

	require.ErrorIs(t, p.ctrl.Submit(context.Background()), ErrSubmitInProgress)
	p.el("postForm").Trigger(dom.Submit)

	create, _ := p.remote.calls()
	assert.Equal(t, 1, create)

	close(gate)
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("submit did not finish")
	}

	create, get := p.remote.calls()
	assert.Equal(t, 1, create)
	assert.Equal(t, 1, get)
	require.Len(t, p.articles(t), 1)
}
