package posts

import (
	"context"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/IlianBuh/Blog-service/internal/domain/models"
	errs "github.com/IlianBuh/Blog-service/internal/lib/errors"
	"github.com/IlianBuh/Blog-service/internal/lib/logger/sl"
	"github.com/IlianBuh/Blog-service/internal/service/posts/interfaces/repository"
	"github.com/microcosm-cc/bluemonday"
)

type PostService struct {
	log     *slog.Logger
	svr     repository.Saver
	prvdr   repository.Provider
	timeout time.Duration
	policy  *bluemonday.Policy
	now     func() time.Time
}

func New(
	log *slog.Logger,
	svr repository.Saver,
	prvdr repository.Provider,
	timeout time.Duration,
) *PostService {
	return &PostService{
		log:     log,
		svr:     svr,
		prvdr:   prvdr,
		timeout: timeout,
		policy:  newPolicy(),
		now:     time.Now,
	}
}

// editorClass matches the formatting classes written by the rich-text editor,
// e.g. ql-align-center, ql-indent-1, ql-syntax
var editorClass = regexp.MustCompile(`^(ql-[a-z0-9-]+\s*)+$`)

// newPolicy keeps user generated markup safe while leaving editor formatting
// in place
func newPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("class").Matching(editorClass).Globally()
	p.AllowAttrs("spellcheck").Matching(regexp.MustCompile(`^(true|false)$`)).OnElements("pre")

	return p
}

// Create creates new post and returns it with the assigned timestamp.
// Body is sanitized before it is saved.
// Only [ErrInternal] or [ErrInvalidPost] can be returned
func (p *PostService) Create(
	ctx context.Context,
	title string,
	body string,
	author string,
) (models.Post, error) {
	const op = "post-service.Create"
	log := p.log.With(slog.String("op", op))
	log.Info(
		"starting create new post",
		slog.String("title", title),
		slog.String("author", author),
		slog.Int("body-length", len(body)),
	)
	defer log.Info("creating post ended")

	sendErr := func(err error) (models.Post, error) {
		return models.Post{}, errs.Fail(op, err)
	}

	if err := ctx.Err(); err != nil {
		log.Error("failed to create - context is canceled", sl.Err(err))
		return sendErr(ErrInternal)
	}
	ctx, cncl := context.WithTimeout(ctx, p.timeout)
	defer cncl()

	if strings.TrimSpace(title) == "" || strings.TrimSpace(author) == "" {
		log.Warn("title or author is empty")
		return sendErr(ErrInvalidPost)
	}

	post := models.Post{
		Title:     title,
		Body:      p.policy.Sanitize(body),
		Author:    author,
		Timestamp: p.now().UnixNano(),
	}

	postId, err := p.svr.Save(ctx, post)
	if err != nil {
		log.Error("failed to save post", sl.Err(err))
		return sendErr(ErrInternal)
	}

	log.Info("post is saved", slog.Int("post-id", postId))
	return post, nil
}

// List returns all posts.
// Only [ErrInternal] can be returned
func (p *PostService) List(ctx context.Context) ([]models.Post, error) {
	const op = "post-service.List"
	log := p.log.With(slog.String("op", op))

	if err := ctx.Err(); err != nil {
		log.Error("failed to list - context is canceled", sl.Err(err))
		return nil, errs.Fail(op, ErrInternal)
	}
	ctx, cncl := context.WithTimeout(ctx, p.timeout)
	defer cncl()

	res, err := p.prvdr.Posts(ctx)
	if err != nil {
		log.Error("failed to load posts", sl.Err(err))
		return nil, errs.Fail(op, ErrInternal)
	}

	log.Debug("posts are loaded", slog.Int("count", len(res)))
	return res, nil
}
