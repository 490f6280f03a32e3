package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/IlianBuh/Blog-service/internal/config/frontend"
	"github.com/IlianBuh/Blog-service/internal/domain/models"
	"github.com/IlianBuh/Blog-service/internal/lib/logger/sl"
	"github.com/IlianBuh/Blog-service/internal/service/posts"
	"github.com/IlianBuh/Blog-service/internal/transport/validate"
)

const maxBodySize = 1 << 20

type PostService interface {
	Create(ctx context.Context, title string, body string, author string) (models.Post, error)
	List(ctx context.Context) ([]models.Post, error)
}

// CreatePostRequest is the body of POST /api/posts
type CreatePostRequest struct {
	Title  string `json:"title"`
	Body   string `json:"body"`
	Author string `json:"author"`
}

// ErrorResponse is written on every failed request
type ErrorResponse struct {
	Error string `json:"error"`
}

type ServerAPI struct {
	log      *slog.Logger
	srvc     PostService
	timeout  time.Duration
	frontend frontend.Config
}

// Handler builds the http handler of the service. Files from staticDir are
// served for every path not taken by the api; empty staticDir disables them
func Handler(
	log *slog.Logger,
	post PostService,
	timeout time.Duration,
	front frontend.Config,
	staticDir string,
) http.Handler {
	s := &ServerAPI{
		log:      log,
		srvc:     post,
		timeout:  timeout,
		frontend: front,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/posts", s.getPosts)
	mux.HandleFunc("POST /api/posts", s.createPost)
	mux.HandleFunc("GET /config.json", s.config)
	if staticDir != "" {
		mux.Handle("GET /", http.FileServer(http.Dir(staticDir)))
	}

	return recoverer(log, logRequests(log, mux))
}

// createPost makes request to service layer to create a new post
func (s *ServerAPI) createPost(w http.ResponseWriter, r *http.Request) {
	const op = "httpserver.createPost"
	log := s.log.With(slog.String("op", op))

	var req CreatePostRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize)).Decode(&req); err != nil {
		log.Warn("failed to decode request", sl.Err(err))
		s.writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	if err := validate.Title(req.Title); err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := validate.Author(req.Author); err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.timeout)
	defer cancel()

	post, err := s.srvc.Create(ctx, req.Title, req.Body, req.Author)
	if err != nil {
		if errors.Is(err, posts.ErrInvalidPost) {
			s.writeError(w, http.StatusBadRequest, "invalid post")
			return
		}
		s.writeError(w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
		return
	}

	s.writeJSON(w, http.StatusCreated, post)
}

// getPosts makes request to service layer to list all posts
func (s *ServerAPI) getPosts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), s.timeout)
	defer cancel()

	list, err := s.srvc.List(ctx)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
		return
	}

	s.writeJSON(w, http.StatusOK, list)
}

func (s *ServerAPI) config(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, s.frontend)
}

func (s *ServerAPI) writeError(w http.ResponseWriter, code int, msg string) {
	s.writeJSON(w, code, ErrorResponse{Error: msg})
}

func (s *ServerAPI) writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error("failed to write response", sl.Err(err))
	}
}
