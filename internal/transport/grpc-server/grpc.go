package grpcserver

import (
	"context"
	"errors"
	"time"

	"github.com/IlianBuh/Blog-service/internal/domain/models"
	"github.com/IlianBuh/Blog-service/internal/service/posts"
	"github.com/IlianBuh/Blog-service/internal/transport/postsv1"
	"github.com/IlianBuh/Blog-service/internal/transport/validate"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type PostService interface {

	// Create creates new post. The returned post carries the timestamp
	// assigned by the service
	Create(
		ctx context.Context,
		title string,
		body string,
		author string,
	) (models.Post, error)

	// List returns all posts in display order
	List(ctx context.Context) ([]models.Post, error)
}

type ServerAPI struct {
	srvc    PostService
	timeout time.Duration
}

// Register registers serverAPI on srv grpc-server
func Register(srv grpc.ServiceRegistrar, post PostService, timeout time.Duration) {
	postsv1.RegisterPostsServer(srv, &ServerAPI{srvc: post, timeout: timeout})
}

// CreatePost makes request to service layer to create a new post
func (s *ServerAPI) CreatePost(
	ctx context.Context,
	req *postsv1.CreatePostRequest,
) (*postsv1.CreatePostResponse, error) {
	var err error
	if err = ctx.Err(); err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}

	if err = validate.Title(req.Title); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	if err = validate.Author(req.Author); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	post, err := s.srvc.Create(ctx, req.Title, req.Body, req.Author)
	if err != nil {
		if errors.Is(err, posts.ErrInvalidPost) {
			return nil, status.Error(codes.InvalidArgument, "invalid post")
		}
		return nil, status.Error(codes.Internal, codes.Internal.String())
	}

	return &postsv1.CreatePostResponse{Post: post}, nil
}

// GetPosts makes request to service layer to list all posts
func (s *ServerAPI) GetPosts(
	ctx context.Context,
	_ *postsv1.GetPostsRequest,
) (*postsv1.GetPostsResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	list, err := s.srvc.List(ctx)
	if err != nil {
		return nil, status.Error(codes.Internal, codes.Internal.String())
	}

	return &postsv1.GetPostsResponse{Posts: list}, nil
}
