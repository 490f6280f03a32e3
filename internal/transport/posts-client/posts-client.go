package postsclient

import (
	"context"
	"log/slog"
	"time"

	"github.com/IlianBuh/Blog-service/internal/domain/models"
	"github.com/IlianBuh/Blog-service/internal/lib/errors"
	"github.com/IlianBuh/Blog-service/internal/lib/logger/sl"
	"github.com/IlianBuh/Blog-service/internal/transport/postsv1"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// PostsClient calls blog.v1.Posts over gRPC
type PostsClient struct {
	log        *slog.Logger
	timeout    time.Duration
	connection *grpc.ClientConn
}

func New(
	log *slog.Logger,
	addr string,
	timeout time.Duration,
	opts ...grpc.DialOption,
) (*PostsClient, error) {
	const op = "posts-client.New"

	opts = append(
		[]grpc.DialOption{
			grpc.WithTransportCredentials(insecure.NewCredentials()),
			grpc.WithDefaultCallOptions(grpc.CallContentSubtype(postsv1.CodecName)),
		},
		opts...,
	)

	cc, err := grpc.NewClient(addr, opts...)
	if err != nil {
		return nil, errors.Fail(op, err)
	}

	return &PostsClient{
		log:        log,
		timeout:    timeout,
		connection: cc,
	}, nil
}

func (c *PostsClient) CreatePost(ctx context.Context, title, body, author string) (models.Post, error) {
	const op = "posts-client.CreatePost"

	ctx, cncl := context.WithTimeout(ctx, c.timeout)
	defer cncl()

	resp := new(postsv1.CreatePostResponse)
	err := c.connection.Invoke(
		ctx,
		postsv1.CreatePostMethod,
		&postsv1.CreatePostRequest{Title: title, Body: body, Author: author},
		resp,
	)
	if err != nil {
		return models.Post{}, errors.Fail(op, err)
	}

	return resp.Post, nil
}

func (c *PostsClient) GetPosts(ctx context.Context) ([]models.Post, error) {
	const op = "posts-client.GetPosts"

	ctx, cncl := context.WithTimeout(ctx, c.timeout)
	defer cncl()

	resp := new(postsv1.GetPostsResponse)
	err := c.connection.Invoke(ctx, postsv1.GetPostsMethod, &postsv1.GetPostsRequest{}, resp)
	if err != nil {
		return nil, errors.Fail(op, err)
	}

	return resp.Posts, nil
}

func (c *PostsClient) Stop() {
	const op = "posts-client.Stop"
	log := c.log.With(slog.String("op", op))
	log.Info("stopping posts-client")

	err := c.connection.Close()
	if err != nil {
		log.Error("failed to close connection", sl.Err(err))
		return
	}

	log.Info("connection is closed")
}
