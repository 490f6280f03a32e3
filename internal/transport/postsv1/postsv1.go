// Package postsv1 describes the blog.v1.Posts gRPC service. Messages are plain
// structs carried by the json codec registered in this package.
package postsv1

import (
	"context"

	"github.com/IlianBuh/Blog-service/internal/domain/models"
	"google.golang.org/grpc"
)

const (
	ServiceName = "blog.v1.Posts"

	CreatePostMethod = "/" + ServiceName + "/CreatePost"
	GetPostsMethod   = "/" + ServiceName + "/GetPosts"
)

type CreatePostRequest struct {
	Title  string `json:"title"`
	Body   string `json:"body"`
	Author string `json:"author"`
}

type CreatePostResponse struct {
	Post models.Post `json:"post"`
}

type GetPostsRequest struct{}

type GetPostsResponse struct {
	Posts []models.Post `json:"posts"`
}

// PostsServer is the server API for blog.v1.Posts
type PostsServer interface {
	CreatePost(context.Context, *CreatePostRequest) (*CreatePostResponse, error)
	GetPosts(context.Context, *GetPostsRequest) (*GetPostsResponse, error)
}

// RegisterPostsServer registers srv on s
func RegisterPostsServer(s grpc.ServiceRegistrar, srv PostsServer) {
	s.RegisterService(&serviceDesc, srv)
}

var serviceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*PostsServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "CreatePost",
			Handler:    createPostHandler,
		},
		{
			MethodName: "GetPosts",
			Handler:    getPostsHandler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "blog/v1/posts",
}

func createPostHandler(
	srv any,
	ctx context.Context,
	dec func(any) error,
	interceptor grpc.UnaryServerInterceptor,
) (any, error) {
	in := new(CreatePostRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(PostsServer).CreatePost(ctx, in)
	}

	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: CreatePostMethod,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(PostsServer).CreatePost(ctx, req.(*CreatePostRequest))
	}

	return interceptor(ctx, in, info, handler)
}

func getPostsHandler(
	srv any,
	ctx context.Context,
	dec func(any) error,
	interceptor grpc.UnaryServerInterceptor,
) (any, error) {
	in := new(GetPostsRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(PostsServer).GetPosts(ctx, in)
	}

	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: GetPostsMethod,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(PostsServer).GetPosts(ctx, req.(*GetPostsRequest))
	}

	return interceptor(ctx, in, info, handler)
}
