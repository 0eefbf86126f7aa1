package post_grpc_test

import (
	"context"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	pb "github.com/soloda1/pinstack-proto-definitions/gen/go/pinstack-proto-definitions/post/v1"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/timestamppb"

	"pinstack-post-page/internal/custom_errors"
	model "pinstack-post-page/internal/domain/models"
	"pinstack-post-page/internal/infrastructure/logger"
	post_grpc "pinstack-post-page/internal/infrastructure/outbound/client/post/grpc"
)

type fakePostService struct {
	pb.PostServiceClient
	listResp    *pb.ListPostsResponse
	listErr     error
	createResp  *pb.Post
	createErr   error
	createReq   *pb.CreatePostRequest
	createCalls int
}

func (f *fakePostService) ListPosts(ctx context.Context, in *pb.ListPostsRequest, opts ...grpc.CallOption) (*pb.ListPostsResponse, error) {
	return f.listResp, f.listErr
}

func (f *fakePostService) CreatePost(ctx context.Context, in *pb.CreatePostRequest, opts ...grpc.CallOption) (*pb.Post, error) {
	f.createCalls++
	f.createReq = in
	return f.createResp, f.createErr
}

func TestClient_ListPosts(t *testing.T) {
	createdAt := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("Success", func(t *testing.T) {
		fake := &fakePostService{listResp: &pb.ListPostsResponse{
			Posts: []*pb.Post{
				{
					Id:        2,
					Title:     "A",
					Content:   "B",
					Tags:      []string{"go"},
					CreatedAt: timestamppb.New(createdAt),
					Media: []*pb.Media{
						{Url: "https://cdn/2.png", Type: "image", Position: 2},
						{Url: "https://cdn/clip.mp4", Type: "video", Position: 1},
						{Url: "https://cdn/1.png", Type: "image", Position: 1},
					},
				},
				{Id: 1, Title: "C", Content: "D"},
			},
			Total: 2,
		}}
		client := post_grpc.NewClient(fake, validator.New(), logger.New("test"))

		posts, err := client.ListPosts(context.Background())

		require.NoError(t, err)
		require.Len(t, posts, 2)
		assert.Equal(t, model.PostID("2"), posts[0].ID)
		assert.Equal(t, []string{"go"}, posts[0].Tags)
		assert.Equal(t, "https://cdn/1.png", posts[0].ImageURL)
		require.NotNil(t, posts[0].CreatedAt)
		assert.True(t, createdAt.Equal(*posts[0].CreatedAt))
		assert.Nil(t, posts[1].CreatedAt)
		assert.Nil(t, posts[1].Tags)
		assert.Empty(t, posts[1].ImageURL)
	})

	t.Run("StatusError", func(t *testing.T) {
		fake := &fakePostService{listErr: status.Error(codes.Unavailable, "down")}
		client := post_grpc.NewClient(fake, validator.New(), logger.New("test"))

		posts, err := client.ListPosts(context.Background())

		assert.Nil(t, posts)
		assert.ErrorIs(t, err, custom_errors.ErrTransport)
	})

	t.Run("MalformedPost", func(t *testing.T) {
		fake := &fakePostService{listResp: &pb.ListPostsResponse{Posts: []*pb.Post{{Id: 1, Title: "A"}}}}
		client := post_grpc.NewClient(fake, validator.New(), logger.New("test"))

		_, err := client.ListPosts(context.Background())

		assert.ErrorIs(t, err, custom_errors.ErrMalformedPost)
	})
}

func TestClient_CreatePost(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		fake := &fakePostService{createResp: &pb.Post{Id: 9, AuthorId: 42, Title: "T", Content: "C"}}
		client := post_grpc.NewClient(fake, validator.New(), logger.New("test"))

		ctx := model.WithIdentity(context.Background(), model.Identity{UserID: 42, Email: "a@b.c"})
		post, err := client.CreatePost(ctx, &model.Draft{Title: "T", Content: "C"})

		require.NoError(t, err)
		assert.Equal(t, model.PostID("9"), post.ID)
		require.NotNil(t, fake.createReq)
		assert.Equal(t, int64(42), fake.createReq.GetAuthorId())
		assert.Equal(t, "T", fake.createReq.GetTitle())
		assert.Equal(t, "C", fake.createReq.GetContent())
	})

	t.Run("ImageUnsupported", func(t *testing.T) {
		fake := &fakePostService{}
		client := post_grpc.NewClient(fake, validator.New(), logger.New("test"))

		post, err := client.CreatePost(context.Background(), &model.Draft{
			Title:   "T",
			Content: "C",
			Image:   &model.Image{Data: []byte{1}},
		})

		assert.Nil(t, post)
		assert.ErrorIs(t, err, custom_errors.ErrTransport)
		assert.ErrorIs(t, err, custom_errors.ErrImageUnsupported)
		assert.Equal(t, 0, fake.createCalls)
	})

	t.Run("StatusError", func(t *testing.T) {
		fake := &fakePostService{createErr: status.Error(codes.InvalidArgument, "invalid request")}
		client := post_grpc.NewClient(fake, validator.New(), logger.New("test"))

		post, err := client.CreatePost(context.Background(), &model.Draft{Title: "T", Content: "C"})

		assert.Nil(t, post)
		assert.ErrorIs(t, err, custom_errors.ErrTransport)
		assert.Contains(t, err.Error(), "invalid request")
		assert.Equal(t, 1, fake.createCalls)
	})
}
