package post_grpc

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	grpc_middleware "github.com/grpc-ecosystem/go-grpc-middleware"
	pb "github.com/soloda1/pinstack-proto-definitions/gen/go/pinstack-proto-definitions/post/v1"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"

	ports "pinstack-post-page/internal/domain/ports/output"
)

func UnaryLoggerInterceptor(log ports.Logger) grpc.UnaryClientInterceptor {
	return func(ctx context.Context, method string, req, reply any, cc *grpc.ClientConn, invoker grpc.UnaryInvoker, opts ...grpc.CallOption) error {
		start := time.Now()
		err := invoker(ctx, method, req, reply, cc, opts...)
		log.Debug("gRPC call finished",
			slog.String("method", method),
			slog.String("code", status.Code(err).String()),
			slog.Int64("duration_ms", time.Since(start).Milliseconds()))
		return err
	}
}

func UnaryMetricsInterceptor(metrics ports.MetricsProvider) grpc.UnaryClientInterceptor {
	return func(ctx context.Context, method string, req, reply any, cc *grpc.ClientConn, invoker grpc.UnaryInvoker, opts ...grpc.CallOption) error {
		start := time.Now()
		err := invoker(ctx, method, req, reply, cc, opts...)
		operation := operationName(method)
		metrics.IncrementPostClientRequests(operation, err == nil)
		metrics.RecordPostClientRequestDuration(operation, time.Since(start))
		return err
	}
}

// Dial opens a lazily connected channel to the post service and returns the
// generated stub alongside the connection that owns it.
func Dial(address string, port int, log ports.Logger, metrics ports.MetricsProvider) (pb.PostServiceClient, *grpc.ClientConn, error) {
	conn, err := grpc.NewClient(
		fmt.Sprintf("%s:%d", address, port),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(grpc_middleware.ChainUnaryClient(
			UnaryLoggerInterceptor(log),
			UnaryMetricsInterceptor(metrics),
		)),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create post service client: %w", err)
	}
	return pb.NewPostServiceClient(conn), conn, nil
}

func operationName(method string) string {
	switch {
	case strings.HasSuffix(method, "/ListPosts"):
		return "list_posts"
	case strings.HasSuffix(method, "/CreatePost"):
		return "create_post"
	default:
		return method
	}
}
