package authtoken

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
)

// UnaryClientInterceptor returns a gRPC unary client interceptor that adds
// the session's access token to outgoing request metadata.
//
// The token lands as "authorization: Bearer <token>", refreshed first when
// stale. When no valid token is available the RPC proceeds without
// authorization metadata, matching the HTTP transport's silent behavior:
// the server decides what an unauthenticated call means.
//
// Usage:
//
//	conn, err := grpc.NewClient(
//	    "server:9090",
//	    grpc.WithUnaryInterceptor(manager.UnaryClientInterceptor()),
//	)
func (m *Manager) UnaryClientInterceptor() grpc.UnaryClientInterceptor {
	return func(
		ctx context.Context,
		method string,
		req, reply any,
		cc *grpc.ClientConn,
		invoker grpc.UnaryInvoker,
		opts ...grpc.CallOption,
	) error {
		return invoker(m.withAuthMetadata(ctx), method, req, reply, cc, opts...)
	}
}

// StreamClientInterceptor returns the stream counterpart of
// UnaryClientInterceptor, attaching the access token when a stream is
// opened.
//
// Usage:
//
//	conn, err := grpc.NewClient(
//	    "server:9090",
//	    grpc.WithStreamInterceptor(manager.StreamClientInterceptor()),
//	)
func (m *Manager) StreamClientInterceptor() grpc.StreamClientInterceptor {
	return func(
		ctx context.Context,
		desc *grpc.StreamDesc,
		cc *grpc.ClientConn,
		method string,
		streamer grpc.Streamer,
		opts ...grpc.CallOption,
	) (grpc.ClientStream, error) {
		return streamer(m.withAuthMetadata(ctx), desc, cc, method, opts...)
	}
}

// withAuthMetadata appends bearer metadata to ctx when a valid access token
// is available, and leaves ctx untouched otherwise.
func (m *Manager) withAuthMetadata(ctx context.Context) context.Context {
	token, err := m.AccessToken(ctx)
	if err != nil {
		m.log.Debug().Err(err).Msg("proceeding without authorization metadata")
		return ctx
	}

	return metadata.AppendToOutgoingContext(ctx, "authorization", "Bearer "+token)
}
