package grpcclient

import (
	"crypto/tls"
	"errors"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"

	"github.com/sashithacj/axios-spring/authtoken"
)

// Builder provides a fluent interface for constructing gRPC client
// connections whose calls carry a managed session: every unary and stream
// call gets a fresh access token attached as bearer metadata.
type Builder struct {
	target string

	// Session configuration
	tokenManager *authtoken.Manager

	// Transport configuration
	transportCreds credentials.TransportCredentials
	dialOpts       []grpc.DialOption
}

// NewBuilder creates a new gRPC client builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// WithTarget sets the server target (e.g., "api.example.com:9090").
func (b *Builder) WithTarget(target string) *Builder {
	b.target = target
	return b
}

// WithTokenManager sets the token manager whose session authenticates the
// connection's calls. A token manager is required to build a connection.
func (b *Builder) WithTokenManager(m *authtoken.Manager) *Builder {
	b.tokenManager = m
	return b
}

// WithTransportCredentials overrides the transport credentials.
// The default is TLS against system roots, so plaintext connections must be
// requested explicitly (e.g. with insecure.NewCredentials() for local
// development).
func (b *Builder) WithTransportCredentials(creds credentials.TransportCredentials) *Builder {
	b.transportCreds = creds
	return b
}

// WithDialOptions adds custom gRPC dial options.
// These options are applied after the session and transport options.
func (b *Builder) WithDialOptions(opts ...grpc.DialOption) *Builder {
	b.dialOpts = append(b.dialOpts, opts...)
	return b
}

// Build constructs the gRPC client connection with the configured options.
//
// Returns:
//   - *grpc.ClientConn: Established gRPC connection
//   - error: Error if configuration is invalid or the dial fails
func (b *Builder) Build() (*grpc.ClientConn, error) {
	if b.target == "" {
		return nil, errors.New("grpcclient: server target is required")
	}
	if b.tokenManager == nil {
		return nil, errors.New("grpcclient: a token manager is required, set one with WithTokenManager")
	}

	opts := []grpc.DialOption{
		grpc.WithUnaryInterceptor(b.tokenManager.UnaryClientInterceptor()),
		grpc.WithStreamInterceptor(b.tokenManager.StreamClientInterceptor()),
	}

	creds := b.transportCreds
	if creds == nil {
		// Default to TLS with system roots to avoid accidental plaintext connections.
		creds = credentials.NewTLS(&tls.Config{MinVersion: tls.VersionTLS12})
	}
	opts = append(opts, grpc.WithTransportCredentials(creds))

	// Add custom dial options
	opts = append(opts, b.dialOpts...)

	conn, err := grpc.NewClient(b.target, opts...)
	if err != nil {
		return nil, fmt.Errorf("grpcclient: dial failed: %w", err)
	}

	return conn, nil
}
