// Package grpcclient provides a fluent builder for gRPC client connections
// whose calls carry a managed session.
//
// It wires the session's unary and stream interceptors into the connection,
// so every call gets a fresh access token attached as bearer metadata, with
// the same silent fallback as the HTTP transport when no token is available.
// It defaults to TLS 1.2+ using system roots to avoid accidental plaintext
// connections.
//
// # Features
//
//   - Fluent builder for gRPC clients
//   - Session-aware unary and stream interceptors via authtoken
//   - Secure-by-default TLS; custom transport credentials supported
//   - Additional dial options via WithDialOptions
//
// # Quick Start
//
//	m, err := authtoken.New(store, authtoken.Config{
//	    BaseURL:         "https://api.example.com",
//	    RefreshEndpoint: "/auth/refresh",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	conn, err := grpcclient.NewBuilder().
//	    WithTarget("api.example.com:9090").
//	    WithTokenManager(m).
//	    Build()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer conn.Close()
//
//	client := pb.NewYourServiceClient(conn)
//
// # TLS Behavior
//
// TLS is enabled by default with system CAs and TLS 1.2 minimum. Use
// WithTransportCredentials to supply custom credentials, including insecure
// ones for local development.
package grpcclient
