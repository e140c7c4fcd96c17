package grpcclient_test

import (
	"fmt"
	"log"

	"github.com/sashithacj/axios-spring/authtoken"
	"github.com/sashithacj/axios-spring/grpcclient"
	"github.com/sashithacj/axios-spring/tokenstore"
)

// Example demonstrates basic gRPC client builder usage.
func Example() {
	m, err := authtoken.New(tokenstore.NewMemoryStore(), authtoken.Config{
		BaseURL:         "https://api.example.com",
		RefreshEndpoint: "/auth/refresh",
	})
	if err != nil {
		log.Fatal(err)
	}

	conn, err := grpcclient.NewBuilder().
		WithTarget("api.example.com:9090").
		WithTokenManager(m).
		Build()
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	fmt.Println("gRPC connection established")
	// Output: gRPC connection established
}

// ExampleNewBuilder demonstrates creating a new builder.
func ExampleNewBuilder() {
	builder := grpcclient.NewBuilder()

	fmt.Println("Builder created")
	_ = builder
	// Output: Builder created
}

// ExampleBuilder_WithTokenManager demonstrates binding a session.
func ExampleBuilder_WithTokenManager() {
	m, err := authtoken.New(tokenstore.NewMemoryStore(), authtoken.Config{
		BaseURL:         "https://api.example.com",
		RefreshEndpoint: "/auth/refresh",
	})
	if err != nil {
		log.Fatal(err)
	}

	conn, err := grpcclient.NewBuilder().
		WithTarget("secure.example.com:9090").
		WithTokenManager(m).
		Build()
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	fmt.Println("Session-aware gRPC client built")
	// Output: Session-aware gRPC client built
}
