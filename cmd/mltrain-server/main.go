// Mltrain-server is a gRPC server that tracks and manages ML training jobs.
//
// The server can be configured with the following options:
//
//   - `--address`: The address to listen on.
//   - `--server-cert`: The path to the server's certificate file.
//   - `--server-key`: The path to the server's key file.
//   - `--api-key`: An accepted API key. Repeatable.
//
// If no certificate and key are given the server runs without transport
// security, which is intended for local development only.
//
// The server can also be configured using environment variables:
//
//   - MLTRAIN_ADDRESS: The address to listen on.
//   - MLTRAIN_SERVER_CERT: The path to the server's certificate file.
//   - MLTRAIN_SERVER_KEY: The path to the server's key file.
//   - MLTRAIN_API_KEYS: Comma-separated accepted API keys.
//
// Sample usage after environment setup:
//
//	mltrain-server --api-key s3cret
package main

import (
	"fmt"
	"log/slog"
	"net"
	"os"

	"github.com/alecthomas/kong"
	"github.com/modelkit/mltrain/pkg/mltraining"
)

const description = "Mltrain-server is a gRPC server that tracks and manages ML training jobs."

type app struct {
	Address    string   `required:"" short:"A" help:"Address to listen on." env:"MLTRAIN_ADDRESS"`
	ServerCert string   `help:"Server certificate file." env:"MLTRAIN_SERVER_CERT"`
	ServerKey  string   `help:"Server private key file." env:"MLTRAIN_SERVER_KEY"`
	APIKey     []string `required:"" help:"Accepted API key. Repeatable." env:"MLTRAIN_API_KEYS"`
}

func main() {
	opts := []kong.Option{kong.Description(description)}
	kctx := kong.Parse(&app{}, opts...)
	kctx.FatalIfErrorf(kctx.Run())
}

// Run is called by [kong] after flags have been validated and parsed.
func (a *app) Run() error {
	server, err := mltraining.NewServer(a.ServerCert, a.ServerKey, a.APIKey)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}
	server.StopOnSignals(os.Interrupt)
	lis, err := net.Listen("tcp", a.Address)
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}
	slog.Info("starting server", "address", lis.Addr().String())
	if err := server.Serve(lis); err != nil {
		return fmt.Errorf("failed to serve: %w", err)
	}
	return nil
}
