package mltraining

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/modelkit/mltrain/pkg/registry"
	"github.com/modelkit/mltrain/pkg/trainpb"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"
)

// Sentinel Errors returned by the mltraining package.
var (
	ErrCredentials = errors.New("credentials setup error")
	ErrCertLoad    = errors.New("certificate load error")
	ErrCASetup     = errors.New("CA setup error")
	ErrAPIKey      = errors.New("API key error")
	ErrClientConn  = errors.New("client connection error")
)

// Conn is a [Client] that owns its gRPC connection. It is created with [Dial]
// and must be closed with [Conn.Close] when no longer needed.
type Conn struct {
	*Client
	conn *grpc.ClientConn
}

// Server is a wrapper around the gRPC server for the MLTrainingService.
// It provides methods for starting and stopping the server and access to the
// underlying training-job registry.
type Server struct {
	*grpc.Server
	registry *registry.Registry
}

// DialOption configures a [Dial] call.
type DialOption func(*dialConfig)

type dialConfig struct {
	apiKey   string
	serverCA string
	insecure bool
}

// WithAPIKey sets the API key sent as a bearer token on every call.
func WithAPIKey(key string) DialOption {
	return func(c *dialConfig) {
		c.apiKey = key
	}
}

// WithServerCA sets the path of a CA certificate file to verify the server
// against, for servers whose CA is not in the system trust store.
func WithServerCA(path string) DialOption {
	return func(c *dialConfig) {
		c.serverCA = path
	}
}

// WithInsecure disables transport security. Intended for local development
// and tests only.
func WithInsecure() DialOption {
	return func(c *dialConfig) {
		c.insecure = true
	}
}

// Dial creates a new [Conn] to the MLTrainingService at the given address.
// By default it uses TLS with the system trust store; see [WithServerCA],
// [WithAPIKey] and [WithInsecure].
//
// If there is an error setting up the TLS configuration or creating the
// connection, an error is returned.
func Dial(address string, opts ...DialOption) (*Conn, error) {
	cfg := dialConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	creds, err := dialCredentials(cfg)
	if err != nil {
		return nil, fmt.Errorf("Dial: %w: %w", ErrCredentials, err)
	}
	conn, err := grpc.NewClient(address, grpc.WithTransportCredentials(creds))
	if err != nil {
		return nil, fmt.Errorf("Dial: address %q: %w", address, err)
	}
	md := map[string]string{}
	if cfg.apiKey != "" {
		md[authorizationHeader] = "Bearer " + cfg.apiKey
	}
	return &Conn{
		Client: NewClient(conn, md),
		conn:   conn,
	}, nil
}

// dialCredentials selects the transport credentials for a dial config.
func dialCredentials(cfg dialConfig) (credentials.TransportCredentials, error) {
	if cfg.insecure {
		return insecure.NewCredentials(), nil
	}
	tlsConfig, err := clientTLSConfig(cfg.serverCA)
	if err != nil {
		return nil, err
	}
	return credentials.NewTLS(tlsConfig), nil
}

// Close closes the connection to the server.
func (c *Conn) Close() error {
	if c.conn == nil {
		return nil
	}
	if err := c.conn.Close(); err != nil {
		return fmt.Errorf("%w: cannot close: %w", ErrClientConn, err)
	}
	return nil
}

// NewServer creates a new MLTrainingService server.
//
// It configures TLS from the provided server certificate and key files; if
// both are empty the server runs without transport security, for local
// development and tests. Every call must carry one of the given API keys as a
// bearer token; at least one key is required. The training-job registry is
// created with the given options.
func NewServer(serverCert, serverKey string, apiKeys []string, regOpts ...registry.Option) (*Server, error) {
	if len(apiKeys) == 0 {
		return nil, fmt.Errorf("NewServer: %w: at least one API key is required", ErrAPIKey)
	}
	creds, err := serverCredentials(serverCert, serverKey)
	if err != nil {
		return nil, fmt.Errorf("NewServer: %w: %w", ErrCredentials, err)
	}
	reg := registry.New(regOpts...)
	grpcOpts := []grpc.ServerOption{
		grpc.Creds(creds),
		grpc.UnaryInterceptor(authUnaryInterceptor(apiKeys)),
	}
	grpcServer := grpc.NewServer(grpcOpts...)
	service := &Service{Registry: reg}
	trainpb.RegisterMLTrainingServiceServer(grpcServer, service)
	return &Server{
		Server:   grpcServer,
		registry: reg,
	}, nil
}

// serverCredentials selects the server transport credentials. Empty cert and
// key paths select an insecure server.
func serverCredentials(serverCert, serverKey string) (credentials.TransportCredentials, error) {
	if serverCert == "" && serverKey == "" {
		return insecure.NewCredentials(), nil
	}
	tlsConfig, err := serverTLSConfig(serverCert, serverKey)
	if err != nil {
		return nil, err
	}
	return credentials.NewTLS(tlsConfig), nil
}

// Registry returns the server's training-job registry. The process executing
// the training work drives job transitions through it.
func (s *Server) Registry() *registry.Registry {
	return s.registry
}

// StopOnSignals registers signal handlers to gracefully stop the server when
// specified signals are received. If no signals are provided, this function
// does nothing.
func (s *Server) StopOnSignals(sig ...os.Signal) {
	if len(sig) == 0 {
		return
	}
	go handleSignals(s.Server, sig...)
}

// handleSignals receives signals and gracefully stops the server. It is
// intended to be run in a separate goroutine.
func handleSignals(grpcServer *grpc.Server, sig ...os.Signal) {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, sig...)
	<-ch
	slog.Info("stopping server")
	go grpcServer.GracefulStop()
	time.Sleep(2 * time.Second) // grace period
	grpcServer.Stop()
}
