// Package mltraining provides a gRPC client and service for managing ML
// training jobs.
//
// It allows clients to submit training jobs, query their status, list an
// organization's jobs, and request cancellation. Every call is authenticated
// with an API key sent as a bearer token in the call metadata.
//
// ## Client
//
// The [Client] created with [NewClient] is the job lifecycle facade. It
// borrows an established gRPC connection and a fixed authorization metadata
// mapping, and exposes the four service operations. It performs no local
// validation, no retries and holds no per-call state; failures from the
// transport or the service reach the caller unchanged.
//
// The [Conn] created with [Dial] is a Client that owns its connection,
// including TLS setup, and is closed with [Conn.Close].
//
// ## Server
//
// The [Server] created with [NewServer] wraps the gRPC server, its API key
// authentication interceptor, and the in-memory [registry.Registry] that
// tracks job state.
//
// ## Service
//
// The [Service] implements the gRPC interface trainpb.MLTrainingServiceServer
// over a registry. It is a lower integration point than the [Server] type for
// custom security setup or testing.
//
// # Example Usage
//
// Client:
//
//	conn, err := mltraining.Dial("app.example.com:443", mltraining.WithAPIKey(key))
//	if err != nil {
//		// handle error
//	}
//	defer conn.Close()
//
//	id, err := conn.SubmitTrainingJob(ctx, orgID, "classifier", "v1",
//		trainpb.ModelTypeSingleLabelClassification, []string{"prod"}, nil)
//	if err != nil {
//		// handle error
//	}
//
// Server:
//
//	server, err := mltraining.NewServer("server.crt", "server.key", apiKeys)
//	if err != nil {
//		// handle error
//	}
//	server.StopOnSignals(os.Interrupt)
//
//	// start the server
//	if err := server.Serve(lis); err != nil {
//		// handle error
//	}
package mltraining
