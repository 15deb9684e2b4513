package mltraining

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// authorizationHeader is the metadata key carrying the caller's bearer token.
const authorizationHeader = "authorization"

// CallerKey is the key used to store the authenticated API key in the
// context.
type CallerKey struct{}

// Caller returns the authenticated API key stored in the context by the auth
// interceptor, or "" if the call was not authenticated.
func Caller(ctx context.Context) string {
	caller, _ := ctx.Value(CallerKey{}).(string)
	return caller
}

// authUnaryInterceptor returns a unary interceptor that authenticates every
// call against the given API keys and adds the caller to the context.
func authUnaryInterceptor(apiKeys []string) grpc.UnaryServerInterceptor {
	keys := make(map[string]bool, len(apiKeys))
	for _, k := range apiKeys {
		keys[k] = true
	}
	return func(ctx context.Context, req any, _ *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		key, err := extractAPIKey(ctx)
		if err != nil {
			return nil, status.Errorf(codes.Unauthenticated, "%v", err)
		}
		if !keys[key] {
			return nil, status.Errorf(codes.Unauthenticated, "unknown API key")
		}
		ctx = context.WithValue(ctx, CallerKey{}, key)
		return handler(ctx, req)
	}
}

// extractAPIKey extracts the bearer token from the call's incoming metadata.
func extractAPIKey(ctx context.Context) (string, error) {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return "", fmt.Errorf("%w: no metadata in context", ErrAPIKey)
	}
	values := md.Get(authorizationHeader)
	if len(values) == 0 {
		return "", fmt.Errorf("%w: missing %s metadata", ErrAPIKey, authorizationHeader)
	}
	key, ok := strings.CutPrefix(values[0], "Bearer ")
	if !ok || key == "" {
		return "", fmt.Errorf("%w: %s metadata must be a bearer token", ErrAPIKey, authorizationHeader)
	}
	return key, nil
}
