//go:build e2e
// +build e2e

package e2e

import (
	"context"
	"fmt"
	"net"
	"os"
	"strings"
	"testing"

	authpb "github.com/vibast-solutions/ms-go-auth/app/types"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// The service under test must point AUTH_SERVICE_GRPC_ADDR at this listener
// and present BRIDAL_APP_API_KEY as its own key.
const authMockAddr = "127.0.0.1:38083"

// apiKeys holds the keys the suite sends and the mock recognises. Each can be
// overridden from the environment so a deployed stack can be targeted.
var apiKeys = struct {
	caller   string
	noAccess string
	app      string
}{
	caller:   envOrDefault("BRIDAL_CALLER_API_KEY", "bridal-caller-key"),
	noAccess: envOrDefault("BRIDAL_NO_ACCESS_API_KEY", "bridal-no-access-key"),
	app:      envOrDefault("BRIDAL_APP_API_KEY", "bridal-app-api-key"),
}

func envOrDefault(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func bridalCallerAPIKey() string   { return apiKeys.caller }
func bridalNoAccessAPIKey() string { return apiKeys.noAccess }

// authMock answers internal-access checks from a fixed grant table.
type authMock struct {
	authpb.UnimplementedAuthServiceServer
	grants map[string][]string
}

func newAuthMock() *authMock {
	return &authMock{grants: map[string][]string{
		apiKeys.caller:   {"bridal-service", "profile-service"},
		apiKeys.noAccess: {"profile-service"},
	}}
}

func (m *authMock) ValidateInternalAccess(ctx context.Context, req *authpb.ValidateInternalAccessRequest) (*authpb.ValidateInternalAccessResponse, error) {
	if md, _ := metadata.FromIncomingContext(ctx); firstValue(md, "x-api-key") != apiKeys.app {
		return nil, status.Error(codes.Unauthenticated, "unauthorized caller")
	}

	access, ok := m.grants[strings.TrimSpace(req.GetApiKey())]
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "invalid api key")
	}
	return &authpb.ValidateInternalAccessResponse{ServiceName: "bridal-gateway", AllowedAccess: access}, nil
}

func firstValue(md metadata.MD, key string) string {
	if values := md.Get(key); len(values) > 0 {
		return strings.TrimSpace(values[0])
	}
	return ""
}

func TestMain(m *testing.M) {
	listener, err := net.Listen("tcp", authMockAddr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "auth mock: listen on %s: %v\n", authMockAddr, err)
		os.Exit(1)
	}

	server := grpc.NewServer()
	authpb.RegisterAuthServiceServer(server, newAuthMock())
	go func() {
		_ = server.Serve(listener)
	}()

	code := m.Run()
	server.GracefulStop()
	os.Exit(code)
}
