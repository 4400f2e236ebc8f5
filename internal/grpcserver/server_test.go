package grpcserver

import (
	"context"
	"encoding/json"
	"net"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"adminhub/internal/auth"
	"adminhub/internal/dashboard"
	"adminhub/pkg/models"
)

func startServer(t *testing.T, opts ...grpc.ServerOption) *grpc.ClientConn {
	t.Helper()

	svc := dashboard.NewService(nil)
	svc.Now = func() time.Time { return time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC) }

	lis := bufconn.Listen(1 << 20)
	gs, _ := NewGRPCServer(NewServer(svc, zerolog.Nop()), zerolog.Nop(), opts...)
	go func() { _ = gs.Serve(lis) }()
	t.Cleanup(gs.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func TestNormalizeOverGRPC(t *testing.T) {
	client := NewClient(startServer(t))
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	resp, err := client.Normalize(ctx, &NormalizeRequest{
		Domain: "orders",
		Period: "Last Month",
		Payload: json.RawMessage(`{"data":{"data":[
			{"store_order":{"store":{"name":"Acme"}},"status":"Delivered","created_at":"2024-05-20"},
			{"store_name":"Beta","payment_status":"pending","created_at":"2024-05-21"},
			{"store_name":"Old","status":"delivered","created_at":"2023-01-01"}
		]}}`),
	})
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if resp.Total != 2 || resp.Counts["delivered"] != 1 || resp.Counts["pending"] != 1 {
		t.Fatalf("resp = %+v", resp)
	}

	var items []models.Order
	if err := json.Unmarshal(resp.Items, &items); err != nil {
		t.Fatalf("decode items: %v", err)
	}
	if len(items) != 2 || items[0].StoreName != "Acme" || items[1].StatusTag != models.OrderPending {
		t.Fatalf("items = %+v", items)
	}
}

func TestNormalizeErrorCodes(t *testing.T) {
	client := NewClient(startServer(t))
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	tests := []struct {
		req  *NormalizeRequest
		want codes.Code
	}{
		{&NormalizeRequest{Domain: "sellers", Payload: json.RawMessage(`[]`)}, codes.NotFound},
		{&NormalizeRequest{Domain: "orders"}, codes.InvalidArgument},
		{&NormalizeRequest{Domain: "orders", Payload: json.RawMessage(`null`)}, codes.InvalidArgument},
	}
	for _, tt := range tests {
		_, err := client.Normalize(ctx, tt.req)
		if status.Code(err) != tt.want {
			t.Errorf("Normalize(%s) code = %v, want %v", tt.req.Domain, status.Code(err), tt.want)
		}
	}
}

func TestHealthService(t *testing.T) {
	conn := startServer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	resp, err := healthpb.NewHealthClient(conn).Check(ctx, &healthpb.HealthCheckRequest{Service: ServiceName})
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if resp.GetStatus() != healthpb.HealthCheckResponse_SERVING {
		t.Fatalf("status = %v", resp.GetStatus())
	}
}

func TestAuthInterceptor(t *testing.T) {
	tokens := auth.TokenService{Secret: []byte("test-secret-0123456789"), Issuer: "adminhub", Duration: time.Hour}
	conn := startServer(t, grpc.ChainUnaryInterceptor(AuthInterceptor(tokens)))
	client := NewClient(conn)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	req := &NormalizeRequest{Domain: "orders", Payload: json.RawMessage(`[{"status":"delivered"}]`)}
	if _, err := client.Normalize(ctx, req); status.Code(err) != codes.Unauthenticated {
		t.Fatalf("no token code = %v, want Unauthenticated", status.Code(err))
	}
	if _, err := client.Normalize(WithToken(ctx, "garbage"), req); status.Code(err) != codes.Unauthenticated {
		t.Fatalf("bad token code = %v, want Unauthenticated", status.Code(err))
	}

	other := auth.TokenService{Secret: []byte("another-secret-0123456789"), Issuer: "adminhub", Duration: time.Hour}
	forged, _, err := other.Sign(&auth.Operator{ID: "op-1", Email: "ada@example.com"})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := client.Normalize(WithToken(ctx, forged), req); status.Code(err) != codes.Unauthenticated {
		t.Fatalf("forged token code = %v, want Unauthenticated", status.Code(err))
	}

	token, _, err := tokens.Sign(&auth.Operator{ID: "op-1", Email: "ada@example.com"})
	if err != nil {
		t.Fatal(err)
	}
	resp, err := client.Normalize(WithToken(ctx, token), req)
	if err != nil || resp.Total != 1 {
		t.Fatalf("resp = %+v, err = %v", resp, err)
	}

	// health stays open for probes
	hc, err := healthpb.NewHealthClient(conn).Check(ctx, &healthpb.HealthCheckRequest{Service: ServiceName})
	if err != nil || hc.GetStatus() != healthpb.HealthCheckResponse_SERVING {
		t.Fatalf("health = %v, err = %v", hc, err)
	}
}
