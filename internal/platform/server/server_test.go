package server

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	companypb "github.com/ogurasousui/employee-salary/internal/adapters/grpc/api/company/v1"
	"github.com/ogurasousui/employee-salary/internal/core/company"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
)

func TestUnaryLoggingInterceptor_GeneratesRequestID(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.InfoLevel)
	interceptor := UnaryLoggingInterceptor(zap.New(core))

	info := &grpc.UnaryServerInfo{FullMethod: "/salary.v1.CompanyService/GetCompany"}
	resp, err := interceptor(context.Background(), "req", info, func(ctx context.Context, req any) (any, error) {
		return "resp", nil
	})
	if err != nil {
		t.Fatalf("interceptor returned error: %v", err)
	}
	if resp != "resp" {
		t.Fatalf("unexpected response %v", resp)
	}

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 log entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if id, _ := fields["request_id"].(string); id == "" {
		t.Fatalf("expected generated request id, got %v", fields)
	}
	if fields["code"] != codes.OK.String() {
		t.Fatalf("unexpected code field %v", fields["code"])
	}
}

func TestUnaryLoggingInterceptor_KeepsIncomingRequestIDAndLogsFailures(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.InfoLevel)
	interceptor := UnaryLoggingInterceptor(zap.New(core))

	ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs(RequestIDHeader, "req-42"))
	info := &grpc.UnaryServerInfo{FullMethod: "/salary.v1.CompanyService/ReportHours"}
	_, err := interceptor(ctx, "req", info, func(ctx context.Context, req any) (any, error) {
		return nil, status.Error(codes.InvalidArgument, "bad")
	})
	if status.Code(err) != codes.InvalidArgument {
		t.Fatalf("expected InvalidArgument, got %v", err)
	}

	entries := logs.FilterField(zap.String("request_id", "req-42")).All()
	if len(entries) != 1 {
		t.Fatalf("expected request id to be propagated, got %v", logs.All())
	}
	if entries[0].Level != zapcore.WarnLevel {
		t.Fatalf("expected warn level for failures, got %s", entries[0].Level)
	}
}

func TestServer_ServesCompanyService(t *testing.T) {
	t.Parallel()

	lis := bufconn.Listen(1 << 20)
	svc := company.NewService("Acme", nil, nil, nil)
	srv := New("bufnet", svc, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- srv.Serve(ctx, lis)
	}()

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		t.Fatalf("failed to dial: %v", err)
	}

	var header metadata.MD
	client := companypb.NewCompanyServiceClient(conn)
	resp, err := client.GetCompany(context.Background(), &companypb.GetCompanyRequest{}, grpc.Header(&header))
	if err != nil {
		t.Fatalf("GetCompany returned error: %v", err)
	}
	if resp.Name != "Acme" {
		t.Fatalf("unexpected company name %q", resp.Name)
	}
	if len(header.Get(RequestIDHeader)) != 1 {
		t.Fatalf("expected request id header, got %v", header)
	}

	if err := conn.Close(); err != nil {
		t.Fatalf("failed to close connection: %v", err)
	}
	cancel()
	if err := <-done; err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		t.Fatalf("Serve returned error: %v", err)
	}
}

type failingListener struct {
	net.Listener
	closed chan struct{}
}

func (l *failingListener) Accept() (net.Conn, error) {
	return nil, errors.New("accept failed")
}

func (l *failingListener) Close() error {
	select {
	case <-l.closed:
	default:
		close(l.closed)
	}
	return nil
}

func TestServer_ServeReturnsListenerErrorWithoutWaitingForCancel(t *testing.T) {
	t.Parallel()

	lis := &failingListener{Listener: bufconn.Listen(1024), closed: make(chan struct{})}
	srv := New("bufnet", company.NewService("Acme", nil, nil, nil), zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- srv.Serve(ctx, lis)
	}()

	select {
	case err := <-done:
		if err == nil {
			t.Fatal("expected listener error to be returned")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after the listener failed")
	}
}
