// Package grpc implements the gRPC transport for voicebot.
//
// The gRPC surface is for orchestrators and service meshes: it serves the
// standard grpc.health.v1 protocol, reporting one service per external
// provider so a probe can tell which voicebot features are usable, plus
// server reflection for grpcurl.
package grpc

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"sort"

	"google.golang.org/grpc"
	grpchealth "google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/nadzzz/voicebot/internal/health"
	"github.com/nadzzz/voicebot/internal/transport"
)

// Options configures the gRPC transport.
type Options struct {
	Port   int
	Health *health.Checker

	// Services maps a gRPC health service name (e.g. "voicebot.completion")
	// to the provider whose credential it depends on.
	Services map[string]string
}

// Transport implements transport.Transport over gRPC.
type Transport struct {
	opts   Options
	server *grpc.Server
	health *grpchealth.Server
}

// New creates a new gRPC transport and registers its services.
func New(opts Options) *Transport {
	t := &Transport{
		opts:   opts,
		server: grpc.NewServer(),
		health: grpchealth.NewServer(),
	}
	healthpb.RegisterHealthServer(t.server, t.health)
	reflection.Register(t.server)
	t.refresh()
	return t
}

// Name returns the transport identifier.
func (t *Transport) Name() string { return "grpc" }

// refresh publishes the provider credential status as serving states.
func (t *Transport) refresh() {
	t.health.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)

	names := make([]string, 0, len(t.opts.Services))
	for name := range t.opts.Services {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		status := healthpb.HealthCheckResponse_NOT_SERVING
		if t.opts.Health != nil && t.opts.Health.KeyPresent(t.opts.Services[name]) {
			status = healthpb.HealthCheckResponse_SERVING
		}
		t.health.SetServingStatus(name, status)
		slog.Debug("grpc health status", "service", name, "status", status.String())
	}
}

// Listen starts the gRPC server. Requests never reach svc; the gRPC surface
// only reports health.
func (t *Transport) Listen(ctx context.Context, _ transport.Service) error {
	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", t.opts.Port))
	if err != nil {
		return fmt.Errorf("grpc listen: %w", err)
	}
	return t.Serve(ctx, lis)
}

// Serve serves on lis until ctx is cancelled.
func (t *Transport) Serve(ctx context.Context, lis net.Listener) error {
	slog.Info("grpc transport listening", "addr", lis.Addr().String())

	go func() {
		<-ctx.Done()
		slog.Info("grpc transport shutting down")
		t.health.Shutdown()
		t.server.GracefulStop()
	}()

	if err := t.server.Serve(lis); err != nil {
		return fmt.Errorf("grpc serve: %w", err)
	}
	return nil
}

// Close gracefully stops the gRPC server.
func (t *Transport) Close() error {
	t.health.Shutdown()
	t.server.GracefulStop()
	return nil
}
