// Package grpc holds client-side dialing and health helpers shared by
// valleycast gRPC clients.
package grpc

import (
	"context"
	"fmt"
	"time"

	gogrpc "google.golang.org/grpc"
	grpc_health_v1 "google.golang.org/grpc/health/grpc_health_v1"
)

// HealthBackoff bounds the retry delay between health probes.
type HealthBackoff struct {
	Initial time.Duration
	Max     time.Duration
	// Probe caps a single health RPC.
	Probe time.Duration
}

// DefaultHealthBackoff doubles from 200ms up to one second.
var DefaultHealthBackoff = HealthBackoff{
	Initial: 200 * time.Millisecond,
	Max:     time.Second,
	Probe:   time.Second,
}

// WaitForHealth blocks until the gRPC health check for service reports
// SERVING or the context ends. An empty service checks the whole server.
func WaitForHealth(ctx context.Context, conn gogrpc.ClientConnInterface, service string, logf func(string, ...any)) error {
	return WaitForHealthWithBackoff(ctx, conn, service, DefaultHealthBackoff, logf)
}

// WaitForHealthWithBackoff is WaitForHealth with a custom retry schedule.
func WaitForHealthWithBackoff(ctx context.Context, conn gogrpc.ClientConnInterface, service string, policy HealthBackoff, logf func(string, ...any)) error {
	if conn == nil {
		return fmt.Errorf("gRPC connection is not configured")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	policy = policy.normalized()

	healthClient := grpc_health_v1.NewHealthClient(conn)
	backoff := policy.Initial
	for {
		callCtx, cancel := context.WithTimeout(ctx, policy.Probe)
		response, err := healthClient.Check(callCtx, &grpc_health_v1.HealthCheckRequest{Service: service})
		cancel()
		if err == nil && response.GetStatus() == grpc_health_v1.HealthCheckResponse_SERVING {
			if logf != nil {
				logf("gRPC health check for %q is SERVING", service)
			}
			return nil
		}
		if logf != nil {
			if err != nil {
				logf("waiting for gRPC health: %v", err)
			} else {
				logf("waiting for gRPC health: status %s", response.GetStatus().String())
			}
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("wait for gRPC health: %w", ctx.Err())
		case <-time.After(backoff):
		}

		if backoff < policy.Max {
			backoff *= 2
			if backoff > policy.Max {
				backoff = policy.Max
			}
		}
	}
}

func (p HealthBackoff) normalized() HealthBackoff {
	if p.Initial <= 0 {
		p.Initial = DefaultHealthBackoff.Initial
	}
	if p.Max < p.Initial {
		p.Max = p.Initial
	}
	if p.Probe <= 0 {
		p.Probe = DefaultHealthBackoff.Probe
	}
	return p
}
