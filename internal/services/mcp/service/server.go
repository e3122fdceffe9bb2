package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"google.golang.org/grpc"

	platformgrpc "github.com/louisbranch/valleycast/internal/platform/grpc"
	"github.com/louisbranch/valleycast/internal/platform/timeouts"
	forecastservice "github.com/louisbranch/valleycast/internal/services/forecast/api/grpc/forecast"
	"github.com/louisbranch/valleycast/internal/services/mcp/domain"
)

const (
	serverName = "valleycast"
	// serverVersion identifies the MCP server version.
	serverVersion = "0.1.0"
)

// Config configures the MCP server.
type Config struct {
	// ForecastAddr is the forecast gRPC address. Empty computes in process.
	ForecastAddr string
}

// Server is an MCP server bound to one forecast backend.
type Server struct {
	mcpServer *mcp.Server
	conn      *grpc.ClientConn
}

// New creates an MCP server with every valleycast tool registered.
func New(backend domain.Backend) *Server {
	if backend == nil {
		backend = domain.LocalBackend{}
	}
	mcpServer := mcp.NewServer(&mcp.Implementation{Name: serverName, Version: serverVersion}, nil)
	mcp.AddTool(mcpServer, domain.MinesForecastTool(), domain.MinesForecastHandler(backend))
	mcp.AddTool(mcpServer, domain.SeedInspectTool(), domain.SeedInspectHandler(backend))
	mcp.AddTool(mcpServer, domain.CalendarDateTool(), domain.CalendarDateHandler())
	return &Server{mcpServer: mcpServer}
}

// Run serves MCP on stdio until the context ends or the client disconnects.
func Run(ctx context.Context, cfg Config) error {
	return runWithTransport(ctx, cfg, &mcp.StdioTransport{})
}

func runWithTransport(ctx context.Context, cfg Config, transport mcp.Transport) error {
	if ctx == nil {
		ctx = context.Background()
	}
	addr := strings.TrimSpace(cfg.ForecastAddr)
	if addr == "" {
		return New(domain.LocalBackend{}).serveWithTransport(ctx, transport)
	}

	conn, err := dialForecast(ctx, addr)
	if err != nil {
		return err
	}
	server := New(domain.RemoteBackend{Client: forecastservice.NewClient(conn)})
	server.conn = conn
	return server.serveWithTransport(ctx, transport)
}

func dialForecast(ctx context.Context, addr string) (*grpc.ClientConn, error) {
	logf := func(format string, args ...any) {
		log.Printf("forecast %s", fmt.Sprintf(format, args...))
	}
	conn, err := platformgrpc.DialWithHealth(
		ctx,
		nil,
		addr,
		forecastservice.ServiceName,
		timeouts.GRPCDial,
		logf,
		platformgrpc.DefaultClientDialOptions()...,
	)
	if err != nil {
		var dialErr *platformgrpc.DialError
		if errors.As(err, &dialErr) && dialErr.Stage == platformgrpc.DialStageConnect {
			return nil, fmt.Errorf("connect to forecast server at %s: %w", addr, dialErr.Err)
		}
		return nil, err
	}
	return conn, nil
}

// Close releases the gRPC connection held by the server.
func (s *Server) Close() error {
	if s == nil || s.conn == nil {
		return nil
	}
	if err := s.conn.Close(); err != nil {
		return err
	}
	s.conn = nil
	return nil
}

// serveWithTransport runs the MCP session and then releases the connection.
// Context cancellation is a clean stop.
func (s *Server) serveWithTransport(ctx context.Context, transport mcp.Transport) error {
	if s == nil || s.mcpServer == nil {
		return fmt.Errorf("MCP server is not configured")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	err := s.mcpServer.Run(ctx, transport)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		err = nil
	}
	closeErr := s.Close()
	if closeErr != nil {
		if err == nil {
			return fmt.Errorf("close gRPC connection: %w", closeErr)
		}
		return fmt.Errorf("serve MCP: %v; close gRPC connection: %w", err, closeErr)
	}
	if err != nil {
		return fmt.Errorf("serve MCP: %w", err)
	}
	return nil
}
