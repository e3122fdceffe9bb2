// Package timeouts defines shared timeout constants used across valleycast
// binaries.
package timeouts

import "time"

// GRPCDial caps the wait time when dialing a gRPC peer, health check included.
const GRPCDial = 2 * time.Second

// GRPCRequest caps the time allowed for a single forecast RPC. A cold month
// forecast is computed on the server, so this is looser than the dial cap.
const GRPCRequest = 10 * time.Second

// Shutdown limits how long a server waits for in-flight requests during
// graceful shutdown before forcing a stop.
const Shutdown = 5 * time.Second
