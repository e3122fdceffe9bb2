// Package service wires MCP transport to the valleycast tool handlers.
//
// Tools run against the in-process forecast library unless a forecast
// service address is configured, in which case calls go over gRPC and share
// that service's cache.
package service
