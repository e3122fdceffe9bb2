// Package domain implements the valleycast MCP tools.
//
// Handlers validate tool input, call a Backend for forecasts and raw draws,
// and shape the structured output MCP clients render. The backend is either
// the in-process forecast library or a remote forecast service.
package domain
