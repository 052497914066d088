package sse

import (
	"net/http"

	"github.com/mark3labs/mcp-go/server"
	"github.com/theapemachine/mem0-mcp/pkg/tools"
)

// MCPBroker wraps the MCP server in an SSE transport for hosts that connect
// over HTTP instead of stdio.
type MCPBroker struct {
	srv *server.MCPServer
	sse *server.SSEServer
}

func NewMCPBroker(dispatcher *tools.Dispatcher) *MCPBroker {
	mcpSrv := server.NewMCPServer(
		"mem0-mcp",
		"1.0.0",
		server.WithLogging(),
		server.WithToolCapabilities(true),
	)

	dispatcher.Register(mcpSrv)

	sseSrv := server.NewSSEServer(
		mcpSrv,
	)

	return &MCPBroker{
		srv: mcpSrv,
		sse: sseSrv,
	}
}

func (b *MCPBroker) Start(addr string) error {
	return b.sse.Start(addr)
}

func (b *MCPBroker) Server() http.Handler {
	return b.sse
}
