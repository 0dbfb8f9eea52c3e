package mcpapi

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// NewServer builds the MCP server with every tool registered.
func NewServer(name, version string, handler *Handler) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    name,
		Version: version,
	}, nil)
	handler.Register(server)
	return server
}
