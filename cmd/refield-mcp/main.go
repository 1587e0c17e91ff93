package main

import (
	"context"
	"flag"
	"log"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	mcpadapter "refield/internal/adapters/mcp"
	"refield/internal/adapters/sqlite"
	"refield/internal/config"
)

func main() {
	dbFlag := flag.String("db", config.DBPath(), "path to the record database")
	flag.Parse()

	store := sqlite.NewStore()
	if err := store.Open(*dbFlag); err != nil {
		log.Fatalf("refield-mcp: %v", err)
	}
	defer store.Close()

	mcpServer := server.NewMCPServer(
		"refield-mcp",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	mcpServer.AddTool(
		mcp.NewTool("ping",
			mcp.WithDescription("Health check — returns pong"),
		),
		func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText("pong"), nil
		},
	)

	mcpadapter.RegisterReadTools(mcpServer, store)
	mcpadapter.RegisterWriteTools(mcpServer, store)

	if err := server.ServeStdio(mcpServer); err != nil {
		log.Fatalf("refield-mcp: %v", err)
	}
}
