// Command mcp is a reference MCP server that exposes the demo store over stdio.
//
// MCP clients (like Claude Desktop or other AI assistants) can read the state
// through the get_state tool or the state://current resource, and change it
// through the dispatch tool, which accepts the demo's slice actions.
//
// Usage:
//
//	go run ./cmd/mcp
//
// Configuration for Claude Desktop (~/Library/Application Support/Claude/claude_desktop_config.json):
//
//	{
//	    "mcpServers": {
//	        "reduce-demo": {
//	            "command": "go",
//	            "args": ["run", "./cmd/mcp"],
//	            "cwd": "/path/to/reduce"
//	        }
//	    }
//	}
package main

import (
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/spetersoncode/reduce/internal/demo"
	"github.com/spetersoncode/reduce/mcp"
)

func main() {
	godotenv.Load()

	// stdout carries the protocol, so logs go to stderr
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	app := demo.New(demo.SeedLoader(100*time.Millisecond), logger)

	if err := mcp.ServeStdio[map[string]any](app.Store,
		mcp.WithName("reduce-demo"),
		mcp.WithVersion("1.0.0"),
		mcp.WithActions(app.ActionCreators()...),
	); err != nil {
		log.Fatal(err)
	}
}
