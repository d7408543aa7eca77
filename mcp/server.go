package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/spetersoncode/reduce"
	"github.com/spetersoncode/reduce/event"
)

// StateURI is the URI of the current-state resource.
const StateURI = "state://current"

// Target is the store a server exposes. *store.Store satisfies it.
type Target[S any] interface {
	GetState() S
	Dispatch(ctx context.Context, cmd reduce.Command) any
}

// ServerOption configures a Server.
type ServerOption func(*serverConfig)

type serverConfig struct {
	name    string
	version string
	allowed []string
}

// WithName sets the server name reported to MCP clients.
func WithName(name string) ServerOption {
	return func(c *serverConfig) {
		c.name = name
	}
}

// WithVersion sets the server version reported to MCP clients.
func WithVersion(version string) ServerOption {
	return func(c *serverConfig) {
		c.version = version
	}
}

// WithActions restricts the dispatch tool to the given action creators.
// Without it any action type may be dispatched.
func WithActions(creators ...reduce.ActionCreator) ServerOption {
	return func(c *serverConfig) {
		for _, ac := range creators {
			c.allowed = append(c.allowed, ac.Type)
		}
	}
}

// NewServer creates an MCP server exposing target's state and dispatch.
//
// Example:
//
//	mcpServer := mcp.NewServer[map[string]any](st,
//	    mcp.WithName("todos"),
//	    mcp.WithActions(todos.Actions["add"], todos.Actions["toggle"]),
//	)
//	server.ServeStdio(mcpServer)
func NewServer[S any](target Target[S], opts ...ServerOption) *server.MCPServer {
	cfg := &serverConfig{
		name:    "reduce-mcp-server",
		version: "1.0.0",
	}
	for _, opt := range opts {
		opt(cfg)
	}
	slices.Sort(cfg.allowed)

	s := server.NewMCPServer(
		cfg.name,
		cfg.version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, false),
	)

	s.AddTool(mcp.NewTool("get_state",
		mcp.WithDescription("Return the current state as JSON"),
		mcp.WithString("path", mcp.Description("JSON Pointer of the subtree to return, e.g. /todos/items/0")),
	), getStateHandler(target))

	typeDesc := "Action type to dispatch"
	if len(cfg.allowed) > 0 {
		typeDesc += ", one of: " + strings.Join(cfg.allowed, ", ")
	}
	s.AddTool(mcp.NewTool("dispatch",
		mcp.WithDescription("Dispatch an action and return the resulting state as JSON"),
		mcp.WithString("type", mcp.Required(), mcp.Description(typeDesc)),
		mcp.WithObject("payload", mcp.Description("Action payload")),
	), dispatchHandler(target, cfg.allowed))

	s.AddResource(mcp.NewResource(StateURI, "Current state",
		mcp.WithResourceDescription("The store's current state"),
		mcp.WithMIMEType("application/json"),
	), stateResourceHandler(target))

	return s
}

// ServeStdio starts an MCP server for target that communicates over stdin/stdout.
func ServeStdio[S any](target Target[S], opts ...ServerOption) error {
	return server.ServeStdio(NewServer(target, opts...))
}

func getStateHandler[S any](target Target[S]) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		shaped, err := event.JSONShape(target.GetState())
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		value, err := Resolve(shaped, req.GetString("path", ""))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		text, err := encode(value)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(text), nil
	}
}

func dispatchHandler[S any](target Target[S], allowed []string) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (result *mcp.CallToolResult, err error) {
		typ, err := req.RequireString("type")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if len(allowed) > 0 {
			if _, ok := slices.BinarySearch(allowed, typ); !ok {
				return mcp.NewToolResultError(fmt.Sprintf("action type %q is not allowed", typ)), nil
			}
		}

		action := reduce.Action{Type: typ, Payload: req.GetArguments()["payload"]}

		defer func() {
			if r := recover(); r != nil {
				result, err = mcp.NewToolResultError(fmt.Sprintf("dispatch %s panicked: %v", typ, r)), nil
			}
		}()
		if perr, ok := target.Dispatch(ctx, action).(*reduce.PanicError); ok {
			return mcp.NewToolResultError(fmt.Sprintf("dispatch %s: %v", typ, perr)), nil
		}

		shaped, err := event.JSONShape(target.GetState())
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		text, err := encode(shaped)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(text), nil
	}
}

func stateResourceHandler[S any](target Target[S]) server.ResourceHandlerFunc {
	return func(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		shaped, err := event.JSONShape(target.GetState())
		if err != nil {
			return nil, err
		}
		text, err := encode(shaped)
		if err != nil {
			return nil, err
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      StateURI,
				MIMEType: "application/json",
				Text:     text,
			},
		}, nil
	}
}

// Resolve returns the value at the RFC 6901 JSON Pointer path inside a
// JSON-shaped value. The empty pointer refers to the whole value.
func Resolve(value any, pointer string) (any, error) {
	if pointer == "" {
		return value, nil
	}
	if !strings.HasPrefix(pointer, "/") {
		return nil, fmt.Errorf("invalid JSON pointer %q", pointer)
	}

	for _, token := range strings.Split(pointer[1:], "/") {
		token = strings.ReplaceAll(strings.ReplaceAll(token, "~1", "/"), "~0", "~")
		switch v := value.(type) {
		case map[string]any:
			next, ok := v[token]
			if !ok {
				return nil, fmt.Errorf("path %s: key %q not found", pointer, token)
			}
			value = next
		case []any:
			i, err := strconv.Atoi(token)
			if err != nil || i < 0 || i >= len(v) {
				return nil, fmt.Errorf("path %s: index %q out of range", pointer, token)
			}
			value = v[i]
		default:
			return nil, fmt.Errorf("path %s: cannot descend into %T", pointer, value)
		}
	}
	return value, nil
}

func encode(v any) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode state: %w", err)
	}
	return string(data), nil
}
