package mcpserver

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/habiliai/toolserver/entity"
	"github.com/habiliai/toolserver/internal/mylog"
	"github.com/habiliai/toolserver/tool"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/mokiat/gog"
)

const (
	Name = "toolserver"

	toolsDescription = "List the usage of every available tool"
)

var messageSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"role": map[string]any{
			"type": "string",
			"enum": gog.Map(entity.Roles(), func(r entity.Role) string { return string(r) }),
		},
		"content": map[string]any{"type": "string"},
	},
	"required": []string{"role", "content"},
}

// Server exposes a tool registry as MCP tools. Every registry entry becomes
// one MCP tool taking an "arg" string and an optional "messages" history.
type Server struct {
	registry *tool.Registry
	logger   *slog.Logger
	mcp      *server.MCPServer
}

func New(registry *tool.Registry, version string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = mylog.NewDiscardLogger()
	}

	s := &Server{
		registry: registry,
		logger:   logger.WithGroup("mcp"),
		mcp:      server.NewMCPServer(Name, version, server.WithToolCapabilities(false)),
	}

	s.mcp.AddTools(gog.Map(registry.Entries(), func(e tool.Entry) server.ServerTool {
		return server.ServerTool{
			Tool:    newMCPTool(e),
			Handler: s.CallTool,
		}
	})...)

	return s
}

func newMCPTool(e tool.Entry) mcp.Tool {
	description := e.Usage
	if description == "" {
		description = toolsDescription
	}

	return mcp.NewTool(e.Name,
		mcp.WithDescription(description),
		mcp.WithString("arg",
			mcp.Required(),
			mcp.Description("The tool argument, the text between the parentheses of @"+e.Name+"(...)"),
		),
		mcp.WithArray("messages",
			mcp.Description("Conversation history, oldest first"),
			mcp.Items(messageSchema),
		),
	)
}

func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

// ServeStdio serves MCP over stdin and stdout until the input closes or the
// process is signalled.
func (s *Server) ServeStdio() error {
	s.logger.Info("serving tools over stdio", "tools", s.registry.List())
	return server.ServeStdio(s.mcp)
}

// CallTool runs the registry tool named by req. Tool failures are reported
// as error results, not protocol errors.
func (s *Server) CallTool(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name := req.Params.Name
	entry, ok := s.registry.Lookup(name)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("@%s not found - such as tool does not exist", name)), nil
	}

	args, _ := req.Params.Arguments.(map[string]any)
	if args == nil {
		args = map[string]any{}
	}
	toolReq, err := entity.DecodeToolRequest(args)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Invalid request: %v", err)), nil
	}

	result, err := entry.Func(ctx, toolReq.Messages, toolReq.Arg)
	if err != nil {
		s.logger.Warn("tool failed", slog.String("tool", name), mylog.Err(err))
		return mcp.NewToolResultError(fmt.Sprintf("@%s error - %v", name, err)), nil
	}

	return mcp.NewToolResultText(result), nil
}
