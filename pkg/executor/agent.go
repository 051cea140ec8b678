// Package executor drives one test case through the automation agent and
// turns its transcript into reports. The agent's reasoning loop is an
// external collaborator hidden behind the Agent interface; this package
// owns the result builder, the transcript handoff, and report generation.
package executor

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"
)

// Agent produces a free-text execution transcript for an instruction.
// Implementations: MockAgent (deterministic, offline) and external
// LLM-backed drivers composed with an MCPSession.
type Agent interface {
	// Execute runs the instruction and returns the raw transcript.
	Execute(ctx context.Context, instruction string) (string, error)
	// Name identifies the agent in execution summaries.
	Name() string
}

// AgentFunc adapts a function to the Agent interface.
type AgentFunc struct {
	Label string
	Fn    func(ctx context.Context, instruction string) (string, error)
}

func (a AgentFunc) Execute(ctx context.Context, instruction string) (string, error) {
	return a.Fn(ctx, instruction)
}

func (a AgentFunc) Name() string { return a.Label }

// MCPSession is a live connection to a browser-automation MCP server
// (typically a Playwright MCP) over stdio. The executor uses it for tool
// discovery; agent implementations use it to dispatch tool calls.
type MCPSession struct {
	client *client.Client
	tools  []string
}

// ConnectMCP spawns the MCP server process and performs the
// initialization handshake and tool discovery.
func ConnectMCP(ctx context.Context, command string, args ...string) (*MCPSession, error) {
	c, err := client.NewStdioMCPClient(command, nil, args...)
	if err != nil {
		return nil, fmt.Errorf("spawn MCP server %q: %w", command, err)
	}

	initReq := mcp.InitializeRequest{}
	initReq.Params.ProtocolVersion = mcp.LATEST_PROTOCOL_VERSION
	initReq.Params.ClientInfo = mcp.Implementation{Name: "webprobe", Version: "0"}
	if _, err := c.Initialize(ctx, initReq); err != nil {
		c.Close()
		return nil, fmt.Errorf("initialize MCP session: %w", err)
	}

	res, err := c.ListTools(ctx, mcp.ListToolsRequest{})
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("list MCP tools: %w", err)
	}
	names := make([]string, 0, len(res.Tools))
	for _, t := range res.Tools {
		names = append(names, t.Name)
	}

	return &MCPSession{client: c, tools: names}, nil
}

// ToolNames returns the tool inventory discovered at connect time.
func (s *MCPSession) ToolNames() []string { return s.tools }

// CallTool invokes one automation tool and returns its concatenated text
// content.
func (s *MCPSession) CallTool(ctx context.Context, name string, args map[string]any) (string, error) {
	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args

	res, err := s.client.CallTool(ctx, req)
	if err != nil {
		return "", fmt.Errorf("call tool %s: %w", name, err)
	}
	var text string
	for _, c := range res.Content {
		if tc, ok := c.(mcp.TextContent); ok {
			text += tc.Text
		}
	}
	if res.IsError {
		return text, fmt.Errorf("tool %s reported an error", name)
	}
	return text, nil
}

// Close shuts down the MCP server process.
func (s *MCPSession) Close() error {
	return s.client.Close()
}
