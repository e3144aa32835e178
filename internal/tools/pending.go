package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/rcliao/wellbeing-intake/internal/intake"
)

// PendingTool handles the intake_pending MCP tool.
type PendingTool struct {
	orch *intake.Orchestrator
	ns   string
}

// NewPendingTool creates a PendingTool.
func NewPendingTool(orch *intake.Orchestrator, ns string) *PendingTool {
	return &PendingTool{orch: orch, ns: ns}
}

// Definition returns the MCP tool definition for intake_pending.
func (t *PendingTool) Definition() mcp.Tool {
	return mcp.NewTool("intake_pending",
		mcp.WithDescription("Show the open clarifying question, if any. Set clear=true to drop it."),
		mcp.WithBoolean("clear",
			mcp.Description("Drop the pending question instead of showing it"),
		),
		mcp.WithString("namespace",
			mcp.Description("Conversation namespace (default from config)"),
		),
	)
}

// Handle processes the intake_pending tool call.
func (t *PendingTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ns := req.GetString("namespace", t.ns)
	if req.GetBool("clear", false) {
		if err := t.orch.ClearPending(ctx, ns); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("clear pending: %v", err)), nil
		}
		return mcp.NewToolResultText("Pending question cleared."), nil
	}

	p, err := t.orch.Pending(ctx, ns)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("read pending: %v", err)), nil
	}
	if p == nil {
		return mcp.NewToolResultText("No pending question."), nil
	}
	return jsonResult(p)
}
