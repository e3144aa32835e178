// Package tools exposes the intake pipeline as MCP tools.
package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/rcliao/wellbeing-intake/internal/intake"
	"github.com/rcliao/wellbeing-intake/internal/model"
)

// TurnTool handles the intake_turn MCP tool.
type TurnTool struct {
	orch *intake.Orchestrator
	ns   string
}

// NewTurnTool creates a TurnTool. ns is used when a call names no namespace.
func NewTurnTool(orch *intake.Orchestrator, ns string) *TurnTool {
	return &TurnTool{orch: orch, ns: ns}
}

// Definition returns the MCP tool definition for intake_turn.
func (t *TurnTool) Definition() mcp.Tool {
	return mcp.NewTool("intake_turn",
		mcp.WithDescription(
			"Process one wellbeing check-in turn. Returns the factors found, the risk band, and either an answer "+
				"or one clarifying question. If a question is pending, the next turn is treated as its answer.",
		),
		mcp.WithString("text",
			mcp.Description("What the person wrote"),
		),
		mcp.WithString("intent",
			mcp.Description("fresh (default), follow_up or log_only"),
			mcp.Enum(string(model.IntentFresh), string(model.IntentFollowUp), string(model.IntentLogOnly)),
		),
		mcp.WithString("save_mode",
			mcp.Description("transient (default), journal (keeps the text) or profile"),
			mcp.Enum(string(model.SaveTransient), string(model.SaveJournal), string(model.SaveProfile)),
		),
		mcp.WithString("factors",
			mcp.Description("Explicit factors as code:confidence[:horizon], comma separated (e.g. 'fatigue:0.8,stress:0.6')"),
		),
		mcp.WithString("namespace",
			mcp.Description("Conversation namespace (default from config)"),
		),
	)
}

// Handle processes the intake_turn tool call.
func (t *TurnTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	writes, err := intake.ParseFactorWrites(req.GetString("factors", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	res, err := t.orch.ProcessTurn(ctx, intake.Turn{
		Namespace: req.GetString("namespace", t.ns),
		Text:      req.GetString("text", ""),
		Intent:    model.Intent(req.GetString("intent", "")),
		SaveMode:  model.SaveMode(req.GetString("save_mode", "")),
		Explicit:  writes,
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("turn failed: %v", err)), nil
	}
	return jsonResult(res)
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
