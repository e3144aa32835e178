package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/rcliao/wellbeing-intake/internal/intake"
	"github.com/rcliao/wellbeing-intake/internal/model"
)

// SuppressTool handles intake_suppress and intake_unsuppress.
type SuppressTool struct {
	orch   *intake.Orchestrator
	ns     string
	remove bool
}

// NewSuppressTool creates the intake_suppress tool.
func NewSuppressTool(orch *intake.Orchestrator, ns string) *SuppressTool {
	return &SuppressTool{orch: orch, ns: ns}
}

// NewUnsuppressTool creates the intake_unsuppress tool.
func NewUnsuppressTool(orch *intake.Orchestrator, ns string) *SuppressTool {
	return &SuppressTool{orch: orch, ns: ns, remove: true}
}

func (t *SuppressTool) name() string {
	if t.remove {
		return "intake_unsuppress"
	}
	return "intake_suppress"
}

// Definition returns the MCP tool definition.
func (t *SuppressTool) Definition() mcp.Tool {
	desc := "Exclude a factor code from future profiles and from newly stored factors. " +
		"Already stored factors are kept but stop counting."
	if t.remove {
		desc = "Stop excluding a factor code. Stored history with that code counts again."
	}
	return mcp.NewTool(t.name(),
		mcp.WithDescription(desc),
		mcp.WithString("code",
			mcp.Required(),
			mcp.Description("Factor code, one of: "+codeList()),
		),
		mcp.WithString("namespace",
			mcp.Description("Conversation namespace (default from config)"),
		),
	)
}

// Handle processes the tool call and reports the resulting suppression list.
func (t *SuppressTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	code := model.FactorCode(req.GetString("code", ""))
	if code == "" {
		return mcp.NewToolResultError("'code' is required"), nil
	}
	if !code.Valid() {
		return mcp.NewToolResultError(fmt.Sprintf("unknown factor code %q", code)), nil
	}
	ns := req.GetString("namespace", t.ns)

	var err error
	if t.remove {
		err = t.orch.Unsuppress(ctx, ns, code)
	} else {
		err = t.orch.Suppress(ctx, ns, code)
	}
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("%s failed: %v", t.name(), err)), nil
	}

	codes, err := t.orch.Suppressed(ctx, ns)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("list suppressed: %v", err)), nil
	}
	names := make([]string, len(codes))
	for i, c := range codes {
		names[i] = string(c)
	}
	if len(names) == 0 {
		return mcp.NewToolResultText("Suppressed codes: (none)"), nil
	}
	return mcp.NewToolResultText("Suppressed codes: " + strings.Join(names, ", ")), nil
}

func codeList() string {
	all := model.AllCodes()
	names := make([]string, len(all))
	for i, c := range all {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}
