package tools

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/rcliao/wellbeing-intake/internal/intake"
)

const instructions = "Wellbeing intake. Send each check-in message to intake_turn. " +
	"When the result carries a question, show it with its choices and send the reply as the next intake_turn."

// NewServer registers every intake tool on a new MCP server.
func NewServer(orch *intake.Orchestrator, ns, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"wellbeing-intake",
		version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(instructions),
	)

	turn := NewTurnTool(orch, ns)
	s.AddTool(turn.Definition(), turn.Handle)

	suppress := NewSuppressTool(orch, ns)
	s.AddTool(suppress.Definition(), suppress.Handle)

	unsuppress := NewUnsuppressTool(orch, ns)
	s.AddTool(unsuppress.Definition(), unsuppress.Handle)

	pending := NewPendingTool(orch, ns)
	s.AddTool(pending.Definition(), pending.Handle)

	return s
}
