package cli

import (
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/rcliao/wellbeing-intake/internal/tools"
)

func init() {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the intake tools over MCP stdio",
		Run:   runServe,
	}

	RootCmd.AddCommand(cmd)
}

func runServe(cmd *cobra.Command, args []string) {
	a := openApp(cmd.Context())
	defer a.Close()

	s := tools.NewServer(a.orch, a.cfg.Namespace, Version)
	a.log.Info("serving MCP over stdio", "namespace", a.cfg.Namespace)
	if err := server.ServeStdio(s); err != nil {
		exitErr("serve", err)
	}
}
