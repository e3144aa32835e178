package cli

import (
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export stored check-ins as JSON",
		Long:  "Export the event log, factor log and suppression list of the namespace as JSON.",
		Run:   runExport,
	}

	RootCmd.AddCommand(cmd)
}

func runExport(cmd *cobra.Command, args []string) {
	a := openApp(cmd.Context())
	defer a.Close()

	exp, err := a.orch.Export(cmd.Context(), a.cfg.Namespace)
	if err != nil {
		exitErr("export", err)
	}
	printJSON(exp)
}
