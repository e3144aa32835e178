package cli

import (
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change context settings",
		Long:  "Show the context settings. Pass --use-saved-context=false to stop using stored history.",
		Run:   runSettings,
	}

	cmd.Flags().Bool("use-saved-context", true, "Use stored history when building profiles")

	RootCmd.AddCommand(cmd)
}

func runSettings(cmd *cobra.Command, args []string) {
	a := openApp(cmd.Context())
	defer a.Close()

	if cmd.Flags().Changed("use-saved-context") {
		on, _ := cmd.Flags().GetBool("use-saved-context")
		if err := a.orch.SetUseSavedContext(cmd.Context(), a.cfg.Namespace, on); err != nil {
			exitErr("settings", err)
		}
	}

	s, err := a.orch.Settings(cmd.Context(), a.cfg.Namespace)
	if err != nil {
		exitErr("settings", err)
	}
	printJSON(s)
}
