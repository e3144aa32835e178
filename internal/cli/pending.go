package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	pendingCmd := &cobra.Command{
		Use:   "pending",
		Short: "Show the open clarifying question",
		Run:   runPending,
	}

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Drop the open clarifying question",
		Run:   runPendingClear,
	}

	pendingCmd.AddCommand(clearCmd)
	RootCmd.AddCommand(pendingCmd)
}

func runPending(cmd *cobra.Command, args []string) {
	a := openApp(cmd.Context())
	defer a.Close()

	p, err := a.orch.Pending(cmd.Context(), a.cfg.Namespace)
	if err != nil {
		exitErr("pending", err)
	}
	if p == nil {
		fmt.Println("null")
		return
	}
	printJSON(p)
}

func runPendingClear(cmd *cobra.Command, args []string) {
	a := openApp(cmd.Context())
	defer a.Close()

	if err := a.orch.ClearPending(cmd.Context(), a.cfg.Namespace); err != nil {
		exitErr("clear pending", err)
	}
	fmt.Println(`{"ok":true}`)
}
