package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rcliao/wellbeing-intake/internal/store"
)

func init() {
	nsCmd := &cobra.Command{
		Use:   "ns",
		Short: "Namespace management",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List namespaces with stored state",
		Run:   runNSList,
	}

	nsCmd.AddCommand(listCmd)
	RootCmd.AddCommand(nsCmd)
}

func runNSList(cmd *cobra.Command, args []string) {
	a := openApp(cmd.Context())
	defer a.Close()

	s, ok := a.store.(*store.SQLiteStore)
	if !ok {
		exitErr("list namespaces", fmt.Errorf("namespace listing is only available for the sqlite backend"))
	}

	stats, err := s.Stats(cmd.Context())
	if err != nil {
		exitErr("list namespaces", err)
	}
	rows := stats.Namespaces
	if rows == nil {
		rows = []store.NamespaceStats{}
	}
	printJSON(rows)
}
