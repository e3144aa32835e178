package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rcliao/wellbeing-intake/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show database statistics",
		Run:   runStats,
	}

	RootCmd.AddCommand(cmd)
}

func runStats(cmd *cobra.Command, args []string) {
	a := openApp(cmd.Context())
	defer a.Close()

	s, ok := a.store.(*store.SQLiteStore)
	if !ok {
		exitErr("stats", fmt.Errorf("stats are only available for the sqlite backend"))
	}

	stats, err := s.Stats(cmd.Context())
	if err != nil {
		exitErr("stats", err)
	}
	printJSON(stats)
}
