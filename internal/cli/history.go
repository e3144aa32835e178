package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rcliao/wellbeing-intake/internal/model"
)

func init() {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "List stored check-ins",
		Run:   runHistory,
	}
	historyCmd.Flags().IntP("limit", "l", 20, "Max events to show, newest last (0 = all)")

	threadCmd := &cobra.Command{
		Use:   "thread <event-id>",
		Short: "Show the reply chain ending at an event",
		Args:  cobra.ExactArgs(1),
		Run:   runThread,
	}

	profileCmd := &cobra.Command{
		Use:   "profile",
		Short: "Show the complexity profile built from stored factors",
		Run:   runProfile,
	}

	RootCmd.AddCommand(historyCmd, threadCmd, profileCmd)
}

func runHistory(cmd *cobra.Command, args []string) {
	limit, _ := cmd.Flags().GetInt("limit")

	a := openApp(cmd.Context())
	defer a.Close()

	events, err := a.orch.History(cmd.Context(), a.cfg.Namespace)
	if err != nil {
		exitErr("history", err)
	}
	if limit > 0 && len(events) > limit {
		events = events[len(events)-limit:]
	}
	printEvents(events)
}

func runThread(cmd *cobra.Command, args []string) {
	a := openApp(cmd.Context())
	defer a.Close()

	events, err := a.orch.Thread(cmd.Context(), a.cfg.Namespace, args[0])
	if err != nil {
		exitErr("thread", err)
	}
	printEvents(events)
}

func printEvents(events []model.Event) {
	if formatFlag != "text" {
		if events == nil {
			events = []model.Event{}
		}
		printJSON(events)
		return
	}
	for _, e := range events {
		line := fmt.Sprintf("%s  %s  %-9s %-9s", e.CreatedAt.Local().Format(time.DateTime), e.ID, e.Intent, e.SaveMode)
		if e.HasRawText() {
			line += "  " + e.RawText
		}
		fmt.Println(line)
	}
}

func runProfile(cmd *cobra.Command, args []string) {
	a := openApp(cmd.Context())
	defer a.Close()

	p, err := a.orch.Profile(cmd.Context(), a.cfg.Namespace)
	if err != nil {
		exitErr("profile", err)
	}
	printJSON(p)
}
