package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rcliao/wellbeing-intake/internal/intake"
	"github.com/rcliao/wellbeing-intake/internal/model"
)

func init() {
	cmd := &cobra.Command{
		Use:   "turn [text]",
		Short: "Process one check-in turn",
		Long: "Process one check-in turn. Text can be a positional arg or piped via stdin. " +
			"If a clarifying question is pending, this turn answers it.",
		Run: runTurn,
	}

	cmd.Flags().StringP("intent", "i", "fresh", "Intent: fresh, follow_up, log_only")
	cmd.Flags().StringP("save", "s", "transient", "Save mode: transient, journal, profile")
	cmd.Flags().String("factors", "", "Explicit factors as code:confidence[:horizon], comma separated")
	cmd.Flags().String("event-id", "", "Use this event id instead of generating one")
	cmd.Flags().Bool("no-profile", false, "Do not use stored history for this turn")

	RootCmd.AddCommand(cmd)
}

func runTurn(cmd *cobra.Command, args []string) {
	intent, _ := cmd.Flags().GetString("intent")
	save, _ := cmd.Flags().GetString("save")
	factors, _ := cmd.Flags().GetString("factors")
	eventID, _ := cmd.Flags().GetString("event-id")
	noProfile, _ := cmd.Flags().GetBool("no-profile")

	var text string
	if len(args) > 0 {
		text = strings.Join(args, " ")
	} else {
		stat, _ := os.Stdin.Stat()
		if (stat.Mode() & os.ModeCharDevice) == 0 {
			b, err := io.ReadAll(os.Stdin)
			if err != nil {
				exitErr("read stdin", err)
			}
			text = string(b)
		}
	}

	writes, err := intake.ParseFactorWrites(factors)
	if err != nil {
		exitErr("factors", err)
	}

	a := openApp(cmd.Context())
	defer a.Close()
	if noProfile {
		a.orch.SetSessionUseProfile(a.cfg.Namespace, false)
	}

	res, err := a.orch.ProcessTurn(cmd.Context(), intake.Turn{
		Namespace: a.cfg.Namespace,
		Text:      strings.TrimSpace(text),
		Intent:    model.Intent(intent),
		SaveMode:  model.SaveMode(save),
		Explicit:  writes,
		EventID:   eventID,
	})
	if err != nil {
		exitErr("turn", err)
	}

	if formatFlag == "text" {
		printResponse(res.Response)
		return
	}
	printJSON(res)
}

func printResponse(r model.ResponseModel) {
	fmt.Println(r.Headline)
	for _, line := range r.Body {
		fmt.Println("  " + line)
	}
	if r.Question != "" {
		fmt.Println()
		fmt.Println(r.Question)
		for i, c := range r.Choices {
			fmt.Printf("  %d) %s\n", i+1, c)
		}
	}
	fmt.Printf("(%s)\n", r.Disclosure)
}
