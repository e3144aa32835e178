package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rcliao/wellbeing-intake/internal/model"
)

func init() {
	suppressCmd := &cobra.Command{
		Use:   "suppress <code>",
		Short: "Exclude a factor code from future profiles",
		Long: "Exclude a factor code from future profiles and from newly stored factors. " +
			"Stored history is kept.",
		Args: cobra.ExactArgs(1),
		Run:  runSuppress,
	}

	unsuppressCmd := &cobra.Command{
		Use:   "unsuppress <code>",
		Short: "Stop excluding a factor code",
		Args:  cobra.ExactArgs(1),
		Run:   runSuppress,
	}

	listCmd := &cobra.Command{
		Use:   "suppressed",
		Short: "List suppressed factor codes",
		Run:   runSuppressed,
	}

	RootCmd.AddCommand(suppressCmd, unsuppressCmd, listCmd)
}

func runSuppress(cmd *cobra.Command, args []string) {
	code := model.FactorCode(args[0])
	if !code.Valid() {
		exitErr(cmd.Name(), fmt.Errorf("unknown factor code %q", code))
	}

	a := openApp(cmd.Context())
	defer a.Close()

	var err error
	if cmd.Name() == "unsuppress" {
		err = a.orch.Unsuppress(cmd.Context(), a.cfg.Namespace, code)
	} else {
		err = a.orch.Suppress(cmd.Context(), a.cfg.Namespace, code)
	}
	if err != nil {
		exitErr(cmd.Name(), err)
	}
	fmt.Printf(`{"ok":true,"code":%q}`+"\n", code)
}

func runSuppressed(cmd *cobra.Command, args []string) {
	a := openApp(cmd.Context())
	defer a.Close()

	codes, err := a.orch.Suppressed(cmd.Context(), a.cfg.Namespace)
	if err != nil {
		exitErr("suppressed", err)
	}
	if codes == nil {
		codes = []model.FactorCode{}
	}
	printJSON(codes)
}
