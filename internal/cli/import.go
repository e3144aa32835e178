package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/rcliao/wellbeing-intake/internal/state"
)

func init() {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import check-ins from JSON",
		Long:  "Import check-ins from JSON on stdin. Expects the format produced by export. Events merge by id.",
		Run:   runImport,
	}

	RootCmd.AddCommand(cmd)
}

func runImport(cmd *cobra.Command, args []string) {
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		exitErr("read stdin", err)
	}

	var exp state.Export
	if err := json.Unmarshal(data, &exp); err != nil {
		exitErr("parse json", err)
	}

	a := openApp(cmd.Context())
	defer a.Close()

	imported, err := a.orch.Import(cmd.Context(), a.cfg.Namespace, exp)
	if err != nil {
		exitErr("import", err)
	}

	fmt.Printf(`{"ok":true,"imported":%d}`+"\n", imported)
}
