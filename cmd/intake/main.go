package main

import (
	"os"

	"github.com/rcliao/wellbeing-intake/internal/cli"
)

func main() {
	if err := cli.RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
