package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/vignette"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of vignette",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "vignette version %s\n", strings.TrimSpace(vignette.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
