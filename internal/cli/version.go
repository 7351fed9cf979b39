package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"moviedash/internal/config"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "moviedash %s\n", config.GetVersion())
	},
}
