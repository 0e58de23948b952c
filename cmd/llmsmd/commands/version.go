package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/llmsmd/internal/output"
	"github.com/jmylchreest/llmsmd/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")
		if asJSON {
			return output.Write(cmd.OutOrStdout(), output.FormatJSON, version.Get())
		}
		_, err := fmt.Fprintln(cmd.OutOrStdout(), version.Get().Full())
		return err
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
	versionCmd.Flags().Bool("json", false, "print version information as JSON")
}
