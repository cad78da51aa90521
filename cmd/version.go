package cmd

import (
	"fmt"

	"github.com/meysamhadeli/codectx/version"
	"github.com/spf13/cobra"
)

// versionCmd prints build information; --short prints only Info.Short.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Display the version of codectx",
	RunE: func(cmd *cobra.Command, args []string) error {
		short, err := cmd.Flags().GetBool("short")
		if err != nil {
			return fmt.Errorf("error reading flags: %w", err)
		}

		v := version.Get()
		if short {
			fmt.Fprintln(cmd.OutOrStdout(), v.Short())
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), v.String())
		}
		return nil
	},
}

func init() {
	versionCmd.Flags().BoolP("short", "s", false, "Print the version and abbreviated commit only")
	rootCmd.AddCommand(versionCmd)
}
