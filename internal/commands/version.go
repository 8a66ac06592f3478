package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"snmpagent/internal/ui"
)

func newVersionCmd(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), ui.RenderBanner(version))
		},
	}
}
