package cmd

import (
	"github.com/spf13/cobra"

	"cpacsedit.dev/pkg/cpacsedit/internal/domain"
)

// inspectCmd represents the inspect command.
var inspectCmd = newInspectCmd()

func newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <file.xml>...",
		Short: "Show fuselage length and section counts",
		Long:  "Report the fuselage length and the section, segment and positioning counts of CPACS files.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return workflow.Inspect(cmd.Context(), domain.InspectArgs{Paths: parsePaths(args)})
		},
	}
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}
