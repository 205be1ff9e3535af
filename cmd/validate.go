package cmd

import (
	"github.com/spf13/cobra"

	"cpacsedit.dev/pkg/cpacsedit/internal/domain"
	m "cpacsedit.dev/pkg/cpacsedit/internal/model"
)

// validateCmd represents the validate command.
var validateCmd = newValidateCmd()

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file.xml>",
		Short: "Check a CPACS file for structural problems",
		Long: `Check uID uniqueness, uID references, header fields and the segment chain of
every fuselage. Exits non-zero when findings are reported.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return workflow.Validate(cmd.Context(), domain.ValidateArgs{Path: m.Path(args[0])})
		},
	}
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
