package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"cpacsedit.dev/pkg/cpacsedit/internal/domain"
	m "cpacsedit.dev/pkg/cpacsedit/internal/model"
)

const generateLongDescription = `Generate a CPACS file holding one fuselage.

The fuselage has four sections on a shared circular profile, joined by a nose,
a main and a tail segment. The nose and tail take the given fractions of the
total length. The file is written to <output-dir>/<aircraft-name>.xml unless
--output is set.`

// generateCmd represents the generate command.
var generateCmd = newGenerateCmd()

type generateOptions struct {
	length float64
	output string
}

func newGenerateCmd() *cobra.Command {
	opts := &generateOptions{}

	cmd := &cobra.Command{
		Use:   "generate <aircraft-name>",
		Short: "Generate a CPACS file with a new fuselage",
		Long:  generateLongDescription,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return workflow.Generate(cmd.Context(), domain.GenerateArgs{
				AircraftName: args[0],
				Layout: m.FuselageLayout{
					TotalLength:  opts.length,
					NoseFraction: viper.GetFloat64(generateNoseKey),
					TailFraction: viper.GetFloat64(generateTailKey),
				},
				OutputDir:         m.Path(viper.GetString(generateOutputDirKey)),
				Output:            m.Path(opts.output),
				Validate:          viper.GetBool(generateValidateKey),
				OriginPositioning: viper.GetBool(generateOriginPosKey),
				Profile:           domain.ProfileMode(viper.GetString(generateProfileKey)),
				Creator:           viper.GetString(generateCreatorKey),
			})
		},
	}

	configureGenerateFlags(cmd, opts)

	return cmd
}

func init() {
	rootCmd.AddCommand(generateCmd)
}

func configureGenerateFlags(cmd *cobra.Command, opts *generateOptions) {
	flags := cmd.Flags()

	flags.Float64VarP(&opts.length, lengthFlagName, "l", 0, "total fuselage length")
	cobra.CheckErr(cmd.MarkFlagRequired(lengthFlagName))
	flags.StringVarP(&opts.output, outputFlagName, "o", "", "output file (overrides --output-dir)")

	flags.Float64(noseFlagName, m.DefaultNoseFraction, "fraction of the length taken by the nose")
	bindFlagToConfig(flags.Lookup(noseFlagName), generateNoseKey)
	flags.Float64(tailFlagName, m.DefaultTailFraction, "fraction of the length taken by the tail")
	bindFlagToConfig(flags.Lookup(tailFlagName), generateTailKey)
	flags.String(outputDirFlagName, defaultGenerateDir, "directory for generated files")
	bindFlagToConfig(flags.Lookup(outputDirFlagName), generateOutputDirKey)
	flags.Bool(validateFlagName, defaultValidate, "run structural validation before writing (findings are warnings)")
	bindFlagToConfig(flags.Lookup(validateFlagName), generateValidateKey)
	flags.Bool(originPositioningName, defaultOriginPos, "emit a zero-length positioning placing the first section at the origin")
	bindFlagToConfig(flags.Lookup(originPositioningName), generateOriginPosKey)
	flags.String(profileFlagName, string(domain.ProfileAnalytic), "circle profile source: analytic or legacy")
	bindFlagToConfig(flags.Lookup(profileFlagName), generateProfileKey)
	flags.String(creatorFlagName, domain.DefaultCreator, "creator written into the header")
	bindFlagToConfig(flags.Lookup(creatorFlagName), generateCreatorKey)
}
