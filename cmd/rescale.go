package cmd

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"cpacsedit.dev/pkg/cpacsedit/internal/domain"
	m "cpacsedit.dev/pkg/cpacsedit/internal/model"
)

const rescaleLongDescription = `Rescale the fuselage of one or more CPACS files to a target length.

Every section scale factor, section z-translation and positioning length is
multiplied by target/current. Without --output or --output-dir the input file
is overwritten. Several inputs are processed independently, --parallel at a time.`

// rescaleCmd represents the rescale command.
var rescaleCmd = newRescaleCmd()

type rescaleOptions struct {
	length    float64
	params    string
	output    string
	outputDir string
	parallel  int
	dryRun    bool
}

func newRescaleCmd() *cobra.Command {
	opts := &rescaleOptions{}

	cmd := &cobra.Command{
		Use:   "rescale <input.xml>...",
		Short: "Rescale the fuselage length of CPACS files",
		Long:  rescaleLongDescription,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := resolveGeometryParams(cmd.Context(), opts, cmd.Flags().Changed(lengthFlagName))
			if err != nil {
				return err
			}

			jobs, err := buildRescaleJobs(parsePaths(args), params, opts.output, viper.GetString(rescaleOutputDirKey), opts.dryRun)
			if err != nil {
				return err
			}

			return workflow.Rescale(cmd.Context(), domain.RescaleBatchArgs{
				Jobs:     jobs,
				Parallel: viper.GetInt(rescaleParallelKey),
			})
		},
	}

	configureRescaleFlags(cmd, opts)

	return cmd
}

func init() {
	rootCmd.AddCommand(rescaleCmd)
}

func configureRescaleFlags(cmd *cobra.Command, opts *rescaleOptions) {
	cmd.Flags().Float64VarP(&opts.length, lengthFlagName, "l", 0, "target fuselage length")
	cmd.Flags().StringVarP(&opts.params, paramsFlagName, "P", "", "YAML file with geometry targets (fuselageLengthTarget)")
	cmd.Flags().StringVarP(&opts.output, outputFlagName, "o", "", "output file (single input only)")
	cmd.Flags().StringVar(&opts.outputDir, outputDirFlagName, "", "write outputs into this directory, keeping file names")
	bindFlagToConfig(cmd.Flags().Lookup(outputDirFlagName), rescaleOutputDirKey)
	cmd.Flags().IntVarP(&opts.parallel, parallelFlagName, "p", defaultRescaleWorkers, "number of files rescaled concurrently")
	bindFlagToConfig(cmd.Flags().Lookup(parallelFlagName), rescaleParallelKey)
	cmd.Flags().BoolVar(&opts.dryRun, dryRunFlagName, false, "print a diff instead of writing")
}

// resolveGeometryParams merges the params file with --length, which wins when set.
func resolveGeometryParams(ctx context.Context, opts *rescaleOptions, lengthSet bool) (m.GeometryParams, error) {
	params := m.GeometryParams{}

	if opts.params != "" {
		loaded, err := paramsLoader.Load(ctx, m.Path(opts.params))
		if err != nil {
			return params, err
		}

		params = loaded
	}

	if lengthSet {
		params = m.WithFuselageLength(opts.length)
	}

	if _, ok := params.FuselageLength(); !ok {
		return params, fmt.Errorf("%w: set --%s or --%s", m.ErrInvalidInput, lengthFlagName, paramsFlagName)
	}

	return params, nil
}

func buildRescaleJobs(inputs []m.Path, params m.GeometryParams, output, outputDir string, dryRun bool) ([]domain.RescaleArgs, error) {
	if output != "" && len(inputs) > 1 {
		return nil, fmt.Errorf("%w: --%s takes a single input, use --%s", m.ErrInvalidInput, outputFlagName, outputDirFlagName)
	}

	jobs := make([]domain.RescaleArgs, 0, len(inputs))

	for _, input := range inputs {
		job := domain.RescaleArgs{
			Input:  input,
			Output: m.Path(output),
			Params: params,
			DryRun: dryRun,
		}

		if output == "" && outputDir != "" {
			job.Output = fileAdapter.JoinPath(outputDir, filepath.Base(string(input)))
		}

		jobs = append(jobs, job)
	}

	return jobs, nil
}
