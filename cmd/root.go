// Package cmd provides the root command and CLI setup for cpacsedit.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"cpacsedit.dev/pkg/cpacsedit/internal/adapter"
	"cpacsedit.dev/pkg/cpacsedit/internal/controller"
	"cpacsedit.dev/pkg/cpacsedit/internal/domain"
	m "cpacsedit.dev/pkg/cpacsedit/internal/model"
)

var fileAdapter adapter.FileAdapter
var documentStore adapter.DocumentStore
var extractor adapter.GeometryExtractor
var validator adapter.SchemaValidator
var paramsLoader adapter.ParamsLoader
var rescaler domain.Rescaler
var generator domain.Generator
var workflow domain.Workflow
var ui controller.UI

// logFileFlag overrides the configured log file.
var logFileFlag string

// verboseFlag forces debug logging.
var verboseFlag bool

func init() {
	configureRootFlags(rootCmd)

	// Initialize shared dependencies.
	ui = controller.NewUI(rootCmd, controller.IsTTY(os.Stdout))
	fileAdapter = adapter.NewLocalFileAdapter()
	documentStore = adapter.NewLocalDocumentStore(fileAdapter)
	extractor = adapter.NewPositioningExtractor()
	validator = adapter.NewStructuralValidator()
	paramsLoader = adapter.NewYAMLParamsLoader(fileAdapter)
	rescaler = domain.NewRescaler(documentStore, extractor)
	generator = domain.NewGenerator(documentStore, validator)
	workflow = domain.NewWorkflow(
		documentStore,
		extractor,
		validator,
		rescaler,
		generator,
		ui,
	)
}

const rootLongDescription = `cpacsedit edits the fuselage of CPACS aircraft geometry files.

It rescales an existing fuselage to a new length by adjusting the section
scale factors and positioning lengths, and it generates minimal fuselage
definitions (nose, main and tail sections on a shared circular profile).`

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:           "cpacsedit",
		Short:         "CPACS fuselage editing tool",
		Long:          rootLongDescription,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			configureLogger(logFileFlag, viper.GetBool(logVerboseKey))
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&logFileFlag, logFileFlagName, "", "log file (default from config "+logFilenameKey+")")
	cmd.PersistentFlags().BoolVarP(&verboseFlag, verboseFlagName, "v", defaultLogVerbose, "log at debug level")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(verboseFlagName), logVerboseKey)
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func parsePaths(args []string) []m.Path {
	paths := make([]m.Path, 0, len(args))
	for _, arg := range args {
		paths = append(paths, m.Path(arg))
	}

	return paths
}
