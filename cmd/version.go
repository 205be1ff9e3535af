package cmd

import (
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"
)

const unknownVersion = "unknown"

// buildVersions returns the module version and the Go release it was built with.
func buildVersions() (string, string) {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return unknownVersion, runtime.Version()
	}

	version := info.Main.Version
	if version == "" {
		version = unknownVersion
	}

	return version, info.GoVersion
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show the cpacsedit version",
		Long:  "Displays the cpacsedit build version and the Go release it was built with.",
		Run: func(cmd *cobra.Command, _ []string) {
			version, goVersion := buildVersions()

			cmd.Println("cpacsedit version\t", version)
			cmd.Println("go version\t", goVersion)
		},
	}
}

// versionCmd represents the version command.
var versionCmd = newVersionCmd()

func init() {
	rootCmd.AddCommand(versionCmd)
}
