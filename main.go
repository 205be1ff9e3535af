// Package main is the entry point for the cpacsedit CLI.
package main

import "cpacsedit.dev/pkg/cpacsedit/cmd"

func main() {
	cmd.Execute()
}
