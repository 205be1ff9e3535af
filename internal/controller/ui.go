// Package controller provides output adapters for displaying CPACS editing results.
package controller

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	m "cpacsedit.dev/pkg/cpacsedit/internal/model"
)

// UI defines how command results are shown to the user.
// Implementations can use different output methods (plain text, styled, etc).
type UI interface {
	DisplayRescale(ctx context.Context, reports []m.RescaleReport) error
	DisplayDiff(ctx context.Context, path m.Path, diff string) error
	DisplayGenerate(ctx context.Context, report m.GenerateReport) error
	DisplaySummary(ctx context.Context, path m.Path, summary m.AircraftGeometrySummary) error
	DisplayValidation(ctx context.Context, path m.Path, report m.ValidationReport) error
}

// NewUI returns a styled UI for terminals and a plain one otherwise.
func NewUI(cmd *cobra.Command, isTTY bool) UI {
	if isTTY {
		return NewStyledUI(cmd)
	}

	return NewSimpleUI(cmd)
}

// IsTTY reports whether f is attached to a terminal.
func IsTTY(f *os.File) bool {
	if f == nil {
		return false
	}

	return term.IsTerminal(int(f.Fd()))
}
