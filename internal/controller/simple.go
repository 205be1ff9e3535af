package controller

import (
	"bytes"
	"context"
	"fmt"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	m "cpacsedit.dev/pkg/cpacsedit/internal/model"
)

// SimpleUI implements UI using the cobra command's output stream.
type SimpleUI struct {
	cmd   *cobra.Command
	title func(string) string
	warn  func(string) string
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	plain := func(s string) string { return s }

	return &SimpleUI{cmd: cmd, title: plain, warn: plain}
}

// DisplayRescale prints one row per rescale job.
func (s *SimpleUI) DisplayRescale(ctx context.Context, reports []m.RescaleReport) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.printf("%s\n", s.title("Rescaled fuselages"))

	table := s.table([]string{"Input", "Output", "Length", "New length", "Scale", "Fields"})

	for _, r := range reports {
		output := string(r.Output)
		if !r.Committed {
			output = "(not written)"
		}

		table.append(
			string(r.Input),
			output,
			formatLength(r.Before.FuselageLength),
			formatLength(r.After.FuselageLength),
			strconv.FormatFloat(r.Scale, 'f', 6, 64),
			strconv.Itoa(r.FieldsUpdated()),
		)
	}

	s.printf("%s", table.render())

	return nil
}

// DisplayDiff prints the unified diff of a dry run.
func (s *SimpleUI) DisplayDiff(ctx context.Context, path m.Path, diff string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if diff == "" {
		s.printf("%s: no changes\n", path)
		return nil
	}

	s.printf("%s\n%s", s.title(fmt.Sprintf("Dry run: %s", path)), diff)

	return nil
}

// DisplayGenerate prints where the document went and what it holds.
func (s *SimpleUI) DisplayGenerate(ctx context.Context, report m.GenerateReport) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.printf("%s\n", s.title(fmt.Sprintf("Generated %s", report.AircraftName)))

	lengths := report.Layout.SegmentLengths()
	table := s.table([]string{"Item", "Value"})
	table.append("Output", string(report.Output))
	table.append("Total length", formatLength(report.Layout.TotalLength))
	table.append("Nose / main / tail", fmt.Sprintf("%s / %s / %s",
		formatLength(lengths[0]), formatLength(lengths[1]), formatLength(lengths[2])))
	table.append("Sections", strconv.Itoa(report.Sections))
	table.append("Segments", strconv.Itoa(report.Segments))
	table.append("Positionings", strconv.Itoa(report.Positionings))
	table.append("Profile points", strconv.Itoa(report.ProfilePoints))
	table.append("UIDs", strconv.Itoa(len(report.UIDs)))
	s.printf("%s", table.render())

	if report.Validation != nil {
		return s.DisplayValidation(ctx, report.Output, *report.Validation)
	}

	return nil
}

// DisplaySummary prints the geometry summary of a document.
func (s *SimpleUI) DisplaySummary(ctx context.Context, path m.Path, summary m.AircraftGeometrySummary) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.printf("%s\n", s.title(string(path)))

	table := s.table([]string{"Item", "Value"})
	table.append("Aircraft", summary.AircraftName)
	table.append("Fuselage length", formatLength(summary.FuselageLength))
	table.append("Sections", strconv.Itoa(summary.FuselageSectionCount))
	table.append("Segments", strconv.Itoa(summary.SegmentCount))
	table.append("Positionings", strconv.Itoa(summary.PositioningCount))
	s.printf("%s", table.render())

	return nil
}

// DisplayValidation prints validation findings, if any.
func (s *SimpleUI) DisplayValidation(ctx context.Context, path m.Path, report m.ValidationReport) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if report.OK() {
		s.printf("%s: %s validation passed\n", path, report.Validator)
		return nil
	}

	s.printf("%s\n", s.warn(fmt.Sprintf("%s: %d %s validation finding(s)", path, len(report.Diagnostics), report.Validator)))

	for _, d := range report.Diagnostics {
		s.printf("  - %s\n", d)
	}

	return nil
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}

func formatLength(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}

type textTable struct {
	buffer bytes.Buffer
	writer *tablewriter.Table
}

func (s *SimpleUI) table(header []string) *textTable {
	t := &textTable{}
	t.writer = tablewriter.NewWriter(&t.buffer)
	t.writer.SetHeader(header)
	t.writer.SetBorder(false)
	t.writer.SetCenterSeparator("")
	t.writer.SetAutoWrapText(false)
	t.writer.SetAlignment(tablewriter.ALIGN_LEFT)

	return t
}

func (t *textTable) append(row ...string) {
	t.writer.Append(row)
}

func (t *textTable) render() string {
	t.writer.Render()
	return t.buffer.String()
}
