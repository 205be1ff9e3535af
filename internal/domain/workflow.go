// Package domain contains the CPACS fuselage rescaling and generation logic.
package domain

import (
	"context"
	"fmt"
	"log/slog"

	"cpacsedit.dev/pkg/cpacsedit/internal/adapter"
	"cpacsedit.dev/pkg/cpacsedit/internal/controller"
	m "cpacsedit.dev/pkg/cpacsedit/internal/model"
	"cpacsedit.dev/pkg/cpacsedit/pkg"
)

// RescaleBatchArgs contains the rescale jobs of one command invocation.
type RescaleBatchArgs struct {
	Jobs     []RescaleArgs
	Parallel int
}

// InspectArgs lists documents whose geometry summary should be shown.
type InspectArgs struct {
	Paths []m.Path
}

// ValidateArgs names a document to check.
type ValidateArgs struct {
	Path m.Path
}

// Workflow ties the editors to the UI for the command-line surface.
type Workflow interface {
	Rescale(ctx context.Context, args RescaleBatchArgs) error
	Generate(ctx context.Context, args GenerateArgs) error
	Inspect(ctx context.Context, args InspectArgs) error
	Validate(ctx context.Context, args ValidateArgs) error
}

type workflow struct {
	store     adapter.DocumentStore
	extractor adapter.GeometryExtractor
	validator adapter.SchemaValidator
	rescaler  Rescaler
	generator Generator
	ui        controller.UI
}

// NewWorkflow creates a new Workflow instance with the provided dependencies.
func NewWorkflow(
	store adapter.DocumentStore,
	extractor adapter.GeometryExtractor,
	validator adapter.SchemaValidator,
	rescaler Rescaler,
	generator Generator,
	ui controller.UI,
) Workflow {
	return &workflow{
		store:     store,
		extractor: extractor,
		validator: validator,
		rescaler:  rescaler,
		generator: generator,
		ui:        ui,
	}
}

func (w *workflow) Rescale(ctx context.Context, args RescaleBatchArgs) error {
	if len(args.Jobs) == 0 {
		return fmt.Errorf("%w: no input documents", m.ErrInvalidInput)
	}

	reports, err := w.rescaler.RescaleAll(ctx, args.Jobs, args.Parallel)

	for i, report := range reports {
		if !args.Jobs[i].DryRun || report.Rescaled == nil {
			continue
		}

		diff, diffErr := pkg.UnifiedDiff(report.Original, report.Rescaled, string(report.Input), string(report.Output))
		if diffErr != nil {
			slog.Error("Failed to render diff", "input", report.Input, "error", diffErr)
			continue
		}

		if uiErr := w.ui.DisplayDiff(ctx, report.Input, diff); uiErr != nil {
			return uiErr
		}
	}

	if reports != nil {
		if uiErr := w.ui.DisplayRescale(ctx, reports); uiErr != nil {
			return uiErr
		}
	}

	if err != nil {
		return fmt.Errorf("rescale: %w", err)
	}

	return nil
}

func (w *workflow) Generate(ctx context.Context, args GenerateArgs) error {
	report, err := w.generator.Generate(ctx, args)
	if err != nil {
		return fmt.Errorf("generate: %w", err)
	}

	return w.ui.DisplayGenerate(ctx, report)
}

func (w *workflow) Inspect(ctx context.Context, args InspectArgs) error {
	if len(args.Paths) == 0 {
		return fmt.Errorf("%w: no input documents", m.ErrInvalidInput)
	}

	for _, path := range args.Paths {
		summary, err := w.summarize(ctx, path)
		if err != nil {
			return err
		}

		if err := w.ui.DisplaySummary(ctx, path, summary); err != nil {
			return err
		}
	}

	return nil
}

func (w *workflow) summarize(ctx context.Context, path m.Path) (m.AircraftGeometrySummary, error) {
	doc, err := w.store.Open(ctx, path)
	if err != nil {
		return m.AircraftGeometrySummary{}, fmt.Errorf("open %s: %w", path, err)
	}

	defer func() { _ = doc.Close() }()

	summary, err := w.extractor.Summary(ctx, doc)
	if err != nil {
		return summary, fmt.Errorf("inspect %s: %w", path, err)
	}

	return summary, nil
}

func (w *workflow) Validate(ctx context.Context, args ValidateArgs) error {
	doc, err := w.store.Open(ctx, args.Path)
	if err != nil {
		return fmt.Errorf("open %s: %w", args.Path, err)
	}

	defer func() { _ = doc.Close() }()

	report, err := w.validator.Validate(ctx, doc)
	if err != nil {
		return fmt.Errorf("validate %s: %w", args.Path, err)
	}

	if err := w.ui.DisplayValidation(ctx, args.Path, report); err != nil {
		return err
	}

	if !report.OK() {
		return fmt.Errorf("%w: %s has %d validation finding(s)", m.ErrDocument, args.Path, len(report.Diagnostics))
	}

	return nil
}
