package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sync"

	"golang.org/x/sync/errgroup"

	"cpacsedit.dev/pkg/cpacsedit/internal/adapter"
	"cpacsedit.dev/pkg/cpacsedit/internal/cpacs"
	m "cpacsedit.dev/pkg/cpacsedit/internal/model"
)

// RescaleArgs describes one rescale job. An empty Output overwrites Input.
type RescaleArgs struct {
	Input  m.Path
	Output m.Path
	Params m.GeometryParams
	DryRun bool
}

// Rescaler rewrites the fuselage of existing documents to a target length.
type Rescaler interface {
	Rescale(ctx context.Context, args RescaleArgs) (m.RescaleReport, error)
	RescaleAll(ctx context.Context, jobs []RescaleArgs, parallel int) ([]m.RescaleReport, error)
}

type rescaler struct {
	store     adapter.DocumentStore
	extractor adapter.GeometryExtractor
}

// NewRescaler creates a Rescaler backed by the given store and metadata extractor.
func NewRescaler(store adapter.DocumentStore, extractor adapter.GeometryExtractor) Rescaler {
	return &rescaler{
		store:     store,
		extractor: extractor,
	}
}

// scaledField is a scalar read during preflight and written after it.
type scaledField struct {
	path  string
	value float64
}

// ScaleFactor returns target/current, rejecting anything that would not be a
// positive finite factor.
func ScaleFactor(target, current float64) (float64, error) {
	if math.IsNaN(target) || math.IsInf(target, 0) || target <= 0 {
		return 0, fmt.Errorf("%w: target fuselage length %v must be a positive number", m.ErrInvalidInput, target)
	}

	if math.IsNaN(current) || math.IsInf(current, 0) || current <= 0 {
		return 0, fmt.Errorf("%w: current fuselage length %v must be positive", m.ErrInvalidInput, current)
	}

	scale := target / current
	if math.IsInf(scale, 0) || scale == 0 {
		return 0, fmt.Errorf("%w: scale factor %v out of range", m.ErrInvalidInput, scale)
	}

	return scale, nil
}

func (r *rescaler) Rescale(ctx context.Context, args RescaleArgs) (m.RescaleReport, error) {
	report := m.RescaleReport{Input: args.Input, Output: args.Output}
	if report.Output == "" {
		report.Output = args.Input
	}

	target, ok := args.Params.FuselageLength()
	if !ok {
		return report, fmt.Errorf("%w: no fuselage length target", m.ErrInvalidInput)
	}

	if _, err := ScaleFactor(target, 1); err != nil {
		return report, err
	}

	doc, err := r.store.Open(ctx, args.Input)
	if err != nil {
		return report, fmt.Errorf("open %s: %w", args.Input, err)
	}

	defer func() {
		if err := doc.Close(); err != nil {
			slog.Error("Failed to close document", "path", args.Input, "error", err)
		}
	}()

	report.Before, err = r.extractor.Summary(ctx, doc)
	if err != nil {
		return report, fmt.Errorf("extract geometry of %s: %w", args.Input, err)
	}

	report.Scale, err = ScaleFactor(target, report.Before.FuselageLength)
	if err != nil {
		return report, err
	}

	sectionFields, err := collectSectionFields(doc, report.Before.FuselageSectionCount)
	if err != nil {
		return report, fmt.Errorf("read sections of %s: %w", args.Input, err)
	}

	positioningFields, err := collectPositioningFields(doc)
	if err != nil {
		return report, fmt.Errorf("read positionings of %s: %w", args.Input, err)
	}

	if args.DryRun {
		report.Original = doc.Original()
	}

	slog.Info("Rescaling fuselage",
		"input", args.Input,
		"currentLength", report.Before.FuselageLength,
		"targetLength", target,
		"scale", report.Scale,
	)

	if err := applyScale(doc, sectionFields, report.Scale); err != nil {
		return report, err
	}

	if err := applyScale(doc, positioningFields, report.Scale); err != nil {
		return report, err
	}

	report.SectionsUpdated = report.Before.FuselageSectionCount
	report.PositioningsUpdated = len(positioningFields)

	report.After, err = r.extractor.Summary(ctx, doc)
	if err != nil {
		return report, fmt.Errorf("extract rescaled geometry: %w", err)
	}

	if args.DryRun {
		report.Rescaled, err = doc.Bytes()
		return report, err
	}

	if err := r.store.Commit(ctx, doc, report.Output); err != nil {
		return report, err
	}

	report.Committed = true

	return report, nil
}

// collectSectionFields reads scaling x/y/z and translation z of sections 1..count.
func collectSectionFields(doc adapter.Document, count int) ([]scaledField, error) {
	fields := make([]scaledField, 0, count*4)

	for i := 1; i <= count; i++ {
		scaling := cpacs.SectionScaling(i)
		paths := []string{
			scaling + "/x",
			scaling + "/y",
			scaling + "/z",
			cpacs.SectionTranslation(i) + "/z",
		}

		for _, path := range paths {
			value, err := doc.GetDouble(path)
			if err != nil {
				return nil, err
			}

			fields = append(fields, scaledField{path: path, value: value})
		}
	}

	return fields, nil
}

// collectPositioningFields reads the length of every positioning in the document.
func collectPositioningFields(doc adapter.Document) ([]scaledField, error) {
	if !doc.Exists(cpacs.Positionings) {
		return nil, nil
	}

	count, err := doc.CountNamedChildren(cpacs.Positionings, cpacs.PositioningName)
	if err != nil {
		return nil, err
	}

	fields := make([]scaledField, 0, count)

	for i := 1; i <= count; i++ {
		path := cpacs.PositioningLength(i)

		value, err := doc.GetDouble(path)
		if err != nil {
			return nil, err
		}

		fields = append(fields, scaledField{path: path, value: value})
	}

	return fields, nil
}

func applyScale(doc adapter.Document, fields []scaledField, scale float64) error {
	for _, field := range fields {
		if err := doc.UpdateDouble(field.path, field.value*scale, m.RescaleFormat); err != nil {
			return fmt.Errorf("update %s: %w", field.path, err)
		}
	}

	return nil
}

// RescaleAll runs every job on its own document, at most parallel at a time.
// A failing job does not stop the others; their errors are joined.
func (r *rescaler) RescaleAll(ctx context.Context, jobs []RescaleArgs, parallel int) ([]m.RescaleReport, error) {
	if err := checkJobPaths(jobs); err != nil {
		return nil, err
	}

	reports := make([]m.RescaleReport, len(jobs))
	errs := []error{}

	var errorsMutex sync.Mutex

	var group errgroup.Group
	if parallel > 0 {
		group.SetLimit(parallel)
	}

	for i, job := range jobs {
		i, job := i, job
		group.Go(func() error {
			report, err := r.Rescale(ctx, job)
			reports[i] = report

			if err != nil {
				slog.Error("Rescale failed", "input", job.Input, "error", err)

				errorsMutex.Lock()

				errs = append(errs, fmt.Errorf("%s: %w", job.Input, err))

				errorsMutex.Unlock()
			}

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return reports, err
	}

	return reports, errors.Join(errs...)
}

// checkJobPaths rejects batches where two jobs would commit the same file, or
// where one job commits a file another job reads.
func checkJobPaths(jobs []RescaleArgs) error {
	readers := make(map[m.Path]int, len(jobs))
	for i, job := range jobs {
		readers[job.Input] = i
	}

	writers := make(map[m.Path]m.Path, len(jobs))

	for i, job := range jobs {
		if job.DryRun {
			continue
		}

		output := job.Output
		if output == "" {
			output = job.Input
		}

		if other, ok := writers[output]; ok {
			return fmt.Errorf("%w: %s and %s both write %s", m.ErrInvalidInput, other, job.Input, output)
		}

		if reader, ok := readers[output]; ok && reader != i {
			return fmt.Errorf("%w: %s writes %s, which another job reads", m.ErrInvalidInput, job.Input, output)
		}

		writers[output] = job.Input
	}

	return nil
}
