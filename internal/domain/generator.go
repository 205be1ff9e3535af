package domain

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"path/filepath"
	"strings"
	"time"

	"cpacsedit.dev/pkg/cpacsedit/internal/adapter"
	"cpacsedit.dev/pkg/cpacsedit/internal/cpacs"
	m "cpacsedit.dev/pkg/cpacsedit/internal/model"
)

// Fixed header metadata of generated documents.
const (
	DefaultCreator     = "cpacsedit"
	HeaderVersion      = "N/A"
	HeaderDescription  = "Generated fuselage"
	HeaderCPACSVersion = "3.2"
	fuselageSections   = 4
	timestampLayout    = "2006-01-02T15:04:05"
)

// GenerateArgs describes a fuselage to generate. Output wins over OutputDir;
// otherwise the document is written to OutputDir/AircraftName.xml.
type GenerateArgs struct {
	AircraftName      string
	Layout            m.FuselageLayout
	OutputDir         m.Path
	Output            m.Path
	Validate          bool
	OriginPositioning bool
	Profile           ProfileMode
	Creator           string
}

// Generator builds new CPACS documents holding one fuselage.
type Generator interface {
	Generate(ctx context.Context, args GenerateArgs) (m.GenerateReport, error)
}

type generator struct {
	store     adapter.DocumentStore
	validator adapter.SchemaValidator
	now       func() time.Time
}

// NewGenerator creates a Generator. validator may be nil when validation is never requested.
func NewGenerator(store adapter.DocumentStore, validator adapter.SchemaValidator) Generator {
	return &generator{
		store:     store,
		validator: validator,
		now:       time.Now,
	}
}

// ValidateLayout checks the generator preconditions.
func ValidateLayout(layout m.FuselageLayout) error {
	finite := func(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

	if !finite(layout.TotalLength) || layout.TotalLength <= 0 {
		return fmt.Errorf("%w: total length %v must be positive", m.ErrInvalidInput, layout.TotalLength)
	}

	if !finite(layout.NoseFraction) || layout.NoseFraction < 0 {
		return fmt.Errorf("%w: nose fraction %v must not be negative", m.ErrInvalidInput, layout.NoseFraction)
	}

	if !finite(layout.TailFraction) || layout.TailFraction < 0 {
		return fmt.Errorf("%w: tail fraction %v must not be negative", m.ErrInvalidInput, layout.TailFraction)
	}

	if layout.NoseFraction+layout.TailFraction >= 1 {
		return fmt.Errorf("%w: nose fraction %v + tail fraction %v leaves no main section",
			m.ErrInvalidInput, layout.NoseFraction, layout.TailFraction)
	}

	return nil
}

func validateAircraftName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: empty aircraft name", m.ErrInvalidInput)
	}

	if strings.ContainsAny(name, `/\ `) || name == "." || name == ".." {
		return fmt.Errorf("%w: aircraft name %q must be a plain file name without spaces", m.ErrInvalidInput, name)
	}

	return nil
}

func (g *generator) outputPath(args GenerateArgs) m.Path {
	if args.Output != "" {
		return args.Output
	}

	return m.Path(filepath.Join(string(args.OutputDir), args.AircraftName+".xml"))
}

func (g *generator) Generate(ctx context.Context, args GenerateArgs) (m.GenerateReport, error) {
	report := m.GenerateReport{AircraftName: args.AircraftName, Layout: args.Layout}

	if err := validateAircraftName(args.AircraftName); err != nil {
		return report, err
	}

	if err := ValidateLayout(args.Layout); err != nil {
		return report, err
	}

	if args.Profile != "" && args.Profile != ProfileAnalytic && args.Profile != ProfileLegacy {
		return report, fmt.Errorf("%w: unknown profile mode %q", m.ErrInvalidInput, args.Profile)
	}

	doc, err := g.store.Create(ctx, cpacs.RootName)
	if err != nil {
		return report, err
	}

	defer func() {
		if err := doc.Close(); err != nil {
			slog.Error("Failed to close document", "aircraft", args.AircraftName, "error", err)
		}
	}()

	uids := NewUIDRegistry()
	if err := g.build(doc, uids, args, &report); err != nil {
		return report, fmt.Errorf("build %s: %w", args.AircraftName, err)
	}

	report.UIDs = uids.Minted()

	if args.Validate {
		report.Validation = g.validate(ctx, doc, args.AircraftName)
	}

	report.Output = g.outputPath(args)
	if err := g.store.Commit(ctx, doc, report.Output); err != nil {
		return report, err
	}

	slog.Info("Generated fuselage",
		"aircraft", args.AircraftName,
		"output", report.Output,
		"length", args.Layout.TotalLength,
		"sections", report.Sections,
		"uids", uids.Len(),
	)

	return report, nil
}

// validate runs the schema check. Findings are diagnostics only.
func (g *generator) validate(ctx context.Context, doc adapter.Document, name string) *m.ValidationReport {
	if g.validator == nil {
		slog.Warn("Validation requested but no validator configured", "aircraft", name)
		return nil
	}

	result, err := g.validator.Validate(ctx, doc)
	if err != nil {
		slog.Warn("Schema validation could not run", "aircraft", name, "error", err)
		result.Add("", "validation did not run: %v", err)

		return &result
	}

	for _, d := range result.Diagnostics {
		slog.Warn("Schema validation finding", "aircraft", name, "path", d.Path, "message", d.Message)
	}

	return &result
}

func (g *generator) build(doc adapter.Document, uids *UIDRegistry, args GenerateArgs, report *m.GenerateReport) error {
	b := newTreeBuilder(doc, uids)
	name := args.AircraftName

	creator := args.Creator
	if creator == "" {
		creator = DefaultCreator
	}

	b.namespace(cpacs.Root, cpacs.XSIPrefix, cpacs.XSINamespace)
	b.attr(cpacs.Root, cpacs.SchemaLocationKey, cpacs.SchemaLocation)

	header := b.element(cpacs.Root, "header")
	b.text(header, "name", name)
	b.text(header, "description", HeaderDescription)
	b.text(header, "creator", creator)
	b.text(header, "timestamp", g.now().UTC().Format(timestampLayout))
	b.text(header, "version", HeaderVersion)
	b.text(header, "cpacsVersion", HeaderCPACSVersion)

	vehicles := b.element(cpacs.Root, "vehicles")
	aircraft := b.element(vehicles, "aircraft")

	model := b.element(aircraft, "model")
	b.uid(model, cpacs.ModelUID(name))
	b.text(model, "name", name)
	b.text(model, "description", "Generated fuselage")

	reference := b.element(model, "reference")
	b.number(reference, "area", 1, m.Fixed(6))
	b.number(reference, "length", 1, m.Fixed(6))
	point := b.xyz(reference, "point", 0, 0, 0, m.Fixed(6))
	b.uid(point, cpacs.ReferencePointUID(name))

	fuselages := b.element(model, "fuselages")
	fuselage := b.element(fuselages, cpacs.FuselageName)
	fuselageUID := b.uid(fuselage, cpacs.FuselageUID(name))
	b.text(fuselage, "name", "fuselage_1")
	b.text(fuselage, "description", "Generic fuselage")
	b.identityTransformation(fuselage, fuselageUID)

	if b.err != nil {
		return b.err
	}

	profiles := b.element(vehicles, "profiles")
	fuselageProfiles := b.element(profiles, "fuselageProfiles")
	profileUID, points := g.buildProfile(b, fuselageProfiles, name, args.Profile)

	if b.err != nil {
		return b.err
	}

	g.buildFuselage(b, name, profileUID, args.Layout, args.OriginPositioning, report)
	report.ProfilePoints = points

	return b.err
}

func (g *generator) buildProfile(b *treeBuilder, parent, name string, mode ProfileMode) (string, int) {
	profile := b.element(parent, "fuselageProfile")
	uid := b.uid(profile, cpacs.ProfileUID(name))
	b.text(profile, "name", "Circle")
	b.text(profile, "description", "Profile build up from set of points on circle where dimensions are 1 ... -1")

	pointList := b.element(profile, "pointList")
	x, y, z := CircleProfile(mode)
	b.vector(pointList, "x", x, m.General(6))
	b.vector(pointList, "y", y, m.General(6))
	b.vector(pointList, "z", z, m.General(6))

	return uid, len(x)
}

// buildFuselage lays out sections, positionings and segments in CPACS order:
// section1 -seg1(nose)-> section2 -seg2(main)-> section3 -seg3(tail)-> section4.
func (g *generator) buildFuselage(b *treeBuilder, name, profileUID string, layout m.FuselageLayout, originPositioning bool, report *m.GenerateReport) {
	sections := b.element(cpacs.Fuselage, "sections")
	sectionUIDs := make([]string, 0, fuselageSections)

	for i := 1; i <= fuselageSections; i++ {
		sectionUIDs = append(sectionUIDs, g.buildSection(b, sections, name, profileUID, i))
	}

	positionings := b.element(cpacs.Fuselage, "positionings")
	lengths := layout.SegmentLengths()
	ordinal := 0

	if originPositioning {
		ordinal++
		g.buildPositioning(b, positionings, name, ordinal, 0, "", sectionUIDs[0])
	}

	for i, length := range lengths {
		ordinal++
		g.buildPositioning(b, positionings, name, ordinal, length, sectionUIDs[i], sectionUIDs[i+1])
	}

	segments := b.element(cpacs.Fuselage, "segments")
	for i := 1; i < fuselageSections; i++ {
		g.buildSegment(b, segments, name, i, cpacs.SectionElementUID(name, i), cpacs.SectionElementUID(name, i+1))
	}

	report.Sections = fuselageSections
	report.Segments = fuselageSections - 1
	report.Positionings = ordinal
}

func (g *generator) buildSection(b *treeBuilder, parent, name, profileUID string, i int) string {
	section := b.indexed(parent, cpacs.SectionName, i)
	uid := b.uid(section, cpacs.SectionUID(name, i))
	b.text(section, "name", fmt.Sprintf("%s_section%d", name, i))
	b.identityTransformation(section, uid)

	elements := b.element(section, "elements")
	element := b.element(elements, "element")
	elementUID := b.uid(element, cpacs.SectionElementUID(name, i))
	b.text(element, "name", fmt.Sprintf("%s_section%d_element1", name, i))
	b.text(element, "profileUID", profileUID)
	b.identityTransformation(element, elementUID)

	return uid
}

// buildPositioning places to relative to from. An empty from places it relative to the origin.
func (g *generator) buildPositioning(b *treeBuilder, parent, name string, i int, length float64, from, to string) {
	positioning := b.indexed(parent, cpacs.PositioningName, i)
	b.uid(positioning, cpacs.PositioningUID(name, i))
	b.text(positioning, "name", fmt.Sprintf("%s_positioning%d", name, i))
	b.number(positioning, "length", length, m.RescaleFormat)
	b.number(positioning, "sweepAngle", 90, m.General(6))
	b.number(positioning, "dihedralAngle", 0, m.General(6))

	if from != "" {
		b.text(positioning, "fromSectionUID", from)
	}

	b.text(positioning, "toSectionUID", to)
}

func (g *generator) buildSegment(b *treeBuilder, parent, name string, i int, from, to string) {
	segment := b.indexed(parent, cpacs.SegmentName, i)
	b.uid(segment, cpacs.SegmentUID(name, i))
	b.text(segment, "name", fmt.Sprintf("%s_segment%d", name, i))
	b.text(segment, "fromElementUID", from)
	b.text(segment, "toElementUID", to)
}
