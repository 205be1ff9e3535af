package adapter

import (
	"context"
	"fmt"
	"math"

	"cpacsedit.dev/pkg/cpacsedit/internal/cpacs"
	m "cpacsedit.dev/pkg/cpacsedit/internal/model"
)

// GeometryExtractor reports the current fuselage geometry of an open document.
type GeometryExtractor interface {
	Summary(ctx context.Context, doc Document) (m.AircraftGeometrySummary, error)
}

// PositioningExtractor derives the fuselage length from the positioning chain.
type PositioningExtractor struct{}

// NewPositioningExtractor constructs a PositioningExtractor.
func NewPositioningExtractor() *PositioningExtractor {
	return &PositioningExtractor{}
}

type positioning struct {
	from   string
	to     string
	offset [3]float64
}

// Summary reads section, segment and positioning counts and the fuselage
// length, measured as the axial extent of the section origins times the
// fuselage's own x scaling.
func (e *PositioningExtractor) Summary(ctx context.Context, doc Document) (m.AircraftGeometrySummary, error) {
	if err := ctx.Err(); err != nil {
		return m.AircraftGeometrySummary{}, err
	}

	summary := m.AircraftGeometrySummary{}

	if name, err := doc.GetText(cpacs.Header + "/name"); err == nil {
		summary.AircraftName = name
	}

	if !doc.Exists(cpacs.Fuselage) {
		return summary, fmt.Errorf("%w: no fuselage at %s", m.ErrDocument, cpacs.Fuselage)
	}

	sectionUIDs, err := readSectionUIDs(doc)
	if err != nil {
		return summary, err
	}

	summary.FuselageSectionCount = len(sectionUIDs)

	summary.SegmentCount, err = countOptional(doc, cpacs.Segments, cpacs.SegmentName)
	if err != nil {
		return summary, err
	}

	positionings, err := readPositionings(doc)
	if err != nil {
		return summary, err
	}

	summary.PositioningCount = len(positionings)

	origins, err := resolveOrigins(sectionUIDs, positionings)
	if err != nil {
		return summary, err
	}

	scaleX, err := fuselageScaleX(doc)
	if err != nil {
		return summary, err
	}

	summary.FuselageLength = axialExtent(origins) * scaleX

	return summary, nil
}

// fuselageScaleX reads the fuselage-level x scaling, 1 when absent.
func fuselageScaleX(doc Document) (float64, error) {
	path := cpacs.FuselageScaling + "/x"
	if !doc.Exists(path) {
		return 1, nil
	}

	x, err := doc.GetDouble(path)
	if err != nil {
		return 0, err
	}

	if math.IsNaN(x) || math.IsInf(x, 0) || x == 0 {
		return 0, fmt.Errorf("%w: %s: fuselage scaling %v is degenerate", m.ErrDocument, path, x)
	}

	return math.Abs(x), nil
}

func readSectionUIDs(doc Document) ([]string, error) {
	count, err := countOptional(doc, cpacs.Sections, cpacs.SectionName)
	if err != nil {
		return nil, err
	}

	if count < 2 {
		return nil, fmt.Errorf("%w: fuselage has %d section(s), need at least 2", m.ErrDocument, count)
	}

	uids := make([]string, 0, count)

	for i := 1; i <= count; i++ {
		uid, err := doc.GetTextAttribute(cpacs.SectionPath(i), cpacs.UIDAttribute)
		if err != nil {
			return nil, err
		}

		uids = append(uids, uid)
	}

	return uids, nil
}

func countOptional(doc Document, parent, name string) (int, error) {
	if !doc.Exists(parent) {
		return 0, nil
	}

	return doc.CountNamedChildren(parent, name)
}

func readPositionings(doc Document) ([]positioning, error) {
	count, err := countOptional(doc, cpacs.Positionings, cpacs.PositioningName)
	if err != nil {
		return nil, err
	}

	positionings := make([]positioning, 0, count)

	for i := 1; i <= count; i++ {
		path := cpacs.PositioningPath(i)

		length, err := doc.GetDouble(path + "/length")
		if err != nil {
			return nil, err
		}

		sweep, err := doc.GetDouble(path + "/sweepAngle")
		if err != nil {
			return nil, err
		}

		dihedral, err := doc.GetDouble(path + "/dihedralAngle")
		if err != nil {
			return nil, err
		}

		to, err := doc.GetText(path + "/toSectionUID")
		if err != nil {
			return nil, err
		}

		from := ""
		if doc.Exists(path + "/fromSectionUID") {
			if from, err = doc.GetText(path + "/fromSectionUID"); err != nil {
				return nil, err
			}
		}

		positionings = append(positionings, positioning{
			from:   from,
			to:     to,
			offset: positioningOffset(length, sweep, dihedral),
		})
	}

	return positionings, nil
}

// positioningOffset converts a CPACS positioning into a translation. A sweep
// of 90 degrees points along the fuselage axis.
func positioningOffset(length, sweepDeg, dihedralDeg float64) [3]float64 {
	sweep := sweepDeg * math.Pi / 180
	dihedral := dihedralDeg * math.Pi / 180

	return [3]float64{
		length * math.Sin(sweep),
		length * math.Cos(dihedral) * math.Cos(sweep),
		length * math.Sin(dihedral) * math.Cos(sweep),
	}
}

// resolveOrigins places every section. Sections without a positioning stay at the origin.
func resolveOrigins(sectionUIDs []string, positionings []positioning) (map[string][3]float64, error) {
	known := make(map[string]bool, len(sectionUIDs))
	for _, uid := range sectionUIDs {
		known[uid] = true
	}

	origins := make(map[string][3]float64, len(sectionUIDs))
	placed := make(map[string]bool, len(sectionUIDs))
	pending := positionings

	for len(pending) > 0 {
		var next []positioning

		for _, p := range pending {
			if !known[p.to] {
				return nil, fmt.Errorf("%w: positioning targets unknown section %q", m.ErrDocument, p.to)
			}

			var base [3]float64

			if p.from != "" {
				if !known[p.from] {
					return nil, fmt.Errorf("%w: positioning starts at unknown section %q", m.ErrDocument, p.from)
				}

				if !placed[p.from] && hasPositioning(pending, p.from) {
					next = append(next, p)
					continue
				}

				base = origins[p.from]
			}

			origins[p.to] = [3]float64{base[0] + p.offset[0], base[1] + p.offset[1], base[2] + p.offset[2]}
			placed[p.to] = true
		}

		if len(next) == len(pending) {
			return nil, fmt.Errorf("%w: positionings form a cycle", m.ErrDocument)
		}

		pending = next
	}

	for _, uid := range sectionUIDs {
		if _, ok := origins[uid]; !ok {
			origins[uid] = [3]float64{}
		}
	}

	return origins, nil
}

func hasPositioning(positionings []positioning, to string) bool {
	for _, p := range positionings {
		if p.to == to {
			return true
		}
	}

	return false
}

func axialExtent(origins map[string][3]float64) float64 {
	lo, hi := math.Inf(1), math.Inf(-1)

	for _, o := range origins {
		lo = math.Min(lo, o[0])
		hi = math.Max(hi, o[0])
	}

	if math.IsInf(lo, 0) {
		return 0
	}

	return hi - lo
}
