package adapter

import (
	"context"
	"strings"

	"cpacsedit.dev/pkg/cpacsedit/internal/cpacs"
	m "cpacsedit.dev/pkg/cpacsedit/internal/model"
)

// SchemaValidator checks a document against the CPACS rules it knows about.
// Findings are reported in the ValidationReport; the error is reserved for
// failures to run the check at all.
type SchemaValidator interface {
	Validate(ctx context.Context, doc Document) (m.ValidationReport, error)
}

// StructuralValidator enforces the structural CPACS rules the editors rely on:
// unique uIDs, resolvable uID references, required header fields and a
// segment chain matching the sections of every fuselage.
type StructuralValidator struct{}

// NewStructuralValidator constructs a StructuralValidator.
func NewStructuralValidator() *StructuralValidator {
	return &StructuralValidator{}
}

var requiredHeaderFields = []string{"name", "creator", "version", "cpacsVersion"}

// Validate runs every structural check and collects the findings.
func (v *StructuralValidator) Validate(ctx context.Context, doc Document) (m.ValidationReport, error) {
	report := m.ValidationReport{Validator: "structural"}

	if err := ctx.Err(); err != nil {
		return report, err
	}

	if !doc.Exists(cpacs.Root) {
		report.Add("", "root element is not %q", cpacs.RootName)
		return report, nil
	}

	for _, field := range requiredHeaderFields {
		path := cpacs.Child(cpacs.Header, field)
		if !doc.Exists(path) {
			report.Add(path, "missing header field")
		}
	}

	if err := v.checkReferences(doc, &report); err != nil {
		return report, err
	}

	if err := v.checkFuselages(doc, &report); err != nil {
		return report, err
	}

	return report, nil
}

type reference struct {
	path  string
	value string
}

func (v *StructuralValidator) checkReferences(doc Document, report *m.ValidationReport) error {
	uids := make(map[string]string)

	var refs []reference

	err := doc.Walk(func(node Node) error {
		if uid, ok := node.Attrs[cpacs.UIDAttribute]; ok {
			if uid == "" {
				report.Add(node.Path, "empty uID")
			} else if first, dup := uids[uid]; dup {
				report.Add(node.Path, "uID %q already used at %s", uid, first)
			} else {
				uids[uid] = node.Path
			}
		}

		if node.Leaf && isReferenceElement(node.Name) {
			refs = append(refs, reference{path: node.Path, value: node.Text})
		}

		return nil
	})
	if err != nil {
		return err
	}

	for _, ref := range refs {
		if ref.value == "" {
			report.Add(ref.path, "empty uID reference")
			continue
		}

		if _, ok := uids[ref.value]; !ok {
			report.Add(ref.path, "reference %q does not resolve", ref.value)
		}
	}

	return nil
}

// isReferenceElement matches CPACS reference elements such as profileUID or toSectionUID.
func isReferenceElement(name string) bool {
	return strings.HasSuffix(name, "UID") && name != cpacs.UIDAttribute
}

func (v *StructuralValidator) checkFuselages(doc Document, report *m.ValidationReport) error {
	if !doc.Exists(cpacs.Fuselages) {
		return nil
	}

	count, err := doc.CountNamedChildren(cpacs.Fuselages, cpacs.FuselageName)
	if err != nil {
		return err
	}

	for i := 1; i <= count; i++ {
		fuselage := cpacs.Indexed(cpacs.Fuselages, cpacs.FuselageName, i)

		sections, err := countOptional(doc, fuselage+"/sections", cpacs.SectionName)
		if err != nil {
			return err
		}

		segments, err := countOptional(doc, fuselage+"/segments", cpacs.SegmentName)
		if err != nil {
			return err
		}

		if sections < 2 {
			report.Add(fuselage, "fuselage has %d section(s), need at least 2", sections)
			continue
		}

		if segments != sections-1 {
			report.Add(fuselage, "fuselage has %d segment(s) for %d sections", segments, sections)
		}
	}

	return nil
}
