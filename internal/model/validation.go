package model

import "fmt"

// Diagnostic is a single validation finding.
type Diagnostic struct {
	Path    string
	Message string
}

func (d Diagnostic) String() string {
	if d.Path == "" {
		return d.Message
	}

	return fmt.Sprintf("%s: %s", d.Path, d.Message)
}

// ValidationReport collects the findings of a schema check.
type ValidationReport struct {
	Validator   string
	Diagnostics []Diagnostic
}

// OK reports whether the document passed.
func (r ValidationReport) OK() bool {
	return len(r.Diagnostics) == 0
}

// Add records a finding.
func (r *ValidationReport) Add(path, format string, args ...any) {
	r.Diagnostics = append(r.Diagnostics, Diagnostic{Path: path, Message: fmt.Sprintf(format, args...)})
}
