// Package pkg provides utilities for cpacsedit.
package pkg

import (
	"fmt"

	"github.com/pmezard/go-difflib/difflib"
)

// DiffContextLines is the number of unchanged lines kept around each hunk.
const DiffContextLines = 2

// UnifiedDiff renders the line differences between from and to. Identical
// inputs yield an empty string.
func UnifiedDiff(from, to []byte, fromName, toName string) (string, error) {
	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(from)),
		B:        difflib.SplitLines(string(to)),
		FromFile: fromName,
		ToFile:   toName,
		Context:  DiffContextLines,
	}

	text, err := difflib.GetUnifiedDiffString(diff)
	if err != nil {
		return "", fmt.Errorf("unified diff: %w", err)
	}

	return text, nil
}
