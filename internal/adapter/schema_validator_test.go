package adapter

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cpacsedit.dev/pkg/cpacsedit/internal/cpacs"
	m "cpacsedit.dev/pkg/cpacsedit/internal/model"
)

func TestStructuralValidator_AcceptsFixture(t *testing.T) {
	doc := openFixture(t)

	report, err := NewStructuralValidator().Validate(context.Background(), doc)
	require.NoError(t, err)
	assert.True(t, report.OK(), "unexpected diagnostics: %v", report.Diagnostics)
	assert.Equal(t, "structural", report.Validator)
}

func TestStructuralValidator_Findings(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(t *testing.T, doc Document)
		message string
	}{
		{
			name: "duplicate uID",
			mutate: func(t *testing.T, doc Document) {
				require.NoError(t, doc.AddTextAttribute(cpacs.SectionPath(2), cpacs.UIDAttribute, "s1"))
			},
			message: `uID "s1" already used`,
		},
		{
			name: "dangling reference",
			mutate: func(t *testing.T, doc Document) {
				require.NoError(t, doc.UpdateText(cpacs.SegmentPath(1)+"/toElementUID", "ghost"))
			},
			message: `reference "ghost" does not resolve`,
		},
		{
			name: "empty reference",
			mutate: func(t *testing.T, doc Document) {
				require.NoError(t, doc.AddTextElement(cpacs.SegmentPath(2), "profileUID", ""))
			},
			message: "empty uID reference",
		},
		{
			name: "segment count mismatch",
			mutate: func(t *testing.T, doc Document) {
				require.NoError(t, doc.CreateElement(cpacs.Segments, cpacs.SegmentName))
			},
			message: "3 segment(s) for 3 sections",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := openFixture(t)
			tt.mutate(t, doc)

			report, err := NewStructuralValidator().Validate(context.Background(), doc)
			require.NoError(t, err)
			require.False(t, report.OK())
			assert.Contains(t, diagnosticsText(report), tt.message)
		})
	}
}

func TestStructuralValidator_MissingHeader(t *testing.T) {
	store := NewLocalDocumentStore(NewLocalFileAdapter())

	doc, err := store.Create(context.Background(), cpacs.RootName)
	require.NoError(t, err)

	defer func() { _ = doc.Close() }()

	require.NoError(t, doc.CreateElement(cpacs.Root, "header"))
	require.NoError(t, doc.AddTextElement(cpacs.Header, "name", "plane"))

	report, err := NewStructuralValidator().Validate(context.Background(), doc)
	require.NoError(t, err)

	text := diagnosticsText(report)
	for _, field := range []string{"creator", "version", "cpacsVersion"} {
		assert.Contains(t, text, cpacs.Header+"/"+field+": missing header field")
	}

	assert.NotContains(t, text, cpacs.Header+"/name:")
}

func TestStructuralValidator_WrongRoot(t *testing.T) {
	store := NewLocalDocumentStore(NewLocalFileAdapter())

	doc, err := store.Create(context.Background(), "other")
	require.NoError(t, err)

	defer func() { _ = doc.Close() }()

	report, err := NewStructuralValidator().Validate(context.Background(), doc)
	require.NoError(t, err)
	require.Len(t, report.Diagnostics, 1)
	assert.Equal(t, `root element is not "cpacs"`, report.Diagnostics[0].String())
}

func diagnosticsText(report m.ValidationReport) string {
	lines := make([]string, 0, len(report.Diagnostics))
	for _, d := range report.Diagnostics {
		lines = append(lines, d.String())
	}

	return strings.Join(lines, "\n")
}
