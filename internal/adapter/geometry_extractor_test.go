package adapter

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cpacsedit.dev/pkg/cpacsedit/internal/cpacs"
	m "cpacsedit.dev/pkg/cpacsedit/internal/model"
)

func TestPositioningExtractor_Summary(t *testing.T) {
	doc := openFixture(t)

	summary, err := NewPositioningExtractor().Summary(context.Background(), doc)
	require.NoError(t, err)

	assert.Equal(t, "testplane", summary.AircraftName)
	assert.Equal(t, 3, summary.FuselageSectionCount)
	assert.Equal(t, 2, summary.SegmentCount)
	assert.Equal(t, 3, summary.PositioningCount)
	assert.InDelta(t, 10.0, summary.FuselageLength, 1e-9)
}

func TestPositioningExtractor_LengthFollowsPositionings(t *testing.T) {
	doc := openFixture(t)

	require.NoError(t, doc.UpdateDouble(cpacs.PositioningLength(3), 16, m.Fixed(8)))

	summary, err := NewPositioningExtractor().Summary(context.Background(), doc)
	require.NoError(t, err)
	assert.InDelta(t, 20.0, summary.FuselageLength, 1e-9)
}

// addFuselageScaling gives the fixture fuselage a transformation with scaling x.
func addFuselageScaling(t *testing.T, doc Document, x float64) {
	t.Helper()

	require.NoError(t, doc.CreateElement(cpacs.Fuselage, "transformation"))
	require.NoError(t, doc.CreateElement(cpacs.Fuselage+"/transformation", "scaling"))
	require.NoError(t, doc.AddDoubleElement(cpacs.FuselageScaling, "x", x, m.Fixed(8)))
}

func TestPositioningExtractor_FuselageScaling(t *testing.T) {
	doc := openFixture(t)
	addFuselageScaling(t, doc, 1.5)

	summary, err := NewPositioningExtractor().Summary(context.Background(), doc)
	require.NoError(t, err)
	assert.InDelta(t, 15.0, summary.FuselageLength, 1e-9)
}

func TestPositioningExtractor_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(t *testing.T, doc Document)
	}{
		{
			name: "non numeric positioning length",
			mutate: func(t *testing.T, doc Document) {
				require.NoError(t, doc.UpdateText(cpacs.PositioningLength(2), "long"))
			},
		},
		{
			name: "unknown target section",
			mutate: func(t *testing.T, doc Document) {
				require.NoError(t, doc.UpdateText(cpacs.PositioningPath(3)+"/toSectionUID", "nowhere"))
			},
		},
		{
			name: "zero fuselage scaling",
			mutate: func(t *testing.T, doc Document) {
				addFuselageScaling(t, doc, 0)
			},
		},
		{
			name: "positioning cycle",
			mutate: func(t *testing.T, doc Document) {
				require.NoError(t, doc.UpdateText(cpacs.PositioningPath(2)+"/fromSectionUID", "s3"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := openFixture(t)
			tt.mutate(t, doc)

			_, err := NewPositioningExtractor().Summary(context.Background(), doc)
			require.Error(t, err)
			assert.ErrorIs(t, err, m.ErrDocument)
		})
	}
}

func TestPositioningExtractor_RequiresFuselage(t *testing.T) {
	store := NewLocalDocumentStore(NewLocalFileAdapter())

	doc, err := store.Create(context.Background(), cpacs.RootName)
	require.NoError(t, err)

	defer func() { _ = doc.Close() }()

	_, err = NewPositioningExtractor().Summary(context.Background(), doc)
	assert.ErrorIs(t, err, m.ErrDocument)
}

func TestPositioningOffset(t *testing.T) {
	x := positioningOffset(2, 90, 0)
	assert.InDelta(t, 2.0, x[0], 1e-12)
	assert.InDelta(t, 0.0, x[1], 1e-12)
	assert.InDelta(t, 0.0, x[2], 1e-12)

	z := positioningOffset(2, 0, 90)
	assert.InDelta(t, 0.0, z[0], 1e-12)
	assert.InDelta(t, 0.0, z[1], 1e-12)
	assert.InDelta(t, 2.0, z[2], 1e-12)
}
