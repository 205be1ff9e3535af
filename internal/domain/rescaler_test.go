package domain

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cpacsedit.dev/pkg/cpacsedit/internal/adapter"
	"cpacsedit.dev/pkg/cpacsedit/internal/cpacs"
	m "cpacsedit.dev/pkg/cpacsedit/internal/model"
)

const fixturePath = "testdata/fuselage.xml"

func newTestRescaler() (Rescaler, adapter.DocumentStore) {
	store := adapter.NewLocalDocumentStore(adapter.NewLocalFileAdapter())
	return NewRescaler(store, adapter.NewPositioningExtractor()), store
}

// copyFixture places a private copy of the fixture in a temp dir.
func copyFixture(t *testing.T) m.Path {
	t.Helper()

	data, err := os.ReadFile(fixturePath)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "fuselage.xml")
	require.NoError(t, os.WriteFile(path, data, 0o600))

	return m.Path(path)
}

// scaledValues reads every field a rescale touches, keyed by path.
func scaledValues(t *testing.T, store adapter.DocumentStore, path m.Path) map[string]float64 {
	t.Helper()

	doc, err := store.Open(context.Background(), path)
	require.NoError(t, err)

	defer func() { _ = doc.Close() }()

	sections, err := doc.CountNamedChildren(cpacs.Sections, cpacs.SectionName)
	require.NoError(t, err)

	fields, err := collectSectionFields(doc, sections)
	require.NoError(t, err)

	positionings, err := collectPositioningFields(doc)
	require.NoError(t, err)

	values := make(map[string]float64)
	for _, f := range append(fields, positionings...) {
		values[f.path] = f.value
	}

	return values
}

// structure lists every element path and its attributes, ignoring text.
func structure(t *testing.T, store adapter.DocumentStore, path m.Path) []string {
	t.Helper()

	doc, err := store.Open(context.Background(), path)
	require.NoError(t, err)

	defer func() { _ = doc.Close() }()

	var out []string

	require.NoError(t, doc.Walk(func(node adapter.Node) error {
		out = append(out, node.Path)

		keys := make([]string, 0, len(node.Attrs))
		for k := range node.Attrs {
			keys = append(keys, k)
		}

		sort.Strings(keys)

		for _, k := range keys {
			out = append(out, node.Path+"@"+k+"="+node.Attrs[k])
		}

		return nil
	}))

	return out
}

func TestScaleFactor(t *testing.T) {
	tests := []struct {
		name    string
		target  float64
		current float64
		want    float64
		wantErr bool
	}{
		{name: "double", target: 20, current: 10, want: 2},
		{name: "shrink", target: 5, current: 10, want: 0.5},
		{name: "zero current", target: 20, current: 0, wantErr: true},
		{name: "negative current", target: 20, current: -1, wantErr: true},
		{name: "zero target", target: 0, current: 10, wantErr: true},
		{name: "negative target", target: -3, current: 10, wantErr: true},
		{name: "nan target", target: math.NaN(), current: 10, wantErr: true},
		{name: "infinite target", target: math.Inf(1), current: 10, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ScaleFactor(tt.target, tt.current)
			if tt.wantErr {
				assert.ErrorIs(t, err, m.ErrInvalidInput)
				return
			}

			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-12)
		})
	}
}

func TestRescaler_Rescale(t *testing.T) {
	rescaler, store := newTestRescaler()
	input := copyFixture(t)
	output := m.Path(filepath.Join(t.TempDir(), "out", "rescaled.xml"))

	before := scaledValues(t, store, input)
	beforeStructure := structure(t, store, input)

	report, err := rescaler.Rescale(context.Background(), RescaleArgs{
		Input:  input,
		Output: output,
		Params: m.WithFuselageLength(25),
	})
	require.NoError(t, err)

	assert.True(t, report.Committed)
	assert.Equal(t, output, report.Output)
	assert.InDelta(t, 2.5, report.Scale, 1e-12)
	assert.InDelta(t, 10.0, report.Before.FuselageLength, 1e-9)
	assert.InDelta(t, 25.0, report.After.FuselageLength, 1e-6)
	assert.Equal(t, 3, report.SectionsUpdated)
	assert.Equal(t, 3, report.PositioningsUpdated)
	assert.Equal(t, 15, report.FieldsUpdated())

	after := scaledValues(t, store, output)
	require.Len(t, after, len(before))

	for path, value := range before {
		assert.InDelta(t, value*2.5, after[path], 1e-6, path)
	}

	if diff := cmp.Diff(beforeStructure, structure(t, store, output)); diff != "" {
		t.Errorf("rescale changed the document structure (-before +after):\n%s", diff)
	}

	doc, err := store.Open(context.Background(), output)
	require.NoError(t, err)

	defer func() { _ = doc.Close() }()

	text, err := doc.GetText(cpacs.SectionScaling(1) + "/y")
	require.NoError(t, err)
	assert.Equal(t, "1.25000000", text)

	wing, err := doc.GetText("/cpacs/vehicles/aircraft/model/wings/wing/transformation/scaling/x")
	require.NoError(t, err)
	assert.Equal(t, "1.0", wing, "fields outside the fuselage must stay untouched")

	original, err := os.ReadFile(string(input))
	require.NoError(t, err)
	fixture, err := os.ReadFile(fixturePath)
	require.NoError(t, err)
	assert.Equal(t, fixture, original, "input must not change when writing elsewhere")
}

func TestRescaler_InPlace(t *testing.T) {
	rescaler, store := newTestRescaler()
	input := copyFixture(t)

	report, err := rescaler.Rescale(context.Background(), RescaleArgs{Input: input, Params: m.WithFuselageLength(5)})
	require.NoError(t, err)
	assert.Equal(t, input, report.Output)

	summary := summarize(t, store, input)
	assert.InDelta(t, 5.0, summary.FuselageLength, 1e-6)
}

func TestRescaler_FuselageScaling(t *testing.T) {
	rescaler, store := newTestRescaler()
	input := copyFixture(t)

	editFixture(t, input, func(doc adapter.Document) {
		require.NoError(t, doc.CreateElement(cpacs.Fuselage, "transformation"))
		require.NoError(t, doc.CreateElement(cpacs.Fuselage+"/transformation", "scaling"))
		require.NoError(t, doc.AddDoubleElement(cpacs.FuselageScaling, "x", 2, m.Fixed(8)))
	})

	report, err := rescaler.Rescale(context.Background(), RescaleArgs{Input: input, Params: m.WithFuselageLength(30)})
	require.NoError(t, err)
	assert.InDelta(t, 20.0, report.Before.FuselageLength, 1e-9)
	assert.InDelta(t, 1.5, report.Scale, 1e-12)
	assert.InDelta(t, 30.0, summarize(t, store, input).FuselageLength, 1e-6)

	doc, err := store.Open(context.Background(), input)
	require.NoError(t, err)

	defer func() { _ = doc.Close() }()

	x, err := doc.GetDouble(cpacs.FuselageScaling + "/x")
	require.NoError(t, err)
	assert.InDelta(t, 2.0, x, 1e-12, "the fuselage transformation is not rescaled")
}

func TestRescaler_IdentityScale(t *testing.T) {
	rescaler, store := newTestRescaler()
	input := copyFixture(t)
	before := scaledValues(t, store, input)

	report, err := rescaler.Rescale(context.Background(), RescaleArgs{Input: input, Params: m.WithFuselageLength(10)})
	require.NoError(t, err)
	assert.InDelta(t, 1.0, report.Scale, 1e-12)

	after := scaledValues(t, store, input)
	for path, value := range before {
		assert.InDelta(t, value, after[path], 1e-6*math.Max(1, math.Abs(value)), path)
	}
}

func TestRescaler_RoundTrip(t *testing.T) {
	rescaler, store := newTestRescaler()
	input := copyFixture(t)
	before := scaledValues(t, store, input)

	_, err := rescaler.Rescale(context.Background(), RescaleArgs{Input: input, Params: m.WithFuselageLength(37)})
	require.NoError(t, err)

	_, err = rescaler.Rescale(context.Background(), RescaleArgs{Input: input, Params: m.WithFuselageLength(10)})
	require.NoError(t, err)

	after := scaledValues(t, store, input)
	for path, value := range before {
		assert.InDelta(t, value, after[path], 1e-6, path)
	}
}

func TestRescaler_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		params  m.GeometryParams
		prepare func(t *testing.T, path m.Path)
		wantErr error
	}{
		{name: "missing target", params: m.GeometryParams{}, wantErr: m.ErrInvalidInput},
		{name: "zero target", params: m.WithFuselageLength(0), wantErr: m.ErrInvalidInput},
		{name: "negative target", params: m.WithFuselageLength(-4), wantErr: m.ErrInvalidInput},
		{name: "nan target", params: m.WithFuselageLength(math.NaN()), wantErr: m.ErrInvalidInput},
		{
			name:   "zero current length",
			params: m.WithFuselageLength(20),
			prepare: func(t *testing.T, path m.Path) {
				editFixture(t, path, func(doc adapter.Document) {
					for i := 1; i <= 3; i++ {
						require.NoError(t, doc.UpdateDouble(cpacs.PositioningLength(i), 0, m.RescaleFormat))
					}
				})
			},
			wantErr: m.ErrInvalidInput,
		},
		{
			name:   "unreadable section field",
			params: m.WithFuselageLength(20),
			prepare: func(t *testing.T, path m.Path) {
				editFixture(t, path, func(doc adapter.Document) {
					require.NoError(t, doc.UpdateText(cpacs.SectionTranslation(3)+"/z", "n/a"))
				})
			},
			wantErr: m.ErrDocument,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rescaler, _ := newTestRescaler()
			input := copyFixture(t)

			if tt.prepare != nil {
				tt.prepare(t, input)
			}

			original, err := os.ReadFile(string(input))
			require.NoError(t, err)

			_, err = rescaler.Rescale(context.Background(), RescaleArgs{Input: input, Params: tt.params})
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)

			current, err := os.ReadFile(string(input))
			require.NoError(t, err)
			assert.Equal(t, original, current, "a rejected rescale must leave the input untouched")
		})
	}
}

func TestRescaler_MissingInput(t *testing.T) {
	rescaler, _ := newTestRescaler()

	_, err := rescaler.Rescale(context.Background(), RescaleArgs{
		Input:  m.Path(filepath.Join(t.TempDir(), "absent.xml")),
		Params: m.WithFuselageLength(20),
	})
	assert.ErrorIs(t, err, m.ErrDocument)
}

func TestRescaler_CommitFailure(t *testing.T) {
	rescaler, _ := newTestRescaler()
	input := copyFixture(t)

	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("file"), 0o600))

	report, err := rescaler.Rescale(context.Background(), RescaleArgs{
		Input:  input,
		Output: m.Path(filepath.Join(blocker, "out.xml")),
		Params: m.WithFuselageLength(20),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, m.ErrIO)
	assert.False(t, report.Committed)
}

func TestRescaler_DryRun(t *testing.T) {
	rescaler, _ := newTestRescaler()
	input := copyFixture(t)

	original, err := os.ReadFile(string(input))
	require.NoError(t, err)

	report, err := rescaler.Rescale(context.Background(), RescaleArgs{
		Input:  input,
		Params: m.WithFuselageLength(20),
		DryRun: true,
	})
	require.NoError(t, err)

	assert.False(t, report.Committed)
	assert.Equal(t, original, report.Original, "the diff must start from the bytes on disk")
	assert.NotEmpty(t, report.Rescaled)
	assert.NotEqual(t, report.Original, report.Rescaled)
	assert.Contains(t, string(report.Rescaled), "<length>12.00000000</length>")
	assert.InDelta(t, 20.0, report.After.FuselageLength, 1e-6)

	current, err := os.ReadFile(string(input))
	require.NoError(t, err)
	assert.Equal(t, original, current)
}

func TestRescaler_KeepsUnrelatedLayout(t *testing.T) {
	rescaler, _ := newTestRescaler()
	input := copyFixture(t)
	preview := copyFixture(t)

	original, err := os.ReadFile(string(input))
	require.NoError(t, err)

	_, err = rescaler.Rescale(context.Background(), RescaleArgs{Input: input, Params: m.WithFuselageLength(20)})
	require.NoError(t, err)

	rescaled, err := os.ReadFile(string(input))
	require.NoError(t, err)

	before := strings.Split(string(original), "\n")
	after := strings.Split(string(rescaled), "\n")
	require.Len(t, after, len(before), "rescaling must not reflow the document")

	wingLine := "              <scaling><x>1.0</x><y>1.0</y><z>1.0</z></scaling>"
	assert.Contains(t, after, wingLine)

	for i := range before {
		if before[i] == after[i] {
			continue
		}

		changed := strings.Contains(before[i], "<scaling>") ||
			strings.Contains(before[i], "<z>") ||
			strings.Contains(before[i], "<length>")
		assert.True(t, changed, "line %d changed outside the fuselage fields: %q", i+1, after[i])
	}

	report, err := rescaler.Rescale(context.Background(), RescaleArgs{
		Input:  preview,
		Params: m.WithFuselageLength(20),
		DryRun: true,
	})
	require.NoError(t, err)
	assert.Equal(t, string(rescaled), string(report.Rescaled), "a dry run must preview the committed bytes")
}

func TestRescaler_RescaleAll(t *testing.T) {
	t.Run("runs independent jobs", func(t *testing.T) {
		rescaler, store := newTestRescaler()

		jobs := make([]RescaleArgs, 4)
		for i := range jobs {
			jobs[i] = RescaleArgs{Input: copyFixture(t), Params: m.WithFuselageLength(float64(10 * (i + 1)))}
		}

		reports, err := rescaler.RescaleAll(context.Background(), jobs, 2)
		require.NoError(t, err)
		require.Len(t, reports, len(jobs))

		for i, job := range jobs {
			assert.InDelta(t, float64(i+1), reports[i].Scale, 1e-12)
			assert.InDelta(t, float64(10*(i+1)), summarize(t, store, job.Input).FuselageLength, 1e-6)
		}
	})

	t.Run("failed job does not stop the others", func(t *testing.T) {
		rescaler, store := newTestRescaler()
		good := copyFixture(t)
		missing := m.Path(filepath.Join(t.TempDir(), "absent.xml"))

		reports, err := rescaler.RescaleAll(context.Background(), []RescaleArgs{
			{Input: missing, Params: m.WithFuselageLength(20)},
			{Input: good, Params: m.WithFuselageLength(20)},
		}, 1)
		require.Error(t, err)
		assert.ErrorIs(t, err, m.ErrDocument)
		assert.Contains(t, err.Error(), string(missing))
		require.Len(t, reports, 2)
		assert.True(t, reports[1].Committed)
		assert.InDelta(t, 20.0, summarize(t, store, good).FuselageLength, 1e-6)
	})

	t.Run("rejects shared outputs", func(t *testing.T) {
		rescaler, _ := newTestRescaler()
		out := m.Path(filepath.Join(t.TempDir(), "same.xml"))

		_, err := rescaler.RescaleAll(context.Background(), []RescaleArgs{
			{Input: copyFixture(t), Output: out, Params: m.WithFuselageLength(20)},
			{Input: copyFixture(t), Output: out, Params: m.WithFuselageLength(20)},
		}, 2)
		assert.ErrorIs(t, err, m.ErrInvalidInput)

		_, statErr := os.Stat(string(out))
		assert.True(t, os.IsNotExist(statErr))
	})

	t.Run("rejects an output another job reads", func(t *testing.T) {
		rescaler, _ := newTestRescaler()
		source := copyFixture(t)
		shared := copyFixture(t)

		sharedBefore, err := os.ReadFile(string(shared))
		require.NoError(t, err)

		_, err = rescaler.RescaleAll(context.Background(), []RescaleArgs{
			{Input: source, Output: shared, Params: m.WithFuselageLength(20)},
			{Input: shared, Params: m.WithFuselageLength(30)},
		}, 2)
		require.Error(t, err)
		assert.ErrorIs(t, err, m.ErrInvalidInput)

		sharedAfter, err := os.ReadFile(string(shared))
		require.NoError(t, err)
		assert.Equal(t, sharedBefore, sharedAfter)
	})

	t.Run("in place job may read its own output", func(t *testing.T) {
		rescaler, store := newTestRescaler()
		input := copyFixture(t)

		_, err := rescaler.RescaleAll(context.Background(), []RescaleArgs{
			{Input: input, Output: input, Params: m.WithFuselageLength(15)},
		}, 1)
		require.NoError(t, err)
		assert.InDelta(t, 15.0, summarize(t, store, input).FuselageLength, 1e-6)
	})
}

func summarize(t *testing.T, store adapter.DocumentStore, path m.Path) m.AircraftGeometrySummary {
	t.Helper()

	doc, err := store.Open(context.Background(), path)
	require.NoError(t, err)

	defer func() { _ = doc.Close() }()

	summary, err := adapter.NewPositioningExtractor().Summary(context.Background(), doc)
	require.NoError(t, err)

	return summary
}

func editFixture(t *testing.T, path m.Path, edit func(doc adapter.Document)) {
	t.Helper()

	store := adapter.NewLocalDocumentStore(adapter.NewLocalFileAdapter())

	doc, err := store.Open(context.Background(), path)
	require.NoError(t, err)

	defer func() { _ = doc.Close() }()

	edit(doc)
	require.NoError(t, store.Commit(context.Background(), doc, path))
}
