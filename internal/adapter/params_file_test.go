package adapter

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "cpacsedit.dev/pkg/cpacsedit/internal/model"
)

func TestDecodeGeometryParams(t *testing.T) {
	t.Run("fuselage target", func(t *testing.T) {
		params, err := DecodeGeometryParams([]byte("fuselageLengthTarget: 42.5\n"))
		require.NoError(t, err)

		length, ok := params.FuselageLength()
		assert.True(t, ok)
		assert.InDelta(t, 42.5, length, 1e-12)
	})

	t.Run("empty document has no target", func(t *testing.T) {
		params, err := DecodeGeometryParams(nil)
		require.NoError(t, err)

		_, ok := params.FuselageLength()
		assert.False(t, ok)
	})

	t.Run("unknown key is rejected", func(t *testing.T) {
		_, err := DecodeGeometryParams([]byte("fuselageLenghtTarget: 10\n"))
		require.Error(t, err)
		assert.ErrorIs(t, err, m.ErrInvalidInput)
	})

	t.Run("wrong type is rejected", func(t *testing.T) {
		_, err := DecodeGeometryParams([]byte("fuselageLengthTarget: long\n"))
		assert.ErrorIs(t, err, m.ErrInvalidInput)
	})
}

func TestYAMLParamsLoader_Load(t *testing.T) {
	loader := NewYAMLParamsLoader(NewLocalFileAdapter())

	path := filepath.Join(t.TempDir(), "params.yaml")
	writeTestFile(t, path, "fuselageLengthTarget: 20\n")

	params, err := loader.Load(context.Background(), m.Path(path))
	require.NoError(t, err)

	length, ok := params.FuselageLength()
	require.True(t, ok)
	assert.InDelta(t, 20.0, length, 1e-12)

	_, err = loader.Load(context.Background(), m.Path(filepath.Join(t.TempDir(), "missing.yaml")))
	assert.ErrorIs(t, err, m.ErrIO)
}
