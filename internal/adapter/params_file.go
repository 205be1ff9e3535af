package adapter

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	m "cpacsedit.dev/pkg/cpacsedit/internal/model"
)

// ParamsLoader reads geometry targets from a YAML file.
type ParamsLoader interface {
	Load(ctx context.Context, path m.Path) (m.GeometryParams, error)
}

// YAMLParamsLoader decodes GeometryParams and rejects unknown keys.
type YAMLParamsLoader struct {
	files FileAdapter
}

// NewYAMLParamsLoader constructs a YAMLParamsLoader.
func NewYAMLParamsLoader(files FileAdapter) *YAMLParamsLoader {
	return &YAMLParamsLoader{files: files}
}

// Load reads path. Unknown keys fail with model.ErrInvalidInput.
func (l *YAMLParamsLoader) Load(ctx context.Context, path m.Path) (m.GeometryParams, error) {
	data, err := l.files.ReadFile(ctx, path)
	if err != nil {
		return m.GeometryParams{}, fmt.Errorf("%w: read params %s: %w", m.ErrIO, path, err)
	}

	return DecodeGeometryParams(data)
}

// DecodeGeometryParams parses a YAML document holding geometry targets.
func DecodeGeometryParams(data []byte) (m.GeometryParams, error) {
	var params m.GeometryParams

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	if err := decoder.Decode(&params); err != nil {
		if errors.Is(err, io.EOF) {
			return params, nil
		}

		return m.GeometryParams{}, fmt.Errorf("%w: geometry params: %w", m.ErrInvalidInput, err)
	}

	return params, nil
}
