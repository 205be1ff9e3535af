// Package mocks provides testify mocks for the adapter interfaces.
package mocks

import (
	"context"
	"os"
	"path/filepath"

	"github.com/stretchr/testify/mock"

	m "cpacsedit.dev/pkg/cpacsedit/internal/model"
)

// MockFileAdapter is a mock of adapter.FileAdapter.
type MockFileAdapter struct {
	mock.Mock
}

func (a *MockFileAdapter) ReadFile(ctx context.Context, path m.Path) ([]byte, error) {
	ret := a.Called(ctx, path)

	data, _ := ret.Get(0).([]byte)

	return data, ret.Error(1)
}

func (a *MockFileAdapter) WriteFileAtomic(ctx context.Context, path m.Path, content []byte, perm os.FileMode) error {
	return a.Called(ctx, path, content, perm).Error(0)
}

func (a *MockFileAdapter) FileInfo(ctx context.Context, path m.Path) (os.FileInfo, error) {
	ret := a.Called(ctx, path)

	info, _ := ret.Get(0).(os.FileInfo)

	return info, ret.Error(1)
}

func (a *MockFileAdapter) MkdirAll(ctx context.Context, path m.Path) error {
	return a.Called(ctx, path).Error(0)
}

func (a *MockFileAdapter) JoinPath(elem ...string) m.Path {
	return m.Path(filepath.Join(elem...))
}
