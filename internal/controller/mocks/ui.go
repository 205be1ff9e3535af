// Package mocks provides testify mocks for the controller interfaces.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	m "cpacsedit.dev/pkg/cpacsedit/internal/model"
)

// MockUI is a mock of controller.UI.
type MockUI struct {
	mock.Mock
}

func (u *MockUI) DisplayRescale(ctx context.Context, reports []m.RescaleReport) error {
	return u.Called(ctx, reports).Error(0)
}

func (u *MockUI) DisplayDiff(ctx context.Context, path m.Path, diff string) error {
	return u.Called(ctx, path, diff).Error(0)
}

func (u *MockUI) DisplayGenerate(ctx context.Context, report m.GenerateReport) error {
	return u.Called(ctx, report).Error(0)
}

func (u *MockUI) DisplaySummary(ctx context.Context, path m.Path, summary m.AircraftGeometrySummary) error {
	return u.Called(ctx, path, summary).Error(0)
}

func (u *MockUI) DisplayValidation(ctx context.Context, path m.Path, report m.ValidationReport) error {
	return u.Called(ctx, path, report).Error(0)
}
