package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"cpacsedit.dev/pkg/cpacsedit/internal/domain"
	m "cpacsedit.dev/pkg/cpacsedit/internal/model"
)

// MockRescaler is a mock of domain.Rescaler.
type MockRescaler struct {
	mock.Mock
}

func (r *MockRescaler) Rescale(ctx context.Context, args domain.RescaleArgs) (m.RescaleReport, error) {
	ret := r.Called(ctx, args)
	return ret.Get(0).(m.RescaleReport), ret.Error(1)
}

func (r *MockRescaler) RescaleAll(ctx context.Context, jobs []domain.RescaleArgs, parallel int) ([]m.RescaleReport, error) {
	ret := r.Called(ctx, jobs, parallel)

	reports, _ := ret.Get(0).([]m.RescaleReport)

	return reports, ret.Error(1)
}

// MockGenerator is a mock of domain.Generator.
type MockGenerator struct {
	mock.Mock
}

func (g *MockGenerator) Generate(ctx context.Context, args domain.GenerateArgs) (m.GenerateReport, error) {
	ret := g.Called(ctx, args)
	return ret.Get(0).(m.GenerateReport), ret.Error(1)
}
