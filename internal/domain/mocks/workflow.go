// Package mocks provides testify mocks for the domain interfaces.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"cpacsedit.dev/pkg/cpacsedit/internal/domain"
)

// MockWorkflow is a mock of domain.Workflow.
type MockWorkflow struct {
	mock.Mock
}

// NewMockWorkflow creates a MockWorkflow whose expectations are asserted on cleanup.
func NewMockWorkflow(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockWorkflow {
	w := &MockWorkflow{}
	w.Mock.Test(t)

	t.Cleanup(func() { w.AssertExpectations(t) })

	return w
}

func (w *MockWorkflow) Rescale(ctx context.Context, args domain.RescaleBatchArgs) error {
	return w.Called(ctx, args).Error(0)
}

func (w *MockWorkflow) Generate(ctx context.Context, args domain.GenerateArgs) error {
	return w.Called(ctx, args).Error(0)
}

func (w *MockWorkflow) Inspect(ctx context.Context, args domain.InspectArgs) error {
	return w.Called(ctx, args).Error(0)
}

func (w *MockWorkflow) Validate(ctx context.Context, args domain.ValidateArgs) error {
	return w.Called(ctx, args).Error(0)
}
