package cmd

import (
	"github.com/stretchr/testify/mock"

	"github.com/shapenote/shapenote/internal/domain"
)

// MockWorkflow is a hand-rolled testify mock for domain.Workflow.
type MockWorkflow struct {
	mock.Mock
}

func (m *MockWorkflow) Scan(args domain.ScanArgs) error {
	return m.Called(args).Error(0)
}

func (m *MockWorkflow) Clean(args domain.CleanArgs) error {
	return m.Called(args).Error(0)
}
