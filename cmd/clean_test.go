package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/shapenote/shapenote/internal/domain"
	m "github.com/shapenote/shapenote/internal/model"
)

func TestCleanCmd_PassesParallelAndExcludes(t *testing.T) {
	mockWorkflow := new(MockWorkflow)

	cmd := newRootCmd()
	cmd.AddCommand(newCleanCmd())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	originalWorkflow := workflow
	workflow = mockWorkflow
	defer func() { workflow = originalWorkflow }()

	mockWorkflow.On("Clean", mock.MatchedBy(func(args domain.CleanArgs) bool {
		return args.Threads == 4 &&
			len(args.Paths) == 1 && args.Paths[0] == m.Path("./scripts/...") &&
			len(args.Exclude) == 1 && args.Exclude[0] == "_test"
	})).Return(nil)

	cmd.SetArgs([]string{"clean", "-p", "4", "-x", "_test", "./scripts/..."})
	err := cmd.Execute()
	require.NoError(t, err)

	mockWorkflow.AssertExpectations(t)
}

func TestCleanCmd_DefaultsToSingleThread(t *testing.T) {
	mockWorkflow := new(MockWorkflow)

	cmd := newRootCmd()
	cmd.AddCommand(newCleanCmd())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	originalWorkflow := workflow
	workflow = mockWorkflow
	defer func() { workflow = originalWorkflow }()

	mockWorkflow.On("Clean", mock.MatchedBy(func(args domain.CleanArgs) bool {
		return args.Threads == 1 && len(args.Paths) == 1 && args.Paths[0] == m.Path("./...")
	})).Return(nil)

	cmd.SetArgs([]string{"clean"})
	err := cmd.Execute()
	require.NoError(t, err)

	mockWorkflow.AssertExpectations(t)
}

func TestNewCleanCmd(t *testing.T) {
	cmd := newCleanCmd()

	assert.Equal(t, "clean [paths...]", cmd.Use)
	assert.NotEmpty(t, cmd.Short)

	assert.NotNil(t, cmd.Flags().Lookup("parallel"))
	assert.NotNil(t, cmd.Flags().Lookup("exclude"))
}
