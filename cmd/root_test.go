package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "github.com/shapenote/shapenote/internal/model"
)

func TestParsePaths(t *testing.T) {
	assert.Equal(t, []m.Path{"./..."}, parsePaths(nil), "no args defaults to recursive current directory")
	assert.Equal(t, []m.Path{"./scripts"}, parsePaths([]string{"./scripts"}))
	assert.Equal(t, []m.Path{"./a", "./b/..."}, parsePaths([]string{"./a", "./b/..."}))
}

func TestRootCmd_ShowsHelp(t *testing.T) {
	var buf bytes.Buffer

	cmd := newRootCmd()
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(nil)

	require.NoError(t, cmd.Execute())

	output := buf.String()
	if !strings.Contains(output, "shapenote") {
		t.Fatalf("help output missing command name\noutput:\n%s", output)
	}
}

func TestNewRootCmd(t *testing.T) {
	cmd := newRootCmd()

	assert.Equal(t, "shapenote", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.Contains(t, cmd.Long, "./...")
}
