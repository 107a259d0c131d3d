package ec2

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func installFakeTools(t *testing.T, names ...string) {
	t.Helper()
	dir := t.TempDir()
	for _, name := range names {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"), 0755)) //nolint:gosec
	}
	t.Setenv("PATH", dir)
}

func TestCheckToolsEmptyPath(t *testing.T) {
	t.Setenv("PATH", t.TempDir())

	assert.ErrorIs(t, CheckLaunchTools(), ErrMissingDependency)
	assert.ErrorIs(t, CheckTerminateTools(), ErrMissingDependency)
	assert.ErrorIs(t, CheckListTools(), ErrMissingDependency)
}

func TestCheckToolsAllInstalled(t *testing.T) {
	installFakeTools(t, runTool, describeTool, tagTool, terminateTool, sshKeygenTool)

	assert.NoError(t, CheckLaunchTools())
	assert.NoError(t, CheckTerminateTools())
	assert.NoError(t, CheckListTools())
}

// Each operation gates on the tools it actually invokes: the run tool alone
// is not enough for terminate or list, and the describe tool alone is
// enough only for list.
func TestCheckToolsPerOperation(t *testing.T) {
	installFakeTools(t, runTool)
	assert.ErrorIs(t, CheckLaunchTools(), ErrMissingDependency)
	assert.ErrorIs(t, CheckTerminateTools(), ErrMissingDependency)
	assert.ErrorIs(t, CheckListTools(), ErrMissingDependency)

	installFakeTools(t, describeTool)
	assert.NoError(t, CheckListTools())
	assert.ErrorIs(t, CheckLaunchTools(), ErrMissingDependency)
	assert.ErrorIs(t, CheckTerminateTools(), ErrMissingDependency)
}
