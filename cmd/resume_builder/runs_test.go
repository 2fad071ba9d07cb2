package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunsCommand_RequiresDatabase(t *testing.T) {
	_, err := executeCommand(t, "", "runs", "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database URL is required")
}

func TestRunsShowCommand_InvalidID(t *testing.T) {
	_, err := executeCommand(t, "", "runs", "show", "not-a-uuid")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid run ID")
}
