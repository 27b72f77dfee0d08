package main

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunId(t *testing.T) {
	first := runId()
	second := runId()

	parsed, err := uuid.Parse(first)
	require.NoError(t, err)
	assert.Equal(t, first, parsed.String())
	assert.NotEqual(t, first, second)
}
