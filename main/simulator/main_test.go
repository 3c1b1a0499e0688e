package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSteps(t *testing.T) {
	steps, err := parseSteps("10, 20,30")
	require.NoError(t, err)
	assert.Equal(t, []int{10, 20, 30}, steps)

	steps, err = parseSteps("")
	require.NoError(t, err)
	assert.Empty(t, steps)

	_, err = parseSteps("10,x")
	assert.Error(t, err)
}
