package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRawMode(t *testing.T) {
	assert := assert.New(t)

	raw, err := rawMode("on", -1)
	assert.NoError(err)
	assert.True(raw)

	raw, err = rawMode("off", 0)
	assert.NoError(err)
	assert.False(raw)

	raw, err = rawMode("auto", -1)
	assert.NoError(err)
	assert.False(raw)

	_, err = rawMode("sometimes", 0)
	assert.Error(err)
}
