package translate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFrom(t *testing.T) {
	assert := assert.New(t)

	assert.NotNil(Printer())
	assert.Same(Printer(), Printer())

	assert.Equal("register invalid", From("register invalid"))
	assert.Equal("isa rich unknown", From("isa %v unknown", "rich"))
}
