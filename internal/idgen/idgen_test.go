package idgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCounterStartsAtOneAndIncrements(t *testing.T) {
	var c Counter
	assert.Equal(t, uint64(1), c.Next())
	assert.Equal(t, uint64(2), c.Next())
	assert.Equal(t, uint64(3), c.Next())
}

func TestNewConnectionIDIsUnique(t *testing.T) {
	a := NewConnectionID()
	b := NewConnectionID()
	assert.NotEqual(t, a, b)
	assert.NotEmpty(t, a)
}
