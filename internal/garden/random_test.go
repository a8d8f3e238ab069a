package garden

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewSourcesDeterministic(t *testing.T) {
	e1, c1 := NewSources(42)
	e2, c2 := NewSources(42)
	for i := 0; i < 50; i++ {
		assert.Equal(t, e1.IntN(1000), e2.IntN(1000))
		assert.Equal(t, c1.Float64(), c2.Float64())
	}
}

func TestNewSourcesIndependent(t *testing.T) {
	events, chances := NewSources(42)
	same := 0
	for i := 0; i < 50; i++ {
		if events.Float64() == chances.Float64() {
			same++
		}
	}
	assert.Less(t, same, 50)

	other, _ := NewSources(43)
	events, _ = NewSources(42)
	diff := false
	for i := 0; i < 10; i++ {
		if events.IntN(1<<30) != other.IntN(1<<30) {
			diff = true
		}
	}
	assert.True(t, diff, "different seeds give different streams")
}
