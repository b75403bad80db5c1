package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRollingWindowEmpty(t *testing.T) {
	w := NewRollingWindow(5)
	assert.Equal(t, 0, w.Len())
	assert.Equal(t, 0.0, w.Mean())
	assert.Equal(t, 0.0, w.Last())
	assert.Empty(t, w.Values())
}

func TestRollingWindowPartialFill(t *testing.T) {
	w := NewRollingWindow(5)
	w.Push(10)
	w.Push(20)

	assert.Equal(t, 2, w.Len())
	assert.Equal(t, []float64{10, 20}, w.Values())
	assert.Equal(t, 15.0, w.Mean())
	assert.Equal(t, 20.0, w.Last())
}

func TestRollingWindowOverwritesOldest(t *testing.T) {
	w := NewRollingWindow(3)
	for _, v := range []float64{1, 2, 3, 4, 5} {
		w.Push(v)
	}

	assert.Equal(t, 3, w.Len())
	assert.Equal(t, []float64{3, 4, 5}, w.Values())
	assert.Equal(t, 4.0, w.Mean())
	assert.Equal(t, 5.0, w.Last())
}

func TestRollingWindowDefaultCap(t *testing.T) {
	w := NewRollingWindow(0)
	assert.Equal(t, 300, w.Cap())

	w = NewRollingWindow(-7)
	assert.Equal(t, 300, w.Cap())
}

func TestRollingWindowClear(t *testing.T) {
	w := NewRollingWindow(4)
	w.Push(1)
	w.Push(2)
	w.Clear()

	assert.Equal(t, 0, w.Len())
	assert.Empty(t, w.Values())

	w.Push(9)
	assert.Equal(t, []float64{9}, w.Values())
}
