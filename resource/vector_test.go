package resource

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAdd(t *testing.T) {
	a := Vector[int16]{Oxygen: 1, Energy: 2, Life: 3}
	b := Vector[int16]{Oxygen: 4, Energy: 5, Life: 6}

	assert.Equal(t, Vector[int16]{Oxygen: 5, Energy: 7, Life: 9}, Add(a, b))
	assert.Equal(t, Add(a, b), a.Add(b))
}

func TestSub(t *testing.T) {
	a := Vector[int16]{Oxygen: 1, Energy: 2, Life: 3}
	b := Vector[int16]{Oxygen: 4, Energy: 5, Life: 6}

	assert.Equal(t, Vector[int16]{Oxygen: -3, Energy: -3, Life: -3}, Sub(a, b))
	assert.Equal(t, Sub(a, b), a.Sub(b))
}

func TestSubThenAddCancels(t *testing.T) {
	acc := Delta{Oxygen: -1, Energy: -1}
	d := Delta{Oxygen: 5, Energy: 5}

	assert.Equal(t, acc, acc.Sub(d).Add(d))
}

func TestFloatInstantiation(t *testing.T) {
	a := Vector[float64]{Oxygen: 0.5, Energy: 1.5, Life: 2}
	assert.Equal(t, Vector[float64]{Oxygen: 1, Energy: 3, Life: 4}, a.Add(a))
}

func TestValuesOrder(t *testing.T) {
	v := Levels{Oxygen: 3, Energy: 2, Life: 1}

	assert.Equal(t, [3]uint16{3, 2, 1}, v.Values())
	assert.Equal(t, v, FromValues(v.Values()))
}

func TestIsZero(t *testing.T) {
	assert.True(t, Delta{}.IsZero())
	assert.False(t, Delta{Life: -1}.IsZero())
}
