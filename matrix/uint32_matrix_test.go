package matrix

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUint32MatrixShape(t *testing.T) {
	m := NewUint32Matrix(2, 3)

	r, c := m.Shape()

	assert.Equal(t, 2, r)
	assert.Equal(t, 3, c)
}

func TestUint32MatrixGet(t *testing.T) {
	m := NewUint32Matrix(2, 3)

	val := uint32(0)
	for r := 0; r < 2; r++ {
		for c := 0; c < 3; c++ {
			m.Set(r, c, val)
			val++
		}
	}

	assert.Equal(t, uint32(0), m.Get(0, 0))
	assert.Equal(t, uint32(1), m.Get(0, 1))
	assert.Equal(t, uint32(2), m.Get(0, 2))
	assert.Equal(t, uint32(3), m.Get(1, 0))
	assert.Equal(t, uint32(4), m.Get(1, 1))
	assert.Equal(t, uint32(5), m.Get(1, 2))

	assert.Equal(t, []uint32{3, 4, 5}, m.Row(1))
	assert.Equal(t, []uint32{1, 4}, m.Col(1))
}

func TestUint32MatrixIncrDecr(t *testing.T) {
	m := NewUint32Matrix(2, 2)

	m.Incr(1, 1, 2)
	assert.Equal(t, uint32(2), m.Get(1, 1))

	m.Decr(1, 1, 1)
	assert.Equal(t, uint32(1), m.Get(1, 1))

	assert.PanicsWithValue(t, ErrNegativeCount, func() { m.Decr(1, 1, 2) })
	assert.Equal(t, uint32(1), m.Get(1, 1))
}

func TestUint32MatrixOutOfRange(t *testing.T) {
	m := NewUint32Matrix(2, 2)

	assert.PanicsWithValue(t, ErrIndexOutOfRange, func() { m.Get(2, 0) })
	assert.PanicsWithValue(t, ErrIndexOutOfRange, func() { m.Incr(0, -1, 1) })
	assert.PanicsWithValue(t, ErrBadShape, func() { NewUint32Matrix(-1, 2) })
}

func TestUint32MatrixCloneEqual(t *testing.T) {
	m := NewUint32Matrix(2, 2)
	m.Set(0, 1, 7)

	c := m.Clone()
	assert.True(t, m.Equal(c))

	c.Incr(0, 1, 1)
	assert.False(t, m.Equal(c))
	assert.Equal(t, uint32(7), m.Get(0, 1))
	assert.False(t, m.Equal(NewUint32Matrix(2, 3)))
}

func TestAppendCell(t *testing.T) {
	u := NewUint32Matrix(1, 1)
	u.Set(0, 0, 42)
	assert.Equal(t, "42", string(u.AppendCell(nil, 0, 0)))

	f := NewFloat64Matrix(1, 2)
	copy(f.Row(0), []float64{0.25, 1e-7})
	assert.Equal(t, "0.25", string(f.AppendCell(nil, 0, 0)))
	assert.Equal(t, "1e-07", string(f.AppendCell(nil, 0, 1)))

	f.Row(0)[1] = 3
	assert.Equal(t, float64(3), f.Get(0, 1))
}
