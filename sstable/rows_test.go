package sstable

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobonovski/ldadmm/matrix"
)

func TestUint32MatrixText(t *testing.T) {
	m := matrix.NewUint32Matrix(2, 3)
	m.Set(0, 1, 4)
	m.Set(1, 2, 12)

	var buf bytes.Buffer
	require.NoError(t, WriteMatrix(&buf, m))
	assert.Equal(t, "0 4 0\n0 0 12\n", buf.String())

	back, err := ReadUint32Matrix(&buf)
	require.NoError(t, err)
	assert.True(t, m.Equal(back))
}

func TestFloat64MatrixText(t *testing.T) {
	m := matrix.NewFloat64Matrix(2, 2)
	copy(m.Row(0), []float64{0.1, 0.9})
	copy(m.Row(1), []float64{1.0 / 3, 2.0 / 3})

	var buf bytes.Buffer
	require.NoError(t, WriteMatrix(&buf, m))

	back, err := ReadFloat64Matrix(&buf)
	require.NoError(t, err)
	for r := 0; r < 2; r++ {
		assert.Equal(t, m.Row(r), back.Row(r))
	}
}

func TestReadMatrixErrors(t *testing.T) {
	_, err := ReadUint32Matrix(strings.NewReader("1 2\n3\n"))
	assert.Error(t, err)

	_, err = ReadUint32Matrix(strings.NewReader("1 -2\n"))
	assert.Error(t, err)

	_, err = ReadFloat64Matrix(strings.NewReader("0.5 x\n"))
	assert.Error(t, err)

	m, err := ReadUint32Matrix(strings.NewReader(""))
	require.NoError(t, err)
	r, c := m.Shape()
	assert.Equal(t, 0, r)
	assert.Equal(t, 0, c)
}

func TestIntRows(t *testing.T) {
	rows := [][]int{{0, 0, 1}, {}, {2}}

	var buf bytes.Buffer
	require.NoError(t, WriteIntRows(&buf, rows))
	assert.Equal(t, "0 0 1\n\n2\n", buf.String())

	back, err := ReadIntRows(&buf)
	require.NoError(t, err)
	assert.Equal(t, rows, back)

	_, err = ReadIntRows(strings.NewReader("1 a\n"))
	assert.Error(t, err)
}
