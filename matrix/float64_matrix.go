package matrix

import "strconv"

// Float64Matrix holds derived probabilities such as the topic-word
// (phi) and document-topic (theta) distributions.
type Float64Matrix struct {
	nrow int
	ncol int
	data []float64
}

// NewFloat64Matrix creates a new Float64Matrix with r rows and c columns
func NewFloat64Matrix(r, c int) *Float64Matrix {
	if r < 0 || c < 0 {
		panic(ErrBadShape)
	}
	return &Float64Matrix{
		nrow: r,
		ncol: c,
		data: make([]float64, r*c),
	}
}

// get the shape of the matrix
func (m *Float64Matrix) Shape() (int, int) {
	return m.nrow, m.ncol
}

// get the [r, c]-th element of the matrix
func (m *Float64Matrix) Get(r, c int) float64 {
	if r < 0 || c < 0 || r >= m.nrow || c >= m.ncol {
		panic(ErrIndexOutOfRange)
	}
	return m.data[r*m.ncol+c]
}

// Row returns the r-th row of the matrix, sharing storage with it.
// Writing into the returned slice updates the matrix.
func (m *Float64Matrix) Row(r int) []float64 {
	if r < 0 || r >= m.nrow {
		panic(ErrIndexOutOfRange)
	}
	return m.data[r*m.ncol : (r+1)*m.ncol]
}

// AppendCell writes the shortest representation that parses back to
// the same float64.
func (m *Float64Matrix) AppendCell(dst []byte, r, c int) []byte {
	return strconv.AppendFloat(dst, m.Get(r, c), 'g', -1, 64)
}
