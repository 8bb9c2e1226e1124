package matrix

import "strconv"

// internal Uint32 matrix representation
type Uint32Matrix struct {
	nrow int
	ncol int
	data []uint32
}

// NewUint32Matrix creates a new Uint32Matrix with r rows and c columns.
// If r or c is negative, it will panic. A uint32 slice is used as the
// underlying storage and the data layout is in row major order, i.e. the
// (i*c + j)-th element in the data slice is the [i, j]-th element in the
// matrix. Zero-sized matrices are allowed so that an empty corpus still
// yields well-formed count tables.
func NewUint32Matrix(r, c int) *Uint32Matrix {
	if r < 0 || c < 0 {
		panic(ErrBadShape)
	}
	return &Uint32Matrix{
		nrow: r,
		ncol: c,
		data: make([]uint32, r*c),
	}
}

// get the shape of the matrix
func (m *Uint32Matrix) Shape() (int, int) {
	return m.nrow, m.ncol
}

// get the [r, c]-th element of the matrix
func (m *Uint32Matrix) Get(r, c int) uint32 {
	m.check(r, c)
	return m.data[r*m.ncol+c]
}

// Row returns the r-th row of the matrix. The slice shares storage
// with the matrix, callers must not modify it.
func (m *Uint32Matrix) Row(r int) []uint32 {
	if r < 0 || r >= m.nrow {
		panic(ErrIndexOutOfRange)
	}
	return m.data[r*m.ncol : (r+1)*m.ncol]
}

// get a copy of the c-th column of the matrix
func (m *Uint32Matrix) Col(c int) []uint32 {
	if c < 0 || c >= m.ncol {
		panic(ErrIndexOutOfRange)
	}
	column := make([]uint32, m.nrow)
	for r := 0; r < m.nrow; r++ {
		column[r] = m.data[r*m.ncol+c]
	}
	return column
}

// set val to the [r, c]-th element of the matrix
func (m *Uint32Matrix) Set(r, c int, val uint32) {
	m.check(r, c)
	m.data[r*m.ncol+c] = val
}

// increment the [r, c]-th element of the matrix by val
func (m *Uint32Matrix) Incr(r, c int, val uint32) {
	m.check(r, c)
	m.data[r*m.ncol+c] += val
}

// Decr decrements the [r, c]-th element of the matrix by val. Counts
// never go negative; an underflow means the caller lost track of an
// assignment, so it panics with ErrNegativeCount.
func (m *Uint32Matrix) Decr(r, c int, val uint32) {
	m.check(r, c)
	idx := r*m.ncol + c
	if m.data[idx] < val {
		panic(ErrNegativeCount)
	}
	m.data[idx] -= val
}

// Clone returns a deep copy of the matrix
func (m *Uint32Matrix) Clone() *Uint32Matrix {
	data := make([]uint32, len(m.data))
	copy(data, m.data)
	return &Uint32Matrix{nrow: m.nrow, ncol: m.ncol, data: data}
}

// Equal reports whether both matrices have the same shape and elements
func (m *Uint32Matrix) Equal(o *Uint32Matrix) bool {
	if m.nrow != o.nrow || m.ncol != o.ncol {
		return false
	}
	for i := range m.data {
		if m.data[i] != o.data[i] {
			return false
		}
	}
	return true
}

func (m *Uint32Matrix) AppendCell(dst []byte, r, c int) []byte {
	return strconv.AppendUint(dst, uint64(m.Get(r, c)), 10)
}

func (m *Uint32Matrix) check(r, c int) {
	if r < 0 || c < 0 || r >= m.nrow || c >= m.ncol {
		panic(ErrIndexOutOfRange)
	}
}
