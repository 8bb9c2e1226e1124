package matrix

// Matrix is the read side shared by the count and probability
// matrices, enough to serialize either one cell by cell.
type Matrix interface {
	Shape() (int, int)
	// AppendCell appends the textual form of the [r, c]-th element to dst
	AppendCell(dst []byte, r, c int) []byte
}
