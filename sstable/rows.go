package sstable

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/bobonovski/ldadmm/matrix"
)

// lines longer than this cannot be read back
const maxLineBytes = 256 << 20

// WriteMatrix serializes m as text, one matrix row per line with the
// cells separated by single spaces.
func WriteMatrix(w io.Writer, m matrix.Matrix) error {
	bw := bufio.NewWriter(w)
	r, c := m.Shape()
	var buf []byte
	for ridx := 0; ridx < r; ridx++ {
		buf = buf[:0]
		for cidx := 0; cidx < c; cidx++ {
			if cidx > 0 {
				buf = append(buf, ' ')
			}
			buf = m.AppendCell(buf, ridx, cidx)
		}
		buf = append(buf, '\n')
		if _, err := bw.Write(buf); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteIntRows writes ragged integer rows, one per line. An empty row
// becomes an empty line.
func WriteIntRows(w io.Writer, rows [][]int) error {
	bw := bufio.NewWriter(w)
	var buf []byte
	for _, row := range rows {
		buf = buf[:0]
		for i, v := range row {
			if i > 0 {
				buf = append(buf, ' ')
			}
			buf = strconv.AppendInt(buf, int64(v), 10)
		}
		buf = append(buf, '\n')
		if _, err := bw.Write(buf); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// ReadIntRows parses the output of WriteIntRows. Blank lines are kept
// as empty rows.
func ReadIntRows(r io.Reader) ([][]int, error) {
	var rows [][]int
	err := scanLines(r, func(lineNo int, fields []string) error {
		row := make([]int, len(fields))
		for i, f := range fields {
			v, err := strconv.Atoi(f)
			if err != nil {
				return errors.Wrapf(err, "line %d", lineNo)
			}
			row[i] = v
		}
		rows = append(rows, row)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// ReadUint32Matrix parses a count matrix written by WriteMatrix
func ReadUint32Matrix(r io.Reader) (*matrix.Uint32Matrix, error) {
	var cells [][]uint32
	err := scanLines(r, func(lineNo int, fields []string) error {
		if len(fields) == 0 {
			return nil
		}
		if len(cells) > 0 && len(fields) != len(cells[0]) {
			return errors.Errorf("line %d: %d columns, expected %d", lineNo, len(fields), len(cells[0]))
		}
		row := make([]uint32, len(fields))
		for i, f := range fields {
			v, err := strconv.ParseUint(f, 10, 32)
			if err != nil {
				return errors.Wrapf(err, "line %d", lineNo)
			}
			row[i] = uint32(v)
		}
		cells = append(cells, row)
		return nil
	})
	if err != nil {
		return nil, err
	}

	ncol := 0
	if len(cells) > 0 {
		ncol = len(cells[0])
	}
	m := matrix.NewUint32Matrix(len(cells), ncol)
	for ridx, row := range cells {
		for cidx, v := range row {
			m.Set(ridx, cidx, v)
		}
	}
	return m, nil
}

// ReadFloat64Matrix parses a probability matrix written by WriteMatrix
func ReadFloat64Matrix(r io.Reader) (*matrix.Float64Matrix, error) {
	var cells [][]float64
	err := scanLines(r, func(lineNo int, fields []string) error {
		if len(fields) == 0 {
			return nil
		}
		if len(cells) > 0 && len(fields) != len(cells[0]) {
			return errors.Errorf("line %d: %d columns, expected %d", lineNo, len(fields), len(cells[0]))
		}
		row := make([]float64, len(fields))
		for i, f := range fields {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return errors.Wrapf(err, "line %d", lineNo)
			}
			row[i] = v
		}
		cells = append(cells, row)
		return nil
	})
	if err != nil {
		return nil, err
	}

	ncol := 0
	if len(cells) > 0 {
		ncol = len(cells[0])
	}
	m := matrix.NewFloat64Matrix(len(cells), ncol)
	for ridx, row := range cells {
		copy(m.Row(ridx), row)
	}
	return m, nil
}

func scanLines(r io.Reader, fn func(lineNo int, fields []string) error) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		if err := fn(lineNo, strings.Fields(scanner.Text())); err != nil {
			return err
		}
	}
	return scanner.Err()
}
