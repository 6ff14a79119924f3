// Package matrix holds the encoder-produced module grid that the rasterizer paints.
package matrix

import (
	"errors"
	"fmt"
)

// EyeSize is the edge length, in modules, of each finder pattern.
const EyeSize = 7

// MinSize is the dimension of a version 1 symbol.
const MinSize = 21

// ErrInvalidSize is returned when a grid is not square, too small or even.
var ErrInvalidSize = errors.New("matrix: invalid dimension")

// Eye identifies which finder pattern a module belongs to.
type Eye int

const (
	NoEye Eye = iota
	TopLeft
	TopRight
	BottomLeft
)

func (e Eye) String() string {
	switch e {
	case TopLeft:
		return "top-left"
	case TopRight:
		return "top-right"
	case BottomLeft:
		return "bottom-left"
	default:
		return "none"
	}
}

// BitMatrix is an immutable square grid of modules. A set cell is a dark module.
type BitMatrix struct {
	size  int
	cells []bool
}

// New copies rows into a BitMatrix. rows[r][c] is the module at row r, column c.
func New(rows [][]bool) (BitMatrix, error) {
	n := len(rows)
	if n < MinSize || n%2 == 0 {
		return BitMatrix{}, fmt.Errorf("%w: %d", ErrInvalidSize, n)
	}
	cells := make([]bool, n*n)
	for r, row := range rows {
		if len(row) != n {
			return BitMatrix{}, fmt.Errorf("%w: row %d has %d columns, want %d", ErrInvalidSize, r, len(row), n)
		}
		copy(cells[r*n:], row)
	}
	return BitMatrix{size: n, cells: cells}, nil
}

// FromFunc builds an n×n matrix by asking dark for every cell.
func FromFunc(n int, dark func(row, col int) bool) (BitMatrix, error) {
	if n < MinSize || n%2 == 0 {
		return BitMatrix{}, fmt.Errorf("%w: %d", ErrInvalidSize, n)
	}
	cells := make([]bool, n*n)
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			cells[r*n+c] = dark(r, c)
		}
	}
	return BitMatrix{size: n, cells: cells}, nil
}

// Size returns the dimension N.
func (m BitMatrix) Size() int { return m.size }

// Get reports whether (row, col) is a dark module. Out-of-range cells are light.
func (m BitMatrix) Get(row, col int) bool {
	if row < 0 || col < 0 || row >= m.size || col >= m.size {
		return false
	}
	return m.cells[row*m.size+col]
}

// EyeAt classifies (row, col) against the three corner finder regions.
// There is no bottom-right eye.
func (m BitMatrix) EyeAt(row, col int) Eye {
	n := m.size
	switch {
	case row < EyeSize && col < EyeSize:
		return TopLeft
	case row < EyeSize && col >= n-EyeSize:
		return TopRight
	case row >= n-EyeSize && col < EyeSize:
		return BottomLeft
	default:
		return NoEye
	}
}
