package curve

import (
	"errors"
	"fmt"
)

// Largest grid dimension a uint64 curve index can address: dim*dim
// positions must fit in 64 bits.
const MaxDim = uint64(1) << 32

var (
	ErrBadDim          = errors.New("dim must be a power of two between 1 and 2^32")
	ErrCellOutOfRange  = errors.New("cell coordinates must be below dim")
	ErrIndexOutOfRange = errors.New("curve index must be below dim*dim")
)

// Convert grid cell coordinates to the cell's distance along the Hilbert
// curve covering a dim x dim grid.
//
// The transform walks the coordinate bit-planes most-significant first,
// accumulating the quadrant offset at each level and re-orienting the
// remaining lower bits so that curve ends of adjacent quadrants meet.
func IndexForCell(x, y, dim uint64) (uint64, error) {
	if err := checkDim(dim); err != nil {
		return 0, err
	}
	if x >= dim || y >= dim {
		return 0, fmt.Errorf("curve: cell (%d, %d) with dim %d: %w", x, y, dim, ErrCellOutOfRange)
	}

	var index uint64
	for lvl := dim >> 1; lvl > 0; lvl >>= 1 {
		var rx, ry uint64
		if x&lvl != 0 {
			rx = 1
		}
		if y&lvl != 0 {
			ry = 1
		}
		index += lvl * lvl * ((3 * rx) ^ ry)
		x, y = rotate(lvl, x, y, rx, ry)
	}
	return index, nil
}

// Convert a distance along the Hilbert curve back to grid cell
// coordinates on a dim x dim grid. Exact inverse of IndexForCell.
func CellForIndex(index, dim uint64) (x, y uint64, err error) {
	if err := checkDim(dim); err != nil {
		return 0, 0, err
	}
	// dim == MaxDim addresses the full uint64 range, so every index is valid.
	if dim < MaxDim && index >= dim*dim {
		return 0, 0, fmt.Errorf("curve: index %d with dim %d: %w", index, dim, ErrIndexOutOfRange)
	}

	for lvl := uint64(1); lvl < dim; lvl <<= 1 {
		rx := 1 & (index >> 1)
		ry := 1 & (index ^ rx)
		x, y = rotate(lvl, x, y, rx, ry)
		x += lvl * rx
		y += lvl * ry
		index >>= 2
	}
	return x, y, nil
}

// Rotate/flip a quadrant so the sub-curve orientation matches its
// position in the parent quadrant. Must match bit-for-bit between the
// forward and inverse transforms.
func rotate(n, x, y, rx, ry uint64) (uint64, uint64) {
	if ry == 0 {
		if rx == 1 {
			x = n - 1 - x
			y = n - 1 - y
		}
		x, y = y, x
	}
	return x, y
}

func checkDim(dim uint64) error {
	if dim == 0 || dim > MaxDim || dim&(dim-1) != 0 {
		return fmt.Errorf("curve: dim %d: %w", dim, ErrBadDim)
	}
	return nil
}
