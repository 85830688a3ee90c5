package grid

import (
	"errors"
	"fmt"
	"math"
)

// WGS 84 coordinate bounds, inclusive on both ends.
const (
	MinLng = -180.0
	MaxLng = 180.0
	MinLat = -90.0
	MaxLat = 90.0
)

var (
	ErrBadDim               = errors.New("dim must be a power of two >= 1")
	ErrCellOutOfRange       = errors.New("cell coordinates must be below dim")
	ErrCoordinateOutOfRange = errors.New("coordinate outside WGS 84 bounds")
)

// Quantize a lng/lat coordinate into integer cell coordinates on a
// dim x dim grid. x follows longitude, y follows latitude.
//
// The exact upper bounds (lng=180, lat=90) would land one cell past the
// grid under the plain floor formula; they are clamped into the
// outermost cell so that every coordinate in the closed intervals maps
// to a valid cell.
func CellForCoordinate(lng, lat float64, dim uint64) (x, y uint64, err error) {
	if err := checkDim(dim); err != nil {
		return 0, 0, err
	}
	// Negated form so NaN fails validation too.
	if !(lng >= MinLng && lng <= MaxLng && lat >= MinLat && lat <= MaxLat) {
		return 0, 0, fmt.Errorf("grid: coordinate (%v, %v): %w", lng, lat, ErrCoordinateOutOfRange)
	}

	x = uint64(math.Floor((lng + MaxLng) / 360.0 * float64(dim)))
	y = uint64(math.Floor((lat + MaxLat) / 180.0 * float64(dim)))
	if x >= dim {
		x = dim - 1
	}
	if y >= dim {
		y = dim - 1
	}
	return x, y, nil
}

// Convert grid cell coordinates back to the lng/lat of the cell's
// lower-left corner. The cell center is the corner plus ErrorForLevel.
func CoordinateForCell(x, y, dim uint64) (lng, lat float64, err error) {
	if err := checkDim(dim); err != nil {
		return 0, 0, err
	}
	if x >= dim || y >= dim {
		return 0, 0, fmt.Errorf("grid: cell (%d, %d) with dim %d: %w", x, y, dim, ErrCellOutOfRange)
	}

	lng = float64(x)/float64(dim)*360.0 - 180.0
	lat = float64(y)/float64(dim)*180.0 - 90.0
	return lng, lat, nil
}

// Half-widths of a grid cell in coordinate units at the given curve
// level. Level 0 covers the globe with a single cell (+-180, +-90);
// each further level halves both margins.
func ErrorForLevel(level uint) (lngErr, latErr float64) {
	unit := 1.0 / float64(uint64(1)<<level)
	return 180.0 * unit, 90.0 * unit
}

func checkDim(dim uint64) error {
	if dim == 0 || dim&(dim-1) != 0 {
		return fmt.Errorf("grid: dim %d: %w", dim, ErrBadDim)
	}
	return nil
}
