// Package geohash encodes lng/lat coordinates into fixed-length string
// codes along a Hilbert space-filling curve.
//
// A code of `precision` characters at `bitsPerChar` bits each addresses
// a cell on a 2^level x 2^level grid, level = precision*bitsPerChar/2.
// The Hilbert traversal preserves spatial locality better than the
// Z-order interleaving used by classic geohashes: coordinates that are
// close on the globe usually get codes that are close as integers.
//
// Every function is a pure computation over its arguments; the package
// holds no state and is safe for concurrent use.
package geohash

import (
	"errors"
	"fmt"
	"strings"

	"github.com/AutumnWormSun/geohash-hilbert/internal/codec"
	"github.com/AutumnWormSun/geohash-hilbert/internal/curve"
	"github.com/AutumnWormSun/geohash-hilbert/internal/grid"
)

const (
	DefaultPrecision   = 10
	DefaultBitsPerChar = 6

	// A uint64 curve index caps the total code width at 64 bits
	// (curve level 32, a 2^32 x 2^32 grid).
	maxBits = 64
)

var (
	// Longitude or latitude outside [-180, 180] / [-90, 90], a negative
	// precision, or a code width over 64 bits.
	ErrOutOfRange = errors.New("argument out of range")
	// Bits per char other than 2, 4 or 6, or a code character that does
	// not belong to the selected alphabet.
	ErrInvalidBitsPerChar = errors.New("invalid bits per char")
)

// Represents a decoded position: the center of the grid cell a code
// addresses, together with the cell's half-widths as error margins.
// The coordinate encoded originally lies within Lng+-LngErr, Lat+-LatErr.
type Position struct {
	Lng    float64
	Lat    float64
	LngErr float64
	LatErr float64
}

// Encode a lng/lat coordinate with the default precision (10) and
// bits per char (6), i.e. a level 30 Hilbert curve.
func Encode(lng, lat float64) (string, error) {
	return EncodeWithPrecision(lng, lat, DefaultPrecision, DefaultBitsPerChar)
}

// Encode a lng/lat coordinate as a code of exactly precision characters,
// each carrying bitsPerChar bits (2, 4 or 6).
//
// The curve level is precision*bitsPerChar/2, floored; with an even
// bitsPerChar the product is always even, but an odd total would drop
// its low bit by design, costing half a bit of resolution rather than
// failing. precision*bitsPerChar must not exceed 64.
func EncodeWithPrecision(lng, lat float64, precision, bitsPerChar int) (string, error) {
	if err := checkBitsPerChar(bitsPerChar); err != nil {
		return "", err
	}
	if precision < 0 {
		return "", fmt.Errorf("encode: precision %d: %w", precision, ErrOutOfRange)
	}
	// Negated form so NaN fails validation too.
	if !(lng >= grid.MinLng && lng <= grid.MaxLng) {
		return "", fmt.Errorf("encode: longitude %v not in [-180, 180]: %w", lng, ErrOutOfRange)
	}
	if !(lat >= grid.MinLat && lat <= grid.MaxLat) {
		return "", fmt.Errorf("encode: latitude %v not in [-90, 90]: %w", lat, ErrOutOfRange)
	}

	bits := precision * bitsPerChar
	if bits > maxBits {
		return "", fmt.Errorf("encode: precision %d at %d bits per char exceeds %d bits: %w",
			precision, bitsPerChar, maxBits, ErrOutOfRange)
	}
	level := uint(bits >> 1)
	dim := uint64(1) << level

	x, y, err := grid.CellForCoordinate(lng, lat, dim)
	if err != nil {
		return "", fmt.Errorf("encode: %w", err)
	}
	index, err := curve.IndexForCell(x, y, dim)
	if err != nil {
		return "", fmt.Errorf("encode: %w", err)
	}
	code, err := codec.EncodeInt(index, bitsPerChar)
	if err != nil {
		return "", fmt.Errorf("encode: %w", err)
	}

	// The codec emits the shortest representation; restore the fixed width.
	if pad := precision - len(code); pad > 0 {
		code = strings.Repeat(string(codec.ZeroChar), pad) + code
	}
	return code, nil
}

// Decode a code produced with the default bits per char (6).
// Returns the center of the addressed grid cell.
func Decode(code string) (lng, lat float64, err error) {
	return DecodeWithBits(code, DefaultBitsPerChar)
}

// Decode a code whose characters carry bitsPerChar bits each. The code's
// length determines the curve level; do not mix codes produced with a
// different bitsPerChar.
func DecodeWithBits(code string, bitsPerChar int) (lng, lat float64, err error) {
	pos, err := DecodeExactlyWithBits(code, bitsPerChar)
	if err != nil {
		return 0, 0, err
	}
	return pos.Lng, pos.Lat, nil
}

// Decode a code produced with the default bits per char (6), reporting
// the cell center together with its error margins.
func DecodeExactly(code string) (Position, error) {
	return DecodeExactlyWithBits(code, DefaultBitsPerChar)
}

// Decode a code whose characters carry bitsPerChar bits each, reporting
// the cell center together with its error margins.
func DecodeExactlyWithBits(code string, bitsPerChar int) (Position, error) {
	if err := checkBitsPerChar(bitsPerChar); err != nil {
		return Position{}, err
	}

	bits := len(code) * bitsPerChar
	if bits > maxBits {
		return Position{}, fmt.Errorf("decode: %d-char code at %d bits per char exceeds %d bits: %w",
			len(code), bitsPerChar, maxBits, ErrOutOfRange)
	}
	level := uint(bits >> 1)
	dim := uint64(1) << level

	index, err := codec.DecodeInt(code, bitsPerChar)
	if err != nil {
		if errors.Is(err, codec.ErrBadChar) {
			return Position{}, fmt.Errorf("decode: %v: %w", err, ErrInvalidBitsPerChar)
		}
		return Position{}, fmt.Errorf("decode: %w", err)
	}
	x, y, err := curve.CellForIndex(index, dim)
	if err != nil {
		return Position{}, fmt.Errorf("decode: %w", err)
	}
	lng, lat, err := grid.CoordinateForCell(x, y, dim)
	if err != nil {
		return Position{}, fmt.Errorf("decode: %w", err)
	}

	lngErr, latErr := grid.ErrorForLevel(level)
	return Position{
		Lng:    lng + lngErr,
		Lat:    lat + latErr,
		LngErr: lngErr,
		LatErr: latErr,
	}, nil
}

func checkBitsPerChar(bitsPerChar int) error {
	switch bitsPerChar {
	case 2, 4, 6:
		return nil
	}
	return fmt.Errorf("bits per char %d: %w", bitsPerChar, ErrInvalidBitsPerChar)
}
