package codec

import (
	"errors"
	"fmt"
	"strings"
)

// Character the facade left-pads codes with; index 0 in every alphabet.
const ZeroChar = '0'

var (
	ErrBitsPerChar = errors.New("bits per char must be 2, 4 or 6")
	ErrBadChar     = errors.New("character not in alphabet")
	ErrTooWide     = errors.New("code does not fit in 64 bits")
)

// Alphabets are in ASCII order so codes sort like the integers they
// encode. The 6-bit alphabet is digits, '@', uppercase, '_', lowercase;
// it is not any RFC base64 variant.
const (
	base4  = "0123"
	base16 = "0123456789abcdef"
	base64 = "0123456789@ABCDEFGHIJKLMNOPQRSTUVWXYZ_abcdefghijklmnopqrstuvwxyz"
)

func alphabet(bitsPerChar int) (string, error) {
	switch bitsPerChar {
	case 2:
		return base4, nil
	case 4:
		return base16, nil
	case 6:
		return base64, nil
	}
	return "", fmt.Errorf("codec: bits per char %d: %w", bitsPerChar, ErrBitsPerChar)
}

// Encode a value as characters of bitsPerChar bits each,
// most-significant group first. Produces the shortest representation:
// no leading zero characters, and the empty string for 0.
func EncodeInt(v uint64, bitsPerChar int) (string, error) {
	chars, err := alphabet(bitsPerChar)
	if err != nil {
		return "", err
	}

	mask := uint64(len(chars) - 1)
	shift := uint(bitsPerChar)

	var b strings.Builder
	for v > 0 {
		b.WriteByte(chars[v&mask])
		v >>= shift
	}

	// The builder collected least-significant group first.
	out := []byte(b.String())
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return string(out), nil
}

// Decode a code produced by EncodeInt, under any amount of left-padding
// with the zero character. Each character contributes bitsPerChar bits,
// most-significant character first.
func DecodeInt(code string, bitsPerChar int) (uint64, error) {
	chars, err := alphabet(bitsPerChar)
	if err != nil {
		return 0, err
	}

	shift := uint(bitsPerChar)
	var v uint64
	for i := 0; i < len(code); i++ {
		idx := strings.IndexByte(chars, code[i])
		if idx < 0 {
			return 0, fmt.Errorf("codec: %q at position %d: %w", code[i], i, ErrBadChar)
		}
		if v>>(64-shift) != 0 {
			return 0, fmt.Errorf("codec: code %q: %w", code, ErrTooWide)
		}
		v = v<<shift | uint64(idx)
	}
	return v, nil
}
